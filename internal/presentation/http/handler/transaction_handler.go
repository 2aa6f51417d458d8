package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/timbangcerdas/timbang-api/internal/application/service"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/dto/request"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/dto/response"
	"github.com/timbangcerdas/timbang-api/pkg/apperror"
	"github.com/timbangcerdas/timbang-api/pkg/pagination"
)

// TransactionHandler handles weighing entry and history requests
type TransactionHandler struct {
	txnService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(txnService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{txnService: txnService}
}

// Calculate recomputes the derived values for the fields typed so far.
// Nothing is stored.
// @Summary Calculate weighing
// @Tags transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CalculateRequest true "Raw weighing fields"
// @Success 200 {object} response.APIResponse
// @Router /calculate [post]
func (h *TransactionHandler) Calculate(c *gin.Context) {
	var req request.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Permintaan tidak valid")
		return
	}

	raw := req.Raw()
	response.OK(c, "Perhitungan berhasil", gin.H{
		"input":  raw.Parse(),
		"totals": h.txnService.Calculate(raw),
	})
}

// Create records a weighing
// @Summary Create transaction
// @Tags transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Retry key"
// @Param request body request.CreateTransactionRequest true "Weighing"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req request.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Permintaan tidak valid")
		return
	}

	date, err := parseDate(req.TransactionDate)
	if err != nil {
		response.Error(c, invalidDate("transaction_date"))
		return
	}

	txn, err := h.txnService.Create(c.Request.Context(), GetCurrentUser(c), &service.CreateTransactionInput{
		TransactionDate: date,
		ItemType:        req.ItemType,
		Raw:             req.Raw(),
		AdminName:       req.AdminName,
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerPhone:   req.CustomerPhone,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaksi berhasil disimpan", txn)
}

// List returns the transaction history, newest first
// @Summary List transactions
// @Tags transactions
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Param search query string false "Customer or item"
// @Success 200 {object} response.APIResponse
// @Router /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var q request.ListTransactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Parameter tidak valid")
		return
	}

	start, err := parseDate(q.StartDate)
	if err != nil {
		response.Error(c, invalidDate("start_date"))
		return
	}
	end, err := parseDate(q.EndDate)
	if err != nil {
		response.Error(c, invalidDate("end_date"))
		return
	}

	result, err := h.txnService.List(c.Request.Context(), userID, &service.ListTransactionsInput{
		Pagination: &pagination.PaginationParams{Page: q.Page, PerPage: q.PerPage},
		Search:     q.Search,
		ItemType:   q.ItemType,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Riwayat transaksi berhasil dimuat", result)
}

// Get returns one transaction
// @Summary Get transaction
// @Tags transactions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	txn, err := h.txnService.Get(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaksi berhasil dimuat", txn)
}

// Delete removes a transaction
// @Summary Delete transaction
// @Tags transactions
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.txnService.Delete(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaksi berhasil dihapus", nil)
}

// outputResponse answers a print or export call. A failed action still
// returns its result so the client can show the state and message.
func outputResponse(c *gin.Context, result *service.OutputResult, err error) {
	switch {
	case err != nil && result != nil:
		response.ErrorWithData(c, err, result)
	case err != nil:
		response.Error(c, err)
	case result == nil:
		response.Error(c, apperror.ErrInternalServer)
	default:
		response.OK(c, result.Message, result)
	}
}
