package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timbangcerdas/timbang-api/internal/application/service"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/dto/request"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/dto/response"
)

// ReceiptHandler serves a transaction's receipt in every output format
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Preview returns the receipt document and its on-screen layout
// @Summary Receipt preview
// @Tags receipts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Transaction ID"
// @Param preview query bool false "Full screen sizes (default true)"
// @Success 200 {object} response.APIResponse
// @Router /transactions/{id}/receipt [get]
func (h *ReceiptHandler) Preview(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	preview, err := strconv.ParseBool(c.DefaultQuery("preview", "true"))
	if err != nil {
		response.BadRequest(c, "Parameter preview tidak valid")
		return
	}

	result, err := h.receiptService.Preview(c.Request.Context(), userID, id, preview)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Struk berhasil dimuat", result)
}

// Markup returns the thermal-width HTML page. With ?format=html the page is
// served as-is for the client's print dialog.
// @Summary Receipt markup
// @Tags receipts
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param format query string false "json or html"
// @Router /transactions/{id}/receipt/markup [get]
func (h *ReceiptHandler) Markup(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	markup, err := h.receiptService.Markup(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("format") == "html" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(markup.HTML))
		return
	}
	response.OK(c, "Struk berhasil dimuat", markup)
}

// Text returns the receipt as fixed-width plain text
// @Summary Receipt text
// @Tags receipts
// @Security BearerAuth
// @Produce plain
// @Param id path string true "Transaction ID"
// @Router /transactions/{id}/receipt/text [get]
func (h *ReceiptHandler) Text(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	text, err := h.receiptService.Text(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

// Print sends the receipt to the thermal printer
// @Summary Print receipt
// @Tags receipts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Failure 504 {object} response.APIResponse
// @Router /transactions/{id}/receipt/print [post]
func (h *ReceiptHandler) Print(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.receiptService.Print(c.Request.Context(), userID, id)
	outputResponse(c, result, err)
}

// ExportPDF renders the receipt as a PDF and returns where to download it
// @Summary Receipt PDF
// @Tags receipts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body request.ReceiptPDFRequest false "File name"
// @Success 200 {object} response.APIResponse
// @Router /transactions/{id}/receipt/pdf [post]
func (h *ReceiptHandler) ExportPDF(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.ReceiptPDFRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Permintaan tidak valid")
			return
		}
	}

	result, err := h.receiptService.ExportPDF(c.Request.Context(), userID, id, req.Filename)
	outputResponse(c, result, err)
}
