package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timbangcerdas/timbang-api/internal/application/service"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/dto/request"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/dto/response"
	"github.com/timbangcerdas/timbang-api/pkg/apperror"
)

// ExportHandler handles date range reports
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// bindRange reads the date range from the query string or the JSON body.
func bindRange(c *gin.Context) (start, end time.Time, ok bool) {
	var req request.ExportRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, apperror.NewValidationError([]apperror.FieldError{
			{Field: "start_date", Message: "Tanggal mulai dan tanggal akhir harus diisi"},
		}))
		return time.Time{}, time.Time{}, false
	}

	s, err := parseDate(req.StartDate)
	if err != nil || s == nil {
		response.Error(c, invalidDate("start_date"))
		return time.Time{}, time.Time{}, false
	}
	e, err := parseDate(req.EndDate)
	if err != nil || e == nil {
		response.Error(c, invalidDate("end_date"))
		return time.Time{}, time.Time{}, false
	}
	return *s, *e, true
}

// Report returns the summary and rows for a date range
// @Summary Transaction report
// @Tags exports
// @Security BearerAuth
// @Produce json
// @Param start_date query string true "YYYY-MM-DD"
// @Param end_date query string true "YYYY-MM-DD"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /exports/transactions [get]
func (h *ExportHandler) Report(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	start, end, ok := bindRange(c)
	if !ok {
		return
	}

	report, err := h.exportService.Report(c.Request.Context(), userID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Laporan berhasil dimuat", report)
}

// Markup serves the report as an HTML page
// @Summary Transaction report page
// @Tags exports
// @Security BearerAuth
// @Produce html
// @Param start_date query string true "YYYY-MM-DD"
// @Param end_date query string true "YYYY-MM-DD"
// @Router /exports/transactions/markup [get]
func (h *ExportHandler) Markup(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	start, end, ok := bindRange(c)
	if !ok {
		return
	}

	html, err := h.exportService.ReportMarkup(c.Request.Context(), userID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// ExportPDF renders the report as an A4 PDF and returns where to download it
// @Summary Transaction report PDF
// @Tags exports
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ExportRequest true "Date range"
// @Success 200 {object} response.APIResponse
// @Router /exports/transactions/pdf [post]
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	start, end, ok := bindRange(c)
	if !ok {
		return
	}

	result, err := h.exportService.ExportReport(c.Request.Context(), userID, start, end)
	outputResponse(c, result, err)
}
