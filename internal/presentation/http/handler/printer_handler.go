package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/timbangcerdas/timbang-api/internal/application/service"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	receiptService *service.ReceiptService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(receiptService *service.ReceiptService) *PrinterHandler {
	return &PrinterHandler{receiptService: receiptService}
}

// GetStatus returns the printer connection status and share capability.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Status printer berhasil dimuat", h.receiptService.GetPrinterStatus())
}

// TestPrint prints a sample receipt with the user's settings.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.receiptService.TestPrint(c.Request.Context(), userID)
	outputResponse(c, result, err)
}
