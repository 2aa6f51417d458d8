package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/timbangcerdas/timbang-api/internal/application/service"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/dto/request"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles receipt settings requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetReceiptSettings retrieves the user's receipt settings
func (h *SettingsHandler) GetReceiptSettings(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.GetReceiptSettings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pengaturan struk berhasil dimuat", settings)
}

// UpdateReceiptSettings updates the fields present in the body
func (h *SettingsHandler) UpdateReceiptSettings(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req request.UpdateReceiptSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Permintaan tidak valid")
		return
	}

	settings, err := h.settingsService.UpdateReceiptSettings(c.Request.Context(), &service.UpdateReceiptSettingsInput{
		UserID:             userID,
		CompanyName:        req.CompanyName,
		CompanyAddress:     req.CompanyAddress,
		CompanyPhone:       req.CompanyPhone,
		PhoneLabel:         req.PhoneLabel,
		FooterText:         req.FooterText,
		ShowAdmin:          req.ShowAdmin,
		ShowCustomer:       req.ShowCustomer,
		ShowNotes:          req.ShowNotes,
		CurrencySymbol:     req.CurrencySymbol,
		ThousandsSeparator: req.ThousandsSeparator,
		DecimalSeparator:   req.DecimalSeparator,
		DecimalPlaces:      req.DecimalPlaces,
		DateFormat:         req.DateFormat,
		ShowTime:           req.ShowTime,
		PaperWidthMM:       req.PaperWidthMM,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pengaturan struk berhasil disimpan", settings)
}

// ResetReceiptSettings restores the default receipt settings
func (h *SettingsHandler) ResetReceiptSettings(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.ResetReceiptSettings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pengaturan struk dikembalikan ke default", settings)
}
