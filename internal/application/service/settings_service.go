package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	"github.com/timbangcerdas/timbang-api/internal/domain/repository"
	"github.com/timbangcerdas/timbang-api/pkg/apperror"
)

// SettingsService handles receipt settings business logic
type SettingsService struct {
	settingsRepo repository.ReceiptSettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.ReceiptSettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetReceiptSettings retrieves the user's receipt settings, creating defaults if none exist
func (s *SettingsService) GetReceiptSettings(ctx context.Context, userID uuid.UUID) (*entity.ReceiptSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrStorage, err)
	}

	if settings == nil {
		settings = entity.DefaultReceiptSettings(userID)
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, apperror.Wrap(apperror.ErrStorage, err)
		}
	}

	return settings, nil
}

// UpdateReceiptSettingsInput carries the fields to change. Nil fields keep
// their stored value.
type UpdateReceiptSettingsInput struct {
	UserID             uuid.UUID
	CompanyName        *string
	CompanyAddress     *string
	CompanyPhone       *string
	PhoneLabel         *string
	FooterText         *string
	ShowAdmin          *bool
	ShowCustomer       *bool
	ShowNotes          *bool
	CurrencySymbol     *string
	ThousandsSeparator *string
	DecimalSeparator   *string
	DecimalPlaces      *int
	DateFormat         *string
	ShowTime           *bool
	PaperWidthMM       *int
}

// UpdateReceiptSettings applies the changes and saves every column. Saving
// the whole row keeps false flags and empty strings instead of dropping them
// as zero values.
func (s *SettingsService) UpdateReceiptSettings(ctx context.Context, input *UpdateReceiptSettingsInput) (*entity.ReceiptSettings, error) {
	settings, err := s.GetReceiptSettings(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	setString(&settings.CompanyName, input.CompanyName)
	setString(&settings.CompanyAddress, input.CompanyAddress)
	setString(&settings.CompanyPhone, input.CompanyPhone)
	setString(&settings.PhoneLabel, input.PhoneLabel)
	setString(&settings.FooterText, input.FooterText)
	setString(&settings.CurrencySymbol, input.CurrencySymbol)
	setString(&settings.DateFormat, input.DateFormat)
	if input.ThousandsSeparator != nil {
		settings.ThousandsSeparator = *input.ThousandsSeparator
	}
	if input.DecimalSeparator != nil {
		settings.DecimalSeparator = *input.DecimalSeparator
	}
	if input.ShowAdmin != nil {
		settings.ShowAdmin = *input.ShowAdmin
	}
	if input.ShowCustomer != nil {
		settings.ShowCustomer = *input.ShowCustomer
	}
	if input.ShowNotes != nil {
		settings.ShowNotes = *input.ShowNotes
	}
	if input.ShowTime != nil {
		settings.ShowTime = *input.ShowTime
	}
	if input.DecimalPlaces != nil {
		settings.DecimalPlaces = *input.DecimalPlaces
	}
	if input.PaperWidthMM != nil {
		settings.PaperWidthMM = *input.PaperWidthMM
	}

	if err := validateReceiptSettings(settings); err != nil {
		return nil, err
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, apperror.Wrap(apperror.ErrStorage, err)
	}
	return settings, nil
}

// ResetReceiptSettings restores the defaults a new account starts with
func (s *SettingsService) ResetReceiptSettings(ctx context.Context, userID uuid.UUID) (*entity.ReceiptSettings, error) {
	current, err := s.GetReceiptSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	defaults := entity.DefaultReceiptSettings(userID)
	defaults.ID = current.ID
	defaults.CreatedAt = current.CreatedAt

	if err := s.settingsRepo.Update(ctx, defaults); err != nil {
		return nil, apperror.Wrap(apperror.ErrStorage, err)
	}
	return defaults, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func validateReceiptSettings(settings *entity.ReceiptSettings) error {
	var fieldErrors []apperror.FieldError
	add := func(field, message string) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: message})
	}

	if settings.CompanyName == "" {
		add("company_name", "Nama perusahaan harus diisi")
	}
	if settings.DateFormat == "" {
		add("date_format", "Format tanggal harus diisi")
	} else if !strings.Contains(settings.DateFormat, "DD") && !strings.Contains(settings.DateFormat, "MM") && !strings.Contains(settings.DateFormat, "YYYY") {
		add("date_format", "Format tanggal harus memuat DD, MM atau YYYY")
	}
	if settings.DecimalPlaces < 0 || settings.DecimalPlaces > 4 {
		add("decimal_places", "Jumlah desimal harus antara 0 dan 4")
	}
	if len([]rune(settings.ThousandsSeparator)) > 1 {
		add("thousands_separator", "Pemisah ribuan maksimal 1 karakter")
	}
	if len([]rune(settings.DecimalSeparator)) > 1 {
		add("decimal_separator", "Pemisah desimal maksimal 1 karakter")
	}
	if settings.DecimalSeparator != "" && settings.DecimalSeparator == settings.ThousandsSeparator {
		add("decimal_separator", "Pemisah desimal harus berbeda dengan pemisah ribuan")
	}
	if settings.PaperWidthMM != 58 && settings.PaperWidthMM != 80 {
		add("paper_width_mm", "Lebar kertas harus 58 atau 80 mm")
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
