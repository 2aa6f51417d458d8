package request

// UpdateReceiptSettingsRequest changes receipt settings. Omitted fields keep
// their stored value; pointers let false and "" be set explicitly.
type UpdateReceiptSettingsRequest struct {
	CompanyName        *string `json:"company_name"`
	CompanyAddress     *string `json:"company_address"`
	CompanyPhone       *string `json:"company_phone"`
	PhoneLabel         *string `json:"phone_label"`
	FooterText         *string `json:"footer_text"`
	ShowAdmin          *bool   `json:"show_admin"`
	ShowCustomer       *bool   `json:"show_customer"`
	ShowNotes          *bool   `json:"show_notes"`
	CurrencySymbol     *string `json:"currency_symbol"`
	ThousandsSeparator *string `json:"thousands_separator"`
	DecimalSeparator   *string `json:"decimal_separator"`
	DecimalPlaces      *int    `json:"decimal_places"`
	DateFormat         *string `json:"date_format"`
	ShowTime           *bool   `json:"show_time"`
	PaperWidthMM       *int    `json:"paper_width_mm"`
}
