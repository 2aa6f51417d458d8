package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/pkg/formatter"
	"gorm.io/gorm"
)

// ReceiptSettings holds the per-user presentation settings applied to every
// receipt and report.
type ReceiptSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Company header
	CompanyName    string `gorm:"size:255;not null" json:"company_name"`
	CompanyAddress string `gorm:"type:text" json:"company_address"`
	CompanyPhone   string `gorm:"size:50" json:"company_phone"`
	PhoneLabel     string `gorm:"size:20;default:'HP'" json:"phone_label"`
	FooterText     string `gorm:"size:255" json:"footer_text"`

	// Visibility
	ShowAdmin    bool `gorm:"default:true" json:"show_admin"`
	ShowCustomer bool `gorm:"default:true" json:"show_customer"`
	ShowNotes    bool `gorm:"default:true" json:"show_notes"`

	// Number and date formatting
	CurrencySymbol     string `gorm:"size:10;default:'Rp'" json:"currency_symbol"`
	ThousandsSeparator string `gorm:"size:1;default:'.'" json:"thousands_separator"`
	DecimalSeparator   string `gorm:"size:1;default:','" json:"decimal_separator"`
	DecimalPlaces      int    `gorm:"default:0" json:"decimal_places"`
	DateFormat         string `gorm:"size:20;default:'DD/MM/YYYY'" json:"date_format"`
	ShowTime           bool   `gorm:"default:false" json:"show_time"`

	// Paper
	PaperWidthMM int `gorm:"default:58" json:"paper_width_mm"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *ReceiptSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptSettings model
func (ReceiptSettings) TableName() string {
	return "receipt_settings"
}

// DefaultReceiptSettings returns the settings every new account starts with.
func DefaultReceiptSettings(userID uuid.UUID) *ReceiptSettings {
	return &ReceiptSettings{
		UserID:             userID,
		CompanyName:        "RAM SEKAWAN JAYA SEJAHTERA",
		CompanyAddress:     "Kelurahan Sari Bungamas Lahat",
		CompanyPhone:       "0813 7779 0785",
		PhoneLabel:         "HP",
		FooterText:         "Terima Kasih",
		ShowAdmin:          true,
		ShowCustomer:       true,
		ShowNotes:          true,
		CurrencySymbol:     "Rp",
		ThousandsSeparator: ".",
		DecimalSeparator:   ",",
		DecimalPlaces:      0,
		DateFormat:         "DD/MM/YYYY",
		ShowTime:           false,
		PaperWidthMM:       58,
	}
}

// FormatOptions returns the number formatting options for these settings.
func (s *ReceiptSettings) FormatOptions() formatter.Options {
	return formatter.Options{
		Symbol:             s.CurrencySymbol,
		ThousandsSeparator: s.ThousandsSeparator,
		DecimalSeparator:   s.DecimalSeparator,
		DecimalPlaces:      s.DecimalPlaces,
	}
}
