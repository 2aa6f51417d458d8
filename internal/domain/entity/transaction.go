package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/pkg/weighing"
	"gorm.io/gorm"
)

// Transaction is one persisted weighing. The derived weight and price columns
// are written only through ApplyTotals.
type Transaction struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index:idx_transactions_user_date" json:"user_id"`
	TransactionDate time.Time `gorm:"type:date;not null;index:idx_transactions_user_date" json:"transaction_date"`
	ItemType        string    `gorm:"size:255;not null" json:"item_type"`

	// Inputs and totals keep full float precision: totals must equal a
	// recompute from the stored inputs.
	GrossWeightKg    float64 `gorm:"type:double precision;not null" json:"gross_weight_kg"`
	TareWeightKg     float64 `gorm:"type:double precision;not null" json:"tare_weight_kg"`
	NetWeightKg      float64 `gorm:"type:double precision;not null" json:"net_weight_kg"`
	DeductionPercent float64 `gorm:"type:double precision;default:0" json:"deduction_percent"`
	DeductionKg      float64 `gorm:"type:double precision;default:0" json:"deduction_kg"`
	BilledWeightKg   float64 `gorm:"type:double precision;not null" json:"billed_weight_kg"`
	PricePerKg       float64 `gorm:"type:double precision;not null" json:"price_per_kg"`
	TotalPrice       float64 `gorm:"type:double precision;not null" json:"total_price"`

	AdminName       string `gorm:"size:255" json:"admin_name"`
	CustomerName    string `gorm:"size:255;index" json:"customer_name"`
	CustomerAddress string `gorm:"type:text" json:"customer_address,omitempty"`
	CustomerPhone   string `gorm:"size:50" json:"customer_phone,omitempty"`
	Notes           string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// Input returns the operator inputs stored on the transaction.
func (t *Transaction) Input() weighing.Input {
	return weighing.Input{
		GrossWeightKg:    t.GrossWeightKg,
		TareWeightKg:     t.TareWeightKg,
		DeductionPercent: t.DeductionPercent,
		DeductionKg:      t.DeductionKg,
		PricePerKg:       t.PricePerKg,
	}
}

// ApplyTotals copies computed values onto the transaction.
func (t *Transaction) ApplyTotals(totals weighing.Totals) {
	t.NetWeightKg = totals.NetWeightKg
	t.BilledWeightKg = totals.BilledWeightKg
	t.TotalPrice = totals.TotalPrice
}

// Recalculate recomputes the derived values from the stored inputs.
func (t *Transaction) Recalculate() weighing.Totals {
	totals := weighing.Compute(t.Input())
	t.ApplyTotals(totals)
	return totals
}

// DeductionAmountKg is the weight removed by the percentage deduction.
func (t *Transaction) DeductionAmountKg() float64 {
	return weighing.Compute(t.Input()).DeductionAmountKg
}
