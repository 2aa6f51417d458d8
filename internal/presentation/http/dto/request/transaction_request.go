package request

import "github.com/timbangcerdas/timbang-api/pkg/weighing"

// CalculateRequest carries the weighing fields as the operator typed them.
// Only the leading number of each field is read; text without one counts as zero.
type CalculateRequest struct {
	GrossWeightKg    string `json:"gross_weight_kg"`
	TareWeightKg     string `json:"tare_weight_kg"`
	DeductionPercent string `json:"deduction_percent"`
	DeductionKg      string `json:"deduction_kg"`
	PricePerKg       string `json:"price_per_kg"`
}

// Raw returns the request as parser input.
func (r CalculateRequest) Raw() weighing.RawInput {
	return weighing.RawInput{
		GrossWeightKg:    r.GrossWeightKg,
		TareWeightKg:     r.TareWeightKg,
		DeductionPercent: r.DeductionPercent,
		DeductionKg:      r.DeductionKg,
		PricePerKg:       r.PricePerKg,
	}
}

// CreateTransactionRequest represents a new weighing
type CreateTransactionRequest struct {
	CalculateRequest
	TransactionDate string `json:"transaction_date"` // YYYY-MM-DD, defaults to today
	ItemType        string `json:"item_type"`
	AdminName       string `json:"admin_name"`
	CustomerName    string `json:"customer_name"`
	CustomerAddress string `json:"customer_address"`
	CustomerPhone   string `json:"customer_phone"`
	Notes           string `json:"notes"`
}

// ListTransactionsQuery represents the history filters
type ListTransactionsQuery struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Search    string `form:"search"`
	ItemType  string `form:"item_type"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// ReceiptPDFRequest names the generated receipt file. Empty uses the default name.
type ReceiptPDFRequest struct {
	Filename string `json:"filename"`
}
