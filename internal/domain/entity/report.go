package entity

import "time"

// ReportSummary totals a set of exported transactions.
type ReportSummary struct {
	Count         int     `json:"count"`
	TotalWeightKg float64 `json:"total_weight_kg"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// ReportRow is one transaction in the export table, pre-formatted.
type ReportRow struct {
	Date       string `json:"date"`
	Customer   string `json:"customer"`
	ItemType   string `json:"item_type"`
	Weight     string `json:"weight"`
	PricePerKg string `json:"price_per_kg"`
	Total      string `json:"total"`
}

// ReportDocument is the tabular transaction export for a date range.
type ReportDocument struct {
	Title       string        `json:"title"`
	Period      string        `json:"period"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	Summary     ReportSummary `json:"summary"`
	Count       string        `json:"count"`
	TotalWeight string        `json:"total_weight"`
	TotalAmount string        `json:"total_amount"`
	Columns     []string      `json:"columns"`
	Rows        []ReportRow   `json:"rows"`
	PrintedAt   string        `json:"printed_at"`
	Footer      string        `json:"footer"`
	Filename    string        `json:"filename"`
}

// Cells returns a row as its six column values.
func (r ReportRow) Cells() []string {
	return []string{r.Date, r.Customer, r.ItemType, r.Weight, r.PricePerKg, r.Total}
}
