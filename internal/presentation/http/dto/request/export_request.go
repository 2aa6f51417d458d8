package request

// ExportRequest selects an inclusive date range, both YYYY-MM-DD
type ExportRequest struct {
	StartDate string `json:"start_date" form:"start_date" binding:"required"`
	EndDate   string `json:"end_date" form:"end_date" binding:"required"`
}
