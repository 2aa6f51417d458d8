package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	"github.com/timbangcerdas/timbang-api/internal/domain/repository"
	"github.com/timbangcerdas/timbang-api/internal/infrastructure/render"
	"github.com/timbangcerdas/timbang-api/pkg/apperror"
	"github.com/timbangcerdas/timbang-api/pkg/formatter"
)

// Report text.
const (
	ReportTitle  = "Laporan Transaksi"
	ReportFooter = "Timbang Cerdas"
)

// ReportColumns are the export table headings in order.
var ReportColumns = []string{"Tanggal", "Customer", "Barang", "Berat", "Harga/Kg", "Total"}

// ExportService aggregates transactions over a date range into reports
type ExportService struct {
	txnRepo  repository.TransactionRepository
	settings *SettingsService
	receipts *ReceiptService
	loc      *time.Location
	now      func() time.Time
}

// NewExportService creates a new export service. Rendered reports are
// stored through the receipt service's file sink and PDF timeout.
func NewExportService(
	txnRepo repository.TransactionRepository,
	settings *SettingsService,
	receipts *ReceiptService,
	loc *time.Location,
) *ExportService {
	if loc == nil {
		loc = time.Local
	}
	return &ExportService{
		txnRepo:  txnRepo,
		settings: settings,
		receipts: receipts,
		loc:      loc,
		now:      time.Now,
	}
}

// GetTransactionsInRange returns the user's transactions dated from start to
// end inclusive, newest first.
func (s *ExportService) GetTransactionsInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.Transaction, error) {
	start, end = calendarDay(start), calendarDay(end)
	if start.After(end) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "start_date", Message: "Tanggal mulai tidak boleh setelah tanggal akhir"},
		})
	}

	txns, err := s.txnRepo.GetByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrStorage, err)
	}
	return txns, nil
}

// Summarize counts the transactions and totals their billed weight and price.
func Summarize(txns []entity.Transaction) entity.ReportSummary {
	summary := entity.ReportSummary{Count: len(txns)}
	for _, t := range txns {
		summary.TotalWeightKg += t.BilledWeightKg
		summary.TotalRevenue += t.TotalPrice
	}
	return summary
}

// BuildReport lays out the transactions as a report. Amounts use the
// user's currency settings; dates use short Indonesian month names.
func BuildReport(txns []entity.Transaction, start, end time.Time, settings *entity.ReceiptSettings, printedAt time.Time) *entity.ReportDocument {
	opts := settings.FormatOptions()
	summary := Summarize(txns)

	rows := make([]entity.ReportRow, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, entity.ReportRow{
			Date:       formatter.ShortDate(t.TransactionDate),
			Customer:   t.CustomerName,
			ItemType:   t.ItemType,
			Weight:     formatter.Weight(t.BilledWeightKg, opts),
			PricePerKg: formatter.Currency(t.PricePerKg, opts),
			Total:      formatter.Currency(t.TotalPrice, opts),
		})
	}

	return &entity.ReportDocument{
		Title:       ReportTitle,
		Period:      formatter.ShortDate(start) + " - " + formatter.ShortDate(end),
		StartDate:   start,
		EndDate:     end,
		Summary:     summary,
		Count:       strconv.Itoa(summary.Count),
		TotalWeight: formatter.Weight(summary.TotalWeightKg, opts),
		TotalAmount: formatter.Currency(summary.TotalRevenue, opts),
		Columns:     append([]string(nil), ReportColumns...),
		Rows:        rows,
		PrintedAt:   formatter.Date(printedAt, settings.DateFormat) + " " + printedAt.Format("15:04"),
		Footer:      ReportFooter,
		Filename:    fmt.Sprintf("Laporan_Transaksi_%s_%s.pdf", start.Format("2006-01-02"), end.Format("2006-01-02")),
	}
}

// Report returns the report for a date range. An empty range is
// ErrNothingToExport rather than an empty report.
func (s *ExportService) Report(ctx context.Context, userID uuid.UUID, start, end time.Time) (*entity.ReportDocument, error) {
	txns, err := s.GetTransactionsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, apperror.ErrNothingToExport
	}

	settings, err := s.settings.GetReceiptSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildReport(txns, calendarDay(start), calendarDay(end), settings, s.now().In(s.loc)), nil
}

// ReportMarkup renders the report for a date range as an HTML page.
func (s *ExportService) ReportMarkup(ctx context.Context, userID uuid.UUID, start, end time.Time) (string, error) {
	report, err := s.Report(ctx, userID, start, end)
	if err != nil {
		return "", err
	}
	return render.ReportMarkupRenderer{}.RenderReport(report)
}

// ExportReport renders the report for a date range as an A4 PDF and stores it.
func (s *ExportService) ExportReport(ctx context.Context, userID uuid.UUID, start, end time.Time) (*OutputResult, error) {
	report, err := s.Report(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	renderer := s.receipts.opts.ReportPDF
	return s.receipts.storePDF(ctx, userID, uuid.New(), report.Filename, func() ([]byte, error) {
		return renderer.RenderReport(report)
	}, fmt.Sprintf("Data berhasil diekspor! Total: %d transaksi", report.Summary.Count))
}

// calendarDay drops the time of day, keeping the calendar date as written.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
