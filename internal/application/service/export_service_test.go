package service

import (
	"context"
	"errors"
	"net/http"
	"path"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	"github.com/timbangcerdas/timbang-api/pkg/apperror"
	"github.com/timbangcerdas/timbang-api/pkg/storage"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newExportFixture(t *testing.T) (*ExportService, *fakeTxnRepo, *fakeSink, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	repo := &fakeTxnRepo{}
	for i, d := range []int{10, 12, 15} {
		txn := sampleWeighing(userID)
		txn.TransactionDate = day(2024, 1, d)
		txn.CreatedAt = txn.TransactionDate.Add(time.Duration(i) * time.Hour)
		txn.PricePerKg = float64(1000 * (i + 1))
		txn.Recalculate()
		repo.txns = append(repo.txns, *txn)
	}
	// Another user's transaction inside the range.
	repo.txns = append(repo.txns, *sampleWeighing(uuid.New()))

	settings := NewSettingsService(newFakeSettingsRepo())
	sink := &fakeSink{available: true}
	receipts := NewReceiptService(repo, settings, nil, sink, ReceiptOptions{Location: time.UTC})
	svc := NewExportService(repo, settings, receipts, time.UTC)
	svc.now = func() time.Time { return time.Date(2024, 2, 1, 9, 5, 0, 0, time.UTC) }
	return svc, repo, sink, userID
}

func TestGetTransactionsInRange(t *testing.T) {
	svc, _, _, userID := newExportFixture(t)

	txns, err := svc.GetTransactionsInRange(context.Background(), userID, day(2024, 1, 11), day(2024, 1, 15))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, txn := range txns {
		got = append(got, txn.TransactionDate.Format("02"))
	}
	if want := []string{"15", "12"}; !reflect.DeepEqual(got, want) {
		t.Errorf("dates = %v, want %v (inclusive, newest first)", got, want)
	}
}

func TestGetTransactionsInRangeRejectsInvertedRange(t *testing.T) {
	svc, _, _, userID := newExportFixture(t)
	_, err := svc.GetTransactionsInRange(context.Background(), userID, day(2024, 1, 15), day(2024, 1, 10))
	if apperror.GetAppError(err).Code != http.StatusUnprocessableEntity {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestSummarize(t *testing.T) {
	txns := []entity.Transaction{
		{BilledWeightKg: 485, TotalPrice: 485000},
		{BilledWeightKg: 100.5, TotalPrice: 201000},
	}
	got := Summarize(txns)
	want := entity.ReportSummary{Count: 2, TotalWeightKg: 585.5, TotalRevenue: 686000}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
	if empty := Summarize(nil); empty != (entity.ReportSummary{}) {
		t.Errorf("Summarize(nil) = %+v", empty)
	}
}

func TestReport(t *testing.T) {
	svc, _, _, userID := newExportFixture(t)

	report, err := svc.Report(context.Background(), userID, day(2024, 1, 1), day(2024, 1, 31))
	if err != nil {
		t.Fatal(err)
	}
	if report.Title != "Laporan Transaksi" || report.Period != "01 Jan 2024 - 31 Jan 2024" {
		t.Errorf("header = %q / %q", report.Title, report.Period)
	}
	if report.Count != "3" || report.TotalWeight != "1.455 Kg" || report.TotalAmount != "Rp 2.910.000" {
		t.Errorf("summary = %s / %s / %s", report.Count, report.TotalWeight, report.TotalAmount)
	}
	wantFirst := entity.ReportRow{Date: "15 Jan 2024", Customer: "Budi Santoso", ItemType: "Sawit", Weight: "485 Kg", PricePerKg: "Rp 3.000", Total: "Rp 1.455.000"}
	if report.Rows[0] != wantFirst {
		t.Errorf("first row = %+v", report.Rows[0])
	}
	if report.PrintedAt != "01/02/2024 09:05" || report.Footer != "Timbang Cerdas" {
		t.Errorf("footer = %q / %q", report.PrintedAt, report.Footer)
	}
	if report.Filename != "Laporan_Transaksi_2024-01-01_2024-01-31.pdf" {
		t.Errorf("Filename = %q", report.Filename)
	}
}

func TestExportReportNothingToExport(t *testing.T) {
	svc, _, sink, userID := newExportFixture(t)

	result, err := svc.ExportReport(context.Background(), userID, day(2023, 1, 1), day(2023, 1, 31))
	if !errors.Is(err, apperror.ErrNothingToExport) {
		t.Fatalf("error = %v, want ErrNothingToExport", err)
	}
	if result != nil || len(sink.saved) != 0 {
		t.Error("a document was produced for an empty range")
	}
}

func TestExportReportStoresPDF(t *testing.T) {
	svc, _, sink, userID := newExportFixture(t)

	result, err := svc.ExportReport(context.Background(), userID, day(2024, 1, 1), day(2024, 1, 31))
	if err != nil {
		t.Fatalf("ExportReport() error: %v", err)
	}
	if !result.Success || result.MimeType != "application/pdf" {
		t.Errorf("result = %+v", result)
	}
	key := path.Base(result.URI)
	if storage.DisplayName(key) != result.Filename {
		t.Errorf("stored as %q, download name %q", key, result.Filename)
	}
	data := sink.saved[userID.String()+"/"+key]
	if len(data) < 4 || string(data[:4]) != "%PDF" {
		t.Error("stored report is not a PDF")
	}
}
