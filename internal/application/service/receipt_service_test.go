package service

import (
	"bytes"
	"context"
	"errors"
	"path"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	"github.com/timbangcerdas/timbang-api/pkg/apperror"
	"github.com/timbangcerdas/timbang-api/pkg/printer"
	"github.com/timbangcerdas/timbang-api/pkg/storage"
)

type fakePrinter struct {
	mu    sync.Mutex
	jobs  [][]byte
	delay time.Duration
	err   error
}

func (p *fakePrinter) Print(data []byte) error {
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}

func (p *fakePrinter) Close() error      { return nil }
func (p *fakePrinter) IsConnected() bool { return p.err == nil }

type fakeSink struct {
	available bool
	saved     map[string][]byte
}

func (s *fakeSink) Available() bool { return s.available }

func (s *fakeSink) Save(owner, name string, data []byte) (string, error) {
	if s.saved == nil {
		s.saved = map[string][]byte{}
	}
	s.saved[owner+"/"+name] = data
	return "/api/v1/files/" + name, nil
}

type stubPDF struct {
	delay time.Duration
	err   error
}

func (r stubPDF) Render(*entity.ReceiptDocument) ([]byte, error) {
	time.Sleep(r.delay)
	return []byte("%PDF-stub"), r.err
}

type receiptFixture struct {
	svc     *ReceiptService
	repo    *fakeTxnRepo
	printer *fakePrinter
	sink    *fakeSink
	userID  uuid.UUID
	txn     *entity.Transaction
}

func newReceiptFixture(t *testing.T, opts ReceiptOptions) *receiptFixture {
	t.Helper()
	userID := uuid.New()
	txn := sampleWeighing(userID)
	repo := &fakeTxnRepo{txns: []entity.Transaction{*txn}}
	p := &fakePrinter{}
	sink := &fakeSink{available: true}
	if opts.PrinterType == "" {
		opts.PrinterType = "network"
	}
	opts.Location = time.UTC
	svc := NewReceiptService(repo, NewSettingsService(newFakeSettingsRepo()), p, sink, opts)
	return &receiptFixture{svc: svc, repo: repo, printer: p, sink: sink, userID: userID, txn: txn}
}

// stored returns the bytes saved for result.
func (f *receiptFixture) stored(result *OutputResult) []byte {
	return f.sink.saved[f.userID.String()+"/"+path.Base(result.URI)]
}

func TestPrintSendsESCPOS(t *testing.T) {
	f := newReceiptFixture(t, ReceiptOptions{})

	result, err := f.svc.Print(context.Background(), f.userID, f.txn.ID)
	if err != nil {
		t.Fatalf("Print() error: %v", err)
	}
	if result.State != StateSuccess || !result.Success {
		t.Errorf("result = %+v", result)
	}
	if len(f.printer.jobs) != 1 {
		t.Fatalf("printer received %d jobs", len(f.printer.jobs))
	}
	job := f.printer.jobs[0]
	if !bytes.HasPrefix(job, []byte{printer.ESC, '@'}) {
		t.Error("job does not start with ESC @")
	}
	if !bytes.Contains(job, []byte("Rp 485.000")) {
		t.Error("job does not contain the grand total")
	}
}

func TestPrintWithoutPrinter(t *testing.T) {
	f := newReceiptFixture(t, ReceiptOptions{PrinterType: "none"})

	result, err := f.svc.Print(context.Background(), f.userID, f.txn.ID)
	if !errors.Is(err, apperror.ErrPrintUnavailable) {
		t.Fatalf("error = %v, want ErrPrintUnavailable", err)
	}
	if result.State != StateFailed || result.Message != "Pencetakan tidak tersedia di perangkat ini." {
		t.Errorf("result = %+v", result)
	}
	if len(f.printer.jobs) != 0 {
		t.Error("job dispatched without a configured printer")
	}
}

func TestPrintTimeout(t *testing.T) {
	f := newReceiptFixture(t, ReceiptOptions{PrintTimeout: 20 * time.Millisecond})
	f.printer.delay = 200 * time.Millisecond

	start := time.Now()
	result, err := f.svc.Print(context.Background(), f.userID, f.txn.ID)
	if !errors.Is(err, apperror.ErrPrintTimeout) {
		t.Fatalf("error = %v, want ErrPrintTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("Print() waited %s for a slow printer", elapsed)
	}
	if result.Message != "Proses pencetakan timeout. Silakan coba lagi." {
		t.Errorf("message = %q", result.Message)
	}
}

func TestPrintFailure(t *testing.T) {
	f := newReceiptFixture(t, ReceiptOptions{})
	f.printer.err = errors.New("broken pipe")

	result, err := f.svc.Print(context.Background(), f.userID, f.txn.ID)
	if !errors.Is(err, apperror.ErrPrintFailed) {
		t.Fatalf("error = %v, want ErrPrintFailed", err)
	}
	if result.Success {
		t.Error("failed print reported success")
	}
}

func TestPrintUnknownTransaction(t *testing.T) {
	f := newReceiptFixture(t, ReceiptOptions{})
	if _, err := f.svc.Print(context.Background(), uuid.New(), f.txn.ID); err == nil {
		t.Error("another user's transaction was printed")
	}
}

func TestExportPDF(t *testing.T) {
	f := newReceiptFixture(t, ReceiptOptions{PDF: stubPDF{}})

	result, err := f.svc.ExportPDF(context.Background(), f.userID, f.txn.ID, "")
	if err != nil {
		t.Fatalf("ExportPDF() error: %v", err)
	}
	if result.Filename != "Receipt_Budi_Santoso_2024-01-15.pdf" {
		t.Errorf("Filename = %q", result.Filename)
	}
	wantURI := "/api/v1/files/" + storage.Key(f.txn.ID, "Receipt_Budi_Santoso_2024-01-15.pdf")
	if result.URI != wantURI || result.MimeType != "application/pdf" {
		t.Errorf("result = %+v", result)
	}
	if f.stored(result) == nil {
		t.Error("PDF not stored under the owner")
	}
}

func TestExportPDFSameNameKeepsBothFiles(t *testing.T) {
	f := newReceiptFixture(t, ReceiptOptions{})
	second := *f.txn
	second.ID = uuid.New()
	second.GrossWeightKg = 2000
	second.Recalculate()
	f.repo.txns = append(f.repo.txns, second)

	first, err := f.svc.ExportPDF(context.Background(), f.userID, f.txn.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	firstBytes := append([]byte(nil), f.stored(first)...)
	other, err := f.svc.ExportPDF(context.Background(), f.userID, second.ID, "")
	if err != nil {
		t.Fatal(err)
	}

	if first.Filename != other.Filename {
		t.Fatalf("filenames differ: %q, %q", first.Filename, other.Filename)
	}
	if first.URI == other.URI {
		t.Fatalf("both receipts stored at %s", first.URI)
	}
	if !bytes.Equal(f.stored(first), firstBytes) {
		t.Error("first receipt was overwritten")
	}
	if bytes.Equal(f.stored(first), f.stored(other)) {
		t.Error("receipts for different weighings have the same content")
	}
}

func TestExportPDFCustomFilename(t *testing.T) {
	f := newReceiptFixture(t, ReceiptOptions{PDF: stubPDF{}})
	result, err := f.svc.ExportPDF(context.Background(), f.userID, f.txn.ID, "struk hari ini")
	if err != nil {
		t.Fatal(err)
	}
	if result.Filename != "struk_hari_ini.pdf" {
		t.Errorf("Filename = %q", result.Filename)
	}
}

func TestExportPDFFailures(t *testing.T) {
	tests := []struct {
		name      string
		pdf       stubPDF
		available bool
		want      *apperror.AppError
	}{
		{"timeout", stubPDF{delay: 200 * time.Millisecond}, true, apperror.ErrPDFTimeout},
		{"render error", stubPDF{err: errors.New("font missing")}, true, apperror.ErrPDFFailed},
		{"sharing unavailable", stubPDF{}, false, apperror.ErrShareUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReceiptFixture(t, ReceiptOptions{PDF: tt.pdf, PDFTimeout: 20 * time.Millisecond})
			f.sink.available = tt.available

			result, err := f.svc.ExportPDF(context.Background(), f.userID, f.txn.ID, "")
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if result.State != StateFailed || result.Message != tt.want.Message {
				t.Errorf("result = %+v", result)
			}
			if len(f.sink.saved) != 0 {
				t.Error("file stored after a failure")
			}
		})
	}
}

func TestExportPDFRendersRealPDF(t *testing.T) {
	f := newReceiptFixture(t, ReceiptOptions{})
	result, err := f.svc.ExportPDF(context.Background(), f.userID, f.txn.ID, "")
	if err != nil {
		t.Fatalf("ExportPDF() error: %v", err)
	}
	data := f.stored(result)
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("stored file is not a PDF: %q", data[:min(len(data), 8)])
	}
}

func TestPreviewAndMarkupShareTheDocument(t *testing.T) {
	f := newReceiptFixture(t, ReceiptOptions{})
	ctx := context.Background()

	preview, err := f.svc.Preview(ctx, f.userID, f.txn.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	markup, err := f.svc.Markup(ctx, f.userID, f.txn.ID)
	if err != nil {
		t.Fatal(err)
	}
	text, err := f.svc.Text(ctx, f.userID, f.txn.ID)
	if err != nil {
		t.Fatal(err)
	}

	for _, pair := range preview.Document.Pairs() {
		if !strings.Contains(markup.HTML, pair.Value) {
			t.Errorf("markup is missing %q", pair.Value)
		}
		if !strings.Contains(text, pair.Value) {
			t.Errorf("text is missing %q", pair.Value)
		}
	}
	if markup.WidthPx != 132 {
		t.Errorf("WidthPx = %d", markup.WidthPx)
	}
}

func TestPrinterStatusAndTestPrint(t *testing.T) {
	f := newReceiptFixture(t, ReceiptOptions{})

	status := f.svc.GetPrinterStatus()
	if !status.Configured || !status.Connected || status.Type != "network" || !status.Shareable {
		t.Errorf("status = %+v", status)
	}

	result, err := f.svc.TestPrint(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("TestPrint() error: %v", err)
	}
	if !result.Success || len(f.printer.jobs) != 1 {
		t.Errorf("result = %+v, jobs = %d", result, len(f.printer.jobs))
	}
	if !bytes.Contains(f.printer.jobs[0], []byte("TEST PRINT")) {
		t.Error("test page does not name itself")
	}
}
