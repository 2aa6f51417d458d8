package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	"github.com/timbangcerdas/timbang-api/internal/domain/repository"
	"github.com/timbangcerdas/timbang-api/internal/infrastructure/render"
	"github.com/timbangcerdas/timbang-api/pkg/apperror"
	"github.com/timbangcerdas/timbang-api/pkg/formatter"
	"github.com/timbangcerdas/timbang-api/pkg/printer"
	"github.com/timbangcerdas/timbang-api/pkg/storage"
)

// Default output timeouts.
const (
	DefaultPrintTimeout = 15 * time.Second
	DefaultPDFTimeout   = 30 * time.Second
)

const mimePDF = "application/pdf"

// errTimedOut marks an output call that did not finish in time. The call
// itself keeps running; only the wait is abandoned.
var errTimedOut = errors.New("output timed out")

// OutputState is the progress of one print or export action.
type OutputState string

const (
	StateIdle       OutputState = "idle"
	StateInProgress OutputState = "in_progress"
	StateSuccess    OutputState = "success"
	StateFailed     OutputState = "failed"
)

// OutputResult reports how a print or export action ended.
type OutputResult struct {
	State     OutputState `json:"state"`
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	URI       string      `json:"uri,omitempty"`
	Filename  string      `json:"filename,omitempty"`
	MimeType  string      `json:"mime_type,omitempty"`
	SizeBytes int         `json:"size_bytes,omitempty"`
}

func (r *OutputResult) start() {
	r.State = StateInProgress
}

func (r *OutputResult) succeed(message string) {
	r.State = StateSuccess
	r.Success = true
	r.Message = message
}

// fail records the failure and returns it as an error.
func (r *OutputResult) fail(base *apperror.AppError, cause error) error {
	r.State = StateFailed
	r.Success = false
	r.Message = base.Message
	return apperror.Wrap(base, cause)
}

// FileSink stores rendered files and reports whether they can be shared.
type FileSink interface {
	Available() bool
	Save(owner, name string, data []byte) (string, error)
}

// ReceiptOptions tunes a ReceiptService. Zero values use the defaults.
type ReceiptOptions struct {
	PrinterType  string
	PrintTimeout time.Duration
	PDFTimeout   time.Duration
	Location     *time.Location

	// Renderers used for the printer and PDF outputs.
	ESCPOS    render.Renderer[[]byte]
	PDF       render.Renderer[[]byte]
	ReportPDF render.ReportRenderer[[]byte]
}

// ReceiptService builds receipt documents and hands them to renderers and sinks.
type ReceiptService struct {
	txnRepo  repository.TransactionRepository
	settings *SettingsService
	printer  printer.Printer
	files    FileSink
	opts     ReceiptOptions
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	txnRepo repository.TransactionRepository,
	settings *SettingsService,
	p printer.Printer,
	files FileSink,
	opts ReceiptOptions,
) *ReceiptService {
	if p == nil {
		p = printer.NewNullPrinter()
	}
	if opts.PrintTimeout <= 0 {
		opts.PrintTimeout = DefaultPrintTimeout
	}
	if opts.PDFTimeout <= 0 {
		opts.PDFTimeout = DefaultPDFTimeout
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.ESCPOS == nil {
		opts.ESCPOS = render.ESCPOSRenderer{}
	}
	if opts.PDF == nil {
		opts.PDF = render.PDFRenderer{}
	}
	if opts.ReportPDF == nil {
		opts.ReportPDF = render.ReportPDFRenderer{}
	}
	return &ReceiptService{
		txnRepo:  txnRepo,
		settings: settings,
		printer:  p,
		files:    files,
		opts:     opts,
	}
}

// Document loads a transaction and the user's settings and builds its receipt.
func (s *ReceiptService) Document(ctx context.Context, userID, txnID uuid.UUID) (*entity.ReceiptDocument, error) {
	txn, err := s.txnRepo.GetByID(ctx, userID, txnID)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrStorage, err)
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaksi")
	}

	settings, err := s.settings.GetReceiptSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	return BuildReceiptDocument(txn, settings, s.opts.Location)
}

// ReceiptPreview is a receipt laid out for the app together with its document.
type ReceiptPreview struct {
	Document *entity.ReceiptDocument `json:"document"`
	View     *render.ScreenView      `json:"view"`
}

// Preview renders the receipt for display. preview selects the full screen
// sizes over the compact inline ones.
func (s *ReceiptService) Preview(ctx context.Context, userID, txnID uuid.UUID, preview bool) (*ReceiptPreview, error) {
	doc, err := s.Document(ctx, userID, txnID)
	if err != nil {
		return nil, err
	}
	view, err := render.ScreenRenderer{Preview: preview}.Render(doc)
	if err != nil {
		return nil, err
	}
	return &ReceiptPreview{Document: doc, View: view}, nil
}

// Markup renders the receipt as thermal-width HTML for the client's OS print dialog.
func (s *ReceiptService) Markup(ctx context.Context, userID, txnID uuid.UUID) (*render.Markup, error) {
	doc, err := s.Document(ctx, userID, txnID)
	if err != nil {
		return nil, err
	}
	return render.MarkupRenderer{}.Render(doc)
}

// Text renders the receipt as fixed-width plain text.
func (s *ReceiptService) Text(ctx context.Context, userID, txnID uuid.UUID) (string, error) {
	doc, err := s.Document(ctx, userID, txnID)
	if err != nil {
		return "", err
	}
	return render.TextRenderer{}.Render(doc)
}

// Print sends the receipt to the configured thermal printer. The result is
// returned on failure too; the error carries the same message.
func (s *ReceiptService) Print(ctx context.Context, userID, txnID uuid.UUID) (*OutputResult, error) {
	doc, err := s.Document(ctx, userID, txnID)
	if err != nil {
		return nil, err
	}
	return s.printDocument(ctx, doc)
}

func (s *ReceiptService) printDocument(ctx context.Context, doc *entity.ReceiptDocument) (*OutputResult, error) {
	result := &OutputResult{State: StateIdle}
	if !s.printerConfigured() {
		return result, result.fail(apperror.ErrPrintUnavailable, printer.ErrNotConfigured)
	}

	result.start()
	data, err := s.opts.ESCPOS.Render(doc)
	if err != nil {
		return result, result.fail(apperror.ErrPrintFailed, err)
	}

	_, err = raceTimeout(ctx, s.opts.PrintTimeout, func() (struct{}, error) {
		return struct{}{}, s.printer.Print(data)
	})
	switch {
	case errors.Is(err, errTimedOut):
		log.Printf("Print timed out after %s (transaction %s)", s.opts.PrintTimeout, doc.TransactionID)
		return result, result.fail(apperror.ErrPrintTimeout, err)
	case errors.Is(err, printer.ErrNotConfigured):
		return result, result.fail(apperror.ErrPrintUnavailable, err)
	case err != nil:
		log.Printf("Printer error (transaction %s): %v", doc.TransactionID, err)
		return result, result.fail(apperror.ErrPrintFailed, err)
	}

	result.succeed("Struk berhasil dikirim ke printer")
	return result, nil
}

// ExportPDF renders the receipt as a PDF and stores it for download and
// sharing. An empty filename uses the receipt's default name.
func (s *ReceiptService) ExportPDF(ctx context.Context, userID, txnID uuid.UUID, filename string) (*OutputResult, error) {
	doc, err := s.Document(ctx, userID, txnID)
	if err != nil {
		return nil, err
	}

	name := formatter.PDFFilename(filename)
	if name == "" {
		name = doc.Filename
	}

	return s.storePDF(ctx, userID, doc.TransactionID, name, func() ([]byte, error) {
		return s.opts.PDF.Render(doc)
	}, "PDF berhasil dibuat")
}

// storePDF races render against the PDF timeout and saves the bytes under a
// key unique to docID. name stays the download name.
func (s *ReceiptService) storePDF(ctx context.Context, userID, docID uuid.UUID, name string, renderFn func() ([]byte, error), successMessage string) (*OutputResult, error) {
	result := &OutputResult{State: StateIdle, Filename: name, MimeType: mimePDF}
	result.start()

	data, err := raceTimeout(ctx, s.opts.PDFTimeout, renderFn)
	switch {
	case errors.Is(err, errTimedOut):
		log.Printf("PDF generation timed out after %s (%s)", s.opts.PDFTimeout, name)
		return result, result.fail(apperror.ErrPDFTimeout, err)
	case err != nil:
		log.Printf("PDF generation error (%s): %v", name, err)
		return result, result.fail(apperror.ErrPDFFailed, err)
	}

	if s.files == nil || !s.files.Available() {
		return result, result.fail(apperror.ErrShareUnavailable, nil)
	}

	uri, err := s.files.Save(userID.String(), storage.Key(docID, name), data)
	if err != nil {
		log.Printf("Failed to store %s: %v", name, err)
		return result, result.fail(apperror.ErrPDFFailed, err)
	}

	result.URI = uri
	result.SizeBytes = len(data)
	result.succeed(successMessage)
	return result, nil
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Shareable  bool   `json:"shareable"`
}

// GetPrinterStatus returns printer connection status and whether generated
// files can be shared.
func (s *ReceiptService) GetPrinterStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerConfigured(),
		Connected:  s.printer.IsConnected(),
		Type:       s.opts.PrinterType,
		Shareable:  s.files != nil && s.files.Available(),
	}
}

// TestPrint prints a sample receipt using the user's settings.
func (s *ReceiptService) TestPrint(ctx context.Context, userID uuid.UUID) (*OutputResult, error) {
	settings, err := s.settings.GetReceiptSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	doc, err := BuildReceiptDocument(sampleTransaction(userID), settings, s.opts.Location)
	if err != nil {
		return nil, err
	}
	return s.printDocument(ctx, doc)
}

func (s *ReceiptService) printerConfigured() bool {
	return s.opts.PrinterType != "" && s.opts.PrinterType != "none"
}

func sampleTransaction(userID uuid.UUID) *entity.Transaction {
	now := time.Now()
	txn := &entity.Transaction{
		ID:               uuid.New(),
		UserID:           userID,
		TransactionDate:  now,
		ItemType:         "TEST PRINT",
		GrossWeightKg:    1500,
		TareWeightKg:     1000,
		DeductionPercent: 3,
		PricePerKg:       1000,
		AdminName:        "Admin",
		CustomerName:     "Customer",
		CreatedAt:        now,
	}
	txn.Recalculate()
	return txn
}

// raceTimeout runs fn and waits for it until timeout or ctx ends. fn is not
// cancelled when the wait is abandoned.
func raceTimeout[T any](ctx context.Context, timeout time.Duration, fn func() (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := fn()
		done <- outcome{value: v, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var zero T
	select {
	case o := <-done:
		return o.value, o.err
	case <-timer.C:
		return zero, errTimedOut
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
