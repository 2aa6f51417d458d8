package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	"github.com/timbangcerdas/timbang-api/pkg/apperror"
	"github.com/timbangcerdas/timbang-api/pkg/formatter"
)

// Receipt labels, in print order.
const (
	LabelDate       = "Tanggal"
	LabelItem       = "Barang"
	LabelGross      = "Bruto"
	LabelTare       = "Tare"
	LabelNet        = "Netto"
	LabelPotPercent = "Pot (%)"
	LabelPotKg      = "Pot (Kg)"
	LabelBilled     = "Total"
	LabelPrice      = "Harga"
	LabelGrandTotal = "Jumlah Uang"
	LabelCustomer   = "Customer"
	LabelAdmin      = "Admin"
	LabelNotes      = "Catatan"
)

// ConstructionError reports a transaction or settings record that cannot be
// turned into a receipt.
type ConstructionError struct {
	Field  string
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("receipt: %s %s", e.Field, e.Reason)
}

// BuildReceiptDocument lays out one transaction with the given settings.
// Every value is formatted here; renderers only place the strings.
func BuildReceiptDocument(txn *entity.Transaction, settings *entity.ReceiptSettings, loc *time.Location) (*entity.ReceiptDocument, error) {
	if err := checkReceiptInputs(txn, settings); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.Local
	}

	opts := settings.FormatOptions()
	b := &receiptBuilder{}

	// Header
	b.separator(entity.SectionHeader, entity.SeparatorThick, true)
	b.text(entity.SectionHeader, settings.CompanyName, true)
	if settings.CompanyAddress != "" {
		b.text(entity.SectionHeader, settings.CompanyAddress, false)
	}
	if settings.CompanyPhone != "" {
		label := settings.PhoneLabel
		if label == "" {
			label = "HP"
		}
		b.text(entity.SectionHeader, label+": "+settings.CompanyPhone, false)
	}
	b.separator(entity.SectionHeader, entity.SeparatorThick, true)

	// Body
	b.pair(entity.SectionBody, LabelDate, formatter.DateTime(txn.TransactionDate, txn.CreatedAt, settings.DateFormat, settings.ShowTime, loc), false)
	b.pair(entity.SectionBody, LabelItem, txn.ItemType, false)
	b.pair(entity.SectionBody, LabelGross, formatter.Weight(txn.GrossWeightKg, opts), false)
	b.pair(entity.SectionBody, LabelTare, formatter.Weight(txn.TareWeightKg, opts), false)
	b.pair(entity.SectionBody, LabelNet, formatter.Weight(txn.NetWeightKg, opts), false)
	b.conditional(entity.SectionBody, LabelPotPercent, formatter.Percent(txn.DeductionPercent, opts), txn.DeductionPercent > 0)
	b.conditional(entity.SectionBody, LabelPotKg, formatter.Weight(txn.DeductionKg, opts), txn.DeductionKg > 0)
	b.pair(entity.SectionBody, LabelBilled, formatter.Weight(txn.BilledWeightKg, opts), false)
	b.pair(entity.SectionBody, LabelPrice, formatter.Currency(txn.PricePerKg, opts), false)
	b.pair(entity.SectionBody, LabelGrandTotal, formatter.Currency(txn.TotalPrice, opts), true)
	b.separator(entity.SectionBody, entity.SeparatorThin, true)

	// Identity
	showCustomer := settings.ShowCustomer && strings.TrimSpace(txn.CustomerName) != ""
	showAdmin := settings.ShowAdmin && strings.TrimSpace(txn.AdminName) != ""
	b.conditional(entity.SectionIdentity, LabelCustomer, txn.CustomerName, showCustomer)
	b.conditional(entity.SectionIdentity, LabelAdmin, txn.AdminName, showAdmin)
	b.separator(entity.SectionIdentity, entity.SeparatorThin, showCustomer || showAdmin)

	// Notes
	notes := strings.TrimSpace(txn.Notes)
	showNotes := settings.ShowNotes && notes != ""
	b.conditional(entity.SectionNotes, LabelNotes, notes, showNotes)
	b.separator(entity.SectionNotes, entity.SeparatorThin, showNotes)

	// Footer
	b.separator(entity.SectionFooter, entity.SeparatorThick, true)
	if settings.FooterText != "" {
		b.text(entity.SectionFooter, "~ "+settings.FooterText+" ~", true)
	}
	b.separator(entity.SectionFooter, entity.SeparatorThick, true)

	paper := settings.PaperWidthMM
	if paper <= 0 {
		paper = 58
	}

	return &entity.ReceiptDocument{
		TransactionID: txn.ID,
		Filename:      formatter.ReceiptFilename(txn.CustomerName, txn.TransactionDate),
		PaperWidthMM:  paper,
		Lines:         b.lines,
	}, nil
}

func checkReceiptInputs(txn *entity.Transaction, settings *entity.ReceiptSettings) error {
	var cerr *ConstructionError
	switch {
	case txn == nil:
		cerr = &ConstructionError{Field: "transaction", Reason: "is missing"}
	case settings == nil:
		cerr = &ConstructionError{Field: "settings", Reason: "are missing"}
	case txn.ID == uuid.Nil:
		cerr = &ConstructionError{Field: "transaction id", Reason: "is empty"}
	case txn.TransactionDate.IsZero():
		cerr = &ConstructionError{Field: "transaction date", Reason: "is empty"}
	case strings.TrimSpace(txn.ItemType) == "":
		cerr = &ConstructionError{Field: "item type", Reason: "is empty"}
	case strings.TrimSpace(settings.CompanyName) == "":
		cerr = &ConstructionError{Field: "company name", Reason: "is empty"}
	case strings.TrimSpace(settings.DateFormat) == "":
		cerr = &ConstructionError{Field: "date format", Reason: "is empty"}
	case settings.DecimalPlaces < 0 || settings.DecimalPlaces > 4:
		cerr = &ConstructionError{Field: "decimal places", Reason: "must be between 0 and 4"}
	}
	if cerr == nil {
		return nil
	}
	return apperror.NewConstructionError(apperror.ErrSettingsMissing.Message, cerr)
}

type receiptBuilder struct {
	lines []entity.ReceiptLine
}

func (b *receiptBuilder) pair(section entity.ReceiptSection, label, value string, emphasis bool) {
	b.lines = append(b.lines, entity.ReceiptLine{
		Kind: entity.LineKeyValue, Section: section, Label: label, Value: value, Emphasis: emphasis, Visible: true,
	})
}

func (b *receiptBuilder) conditional(section entity.ReceiptSection, label, value string, visible bool) {
	b.lines = append(b.lines, entity.ReceiptLine{
		Kind: entity.LineConditional, Section: section, Label: label, Value: value, Visible: visible,
	})
}

func (b *receiptBuilder) separator(section entity.ReceiptSection, style entity.SeparatorStyle, visible bool) {
	b.lines = append(b.lines, entity.ReceiptLine{
		Kind: entity.LineSeparator, Section: section, Separator: style, Visible: visible,
	})
}

func (b *receiptBuilder) text(section entity.ReceiptSection, text string, emphasis bool) {
	b.lines = append(b.lines, entity.ReceiptLine{
		Kind: entity.LineText, Section: section, Text: text, Emphasis: emphasis, Visible: true,
	})
}
