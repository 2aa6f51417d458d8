package render

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/linestyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
)

// Row heights in millimetres on the receipt page.
const (
	pdfMargin       = 3.0
	pdfTextRow      = 4.5
	pdfTitleRow     = 5.5
	pdfPairRow      = 4.0
	pdfSeparatorRow = 3.0
	pdfFontSize     = 7.0
	pdfTitleSize    = 8.5
)

// PDFRenderer writes a receipt as a PDF page as wide as the paper roll and
// as long as the receipt.
type PDFRenderer struct {
	PaperWidthMM float64
}

func (r PDFRenderer) Render(doc *entity.ReceiptDocument) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	width := r.PaperWidthMM
	if width <= 0 {
		width = float64(doc.PaperWidthMM)
	}
	if width <= 0 {
		width = 58
	}

	lines := doc.VisibleLines()
	cfg := config.NewBuilder().
		WithDimensions(width, receiptHeightMM(lines)).
		WithLeftMargin(pdfMargin).
		WithTopMargin(pdfMargin).
		WithRightMargin(pdfMargin).
		WithDefaultFont(&props.Font{Family: fontfamily.Courier, Size: pdfFontSize}).
		Build()

	m := maroto.New(cfg)
	for _, l := range lines {
		addReceiptLine(m, l)
	}

	pdfDoc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render: generate receipt pdf: %w", err)
	}
	return pdfDoc.GetBytes(), nil
}

func receiptHeightMM(lines []entity.ReceiptLine) float64 {
	h := 2 * pdfMargin
	for _, l := range lines {
		switch {
		case l.Kind == entity.LineSeparator:
			h += pdfSeparatorRow
		case l.Kind == entity.LineText && l.Emphasis:
			h += pdfTitleRow
		case l.Kind == entity.LineText:
			h += pdfTextRow
		default:
			h += pdfPairRow
		}
	}
	return h + pdfTextRow
}

func addReceiptLine(m core.Maroto, l entity.ReceiptLine) {
	switch l.Kind {
	case entity.LineSeparator:
		style := props.Line{Style: linestyle.Dashed, Thickness: 0.2}
		if l.Separator == entity.SeparatorThick {
			style = props.Line{Style: linestyle.Solid, Thickness: 0.6}
		}
		m.AddRow(pdfSeparatorRow, line.NewCol(12, style))
	case entity.LineText:
		p := props.Text{Align: align.Center, Size: pdfFontSize}
		height := pdfTextRow
		if l.Emphasis {
			p.Style = fontstyle.Bold
			p.Size = pdfTitleSize
			height = pdfTitleRow
		}
		m.AddRow(height, col.New(12).Add(text.New(l.Text, p)))
	default:
		p := props.Text{Align: align.Left, Size: pdfFontSize}
		if l.Emphasis {
			p.Style = fontstyle.Bold
		}
		m.AddRow(pdfPairRow,
			col.New(4).Add(text.New(l.Label, p)),
			col.New(1).Add(text.New(":", p)),
			col.New(7).Add(text.New(l.Value, p)),
		)
	}
}
