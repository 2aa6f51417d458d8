package render

import (
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	"github.com/timbangcerdas/timbang-api/pkg/printer"
)

// ESCPOSRenderer produces the raw byte stream sent to a thermal printer.
type ESCPOSRenderer struct {
	Columns int
}

func (r ESCPOSRenderer) Render(doc *entity.ReceiptDocument) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	width := r.Columns
	if width <= 0 {
		width = printer.ColumnsForPaper(doc.PaperWidthMM)
	}

	p := printer.NewDocument(width)
	for _, l := range doc.VisibleLines() {
		switch l.Kind {
		case entity.LineSeparator:
			p.Separator(separatorRune(l.Separator))
		case entity.LineText:
			p.SetAlign(printer.AlignCenter)
			if l.Emphasis {
				p.SetBold(true).Text(l.Text).SetBold(false)
			} else {
				p.Text(l.Text)
			}
			p.SetAlign(printer.AlignLeft)
		default:
			if l.Emphasis {
				p.SetBold(true).SetFontSize(printer.FontTall).
					KeyValue(l.Label, l.Value).
					SetFontSize(printer.FontNormal).SetBold(false)
			} else {
				p.KeyValue(l.Label, l.Value)
			}
		}
	}

	p.FeedLines(3).PartialCut()
	return p.Bytes(), nil
}
