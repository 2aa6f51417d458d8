package render

import (
	"strings"

	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
	"github.com/timbangcerdas/timbang-api/pkg/printer"
)

// TextRenderer lays a receipt out as fixed-width plain text. Columns of zero
// uses the width of the document's paper roll.
type TextRenderer struct {
	Columns int
}

func (r TextRenderer) Render(doc *entity.ReceiptDocument) (string, error) {
	if doc == nil {
		return "", ErrNilDocument
	}
	width := r.Columns
	if width <= 0 {
		width = printer.ColumnsForPaper(doc.PaperWidthMM)
	}

	var b strings.Builder
	for _, l := range doc.VisibleLines() {
		switch l.Kind {
		case entity.LineSeparator:
			b.WriteString(strings.Repeat(string(separatorRune(l.Separator)), width))
		case entity.LineText:
			b.WriteString(printer.CenterLine(l.Text, width))
		default:
			b.WriteString(printer.KeyValueLine(l.Label, l.Value, width))
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func separatorRune(s entity.SeparatorStyle) rune {
	if s == entity.SeparatorThick {
		return '='
	}
	return '-'
}
