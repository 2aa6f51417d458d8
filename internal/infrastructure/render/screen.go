package render

import "github.com/timbangcerdas/timbang-api/internal/domain/entity"

// Alignment of a screen row.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
)

// ScreenRow is one styled row of an on-screen receipt.
type ScreenRow struct {
	Kind      entity.ReceiptLineKind `json:"kind"`
	Label     string                 `json:"label,omitempty"`
	Value     string                 `json:"value,omitempty"`
	Text      string                 `json:"text,omitempty"`
	Separator entity.SeparatorStyle  `json:"separator,omitempty"`
	FontSize  int                    `json:"font_size"`
	Bold      bool                   `json:"bold"`
	Align     string                 `json:"align"`
}

// ScreenView is a receipt laid out for display in the app.
type ScreenView struct {
	Preview bool        `json:"preview"`
	Rows    []ScreenRow `json:"rows"`
}

// ScreenRenderer maps document lines to styled rows. Preview selects the
// larger sizes used by the full screen preview; otherwise the compact sizes
// of the inline receipt widget are used.
type ScreenRenderer struct {
	Preview bool
}

type screenSizes struct {
	body, title, total int
}

func (r ScreenRenderer) sizes() screenSizes {
	if r.Preview {
		return screenSizes{body: 13, title: 16, total: 14}
	}
	return screenSizes{body: 11, title: 14, total: 12}
}

func (r ScreenRenderer) Render(doc *entity.ReceiptDocument) (*ScreenView, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	sz := r.sizes()
	lines := doc.VisibleLines()
	view := &ScreenView{Preview: r.Preview, Rows: make([]ScreenRow, 0, len(lines))}

	for _, l := range lines {
		row := ScreenRow{Kind: l.Kind, FontSize: sz.body, Align: AlignLeft}
		switch l.Kind {
		case entity.LineSeparator:
			row.Separator = l.Separator
		case entity.LineText:
			row.Text = l.Text
			row.Align = AlignCenter
			row.Bold = l.Emphasis
			if l.Emphasis && l.Section == entity.SectionHeader {
				row.FontSize = sz.title
			}
		default:
			row.Label = l.Label
			row.Value = l.Value
			if l.Emphasis {
				row.Bold = true
				row.FontSize = sz.total
			}
		}
		view.Rows = append(view.Rows, row)
	}
	return view, nil
}
