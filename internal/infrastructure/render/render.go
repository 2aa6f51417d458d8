// Package render turns a ReceiptDocument or ReportDocument into the formats
// clients consume: screen rows, HTML, plain text, ESC/POS and PDF.
//
// Renderers only place strings. Every value is formatted once when the
// document is built, so all outputs show the same labels and values in the
// same order.
package render

import (
	"errors"

	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
)

// ErrNilDocument is returned when a renderer is handed no document.
var ErrNilDocument = errors.New("render: nil document")

// Renderer turns a receipt document into an output of type T.
type Renderer[T any] interface {
	Render(doc *entity.ReceiptDocument) (T, error)
}

// ReportRenderer turns a transaction report into an output of type T.
type ReportRenderer[T any] interface {
	RenderReport(report *entity.ReportDocument) (T, error)
}

// ContentWidthPx is the printable width of a paper roll in device pixels.
func ContentWidthPx(paperWidthMM int) int {
	if paperWidthMM >= 80 {
		return 182
	}
	return 132
}
