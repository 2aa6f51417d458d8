package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
)

// Markup is a receipt as a self-contained HTML page sized for thermal paper.
type Markup struct {
	HTML    string `json:"html"`
	WidthPx int    `json:"width_px"`
}

// MarkupRenderer writes a receipt as fixed-width HTML. The print and PDF
// paths both hand this page to the client, so it is the one layout users see
// on paper. WidthPx of zero uses the width of the document's paper roll.
type MarkupRenderer struct {
	WidthPx int
}

type markupPage struct {
	WidthPx int
	Lines   []entity.ReceiptLine
}

var receiptTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"isSeparator": func(l entity.ReceiptLine) bool { return l.Kind == entity.LineSeparator },
	"isText":      func(l entity.ReceiptLine) bool { return l.Kind == entity.LineText },
}).Parse(receiptHTMLTemplate))

func (r MarkupRenderer) Render(doc *entity.ReceiptDocument) (*Markup, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	width := r.WidthPx
	if width <= 0 {
		width = ContentWidthPx(doc.PaperWidthMM)
	}

	var buf bytes.Buffer
	page := markupPage{WidthPx: width, Lines: doc.VisibleLines()}
	if err := receiptTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render: execute receipt template: %w", err)
	}
	return &Markup{HTML: buf.String(), WidthPx: width}, nil
}

const receiptHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0, maximum-scale=1.0, user-scalable=no">
<style>
* { margin: 0; padding: 0; font-family: 'Courier New', Courier, monospace; font-size: 11px; }
body { width: {{.WidthPx}}px; max-width: {{.WidthPx}}px; background: white; color: black; }
.center { text-align: center; }
.bold { font-weight: bold; }
.sep-thin { border: none; border-top: 1px dashed black; margin: 3px 0; }
.sep-thick { border: none; border-top: 3px double black; margin: 3px 0; }
table { width: 100%; border-collapse: collapse; }
td { padding: 0 1px; vertical-align: top; }
td.colon { width: 6px; }
tr.total td { font-weight: bold; font-size: 12px; }
</style>
</head>
<body>
{{- range .Lines}}
{{- if isSeparator .}}
<hr class="sep-{{.Separator}}">
{{- else if isText .}}
<div class="center{{if .Emphasis}} bold{{end}}">{{.Text}}</div>
{{- else}}
<table><tr{{if .Emphasis}} class="total"{{end}}><td>{{.Label}}</td><td class="colon">:</td><td>{{.Value}}</td></tr></table>
{{- end}}
{{- end}}
</body>
</html>
`
