package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
)

// ReportMarkupRenderer writes a transaction report as a full page HTML table.
type ReportMarkupRenderer struct{}

var reportTemplate = template.Must(template.New("report").Parse(reportHTMLTemplate))

func (ReportMarkupRenderer) RenderReport(report *entity.ReportDocument) (string, error) {
	if report == nil {
		return "", ErrNilDocument
	}
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, report); err != nil {
		return "", fmt.Errorf("render: execute report template: %w", err)
	}
	return buf.String(), nil
}

const reportHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; font-size: 12px; color: #333; }
.container { padding: 20px; }
h1 { margin: 0; }
.header { text-align: center; margin-bottom: 20px; border-bottom: 1px solid #eee; padding-bottom: 10px; }
.summary { display: flex; justify-content: space-around; margin-bottom: 20px; border: 1px solid #eee; border-radius: 8px; padding: 15px; }
.summary div { text-align: center; }
.summary h3 { font-size: 14px; color: #666; margin: 0 0 5px; }
.summary p { font-size: 16px; font-weight: bold; margin: 0; }
table { width: 100%; border-collapse: collapse; font-size: 11px; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f7f7f7; }
tr:nth-child(even) { background-color: #f9f9f9; }
.num { text-align: right; }
.footer { text-align: center; margin-top: 20px; font-size: 10px; color: #999; }
</style>
</head>
<body>
<div class="container">
<div class="header">
<h1>{{.Title}}</h1>
<p>Periode: {{.Period}}</p>
</div>
<div class="summary">
<div><h3>Total Transaksi</h3><p>{{.Count}}</p></div>
<div><h3>Total Berat</h3><p>{{.TotalWeight}}</p></div>
<div><h3>Total Pendapatan</h3><p>{{.TotalAmount}}</p></div>
</div>
<table>
<thead><tr>
{{- range $i, $c := .Columns}}<th{{if ge $i 3}} class="num"{{end}}>{{$c}}</th>{{end -}}
</tr></thead>
<tbody>
{{- range .Rows}}
<tr><td>{{.Date}}</td><td>{{.Customer}}</td><td>{{.ItemType}}</td><td class="num">{{.Weight}}</td><td class="num">{{.PricePerKg}}</td><td class="num">{{.Total}}</td></tr>
{{- end}}
</tbody>
</table>
<div class="footer">
<p>Dicetak pada: {{.PrintedAt}}</p>
<p>{{.Footer}}</p>
</div>
</div>
</body>
</html>
`
