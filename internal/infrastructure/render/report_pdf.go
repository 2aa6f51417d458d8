package render

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/timbangcerdas/timbang-api/internal/domain/entity"
)

// reportColumns are the grid widths of the six report columns; they add up to 12.
var reportColumns = [6]int{2, 2, 2, 2, 2, 2}

// ReportPDFRenderer writes a transaction report on A4 pages.
type ReportPDFRenderer struct{}

func (ReportPDFRenderer) RenderReport(report *entity.ReportDocument) ([]byte, error) {
	if report == nil {
		return nil, ErrNilDocument
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithPageNumber().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)
	addReportHeader(m, report)
	addReportSummary(m, report)
	addReportTable(m, report)
	addReportFooter(m, report)

	pdfDoc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render: generate report pdf: %w", err)
	}
	return pdfDoc.GetBytes(), nil
}

func addReportHeader(m core.Maroto, report *entity.ReportDocument) {
	m.AddRow(10, col.New(12).Add(text.New(report.Title, props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Align: align.Center,
	})))
	m.AddRow(7, col.New(12).Add(text.New("Periode: "+report.Period, props.Text{
		Size:  10,
		Align: align.Center,
	})))
	m.AddRow(4, line.NewCol(12))
}

func addReportSummary(m core.Maroto, report *entity.ReportDocument) {
	label := props.Text{Size: 9, Align: align.Center}
	value := props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Center, Top: 5}

	m.AddRow(14,
		col.New(4).Add(text.New("Total Transaksi", label), text.New(report.Count, value)),
		col.New(4).Add(text.New("Total Berat", label), text.New(report.TotalWeight, value)),
		col.New(4).Add(text.New("Total Pendapatan", label), text.New(report.TotalAmount, value)),
	)
	m.AddRow(4, line.NewCol(12))
}

func addReportTable(m core.Maroto, report *entity.ReportDocument) {
	header := make([]core.Col, 0, len(reportColumns))
	for i, name := range report.Columns {
		if i >= len(reportColumns) {
			break
		}
		header = append(header, col.New(reportColumns[i]).Add(text.New(name, props.Text{
			Size:  9,
			Style: fontstyle.Bold,
			Align: columnAlign(i),
		})))
	}
	m.AddRow(7, header...)
	m.AddRow(2, line.NewCol(12))

	for _, row := range report.Rows {
		cells := row.Cells()
		cols := make([]core.Col, 0, len(cells))
		for i, cell := range cells {
			cols = append(cols, col.New(reportColumns[i]).Add(text.New(cell, props.Text{
				Size:  8,
				Align: columnAlign(i),
			})))
		}
		m.AddRow(6, cols...)
	}
	m.AddRow(2, line.NewCol(12))
}

func addReportFooter(m core.Maroto, report *entity.ReportDocument) {
	small := props.Text{Size: 8, Align: align.Center}
	m.AddRow(6, col.New(12).Add(text.New("Dicetak pada: "+report.PrintedAt, small)))
	m.AddRow(6, col.New(12).Add(text.New(report.Footer, small)))
}

// Weight, price and total are right aligned.
func columnAlign(i int) align.Type {
	if i >= 3 {
		return align.Right
	}
	return align.Left
}
