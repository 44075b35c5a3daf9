package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders the estimate export as a landscape A4 PDF using
// maroto/v2 and returns the raw bytes.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	addTableHeader(m)
	for _, r := range data.Rows {
		addTableRow(m, r, data.Currency)
	}
	addSummary(m, data)
	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

var mutedText = &props.Color{Red: 80, Green: 80, Blue: 80}

// addHeader adds the title, client, status and dates.
func addHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Client: %s", data.Client), props.Text{
					Size:  9,
					Align: align.Left,
					Color: mutedText,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Status: %s", data.Status), props.Text{
					Size:  9,
					Align: align.Right,
					Color: mutedText,
				}),
			),
		),
	)

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Created: %s    Modified: %s", data.CreatedDate, data.UpdatedDate), props.Text{
					Size:  8,
					Align: align.Right,
					Color: mutedText,
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

// addTableHeader adds the column header row.
func addTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Item", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Price", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Margin %", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)
}

// addTableRow adds a section or item row. Sections are bold on a grey fill
// and carry only their subtotal.
func addTableRow(m core.Maroto, r ExportRow, currency string) {
	baseText := props.Text{Size: 7, Align: align.Center}
	if r.Level == 0 {
		baseText.Style = fontstyle.Bold
		baseText.Size = 8
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	if r.Level == 0 {
		cell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
		m.AddRows(
			row.New(7).Add(
				col.New(1).Add(text.New(r.Index, baseText)).WithStyle(cell),
				col.New(9).Add(text.New(r.Title, leftText)).WithStyle(cell),
				col.New(2).Add(text.New(FormatMoney(r.Total, currency), rightText)).WithStyle(cell),
			),
		)
		return
	}

	label := "  " + r.Title
	if r.Description != "" {
		label += " - " + r.Description
	}

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(r.Index, baseText)),
			col.New(3).Add(text.New(label, leftText)),
			col.New(1).Add(text.New(r.Unit, baseText)),
			col.New(1).Add(text.New(FormatQuantity(r.Quantity), rightText)),
			col.New(2).Add(text.New(FormatMoney(r.Price, currency), rightText)),
			col.New(2).Add(text.New(r.Margin.String()+"%", rightText)),
			col.New(2).Add(text.New(FormatMoney(r.Total, currency), rightText)),
		),
	)
}

// addSummary adds the sub total, margin and grand total lines, then the
// grand total in words.
func addSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	style := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	lines := []struct {
		label string
		value string
	}{
		{"Sub Total", FormatMoney(data.SubTotal, data.Currency)},
		{"Total Margin", FormatMoney(data.TotalMargin, data.Currency)},
		{"Total Amount", FormatMoney(data.TotalAmount, data.Currency)},
	}
	for _, l := range lines {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(l.label, style)).WithStyle(summaryCell),
				col.New(4).Add(text.New(l.value, style)).WithStyle(summaryCell),
			),
		)
	}
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New(AmountInWords(data.TotalAmount, data.Currency), props.Text{
				Size:  8,
				Style: fontstyle.Italic,
				Align: align.Right,
				Top:   1.5,
			})),
		),
	)
}

func addFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Estimate %s for %s", data.Version, data.Project),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
