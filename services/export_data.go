package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"estimatetracker/estimates"
)

// ExportRow represents a single row in the estimate export (section or item).
type ExportRow struct {
	Level       int    // 0 = section, 1 = line item
	Index       string // "1", "1.1", "1.2" etc
	Title       string
	Description string
	Unit        string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Margin      decimal.Decimal // percent, item rows only
	Total       decimal.Decimal // item total, or section subtotal
}

// ExportData holds all data needed for export.
type ExportData struct {
	Title       string
	Version     string
	Project     string
	Client      string
	Status      string
	CreatedDate string
	UpdatedDate string
	Currency    string
	Rows        []ExportRow
	SubTotal    decimal.Decimal
	TotalMargin decimal.Decimal
	TotalAmount decimal.Decimal
}

// BuildExportData flattens doc into export rows. Numeric inputs go through
// the same zero policy as the totals so the sheet always adds up.
func BuildExportData(doc estimates.Document, currency string) ExportData {
	totals := estimates.DocumentTotals(doc)

	title := strings.TrimSpace(doc.Project)
	if title == "" {
		title = "Estimate"
	}
	if doc.Version != "" {
		title = fmt.Sprintf("%s (v%s)", title, doc.Version)
	}

	data := ExportData{
		Title:       title,
		Version:     doc.Version,
		Project:     doc.Project,
		Client:      doc.Client,
		Status:      string(doc.Status),
		CreatedDate: FormatDate(doc.CreatedAt),
		UpdatedDate: FormatDate(doc.UpdatedAt),
		Currency:    currency,
		SubTotal:    totals.SubTotal,
		TotalMargin: totals.TotalMargin,
		TotalAmount: totals.TotalAmount,
	}

	for i, sec := range doc.Sections {
		data.Rows = append(data.Rows, ExportRow{
			Level: 0,
			Index: fmt.Sprintf("%d", i+1),
			Title: sec.Title,
			Total: estimates.SectionSubtotal(sec),
		})
		for j, it := range sec.Items {
			data.Rows = append(data.Rows, ExportRow{
				Level:       1,
				Index:       fmt.Sprintf("%d.%d", i+1, j+1),
				Title:       it.Title,
				Description: it.Description,
				Unit:        it.Unit,
				Quantity:    estimates.AmountOrZero(it.Quantity),
				Price:       estimates.AmountOrZero(it.Price),
				Margin:      estimates.AmountOrZero(it.Margin),
				Total:       it.Total,
			})
		}
	}

	return data
}

// ExportFilename returns a download filename for the estimate with the given
// extension, e.g. "estimate-00001.xlsx".
func ExportFilename(doc estimates.Document, ext string) string {
	name := doc.Version
	if name == "" {
		name = doc.ID
	}
	if name == "" {
		name = "draft"
	}
	return fmt.Sprintf("estimate-%s.%s", name, ext)
}
