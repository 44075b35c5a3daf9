package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"estimatetracker/estimates"
)

// TemplateField describes one column of the line-item import sheet.
type TemplateField struct {
	Key      string
	Label    string
	Required bool
	Example  string
}

// ItemTemplateFields returns the import columns in sheet order.
func ItemTemplateFields() []TemplateField {
	return []TemplateField{
		{Key: "title", Label: "Item", Required: true, Example: "Excavation"},
		{Key: "description", Label: "Description", Example: "Bulk dig to formation level"},
		{Key: "unit", Label: "Unit", Example: "m3"},
		{Key: "quantity", Label: "Quantity", Required: true, Example: "10"},
		{Key: "price", Label: "Price", Required: true, Example: "50"},
		{Key: "margin", Label: "Margin", Example: "15"},
	}
}

// ImportError represents a single field-level error on one row.
type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportRow is one accepted line of an uploaded file, values trimmed.
type ImportRow struct {
	Row         int
	Title       string
	Description string
	Unit        string
	Quantity    string
	Price       string
	Margin      string
}

// ImportResult is returned after parsing and validating an uploaded file.
type ImportResult struct {
	TotalRows    int           `json:"total_rows"`
	ValidRows    int           `json:"valid_rows"`
	ErrorRows    int           `json:"error_rows"`
	Errors       []ImportError `json:"errors"`
	Unrecognized []string      `json:"unrecognized,omitempty"`
	Rows         []ImportRow   `json:"-"`
	FileName     string        `json:"-"`
}

var (
	ErrUnsupportedFormat = errors.New("unsupported file format: must be .csv or .xlsx")
	ErrNoDataRows        = errors.New("file must contain a header row and at least one data row")
)

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, ErrNoDataRows
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, ErrNoDataRows
	}

	return rows[0], rows[1:], nil
}

// mapHeadersToFields maps uploaded column headers to TemplateField keys.
// Returns ordered list of field keys (one per column) and any unrecognized columns.
func mapHeadersToFields(headers []string, fields []TemplateField) ([]string, []string) {
	labelToKey := make(map[string]string, len(fields))
	for _, f := range fields {
		labelToKey[strings.ToLower(f.Label)] = f.Key
		labelToKey[f.Key] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		// Strip trailing " *" that the template adds for required fields
		norm = strings.TrimSpace(strings.TrimSuffix(norm, "*"))

		if key, ok := labelToKey[norm]; ok {
			mapped[i] = key
		} else if norm != "" {
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// ParseItemFile parses and validates an uploaded CSV or XLSX of line items.
// Rows that are entirely blank are skipped. Rows with errors are reported and
// left out of Rows.
func ParseItemFile(file io.Reader, fileName string) (*ImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	fields := ItemTemplateFields()
	columnKeys, unrecognized := mapHeadersToFields(headers, fields)

	present := make(map[string]bool, len(columnKeys))
	for _, k := range columnKeys {
		if k != "" {
			present[k] = true
		}
	}
	for _, f := range fields {
		if f.Required && !present[f.Key] {
			return nil, fmt.Errorf("missing required column %q", f.Label)
		}
	}

	result := &ImportResult{
		FileName:     fileName,
		Unrecognized: unrecognized,
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row

		data := make(map[string]string, len(fields))
		blank := true
		for colIdx, key := range columnKeys {
			if key == "" || colIdx >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[colIdx])
			data[key] = v
			if v != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		result.TotalRows++

		rowErrors := validateItemRow(rowNum, data)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			result.ErrorRows++
			continue
		}

		result.Rows = append(result.Rows, ImportRow{
			Row:         rowNum,
			Title:       data["title"],
			Description: data["description"],
			Unit:        data["unit"],
			Quantity:    data["quantity"],
			Price:       data["price"],
			Margin:      data["margin"],
		})
	}
	result.ValidRows = len(result.Rows)

	return result, nil
}

// validateItemRow applies the submit-time item rules to one row so an
// imported item never fails validation later.
func validateItemRow(rowNum int, data map[string]string) []ImportError {
	var errs []ImportError

	if data["title"] == "" {
		errs = append(errs, ImportError{Row: rowNum, Field: "Item", Message: "Item is required"})
	}
	for _, f := range []struct{ key, label string }{{"quantity", "Quantity"}, {"price", "Price"}} {
		d, err := estimates.ParseAmount(data[f.key])
		switch {
		case errors.Is(err, estimates.ErrEmptyAmount):
			errs = append(errs, ImportError{Row: rowNum, Field: f.label, Message: f.label + " is required"})
		case err != nil:
			errs = append(errs, ImportError{Row: rowNum, Field: f.label, Message: f.label + " must be a number"})
		case !d.IsPositive():
			errs = append(errs, ImportError{Row: rowNum, Field: f.label, Message: f.label + " must be greater than zero"})
		}
	}
	if v := data["margin"]; v != "" {
		if _, err := estimates.ParseAmount(v); err != nil {
			errs = append(errs, ImportError{Row: rowNum, Field: "Margin", Message: "Margin must be a number"})
		}
	}

	return errs
}

// ErrSectionNotFound is returned when importing into a section the session
// does not have.
var ErrSectionNotFound = estimates.ErrSectionNotFound

// ApplyImport writes rows into a section of an open editing session as a
// single edit. When the section holds a single untouched item, the first row
// fills it instead of leaving a blank line behind. It returns the number of
// items written.
func ApplyImport(sess *estimates.Session, sectionID int64, rows []ImportRow) (int, error) {
	values := make([]estimates.ItemValues, len(rows))
	for i, r := range rows {
		values[i] = estimates.ItemValues{
			Title:       r.Title,
			Description: r.Description,
			Unit:        r.Unit,
			Quantity:    r.Quantity,
			Price:       r.Price,
			Margin:      r.Margin,
		}
	}
	return sess.FillItems(sectionID, values)
}

// GenerateErrorReport creates a downloadable .xlsx file from import errors.
func GenerateErrorReport(errs []ImportError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errs {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
