package services

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateExcel_Estimate(t *testing.T) {
	data := BuildExportData(exportDocument(), "$")

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Christine Brooks (v00001)" {
		t.Errorf("unexpected sheet list %v", sheets)
	}
	sheet := sheets[0]

	title, _ := f.GetCellValue(sheet, "A1")
	if title != "Christine Brooks (v00001)" {
		t.Errorf("title = %q", title)
	}

	header, _ := f.GetCellValue(sheet, "H5")
	if header != "Total" {
		t.Errorf("H5 = %q, want Total", header)
	}

	// Row 6 is the first section, rows 7-8 its items.
	section, _ := f.GetCellValue(sheet, "B6")
	subtotal, _ := f.GetCellValue(sheet, "H6")
	item, _ := f.GetCellValue(sheet, "B7")
	itemTotal, _ := f.GetCellValue(sheet, "H7")
	if section != "Groundworks" || subtotal != "$1,125.00" {
		t.Errorf("section row = %q / %q", section, subtotal)
	}
	if item != "  Item 1" || itemTotal != "$575.00" {
		t.Errorf("item row = %q / %q", item, itemTotal)
	}

	// 5 data rows (6-10), a blank row, then Sub Total / Total Margin / Total Amount.
	label, _ := f.GetCellValue(sheet, "G14")
	amount, _ := f.GetCellValue(sheet, "H14")
	if label != "Total Amount:" || amount != "$1,125.00" {
		t.Errorf("summary = %q / %q", label, amount)
	}
}

func TestGenerateExcel_EmptyRows(t *testing.T) {
	data := ExportData{
		Title:       "Empty Estimate",
		CreatedDate: "—",
		Rows:        []ExportRow{},
	}

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}
}

func TestGenerateExcel_FormulaInTitleIsEscaped(t *testing.T) {
	data := BuildExportData(exportDocument(), "$")
	data.Rows[1].Title = "=HYPERLINK(\"x\")"

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	got, _ := f.GetCellValue(f.GetSheetList()[0], "B7")
	if got != "  '=HYPERLINK(\"x\")" {
		t.Errorf("B7 = %q", got)
	}
}

func TestExcelSheetName(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "Harbour View", "Harbour View"},
		{"empty", "", "Estimate"},
		{"blank", "   ", "Estimate"},
		{"forbidden chars", "A/B: [C]?*", "A-B- -C---"},
		{"long", "This is a very long title that exceeds thirty one characters", "This is a very long title that "},
		{"quoted", "'Quoted'", "Quoted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := excelSheetName(tt.title); got != tt.want {
				t.Errorf("excelSheetName(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"normal text", "Hello", "Hello"},
		{"starts with equals", "=SUM(A1:A10)", "'=SUM(A1:A10)"},
		{"starts with plus", "+1234", "'+1234"},
		{"starts with minus", "-100", "'-100"},
		{"starts with at", "@import", "'@import"},
		{"starts with tab", "\tdata", "'\tdata"},
		{"starts with pipe", "|command", "'|command"},
		{"starts with carriage return", "\rdata", "'\rdata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeExcelCell(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestThinBorders(t *testing.T) {
	borders := thinBorders()
	if len(borders) != 4 {
		t.Errorf("thinBorders() returned %d borders, want 4", len(borders))
	}

	sides := map[string]bool{"left": false, "top": false, "bottom": false, "right": false}
	for _, b := range borders {
		sides[b.Type] = true
		if b.Style != 1 {
			t.Errorf("border %s style = %d, want 1 (thin)", b.Type, b.Style)
		}
	}
	for side, found := range sides {
		if !found {
			t.Errorf("missing border side: %s", side)
		}
	}
}
