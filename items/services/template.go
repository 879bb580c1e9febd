package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	// TemplateFileName is the download name of the bulk item template.
	TemplateFileName = "bulk_items_template.xlsx"

	templateSheet     = "Items"
	instructionsSheet = "Instructions"
)

// templateExamples shows the one-row-per-size convention: scalar product
// columns repeat on every size row and only the first occurrence is used.
var templateExamples = [][]interface{}{
	{"Classic Crew Tee", "Classic Crew Neck T-Shirt", "Soft combed cotton tee with a relaxed fit.", "100% cotton, made in India", "Free returns within 15 days",
		"S", 25, "6109", "TEE-CRW-S", "8901234500011", 799, 599,
		0, 0, 96, 68, 42, 0, 0, 37.8, 26.8, 16.5,
		"Classic Crew Tee", "Everyday cotton crew neck t-shirt", "classic-crew-tee"},
	{"Classic Crew Tee", "Classic Crew Neck T-Shirt", "Soft combed cotton tee with a relaxed fit.", "100% cotton, made in India", "Free returns within 15 days",
		"M", 40, "6109", "TEE-CRW-M", "8901234500012", 799, 599,
		0, 0, 101, 70, 44, 0, 0, 39.8, 27.6, 17.3,
		"Classic Crew Tee", "Everyday cotton crew neck t-shirt", "classic-crew-tee"},
	{"Classic Crew Tee", "Classic Crew Neck T-Shirt", "Soft combed cotton tee with a relaxed fit.", "100% cotton, made in India", "Free returns within 15 days",
		"L", 30, "6109", "TEE-CRW-L", "8901234500013", 799, 599,
		0, 0, 106, 72, 46, 0, 0, 41.7, 28.3, 18.1,
		"Classic Crew Tee", "Everyday cotton crew neck t-shirt", "classic-crew-tee"},
	{"Straight Fit Jeans", "Straight Fit Stretch Denim", "Mid-rise straight jeans in stretch denim.", "98% cotton 2% elastane", "Exchange only, within 7 days",
		"30", 12, "6203", "JNS-STR-30", "8901234500101", 1999, 1499,
		76, 81, 0, 0, 0, 30, 32, 0, 0, 0,
		"Straight Fit Jeans", "Stretch denim straight fit jeans", "straight-fit-jeans"},
	{"Straight Fit Jeans", "Straight Fit Stretch Denim", "Mid-rise straight jeans in stretch denim.", "98% cotton 2% elastane", "Exchange only, within 7 days",
		"32", 18, "6203", "JNS-STR-32", "8901234500102", 1999, 1499,
		81, 81, 0, 0, 0, 32, 32, 0, 0, 0,
		"Straight Fit Jeans", "Stretch denim straight fit jeans", "straight-fit-jeans"},
}

var templateInstructions = []string{
	"Bulk Item Upload Instructions",
	"",
	"One row per product size. Rows sharing the same Product Name become one product.",
	"Title, Description, Manufacturing Details and Shipping Returns are read from the first row of each product.",
	"Rows with an empty Product Name are ignored.",
	"Required: Product Name, Title, Description, and per size: Size Name, Quantity > 0, Regular Price > 0.",
	"Numeric cells that cannot be read are treated as 0 and reported as warnings.",
	"Only the first sheet is read.",
}

// BuildTemplate renders the bulk item template workbook: the header row,
// example rows for two products and an instructions sheet.
func BuildTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return nil, fmt.Errorf("failed to rename template sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(itemColumns))
	for i, col := range itemColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(templateSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write template header: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(itemColumns))
	if err := f.SetCellStyle(templateSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style template header: %w", err)
	}
	if err := f.SetColWidth(templateSheet, "A", lastCol, 20); err != nil {
		return nil, fmt.Errorf("failed to size template columns: %w", err)
	}

	for i, example := range templateExamples {
		row := example
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(templateSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write example row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(instructionsSheet); err != nil {
		return nil, fmt.Errorf("failed to add instructions sheet: %w", err)
	}
	for i, line := range templateInstructions {
		f.SetCellValue(instructionsSheet, fmt.Sprintf("A%d", i+1), line)
	}
	f.SetColWidth(instructionsSheet, "A", "A", 110)

	idx, _ := f.GetSheetIndex(templateSheet)
	f.SetActiveSheet(idx)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write template: %w", err)
	}
	return buf.Bytes(), nil
}
