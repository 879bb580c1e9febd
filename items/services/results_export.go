package services

import (
	"strings"

	"items-admin-backend/utils"
)

var resultColumns = []string{"ProductName", "Success", "RemoteID", "Error"}

// BuildResultsWorkbook lists one row per upload result.
func BuildResultsWorkbook(results []UploadResult) ([]byte, error) {
	buf, err := utils.GenerateExcel(results, "Results", resultColumns)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ResultsFileName derives the export name from the uploaded file's name.
func ResultsFileName(sourceFile string) string {
	base := strings.TrimSuffix(sourceFile, ".xlsx")
	if base == "" {
		return "bulk_items_results.xlsx"
	}
	return "bulk_items_results_" + utils.CleanStringForFilename(base) + ".xlsx"
}
