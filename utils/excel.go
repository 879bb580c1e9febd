package utils

import (
	"bytes"
	"fmt"
	"reflect"

	"items-admin-backend/config"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// GenerateExcel writes one row per element of data, a slice of structs,
// taking each column from the struct field named by its header.
func GenerateExcel(data interface{}, sheetName string, headers []string) (*bytes.Buffer, error) {
	dataSlice := reflect.ValueOf(data)
	if dataSlice.Kind() != reflect.Slice {
		return nil, fmt.Errorf("expected data to be a slice, got %v", dataSlice.Kind())
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("error naming sheet: %w", err)
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("error setting headers: %w", err)
	}

	for row := 0; row < dataSlice.Len(); row++ {
		item := reflect.Indirect(dataSlice.Index(row))
		if item.Kind() != reflect.Struct {
			return nil, fmt.Errorf("row %d: expected a struct, got %v", row+1, item.Kind())
		}

		values := make([]interface{}, len(headers))
		for col, header := range headers {
			field := item.FieldByName(header)
			if !field.IsValid() {
				config.Logger.Debug("Excel export field not found",
					zap.String("field", header),
					zap.Int("row", row+2),
				)
				continue
			}
			values[col] = field.Interface()
		}

		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("error writing row %d: %w", row+2, err)
		}
	}

	return f.WriteToBuffer()
}
