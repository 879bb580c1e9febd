package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// rowNumberKey carries the 1-based sheet row of a SourceRow for reporting.
const rowNumberKey = "_row"

// ErrEmptySheet is returned when the first sheet holds no data rows.
var ErrEmptySheet = errors.New("file is empty")

// MissingColumnsError names every expected column absent from the header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// InvalidWorkbookError wraps a failure of the spreadsheet codec itself.
type InvalidWorkbookError struct {
	Err error
}

func (e *InvalidWorkbookError) Error() string {
	return fmt.Sprintf("failed to read spreadsheet: %v", e.Err)
}

func (e *InvalidWorkbookError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err belongs to the fatal, batch-level class.
func IsParseError(err error) bool {
	var missing *MissingColumnsError
	var invalid *InvalidWorkbookError
	return errors.Is(err, ErrEmptySheet) || errors.As(err, &missing) || errors.As(err, &invalid)
}

// ParseSpreadsheetBytes is ParseSpreadsheet over an in-memory file.
func ParseSpreadsheetBytes(data []byte) ([]SourceRow, error) {
	return ParseSpreadsheet(bytes.NewReader(data))
}

// ParseSpreadsheet decodes the first sheet of an xlsx workbook into rows keyed
// by header name. Later sheets are ignored. The header is checked once
// against ItemColumns; data rows are returned in sheet order, uncoerced.
func ParseSpreadsheet(r io.Reader) ([]SourceRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &InvalidWorkbookError{Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	excelRows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &InvalidWorkbookError{Err: err}
	}

	headerIdx := -1
	for i, r := range excelRows {
		if !isBlankRow(r) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrEmptySheet
	}

	headers := make([]string, len(excelRows[headerIdx]))
	for i, h := range excelRows[headerIdx] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []SourceRow
	for i := headerIdx + 1; i < len(excelRows); i++ {
		excelRow := excelRows[i]
		if isBlankRow(excelRow) {
			continue
		}
		row := make(SourceRow, len(headers)+1)
		for col, name := range headers {
			if name == "" {
				continue
			}
			if _, seen := row[name]; seen {
				// duplicate header: first column wins
				continue
			}
			value := ""
			if col < len(excelRow) {
				value = strings.TrimSpace(excelRow[col])
			}
			row[name] = value
		}
		row[rowNumberKey] = strconv.Itoa(i + 1)
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	if missing := missingColumns(headers); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	return rows, nil
}

func missingColumns(headers []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}
	var missing []string
	for _, col := range itemColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// RowNumber returns the sheet row a SourceRow was read from, or 0.
func (r SourceRow) RowNumber() int {
	n, _ := strconv.Atoi(r[rowNumberKey])
	return n
}
