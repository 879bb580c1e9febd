package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseSpreadsheet_ReturnsRowsInSheetOrder(t *testing.T) {
	data := workbook(t, ItemColumns(),
		itemRow(sizeRow("Tee", "S", "10", "499")),
		itemRow(sizeRow("Cap", "One", "5", "299")),
		itemRow(sizeRow("Tee", "M", "3", "499")),
	)

	rows, err := ParseSpreadsheetBytes(data)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Tee", rows[0][ColProductName])
	assert.Equal(t, "S", rows[0][ColSizeName])
	assert.Equal(t, "Cap", rows[1][ColProductName])
	assert.Equal(t, "M", rows[2][ColSizeName])
	assert.Equal(t, 2, rows[0].RowNumber())
	assert.Equal(t, 4, rows[2].RowNumber())
	for _, col := range itemColumns {
		_, ok := rows[0][col]
		assert.True(t, ok, "column %q should be present", col)
	}
}

func TestParseSpreadsheet_HeaderOnlyIsEmpty(t *testing.T) {
	_, err := ParseSpreadsheetBytes(workbook(t, ItemColumns()))
	assert.ErrorIs(t, err, ErrEmptySheet)
	assert.True(t, IsParseError(err))
}

func TestParseSpreadsheet_BlankWorkbookIsEmpty(t *testing.T) {
	_, err := ParseSpreadsheetBytes(workbook(t, nil))
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestParseSpreadsheet_SkipsBlankRows(t *testing.T) {
	data := workbook(t, ItemColumns(),
		itemRow(sizeRow("Tee", "S", "10", "499")),
		make([]string, len(itemColumns)),
		itemRow(sizeRow("Tee", "M", "10", "499")),
	)

	rows, err := ParseSpreadsheetBytes(data)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 4, rows[1].RowNumber())
}

func TestParseSpreadsheet_NamesEveryMissingColumn(t *testing.T) {
	header := ItemColumns()
	var kept []string
	for _, h := range header {
		if h == ColSKU || h == ColSlugURL {
			continue
		}
		kept = append(kept, h)
	}
	row := make([]string, len(kept))
	row[0] = "Tee"

	_, err := ParseSpreadsheetBytes(workbook(t, kept, row))

	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{ColSKU, ColSlugURL}, missing.Columns)
	assert.Contains(t, err.Error(), "SKU")
	assert.Contains(t, err.Error(), "Slug URL")
}

func TestParseSpreadsheet_HeaderOrderDoesNotMatter(t *testing.T) {
	header := ItemColumns()
	header[0], header[len(header)-1] = header[len(header)-1], header[0]
	row := make([]string, len(header))
	row[0] = "tee-slug"
	row[len(row)-1] = "Tee"

	rows, err := ParseSpreadsheetBytes(workbook(t, header, row))
	require.NoError(t, err)
	assert.Equal(t, "Tee", rows[0][ColProductName])
	assert.Equal(t, "tee-slug", rows[0][ColSlugURL])
}

func TestParseSpreadsheet_OnlyFirstSheetIsRead(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	header := make([]interface{}, len(itemColumns))
	for i, c := range itemColumns {
		header[i] = c
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Other", "A1", &header))
	require.NoError(t, f.SetCellValue("Other", "A2", "Ignored"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = ParseSpreadsheetBytes(buf.Bytes())
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestParseSpreadsheet_RejectsNonWorkbook(t *testing.T) {
	_, err := ParseSpreadsheetBytes([]byte("Product Name,Title\nTee,Tee"))

	var invalid *InvalidWorkbookError
	assert.True(t, errors.As(err, &invalid))
	assert.True(t, IsParseError(err))
}
