package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// workbook builds an xlsx whose first sheet holds header followed by rows.
func workbook(t *testing.T, header []string, rows ...[]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	write := func(rowNum int, values []string) {
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &cells))
	}

	if header != nil {
		write(1, header)
	}
	for i, r := range rows {
		write(i+2, r)
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// itemRow builds a full-width row from the given column values.
func itemRow(values map[string]string) []string {
	row := make([]string, len(itemColumns))
	for i, col := range itemColumns {
		row[i] = values[col]
	}
	return row
}

func sourceRow(values map[string]string) SourceRow {
	row := make(SourceRow, len(itemColumns))
	for _, col := range itemColumns {
		row[col] = values[col]
	}
	return row
}

func sizeRow(product, size, qty, price string) map[string]string {
	return map[string]string{
		ColProductName:  product,
		ColTitle:        product + " title",
		ColDescription:  product + " description",
		ColSizeName:     size,
		ColQuantity:     qty,
		ColRegularPrice: price,
	}
}
