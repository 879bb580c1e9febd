package services

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildTemplate_HeaderMatchesSchema(t *testing.T) {
	data, err := BuildTemplate()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.NotEmpty(t, sheets)
	assert.Equal(t, templateSheet, sheets[0])
	assert.Contains(t, sheets, instructionsSheet)

	rows, err := f.GetRows(sheets[0])
	require.NoError(t, err)
	assert.Equal(t, ItemColumns(), rows[0])
	assert.Len(t, rows, len(templateExamples)+1)
}

func TestBuildTemplate_RoundTripsThroughPipeline(t *testing.T) {
	data, err := BuildTemplate()
	require.NoError(t, err)

	rows, err := ParseSpreadsheetBytes(data)
	require.NoError(t, err)
	assert.Len(t, rows, len(templateExamples))

	drafts, warnings := GroupRows(rows)
	assert.Empty(t, warnings)
	require.Len(t, drafts, 2)
	assert.Len(t, drafts[0].Sizes, 3)
	assert.Len(t, drafts[1].Sizes, 2)
	assert.True(t, drafts[1].Sizes[0].InseamIn.Equal(decimal.NewFromInt(32)))
	assert.True(t, drafts[0].Sizes[0].ChestIn.Equal(decimal.RequireFromString("37.8")))

	assert.True(t, ValidateDrafts(drafts).Valid())
}
