package services

import (
	"math"

	"github.com/shopspring/decimal"
)

// GroupRows folds spreadsheet rows into product drafts keyed by
// "Product Name", in order of first appearance. Rows without a product name
// are skipped. The first row of a product supplies its scalar fields; every
// row with a "Size Name" adds one SizeVariant.
//
// Numeric cells that cannot be parsed become zero, and each such cell is
// reported as a CoercionWarning along with later rows whose scalar fields
// disagree with the first row.
func GroupRows(rows []SourceRow) ([]ProductDraft, []CoercionWarning) {
	var (
		drafts   []ProductDraft
		warnings []CoercionWarning
		index    = make(map[string]int)
	)

	for _, row := range rows {
		name := row[ColProductName]
		if name == "" {
			continue
		}

		pos, seen := index[name]
		if !seen {
			drafts = append(drafts, ProductDraft{
				ProductName:          name,
				Title:                row[ColTitle],
				Description:          row[ColDescription],
				ManufacturingDetails: row[ColManufacturingDetails],
				ShippingReturns:      row[ColShippingReturns],
			})
			pos = len(drafts) - 1
			index[name] = pos
		} else {
			warnings = append(warnings, scalarConflicts(drafts[pos], row)...)
		}

		if row[ColSizeName] == "" {
			continue
		}

		c := coercer{row: row, productName: name}
		size := SizeVariant{
			Size:             row[ColSizeName],
			Quantity:         c.integer(ColQuantity),
			HSNCode:          row[ColHSNCode],
			SKU:              row[ColSKU],
			Barcode:          row[ColBarcodeNumber],
			RegularPrice:     c.decimal(ColRegularPrice),
			SalePrice:        c.decimal(ColSalePrice),
			WaistCm:          c.decimal(ColWaistCm),
			InseamCm:         c.decimal(ColInseamCm),
			ChestCm:          c.decimal(ColChestCm),
			FrontLengthCm:    c.decimal(ColFrontLengthCm),
			AcrossShoulderCm: c.decimal(ColAcrossShoulderCm),
			WaistIn:          c.decimal(ColWaistIn),
			InseamIn:         c.decimal(ColInseamIn),
			ChestIn:          c.decimal(ColChestIn),
			FrontLengthIn:    c.decimal(ColFrontLengthIn),
			AcrossShoulderIn: c.decimal(ColAcrossShoulderIn),
			MetaTitle:        row[ColMetaTitle],
			MetaDescription:  row[ColMetaDescription],
			SlugURL:          row[ColSlugURL],
		}
		drafts[pos].Sizes = append(drafts[pos].Sizes, size)
		warnings = append(warnings, c.warnings...)
	}

	return drafts, warnings
}

func scalarConflicts(draft ProductDraft, row SourceRow) []CoercionWarning {
	var out []CoercionWarning
	check := func(column, first string) {
		v := row[column]
		if v != "" && v != first {
			out = append(out, CoercionWarning{
				Row:         row.RowNumber(),
				ProductName: draft.ProductName,
				Column:      column,
				Value:       v,
				Kind:        WarningConflictingValue,
			})
		}
	}
	check(ColTitle, draft.Title)
	check(ColDescription, draft.Description)
	check(ColManufacturingDetails, draft.ManufacturingDetails)
	check(ColShippingReturns, draft.ShippingReturns)
	return out
}

// coercer converts numeric cells of a single row, collecting warnings.
type coercer struct {
	row         SourceRow
	productName string
	warnings    []CoercionWarning
}

func (c *coercer) warn(column string, kind WarningKind) {
	c.warnings = append(c.warnings, CoercionWarning{
		Row:         c.row.RowNumber(),
		ProductName: c.productName,
		Column:      column,
		Value:       c.row[column],
		Kind:        kind,
	})
}

// Whole numbers outside this range are not taken as quantities.
var (
	minInteger = decimal.NewFromInt(math.MinInt32)
	maxInteger = decimal.NewFromInt(math.MaxInt32)
)

// integer parses a whole number. Blank is 0; fractions are truncated.
// Values that do not fit an int32 coerce to 0 with a warning.
func (c *coercer) integer(column string) int {
	raw := c.row[column]
	if raw == "" {
		return 0
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.LessThan(minInteger) || d.GreaterThan(maxInteger) {
		c.warn(column, WarningUnparsableNumber)
		return 0
	}
	if !d.Equal(d.Truncate(0)) {
		c.warn(column, WarningFractionalQuantity)
	}
	return int(d.IntPart())
}

func (c *coercer) decimal(column string) decimal.Decimal {
	raw := c.row[column]
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		c.warn(column, WarningUnparsableNumber)
		return decimal.Zero
	}
	return d
}
