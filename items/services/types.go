package services

import "github.com/shopspring/decimal"

// SourceRow is one uncoerced spreadsheet row keyed by column name.
type SourceRow map[string]string

// SizeVariant is one size/SKU of a product draft.
type SizeVariant struct {
	Size             string          `json:"size"`
	Quantity         int             `json:"quantity"`
	HSNCode          string          `json:"hsn_code"`
	SKU              string          `json:"sku"`
	Barcode          string          `json:"barcode"`
	RegularPrice     decimal.Decimal `json:"regular_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	WaistCm          decimal.Decimal `json:"waist_cm"`
	InseamCm         decimal.Decimal `json:"inseam_cm"`
	ChestCm          decimal.Decimal `json:"chest_cm"`
	FrontLengthCm    decimal.Decimal `json:"front_length_cm"`
	AcrossShoulderCm decimal.Decimal `json:"across_shoulder_cm"`
	WaistIn          decimal.Decimal `json:"waist_in"`
	InseamIn         decimal.Decimal `json:"inseam_in"`
	ChestIn          decimal.Decimal `json:"chest_in"`
	FrontLengthIn    decimal.Decimal `json:"front_length_in"`
	AcrossShoulderIn decimal.Decimal `json:"across_shoulder_in"`
	MetaTitle        string          `json:"meta_title"`
	MetaDescription  string          `json:"meta_description"`
	SlugURL          string          `json:"slug_url"`
}

// ProductDraft is a grouped product awaiting submission. Scalar fields come
// from the first row seen for ProductName.
type ProductDraft struct {
	ProductName          string        `json:"product_name"`
	Title                string        `json:"title"`
	Description          string        `json:"description"`
	ManufacturingDetails string        `json:"manufacturing_details"`
	ShippingReturns      string        `json:"shipping_returns"`
	Sizes                []SizeVariant `json:"sizes"`
}

// UploadResult is the outcome of submitting one draft.
type UploadResult struct {
	ProductName string `json:"product_name"`
	Success     bool   `json:"success"`
	RemoteID    string `json:"remote_id,omitempty"`
	Error       string `json:"error,omitempty"`
}

type WarningKind string

const (
	WarningUnparsableNumber   WarningKind = "unparsable_number"
	WarningFractionalQuantity WarningKind = "fractional_quantity"
	WarningConflictingValue   WarningKind = "conflicting_value"
)

// CoercionWarning records a cell whose value was not taken as written.
// Row is the 1-based sheet row, header included.
type CoercionWarning struct {
	Row         int         `json:"row"`
	ProductName string      `json:"product_name"`
	Column      string      `json:"column"`
	Value       string      `json:"value"`
	Kind        WarningKind `json:"kind"`
}
