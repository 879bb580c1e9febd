package services

// Column names of the bulk item spreadsheet, in template order.
const (
	ColProductName          = "Product Name"
	ColTitle                = "Title"
	ColDescription          = "Description"
	ColManufacturingDetails = "Manufacturing Details"
	ColShippingReturns      = "Shipping Returns"
	ColSizeName             = "Size Name"
	ColQuantity             = "Quantity"
	ColHSNCode              = "HSN Code"
	ColSKU                  = "SKU"
	ColBarcodeNumber        = "Barcode Number"
	ColRegularPrice         = "Regular Price"
	ColSalePrice            = "Sale Price"
	ColWaistCm              = "Waist (CM)"
	ColInseamCm             = "Inseam (CM)"
	ColChestCm              = "Chest (CM)"
	ColFrontLengthCm        = "Front Length (CM)"
	ColAcrossShoulderCm     = "Across Shoulder (CM)"
	ColWaistIn              = "Waist (IN)"
	ColInseamIn             = "Inseam (IN)"
	ColChestIn              = "Chest (IN)"
	ColFrontLengthIn        = "Front Length (IN)"
	ColAcrossShoulderIn     = "Across Shoulder (IN)"
	ColMetaTitle            = "Meta Title"
	ColMetaDescription      = "Meta Description"
	ColSlugURL              = "Slug URL"
)

var itemColumns = [...]string{
	ColProductName,
	ColTitle,
	ColDescription,
	ColManufacturingDetails,
	ColShippingReturns,
	ColSizeName,
	ColQuantity,
	ColHSNCode,
	ColSKU,
	ColBarcodeNumber,
	ColRegularPrice,
	ColSalePrice,
	ColWaistCm,
	ColInseamCm,
	ColChestCm,
	ColFrontLengthCm,
	ColAcrossShoulderCm,
	ColWaistIn,
	ColInseamIn,
	ColChestIn,
	ColFrontLengthIn,
	ColAcrossShoulderIn,
	ColMetaTitle,
	ColMetaDescription,
	ColSlugURL,
}

// ItemColumns returns a copy of the expected spreadsheet header.
func ItemColumns() []string {
	cols := make([]string, len(itemColumns))
	copy(cols, itemColumns[:])
	return cols
}
