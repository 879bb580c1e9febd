package services

// ItemStatusDraft is the status every bulk-created item starts in.
const ItemStatusDraft = "draft"

// CreateItemPayload is the body accepted by the catalog item-creation
// endpoint: one product with all of its sizes per call.
type CreateItemPayload struct {
	ProductName          string        `json:"productName"`
	Title                string        `json:"title"`
	Description          string        `json:"description"`
	ManufacturingDetails string        `json:"manufacturingDetails"`
	ShippingAndReturns   string        `json:"shippingAndReturns"`
	Sizes                []SizePayload `json:"sizes"`
	Status               string        `json:"status"`
}

type SizePayload struct {
	Size             string  `json:"size"`
	Quantity         int     `json:"quantity"`
	HSNCode          string  `json:"hsnCode"`
	SKU              string  `json:"sku"`
	Barcode          string  `json:"barcode"`
	RegularPrice     float64 `json:"regularPrice"`
	SalePrice        float64 `json:"salePrice"`
	FitWaistCm       float64 `json:"fitWaistCm"`
	InseamLengthCm   float64 `json:"inseamLengthCm"`
	ChestCm          float64 `json:"chestCm"`
	FrontLengthCm    float64 `json:"frontLengthCm"`
	AcrossShoulderCm float64 `json:"acrossShoulderCm"`
	ToFitWaistIn     float64 `json:"toFitWaistIn"`
	InseamLengthIn   float64 `json:"inseamLengthIn"`
	ChestIn          float64 `json:"chestIn"`
	FrontLengthIn    float64 `json:"frontLengthIn"`
	AcrossShoulderIn float64 `json:"acrossShoulderIn"`
	MetaTitle        string  `json:"metaTitle"`
	MetaDescription  string  `json:"metaDescription"`
	SlugURL          string  `json:"slugUrl"`
}

// BuildCreateItemPayload maps a draft onto the remote field names.
func BuildCreateItemPayload(d ProductDraft) CreateItemPayload {
	sizes := make([]SizePayload, 0, len(d.Sizes))
	for _, s := range d.Sizes {
		sizes = append(sizes, SizePayload{
			Size:             s.Size,
			Quantity:         s.Quantity,
			HSNCode:          s.HSNCode,
			SKU:              s.SKU,
			Barcode:          s.Barcode,
			RegularPrice:     s.RegularPrice.InexactFloat64(),
			SalePrice:        s.SalePrice.InexactFloat64(),
			FitWaistCm:       s.WaistCm.InexactFloat64(),
			InseamLengthCm:   s.InseamCm.InexactFloat64(),
			ChestCm:          s.ChestCm.InexactFloat64(),
			FrontLengthCm:    s.FrontLengthCm.InexactFloat64(),
			AcrossShoulderCm: s.AcrossShoulderCm.InexactFloat64(),
			ToFitWaistIn:     s.WaistIn.InexactFloat64(),
			InseamLengthIn:   s.InseamIn.InexactFloat64(),
			ChestIn:          s.ChestIn.InexactFloat64(),
			FrontLengthIn:    s.FrontLengthIn.InexactFloat64(),
			AcrossShoulderIn: s.AcrossShoulderIn.InexactFloat64(),
			MetaTitle:        s.MetaTitle,
			MetaDescription:  s.MetaDescription,
			SlugURL:          s.SlugURL,
		})
	}

	return CreateItemPayload{
		ProductName:          d.ProductName,
		Title:                d.Title,
		Description:          d.Description,
		ManufacturingDetails: d.ManufacturingDetails,
		ShippingAndReturns:   d.ShippingReturns,
		Sizes:                sizes,
		Status:               ItemStatusDraft,
	}
}
