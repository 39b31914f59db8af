package domain

// ItemAttributes is best-effort: any field may be empty when the response omits it.
type ItemAttributes struct {
	DetailPageURL      string `json:"url"`
	ListPriceAmount    string `json:"list_price_amount"`
	ListPriceFormatted string `json:"list_price_formatted"`
	Title              string `json:"title"`
	ProductGroup       string `json:"product_group"`
	IsCookbook         bool   `json:"is_cookbook"`
}

// IsEmpty reports whether nothing was extracted.
func (a ItemAttributes) IsEmpty() bool {
	return a == ItemAttributes{}
}

type ImageSize string

const (
	ImageSizeSmall  ImageSize = "SmallImage"
	ImageSizeMedium ImageSize = "MediumImage"
	ImageSizeLarge  ImageSize = "LargeImage"
)

var ImageSizes = []ImageSize{
	ImageSizeSmall,
	ImageSizeMedium,
	ImageSizeLarge,
}

type Image struct {
	URL    string `json:"url"`
	Height string `json:"height"`
	Width  string `json:"width"`
}

// ImageSet holds only the size classes present in the response.
type ImageSet map[ImageSize]Image

// Family is a variation family: its root and every member, root included when it has no siblings.
type Family struct {
	Seed       ASIN   `json:"seed"`
	Parent     ASIN   `json:"parent"`
	Variations []ASIN `json:"variations"`
}

// ItemDetails bundles everything collected for one listing.
type ItemDetails struct {
	ASIN       ASIN           `json:"asin"`
	Parent     ASIN           `json:"parent"`
	Attributes ItemAttributes `json:"attributes"`
	Images     ImageSet       `json:"images"`
	Offers     []Offer        `json:"offers"`
}
