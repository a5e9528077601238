package catalog

import "github.com/angelmondragon/storefront/pkg/enums"

// RawBase carries the fields every catalog collection shares.
type RawBase struct {
	ID               string   `json:"_id"`
	Brand            string   `json:"brand"`
	CategoryType     string   `json:"categoryType"`
	Model            string   `json:"model"`
	Price            Number   `json:"price"`
	DiscountType     string   `json:"discountType"`
	DiscountValue    Number   `json:"discountValue"`
	Colors           []Color  `json:"colors"`
	MainImageURL     string   `json:"mainImageUrl"`
	GalleryImageURLs []string `json:"galleryImageUrls"`
	ShortDescription string   `json:"shortDescription"`
	LongDescription  string   `json:"longDescription"`
	InStock          Flag     `json:"inStock"`
	StockCount       *Number  `json:"stockCount"`
	Status           string   `json:"status"`
}

type Display struct {
	SizeInches Number `json:"sizeInches"`
	Type       string `json:"type"`
	Resolution string `json:"resolution"`
}

// RawDevice is a phone, tablet, watch or earbuds record (/phones and /used-items).
type RawDevice struct {
	RawBase
	OS                   string          `json:"os"`
	StorageGB            Number          `json:"storageGB"`
	RAMGB                Number          `json:"ramGB"`
	BatteryMah           Number          `json:"batteryMah"`
	DeviceStatus         string          `json:"deviceStatus"`
	Display              *Display        `json:"display"`
	AvailableStorages    []StorageOption `json:"availableStorages"`
	StorageOptionsValues []StorageOption `json:"storageOptionsValues"`
	Storages             []StorageOption `json:"storages"`
	StorageOptions       []StorageOption `json:"storageOptions"`
}

type RawSpeaker struct {
	RawBase
}

type RawCooler struct {
	RawBase
	WarrantyType   string `json:"warrantyType"`
	WarrantyPeriod string `json:"warrantyPeriod"`
}

type RawAccessory struct {
	RawBase
}

type RawBrand struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	ImageURL string `json:"imageUrl"`
}

// Product is the normalized storefront view of one catalog record.
type Product struct {
	ID             string              `json:"id"`
	Brand          string              `json:"brand"`
	Name           string              `json:"name"`
	Model          string              `json:"model"`
	Price          float64             `json:"price"`
	OriginalPrice  float64             `json:"originalPrice"`
	OfferType      *enums.DiscountType `json:"offerType"`
	OfferValue     float64             `json:"offerValue"`
	Specs          []string            `json:"specs"`
	Images         []string            `json:"images"`
	Colors         []Color             `json:"colors"`
	StorageOptions []StorageOption     `json:"storageOptions,omitempty"`
	Description    string              `json:"description,omitempty"`
	CategoryType   string              `json:"categoryType,omitempty"`
	DeviceStatus   string              `json:"deviceStatus,omitempty"`
	InStock        *bool               `json:"inStock,omitempty"`
	StockCount     *int                `json:"stockCount,omitempty"`
	Kind           enums.CatalogKind   `json:"kind"`
}

type Brand struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	ImageURL string `json:"imageUrl,omitempty"`
}
