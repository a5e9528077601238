package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/pkg/enums"
)

func decodeDevice(t *testing.T, payload string) RawDevice {
	t.Helper()
	var d RawDevice
	require.NoError(t, json.Unmarshal([]byte(payload), &d))
	return d
}

func TestNormalizeDevice(t *testing.T) {
	t.Parallel()
	raw := decodeDevice(t, `{
		"_id": "p1",
		"brand": "Apple",
		"categoryType": "iPhone",
		"model": "iPhone 15",
		"price": "250000",
		"discountType": " Percent ",
		"discountValue": 10,
		"os": "iOS 17",
		"storageGB": 128,
		"ramGB": 6,
		"batteryMah": 3349,
		"colors": ["Black", {"_id": "c2", "name": "Blue", "hex": "#1e3a8a"}, null],
		"deviceStatus": "not used",
		"display": {"sizeInches": 6.1, "type": "OLED", "resolution": "2556x1179"},
		"mainImageUrl": "/uploads/main.jpg",
		"galleryImageUrls": ["/uploads/g1.jpg", " "],
		"storageOptions": [256, "128", {"valueGB": 512}, "abc"],
		"inStock": true,
		"stockCount": "4"
	}`)

	p := Normalize(raw, DeviceFields, NormalizeOptions{AssetBase: "https://cdn.example.com"})

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Apple", p.Brand)
	assert.Equal(t, "iPhone 15", p.Name)
	assert.Equal(t, float64(225000), p.Price)
	assert.Equal(t, float64(250000), p.OriginalPrice)
	require.NotNil(t, p.OfferType)
	assert.Equal(t, enums.DiscountTypePercent, *p.OfferType)
	assert.Equal(t, []string{`6.1" OLED`, "6GB RAM", "128GB Storage", "2556x1179", "iOS 17", "3349mAh"}, p.Specs)
	assert.Equal(t, []string{"https://cdn.example.com/uploads/main.jpg", "https://cdn.example.com/uploads/g1.jpg"}, p.Images)
	require.Len(t, p.Colors, 2)
	assert.Equal(t, "Black", p.Colors[0].Name)
	assert.True(t, p.Colors[1].IsDocument())
	assert.Equal(t, "c2", p.Colors[1].ID)
	require.Len(t, p.StorageOptions, 4)
	assert.Equal(t, StorageGB(128), p.StorageOptions[1])
	assert.False(t, p.StorageOptions[3].Valid)
	require.NotNil(t, p.InStock)
	assert.True(t, *p.InStock)
	require.NotNil(t, p.StockCount)
	assert.Equal(t, 4, *p.StockCount)
	assert.Equal(t, "not used", p.DeviceStatus)
	assert.Equal(t, enums.CatalogKindDevice, p.Kind)
}

func TestNormalizeDeviceOmitsAbsentSpecs(t *testing.T) {
	t.Parallel()
	raw := decodeDevice(t, `{"_id": "p2", "model": "Galaxy", "price": 100, "ramGB": "oops", "display": {"type": "AMOLED"}}`)

	p := Normalize(raw, DeviceFields, NormalizeOptions{})

	assert.Equal(t, []string{"AMOLED"}, p.Specs)
	assert.Equal(t, "Unknown", p.Brand)
	assert.Nil(t, p.OfferType)
	assert.Equal(t, float64(0), p.OfferValue)
	assert.Nil(t, p.InStock)
	assert.Nil(t, p.StockCount)
}

func TestNormalizeUsesPlaceholderWhenNoImages(t *testing.T) {
	t.Parallel()
	raw := decodeDevice(t, `{"_id": "p3", "model": "X", "price": 1}`)

	p := Normalize(raw, DeviceFields, NormalizeOptions{AssetBase: "https://cdn.example.com"})
	assert.Equal(t, []string{"/placeholder.svg?height=400&width=400"}, p.Images)

	p = Normalize(raw, DeviceFields, NormalizeOptions{PlaceholderImage: "/img/none.png"})
	assert.Equal(t, []string{"/img/none.png"}, p.Images)
}

func TestNormalizeDefaultBrandOverride(t *testing.T) {
	t.Parallel()
	raw := decodeDevice(t, `{"_id": "p4", "model": "iPhone 13", "price": 1}`)

	p := Normalize(raw, DeviceFields, NormalizeOptions{DefaultBrand: "Apple"})
	assert.Equal(t, "Apple", p.Brand)
}

func TestNormalizeSpeakerAndAccessorySpecs(t *testing.T) {
	t.Parallel()
	var speaker RawSpeaker
	require.NoError(t, json.Unmarshal([]byte(`{
		"_id": "s1", "brand": "JBL", "model": "Flip 6", "price": 30000,
		"discountType": "amount", "discountValue": 5000,
		"shortDescription": "Portable", "longDescription": "Waterproof speaker",
		"colors": ["Black", "Red"]
	}`), &speaker))

	p := Normalize(speaker, SpeakerFields, NormalizeOptions{})
	assert.Equal(t, []string{"Portable", "Waterproof speaker", "Black, Red"}, p.Specs)
	assert.Equal(t, float64(25000), p.Price)
	assert.Equal(t, "Waterproof speaker", p.Description)
	assert.Equal(t, enums.CatalogKindSpeaker, p.Kind)

	accessory := RawAccessory{RawBase: RawBase{ID: "a1", Brand: "Anker", Model: "Cable", Price: 10, ShortDescription: "USB-C"}}
	p = Normalize(accessory, AccessoryFields, NormalizeOptions{})
	assert.Equal(t, []string{"USB-C"}, p.Specs)
	assert.Equal(t, "Anker", p.Brand)
}

func TestNormalizeCoolerWarranty(t *testing.T) {
	t.Parallel()
	cooler := RawCooler{
		RawBase:        RawBase{ID: "c1", Brand: "Igloo", Model: "Ice 50", Price: 9000, LongDescription: "50L"},
		WarrantyType:   "Company",
		WarrantyPeriod: "1 year",
	}
	p := Normalize(cooler, CoolerFields, NormalizeOptions{})
	assert.Equal(t, []string{"50L", "Company 1 year"}, p.Specs)

	cooler.WarrantyType = ""
	p = Normalize(cooler, CoolerFields, NormalizeOptions{})
	assert.Equal(t, []string{"50L", "1 year"}, p.Specs)
}

func TestNormalizeIsDeterministic(t *testing.T) {
	t.Parallel()
	raw := decodeDevice(t, `{"_id": "p5", "brand": "Nokia", "model": "G22", "price": 500, "discountType": "amount", "discountValue": 20}`)
	first := Normalize(raw, DeviceFields, NormalizeOptions{})
	second := Normalize(raw, DeviceFields, NormalizeOptions{})
	assert.Equal(t, first, second)
}

func TestNormalizeBrand(t *testing.T) {
	t.Parallel()
	b := NormalizeBrand(RawBrand{ID: "b1", Name: "Samsung", Status: "Active", ImageURL: "/logos/s.png"}, NormalizeOptions{AssetBase: "https://cdn"})
	assert.Equal(t, Brand{ID: "b1", Name: "Samsung", Status: "Active", ImageURL: "https://cdn/logos/s.png"}, b)

	b = NormalizeBrand(RawBrand{ID: "b2", Name: "Oppo"}, NormalizeOptions{AssetBase: "https://cdn"})
	assert.Empty(t, b.ImageURL)
}
