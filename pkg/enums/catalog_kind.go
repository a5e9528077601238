package enums

import "fmt"

// CatalogKind identifies which upstream collection a product came from.
type CatalogKind string

const (
	CatalogKindDevice    CatalogKind = "device"
	CatalogKindSpeaker   CatalogKind = "speaker"
	CatalogKindCooler    CatalogKind = "cooler"
	CatalogKindAccessory CatalogKind = "accessory"
)

var validCatalogKinds = []CatalogKind{
	CatalogKindDevice,
	CatalogKindSpeaker,
	CatalogKindCooler,
	CatalogKindAccessory,
}

func (k CatalogKind) String() string {
	return string(k)
}

func (k CatalogKind) IsValid() bool {
	for _, candidate := range validCatalogKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

func ParseCatalogKind(value string) (CatalogKind, error) {
	for _, candidate := range validCatalogKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid catalog kind %q", value)
}
