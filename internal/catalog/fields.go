package catalog

import (
	"strings"

	"github.com/angelmondragon/storefront/pkg/enums"
)

// DeviceFields maps phones and used items.
var DeviceFields = FieldMap[RawDevice]{
	Kind:         enums.CatalogKindDevice,
	DefaultBrand: "Unknown",
	Base:         func(d RawDevice) RawBase { return d.RawBase },
	Specs:        deviceSpecs,
	Enrich: func(d RawDevice, p *Product) {
		p.DeviceStatus = d.DeviceStatus
		p.StorageOptions = firstStorageList(d.AvailableStorages, d.StorageOptionsValues, d.Storages, d.StorageOptions)
		p.Description = describe(d.RawBase)
	},
}

var SpeakerFields = FieldMap[RawSpeaker]{
	Kind:   enums.CatalogKindSpeaker,
	Base:   func(s RawSpeaker) RawBase { return s.RawBase },
	Specs:  func(s RawSpeaker) []string { return descriptiveSpecs(s.RawBase, joinColors(s.Colors)) },
	Enrich: func(s RawSpeaker, p *Product) { p.Description = describe(s.RawBase) },
}

var CoolerFields = FieldMap[RawCooler]{
	Kind: enums.CatalogKindCooler,
	Base: func(c RawCooler) RawBase { return c.RawBase },
	Specs: func(c RawCooler) []string {
		warranty := strings.TrimSpace(strings.Join(compact([]string{c.WarrantyType, c.WarrantyPeriod}), " "))
		return descriptiveSpecs(c.RawBase, warranty)
	},
	Enrich: func(c RawCooler, p *Product) { p.Description = describe(c.RawBase) },
}

var AccessoryFields = FieldMap[RawAccessory]{
	Kind:   enums.CatalogKindAccessory,
	Base:   func(a RawAccessory) RawBase { return a.RawBase },
	Specs:  func(a RawAccessory) []string { return descriptiveSpecs(a.RawBase, joinColors(a.Colors)) },
	Enrich: func(a RawAccessory, p *Product) { p.Description = describe(a.RawBase) },
}

// deviceSpecs yields display, RAM, storage, resolution, OS and battery, in that order.
func deviceSpecs(d RawDevice) []string {
	var specs []string
	if d.Display != nil {
		var label string
		if size := d.Display.SizeInches.Float64(); size != 0 {
			label = formatNumber(size) + `"`
		}
		if t := strings.TrimSpace(d.Display.Type); t != "" {
			label += " " + t
		}
		specs = append(specs, label)
	}
	if ram := d.RAMGB.Float64(); ram != 0 {
		specs = append(specs, formatNumber(ram)+"GB RAM")
	}
	if storage := d.StorageGB.Float64(); storage != 0 {
		specs = append(specs, formatNumber(storage)+"GB Storage")
	}
	if d.Display != nil {
		specs = append(specs, d.Display.Resolution)
	}
	specs = append(specs, d.OS)
	if battery := d.BatteryMah.Float64(); battery != 0 {
		specs = append(specs, formatNumber(battery)+"mAh")
	}
	return specs
}

func descriptiveSpecs(base RawBase, extra string) []string {
	return []string{base.ShortDescription, base.LongDescription, extra}
}

func joinColors(colors []Color) string {
	names := make([]string, 0, len(colors))
	for _, c := range colors {
		if c.Valid() && c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return strings.Join(names, ", ")
}

func describe(base RawBase) string {
	if d := strings.TrimSpace(base.LongDescription); d != "" {
		return d
	}
	return strings.TrimSpace(base.ShortDescription)
}

func firstStorageList(lists ...[]StorageOption) []StorageOption {
	for _, list := range lists {
		if len(list) > 0 {
			return list
		}
	}
	return nil
}
