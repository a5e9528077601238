package enums

import "testing"

func TestParseDiscountTypeNormalizes(t *testing.T) {
	for _, raw := range []string{"percent", " Percent ", "PERCENT"} {
		got, err := ParseDiscountType(raw)
		if err != nil || got != DiscountTypePercent {
			t.Fatalf("ParseDiscountType(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := ParseDiscountType("bogo"); err == nil {
		t.Fatal("expected error for unknown discount type")
	}
	if _, err := ParseDiscountType(""); err == nil {
		t.Fatal("expected error for empty discount type")
	}
}

func TestThemeOpposite(t *testing.T) {
	if ThemeDark.Opposite() != ThemeLight || ThemeLight.Opposite() != ThemeDark {
		t.Fatal("themes should flip")
	}
	if _, err := ParseTheme("sepia"); err == nil {
		t.Fatal("expected invalid theme error")
	}
}

func TestParseProductSortDefaultsToFeatured(t *testing.T) {
	got, err := ParseProductSort("")
	if err != nil || got != ProductSortFeatured {
		t.Fatalf("unexpected %q, %v", got, err)
	}
	if _, err := ParseProductSort("newest"); err == nil {
		t.Fatal("expected error for unknown sort")
	}
}

func TestDeviceStatusFor(t *testing.T) {
	if DeviceStatusFor(true) != DeviceStatusUsed || DeviceStatusFor(false) != DeviceStatusNotUsed {
		t.Fatal("unexpected device status mapping")
	}
}
