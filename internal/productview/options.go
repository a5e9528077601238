package productview

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/angelmondragon/storefront/internal/catalog"
)

var hexColor = regexp.MustCompile(`(?i)^#([0-9a-f]{3}|[0-9a-f]{6})$`)

// ColorOption is a selectable color on the detail page.
type ColorOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Hex      string `json:"hex"`
}

// NormalizeColors turns catalog colors into selectable options. Documents keep
// their id, falling back to the list position; plain names get "{index}-{name}"
// and a hex value when the name itself is a hex code.
func NormalizeColors(colors []catalog.Color) []ColorOption {
	out := make([]ColorOption, 0, len(colors))
	for i, c := range colors {
		switch {
		case c.IsDocument():
			id := c.ID
			if id == "" {
				id = strconv.Itoa(i)
			}
			out = append(out, ColorOption{ID: id, Name: c.Name, ImageURL: c.ImageURL, Hex: c.Hex})
		case c.Valid():
			opt := ColorOption{ID: strconv.Itoa(i) + "-" + c.Name, Name: c.Name}
			if hexColor.MatchString(strings.TrimSpace(c.Name)) {
				opt.Hex = c.Name
			}
			out = append(out, opt)
		}
	}
	return out
}

// NormalizeStorages keeps the valid capacities, deduplicated and ascending.
func NormalizeStorages(options []catalog.StorageOption) []float64 {
	seen := make(map[float64]struct{}, len(options))
	out := make([]float64, 0, len(options))
	for _, o := range options {
		if !o.Valid {
			continue
		}
		if _, ok := seen[o.GB]; ok {
			continue
		}
		seen[o.GB] = struct{}{}
		out = append(out, o.GB)
	}
	sort.Float64s(out)
	return out
}

func formatNumber(gb float64) string {
	return strconv.FormatFloat(gb, 'f', -1, 64)
}
