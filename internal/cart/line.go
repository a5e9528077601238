package cart

import "strings"

// Line is one purchasable entry. Variants of the same catalog product carry
// distinct ids, so they occupy separate lines.
type Line struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

// sanitize drops entries a stored cart cannot sensibly contain.
func sanitize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l.ID) == "" || l.Quantity <= 0 {
			continue
		}
		out = append(out, l)
	}
	return out
}
