package enums

import (
	"fmt"
	"strings"
)

// Theme is the persisted color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) String() string {
	return string(t)
}

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Opposite returns the other theme; unknown values flip to dark.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func ParseTheme(value string) (Theme, error) {
	theme := Theme(strings.ToLower(strings.TrimSpace(value)))
	if theme.IsValid() {
		return theme, nil
	}
	return "", fmt.Errorf("invalid theme %q", value)
}
