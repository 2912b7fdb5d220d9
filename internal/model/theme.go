package model

import (
	"fmt"
	"strings"
)

// Theme is the process-wide color scheme preference.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Toggle returns the opposite theme (light<->dark).
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme maps the persisted string form back to a Theme.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	}
	return ThemeLight, fmt.Errorf("invalid theme %q", s)
}
