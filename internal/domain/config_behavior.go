package domain

import "strings"

// HistoryLimit returns the configured listing cap, falling back to the default.
func (c *Config) HistoryLimit() int {
	if c.History.Limit <= 0 {
		return DefaultHistoryLimit
	}
	return c.History.Limit
}

// DefaultPair returns the converter's initial selection. Unset or
// unsupported values fall back to "Decimal to Binary".
func (c *Config) DefaultPair() ConversionPair {
	pair := ConversionPair{From: c.Preferences.DefaultFrom, To: c.Preferences.DefaultTo}
	if !RadixSetFixed.Contains(pair.From) {
		pair.From = Decimal
	}
	if !RadixSetFixed.Contains(pair.To) {
		pair.To = Binary
	}
	return pair
}

// NormalizeFontSize maps user input onto one of the offered font sizes.
// The second return value is false when the input matches none of them.
func NormalizeFontSize(size string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(size)) {
	case "small":
		return FontSizeSmall, true
	case "medium", "":
		return FontSizeMedium, true
	case "large":
		return FontSizeLarge, true
	default:
		return size, false
	}
}

// ThemeName describes the theme toggle for display.
func (p Preferences) ThemeName() string {
	if p.DarkTheme {
		return "dark"
	}
	return "light"
}
