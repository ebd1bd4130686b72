// Package ui contains types that may be used by different editor frontends.
package ui

import (
	"fmt"
	"strings"
)

// Color is a terminal color used for highlighting and hints.
type Color int

// Values for Color. Default leaves the terminal's current attributes alone;
// Error is the color used for unbalanced brackets.
const (
	Default Color = iota
	Black
	Red
	Green
	Brown
	Blue
	Magenta
	Cyan
	LightGray
	Gray
	BrightRed
	BrightGreen
	Yellow
	BrightBlue
	BrightMagenta
	BrightCyan
	White
	Error

	// Normal is the color of unhighlighted text.
	Normal = LightGray
)

var colorNames = [...]string{
	"default",
	"black", "red", "green", "brown", "blue", "magenta", "cyan", "lightgray",
	"gray", "bright-red", "bright-green", "yellow", "bright-blue",
	"bright-magenta", "bright-cyan", "white",
	"error",
}

var colorSGRs = [...]string{
	"",
	"22;30", "22;31", "22;32", "22;33", "22;34", "22;35", "22;36", "22;37",
	"1;30", "1;31", "1;32", "1;33", "1;34", "1;35", "1;36", "1;37",
	"101;1;33",
}

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return fmt.Sprintf("(bad color %d)", int(c))
	}
	return colorNames[c]
}

// SGR returns the parameters of the SGR sequence that selects the color after
// a reset. It returns an empty string for Default and invalid colors.
func (c Color) SGR() string {
	if c < 0 || int(c) >= len(colorSGRs) {
		return ""
	}
	return colorSGRs[c]
}

// ParseColor parses the name of a color. Names are case-insensitive and
// underscores may be used in place of dashes.
func ParseColor(s string) (Color, error) {
	name := strings.ReplaceAll(strings.ToLower(s), "_", "-")
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	if name == "normal" {
		return Normal, nil
	}
	return Default, fmt.Errorf("bad color: %s", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(p []byte) error {
	color, err := ParseColor(string(p))
	if err != nil {
		return err
	}
	*c = color
	return nil
}
