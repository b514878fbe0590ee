package model

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

// Color is a hex color, "#RRGGBB" or "#RRGGBBAA", in descriptions.
type Color struct {
	color.NRGBA
}

// ParseColor parses a hex color with or without the leading '#'.
func ParseColor(s string) (Color, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || (len(raw) != 3 && len(raw) != 4) {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	c := Color{color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 255}}
	if len(raw) == 4 {
		c.A = raw[3]
	}
	return c, nil
}

func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// colorOf returns nil for a nil description color.
func colorOf(c *Color) color.Color {
	if c == nil {
		return nil
	}
	return c.NRGBA
}
