// Package colorutil provides shared color utilities for the ScatterForge application.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// Fallback is used when a dataset has no color assigned and no scheme applies.
var Fallback = color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}

// ParseHex parses a "#rrggbb" or "#rgb" color string.
func ParseHex(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b uint8
	switch len(s) {
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		r, g, b = r*17, g*17, b*17
	default:
		return color.NRGBA{}, fmt.Errorf("parse color %q: want #rrggbb or #rgb", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// ParseHexOr parses s, returning fallback when s is empty or malformed.
func ParseHexOr(s string, fallback color.NRGBA) color.NRGBA {
	if s == "" {
		return fallback
	}
	c, err := ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}

// Hex formats a color as "#rrggbb", discarding alpha.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// WithAlpha returns c with its alpha channel replaced by a (0.0-1.0).
// Used for translucent error bands.
func WithAlpha(c color.Color, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a * 255)}
}
