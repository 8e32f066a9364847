package colorfill

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// White is the fallback for malformed base colors.
var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// ParseHex parses #rgb, #rrggbb or #rrggbbaa. The leading '#' is optional
// and the alpha pair is ignored; the result is always opaque.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3, 6:
	case 8:
		h = h[:6]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	for _, c := range h {
		if !isHexDigit(c) {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
	}

	c, err := colorful.Hex("#" + h)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustHexOrWhite parses s and falls back to white when it is malformed.
func MustHexOrWhite(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		return White
	}
	return c
}

// FormatHex renders c as lowercase #rrggbb.
func FormatHex(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
