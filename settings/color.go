package settings

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
func ParseColor(s string) (color.NRGBA, error) {
	if c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}

	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("settings: invalid color %q", s)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		return uint8(v), err
	}

	var out color.NRGBA
	var err error
	if out.R, err = parse(0); err != nil {
		return color.NRGBA{}, fmt.Errorf("settings: invalid color %q: %w", s, err)
	}
	if out.G, err = parse(2); err != nil {
		return color.NRGBA{}, fmt.Errorf("settings: invalid color %q: %w", s, err)
	}
	if out.B, err = parse(4); err != nil {
		return color.NRGBA{}, fmt.Errorf("settings: invalid color %q: %w", s, err)
	}
	out.A = 0xff
	if len(hex) == 8 {
		if out.A, err = parse(6); err != nil {
			return color.NRGBA{}, fmt.Errorf("settings: invalid color %q: %w", s, err)
		}
	}
	return out, nil
}

// MustColor parses s and falls back to fallback on error.
func MustColor(s string, fallback color.NRGBA) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
