package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an RGB colour with components in [0,1].
type Color struct {
	R, G, B float64
}

// RGB8 returns the colour rounded to 8-bit channels, clamped to [0,255].
func (c Color) RGB8() (r, g, b uint8) {
	return channel8(c.R), channel8(c.G), channel8(c.B)
}

func channel8(v float64) uint8 {
	n := int(0.5 + 255*v)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// Clamped returns the colour with every component limited to [0,1].
func (c Color) Clamped() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseColor parses "#rgb" and "#rrggbb". The empty string and "none"
// return nil with no error.
func ParseColor(s string) (*Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return nil, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("geom: invalid colour %q", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("geom: invalid colour %q: %w", s, err)
	}
	return &Color{
		R: float64((n>>16)&0xff) / 255,
		G: float64((n>>8)&0xff) / 255,
		B: float64(n&0xff) / 255,
	}, nil
}
