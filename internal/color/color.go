// Package color provides the colour values used by the sldview layers:
// hex parsing, intensity lowering, CSS formatting and the curve colour ramp.
package color

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

// ErrInvalidHex is returned by ParseHex for malformed colour strings.
var ErrInvalidHex = errors.New("color: invalid hex color")

// RGB is a colour with components in [0,1].
type RGB struct {
	R, G, B float64
}

// ParseHex parses "#rrggbb" (the leading '#' is optional).
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return RGB{
		R: float64((v>>16)&0xFF) / 255,
		G: float64((v>>8)&0xFF) / 255,
		B: float64(v&0xFF) / 255,
	}, nil
}

// MustHex is like ParseHex but panics on error. Used for palette constants.
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// LowerIntensity divides every component by divisor.
// A divisor <= 0 returns c unchanged.
func (c RGB) LowerIntensity(divisor float64) RGB {
	if divisor <= 0 {
		return c
	}
	return RGB{R: c.R / divisor, G: c.G / divisor, B: c.B / divisor}
}

// Scale multiplies every component by f, clamping to 1.
func (c RGB) Scale(f float64) RGB {
	return RGB{R: clamp01(c.R * f), G: clamp01(c.G * f), B: clamp01(c.B * f)}
}

// CSS formats the colour as "rgba(r, g, b, a)" with 8-bit channels.
func (c RGB) CSS(alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)",
		to8(c.R), to8(c.G), to8(c.B),
		strconv.FormatFloat(alpha, 'g', -1, 64))
}

// GG converts the colour to a gg colour with the given alpha.
func (c RGB) GG(alpha float64) gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// NRGBA converts the colour to a non-premultiplied 8-bit colour.
func (c RGB) NRGBA(alpha float64) color.NRGBA {
	//nolint:gosec // G115: to8 clamps to [0,255]
	return color.NRGBA{R: uint8(to8(c.R)), G: uint8(to8(c.G)), B: uint8(to8(c.B)), A: uint8(to8(alpha))}
}

// Lerp mixes a and b by t.
func Lerp(a, b RGB, t float64) RGB {
	return RGB{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

// to8 truncates like the canvas does; the epsilon absorbs the rounding of
// values that came from 8-bit hex digits.
func to8(v float64) int {
	return int(math.Floor(clamp01(v)*255 + 1e-9))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
