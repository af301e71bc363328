package draw

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/colornames"
	"golang.org/x/image/math/f32"
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("draw: invalid color")

// Color is a non-premultiplied linear RGBA color.
// Each component is in the range [0, 1].
type Color struct {
	R, G, B, A float32
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB8 creates an opaque color from 8-bit components.
func RGB8(r, g, b uint8) Color {
	return Color{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255, A: 1}
}

// FromColor converts a standard color.Color.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Color{}
	}
	// color.Color is premultiplied.
	return Color{
		R: float32(r) / float32(a),
		G: float32(g) / float32(a),
		B: float32(b) / float32(a),
		A: float32(a) / 65535,
	}
}

// Std converts the color to the standard color.Color interface.
func (c Color) Std() color.Color {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// Vec4 returns the color as a mesh vertex attribute.
func (c Color) Vec4() f32.Vec4 {
	return f32.Vec4{c.R, c.G, c.B, c.A}
}

// GPU returns the color in the GPU type used for clear values.
func (c Color) GPU() gputypes.Color {
	return gputypes.NewColor(float64(c.R), float64(c.G), float64(c.B), float64(c.A))
}

// WithAlpha returns the color with alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// Premultiply returns a premultiplied color.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Lerp performs linear interpolation between two colors.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Hex returns the color as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}

// String returns the color as "#rrggbbaa".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B), to8(c.A))
}

func to8(v float32) uint8 {
	return uint8(math.Round(float64(clamp01(v)) * 255))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without a
// leading '#'. Invalid input yields opaque black.
func Hex(hex string) Color {
	c, err := parseHex(hex)
	if err != nil {
		return Black
	}
	return c
}

func parseHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	var v [4]uint32
	v[3] = 255
	switch len(hex) {
	case 3, 4:
		for i := range len(hex) {
			d, ok := hexDigit(hex[i])
			if !ok {
				return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
			}
			v[i] = d * 17
		}
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			hi, ok1 := hexDigit(hex[i])
			lo, ok2 := hexDigit(hex[i+1])
			if !ok1 || !ok2 {
				return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
			}
			v[i/2] = hi<<4 | lo
		}
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	return Color{
		R: float32(v[0]) / 255,
		G: float32(v[1]) / 255,
		B: float32(v[2]) / 255,
		A: float32(v[3]) / 255,
	}, nil
}

func hexDigit(c byte) (uint32, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint32(c - 'a' + 10), true
	case 'A' <= c && c <= 'F':
		return uint32(c - 'A' + 10), true
	}
	return 0, false
}

// Named returns the SVG 1.1 named color, such as "tomato" or "steelblue".
func Named(name string) (Color, bool) {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return Color{}, false
	}
	return RGB8(c.R, c.G, c.B), true
}

// ParseColor parses a hex color ("#ff8800", "f80", "#ff880080") or an SVG
// color name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := Named(s); ok {
		return c, nil
	}
	return parseHex(s)
}

// HSL creates a color from HSL values.
// h is hue [0, 360), s is saturation [0, 1], l is lightness [0, 1].
func HSL(h, s, l float32) Color {
	hh := math.Mod(float64(h), 360)
	if hh < 0 {
		hh += 360
	}
	hh /= 360

	sf, lf := float64(s), float64(l)
	c := (1 - math.Abs(2*lf-1)) * sf
	x := c * (1 - math.Abs(math.Mod(hh*6, 2)-1))
	m := lf - c/2

	var r, g, b float64
	switch {
	case hh < 1.0/6:
		r, g, b = c, x, 0
	case hh < 2.0/6:
		r, g, b = x, c, 0
	case hh < 3.0/6:
		r, g, b = 0, c, x
	case hh < 4.0/6:
		r, g, b = 0, x, c
	case hh < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return RGB(float32(r+m), float32(g+m), float32(b+m))
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Yellow      = RGB(1, 1, 0)
	Cyan        = RGB(0, 1, 1)
	Magenta     = RGB(1, 0, 1)
	Transparent = RGBA(0, 0, 0, 0)
)
