// Package rimage holds the color and canvas types used to accumulate and export rendered images.
package rimage

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"go.viam.com/raytrace/utils"
)

// Color is a linear RGB color. Channels are nominally in [0, 1] but may fall outside that
// range while colors are being combined; nothing in this type clamps them.
type Color struct {
	R, G, B float32
}

// Some useful colors.
var (
	Black = NewColor(0, 0, 0)
	White = NewColor(1, 1, 1)
	Red   = NewColor(1, 0, 0)
	Green = NewColor(0, 1, 0)
	Blue  = NewColor(0, 0, 1)
)

// NewColor returns a color with the given channels.
func NewColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the channel-wise sum.
func (c Color) Add(o Color) Color {
	return NewColor(c.R+o.R, c.G+o.G, c.B+o.B)
}

// Negate returns the color with every channel negated.
func (c Color) Negate() Color {
	return NewColor(-c.R, -c.G, -c.B)
}

// Sub returns c + (-o).
func (c Color) Sub(o Color) Color {
	return c.Add(o.Negate())
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float32) Color {
	return NewColor(c.R*s, c.G*s, c.B*s)
}

// Div is Scale(1/s).
func (c Color) Div(s float32) Color {
	return c.Scale(1 / s)
}

// Multiply returns the Hadamard product of c and o, used to tint one color by another.
func (c Color) Multiply(o Color) Color {
	return NewColor(c.R*o.R, c.G*o.G, c.B*o.B)
}

// AlmostEqual reports whether every channel of c and o is within utils.Epsilon.
func (c Color) AlmostEqual(o Color) bool {
	return utils.Float32AlmostEqual(c.R, o.R) &&
		utils.Float32AlmostEqual(c.G, o.G) &&
		utils.Float32AlmostEqual(c.B, o.B)
}

func (c Color) String() string {
	return fmt.Sprintf("color(%v, %v, %v)", c.R, c.G, c.B)
}

// Hex returns the color as #rrggbb after clamping to [0, 1].
func (c Color) Hex() string {
	return c.Colorful().Clamped().Hex()
}

// Colorful returns the unclamped color as a colorful.Color.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

// NewColorFromColorful converts a colorful.Color.
func NewColorFromColorful(cc colorful.Color) Color {
	return NewColor(float32(cc.R), float32(cc.G), float32(cc.B))
}

// NewColorFromHex parses a color in "#rrggbb" or "#rgb" form.
func NewColorFromHex(hex string) (Color, error) {
	cc, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, errors.Wrapf(err, "bad color %q", hex)
	}
	return NewColorFromColorful(cc), nil
}

// RGBA implements color.Color. Channels are clamped and rounded to the nearest 16 bit value;
// this is only used when handing a canvas to image encoders. PPM output does its own conversion.
func (c Color) RGBA() (r, g, b, a uint32) {
	return channelTo16(c.R), channelTo16(c.G), channelTo16(c.B), 0xffff
}

func channelTo16(v float32) uint32 {
	f := float64(v)
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= 1 {
		return 0xffff
	}
	return uint32(math.Round(f * 0xffff))
}

// NewColorFromColor converts any color.Color. Alpha is ignored.
func NewColorFromColor(c color.Color) Color {
	if cc, ok := c.(Color); ok {
		return cc
	}
	r, g, b, _ := c.RGBA()
	return NewColor(float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff)
}

// TheColorModel converts colors into Colors.
var TheColorModel = color.ModelFunc(func(c color.Color) color.Color {
	return NewColorFromColor(c)
})
