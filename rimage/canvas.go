package rimage

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"go.viam.com/raytrace/utils"
)

const (
	ppmMagic    = "P3"
	ppmMaxValue = 255
)

// Canvas is a fixed size grid of colors stored row-major. Get and Set are not synchronized;
// a canvas is meant to have a single owner. Paint is the only method that writes from
// multiple goroutines and it never lets two of them touch the same pixel.
type Canvas struct {
	width, height int
	pixels        []Color
}

// NewCanvas returns a black canvas. It panics if either dimension is negative or
// if width*height overflows an int.
func NewCanvas(width, height int) *Canvas {
	if width < 0 || height < 0 || (width != 0 && width*height/width != height) {
		panic(utils.NewInvalidDimensionsError(width, height))
	}
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]Color, width*height),
	}
}

// NewCanvasFromImage copies img into a new canvas whose origin is img's top left corner.
func NewCanvasFromImage(img image.Image) *Canvas {
	if c, ok := img.(*Canvas); ok {
		return c.Clone()
	}
	bounds := img.Bounds()
	c := NewCanvas(bounds.Dx(), bounds.Dy())
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			c.pixels[c.kxy(x, y)] = NewColorFromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return c
}

// Clone returns a deep copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	pixels := make([]Color, len(c.pixels))
	copy(pixels, c.pixels)
	return &Canvas{width: c.width, height: c.height, pixels: pixels}
}

// Width returns the number of columns.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the number of rows.
func (c *Canvas) Height() int {
	return c.height
}

// In reports whether (x, y) addresses a pixel of the canvas.
func (c *Canvas) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

func (c *Canvas) kxy(x, y int) int {
	return (y * c.width) + x
}

func (c *Canvas) mustBeIn(x, y int) {
	if !c.In(x, y) {
		panic(utils.NewOutOfBoundsError(x, y, c.width, c.height))
	}
}

// Get returns the color at (x, y). It panics if the coordinate is outside the canvas.
func (c *Canvas) Get(x, y int) Color {
	c.mustBeIn(x, y)
	return c.pixels[c.kxy(x, y)]
}

// Set stores col at (x, y). It panics if the coordinate is outside the canvas.
func (c *Canvas) Set(x, y int, col Color) {
	c.mustBeIn(x, y)
	c.pixels[c.kxy(x, y)] = col
}

// Fill sets every pixel to col.
func (c *Canvas) Fill(col Color) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
}

// Paint sets every pixel to the color f returns for it. The canvas is split into disjoint blocks
// that are painted concurrently, so f must be safe to call from multiple goroutines.
func (c *Canvas) Paint(f func(x, y int) Color) {
	utils.ParallelForEachPixel(image.Point{X: c.width, Y: c.height}, func(x, y int) {
		c.pixels[c.kxy(x, y)] = f(x, y)
	})
}

// ColorModel implements image.Image.
func (c *Canvas) ColorModel() color.Model {
	return TheColorModel
}

// Bounds implements image.Image.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// At implements image.Image. Unlike Get it returns black outside of the canvas, as image.Image requires.
func (c *Canvas) At(x, y int) color.Color {
	if !c.In(x, y) {
		return Black
	}
	return c.pixels[c.kxy(x, y)]
}

// PPMHeader returns the plain PPM header without a trailing newline.
func (c *Canvas) PPMHeader() string {
	return fmt.Sprintf("%s\n%d %d\n%d", ppmMagic, c.width, c.height, ppmMaxValue)
}

// PPMBody returns one line of space separated channel values per row, without a trailing newline.
func (c *Canvas) PPMBody() string {
	rows := make([]string, c.height)
	var buf []byte
	for y := range rows {
		buf = c.appendRow(buf[:0], y)
		rows[y] = string(buf)
	}
	return strings.Join(rows, "\n")
}

// PPM returns a complete plain PPM document: header, a blank line, body and a trailing newline.
func (c *Canvas) PPM() string {
	return c.PPMHeader() + "\n\n" + c.PPMBody() + "\n"
}

// WriteTo writes the same bytes as PPM to w, one row at a time. The returned count is
// the number of bytes w accepted.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	write := func(b []byte) error {
		_, err := bw.Write(b)
		return err
	}

	if err := write([]byte(c.PPMHeader() + "\n\n")); err != nil {
		return cw.n, err
	}
	var buf []byte
	for y := 0; y < c.height; y++ {
		buf = buf[:0]
		if y > 0 {
			buf = append(buf, '\n')
		}
		buf = c.appendRow(buf, y)
		if err := write(buf); err != nil {
			return cw.n, err
		}
	}
	if err := write([]byte{'\n'}); err != nil {
		return cw.n, err
	}
	err := bw.Flush()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

func (c *Canvas) appendRow(buf []byte, y int) []byte {
	for x := 0; x < c.width; x++ {
		p := c.pixels[c.kxy(x, y)]
		if x > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendUint(buf, uint64(channelToByte(p.R)), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendUint(buf, uint64(channelToByte(p.G)), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendUint(buf, uint64(channelToByte(p.B)), 10)
	}
	return buf
}

// channelToByte scales v by 255 and rounds up. The result saturates at 0 and 255 and NaN becomes 0,
// so 1.5 maps to 255 and -0.5 maps to 0.
func channelToByte(v float32) uint8 {
	scaled := math.Ceil(float64(v * ppmMaxValue))
	switch {
	case math.IsNaN(scaled) || scaled <= 0:
		return 0
	case scaled >= ppmMaxValue:
		return ppmMaxValue
	default:
		return uint8(scaled)
	}
}
