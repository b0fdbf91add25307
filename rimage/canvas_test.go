package rimage

import (
	"bytes"
	"errors"
	"image"
	"math"
	"strconv"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestNewCanvas(t *testing.T) {
	c := NewCanvas(10, 20)
	test.That(t, c.Width(), test.ShouldEqual, 10)
	test.That(t, c.Height(), test.ShouldEqual, 20)
	test.That(t, c.Bounds(), test.ShouldResemble, image.Rect(0, 0, 10, 20))
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			test.That(t, c.Get(x, y), test.ShouldResemble, Black)
		}
	}

	empty := NewCanvas(0, 0)
	test.That(t, empty.Width(), test.ShouldEqual, 0)
	test.That(t, empty.PPM(), test.ShouldEqual, "P3\n0 0\n255\n\n\n")

	test.That(t, func() { NewCanvas(-1, 5) }, test.ShouldPanic)
	test.That(t, func() { NewCanvas(5, -1) }, test.ShouldPanic)
	test.That(t, func() { NewCanvas(math.MaxInt, 2) }, test.ShouldPanic)
	test.That(t, func() { NewCanvas(2, math.MaxInt/2+1) }, test.ShouldPanic)
}

func TestCanvasSetGet(t *testing.T) {
	c := NewCanvas(10, 20)
	red := NewColor(1, 0, 0)
	c.Set(2, 3, red)
	test.That(t, c.Get(2, 3), test.ShouldResemble, red)
	test.That(t, c.Get(3, 2), test.ShouldResemble, Black)

	odd := NewColor(0.1234567, -3, 42)
	c.Set(9, 19, odd)
	test.That(t, c.Get(9, 19), test.ShouldResemble, odd)
	test.That(t, c.At(9, 19), test.ShouldResemble, odd)
}

func TestCanvasOutOfBounds(t *testing.T) {
	c := NewCanvas(10, 20)
	for _, p := range []image.Point{{10, 0}, {0, 20}, {10, 20}, {-1, 0}, {0, -1}} {
		test.That(t, c.In(p.X, p.Y), test.ShouldBeFalse)
		test.That(t, func() { c.Get(p.X, p.Y) }, test.ShouldPanic)
		test.That(t, func() { c.Set(p.X, p.Y, Red) }, test.ShouldPanic)
		test.That(t, c.At(p.X, p.Y), test.ShouldResemble, Black)
	}
	test.That(t, c.In(9, 19), test.ShouldBeTrue)

	defer func() {
		err, ok := recover().(error)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldEqual, "pixel (10, 3) out of bounds for 10x20 canvas")
	}()
	c.Set(10, 3, Red)
}

func TestCanvasFillAndPaint(t *testing.T) {
	c := NewCanvas(7, 5)
	c.Fill(Blue)
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			test.That(t, c.Get(x, y), test.ShouldResemble, Blue)
		}
	}

	big := NewCanvas(101, 37)
	big.Paint(func(x, y int) Color {
		return NewColor(float32(x), float32(y), 1)
	})
	for y := 0; y < big.Height(); y++ {
		for x := 0; x < big.Width(); x++ {
			test.That(t, big.Get(x, y), test.ShouldResemble, NewColor(float32(x), float32(y), 1))
		}
	}
}

func TestCanvasClone(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(1, 1, Green)
	clone := c.Clone()
	clone.Set(0, 0, Red)
	test.That(t, clone.Get(1, 1), test.ShouldResemble, Green)
	test.That(t, c.Get(0, 0), test.ShouldResemble, Black)
}

func TestNewCanvasFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(3, 4, 6, 6))
	img.Set(3, 4, Red)
	img.Set(5, 5, Blue)

	c := NewCanvasFromImage(img)
	test.That(t, c.Width(), test.ShouldEqual, 3)
	test.That(t, c.Height(), test.ShouldEqual, 2)
	test.That(t, c.Get(0, 0), test.ShouldResemble, Red)
	test.That(t, c.Get(2, 1), test.ShouldResemble, Blue)
	test.That(t, c.Get(1, 0), test.ShouldResemble, Black)
}

func TestPPMHeader(t *testing.T) {
	test.That(t, NewCanvas(5, 3).PPMHeader(), test.ShouldEqual, "P3\n5 3\n255")
}

func examplePPMCanvas() *Canvas {
	c := NewCanvas(5, 3)
	c.Set(0, 0, NewColor(1.5, 0, 0))
	c.Set(2, 1, NewColor(0, 0.5, 0))
	c.Set(4, 2, NewColor(-0.5, 0, 1))
	return c
}

const examplePPMBody = "255 0 0 0 0 0 0 0 0 0 0 0 0 0 0\n" +
	"0 0 0 0 0 0 0 128 0 0 0 0 0 0 0\n" +
	"0 0 0 0 0 0 0 0 0 0 0 0 0 0 255"

func TestPPMBody(t *testing.T) {
	test.That(t, examplePPMCanvas().PPMBody(), test.ShouldEqual, examplePPMBody)
}

func TestPPM(t *testing.T) {
	c := examplePPMCanvas()
	doc := c.PPM()
	test.That(t, doc, test.ShouldEqual, "P3\n5 3\n255\n\n"+examplePPMBody+"\n")
	test.That(t, strings.HasSuffix(doc, "\n"), test.ShouldBeTrue)

	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, n, test.ShouldEqual, int64(len(doc)))
	test.That(t, buf.String(), test.ShouldEqual, doc)
}

func TestPPMLargeCanvas(t *testing.T) {
	c := NewCanvas(64, 33)
	c.Paint(func(x, y int) Color {
		return NewColor(float32(x)/63, float32(y)/32, float32(x+y)/95-0.25)
	})

	var expected strings.Builder
	for y := 0; y < c.Height(); y++ {
		if y > 0 {
			expected.WriteString("\n")
		}
		for x := 0; x < c.Width(); x++ {
			p := c.Get(x, y)
			if x > 0 {
				expected.WriteString(" ")
			}
			expected.WriteString(strconv.Itoa(int(channelToByte(p.R))) + " " +
				strconv.Itoa(int(channelToByte(p.G))) + " " +
				strconv.Itoa(int(channelToByte(p.B))))
		}
	}
	test.That(t, c.PPMBody(), test.ShouldEqual, expected.String())

	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, buf.String(), test.ShouldEqual, c.PPM())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPPMWriteError(t *testing.T) {
	n, err := NewCanvas(5, 3).WriteTo(failingWriter{})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "disk full")
	test.That(t, n, test.ShouldEqual, int64(0))

	c := NewCanvas(5, 3)
	w := &shortWriter{limit: 10}
	n, err = c.WriteTo(w)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, n, test.ShouldEqual, int64(10))
	test.That(t, w.buf.String(), test.ShouldEqual, c.PPM()[:10])
}

// shortWriter accepts limit bytes and then fails.
type shortWriter struct {
	buf   bytes.Buffer
	limit int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if room := w.limit - w.buf.Len(); len(p) > room {
		w.buf.Write(p[:room])
		return room, errors.New("disk full")
	}
	return w.buf.Write(p)
}

func TestChannelToByte(t *testing.T) {
	for _, tc := range []struct {
		in       float32
		expected uint8
	}{
		{0, 0},
		{1, 255},
		{0.5, 128},
		{1.5, 255},
		{-0.5, 0},
		{0.001, 1},
		{float32(math.Inf(1)), 255},
		{float32(math.Inf(-1)), 0},
		{float32(math.NaN()), 0},
	} {
		test.That(t, channelToByte(tc.in), test.ShouldEqual, tc.expected)
	}
}
