package rimage

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

var errBadPlainPPM = errors.New("invalid plain ppm")

// maxPlainPPMPixels bounds the canvas a header may ask for before any pixel data is read.
const maxPlainPPMPixels = 1 << 26

// decodePlainPPM reads a plain (P3) PPM. Channels are divided by the header's maximum
// value, so a file written by Canvas.WriteTo with only 0 and 1 channels reads back exactly.
func decodePlainPPM(br *bufio.Reader) (*Canvas, error) {
	magic, err := readPlainToken(br)
	if err != nil {
		return nil, err
	}
	if magic != ppmMagic {
		return nil, errors.Wrapf(errBadPlainPPM, "magic number %q", magic)
	}

	var header [3]int
	for i := range header {
		if header[i], err = readPlainInt(br); err != nil {
			return nil, errors.Wrap(err, "header")
		}
	}
	width, height, maxValue := header[0], header[1], header[2]
	if maxValue <= 0 || maxValue > 0xffff {
		return nil, errors.Wrapf(errBadPlainPPM, "max value %d", maxValue)
	}

	if width != 0 && (width*height/width != height || width*height > maxPlainPPMPixels) {
		return nil, errors.Wrapf(errBadPlainPPM, "canvas size %dx%d", width, height)
	}

	c := NewCanvas(width, height)
	scale := float32(maxValue)
	for i := range c.pixels {
		var rgb [3]int
		for j := range rgb {
			if rgb[j], err = readPlainInt(br); err != nil {
				return nil, errors.Wrapf(err, "pixel %d", i)
			}
			if rgb[j] > maxValue {
				return nil, errors.Wrapf(errBadPlainPPM, "pixel %d has channel %d above %d", i, rgb[j], maxValue)
			}
		}
		c.pixels[i] = NewColor(float32(rgb[0])/scale, float32(rgb[1])/scale, float32(rgb[2])/scale)
	}
	return c, nil
}

func readPlainInt(br *bufio.Reader) (int, error) {
	tok, err := readPlainToken(br)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 {
		return 0, errors.Wrapf(errBadPlainPPM, "bad number %q", tok)
	}
	return v, nil
}

// readPlainToken returns the next whitespace separated token, skipping '#' comments.
func readPlainToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(tok) > 0 {
				return string(tok), nil
			}
			if errors.Is(err, io.EOF) {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		switch {
		case b == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}
