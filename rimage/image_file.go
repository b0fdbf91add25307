package rimage

import (
	"bufio"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lmittmann/ppm"
	"github.com/pkg/errors"
	"github.com/xfmoulet/qoi"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"go.viam.com/raytrace/utils"
)

// Format identifies an on disk image encoding.
type Format string

// The formats a canvas can be written to and read from.
const (
	FormatPPM  = Format("ppm")
	FormatPNG  = Format("png")
	FormatJPEG = Format("jpeg")
	FormatBMP  = Format("bmp")
	FormatTIFF = Format("tiff")
	FormatQOI  = Format("qoi")
)

// FormatFromPath picks a format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		return FormatPPM, nil
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".qoi":
		return FormatQOI, nil
	default:
		return "", utils.NewUnsupportedFormatError(path)
	}
}

// EncodeCanvas writes c to w in the given format. PPM is written as plain text (P3).
func EncodeCanvas(w io.Writer, c *Canvas, format Format) error {
	switch format {
	case FormatPPM:
		_, err := c.WriteTo(w)
		return err
	case FormatPNG:
		return png.Encode(w, c)
	case FormatJPEG:
		return jpeg.Encode(w, c, &jpeg.Options{Quality: jpeg.DefaultQuality})
	case FormatBMP:
		return bmp.Encode(w, c)
	case FormatTIFF:
		return tiff.Encode(w, c, nil)
	case FormatQOI:
		return qoi.Encode(w, c)
	default:
		return errors.Errorf("unknown format %q", format)
	}
}

// WriteCanvasToFile writes c to path in the format implied by its extension.
func WriteCanvasToFile(path string, c *Canvas) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "couldn't create %s", path)
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()

	if err := EncodeCanvas(f, c, format); err != nil {
		return errors.Wrapf(err, "couldn't write %s", path)
	}
	return nil
}

// WriteBinaryPPM writes c to w as a binary (P6) PPM. Channels are clamped and rounded
// to nearest rather than using the plain PPM ceiling conversion.
func WriteBinaryPPM(w io.Writer, c *Canvas) error {
	return ppm.Encode(w, c)
}

// DecodeCanvas reads an image in the given format from r. Both plain (P3) and binary (P6) PPMs are accepted.
func DecodeCanvas(r io.Reader, format Format) (*Canvas, error) {
	var (
		img image.Image
		err error
	)
	switch format {
	case FormatPPM:
		br := bufio.NewReader(r)
		if magic, _ := br.Peek(len(ppmMagic)); string(magic) == ppmMagic {
			return decodePlainPPM(br)
		}
		img, err = ppm.Decode(br)
	case FormatPNG:
		img, err = png.Decode(r)
	case FormatJPEG:
		img, err = jpeg.Decode(r)
	case FormatBMP:
		img, err = bmp.Decode(r)
	case FormatTIFF:
		img, err = tiff.Decode(r)
	case FormatQOI:
		img, err = qoi.Decode(r)
	default:
		return nil, errors.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return NewCanvasFromImage(img), nil
}

// ReadCanvasFromFile reads the image at path into a new canvas, choosing a decoder from its extension.
func ReadCanvasFromFile(path string) (*Canvas, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		goutils.UncheckedErrorFunc(f.Close)
	}()

	c, err := DecodeCanvas(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't decode %s", path)
	}
	return c, nil
}

// Resize returns a copy of c resampled to width x height with nearest neighbor filtering, which
// keeps individual pixels crisp when enlarging small canvases.
func Resize(c *Canvas, width, height int) *Canvas {
	if width <= 0 || height <= 0 {
		panic(utils.NewInvalidDimensionsError(width, height))
	}
	return NewCanvasFromImage(imaging.Resize(c, width, height, imaging.NearestNeighbor))
}
