package utils

import (
	"github.com/pkg/errors"
)

// ErrNotVector is the cause of every NewNotVectorError.
var ErrNotVector = errors.New("operation is only defined on vectors")

// NewNotVectorError is used when a vector-only operation receives a tuple whose w is not 0.
func NewNotVectorError(op string, w float64) error {
	return errors.Wrapf(ErrNotVector, "%s: operand has w=%v", op, w)
}

// NewOutOfBoundsError is used when a pixel coordinate falls outside of a canvas.
func NewOutOfBoundsError(x, y, width, height int) error {
	return errors.Errorf("pixel (%d, %d) out of bounds for %dx%d canvas", x, y, width, height)
}

// NewInvalidDimensionsError is used when a canvas is requested with a negative size.
func NewInvalidDimensionsError(width, height int) error {
	return errors.Errorf("invalid canvas dimensions %dx%d", width, height)
}

// NewUnsupportedFormatError is used when an image path has an extension we cannot encode or decode.
func NewUnsupportedFormatError(path string) error {
	return errors.Errorf("unsupported image format for %q", path)
}
