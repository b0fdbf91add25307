package utils

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestNewNotVectorError(t *testing.T) {
	err := NewNotVectorError("dot", 1)
	test.That(t, errors.Is(err, ErrNotVector), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "dot: operand has w=1")
}

func TestNewOutOfBoundsError(t *testing.T) {
	err := NewOutOfBoundsError(10, -1, 10, 20)
	test.That(t, err.Error(), test.ShouldEqual, "pixel (10, -1) out of bounds for 10x20 canvas")
}

func TestNewInvalidDimensionsError(t *testing.T) {
	test.That(t, NewInvalidDimensionsError(-1, 3).Error(), test.ShouldEqual, "invalid canvas dimensions -1x3")
}

func TestNewUnsupportedFormatError(t *testing.T) {
	test.That(t, NewUnsupportedFormatError("a.gif").Error(), test.ShouldContainSubstring, `"a.gif"`)
}
