// Package spatialmath defines the spatial tuple used to describe points and vectors in 3D space.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/raytrace/utils"
)

// Tuple is a homogeneous (x, y, z, w) coordinate. A w of 1 denotes a point and a w of 0 denotes a vector.
// Tuples are immutable; every operation returns a new Tuple.
type Tuple struct {
	x, y, z, w float64
	magnitude  float64
}

// NewTuple returns a Tuple with the given components. w is not validated.
func NewTuple(x, y, z, w float64) Tuple {
	return Tuple{
		x: x, y: y, z: z, w: w,
		magnitude: math.Sqrt(utils.Square(x) + utils.Square(y) + utils.Square(z) + utils.Square(w)),
	}
}

// NewPoint returns a Tuple with w set to 1.
func NewPoint(x, y, z float64) Tuple {
	return NewTuple(x, y, z, 1)
}

// NewVector returns a Tuple with w set to 0.
func NewVector(x, y, z float64) Tuple {
	return NewTuple(x, y, z, 0)
}

// X returns the x component.
func (t Tuple) X() float64 { return t.x }

// Y returns the y component.
func (t Tuple) Y() float64 { return t.y }

// Z returns the z component.
func (t Tuple) Z() float64 { return t.z }

// W returns the w component.
func (t Tuple) W() float64 { return t.w }

// Magnitude returns the euclidean length over all four components, computed at construction.
func (t Tuple) Magnitude() float64 { return t.magnitude }

// IsPoint reports whether w is exactly 1.
func (t Tuple) IsPoint() bool { return t.w == 1 }

// IsVector reports whether w is exactly 0.
func (t Tuple) IsVector() bool { return t.w == 0 }

// Add returns the component-wise sum, w included. Adding two points yields w=2, which is not rejected.
func (t Tuple) Add(o Tuple) Tuple {
	return NewTuple(t.x+o.x, t.y+o.y, t.z+o.z, t.w+o.w)
}

// Negate returns the tuple with every component negated.
func (t Tuple) Negate() Tuple {
	return NewTuple(-t.x, -t.y, -t.z, -t.w)
}

// Sub returns t + (-o).
func (t Tuple) Sub(o Tuple) Tuple {
	return t.Add(o.Negate())
}

// Mul scales every component, w included, by s.
func (t Tuple) Mul(s float64) Tuple {
	return NewTuple(t.x*s, t.y*s, t.z*s, t.w*s)
}

// Div is Mul(1/s). Dividing by zero produces infinities.
func (t Tuple) Div(s float64) Tuple {
	return t.Mul(1 / s)
}

// Normalize divides every component by the magnitude. A zero tuple normalizes to NaNs.
func (t Tuple) Normalize() Tuple {
	return NewTuple(t.x/t.magnitude, t.y/t.magnitude, t.z/t.magnitude, t.w/t.magnitude)
}

// Dot returns the dot product of two vectors, which is proportional to the cosine of the angle
// between them. It panics if either operand is not a vector.
func (t Tuple) Dot(o Tuple) float64 {
	mustBeVectors("dot", t, o)
	return t.x*o.x + t.y*o.y + t.z*o.z + t.w*o.w
}

// Cross returns a vector perpendicular to both operands. It panics if either operand is not a vector.
func (t Tuple) Cross(o Tuple) Tuple {
	mustBeVectors("cross", t, o)
	return NewVector(
		t.y*o.z-t.z*o.y,
		t.z*o.x-t.x*o.z,
		t.x*o.y-t.y*o.x,
	)
}

// AlmostEqual reports whether every component of t and o is within utils.Epsilon.
func (t Tuple) AlmostEqual(o Tuple) bool {
	return utils.Float64AlmostEqual(t.x, o.x) &&
		utils.Float64AlmostEqual(t.y, o.y) &&
		utils.Float64AlmostEqual(t.z, o.z) &&
		utils.Float64AlmostEqual(t.w, o.w)
}

func (t Tuple) String() string {
	switch {
	case t.IsPoint():
		return fmt.Sprintf("point(%v, %v, %v)", t.x, t.y, t.z)
	case t.IsVector():
		return fmt.Sprintf("vector(%v, %v, %v)", t.x, t.y, t.z)
	default:
		return fmt.Sprintf("tuple(%v, %v, %v, %v)", t.x, t.y, t.z, t.w)
	}
}

func mustBeVectors(op string, a, b Tuple) {
	if !a.IsVector() {
		panic(utils.NewNotVectorError(op, a.w))
	}
	if !b.IsVector() {
		panic(utils.NewNotVectorError(op, b.w))
	}
}

// R3 drops w and returns the spatial part as an r3.Vector.
func (t Tuple) R3() r3.Vector {
	return r3.Vector{X: t.x, Y: t.y, Z: t.z}
}

// NewPointFromR3 returns a point at v.
func NewPointFromR3(v r3.Vector) Tuple {
	return NewPoint(v.X, v.Y, v.Z)
}

// NewVectorFromR3 returns a vector with the components of v.
func NewVectorFromR3(v r3.Vector) Tuple {
	return NewVector(v.X, v.Y, v.Z)
}

// Vec4 returns the tuple as an mgl64.Vec4.
func (t Tuple) Vec4() mgl64.Vec4 {
	return mgl64.Vec4{t.x, t.y, t.z, t.w}
}

// NewTupleFromVec4 returns a tuple with the components of v.
func NewTupleFromVec4(v mgl64.Vec4) Tuple {
	return NewTuple(v[0], v[1], v[2], v[3])
}

// VecDense returns the tuple as a 4x1 column vector so it can be multiplied by transformation matrices.
func (t Tuple) VecDense() *mat.VecDense {
	return mat.NewVecDense(4, []float64{t.x, t.y, t.z, t.w})
}

// NewTupleFromVecDense returns a tuple from a column vector of length 4.
func NewTupleFromVecDense(v mat.Vector) (Tuple, error) {
	if v.Len() != 4 {
		return Tuple{}, errors.Errorf("expected a vector of length 4 but got %d", v.Len())
	}
	return NewTuple(v.AtVec(0), v.AtVec(1), v.AtVec(2), v.AtVec(3)), nil
}
