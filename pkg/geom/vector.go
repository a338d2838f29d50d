package geom

import (
	"fmt"
	"math"
)

// Vector3D is a free 3D vector (a direction and length, not a position).
type Vector3D struct {
	X, Y, Z float64
}

// NewVector returns the vector (x, y, z).
func NewVector(x, y, z float64) Vector3D {
	return Vector3D{X: x, Y: y, Z: z}
}

// ZeroVector returns (0, 0, 0).
func ZeroVector() Vector3D { return Vector3D{} }

// UnitX returns (1, 0, 0).
func UnitX() Vector3D { return Vector3D{X: 1} }

// UnitY returns (0, 1, 0).
func UnitY() Vector3D { return Vector3D{Y: 1} }

// UnitZ returns (0, 0, 1).
func UnitZ() Vector3D { return Vector3D{Z: 1} }

func (v Vector3D) Add(o Vector3D) Vector3D {
	return Vector3D{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3D) Sub(o Vector3D) Vector3D {
	return Vector3D{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3D) Scale(s float64) Vector3D {
	return Vector3D{v.X * s, v.Y * s, v.Z * s}
}

func (v Vector3D) Negate() Vector3D {
	return Vector3D{-v.X, -v.Y, -v.Z}
}

func (v Vector3D) Dot(o Vector3D) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3D) Cross(o Vector3D) Vector3D {
	return Vector3D{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Magnitude returns the Euclidean norm.
func (v Vector3D) Magnitude() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vector3D) MagnitudeSquared() float64 {
	return v.Dot(v)
}

// Normalize returns the unit vector pointing along v. It fails with
// ErrZeroMagnitude when |v| < Epsilon.
func (v Vector3D) Normalize() (Vector3D, error) {
	m := v.Magnitude()
	if m < Epsilon {
		return Vector3D{}, ErrZeroMagnitude
	}
	return v.Scale(1 / m), nil
}

// IsParallel reports whether v and o point along the same line
// (|v × o| ≈ 0). The zero vector is parallel to everything.
func (v Vector3D) IsParallel(o Vector3D) bool {
	return v.Cross(o).Magnitude() < Epsilon
}

// IsPerpendicular reports whether v · o ≈ 0.
func (v Vector3D) IsPerpendicular(o Vector3D) bool {
	return math.Abs(v.Dot(o)) < Epsilon
}

// AngleTo returns the angle between v and o in radians, in [0, π].
func (v Vector3D) AngleTo(o Vector3D) (float64, error) {
	denom := v.Magnitude() * o.Magnitude()
	if denom < Epsilon {
		return 0, ErrZeroMagnitude
	}
	return math.Acos(Clamp(v.Dot(o)/denom, -1, 1)), nil
}

// ProjectOnto returns the component of v along o.
func (v Vector3D) ProjectOnto(o Vector3D) (Vector3D, error) {
	d := o.MagnitudeSquared()
	if d < Epsilon {
		return Vector3D{}, ErrZeroMagnitude
	}
	return o.Scale(v.Dot(o) / d), nil
}

// ApproxEqual compares component-wise within Epsilon.
func (v Vector3D) ApproxEqual(o Vector3D) bool {
	return ApproxEqual(v.X, o.X) && ApproxEqual(v.Y, o.Y) && ApproxEqual(v.Z, o.Z)
}

func (v Vector3D) String() string {
	return fmt.Sprintf("Vector3D(%g, %g, %g)", v.X, v.Y, v.Z)
}
