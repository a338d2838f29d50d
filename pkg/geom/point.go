package geom

import (
	"fmt"
	"math"
)

// Point3D is an affine position in 3D space. Points have no magnitude;
// subtracting two points yields a Vector3D.
type Point3D struct {
	X, Y, Z float64
}

// Origin is the point (0, 0, 0).
var Origin = Point3D{}

// NewPoint returns the point (x, y, z).
func NewPoint(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

// At returns the i-th coordinate (0 → X, 1 → Y, 2 → Z). Like a slice
// index, it panics when i is out of range.
func (p Point3D) At(i int) float64 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	case 2:
		return p.Z
	}
	panic(fmt.Sprintf("geom: point index %d out of range [0, 3)", i))
}

// Array returns the coordinates as [x, y, z].
func (p Point3D) Array() [3]float64 {
	return [3]float64{p.X, p.Y, p.Z}
}

// Sub returns the vector from q to p.
func (p Point3D) Sub(q Point3D) Vector3D {
	return Vector3D{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Add offsets p by v.
func (p Point3D) Add(v Vector3D) Point3D {
	return Point3D{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Translate is Add under its transform name.
func (p Point3D) Translate(v Vector3D) Point3D {
	return p.Add(v)
}

// Scale scales p about the origin.
func (p Point3D) Scale(f float64) Point3D {
	return Point3D{p.X * f, p.Y * f, p.Z * f}
}

// ToVector returns the position vector of p.
func (p Point3D) ToVector() Vector3D {
	return Vector3D{p.X, p.Y, p.Z}
}

func (p Point3D) DistanceTo(q Point3D) float64 {
	return p.Sub(q).Magnitude()
}

func (p Point3D) DistanceSquaredTo(q Point3D) float64 {
	return p.Sub(q).MagnitudeSquared()
}

// ManhattanDistance returns the L1 distance between p and q.
func (p Point3D) ManhattanDistance(q Point3D) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y) + math.Abs(p.Z-q.Z)
}

// ChebyshevDistance returns the L∞ distance between p and q.
func (p Point3D) ChebyshevDistance(q Point3D) float64 {
	return math.Max(math.Abs(p.X-q.X), math.Max(math.Abs(p.Y-q.Y), math.Abs(p.Z-q.Z)))
}

// Midpoint returns the point halfway between p and q. The sum is formed
// before halving, so p.Midpoint(q) == q.Midpoint(p) exactly.
func (p Point3D) Midpoint(q Point3D) Point3D {
	return Point3D{(p.X + q.X) * 0.5, (p.Y + q.Y) * 0.5, (p.Z + q.Z) * 0.5}
}

// ApproxEqual compares component-wise within Epsilon.
func (p Point3D) ApproxEqual(q Point3D) bool {
	return ApproxEqual(p.X, q.X) && ApproxEqual(p.Y, q.Y) && ApproxEqual(p.Z, q.Z)
}

func (p Point3D) String() string {
	return fmt.Sprintf("Point3D(%g, %g, %g)", p.X, p.Y, p.Z)
}
