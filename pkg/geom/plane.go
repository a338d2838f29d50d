package geom

import (
	"fmt"
	"math"
)

// Plane is the set of points P with Normal()·P = D(). The normal always
// has unit length. A Plane can only be obtained from PlaneFromPointNormal
// or PlaneFromThreePoints; the zero value is not a valid plane.
type Plane struct {
	normal Vector3D
	d      float64
}

// PlaneFromPointNormal returns the plane through p with the given normal.
// The normal is normalized; a zero normal is rejected.
func PlaneFromPointNormal(p Point3D, normal Vector3D) (Plane, error) {
	n, err := normal.Normalize()
	if err != nil {
		return Plane{}, fmt.Errorf("plane normal %v: %w", normal, err)
	}
	return Plane{normal: n, d: n.Dot(p.ToVector())}, nil
}

// PlaneFromThreePoints returns the plane through a, b and c, with normal
// (b−a)×(c−a). Collinear points are rejected.
func PlaneFromThreePoints(a, b, c Point3D) (Plane, error) {
	n, err := b.Sub(a).Cross(c.Sub(a)).Normalize()
	if err != nil {
		return Plane{}, fmt.Errorf("plane through %v, %v, %v: %w", a, b, c, ErrCollinear)
	}
	return Plane{normal: n, d: n.Dot(a.ToVector())}, nil
}

func (p Plane) Normal() Vector3D { return p.normal }
func (p Plane) D() float64       { return p.d }

// DistanceTo returns the signed distance from q to the plane, positive on
// the side the normal points to.
func (p Plane) DistanceTo(q Point3D) float64 {
	return p.normal.Dot(q.ToVector()) - p.d
}

// Contains reports whether q lies on the plane within Epsilon.
func (p Plane) Contains(q Point3D) bool {
	return math.Abs(p.DistanceTo(q)) < Epsilon
}

// ClosestPoint returns the orthogonal projection of q onto the plane.
func (p Plane) ClosestPoint(q Point3D) Point3D {
	return q.Add(p.normal.Scale(-p.DistanceTo(q)))
}

// Flip returns the same plane with the normal reversed.
func (p Plane) Flip() Plane {
	return Plane{normal: p.normal.Negate(), d: -p.d}
}

// IsParallel reports whether the two planes have parallel normals.
func (p Plane) IsParallel(o Plane) bool {
	return p.normal.IsParallel(o.normal)
}

func (p Plane) Translate(v Vector3D) Plane {
	return Plane{normal: p.normal, d: p.d + p.normal.Dot(v)}
}

func (p Plane) String() string {
	return fmt.Sprintf("Plane(normal=%v, d=%g)", p.normal, p.d)
}
