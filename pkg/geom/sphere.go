package geom

import (
	"fmt"
	"math"
)

// Sphere is a solid ball with a strictly positive radius.
type Sphere struct {
	center Point3D
	radius float64
}

// NewSphere returns a sphere, rejecting radius <= 0, NaN and infinity.
func NewSphere(center Point3D, radius float64) (Sphere, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Sphere{}, fmt.Errorf("sphere radius %g: %w", radius, ErrNonPositiveRadius)
	}
	return Sphere{center: center, radius: radius}, nil
}

func (s Sphere) Center() Point3D { return s.center }
func (s Sphere) Radius() float64 { return s.radius }

// Volume returns 4/3·π·r³.
func (s Sphere) Volume() float64 {
	return 4.0 / 3.0 * math.Pi * s.radius * s.radius * s.radius
}

// SurfaceArea returns 4·π·r².
func (s Sphere) SurfaceArea() float64 {
	return 4 * math.Pi * s.radius * s.radius
}

// Contains reports whether p lies inside or on the sphere.
func (s Sphere) Contains(p Point3D) bool {
	return s.center.DistanceTo(p) <= s.radius
}

// DistanceTo returns the signed distance from p to the surface; negative
// inside the sphere.
func (s Sphere) DistanceTo(p Point3D) float64 {
	return s.center.DistanceTo(p) - s.radius
}

// Intersects reports whether the two balls overlap or touch.
func (s Sphere) Intersects(o Sphere) bool {
	return s.center.DistanceTo(o.center) <= s.radius+o.radius
}

// BoundingBox returns the tightest AABB enclosing the sphere.
func (s Sphere) BoundingBox() AABB {
	r := Vector3D{s.radius, s.radius, s.radius}
	return AABB{min: s.center.Add(r.Negate()), max: s.center.Add(r)}
}

func (s Sphere) Translate(v Vector3D) Sphere {
	return Sphere{center: s.center.Add(v), radius: s.radius}
}

// Scale scales the sphere about the origin. A zero factor collapses the
// radius and is rejected.
func (s Sphere) Scale(f float64) (Sphere, error) {
	return NewSphere(s.center.Scale(f), math.Abs(f)*s.radius)
}

func (s Sphere) String() string {
	return fmt.Sprintf("Sphere(center=%v, radius=%g)", s.center, s.radius)
}
