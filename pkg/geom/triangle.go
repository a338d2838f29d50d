package geom

import "fmt"

// Triangle is a non-degenerate triangle; its vertices are never collinear.
type Triangle struct {
	a, b, c Point3D
}

// NewTriangle returns the triangle abc, rejecting collinear vertices.
func NewTriangle(a, b, c Point3D) (Triangle, error) {
	if b.Sub(a).Cross(c.Sub(a)).Magnitude() < Epsilon {
		return Triangle{}, fmt.Errorf("triangle %v, %v, %v: %w", a, b, c, ErrCollinear)
	}
	return Triangle{a: a, b: b, c: c}, nil
}

func (t Triangle) A() Point3D { return t.a }
func (t Triangle) B() Point3D { return t.b }
func (t Triangle) C() Point3D { return t.c }

// Vertices returns a, b, c in order.
func (t Triangle) Vertices() [3]Point3D {
	return [3]Point3D{t.a, t.b, t.c}
}

// Edges returns b−a and c−a.
func (t Triangle) Edges() (Vector3D, Vector3D) {
	return t.b.Sub(t.a), t.c.Sub(t.a)
}

func (t Triangle) cross() Vector3D {
	e1, e2 := t.Edges()
	return e1.Cross(e2)
}

func (t Triangle) Area() float64 {
	return 0.5 * t.cross().Magnitude()
}

func (t Triangle) Perimeter() float64 {
	return t.a.DistanceTo(t.b) + t.b.DistanceTo(t.c) + t.c.DistanceTo(t.a)
}

// Normal returns the unit normal (b−a)×(c−a).
func (t Triangle) Normal() Vector3D {
	n := t.cross()
	return n.Scale(1 / n.Magnitude())
}

func (t Triangle) Centroid() Point3D {
	return Point3D{
		X: (t.a.X + t.b.X + t.c.X) / 3,
		Y: (t.a.Y + t.b.Y + t.c.Y) / 3,
		Z: (t.a.Z + t.b.Z + t.c.Z) / 3,
	}
}

// Plane returns the supporting plane, oriented by Normal.
func (t Triangle) Plane() Plane {
	n := t.Normal()
	return Plane{normal: n, d: n.Dot(t.a.ToVector())}
}

func (t Triangle) BoundingBox() AABB {
	box := AABB{min: t.a, max: t.a}
	return box.extend(t.b).extend(t.c)
}

// Barycentric returns the weights (u, v, w) of a, b and c for the
// projection of p onto the triangle's plane.
func (t Triangle) Barycentric(p Point3D) (u, v, w float64) {
	v0, v1 := t.Edges()
	v2 := p.Sub(t.a)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	return 1 - v - w, v, w
}

// Contains reports whether p lies in the triangle, edges included.
func (t Triangle) Contains(p Point3D) bool {
	if !t.Plane().Contains(p) {
		return false
	}
	u, v, w := t.Barycentric(p)
	return u >= -Epsilon && v >= -Epsilon && w >= -Epsilon
}

func (t Triangle) Translate(v Vector3D) Triangle {
	return Triangle{a: t.a.Add(v), b: t.b.Add(v), c: t.c.Add(v)}
}

// Scale scales about the origin; a zero factor collapses the triangle
// and is rejected.
func (t Triangle) Scale(f float64) (Triangle, error) {
	return NewTriangle(t.a.Scale(f), t.b.Scale(f), t.c.Scale(f))
}

func (t Triangle) String() string {
	return fmt.Sprintf("Triangle(%v, %v, %v)", t.a, t.b, t.c)
}
