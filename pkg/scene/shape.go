package scene

import "github.com/wykwit-tylko/common-core-geometry/pkg/geom"

// ShapeKind enumerates the geometry an item can carry.
type ShapeKind int

const (
	ShapePoint    ShapeKind = iota // single point marker
	ShapeSegment                   // line segment
	ShapeTriangle                  // filled or outlined triangle
	ShapeSphere                    // sphere outline or tessellated sphere
	ShapeBox                       // axis-aligned box wireframe or tessellated box
)

func (k ShapeKind) String() string {
	switch k {
	case ShapePoint:
		return "point"
	case ShapeSegment:
		return "segment"
	case ShapeTriangle:
		return "triangle"
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	default:
		return "unknown"
	}
}

// Shape is the geometry of a scene item.
type Shape interface {
	Kind() ShapeKind
	// Anchors returns the points used to decide whether the shape is in
	// front of the camera and inside the view.
	Anchors() []geom.Point3D
	String() string
}

// Point is a single point drawn as a marker.
type Point struct{ geom.Point3D }

// Segment is a line segment.
type Segment struct{ geom.LineSegment }

// Triangle is a triangle.
type Triangle struct{ geom.Triangle }

// Sphere is a sphere.
type Sphere struct{ geom.Sphere }

// Box is an axis-aligned box.
type Box struct{ geom.AABB }

func (Point) Kind() ShapeKind    { return ShapePoint }
func (Segment) Kind() ShapeKind  { return ShapeSegment }
func (Triangle) Kind() ShapeKind { return ShapeTriangle }
func (Sphere) Kind() ShapeKind   { return ShapeSphere }
func (Box) Kind() ShapeKind      { return ShapeBox }

func (p Point) Anchors() []geom.Point3D { return []geom.Point3D{p.Point3D} }

func (s Segment) Anchors() []geom.Point3D {
	return []geom.Point3D{s.Start(), s.End()}
}

func (t Triangle) Anchors() []geom.Point3D {
	v := t.Vertices()
	return v[:]
}

// Anchors returns the six axis extremes of the sphere.
func (s Sphere) Anchors() []geom.Point3D {
	c, r := s.Center(), s.Radius()
	return []geom.Point3D{
		c.Add(geom.UnitX().Scale(r)), c.Add(geom.UnitX().Scale(-r)),
		c.Add(geom.UnitY().Scale(r)), c.Add(geom.UnitY().Scale(-r)),
		c.Add(geom.UnitZ().Scale(r)), c.Add(geom.UnitZ().Scale(-r)),
	}
}

func (b Box) Anchors() []geom.Point3D {
	c := b.Corners()
	return c[:]
}

// Meshable reports whether a kernel can mesh the shape. Spheres and boxes
// can; flat shapes are drawn as they are.
func Meshable(s Shape) bool {
	switch s.(type) {
	case Sphere, Box:
		return true
	default:
		return false
	}
}
