package geom

import (
	"fmt"
	"math"
)

// BoxEdges lists the 12 edges of a box as index pairs into Corners.
var BoxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// AABB is an axis-aligned box with Min() <= Max() on every axis.
type AABB struct {
	min, max Point3D
}

// NewAABB returns the box [min, max], rejecting any axis with min > max.
// A NaN bound never orders and is rejected too.
func NewAABB(min, max Point3D) (AABB, error) {
	if !(min.X <= max.X) || !(min.Y <= max.Y) || !(min.Z <= max.Z) {
		return AABB{}, fmt.Errorf("box min %v max %v: %w", min, max, ErrInvertedBounds)
	}
	return AABB{min: min, max: max}, nil
}

// AABBFromPoints returns the smallest box enclosing pts. At least two
// distinct points are required.
func AABBFromPoints(pts ...Point3D) (AABB, error) {
	if len(pts) < 2 {
		return AABB{}, fmt.Errorf("box from %d points: %w", len(pts), ErrTooFewPoints)
	}
	box := AABB{min: pts[0], max: pts[0]}
	distinct := false
	for _, p := range pts[1:] {
		if p != pts[0] {
			distinct = true
		}
		box = box.extend(p)
	}
	if !distinct {
		return AABB{}, fmt.Errorf("box from %d identical points: %w", len(pts), ErrTooFewPoints)
	}
	return NewAABB(box.min, box.max)
}

// extend grows the box to include p.
func (b AABB) extend(p Point3D) AABB {
	return AABB{
		min: Point3D{math.Min(b.min.X, p.X), math.Min(b.min.Y, p.Y), math.Min(b.min.Z, p.Z)},
		max: Point3D{math.Max(b.max.X, p.X), math.Max(b.max.Y, p.Y), math.Max(b.max.Z, p.Z)},
	}
}

func (b AABB) Min() Point3D { return b.min }
func (b AABB) Max() Point3D { return b.max }

func (b AABB) Center() Point3D {
	return b.min.Midpoint(b.max)
}

// Size returns the extent along each axis.
func (b AABB) Size() Vector3D {
	return b.max.Sub(b.min)
}

func (b AABB) Volume() float64 {
	s := b.Size()
	return s.X * s.Y * s.Z
}

func (b AABB) SurfaceArea() float64 {
	s := b.Size()
	return 2 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// Diagonal returns the distance between the min and max corners.
func (b AABB) Diagonal() float64 {
	return b.min.DistanceTo(b.max)
}

// Contains reports whether p is inside the box or on any of its faces.
func (b AABB) Contains(p Point3D) bool {
	return p.X >= b.min.X && p.X <= b.max.X &&
		p.Y >= b.min.Y && p.Y <= b.max.Y &&
		p.Z >= b.min.Z && p.Z <= b.max.Z
}

// Intersects reports whether the boxes overlap on every axis. Boxes that
// only share a face, edge or corner intersect.
func (b AABB) Intersects(o AABB) bool {
	return b.min.X <= o.max.X && b.max.X >= o.min.X &&
		b.min.Y <= o.max.Y && b.max.Y >= o.min.Y &&
		b.min.Z <= o.max.Z && b.max.Z >= o.min.Z
}

// Union returns the smallest box enclosing both boxes.
func (b AABB) Union(o AABB) AABB {
	return b.extend(o.min).extend(o.max)
}

// Expand grows the box by margin on every side. A negative margin
// shrinks it and fails if the box would invert.
func (b AABB) Expand(margin float64) (AABB, error) {
	m := Vector3D{margin, margin, margin}
	return NewAABB(b.min.Add(m.Negate()), b.max.Add(m))
}

// Corners returns the eight corners: the min-Z face counter-clockwise
// from min, then the max-Z face in the same order. BoxEdges indexes
// into this array.
func (b AABB) Corners() [8]Point3D {
	lo, hi := b.min, b.max
	return [8]Point3D{
		{lo.X, lo.Y, lo.Z},
		{hi.X, lo.Y, lo.Z},
		{hi.X, hi.Y, lo.Z},
		{lo.X, hi.Y, lo.Z},
		{lo.X, lo.Y, hi.Z},
		{hi.X, lo.Y, hi.Z},
		{hi.X, hi.Y, hi.Z},
		{lo.X, hi.Y, hi.Z},
	}
}

// ClosestPoint clamps p into the box.
func (b AABB) ClosestPoint(p Point3D) Point3D {
	return Point3D{
		X: Clamp(p.X, b.min.X, b.max.X),
		Y: Clamp(p.Y, b.min.Y, b.max.Y),
		Z: Clamp(p.Z, b.min.Z, b.max.Z),
	}
}

// DistanceTo returns the distance from p to the box; zero inside.
func (b AABB) DistanceTo(p Point3D) float64 {
	return p.DistanceTo(b.ClosestPoint(p))
}

func (b AABB) Translate(v Vector3D) AABB {
	return AABB{min: b.min.Add(v), max: b.max.Add(v)}
}

// Scale scales about the origin. Negative factors swap corners so the
// result stays ordered.
func (b AABB) Scale(f float64) AABB {
	box := AABB{min: b.min.Scale(f), max: b.min.Scale(f)}
	return box.extend(b.max.Scale(f))
}

func (b AABB) String() string {
	return fmt.Sprintf("AABB(min=%v, max=%v)", b.min, b.max)
}
