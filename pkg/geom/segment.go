package geom

import "fmt"

// LineSegment is a finite segment with distinct endpoints.
type LineSegment struct {
	start, end Point3D
}

// NewLineSegment returns the segment from start to end, rejecting
// endpoints closer than Epsilon.
func NewLineSegment(start, end Point3D) (LineSegment, error) {
	if start.DistanceTo(end) < Epsilon {
		return LineSegment{}, fmt.Errorf("segment %v to %v: %w", start, end, ErrDegenerateSegment)
	}
	return LineSegment{start: start, end: end}, nil
}

func (s LineSegment) Start() Point3D { return s.start }
func (s LineSegment) End() Point3D   { return s.end }

// Direction returns end − start (not normalized).
func (s LineSegment) Direction() Vector3D {
	return s.end.Sub(s.start)
}

func (s LineSegment) Length() float64 {
	return s.start.DistanceTo(s.end)
}

func (s LineSegment) Midpoint() Point3D {
	return s.start.Midpoint(s.end)
}

// PointAt returns start + t·(end − start). t is not clamped, so values
// outside [0, 1] extrapolate along the supporting line.
func (s LineSegment) PointAt(t float64) Point3D {
	return s.start.Add(s.Direction().Scale(t))
}

// ClosestPoint returns the point of the segment nearest to p.
func (s LineSegment) ClosestPoint(p Point3D) Point3D {
	d := s.Direction()
	t := p.Sub(s.start).Dot(d) / d.MagnitudeSquared()
	return s.PointAt(Clamp(t, 0, 1))
}

func (s LineSegment) DistanceTo(p Point3D) float64 {
	return p.DistanceTo(s.ClosestPoint(p))
}

func (s LineSegment) Translate(v Vector3D) LineSegment {
	return LineSegment{start: s.start.Add(v), end: s.end.Add(v)}
}

// Scale scales about the origin; a zero factor is rejected.
func (s LineSegment) Scale(f float64) (LineSegment, error) {
	return NewLineSegment(s.start.Scale(f), s.end.Scale(f))
}

func (s LineSegment) String() string {
	return fmt.Sprintf("LineSegment(%v, %v)", s.start, s.end)
}
