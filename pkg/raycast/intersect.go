package raycast

import (
	"math"

	"github.com/wykwit-tylko/common-core-geometry/pkg/geom"
)

// IntersectSphere returns the nearest hit in front of the ray origin.
// When the origin is inside the sphere the exit point is returned.
// A tangent ray hits at its single touching point.
func IntersectSphere(r Ray, s geom.Sphere) (Hit, bool) {
	oc := r.origin.Sub(s.Center())
	// direction is unit length, so the quadratic's a == 1.
	halfB := oc.Dot(r.direction)
	c := oc.MagnitudeSquared() - s.Radius()*s.Radius()
	disc := halfB*halfB - c
	if disc < 0 {
		return Hit{}, false
	}
	sq := math.Sqrt(disc)
	t0, t1 := -halfB-sq, -halfB+sq
	switch {
	case t0 > 0:
		return Hit{T: t0, Point: r.PointAt(t0)}, true
	case t1 > 0:
		return Hit{T: t1, Point: r.PointAt(t1)}, true
	}
	return Hit{}, false
}

// IntersectPlane returns the point where the ray meets the plane. Rays
// parallel to the plane and planes behind the origin miss.
func IntersectPlane(r Ray, p geom.Plane) (geom.Point3D, bool) {
	n := p.Normal()
	denom := r.direction.Dot(n)
	if math.Abs(denom) < geom.Epsilon {
		return geom.Point3D{}, false
	}
	t := (p.D() - r.origin.ToVector().Dot(n)) / denom
	if t < 0 {
		return geom.Point3D{}, false
	}
	return r.PointAt(t), true
}

// IntersectTriangle implements Möller–Trumbore. Hits on edges and
// vertices count; hits at or behind the origin do not.
func IntersectTriangle(r Ray, tri geom.Triangle) (Hit, bool) {
	const eps = geom.Epsilon

	e1, e2 := tri.Edges()
	pvec := r.direction.Cross(e2)
	det := e1.Dot(pvec)
	if math.Abs(det) < eps {
		return Hit{}, false
	}
	inv := 1 / det

	tvec := r.origin.Sub(tri.A())
	u := tvec.Dot(pvec) * inv
	if u < -eps || u > 1+eps {
		return Hit{}, false
	}

	qvec := tvec.Cross(e1)
	v := r.direction.Dot(qvec) * inv
	if v < -eps || u+v > 1+eps {
		return Hit{}, false
	}

	t := e2.Dot(qvec) * inv
	if t <= 0 {
		return Hit{}, false
	}
	return Hit{T: t, Point: r.PointAt(t)}, true
}

// IntersectAABB is the slab test. It returns the entry point, or the exit
// point when the origin is inside the box.
func IntersectAABB(r Ray, box geom.AABB) (Hit, bool) {
	lo, hi := box.Min().Array(), box.Max().Array()
	o, d := r.origin.Array(), [3]float64{r.direction.X, r.direction.Y, r.direction.Z}

	tmin, tmax := math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		if math.Abs(d[axis]) < geom.Epsilon {
			// Parallel to this slab: must already be between its planes.
			if o[axis] < lo[axis] || o[axis] > hi[axis] {
				return Hit{}, false
			}
			continue
		}
		inv := 1 / d[axis]
		t1 := (lo[axis] - o[axis]) * inv
		t2 := (hi[axis] - o[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return Hit{}, false
		}
	}

	switch {
	case tmin > 0:
		return Hit{T: tmin, Point: r.PointAt(tmin)}, true
	case tmax > 0:
		return Hit{T: tmax, Point: r.PointAt(tmax)}, true
	}
	return Hit{}, false
}
