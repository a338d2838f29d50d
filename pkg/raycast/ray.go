// Package raycast intersects rays with the primitives of package geom.
//
// Every query is total: a miss is reported through the boolean result,
// never through an error or a sentinel distance.
package raycast

import (
	"fmt"

	"github.com/wykwit-tylko/common-core-geometry/pkg/geom"
)

// Ray is a half-line with a unit direction.
type Ray struct {
	origin    geom.Point3D
	direction geom.Vector3D
}

// New returns a ray from origin along direction. The direction is
// normalized; a zero direction is rejected.
func New(origin geom.Point3D, direction geom.Vector3D) (Ray, error) {
	d, err := direction.Normalize()
	if err != nil {
		return Ray{}, fmt.Errorf("ray direction %v: %w", direction, err)
	}
	return Ray{origin: origin, direction: d}, nil
}

// Through returns the ray from origin passing through target.
func Through(origin, target geom.Point3D) (Ray, error) {
	return New(origin, target.Sub(origin))
}

func (r Ray) Origin() geom.Point3D     { return r.origin }
func (r Ray) Direction() geom.Vector3D { return r.direction }

// PointAt returns origin + t·direction. Negative t lies behind the origin.
func (r Ray) PointAt(t float64) geom.Point3D {
	return r.origin.Add(r.direction.Scale(t))
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray(origin=%v, direction=%v)", r.origin, r.direction)
}

// Hit is a ray intersection: the distance along the ray and the point.
type Hit struct {
	T     float64
	Point geom.Point3D
}
