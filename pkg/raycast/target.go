package raycast

import (
	"sort"

	"github.com/wykwit-tylko/common-core-geometry/pkg/geom"
)

// Target is anything a ray can be cast against.
type Target interface {
	Intersect(r Ray) (Hit, bool)
}

// SphereTarget adapts a geom.Sphere to Target.
type SphereTarget struct{ geom.Sphere }

func (s SphereTarget) Intersect(r Ray) (Hit, bool) { return IntersectSphere(r, s.Sphere) }

// TriangleTarget adapts a geom.Triangle to Target.
type TriangleTarget struct{ geom.Triangle }

func (t TriangleTarget) Intersect(r Ray) (Hit, bool) { return IntersectTriangle(r, t.Triangle) }

// BoxTarget adapts a geom.AABB to Target.
type BoxTarget struct{ geom.AABB }

func (b BoxTarget) Intersect(r Ray) (Hit, bool) { return IntersectAABB(r, b.AABB) }

// MeshTarget casts against every triangle and keeps the nearest hit.
type MeshTarget []geom.Triangle

func (m MeshTarget) Intersect(r Ray) (Hit, bool) {
	var best Hit
	found := false
	for _, tri := range m {
		if h, ok := IntersectTriangle(r, tri); ok && (!found || h.T < best.T) {
			best, found = h, true
		}
	}
	return best, found
}

// TargetHit is a hit tagged with the index of the target that produced it.
type TargetHit struct {
	Hit
	Index int
}

// CastAll intersects r with every target and returns the hits ordered
// from nearest to farthest. Ties keep target order.
func CastAll(r Ray, targets ...Target) []TargetHit {
	var hits []TargetHit
	for i, tg := range targets {
		if h, ok := tg.Intersect(r); ok {
			hits = append(hits, TargetHit{Hit: h, Index: i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].T < hits[j].T })
	return hits
}

// Closest returns the nearest hit among targets.
func Closest(r Ray, targets ...Target) (TargetHit, bool) {
	hits := CastAll(r, targets...)
	if len(hits) == 0 {
		return TargetHit{}, false
	}
	return hits[0], true
}
