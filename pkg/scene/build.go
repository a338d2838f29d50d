package scene

import (
	"github.com/pkg/errors"

	"github.com/wykwit-tylko/common-core-geometry/pkg/camera"
	"github.com/wykwit-tylko/common-core-geometry/pkg/geom"
	"github.com/wykwit-tylko/common-core-geometry/pkg/kernel"
	"github.com/wykwit-tylko/common-core-geometry/pkg/render"
)

// ErrNoCamera is returned by Build when a non-empty scene has no camera.
var ErrNoCamera = errors.New("scene: no camera")

// blankCamera frames an empty scene that never set a camera. Nothing is
// projected through it.
func blankCamera() (camera.Camera, error) {
	return camera.Orthographic(geom.NewPoint(0, 0, 1), geom.Origin, geom.UnitY(), 1, 1)
}

// Build creates a renderer for the scene and adds every item in order,
// followed by each ray and its hit markers. Items whose ID matches the
// Name of one of meshes are drawn as that mesh. opts are applied after
// the scene background.
func (s *Scene) Build(meshes []*kernel.Mesh, opts ...render.Option) (*render.Renderer, error) {
	var cam camera.Camera
	switch {
	case s.Camera != nil:
		cam = *s.Camera
	case s.IsEmpty():
		c, err := blankCamera()
		if err != nil {
			return nil, errors.Wrap(err, "scene: blank camera")
		}
		cam = c
	default:
		return nil, ErrNoCamera
	}
	if s.Background != "" {
		opts = append([]render.Option{render.WithBackground(s.Background)}, opts...)
	}
	r, err := render.New(s.Width, s.Height, cam, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "scene: create renderer")
	}

	facets := meshFacets(s.Items, meshes)
	for _, it := range s.Items {
		if tris, ok := facets[it.ID]; ok {
			err = r.AddMesh(tris, it.Style)
		} else {
			err = addShape(r, it)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "scene: add item %s", it.Label())
		}
	}

	for _, q := range s.Rays {
		hits := s.cast(q, facets)
		length := q.Length
		if length <= 0 {
			length = DefaultRayLength
			if len(hits) > 0 {
				length = hits[len(hits)-1].T
			}
		}
		if err := r.AddRay(q.Ray, length, q.Style); err != nil {
			return nil, errors.Wrap(err, "scene: add ray")
		}
		for _, h := range hits {
			if err := r.AddHit(h.Hit, q.HitStyle); err != nil {
				return nil, errors.Wrap(err, "scene: add ray hit")
			}
		}
	}

	return r, nil
}

// meshFacets maps each tessellated item to the triangles of the mesh
// named by its ID.
func meshFacets(items []*Item, meshes []*kernel.Mesh) map[ItemID][]geom.Triangle {
	byName := make(map[string]*kernel.Mesh, len(meshes))
	for _, m := range meshes {
		if m != nil {
			byName[m.Name] = m
		}
	}
	facets := make(map[ItemID][]geom.Triangle)
	for _, it := range items {
		if m, ok := byName[it.ID.String()]; ok && it.Tessellate {
			facets[it.ID] = m.Triangles()
		}
	}
	return facets
}

func addShape(r *render.Renderer, it *Item) error {
	switch sh := it.Shape.(type) {
	case Point:
		return r.AddPoint(sh.Point3D, it.PointStyle)
	case Segment:
		return r.AddSegment(sh.LineSegment, it.Style)
	case Triangle:
		return r.AddTriangle(sh.Triangle, it.Style)
	case Sphere:
		return r.AddSphere(sh.Sphere, it.Style)
	case Box:
		return r.AddAABB(sh.AABB, it.Style)
	case nil:
		return errors.Wrap(geom.ErrInvalidConstruction, "item has no shape")
	default:
		return errors.Errorf("unsupported shape %T", it.Shape)
	}
}
