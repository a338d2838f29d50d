package scene

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/wykwit-tylko/common-core-geometry/pkg/camera"
	"github.com/wykwit-tylko/common-core-geometry/pkg/geom"
	"github.com/wykwit-tylko/common-core-geometry/pkg/raycast"
	"github.com/wykwit-tylko/common-core-geometry/pkg/render"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// DefaultRayLength is how far a ray is drawn when it has no explicit
// length and hits nothing.
const DefaultRayLength = 10.0

// idNamespace scopes item IDs so that the same script always yields the
// same IDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("common-core-geometry/scene"))

// ItemID identifies an item within a scene. IDs are derived from the
// item's position and geometry, so re-evaluating a script reproduces them.
type ItemID uuid.UUID

// NewItemID derives the ID of the index-th item with the given shape.
func NewItemID(index int, s Shape) ItemID {
	name := fmt.Sprintf("%d/%s/%s", index, s.Kind(), s.String())
	return ItemID(uuid.NewSHA1(idNamespace, []byte(name)))
}

func (id ItemID) String() string { return uuid.UUID(id).String() }

// Short returns the first eight hex digits, for messages.
func (id ItemID) Short() string { return id.String()[:8] }

// IsZero reports whether the ID is unset.
func (id ItemID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// Item is one drawable element of a scene.
type Item struct {
	ID         ItemID            `json:"id"`
	Name       string            `json:"name,omitempty"`
	Shape      Shape             `json:"shape"`
	Style      render.Style      `json:"style"`
	PointStyle render.PointStyle `json:"pointStyle"`
	// Tessellate draws spheres and boxes as filled kernel meshes instead
	// of outlines.
	Tessellate bool `json:"tessellate,omitempty"`
}

// Label returns the item's name, falling back to its short ID.
func (it *Item) Label() string {
	if it.Name != "" {
		return it.Name
	}
	return it.ID.Short()
}

// RayQuery is a ray cast through the scene. Build draws the ray and a
// marker at every hit.
type RayQuery struct {
	Name string
	Ray  raycast.Ray
	// Length limits both the drawn segment and the hits considered.
	// Zero draws up to the farthest hit, or DefaultRayLength on a miss.
	Length   float64
	Style    render.Style
	HitStyle render.PointStyle
}

// Scene is the full description of one picture.
type Scene struct {
	Width      int
	Height     int
	Background string
	Camera     *camera.Camera
	Items      []*Item
	Rays       []*RayQuery

	names map[string]*Item
}

// New returns an empty scene with the default canvas size.
func New() *Scene {
	return &Scene{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		names:  make(map[string]*Item),
	}
}

// SetCamera replaces the scene camera.
func (s *Scene) SetCamera(c camera.Camera) {
	s.Camera = &c
}

// Add appends an item and returns it. A zero ID is derived from the
// item's position and shape.
func (s *Scene) Add(it Item) *Item {
	if it.ID.IsZero() && it.Shape != nil {
		it.ID = NewItemID(len(s.Items), it.Shape)
	}
	p := &it
	s.Items = append(s.Items, p)
	if it.Name != "" {
		if s.names == nil {
			s.names = make(map[string]*Item)
		}
		if _, taken := s.names[it.Name]; !taken {
			s.names[it.Name] = p
		}
	}
	return p
}

// AddRay appends a ray query and returns it.
func (s *Scene) AddRay(q RayQuery) *RayQuery {
	p := &q
	s.Rays = append(s.Rays, p)
	return p
}

// Lookup returns the first item with the given name, or nil.
func (s *Scene) Lookup(name string) *Item {
	return s.names[name]
}

// Get returns the item with the given ID, or nil.
func (s *Scene) Get(id ItemID) *Item {
	for _, it := range s.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// ItemCount returns the number of items.
func (s *Scene) ItemCount() int {
	return len(s.Items)
}

// IsEmpty reports whether the scene has neither items nor rays.
func (s *Scene) IsEmpty() bool {
	return len(s.Items) == 0 && len(s.Rays) == 0
}

// Targets returns the ray targets of the scene together with the item each
// one belongs to. Points and segments have no area and are not targets.
func (s *Scene) Targets() ([]raycast.Target, []*Item) {
	return s.targets(nil)
}

// targets is Targets with tessellated items cast against their facets.
func (s *Scene) targets(facets map[ItemID][]geom.Triangle) ([]raycast.Target, []*Item) {
	var targets []raycast.Target
	var owners []*Item
	for _, it := range s.Items {
		var tg raycast.Target
		if tris, ok := facets[it.ID]; ok {
			tg = raycast.MeshTarget(tris)
		} else {
			switch sh := it.Shape.(type) {
			case Sphere:
				tg = raycast.SphereTarget{Sphere: sh.Sphere}
			case Triangle:
				tg = raycast.TriangleTarget{Triangle: sh.Triangle}
			case Box:
				tg = raycast.BoxTarget{AABB: sh.AABB}
			default:
				continue
			}
		}
		targets = append(targets, tg)
		owners = append(owners, it)
	}
	return targets, owners
}

// Cast intersects q with every target, nearest first. Hits beyond a
// non-zero Length are dropped.
func (s *Scene) Cast(q *RayQuery) []raycast.TargetHit {
	return s.cast(q, nil)
}

func (s *Scene) cast(q *RayQuery, facets map[ItemID][]geom.Triangle) []raycast.TargetHit {
	targets, _ := s.targets(facets)
	hits := raycast.CastAll(q.Ray, targets...)
	if q.Length <= 0 {
		return hits
	}
	n := 0
	for _, h := range hits {
		if h.T <= q.Length {
			hits[n] = h
			n++
		}
	}
	return hits[:n]
}
