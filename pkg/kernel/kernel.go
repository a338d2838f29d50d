// Package kernel defines the solid modeling interface used to tessellate
// meshable scene items. Implementations (sdfx) build solids from geom
// primitives and convert them to triangle meshes that the renderer can
// draw as filled polygons.
package kernel

import "github.com/wykwit-tylko/common-core-geometry/pkg/geom"

// Solid is an opaque handle to a kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() geom.AABB
}

// Kernel is the abstract solid modeling interface.
type Kernel interface {
	// Primitives
	Sphere(s geom.Sphere) (Solid, error)
	Box(b geom.AABB) (Solid, error)

	// Translate moves a solid by v. Primitives are built around the
	// origin and placed with it.
	Translate(s Solid, v geom.Vector3D) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
