// Package tessellate walks a scene and produces triangle meshes for the
// items flagged for tessellation, using a solid modeling kernel. One mesh
// is produced per item.
package tessellate

import (
	"github.com/pkg/errors"

	"github.com/wykwit-tylko/common-core-geometry/pkg/kernel"
	"github.com/wykwit-tylko/common-core-geometry/pkg/scene"
)

// Tessellate walks the scene items in order and meshes every item whose
// Tessellate flag is set. Each mesh is named after its item's ID so that
// scene.Build can substitute it for the item's outline. Items that a
// kernel cannot mesh (points, segments, triangles) are skipped. The
// tessellator is read-only and never mutates the scene.
func Tessellate(sc *scene.Scene, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if sc == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, it := range sc.Items {
		if !it.Tessellate || it.Shape == nil || !scene.Meshable(it.Shape) {
			continue
		}
		m, err := meshItem(k, it)
		if err != nil {
			return nil, errors.Wrapf(err, "tessellate: item %s", it.Label())
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// meshItem creates a solid for the item's shape and meshes it.
func meshItem(k kernel.Kernel, it *scene.Item) (*kernel.Mesh, error) {
	solid, err := Solid(k, it.Shape)
	if err != nil {
		return nil, err
	}
	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, errors.Wrap(err, "ToMesh failed")
	}
	mesh.Name = it.ID.String()
	return mesh, nil
}

// Solid builds the kernel solid for a sphere or box shape.
func Solid(k kernel.Kernel, s scene.Shape) (kernel.Solid, error) {
	switch sh := s.(type) {
	case scene.Sphere:
		return k.Sphere(sh.Sphere)
	case scene.Box:
		return k.Box(sh.AABB)
	default:
		return nil, errors.Errorf("%s has no solid form", s.Kind())
	}
}
