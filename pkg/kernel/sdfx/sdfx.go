// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"

	"github.com/wykwit-tylko/common-core-geometry/pkg/geom"
	"github.com/wykwit-tylko/common-core-geometry/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells controls marching cubes tessellation resolution.
// Scene meshes are drawn as flat SVG polygons, so a coarse grid keeps the
// output readable.
const DefaultMeshCells = 24

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() geom.AABB {
	bb := s.s.BoundingBox()
	box, err := geom.NewAABB(toPoint(bb.Min), toPoint(bb.Max))
	if err != nil {
		return geom.AABB{}
	}
	return box
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a new SdfxKernel with the default mesh resolution.
func New() *SdfxKernel {
	return &SdfxKernel{cells: DefaultMeshCells}
}

// NewWithCells returns a kernel that meshes with the given number of
// marching cubes cells along the longest bounding box axis. Values below
// 1 fall back to DefaultMeshCells.
func NewWithCells(cells int) *SdfxKernel {
	if cells < 1 {
		cells = DefaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

// Cells returns the marching cubes resolution.
func (k *SdfxKernel) Cells() int { return k.cells }

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

func toVec(v geom.Vector3D) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func toPoint(v v3.Vec) geom.Point3D {
	return geom.NewPoint(v.X, v.Y, v.Z)
}

// Sphere creates a solid sphere. sdf.Sphere3D is centred on the origin,
// so the result is translated to the sphere's centre.
func (k *SdfxKernel) Sphere(s geom.Sphere) (kernel.Solid, error) {
	s3, err := sdf.Sphere3D(s.Radius())
	if err != nil {
		return nil, errors.Wrapf(err, "sdfx sphere %v", s)
	}
	return k.Translate(wrap(s3), s.Center().ToVector()), nil
}

// Box creates a solid box filling b. sdf.Box3D centers the box at the
// origin, so we translate to the box centre.
func (k *SdfxKernel) Box(b geom.AABB) (kernel.Solid, error) {
	s3, err := sdf.Box3D(toVec(b.Size()), 0)
	if err != nil {
		return nil, errors.Wrapf(err, "sdfx box %v", b)
	}
	return k.Translate(wrap(s3), b.Center().ToVector()), nil
}

// Translate moves a solid by v.
func (k *SdfxKernel) Translate(s kernel.Solid, v geom.Vector3D) kernel.Solid {
	m := sdf.Translate3d(toVec(v))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	if s == nil {
		return nil, errors.New("sdfx: nil solid")
	}
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float64, 0, numVerts*3)
	normals := make([]float64, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, v.X, v.Y, v.Z)
			normals = append(normals, n.X, n.Y, n.Z)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
