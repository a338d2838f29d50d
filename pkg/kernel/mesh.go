package kernel

import "github.com/wykwit-tylko/common-core-geometry/pkg/geom"

// Mesh is a triangle mesh produced by a kernel.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float64 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float64 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // which scene item this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns vertex i as a point.
func (m *Mesh) Vertex(i uint32) geom.Point3D {
	j := int(i) * 3
	return geom.NewPoint(m.Vertices[j], m.Vertices[j+1], m.Vertices[j+2])
}

// Triangles converts the indexed mesh to geom triangles. Facets that
// collapse to a line or a point (marching cubes emits these near sharp
// edges) are skipped, as are facets referencing missing vertices.
func (m *Mesh) Triangles() []geom.Triangle {
	n := m.VertexCount()
	tris := make([]geom.Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if int(a) >= n || int(b) >= n || int(c) >= n {
			continue
		}
		t, err := geom.NewTriangle(m.Vertex(a), m.Vertex(b), m.Vertex(c))
		if err != nil {
			continue
		}
		tris = append(tris, t)
	}
	return tris
}

// BoundingBox returns the bounds of all vertices. ok is false when the
// mesh has fewer than two distinct vertices.
func (m *Mesh) BoundingBox() (box geom.AABB, ok bool) {
	pts := make([]geom.Point3D, 0, m.VertexCount())
	for i := 0; i < m.VertexCount(); i++ {
		pts = append(pts, m.Vertex(uint32(i)))
	}
	box, err := geom.AABBFromPoints(pts...)
	if err != nil {
		return geom.AABB{}, false
	}
	return box, true
}
