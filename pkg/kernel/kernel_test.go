package kernel

import (
	"testing"

	"github.com/wykwit-tylko/common-core-geometry/pkg/geom"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float64
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float64{1, 2, 3}, 1},
		{"four vertices", []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float64{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

func TestMeshTriangles(t *testing.T) {
	// A unit square split into two triangles plus one collinear facet and
	// one facet with an out-of-range index.
	m := &Mesh{
		Vertices: []float64{
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
			2, 0, 0,
		},
		Indices: []uint32{
			0, 1, 2,
			2, 3, 0,
			0, 1, 4,
			0, 1, 9,
		},
	}
	tris := m.Triangles()
	if len(tris) != 2 {
		t.Fatalf("Triangles() = %d triangles, want 2", len(tris))
	}
	if got := tris[0].Area() + tris[1].Area(); got != 1 {
		t.Errorf("total area = %f, want 1", got)
	}
	if !tris[1].A().ApproxEqual(geom.NewPoint(1, 1, 0)) {
		t.Errorf("second triangle A = %v, want (1, 1, 0)", tris[1].A())
	}
}

func TestMeshBoundingBox(t *testing.T) {
	t.Run("bounds of vertices", func(t *testing.T) {
		m := &Mesh{Vertices: []float64{-1, 0, 2, 3, -4, 1, 0, 0, 0}}
		bb, ok := m.BoundingBox()
		if !ok {
			t.Fatal("BoundingBox() ok = false, want true")
		}
		if !bb.Min().ApproxEqual(geom.NewPoint(-1, -4, 0)) {
			t.Errorf("min = %v, want (-1, -4, 0)", bb.Min())
		}
		if !bb.Max().ApproxEqual(geom.NewPoint(3, 0, 2)) {
			t.Errorf("max = %v, want (3, 0, 2)", bb.Max())
		}
	})
	t.Run("empty mesh", func(t *testing.T) {
		if _, ok := (&Mesh{}).BoundingBox(); ok {
			t.Error("BoundingBox() ok = true for empty mesh, want false")
		}
	})
}

// --- Compile-time interface check with a stub kernel ---

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	box geom.AABB
}

func (s *stubSolid) BoundingBox() geom.AABB { return s.box }

// stubKernel is a minimal Kernel implementation that proves the interface
// is satisfiable. All methods return trivial results.
type stubKernel struct{}

func (k *stubKernel) Sphere(s geom.Sphere) (Solid, error) {
	return &stubSolid{box: s.BoundingBox()}, nil
}

func (k *stubKernel) Box(b geom.AABB) (Solid, error) {
	return &stubSolid{box: b}, nil
}

func (k *stubKernel) Translate(s Solid, v geom.Vector3D) Solid {
	return &stubSolid{box: s.BoundingBox().Translate(v)}
}

func (k *stubKernel) ToMesh(_ Solid) (*Mesh, error) {
	return &Mesh{}, nil
}

// Compile-time checks that the stubs implement the interfaces.
var _ Solid = (*stubSolid)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestStubKernelBoxBoundingBox(t *testing.T) {
	var k Kernel = &stubKernel{}
	box, err := geom.NewAABB(geom.NewPoint(0, 0, 0), geom.NewPoint(10, 20, 30))
	if err != nil {
		t.Fatalf("NewAABB: %v", err)
	}
	s, err := k.Box(box)
	if err != nil {
		t.Fatalf("Box() error = %v", err)
	}
	moved := k.Translate(s, geom.NewVector(1, 1, 1)).BoundingBox()
	if !moved.Min().ApproxEqual(geom.NewPoint(1, 1, 1)) {
		t.Errorf("Translate min = %v, want (1, 1, 1)", moved.Min())
	}
	if !moved.Max().ApproxEqual(geom.NewPoint(11, 21, 31)) {
		t.Errorf("Translate max = %v, want (11, 21, 31)", moved.Max())
	}
}

func TestStubKernelToMesh(t *testing.T) {
	var k Kernel = &stubKernel{}
	sp, err := geom.NewSphere(geom.Origin, 1)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	s, err := k.Sphere(sp)
	if err != nil {
		t.Fatalf("Sphere() error = %v", err)
	}
	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if m == nil {
		t.Fatal("ToMesh() returned nil mesh")
	}
	if !m.IsEmpty() {
		t.Error("stub ToMesh() should return empty mesh")
	}
}
