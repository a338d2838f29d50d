package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wykwit-tylko/common-core-geometry/pkg/geom"
)

const tol = 1e-9

var (
	eye    = geom.NewPoint(0, 0, 5)
	origin = geom.Origin
	upY    = geom.UnitY()
)

func TestPerspectiveProject(t *testing.T) {
	c, err := PerspectiveDefault(eye, origin, upY, 90, 1)
	require.NoError(t, err)
	assert.Equal(t, KindPerspective, c.Kind())
	assert.Equal(t, DefaultNear, c.Near())
	assert.Equal(t, DefaultFar, c.Far())

	x, y, _ := c.Project(origin)
	assert.InDelta(t, 0, x, tol)
	assert.InDelta(t, 0, y, tol)

	x, y, _ = c.Project(geom.NewPoint(1, 0, 0))
	assert.InDelta(t, 0.2, x, tol, "tan(45°)=1 so x/depth")
	assert.InDelta(t, 0, y, tol)

	_, y, _ = c.Project(geom.NewPoint(0, 1, 0))
	assert.Greater(t, y, 0.0, "+y world is up on screen")

	_, _, depth := c.Project(geom.NewPoint(0, 0, 5-DefaultNear))
	assert.InDelta(t, -1, depth, 1e-6, "near plane maps to -1")
	_, _, depth = c.Project(geom.NewPoint(0, 0, 5-DefaultFar))
	assert.InDelta(t, 1, depth, 1e-6, "far plane maps to +1")
}

func TestPerspectiveFrustumEdges(t *testing.T) {
	c, err := Perspective(eye, origin, upY, 60, 2, 0.5, 50)
	require.NoError(t, err)

	// At depth 5 the half-height of a 60° frustum is 5·tan(30°).
	halfH := 5 * 0.5773502691896257
	_, y, _ := c.Project(geom.NewPoint(0, halfH, 0))
	assert.InDelta(t, 1, y, 1e-9)
	x, _, _ := c.Project(geom.NewPoint(2*halfH, 0, 0))
	assert.InDelta(t, 1, x, 1e-9)
}

func TestOrthographicProject(t *testing.T) {
	c, err := Orthographic(eye, origin, upY, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, KindOrthographic, c.Kind())

	x, y, _ := c.Project(geom.NewPoint(1, 1, 0))
	assert.InDelta(t, 0.5, x, tol)
	assert.InDelta(t, 1, y, tol)

	// Parallel projection ignores distance along the view axis.
	x2, y2, _ := c.Project(geom.NewPoint(1, 1, -40))
	assert.InDelta(t, x, x2, tol)
	assert.InDelta(t, y, y2, tol)

	w, h := c.ViewSize()
	assert.Equal(t, 4.0, w)
	assert.Equal(t, 2.0, h)
}

func TestCameraBasis(t *testing.T) {
	c, err := PerspectiveDefault(geom.NewPoint(3, 4, 5), geom.NewPoint(-1, 0, 2), geom.NewVector(0, 2, 0.3), 45, 1.5)
	require.NoError(t, err)

	f, r, u := c.Forward(), c.Right(), c.TrueUp()
	assert.InDelta(t, 1, f.Magnitude(), tol)
	assert.InDelta(t, 1, r.Magnitude(), tol)
	assert.InDelta(t, 1, u.Magnitude(), tol)
	assert.True(t, f.IsPerpendicular(r))
	assert.True(t, f.IsPerpendicular(u))
	assert.True(t, r.IsPerpendicular(u))
	assert.Greater(t, u.Dot(c.Up()), 0.0)

	assert.Equal(t, Mat4Mul(c.Projection(), c.View()), c.ViewProjection())
	assert.InDelta(t, c.Position().DistanceTo(c.Target()), c.DepthOf(c.Target()), tol)
	assert.False(t, c.IsZero())
	assert.True(t, Camera{}.IsZero())
}

func TestCameraValidation(t *testing.T) {
	tests := []struct {
		name string
		make func() (Camera, error)
		want error
	}{
		{"coincident", func() (Camera, error) { return PerspectiveDefault(eye, eye, upY, 60, 1) }, ErrCoincidentEye},
		{"up parallel", func() (Camera, error) { return PerspectiveDefault(eye, origin, geom.UnitZ(), 60, 1) }, ErrUpParallel},
		{"up zero", func() (Camera, error) { return Orthographic(eye, origin, geom.ZeroVector(), 1, 1) }, ErrUpParallel},
		{"fov zero", func() (Camera, error) { return PerspectiveDefault(eye, origin, upY, 0, 1) }, geom.ErrInvalidParameter},
		{"fov 180", func() (Camera, error) { return PerspectiveDefault(eye, origin, upY, 180, 1) }, geom.ErrInvalidParameter},
		{"aspect", func() (Camera, error) { return PerspectiveDefault(eye, origin, upY, 60, 0) }, geom.ErrInvalidParameter},
		{"near", func() (Camera, error) { return Perspective(eye, origin, upY, 60, 1, 0, 10) }, geom.ErrInvalidParameter},
		{"far", func() (Camera, error) { return Perspective(eye, origin, upY, 60, 1, 5, 5) }, geom.ErrInvalidParameter},
		{"ortho size", func() (Camera, error) { return Orthographic(eye, origin, upY, 0, 1) }, geom.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.make()
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := PerspectiveDefault(eye, eye, upY, 60, 1)
	assert.ErrorIs(t, err, geom.ErrInvalidConstruction)
}

func TestMat4(t *testing.T) {
	id := Mat4Identity()
	m := LookAt(eye, geom.UnitX(), upY, geom.NewVector(0, 0, -1))
	assert.Equal(t, m, Mat4Mul(id, m))
	assert.Equal(t, m, Mat4Mul(m, id))

	x, y, z, w := m.MulPoint(origin)
	assert.Equal(t, [4]float64{0, 0, -5, 1}, [4]float64{x, y, z, w})
	assert.Equal(t, -5.0, m.At(2, 3))
}
