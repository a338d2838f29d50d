// Package camera turns a look-at description plus a perspective or
// orthographic projection into a single world-to-NDC transform.
package camera

import (
	"fmt"
	"math"

	"github.com/wykwit-tylko/common-core-geometry/pkg/geom"
)

// Kind selects the projection.
type Kind int

const (
	KindPerspective Kind = iota
	KindOrthographic
)

func (k Kind) String() string {
	switch k {
	case KindPerspective:
		return "perspective"
	case KindOrthographic:
		return "orthographic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Default clip distances for Perspective.
const (
	DefaultNear = 0.1
	DefaultFar  = 100.0
)

// Orthographic cameras clip between these view-space depths.
const (
	orthoNear = -1.0
	orthoFar  = 1.0
)

// wEpsilon guards the perspective divide.
const wEpsilon = 1e-10

var (
	ErrCoincidentEye = fmt.Errorf("camera position equals target: %w", geom.ErrInvalidConstruction)
	ErrUpParallel    = fmt.Errorf("up vector is parallel to view direction: %w", geom.ErrInvalidConstruction)
)

// Camera is an immutable view + projection. The combined transform is
// computed once at construction.
type Camera struct {
	kind     Kind
	position geom.Point3D
	target   geom.Point3D
	up       geom.Vector3D

	forward, right, trueUp geom.Vector3D

	fovDeg, aspect float64
	width, height  float64
	near, far      float64

	view, proj, viewProj Mat4
}

// Perspective returns a perspective camera with a vertical field of view
// in degrees.
func Perspective(position, target geom.Point3D, up geom.Vector3D, fovDeg, aspect, near, far float64) (Camera, error) {
	switch {
	case !(fovDeg > 0 && fovDeg < 180):
		return Camera{}, fmt.Errorf("camera fov %g must be in (0, 180): %w", fovDeg, geom.ErrInvalidParameter)
	case !(aspect > 0):
		return Camera{}, fmt.Errorf("camera aspect %g must be positive: %w", aspect, geom.ErrInvalidParameter)
	case !(near > 0):
		return Camera{}, fmt.Errorf("camera near %g must be positive: %w", near, geom.ErrInvalidParameter)
	case !(far > near):
		return Camera{}, fmt.Errorf("camera far %g must exceed near %g: %w", far, near, geom.ErrInvalidParameter)
	}
	c, err := newCamera(KindPerspective, position, target, up)
	if err != nil {
		return Camera{}, err
	}
	c.fovDeg, c.aspect, c.near, c.far = fovDeg, aspect, near, far
	c.proj = PerspectiveMatrix(fovDeg*math.Pi/180, aspect, near, far)
	c.viewProj = Mat4Mul(c.proj, c.view)
	return c, nil
}

// PerspectiveDefault is Perspective with DefaultNear and DefaultFar.
func PerspectiveDefault(position, target geom.Point3D, up geom.Vector3D, fovDeg, aspect float64) (Camera, error) {
	return Perspective(position, target, up, fovDeg, aspect, DefaultNear, DefaultFar)
}

// Orthographic returns a parallel-projection camera whose view volume is
// width × height world units.
func Orthographic(position, target geom.Point3D, up geom.Vector3D, width, height float64) (Camera, error) {
	if !(width > 0) || !(height > 0) {
		return Camera{}, fmt.Errorf("camera view %gx%g must be positive: %w", width, height, geom.ErrInvalidParameter)
	}
	c, err := newCamera(KindOrthographic, position, target, up)
	if err != nil {
		return Camera{}, err
	}
	c.width, c.height, c.near, c.far = width, height, orthoNear, orthoFar
	c.aspect = width / height
	c.proj = OrthographicMatrix(width, height, orthoNear, orthoFar)
	c.viewProj = Mat4Mul(c.proj, c.view)
	return c, nil
}

// newCamera validates the look-at triple and builds the view basis.
func newCamera(kind Kind, position, target geom.Point3D, up geom.Vector3D) (Camera, error) {
	forward, err := target.Sub(position).Normalize()
	if err != nil {
		return Camera{}, ErrCoincidentEye
	}
	if up.IsParallel(forward) {
		return Camera{}, ErrUpParallel
	}
	right, err := forward.Cross(up).Normalize()
	if err != nil {
		return Camera{}, ErrUpParallel
	}
	trueUp := right.Cross(forward)

	return Camera{
		kind:     kind,
		position: position,
		target:   target,
		up:       up,
		forward:  forward,
		right:    right,
		trueUp:   trueUp,
		view:     LookAt(position, right, trueUp, forward),
	}, nil
}

func (c Camera) Kind() Kind               { return c.kind }
func (c Camera) Position() geom.Point3D   { return c.position }
func (c Camera) Target() geom.Point3D     { return c.target }
func (c Camera) Up() geom.Vector3D        { return c.up }
func (c Camera) Forward() geom.Vector3D   { return c.forward }
func (c Camera) Right() geom.Vector3D     { return c.right }
func (c Camera) TrueUp() geom.Vector3D    { return c.trueUp }
func (c Camera) FOV() float64             { return c.fovDeg }
func (c Camera) Aspect() float64          { return c.aspect }
func (c Camera) Near() float64            { return c.near }
func (c Camera) Far() float64             { return c.far }
func (c Camera) ViewSize() (w, h float64) { return c.width, c.height }
func (c Camera) View() Mat4               { return c.view }
func (c Camera) Projection() Mat4         { return c.proj }
func (c Camera) ViewProjection() Mat4     { return c.viewProj }
func (c Camera) IsZero() bool             { return c.viewProj == Mat4{} }

// Project maps a world point to normalized device coordinates. Visible
// points land in [-1, 1] on x and y with +y up. The perspective divide is
// skipped when |w| is vanishingly small.
func (c Camera) Project(p geom.Point3D) (ndcX, ndcY, depth float64) {
	x, y, z, w := c.viewProj.MulPoint(p)
	if math.Abs(w) > wEpsilon {
		x, y, z = x/w, y/w, z/w
	}
	return x, y, z
}

// DepthOf returns the view-space distance of p along the viewing
// direction; negative values are behind the camera.
func (c Camera) DepthOf(p geom.Point3D) float64 {
	return p.Sub(c.position).Dot(c.forward)
}

func (c Camera) String() string {
	return fmt.Sprintf("Camera(%s, position=%v, target=%v)", c.kind, c.position, c.target)
}
