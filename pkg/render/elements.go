package render

import (
	"math"

	svg "github.com/ajstarks/svgo/float"

	"github.com/wykwit-tylko/common-core-geometry/pkg/camera"
	"github.com/wykwit-tylko/common-core-geometry/pkg/geom"
)

// canvas maps world points to pixels and writes SVG children.
type canvas struct {
	svg           *svg.SVG
	cam           camera.Camera
	width, height float64
}

// pixel projects p and converts NDC to SVG pixel space (origin top-left).
func (c *canvas) pixel(p geom.Point3D) (x, y float64) {
	nx, ny, _ := c.cam.Project(p)
	return (nx*0.5 + 0.5) * c.width, (1 - (ny*0.5 + 0.5)) * c.height
}

func (c *canvas) polygon(pts []geom.Point3D, attrs ...string) {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = c.pixel(p)
	}
	c.svg.Polygon(xs, ys, attrs...)
}

// element is one drawable in paint order.
type element interface {
	draw(c *canvas)
}

type pointElement struct {
	p     geom.Point3D
	style PointStyle
}

func (e pointElement) draw(c *canvas) {
	x, y := c.pixel(e.p)
	c.svg.Circle(x, y, e.style.Size, attr("fill", e.style.Color), attr("stroke", "none"))
}

type segmentElement struct {
	a, b  geom.Point3D
	style Style
}

func (e segmentElement) draw(c *canvas) {
	x1, y1 := c.pixel(e.a)
	x2, y2 := c.pixel(e.b)
	st := e.style
	c.svg.Line(x1, y1, x2, y2, attr("stroke", st.Stroke), attrWidth(st.StrokeWidth))
}

type triangleElement struct {
	tri   geom.Triangle
	style Style
}

func (e triangleElement) draw(c *canvas) {
	v := e.tri.Vertices()
	c.polygon(v[:], e.style.attrs()...)
}

// sphereElement draws the sphere as a circle around its projected centre.
// The screen radius is the distance between the projected centre and the
// projection of centre + r·right, where right is the camera's right axis.
// That offset is perpendicular to the view direction at the centre's
// depth, so the result is exact for orthographic cameras. Under
// perspective the true silhouette is an ellipse that grows towards the
// frame edges; the circle underestimates it there, by roughly
// 1/cos(θ) for a sphere seen θ off the optical axis.
type sphereElement struct {
	s     geom.Sphere
	style Style
}

func (e sphereElement) draw(c *canvas) {
	cx, cy := c.pixel(e.s.Center())
	ex, ey := c.pixel(e.s.Center().Add(c.cam.Right().Scale(e.s.Radius())))
	c.svg.Circle(cx, cy, math.Hypot(ex-cx, ey-cy), e.style.attrs()...)
}

// boxElement draws the 12 box edges as a group of lines sharing one stroke.
type boxElement struct {
	box   geom.AABB
	style Style
}

func (e boxElement) draw(c *canvas) {
	corners := e.box.Corners()
	var px, py [8]float64
	for i, p := range corners {
		px[i], py[i] = c.pixel(p)
	}
	c.svg.Group(e.style.attrs()...)
	for _, edge := range geom.BoxEdges {
		a, b := edge[0], edge[1]
		c.svg.Line(px[a], py[a], px[b], py[b])
	}
	c.svg.Gend()
}

// meshElement draws a tessellated surface as a group of polygons.
type meshElement struct {
	tris  []geom.Triangle
	style Style
}

func (e meshElement) draw(c *canvas) {
	c.svg.Group(e.style.attrs()...)
	for _, tri := range e.tris {
		v := tri.Vertices()
		c.polygon(v[:])
	}
	c.svg.Gend()
}
