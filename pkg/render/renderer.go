// Package render projects geometry through a camera and serializes it as
// an SVG document.
//
// A Renderer has two phases. While building, Add* calls append elements;
// their order is the paint order. The first call to Render, Save, WriteTo
// or Close finalizes it: the document is produced once and later Add*
// calls fail with ErrFinalized.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	svg "github.com/ajstarks/svgo/float"

	"github.com/wykwit-tylko/common-core-geometry/pkg/camera"
	"github.com/wykwit-tylko/common-core-geometry/pkg/geom"
	"github.com/wykwit-tylko/common-core-geometry/pkg/raycast"
)

// ErrFinalized is returned when adding to a renderer that has already
// produced its document.
var ErrFinalized = errors.New("render: renderer is finalized")

// Renderer accumulates styled elements. It is meant for a single writer:
// one goroutine adds elements and then finalizes.
type Renderer struct {
	width, height int
	cam           camera.Camera
	background    string
	output        string

	elements  []element
	finalized bool
	doc       string

	closeOnce sync.Once
	closeErr  error
}

// Option configures a Renderer at construction.
type Option func(*Renderer)

// WithBackground fills the canvas with color before any element.
func WithBackground(color string) Option {
	return func(r *Renderer) { r.background = color }
}

// WithOutput makes Close write the document to path.
func WithOutput(path string) Option {
	return func(r *Renderer) { r.output = path }
}

// New returns a renderer for a width×height pixel canvas.
func New(width, height int, cam camera.Camera, opts ...Option) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: canvas %dx%d must be positive: %w", width, height, geom.ErrInvalidParameter)
	}
	if cam.IsZero() {
		return nil, fmt.Errorf("render: camera is not initialized: %w", geom.ErrInvalidParameter)
	}
	r := &Renderer{width: width, height: height, cam: cam}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Renderer) Width() int            { return r.width }
func (r *Renderer) Height() int           { return r.height }
func (r *Renderer) Camera() camera.Camera { return r.cam }

// Len returns the number of elements added so far.
func (r *Renderer) Len() int { return len(r.elements) }

// SetBackground replaces the background color; "" removes it.
func (r *Renderer) SetBackground(color string) error {
	if r.finalized {
		return ErrFinalized
	}
	r.background = color
	return nil
}

func (r *Renderer) add(e element) error {
	if r.finalized {
		return ErrFinalized
	}
	r.elements = append(r.elements, e)
	return nil
}

func (r *Renderer) AddPoint(p geom.Point3D, st PointStyle) error {
	return r.add(pointElement{p: p, style: st.withDefaults()})
}

func (r *Renderer) AddSegment(s geom.LineSegment, st Style) error {
	return r.add(segmentElement{a: s.Start(), b: s.End(), style: st.withDefaults()})
}

func (r *Renderer) AddTriangle(t geom.Triangle, st Style) error {
	return r.add(triangleElement{tri: t, style: st.withDefaults()})
}

func (r *Renderer) AddSphere(s geom.Sphere, st Style) error {
	return r.add(sphereElement{s: s, style: st.withDefaults()})
}

func (r *Renderer) AddAABB(b geom.AABB, st Style) error {
	return r.add(boxElement{box: b, style: st.withDefaults()})
}

// AddMesh adds a triangle soup, typically a tessellated sphere or box.
func (r *Renderer) AddMesh(tris []geom.Triangle, st Style) error {
	return r.add(meshElement{tris: append([]geom.Triangle(nil), tris...), style: st.withDefaults()})
}

// AddRay draws the ray from its origin to the point at distance length.
func (r *Renderer) AddRay(ray raycast.Ray, length float64, st Style) error {
	return r.add(segmentElement{a: ray.Origin(), b: ray.PointAt(length), style: st.withDefaults()})
}

// AddHit marks a ray hit point.
func (r *Renderer) AddHit(h raycast.Hit, st PointStyle) error {
	return r.AddPoint(h.Point, st)
}

// Render finalizes the renderer and returns the SVG document. Repeated
// calls return the same text.
func (r *Renderer) Render() string {
	if !r.finalized {
		r.finalized = true
		r.doc = r.encode()
	}
	return r.doc
}

func (r *Renderer) encode() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<svg width=\"%d\" height=\"%d\" xmlns=\"http://www.w3.org/2000/svg\">\n", r.width, r.height)

	c := &canvas{
		svg:    svg.New(&buf),
		cam:    r.cam,
		width:  float64(r.width),
		height: float64(r.height),
	}
	if r.background != "" {
		c.svg.Rect(0, 0, c.width, c.height, attr("fill", r.background))
	}
	for _, e := range r.elements {
		e.draw(c)
	}

	buf.WriteString("</svg>")
	return buf.String()
}

// WriteTo writes the rendered document to w.
func (r *Renderer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.Render())
	return int64(n), err
}

// Save writes the rendered document to path in a single write. Write
// errors are returned unchanged.
func (r *Renderer) Save(path string) error {
	return os.WriteFile(path, []byte(r.Render()), 0o644)
}

// Close finalizes the renderer and, when WithOutput was given, saves the
// document. It runs its work exactly once; later calls return the first
// result. Close is meant to be deferred right after New.
func (r *Renderer) Close() error {
	r.closeOnce.Do(func() {
		if r.output == "" {
			r.Render()
			return
		}
		r.closeErr = r.Save(r.output)
	})
	return r.closeErr
}
