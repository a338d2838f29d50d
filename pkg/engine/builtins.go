package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/wykwit-tylko/common-core-geometry/pkg/camera"
	"github.com/wykwit-tylko/common-core-geometry/pkg/geom"
	"github.com/wykwit-tylko/common-core-geometry/pkg/raycast"
	"github.com/wykwit-tylko/common-core-geometry/pkg/render"
	"github.com/wykwit-tylko/common-core-geometry/pkg/scene"
)

// Camera defaults used when a script omits the keyword.
const (
	defaultFOV       = 60.0
	defaultViewWidth = 10.0
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPoint wraps a geom.Point3D. Points are values; they are only drawn
// when passed to a shape builtin or to marker.
type sexpPoint struct {
	p geom.Point3D
}

func (s *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(point %g %g %g)", s.p.X, s.p.Y, s.p.Z)
}
func (s *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpVector wraps a geom.Vector3D.
type sexpVector struct {
	v geom.Vector3D
}

func (s *sexpVector) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec %g %g %g)", s.v.X, s.v.Y, s.v.Z)
}
func (s *sexpVector) Type() *zygo.RegisteredType { return nil }

// sexpItemRef refers to an item added to the scene.
type sexpItemRef struct {
	id   scene.ItemID
	kind scene.ShapeKind
	name string // human-readable name for error messages
}

func (r *sexpItemRef) SexpString(ps *zygo.PrintState) string {
	if r.name != "" {
		return fmt.Sprintf("(%s %q)", r.kind, r.name)
	}
	return fmt.Sprintf("(%s %s)", r.kind, r.id.Short())
}
func (r *sexpItemRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		switch {
		case !ok:
			result.positional = append(result.positional, args[i])
		case i+1 < len(args):
			result.kw[name] = args[i+1]
			i++
		default:
			// Keyword at end with no value: treat as flag with nil.
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// float reads an optional numeric keyword, returning def when absent.
func (a kwArgs) float(fn, key string, def float64) (float64, error) {
	v, ok := a.kw[key]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	return f, nil
}

// str reads an optional string keyword, returning def when absent.
func (a kwArgs) str(fn, key, def string) (string, error) {
	v, ok := a.kw[key]
	if !ok {
		return def, nil
	}
	s, err := toString(v)
	if err != nil {
		return "", fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	return s, nil
}

// point reads an optional point keyword, returning def when absent.
func (a kwArgs) point(fn, key string, def geom.Point3D) (geom.Point3D, error) {
	v, ok := a.kw[key]
	if !ok {
		return def, nil
	}
	p, err := toPoint(v)
	if err != nil {
		return geom.Point3D{}, fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	return p, nil
}

// vector reads an optional vector keyword, returning def when absent.
func (a kwArgs) vector(fn, key string, def geom.Vector3D) (geom.Vector3D, error) {
	v, ok := a.kw[key]
	if !ok {
		return def, nil
	}
	vec, err := toVector(v)
	if err != nil {
		return geom.Vector3D{}, fmt.Errorf("%s: %s: %w", fn, key, err)
	}
	return vec, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts a whole number from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == float64(int(v.Val)) {
			return int(v.Val), nil
		}
	}
	return 0, fmt.Errorf("expected whole number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a boolean. A bare trailing keyword (nil value) counts
// as true so that `:mesh` alone enables the flag.
func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return true, nil
		}
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toPoint extracts a Point3D from a sexpPoint.
func toPoint(s zygo.Sexp) (geom.Point3D, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.p, nil
	}
	return geom.Point3D{}, fmt.Errorf("expected point, got %T (%s)", s, s.SexpString(nil))
}

// toVector extracts a Vector3D from a sexpVector.
func toVector(s zygo.Sexp) (geom.Vector3D, error) {
	if v, ok := s.(*sexpVector); ok {
		return v.v, nil
	}
	return geom.Vector3D{}, fmt.Errorf("expected vec, got %T (%s)", s, s.SexpString(nil))
}

// toPoints extracts every positional argument as a point.
func toPoints(fn string, args []zygo.Sexp) ([]geom.Point3D, error) {
	pts := make([]geom.Point3D, 0, len(args))
	for i, a := range args {
		p, err := toPoint(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", fn, i+1, err)
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// xyz reads exactly three numeric positional arguments.
func xyz(fn string, args []zygo.Sexp) (x, y, z float64, err error) {
	if len(args) != 3 {
		return 0, 0, 0, fmt.Errorf("%s requires exactly 3 arguments, got %d", fn, len(args))
	}
	var c [3]float64
	for i, a := range args {
		if c[i], err = toFloat64(a); err != nil {
			return 0, 0, 0, fmt.Errorf("%s: %c: %w", fn, "xyz"[i], err)
		}
	}
	return c[0], c[1], c[2], nil
}

// ---------------------------------------------------------------------------
// Styles
// ---------------------------------------------------------------------------

// parseStyle reads :stroke, :fill and :width.
func parseStyle(fn string, pa kwArgs) (render.Style, error) {
	var st render.Style
	var err error
	if st.Stroke, err = pa.str(fn, "stroke", ""); err != nil {
		return st, err
	}
	if st.Fill, err = pa.str(fn, "fill", ""); err != nil {
		return st, err
	}
	if st.StrokeWidth, err = pa.float(fn, "width", 0); err != nil {
		return st, err
	}
	return st, nil
}

// parsePointStyle reads :color and :size, with the given keyword prefix
// ("" for markers, "hit-" for ray hits).
func parsePointStyle(fn, prefix string, pa kwArgs) (render.PointStyle, error) {
	var st render.PointStyle
	var err error
	if st.Color, err = pa.str(fn, prefix+"color", ""); err != nil {
		return st, err
	}
	if st.Size, err = pa.float(fn, prefix+"size", 0); err != nil {
		return st, err
	}
	return st, nil
}

// addItem reads the keywords shared by every shape builtin (:name, :mesh
// and the style) and appends the item to the scene.
func addItem(sc *scene.Scene, fn string, shape scene.Shape, pa kwArgs) (zygo.Sexp, error) {
	it := scene.Item{Shape: shape}
	var err error
	if it.Name, err = pa.str(fn, "name", ""); err != nil {
		return zygo.SexpNull, err
	}
	if v, ok := pa.kw["mesh"]; ok {
		if it.Tessellate, err = toBool(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: mesh: %w", fn, err)
		}
	}
	if shape.Kind() == scene.ShapePoint {
		it.PointStyle, err = parsePointStyle(fn, "", pa)
	} else {
		it.Style, err = parseStyle(fn, pa)
	}
	if err != nil {
		return zygo.SexpNull, err
	}

	added := sc.Add(it)
	return &sexpItemRef{id: added.ID, kind: shape.Kind(), name: added.Name}, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all scene DSL builtins into a zygomys
// environment. The builtins operate on the provided Scene, populating it
// during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals and
// kebab-case names match the underscore names registered here.
func registerBuiltins(env *zygo.Zlisp, sc *scene.Scene) {
	registerValues(env)
	registerSetup(env, sc)
	registerShapes(env, sc)
	registerQueries(env, sc)
}

// registerValues installs the point and vector constructors and operators.
func registerValues(env *zygo.Zlisp) {

	// (point 1 2 3)
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		x, y, z, err := xyz(name, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPoint{p: geom.NewPoint(x, y, z)}, nil
	})

	// (vec 1 2 3), also spelled vec3
	vec := func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		x, y, z, err := xyz(name, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVector{v: geom.NewVector(x, y, z)}, nil
	}
	env.AddFunction("vec", vec)
	env.AddFunction("vec3", vec)

	// (midpoint p q)
	env.AddFunction("midpoint", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("midpoint requires 2 points, got %d arguments", len(args))
		}
		pts, err := toPoints(name, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPoint{p: pts[0].Midpoint(pts[1])}, nil
	})

	// (offset p v) moves a point by a vector.
	env.AddFunction("offset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("offset requires a point and a vec, got %d arguments", len(args))
		}
		p, err := toPoint(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("offset: %w", err)
		}
		v, err := toVector(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("offset: %w", err)
		}
		return &sexpPoint{p: p.Translate(v)}, nil
	})

	// (cross a b)
	env.AddFunction("cross", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := twoVectors(name, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVector{v: a.Cross(b)}, nil
	})

	// (dot a b)
	env.AddFunction("dot", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := twoVectors(name, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpFloat{Val: a.Dot(b)}, nil
	})

	// (normalize v)
	env.AddFunction("normalize", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("normalize requires 1 vec, got %d arguments", len(args))
		}
		v, err := toVector(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("normalize: %w", err)
		}
		n, err := v.Normalize()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("normalize: %w", err)
		}
		return &sexpVector{v: n}, nil
	})
}

func twoVectors(fn string, args []zygo.Sexp) (geom.Vector3D, geom.Vector3D, error) {
	if len(args) != 2 {
		return geom.Vector3D{}, geom.Vector3D{}, fmt.Errorf("%s requires 2 vecs, got %d arguments", fn, len(args))
	}
	a, err := toVector(args[0])
	if err != nil {
		return geom.Vector3D{}, geom.Vector3D{}, fmt.Errorf("%s: %w", fn, err)
	}
	b, err := toVector(args[1])
	if err != nil {
		return geom.Vector3D{}, geom.Vector3D{}, fmt.Errorf("%s: %w", fn, err)
	}
	return a, b, nil
}

// registerSetup installs the canvas, background and camera builtins.
func registerSetup(env *zygo.Zlisp, sc *scene.Scene) {

	// (canvas 800 600)
	env.AddFunction("canvas", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("canvas requires a width and a height, got %d arguments", len(args))
		}
		w, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("canvas: width: %w", err)
		}
		h, err := toInt(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("canvas: height: %w", err)
		}
		if w <= 0 || h <= 0 {
			return zygo.SexpNull, fmt.Errorf("canvas: size %dx%d must be positive: %w", w, h, geom.ErrInvalidParameter)
		}
		sc.Width, sc.Height = w, h
		return zygo.SexpNull, nil
	})

	// (background "#ffffff")
	env.AddFunction("background", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("background requires a color, got %d arguments", len(args))
		}
		color, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("background: %w", err)
		}
		sc.Background = color
		return zygo.SexpNull, nil
	})

	// (perspective :eye (point 0 0 5) :target (point 0 0 0) :up (vec 0 1 0)
	//              :fov 60 :aspect 1.33 :near 0.1 :far 100)
	//
	// :aspect defaults to the canvas aspect at the time of the call.
	env.AddFunction("perspective", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		eye, target, up, err := cameraPose(name, pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		fov, err := pa.float(name, "fov", defaultFOV)
		if err != nil {
			return zygo.SexpNull, err
		}
		aspect, err := pa.float(name, "aspect", float64(sc.Width)/float64(sc.Height))
		if err != nil {
			return zygo.SexpNull, err
		}
		near, err := pa.float(name, "near", camera.DefaultNear)
		if err != nil {
			return zygo.SexpNull, err
		}
		far, err := pa.float(name, "far", camera.DefaultFar)
		if err != nil {
			return zygo.SexpNull, err
		}
		c, err := camera.Perspective(eye, target, up, fov, aspect, near, far)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("perspective: %w", err)
		}
		sc.SetCamera(c)
		return zygo.SexpNull, nil
	})

	// (orthographic :eye (point 0 0 5) :target (point 0 0 0) :up (vec 0 1 0)
	//               :width 10 :height 7.5)
	//
	// :height defaults to :width scaled by the canvas aspect.
	env.AddFunction("orthographic", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		eye, target, up, err := cameraPose(name, pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		w, err := pa.float(name, "width", defaultViewWidth)
		if err != nil {
			return zygo.SexpNull, err
		}
		h, err := pa.float(name, "height", w*float64(sc.Height)/float64(sc.Width))
		if err != nil {
			return zygo.SexpNull, err
		}
		c, err := camera.Orthographic(eye, target, up, w, h)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("orthographic: %w", err)
		}
		sc.SetCamera(c)
		return zygo.SexpNull, nil
	})
}

// cameraPose reads :eye (required), :target (default origin) and :up
// (default +Y).
func cameraPose(fn string, pa kwArgs) (eye, target geom.Point3D, up geom.Vector3D, err error) {
	if _, ok := pa.kw["eye"]; !ok {
		return eye, target, up, fmt.Errorf("%s requires :eye", fn)
	}
	if eye, err = pa.point(fn, "eye", geom.Origin); err != nil {
		return eye, target, up, err
	}
	if target, err = pa.point(fn, "target", geom.Origin); err != nil {
		return eye, target, up, err
	}
	up, err = pa.vector(fn, "up", geom.UnitY())
	return eye, target, up, err
}

// registerShapes installs the builtins that add items and rays to the scene.
func registerShapes(env *zygo.Zlisp, sc *scene.Scene) {

	// (marker (point 1 2 3) :color "#f00" :size 4 :name "apex")
	env.AddFunction("marker", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("marker requires 1 point, got %d", len(pa.positional))
		}
		p, err := toPoint(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("marker: %w", err)
		}
		return addItem(sc, name, scene.Point{Point3D: p}, pa)
	})

	// (segment (point 0 0 0) (point 1 1 1) :stroke "#333" :width 2)
	env.AddFunction("segment", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("segment requires 2 points, got %d", len(pa.positional))
		}
		pts, err := toPoints(name, pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		seg, err := geom.NewLineSegment(pts[0], pts[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("segment: %w", err)
		}
		return addItem(sc, name, scene.Segment{LineSegment: seg}, pa)
	})

	// (triangle a b c :fill "#0f0")
	env.AddFunction("triangle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 3 {
			return zygo.SexpNull, fmt.Errorf("triangle requires 3 points, got %d", len(pa.positional))
		}
		pts, err := toPoints(name, pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		tri, err := geom.NewTriangle(pts[0], pts[1], pts[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("triangle: %w", err)
		}
		return addItem(sc, name, scene.Triangle{Triangle: tri}, pa)
	})

	// (sphere (point 0 0 0) 1.5 :stroke "#00f" :mesh true)
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("sphere requires a centre point and a radius, got %d arguments", len(pa.positional))
		}
		c, err := toPoint(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: centre: %w", err)
		}
		r, err := toFloat64(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
		}
		s, err := geom.NewSphere(c, r)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		return addItem(sc, name, scene.Sphere{Sphere: s}, pa)
	})

	// (box (point 0 0 0) (point 1 2 3) :stroke "#0a0")
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("box requires min and max points, got %d", len(pa.positional))
		}
		pts, err := toPoints(name, pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		b, err := geom.NewAABB(pts[0], pts[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		return addItem(sc, name, scene.Box{AABB: b}, pa)
	})

	// (box-from-points p1 p2 p3 ...) or (box-from-points (list p1 p2 ...))
	env.AddFunction("box_from_points", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		items := pa.positional
		if len(items) == 1 {
			if list, err := sexpListToSlice(items[0]); err == nil {
				items = list
			}
		}
		pts, err := toPoints("box-from-points", items)
		if err != nil {
			return zygo.SexpNull, err
		}
		b, err := geom.AABBFromPoints(pts...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box-from-points: %w", err)
		}
		return addItem(sc, "box-from-points", scene.Box{AABB: b}, pa)
	})

	// (ray (point -5 0 0) (vec 1 0 0) :length 10 :stroke "#f00"
	//      :hit-color "#f0f" :hit-size 4 :name "scan")
	env.AddFunction("ray", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("ray requires an origin point and a direction vec, got %d arguments", len(pa.positional))
		}
		r, err := rayArgs(name, pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		q := scene.RayQuery{Ray: r}
		if q.Name, err = pa.str(name, "name", ""); err != nil {
			return zygo.SexpNull, err
		}
		if q.Length, err = pa.float(name, "length", 0); err != nil {
			return zygo.SexpNull, err
		}
		if q.Length < 0 {
			return zygo.SexpNull, fmt.Errorf("ray: length %g must not be negative: %w", q.Length, geom.ErrInvalidParameter)
		}
		if q.Style, err = parseStyle(name, pa); err != nil {
			return zygo.SexpNull, err
		}
		if q.HitStyle, err = parsePointStyle(name, "hit-", pa); err != nil {
			return zygo.SexpNull, err
		}
		sc.AddRay(q)
		return zygo.SexpNull, nil
	})
}

// rayArgs builds a ray from an origin point and a direction vector.
func rayArgs(fn string, args []zygo.Sexp) (raycast.Ray, error) {
	origin, err := toPoint(args[0])
	if err != nil {
		return raycast.Ray{}, fmt.Errorf("%s: origin: %w", fn, err)
	}
	dir, err := toVector(args[1])
	if err != nil {
		return raycast.Ray{}, fmt.Errorf("%s: direction: %w", fn, err)
	}
	r, err := raycast.New(origin, dir)
	if err != nil {
		return raycast.Ray{}, fmt.Errorf("%s: %w", fn, err)
	}
	return r, nil
}

// registerQueries installs builtins that measure geometry and return numbers.
func registerQueries(env *zygo.Zlisp, sc *scene.Scene) {

	// (distance p q)
	env.AddFunction("distance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("distance requires 2 points, got %d arguments", len(args))
		}
		pts, err := toPoints(name, args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpFloat{Val: pts[0].DistanceTo(pts[1])}, nil
	})

	// (plane-distance p a b c) is the signed distance of p from the plane
	// through a, b and c.
	env.AddFunction("plane_distance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("plane-distance requires 4 points, got %d arguments", len(args))
		}
		pts, err := toPoints("plane-distance", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		pl, err := geom.PlaneFromThreePoints(pts[1], pts[2], pts[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("plane-distance: %w", err)
		}
		return &zygo.SexpFloat{Val: pl.DistanceTo(pts[0])}, nil
	})

	// (first-hit origin dir) is the distance to the nearest item the ray
	// hits among the items added so far, or nil on a miss.
	env.AddFunction("first_hit", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("first-hit requires an origin point and a direction vec, got %d arguments", len(args))
		}
		r, err := rayArgs("first-hit", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		targets, _ := sc.Targets()
		h, ok := raycast.Closest(r, targets...)
		if !ok {
			return zygo.SexpNull, nil
		}
		return &zygo.SexpFloat{Val: h.T}, nil
	})
}
