package main

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/wykwit-tylko/common-core-geometry/pkg/config"
	"github.com/wykwit-tylko/common-core-geometry/pkg/engine"
	"github.com/wykwit-tylko/common-core-geometry/pkg/kernel"
	"github.com/wykwit-tylko/common-core-geometry/pkg/kernel/sdfx"
	"github.com/wykwit-tylko/common-core-geometry/pkg/render"
	"github.com/wykwit-tylko/common-core-geometry/pkg/tessellate"
)

// App runs scene scripts through evaluation, validation, tessellation
// and rendering.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
}

// EvalErrorData is a JSON-serializable evaluation error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
	Item    string `json:"item,omitempty"`
}

// EvalResult is the full outcome of one Evaluate call. SVG is empty
// whenever Errors is not.
type EvalResult struct {
	SVG      string          `json:"svg"`
	Items    int             `json:"items"`
	Rays     int             `json:"rays"`
	Meshes   int             `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates an App from cfg. A nil cfg uses the engine and kernel
// defaults.
func NewApp(cfg *config.Config) *App {
	if cfg == nil {
		return &App{engine: engine.NewEngine(), kernel: sdfx.New()}
	}
	return &App{
		engine: engine.NewEngine(
			engine.WithTimeout(cfg.Timeout),
			engine.WithCanvas(cfg.Width, cfg.Height),
			engine.WithBackground(cfg.Background),
		),
		kernel: sdfx.NewWithCells(cfg.MeshCells),
	}
}

// Evaluate takes Lisp source and returns the rendered SVG document or
// the errors that prevented it.
func (a *App) Evaluate(source string) EvalResult {
	result, r := a.build(source)
	if r != nil {
		result.SVG = r.Render()
	}
	return result
}

// Render evaluates source and writes the SVG document to the file
// output, or to stdout when output is "-". Nothing is written when the
// script has errors; those are reported in the result, not as err.
func (a *App) Render(source, output string, stdout io.Writer) (result EvalResult, err error) {
	var opts []render.Option
	if output != "-" {
		opts = append(opts, render.WithOutput(output))
	}
	result, r := a.build(source, opts...)
	if r == nil {
		return result, nil
	}
	defer func() {
		if cerr := r.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "write %s", output)
		}
	}()

	result.SVG = r.Render()
	if output == "-" {
		if _, err := r.WriteTo(stdout); err != nil {
			return result, errors.Wrap(err, "write stdout")
		}
	}
	return result, nil
}

// build runs the pipeline up to a populated renderer. The renderer is nil
// whenever the result carries errors.
func (a *App) build(source string, opts ...render.Option) (EvalResult, *render.Renderer) {
	result := EvalResult{
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate and validate the source into a scene.
	res, err := a.engine.Run(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		slog.Error("evaluate: fatal error", "error", err)
		return result.fail(err), nil
	}
	result.Errors = append(result.Errors, lo.Map(res.Errors, func(e engine.EvalError, _ int) EvalErrorData {
		return EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message}
	})...)
	result.Warnings = append(result.Warnings, lo.Map(res.Warnings, func(w engine.EvalWarning, _ int) EvalErrorData {
		wd := EvalErrorData{Line: w.Line, Col: w.Col, Message: w.Message}
		if !w.ItemID.IsZero() {
			wd.Item = w.ItemID.Short()
		}
		return wd
	})...)
	if len(result.Errors) > 0 || res.Scene == nil {
		return result, nil
	}
	sc := res.Scene
	result.Items = sc.ItemCount()
	result.Rays = len(sc.Rays)

	// Step 2: Mesh the items that asked for it.
	meshes, err := tessellate.Tessellate(sc, a.kernel)
	if err != nil {
		slog.Error("evaluate: tessellation failed", "error", err)
		return result.fail(err), nil
	}
	result.Meshes = len(meshes)

	// Step 3: Lay everything out for projection through the camera.
	r, err := sc.Build(meshes, opts...)
	if err != nil {
		slog.Error("evaluate: build failed", "error", err)
		return result.fail(err), nil
	}
	return result, r
}

func (r EvalResult) fail(err error) EvalResult {
	r.SVG = ""
	r.Errors = append(r.Errors, EvalErrorData{Message: err.Error()})
	return r
}
