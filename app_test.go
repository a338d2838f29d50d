package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wykwit-tylko/common-core-geometry/pkg/config"
)

// testConfig mirrors the environment defaults with a smaller mesh grid.
func testConfig() *config.Config {
	return &config.Config{
		Width:     800,
		Height:    600,
		Timeout:   5 * time.Second,
		MeshCells: 12,
		Output:    "scene.svg",
		LogLevel:  "info",
	}
}

func evalExample(t *testing.T, path string) EvalResult {
	t.Helper()
	source, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	result := NewApp(testConfig()).Evaluate(string(source))
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}
	return result
}

// TestE2ESpheresExample exercises the full pipeline: Lisp source → engine →
// scene → tessellate → SVG, on the three-sphere ray example.
func TestE2ESpheresExample(t *testing.T) {
	result := evalExample(t, "examples/spheres.lisp")

	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
	if result.Items != 3 || result.Rays != 1 || result.Meshes != 0 {
		t.Errorf("items=%d rays=%d meshes=%d, want 3 1 0", result.Items, result.Rays, result.Meshes)
	}

	svg := result.SVG
	if !strings.HasPrefix(svg, "<?xml") && !strings.HasPrefix(svg, "<svg") {
		t.Fatalf("output is not an SVG document: %.60q", svg)
	}
	if !strings.Contains(svg, `width="400" height="300"`) {
		t.Error("script canvas size not applied")
	}
	if !strings.Contains(svg, `fill="#ffffff"`) {
		t.Error("background not rendered")
	}

	// Three sphere outlines plus one marker per hit.
	if n := strings.Count(svg, "<circle"); n != 6 {
		t.Errorf("got %d circles, want 6", n)
	}
	if n := strings.Count(svg, "<line"); n != 1 {
		t.Errorf("got %d lines, want 1 for the ray", n)
	}

	// Paint order: spheres in script order, then the ray.
	left := strings.Index(svg, "#1f77b4")
	middle := strings.Index(svg, "#ff7f0e")
	right := strings.Index(svg, "#2ca02c")
	ray := strings.Index(svg, "<line")
	if !(left < middle && middle < right && right < ray) {
		t.Errorf("unexpected paint order: left=%d middle=%d right=%d ray=%d", left, middle, right, ray)
	}
}

func TestE2EPrimitivesExample(t *testing.T) {
	result := evalExample(t, "examples/primitives.lisp")

	if result.Items != 5 {
		t.Errorf("items = %d, want 5", result.Items)
	}
	if result.Meshes != 1 {
		t.Fatalf("meshes = %d, want 1 for the tessellated sphere", result.Meshes)
	}

	svg := result.SVG
	// The roof plus the sphere's facets.
	if n := strings.Count(svg, "<polygon"); n < 2 {
		t.Errorf("got %d polygons, want the triangle and mesh facets", n)
	}
	// Twelve cube edges and the segment.
	if n := strings.Count(svg, "<line"); n != 13 {
		t.Errorf("got %d lines, want 13", n)
	}
	// Only the apex marker; the meshed sphere is not drawn as a circle.
	if n := strings.Count(svg, "<circle"); n != 1 {
		t.Errorf("got %d circles, want 1", n)
	}
}

// TestE2EEmptySource ensures the pipeline renders a blank canvas for
// empty input.
func TestE2EEmptySource(t *testing.T) {
	result := NewApp(nil).Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if !strings.Contains(result.SVG, `width="800" height="600"`) {
		t.Errorf("expected a blank default canvas, got %q", result.SVG)
	}
	if strings.Contains(result.SVG, "<circle") || strings.Contains(result.SVG, "<line") {
		t.Error("blank canvas should have no elements")
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	result := NewApp(nil).Evaluate(`(sphere (point 0 0 0) 1`)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if result.SVG != "" {
		t.Error("expected no SVG on error")
	}
}

func TestE2EConfigCanvasDefaults(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 320, 240
	cfg.Background = "#123456"

	result := NewApp(cfg).Evaluate(`(orthographic :eye (point 0 0 5))
(marker (point 0 0 0))`)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if !strings.Contains(result.SVG, `width="320" height="240"`) {
		t.Error("configured canvas not applied")
	}
	if !strings.Contains(result.SVG, `fill="#123456"`) {
		t.Error("configured background not applied")
	}

	// The script's own canvas wins.
	result = NewApp(cfg).Evaluate(`(canvas 64 48)`)
	if !strings.Contains(result.SVG, `width="64" height="48"`) {
		t.Errorf("script canvas should override config, got %q", result.SVG)
	}
}

// TestAppRenderWritesThroughRenderer checks that Render saves the same
// document Evaluate returns, and writes nothing for a broken script.
func TestAppRenderWritesThroughRenderer(t *testing.T) {
	dir := t.TempDir()
	app := NewApp(testConfig())
	source := `(canvas 64 48) (orthographic :eye (point 0 0 5)) (sphere (point 0 0 0) 1)`
	want := app.Evaluate(source).SVG

	out := filepath.Join(dir, "scene.svg")
	var stdout bytes.Buffer
	result, err := app.Render(source, out, &stdout)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != want || result.SVG != want {
		t.Errorf("file and result differ from Evaluate:\n%s", b)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout written for a file output: %q", stdout.String())
	}

	result, err = app.Render(source, "-", &stdout)
	if err != nil {
		t.Fatalf("Render(-) error = %v", err)
	}
	if stdout.String() != want || result.SVG != want {
		t.Errorf("stdout = %q, want the Evaluate document", stdout.String())
	}

	broken := filepath.Join(dir, "broken.svg")
	result, err = app.Render(`(sphere (point 0 0 0) -1)`, broken, &stdout)
	if err != nil || len(result.Errors) == 0 {
		t.Fatalf("Render(broken) = %d errors, %v; want script errors and nil", len(result.Errors), err)
	}
	if _, err := os.Stat(broken); !os.IsNotExist(err) {
		t.Errorf("output written for a script with errors: %v", err)
	}

	if _, err := app.Render(source, filepath.Join(dir, "missing", "scene.svg"), &stdout); err == nil {
		t.Error("expected an error writing into a missing directory")
	}
}
