package engine

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wykwit-tylko/common-core-geometry/pkg/geom"
	"github.com/wykwit-tylko/common-core-geometry/pkg/scene"
)

// sceneWithItems returns a scene holding n markers, standing in for the
// partial output of a script that was cut short.
func sceneWithItems(n int) *scene.Scene {
	sc := scene.New()
	for i := 0; i < n; i++ {
		sc.Add(scene.Item{Shape: scene.Point{Point3D: geom.NewPoint(float64(i), 0, 0)}})
	}
	return sc
}

// ---------------------------------------------------------------------------
// Evaluate
// ---------------------------------------------------------------------------

func TestEvaluateBlankSources(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t  \n  "},
		{"comments", ";; nothing here\n; still nothing\n"},
		{"definitions only", "(def r 2)\n(def c (point 0 0 0))\n(* r 3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, evalErrs, err := NewEngine(WithCanvas(200, 100)).Evaluate(tt.source)
			if err != nil || len(evalErrs) > 0 {
				t.Fatalf("Evaluate() = %v, %v; want a clean scene", evalErrs, err)
			}
			if sc == nil {
				t.Fatal("expected a scene")
			}
			if !sc.IsEmpty() {
				t.Errorf("scene has %d items and %d rays, want none", sc.ItemCount(), len(sc.Rays))
			}
			if sc.Width != 200 || sc.Height != 100 {
				t.Errorf("canvas = %dx%d, want the engine default 200x100", sc.Width, sc.Height)
			}
		})
	}
}

func TestEvaluateScriptFailuresDropScene(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"unclosed list", "(sphere (point 0 0 0) 1", ""},
		{"unknown symbol", "(sphere (point 0 0 0) radius)", ""},
		{"failure after items", "(marker (point 0 0 0))\n(sphere (point 0 0 0) -2)", "sphere"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, evalErrs, err := NewEngine().Evaluate(tt.source)
			if err != nil {
				t.Fatalf("script failure must not be fatal, got %v", err)
			}
			if sc != nil {
				t.Errorf("expected no scene, got one with %d items", sc.ItemCount())
			}
			if len(evalErrs) == 0 {
				t.Fatal("expected an eval error")
			}
			if !strings.Contains(evalErrs[0].Message, tt.want) {
				t.Errorf("message = %q, want it to mention %q", evalErrs[0].Message, tt.want)
			}
		})
	}
}

func TestEvaluateSyntaxErrorLine(t *testing.T) {
	source := "(canvas 100 100)\n(orthographic :eye (point 0 0 5))\n(sphere (point 0 0 0) 1"
	_, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) != 1 {
		t.Fatalf("got %d eval errors, want 1", len(evalErrs))
	}
	if evalErrs[0].Line != 3 {
		t.Errorf("line = %d, want 3 (message %q)", evalErrs[0].Line, evalErrs[0].Message)
	}
}

func TestEvaluateUsesFreshSandbox(t *testing.T) {
	eng := NewEngine()

	sc, _, err := eng.Evaluate("(def r 2)\n(sphere (point 0 0 0) r)")
	if err != nil || sc == nil || sc.ItemCount() != 1 {
		t.Fatalf("first run: scene=%v err=%v, want one item", sc, err)
	}

	// Neither the previous scene nor its definitions carry over.
	sc, _, _ = eng.Evaluate("(marker (point 1 1 1))")
	if sc == nil || sc.ItemCount() != 1 {
		t.Fatalf("second run should hold only its own item, got %v", sc)
	}
	if _, evalErrs, _ := eng.Evaluate("(sphere (point 0 0 0) r)"); len(evalErrs) == 0 {
		t.Error("definition of r leaked into a later evaluation")
	}

	if got := eng.generation.Load(); got != 3 {
		t.Errorf("generation = %d after three evaluations, want 3", got)
	}
}

func TestEvalErrorString(t *testing.T) {
	tests := []struct {
		err  EvalError
		want string
	}{
		{EvalError{Line: 4, Message: "sphere: radius: expected number"}, "line 4: sphere: radius: expected number"},
		{EvalError{Message: "scene has no camera"}, "scene has no camera"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Timeouts and generations
// ---------------------------------------------------------------------------

func TestAwaitTimeoutDropsPartialScene(t *testing.T) {
	eng := NewEngine(WithTimeout(30 * time.Millisecond))
	gen := eng.begin()

	// The sandbox has already added items but finishes too late.
	done := make(chan attempt, 1)
	go func() {
		time.Sleep(300 * time.Millisecond)
		done <- attempt{result: EvalResult{Scene: sceneWithItems(2)}}
	}()

	start := time.Now()
	res, err := eng.await(gen, done)
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("await() error = %v, want a timeout", err)
	}
	if res.Scene != nil {
		t.Errorf("timed out evaluation returned a scene with %d items", res.Scene.ItemCount())
	}
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Errorf("await took %s, want it to give up near the 30ms limit", elapsed)
	}
}

func TestAwaitSupersededDropsScene(t *testing.T) {
	eng := NewEngine()
	stale := eng.begin()
	eng.begin()

	done := make(chan attempt, 1)
	done <- attempt{result: EvalResult{Scene: sceneWithItems(3)}}

	res, err := eng.await(stale, done)
	if err == nil || !strings.Contains(err.Error(), "superseded") {
		t.Fatalf("await() error = %v, want superseded", err)
	}
	if res.Scene != nil {
		t.Errorf("stale evaluation returned a scene with %d items", res.Scene.ItemCount())
	}
}

func TestAwaitDeliversCurrent(t *testing.T) {
	eng := NewEngine()
	gen := eng.begin()

	done := make(chan attempt, 1)
	done <- attempt{result: EvalResult{
		Scene:  nil,
		Errors: []EvalError{{Line: 2, Message: "box: min: expected point"}},
	}}

	res, err := eng.await(gen, done)
	if err != nil {
		t.Fatalf("await() error = %v", err)
	}
	if len(res.Errors) != 1 || res.Errors[0].Line != 2 {
		t.Errorf("errors = %v, want the delivered line 2 error", res.Errors)
	}
}

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

func TestWithTimeout(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{"explicit", 2 * time.Second, 2 * time.Second},
		{"zero falls back", 0, EvalTimeout},
		{"negative falls back", -time.Second, EvalTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewEngine(WithTimeout(tt.timeout)).Timeout(); got != tt.want {
				t.Errorf("Timeout() = %s, want %s", got, tt.want)
			}
		})
	}
	if got := NewEngine().Timeout(); got != EvalTimeout {
		t.Errorf("NewEngine().Timeout() = %s, want %s", got, EvalTimeout)
	}
}

func TestCanvasOptions(t *testing.T) {
	sc, evalErrs, err := NewEngine(WithCanvas(320, 240), WithBackground("#000")).Evaluate(`(+ 1 2)`)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("unexpected failure: %v %v", err, evalErrs)
	}
	if sc.Width != 320 || sc.Height != 240 || sc.Background != "#000" {
		t.Errorf("canvas = %dx%d %q, want 320x240 \"#000\"", sc.Width, sc.Height, sc.Background)
	}

	// A script's own canvas call wins over the engine default.
	sc, _, err = NewEngine(WithCanvas(320, 240)).Evaluate(`(canvas 64 48)`)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Width != 64 || sc.Height != 48 {
		t.Errorf("canvas = %dx%d, want 64x48", sc.Width, sc.Height)
	}

	// Empty source still gets the defaults.
	sc, _, _ = NewEngine(WithCanvas(0, 10)).Evaluate("")
	if sc.Width != scene.DefaultWidth || sc.Height != scene.DefaultHeight {
		t.Errorf("invalid WithCanvas should be ignored, got %dx%d", sc.Width, sc.Height)
	}
}

// ---------------------------------------------------------------------------
// Error parsing
// ---------------------------------------------------------------------------

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		msg      string
		wantLine int
		wantMsg  string
	}{
		{"Error on line 3: parser needs more input\n", 3, "parser needs more input"},
		{"line 7: sphere: radius: expected number", 7, "sphere: radius: expected number"},
		{"  canvas: size 0x100 must be positive  ", 0, "canvas: size 0x100 must be positive"},
	}
	for _, tt := range tests {
		errs := parseZygomysError(errors.New(tt.msg))
		if len(errs) != 1 {
			t.Fatalf("%q: got %d errors, want 1", tt.msg, len(errs))
		}
		if errs[0].Line != tt.wantLine || errs[0].Message != tt.wantMsg {
			t.Errorf("%q: got line %d %q, want line %d %q", tt.msg, errs[0].Line, errs[0].Message, tt.wantLine, tt.wantMsg)
		}
	}
}
