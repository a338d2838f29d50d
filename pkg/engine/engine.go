// Package engine provides the Lisp evaluation engine for scene scripts.
// It wraps zygomys in a sandboxed environment and produces a scene.Scene
// from user source code.
package engine

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/wykwit-tylko/common-core-geometry/pkg/scene"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a runtime error in user code, or a blocking
// validation finding.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning represents a non-fatal warning produced during evaluation.
type EvalWarning struct {
	Line    int
	Col     int
	Message string
	ItemID  scene.ItemID
}

// EvalResult bundles the full output of an evaluation.
type EvalResult struct {
	Scene    *scene.Scene
	Errors   []EvalError
	Warnings []EvalWarning
}

// Engine wraps the zygomys interpreter for scene evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	generation atomic.Uint64
	timeout    time.Duration

	// Canvas defaults for every new scene; scripts may override them.
	width, height int
	background    string
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout abandons evaluations after d. A non-positive d keeps
// EvalTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithCanvas sets the canvas size a script starts with. Non-positive
// dimensions are ignored.
func WithCanvas(width, height int) Option {
	return func(e *Engine) {
		if width > 0 && height > 0 {
			e.width, e.height = width, height
		}
	}
}

// WithBackground sets the background color a script starts with.
func WithBackground(color string) Option {
	return func(e *Engine) { e.background = color }
}

// NewEngine creates a new Engine. Without options it uses EvalTimeout and
// the scene package's default canvas.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		timeout: EvalTimeout,
		width:   scene.DefaultWidth,
		height:  scene.DefaultHeight,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Timeout returns the evaluation time limit.
func (e *Engine) Timeout() time.Duration { return e.timeout }

// Evaluate runs source in a fresh sandbox and returns the scene it built.
// A script that fails to parse or run yields a nil scene and its
// EvalErrors. The error return is for timeouts, panics and evaluations
// superseded by a later call; those never return a scene either.
func (e *Engine) Evaluate(source string) (*scene.Scene, []EvalError, error) {
	gen := e.begin()
	done := make(chan attempt, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- attempt{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		res, err := e.evaluate(source)
		done <- attempt{result: res, err: err}
	}()

	res, err := e.await(gen, done)
	if err != nil {
		slog.Warn("evaluation failed", "generation", gen, "error", err)
	} else if res.Scene != nil {
		slog.Debug("evaluation finished", "generation", gen, "items", res.Scene.ItemCount(), "rays", len(res.Scene.Rays))
	}
	return res.Scene, res.Errors, err
}

// Run evaluates source and validates the resulting scene. Blocking
// validation findings are reported as EvalErrors without line numbers and
// advisory ones as EvalWarnings. The error return is reserved for fatal
// failures, as in Evaluate.
func (e *Engine) Run(source string) (EvalResult, error) {
	sc, evalErrs, err := e.Evaluate(source)
	if err != nil {
		return EvalResult{}, err
	}
	res := EvalResult{Scene: sc, Errors: evalErrs}
	if len(evalErrs) > 0 {
		return res, nil
	}

	v := scene.ValidateAll(sc)
	for _, ve := range v.Errors {
		msg := ve.Message
		if !ve.ItemID.IsZero() {
			msg = fmt.Sprintf("item %s: %s", ve.ItemID.Short(), ve.Message)
		}
		res.Errors = append(res.Errors, EvalError{Message: msg})
	}
	for _, w := range v.Warnings {
		res.Warnings = append(res.Warnings, EvalWarning{Message: w.Message, ItemID: w.ItemID})
	}
	return res, nil
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
// Script failures are reported in the result's Errors with a nil Scene.
func (e *Engine) evaluate(source string) (EvalResult, error) {
	sc := scene.New()
	sc.Width, sc.Height = e.width, e.height
	sc.Background = e.background

	// Empty source is a valid program that produces an empty scene.
	if strings.TrimSpace(source) == "" {
		return EvalResult{Scene: sc}, nil
	}

	// Sandbox mode keeps user code away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, sc)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return EvalResult{Errors: parseZygomysError(err)}, nil
	}
	if _, err := env.Run(); err != nil {
		return EvalResult{Errors: parseZygomysError(err)}, nil
	}
	return EvalResult{Scene: sc}, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{
		Message: strings.TrimSpace(msg),
	}}
}
