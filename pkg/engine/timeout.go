package engine

import (
	"fmt"
	"time"
)

// EvalTimeout is the default hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// attempt is what a sandbox goroutine delivers when its script finishes.
type attempt struct {
	result EvalResult
	err    error
}

// begin claims the next generation number for a new evaluation.
func (e *Engine) begin() uint64 {
	return e.generation.Add(1)
}

// await returns the attempt of evaluation gen once it arrives on done.
// The sandbox goroutine is abandoned when the engine timeout elapses
// first, and its attempt is dropped if a later evaluation has begun in
// the meantime. In both cases the partial scene is never returned.
func (e *Engine) await(gen uint64, done <-chan attempt) (EvalResult, error) {
	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		return EvalResult{}, fmt.Errorf("evaluation %d timed out after %s", gen, e.timeout)
	case a := <-done:
		if latest := e.generation.Load(); latest != gen {
			return EvalResult{}, fmt.Errorf("evaluation %d superseded by %d", gen, latest)
		}
		return a.result, a.err
	}
}
