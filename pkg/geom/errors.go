package geom

import "errors"

// Error kinds. Every error returned by this package matches exactly one
// kind under errors.Is.
var (
	ErrInvalidConstruction = errors.New("invalid construction")
	ErrDegenerate          = errors.New("degenerate case")
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrDivisionByZero      = errors.New("division by zero")
)

// Specific construction failures.
var (
	ErrZeroMagnitude     error = &kindError{kind: ErrDivisionByZero, msg: "vector has zero magnitude"}
	ErrCollinear         error = &kindError{kind: ErrDegenerate, msg: "points are collinear"}
	ErrDegenerateSegment error = &kindError{kind: ErrDegenerate, msg: "segment endpoints coincide"}
	ErrNonPositiveRadius error = &kindError{kind: ErrInvalidConstruction, msg: "radius must be positive"}
	ErrInvertedBounds    error = &kindError{kind: ErrInvalidConstruction, msg: "box min exceeds max"}
	ErrTooFewPoints      error = &kindError{kind: ErrInvalidConstruction, msg: "need at least two distinct points"}
)

// kindError is a specific failure that unwraps to its error kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }
