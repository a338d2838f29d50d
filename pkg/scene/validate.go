package scene

import (
	"fmt"
	"math"
)

// ValidationSeverity indicates whether a validation finding blocks
// rendering or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks rendering
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	ItemID   ItemID             // which item has the problem (zero if scene-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.ItemID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] item %s: %s", e.Severity, e.ItemID.Short(), e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	ItemID  ItemID
	Message string
}

// ValidationResult bundles errors (blocking) and warnings (advisory)
// from both validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether the result has no blocking errors.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// Validate runs the structural checks on the scene and returns the
// findings. An empty slice means the scene can be built. This function is
// read-only and never mutates the scene.
func Validate(s *Scene) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateCanvas(s)...)
	errs = append(errs, validateCamera(s)...)
	errs = append(errs, validateShapes(s)...)
	errs = append(errs, validateNames(s)...)
	return errs
}

// ValidateAll runs the structural checks and the visibility checks and
// returns a ValidationResult with separated errors and warnings.
func ValidateAll(s *Scene) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(s) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{
				ItemID:  e.ItemID,
				Message: e.Message,
			})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}

	// Visibility needs a usable camera and shapes.
	if len(result.Errors) == 0 {
		result.Warnings = append(result.Warnings, validateVisibility(s)...)
		result.Warnings = append(result.Warnings, validateRays(s)...)
	}
	return result
}

// validateCanvas checks that the canvas has a positive size.
func validateCanvas(s *Scene) []ValidationError {
	if s.Width > 0 && s.Height > 0 {
		return nil
	}
	return []ValidationError{{
		Message:  fmt.Sprintf("canvas %dx%d must have positive width and height", s.Width, s.Height),
		Severity: SeverityError,
	}}
}

// validateCamera checks that a camera has been set. An empty scene needs
// none.
func validateCamera(s *Scene) []ValidationError {
	if s.IsEmpty() || (s.Camera != nil && !s.Camera.IsZero()) {
		return nil
	}
	return []ValidationError{{
		Message:  "scene has no camera; add (perspective ...) or (orthographic ...)",
		Severity: SeverityError,
	}}
}

// validateShapes checks that every item carries geometry and that the
// tessellate flag is only set where a kernel can honour it.
func validateShapes(s *Scene) []ValidationError {
	var errs []ValidationError
	for _, it := range s.Items {
		if it.Shape == nil {
			errs = append(errs, ValidationError{
				ItemID:   it.ID,
				Message:  "item has no shape",
				Severity: SeverityError,
			})
			continue
		}
		if it.Tessellate && !Meshable(it.Shape) {
			errs = append(errs, ValidationError{
				ItemID:   it.ID,
				Message:  fmt.Sprintf("%s cannot be meshed; only spheres and boxes are tessellated", it.Shape.Kind()),
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// validateNames checks that user-assigned names are unique.
func validateNames(s *Scene) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]ItemID)
	for _, it := range s.Items {
		if it.Name == "" {
			continue
		}
		if first, dup := seen[it.Name]; dup {
			errs = append(errs, ValidationError{
				ItemID:   it.ID,
				Message:  fmt.Sprintf("duplicate name %q (first used by item %s)", it.Name, first.Short()),
				Severity: SeverityError,
			})
			continue
		}
		seen[it.Name] = it.ID
	}
	return errs
}

// ---------------------------------------------------------------------------
// Visibility (warnings only)
// ---------------------------------------------------------------------------

// validateVisibility warns about items that cannot appear in the picture:
// entirely behind the camera, or entirely off one side of the view.
func validateVisibility(s *Scene) []ValidationWarning {
	var warnings []ValidationWarning
	cam := *s.Camera
	for _, it := range s.Items {
		anchors := it.Shape.Anchors()

		behind := true
		for _, p := range anchors {
			if cam.DepthOf(p) > 0 {
				behind = false
				break
			}
		}
		if behind {
			warnings = append(warnings, ValidationWarning{
				ItemID:  it.ID,
				Message: fmt.Sprintf("%s %q is behind the camera", it.Shape.Kind(), it.Label()),
			})
			continue
		}

		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, p := range anchors {
			if cam.DepthOf(p) <= 0 {
				continue
			}
			x, y, _ := cam.Project(p)
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
		if maxX < -1 || minX > 1 || maxY < -1 || minY > 1 {
			warnings = append(warnings, ValidationWarning{
				ItemID:  it.ID,
				Message: fmt.Sprintf("%s %q is outside the view", it.Shape.Kind(), it.Label()),
			})
		}
	}
	return warnings
}

// validateRays warns about rays that hit nothing.
func validateRays(s *Scene) []ValidationWarning {
	var warnings []ValidationWarning
	for i, q := range s.Rays {
		if len(s.Cast(q)) > 0 {
			continue
		}
		label := q.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		warnings = append(warnings, ValidationWarning{
			Message: fmt.Sprintf("ray %s from %v hits nothing", label, q.Ray.Origin()),
		})
	}
	return warnings
}
