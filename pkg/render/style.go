package render

import (
	"fmt"
	"html"
)

// Default colors and sizes applied to zero-valued style fields.
const (
	DefaultColor       = "#000000"
	DefaultStrokeWidth = 1.0
	DefaultPointSize   = 3.0
)

// Style is the stroke and fill of a line, polygon or outline element.
// An empty Fill leaves the shape unfilled.
type Style struct {
	Stroke      string
	Fill        string
	StrokeWidth float64
}

// PointStyle is the color and on-screen radius (pixels) of a point marker.
type PointStyle struct {
	Color string
	Size  float64
}

func (s Style) withDefaults() Style {
	if s.Stroke == "" {
		s.Stroke = DefaultColor
	}
	if s.StrokeWidth <= 0 {
		s.StrokeWidth = DefaultStrokeWidth
	}
	return s
}

func (s PointStyle) withDefaults() PointStyle {
	if s.Color == "" {
		s.Color = DefaultColor
	}
	if s.Size <= 0 {
		s.Size = DefaultPointSize
	}
	return s
}

// attrs renders the style as svgo name="value" arguments.
func (s Style) attrs() []string {
	fill := "none"
	if s.Fill != "" {
		fill = s.Fill
	}
	return []string{
		attr("stroke", s.Stroke),
		attr("fill", fill),
		attrWidth(s.StrokeWidth),
	}
}

func attrWidth(w float64) string {
	return fmt.Sprintf(`stroke-width="%.2f"`, w)
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}
