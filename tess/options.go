package tess

import (
	"errors"
	"fmt"
	"math"
)

// Default option values.
const (
	DefaultTolerance  = 0.1
	DefaultLineWidth  = 1.0
	DefaultMiterLimit = 4.0
)

// ErrInvalidOptions is returned when tessellation options cannot be used.
var ErrInvalidOptions = errors.New("tess: invalid options")

// FillRule specifies how overlapping contours decide what is inside.
type FillRule uint8

const (
	// FillRuleNonZero fills regions with a non-zero winding number.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd fills regions crossed an odd number of times.
	FillRuleEvenOdd
)

// String returns the SVG name of the fill rule.
func (r FillRule) String() string {
	switch r {
	case FillRuleNonZero:
		return "nonzero"
	case FillRuleEvenOdd:
		return "evenodd"
	}
	return "unknown"
}

// LineCap specifies the shape of stroke endpoints.
type LineCap uint8

const (
	// LineCapButt ends the stroke exactly at the endpoint.
	LineCapButt LineCap = iota
	// LineCapSquare extends the stroke by half the line width.
	LineCapSquare
	// LineCapRound adds a half disc at the endpoint.
	LineCapRound
)

// String returns the SVG name of the line cap.
func (c LineCap) String() string {
	switch c {
	case LineCapButt:
		return "butt"
	case LineCapSquare:
		return "square"
	case LineCapRound:
		return "round"
	}
	return "unknown"
}

// LineJoin specifies the shape of stroke corners.
type LineJoin uint8

const (
	// LineJoinMiter extends the outer edges to a sharp point, falling back
	// to a bevel when the miter limit is exceeded.
	LineJoinMiter LineJoin = iota
	// LineJoinMiterClip is like LineJoinMiter but clips the point at the
	// miter limit instead of falling back to a bevel.
	LineJoinMiterClip
	// LineJoinRound rounds the outer corner.
	LineJoinRound
	// LineJoinBevel cuts the outer corner with a straight line.
	LineJoinBevel
)

// String returns the SVG name of the line join.
func (j LineJoin) String() string {
	switch j {
	case LineJoinMiter:
		return "miter"
	case LineJoinMiterClip:
		return "miter-clip"
	case LineJoinRound:
		return "round"
	case LineJoinBevel:
		return "bevel"
	}
	return "unknown"
}

// FillOptions configures fill tessellation.
type FillOptions struct {
	// Tolerance is the maximum distance between curves and their
	// flattened approximation.
	Tolerance float32

	// FillRule decides which nested contours are holes.
	FillRule FillRule
}

// DefaultFillOptions returns the default fill options.
func DefaultFillOptions() FillOptions {
	return FillOptions{Tolerance: DefaultTolerance, FillRule: FillRuleNonZero}
}

// WithTolerance returns the options with the given tolerance.
func (o FillOptions) WithTolerance(tolerance float32) FillOptions {
	o.Tolerance = tolerance
	return o
}

// WithFillRule returns the options with the given fill rule.
func (o FillOptions) WithFillRule(rule FillRule) FillOptions {
	o.FillRule = rule
	return o
}

func (o FillOptions) validate() error {
	if !(o.Tolerance > 0) || math.IsInf(float64(o.Tolerance), 0) {
		return fmt.Errorf("%w: tolerance %v", ErrInvalidOptions, o.Tolerance)
	}
	return nil
}

// StrokeOptions configures stroke tessellation.
type StrokeOptions struct {
	StartCap   LineCap
	EndCap     LineCap
	LineJoin   LineJoin
	LineWidth  float32
	MiterLimit float32

	// Tolerance is the maximum distance between curves and their
	// flattened approximation, round joins and caps included.
	Tolerance float32
}

// DefaultStrokeOptions returns the default stroke options: butt caps,
// miter joins, width 1, miter limit 4.
func DefaultStrokeOptions() StrokeOptions {
	return StrokeOptions{
		StartCap:   LineCapButt,
		EndCap:     LineCapButt,
		LineJoin:   LineJoinMiter,
		LineWidth:  DefaultLineWidth,
		MiterLimit: DefaultMiterLimit,
		Tolerance:  DefaultTolerance,
	}
}

// WithLineCap returns the options with both caps set to c.
func (o StrokeOptions) WithLineCap(c LineCap) StrokeOptions {
	o.StartCap = c
	o.EndCap = c
	return o
}

// WithStartCap returns the options with the given start cap.
func (o StrokeOptions) WithStartCap(c LineCap) StrokeOptions {
	o.StartCap = c
	return o
}

// WithEndCap returns the options with the given end cap.
func (o StrokeOptions) WithEndCap(c LineCap) StrokeOptions {
	o.EndCap = c
	return o
}

// WithLineJoin returns the options with the given line join.
func (o StrokeOptions) WithLineJoin(j LineJoin) StrokeOptions {
	o.LineJoin = j
	return o
}

// WithLineWidth returns the options with the given line width.
func (o StrokeOptions) WithLineWidth(w float32) StrokeOptions {
	o.LineWidth = w
	return o
}

// WithMiterLimit returns the options with the given miter limit.
func (o StrokeOptions) WithMiterLimit(limit float32) StrokeOptions {
	o.MiterLimit = limit
	return o
}

// WithTolerance returns the options with the given tolerance.
func (o StrokeOptions) WithTolerance(tolerance float32) StrokeOptions {
	o.Tolerance = tolerance
	return o
}

func (o StrokeOptions) validate() error {
	switch {
	case !(o.Tolerance > 0) || math.IsInf(float64(o.Tolerance), 0):
		return fmt.Errorf("%w: tolerance %v", ErrInvalidOptions, o.Tolerance)
	case !(o.LineWidth > 0) || math.IsInf(float64(o.LineWidth), 0):
		return fmt.Errorf("%w: line width %v", ErrInvalidOptions, o.LineWidth)
	case o.MiterLimit < 1:
		return fmt.Errorf("%w: miter limit %v", ErrInvalidOptions, o.MiterLimit)
	}
	return nil
}

// Mode selects fill or stroke tessellation.
type Mode uint8

const (
	ModeFill Mode = iota
	ModeStroke
)

// String returns the string representation of a Mode.
func (m Mode) String() string {
	if m == ModeStroke {
		return "Stroke"
	}
	return "Fill"
}

// Options selects a tessellation mode together with its options.
type Options struct {
	Mode   Mode
	Fill   FillOptions
	Stroke StrokeOptions
}

// Fill returns fill tessellation options.
func Fill(o FillOptions) Options {
	return Options{Mode: ModeFill, Fill: o, Stroke: DefaultStrokeOptions()}
}

// Stroke returns stroke tessellation options.
func Stroke(o StrokeOptions) Options {
	return Options{Mode: ModeStroke, Fill: DefaultFillOptions(), Stroke: o}
}

// Tolerance returns the tolerance of the selected mode.
func (o Options) Tolerance() float32 {
	if o.Mode == ModeStroke {
		return o.Stroke.Tolerance
	}
	return o.Fill.Tolerance
}
