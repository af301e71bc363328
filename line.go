package draw

import (
	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/path"
	"github.com/gogpu/draw/tess"
)

// Line is a stroked straight line between two points.
type Line struct {
	opts       PolygonOptions
	start, end geom.Vec2
}

// Line records a line of width 1 with butt caps. It draws nothing until its
// end points differ.
func (d *Draw) Line() *Line {
	stroke := tess.DefaultStrokeOptions()
	l := &Line{opts: PolygonOptions{NoFill: true, Stroke: &stroke}}
	d.record(l)
	return l
}

// Kind implements Primitive.
func (*Line) Kind() Kind { return KindLine }

// Start sets the start point.
func (l *Line) Start(p geom.Vec2) *Line {
	l.start = p
	return l
}

// End sets the end point.
func (l *Line) End(p geom.Vec2) *Line {
	l.end = p
	return l
}

// Points sets both end points.
func (l *Line) Points(start, end geom.Vec2) *Line {
	l.start, l.end = start, end
	return l
}

// Weight sets the line width.
func (l *Line) Weight(w float32) *Line {
	l.opts.Stroke.LineWidth = w
	return l
}

// Caps sets both line caps.
func (l *Line) Caps(c tess.LineCap) *Line {
	l.opts.Stroke.StartCap, l.opts.Stroke.EndCap = c, c
	return l
}

// StartCap sets the cap at the start point.
func (l *Line) StartCap(c tess.LineCap) *Line {
	l.opts.Stroke.StartCap = c
	return l
}

// EndCap sets the cap at the end point.
func (l *Line) EndCap(c tess.LineCap) *Line {
	l.opts.Stroke.EndCap = c
	return l
}

// Join sets the line join.
func (l *Line) Join(j tess.LineJoin) *Line {
	l.opts.Stroke.LineJoin = j
	return l
}

// Tolerance sets the tessellation tolerance of round caps.
func (l *Line) Tolerance(t float32) *Line {
	l.opts.Stroke.Tolerance = t
	return l
}

// StrokeOptions sets every stroke option.
func (l *Line) StrokeOptions(o tess.StrokeOptions) *Line {
	*l.opts.Stroke = o
	return l
}

// Color sets the line color.
func (l *Line) Color(c Color) *Line {
	l.opts.StrokeColor = &c
	return l
}

// XY sets the position the end points are relative to.
func (l *Line) XY(x, y float32) *Line {
	l.opts.Position.X, l.opts.Position.Y = x, y
	return l
}

// XYZ sets the position in 3D.
func (l *Line) XYZ(p geom.Vec3) *Line {
	l.opts.Position = p
	return l
}

// Rotate sets the rotation about the Z axis.
func (l *Line) Rotate(radians float32) *Line {
	l.opts.Orientation.Z = radians
	return l
}

// Render implements Primitive.
func (l *Line) Render(ctx RenderContext, r PrimitiveRenderer) {
	if l.start == l.end {
		return
	}
	buf := ctx.buffers()
	buf.events = append(buf.events[:0],
		path.Begin(l.start),
		path.Line(l.start, l.end),
		path.End(l.end, l.start, false),
	)
	renderEvents(ctx, r, &l.opts, KindLine, buf.events)
}
