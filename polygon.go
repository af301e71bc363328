package draw

import (
	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/path"
	"github.com/gogpu/draw/tess"
)

type sourceKind uint8

const (
	sourceNone sourceKind = iota
	sourceEvents
	sourceColored
	sourceTextured
)

// shape is the geometry shared by Polygon and Path: a range into one of the
// intermediary arenas.
type shape struct {
	state   *State
	opts    PolygonOptions
	source  sourceKind
	rng     Range
	texture TextureHandle
	closed  bool
}

func (s *shape) points(pts []geom.Vec2) {
	s.source = sourceEvents
	s.rng = s.state.Intermediary.appendPolygon(pts, s.closed)
}

func (s *shape) events(events []path.Event) {
	s.source = sourceEvents
	s.rng = s.state.Intermediary.appendEvents(events)
}

// close closes the shape, including point lists already in the arena.
func (s *shape) close() {
	s.closed = true
	if s.source != sourceEvents {
		return
	}
	events := s.state.Intermediary.PathEvents[s.rng.Start:s.rng.End]
	for i := range events {
		if events[i].Kind == path.EventEnd {
			events[i].Close = true
		}
	}
}

func (s *shape) colored(pts []ColoredPoint) {
	s.source = sourceColored
	s.rng = s.state.Intermediary.appendColored(pts)
}

func (s *shape) textured(tex TextureHandle, pts []TexturedPoint) {
	s.source = sourceTextured
	s.texture = tex
	s.rng = s.state.Intermediary.appendTextured(pts)
}

func (s *shape) svg(d string) error {
	in := &s.state.Intermediary
	start := len(in.PathEvents)
	b := path.NewBuilderWith(in.PathEvents)
	if err := b.ParseSVG(d); err != nil {
		return err
	}
	in.PathEvents = b.Build()
	s.source = sourceEvents
	s.rng = Range{Start: start, End: len(in.PathEvents)}
	return nil
}

func (s *shape) render(ctx RenderContext, r PrimitiveRenderer, kind Kind) {
	in := ctx.Intermediary
	switch s.source {
	case sourceEvents:
		renderEvents(ctx, r, &s.opts, kind, in.Events(s.rng))
	case sourceColored:
		renderColored(ctx, r, &s.opts, in.Colored(s.rng), s.closed)
	case sourceTextured:
		renderTextured(ctx, r, &s.opts, s.texture, in.Textured(s.rng), s.closed)
	}
}

// Polygon is a closed, filled shape given by points or path events.
type Polygon struct {
	shape
}

// Polygon records an empty polygon. Give it geometry with Points, Events,
// PointsColored, PointsTextured or SVG.
func (d *Draw) Polygon() *Polygon {
	p := &Polygon{shape{state: d.state, opts: DefaultPolygonOptions(), closed: true}}
	d.record(p)
	return p
}

// Kind implements Primitive.
func (*Polygon) Kind() Kind { return KindPolygon }

// Points sets the polygon outline.
func (p *Polygon) Points(pts ...geom.Vec2) *Polygon {
	p.points(pts)
	return p
}

// Events sets the outline from path events. Subpaths keep their own Close
// flags.
func (p *Polygon) Events(events ...path.Event) *Polygon {
	p.events(events)
	return p
}

// PointsColored sets the outline from points with per-point colors.
func (p *Polygon) PointsColored(pts ...ColoredPoint) *Polygon {
	p.colored(pts)
	return p
}

// PointsTextured sets the outline from points sampling tex.
func (p *Polygon) PointsTextured(tex TextureHandle, pts ...TexturedPoint) *Polygon {
	p.textured(tex, pts)
	return p
}

// SVG sets the outline from SVG path data such as "M0 0 L10 0 L0 10 Z".
func (p *Polygon) SVG(d string) (*Polygon, error) {
	return p, p.svg(d)
}

// XY sets the position.
func (p *Polygon) XY(x, y float32) *Polygon {
	p.opts.Position.X, p.opts.Position.Y = x, y
	return p
}

// XYZ sets the position in 3D.
func (p *Polygon) XYZ(v geom.Vec3) *Polygon {
	p.opts.Position = v
	return p
}

// Rotate sets the rotation about the Z axis.
func (p *Polygon) Rotate(radians float32) *Polygon {
	p.opts.Orientation.Z = radians
	return p
}

// Orientation sets the Euler rotation.
func (p *Polygon) Orientation(euler geom.Vec3) *Polygon {
	p.opts.Orientation = euler
	return p
}

// Color sets the fill color.
func (p *Polygon) Color(c Color) *Polygon {
	p.opts.setFill(c)
	return p
}

// NoFill disables the fill.
func (p *Polygon) NoFill() *Polygon {
	p.opts.NoFill = true
	return p
}

// FillRule sets the fill rule.
func (p *Polygon) FillRule(rule tess.FillRule) *Polygon {
	p.opts.Fill.FillRule = rule
	return p
}

// Stroke enables the outline in color c.
func (p *Polygon) Stroke(c Color) *Polygon {
	p.opts.setStroke(c)
	return p
}

// StrokeWeight enables the outline with width w.
func (p *Polygon) StrokeWeight(w float32) *Polygon {
	p.opts.ensureStroke().LineWidth = w
	return p
}

// StrokeOptions sets every stroke option.
func (p *Polygon) StrokeOptions(o tess.StrokeOptions) *Polygon {
	p.opts.Stroke = &o
	return p
}

// Render implements Primitive.
func (p *Polygon) Render(ctx RenderContext, r PrimitiveRenderer) {
	p.render(ctx, r, KindPolygon)
}

// Path is either a filled or a stroked path. Point lists are open unless
// Close is called.
type Path struct {
	shape
}

// Path records an empty filled path.
func (d *Draw) Path() *Path {
	p := &Path{shape{state: d.state, opts: DefaultPolygonOptions()}}
	d.record(p)
	return p
}

// Kind implements Primitive.
func (*Path) Kind() Kind { return KindPath }

// Fill switches the path to filling.
func (p *Path) Fill() *Path {
	p.opts.NoFill = false
	p.opts.Stroke = nil
	return p
}

// Stroke switches the path to stroking with default stroke options.
func (p *Path) Stroke() *Path {
	p.opts.NoFill = true
	p.opts.ensureStroke()
	return p
}

func (p *Path) stroking() bool {
	return p.opts.NoFill && p.opts.Stroke != nil
}

// Close closes the path. It applies to geometry set before or after the
// call; every subpath of events or SVG data is closed.
func (p *Path) Close() *Path {
	p.close()
	return p
}

// Points sets the path from points.
func (p *Path) Points(pts ...geom.Vec2) *Path {
	p.points(pts)
	return p
}

// Events sets the path from events.
func (p *Path) Events(events ...path.Event) *Path {
	p.events(events)
	return p
}

// PointsColored sets the path from points with per-point colors.
func (p *Path) PointsColored(pts ...ColoredPoint) *Path {
	p.colored(pts)
	return p
}

// PointsTextured sets the path from points sampling tex.
func (p *Path) PointsTextured(tex TextureHandle, pts ...TexturedPoint) *Path {
	p.textured(tex, pts)
	return p
}

// SVG sets the path from SVG path data.
func (p *Path) SVG(d string) (*Path, error) {
	return p, p.svg(d)
}

// Color sets the fill or stroke color, depending on the mode.
func (p *Path) Color(c Color) *Path {
	if p.stroking() {
		p.opts.StrokeColor = &c
	} else {
		p.opts.FillColor = &c
	}
	return p
}

// Weight sets the stroke width and switches to stroking.
func (p *Path) Weight(w float32) *Path {
	p.Stroke()
	p.opts.Stroke.LineWidth = w
	return p
}

// Caps sets both stroke caps and switches to stroking.
func (p *Path) Caps(c tess.LineCap) *Path {
	p.Stroke()
	p.opts.Stroke.StartCap, p.opts.Stroke.EndCap = c, c
	return p
}

// Join sets the stroke join and switches to stroking.
func (p *Path) Join(j tess.LineJoin) *Path {
	p.Stroke()
	p.opts.Stroke.LineJoin = j
	return p
}

// StrokeOptions sets every stroke option and switches to stroking.
func (p *Path) StrokeOptions(o tess.StrokeOptions) *Path {
	p.opts.NoFill = true
	p.opts.Stroke = &o
	return p
}

// FillRule sets the fill rule.
func (p *Path) FillRule(rule tess.FillRule) *Path {
	p.opts.Fill.FillRule = rule
	return p
}

// Tolerance sets the tessellation tolerance of the current mode.
func (p *Path) Tolerance(t float32) *Path {
	if p.stroking() {
		p.opts.Stroke.Tolerance = t
	} else {
		p.opts.Fill.Tolerance = t
	}
	return p
}

// XY sets the position.
func (p *Path) XY(x, y float32) *Path {
	p.opts.Position.X, p.opts.Position.Y = x, y
	return p
}

// XYZ sets the position in 3D.
func (p *Path) XYZ(v geom.Vec3) *Path {
	p.opts.Position = v
	return p
}

// Rotate sets the rotation about the Z axis.
func (p *Path) Rotate(radians float32) *Path {
	p.opts.Orientation.Z = radians
	return p
}

// Render implements Primitive.
func (p *Path) Render(ctx RenderContext, r PrimitiveRenderer) {
	p.render(ctx, r, KindPath)
}
