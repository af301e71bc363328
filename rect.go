package draw

import (
	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/tess"
)

// Rect is an axis-aligned rectangle primitive centered on its position.
type Rect struct {
	opts PolygonOptions
	wh   geom.Vec3
}

// Rect records a rectangle with the default 100×100 size.
func (d *Draw) Rect() *Rect {
	r := &Rect{
		opts: DefaultPolygonOptions(),
		wh:   geom.Vec3{X: DefaultSize, Y: DefaultSize},
	}
	d.record(r)
	return r
}

// Kind implements Primitive.
func (*Rect) Kind() Kind { return KindRect }

// XY sets the center.
func (r *Rect) XY(x, y float32) *Rect {
	r.opts.Position.X, r.opts.Position.Y = x, y
	return r
}

// XYZ sets the center in 3D.
func (r *Rect) XYZ(p geom.Vec3) *Rect {
	r.opts.Position = p
	return r
}

// Rotate sets the rotation about the Z axis.
func (r *Rect) Rotate(radians float32) *Rect {
	r.opts.Orientation.Z = radians
	return r
}

// Orientation sets the Euler rotation.
func (r *Rect) Orientation(euler geom.Vec3) *Rect {
	r.opts.Orientation = euler
	return r
}

// WH sets the width and height.
func (r *Rect) WH(w, h float32) *Rect {
	r.wh = geom.Vec3{X: w, Y: h}
	return r
}

// WHD sets width, height and depth. Rects are flat: a non-zero depth panics
// when the rect is rendered.
func (r *Rect) WHD(w, h, depth float32) *Rect {
	r.wh = geom.Vec3{X: w, Y: h, Z: depth}
	return r
}

// Color sets the fill color.
func (r *Rect) Color(c Color) *Rect {
	r.opts.setFill(c)
	return r
}

// NoFill disables the fill.
func (r *Rect) NoFill() *Rect {
	r.opts.NoFill = true
	return r
}

// Stroke enables the outline in color c.
func (r *Rect) Stroke(c Color) *Rect {
	r.opts.setStroke(c)
	return r
}

// StrokeWeight enables the outline with width w.
func (r *Rect) StrokeWeight(w float32) *Rect {
	r.opts.ensureStroke().LineWidth = w
	return r
}

// StrokeOptions sets every stroke option.
func (r *Rect) StrokeOptions(o tess.StrokeOptions) *Rect {
	r.opts.Stroke = &o
	return r
}

// Render implements Primitive.
func (r *Rect) Render(ctx RenderContext, pr PrimitiveRenderer) {
	if r.wh.Z != 0 {
		panic("draw: rect does not support a z dimension")
	}
	corners := geom.RectFromWH(r.wh.X, r.wh.Y).Corners()
	renderCorners(ctx, pr, &r.opts, KindRect, corners[:], nil)
}

// Quad is a quadrilateral primitive given by four corners.
type Quad struct {
	opts   PolygonOptions
	points [4]geom.Vec2
	colors *[4]Color
	wh     *geom.Vec2
}

// Quad records a quad with the corners of a default 100×100 square.
func (d *Draw) Quad() *Quad {
	q := &Quad{
		opts:   DefaultPolygonOptions(),
		points: geom.RectFromWH(DefaultSize, DefaultSize).Corners(),
	}
	d.record(q)
	return q
}

// Kind implements Primitive.
func (*Quad) Kind() Kind { return KindQuad }

// Points sets the four corners.
func (q *Quad) Points(a, b, c, d geom.Vec2) *Quad {
	q.points = [4]geom.Vec2{a, b, c, d}
	return q
}

// PointsColored sets the four corners with per-corner colors.
func (q *Quad) PointsColored(a, b, c, d ColoredPoint) *Quad {
	q.points = [4]geom.Vec2{a.Point, b.Point, c.Point, d.Point}
	q.colors = &[4]Color{a.Color, b.Color, c.Color, d.Color}
	return q
}

// WH rescales the corners about their centroid to fit w×h.
func (q *Quad) WH(w, h float32) *Quad {
	q.wh = &geom.Vec2{X: w, Y: h}
	return q
}

// XY sets the position.
func (q *Quad) XY(x, y float32) *Quad {
	q.opts.Position.X, q.opts.Position.Y = x, y
	return q
}

// XYZ sets the position in 3D.
func (q *Quad) XYZ(p geom.Vec3) *Quad {
	q.opts.Position = p
	return q
}

// Rotate sets the rotation about the Z axis.
func (q *Quad) Rotate(radians float32) *Quad {
	q.opts.Orientation.Z = radians
	return q
}

// Color sets the fill color.
func (q *Quad) Color(c Color) *Quad {
	q.opts.setFill(c)
	return q
}

// NoFill disables the fill.
func (q *Quad) NoFill() *Quad {
	q.opts.NoFill = true
	return q
}

// Stroke enables the outline in color c.
func (q *Quad) Stroke(c Color) *Quad {
	q.opts.setStroke(c)
	return q
}

// StrokeWeight enables the outline with width w.
func (q *Quad) StrokeWeight(w float32) *Quad {
	q.opts.ensureStroke().LineWidth = w
	return q
}

// Render implements Primitive.
func (q *Quad) Render(ctx RenderContext, r PrimitiveRenderer) {
	pts := q.points
	if q.wh != nil {
		rescale(pts[:], *q.wh)
	}
	var colors []Color
	if q.colors != nil {
		colors = q.colors[:]
	}
	renderCorners(ctx, r, &q.opts, KindQuad, pts[:], colors)
}

// Tri is a triangle primitive.
type Tri struct {
	opts   PolygonOptions
	points [3]geom.Vec2
	colors *[3]Color
	wh     *geom.Vec2
}

// defaultTri spans the default 100×100 box, pointing up.
var defaultTri = [3]geom.Vec2{
	{X: -DefaultSize / 2, Y: -DefaultSize / 2},
	{X: DefaultSize / 2, Y: -DefaultSize / 2},
	{X: 0, Y: DefaultSize / 2},
}

// Tri records a triangle with the default corners (-50,-50), (50,-50),
// (0,50).
func (d *Draw) Tri() *Tri {
	t := &Tri{opts: DefaultPolygonOptions(), points: defaultTri}
	d.record(t)
	return t
}

// Kind implements Primitive.
func (*Tri) Kind() Kind { return KindTri }

// Points sets the three corners.
func (t *Tri) Points(a, b, c geom.Vec2) *Tri {
	t.points = [3]geom.Vec2{a, b, c}
	return t
}

// PointsColored sets the three corners with per-corner colors.
func (t *Tri) PointsColored(a, b, c ColoredPoint) *Tri {
	t.points = [3]geom.Vec2{a.Point, b.Point, c.Point}
	t.colors = &[3]Color{a.Color, b.Color, c.Color}
	return t
}

// WH rescales the corners about their centroid to fit w×h.
func (t *Tri) WH(w, h float32) *Tri {
	t.wh = &geom.Vec2{X: w, Y: h}
	return t
}

// XY sets the position.
func (t *Tri) XY(x, y float32) *Tri {
	t.opts.Position.X, t.opts.Position.Y = x, y
	return t
}

// XYZ sets the position in 3D.
func (t *Tri) XYZ(p geom.Vec3) *Tri {
	t.opts.Position = p
	return t
}

// Rotate sets the rotation about the Z axis.
func (t *Tri) Rotate(radians float32) *Tri {
	t.opts.Orientation.Z = radians
	return t
}

// Color sets the fill color.
func (t *Tri) Color(c Color) *Tri {
	t.opts.setFill(c)
	return t
}

// NoFill disables the fill.
func (t *Tri) NoFill() *Tri {
	t.opts.NoFill = true
	return t
}

// Stroke enables the outline in color c.
func (t *Tri) Stroke(c Color) *Tri {
	t.opts.setStroke(c)
	return t
}

// StrokeWeight enables the outline with width w.
func (t *Tri) StrokeWeight(w float32) *Tri {
	t.opts.ensureStroke().LineWidth = w
	return t
}

// Render implements Primitive.
func (t *Tri) Render(ctx RenderContext, r PrimitiveRenderer) {
	pts := t.points
	if t.wh != nil {
		rescale(pts[:], *t.wh)
	}
	var colors []Color
	if t.colors != nil {
		colors = t.colors[:]
	}
	renderCorners(ctx, r, &t.opts, KindTri, pts[:], colors)
}

// rescale scales pts about their centroid so their bounds measure wh.
// Axes with zero extent are left unscaled.
func rescale(pts []geom.Vec2, wh geom.Vec2) {
	b := geom.BoundingRect(pts)
	scale := geom.Vec2{X: 1, Y: 1}
	if w := b.W(); w != 0 {
		scale.X = wh.X / w
	}
	if h := b.H(); h != 0 {
		scale.Y = wh.Y / h
	}
	c := geom.Centroid(pts)
	for i, p := range pts {
		pts[i] = c.Add(p.Sub(c).MulVec(scale))
	}
}

// renderCorners renders a closed polygon through corners, per-corner
// colored when colors is non-nil.
func renderCorners(ctx RenderContext, r PrimitiveRenderer, o *PolygonOptions, kind Kind, corners []geom.Vec2, colors []Color) {
	buf := ctx.buffers()
	if colors != nil {
		buf.colored = buf.colored[:0]
		for i, p := range corners {
			buf.colored = append(buf.colored, ColoredPoint{Point: p, Color: colors[i]})
		}
		renderColored(ctx, r, o, buf.colored, true)
		return
	}
	buf.events = appendPolygonEvents(buf.events[:0], corners, true)
	renderEvents(ctx, r, o, kind, buf.events)
}
