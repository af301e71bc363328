package tess

import (
	"math"

	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/path"
)

// maxArcSteps bounds the number of triangles in a round join or cap.
const maxArcSteps = 64

// StrokeTessellator triangulates stroked paths and polylines.
//
// It is designed to be reused via its internal buffers; a single
// StrokeTessellator must not be used concurrently.
type StrokeTessellator struct {
	flat path.Flattener

	// Current contour after duplicate removal.
	points   []geom.Vec2
	attrs    []float32
	advance  []float32
	numAttrs int

	opts StrokeOptions
	hw   float32
	out  StrokeGeometryBuilder
	err  error
}

// NewStrokeTessellator creates a stroke tessellator.
func NewStrokeTessellator() *StrokeTessellator {
	return &StrokeTessellator{}
}

// TessellatePath strokes the subpaths of events.
func (t *StrokeTessellator) TessellatePath(events []path.Event, opts StrokeOptions, out StrokeGeometryBuilder) error {
	if err := opts.validate(); err != nil {
		return err
	}
	t.begin(opts, out, 0)
	t.flat.Reset()
	t.flat.Flatten(events, opts.Tolerance)
	for i, c := range t.flat.Contours {
		t.contour(t.flat.Contour(i), nil, c.Closed)
		if t.err != nil {
			break
		}
	}
	return t.end()
}

// TessellatePolygon strokes a single polyline; its attributes are forwarded
// to the builder per vertex.
func (t *StrokeTessellator) TessellatePolygon(poly Polygon, opts StrokeOptions, out StrokeGeometryBuilder) error {
	if err := opts.validate(); err != nil {
		return err
	}
	t.begin(opts, out, poly.NumAttributes)
	t.contour(poly.Points, poly.Attributes, poly.Closed)
	return t.end()
}

func (t *StrokeTessellator) begin(opts StrokeOptions, out StrokeGeometryBuilder, numAttrs int) {
	t.opts = opts
	t.hw = opts.LineWidth / 2
	t.out = out
	t.err = nil
	t.numAttrs = numAttrs
	out.BeginGeometry()
}

func (t *StrokeTessellator) end() error {
	out := t.out
	t.out = nil
	if t.err != nil {
		out.AbortGeometry()
		return t.err
	}
	out.EndGeometry()
	return nil
}

// contour strokes one polyline.
func (t *StrokeTessellator) contour(pts []geom.Vec2, attrs []float32, closed bool) {
	t.points = t.points[:0]
	t.attrs = t.attrs[:0]
	t.advance = t.advance[:0]
	var dist float32
	for i, p := range pts {
		if n := len(t.points); n > 0 {
			if t.points[n-1] == p {
				continue
			}
			dist += p.Distance(t.points[n-1])
		}
		t.points = append(t.points, p)
		t.advance = append(t.advance, dist)
		if t.numAttrs > 0 {
			t.attrs = append(t.attrs, attrs[i*t.numAttrs:(i+1)*t.numAttrs]...)
		}
	}
	n := len(t.points)
	if closed && n > 1 && t.points[n-1] == t.points[0] {
		n--
	}
	if n < 2 {
		return
	}
	closed = closed && n >= 3

	segs := n - 1
	if closed {
		segs = n
	}
	for s := 0; s < segs; s++ {
		t.segment(s, (s+1)%n)
	}

	dir := func(s int) geom.Vec2 {
		return t.points[(s+1)%n].Sub(t.points[s]).Normalize()
	}
	if closed {
		for k := 0; k < n; k++ {
			t.join(k, dir((k+n-1)%n), dir(k))
		}
		return
	}
	for k := 1; k < n-1; k++ {
		t.join(k, dir(k-1), dir(k))
	}
	t.lineCap(0, dir(0), t.opts.StartCap, true)
	t.lineCap(n-1, dir(n-2), t.opts.EndCap, false)
}

// vertex adds a stroke vertex offset from point k.
func (t *StrokeTessellator) vertex(k int, normal geom.Vec2, side Side) VertexID {
	if t.err != nil {
		return 0
	}
	on := t.points[k]
	v := StrokeVertex{
		Position:       on.Add(normal.Mul(t.hw)),
		PositionOnPath: on,
		Normal:         normal,
		Advancement:    t.advance[k],
		Side:           side,
	}
	if t.numAttrs > 0 {
		v.Attributes = t.attrs[k*t.numAttrs : (k+1)*t.numAttrs]
	}
	id, err := t.out.AddStrokeVertex(v)
	if err != nil {
		t.err = err
	}
	return id
}

// centerVertex adds a vertex on the path at point k.
func (t *StrokeTessellator) centerVertex(k int) VertexID {
	return t.vertex(k, geom.Vec2{}, SideCenter)
}

// triangle adds a triangle, reordering it to be counter-clockwise.
func (t *StrokeTessellator) triangle(a, b, c VertexID, pa, pb, pc geom.Vec2) {
	if t.err != nil {
		return
	}
	cr := pb.Sub(pa).Cross(pc.Sub(pa))
	if cr == 0 {
		return
	}
	if cr < 0 {
		b, c = c, b
	}
	t.out.AddTriangle(a, b, c)
}

// segment adds the quad covering the segment from point a to point b.
func (t *StrokeTessellator) segment(a, b int) {
	pa, pb := t.points[a], t.points[b]
	n := pb.Sub(pa).Normalize().Perp()
	off := n.Mul(t.hw)

	l0 := t.vertex(a, n, SideLeft)
	r0 := t.vertex(a, n.Neg(), SideRight)
	l1 := t.vertex(b, n, SideLeft)
	r1 := t.vertex(b, n.Neg(), SideRight)

	pl0, pr0 := pa.Add(off), pa.Sub(off)
	pl1, pr1 := pb.Add(off), pb.Sub(off)
	t.triangle(r0, r1, l1, pr0, pr1, pl1)
	t.triangle(r0, l1, l0, pr0, pl1, pl0)
}

// join adds the corner geometry at point k between directions d0 and d1.
func (t *StrokeTessellator) join(k int, d0, d1 geom.Vec2) {
	cross := d0.Cross(d1)
	dot := d0.Dot(d1)
	if abs32(cross) < 1e-6 && dot > 0 {
		return
	}

	// Outer side of the turn.
	s := float32(1)
	if cross > 0 {
		s = -1
	}
	o0 := d0.Perp().Mul(s)
	o1 := d1.Perp().Mul(s)

	p := t.points[k]
	center := t.centerVertex(k)
	a := t.vertex(k, o0, sideOf(s))
	b := t.vertex(k, o1, sideOf(s))
	pa, pb := p.Add(o0.Mul(t.hw)), p.Add(o1.Mul(t.hw))

	switch t.opts.LineJoin {
	case LineJoinRound:
		sweep := float32(math.Atan2(float64(o0.Cross(o1)), float64(o0.Dot(o1))))
		if abs32(cross) < 1e-6 {
			// U-turn: go around the far side.
			sweep = float32(math.Pi)
			if o0.Perp().Dot(d0) < 0 {
				sweep = -sweep
			}
		}
		t.fan(k, center, a, b, o0, sweep)
		return

	case LineJoinMiter, LineJoinMiterClip:
		bis := o0.Add(o1)
		if bis.LengthSquared() < 1e-12 {
			break
		}
		bis = bis.Normalize()
		cosHalf := bis.Dot(o0)
		if cosHalf <= 0 {
			break
		}
		ratio := 1 / cosHalf
		if ratio <= t.opts.MiterLimit {
			m := t.vertex(k, bis.Mul(ratio), sideOf(s))
			pm := p.Add(bis.Mul(t.hw * ratio))
			t.triangle(center, a, m, p, pa, pm)
			t.triangle(center, m, b, p, pm, pb)
			return
		}
		if t.opts.LineJoin == LineJoinMiter || t.opts.MiterLimit <= cosHalf {
			break
		}
		// Clip the miter at MiterLimit half-widths along the bisector.
		f := (t.opts.MiterLimit - cosHalf) / (ratio - cosHalf)
		tip := bis.Mul(ratio)
		n0 := o0.Add(tip.Sub(o0).Mul(f))
		n1 := o1.Add(tip.Sub(o1).Mul(f))
		c0 := t.vertex(k, n0, sideOf(s))
		c1 := t.vertex(k, n1, sideOf(s))
		pc0, pc1 := p.Add(n0.Mul(t.hw)), p.Add(n1.Mul(t.hw))
		t.triangle(center, a, c0, p, pa, pc0)
		t.triangle(center, c0, c1, p, pc0, pc1)
		t.triangle(center, c1, b, p, pc1, pb)
		return
	}
	t.triangle(center, a, b, p, pa, pb)
}

// lineCap adds the cap at point k. d is the direction of the adjacent
// segment; start selects the beginning of the subpath.
func (t *StrokeTessellator) lineCap(k int, d geom.Vec2, capStyle LineCap, start bool) {
	out := d
	if start {
		out = d.Neg()
	}
	n := d.Perp()
	p := t.points[k]

	switch capStyle {
	case LineCapSquare:
		ext := out
		l := t.vertex(k, n, SideLeft)
		r := t.vertex(k, n.Neg(), SideRight)
		l2 := t.vertex(k, n.Add(ext), SideLeft)
		r2 := t.vertex(k, n.Neg().Add(ext), SideRight)
		pl, pr := p.Add(n.Mul(t.hw)), p.Sub(n.Mul(t.hw))
		pl2, pr2 := pl.Add(ext.Mul(t.hw)), pr.Add(ext.Mul(t.hw))
		t.triangle(l, r, r2, pl, pr, pr2)
		t.triangle(l, r2, l2, pl, pr2, pl2)

	case LineCapRound:
		center := t.centerVertex(k)
		a := t.vertex(k, n, SideLeft)
		b := t.vertex(k, n.Neg(), SideRight)
		sweep := float32(math.Pi)
		if n.Perp().Dot(out) < 0 {
			sweep = -sweep
		}
		t.fan(k, center, a, b, n, sweep)
	}
}

// fan adds a triangle fan around point k from unit direction from, sweeping
// by sweep radians. first and last are the already added rim vertices at
// both ends of the arc.
func (t *StrokeTessellator) fan(k int, center, first, last VertexID, from geom.Vec2, sweep float32) {
	p := t.points[k]
	steps := arcSteps(t.hw, abs32(sweep), t.opts.Tolerance)
	step := float64(sweep) / float64(steps)
	base := math.Atan2(float64(from.Y), float64(from.X))

	prev, pprev := first, p.Add(from.Mul(t.hw))
	for i := 1; i <= steps; i++ {
		var id VertexID
		var dir geom.Vec2
		if i == steps {
			s, c := math.Sincos(base + float64(sweep))
			dir = geom.Vec2{X: float32(c), Y: float32(s)}
			id = last
		} else {
			s, c := math.Sincos(base + step*float64(i))
			dir = geom.Vec2{X: float32(c), Y: float32(s)}
			id = t.vertex(k, dir, SideCenter)
		}
		pos := p.Add(dir.Mul(t.hw))
		t.triangle(center, prev, id, p, pprev, pos)
		prev, pprev = id, pos
	}
}

// arcSteps returns the number of segments approximating an arc of the given
// radius and angle within tolerance.
func arcSteps(radius, angle, tolerance float32) int {
	step := math.Pi / 2
	if tolerance < radius {
		step = 2 * math.Acos(1-float64(tolerance/radius))
	}
	n := int(math.Ceil(float64(angle) / step))
	return max(1, min(n, maxArcSteps))
}

func sideOf(s float32) Side {
	if s > 0 {
		return SideLeft
	}
	return SideRight
}
