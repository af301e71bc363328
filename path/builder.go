package path

import (
	"math"

	"github.com/gogpu/draw/geom"
)

// Builder appends path events to a slice.
//
// The slice may be a shared arena: NewBuilderWith continues appending after
// the existing contents, and Build returns the grown slice. Events appended
// by this builder start at the length the slice had when the builder was
// created.
type Builder struct {
	events  []Event
	start   int
	first   geom.Vec2
	current geom.Vec2
	open    bool
}

// NewBuilder creates a builder with a fresh event slice.
func NewBuilder() *Builder {
	return &Builder{events: make([]Event, 0, 16)}
}

// NewBuilderWith creates a builder appending to buf.
func NewBuilderWith(buf []Event) *Builder {
	return &Builder{events: buf, start: len(buf)}
}

// MoveTo starts a new subpath at p, ending the current one (open) if any.
func (b *Builder) MoveTo(p geom.Vec2) {
	b.End()
	b.events = append(b.events, Begin(p))
	b.first = p
	b.current = p
	b.open = true
}

// LineTo adds a line to p.
func (b *Builder) LineTo(p geom.Vec2) {
	b.ensureOpen()
	b.events = append(b.events, Line(b.current, p))
	b.current = p
}

// QuadraticTo adds a quadratic Bezier curve to p.
func (b *Builder) QuadraticTo(ctrl, p geom.Vec2) {
	b.ensureOpen()
	b.events = append(b.events, Quadratic(b.current, ctrl, p))
	b.current = p
}

// CubicTo adds a cubic Bezier curve to p.
func (b *Builder) CubicTo(ctrl1, ctrl2, p geom.Vec2) {
	b.ensureOpen()
	b.events = append(b.events, Cubic(b.current, ctrl1, ctrl2, p))
	b.current = p
}

// Close closes the current subpath. It is a no-op without an open subpath.
func (b *Builder) Close() {
	if !b.open {
		return
	}
	b.events = append(b.events, End(b.current, b.first, true))
	b.current = b.first
	b.open = false
}

// End ends the current subpath without closing it.
func (b *Builder) End() {
	if !b.open {
		return
	}
	b.events = append(b.events, End(b.current, b.first, false))
	b.open = false
}

// ensureOpen starts an implicit subpath at the current point.
func (b *Builder) ensureOpen() {
	if b.open {
		return
	}
	b.events = append(b.events, Begin(b.current))
	b.first = b.current
	b.open = true
}

// Current returns the current point.
func (b *Builder) Current() geom.Vec2 {
	return b.current
}

// Len returns the number of events appended by this builder.
func (b *Builder) Len() int {
	return len(b.events) - b.start
}

// Events returns the events appended by this builder so far.
func (b *Builder) Events() []Event {
	return b.events[b.start:]
}

// Build ends any open subpath and returns the complete slice, including
// events that were present before the builder was created.
func (b *Builder) Build() []Event {
	b.End()
	return b.events
}

// Polygon adds a subpath through points. An empty slice adds nothing.
func (b *Builder) Polygon(points []geom.Vec2, closed bool) {
	if len(points) == 0 {
		return
	}
	b.MoveTo(points[0])
	for _, p := range points[1:] {
		b.LineTo(p)
	}
	if closed {
		b.Close()
	} else {
		b.End()
	}
}

// Rect adds a closed rectangle, counter-clockwise from the bottom-left corner.
func (b *Builder) Rect(r geom.Rect) {
	b.MoveTo(r.Min)
	b.LineTo(geom.Vec2{X: r.Max.X, Y: r.Min.Y})
	b.LineTo(r.Max)
	b.LineTo(geom.Vec2{X: r.Min.X, Y: r.Max.Y})
	b.Close()
}

// Ellipse adds a closed ellipse centered at center, made of four elliptical
// arcs approximated by cubic curves.
func (b *Builder) Ellipse(center, radii geom.Vec2, xRotation float32) {
	start := ellipsePoint(center, radii, xRotation, 0)
	b.MoveTo(start)
	b.arc(center, radii, xRotation, 0, 2*math.Pi)
	b.Close()
}

// ArcTo adds an SVG-style elliptical arc from the current point to p.
// xRotation is in radians. Zero radii degrade to a line, and an arc to the
// current point adds nothing.
func (b *Builder) ArcTo(radii geom.Vec2, xRotation float32, largeArc, sweep bool, p geom.Vec2) {
	from := b.current
	if from == p {
		return
	}
	rx := float64(abs32(radii.X))
	ry := float64(abs32(radii.Y))
	if rx == 0 || ry == 0 {
		b.LineTo(p)
		return
	}
	b.ensureOpen()

	sinPhi, cosPhi := math.Sincos(float64(xRotation))

	dx := float64(from.X-p.X) / 2
	dy := float64(from.Y-p.Y) / 2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	rxSq, rySq := rx*rx, ry*ry
	denom := rxSq*y1p*y1p + rySq*x1p*x1p
	if denom == 0 {
		b.LineTo(p)
		return
	}
	num := rxSq*rySq - denom
	if num < 0 {
		num = 0
	}
	sq := math.Sqrt(num / denom)
	if largeArc == sweep {
		sq = -sq
	}
	cxp := sq * rx * y1p / ry
	cyp := -sq * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + float64(from.X+p.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + float64(from.Y+p.Y)/2

	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := (-x1p-cxp)/rx, (-y1p-cyp)/ry
	theta1 := vectorAngle(1, 0, ux, uy)
	dTheta := vectorAngle(ux, uy, vx, vy)
	if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	center := geom.Vec2{X: float32(cx), Y: float32(cy)}
	r := geom.Vec2{X: float32(rx), Y: float32(ry)}
	b.arc(center, r, xRotation, theta1, dTheta)
	// Land exactly on the requested end point.
	b.events[len(b.events)-1].To = p
	b.current = p
}

// arc appends cubic segments of at most a quarter turn each, sweeping
// from angle start by sweep radians.
func (b *Builder) arc(center, radii geom.Vec2, xRotation float32, start, sweep float64) {
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := sweep / float64(n)
	alpha := math.Sin(step) * (math.Sqrt(4+3*math.Tan(step/2)*math.Tan(step/2)) - 1) / 3

	a1 := start
	for i := 0; i < n; i++ {
		a2 := a1 + step
		p1 := ellipsePoint(center, radii, xRotation, a1)
		p2 := ellipsePoint(center, radii, xRotation, a2)
		d1 := ellipseTangent(radii, xRotation, a1)
		d2 := ellipseTangent(radii, xRotation, a2)
		c1 := p1.Add(d1.Mul(float32(alpha)))
		c2 := p2.Sub(d2.Mul(float32(alpha)))
		b.events = append(b.events, Cubic(b.current, c1, c2, p2))
		b.current = p2
		a1 = a2
	}
}

// ellipsePoint returns the point at angle on a rotated ellipse.
func ellipsePoint(center, radii geom.Vec2, xRotation float32, angle float64) geom.Vec2 {
	s, c := math.Sincos(angle)
	sr, cr := math.Sincos(float64(xRotation))
	x := float64(radii.X) * c
	y := float64(radii.Y) * s
	return geom.Vec2{
		X: center.X + float32(x*cr-y*sr),
		Y: center.Y + float32(x*sr+y*cr),
	}
}

// ellipseTangent returns the derivative of ellipsePoint with respect to angle.
func ellipseTangent(radii geom.Vec2, xRotation float32, angle float64) geom.Vec2 {
	s, c := math.Sincos(angle)
	sr, cr := math.Sincos(float64(xRotation))
	x := -float64(radii.X) * s
	y := float64(radii.Y) * c
	return geom.Vec2{X: float32(x*cr - y*sr), Y: float32(x*sr + y*cr)}
}

// vectorAngle returns the signed angle from u to v.
func vectorAngle(ux, uy, vx, vy float64) float64 {
	lenU := math.Hypot(ux, uy)
	lenV := math.Hypot(vx, vy)
	if lenU == 0 || lenV == 0 {
		return 0
	}
	cos := (ux*vx + uy*vy) / (lenU * lenV)
	cos = math.Max(-1, math.Min(1, cos))
	angle := math.Acos(cos)
	if ux*vy-uy*vx < 0 {
		angle = -angle
	}
	return angle
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
