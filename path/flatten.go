package path

import "github.com/gogpu/draw/geom"

// DefaultTolerance is the default maximum distance between a curve and its
// flattened approximation.
const DefaultTolerance = 0.1

// maxFlattenDepth bounds curve subdivision.
const maxFlattenDepth = 16

// Contour is one flattened subpath, referencing a range of Flattener.Points.
type Contour struct {
	Start, End int
	Closed     bool
}

// Len returns the number of points in the contour.
func (c Contour) Len() int { return c.End - c.Start }

// Flattener converts path events to polylines.
//
// The zero value is ready to use. Reset keeps the allocated buffers so a
// Flattener can be reused across paths without allocating.
type Flattener struct {
	Points   []geom.Vec2
	Contours []Contour

	start int
	open  bool
}

// Reset clears the flattened output, keeping capacity.
func (f *Flattener) Reset() {
	f.Points = f.Points[:0]
	f.Contours = f.Contours[:0]
	f.open = false
}

// Contour returns the points of contour i.
func (f *Flattener) Contour(i int) []geom.Vec2 {
	c := f.Contours[i]
	return f.Points[c.Start:c.End]
}

// Flatten appends the polylines approximating events within tolerance.
// A non-positive tolerance uses DefaultTolerance.
//
// A closed contour never repeats its first point at the end. Consecutive
// duplicate points are dropped.
func (f *Flattener) Flatten(events []Event, tolerance float32) {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	for _, e := range events {
		switch e.Kind {
		case EventBegin:
			f.finish(false)
			f.start = len(f.Points)
			f.open = true
			f.Points = append(f.Points, e.To)
		case EventLine:
			f.begin(e.From)
			f.push(e.To)
		case EventQuadratic:
			f.begin(e.From)
			f.quadratic(e.From, e.Ctrl1, e.To, tolerance, 0)
		case EventCubic:
			f.begin(e.From)
			f.cubic(e.From, e.Ctrl1, e.Ctrl2, e.To, tolerance, 0)
		case EventEnd:
			f.finish(e.Close)
		}
	}
	f.finish(false)
}

// begin starts an implicit contour when a segment arrives without one.
func (f *Flattener) begin(p geom.Vec2) {
	if f.open {
		return
	}
	f.start = len(f.Points)
	f.open = true
	f.Points = append(f.Points, p)
}

func (f *Flattener) push(p geom.Vec2) {
	if n := len(f.Points); n > f.start && f.Points[n-1] == p {
		return
	}
	f.Points = append(f.Points, p)
}

func (f *Flattener) finish(closed bool) {
	if !f.open {
		return
	}
	f.open = false
	end := len(f.Points)
	if closed && end-f.start > 1 && f.Points[end-1] == f.Points[f.start] {
		end--
		f.Points = f.Points[:end]
	}
	f.Contours = append(f.Contours, Contour{Start: f.start, End: end, Closed: closed})
}

// quadratic recursively subdivides a quadratic Bezier curve.
func (f *Flattener) quadratic(p0, p1, p2 geom.Vec2, tolerance float32, depth int) {
	if depth >= maxFlattenDepth || distanceToSegment(p1, p0, p2) < tolerance {
		f.push(p2)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)
	f.quadratic(p0, q0, q2, tolerance, depth+1)
	f.quadratic(q2, q1, p2, tolerance, depth+1)
}

// cubic recursively subdivides a cubic Bezier curve using de Casteljau's
// algorithm.
func (f *Flattener) cubic(p0, p1, p2, p3 geom.Vec2, tolerance float32, depth int) {
	d := max(distanceToSegment(p1, p0, p3), distanceToSegment(p2, p0, p3))
	if depth >= maxFlattenDepth || d < tolerance {
		f.push(p3)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	f.cubic(p0, q0, r0, s, tolerance, depth+1)
	f.cubic(s, r1, q2, p3, tolerance, depth+1)
}

// distanceToSegment returns the distance from p to the segment (a, b).
func distanceToSegment(p, a, b geom.Vec2) float32 {
	ab := b.Sub(a)
	l2 := ab.LengthSquared()
	if l2 < 1e-12 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	switch {
	case t < 0:
		return p.Distance(a)
	case t > 1:
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Mul(t)))
}
