package tess

import (
	"cmp"
	"math"
	"slices"

	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/path"
)

// areaEpsilon is the smallest contour area the ear clipper accepts.
const areaEpsilon = 1e-9

// FillTessellator triangulates filled paths and polygons.
//
// Outlines whose edges never meet and whose contours all enclose an area
// are ear clipped. Anything else, such as self-intersecting stars, bowties
// or overlapping subpaths, is filled by a scanline sweep that evaluates the
// fill rule between every pair of crossings.
//
// It is designed to be reused via its internal buffers; a single
// FillTessellator must not be used concurrently.
type FillTessellator struct {
	flat     path.Flattener
	points   []geom.Vec2
	attrs    []float32
	numAttrs int
	contours []fillContour
	ids      []VertexID
	ring     []int
	hole     []int
	holes    []int
	prev     []int
	next     []int

	edges   []fillEdge
	ys      []float64
	active  []int
	scratch []float32
}

type fillContour struct {
	start, end int
	area       float32
	hole       bool
	skip       bool
	parent     int
}

// NewFillTessellator creates a fill tessellator.
func NewFillTessellator() *FillTessellator {
	return &FillTessellator{}
}

// TessellatePath fills the subpaths of events. Open subpaths are closed
// implicitly.
func (t *FillTessellator) TessellatePath(events []path.Event, opts FillOptions, out FillGeometryBuilder) error {
	if err := opts.validate(); err != nil {
		return err
	}
	t.reset(0)
	t.flat.Reset()
	t.flat.Flatten(events, opts.Tolerance)
	for i := range t.flat.Contours {
		t.addContour(t.flat.Contour(i), nil)
	}
	return t.tessellate(opts, out)
}

// TessellatePolygon fills a single polygon. The polygon is always treated
// as closed; its attributes are forwarded to the builder per vertex.
func (t *FillTessellator) TessellatePolygon(poly Polygon, opts FillOptions, out FillGeometryBuilder) error {
	if err := opts.validate(); err != nil {
		return err
	}
	t.reset(poly.NumAttributes)
	t.addContour(poly.Points, poly.Attributes)
	return t.tessellate(opts, out)
}

func (t *FillTessellator) reset(numAttrs int) {
	t.points = t.points[:0]
	t.attrs = t.attrs[:0]
	t.contours = t.contours[:0]
	t.numAttrs = numAttrs
}

// addContour records a contour, dropping consecutive duplicates, a
// repeated closing point and contours of fewer than three points.
func (t *FillTessellator) addContour(pts []geom.Vec2, attrs []float32) {
	start := len(t.points)
	for i, p := range pts {
		if n := len(t.points); n > start && t.points[n-1] == p {
			continue
		}
		t.points = append(t.points, p)
		if t.numAttrs > 0 {
			t.attrs = append(t.attrs, attrs[i*t.numAttrs:(i+1)*t.numAttrs]...)
		}
	}
	if n := len(t.points); n-start > 1 && t.points[n-1] == t.points[start] {
		t.truncate(n - 1)
	}
	if len(t.points)-start < 3 {
		t.truncate(start)
		return
	}
	area := signedArea(t.points[start:])
	t.contours = append(t.contours, fillContour{start: start, end: len(t.points), area: area, parent: -1})
}

func (t *FillTessellator) truncate(n int) {
	t.points = t.points[:n]
	t.attrs = t.attrs[:n*t.numAttrs]
}

func (t *FillTessellator) tessellate(opts FillOptions, out FillGeometryBuilder) error {
	out.BeginGeometry()
	t.buildEdges()

	var err error
	if t.simple() {
		err = t.clip(opts.FillRule, out)
	} else {
		err = t.sweep(opts.FillRule, out)
	}
	if err != nil {
		out.AbortGeometry()
		return err
	}
	out.EndGeometry()
	return nil
}

// simple reports whether every contour encloses an area and no two edges
// meet other than at the vertex they share.
func (t *FillTessellator) simple() bool {
	for _, c := range t.contours {
		if abs32(c.area) <= areaEpsilon {
			return false
		}
	}
	return !t.crossings(nil)
}

// clip ear clips the contours after sorting them into outlines and holes.
func (t *FillTessellator) clip(rule FillRule, out FillGeometryBuilder) error {
	t.classify(rule)

	t.ids = slices.Grow(t.ids[:0], len(t.points))[:len(t.points)]
	for ci := range t.contours {
		c := &t.contours[ci]
		if c.skip {
			continue
		}
		for i := c.start; i < c.end; i++ {
			v := FillVertex{Position: t.points[i]}
			if t.numAttrs > 0 {
				v.Attributes = t.attrs[i*t.numAttrs : (i+1)*t.numAttrs]
			}
			id, err := out.AddFillVertex(v)
			if err != nil {
				return err
			}
			t.ids[i] = id
		}
	}

	for ci := range t.contours {
		c := t.contours[ci]
		if c.skip || c.hole {
			continue
		}
		t.ring = t.appendRing(t.ring[:0], c, true)

		t.holes = t.holes[:0]
		for hi, h := range t.contours {
			if h.hole && !h.skip && h.parent == ci {
				t.holes = append(t.holes, hi)
			}
		}
		// Bridge holes with the rightmost extent first.
		slices.SortFunc(t.holes, func(a, b int) int {
			return cmp.Compare(t.maxX(t.contours[b]), t.maxX(t.contours[a]))
		})
		for _, hi := range t.holes {
			t.hole = t.appendRing(t.hole[:0], t.contours[hi], false)
			t.ring = t.bridge(t.ring, t.hole)
		}
		t.earClip(t.ring, out)
	}
	return nil
}

// classify marks each contour as an outline or a hole and assigns holes to
// the innermost enclosing outline.
func (t *FillTessellator) classify(rule FillRule) {
	for i := range t.contours {
		c := &t.contours[i]
		p := t.points[c.start]
		depth, winding := 0, 0
		for j, o := range t.contours {
			if j == i || !containsPoint(t.points[o.start:o.end], p) {
				continue
			}
			depth++
			winding += sign(o.area)
		}
		switch rule {
		case FillRuleEvenOdd:
			c.hole = depth%2 == 1
		default:
			inner := winding + sign(c.area)
			switch {
			case winding == 0:
				c.hole = false
			case inner == 0:
				c.hole = true
			default:
				// Both sides already filled.
				c.skip = true
			}
		}
	}

	for i := range t.contours {
		c := &t.contours[i]
		if !c.hole || c.skip {
			continue
		}
		p := t.points[c.start]
		best := float32(math.MaxFloat32)
		for j, o := range t.contours {
			if j == i || o.hole || o.skip {
				continue
			}
			if a := abs32(o.area); a < best && containsPoint(t.points[o.start:o.end], p) {
				best = a
				c.parent = j
			}
		}
		if c.parent < 0 {
			c.skip = true
		}
	}
}

// appendRing appends the point indices of c, counter-clockwise when ccw is
// set and clockwise otherwise.
func (t *FillTessellator) appendRing(dst []int, c fillContour, ccw bool) []int {
	if (c.area > 0) == ccw {
		for i := c.start; i < c.end; i++ {
			dst = append(dst, i)
		}
		return dst
	}
	for i := c.end - 1; i >= c.start; i-- {
		dst = append(dst, i)
	}
	return dst
}

func (t *FillTessellator) maxX(c fillContour) float32 {
	x := float32(-math.MaxFloat32)
	for _, p := range t.points[c.start:c.end] {
		x = max(x, p.X)
	}
	return x
}

// bridge splices a clockwise hole into a counter-clockwise ring through a
// pair of coincident edges between the hole's rightmost vertex and a
// visible ring vertex.
func (t *FillTessellator) bridge(ring, hole []int) []int {
	hm := 0
	for i, idx := range hole {
		if t.points[idx].X > t.points[hole[hm]].X {
			hm = i
		}
	}
	m := t.points[hole[hm]]

	// Closest edge crossed by a ray from m towards +x.
	n := len(ring)
	best := -1
	bestX := float32(math.MaxFloat32)
	for i := 0; i < n; i++ {
		a := t.points[ring[i]]
		b := t.points[ring[(i+1)%n]]
		if (a.Y <= m.Y) == (b.Y <= m.Y) {
			continue
		}
		x := a.X + (m.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if x >= m.X && x < bestX {
			bestX = x
			best = i
		}
	}
	if best < 0 {
		return ring
	}

	pi := best
	if t.points[ring[(best+1)%n]].X > t.points[ring[best]].X {
		pi = (best + 1) % n
	}
	p := t.points[ring[pi]]
	hit := geom.Vec2{X: bestX, Y: m.Y}

	// A ring vertex inside the triangle (m, hit, p) would block the bridge;
	// the one closest in angle to the ray is visible.
	if abs32(p.Y-m.Y) > 0 {
		bestAngle := math.Inf(1)
		for i, idx := range ring {
			v := t.points[idx]
			if i == pi || v == m || !pointInTriangle(v, m, hit, p) {
				continue
			}
			angle := math.Atan2(math.Abs(float64(v.Y-m.Y)), float64(v.X-m.X))
			if angle < bestAngle {
				bestAngle = angle
				pi = i
			}
		}
	}

	merged := make([]int, 0, len(ring)+len(hole)+2)
	merged = append(merged, ring[:pi+1]...)
	for k := 0; k <= len(hole); k++ {
		merged = append(merged, hole[(hm+k)%len(hole)])
	}
	merged = append(merged, ring[pi:]...)
	return merged
}

// earClip triangulates a counter-clockwise ring of point indices.
func (t *FillTessellator) earClip(ring []int, out FillGeometryBuilder) {
	n := len(ring)
	if n < 3 {
		return
	}
	t.prev = slices.Grow(t.prev[:0], n)[:n]
	t.next = slices.Grow(t.next[:0], n)[:n]
	for i := range n {
		t.prev[i] = (i + n - 1) % n
		t.next[i] = (i + 1) % n
	}

	remaining := n
	i, stall := 0, 0
	for remaining > 3 {
		a, c := t.prev[i], t.next[i]
		if t.isEar(ring, a, i, c) {
			t.emit(ring, a, i, c, out)
			t.unlink(i)
			remaining--
			i, stall = c, 0
			continue
		}
		i = t.next[i]
		stall++
		if stall < remaining {
			continue
		}

		// A full pass without an ear: drop a degenerate vertex, or clip a
		// convex one regardless of containment.
		stall = 0
		j, found := i, false
		for range remaining {
			cr := t.cross(ring, t.prev[j], j, t.next[j])
			if cr > 0 {
				t.emit(ring, t.prev[j], j, t.next[j], out)
				found = true
			} else if cr == 0 {
				found = true
			}
			if found {
				i = t.next[j]
				t.unlink(j)
				remaining--
				break
			}
			j = t.next[j]
		}
		if !found {
			return
		}
	}
	if remaining == 3 && t.cross(ring, t.prev[i], i, t.next[i]) > 0 {
		t.emit(ring, t.prev[i], i, t.next[i], out)
	}
}

func (t *FillTessellator) unlink(i int) {
	p, n := t.prev[i], t.next[i]
	t.next[p] = n
	t.prev[n] = p
}

func (t *FillTessellator) cross(ring []int, a, b, c int) float32 {
	pa, pb, pc := t.points[ring[a]], t.points[ring[b]], t.points[ring[c]]
	return pb.Sub(pa).Cross(pc.Sub(pb))
}

func (t *FillTessellator) isEar(ring []int, a, b, c int) bool {
	if t.cross(ring, a, b, c) <= 0 {
		return false
	}
	ia, ib, ic := ring[a], ring[b], ring[c]
	pa, pb, pc := t.points[ia], t.points[ib], t.points[ic]
	for j := t.next[c]; j != a; j = t.next[j] {
		idx := ring[j]
		if idx == ia || idx == ib || idx == ic {
			continue
		}
		if pointInTriangle(t.points[idx], pa, pb, pc) {
			return false
		}
	}
	return true
}

func (t *FillTessellator) emit(ring []int, a, b, c int, out FillGeometryBuilder) {
	out.AddTriangle(t.ids[ring[a]], t.ids[ring[b]], t.ids[ring[c]])
}

// signedArea returns the area of a polygon, positive when counter-clockwise.
func signedArea(pts []geom.Vec2) float32 {
	var a float32
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a * 0.5
}

// containsPoint reports whether p is inside the polygon using the crossing
// rule.
func containsPoint(pts []geom.Vec2, p geom.Vec2) bool {
	inside := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// pointInTriangle reports whether p lies inside or on the triangle.
func pointInTriangle(p, a, b, c geom.Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func sign(v float32) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// fillEdge is a contour edge ordered bottom to top. Horizontal edges run
// left to right.
type fillEdge struct {
	x0, y0, x1, y1 float64
	// lo and hi index the points at (x0, y0) and (x1, y1).
	lo, hi int
	// winding is +1 for edges going up in contour order, -1 otherwise.
	winding int
}

func (e fillEdge) xAt(y float64) float64 {
	if e.y1 == e.y0 {
		return e.x0
	}
	return e.x0 + (y-e.y0)*(e.x1-e.x0)/(e.y1-e.y0)
}

// buildEdges collects the edges of every contour sorted by their lower y.
func (t *FillTessellator) buildEdges() {
	t.edges = t.edges[:0]
	for _, c := range t.contours {
		for i := c.start; i < c.end; i++ {
			j := i + 1
			if j == c.end {
				j = c.start
			}
			a, b := t.points[i], t.points[j]
			e := fillEdge{
				x0: float64(a.X), y0: float64(a.Y),
				x1: float64(b.X), y1: float64(b.Y),
				lo: i, hi: j,
				winding: 1,
			}
			if e.y1 < e.y0 || (e.y1 == e.y0 && e.x1 < e.x0) {
				e.x0, e.y0, e.x1, e.y1 = e.x1, e.y1, e.x0, e.y0
				e.lo, e.hi = j, i
				e.winding = -1
			}
			t.edges = append(t.edges, e)
		}
	}
	slices.SortFunc(t.edges, func(a, b fillEdge) int {
		return cmp.Compare(a.y0, b.y0)
	})
}

// crossings reports whether two edges meet anywhere but at a shared vertex.
// If fn is not nil it is called with the y of every such meeting point;
// otherwise the scan stops at the first one.
func (t *FillTessellator) crossings(fn func(y float64)) bool {
	found := false
	for i, e := range t.edges {
		for _, f := range t.edges[i+1:] {
			if f.y0 > e.y1 {
				break
			}
			if e.lo == f.lo || e.lo == f.hi || e.hi == f.lo || e.hi == f.hi {
				continue
			}
			y, ok := intersect(e, f)
			if !ok {
				continue
			}
			if fn == nil {
				return true
			}
			found = true
			fn(y)
		}
	}
	return found
}

// intersect returns the y of a point that lies on both e and f.
func intersect(e, f fillEdge) (float64, bool) {
	rx, ry := e.x1-e.x0, e.y1-e.y0
	sx, sy := f.x1-f.x0, f.y1-f.y0
	qx, qy := f.x0-e.x0, f.y0-e.y0

	d := rx*sy - ry*sx
	if d == 0 {
		if qx*ry-qy*rx != 0 {
			return 0, false
		}
		// Collinear: the overlap starts at an endpoint.
		rr := rx*rx + ry*ry
		t0 := (qx*rx + qy*ry) / rr
		t1 := t0 + (sx*rx+sy*ry)/rr
		if max(t0, t1) < 0 || min(t0, t1) > 1 {
			return 0, false
		}
		return max(e.y0, f.y0), true
	}

	s := (qx*sy - qy*sx) / d
	u := (qx*ry - qy*rx) / d
	if s < 0 || s > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return e.y0 + s*ry, true
}

// fills reports whether a region with the given winding number is inside.
func (r FillRule) fills(winding int) bool {
	if r == FillRuleEvenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

// sweep splits the plane into horizontal slabs at every vertex and every
// crossing. No two edges cross inside a slab, so the edges spanning it keep
// their left to right order and the regions between them have a constant
// winding number. Every run of filled regions becomes one trapezoid.
func (t *FillTessellator) sweep(rule FillRule, out FillGeometryBuilder) error {
	t.ys = t.ys[:0]
	for _, e := range t.edges {
		t.ys = append(t.ys, e.y0, e.y1)
	}
	t.crossings(func(y float64) { t.ys = append(t.ys, y) })
	slices.Sort(t.ys)
	t.ys = slices.Compact(t.ys)

	for k := 0; k+1 < len(t.ys); k++ {
		y0, y1 := t.ys[k], t.ys[k+1]
		ym := (y0 + y1) / 2

		t.active = t.active[:0]
		for i, e := range t.edges {
			if e.y0 >= ym {
				break
			}
			if e.y1 > ym {
				t.active = append(t.active, i)
			}
		}
		slices.SortFunc(t.active, func(a, b int) int {
			return cmp.Compare(t.edges[a].xAt(ym), t.edges[b].xAt(ym))
		})

		winding, left := 0, 0
		for _, i := range t.active {
			was := rule.fills(winding)
			winding += t.edges[i].winding
			now := rule.fills(winding)
			switch {
			case !was && now:
				left = i
			case was && !now:
				if err := t.trapezoid(t.edges[left], t.edges[i], y0, y1, out); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// trapezoid fills the part of the slab [y0, y1] between edges l and r.
// Either horizontal side may have collapsed to a point.
func (t *FillTessellator) trapezoid(l, r fillEdge, y0, y1 float64, out FillGeometryBuilder) error {
	l0 := geom.V2(float32(l.xAt(y0)), float32(y0))
	r0 := geom.V2(float32(r.xAt(y0)), float32(y0))
	r1 := geom.V2(float32(r.xAt(y1)), float32(y1))
	l1 := geom.V2(float32(l.xAt(y1)), float32(y1))

	lower := counterClockwise(l0, r0, r1)
	upper := counterClockwise(l0, r1, l1)
	if !lower && !upper {
		return nil
	}

	il0, err := t.edgeVertex(l, l0, y0, out)
	if err != nil {
		return err
	}
	ir1, err := t.edgeVertex(r, r1, y1, out)
	if err != nil {
		return err
	}
	if lower {
		ir0, err := t.edgeVertex(r, r0, y0, out)
		if err != nil {
			return err
		}
		out.AddTriangle(il0, ir0, ir1)
	}
	if upper {
		il1, err := t.edgeVertex(l, l1, y1, out)
		if err != nil {
			return err
		}
		out.AddTriangle(il0, ir1, il1)
	}
	return nil
}

// edgeVertex adds a vertex at p on edge e, interpolating the attributes of
// the edge's endpoints.
func (t *FillTessellator) edgeVertex(e fillEdge, p geom.Vec2, y float64, out FillGeometryBuilder) (VertexID, error) {
	v := FillVertex{Position: p}
	if t.numAttrs > 0 {
		var s float32
		if e.y1 > e.y0 {
			s = float32((y - e.y0) / (e.y1 - e.y0))
		}
		a := t.attrs[e.lo*t.numAttrs : (e.lo+1)*t.numAttrs]
		b := t.attrs[e.hi*t.numAttrs : (e.hi+1)*t.numAttrs]
		t.scratch = t.scratch[:0]
		for i := range a {
			t.scratch = append(t.scratch, a[i]+(b[i]-a[i])*s)
		}
		v.Attributes = t.scratch
	}
	return out.AddFillVertex(v)
}

// counterClockwise reports whether a, b, c turn left by a margin that
// survives rounding to float32.
func counterClockwise(a, b, c geom.Vec2) bool {
	abx, aby := float64(b.X)-float64(a.X), float64(b.Y)-float64(a.Y)
	acx, acy := float64(c.X)-float64(a.X), float64(c.Y)-float64(a.Y)
	ext := max(math.Abs(abx), math.Abs(aby), math.Abs(acx), math.Abs(acy))
	return abx*acy-aby*acx > 1e-5*ext*ext
}
