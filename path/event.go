package path

import "github.com/gogpu/draw/geom"

// EventKind identifies the kind of a path event.
type EventKind uint8

const (
	EventBegin     EventKind = iota // Start of a subpath at To
	EventLine                       // Line from From to To
	EventQuadratic                  // Quadratic curve From, Ctrl1, To
	EventCubic                      // Cubic curve From, Ctrl1, Ctrl2, To
	EventEnd                        // End of a subpath; From is the last point, To the first
)

var eventKindNames = [...]string{
	EventBegin:     "Begin",
	EventLine:      "Line",
	EventQuadratic: "Quadratic",
	EventCubic:     "Cubic",
	EventEnd:       "End",
}

// String returns the string representation of an EventKind.
func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "Unknown"
}

// Event is a single element of a path event stream.
//
// Only the fields relevant to Kind are meaningful; the rest are zero.
type Event struct {
	Kind  EventKind
	From  geom.Vec2
	Ctrl1 geom.Vec2
	Ctrl2 geom.Vec2
	To    geom.Vec2
	Close bool // EventEnd only
}

// Begin returns a subpath start event at p.
func Begin(p geom.Vec2) Event {
	return Event{Kind: EventBegin, To: p}
}

// Line returns a line segment event.
func Line(from, to geom.Vec2) Event {
	return Event{Kind: EventLine, From: from, To: to}
}

// Quadratic returns a quadratic Bezier segment event.
func Quadratic(from, ctrl, to geom.Vec2) Event {
	return Event{Kind: EventQuadratic, From: from, Ctrl1: ctrl, To: to}
}

// Cubic returns a cubic Bezier segment event.
func Cubic(from, ctrl1, ctrl2, to geom.Vec2) Event {
	return Event{Kind: EventCubic, From: from, Ctrl1: ctrl1, Ctrl2: ctrl2, To: to}
}

// End returns a subpath end event. last is the final point of the subpath
// and first its starting point.
func End(last, first geom.Vec2, closed bool) Event {
	return Event{Kind: EventEnd, From: last, To: first, Close: closed}
}

// Map returns the event with every point passed through fn.
func (e Event) Map(fn func(geom.Vec2) geom.Vec2) Event {
	switch e.Kind {
	case EventBegin:
		e.To = fn(e.To)
	case EventLine, EventEnd:
		e.From = fn(e.From)
		e.To = fn(e.To)
	case EventQuadratic:
		e.From = fn(e.From)
		e.Ctrl1 = fn(e.Ctrl1)
		e.To = fn(e.To)
	case EventCubic:
		e.From = fn(e.From)
		e.Ctrl1 = fn(e.Ctrl1)
		e.Ctrl2 = fn(e.Ctrl2)
		e.To = fn(e.To)
	}
	return e
}

// Transform returns the event with its points transformed by m, dropping z.
func (e Event) Transform(m geom.Mat4) Event {
	if m.IsIdentity() {
		return e
	}
	return e.Map(func(p geom.Vec2) geom.Vec2 {
		return m.TransformPoint2(p).XY()
	})
}

// AppendTransformed appends events transformed by m to dst.
func AppendTransformed(dst []Event, events []Event, m geom.Mat4) []Event {
	for _, e := range events {
		dst = append(dst, e.Transform(m))
	}
	return dst
}

// Points returns the end point of every event except EventEnd, in order.
// It is mainly useful for inspecting polygonal paths.
func Points(events []Event) []geom.Vec2 {
	pts := make([]geom.Vec2, 0, len(events))
	for _, e := range events {
		if e.Kind != EventEnd {
			pts = append(pts, e.To)
		}
	}
	return pts
}

// Bounds returns the bounding rectangle of all event points, control points
// included.
func Bounds(events []Event) geom.Rect {
	var r geom.Rect
	first := true
	add := func(p geom.Vec2) {
		if first {
			r = geom.Rect{Min: p, Max: p}
			first = false
			return
		}
		r = r.Include(p)
	}
	for _, e := range events {
		switch e.Kind {
		case EventBegin, EventLine:
			add(e.To)
		case EventQuadratic:
			add(e.Ctrl1)
			add(e.To)
		case EventCubic:
			add(e.Ctrl1)
			add(e.Ctrl2)
			add(e.To)
		}
	}
	return r
}
