// Package path describes vector paths as flat streams of events.
//
// A path is a sequence of subpaths. Each subpath starts with an EventBegin,
// continues with line and curve segments, and finishes with an EventEnd that
// records whether the subpath was closed. Events are plain values so a slice
// of them can live in a shared arena and be referenced by index range.
//
// Builder appends events to a caller-owned slice:
//
//	var arena []path.Event
//	b := path.NewBuilderWith(arena)
//	b.MoveTo(geom.V2(0, 0))
//	b.LineTo(geom.V2(100, 0))
//	b.LineTo(geom.V2(50, 80))
//	b.Close()
//	arena = b.Build()
//
// Flattener converts events into polylines for tessellation, and ParseSVG /
// AppendSVG convert between events and SVG path data.
package path
