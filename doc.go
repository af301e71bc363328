// Package draw provides a retained-mode 2D/3D drawing API.
//
// # Overview
//
// Drawing calls do not render anything immediately. Each call records a
// primitive (ellipse, rect, quad, tri, line, polygon, path, texture, mesh or
// text) into an ordered command log together with the draw context that was
// active when it was recorded. At the end of a frame the log is replayed into
// a [PrimitiveRenderer], which turns the primitives into GPU-ready vertex and
// index buffers (backends/meshrender) or into an SVG document (backends/svg).
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/draw"
//	    "github.com/gogpu/draw/backends/meshrender"
//	)
//
//	d := draw.New()
//	d.Background(draw.Hex("#202020"))
//	d.Ellipse().XY(-100, 0).Radius(50).Color(draw.Red)
//	d.Rect().WH(80, 40).Rotate(0.3).Stroke(draw.White).StrokeWeight(2)
//	d.Translate(geom.V3(100, 0, 0)).Line().Points(geom.V2(0, 0), geom.V2(0, 80))
//
//	r := meshrender.New()
//	d.Render(r)
//	// r.Geometry() and r.Commands() are ready to upload and draw.
//
// # Draw contexts
//
// Methods such as [Draw.Translate], [Draw.Rotate] and [Draw.Blend] return a
// new *Draw sharing the same command log but carrying a modified [Context].
// A context change is recorded only when a primitive is drawn with a context
// that differs from the previously recorded one. Context changes apply to
// primitives recorded after them, never retroactively.
//
// # Colors
//
// Primitives without an explicit color take one from the [Theme], first the
// default for their kind and role (fill or stroke), then the global default
// for the role.
//
// # Coordinate System
//
// Draw space is +Y up with the origin at the center of the canvas. Angles are
// in radians and increase counter-clockwise.
//
// # Concurrency
//
// A Draw and its State are not safe for concurrent use. Recording and
// replay are separate phases on the same goroutine.
package draw
