package draw

import (
	"math"

	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/path"
	"github.com/gogpu/draw/tess"
)

// DefaultSize is the width and height of primitives drawn without explicit
// dimensions.
const DefaultSize = 100

// Ellipse is an ellipse primitive, optionally a pie section of one.
type Ellipse struct {
	opts       PolygonOptions
	wh         geom.Vec3
	resolution int
	section    bool
	offset     float32
	sweep      float32
}

// Ellipse records an ellipse with the default 100×100 size.
func (d *Draw) Ellipse() *Ellipse {
	e := &Ellipse{
		opts: DefaultPolygonOptions(),
		wh:   geom.Vec3{X: DefaultSize, Y: DefaultSize},
	}
	d.record(e)
	return e
}

// Kind implements Primitive.
func (*Ellipse) Kind() Kind { return KindEllipse }

// XY sets the center.
func (e *Ellipse) XY(x, y float32) *Ellipse {
	e.opts.Position.X, e.opts.Position.Y = x, y
	return e
}

// XYZ sets the center in 3D.
func (e *Ellipse) XYZ(p geom.Vec3) *Ellipse {
	e.opts.Position = p
	return e
}

// Rotate sets the rotation about the Z axis.
func (e *Ellipse) Rotate(radians float32) *Ellipse {
	e.opts.Orientation.Z = radians
	return e
}

// Orientation sets the Euler rotation.
func (e *Ellipse) Orientation(euler geom.Vec3) *Ellipse {
	e.opts.Orientation = euler
	return e
}

// WH sets the width and height.
func (e *Ellipse) WH(w, h float32) *Ellipse {
	e.wh = geom.Vec3{X: w, Y: h}
	return e
}

// WHD sets width, height and depth. Ellipses are flat: a non-zero depth
// panics when the ellipse is rendered.
func (e *Ellipse) WHD(w, h, depth float32) *Ellipse {
	e.wh = geom.Vec3{X: w, Y: h, Z: depth}
	return e
}

// Radius sets both radii to r.
func (e *Ellipse) Radius(r float32) *Ellipse {
	return e.WH(r*2, r*2)
}

// Resolution renders the ellipse as a polygon of n points instead of
// curves. Zero restores curves.
func (e *Ellipse) Resolution(n int) *Ellipse {
	e.resolution = n
	return e
}

// Section renders only the pie slice starting at offset and sweeping
// radians counter-clockwise.
func (e *Ellipse) Section(offset, radians float32) *Ellipse {
	e.section = true
	e.offset = offset
	e.sweep = radians
	return e
}

// Color sets the fill color.
func (e *Ellipse) Color(c Color) *Ellipse {
	e.opts.setFill(c)
	return e
}

// NoFill disables the fill.
func (e *Ellipse) NoFill() *Ellipse {
	e.opts.NoFill = true
	return e
}

// Stroke enables the outline in color c.
func (e *Ellipse) Stroke(c Color) *Ellipse {
	e.opts.setStroke(c)
	return e
}

// StrokeWeight enables the outline with width w.
func (e *Ellipse) StrokeWeight(w float32) *Ellipse {
	e.opts.ensureStroke().LineWidth = w
	return e
}

// StrokeOptions sets every stroke option.
func (e *Ellipse) StrokeOptions(o tess.StrokeOptions) *Ellipse {
	e.opts.Stroke = &o
	return e
}

// Tolerance sets the curve flattening tolerance of the fill.
func (e *Ellipse) Tolerance(t float32) *Ellipse {
	e.opts.Fill.Tolerance = t
	return e
}

// Render implements Primitive.
func (e *Ellipse) Render(ctx RenderContext, r PrimitiveRenderer) {
	if e.wh.Z != 0 {
		panic("draw: ellipse does not support a z dimension")
	}
	radii := geom.Vec2{X: e.wh.X / 2, Y: e.wh.Y / 2}
	if radii.X == 0 || radii.Y == 0 {
		return
	}

	buf := ctx.buffers()
	b := path.NewBuilderWith(buf.events[:0])
	full := !e.section || math.Abs(float64(e.sweep)) >= 2*math.Pi
	switch {
	case e.resolution > 0:
		buf.points = ellipsePoints(buf.points[:0], radii, e.resolution, e.offset, e.sweep, full)
		if !full {
			b.MoveTo(geom.Vec2{})
			for _, p := range buf.points {
				b.LineTo(p)
			}
			b.Close()
		} else {
			b.Polygon(buf.points, true)
		}
	case full:
		b.Ellipse(geom.Vec2{}, radii, 0)
	default:
		start := ellipseAt(radii, e.offset)
		end := ellipseAt(radii, e.offset+e.sweep)
		b.MoveTo(geom.Vec2{})
		b.LineTo(start)
		large := math.Abs(float64(e.sweep)) > math.Pi
		b.ArcTo(radii, 0, large, e.sweep > 0, end)
		b.Close()
	}
	buf.events = b.Build()
	renderEvents(ctx, r, &e.opts, KindEllipse, buf.events)
}

func ellipseAt(radii geom.Vec2, angle float32) geom.Vec2 {
	s, c := math.Sincos(float64(angle))
	return geom.Vec2{X: radii.X * float32(c), Y: radii.Y * float32(s)}
}

// ellipsePoints samples n points on the ellipse, or n+1 points spanning a
// section including both ends.
func ellipsePoints(dst []geom.Vec2, radii geom.Vec2, n int, offset, sweep float32, full bool) []geom.Vec2 {
	if full {
		step := 2 * math.Pi / float64(n)
		for i := range n {
			dst = append(dst, ellipseAt(radii, offset+float32(float64(i)*step)))
		}
		return dst
	}
	step := float64(sweep) / float64(n)
	for i := 0; i <= n; i++ {
		dst = append(dst, ellipseAt(radii, offset+float32(float64(i)*step)))
	}
	return dst
}
