// Package svg provides the SVG document backend for draw.
//
// Only flat colored paths can be expressed: colored points, textured
// points, raw meshes and text panic, as does any context that changes the
// blend state, scissor, topology or sampler.
//
// # Example
//
//	import _ "github.com/gogpu/draw/backends/svg"
//
//	doc := svg.New()
//	d.Render(doc)
//	_, err := doc.WriteTo(f)
package svg

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/gogpu/draw"
	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/mesh"
	"github.com/gogpu/draw/path"
	"github.com/gogpu/draw/tess"
)

func init() {
	draw.Register("svg", func() draw.Backend {
		return New()
	})
}

// Document collects replayed paths as SVG path elements.
// Document is not safe for concurrent use.
type Document struct {
	body       []byte
	bounds     geom.Rect
	hasBounds  bool
	viewBox    geom.Rect
	hasViewBox bool
	background draw.Color
	hasBg      bool
	paths      int

	events []path.Event
	data   []byte
}

// Ensure Document implements the optional renderer interfaces.
var (
	_ draw.Backend          = (*Document)(nil)
	_ draw.ContextRenderer  = (*Document)(nil)
	_ draw.BackgroundSetter = (*Document)(nil)
)

// Option configures a Document.
type Option func(*Document)

// WithViewBox fixes the viewBox to r in draw space instead of fitting it to
// the rendered paths.
func WithViewBox(r geom.Rect) Option {
	return func(d *Document) {
		d.viewBox = r
		d.hasViewBox = true
	}
}

// New creates an empty document.
func New(opts ...Option) *Document {
	d := &Document{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Len returns the number of path elements in the document.
func (d *Document) Len() int {
	return d.paths
}

// Bounds returns the draw-space rectangle the viewBox covers.
func (d *Document) Bounds() geom.Rect {
	if d.hasViewBox {
		return d.viewBox
	}
	return d.bounds
}

// Reset discards every path and the background.
func (d *Document) Reset() {
	d.body = d.body[:0]
	d.bounds = geom.Rect{}
	d.hasBounds = false
	d.hasBg = false
	d.paths = 0
}

// SetBackground implements draw.BackgroundSetter.
func (d *Document) SetBackground(c draw.Color) {
	d.background = c
	d.hasBg = true
}

// SetContext implements draw.ContextRenderer. Transforms are applied to
// path coordinates; any other non-default state panics.
func (d *Document) SetContext(ctx draw.Context) {
	if !ctx.HasDefaultState() {
		panic("svg: only the transform of a draw context is supported")
	}
}

// PathFlatColor implements draw.PrimitiveRenderer.
func (d *Document) PathFlatColor(t geom.Mat4, events []path.Event, color draw.Color, kind draw.Kind, opts tess.Options) {
	d.events = path.AppendTransformed(d.events[:0], events, t)
	if len(d.events) == 0 {
		return
	}

	b := path.Bounds(d.events)
	if opts.Mode == tess.ModeStroke {
		hw := opts.Stroke.LineWidth / 2
		b = geom.Rect{
			Min: geom.V2(b.Min.X-hw, b.Min.Y-hw),
			Max: geom.V2(b.Max.X+hw, b.Max.Y+hw),
		}
	}
	d.include(b)

	d.body = append(d.body, `<path class="`...)
	d.body = append(d.body, kind.String()...)
	d.body = append(d.body, `" d="`...)
	d.data = path.AppendSVG(d.data[:0], d.events)
	d.body = append(d.body, d.data...)
	d.body = append(d.body, '"')
	if opts.Mode == tess.ModeStroke {
		d.body = appendStroke(d.body, color, opts.Stroke)
	} else {
		d.body = appendFill(d.body, color, opts.Fill)
	}
	d.body = append(d.body, "/>\n"...)
	d.paths++
}

func (d *Document) include(r geom.Rect) {
	if !d.hasBounds {
		d.bounds = r
		d.hasBounds = true
		return
	}
	d.bounds = d.bounds.Include(r.Min).Include(r.Max)
}

func appendFill(dst []byte, c draw.Color, o tess.FillOptions) []byte {
	dst = appendAttr(dst, "fill", c.Hex())
	if c.A < 1 {
		dst = appendFloatAttr(dst, "fill-opacity", c.A)
	}
	if o.FillRule != tess.FillRuleNonZero {
		dst = appendAttr(dst, "fill-rule", o.FillRule.String())
	}
	return dst
}

func appendStroke(dst []byte, c draw.Color, o tess.StrokeOptions) []byte {
	dst = appendAttr(dst, "fill", "none")
	dst = appendAttr(dst, "stroke", c.Hex())
	if c.A < 1 {
		dst = appendFloatAttr(dst, "stroke-opacity", c.A)
	}
	dst = appendFloatAttr(dst, "stroke-width", o.LineWidth)
	// SVG has a single cap for both ends.
	dst = appendAttr(dst, "stroke-linecap", o.StartCap.String())
	dst = appendAttr(dst, "stroke-linejoin", o.LineJoin.String())
	if o.LineJoin == tess.LineJoinMiter || o.LineJoin == tess.LineJoinMiterClip {
		dst = appendFloatAttr(dst, "stroke-miterlimit", o.MiterLimit)
	}
	return dst
}

func appendAttr(dst []byte, name, value string) []byte {
	dst = append(dst, ' ')
	dst = append(dst, name...)
	dst = append(dst, `="`...)
	dst = append(dst, value...)
	return append(dst, '"')
}

func appendFloatAttr(dst []byte, name string, v float32) []byte {
	return appendAttr(dst, name, strconv.FormatFloat(float64(v), 'f', -1, 32))
}

// WriteTo writes the document as a standalone SVG file. The viewBox covers
// the draw-space bounds and a group flips the y axis, since draw space
// points up and SVG space points down.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	r := d.Bounds()

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="%s %s %s %s" width="%s" height="%s"`,
		ftoa(r.Min.X), ftoa(r.Min.Y), ftoa(r.W()), ftoa(r.H()), ftoa(r.W()), ftoa(r.H()))
	if d.hasBg {
		fmt.Fprintf(&buf, ` style="background-color: %s"`, cssColor(d.background))
	}
	buf.WriteString(">\n")
	// y maps to (Min.Y + Max.Y) - y, keeping the bounds in place.
	fmt.Fprintf(&buf, `<g transform="translate(0 %s) scale(1 -1)">`+"\n", ftoa(r.Min.Y+r.Max.Y))
	buf.Write(d.body)
	buf.WriteString("</g>\n</svg>\n")

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("svg: write document: %w", err)
	}
	draw.Logger().Debug("svg: document written",
		slog.Int("paths", d.paths),
		slog.Int("bytes", n))
	return int64(n), nil
}

func ftoa(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

// cssColor uses the #rrggbbaa notation only when alpha is needed.
func cssColor(c draw.Color) string {
	if c.A >= 1 {
		return c.Hex()
	}
	return c.String()
}

// PathColoredPoints implements draw.PrimitiveRenderer. It always panics.
func (d *Document) PathColoredPoints(geom.Mat4, []draw.ColoredPoint, bool, tess.Options) {
	panic("svg: colored points are not supported")
}

// PathTexturedPoints implements draw.PrimitiveRenderer. It always panics.
func (d *Document) PathTexturedPoints(geom.Mat4, []draw.TexturedPoint, bool, tess.Options) {
	panic("svg: textured points are not supported")
}

// Mesh implements draw.PrimitiveRenderer. It always panics.
func (d *Document) Mesh(geom.Mat4, []mesh.Vertex, []uint32, *draw.Color) {
	panic("svg: meshes are not supported")
}

// Text implements draw.PrimitiveRenderer. It always panics.
func (d *Document) Text(geom.Mat4, draw.TextRun, draw.Color, []draw.Color) {
	panic("svg: text is not supported")
}
