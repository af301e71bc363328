package draw

import (
	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/text"
)

// Text is a block of text centered on its position.
type Text struct {
	opts        PolygonOptions
	state       *State
	text        Range
	layout      text.Layout
	glyphColors Range
}

// Text records s with the default font and size.
func (d *Draw) Text(s string) *Text {
	t := &Text{
		opts:  DefaultPolygonOptions(),
		state: d.state,
		text:  d.state.Intermediary.appendText(s),
	}
	d.record(t)
	return t
}

// Kind implements Primitive.
func (*Text) Kind() Kind { return KindText }

// FontSize sets the font size in draw units.
func (t *Text) FontSize(size float32) *Text {
	t.layout.Size = size
	return t
}

// Font sets the font. Nil selects the default font.
func (t *Text) Font(f *text.Font) *Text {
	t.layout.Font = f
	return t
}

// Align sets the horizontal alignment of lines.
func (t *Text) Align(a text.Align) *Text {
	t.layout.Align = a
	return t
}

// LineSpacing sets extra space between lines.
func (t *Text) LineSpacing(s float32) *Text {
	t.layout.LineSpacing = s
	return t
}

// Color sets the text color.
func (t *Text) Color(c Color) *Text {
	t.opts.setFill(c)
	return t
}

// GlyphColors colors glyphs individually, in layout order.
func (t *Text) GlyphColors(colors ...Color) *Text {
	t.glyphColors = t.state.Intermediary.appendColors(colors)
	return t
}

// XY sets the center.
func (t *Text) XY(x, y float32) *Text {
	t.opts.Position.X, t.opts.Position.Y = x, y
	return t
}

// XYZ sets the center in 3D.
func (t *Text) XYZ(p geom.Vec3) *Text {
	t.opts.Position = p
	return t
}

// Rotate sets the rotation about the Z axis.
func (t *Text) Rotate(radians float32) *Text {
	t.opts.Orientation.Z = radians
	return t
}

// Render implements Primitive.
func (t *Text) Render(ctx RenderContext, r PrimitiveRenderer) {
	in := ctx.Intermediary
	s := in.TextRange(t.text)
	if s == "" {
		return
	}
	c := ctx.Theme.ResolveColor(t.opts.FillColor, KindText, RoleFill)
	run := TextRun{Text: s, Layout: t.layout}
	r.Text(ctx.Transform(t.opts.LocalTransform()), run, c, in.ColorList(t.glyphColors))
}
