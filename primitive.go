package draw

import (
	"strings"

	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/path"
	"github.com/gogpu/draw/tess"
)

// Kind identifies a primitive type. The theme keys default colors by Kind.
type Kind uint8

const (
	KindEllipse Kind = iota
	KindLine
	KindMesh
	KindPath
	KindPolygon
	KindQuad
	KindRect
	KindText
	KindTexture
	KindTri
)

var kindNames = [...]string{
	KindEllipse: "ellipse",
	KindLine:    "line",
	KindMesh:    "mesh",
	KindPath:    "path",
	KindPolygon: "polygon",
	KindQuad:    "quad",
	KindRect:    "rect",
	KindText:    "text",
	KindTexture: "texture",
	KindTri:     "tri",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind returns the Kind named s, case-insensitively.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(s)
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// Role is the part of a primitive a color applies to.
type Role uint8

const (
	RoleFill Role = iota
	RoleStroke
)

// String returns "fill" or "stroke".
func (r Role) String() string {
	if r == RoleStroke {
		return "stroke"
	}
	return "fill"
}

// ColoredPoint is a 2D point with its own color.
type ColoredPoint struct {
	Point geom.Vec2
	Color Color
}

// TexturedPoint is a 2D point with texture coordinates.
// Texture coordinates grow downward: (0, 0) is the top-left texel.
type TexturedPoint struct {
	Point    geom.Vec2
	TexCoord geom.Vec2
}

// TextureHandle identifies a texture owned by the caller. Renderers that
// sample textures receive it through the TextureBinder interface.
type TextureHandle interface {
	Size() (width, height uint32)
}

// Primitive is a recorded drawing primitive.
type Primitive interface {
	Kind() Kind

	// Render emits the primitive to r. The transform handed to r is the
	// context transform composed with the primitive's local transform.
	Render(ctx RenderContext, r PrimitiveRenderer)
}

// RenderContext is the read-only view handed to Primitive.Render.
// It is only valid during replay.
type RenderContext struct {
	Intermediary *Intermediary
	Theme        *Theme
	Context      Context

	scratch *scratch
}

// scratch holds buffers reused by primitives that compute geometry at
// render time. Renderers must not retain slices passed to them.
type scratch struct {
	events  []path.Event
	colored []ColoredPoint
	tex     []TexturedPoint
	points  []geom.Vec2
}

func (ctx RenderContext) buffers() *scratch {
	if ctx.scratch == nil {
		return &scratch{}
	}
	return ctx.scratch
}

// Transform returns the context transform composed with local.
func (ctx RenderContext) Transform(local geom.Mat4) geom.Mat4 {
	return ctx.Context.Transform.Mul(local)
}

// PolygonOptions holds the spatial, color and stroke properties shared by
// polygon-like primitives.
type PolygonOptions struct {
	Position    geom.Vec3
	Orientation geom.Vec3 // Euler angles in radians, applied X then Y then Z
	NoFill      bool
	FillColor   *Color
	StrokeColor *Color
	Fill        tess.FillOptions
	Stroke      *tess.StrokeOptions // nil disables the stroke
}

// DefaultPolygonOptions returns filled, unstroked options at the origin.
func DefaultPolygonOptions() PolygonOptions {
	return PolygonOptions{Fill: tess.DefaultFillOptions()}
}

// LocalTransform returns translation(Position) × rotation(Orientation).
func (o *PolygonOptions) LocalTransform() geom.Mat4 {
	if o.Orientation.IsZero() {
		return geom.Translation(o.Position)
	}
	return geom.Translation(o.Position).Mul(geom.RotationEuler(o.Orientation))
}

func (o *PolygonOptions) setFill(c Color) {
	o.FillColor = &c
}

func (o *PolygonOptions) setStroke(c Color) {
	o.StrokeColor = &c
	o.ensureStroke()
}

func (o *PolygonOptions) ensureStroke() *tess.StrokeOptions {
	if o.Stroke == nil {
		s := tess.DefaultStrokeOptions()
		o.Stroke = &s
	}
	return o.Stroke
}

func appendPolygonEvents(dst []path.Event, points []geom.Vec2, closed bool) []path.Event {
	b := path.NewBuilderWith(dst)
	b.Polygon(points, closed)
	return b.Build()
}

// renderEvents fills then strokes events.
func renderEvents(ctx RenderContext, r PrimitiveRenderer, o *PolygonOptions, kind Kind, events []path.Event) {
	if len(events) == 0 {
		return
	}
	t := ctx.Transform(o.LocalTransform())
	if !o.NoFill {
		c := ctx.Theme.ResolveColor(o.FillColor, kind, RoleFill)
		r.PathFlatColor(t, events, c, kind, tess.Fill(o.Fill))
	}
	if o.Stroke != nil {
		c := ctx.Theme.ResolveColor(o.StrokeColor, kind, RoleStroke)
		r.PathFlatColor(t, events, c, kind, tess.Stroke(*o.Stroke))
	}
}

// renderColored fills then strokes points carrying their own colors.
func renderColored(ctx RenderContext, r PrimitiveRenderer, o *PolygonOptions, points []ColoredPoint, closed bool) {
	if len(points) == 0 {
		return
	}
	t := ctx.Transform(o.LocalTransform())
	if !o.NoFill {
		r.PathColoredPoints(t, points, closed, tess.Fill(o.Fill))
	}
	if o.Stroke != nil {
		r.PathColoredPoints(t, points, closed, tess.Stroke(*o.Stroke))
	}
}

// renderTextured binds texture then fills and strokes textured points.
func renderTextured(ctx RenderContext, r PrimitiveRenderer, o *PolygonOptions, texture TextureHandle, points []TexturedPoint, closed bool) {
	if len(points) == 0 {
		return
	}
	if b, ok := r.(TextureBinder); ok {
		b.BindTexture(texture)
	}
	t := ctx.Transform(o.LocalTransform())
	if !o.NoFill {
		r.PathTexturedPoints(t, points, closed, tess.Fill(o.Fill))
	}
	if o.Stroke != nil {
		r.PathTexturedPoints(t, points, closed, tess.Stroke(*o.Stroke))
	}
}
