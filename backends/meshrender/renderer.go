// Package meshrender provides the mesh-buffer backend for draw.
// It tessellates replayed primitives into a single mesh.Mesh and records
// render commands describing which index ranges to draw with which GPU
// state.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/draw/backends/meshrender"
//
//	// Create via registry
//	backend, _ := draw.NewBackend("mesh")
//
//	// Or create directly
//	r := meshrender.New()
//	d.Render(r)
//	upload(r.Geometry(), r.Commands())
package meshrender

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/draw"
	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/mesh"
	"github.com/gogpu/draw/path"
	"github.com/gogpu/draw/tess"
	"github.com/gogpu/draw/text"
)

func init() {
	draw.Register("mesh", func() draw.Backend {
		return New()
	})
}

// Stats summarizes the geometry produced since the last Reset.
type Stats struct {
	Vertices int
	Indices  int
	Draws    int
	Skipped  int // primitives dropped because tessellation failed
}

// Renderer tessellates primitives into a mesh.
//
// Texture handles are compared with ==, so their dynamic types must be
// comparable. Renderer is not safe for concurrent use.
type Renderer struct {
	mesh   *mesh.Mesh
	fill   *tess.FillTessellator
	stroke *tess.StrokeTessellator
	shaper *text.Shaper

	commands  []RenderCommand
	ctx       draw.Context
	hasCtx    bool
	texture   draw.TextureHandle
	drawStart uint32
	skipped   int
	logged    bool

	points []geom.Vec2
	attrs  []float32
	glyphs []path.Event
}

// Ensure Renderer implements the optional renderer interfaces.
var (
	_ draw.Backend          = (*Renderer)(nil)
	_ draw.ContextRenderer  = (*Renderer)(nil)
	_ draw.TextureBinder    = (*Renderer)(nil)
	_ draw.BackgroundSetter = (*Renderer)(nil)
)

// New creates a renderer with an empty mesh.
func New() *Renderer {
	return &Renderer{
		mesh:   mesh.New(),
		fill:   tess.NewFillTessellator(),
		stroke: tess.NewStrokeTessellator(),
		shaper: text.NewShaper(),
	}
}

// Geometry returns the mesh primitives are tessellated into.
func (r *Renderer) Geometry() *mesh.Mesh {
	return r.mesh
}

// Commands ends the pending draw range and returns the render commands.
func (r *Renderer) Commands() []RenderCommand {
	r.flush()
	if !r.logged {
		st := r.Stats()
		draw.Logger().Debug("meshrender: frame",
			slog.Int("vertices", st.Vertices),
			slog.Int("indices", st.Indices),
			slog.Int("draws", st.Draws),
			slog.Int("skipped", st.Skipped))
		r.logged = true
	}
	return r.commands
}

// Stats returns the geometry statistics of the current frame.
func (r *Renderer) Stats() Stats {
	st := Stats{
		Vertices: r.mesh.CountVertices(),
		Indices:  r.mesh.CountIndices(),
		Skipped:  r.skipped,
	}
	for _, c := range r.commands {
		if c.Type() == CmdDrawIndexed {
			st.Draws++
		}
	}
	if uint32(st.Indices) > r.drawStart {
		st.Draws++
	}
	return st
}

// Reset clears the mesh and the commands, keeping allocated capacity.
func (r *Renderer) Reset() {
	r.mesh.Clear()
	r.commands = r.commands[:0]
	r.hasCtx = false
	r.texture = nil
	r.drawStart = 0
	r.skipped = 0
	r.logged = false
}

// SetBackground implements draw.BackgroundSetter.
func (r *Renderer) SetBackground(c draw.Color) {
	r.flush()
	r.push(Clear{Color: c.GPU()})
}

// SetContext implements draw.ContextRenderer. The first context emits every
// state command; later ones emit only what changed. The transform is baked
// into vertex positions and never produces a command.
func (r *Renderer) SetContext(ctx draw.Context) {
	prev, first := r.ctx, !r.hasCtx
	r.ctx, r.hasCtx = ctx, true
	if !first && stateEqual(ctx, prev) {
		return
	}
	r.flush()
	if first || ctx.Blend != prev.Blend {
		r.push(SetBlend{Blend: ctx.Blend})
	}
	if first || ctx.Scissor != prev.Scissor {
		r.push(SetScissor{Scissor: ctx.Scissor})
	}
	if first || ctx.Topology != prev.Topology {
		r.push(SetTopology{Topology: ctx.Topology})
	}
	if first || ctx.Sampler != prev.Sampler {
		r.push(SetSampler{Sampler: ctx.Sampler})
	}
}

func stateEqual(a, b draw.Context) bool {
	a.Transform = b.Transform
	return a == b
}

// BindTexture implements draw.TextureBinder.
func (r *Renderer) BindTexture(t draw.TextureHandle) {
	if t == r.texture {
		return
	}
	r.flush()
	r.texture = t
	r.push(SetTexture{Texture: t})
}

func (r *Renderer) push(c RenderCommand) {
	r.commands = append(r.commands, c)
	r.logged = false
}

// flush closes the index range drawn since the last state change.
func (r *Renderer) flush() {
	end := uint32(r.mesh.CountIndices())
	if end == r.drawStart {
		return
	}
	r.push(DrawIndexed{Start: r.drawStart, End: end})
	r.drawStart = end
}

// skip logs a primitive that could not be tessellated.
func (r *Renderer) skip(what string, err error) {
	r.skipped++
	draw.Logger().Warn("meshrender: primitive skipped",
		slog.String("primitive", what),
		slog.String("error", err.Error()))
}

// PathFlatColor implements draw.PrimitiveRenderer.
func (r *Renderer) PathFlatColor(t geom.Mat4, events []path.Event, color draw.Color, kind draw.Kind, opts tess.Options) {
	b := mesh.NewGeometryBuilder(r.mesh, t, mesh.SingleColor{Color: color.Vec4()})
	var err error
	if opts.Mode == tess.ModeStroke {
		err = r.stroke.TessellatePath(events, opts.Stroke, b)
	} else {
		err = r.fill.TessellatePath(events, opts.Fill, b)
	}
	if err != nil {
		r.skip(kind.String(), err)
	}
}

// PathColoredPoints implements draw.PrimitiveRenderer.
func (r *Renderer) PathColoredPoints(t geom.Mat4, points []draw.ColoredPoint, close bool, opts tess.Options) {
	r.points = r.points[:0]
	r.attrs = r.attrs[:0]
	for _, p := range points {
		r.points = append(r.points, p.Point)
		r.attrs = append(r.attrs, p.Color.R, p.Color.G, p.Color.B, p.Color.A)
	}
	poly := tess.Polygon{
		Points:        r.points,
		Attributes:    r.attrs,
		NumAttributes: mesh.ColorAttributes,
		Closed:        close,
	}
	r.polygon(t, poly, mesh.ColorPerPoint{}, opts, "colored points")
}

// PathTexturedPoints implements draw.PrimitiveRenderer.
func (r *Renderer) PathTexturedPoints(t geom.Mat4, points []draw.TexturedPoint, close bool, opts tess.Options) {
	r.points = r.points[:0]
	r.attrs = r.attrs[:0]
	for _, p := range points {
		r.points = append(r.points, p.Point)
		r.attrs = append(r.attrs, p.TexCoord.X, p.TexCoord.Y)
	}
	poly := tess.Polygon{
		Points:        r.points,
		Attributes:    r.attrs,
		NumAttributes: mesh.TexCoordAttributes,
		Closed:        close,
	}
	r.polygon(t, poly, mesh.TexCoordsPerPoint{}, opts, "textured points")
}

func (r *Renderer) polygon(t geom.Mat4, poly tess.Polygon, mode mesh.VertexMode, opts tess.Options, what string) {
	b := mesh.NewGeometryBuilder(r.mesh, t, mode)
	var err error
	if opts.Mode == tess.ModeStroke {
		err = r.stroke.TessellatePolygon(poly, opts.Stroke, b)
	} else {
		err = r.fill.TessellatePolygon(poly, opts.Fill, b)
	}
	if err != nil {
		r.skip(what, err)
	}
}

// Mesh implements draw.PrimitiveRenderer. Vertices are transformed and the
// indices offset into the shared mesh; the winding is kept as given.
func (r *Renderer) Mesh(t geom.Mat4, vertices []mesh.Vertex, indices []uint32, fill *draw.Color) {
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			panic(fmt.Sprintf("meshrender: mesh index %d at %d out of range [0, %d)", idx, i, len(vertices)))
		}
	}
	base := uint32(r.mesh.CountVertices())
	for _, v := range vertices {
		p := t.TransformPoint(geom.Vec3{X: v.Point[0], Y: v.Point[1], Z: v.Point[2]})
		c := v.Color
		if fill != nil {
			c = fill.Vec4()
		}
		r.mesh.PushVertex(p.Array(), c, v.TexCoord, mesh.Normal2D)
	}
	for _, idx := range indices {
		r.mesh.PushIndex(base + idx)
	}
}

// glyphFill is the fill used for glyph outlines, which wind by the
// non-zero rule.
var glyphFill = tess.DefaultFillOptions().WithFillRule(tess.FillRuleNonZero)

// Text implements draw.PrimitiveRenderer. Each glyph outline is filled
// separately so glyphs can be colored individually.
func (r *Renderer) Text(t geom.Mat4, run draw.TextRun, color draw.Color, glyphColors []draw.Color) {
	shaped := r.shaper.Layout(run.Text, run.Layout)
	for i, g := range shaped.Glyphs {
		var err error
		r.glyphs, err = shaped.Font.AppendGlyphPath(r.glyphs[:0], g.ID, g.Origin, shaped.Size)
		if errors.Is(err, text.ErrNoOutline) {
			continue
		}
		if err != nil {
			r.skip("text", err)
			continue
		}
		if len(r.glyphs) == 0 {
			continue
		}
		c := color
		if i < len(glyphColors) {
			c = glyphColors[i]
		}
		b := mesh.NewGeometryBuilder(r.mesh, t, mesh.SingleColor{Color: c.Vec4()})
		if err := r.fill.TessellatePath(r.glyphs, glyphFill, b); err != nil {
			r.skip("text", err)
		}
	}
}
