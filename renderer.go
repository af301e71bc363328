package draw

import (
	"log/slog"

	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/mesh"
	"github.com/gogpu/draw/path"
	"github.com/gogpu/draw/tess"
	"github.com/gogpu/draw/text"
)

// PrimitiveRenderer receives the geometry of replayed primitives.
//
// Every method takes the full transform of the primitive: the context
// transform composed with the primitive's local transform. Slices are only
// valid for the duration of the call.
type PrimitiveRenderer interface {
	// PathFlatColor renders path events in a single color, filled or stroked
	// according to opts.
	PathFlatColor(t geom.Mat4, events []path.Event, color Color, kind Kind, opts tess.Options)

	// PathColoredPoints renders a polyline or polygon whose points carry
	// their own colors.
	PathColoredPoints(t geom.Mat4, points []ColoredPoint, close bool, opts tess.Options)

	// PathTexturedPoints renders a polyline or polygon whose points carry
	// texture coordinates for the currently bound texture.
	PathTexturedPoints(t geom.Mat4, points []TexturedPoint, close bool, opts tess.Options)

	// Mesh renders raw triangles. Indices are relative to vertices. A non-nil
	// fill replaces every vertex color.
	Mesh(t geom.Mat4, vertices []mesh.Vertex, indices []uint32, fill *Color)

	// Text renders a string. glyphColors, when non-empty, colors glyphs in
	// layout order; glyphs past its end use color.
	Text(t geom.Mat4, run TextRun, color Color, glyphColors []Color)
}

// ContextRenderer is implemented by renderers that track the draw context.
// Replay calls SetContext with DefaultContext before the first command and
// again for every recorded context change.
type ContextRenderer interface {
	SetContext(ctx Context)
}

// TextureBinder is implemented by renderers that sample textures. It is
// called before textured points of a texture are rendered.
type TextureBinder interface {
	BindTexture(t TextureHandle)
}

// BackgroundSetter is implemented by renderers that can clear to a
// background color. Replay calls it when the frame has a background.
type BackgroundSetter interface {
	SetBackground(c Color)
}

// TextRun is a string together with its layout.
type TextRun struct {
	Text   string
	Layout text.Layout
}

// Replay drains the command log of s and renders every primitive into r
// with the context that was current when the primitive was recorded. The
// intermediary arenas are cleared afterwards.
func Replay(s *State, r PrimitiveRenderer) {
	cmds := s.DrainCommands()

	if bg, ok := s.Background(); ok {
		if b, ok := r.(BackgroundSetter); ok {
			b.SetBackground(bg)
		}
	}

	current := DefaultContext()
	cr, tracksContext := r.(ContextRenderer)
	if tracksContext {
		cr.SetContext(current)
	}

	if s.scratch == nil {
		s.scratch = &scratch{}
	}
	rc := RenderContext{
		Intermediary: &s.Intermediary,
		Theme:        s.theme,
		scratch:      s.scratch,
	}

	var primitives, switches int
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case ContextCommand:
			current = c.Context
			switches++
			if tracksContext {
				cr.SetContext(current)
			}
		case PrimitiveCommand:
			rc.Context = current
			c.Primitive.Render(rc, r)
			primitives++
		}
	}

	s.Intermediary.Reset()

	Logger().Debug("draw: replay",
		slog.Int("commands", len(cmds)),
		slog.Int("primitives", primitives),
		slog.Int("context_switches", switches))
}
