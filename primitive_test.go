package draw

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/mesh"
	"github.com/gogpu/draw/path"
	"github.com/gogpu/draw/tess"
	"github.com/gogpu/draw/text"
)

type fakeTexture struct {
	w, h uint32
}

func (t fakeTexture) Size() (uint32, uint32) { return t.w, t.h }

// render records with fn on a fresh Draw and replays into a recorder.
func render(t *testing.T, fn func(d *Draw)) *recorder {
	t.Helper()
	d := New()
	fn(d)
	r := &recorder{}
	d.Render(r)
	return r
}

func assertPanics(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		got := recover()
		if got == nil {
			t.Fatalf("expected panic %q", want)
		}
		if got != want {
			t.Fatalf("panic = %v, want %q", got, want)
		}
	}()
	fn()
}

func nearRect(a, b geom.Rect) bool {
	return near(a.Min.X, b.Min.X) && near(a.Min.Y, b.Min.Y) &&
		near(a.Max.X, b.Max.X) && near(a.Max.Y, b.Max.Y)
}

func eventKinds(events []path.Event) []path.EventKind {
	out := make([]path.EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestKindString(t *testing.T) {
	for k := KindEllipse; k <= KindTri; k++ {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if got, ok := ParseKind("ELLIPSE"); !ok || got != KindEllipse {
		t.Errorf("ParseKind should be case-insensitive, got %v, %v", got, ok)
	}
	if _, ok := ParseKind("hexagon"); ok {
		t.Error("ParseKind accepted an unknown kind")
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Errorf("Kind(99).String() = %q", got)
	}
}

func TestEllipseDefault(t *testing.T) {
	r := render(t, func(d *Draw) { d.Ellipse() })

	if diff := cmp.Diff([]string{"PathFlatColor"}, r.methods()); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
	c := r.calls[0]
	if c.Color != White || c.Kind != KindEllipse || c.Opts.Mode != tess.ModeFill {
		t.Errorf("got color %v kind %v mode %v", c.Color, c.Kind, c.Opts.Mode)
	}
	if got, want := path.Bounds(c.Events), geom.RectFromWH(100, 100); !nearRect(got, want) {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}
	last := c.Events[len(c.Events)-1]
	if last.Kind != path.EventEnd || !last.Close {
		t.Errorf("ellipse should end closed, got %+v", last)
	}
}

func TestEllipseResolution(t *testing.T) {
	r := render(t, func(d *Draw) { d.Ellipse().Radius(10).Resolution(8) })

	events := r.calls[0].Events
	if len(events) != 9 {
		t.Fatalf("got %d events, want Begin + 7 lines + End", len(events))
	}
	for i, p := range path.Points(events) {
		if d := p.Length(); !near(d, 10) {
			t.Errorf("point %d at distance %v, want 10", i, d)
		}
	}
}

func TestEllipseSection(t *testing.T) {
	t.Run("curves", func(t *testing.T) {
		r := render(t, func(d *Draw) { d.Ellipse().Section(0, math.Pi/2) })
		events := r.calls[0].Events
		if events[0].Kind != path.EventBegin || events[0].To != (geom.Vec2{}) {
			t.Errorf("section should start at the center, got %+v", events[0])
		}
		want := geom.Rect{Max: geom.V2(50, 50)}
		if got := path.Bounds(events); !nearRect(got, want) {
			t.Errorf("bounds = %+v, want %+v", got, want)
		}
	})

	t.Run("resolution", func(t *testing.T) {
		r := render(t, func(d *Draw) { d.Ellipse().Section(0, math.Pi).Resolution(4) })
		events := r.calls[0].Events
		// Begin at the center, five arc points, End.
		if len(events) != 7 {
			t.Fatalf("got %d events, want 7", len(events))
		}
		pts := path.Points(events)
		if pts[0] != (geom.Vec2{}) {
			t.Errorf("first point = %v, want origin", pts[0])
		}
		if p := pts[len(pts)-1]; !near(p.X, -50) || !near(p.Y, 0) {
			t.Errorf("last point = %v, want (-50, 0)", p)
		}
	})

	t.Run("full turn", func(t *testing.T) {
		r := render(t, func(d *Draw) { d.Ellipse().Section(1, 2*math.Pi) })
		if events := r.calls[0].Events; events[0].To == (geom.Vec2{}) {
			t.Error("a full-turn section should draw the whole ellipse")
		}
	})
}

func TestEllipseZeroRadius(t *testing.T) {
	r := render(t, func(d *Draw) { d.Ellipse().WH(0, 10) })
	if len(r.calls) != 0 {
		t.Errorf("zero-width ellipse produced %d calls", len(r.calls))
	}
}

func TestEllipseDepthPanics(t *testing.T) {
	d := New()
	d.Ellipse().WHD(10, 10, 1)
	assertPanics(t, "draw: ellipse does not support a z dimension", func() {
		d.Render(&recorder{})
	})
}

func TestEllipseFillThenStroke(t *testing.T) {
	r := render(t, func(d *Draw) { d.Ellipse().Color(Blue).Stroke(Red).StrokeWeight(4) })

	if diff := cmp.Diff([]string{"PathFlatColor", "PathFlatColor"}, r.methods()); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
	fill, stroke := r.calls[0], r.calls[1]
	if fill.Opts.Mode != tess.ModeFill || fill.Color != Blue {
		t.Errorf("fill call: mode %v color %v", fill.Opts.Mode, fill.Color)
	}
	if stroke.Opts.Mode != tess.ModeStroke || stroke.Color != Red || stroke.Opts.Stroke.LineWidth != 4 {
		t.Errorf("stroke call: mode %v color %v width %v", stroke.Opts.Mode, stroke.Color, stroke.Opts.Stroke.LineWidth)
	}
}

func TestRectCorners(t *testing.T) {
	r := render(t, func(d *Draw) { d.Rect().WH(20, 10).XY(5, 5).Color(Yellow) })

	c := r.calls[0]
	if c.Color != Yellow || c.Kind != KindRect {
		t.Errorf("got color %v kind %v", c.Color, c.Kind)
	}
	want := []geom.Vec2{{X: -10, Y: 5}, {X: -10, Y: -5}, {X: 10, Y: -5}, {X: 10, Y: 5}}
	if diff := cmp.Diff(want, path.Points(c.Events)); diff != "" {
		t.Errorf("corners mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(geom.Translation(geom.V3(5, 5, 0)), c.T); diff != "" {
		t.Errorf("transform mismatch (-want +got):\n%s", diff)
	}
}

func TestRectDepthPanics(t *testing.T) {
	d := New()
	d.Rect().WHD(10, 10, 2)
	assertPanics(t, "draw: rect does not support a z dimension", func() {
		d.Render(&recorder{})
	})
}

func TestRectNoFillStroke(t *testing.T) {
	r := render(t, func(d *Draw) { d.Rect().NoFill().StrokeWeight(2) })

	if len(r.calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(r.calls))
	}
	c := r.calls[0]
	if c.Opts.Mode != tess.ModeStroke || c.Color != Black {
		t.Errorf("stroke call: mode %v color %v", c.Opts.Mode, c.Color)
	}
}

func TestQuadRescale(t *testing.T) {
	r := render(t, func(d *Draw) { d.Quad().WH(10, 20) })

	got := geom.BoundingRect(path.Points(r.calls[0].Events))
	if want := geom.RectFromWH(10, 20); !nearRect(got, want) {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}
}

func TestQuadColored(t *testing.T) {
	pts := []ColoredPoint{
		{Point: geom.V2(0, 0), Color: Red},
		{Point: geom.V2(10, 0), Color: Green},
		{Point: geom.V2(10, 10), Color: Blue},
		{Point: geom.V2(0, 10), Color: White},
	}
	r := render(t, func(d *Draw) { d.Quad().PointsColored(pts[0], pts[1], pts[2], pts[3]) })

	c := r.calls[0]
	if c.Method != "PathColoredPoints" || !c.Close {
		t.Fatalf("got %s close=%v", c.Method, c.Close)
	}
	if diff := cmp.Diff(pts, c.Colored); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestTriDefaults(t *testing.T) {
	d := New()
	d.Theme().SetFill(KindTri, Cyan)
	d.Tri()
	r := &recorder{}
	d.Render(r)

	c := r.calls[0]
	if c.Color != Cyan {
		t.Errorf("tri fill = %v, want theme cyan", c.Color)
	}
	want := []geom.Vec2{{X: -50, Y: -50}, {X: 50, Y: -50}, {X: 0, Y: 50}}
	if diff := cmp.Diff(want, path.Points(c.Events)); diff != "" {
		t.Errorf("corners mismatch (-want +got):\n%s", diff)
	}
}

func TestLine(t *testing.T) {
	t.Run("zero length", func(t *testing.T) {
		r := render(t, func(d *Draw) { d.Line().Points(geom.V2(3, 3), geom.V2(3, 3)) })
		if len(r.calls) != 0 {
			t.Errorf("zero-length line produced %d calls", len(r.calls))
		}
	})

	t.Run("stroked", func(t *testing.T) {
		r := render(t, func(d *Draw) {
			d.Line().Points(geom.V2(0, 0), geom.V2(10, 0)).Weight(3).Caps(tess.LineCapRound)
		})
		if len(r.calls) != 1 {
			t.Fatalf("got %d calls, want 1", len(r.calls))
		}
		c := r.calls[0]
		if c.Opts.Mode != tess.ModeStroke || c.Color != Black || c.Kind != KindLine {
			t.Errorf("got mode %v color %v kind %v", c.Opts.Mode, c.Color, c.Kind)
		}
		if c.Opts.Stroke.LineWidth != 3 || c.Opts.Stroke.StartCap != tess.LineCapRound {
			t.Errorf("stroke options = %+v", c.Opts.Stroke)
		}
		want := []path.Event{
			path.Begin(geom.V2(0, 0)),
			path.Line(geom.V2(0, 0), geom.V2(10, 0)),
			path.End(geom.V2(10, 0), geom.V2(0, 0), false),
		}
		if diff := cmp.Diff(want, c.Events); diff != "" {
			t.Errorf("events mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("color", func(t *testing.T) {
		r := render(t, func(d *Draw) { d.Line().End(geom.V2(1, 1)).Color(Magenta) })
		if r.calls[0].Color != Magenta {
			t.Errorf("line color = %v, want magenta", r.calls[0].Color)
		}
	})
}

func TestPolygon(t *testing.T) {
	tri := []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}

	t.Run("points", func(t *testing.T) {
		r := render(t, func(d *Draw) { d.Polygon().Points(tri...).Stroke(Red) })
		if diff := cmp.Diff([]string{"PathFlatColor", "PathFlatColor"}, r.methods()); diff != "" {
			t.Fatalf("calls mismatch (-want +got):\n%s", diff)
		}
		want := []path.EventKind{path.EventBegin, path.EventLine, path.EventLine, path.EventEnd}
		if diff := cmp.Diff(want, eventKinds(r.calls[0].Events)); diff != "" {
			t.Errorf("event kinds mismatch (-want +got):\n%s", diff)
		}
		if !r.calls[0].Events[3].Close {
			t.Error("polygon should be closed")
		}
		if r.calls[0].Opts.Mode != tess.ModeFill || r.calls[1].Opts.Mode != tess.ModeStroke {
			t.Error("fill should be rendered before stroke")
		}
	})

	t.Run("empty", func(t *testing.T) {
		r := render(t, func(d *Draw) { d.Polygon() })
		if len(r.calls) != 0 {
			t.Errorf("empty polygon produced %d calls", len(r.calls))
		}
	})

	t.Run("svg", func(t *testing.T) {
		var err error
		r := render(t, func(d *Draw) { _, err = d.Polygon().SVG("M0 0 L10 0 L10 10 Z") })
		if err != nil {
			t.Fatalf("SVG: %v", err)
		}
		want := geom.Rect{Max: geom.V2(10, 10)}
		if got := path.Bounds(r.calls[0].Events); got != want {
			t.Errorf("bounds = %+v, want %+v", got, want)
		}
	})

	t.Run("invalid svg", func(t *testing.T) {
		d := New()
		if _, err := d.Polygon().SVG("M0 0 X"); err == nil {
			t.Error("expected an error for invalid path data")
		}
	})

	t.Run("colored", func(t *testing.T) {
		pts := []ColoredPoint{{Point: tri[0], Color: Red}, {Point: tri[1], Color: Green}, {Point: tri[2], Color: Blue}}
		r := render(t, func(d *Draw) { d.Polygon().PointsColored(pts...) })
		if c := r.calls[0]; c.Method != "PathColoredPoints" || !c.Close || len(c.Colored) != 3 {
			t.Errorf("got %s close=%v points=%d", c.Method, c.Close, len(c.Colored))
		}
	})
}

func TestPathModes(t *testing.T) {
	line := []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}

	t.Run("fill by default", func(t *testing.T) {
		r := render(t, func(d *Draw) { d.Path().Points(line...) })
		c := r.calls[0]
		if len(r.calls) != 1 || c.Opts.Mode != tess.ModeFill || c.Kind != KindPath {
			t.Fatalf("got %d calls, mode %v kind %v", len(r.calls), c.Opts.Mode, c.Kind)
		}
		if c.Events[len(c.Events)-1].Close {
			t.Error("path points should be open")
		}
	})

	t.Run("stroke", func(t *testing.T) {
		r := render(t, func(d *Draw) { d.Path().Stroke().Color(Red).Points(line...) })
		if len(r.calls) != 1 {
			t.Fatalf("got %d calls, want 1", len(r.calls))
		}
		if c := r.calls[0]; c.Opts.Mode != tess.ModeStroke || c.Color != Red {
			t.Errorf("got mode %v color %v", c.Opts.Mode, c.Color)
		}
	})

	t.Run("weight switches to stroke", func(t *testing.T) {
		r := render(t, func(d *Draw) { d.Path().Points(line...).Weight(5).Join(tess.LineJoinRound) })
		c := r.calls[0]
		if c.Opts.Mode != tess.ModeStroke || c.Opts.Stroke.LineWidth != 5 || c.Opts.Stroke.LineJoin != tess.LineJoinRound {
			t.Errorf("got mode %v stroke %+v", c.Opts.Mode, c.Opts.Stroke)
		}
	})

	closeTests := []struct {
		name string
		fn   func(d *Draw)
	}{
		{"close before points", func(d *Draw) { d.Path().Close().Points(line...) }},
		{"close after points", func(d *Draw) { d.Path().Points(line...).Close() }},
		{"close after stroke points", func(d *Draw) { d.Path().Stroke().Points(line...).Close() }},
		{"close after svg", func(d *Draw) {
			p, _ := d.Path().SVG("M0 0 L10 0 L10 10 M20 0 L30 0 L30 10")
			p.Close()
		}},
	}
	for _, tt := range closeTests {
		t.Run(tt.name, func(t *testing.T) {
			r := render(t, tt.fn)
			var ends int
			for _, e := range r.calls[0].Events {
				if e.Kind != path.EventEnd {
					continue
				}
				ends++
				if !e.Close {
					t.Error("Close should close every subpath")
				}
			}
			if ends == 0 {
				t.Error("no subpath recorded")
			}
		})
	}

	t.Run("close colored points", func(t *testing.T) {
		r := render(t, func(d *Draw) {
			d.Path().PointsColored(
				ColoredPoint{Point: geom.V2(0, 0), Color: Red},
				ColoredPoint{Point: geom.V2(1, 0), Color: Green},
				ColoredPoint{Point: geom.V2(0, 1), Color: Blue},
			).Close()
		})
		if c := r.calls[0]; c.Method != "PathColoredPoints" || !c.Close {
			t.Errorf("got %s close=%v", c.Method, c.Close)
		}
	})

	t.Run("back to fill", func(t *testing.T) {
		r := render(t, func(d *Draw) { d.Path().Weight(2).Fill().Points(line...) })
		if len(r.calls) != 1 || r.calls[0].Opts.Mode != tess.ModeFill {
			t.Errorf("Fill should drop the stroke, got %v", r.methods())
		}
	})
}

func TestTextureUV(t *testing.T) {
	tex := fakeTexture{w: 64, h: 32}
	r := render(t, func(d *Draw) { d.Texture(tex) })

	if len(r.textures) != 1 || r.textures[0] != tex {
		t.Fatalf("bound textures = %v", r.textures)
	}
	c := r.calls[0]
	if c.Method != "PathTexturedPoints" || !c.Close {
		t.Fatalf("got %s close=%v", c.Method, c.Close)
	}
	want := []TexturedPoint{
		{Point: geom.V2(-32, 16), TexCoord: geom.V2(0, 0)},
		{Point: geom.V2(-32, -16), TexCoord: geom.V2(0, 1)},
		{Point: geom.V2(32, -16), TexCoord: geom.V2(1, 1)},
		{Point: geom.V2(32, 16), TexCoord: geom.V2(1, 0)},
	}
	if diff := cmp.Diff(want, c.Textured); diff != "" {
		t.Errorf("textured points mismatch (-want +got):\n%s", diff)
	}
}

func TestTextureArea(t *testing.T) {
	area := geom.Rect{Min: geom.V2(0.5, 0), Max: geom.V2(1, 0.5)}
	r := render(t, func(d *Draw) { d.Texture(fakeTexture{w: 8, h: 8}).WH(10, 10).Area(area) })

	pts := r.calls[0].Textured
	if pts[0].TexCoord != geom.V2(0.5, 0) || pts[2].TexCoord != geom.V2(1, 0.5) {
		t.Errorf("texture coordinates = %v, %v", pts[0].TexCoord, pts[2].TexCoord)
	}
	if pts[0].Point != geom.V2(-5, 5) {
		t.Errorf("top-left = %v, want (-5, 5)", pts[0].Point)
	}
}

func TestMesh(t *testing.T) {
	a, b, c := geom.V3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 0)

	t.Run("points", func(t *testing.T) {
		r := render(t, func(d *Draw) { d.Mesh().Points(a, b, c, a) })
		call := r.calls[0]
		if diff := cmp.Diff([]uint32{0, 1, 2}, call.Indices); diff != "" {
			t.Errorf("indices mismatch (-want +got):\n%s", diff)
		}
		if call.Fill == nil || *call.Fill != White {
			t.Errorf("uncolored mesh fill = %v, want theme white", call.Fill)
		}
	})

	t.Run("vertices keep their colors", func(t *testing.T) {
		vs := []mesh.Vertex{{Point: a.Array()}, {Point: b.Array()}, {Point: c.Array()}}
		r := render(t, func(d *Draw) { d.Mesh().Vertices(vs...) })
		if r.calls[0].Fill != nil {
			t.Errorf("colored mesh fill = %v, want nil", r.calls[0].Fill)
		}
		if len(r.calls[0].Vertices) != 3 {
			t.Errorf("got %d vertices", len(r.calls[0].Vertices))
		}
	})

	t.Run("color override", func(t *testing.T) {
		r := render(t, func(d *Draw) { d.Mesh().Tris([3]geom.Vec3{a, b, c}).Color(Red) })
		if f := r.calls[0].Fill; f == nil || *f != Red {
			t.Errorf("fill = %v, want red", f)
		}
	})

	t.Run("textured", func(t *testing.T) {
		tex := fakeTexture{w: 4, h: 4}
		vs := []mesh.Vertex{{Point: a.Array()}, {Point: b.Array()}, {Point: c.Array()}}
		r := render(t, func(d *Draw) { d.Mesh().Textured(tex, vs, []uint32{0, 1, 2}) })
		if len(r.textures) != 1 || r.textures[0] != tex {
			t.Errorf("bound textures = %v", r.textures)
		}
	})

	t.Run("empty", func(t *testing.T) {
		r := render(t, func(d *Draw) { d.Mesh() })
		if len(r.calls) != 0 {
			t.Errorf("empty mesh produced %d calls", len(r.calls))
		}
	})
}

func TestText(t *testing.T) {
	r := render(t, func(d *Draw) {
		d.Text("hello").FontSize(20).Align(text.AlignLeft).Color(Red).GlyphColors(Blue, Green).XY(3, 4)
	})

	c := r.calls[0]
	if c.Method != "Text" || c.Run.Text != "hello" || c.Color != Red {
		t.Fatalf("got %s %q %v", c.Method, c.Run.Text, c.Color)
	}
	if c.Run.Layout.Size != 20 || c.Run.Layout.Align != text.AlignLeft {
		t.Errorf("layout = %+v", c.Run.Layout)
	}
	if diff := cmp.Diff([]Color{Blue, Green}, c.GlyphColors); diff != "" {
		t.Errorf("glyph colors mismatch (-want +got):\n%s", diff)
	}
	if c.T[3] != 3 || c.T[7] != 4 {
		t.Errorf("translation = (%v, %v), want (3, 4)", c.T[3], c.T[7])
	}
}

func TestTextDefaults(t *testing.T) {
	r := render(t, func(d *Draw) {
		d.Text("")
		d.Text("a\nb")
	})
	if len(r.calls) != 1 {
		t.Fatalf("got %d calls, want 1 (empty text draws nothing)", len(r.calls))
	}
	if c := r.calls[0]; c.Color != White || len(c.GlyphColors) != 0 {
		t.Errorf("got color %v glyph colors %v", c.Color, c.GlyphColors)
	}
}

func TestScratchNotShared(t *testing.T) {
	// Primitives computing geometry at render time reuse scratch buffers;
	// the recorder clones, so each call must still see its own corners.
	r := render(t, func(d *Draw) {
		d.Rect().WH(2, 2)
		d.Rect().WH(4, 4)
	})
	b0 := path.Bounds(r.calls[0].Events)
	b1 := path.Bounds(r.calls[1].Events)
	if b0.W() != 2 || b1.W() != 4 {
		t.Errorf("widths = %v, %v; want 2, 4", b0.W(), b1.W())
	}
}
