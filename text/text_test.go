package text

import (
	"math"
	"testing"

	"github.com/go-text/typesetting/di"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/path"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestDefaultFont(t *testing.T) {
	f := DefaultFont()
	if f == nil {
		t.Fatal("DefaultFont() = nil")
	}
	if f != DefaultFont() {
		t.Error("DefaultFont() should return the shared instance")
	}
	if f.Upem() <= 0 {
		t.Errorf("Upem() = %v, want > 0", f.Upem())
	}
	m := f.Metrics(16)
	if m.Ascent <= 0 || m.Descent >= 0 {
		t.Errorf("Metrics(16) = %+v, want positive ascent and negative descent", m)
	}
	if m.LineHeight() < m.Ascent-m.Descent {
		t.Errorf("LineHeight() = %v, want >= %v", m.LineHeight(), m.Ascent-m.Descent)
	}
}

func TestParseFontInvalid(t *testing.T) {
	if _, err := ParseFont([]byte("not a font")); err == nil {
		t.Error("ParseFont(garbage) should fail")
	}
}

func TestLayoutSingleLine(t *testing.T) {
	sh := NewShaper()
	got := sh.Layout("Hello", Layout{Size: 16})

	if got.Lines != 1 {
		t.Errorf("Lines = %d, want 1", got.Lines)
	}
	if len(got.Glyphs) != 5 {
		t.Fatalf("len(Glyphs) = %d, want 5", len(got.Glyphs))
	}
	for i, g := range got.Glyphs {
		if g.Rune != i {
			t.Errorf("glyph %d: Rune = %d, want %d", i, g.Rune, i)
		}
		if g.Advance <= 0 {
			t.Errorf("glyph %d: Advance = %v, want > 0", i, g.Advance)
		}
		if i > 0 && g.Origin.X <= got.Glyphs[i-1].Origin.X {
			t.Errorf("glyph %d: X = %v, want > %v", i, g.Origin.X, got.Glyphs[i-1].Origin.X)
		}
	}
	if !approx(got.Bounds.Min.X, -got.Bounds.Max.X) {
		t.Errorf("Bounds = %+v, want horizontally centered", got.Bounds)
	}
	if !approx(got.Bounds.Min.Y, -got.Bounds.Max.Y) {
		t.Errorf("Bounds = %+v, want vertically centered", got.Bounds)
	}
	if got.Glyphs[0].Origin.X < got.Bounds.Min.X-1e-3 {
		t.Errorf("first glyph X = %v, outside bounds %+v", got.Glyphs[0].Origin.X, got.Bounds)
	}
}

func TestLayoutDefaults(t *testing.T) {
	got := NewShaper().Layout("x", Layout{})
	if got.Font != DefaultFont() {
		t.Error("Layout with nil font should use DefaultFont")
	}
	if got.Size != DefaultSize {
		t.Errorf("Size = %v, want %v", got.Size, DefaultSize)
	}
}

func TestLayoutEmpty(t *testing.T) {
	got := NewShaper().Layout("", Layout{})
	if len(got.Glyphs) != 0 || got.Lines != 0 {
		t.Errorf("Layout(\"\") = %d glyphs, %d lines, want none", len(got.Glyphs), got.Lines)
	}
}

func TestLayoutMultiLine(t *testing.T) {
	const spacing = 4
	l := Layout{Size: 20, LineSpacing: spacing}
	got := NewShaper().Layout("a\nbb", l)

	if got.Lines != 2 {
		t.Fatalf("Lines = %d, want 2", got.Lines)
	}
	if len(got.Glyphs) != 3 {
		t.Fatalf("len(Glyphs) = %d, want 3", len(got.Glyphs))
	}
	wantRunes := []int{0, 2, 3}
	wantLines := []int{0, 1, 1}
	for i, g := range got.Glyphs {
		if g.Rune != wantRunes[i] || g.Line != wantLines[i] {
			t.Errorf("glyph %d: Rune=%d Line=%d, want Rune=%d Line=%d", i, g.Rune, g.Line, wantRunes[i], wantLines[i])
		}
	}

	lineHeight := DefaultFont().Metrics(20).LineHeight() + spacing
	dy := got.Glyphs[0].Origin.Y - got.Glyphs[1].Origin.Y
	if !approx(dy, lineHeight) {
		t.Errorf("baseline distance = %v, want %v", dy, lineHeight)
	}
}

func TestLayoutAlign(t *testing.T) {
	sh := NewShaper()
	const s = "i\nwwww"

	left := sh.Layout(s, Layout{Align: AlignLeft})
	if !approx(left.Glyphs[0].Origin.X, left.Bounds.Min.X) {
		t.Errorf("AlignLeft: first line starts at %v, want %v", left.Glyphs[0].Origin.X, left.Bounds.Min.X)
	}

	right := sh.Layout(s, Layout{Align: AlignRight})
	first := right.Glyphs[0]
	if !approx(first.Origin.X+first.Advance, right.Bounds.Max.X) {
		t.Errorf("AlignRight: first line ends at %v, want %v", first.Origin.X+first.Advance, right.Bounds.Max.X)
	}

	center := sh.Layout(s, Layout{Align: AlignCenter})
	g := center.Glyphs[0]
	if !approx(g.Origin.X, -g.Advance/2) {
		t.Errorf("AlignCenter: single glyph line starts at %v, want %v", g.Origin.X, -g.Advance/2)
	}
}

func TestAlignString(t *testing.T) {
	tests := []struct {
		a    Align
		want string
	}{
		{AlignCenter, "Center"},
		{AlignLeft, "Left"},
		{AlignRight, "Right"},
		{Align(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Align(%d).String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}

func TestAppendGlyphPath(t *testing.T) {
	sh := NewShaper()
	lay := sh.Layout("o ", Layout{Size: 32})
	if len(lay.Glyphs) != 2 {
		t.Fatalf("len(Glyphs) = %d, want 2", len(lay.Glyphs))
	}

	o := lay.Glyphs[0]
	events, err := lay.Font.AppendGlyphPath(nil, o.ID, o.Origin, lay.Size)
	if err != nil {
		t.Fatalf("AppendGlyphPath('o'): %v", err)
	}
	var begins, ends int
	for _, e := range events {
		switch e.Kind {
		case path.EventBegin:
			begins++
		case path.EventEnd:
			ends++
			if !e.Close {
				t.Error("glyph contours should be closed")
			}
		}
	}
	if begins != 2 || ends != 2 {
		t.Errorf("'o' outline: %d begins, %d ends, want 2 contours", begins, ends)
	}

	b := path.Bounds(events)
	if b.W() <= 0 || b.W() > lay.Size || b.H() <= 0 || b.H() > lay.Size {
		t.Errorf("'o' bounds %+v not within one em of size %v", b, lay.Size)
	}
	if b.Min.X < o.Origin.X-1 {
		t.Errorf("'o' outline starts at %v, left of origin %v", b.Min.X, o.Origin.X)
	}

	space := lay.Glyphs[1]
	events, err = lay.Font.AppendGlyphPath(events[:0], space.ID, space.Origin, lay.Size)
	if err != nil {
		t.Fatalf("AppendGlyphPath(' '): %v", err)
	}
	if len(events) != 0 {
		t.Errorf("space outline has %d events, want 0", len(events))
	}
}

func TestGlyphOutlineCache(t *testing.T) {
	f, err := ParseFont(goregular.TTF)
	if err != nil {
		t.Fatalf("ParseFont: %v", err)
	}
	lay := NewShaper().Layout("a", Layout{Font: f, Size: 10})
	gid := lay.Glyphs[0].ID

	small, err := f.AppendGlyphPath(nil, gid, geom.Vec2{}, 10)
	if err != nil {
		t.Fatalf("AppendGlyphPath: %v", err)
	}
	large, err := f.AppendGlyphPath(nil, gid, geom.V2(100, 50), 20)
	if err != nil {
		t.Fatalf("AppendGlyphPath: %v", err)
	}

	if st := f.outlines.Stats(); st.Misses != 1 || st.Hits != 1 {
		t.Errorf("outline cache stats = %+v, want 1 miss then 1 hit", st)
	}
	if len(small) != len(large) {
		t.Fatalf("event counts differ: %d and %d", len(small), len(large))
	}
	for i := range small {
		want := geom.V2(100+2*small[i].To.X, 50+2*small[i].To.Y)
		if got := large[i].To; !approx(got.X, want.X) || !approx(got.Y, want.Y) {
			t.Fatalf("event %d at %v, want %v", i, got, want)
		}
	}
}

func TestVisualRuns(t *testing.T) {
	runs := visualRuns("abc", 3)
	if len(runs) != 1 || runs[0].start != 0 || runs[0].end != 3 || runs[0].dir != di.DirectionLTR {
		t.Errorf("visualRuns(\"abc\") = %+v, want one LTR run over [0,3)", runs)
	}
	if runs := visualRuns("", 0); runs != nil {
		t.Errorf("visualRuns(\"\") = %+v, want nil", runs)
	}

	const mixed = "abc אבג"
	n := len([]rune(mixed))
	runs = visualRuns(mixed, n)
	covered := make([]int, n)
	var rtl bool
	for _, r := range runs {
		if r.dir == di.DirectionRTL {
			rtl = true
		}
		for i := r.start; i < r.end; i++ {
			covered[i]++
		}
	}
	if !rtl {
		t.Errorf("visualRuns(%q) = %+v, want an RTL run", mixed, runs)
	}
	for i, c := range covered {
		if c != 1 {
			t.Errorf("rune %d covered %d times, want 1", i, c)
		}
	}
}
