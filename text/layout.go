package text

import (
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/draw/geom"
)

// DefaultSize is the font size used when Layout.Size is zero.
const DefaultSize = 12

// Align specifies how lines are aligned within the text block.
type Align uint8

const (
	// AlignCenter centers each line (default).
	AlignCenter Align = iota
	// AlignLeft aligns lines to the left edge of the block.
	AlignLeft
	// AlignRight aligns lines to the right edge of the block.
	AlignRight
)

// String returns the string representation of the alignment.
func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "Center"
	case AlignLeft:
		return "Left"
	case AlignRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Layout describes how a string is laid out.
type Layout struct {
	// Font is the font to shape with. Nil uses DefaultFont.
	Font *Font

	// Size is the font size in draw units. Zero uses DefaultSize.
	Size float32

	// LineSpacing is extra space added between lines, in draw units.
	LineSpacing float32

	// Align is the horizontal alignment of each line.
	Align Align
}

func (l Layout) normalized() Layout {
	if l.Font == nil {
		l.Font = DefaultFont()
	}
	if l.Size <= 0 {
		l.Size = DefaultSize
	}
	return l
}

// Glyph is a shaped glyph positioned in layout space.
type Glyph struct {
	ID      GlyphID
	Origin  geom.Vec2 // pen position on the baseline, offsets applied
	Advance float32
	Rune    int // index of the first rune of the glyph's cluster in the string
	Line    int
}

// Shaped is the result of laying out a string.
type Shaped struct {
	Font   *Font
	Size   float32
	Glyphs []Glyph
	Lines  int
	Bounds geom.Rect
}

// Shaper shapes and lays out text. It is safe for concurrent use.
type Shaper struct {
	pool sync.Pool
}

// NewShaper creates a Shaper.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
}

type lineGlyphs struct {
	start int // first glyph in Shaped.Glyphs
	width float32
}

// Layout shapes s and positions the glyphs. Lines are separated by '\n' and
// the block is centered vertically and horizontally on the origin.
func (sh *Shaper) Layout(s string, l Layout) Shaped {
	l = l.normalized()
	out := Shaped{Font: l.Font, Size: l.Size}
	if s == "" {
		return out
	}

	face := font.NewFace(l.Font.font)
	hb := sh.pool.Get().(*shaping.HarfbuzzShaper)
	defer sh.pool.Put(hb)

	lines := strings.Split(s, "\n")
	out.Lines = len(lines)
	info := make([]lineGlyphs, len(lines))

	runeOffset := 0
	for i, line := range lines {
		info[i].start = len(out.Glyphs)
		runes := []rune(line)
		var x float32
		for _, r := range visualRuns(line, len(runes)) {
			in := shaping.Input{
				Text:      runes,
				RunStart:  r.start,
				RunEnd:    r.end,
				Direction: r.dir,
				Face:      face,
				Size:      floatToFixed(l.Size),
				Script:    detectScript(runes[r.start:r.end]),
				Language:  language.NewLanguage("en"),
			}
			res := hb.Shape(in)
			for _, g := range res.Glyphs {
				adv := fixedToFloat(g.Advance)
				out.Glyphs = append(out.Glyphs, Glyph{
					ID: g.GlyphID,
					Origin: geom.Vec2{
						X: x + fixedToFloat(g.XOffset),
						Y: fixedToFloat(g.YOffset),
					},
					Advance: adv,
					Rune:    runeOffset + g.TextIndex(),
					Line:    i,
				})
				x += adv
			}
		}
		info[i].width = x
		runeOffset += len(runes) + 1
	}

	m := l.Font.Metrics(l.Size)
	lineHeight := m.LineHeight() + l.LineSpacing
	height := m.Ascent - m.Descent + float32(len(lines)-1)*lineHeight

	var blockWidth float32
	for _, li := range info {
		blockWidth = max(blockWidth, li.width)
	}
	left := -blockWidth / 2
	top := height / 2

	for i, li := range info {
		var x0 float32
		switch l.Align {
		case AlignLeft:
			x0 = left
		case AlignRight:
			x0 = left + blockWidth - li.width
		default:
			x0 = -li.width / 2
		}
		baseline := top - m.Ascent - float32(i)*lineHeight
		end := len(out.Glyphs)
		if i+1 < len(info) {
			end = info[i+1].start
		}
		for j := li.start; j < end; j++ {
			out.Glyphs[j].Origin.X += x0
			out.Glyphs[j].Origin.Y += baseline
		}
	}

	out.Bounds = geom.Rect{
		Min: geom.Vec2{X: left, Y: -height / 2},
		Max: geom.Vec2{X: left + blockWidth, Y: top},
	}
	return out
}

type run struct {
	start, end int // rune range, end exclusive
	dir        di.Direction
}

// visualRuns splits a line into directional runs in visual order.
// Text that bidi cannot order is treated as a single left-to-right run.
func visualRuns(line string, n int) []run {
	if n == 0 {
		return nil
	}
	fallback := []run{{start: 0, end: n, dir: di.DirectionLTR}}

	var p bidi.Paragraph
	if _, err := p.SetString(line); err != nil {
		return fallback
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return fallback
	}
	runs := make([]run, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		r := ordering.Run(i)
		start, end := r.Pos()
		dir := di.DirectionLTR
		if r.Direction() == bidi.RightToLeft {
			dir = di.DirectionRTL
		}
		end = min(end+1, n)
		if start >= end {
			continue
		}
		runs = append(runs, run{start: start, end: end, dir: dir})
	}
	return runs
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
