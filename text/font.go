package text

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/internal/cache"
	"github.com/gogpu/draw/path"
)

// outlineCacheSize is the number of decoded glyph outlines kept per font.
const outlineCacheSize = 512

// ErrNoOutline is returned when a glyph has no vector outline, for example a
// bitmap or SVG glyph.
var ErrNoOutline = errors.New("text: glyph has no outline")

// GlyphID identifies a glyph within a font.
type GlyphID = font.GID

// Font is a parsed font. It is read-only after parsing and safe for
// concurrent use.
type Font struct {
	font *font.Font
	upem float32

	// Vertical metrics in font units.
	ascent, descent, lineGap float32

	outlines *cache.LRU[GlyphID, outline]
}

// outline is a decoded glyph in font units with its origin at zero.
type outline struct {
	events []path.Event
	ok     bool
}

// Metrics holds the vertical metrics of a font at a given size.
// Descent is negative for fonts that extend below the baseline.
type Metrics struct {
	Ascent  float32
	Descent float32
	LineGap float32
}

// LineHeight returns the distance between consecutive baselines.
func (m Metrics) LineHeight() float32 {
	return m.Ascent - m.Descent + m.LineGap
}

// ParseFont parses TrueType or OpenType font data.
func ParseFont(data []byte) (*Font, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	f := &Font{
		font:     face.Font,
		upem:     float32(face.Upem()),
		outlines: cache.New[GlyphID, outline](outlineCacheSize),
	}
	if f.upem == 0 {
		f.upem = 1000
	}
	if ext, ok := face.FontHExtents(); ok {
		f.ascent = ext.Ascender
		f.descent = ext.Descender
		f.lineGap = ext.LineGap
	} else {
		f.ascent = f.upem * 0.8
		f.descent = -f.upem * 0.2
	}
	return f, nil
}

var (
	defaultFontOnce sync.Once
	defaultFont     *Font
)

// DefaultFont returns the Go Regular font. It is parsed on first use and
// shared afterwards.
func DefaultFont() *Font {
	defaultFontOnce.Do(func() {
		f, err := ParseFont(goregular.TTF)
		if err != nil {
			panic("text: embedded Go Regular font is invalid: " + err.Error())
		}
		defaultFont = f
	})
	return defaultFont
}

// Upem returns the number of font units per em.
func (f *Font) Upem() float32 {
	return f.upem
}

// Scale returns the factor converting font units to draw units at size.
func (f *Font) Scale(size float32) float32 {
	return size / f.upem
}

// Metrics returns the vertical metrics scaled to size.
func (f *Font) Metrics(size float32) Metrics {
	s := f.Scale(size)
	return Metrics{
		Ascent:  f.ascent * s,
		Descent: f.descent * s,
		LineGap: f.lineGap * s,
	}
}

// AppendGlyphPath appends the outline of glyph gid, scaled to size and placed
// with its origin at origin, to dst. Every contour is emitted as a closed
// subpath. Glyphs without contours, such as the space, append nothing.
// ErrNoOutline is returned for glyphs that are not vector outlines.
func (f *Font) AppendGlyphPath(dst []path.Event, gid GlyphID, origin geom.Vec2, size float32) ([]path.Event, error) {
	o := f.outlines.GetOrCreate(gid, func() outline { return f.decode(gid) })
	if !o.ok {
		return dst, fmt.Errorf("%w: glyph %d", ErrNoOutline, gid)
	}
	s := f.Scale(size)
	place := func(p geom.Vec2) geom.Vec2 {
		return geom.Vec2{X: origin.X + p.X*s, Y: origin.Y + p.Y*s}
	}
	for _, e := range o.events {
		dst = append(dst, e.Map(place))
	}
	return dst, nil
}

// decode converts the outline of gid to path events in font units.
func (f *Font) decode(gid GlyphID) outline {
	face := font.NewFace(f.font)
	data, ok := face.GlyphData(gid).(font.GlyphOutline)
	if !ok {
		return outline{}
	}

	pt := func(p opentype.SegmentPoint) geom.Vec2 {
		return geom.Vec2{X: p.X, Y: p.Y}
	}

	var (
		events      []path.Event
		first, last geom.Vec2
		open        bool
	)
	closeContour := func() {
		if open {
			events = append(events, path.End(last, first, true))
			open = false
		}
	}
	for _, seg := range data.Segments {
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			closeContour()
			first = pt(seg.Args[0])
			last = first
			events = append(events, path.Begin(first))
			open = true
		case opentype.SegmentOpLineTo:
			to := pt(seg.Args[0])
			events = append(events, path.Line(last, to))
			last = to
		case opentype.SegmentOpQuadTo:
			to := pt(seg.Args[1])
			events = append(events, path.Quadratic(last, pt(seg.Args[0]), to))
			last = to
		case opentype.SegmentOpCubeTo:
			to := pt(seg.Args[2])
			events = append(events, path.Cubic(last, pt(seg.Args[0]), pt(seg.Args[1]), to))
			last = to
		}
	}
	closeContour()
	return outline{events: events, ok: true}
}
