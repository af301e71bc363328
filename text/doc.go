// Package text lays out strings as positioned glyphs and converts glyph
// outlines into path events.
//
// Shaping is done with go-text/typesetting's HarfBuzz port. Each line is split
// into directional runs with golang.org/x/text/unicode/bidi before shaping, so
// mixed left-to-right and right-to-left text is placed in visual order.
//
// Layout coordinates follow draw space: +Y is up and the laid out block is
// centered on the origin. Glyph outlines are scaled from font units to the
// requested size; fonts already use +Y up, so no flip is needed.
//
// Basic usage:
//
//	sh := text.NewShaper()
//	lay := sh.Layout("Hello\nworld", text.Layout{Size: 24, Align: text.AlignCenter})
//	var events []path.Event
//	for _, g := range lay.Glyphs {
//	    events, _ = lay.Font.AppendGlyphPath(events, g.ID, g.Origin, lay.Size)
//	}
package text
