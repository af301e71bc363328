package path

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/gogpu/draw/geom"
)

// ErrInvalidSVG is returned when SVG path data cannot be parsed.
var ErrInvalidSVG = errors.New("path: invalid SVG path data")

// AppendSVG appends the SVG path data encoding of events to dst.
//
// Coordinates are written as they are; callers flip the y axis with an
// enclosing transform if needed. Open subpath ends produce no output and
// closed ones produce "Z".
func AppendSVG(dst []byte, events []Event) []byte {
	for _, e := range events {
		switch e.Kind {
		case EventBegin:
			dst = appendCmd(dst, 'M')
			dst = appendPoint(dst, e.To)
		case EventLine:
			dst = appendCmd(dst, 'L')
			dst = appendPoint(dst, e.To)
		case EventQuadratic:
			dst = appendCmd(dst, 'Q')
			dst = appendPoint(dst, e.Ctrl1)
			dst = append(dst, ' ')
			dst = appendPoint(dst, e.To)
		case EventCubic:
			dst = appendCmd(dst, 'C')
			dst = appendPoint(dst, e.Ctrl1)
			dst = append(dst, ' ')
			dst = appendPoint(dst, e.Ctrl2)
			dst = append(dst, ' ')
			dst = appendPoint(dst, e.To)
		case EventEnd:
			if e.Close {
				dst = appendCmd(dst, 'Z')
			}
		}
	}
	return dst
}

// FormatSVG returns the SVG path data encoding of events.
func FormatSVG(events []Event) string {
	return string(AppendSVG(nil, events))
}

func appendCmd(dst []byte, cmd byte) []byte {
	if len(dst) > 0 {
		dst = append(dst, ' ')
	}
	return append(dst, cmd)
}

func appendPoint(dst []byte, p geom.Vec2) []byte {
	dst = strconv.AppendFloat(dst, float64(p.X), 'f', -1, 32)
	dst = append(dst, ' ')
	return strconv.AppendFloat(dst, float64(p.Y), 'f', -1, 32)
}

// ParseSVG parses SVG path data into events.
//
// All path commands are supported in absolute and relative form: M, L, H,
// V, C, S, Q, T, A and Z. Arcs are converted to cubic curves.
func ParseSVG(d string) ([]Event, error) {
	b := NewBuilder()
	if err := b.ParseSVG(d); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// ParseSVG parses SVG path data and appends its events to the builder.
// On error the builder may hold a partial path.
func (b *Builder) ParseSVG(d string) error {
	p := svgParser{sc: scanner{s: d}, b: b}
	return p.parse()
}

type svgParser struct {
	sc       scanner
	b        *Builder
	lastCtrl geom.Vec2
	lastCmd  byte
}

func (p *svgParser) parse() error {
	for {
		p.sc.skipSpace()
		if p.sc.done() {
			return nil
		}
		c := p.sc.peek()
		var cmd byte
		switch {
		case isCommand(c):
			cmd = c
			p.sc.pos++
		case isNumberStart(c) && p.lastCmd != 0 && upper(p.lastCmd) != 'Z':
			// Implicit repetition; coordinates after M are line-tos.
			cmd = p.lastCmd
			if cmd == 'M' {
				cmd = 'L'
			} else if cmd == 'm' {
				cmd = 'l'
			}
		default:
			return p.sc.errorf("unexpected %q", c)
		}
		if p.lastCmd == 0 && upper(cmd) != 'M' {
			return p.sc.errorf("path data must start with a move-to, got %q", cmd)
		}
		if err := p.command(cmd); err != nil {
			return err
		}
	}
}

// command parses the arguments of one command, including repeated
// argument groups.
func (p *svgParser) command(cmd byte) error {
	rel := cmd >= 'a' && cmd <= 'z'
	cur := p.b.Current()
	offset := func(v geom.Vec2) geom.Vec2 {
		if rel {
			return v.Add(cur)
		}
		return v
	}

	first := true
	for first || (upper(cmd) != 'Z' && p.sc.moreNumbers()) {
		first = false
		cur = p.b.Current()
		switch upper(cmd) {
		case 'M':
			pt, err := p.sc.point()
			if err != nil {
				return err
			}
			pt = offset(pt)
			p.b.MoveTo(pt)
			p.lastCtrl = pt
			// Following pairs are implicit line-tos.
			p.lastCmd = cmd
			if p.sc.moreNumbers() {
				if rel {
					cmd = 'l'
				} else {
					cmd = 'L'
				}
			}
			continue
		case 'L':
			pt, err := p.sc.point()
			if err != nil {
				return err
			}
			pt = offset(pt)
			p.b.LineTo(pt)
			p.lastCtrl = pt
		case 'H':
			x, err := p.sc.number()
			if err != nil {
				return err
			}
			if rel {
				x += cur.X
			}
			pt := geom.Vec2{X: x, Y: cur.Y}
			p.b.LineTo(pt)
			p.lastCtrl = pt
		case 'V':
			y, err := p.sc.number()
			if err != nil {
				return err
			}
			if rel {
				y += cur.Y
			}
			pt := geom.Vec2{X: cur.X, Y: y}
			p.b.LineTo(pt)
			p.lastCtrl = pt
		case 'C', 'S':
			var c1 geom.Vec2
			if upper(cmd) == 'C' {
				v, err := p.sc.point()
				if err != nil {
					return err
				}
				c1 = offset(v)
			} else {
				c1 = p.reflect(cur, 'C')
			}
			c2, err := p.sc.point()
			if err != nil {
				return err
			}
			to, err := p.sc.point()
			if err != nil {
				return err
			}
			c2, to = offset(c2), offset(to)
			p.b.CubicTo(c1, c2, to)
			p.lastCtrl = c2
		case 'Q', 'T':
			var c1 geom.Vec2
			if upper(cmd) == 'Q' {
				v, err := p.sc.point()
				if err != nil {
					return err
				}
				c1 = offset(v)
			} else {
				c1 = p.reflect(cur, 'Q')
			}
			to, err := p.sc.point()
			if err != nil {
				return err
			}
			to = offset(to)
			p.b.QuadraticTo(c1, to)
			p.lastCtrl = c1
		case 'A':
			r, err := p.sc.point()
			if err != nil {
				return err
			}
			rot, err := p.sc.number()
			if err != nil {
				return err
			}
			large, err := p.sc.flag()
			if err != nil {
				return err
			}
			sweep, err := p.sc.flag()
			if err != nil {
				return err
			}
			to, err := p.sc.point()
			if err != nil {
				return err
			}
			to = offset(to)
			p.b.ArcTo(r, rot*math.Pi/180, large, sweep, to)
			p.lastCtrl = to
		case 'Z':
			p.b.Close()
			p.lastCtrl = p.b.Current()
		}
		p.lastCmd = cmd
	}
	return nil
}

// reflect returns the reflection of the previous control point about cur
// when the previous command was of the given kind, and cur otherwise.
func (p *svgParser) reflect(cur geom.Vec2, kind byte) geom.Vec2 {
	last := upper(p.lastCmd)
	smooth := byte('S')
	if kind == 'Q' {
		smooth = 'T'
	}
	if last != kind && last != smooth {
		return cur
	}
	return cur.Mul(2).Sub(p.lastCtrl)
}

type scanner struct {
	s   string
	pos int
}

func (sc *scanner) done() bool { return sc.pos >= len(sc.s) }

func (sc *scanner) peek() byte { return sc.s[sc.pos] }

func (sc *scanner) skipSpace() {
	for !sc.done() {
		switch sc.peek() {
		case ' ', '\t', '\n', '\r', '\f':
			sc.pos++
		default:
			return
		}
	}
}

// skipSeparator skips whitespace and at most one comma.
func (sc *scanner) skipSeparator() {
	sc.skipSpace()
	if !sc.done() && sc.peek() == ',' {
		sc.pos++
		sc.skipSpace()
	}
}

func (sc *scanner) moreNumbers() bool {
	sc.skipSeparator()
	return !sc.done() && isNumberStart(sc.peek())
}

func (sc *scanner) number() (float32, error) {
	sc.skipSeparator()
	start := sc.pos
	if !sc.done() && (sc.peek() == '+' || sc.peek() == '-') {
		sc.pos++
	}
	digits := sc.digits()
	if !sc.done() && sc.peek() == '.' {
		sc.pos++
		digits += sc.digits()
	}
	if digits == 0 {
		return 0, sc.errorfAt(start, "expected number")
	}
	if !sc.done() && (sc.peek() == 'e' || sc.peek() == 'E') {
		mark := sc.pos
		sc.pos++
		if !sc.done() && (sc.peek() == '+' || sc.peek() == '-') {
			sc.pos++
		}
		if sc.digits() == 0 {
			sc.pos = mark
		}
	}
	v, err := strconv.ParseFloat(sc.s[start:sc.pos], 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSVG, err)
	}
	return float32(v), nil
}

func (sc *scanner) digits() int {
	n := 0
	for !sc.done() && sc.peek() >= '0' && sc.peek() <= '9' {
		sc.pos++
		n++
	}
	return n
}

func (sc *scanner) point() (geom.Vec2, error) {
	x, err := sc.number()
	if err != nil {
		return geom.Vec2{}, err
	}
	y, err := sc.number()
	if err != nil {
		return geom.Vec2{}, err
	}
	return geom.Vec2{X: x, Y: y}, nil
}

// flag reads an arc flag, which may be written without a separator.
func (sc *scanner) flag() (bool, error) {
	sc.skipSeparator()
	if sc.done() {
		return false, sc.errorf("expected flag")
	}
	switch sc.peek() {
	case '0':
		sc.pos++
		return false, nil
	case '1':
		sc.pos++
		return true, nil
	}
	return false, sc.errorf("expected flag, got %q", sc.peek())
}

func (sc *scanner) errorf(format string, args ...any) error {
	return sc.errorfAt(sc.pos, format, args...)
}

func (sc *scanner) errorfAt(pos int, format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrInvalidSVG, fmt.Sprintf(format, args...), pos)
}

func isCommand(c byte) bool {
	switch upper(c) {
	case 'M', 'L', 'H', 'V', 'C', 'S', 'Q', 'T', 'A', 'Z':
		return true
	}
	return false
}

func isNumberStart(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.'
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
