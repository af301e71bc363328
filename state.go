package draw

import (
	"fmt"

	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/mesh"
	"github.com/gogpu/draw/path"
)

// Range is a half-open index range into one of the Intermediary arenas.
type Range struct {
	Start, End int
}

// Len returns the number of elements in the range.
func (r Range) Len() int { return r.End - r.Start }

// Intermediary holds the append-only arenas primitives store their geometry
// in. Primitives keep a Range instead of owning a slice. The arenas are
// cleared after replay.
type Intermediary struct {
	PathEvents     []path.Event
	ColoredPoints  []ColoredPoint
	TexturedPoints []TexturedPoint
	Vertices       []mesh.Vertex
	Indices        []uint32
	Colors         []Color
	Text           []byte
}

// Reset truncates every arena, keeping capacity.
func (in *Intermediary) Reset() {
	in.PathEvents = in.PathEvents[:0]
	in.ColoredPoints = in.ColoredPoints[:0]
	in.TexturedPoints = in.TexturedPoints[:0]
	in.Vertices = in.Vertices[:0]
	in.Indices = in.Indices[:0]
	in.Colors = in.Colors[:0]
	in.Text = in.Text[:0]
}

func checkRange(arena string, r Range, n int) {
	if r.Start < 0 || r.End < r.Start || r.End > n {
		panic(fmt.Sprintf("draw: %s range [%d:%d] out of bounds (len %d)", arena, r.Start, r.End, n))
	}
}

// Events returns the path events in r.
func (in *Intermediary) Events(r Range) []path.Event {
	checkRange("path event", r, len(in.PathEvents))
	return in.PathEvents[r.Start:r.End]
}

// Colored returns the colored points in r.
func (in *Intermediary) Colored(r Range) []ColoredPoint {
	checkRange("colored point", r, len(in.ColoredPoints))
	return in.ColoredPoints[r.Start:r.End]
}

// Textured returns the textured points in r.
func (in *Intermediary) Textured(r Range) []TexturedPoint {
	checkRange("textured point", r, len(in.TexturedPoints))
	return in.TexturedPoints[r.Start:r.End]
}

// MeshVertices returns the vertices in r.
func (in *Intermediary) MeshVertices(r Range) []mesh.Vertex {
	checkRange("vertex", r, len(in.Vertices))
	return in.Vertices[r.Start:r.End]
}

// MeshIndices returns the indices in r.
func (in *Intermediary) MeshIndices(r Range) []uint32 {
	checkRange("index", r, len(in.Indices))
	return in.Indices[r.Start:r.End]
}

// ColorList returns the colors in r.
func (in *Intermediary) ColorList(r Range) []Color {
	checkRange("color", r, len(in.Colors))
	return in.Colors[r.Start:r.End]
}

// TextRange returns the text in r.
func (in *Intermediary) TextRange(r Range) string {
	checkRange("text", r, len(in.Text))
	return string(in.Text[r.Start:r.End])
}

func (in *Intermediary) appendEvents(events []path.Event) Range {
	start := len(in.PathEvents)
	in.PathEvents = append(in.PathEvents, events...)
	return Range{Start: start, End: len(in.PathEvents)}
}

func (in *Intermediary) appendPolygon(points []geom.Vec2, closed bool) Range {
	start := len(in.PathEvents)
	in.PathEvents = appendPolygonEvents(in.PathEvents, points, closed)
	return Range{Start: start, End: len(in.PathEvents)}
}

func (in *Intermediary) appendColored(points []ColoredPoint) Range {
	start := len(in.ColoredPoints)
	in.ColoredPoints = append(in.ColoredPoints, points...)
	return Range{Start: start, End: len(in.ColoredPoints)}
}

func (in *Intermediary) appendTextured(points []TexturedPoint) Range {
	start := len(in.TexturedPoints)
	in.TexturedPoints = append(in.TexturedPoints, points...)
	return Range{Start: start, End: len(in.TexturedPoints)}
}

func (in *Intermediary) appendVertices(vs []mesh.Vertex) Range {
	start := len(in.Vertices)
	in.Vertices = append(in.Vertices, vs...)
	return Range{Start: start, End: len(in.Vertices)}
}

func (in *Intermediary) appendIndices(is []uint32) Range {
	start := len(in.Indices)
	in.Indices = append(in.Indices, is...)
	return Range{Start: start, End: len(in.Indices)}
}

func (in *Intermediary) appendColors(cs []Color) Range {
	start := len(in.Colors)
	in.Colors = append(in.Colors, cs...)
	return Range{Start: start, End: len(in.Colors)}
}

func (in *Intermediary) appendText(s string) Range {
	start := len(in.Text)
	in.Text = append(in.Text, s...)
	return Range{Start: start, End: len(in.Text)}
}

// State owns the command log and the intermediary arenas of a Draw.
type State struct {
	commands     []Command
	last         Context
	background   *Color
	theme        *Theme
	scratch      *scratch
	Intermediary Intermediary
}

func newState(o options) *State {
	s := &State{theme: o.theme, background: o.background, last: DefaultContext()}
	if n := o.capacity; n > 0 {
		s.commands = make([]Command, 0, n)
		s.Intermediary.PathEvents = make([]path.Event, 0, n*8)
	}
	return s
}

// Theme returns the theme primitives resolve default colors from.
func (s *State) Theme() *Theme {
	return s.theme
}

// Background returns the background color, if one was set.
func (s *State) Background() (Color, bool) {
	if s.background == nil {
		return Color{}, false
	}
	return *s.background, true
}

// Len returns the number of pending commands.
func (s *State) Len() int {
	return len(s.commands)
}

// Commands returns the pending commands without draining them.
func (s *State) Commands() []Command {
	return s.commands
}

// DrainCommands moves the pending commands out of the state. The next
// recorded primitive starts a fresh log relative to DefaultContext.
func (s *State) DrainCommands() []Command {
	cmds := s.commands
	s.commands = nil
	s.last = DefaultContext()
	return cmds
}

// Reset drops pending commands and clears the arenas. The background
// persists, as it does across replays.
func (s *State) Reset() {
	s.commands = s.commands[:0]
	s.last = DefaultContext()
	s.Intermediary.Reset()
}

// push records p with ctx, appending a context command first when ctx
// differs from the last recorded context. Replay starts from
// DefaultContext, so primitives drawn with it need no context command.
func (s *State) push(ctx Context, p Primitive) {
	if s.last != ctx {
		s.commands = append(s.commands, ContextCommand{Context: ctx})
		s.last = ctx
	}
	s.commands = append(s.commands, PrimitiveCommand{Primitive: p})
}
