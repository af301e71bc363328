package draw

import "fmt"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdContext   CommandType = iota // Switch the draw context
	CmdPrimitive                    // Render a primitive
)

var commandTypeNames = [...]string{
	CmdContext:   "Context",
	CmdPrimitive: "Primitive",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is an entry of the command log: either a ContextCommand or a
// PrimitiveCommand.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// ContextCommand makes Context current for the primitives that follow it.
type ContextCommand struct {
	Context Context
}

// Type implements Command.
func (ContextCommand) Type() CommandType { return CmdContext }

// PrimitiveCommand renders Primitive with the current context.
type PrimitiveCommand struct {
	Primitive Primitive
}

// Type implements Command.
func (PrimitiveCommand) Type() CommandType { return CmdPrimitive }

// String returns the primitive kind, for debugging.
func (c PrimitiveCommand) String() string {
	return fmt.Sprintf("Primitive(%s)", c.Primitive.Kind())
}
