package meshrender

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/draw"
)

// CommandType identifies the type of a render command.
type CommandType uint8

const (
	// State commands
	CmdClear       CommandType = iota // Clear the target to a color
	CmdSetBlend                       // Set the blend state
	CmdSetScissor                     // Set or disable the scissor rectangle
	CmdSetTopology                    // Set the primitive topology
	CmdSetSampler                     // Set the texture sampler
	CmdSetTexture                     // Bind a texture

	// Drawing commands
	CmdDrawIndexed // Draw a range of the index buffer
)

var commandTypeNames = [...]string{
	CmdClear:       "Clear",
	CmdSetBlend:    "SetBlend",
	CmdSetScissor:  "SetScissor",
	CmdSetTopology: "SetTopology",
	CmdSetSampler:  "SetSampler",
	CmdSetTexture:  "SetTexture",
	CmdDrawIndexed: "DrawIndexed",
}

// String returns the string representation of a CommandType.
func (t CommandType) String() string {
	if int(t) < len(commandTypeNames) {
		return commandTypeNames[t]
	}
	return "Unknown"
}

// RenderCommand is an instruction for the GPU layer consuming the mesh.
// Commands apply in order; state commands affect every DrawIndexed after
// them.
type RenderCommand interface {
	Type() CommandType
}

// Clear clears the render target before any draw.
type Clear struct {
	Color gputypes.Color
}

// Type implements RenderCommand.
func (Clear) Type() CommandType { return CmdClear }

// SetBlend sets the blend state of subsequent draws.
type SetBlend struct {
	Blend gputypes.BlendState
}

// Type implements RenderCommand.
func (SetBlend) Type() CommandType { return CmdSetBlend }

// SetScissor sets the scissor rectangle of subsequent draws. The rectangle
// is in draw space; the GPU layer maps it to framebuffer pixels.
type SetScissor struct {
	Scissor draw.Scissor
}

// Type implements RenderCommand.
func (SetScissor) Type() CommandType { return CmdSetScissor }

// SetTopology sets the primitive topology of subsequent draws.
type SetTopology struct {
	Topology gputypes.PrimitiveTopology
}

// Type implements RenderCommand.
func (SetTopology) Type() CommandType { return CmdSetTopology }

// SetSampler sets the texture sampler of subsequent draws.
type SetSampler struct {
	Sampler gputypes.SamplerDescriptor
}

// Type implements RenderCommand.
func (SetSampler) Type() CommandType { return CmdSetSampler }

// SetTexture binds the texture sampled by subsequent draws.
type SetTexture struct {
	Texture draw.TextureHandle
}

// Type implements RenderCommand.
func (SetTexture) Type() CommandType { return CmdSetTexture }

// DrawIndexed draws the triangles of Indices()[Start:End].
type DrawIndexed struct {
	Start, End uint32
}

// Type implements RenderCommand.
func (DrawIndexed) Type() CommandType { return CmdDrawIndexed }

// Count returns the number of indices drawn.
func (c DrawIndexed) Count() uint32 { return c.End - c.Start }

// String returns "DrawIndexed[start:end]".
func (c DrawIndexed) String() string {
	return fmt.Sprintf("DrawIndexed[%d:%d]", c.Start, c.End)
}
