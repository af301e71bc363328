package draw

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/draw/geom"
)

// Scissor limits rendering to a rectangle in draw space.
// The zero value disables scissoring.
type Scissor struct {
	Enabled bool
	Rect    geom.Rect
}

// ScissorRect returns an enabled scissor for r.
func ScissorRect(r geom.Rect) Scissor {
	return Scissor{Enabled: true, Rect: r}
}

// Context is the render state applied to the primitives recorded after it.
// Context is comparable.
type Context struct {
	// Transform is the global transform, applied after each primitive's
	// local position and orientation.
	Transform geom.Mat4
	Blend     gputypes.BlendState
	Scissor   Scissor
	Topology  gputypes.PrimitiveTopology
	Sampler   gputypes.SamplerDescriptor
}

// DefaultContext returns the context every replay starts from: identity
// transform, alpha blending, no scissor, triangle lists and the default
// sampler.
func DefaultContext() Context {
	return Context{
		Transform: geom.Identity(),
		Blend:     gputypes.BlendStateAlpha(),
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		Sampler:   gputypes.DefaultSamplerDescriptor(),
	}
}

// IsDefault reports whether c equals DefaultContext.
func (c Context) IsDefault() bool {
	return c == DefaultContext()
}

// HasDefaultState reports whether every field other than Transform has its
// default value.
func (c Context) HasDefaultState() bool {
	d := DefaultContext()
	d.Transform = c.Transform
	return c == d
}
