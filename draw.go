package draw

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/draw/geom"
)

// Draw records primitives into a shared command log.
//
// Context methods (Translate, Rotate, Scale, Transform, Blend, Scissor,
// Topology, Sampler) return a new *Draw that shares the log but records
// subsequent primitives with the modified Context. The receiver is not
// changed.
type Draw struct {
	state *State
	ctx   Context
}

// New creates a Draw with an empty command log.
func New(opts ...Option) *Draw {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Draw{state: newState(o), ctx: DefaultContext()}
}

// State returns the state shared by every Draw derived from d.
func (d *Draw) State() *State {
	return d.state
}

// Context returns the context primitives drawn with d are recorded with.
func (d *Draw) Context() Context {
	return d.ctx
}

// WithContext returns a Draw recording with ctx.
func (d *Draw) WithContext(ctx Context) *Draw {
	return &Draw{state: d.state, ctx: ctx}
}

// Transform returns a Draw whose transform is the current transform
// followed by m, so that m applies to primitive geometry first.
func (d *Draw) Transform(m geom.Mat4) *Draw {
	ctx := d.ctx
	ctx.Transform = ctx.Transform.Mul(m)
	return d.WithContext(ctx)
}

// Translate returns a Draw translated by v.
func (d *Draw) Translate(v geom.Vec3) *Draw {
	return d.Transform(geom.Translation(v))
}

// XY returns a Draw translated by (x, y).
func (d *Draw) XY(x, y float32) *Draw {
	return d.Translate(geom.Vec3{X: x, Y: y})
}

// Rotate returns a Draw rotated by radians about the Z axis.
func (d *Draw) Rotate(radians float32) *Draw {
	return d.Transform(geom.RotationZ(radians))
}

// Orientation returns a Draw rotated by Euler angles, applied X then Y then Z.
func (d *Draw) Orientation(euler geom.Vec3) *Draw {
	return d.Transform(geom.RotationEuler(euler))
}

// Scale returns a Draw scaled uniformly in X and Y.
func (d *Draw) Scale(s float32) *Draw {
	return d.Transform(geom.Scaling(geom.Vec3{X: s, Y: s, Z: 1}))
}

// ScaleXYZ returns a Draw scaled per axis.
func (d *Draw) ScaleXYZ(v geom.Vec3) *Draw {
	return d.Transform(geom.Scaling(v))
}

// Blend returns a Draw using blend state b.
func (d *Draw) Blend(b gputypes.BlendState) *Draw {
	ctx := d.ctx
	ctx.Blend = b
	return d.WithContext(ctx)
}

// Scissor returns a Draw clipped to r, given in draw space.
func (d *Draw) Scissor(r geom.Rect) *Draw {
	ctx := d.ctx
	ctx.Scissor = ScissorRect(r)
	return d.WithContext(ctx)
}

// NoScissor returns a Draw without scissoring.
func (d *Draw) NoScissor() *Draw {
	ctx := d.ctx
	ctx.Scissor = Scissor{}
	return d.WithContext(ctx)
}

// Topology returns a Draw using primitive topology t.
func (d *Draw) Topology(t gputypes.PrimitiveTopology) *Draw {
	ctx := d.ctx
	ctx.Topology = t
	return d.WithContext(ctx)
}

// Sampler returns a Draw sampling textures with s.
func (d *Draw) Sampler(s gputypes.SamplerDescriptor) *Draw {
	ctx := d.ctx
	ctx.Sampler = s
	return d.WithContext(ctx)
}

// Background sets the color the frame is cleared to.
func (d *Draw) Background(c Color) {
	d.state.background = &c
}

// Theme returns the theme of the shared state.
func (d *Draw) Theme() *Theme {
	return d.state.theme
}

// Render replays the recorded commands into r and clears the log.
func (d *Draw) Render(r PrimitiveRenderer) {
	Replay(d.state, r)
}

// Reset drops every pending command without rendering. The background
// color is kept for the next frame.
func (d *Draw) Reset() {
	d.state.Reset()
}

func (d *Draw) record(p Primitive) {
	d.state.push(d.ctx, p)
}
