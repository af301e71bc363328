package draw

import (
	"github.com/gogpu/draw/geom"
)

// Texture draws a rectangular area of a texture onto a rectangle.
type Texture struct {
	opts    PolygonOptions
	texture TextureHandle
	wh      *geom.Vec2
	area    geom.Rect
}

// Texture records a rectangle showing all of tex at its pixel size.
func (d *Draw) Texture(tex TextureHandle) *Texture {
	t := &Texture{
		opts:    DefaultPolygonOptions(),
		texture: tex,
		area:    geom.Rect{Max: geom.Vec2{X: 1, Y: 1}},
	}
	d.record(t)
	return t
}

// Kind implements Primitive.
func (*Texture) Kind() Kind { return KindTexture }

// WH sets the size of the rectangle.
func (t *Texture) WH(w, h float32) *Texture {
	t.wh = &geom.Vec2{X: w, Y: h}
	return t
}

// Area selects the sub-area of the texture to show, in normalized texture
// coordinates with (0, 0) at the top-left.
func (t *Texture) Area(r geom.Rect) *Texture {
	t.area = r
	return t
}

// XY sets the center.
func (t *Texture) XY(x, y float32) *Texture {
	t.opts.Position.X, t.opts.Position.Y = x, y
	return t
}

// XYZ sets the center in 3D.
func (t *Texture) XYZ(p geom.Vec3) *Texture {
	t.opts.Position = p
	return t
}

// Rotate sets the rotation about the Z axis.
func (t *Texture) Rotate(radians float32) *Texture {
	t.opts.Orientation.Z = radians
	return t
}

// Orientation sets the Euler rotation.
func (t *Texture) Orientation(euler geom.Vec3) *Texture {
	t.opts.Orientation = euler
	return t
}

// size returns the rectangle size: the explicit size, else the texture's.
func (t *Texture) size() geom.Vec2 {
	if t.wh != nil {
		return *t.wh
	}
	if t.texture == nil {
		return geom.Vec2{X: DefaultSize, Y: DefaultSize}
	}
	w, h := t.texture.Size()
	return geom.Vec2{X: float32(w), Y: float32(h)}
}

// Render implements Primitive.
func (t *Texture) Render(ctx RenderContext, r PrimitiveRenderer) {
	wh := t.size()
	corners := geom.RectFromWH(wh.X, wh.Y).Corners()

	// Draw space grows up and texture space grows down, so the top corners
	// take the minimum v.
	a := t.area
	uv := [4]geom.Vec2{
		{X: a.Min.X, Y: a.Min.Y}, // top-left
		{X: a.Min.X, Y: a.Max.Y}, // bottom-left
		{X: a.Max.X, Y: a.Max.Y}, // bottom-right
		{X: a.Max.X, Y: a.Min.Y}, // top-right
	}

	buf := ctx.buffers()
	buf.tex = buf.tex[:0]
	for i, p := range corners {
		buf.tex = append(buf.tex, TexturedPoint{Point: p, TexCoord: uv[i]})
	}
	renderTextured(ctx, r, &t.opts, t.texture, buf.tex, true)
}
