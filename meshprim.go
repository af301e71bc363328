package draw

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/mesh"
)

// Mesh is a primitive made of raw triangles, drawn without tessellation.
type Mesh struct {
	opts      PolygonOptions
	state     *State
	vertices  Range
	indices   Range
	texture   TextureHandle
	uncolored bool
}

// Mesh records an empty mesh. Give it triangles with Points, Tris, Indexed,
// Vertices, IndexedVertices or Textured.
func (d *Draw) Mesh() *Mesh {
	m := &Mesh{opts: DefaultPolygonOptions(), state: d.state}
	d.record(m)
	return m
}

// Kind implements Primitive.
func (*Mesh) Kind() Kind { return KindMesh }

func plainVertex(p geom.Vec3) mesh.Vertex {
	return mesh.Vertex{Point: p.Array(), Color: f32.Vec4{1, 1, 1, 1}}
}

// sequential appends vertices with indices 0..n-1.
func (m *Mesh) sequential(vs []mesh.Vertex) {
	in := &m.state.Intermediary
	m.vertices = in.appendVertices(vs)
	start := len(in.Indices)
	for i := range len(vs) - len(vs)%3 {
		in.Indices = append(in.Indices, uint32(i))
	}
	m.indices = Range{Start: start, End: len(in.Indices)}
}

// Points sets a triangle list from points, three per triangle. The mesh is
// drawn in its fill color.
func (m *Mesh) Points(pts ...geom.Vec3) *Mesh {
	vs := make([]mesh.Vertex, len(pts))
	for i, p := range pts {
		vs[i] = plainVertex(p)
	}
	m.sequential(vs)
	m.uncolored = true
	return m
}

// Tris sets the mesh from triangles. The mesh is drawn in its fill color.
func (m *Mesh) Tris(tris ...[3]geom.Vec3) *Mesh {
	vs := make([]mesh.Vertex, 0, len(tris)*3)
	for _, t := range tris {
		vs = append(vs, plainVertex(t[0]), plainVertex(t[1]), plainVertex(t[2]))
	}
	m.sequential(vs)
	m.uncolored = true
	return m
}

// Indexed sets the mesh from points and triangle indices into them. The
// mesh is drawn in its fill color.
func (m *Mesh) Indexed(pts []geom.Vec3, indices []uint32) *Mesh {
	vs := make([]mesh.Vertex, len(pts))
	for i, p := range pts {
		vs[i] = plainVertex(p)
	}
	return m.indexed(vs, indices, true)
}

// Vertices sets a triangle list from vertices carrying their own colors and
// texture coordinates.
func (m *Mesh) Vertices(vs ...mesh.Vertex) *Mesh {
	m.sequential(vs)
	m.uncolored = false
	return m
}

// IndexedVertices sets the mesh from vertices and triangle indices.
func (m *Mesh) IndexedVertices(vs []mesh.Vertex, indices []uint32) *Mesh {
	return m.indexed(vs, indices, false)
}

// Textured sets the mesh from vertices sampling tex.
func (m *Mesh) Textured(tex TextureHandle, vs []mesh.Vertex, indices []uint32) *Mesh {
	m.texture = tex
	return m.indexed(vs, indices, false)
}

func (m *Mesh) indexed(vs []mesh.Vertex, indices []uint32, uncolored bool) *Mesh {
	in := &m.state.Intermediary
	m.vertices = in.appendVertices(vs)
	m.indices = in.appendIndices(indices)
	m.uncolored = uncolored
	return m
}

// Color replaces every vertex color with c.
func (m *Mesh) Color(c Color) *Mesh {
	m.opts.setFill(c)
	return m
}

// XY sets the position.
func (m *Mesh) XY(x, y float32) *Mesh {
	m.opts.Position.X, m.opts.Position.Y = x, y
	return m
}

// XYZ sets the position in 3D.
func (m *Mesh) XYZ(p geom.Vec3) *Mesh {
	m.opts.Position = p
	return m
}

// Rotate sets the rotation about the Z axis.
func (m *Mesh) Rotate(radians float32) *Mesh {
	m.opts.Orientation.Z = radians
	return m
}

// Orientation sets the Euler rotation.
func (m *Mesh) Orientation(euler geom.Vec3) *Mesh {
	m.opts.Orientation = euler
	return m
}

// Render implements Primitive.
func (m *Mesh) Render(ctx RenderContext, r PrimitiveRenderer) {
	in := ctx.Intermediary
	vs := in.MeshVertices(m.vertices)
	is := in.MeshIndices(m.indices)
	if len(is) == 0 {
		return
	}
	fill := m.opts.FillColor
	if fill == nil && m.uncolored {
		c := ctx.Theme.ResolveColor(nil, KindMesh, RoleFill)
		fill = &c
	}
	if m.texture != nil {
		if b, ok := r.(TextureBinder); ok {
			b.BindTexture(m.texture)
		}
	}
	r.Mesh(ctx.Transform(m.opts.LocalTransform()), vs, is, fill)
}
