package mesh

import (
	"math"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/tess"
)

// VertexMode resolves the color and texture coordinates of a tessellated
// vertex from the attributes the tessellator interpolated for it.
type VertexMode interface {
	Resolve(attrs []float32) (color f32.Vec4, texCoord f32.Vec2)
}

// SingleColor gives every vertex the same color and zero texture
// coordinates.
type SingleColor struct {
	Color f32.Vec4
}

// Resolve implements VertexMode.
func (m SingleColor) Resolve([]float32) (f32.Vec4, f32.Vec2) {
	return m.Color, f32.Vec2{}
}

// ColorPerPoint reads an RGBA color from the first four attributes.
type ColorPerPoint struct{}

// ColorAttributes is the number of attributes ColorPerPoint consumes.
const ColorAttributes = 4

// Resolve implements VertexMode.
func (ColorPerPoint) Resolve(attrs []float32) (f32.Vec4, f32.Vec2) {
	return f32.Vec4{attrs[0], attrs[1], attrs[2], attrs[3]}, f32.Vec2{}
}

// TexCoordsPerPoint reads texture coordinates from the first two attributes
// and uses opaque white as the color.
type TexCoordsPerPoint struct{}

// TexCoordAttributes is the number of attributes TexCoordsPerPoint consumes.
const TexCoordAttributes = 2

// Resolve implements VertexMode.
func (TexCoordsPerPoint) Resolve(attrs []float32) (f32.Vec4, f32.Vec2) {
	return f32.Vec4{1, 1, 1, 1}, f32.Vec2{attrs[0], attrs[1]}
}

// GeometryBuilder streams tessellator output straight into a Mesh.
//
// Positions are transformed by the builder's matrix, which callers compose
// from the local and global transforms of a primitive. Triangles are pushed
// with their winding reversed: tessellators report counter-clockwise
// triangles in +Y up space, and the mesh consumer culls with the opposite
// front face.
//
// AbortGeometry panics: vertices are pushed directly into the shared mesh,
// so there is nothing to roll back to.
type GeometryBuilder[M VertexMode] struct {
	mesh      *Mesh
	transform geom.Mat4
	mode      M

	beginVertices int
	beginIndices  int
	limit         uint64
}

var (
	_ tess.FillGeometryBuilder   = (*GeometryBuilder[SingleColor])(nil)
	_ tess.StrokeGeometryBuilder = (*GeometryBuilder[ColorPerPoint])(nil)
)

// NewGeometryBuilder creates a builder pushing into m.
func NewGeometryBuilder[M VertexMode](m *Mesh, transform geom.Mat4, mode M) *GeometryBuilder[M] {
	return &GeometryBuilder[M]{mesh: m, transform: transform, mode: mode, limit: math.MaxUint32}
}

// BeginGeometry implements tess.GeometryBuilder.
func (b *GeometryBuilder[M]) BeginGeometry() {
	b.beginVertices = b.mesh.CountVertices()
	b.beginIndices = b.mesh.CountIndices()
}

// EndGeometry implements tess.GeometryBuilder.
func (b *GeometryBuilder[M]) EndGeometry() tess.Count {
	return tess.Count{
		Vertices: uint32(b.mesh.CountVertices() - b.beginVertices),
		Indices:  uint32(b.mesh.CountIndices() - b.beginIndices),
	}
}

// AddTriangle implements tess.GeometryBuilder. The indices are pushed as
// c, b, a.
func (b *GeometryBuilder[M]) AddTriangle(v0, v1, v2 tess.VertexID) {
	b.mesh.PushIndices(uint32(v2), uint32(v1), uint32(v0))
}

// AbortGeometry implements tess.GeometryBuilder. It always panics.
func (b *GeometryBuilder[M]) AbortGeometry() {
	panic("mesh: geometry aborted during tessellation")
}

// AddFillVertex implements tess.FillGeometryBuilder.
func (b *GeometryBuilder[M]) AddFillVertex(v tess.FillVertex) (tess.VertexID, error) {
	return b.addVertex(v.Position, v.Attributes)
}

// AddStrokeVertex implements tess.StrokeGeometryBuilder.
func (b *GeometryBuilder[M]) AddStrokeVertex(v tess.StrokeVertex) (tess.VertexID, error) {
	return b.addVertex(v.Position, v.Attributes)
}

func (b *GeometryBuilder[M]) addVertex(p geom.Vec2, attrs []float32) (tess.VertexID, error) {
	id := b.mesh.CountVertices()
	if uint64(id) >= b.limit {
		return 0, tess.ErrTooManyVertices
	}
	point := b.transform.TransformPoint2(p)
	color, uv := b.mode.Resolve(attrs)
	b.mesh.PushVertex(point.Array(), color, uv, Normal2D)
	return tess.VertexID(id), nil
}
