// Package mesh provides the vertex and index storage that tessellated
// geometry is streamed into, and the adapter connecting tessellators to it.
//
// A Mesh keeps its vertex attributes in four parallel arrays so that each
// array can be uploaded to its own GPU vertex buffer without repacking.
package mesh

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"
)

// Vertex is a single mesh vertex as supplied by the caller.
// The normal is implied as +Z.
type Vertex struct {
	Point    f32.Vec3
	Color    f32.Vec4
	TexCoord f32.Vec2
}

// Normal2D is the normal of all flat 2D geometry.
var Normal2D = f32.Vec3{0, 0, 1}

// Mesh is a growable triangle mesh.
//
// The points, colors, texture coordinates and normals always have the same
// length. Mesh is not safe for concurrent use.
type Mesh struct {
	points    []f32.Vec3
	colors    []f32.Vec4
	texCoords []f32.Vec2
	normals   []f32.Vec3
	indices   []uint32
}

// New creates an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// WithCapacity creates an empty mesh with room for the given number of
// vertices and indices.
func WithCapacity(vertices, indices int) *Mesh {
	return &Mesh{
		points:    make([]f32.Vec3, 0, vertices),
		colors:    make([]f32.Vec4, 0, vertices),
		texCoords: make([]f32.Vec2, 0, vertices),
		normals:   make([]f32.Vec3, 0, vertices),
		indices:   make([]uint32, 0, indices),
	}
}

// PushVertex appends one vertex to all attribute arrays.
func (m *Mesh) PushVertex(point f32.Vec3, color f32.Vec4, texCoord f32.Vec2, normal f32.Vec3) {
	m.points = append(m.points, point)
	m.colors = append(m.colors, color)
	m.texCoords = append(m.texCoords, texCoord)
	m.normals = append(m.normals, normal)
}

// PushIndex appends an index. The caller guarantees it refers to an
// existing vertex.
func (m *Mesh) PushIndex(i uint32) {
	m.indices = append(m.indices, i)
}

// PushIndices appends several indices.
func (m *Mesh) PushIndices(is ...uint32) {
	m.indices = append(m.indices, is...)
}

// Clear truncates the mesh to zero vertices and indices, keeping the
// allocated capacity.
func (m *Mesh) Clear() {
	m.points = m.points[:0]
	m.colors = m.colors[:0]
	m.texCoords = m.texCoords[:0]
	m.normals = m.normals[:0]
	m.indices = m.indices[:0]
}

// CountVertices returns the number of vertices.
func (m *Mesh) CountVertices() int { return len(m.points) }

// CountIndices returns the number of indices.
func (m *Mesh) CountIndices() int { return len(m.indices) }

// Points returns the vertex positions.
func (m *Mesh) Points() []f32.Vec3 { return m.points }

// Colors returns the vertex colors.
func (m *Mesh) Colors() []f32.Vec4 { return m.colors }

// TexCoords returns the vertex texture coordinates.
func (m *Mesh) TexCoords() []f32.Vec2 { return m.texCoords }

// Normals returns the vertex normals.
func (m *Mesh) Normals() []f32.Vec3 { return m.normals }

// Indices returns the triangle list indices.
func (m *Mesh) Indices() []uint32 { return m.indices }

// Vertex returns vertex i. It panics if i is out of range.
func (m *Mesh) Vertex(i int) Vertex {
	return Vertex{Point: m.points[i], Color: m.colors[i], TexCoord: m.texCoords[i]}
}

// Validate checks the mesh invariants: equal attribute lengths and indices
// within range.
func (m *Mesh) Validate() error {
	n := len(m.points)
	if len(m.colors) != n || len(m.texCoords) != n || len(m.normals) != n {
		return fmt.Errorf("mesh: attribute lengths differ: points %d, colors %d, tex coords %d, normals %d",
			n, len(m.colors), len(m.texCoords), len(m.normals))
	}
	for i, idx := range m.indices {
		if int(idx) >= n {
			return fmt.Errorf("mesh: index %d at %d out of range [0, %d)", idx, i, n)
		}
	}
	return nil
}

// Shader locations of the vertex attributes.
const (
	LocationPosition = 0
	LocationColor    = 1
	LocationTexCoord = 2
	LocationNormal   = 3
)

// VertexBufferLayouts describes the four non-interleaved vertex buffers,
// in the order points, colors, texture coordinates, normals.
func VertexBufferLayouts() []gputypes.VertexBufferLayout {
	layout := func(format gputypes.VertexFormat, stride uint64, location uint32) gputypes.VertexBufferLayout {
		return gputypes.VertexBufferLayout{
			ArrayStride: stride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: format, Offset: 0, ShaderLocation: location},
			},
		}
	}
	return []gputypes.VertexBufferLayout{
		layout(gputypes.VertexFormatFloat32x3, 12, LocationPosition),
		layout(gputypes.VertexFormatFloat32x4, 16, LocationColor),
		layout(gputypes.VertexFormatFloat32x2, 8, LocationTexCoord),
		layout(gputypes.VertexFormatFloat32x3, 12, LocationNormal),
	}
}

// IndexFormat returns the format of the index buffer.
func IndexFormat() gputypes.IndexFormat {
	return gputypes.IndexFormatUint32
}

// Topology returns the primitive topology of the index buffer.
func Topology() gputypes.PrimitiveTopology {
	return gputypes.PrimitiveTopologyTriangleList
}
