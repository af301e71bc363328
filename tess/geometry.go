package tess

import (
	"errors"

	"github.com/gogpu/draw/geom"
)

// ErrTooManyVertices is returned by geometry builders that cannot address
// any more vertices.
var ErrTooManyVertices = errors.New("tess: too many vertices")

// VertexID identifies a vertex added to a geometry builder.
type VertexID uint32

// Count reports the number of vertices and indices added to a builder.
type Count struct {
	Vertices uint32
	Indices  uint32
}

// Side identifies on which side of the path a stroke vertex lies.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
	SideCenter
)

// FillVertex is a vertex produced by fill tessellation.
type FillVertex struct {
	Position geom.Vec2

	// Attributes holds the custom attributes of the input point the vertex
	// was created from. It is nil when the input has none, and it is only
	// valid for the duration of the AddFillVertex call.
	Attributes []float32
}

// StrokeVertex is a vertex produced by stroke tessellation.
type StrokeVertex struct {
	Position geom.Vec2

	// PositionOnPath is the point on the path this vertex was offset from.
	PositionOnPath geom.Vec2

	// Normal is the offset from PositionOnPath in half line widths. It is
	// zero for center vertices and longer than one at miter tips.
	Normal geom.Vec2

	// Advancement is the distance along the subpath.
	Advancement float32

	Side Side

	// Attributes as for FillVertex.
	Attributes []float32
}

// GeometryBuilder is the part of the builder protocol shared by fill and
// stroke tessellation.
type GeometryBuilder interface {
	// BeginGeometry is called before any vertex is added.
	BeginGeometry()

	// EndGeometry is called after the last triangle and returns the number
	// of vertices and indices added since BeginGeometry.
	EndGeometry() Count

	// AddTriangle adds a counter-clockwise triangle.
	AddTriangle(a, b, c VertexID)

	// AbortGeometry is called instead of EndGeometry when tessellation
	// fails part way.
	AbortGeometry()
}

// FillGeometryBuilder receives the output of FillTessellator.
type FillGeometryBuilder interface {
	GeometryBuilder
	AddFillVertex(v FillVertex) (VertexID, error)
}

// StrokeGeometryBuilder receives the output of StrokeTessellator.
type StrokeGeometryBuilder interface {
	GeometryBuilder
	AddStrokeVertex(v StrokeVertex) (VertexID, error)
}

// Polygon is a single contour given as explicit points, with optional
// per-point attributes.
type Polygon struct {
	Points []geom.Vec2

	// Attributes holds NumAttributes floats per point, in point order.
	Attributes    []float32
	NumAttributes int

	Closed bool
}

// attributes returns the attributes of point i, or nil.
func (p Polygon) attributes(i int) []float32 {
	if p.NumAttributes == 0 {
		return nil
	}
	return p.Attributes[i*p.NumAttributes : (i+1)*p.NumAttributes]
}
