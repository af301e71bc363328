package mesh

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/draw/geom"
	"github.com/gogpu/draw/path"
	"github.com/gogpu/draw/tess"
)

func TestAddTriangleReversesWinding(t *testing.T) {
	m := New()
	b := NewGeometryBuilder(m, geom.Identity(), SingleColor{})
	b.BeginGeometry()
	b.AddTriangle(3, 7, 11)
	b.AddTriangle(0, 1, 2)

	want := []uint32{11, 7, 3, 2, 1, 0}
	if diff := cmp.Diff(want, m.Indices()); diff != "" {
		t.Errorf("indices (-want +got):\n%s", diff)
	}
}

func TestAddFillVertexTransforms(t *testing.T) {
	m := New()
	m.PushVertex(f32.Vec3{}, f32.Vec4{}, f32.Vec2{}, Normal2D)

	red := f32.Vec4{1, 0, 0, 1}
	b := NewGeometryBuilder(m, geom.Translation(geom.V3(10, 20, 5)), SingleColor{Color: red})
	b.BeginGeometry()
	id, err := b.AddFillVertex(tess.FillVertex{Position: geom.V2(1, 2)})
	if err != nil {
		t.Fatal(err)
	}
	if id != 1 {
		t.Errorf("id = %d, want absolute index 1", id)
	}
	got := m.Vertex(1)
	want := Vertex{Point: f32.Vec3{11, 22, 5}, Color: red}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("vertex (-want +got):\n%s", diff)
	}
	if m.Normals()[1] != Normal2D {
		t.Errorf("normal = %v, want +Z", m.Normals()[1])
	}
	if c := b.EndGeometry(); c != (tess.Count{Vertices: 1}) {
		t.Errorf("EndGeometry = %+v, want 1 vertex", c)
	}
}

func TestVertexModes(t *testing.T) {
	tests := []struct {
		name      string
		mode      VertexMode
		attrs     []float32
		wantColor f32.Vec4
		wantUV    f32.Vec2
	}{
		{"single color", SingleColor{Color: f32.Vec4{0, 0, 1, 1}}, nil, f32.Vec4{0, 0, 1, 1}, f32.Vec2{}},
		{"color per point", ColorPerPoint{}, []float32{0.1, 0.2, 0.3, 0.4}, f32.Vec4{0.1, 0.2, 0.3, 0.4}, f32.Vec2{}},
		{"tex coords per point", TexCoordsPerPoint{}, []float32{0.25, 0.75}, f32.Vec4{1, 1, 1, 1}, f32.Vec2{0.25, 0.75}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, uv := tt.mode.Resolve(tt.attrs)
			if c != tt.wantColor || uv != tt.wantUV {
				t.Errorf("Resolve = %v, %v; want %v, %v", c, uv, tt.wantColor, tt.wantUV)
			}
		})
	}
}

func TestAbortGeometryPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic from AbortGeometry")
		}
	}()
	NewGeometryBuilder(New(), geom.Identity(), SingleColor{}).AbortGeometry()
}

func TestTooManyVertices(t *testing.T) {
	m := New()
	b := NewGeometryBuilder(m, geom.Identity(), SingleColor{})
	b.limit = 2
	b.BeginGeometry()
	for i := 0; i < 2; i++ {
		if _, err := b.AddStrokeVertex(tess.StrokeVertex{}); err != nil {
			t.Fatalf("vertex %d: %v", i, err)
		}
	}
	if _, err := b.AddStrokeVertex(tess.StrokeVertex{}); !errors.Is(err, tess.ErrTooManyVertices) {
		t.Errorf("err = %v, want ErrTooManyVertices", err)
	}
	if m.CountVertices() != 2 {
		t.Errorf("CountVertices = %d, want 2", m.CountVertices())
	}
}

func TestFillRectIntoMesh(t *testing.T) {
	pb := path.NewBuilder()
	pb.Rect(geom.RectFromWH(100, 100))

	m := New()
	red := f32.Vec4{1, 0, 0, 1}
	b := NewGeometryBuilder(m, geom.Identity(), SingleColor{Color: red})
	if err := tess.NewFillTessellator().TessellatePath(pb.Build(), tess.DefaultFillOptions(), b); err != nil {
		t.Fatal(err)
	}
	if m.CountVertices() != 4 || m.CountIndices() != 6 {
		t.Fatalf("counts = %d/%d, want 4/6", m.CountVertices(), m.CountIndices())
	}
	for i, c := range m.Colors() {
		if c != red {
			t.Errorf("color %d = %v, want red", i, c)
		}
	}
	// Every triangle is clockwise in the mesh.
	pts := m.Points()
	idx := m.Indices()
	for i := 0; i < len(idx); i += 3 {
		a, bb, c := pts[idx[i]], pts[idx[i+1]], pts[idx[i+2]]
		cross := (bb[0]-a[0])*(c[1]-a[1]) - (bb[1]-a[1])*(c[0]-a[0])
		if cross >= 0 {
			t.Errorf("triangle %d is not clockwise", i/3)
		}
	}
	if err := m.Validate(); err != nil {
		t.Error(err)
	}
}
