package geom

import (
	"math"
	"testing"
)

const epsilon = 1e-5

func vecNear(a, b Vec3) bool {
	return math.Abs(float64(a.X-b.X)) < epsilon &&
		math.Abs(float64(a.Y-b.Y)) < epsilon &&
		math.Abs(float64(a.Z-b.Z)) < epsilon
}

func TestIdentity(t *testing.T) {
	m := Identity()
	if !m.IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
	p := V3(3, -4, 5)
	if got := m.TransformPoint(p); got != p {
		t.Errorf("TransformPoint = %v, want %v", got, p)
	}
}

func TestTransforms(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"translation", Translation(V3(10, 20, 30)), V3(1, 2, 3), V3(11, 22, 33)},
		{"scaling", Scaling(V3(2, 3, 4)), V3(1, 1, 1), V3(2, 3, 4)},
		{"rotate z quarter", RotationZ(math.Pi / 2), V3(1, 0, 0), V3(0, 1, 0)},
		{"rotate x quarter", RotationX(math.Pi / 2), V3(0, 1, 0), V3(0, 0, 1)},
		{"rotate y quarter", RotationY(math.Pi / 2), V3(0, 0, 1), V3(1, 0, 0)},
		{"euler z only", RotationEuler(V3(0, 0, math.Pi)), V3(1, 0, 0), V3(-1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.in); !vecNear(got, tt.want) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMulOrder(t *testing.T) {
	// m applies the rotation first, then the translation.
	m := Translation(V3(10, 0, 0)).Mul(RotationZ(math.Pi / 2))
	got := m.TransformPoint2(V2(1, 0))
	if want := V3(10, 1, 0); !vecNear(got, want) {
		t.Errorf("TransformPoint2 = %v, want %v", got, want)
	}
}

func TestIs2D(t *testing.T) {
	if !RotationZ(1).Mul(Translation(V3(1, 2, 0))).Is2D() {
		t.Error("z rotation with xy translation should be 2D")
	}
	if RotationX(1).Is2D() {
		t.Error("x rotation should not be 2D")
	}
}

func TestRectHelpers(t *testing.T) {
	r := RectFromXYWH(10, 20, 100, 50)
	if r.W() != 100 || r.H() != 50 {
		t.Errorf("size = %vx%v, want 100x50", r.W(), r.H())
	}
	if c := r.Center(); c != V2(10, 20) {
		t.Errorf("Center = %v, want (10,20)", c)
	}
	b := BoundingRect([]Vec2{{X: 1, Y: 5}, {X: -3, Y: 2}, {X: 4, Y: -1}})
	if b.Min != V2(-3, -1) || b.Max != V2(4, 5) {
		t.Errorf("BoundingRect = %+v", b)
	}
	if !(Rect{}).IsEmpty() {
		t.Error("zero Rect should be empty")
	}
	corners := RectFromWH(100, 100).Corners()
	if c := Centroid(corners[:]); c != (Vec2{}) {
		t.Errorf("Centroid = %v, want origin", c)
	}
}
