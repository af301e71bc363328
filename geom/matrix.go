package geom

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Mat4 is a 4x4 transformation matrix in row-major order, laid out like
// f32.Mat4:
//
//	| m[0]  m[1]  m[2]  m[3]  |
//	| m[4]  m[5]  m[6]  m[7]  |
//	| m[8]  m[9]  m[10] m[11] |
//	| m[12] m[13] m[14] m[15] |
//
// Points are column vectors, so x' = m[0]*x + m[1]*y + m[2]*z + m[3].
type Mat4 f32.Mat4

// Identity returns the identity transformation matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation creates a translation matrix.
func Translation(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// Scaling creates a scaling matrix.
func Scaling(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// RotationX creates a rotation about the X axis (angle in radians).
func RotationX(angle float32) Mat4 {
	s, c := sincos(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY creates a rotation about the Y axis (angle in radians).
func RotationY(angle float32) Mat4 {
	s, c := sincos(angle)
	return Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotationZ creates a rotation about the Z axis (angle in radians).
func RotationZ(angle float32) Mat4 {
	s, c := sincos(angle)
	return Mat4{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotationEuler creates a rotation from Euler angles applied in X, Y, Z
// order.
func RotationEuler(v Vec3) Mat4 {
	m := Identity()
	if v.X != 0 {
		m = RotationX(v.X)
	}
	if v.Y != 0 {
		m = RotationY(v.Y).Mul(m)
	}
	if v.Z != 0 {
		m = RotationZ(v.Z).Mul(m)
	}
	return m
}

// Mul multiplies two matrices (m * o). Applying the result to a point applies
// o first, then m.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * o[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// TransformPoint applies the transformation to a 3D point.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3]
	y := m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7]
	z := m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11]
	w := m[12]*p.X + m[13]*p.Y + m[14]*p.Z + m[15]
	if w != 1 && w != 0 {
		return Vec3{X: x / w, Y: y / w, Z: z / w}
	}
	return Vec3{X: x, Y: y, Z: z}
}

// TransformPoint2 applies the transformation to a point on the z=0 plane.
func (m Mat4) TransformPoint2(p Vec2) Vec3 {
	return m.TransformPoint(Vec3{X: p.X, Y: p.Y})
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Mat4) IsIdentity() bool {
	return m == Identity()
}

// Is2D reports whether the matrix maps the z=0 plane onto itself without
// perspective, so that 2D consumers can drop the z coordinate.
func (m Mat4) Is2D() bool {
	return m[8] == 0 && m[9] == 0 && m[11] == 0 &&
		m[12] == 0 && m[13] == 0 && m[15] == 1
}

func sincos(angle float32) (float32, float32) {
	s, c := math.Sincos(float64(angle))
	return float32(s), float32(c)
}
