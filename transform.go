package canvas

import "math"

// Transform is a 2D affine matrix stored column-major as [a, b, c, d, e, f]:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
type Transform [6]float32

// Identity returns the identity transform.
func Identity() Transform { return Transform{1, 0, 0, 1, 0, 0} }

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float32) Transform { return Transform{1, 0, 0, 1, tx, ty} }

// Scale returns a scale by (sx, sy).
func Scale(sx, sy float32) Transform { return Transform{sx, 0, 0, sy, 0, 0} }

// Rotate returns a rotation by angle radians.
func Rotate(angle float32) Transform {
	s, c := math.Sincos(float64(angle))
	return Transform{float32(c), float32(s), float32(-s), float32(c), 0, 0}
}

// Multiply returns t followed by o, i.e. o * t applied to column vectors.
func (t Transform) Multiply(o Transform) Transform {
	return Transform{
		t[0]*o[0] + t[1]*o[2],
		t[0]*o[1] + t[1]*o[3],
		t[2]*o[0] + t[3]*o[2],
		t[2]*o[1] + t[3]*o[3],
		t[4]*o[0] + t[5]*o[2] + o[4],
		t[4]*o[1] + t[5]*o[3] + o[5],
	}
}

// Inverse returns the inverse of t. A singular matrix yields the identity.
func (t Transform) Inverse() Transform {
	det := float64(t[0])*float64(t[3]) - float64(t[2])*float64(t[1])
	if det > -1e-6 && det < 1e-6 {
		return Identity()
	}
	inv := 1 / det
	return Transform{
		float32(float64(t[3]) * inv),
		float32(-float64(t[1]) * inv),
		float32(-float64(t[2]) * inv),
		float32(float64(t[0]) * inv),
		float32((float64(t[2])*float64(t[5]) - float64(t[3])*float64(t[4])) * inv),
		float32((float64(t[1])*float64(t[4]) - float64(t[0])*float64(t[5])) * inv),
	}
}

// Apply transforms the point (x, y).
func (t Transform) Apply(x, y float32) (float32, float32) {
	return x*t[0] + y*t[2] + t[4], x*t[1] + y*t[3] + t[5]
}

// Average returns the mean scale factor of t.
func (t Transform) Average() float32 {
	sx := math.Hypot(float64(t[0]), float64(t[2]))
	sy := math.Hypot(float64(t[1]), float64(t[3]))
	return float32((sx + sy) * 0.5)
}

// ToMat3x4 expands t to three vec4 columns, the layout of a mat3 uniform
// under std140 rules.
func (t Transform) ToMat3x4() [12]float32 {
	return [12]float32{
		t[0], t[1], 0, 0,
		t[2], t[3], 0, 0,
		t[4], t[5], 1, 0,
	}
}
