package canvas

import (
	"math"
	"testing"
)

func approx(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-4 }

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name   string
		tr     Transform
		x, y   float32
		wx, wy float32
	}{
		{"identity", Identity(), 3, 4, 3, 4},
		{"translate", Translate(10, -2), 3, 4, 13, 2},
		{"scale", Scale(2, 3), 3, 4, 6, 12},
		{"rotate 90", Rotate(math.Pi / 2), 1, 0, 0, 1},
		{"scale then translate", Scale(2, 2).Multiply(Translate(1, 1)), 1, 1, 3, 3},
		{"translate then scale", Translate(1, 1).Multiply(Scale(2, 2)), 1, 1, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.tr.Apply(tt.x, tt.y)
			if !approx(x, tt.wx) || !approx(y, tt.wy) {
				t.Errorf("Apply(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestTransformInverse(t *testing.T) {
	tr := Rotate(0.3).Multiply(Scale(2, 0.5)).Multiply(Translate(7, -3))
	x, y := tr.Inverse().Apply(tr.Apply(5, 9))
	if !approx(x, 5) || !approx(y, 9) {
		t.Errorf("round trip = (%v, %v)", x, y)
	}
	if Scale(0, 1).Inverse() != Identity() {
		t.Error("singular inverse should be identity")
	}
}

func TestTransformToMat3x4(t *testing.T) {
	m := Transform{1, 2, 3, 4, 5, 6}.ToMat3x4()
	want := [12]float32{1, 2, 0, 0, 3, 4, 0, 0, 5, 6, 1, 0}
	if m != want {
		t.Errorf("ToMat3x4 = %v", m)
	}
}
