package canvas

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestVertexBytesLayout(t *testing.T) {
	verts := []Vertex{
		NewVertex(1, 2, 0.5, -1),
		NewVertex(10.25, -3, 0, 1),
	}
	buf := VertexBytes(verts)
	if len(buf) != len(verts)*VertexSize {
		t.Fatalf("len = %d, want %d", len(buf), len(verts)*VertexSize)
	}

	want := []float32{1, 2, 0.5, -1, 10.25, -3, 0, 1}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != w {
			t.Errorf("float %d = %v, want %v", i, got, w)
		}
	}
}

func TestAppendVertexBytesKeepsPrefix(t *testing.T) {
	dst := []byte{0xAA}
	dst = AppendVertexBytes(dst, []Vertex{{}})
	if dst[0] != 0xAA || len(dst) != 1+VertexSize {
		t.Errorf("AppendVertexBytes clobbered prefix: %v", dst)
	}
}

func TestVertexSet(t *testing.T) {
	var v Vertex
	v.Set(1, 2, 3, 4)
	if v != NewVertex(1, 2, 3, 4) {
		t.Errorf("Set = %+v", v)
	}
}

func TestVertexRangeIn(t *testing.T) {
	tests := []struct {
		name string
		r    VertexRange
		n    int
		want bool
	}{
		{"inside", Range(0, 4), 4, true},
		{"tail", Range(2, 2), 4, true},
		{"past end", Range(2, 3), 4, false},
		{"negative offset", Range(-1, 2), 4, false},
		{"empty ignores offset", Range(100, 0), 4, true},
		{"empty buffer", Range(0, 1), 0, false},
		{"end overflows", Range(2, math.MaxInt), 4, false},
		{"offset past end", Range(math.MaxInt, 1), 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.In(tt.n); got != tt.want {
				t.Errorf("%+v.In(%d) = %v, want %v", tt.r, tt.n, got, tt.want)
			}
		})
	}
}

func TestVertexRangeSlice(t *testing.T) {
	verts := make([]Vertex, 6)
	for i := range verts {
		verts[i].X = float32(i)
	}
	s := Range(2, 3).Slice(verts)
	if len(s) != 3 || s[0].X != 2 || s[2].X != 4 {
		t.Errorf("Slice = %+v", s)
	}
	if Range(3, 0).Slice(verts) != nil {
		t.Error("empty range should slice to nil")
	}
	if Range(1, 2).End() != 3 {
		t.Error("End() mismatch")
	}
}
