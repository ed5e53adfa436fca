package canvas

import (
	"encoding/binary"
	"math"
)

// VertexSize is the byte size of one packed vertex: four float32 values.
const VertexSize = 16

// Vertex is one entry of the shared per-frame vertex buffer.
//
// X and Y are the position in canvas pixels. U and V are texture or paint
// parameter coordinates; for stroke and fringe geometry they carry the
// anti-aliasing parameters consumed by the fragment program.
//
// The packed layout is four little-endian float32 values in the order
// x, y, u, v. Backends upload buffers in exactly this layout.
type Vertex struct {
	X, Y float32
	U, V float32
}

// NewVertex returns a vertex with the given position and coordinates.
func NewVertex(x, y, u, v float32) Vertex {
	return Vertex{X: x, Y: y, U: u, V: v}
}

// Set overwrites all four components.
func (v *Vertex) Set(x, y, u, w float32) {
	*v = Vertex{X: x, Y: y, U: u, V: w}
}

// AppendVertexBytes appends the packed representation of verts to dst.
func AppendVertexBytes(dst []byte, verts []Vertex) []byte {
	for _, v := range verts {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.X))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Y))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.U))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.V))
	}
	return dst
}

// VertexBytes returns verts packed for a raw buffer upload.
func VertexBytes(verts []Vertex) []byte {
	return AppendVertexBytes(make([]byte, 0, len(verts)*VertexSize), verts)
}

// VertexRange is a half-open interval [Offset, Offset+Count) of the shared
// vertex buffer. A range with Count == 0 is absent: it draws nothing and is
// never bounds-checked.
type VertexRange struct {
	Offset int
	Count  int
}

// Range returns the range starting at offset with count vertices.
func Range(offset, count int) VertexRange {
	return VertexRange{Offset: offset, Count: count}
}

// Empty reports whether the range references no vertices.
func (r VertexRange) Empty() bool { return r.Count <= 0 }

// End returns the exclusive end index.
func (r VertexRange) End() int { return r.Offset + r.Count }

// In reports whether the range lies within a buffer of n vertices.
// Empty ranges are always in bounds.
func (r VertexRange) In(n int) bool {
	if r.Empty() {
		return true
	}
	return r.Offset >= 0 && r.Offset <= n && r.Count <= n-r.Offset
}

// Slice returns the referenced vertices without copying.
// The caller must ensure the range is in bounds.
func (r VertexRange) Slice(verts []Vertex) []Vertex {
	if r.Empty() {
		return nil
	}
	return verts[r.Offset:r.End()]
}

// Drawable references the sub-meshes of one path: the fill triangles and
// the stroke (or anti-aliasing fringe) strip. Either range may be empty.
type Drawable struct {
	Fill   VertexRange
	Stroke VertexRange
}
