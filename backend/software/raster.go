package software

import (
	"math"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/internal/parallel"
)

// fragmentFunc receives one covered pixel with its interpolated texture
// coordinates. front reports the winding of the source triangle.
type fragmentFunc func(x, y int, u, v float32, front bool)

// forEachTriangle splits verts into triangles according to topo. Odd strip
// triangles are reordered so the whole strip keeps one winding, as GPUs do.
func forEachTriangle(verts []canvas.Vertex, topo canvas.Topology, fn func(a, b, c canvas.Vertex)) {
	switch topo {
	case canvas.TriangleFan:
		for i := 1; i+1 < len(verts); i++ {
			fn(verts[0], verts[i], verts[i+1])
		}
	case canvas.TriangleStrip:
		for i := 0; i+2 < len(verts); i++ {
			if i%2 == 0 {
				fn(verts[i], verts[i+1], verts[i+2])
			} else {
				fn(verts[i+1], verts[i], verts[i+2])
			}
		}
	case canvas.TriangleList:
		for i := 0; i+2 < len(verts); i += 3 {
			fn(verts[i], verts[i+1], verts[i+2])
		}
	}
}

// rasterize calls frag for every pixel in rows of a target width pixels
// wide whose center lies inside the triangle. Pixels on a shared edge belong to
// exactly one of the two triangles (top-left rule), so stencil counts are
// exact across fans and strips.
func rasterize(width int, rows parallel.Band, a, b, c canvas.Vertex, frag fragmentFunc) {
	area := edge(a, b, float64(c.X), float64(c.Y))
	if area == 0 || math.IsNaN(area) {
		return
	}
	front := area > 0
	if !front {
		b, c = c, b
		area = -area
	}

	minX := max(0, int(math.Floor(float64(min(a.X, b.X, c.X)))))
	minY := max(rows.Y0, int(math.Floor(float64(min(a.Y, b.Y, c.Y)))))
	maxX := min(width-1, int(math.Ceil(float64(max(a.X, b.X, c.X)))))
	maxY := min(rows.Y1-1, int(math.Ceil(float64(max(a.Y, b.Y, c.Y)))))

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(b, c, px, py)
			w1 := edge(c, a, px, py)
			w2 := edge(a, b, px, py)
			if !inside(w0, b, c) || !inside(w1, c, a) || !inside(w2, a, b) {
				continue
			}
			l0, l1, l2 := float32(w0/area), float32(w1/area), float32(w2/area)
			frag(x, y,
				l0*a.U+l1*b.U+l2*c.U,
				l0*a.V+l1*b.V+l2*c.V,
				front)
		}
	}
}

// edge is the signed doubled area of (from, to, p).
func edge(from, to canvas.Vertex, px, py float64) float64 {
	fx, fy := float64(from.X), float64(from.Y)
	return (float64(to.X)-fx)*(py-fy) - (float64(to.Y)-fy)*(px-fx)
}

func inside(w float64, from, to canvas.Vertex) bool {
	if w != 0 {
		return w > 0
	}
	dx, dy := to.X-from.X, to.Y-from.Y
	return dy < 0 || (dy == 0 && dx > 0)
}
