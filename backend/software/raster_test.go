package software

import (
	"testing"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/internal/parallel"
)

func TestForEachTriangleCounts(t *testing.T) {
	verts := make([]canvas.Vertex, 6)
	tests := []struct {
		topo canvas.Topology
		want int
	}{
		{canvas.TriangleFan, 4},
		{canvas.TriangleStrip, 4},
		{canvas.TriangleList, 2},
	}
	for _, tt := range tests {
		t.Run(tt.topo.String(), func(t *testing.T) {
			n := 0
			forEachTriangle(verts, tt.topo, func(a, b, c canvas.Vertex) { n++ })
			if n != tt.want {
				t.Errorf("got %d triangles, want %d", n, tt.want)
			}
		})
	}
}

// A fan over a square must touch every interior pixel exactly once, even
// where the triangles share an edge through pixel centers.
func TestRasterizeSharedEdgeOnce(t *testing.T) {
	const size = 8
	hits := make([]int, size*size)
	quad := []canvas.Vertex{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 8}, {X: 0, Y: 8}}
	forEachTriangle(quad, canvas.TriangleFan, func(a, b, c canvas.Vertex) {
		rasterize(size, parallel.Band{Y1: size}, a, b, c, func(x, y int, _, _ float32, _ bool) {
			hits[y*size+x]++
		})
	})
	for i, h := range hits {
		if h != 1 {
			t.Fatalf("pixel (%d,%d) hit %d times", i%size, i/size, h)
		}
	}
}

func TestRasterizeWinding(t *testing.T) {
	var fronts, backs int
	frag := func(_, _ int, _, _ float32, front bool) {
		if front {
			fronts++
		} else {
			backs++
		}
	}
	a, b, c := canvas.Vertex{X: 0, Y: 0}, canvas.Vertex{X: 4, Y: 0}, canvas.Vertex{X: 0, Y: 4}
	rasterize(4, parallel.Band{Y1: 4}, a, b, c, frag)
	rasterize(4, parallel.Band{Y1: 4}, a, c, b, frag)
	if fronts == 0 || fronts != backs {
		t.Errorf("fronts = %d, backs = %d", fronts, backs)
	}
}

func TestBlendSourceOver(t *testing.T) {
	op := canvas.NewCompositeOperationState(canvas.CompositeSourceOver)
	got := blend(op, [4]float32{0.5, 0, 0, 0.5}, [4]float32{0, 0, 1, 1})
	want := [4]float32{0.5, 0, 0.5, 1}
	for i := range got {
		if d := got[i] - want[i]; d > 1e-6 || d < -1e-6 {
			t.Fatalf("blend = %v, want %v", got, want)
		}
	}
}

func TestPipelineStages(t *testing.T) {
	tests := []struct {
		stage   canvas.PassStage
		rule    canvas.FillRule
		color   bool
		stencil bool
	}{
		{canvas.StageConvexFill, canvas.FillRuleNonZero, true, false},
		{canvas.StageStencil, canvas.FillRuleNonZero, false, true},
		{canvas.StageStencil, canvas.FillRuleEvenOdd, false, true},
		{canvas.StageFill, canvas.FillRuleNonZero, true, true},
		{canvas.StageStencilStrokeClear, canvas.FillRuleNonZero, false, true},
		{canvas.StageTriangles, canvas.FillRuleNonZero, true, false},
	}
	for _, tt := range tests {
		p := pipelineFor(tt.stage, tt.rule)
		if p.colorWrite != tt.color || p.usesStencil() != tt.stencil {
			t.Errorf("%v/%v: color=%v stencil=%v", tt.stage, tt.rule, p.colorWrite, p.usesStencil())
		}
		if p.colorWrite != tt.stage.WritesColor() {
			t.Errorf("%v: colorWrite disagrees with WritesColor", tt.stage)
		}
	}

	var s uint8
	inv := pipelineFor(canvas.StageStencil, canvas.FillRuleEvenOdd)
	inv.apply(&s, true)
	inv.apply(&s, false)
	if s != 0 {
		t.Errorf("double invert = %d, want 0", s)
	}
	wind := pipelineFor(canvas.StageStencil, canvas.FillRuleNonZero)
	wind.apply(&s, false)
	if s != 0xff {
		t.Errorf("decrement from 0 = %d, want wrap to 255", s)
	}
}
