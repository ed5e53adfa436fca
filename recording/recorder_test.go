package recording

import (
	"errors"
	"image"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend/void"
)

func solid() canvas.Params {
	return canvas.NewParams(nil, canvas.SolidPaint(canvas.Red), canvas.NoScissor(), 1, 1, -1)
}

func newStoreWithImage(t *testing.T, r canvas.ImageAllocator) (*canvas.ImageStore, canvas.ImageID) {
	t.Helper()
	store := canvas.NewImageStore()
	id, err := store.Alloc(r, canvas.NewImageInfo(0, 64, 64, canvas.PixelFormatRGBA8))
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	return store, id
}

func TestRenderTargetSwitch(t *testing.T) {
	rec := New()
	store, id := newStoreWithImage(t, rec)
	rec.Reset()

	fill := canvas.NewCommand(canvas.ConvexFill{Params: solid()})
	fill.Drawables = []canvas.Drawable{{Fill: canvas.Range(0, 4)}}
	cmds := []canvas.Command{
		canvas.NewCommand(canvas.SetRenderTarget{Target: canvas.ImageTarget(id)}),
		canvas.NewCommand(canvas.ClearRect{Width: 64, Height: 64, Color: canvas.Transparent}),
		fill,
	}
	if err := rec.Render(store, make([]canvas.Vertex, 4), cmds); err != nil {
		t.Fatalf("Render: %v", err)
	}

	switches := rec.TargetSwitches()
	if len(switches) != 1 || switches[0] != canvas.ImageTarget(id) {
		t.Fatalf("TargetSwitches() = %v, want [%v]", switches, id)
	}
	want := []string{"target " + id.String(), "clear 0,0 64x64", "convex-fill(FillGradient)"}
	if got := rec.Lines(); !slices.Equal(got, want) {
		t.Errorf("trace = %v, want %v", got, want)
	}
}

func TestConcaveFillStencilBeforeFill(t *testing.T) {
	rec := New(WithAntialias(false))
	cmd := canvas.NewCommand(canvas.ConcaveFill{StencilParams: canvas.StencilParams(), FillParams: solid()})
	cmd.Drawables = []canvas.Drawable{{Fill: canvas.Range(0, 5), Stroke: canvas.Range(5, 6)}}
	cmd.TriangleVerts = canvas.Range(11, 4)

	if err := rec.Render(canvas.NewImageStore(), make([]canvas.Vertex, 15), []canvas.Command{cmd}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := []string{"stencil(Stencil)", "fill(FillGradient)"}
	if got := rec.Lines(); !slices.Equal(got, want) {
		t.Errorf("trace = %v, want %v", got, want)
	}
}

func TestStencilStrokeParamsOrder(t *testing.T) {
	rec := New()
	base, aa := canvas.NewStencilStrokeParams(nil, canvas.SolidPaint(canvas.Blue), canvas.NoScissor(), 4, 1)
	cmd := canvas.NewCommand(canvas.StencilStroke{Params1: base, Params2: aa})
	cmd.Drawables = []canvas.Drawable{{Stroke: canvas.Range(0, 8)}}

	if err := rec.Render(nil, make([]canvas.Vertex, 8), []canvas.Command{cmd}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	passes := rec.Passes()
	if len(passes) != 3 {
		t.Fatalf("got %d passes, want 3", len(passes))
	}
	if passes[0].Params != base || passes[1].Params != aa {
		t.Error("Params1 must be applied before Params2")
	}
	if passes[2].Stage != canvas.StageStencilStrokeClear {
		t.Errorf("last stage = %v, want stencil clear", passes[2].Stage)
	}
}

func TestRejectedFrameRecordsNothing(t *testing.T) {
	rec := New()
	cmd := canvas.NewCommand(canvas.Stroke{Params: solid()})
	cmd.Drawables = []canvas.Drawable{{Stroke: canvas.Range(0, 10)}}

	err := rec.Render(nil, make([]canvas.Vertex, 4), []canvas.Command{cmd})
	if !errors.Is(err, canvas.ErrVertexRangeOutOfBounds) {
		t.Fatalf("Render = %v, want ErrVertexRangeOutOfBounds", err)
	}
	if len(rec.Events()) != 0 {
		t.Errorf("recorded %d events for a rejected frame", len(rec.Events()))
	}
	if rec.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", rec.Frames())
	}
}

func TestImageEvents(t *testing.T) {
	rec := New()
	store, id := newStoreWithImage(t, rec)

	src := canvas.NewImageSourceRGBA(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	if err := store.Update(rec, id, src, 4, 4); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := store.Update(rec, id, src, 60, 0); !errors.Is(err, canvas.ErrImageUpdateOutOfBounds) {
		t.Errorf("Update out of bounds = %v", err)
	}
	store.Remove(rec, id)

	want := []string{"alloc 64x64 RGBA8", "update 8x8 at 4,4", "delete " + id.String()}
	if got := rec.Lines(); !slices.Equal(got, want) {
		t.Errorf("trace = %v, want %v", got, want)
	}
	for _, e := range rec.Events() {
		if e.Frame != -1 {
			t.Errorf("%v: Frame = %d, want -1 outside Render", e, e.Frame)
		}
	}
}

func TestTeeForwards(t *testing.T) {
	inner := void.New()
	rec := New(WithRenderer(inner))
	rec.SetSize(32, 16, 1)
	if w, h, _ := inner.Size(); w != 32 || h != 16 {
		t.Errorf("inner size = %dx%d, want 32x16", w, h)
	}

	store, _ := newStoreWithImage(t, rec)
	if err := rec.Render(store, nil, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if inner.Frames() != 1 {
		t.Errorf("inner.Frames() = %d, want 1", inner.Frames())
	}
	if _, err := rec.Screenshot(); !errors.Is(err, canvas.ErrGeneral) {
		t.Errorf("Screenshot = %v, want void's ErrGeneral", err)
	}
}

func TestString(t *testing.T) {
	rec := New()
	rec.SetSize(10, 20, 2)
	if got := rec.String(); !strings.HasPrefix(got, "size 10x20@2\n") {
		t.Errorf("String() = %q", got)
	}
	img, err := rec.Screenshot()
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 20 {
		t.Errorf("Screenshot bounds = %v", img.Bounds())
	}
}
