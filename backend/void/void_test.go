package void

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/canvas"
)

func TestRendererImages(t *testing.T) {
	r := New()
	store := canvas.NewImageStore()

	id, err := store.Alloc(r, canvas.NewImageInfo(0, 4, 4, canvas.PixelFormatRGBA8))
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}

	ok := canvas.NewImageSourceRGBA(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if err := store.Update(r, id, ok, 2, 2); err != nil {
		t.Errorf("Update in bounds: %v", err)
	}
	if err := store.Update(r, id, ok, 3, 3); !errors.Is(err, canvas.ErrImageUpdateOutOfBounds) {
		t.Errorf("Update out of bounds = %v, want ErrImageUpdateOutOfBounds", err)
	}
	gray := canvas.NewImageSourceGray(image.NewGray(image.Rect(0, 0, 1, 1)))
	if err := store.Update(r, id, gray, 0, 0); !errors.Is(err, canvas.ErrImageUpdateWithDifferentFormat) {
		t.Errorf("Update gray = %v, want ErrImageUpdateWithDifferentFormat", err)
	}

	store.Remove(r, id)
	if _, err := store.Info(id); !errors.Is(err, canvas.ErrImageIDNotFound) {
		t.Errorf("Info after Remove = %v, want ErrImageIDNotFound", err)
	}
}

func TestRendererRender(t *testing.T) {
	r := New()
	r.SetSize(64, 32, 2)
	if w, h, dpi := r.Size(); w != 64 || h != 32 || dpi != 2 {
		t.Errorf("Size() = %d, %d, %v", w, h, dpi)
	}

	verts := make([]canvas.Vertex, 4)
	cmd := canvas.NewCommand(canvas.ConvexFill{Params: canvas.StencilParams()})
	cmd.Drawables = []canvas.Drawable{{Fill: canvas.Range(0, 4)}}
	if err := r.Render(canvas.NewImageStore(), verts, []canvas.Command{cmd}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	cmd.Drawables[0].Fill = canvas.Range(2, 4)
	err := r.Render(canvas.NewImageStore(), verts, []canvas.Command{cmd})
	if !errors.Is(err, canvas.ErrVertexRangeOutOfBounds) {
		t.Errorf("Render out of range = %v, want ErrVertexRangeOutOfBounds", err)
	}
	if r.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", r.Frames())
	}
}

func TestScreenshotFails(t *testing.T) {
	if _, err := New().Screenshot(); !errors.Is(err, canvas.ErrGeneral) {
		t.Errorf("Screenshot() error = %v, want ErrGeneral", err)
	}
}
