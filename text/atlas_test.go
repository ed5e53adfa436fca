package text

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend/software"
)

func TestRasterize(t *testing.T) {
	f := loadRegular(t)
	bm, err := f.rasterize(f.GlyphIndex('H'), 32)
	if err != nil {
		t.Fatal(err)
	}
	if bm.mask == nil {
		t.Fatal("no mask for 'H'")
	}
	b := bm.mask.Bounds()
	if b.Dx() < 10 || b.Dy() < 15 {
		t.Errorf("mask %v too small for a 32px capital", b)
	}
	if bm.offset.Y >= 0 {
		t.Errorf("offset %v: capital should sit above the baseline", bm.offset)
	}
	full := 0
	for _, a := range bm.mask.Pix {
		if a == 0xff {
			full++
		}
	}
	if full == 0 {
		t.Error("mask has no fully covered pixel")
	}

	space, err := f.rasterize(f.GlyphIndex(' '), 32)
	if err != nil || space.mask != nil {
		t.Errorf("space = %v, %v; want no mask", space.mask, err)
	}
}

func newAtlas(t *testing.T, size int) (*Atlas, *canvas.ImageStore) {
	t.Helper()
	store := canvas.NewImageStore()
	return NewAtlas(store, software.New(), size), store
}

func TestAtlasCachesGlyphs(t *testing.T) {
	f := loadRegular(t)
	a, store := newAtlas(t, 128)

	g1, err := a.glyph(f, f.GlyphIndex('a'), 16)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := a.glyph(f, f.GlyphIndex('a'), 16)
	if err != nil {
		t.Fatal(err)
	}
	if g1 != g2 || a.Len() != 1 {
		t.Errorf("second lookup rasterized again: %v vs %v, %d glyphs", g1, g2, a.Len())
	}
	if _, err := a.glyph(f, f.GlyphIndex('a'), 17); err != nil {
		t.Fatal(err)
	}
	if a.Len() != 2 {
		t.Errorf("Len = %d, want 2 after a second size", a.Len())
	}

	info, err := store.Info(g1.page)
	if err != nil {
		t.Fatal(err)
	}
	if info.Format != canvas.PixelFormatGray8 || info.Width != 128 {
		t.Errorf("page info = %+v", info)
	}
}

func TestAtlasShelfPacking(t *testing.T) {
	a, _ := newAtlas(t, 32)
	var placed []image.Rectangle
	for range 6 {
		id, pos, err := a.place(10, 8)
		if err != nil {
			t.Fatal(err)
		}
		if id != a.Pages()[0] {
			t.Fatalf("placed on page %v, want the first page", id)
		}
		r := image.Rect(pos.X, pos.Y, pos.X+10, pos.Y+8)
		for _, o := range placed {
			if r.Overlaps(o) {
				t.Errorf("%v overlaps %v", r, o)
			}
		}
		placed = append(placed, r)
	}
	// Two glyphs fit on a shelf, so the third opens the second shelf.
	if got := placed[2].Min; got != image.Pt(0, 9) {
		t.Errorf("third glyph at %v, want (0,9)", got)
	}
}

func TestAtlasAddsPages(t *testing.T) {
	a, store := newAtlas(t, 16)
	for range 5 {
		if _, _, err := a.place(12, 12); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(a.Pages()); got != 5 {
		t.Errorf("%d pages, want 5", got)
	}
	a.Clear()
	if store.Len() != 0 || len(a.Pages()) != 0 || a.Len() != 0 {
		t.Errorf("Clear left %d images, %d pages", store.Len(), len(a.Pages()))
	}
}

func TestAtlasGlyphTooLarge(t *testing.T) {
	f := loadRegular(t)
	a, store := newAtlas(t, 16)
	_, err := a.glyph(f, f.GlyphIndex('W'), 64)
	if !errors.Is(err, canvas.ErrFontSizeTooLargeForAtlas) {
		t.Errorf("glyph = %v, want ErrFontSizeTooLargeForAtlas", err)
	}
	if store.Len() != 0 {
		t.Errorf("failed placement allocated %d pages", store.Len())
	}
}
