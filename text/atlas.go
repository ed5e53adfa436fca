package text

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/canvas"
)

// DefaultAtlasSize is the edge length of an atlas page in pixels.
const DefaultAtlasSize = 512

// atlasPadding keeps bilinear sampling from bleeding between glyphs.
const atlasPadding = 1

// Atlas caches rasterized glyphs on Gray8 pages allocated in an image
// store. A new page is added when the current ones are full.
type Atlas struct {
	store  *canvas.ImageStore
	alloc  canvas.ImageAllocator
	size   int
	pages  []*atlasPage
	glyphs map[glyphKey]atlasGlyph
}

type atlasPage struct {
	id      canvas.ImageID
	shelves []shelf
}

// shelf is a horizontal strip of a page. Glyphs are placed left to right
// and the strip grows to the tallest glyph while it is the last one.
type shelf struct {
	y, height, x int
}

type glyphKey struct {
	font *Font
	id   uint32
	size uint32
}

type atlasGlyph struct {
	page   canvas.ImageID
	rect   image.Rectangle
	offset image.Point
}

func (g atlasGlyph) empty() bool { return g.rect.Empty() }

// NewAtlas returns an empty atlas whose pages are size×size pixels.
func NewAtlas(store *canvas.ImageStore, alloc canvas.ImageAllocator, size int) *Atlas {
	if size <= 0 {
		size = DefaultAtlasSize
	}
	return &Atlas{store: store, alloc: alloc, size: size, glyphs: make(map[glyphKey]atlasGlyph)}
}

// Pages returns the image ids of the atlas pages in allocation order.
func (a *Atlas) Pages() []canvas.ImageID {
	ids := make([]canvas.ImageID, len(a.pages))
	for i, p := range a.pages {
		ids[i] = p.id
	}
	return ids
}

// Len returns the number of cached glyphs, including empty ones.
func (a *Atlas) Len() int { return len(a.glyphs) }

// Clear removes every page from the store and forgets all glyphs.
func (a *Atlas) Clear() {
	for _, p := range a.pages {
		a.store.Remove(a.alloc, p.id)
	}
	a.pages = nil
	clear(a.glyphs)
}

// glyph returns the atlas entry of glyph id of f at size, rasterizing and
// uploading it on first use.
func (a *Atlas) glyph(f *Font, id uint32, size float32) (atlasGlyph, error) {
	key := glyphKey{f, id, math.Float32bits(size)}
	if g, ok := a.glyphs[key]; ok {
		return g, nil
	}
	bm, err := f.rasterize(id, size)
	if err != nil {
		return atlasGlyph{}, err
	}
	var g atlasGlyph
	if bm.mask != nil {
		b := bm.mask.Bounds()
		page, pos, err := a.place(b.Dx(), b.Dy())
		if err != nil {
			return atlasGlyph{}, err
		}
		if err := a.store.Update(a.alloc, page, canvas.NewImageSourceAlpha(bm.mask), pos.X, pos.Y); err != nil {
			return atlasGlyph{}, err
		}
		g = atlasGlyph{page: page, rect: b.Add(pos), offset: bm.offset}
	}
	a.glyphs[key] = g
	return g, nil
}

// place reserves a w×h region, adding a page when no existing one has
// room.
func (a *Atlas) place(w, h int) (canvas.ImageID, image.Point, error) {
	if w+atlasPadding > a.size || h+atlasPadding > a.size {
		return 0, image.Point{}, canvas.NewError(canvas.KindFontSizeTooLargeForAtlas,
			fmt.Sprintf("text: glyph of %dx%d does not fit a %d pixel atlas page", w, h, a.size))
	}
	for _, p := range a.pages {
		if pos, ok := p.allocate(w, h, a.size); ok {
			return p.id, pos, nil
		}
	}

	id, err := a.store.Alloc(a.alloc, canvas.NewImageInfo(0, a.size, a.size, canvas.PixelFormatGray8))
	if err != nil {
		return 0, image.Point{}, err
	}
	p := &atlasPage{id: id}
	a.pages = append(a.pages, p)
	canvas.Logger().Debug("text: atlas page added", "id", id, "pages", len(a.pages), "size", a.size)

	pos, _ := p.allocate(w, h, a.size)
	return id, pos, nil
}

func (p *atlasPage) allocate(w, h, size int) (image.Point, bool) {
	pw, ph := w+atlasPadding, h+atlasPadding
	for i := range p.shelves {
		s := &p.shelves[i]
		if s.x+pw > size {
			continue
		}
		if h > s.height {
			if i != len(p.shelves)-1 || s.y+ph > size {
				continue
			}
			s.height = h
		}
		pos := image.Pt(s.x, s.y)
		s.x += pw
		return pos, true
	}

	y := 0
	if n := len(p.shelves); n > 0 {
		last := p.shelves[n-1]
		y = last.y + last.height + atlasPadding
	}
	if y+ph > size {
		return image.Point{}, false
	}
	p.shelves = append(p.shelves, shelf{y: y, height: h, x: pw})
	return image.Pt(0, y), true
}
