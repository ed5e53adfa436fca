package text

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/canvas"
)

// Font is a parsed TrueType or OpenType font.
type Font struct {
	name    string
	outline *opentype.Font
	shaping *font.Font
	buf     sfnt.Buffer
}

// LoadFont parses font data. Collections are not supported.
func LoadFont(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, canvas.NewError(canvas.KindFontParse, "text: empty font data")
	}
	outline, err := opentype.Parse(data)
	if err != nil {
		return nil, canvas.WrapError(canvas.KindFontParse, fmt.Errorf("text: parse outlines: %w", err))
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, canvas.WrapError(canvas.KindFontParse, fmt.Errorf("text: parse shaping tables: %w", err))
	}
	f := &Font{outline: outline, shaping: face.Font}
	if name, err := outline.Name(&f.buf, sfnt.NameIDFamily); err == nil {
		f.name = name
	}
	return f, nil
}

// LoadFontFile reads and parses the font at path.
func LoadFontFile(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, canvas.IOError(err)
	}
	return LoadFont(data)
}

// Name returns the family name, or "" when the font has none.
func (f *Font) Name() string { return f.name }

// Metrics holds vertical font metrics in pixels at one size. Descent is
// positive below the baseline.
type Metrics struct {
	Ascent    float32
	Descent   float32
	LineGap   float32
	XHeight   float32
	CapHeight float32
}

// Height returns the distance between consecutive baselines.
func (m Metrics) Height() float32 { return m.Ascent + m.Descent + m.LineGap }

// Metrics returns the metrics of f at size pixels per em.
func (f *Font) Metrics(size float32) (Metrics, error) {
	m, err := f.outline.Metrics(&f.buf, toFixed(size), xfont.HintingNone)
	if err != nil {
		return Metrics{}, canvas.WrapError(canvas.KindFontInfoExtraction, fmt.Errorf("text: metrics of %q: %w", f.name, err))
	}
	return Metrics{
		Ascent:    fromFixed(m.Ascent),
		Descent:   fromFixed(m.Descent),
		LineGap:   max(0, fromFixed(m.Height-m.Ascent-m.Descent)),
		XHeight:   fromFixed(m.XHeight),
		CapHeight: fromFixed(m.CapHeight),
	}, nil
}

// GlyphIndex returns the glyph of r, or 0 when the font does not map it.
func (f *Font) GlyphIndex(r rune) uint32 {
	gi, err := f.outline.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return uint32(gi)
}

// segments loads the outline of glyph id scaled to size. Glyphs without
// an outline return no segments and no error.
func (f *Font) segments(id uint32, size float32) ([]sfnt.Segment, error) {
	segs, err := f.outline.LoadGlyph(&f.buf, sfnt.GlyphIndex(id), toFixed(size), nil)
	switch {
	case errors.Is(err, sfnt.ErrNotFound), errors.Is(err, sfnt.ErrColoredGlyph):
		return nil, nil
	case err != nil:
		return nil, canvas.WrapError(canvas.KindFontInfoExtraction, fmt.Errorf("text: glyph %d of %q: %w", id, f.name, err))
	}
	return segs, nil
}

func toFixed(v float32) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func fromFixed(v fixed.Int26_6) float32 { return float32(v) / 64 }
