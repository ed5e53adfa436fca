package text

import (
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/canvas/internal/cache"
)

// runCacheSize is the number of shaped strings a Shaper remembers.
const runCacheSize = 1024

// Direction is the writing direction of a run.
type Direction uint8

const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// Glyph is one positioned glyph. X and Y are the pen position relative to
// the run origin on the baseline, with Y growing down.
type Glyph struct {
	ID      uint32
	Cluster int
	X, Y    float32
	Advance float32
}

// Run is a shaped line of text in visual order.
type Run struct {
	Glyphs    []Glyph
	Advance   float32
	Direction Direction
}

// Shaper shapes text with HarfBuzz and caches the resulting runs. The
// glyph slices of returned runs are shared and must not be modified.
type Shaper struct {
	hb   shaping.HarfbuzzShaper
	lang language.Language
	runs *cache.Cache[runKey, Run]
}

type runKey struct {
	font *Font
	size float32
	text string
}

// NewShaper returns a shaper for English text.
func NewShaper() *Shaper {
	return &Shaper{
		lang: language.NewLanguage("en"),
		runs: cache.New[runKey, Run](runCacheSize),
	}
}

// CacheStats reports hits and misses of the shaped run cache.
func (s *Shaper) CacheStats() cache.Stats { return s.runs.Stats() }

// Shape is a convenience for NewShaper().Shape.
func Shape(f *Font, size float32, s string) Run {
	return NewShaper().Shape(f, size, s)
}

// span is a bidi run in rune indices, end exclusive.
type span struct {
	start, end int
	dir        Direction
}

// Shape lays out s as a single line at size pixels per em. Mixed
// direction text is split into bidi runs that are shaped separately and
// placed in visual order.
func (s *Shaper) Shape(f *Font, size float32, str string) Run {
	if f == nil || str == "" {
		return Run{}
	}
	return s.runs.GetOrCreate(runKey{f, size, str}, func() Run {
		return s.shape(f, size, str)
	})
}

func (s *Shaper) shape(f *Font, size float32, str string) Run {
	runes := []rune(str)
	spans, dir := bidiSpans(str, len(runes))

	face := font.NewFace(f.shaping)
	run := Run{Direction: dir}
	var pen float32
	for _, sp := range spans {
		out := s.hb.Shape(shaping.Input{
			Text:      runes,
			RunStart:  sp.start,
			RunEnd:    sp.end,
			Direction: sp.dir.di(),
			Face:      face,
			Size:      toFixed(size),
			Script:    scriptOf(runes[sp.start:sp.end]),
			Language:  s.lang,
		})
		for _, g := range out.Glyphs {
			adv := fromFixed(g.Advance)
			run.Glyphs = append(run.Glyphs, Glyph{
				ID:      uint32(g.GlyphID),
				Cluster: g.TextIndex(),
				X:       pen + fromFixed(g.XOffset),
				Y:       -fromFixed(g.YOffset),
				Advance: adv,
			})
			pen += adv
		}
	}
	run.Advance = pen
	return run
}

func (d Direction) di() di.Direction {
	if d == RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// bidiSpans splits str into directional runs in visual order. The
// paragraph direction is that of the logically first run.
func bidiSpans(str string, n int) ([]span, Direction) {
	whole := []span{{0, n, LeftToRight}}
	var p bidi.Paragraph
	if _, err := p.SetString(str); err != nil {
		return whole, LeftToRight
	}
	order, err := p.Order()
	if err != nil || order.NumRuns() == 0 {
		return whole, LeftToRight
	}

	spans := make([]span, 0, order.NumRuns())
	dir, first := LeftToRight, n
	for i := 0; i < order.NumRuns(); i++ {
		r := order.Run(i)
		start, end := r.Pos()
		sp := span{start: start, end: min(end+1, n)}
		if r.Direction() == bidi.RightToLeft {
			sp.dir = RightToLeft
		}
		if sp.start >= sp.end {
			continue
		}
		if sp.start < first {
			first, dir = sp.start, sp.dir
		}
		spans = append(spans, sp)
	}
	if len(spans) == 0 {
		return whole, LeftToRight
	}
	return spans, dir
}

// scriptOf returns the script of the first letter in runes.
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsLetter(r) {
			return language.LookupScript(r)
		}
	}
	return language.Latin
}
