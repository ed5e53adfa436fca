package text

import "testing"

func TestShapeLatin(t *testing.T) {
	f := loadRegular(t)
	run := Shape(f, 16, "Hello")
	if len(run.Glyphs) != 5 {
		t.Fatalf("got %d glyphs, want 5", len(run.Glyphs))
	}
	if run.Direction != LeftToRight {
		t.Errorf("Direction = %v, want ltr", run.Direction)
	}
	for i := 1; i < len(run.Glyphs); i++ {
		if run.Glyphs[i].X <= run.Glyphs[i-1].X {
			t.Errorf("glyph %d at x=%v does not follow x=%v", i, run.Glyphs[i].X, run.Glyphs[i-1].X)
		}
	}
	for i, g := range run.Glyphs {
		if g.Cluster != i {
			t.Errorf("glyph %d cluster = %d", i, g.Cluster)
		}
	}
	if want := run.Glyphs[0].ID; want != f.GlyphIndex('H') {
		t.Errorf("first glyph = %d, want %d", want, f.GlyphIndex('H'))
	}
	if run.Advance <= 0 {
		t.Errorf("Advance = %v", run.Advance)
	}
}

func TestShapeScalesWithSize(t *testing.T) {
	f := loadRegular(t)
	s := NewShaper()
	small := s.Shape(f, 10, "canvas").Advance
	large := s.Shape(f, 20, "canvas").Advance
	if d := large - 2*small; d > 0.5 || d < -0.5 {
		t.Errorf("advance at 20 = %v, want about twice %v", large, small)
	}
}

func TestShapeEmpty(t *testing.T) {
	f := loadRegular(t)
	if run := Shape(f, 16, ""); len(run.Glyphs) != 0 || run.Advance != 0 {
		t.Errorf("empty string shaped to %+v", run)
	}
	if run := Shape(nil, 16, "x"); len(run.Glyphs) != 0 {
		t.Errorf("nil font shaped to %+v", run)
	}
}

func TestShapeRightToLeft(t *testing.T) {
	f := loadRegular(t)
	run := Shape(f, 16, "שלום")
	if run.Direction != RightToLeft {
		t.Errorf("Direction = %v, want rtl", run.Direction)
	}
	if len(run.Glyphs) == 0 {
		t.Fatal("no glyphs")
	}
	// Visual order puts the logically last letter first.
	if first := run.Glyphs[0].Cluster; first != 3 {
		t.Errorf("first visual glyph cluster = %d, want 3", first)
	}
}

func TestBidiSpans(t *testing.T) {
	tests := []struct {
		in    string
		spans int
		dir   Direction
	}{
		{"plain", 1, LeftToRight},
		{"שלום", 1, RightToLeft},
		{"abc שלום def", 3, LeftToRight},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			spans, dir := bidiSpans(tt.in, len([]rune(tt.in)))
			if len(spans) != tt.spans || dir != tt.dir {
				t.Errorf("bidiSpans = %d spans %v, want %d spans %v", len(spans), dir, tt.spans, tt.dir)
			}
			covered := 0
			for _, sp := range spans {
				covered += sp.end - sp.start
			}
			if covered != len([]rune(tt.in)) {
				t.Errorf("spans cover %d runes of %d", covered, len([]rune(tt.in)))
			}
		})
	}
}

func TestShaperCachesRuns(t *testing.T) {
	f := loadRegular(t)
	s := NewShaper()
	first := s.Shape(f, 16, "cached")
	again := s.Shape(f, 16, "cached")
	s.Shape(f, 18, "cached")

	if len(first.Glyphs) == 0 || &first.Glyphs[0] != &again.Glyphs[0] {
		t.Error("second Shape did not reuse the cached run")
	}
	st := s.CacheStats()
	if st.Hits != 1 || st.Misses != 2 || st.Len != 2 {
		t.Errorf("stats = %+v, want 1 hit, 2 misses, 2 entries", st)
	}
}
