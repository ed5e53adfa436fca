package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
)

func TestPixelFormatBytesPerPixel(t *testing.T) {
	tests := []struct {
		f    PixelFormat
		want int
		name string
	}{
		{PixelFormatRGBA8, 4, "RGBA8"},
		{PixelFormatRGB8, 3, "RGB8"},
		{PixelFormatGray8, 1, "Gray8"},
		{PixelFormat(9), 0, "PixelFormat(9)"},
	}
	for _, tt := range tests {
		if got := tt.f.BytesPerPixel(); got != tt.want {
			t.Errorf("%v.BytesPerPixel() = %d, want %d", tt.f, got, tt.want)
		}
		if got := tt.f.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
	}
}

func TestImageInfoValidate(t *testing.T) {
	if err := NewImageInfo(0, 4, 4, PixelFormatRGBA8).Validate(); err != nil {
		t.Errorf("valid info: %v", err)
	}
	if err := NewImageInfo(0, 0, 4, PixelFormatRGBA8).Validate(); !errors.Is(err, ErrGeneral) {
		t.Errorf("zero width: got %v, want ErrGeneral", err)
	}
	if err := NewImageInfo(0, 4, 4, PixelFormat(7)).Validate(); !errors.Is(err, ErrUnsupportedImageFormat) {
		t.Errorf("bad format: got %v, want ErrUnsupportedImageFormat", err)
	}
}

func TestImageFlagsHas(t *testing.T) {
	f := ImageRepeatX | ImageFlipY
	if !f.Has(ImageRepeatX) || !f.Has(ImageRepeatX|ImageFlipY) || f.Has(ImageRepeatY) {
		t.Errorf("Has mismatch for %b", f)
	}
}

func TestImageSourceFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 255})

	s := ImageSourceFromImage(src)
	if s.Format != PixelFormatRGBA8 || s.Width != 2 || s.Height != 1 {
		t.Fatalf("source = %v %dx%d", s.Format, s.Width, s.Height)
	}
	if got := s.At(1, 0); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("At(1,0) = %v", got)
	}

	g := ImageSourceFromImage(image.NewGray(image.Rect(0, 0, 3, 3)))
	if g.Format != PixelFormatGray8 {
		t.Errorf("gray source format = %v", g.Format)
	}
}

func TestImageSourceSubImageRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Pix[img.PixOffset(2, 1)] = 200
	sub := img.SubImage(image.Rect(2, 1, 4, 3)).(*image.RGBA)

	s := NewImageSourceRGBA(sub)
	if s.Width != 2 || s.Height != 2 {
		t.Fatalf("dimensions = %dx%d", s.Width, s.Height)
	}
	if s.Row(0)[0] != 200 {
		t.Errorf("Row(0)[0] = %d, want 200", s.Row(0)[0])
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestImageSourceValidate(t *testing.T) {
	short := NewImageSourceRGB(2, 2, make([]byte, 11))
	if err := short.Validate(); !errors.Is(err, ErrGeneral) {
		t.Errorf("short pix: got %v", err)
	}
	exact := NewImageSourceRGB(2, 2, make([]byte, 12))
	if err := exact.Validate(); err != nil {
		t.Errorf("exact pix: %v", err)
	}
}

func TestLoadImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{0, 0, 255, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	s, err := LoadImage(&buf)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if w, h := s.Dimensions(); w != 3 || h != 2 {
		t.Errorf("Dimensions = %dx%d", w, h)
	}
	if got := s.At(0, 0); got.B != 255 || got.A != 255 {
		t.Errorf("At(0,0) = %v", got)
	}

	if _, err := LoadImage(bytes.NewReader([]byte("not an image"))); !errors.Is(err, ErrImage) {
		t.Errorf("garbage: got %v, want ErrImage", err)
	}
	if _, err := LoadImageFile(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, ErrIO) {
		t.Errorf("missing file: got %v, want ErrIO", err)
	}
}
