package canvas

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strconv"

	// Standard decoders registered for LoadImage.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	// Extended decoders registered for LoadImage.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageID is an opaque, renderer-independent handle to an image held by an
// ImageStore. The zero value never refers to an image.
type ImageID uint64

// String returns a short debug form such as "image#5".
func (id ImageID) String() string {
	return "image#" + strconv.FormatUint(uint64(id), 10)
}

// PixelFormat is the memory layout of image pixels.
type PixelFormat uint8

const (
	// PixelFormatRGBA8 stores 4 bytes per pixel: R, G, B, A.
	PixelFormatRGBA8 PixelFormat = iota
	// PixelFormatRGB8 stores 3 bytes per pixel: R, G, B.
	PixelFormatRGB8
	// PixelFormatGray8 stores 1 byte per pixel, used for alpha masks.
	PixelFormatGray8
)

var pixelFormatNames = [...]string{
	PixelFormatRGBA8: "RGBA8",
	PixelFormatRGB8:  "RGB8",
	PixelFormatGray8: "Gray8",
}

// String returns the format name.
func (f PixelFormat) String() string {
	if int(f) < len(pixelFormatNames) {
		return pixelFormatNames[f]
	}
	return "PixelFormat(" + strconv.Itoa(int(f)) + ")"
}

// BytesPerPixel returns the pixel size in bytes, or 0 for unknown formats.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGBA8:
		return 4
	case PixelFormatRGB8:
		return 3
	case PixelFormatGray8:
		return 1
	}
	return 0
}

// ImageFlags control sampling and storage of an image.
type ImageFlags uint32

const (
	// ImageGenerateMipmaps requests a mipmap chain on allocation.
	ImageGenerateMipmaps ImageFlags = 1 << iota
	// ImageRepeatX repeats the image horizontally when sampled outside [0, 1].
	ImageRepeatX
	// ImageRepeatY repeats the image vertically when sampled outside [0, 1].
	ImageRepeatY
	// ImageFlipY flips the image vertically when sampled.
	ImageFlipY
	// ImagePremultiplied marks pixel data as alpha-premultiplied.
	ImagePremultiplied
	// ImageNearest selects nearest-neighbor instead of linear filtering.
	ImageNearest
)

// Has reports whether all bits of flag are set.
func (f ImageFlags) Has(flag ImageFlags) bool { return f&flag == flag }

// ImageInfo describes an image at allocation time.
type ImageInfo struct {
	Flags  ImageFlags
	Width  int
	Height int
	Format PixelFormat
}

// NewImageInfo returns an ImageInfo for the given size and format.
func NewImageInfo(flags ImageFlags, width, height int, format PixelFormat) ImageInfo {
	return ImageInfo{Flags: flags, Width: width, Height: height, Format: format}
}

// Size returns the image dimensions.
func (i ImageInfo) Size() (width, height int) { return i.Width, i.Height }

// Bounds returns the image rectangle anchored at the origin.
func (i ImageInfo) Bounds() image.Rectangle { return image.Rect(0, 0, i.Width, i.Height) }

// Validate reports a general error for non-positive dimensions and an
// unsupported-format error for unknown pixel formats.
func (i ImageInfo) Validate() error {
	if i.Width <= 0 || i.Height <= 0 {
		return GeneralError(fmt.Sprintf("invalid image size %dx%d", i.Width, i.Height))
	}
	if i.Format.BytesPerPixel() == 0 {
		return &Error{Kind: KindUnsupportedImageFormat, Msg: i.Format.String()}
	}
	return nil
}

// ImageSource is a caller-supplied pixel payload for image uploads.
// Rows are Stride bytes apart; only the first Width*BytesPerPixel bytes of
// each row are read.
type ImageSource struct {
	Format PixelFormat
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// NewImageSourceRGBA wraps an *image.RGBA without copying.
func NewImageSourceRGBA(img *image.RGBA) ImageSource {
	b := img.Bounds()
	return ImageSource{
		Format: PixelFormatRGBA8,
		Width:  b.Dx(),
		Height: b.Dy(),
		Stride: img.Stride,
		Pix:    img.Pix[img.PixOffset(b.Min.X, b.Min.Y):],
	}
}

// NewImageSourceGray wraps an *image.Gray without copying.
func NewImageSourceGray(img *image.Gray) ImageSource {
	b := img.Bounds()
	return ImageSource{
		Format: PixelFormatGray8,
		Width:  b.Dx(),
		Height: b.Dy(),
		Stride: img.Stride,
		Pix:    img.Pix[img.PixOffset(b.Min.X, b.Min.Y):],
	}
}

// NewImageSourceAlpha wraps an *image.Alpha as a Gray8 source without copying.
func NewImageSourceAlpha(img *image.Alpha) ImageSource {
	b := img.Bounds()
	return ImageSource{
		Format: PixelFormatGray8,
		Width:  b.Dx(),
		Height: b.Dy(),
		Stride: img.Stride,
		Pix:    img.Pix[img.PixOffset(b.Min.X, b.Min.Y):],
	}
}

// NewImageSourceRGB wraps tightly packed RGB8 pixels.
func NewImageSourceRGB(width, height int, pix []byte) ImageSource {
	return ImageSource{
		Format: PixelFormatRGB8,
		Width:  width,
		Height: height,
		Stride: width * 3,
		Pix:    pix,
	}
}

// ImageSourceFromImage returns an image source for img.
// *image.RGBA is wrapped without copying, *image.Gray and *image.Alpha are
// wrapped as Gray8, and every other image is converted to RGBA8 with
// golang.org/x/image/draw.
func ImageSourceFromImage(img image.Image) ImageSource {
	switch m := img.(type) {
	case *image.RGBA:
		return NewImageSourceRGBA(m)
	case *image.Gray:
		return NewImageSourceGray(m)
	case *image.Alpha:
		return NewImageSourceAlpha(m)
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return NewImageSourceRGBA(dst)
}

// Dimensions returns the source size.
func (s ImageSource) Dimensions() (width, height int) { return s.Width, s.Height }

// RowBytes returns the number of meaningful bytes per row.
func (s ImageSource) RowBytes() int { return s.Width * s.Format.BytesPerPixel() }

// Row returns the meaningful bytes of row y.
func (s ImageSource) Row(y int) []byte {
	off := y * s.Stride
	return s.Pix[off : off+s.RowBytes()]
}

// Validate checks that Pix holds Height rows of Stride bytes.
func (s ImageSource) Validate() error {
	if s.Format.BytesPerPixel() == 0 {
		return &Error{Kind: KindUnsupportedImageFormat, Msg: s.Format.String()}
	}
	if s.Width < 0 || s.Height < 0 || s.Stride < s.RowBytes() {
		return GeneralError(fmt.Sprintf("malformed image source %dx%d stride %d", s.Width, s.Height, s.Stride))
	}
	if s.Height > 0 && len(s.Pix) < (s.Height-1)*s.Stride+s.RowBytes() {
		return GeneralError(fmt.Sprintf("image source too short: %d bytes for %dx%d", len(s.Pix), s.Width, s.Height))
	}
	return nil
}

// At returns the color at (x, y); it is intended for tests and software
// backends, not bulk conversion.
func (s ImageSource) At(x, y int) color.NRGBA {
	bpp := s.Format.BytesPerPixel()
	p := s.Pix[y*s.Stride+x*bpp:]
	switch s.Format {
	case PixelFormatRGB8:
		return color.NRGBA{R: p[0], G: p[1], B: p[2], A: 255}
	case PixelFormatGray8:
		return color.NRGBA{R: p[0], G: p[0], B: p[0], A: 255}
	default:
		return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
}

// LoadImage decodes an image in any registered format (PNG, JPEG, GIF, BMP,
// TIFF, WebP) and returns it as an image source; see ImageSourceFromImage
// for the resulting pixel format.
// Decoding failures are KindImage errors.
func LoadImage(r io.Reader) (ImageSource, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return ImageSource{}, ImageError(err)
	}
	return ImageSourceFromImage(img), nil
}

// LoadImageFile opens and decodes the image at path.
// Open failures are KindIO errors.
func LoadImageFile(path string) (ImageSource, error) {
	f, err := os.Open(path) //nolint:gosec // path is caller-provided by design
	if err != nil {
		return ImageSource{}, IOError(err)
	}
	defer f.Close()
	return LoadImage(f)
}
