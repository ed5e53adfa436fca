package software

import (
	"image"
	"math"

	"github.com/gogpu/canvas"
)

// Image is a CPU texture. RGB8 data is stored expanded to four channels;
// Gray8 keeps one byte per pixel.
type Image struct {
	info   canvas.ImageInfo
	pix    []byte
	stride int
	bpp    int

	// target is created the first time the image is rendered to.
	target *surface
}

// Info returns the image description.
func (img *Image) Info() canvas.ImageInfo { return img.info }

func newImage(info canvas.ImageInfo) *Image {
	bpp := 4
	if info.Format == canvas.PixelFormatGray8 {
		bpp = 1
	}
	return &Image{
		info:   info,
		pix:    make([]byte, info.Width*info.Height*bpp),
		stride: info.Width * bpp,
		bpp:    bpp,
	}
}

// RGBA returns a copy of the image contents. Gray8 images are expanded to
// opaque gray.
func (img *Image) RGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.info.Width, img.info.Height))
	if img.bpp == 4 {
		copy(out.Pix, img.pix)
		return out
	}
	for i, g := range img.pix {
		out.Pix[i*4+0] = g
		out.Pix[i*4+1] = g
		out.Pix[i*4+2] = g
		out.Pix[i*4+3] = 0xff
	}
	return out
}

// upload copies src into the image at (x, y). The region has been
// validated by the caller.
func (img *Image) upload(src canvas.ImageSource, x, y int) {
	for row := 0; row < src.Height; row++ {
		line := src.Row(row)
		off := (y+row)*img.stride + x*img.bpp
		if src.Format != canvas.PixelFormatRGB8 {
			copy(img.pix[off:off+src.RowBytes()], line)
			continue
		}
		for col := 0; col < src.Width; col++ {
			d := img.pix[off+col*4 : off+col*4+4]
			d[0], d[1], d[2], d[3] = line[col*3], line[col*3+1], line[col*3+2], 0xff
		}
	}
}

// renderTarget returns the surface drawing into the image. Only RGBA8
// images can be render targets.
func (img *Image) renderTarget() (*surface, error) {
	if img.target != nil {
		return img.target, nil
	}
	if img.info.Format != canvas.PixelFormatRGBA8 {
		return nil, canvas.RenderTargetError("image format " + img.info.Format.String() + " is not renderable")
	}
	rgba := &image.RGBA{
		Pix:    img.pix,
		Stride: img.stride,
		Rect:   image.Rect(0, 0, img.info.Width, img.info.Height),
	}
	img.target = newSurface(rgba)
	return img.target, nil
}

// texel returns the raw normalized channels at integer coordinates, the
// way a GPU sampler returns them: Gray8 reads as (g, 0, 0, 1).
func (img *Image) texel(x, y int) [4]float32 {
	w, h := img.info.Width, img.info.Height
	x = wrap(x, w, img.info.Flags.Has(canvas.ImageRepeatX))
	y = wrap(y, h, img.info.Flags.Has(canvas.ImageRepeatY))
	off := y*img.stride + x*img.bpp
	if img.bpp == 1 {
		return [4]float32{float32(img.pix[off]) / 255, 0, 0, 1}
	}
	p := img.pix[off : off+4]
	return [4]float32{float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255, float32(p[3]) / 255}
}

func wrap(i, n int, repeat bool) int {
	if repeat {
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}
	return min(max(i, 0), n-1)
}

// sample reads the image at normalized coordinates with bilinear filtering,
// or nearest filtering for ImageNearest images.
func (img *Image) sample(u, v float32) [4]float32 {
	if img == nil || img.info.Width == 0 || img.info.Height == 0 {
		return [4]float32{}
	}
	fx := u*float32(img.info.Width) - 0.5
	fy := v*float32(img.info.Height) - 0.5
	if img.info.Flags.Has(canvas.ImageNearest) {
		return img.texel(int(math.Round(float64(fx))), int(math.Round(float64(fy))))
	}

	x0f, y0f := float32(math.Floor(float64(fx))), float32(math.Floor(float64(fy)))
	tx, ty := fx-x0f, fy-y0f
	x0, y0 := int(x0f), int(y0f)

	c00 := img.texel(x0, y0)
	c10 := img.texel(x0+1, y0)
	c01 := img.texel(x0, y0+1)
	c11 := img.texel(x0+1, y0+1)
	var out [4]float32
	for i := range out {
		top := c00[i] + (c10[i]-c00[i])*tx
		bot := c01[i] + (c11[i]-c01[i])*tx
		out[i] = top + (bot-top)*ty
	}
	return out
}
