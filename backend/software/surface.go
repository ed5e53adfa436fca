package software

import (
	"image"
	"math"

	"github.com/gogpu/canvas"
)

// surface is a render target: premultiplied RGBA color plus an 8-bit
// stencil buffer allocated on first use.
type surface struct {
	color   *image.RGBA
	stencil []uint8
}

func newSurface(color *image.RGBA) *surface {
	return &surface{color: color}
}

func (s *surface) width() int  { return s.color.Rect.Dx() }
func (s *surface) height() int { return s.color.Rect.Dy() }

// ensureStencil allocates the stencil buffer. Band workers share it, so
// it must exist before they start.
func (s *surface) ensureStencil() {
	if s.stencil == nil {
		s.stencil = make([]uint8, s.width()*s.height())
	}
}

func (s *surface) stencilAt(x, y int) *uint8 {
	return &s.stencil[y*s.width()+x]
}

func (s *surface) load(x, y int) [4]float32 {
	off := y*s.color.Stride + x*4
	p := s.color.Pix[off : off+4]
	return [4]float32{float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255, float32(p[3]) / 255}
}

func (s *surface) store(x, y int, c [4]float32) {
	off := y*s.color.Stride + x*4
	p := s.color.Pix[off : off+4]
	p[0], p[1], p[2], p[3] = unorm8(c[0]), unorm8(c[1]), unorm8(c[2]), unorm8(c[3])
}

// clear replaces the clipped rectangle with c, leaving stencil untouched.
func (s *surface) clear(r image.Rectangle, c canvas.Color) {
	r = r.Intersect(s.color.Rect)
	pm := c.Premultiply().Array()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s.store(x, y, pm)
		}
	}
}

func unorm8(x float32) uint8 {
	switch {
	case x <= 0 || math.IsNaN(float64(x)):
		return 0
	case x >= 1:
		return 255
	}
	return uint8(x*255 + 0.5)
}
