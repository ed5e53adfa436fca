// Package void provides a renderer that validates frames and draws nothing.
//
// It is useful for measuring the cost of building command lists and as the
// last-resort fallback of backend.Default.
package void

import (
	"image"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend"
)

func init() {
	backend.Register(backend.NameVoid, func() (canvas.Renderer, error) {
		return New(), nil
	})
}

// Image is the resource handed out by AllocImage. It holds no pixels.
type Image struct {
	info canvas.ImageInfo
}

// Info returns the image description.
func (i *Image) Info() canvas.ImageInfo { return i.info }

// Renderer implements canvas.Renderer without producing output.
type Renderer struct {
	width, height uint32
	dpi           float32
	frames        int
}

var _ canvas.Renderer = (*Renderer)(nil)

// New returns a void renderer.
func New() *Renderer {
	return &Renderer{dpi: 1}
}

// SetSize records the drawable size.
func (r *Renderer) SetSize(width, height uint32, dpi float32) {
	r.width, r.height, r.dpi = width, height, dpi
}

// Size returns the size set by SetSize.
func (r *Renderer) Size() (width, height uint32, dpi float32) {
	return r.width, r.height, r.dpi
}

// Frames returns the number of frames accepted by Render.
func (r *Renderer) Frames() int { return r.frames }

// Render validates the frame and discards it.
func (r *Renderer) Render(images *canvas.ImageStore, verts []canvas.Vertex, cmds []canvas.Command) error {
	if err := canvas.ValidateFrame(images, verts, cmds); err != nil {
		return err
	}
	r.frames++
	return nil
}

// AllocImage returns an image carrying info.
func (r *Renderer) AllocImage(info canvas.ImageInfo) (canvas.Image, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return &Image{info: info}, nil
}

// UpdateImage validates the update region and format.
func (r *Renderer) UpdateImage(img canvas.Image, src canvas.ImageSource, x, y int) error {
	return canvas.ValidateUpdate(img.Info(), src, x, y)
}

// DeleteImage does nothing.
func (r *Renderer) DeleteImage(canvas.Image, canvas.ImageID) {}

// Screenshot always fails: there is nothing to read back.
func (r *Renderer) Screenshot() (*image.RGBA, error) {
	return nil, canvas.GeneralError("void renderer has no pixels")
}
