//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/canvas"
)

// texture is a 2D GPU texture with its default view. Textures that are
// rendered to get a stencil attachment of the same size on first use.
type texture struct {
	label  string
	tex    hal.Texture
	view   hal.TextureView
	format gputypes.TextureFormat
	width  uint32
	height uint32

	// usage is the last usage the texture was transitioned to.
	usage gputypes.TextureUsage
	// defined is false until the contents have been written once; the
	// first render pass on an undefined texture clears it.
	defined bool

	stencil     hal.Texture
	stencilView hal.TextureView
}

func (r *Renderer) newTexture(label string, width, height uint32, format gputypes.TextureFormat, usage gputypes.TextureUsage) (*texture, error) {
	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture %s: %w", label, err)
	}
	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view %s: %w", label, err)
	}
	return &texture{label: label, tex: tex, view: view, format: format, width: width, height: height}, nil
}

// ensureStencil creates the stencil attachment used by render passes on t.
func (r *Renderer) ensureStencil(t *texture) error {
	if t.stencil != nil {
		return nil
	}
	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         t.label + "_stencil",
		Size:          hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatDepth24PlusStencil8,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create stencil texture: %w", err)
	}
	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         t.label + "_stencil_view",
		Format:        gputypes.TextureFormatDepth24PlusStencil8,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.device.DestroyTexture(tex)
		return fmt.Errorf("create stencil view: %w", err)
	}
	t.stencil, t.stencilView = tex, view
	return nil
}

func (r *Renderer) destroyTexture(t *texture) {
	if t == nil {
		return
	}
	if t.stencilView != nil {
		r.device.DestroyTextureView(t.stencilView)
	}
	if t.stencil != nil {
		r.device.DestroyTexture(t.stencil)
	}
	if t.view != nil {
		r.device.DestroyTextureView(t.view)
	}
	if t.tex != nil {
		r.device.DestroyTexture(t.tex)
	}
	*t = texture{}
}

// transition records a usage barrier when t is not already in usage.
func transition(enc hal.CommandEncoder, t *texture, usage gputypes.TextureUsage) {
	if t.usage == usage {
		return
	}
	enc.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.tex,
		Range:   hal.TextureRange{Aspect: gputypes.TextureAspectAll},
		Usage:   hal.TextureUsageTransition{OldUsage: t.usage, NewUsage: usage},
	}})
	t.usage = usage
}

// Image is a GPU image. RGBA8 and RGB8 images are stored as RGBA8Unorm,
// Gray8 images as R8Unorm, which samples as (g, 0, 0, 1).
type Image struct {
	info canvas.ImageInfo
	tex  *texture
}

// Info returns the image description.
func (img *Image) Info() canvas.ImageInfo { return img.info }

func textureFormat(f canvas.PixelFormat) gputypes.TextureFormat {
	if f == canvas.PixelFormatGray8 {
		return gputypes.TextureFormatR8Unorm
	}
	return gputypes.TextureFormatRGBA8Unorm
}

func texelSize(f canvas.PixelFormat) int {
	if f == canvas.PixelFormatGray8 {
		return 1
	}
	return 4
}

// renderTarget returns the texture drawn to when img is a render target.
func (img *Image) renderTarget() (*texture, error) {
	if img.tex == nil {
		return nil, canvas.RenderTargetError("image has been deleted")
	}
	if img.info.Format != canvas.PixelFormatRGBA8 {
		return nil, canvas.RenderTargetError("image format " + img.info.Format.String() + " is not renderable")
	}
	return img.tex, nil
}

// expandRows converts src to the texel layout of the texture, expanding
// RGB8 to opaque RGBA8.
func expandRows(src canvas.ImageSource) []byte {
	if src.Format != canvas.PixelFormatRGB8 {
		out := make([]byte, 0, src.Height*src.RowBytes())
		for y := 0; y < src.Height; y++ {
			out = append(out, src.Row(y)...)
		}
		return out
	}
	out := make([]byte, 0, src.Width*src.Height*4)
	for y := 0; y < src.Height; y++ {
		row := src.Row(y)
		for x := 0; x < src.Width; x++ {
			out = append(out, row[x*3], row[x*3+1], row[x*3+2], 0xff)
		}
	}
	return out
}

func (r *Renderer) writeTexture(t *texture, data []byte, x, y, width, height, bpp int) error {
	err := r.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture: t.tex,
			Origin:  hal.Origin3D{X: uint32(x), Y: uint32(y)},
			Aspect:  gputypes.TextureAspectAll,
		},
		data,
		&hal.ImageDataLayout{BytesPerRow: uint32(width * bpp), RowsPerImage: uint32(height)},
		&hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
	)
	if err != nil {
		return canvas.ImageError(fmt.Errorf("write texture %s: %w", t.label, err))
	}
	t.defined = true
	return nil
}

// samplerKey selects one of the cached samplers.
type samplerKey struct {
	repeatX, repeatY, nearest bool
}

func samplerKeyOf(flags canvas.ImageFlags) samplerKey {
	return samplerKey{
		repeatX: flags.Has(canvas.ImageRepeatX),
		repeatY: flags.Has(canvas.ImageRepeatY),
		nearest: flags.Has(canvas.ImageNearest),
	}
}

func (r *Renderer) sampler(key samplerKey) (hal.Sampler, error) {
	if s, ok := r.samplers[key]; ok {
		return s, nil
	}
	mode := func(repeat bool) gputypes.AddressMode {
		if repeat {
			return gputypes.AddressModeRepeat
		}
		return gputypes.AddressModeClampToEdge
	}
	filter := gputypes.FilterModeLinear
	if key.nearest {
		filter = gputypes.FilterModeNearest
	}
	s, err := r.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        r.opts.label + "_sampler",
		AddressModeU: mode(key.repeatX),
		AddressModeV: mode(key.repeatY),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filter,
		MinFilter:    filter,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
		Anisotropy:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}
	r.samplers[key] = s
	return s, nil
}
