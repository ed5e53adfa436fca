//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend"
)

// ErrClosed is returned by a Renderer after Close.
var ErrClosed = errors.New("wgpu: renderer is closed")

// FrameStats describes the GPU work of the last rendered frame.
type FrameStats struct {
	RenderPasses int
	Draws        int
	Vertices     int
	UniformBytes int
}

// Renderer is the GPU implementation of canvas.Renderer. The screen is an
// offscreen texture in the surface format; Screenshot and ScreenView expose
// it to the application.
//
// The Renderer is not safe for concurrent use.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	opts   options

	// release frees the device when the renderer opened it itself.
	release func()
	closed  bool

	shader         hal.ShaderModule
	uniformLayout  hal.BindGroupLayout
	textureLayout  hal.BindGroupLayout
	pipelineLayout hal.PipelineLayout
	pipelines      map[pipelineKey]hal.RenderPipeline
	samplers       map[samplerKey]hal.Sampler
	blank          *texture

	dpi     float32
	screen  *texture
	sizeErr error

	vertexBuf  hal.Buffer
	vertexCap  uint64
	uniformBuf hal.Buffer
	uniformCap uint64

	stats FrameStats
}

var _ canvas.Renderer = (*Renderer)(nil)

// New creates a renderer on an existing device and queue. The caller keeps
// ownership of both.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, canvas.GeneralError("wgpu: device and queue are required")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.surfaceFormat != gputypes.TextureFormatRGBA8Unorm && o.surfaceFormat != gputypes.TextureFormatBGRA8Unorm {
		return nil, canvas.GeneralError("wgpu: unsupported surface format " + o.surfaceFormat.String())
	}
	if err := checkShader(); err != nil {
		return nil, err
	}

	r := &Renderer{
		device:    device,
		queue:     queue,
		opts:      o,
		dpi:       1,
		pipelines: make(map[pipelineKey]hal.RenderPipeline),
		samplers:  make(map[samplerKey]hal.Sampler),
	}
	if err := r.init(); err != nil {
		r.destroy()
		return nil, err
	}
	r.SetSize(o.width, o.height, 1)
	if r.sizeErr != nil {
		err := r.sizeErr
		r.destroy()
		return nil, err
	}
	return r, nil
}

// NewFromProvider creates a renderer on the device of a host application.
// The provider's device and queue must be HAL objects. A known surface
// format becomes the screen format unless an option overrides it.
func NewFromProvider(p gpucontext.DeviceProvider, opts ...Option) (*Renderer, error) {
	device, ok := p.Device().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("%w: provider device %T is not a hal.Device", backend.ErrBackendNotAvailable, p.Device())
	}
	queue, ok := p.Queue().(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("%w: provider queue %T is not a hal.Queue", backend.ErrBackendNotAvailable, p.Queue())
	}
	if f := p.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		opts = append([]Option{WithSurfaceFormat(f)}, opts...)
	}
	return New(device, queue, opts...)
}

func (r *Renderer) init() error {
	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  r.opts.label + "_shader",
		Source: hal.ShaderSource{WGSL: shaderSource},
	})
	if err != nil {
		return canvas.ShaderCompileError(err.Error())
	}
	r.shader = shader

	r.uniformLayout, err = r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: r.opts.label + "_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		}},
	})
	if err != nil {
		return canvas.ShaderLinkError(fmt.Sprintf("create uniform layout: %v", err))
	}

	tex := func(binding uint32) gputypes.BindGroupLayoutEntry {
		return gputypes.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		}
	}
	smp := func(binding uint32) gputypes.BindGroupLayoutEntry {
		return gputypes.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		}
	}
	r.textureLayout, err = r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   r.opts.label + "_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{tex(0), smp(1), tex(2), smp(3)},
	})
	if err != nil {
		return canvas.ShaderLinkError(fmt.Sprintf("create texture layout: %v", err))
	}

	r.pipelineLayout, err = r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            r.opts.label + "_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout, r.textureLayout},
	})
	if err != nil {
		return canvas.ShaderLinkError(fmt.Sprintf("create pipeline layout: %v", err))
	}

	r.blank, err = r.newTexture(r.opts.label+"_blank", 1, 1, gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst)
	if err != nil {
		return err
	}
	if err := r.writeTexture(r.blank, make([]byte, 4), 0, 0, 1, 1, 4); err != nil {
		return err
	}
	r.blank.usage = gputypes.TextureUsageTextureBinding
	return nil
}

// StencilStrokes reports whether callers should emit StencilStroke commands.
func (r *Renderer) StencilStrokes() bool { return r.opts.stencilStrokes }

// LastFrame returns statistics of the last submitted frame.
func (r *Renderer) LastFrame() FrameStats { return r.stats }

// ScreenView returns the texture view of the screen for presentation, or
// nil while the screen has zero size.
func (r *Renderer) ScreenView() hal.TextureView {
	if r.screen == nil {
		return nil
	}
	return r.screen.view
}

// SetSize resizes the screen texture. Resizing discards its contents;
// unchanged values keep them. A failed allocation is reported by the next
// Render.
func (r *Renderer) SetSize(width, height uint32, dpi float32) {
	r.dpi = dpi
	if r.screen != nil && r.screen.width == width && r.screen.height == height {
		return
	}
	r.destroyTexture(r.screen)
	r.screen, r.sizeErr = nil, nil
	if width == 0 || height == 0 {
		return
	}
	t, err := r.newTexture(r.opts.label+"_screen", width, height, r.opts.surfaceFormat,
		gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageCopySrc|gputypes.TextureUsageTextureBinding)
	if err != nil {
		r.sizeErr = canvas.RenderTargetError(err.Error())
		canvas.Logger().Error("wgpu: screen allocation failed", "width", width, "height", height, "err", err)
		return
	}
	r.screen = t
}

// Render executes a frame. Every frame starts on the screen target.
func (r *Renderer) Render(images *canvas.ImageStore, verts []canvas.Vertex, cmds []canvas.Command) error {
	if r.closed {
		return ErrClosed
	}
	if r.sizeErr != nil {
		return r.sizeErr
	}
	f := &frame{r: r, images: images, verts: verts, cur: r.screen}
	if err := canvas.Execute(f, images, verts, cmds, canvas.WithAntialias(r.opts.antialias)); err != nil {
		return err
	}
	return f.submit()
}

// AllocImage creates a zeroed texture.
func (r *Renderer) AllocImage(info canvas.ImageInfo) (canvas.Image, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	format := textureFormat(info.Format)
	usage := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst | gputypes.TextureUsageCopySrc
	if info.Format == canvas.PixelFormatRGBA8 {
		usage |= gputypes.TextureUsageRenderAttachment
	}
	t, err := r.newTexture(fmt.Sprintf("%s_image_%dx%d", r.opts.label, info.Width, info.Height),
		uint32(info.Width), uint32(info.Height), format, usage)
	if err != nil {
		return nil, canvas.ImageError(err)
	}
	bpp := texelSize(info.Format)
	if err := r.writeTexture(t, make([]byte, info.Width*info.Height*bpp), 0, 0, info.Width, info.Height, bpp); err != nil {
		r.destroyTexture(t)
		return nil, err
	}
	t.usage = gputypes.TextureUsageCopyDst
	return &Image{info: info, tex: t}, nil
}

// UpdateImage uploads src into img at (x, y).
func (r *Renderer) UpdateImage(img canvas.Image, src canvas.ImageSource, x, y int) error {
	im, ok := img.(*Image)
	if !ok {
		return canvas.GeneralError(fmt.Sprintf("wgpu: foreign image type %T", img))
	}
	if err := canvas.ValidateUpdate(im.info, src, x, y); err != nil {
		return err
	}
	if im.tex == nil {
		return canvas.ImageError(errors.New("wgpu: image has been deleted"))
	}
	return r.writeTexture(im.tex, expandRows(src), x, y, src.Width, src.Height, texelSize(im.info.Format))
}

// DeleteImage releases the texture of img.
func (r *Renderer) DeleteImage(img canvas.Image, id canvas.ImageID) {
	im, ok := img.(*Image)
	if !ok {
		canvas.Logger().Warn("wgpu: deleting foreign image", "id", id, "type", fmt.Sprintf("%T", img))
		return
	}
	r.destroyTexture(im.tex)
	im.tex = nil
}

// Screenshot reads back the screen as premultiplied RGBA.
func (r *Renderer) Screenshot() (*image.RGBA, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if r.screen == nil {
		return image.NewRGBA(image.Rectangle{}), nil
	}
	return r.readTexture(r.screen)
}

// ReadImage reads back an RGBA8 image, typically one used as a render
// target.
func (r *Renderer) ReadImage(img canvas.Image) (*image.RGBA, error) {
	im, ok := img.(*Image)
	if !ok {
		return nil, canvas.GeneralError(fmt.Sprintf("wgpu: foreign image type %T", img))
	}
	t, err := im.renderTarget()
	if err != nil {
		return nil, err
	}
	return r.readTexture(t)
}

// upload writes the vertex and uniform data of a frame, growing the
// buffers when needed.
func (r *Renderer) upload(vertices []canvas.Vertex, uniforms []byte) error {
	vb := canvas.VertexBytes(vertices)
	if err := r.ensureBuffer(&r.vertexBuf, &r.vertexCap, uint64(len(vb)),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst, "vertices"); err != nil {
		return err
	}
	if err := r.ensureBuffer(&r.uniformBuf, &r.uniformCap, uint64(len(uniforms)),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst, "uniforms"); err != nil {
		return err
	}
	if len(vb) > 0 {
		if err := r.queue.WriteBuffer(r.vertexBuf, 0, vb); err != nil {
			return fmt.Errorf("wgpu: upload vertices: %w", err)
		}
	}
	if len(uniforms) > 0 {
		if err := r.queue.WriteBuffer(r.uniformBuf, 0, uniforms); err != nil {
			return fmt.Errorf("wgpu: upload uniforms: %w", err)
		}
	}
	return nil
}

func (r *Renderer) ensureBuffer(buf *hal.Buffer, capacity *uint64, size uint64, usage gputypes.BufferUsage, name string) error {
	if *buf != nil && *capacity >= size {
		return nil
	}
	n := uint64(4096)
	for n < size {
		n *= 2
	}
	b, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: r.opts.label + "_" + name,
		Size:  n,
		Usage: usage,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create %s buffer: %w", name, err)
	}
	if *buf != nil {
		r.device.DestroyBuffer(*buf)
	}
	*buf, *capacity = b, n
	canvas.Logger().Debug("wgpu: buffer grown", "buffer", name, "size", n)
	return nil
}

// Close waits for the GPU and releases every resource. Images still held
// by an ImageStore must not be used afterwards.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	err := r.device.WaitIdle()
	r.destroy()
	r.closed = true
	if r.release != nil {
		r.release()
		r.release = nil
	}
	return err
}

func (r *Renderer) destroy() {
	for k, p := range r.pipelines {
		r.device.DestroyRenderPipeline(p)
		delete(r.pipelines, k)
	}
	for k, s := range r.samplers {
		r.device.DestroySampler(s)
		delete(r.samplers, k)
	}
	if r.vertexBuf != nil {
		r.device.DestroyBuffer(r.vertexBuf)
		r.vertexBuf = nil
	}
	if r.uniformBuf != nil {
		r.device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	r.destroyTexture(r.screen)
	r.destroyTexture(r.blank)
	r.screen, r.blank = nil, nil
	if r.pipelineLayout != nil {
		r.device.DestroyPipelineLayout(r.pipelineLayout)
		r.pipelineLayout = nil
	}
	if r.textureLayout != nil {
		r.device.DestroyBindGroupLayout(r.textureLayout)
		r.textureLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}
