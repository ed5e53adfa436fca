package software

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend"
	"github.com/gogpu/canvas/internal/parallel"
)

func init() {
	backend.Register(backend.NameSoftware, func() (canvas.Renderer, error) {
		return New(), nil
	})
}

// Renderer is the CPU implementation of canvas.Renderer.
//
// The Renderer is not safe for concurrent use.
type Renderer struct {
	opts   options
	dpi    float32
	screen *surface
	pool   *parallel.WorkerPool
}

var _ canvas.Renderer = (*Renderer)(nil)

// New creates a software renderer.
func New(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &Renderer{opts: o, dpi: 1}
	if o.workers != 1 {
		r.pool = parallel.NewWorkerPool(o.workers)
	}
	r.SetSize(o.width, o.height, 1)
	return r
}

// Close stops the band workers started by WithWorkers.
func (r *Renderer) Close() error {
	if r.pool != nil {
		r.pool.Close()
	}
	return nil
}

// StencilStrokes reports whether callers should emit StencilStroke commands.
func (r *Renderer) StencilStrokes() bool { return r.opts.stencilStrokes }

// SetSize resizes the screen. Resizing discards the screen contents;
// unchanged values keep them.
func (r *Renderer) SetSize(width, height uint32, dpi float32) {
	r.dpi = dpi
	if r.screen != nil && r.screen.width() == int(width) && r.screen.height() == int(height) {
		return
	}
	r.screen = newSurface(image.NewRGBA(image.Rect(0, 0, int(width), int(height))))
}

// Render executes a frame. Every frame starts on the screen target.
func (r *Renderer) Render(images *canvas.ImageStore, verts []canvas.Vertex, cmds []canvas.Command) error {
	enc := &encoder{images: images, verts: verts, cur: r.screen, screen: r.screen, pool: r.pool}
	return canvas.Execute(enc, images, verts, cmds, canvas.WithAntialias(r.opts.antialias))
}

// AllocImage creates a zeroed image.
func (r *Renderer) AllocImage(info canvas.ImageInfo) (canvas.Image, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return newImage(info), nil
}

// UpdateImage copies src into img at (x, y).
func (r *Renderer) UpdateImage(img canvas.Image, src canvas.ImageSource, x, y int) error {
	im, ok := img.(*Image)
	if !ok {
		return canvas.GeneralError(fmt.Sprintf("software: foreign image type %T", img))
	}
	if err := canvas.ValidateUpdate(im.info, src, x, y); err != nil {
		return err
	}
	im.upload(src, x, y)
	return nil
}

// DeleteImage drops img. Its memory is reclaimed by the garbage collector.
func (r *Renderer) DeleteImage(img canvas.Image, id canvas.ImageID) {
	im, ok := img.(*Image)
	if !ok {
		canvas.Logger().Warn("software: deleting foreign image", "id", id, "type", fmt.Sprintf("%T", img))
		return
	}
	im.pix, im.target = nil, nil
}

// Screenshot returns a copy of the screen with premultiplied alpha.
func (r *Renderer) Screenshot() (*image.RGBA, error) {
	src := r.screen.color
	out := image.NewRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out, nil
}

// encoder executes the passes of one frame.
type encoder struct {
	images *canvas.ImageStore
	verts  []canvas.Vertex
	cur    *surface
	screen *surface
	pool   *parallel.WorkerPool
}

// bands runs fn once per row band of s. Bands own disjoint pixels and
// stencil values, and each walks the triangles in submission order.
func (e *encoder) bands(s *surface, fn func(rows parallel.Band)) {
	if e.pool == nil {
		fn(parallel.Band{Y1: s.height()})
		return
	}
	bands := parallel.Split(s.height(), e.pool.Workers())
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b) }
	}
	e.pool.ExecuteAll(work)
}

func (e *encoder) image(id canvas.ImageID) *Image {
	if id == 0 || e.images == nil {
		return nil
	}
	img, ok := e.images.Get(id)
	if !ok {
		return nil
	}
	im, _ := img.(*Image)
	return im
}

func (e *encoder) SetRenderTarget(t canvas.RenderTarget) error {
	if t.IsScreen() {
		e.cur = e.screen
		return nil
	}
	img := e.image(t.Image)
	if img == nil {
		return canvas.RenderTargetError("no software image for " + t.Image.String())
	}
	s, err := img.renderTarget()
	if err != nil {
		return err
	}
	e.cur = s
	return nil
}

func (e *encoder) ClearRect(x, y, width, height uint32, c canvas.Color) error {
	e.cur.clear(clearBounds(x, y, width, height), c)
	return nil
}

// clearBounds converts a clear rectangle to pixel bounds, summing in 64
// bits so x+width cannot wrap. The surface clips the result.
func clearBounds(x, y, width, height uint32) image.Rectangle {
	clamp := func(v int64) int { return int(min(v, math.MaxInt32)) }
	return image.Rect(clamp(int64(x)), clamp(int64(y)),
		clamp(int64(x)+int64(width)), clamp(int64(y)+int64(height)))
}

func (e *encoder) Draw(p canvas.Pass) error {
	pl := pipelineFor(p.Stage, p.FillRule)
	tex := textures{image: e.image(p.Image), glyph: e.image(p.GlyphTexture.Image)}
	s := e.cur
	params := &p.Params
	if pl.usesStencil() {
		s.ensureStencil()
	}

	frag := func(x, y int, u, v float32, front bool) {
		var st *uint8
		if pl.usesStencil() {
			st = s.stencilAt(x, y)
			if !pl.test(*st) {
				return
			}
		}
		c, keep := shade(params, tex, float32(x)+0.5, float32(y)+0.5, u, v)
		if !keep {
			return
		}
		if st != nil {
			pl.apply(st, front)
		}
		if pl.colorWrite {
			s.store(x, y, blend(p.Composite, c, s.load(x, y)))
		}
	}

	e.bands(s, func(rows parallel.Band) {
		for _, rg := range p.Ranges {
			forEachTriangle(rg.Slice(e.verts), p.Topology, func(a, b, c canvas.Vertex) {
				rasterize(s.width(), rows, a, b, c, frag)
			})
		}
	})
	return nil
}

// FilterImage blurs Source into Target in two passes through a temporary
// image, drawing the quad with copy semantics.
func (e *encoder) FilterImage(fp canvas.FilterPass) error {
	src, dst := e.image(fp.Source), e.image(fp.Target)
	if src == nil || dst == nil {
		return canvas.GeneralError("software: filter image is not a software image")
	}
	out, err := dst.renderTarget()
	if err != nil {
		return err
	}

	tmpInfo := canvas.NewImageInfo(canvas.ImagePremultiplied, dst.info.Width, dst.info.Height, canvas.PixelFormatRGBA8)
	tmp := newImage(tmpInfo)
	tmpSurface, _ := tmp.renderTarget()

	quad := fp.Quad.Slice(e.verts)
	e.blurPass(tmpSurface, src, &fp.Horizontal, quad)
	e.blurPass(out, tmp, &fp.Vertical, quad)
	return nil
}

func (e *encoder) blurPass(s *surface, src *Image, p *canvas.Params, quad []canvas.Vertex) {
	tex := textures{image: src}
	e.bands(s, func(rows parallel.Band) {
		forEachTriangle(quad, canvas.TriangleStrip, func(a, b, c canvas.Vertex) {
			rasterize(s.width(), rows, a, b, c, func(x, y int, u, v float32, _ bool) {
				col, _ := shade(p, tex, float32(x)+0.5, float32(y)+0.5, u, v)
				s.store(x, y, col)
			})
		})
	})
}
