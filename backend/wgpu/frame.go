//go:build !nogpu

package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/canvas"
)

// uniformSlot is the stride between per-pass uniform blocks, the common
// minimum uniform buffer offset alignment.
const uniformSlot = 256

// uniformBindingSize is the packed parameters followed by the target size.
const uniformBindingSize = canvas.UniformSize + 16

type opKind uint8

const (
	opTarget opKind = iota
	opDraw
	opFilter
)

// op is one recorded step of a frame. Vertex and uniform locations refer
// to the frame's upload buffers.
type op struct {
	kind   opKind
	target *texture

	key          pipelineKey
	first, count uint32
	uniform      uint64
	image, glyph *Image

	// Filter passes draw the quad at first/count twice: uniform is the
	// horizontal pass from image into a temporary texture, vertical the
	// pass from there into target.
	vertical uint64
}

// frame implements canvas.Encoder by collecting ops on the CPU. Nothing
// touches the device until the whole frame has been accepted.
type frame struct {
	r      *Renderer
	images *canvas.ImageStore
	verts  []canvas.Vertex
	cur    *texture

	ops      []op
	vertices []canvas.Vertex
	uniforms []byte
}

var _ canvas.Encoder = (*frame)(nil)

func (f *frame) image(id canvas.ImageID) *Image {
	if id == 0 || f.images == nil {
		return nil
	}
	img, ok := f.images.Get(id)
	if !ok {
		return nil
	}
	im, _ := img.(*Image)
	return im
}

func (f *frame) SetRenderTarget(t canvas.RenderTarget) error {
	if t.IsScreen() {
		f.cur = f.r.screen
	} else {
		img := f.image(t.Image)
		if img == nil {
			return canvas.RenderTargetError("no wgpu image for " + t.Image.String())
		}
		tex, err := img.renderTarget()
		if err != nil {
			return err
		}
		f.cur = tex
	}
	f.ops = append(f.ops, op{kind: opTarget, target: f.cur})
	return nil
}

func (f *frame) ClearRect(x, y, width, height uint32, c canvas.Color) error {
	if f.cur == nil || width == 0 || height == 0 || x >= f.cur.width || y >= f.cur.height {
		return nil
	}
	// Summed in 64 bits so a huge size cannot wrap around the origin.
	x0, y0 := float32(x), float32(y)
	x1 := float32(min(uint64(x)+uint64(width), uint64(f.cur.width)))
	y1 := float32(min(uint64(y)+uint64(height), uint64(f.cur.height)))
	quad := []canvas.Vertex{
		canvas.NewVertex(x0, y0, 0.5, 1),
		canvas.NewVertex(x1, y0, 0.5, 1),
		canvas.NewVertex(x0, y1, 0.5, 1),
		canvas.NewVertex(x1, y1, 0.5, 1),
	}
	first := len(f.vertices)
	f.vertices = canvas.TriangleStrip.AppendTriangles(f.vertices, quad)

	p := clearParams(c)
	f.ops = append(f.ops, op{
		kind:    opDraw,
		key:     pipelineKey{stage: canvas.StageConvexFill, composite: copyComposite, format: f.cur.format, stencil: true},
		first:   uint32(first),
		count:   uint32(len(f.vertices) - first),
		uniform: f.uniform(&p, f.cur),
	})
	return nil
}

func (f *frame) Draw(p canvas.Pass) error {
	if f.cur == nil {
		return nil
	}
	first := len(f.vertices)
	for _, rg := range p.Ranges {
		f.vertices = p.Topology.AppendTriangles(f.vertices, rg.Slice(f.verts))
	}
	if len(f.vertices) == first {
		return nil
	}
	o := op{
		kind:    opDraw,
		key:     newPipelineKey(p.Stage, p.FillRule, p.Composite, f.cur.format),
		first:   uint32(first),
		count:   uint32(len(f.vertices) - first),
		uniform: f.uniform(&p.Params, f.cur),
		image:   f.image(p.Image),
	}
	if !p.GlyphTexture.IsNone() {
		o.glyph = f.image(p.GlyphTexture.Image)
	}
	f.ops = append(f.ops, o)
	return nil
}

func (f *frame) FilterImage(p canvas.FilterPass) error {
	src, dst := f.image(p.Source), f.image(p.Target)
	if src == nil || dst == nil || src.tex == nil {
		return canvas.GeneralError("wgpu: filter image is not a wgpu image")
	}
	out, err := dst.renderTarget()
	if err != nil {
		return err
	}
	first := len(f.vertices)
	f.vertices = canvas.TriangleStrip.AppendTriangles(f.vertices, p.Quad.Slice(f.verts))
	f.ops = append(f.ops, op{
		kind:     opFilter,
		target:   out,
		first:    uint32(first),
		count:    uint32(len(f.vertices) - first),
		uniform:  f.uniform(&p.Horizontal, out),
		vertical: f.uniform(&p.Vertical, out),
		image:    src,
	})
	return nil
}

// uniform appends the uniform block of one pass drawn into t and returns
// its offset.
func (f *frame) uniform(p *canvas.Params, t *texture) uint64 {
	off := uint64(len(f.uniforms))
	f.uniforms = p.AppendUniformBytes(f.uniforms)
	for _, v := range [4]float32{float32(t.width), float32(t.height), 0, 0} {
		f.uniforms = binary.LittleEndian.AppendUint32(f.uniforms, math.Float32bits(v))
	}
	for len(f.uniforms)%uniformSlot != 0 {
		f.uniforms = append(f.uniforms, 0)
	}
	return off
}

// clearParams fills with c regardless of scissor and stroke coverage.
func clearParams(c canvas.Color) canvas.Params {
	pm := c.Premultiply()
	return canvas.Params{
		InnerCol:     pm,
		OuterCol:     pm,
		ScissorExt:   [2]float32{1, 1},
		ScissorScale: [2]float32{1, 1},
		Extent:       [2]float32{1, 1},
		Feather:      1,
		StrokeMult:   1,
		StrokeThr:    -1,
		ShaderType:   canvas.ShaderFillGradient,
	}
}

// submit uploads the frame, records its render passes and waits for the
// GPU to finish them.
func (f *frame) submit() error {
	r := f.r
	r.stats = FrameStats{Vertices: len(f.vertices), UniformBytes: len(f.uniforms)}
	if len(f.ops) == 0 {
		return nil
	}
	if err := r.upload(f.vertices, f.uniforms); err != nil {
		return err
	}

	enc, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: r.opts.label + "_frame"})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := enc.BeginEncoding(r.opts.label + "_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	rec := &recorder{r: r, enc: enc, cur: r.screen, textureGroups: make(map[[2]*Image]hal.BindGroup)}
	defer rec.release()

	for i := range f.ops {
		if err := rec.op(f.ops, i); err != nil {
			rec.endPass()
			enc.DiscardEncoding()
			return err
		}
	}
	rec.endPass()

	cmdBuf, err := enc.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if _, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	if err := r.device.WaitIdle(); err != nil {
		return fmt.Errorf("wgpu: wait for GPU: %w", err)
	}
	r.stats.RenderPasses, r.stats.Draws = rec.passes, rec.draws
	return nil
}

// recorder replays ops into a command encoder. Bind groups and temporary
// textures live until the frame has completed.
type recorder struct {
	r    *Renderer
	enc  hal.CommandEncoder
	pass hal.RenderPassEncoder
	cur  *texture

	textureGroups map[[2]*Image]hal.BindGroup
	groups        []hal.BindGroup
	temps         []*texture

	passes, draws int
}

func (rc *recorder) op(ops []op, i int) error {
	o := &ops[i]
	switch o.kind {
	case opTarget:
		rc.endPass()
		rc.cur = o.target
		return nil
	case opDraw:
		if rc.pass == nil {
			if err := rc.beginDrawPass(ops[i:]); err != nil {
				return err
			}
		}
		return rc.draw(o)
	case opFilter:
		rc.endPass()
		return rc.filter(o)
	}
	return nil
}

// beginDrawPass opens a render pass on the current target. Images sampled
// by the draws of the pass are moved to sampling usage first, since
// barriers cannot be recorded inside a pass.
func (rc *recorder) beginDrawPass(rest []op) error {
	for i := range rest {
		if rest[i].kind != opDraw {
			break
		}
		for _, img := range [2]*Image{rest[i].image, rest[i].glyph} {
			if img != nil && img.tex != nil && img.tex != rc.cur {
				transition(rc.enc, img.tex, gputypes.TextureUsageTextureBinding)
			}
		}
	}
	if err := rc.r.ensureStencil(rc.cur); err != nil {
		return err
	}
	rc.beginPass(rc.cur, true)
	return nil
}

func (rc *recorder) beginPass(t *texture, withStencil bool) {
	transition(rc.enc, t, gputypes.TextureUsageRenderAttachment)
	load := gputypes.LoadOpLoad
	if !t.defined {
		load = gputypes.LoadOpClear
		t.defined = true
	}
	desc := &hal.RenderPassDescriptor{
		Label: rc.r.opts.label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       t.view,
			LoadOp:     load,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{},
		}},
	}
	if withStencil {
		desc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:              t.stencilView,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		}
	}
	rc.pass = rc.enc.BeginRenderPass(desc)
	rc.pass.SetViewport(0, 0, float32(t.width), float32(t.height), 0, 1)
	rc.pass.SetScissorRect(0, 0, t.width, t.height)
	if withStencil {
		rc.pass.SetStencilReference(0)
	}
	rc.pass.SetVertexBuffer(0, rc.r.vertexBuf, 0)
	rc.passes++
}

func (rc *recorder) endPass() {
	if rc.pass != nil {
		rc.pass.End()
		rc.pass = nil
	}
}

func (rc *recorder) draw(o *op) error {
	pipe, err := rc.r.pipeline(o.key)
	if err != nil {
		return err
	}
	ug, err := rc.uniformGroup(o.uniform)
	if err != nil {
		return err
	}
	tg, err := rc.imageGroup(o.image, o.glyph)
	if err != nil {
		return err
	}
	rc.pass.SetPipeline(pipe)
	rc.pass.SetBindGroup(0, ug, nil)
	rc.pass.SetBindGroup(1, tg, nil)
	rc.pass.Draw(o.count, 1, o.first, 0)
	rc.draws++
	return nil
}

// filter runs both blur directions: the source into a temporary
// premultiplied texture, then that texture into the target.
func (rc *recorder) filter(o *op) error {
	r := rc.r
	dst := o.target
	tmp, err := r.newTexture(r.opts.label+"_filter", dst.width, dst.height, gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageTextureBinding)
	if err != nil {
		return err
	}
	rc.temps = append(rc.temps, tmp)

	pipe, err := r.pipeline(pipelineKey{stage: canvas.StageTriangles, composite: copyComposite, format: gputypes.TextureFormatRGBA8Unorm})
	if err != nil {
		return err
	}
	srcSampler, err := r.sampler(samplerKeyOf(o.image.info.Flags))
	if err != nil {
		return err
	}
	clampSampler, err := r.sampler(samplerKey{})
	if err != nil {
		return err
	}

	passes := []struct {
		uniform uint64
		src     *texture
		smp     hal.Sampler
		dst     *texture
	}{
		{o.uniform, o.image.tex, srcSampler, tmp},
		{o.vertical, tmp, clampSampler, dst},
	}
	for _, p := range passes {
		ug, err := rc.uniformGroup(p.uniform)
		if err != nil {
			return err
		}
		tg, err := rc.textureGroup(p.src.view, p.smp, r.blank.view, clampSampler)
		if err != nil {
			return err
		}
		transition(rc.enc, p.src, gputypes.TextureUsageTextureBinding)
		rc.beginPass(p.dst, false)
		rc.pass.SetPipeline(pipe)
		rc.pass.SetBindGroup(0, ug, nil)
		rc.pass.SetBindGroup(1, tg, nil)
		rc.pass.Draw(o.count, 1, o.first, 0)
		rc.draws++
		rc.endPass()
	}
	return nil
}

func (rc *recorder) uniformGroup(offset uint64) (hal.BindGroup, error) {
	g, err := rc.r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  rc.r.opts.label + "_uniforms",
		Layout: rc.r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{{
			Binding: 0,
			Resource: gputypes.BufferBinding{
				Buffer: rc.r.uniformBuf.NativeHandle(),
				Offset: offset,
				Size:   uniformBindingSize,
			},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create uniform bind group: %w", err)
	}
	rc.groups = append(rc.groups, g)
	return g, nil
}

// imageGroup binds the paint image and glyph texture of a draw. Missing
// textures are replaced by the blank texture.
func (rc *recorder) imageGroup(image, glyph *Image) (hal.BindGroup, error) {
	key := [2]*Image{image, glyph}
	if g, ok := rc.textureGroups[key]; ok {
		return g, nil
	}
	views := [2]hal.TextureView{rc.r.blank.view, rc.r.blank.view}
	samplers := [2]hal.Sampler{}
	for i, img := range key {
		var flags canvas.ImageFlags
		if img != nil && img.tex != nil {
			views[i] = img.tex.view
			flags = img.info.Flags
		}
		s, err := rc.r.sampler(samplerKeyOf(flags))
		if err != nil {
			return nil, err
		}
		samplers[i] = s
	}
	g, err := rc.textureGroup(views[0], samplers[0], views[1], samplers[1])
	if err != nil {
		return nil, err
	}
	rc.textureGroups[key] = g
	return g, nil
}

func (rc *recorder) textureGroup(image hal.TextureView, imageSampler hal.Sampler, glyph hal.TextureView, glyphSampler hal.Sampler) (hal.BindGroup, error) {
	g, err := rc.r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  rc.r.opts.label + "_textures",
		Layout: rc.r.textureLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: image.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: imageSampler.NativeHandle()}},
			{Binding: 2, Resource: gputypes.TextureViewBinding{TextureView: glyph.NativeHandle()}},
			{Binding: 3, Resource: gputypes.SamplerBinding{Sampler: glyphSampler.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture bind group: %w", err)
	}
	rc.groups = append(rc.groups, g)
	return g, nil
}

func (rc *recorder) release() {
	for _, g := range rc.groups {
		rc.r.device.DestroyBindGroup(g)
	}
	for _, t := range rc.temps {
		rc.r.destroyTexture(t)
	}
	rc.groups, rc.temps = nil, nil
}
