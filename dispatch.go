package canvas

import (
	"fmt"
	"strconv"
)

// PassStage identifies which step of a command's technique a Pass belongs
// to. Encoders derive stencil, color-mask and blend state from it.
type PassStage uint8

const (
	// StageConvexFill draws convex fill fans with color writes on.
	StageConvexFill PassStage = iota
	// StageConvexFringe draws the anti-aliasing fringe of a convex fill.
	StageConvexFringe
	// StageStencil accumulates winding into the stencil buffer with color
	// writes off: increment-wrap on front faces and decrement-wrap on back
	// faces for non-zero, invert for even-odd.
	StageStencil
	// StageFringe draws the fringe of a concave fill where stencil is zero.
	StageFringe
	// StageFill draws the cover geometry where stencil is non-zero and
	// resets it to zero.
	StageFill
	// StageStroke draws stroke strips directly.
	StageStroke
	// StageStencilStrokeBase draws where stencil equals zero and increments
	// it, so overlapping segments blend once.
	StageStencilStrokeBase
	// StageStencilStrokeAA draws the anti-aliased edges where stencil is
	// still zero.
	StageStencilStrokeAA
	// StageStencilStrokeClear resets the stencil with color writes off.
	StageStencilStrokeClear
	// StageTriangles draws a triangle list.
	StageTriangles
)

var passStageNames = [...]string{
	StageConvexFill:         "convex-fill",
	StageConvexFringe:       "convex-fringe",
	StageStencil:            "stencil",
	StageFringe:             "fringe",
	StageFill:               "fill",
	StageStroke:             "stroke",
	StageStencilStrokeBase:  "stencil-stroke-base",
	StageStencilStrokeAA:    "stencil-stroke-aa",
	StageStencilStrokeClear: "stencil-stroke-clear",
	StageTriangles:          "triangles",
}

func (s PassStage) String() string {
	if int(s) < len(passStageNames) {
		return passStageNames[s]
	}
	return "PassStage(" + strconv.Itoa(int(s)) + ")"
}

// WritesColor reports whether the stage writes to the color buffer.
func (s PassStage) WritesColor() bool {
	return s != StageStencil && s != StageStencilStrokeClear
}

// Topology is the primitive assembly of a pass.
type Topology uint8

const (
	// TriangleFan assembles (v0, vi, vi+1) triangles.
	TriangleFan Topology = iota
	// TriangleStrip assembles (vi, vi+1, vi+2) triangles.
	TriangleStrip
	// TriangleList assembles independent triangles.
	TriangleList
)

func (t Topology) String() string {
	switch t {
	case TriangleFan:
		return "fan"
	case TriangleStrip:
		return "strip"
	case TriangleList:
		return "list"
	}
	return "Topology(" + strconv.Itoa(int(t)) + ")"
}

// AppendTriangles appends src assembled as independent triangles to dst.
// Odd strip triangles swap their first two vertices so every triangle of a
// strip keeps the winding of the first one.
func (t Topology) AppendTriangles(dst, src []Vertex) []Vertex {
	switch t {
	case TriangleFan:
		for i := 1; i+1 < len(src); i++ {
			dst = append(dst, src[0], src[i], src[i+1])
		}
	case TriangleStrip:
		for i := 0; i+2 < len(src); i++ {
			if i%2 == 0 {
				dst = append(dst, src[i], src[i+1], src[i+2])
			} else {
				dst = append(dst, src[i+1], src[i], src[i+2])
			}
		}
	case TriangleList:
		dst = append(dst, src[:len(src)/3*3]...)
	}
	return dst
}

// Pass is one draw of a command: a set of vertex ranges drawn with one
// uniform block and one pipeline state.
type Pass struct {
	Cmd    *Command
	Stage  PassStage
	Params Params

	// Ranges are drawn in order, each as its own primitive run. Empty
	// ranges never appear here.
	Ranges   []VertexRange
	Topology Topology

	FillRule     FillRule
	Composite    CompositeOperationState
	Image        ImageID
	GlyphTexture GlyphTexture
}

// FilterPass renders Source through a separable filter into Target.
// Horizontal and Vertical are the uniforms of the two blur directions: the
// horizontal pass samples Source into an intermediate premultiplied image,
// the vertical pass samples that image into Target. Quad is a four-vertex
// triangle strip in target pixels whose texture coordinates span the
// source.
type FilterPass struct {
	Cmd        *Command
	Source     ImageID
	Target     ImageID
	Filter     ImageFilter
	Horizontal Params
	Vertical   Params
	Quad       VertexRange
}

// Encoder receives the passes of a frame from Execute. Encoders start each
// frame bound to the screen and must apply a pass's fill rule and composite
// state for that draw only.
type Encoder interface {
	SetRenderTarget(target RenderTarget) error
	ClearRect(x, y, width, height uint32, c Color) error
	Draw(p Pass) error
	FilterImage(p FilterPass) error
}

type dispatchConfig struct {
	antialias bool
	coalesce  bool
}

// DispatchOption configures Execute.
type DispatchOption func(*dispatchConfig)

// WithAntialias enables or disables fringe passes. The default is enabled.
func WithAntialias(enabled bool) DispatchOption {
	return func(c *dispatchConfig) { c.antialias = enabled }
}

// WithTargetCoalescing drops SetRenderTarget commands that select the target
// already bound. By default every switch reaches the encoder.
func WithTargetCoalescing() DispatchOption {
	return func(c *dispatchConfig) { c.coalesce = true }
}

// Execute validates a frame and lowers its commands to encoder passes in
// order. The frame is rejected before any pass if it references vertices
// outside verts or image ids missing from images. Otherwise the first
// encoder error aborts the frame and is returned with the command index.
func Execute(enc Encoder, images *ImageStore, verts []Vertex, cmds []Command, opts ...DispatchOption) error {
	cfg := dispatchConfig{antialias: true}
	for _, o := range opts {
		o(&cfg)
	}
	if err := ValidateFrame(images, verts, cmds); err != nil {
		return err
	}

	d := dispatcher{enc: enc, cfg: cfg, images: images, target: ScreenTarget()}
	for i := range cmds {
		if err := d.command(&cmds[i]); err != nil {
			return &FrameError{Index: i, Err: err}
		}
	}
	Logger().Debug("frame dispatched",
		"commands", len(cmds), "passes", d.passes, "vertices", len(verts))
	return nil
}

type dispatcher struct {
	enc    Encoder
	cfg    dispatchConfig
	images *ImageStore
	target RenderTarget
	passes int
}

func (d *dispatcher) command(cmd *Command) error {
	switch k := cmd.Kind.(type) {
	case SetRenderTarget:
		if d.cfg.coalesce && k.Target == d.target {
			return nil
		}
		d.target = k.Target
		return d.enc.SetRenderTarget(k.Target)

	case ClearRect:
		return d.enc.ClearRect(k.X, k.Y, k.Width, k.Height, k.Color)

	case ConvexFill:
		if err := d.draw(cmd, StageConvexFill, k.Params, fillRanges(cmd), TriangleFan); err != nil {
			return err
		}
		if d.cfg.antialias {
			return d.draw(cmd, StageConvexFringe, k.Params, strokeRanges(cmd), TriangleStrip)
		}
		return nil

	case ConcaveFill:
		if err := d.draw(cmd, StageStencil, k.StencilParams, fillRanges(cmd), TriangleFan); err != nil {
			return err
		}
		if d.cfg.antialias {
			if err := d.draw(cmd, StageFringe, k.FillParams, strokeRanges(cmd), TriangleStrip); err != nil {
				return err
			}
		}
		return d.draw(cmd, StageFill, k.FillParams, rangeList(cmd.TriangleVerts), TriangleStrip)

	case Stroke:
		return d.draw(cmd, StageStroke, k.Params, strokeRanges(cmd), TriangleStrip)

	case StencilStroke:
		strokes := strokeRanges(cmd)
		if err := d.draw(cmd, StageStencilStrokeBase, k.Params1, strokes, TriangleStrip); err != nil {
			return err
		}
		if err := d.draw(cmd, StageStencilStrokeAA, k.Params2, strokes, TriangleStrip); err != nil {
			return err
		}
		return d.draw(cmd, StageStencilStrokeClear, k.Params1, strokes, TriangleStrip)

	case Triangles:
		return d.draw(cmd, StageTriangles, k.Params, rangeList(cmd.TriangleVerts), TriangleList)

	case RenderFilteredImage:
		d.passes++
		h := BlurParams([2]float32{1, 0}, k.Filter.Sigma)
		if d.images != nil {
			if info, err := d.images.Info(cmd.Image); err == nil {
				h.TexType = texTypeOf(info)
			}
		}
		return d.enc.FilterImage(FilterPass{
			Cmd:        cmd,
			Source:     cmd.Image,
			Target:     k.TargetImage,
			Filter:     k.Filter,
			Horizontal: h,
			Vertical:   BlurParams([2]float32{0, 1}, k.Filter.Sigma),
			Quad:       cmd.TriangleVerts,
		})
	}
	return GeneralError(fmt.Sprintf("unknown command kind %T", cmd.Kind))
}

func (d *dispatcher) draw(cmd *Command, stage PassStage, params Params, ranges []VertexRange, topo Topology) error {
	if len(ranges) == 0 {
		return nil
	}
	d.passes++
	return d.enc.Draw(Pass{
		Cmd:          cmd,
		Stage:        stage,
		Params:       params,
		Ranges:       ranges,
		Topology:     topo,
		FillRule:     cmd.FillRule,
		Composite:    cmd.CompositeOperation.Normalized(),
		Image:        cmd.Image,
		GlyphTexture: cmd.GlyphTexture,
	})
}

func fillRanges(cmd *Command) []VertexRange {
	var out []VertexRange
	for _, dr := range cmd.Drawables {
		if !dr.Fill.Empty() {
			out = append(out, dr.Fill)
		}
	}
	return out
}

func strokeRanges(cmd *Command) []VertexRange {
	var out []VertexRange
	for _, dr := range cmd.Drawables {
		if !dr.Stroke.Empty() {
			out = append(out, dr.Stroke)
		}
	}
	return out
}

func rangeList(r VertexRange) []VertexRange {
	if r.Empty() {
		return nil
	}
	return []VertexRange{r}
}
