package canvas

import "strconv"

// CommandType identifies the variant of a CommandKind.
type CommandType uint8

const (
	CmdSetRenderTarget CommandType = iota
	CmdClearRect
	CmdConvexFill
	CmdConcaveFill
	CmdStroke
	CmdStencilStroke
	CmdTriangles
	CmdRenderFilteredImage
)

var commandTypeNames = [...]string{
	CmdSetRenderTarget:     "SetRenderTarget",
	CmdClearRect:           "ClearRect",
	CmdConvexFill:          "ConvexFill",
	CmdConcaveFill:         "ConcaveFill",
	CmdStroke:              "Stroke",
	CmdStencilStroke:       "StencilStroke",
	CmdTriangles:           "Triangles",
	CmdRenderFilteredImage: "RenderFilteredImage",
}

func (t CommandType) String() string {
	if int(t) < len(commandTypeNames) {
		return commandTypeNames[t]
	}
	return "CommandType(" + strconv.Itoa(int(t)) + ")"
}

// CommandKind is the variant payload of a Command. The set of
// implementations is closed: SetRenderTarget, ClearRect, ConvexFill,
// ConcaveFill, Stroke, StencilStroke, Triangles and RenderFilteredImage.
type CommandKind interface {
	Type() CommandType
	commandKind()
}

// SetRenderTarget redirects subsequent commands to Target.
type SetRenderTarget struct {
	Target RenderTarget
}

// ClearRect clears a pixel rectangle of the current target to Color,
// ignoring blending and stencil state.
type ClearRect struct {
	X, Y          uint32
	Width, Height uint32
	Color         Color
}

// ConvexFill fills convex paths directly, without stencil.
type ConvexFill struct {
	Params Params
}

// ConcaveFill fills arbitrary paths with the two-pass stencil technique:
// StencilParams drive the coverage pass, FillParams the color pass.
type ConcaveFill struct {
	StencilParams Params
	FillParams    Params
}

// Stroke draws stroke strips directly.
type Stroke struct {
	Params Params
}

// StencilStroke draws strokes that may self-overlap without double
// blending. Params1 drive the base pass and Params2 the anti-aliasing pass;
// Params1 is always applied first.
type StencilStroke struct {
	Params1 Params
	Params2 Params
}

// Triangles draws an arbitrary triangle list, typically glyph quads.
type Triangles struct {
	Params Params
}

// RenderFilteredImage renders the command's source Image through Filter into
// TargetImage.
type RenderFilteredImage struct {
	TargetImage ImageID
	Filter      ImageFilter
}

func (SetRenderTarget) Type() CommandType     { return CmdSetRenderTarget }
func (ClearRect) Type() CommandType           { return CmdClearRect }
func (ConvexFill) Type() CommandType          { return CmdConvexFill }
func (ConcaveFill) Type() CommandType         { return CmdConcaveFill }
func (Stroke) Type() CommandType              { return CmdStroke }
func (StencilStroke) Type() CommandType       { return CmdStencilStroke }
func (Triangles) Type() CommandType           { return CmdTriangles }
func (RenderFilteredImage) Type() CommandType { return CmdRenderFilteredImage }

func (SetRenderTarget) commandKind()     {}
func (ClearRect) commandKind()           {}
func (ConvexFill) commandKind()          {}
func (ConcaveFill) commandKind()         {}
func (Stroke) commandKind()              {}
func (StencilStroke) commandKind()       {}
func (Triangles) commandKind()           {}
func (RenderFilteredImage) commandKind() {}

// RenderTarget is where draws land: the screen (zero value) or an image.
type RenderTarget struct {
	Image ImageID
}

// ScreenTarget returns the screen target.
func ScreenTarget() RenderTarget { return RenderTarget{} }

// ImageTarget returns the target rendering into image id.
func ImageTarget(id ImageID) RenderTarget { return RenderTarget{Image: id} }

// IsScreen reports whether t is the screen.
func (t RenderTarget) IsScreen() bool { return t.Image == 0 }

// Compare orders targets: the screen sorts before every image, images sort
// by id.
func (t RenderTarget) Compare(o RenderTarget) int {
	switch {
	case t.Image < o.Image:
		return -1
	case t.Image > o.Image:
		return 1
	}
	return 0
}

func (t RenderTarget) String() string {
	if t.IsScreen() {
		return "screen"
	}
	return t.Image.String()
}

// GlyphTextureKind says how a glyph atlas modulates a draw.
type GlyphTextureKind uint8

const (
	// GlyphNone means no glyph atlas is bound.
	GlyphNone GlyphTextureKind = iota
	// GlyphAlphaMask uses the atlas red channel as coverage.
	GlyphAlphaMask
	// GlyphColorTexture uses the atlas as premultiplied color (emoji).
	GlyphColorTexture
)

// ShaderCode returns the value stored in Params.GlyphTextureType.
func (k GlyphTextureKind) ShaderCode() float32 { return float32(k) }

// GlyphTexture references a glyph atlas page.
type GlyphTexture struct {
	Kind  GlyphTextureKind
	Image ImageID
}

// IsNone reports whether no atlas is referenced.
func (g GlyphTexture) IsNone() bool { return g.Kind == GlyphNone }

// FilterKind identifies an image filter.
type FilterKind uint8

const (
	// FilterGaussianBlur is a separable Gaussian blur.
	FilterGaussianBlur FilterKind = iota
)

// ImageFilter describes a filter applied by RenderFilteredImage.
type ImageFilter struct {
	Kind  FilterKind
	Sigma float32
}

// GaussianBlur returns a Gaussian blur filter with standard deviation sigma
// in pixels.
func GaussianBlur(sigma float32) ImageFilter {
	return ImageFilter{Kind: FilterGaussianBlur, Sigma: sigma}
}

// Command is one unit of work in a frame. It references geometry by range in
// the frame's vertex buffer and images by id in the frame's image store.
// Commands are immutable after construction.
type Command struct {
	Kind CommandKind

	// Drawables are the per-path fill and stroke ranges.
	Drawables []Drawable

	// TriangleVerts is the cover quad of ConcaveFill, the triangle list of
	// Triangles and the full-target quad of RenderFilteredImage.
	TriangleVerts VertexRange

	// Image is the paint or filter source image; zero means none.
	Image ImageID

	GlyphTexture       GlyphTexture
	FillRule           FillRule
	CompositeOperation CompositeOperationState
}

// NewCommand returns a command of the given kind with source-over
// compositing and the non-zero fill rule.
func NewCommand(kind CommandKind) Command {
	return Command{
		Kind:               kind,
		CompositeOperation: NewCompositeOperationState(CompositeSourceOver),
	}
}

// Type returns the command variant. A command without a kind reports an
// out-of-range type that matches no Cmd constant.
func (c *Command) Type() CommandType {
	if c.Kind == nil {
		return CommandType(255)
	}
	return c.Kind.Type()
}
