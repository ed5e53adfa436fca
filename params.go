package canvas

import (
	"encoding/binary"
	"math"
	"strconv"
)

// ShaderType selects the fragment program branch of a draw.
//
// The numeric codes returned by Code are written verbatim into the uniform
// block and compared by shaders. They must never be renumbered.
type ShaderType uint8

const (
	// ShaderFillGradient fills with a solid color or analytic gradient.
	ShaderFillGradient ShaderType = iota
	// ShaderFillImage fills with an image pattern.
	ShaderFillImage
	// ShaderStencil writes stencil only.
	ShaderStencil
	// ShaderFillImageGradient fills with a gradient ramp image.
	ShaderFillImageGradient
	// ShaderFilterImage runs an image filter such as Gaussian blur.
	ShaderFilterImage
)

var shaderTypeNames = [...]string{
	ShaderFillGradient:      "FillGradient",
	ShaderFillImage:         "FillImage",
	ShaderStencil:           "Stencil",
	ShaderFillImageGradient: "FillImageGradient",
	ShaderFilterImage:       "FilterImage",
}

// Code returns the shader selector value: 0 for FillGradient through 4 for
// FilterImage.
func (s ShaderType) Code() float32 {
	return float32(s)
}

func (s ShaderType) String() string {
	if int(s) < len(shaderTypeNames) {
		return shaderTypeNames[s]
	}
	return "ShaderType(" + strconv.Itoa(int(s)) + ")"
}

// UniformCount is the number of float32 values in a packed uniform block,
// thirteen vec4 slots.
const UniformCount = 52

// UniformSize is the byte size of a packed uniform block.
const UniformSize = UniformCount * 4

// Uniform slot offsets, in floats.
const (
	uniScissorMat   = 0
	uniPaintMat     = 12
	uniInnerCol     = 24
	uniOuterCol     = 28
	uniScissorExt   = 32
	uniScissorScale = 34
	uniExtent       = 36
	uniRadius       = 38
	uniFeather      = 39
	uniStrokeMult   = 40
	uniStrokeThr    = 41
	uniTexType      = 42
	uniShaderType   = 43
	uniGlyphTexType = 44
	uniBlurSigma    = 45
	uniBlurDir      = 46
	uniBlurCoeff    = 48
)

// Texture sampling modes stored in Params.TexType.
const (
	TexPremultipliedRGBA float32 = 0
	TexStraightRGBA      float32 = 1
	TexAlpha             float32 = 2
)

// Stroke thresholds for the two stencil stroke passes.
const (
	StencilStrokeBaseThreshold = 1.0 - 0.5/255.0
	StencilStrokeAAThreshold   = -1.0
)

// Params is the uniform block of one pass. A Params is a plain value: once
// placed in a command it is never modified.
type Params struct {
	ScissorMat   [12]float32
	PaintMat     [12]float32
	InnerCol     Color
	OuterCol     Color
	ScissorExt   [2]float32
	ScissorScale [2]float32
	Extent       [2]float32
	Radius       float32
	Feather      float32
	StrokeMult   float32
	StrokeThr    float32
	TexType      float32
	ShaderType   ShaderType

	GlyphTextureType float32
	BlurDirection    [2]float32
	BlurSigma        float32
	BlurCoeff        [3]float32
}

// NewParams builds the uniform block for drawing with paint clipped by
// scissor. strokeWidth and fringe control the anti-aliasing ramp of stroke
// geometry; strokeThr discards fragments whose coverage falls below it
// (pass -1 to keep everything).
//
// Image metadata is looked up in images. An unknown image id leaves the
// texture type at its default; ValidateFrame reports such ids before any
// pass runs.
func NewParams(images *ImageStore, paint Paint, scissor Scissor, strokeWidth, fringe, strokeThr float32) Params {
	p := Params{
		InnerCol:         paint.InnerColor.Premultiply(),
		OuterCol:         paint.OuterColor.Premultiply(),
		Extent:           paint.Extent,
		StrokeThr:        strokeThr,
		GlyphTextureType: paint.GlyphTexture.Kind.ShaderCode(),
	}
	if fringe > 0 {
		p.StrokeMult = (strokeWidth*0.5 + fringe*0.5) / fringe
	}

	if !scissor.Enabled() {
		p.ScissorExt = [2]float32{1, 1}
		p.ScissorScale = [2]float32{1, 1}
	} else {
		f := fringe
		if f <= 0 {
			f = 1
		}
		st := scissor.Transform
		p.ScissorMat = st.Inverse().ToMat3x4()
		p.ScissorExt = scissor.Extent
		p.ScissorScale = [2]float32{
			float32(math.Hypot(float64(st[0]), float64(st[2]))) / f,
			float32(math.Hypot(float64(st[1]), float64(st[3]))) / f,
		}
	}

	switch {
	case paint.Image != 0:
		xf := paint.Transform
		var info ImageInfo
		if images != nil {
			info, _ = images.Info(paint.Image)
		}
		if info.Flags.Has(ImageFlipY) {
			xf = Scale(1, -1).Multiply(xf)
		}
		p.PaintMat = xf.Inverse().ToMat3x4()
		p.ShaderType = ShaderFillImage
		p.TexType = texTypeOf(info)
	case paint.Ramp != 0:
		p.PaintMat = paint.Transform.Inverse().ToMat3x4()
		p.ShaderType = ShaderFillImageGradient
		p.Radius = paint.Radius
		p.Feather = paint.Feather
	default:
		p.PaintMat = paint.Transform.Inverse().ToMat3x4()
		p.ShaderType = ShaderFillGradient
		p.Radius = paint.Radius
		p.Feather = paint.Feather
	}
	return p
}

func texTypeOf(info ImageInfo) float32 {
	switch info.Format {
	case PixelFormatGray8:
		return TexAlpha
	case PixelFormatRGBA8:
		if info.Flags.Has(ImagePremultiplied) {
			return TexPremultipliedRGBA
		}
		return TexStraightRGBA
	}
	return TexStraightRGBA
}

// NewStencilStrokeParams returns the uniform pair of a stencil stroke: the
// base pass, which keeps only fully covered fragments, and the
// anti-aliasing pass, which keeps everything.
func NewStencilStrokeParams(images *ImageStore, paint Paint, scissor Scissor, strokeWidth, fringe float32) (base, aa Params) {
	base = NewParams(images, paint, scissor, strokeWidth, fringe, StencilStrokeBaseThreshold)
	aa = NewParams(images, paint, scissor, strokeWidth, fringe, StencilStrokeAAThreshold)
	return base, aa
}

// StencilParams returns the uniform block of a stencil-only pass.
func StencilParams() Params {
	return Params{
		StrokeThr:    -1,
		ShaderType:   ShaderStencil,
		ScissorExt:   [2]float32{1, 1},
		ScissorScale: [2]float32{1, 1},
	}
}

// BlurParams returns the uniform block of one separable Gaussian blur pass
// along direction, in texels.
func BlurParams(direction [2]float32, sigma float32) Params {
	p := Params{
		ShaderType:    ShaderFilterImage,
		StrokeThr:     -1,
		ScissorExt:    [2]float32{1, 1},
		ScissorScale:  [2]float32{1, 1},
		BlurDirection: direction,
		BlurSigma:     sigma,
	}
	if sigma > 0 {
		s := float64(sigma)
		c0 := 1 / (math.Sqrt(2*math.Pi) * s)
		c1 := math.Exp(-0.5 / (s * s))
		p.BlurCoeff = [3]float32{float32(c0), float32(c1), float32(c1 * c1)}
	}
	return p
}

// Uniforms packs p into the fixed slot layout read by shaders.
func (p Params) Uniforms() [UniformCount]float32 {
	var u [UniformCount]float32
	copy(u[uniScissorMat:], p.ScissorMat[:])
	copy(u[uniPaintMat:], p.PaintMat[:])
	inner, outer := p.InnerCol.Array(), p.OuterCol.Array()
	copy(u[uniInnerCol:], inner[:])
	copy(u[uniOuterCol:], outer[:])
	copy(u[uniScissorExt:], p.ScissorExt[:])
	copy(u[uniScissorScale:], p.ScissorScale[:])
	copy(u[uniExtent:], p.Extent[:])
	u[uniRadius] = p.Radius
	u[uniFeather] = p.Feather
	u[uniStrokeMult] = p.StrokeMult
	u[uniStrokeThr] = p.StrokeThr
	u[uniTexType] = p.TexType
	u[uniShaderType] = p.ShaderType.Code()
	u[uniGlyphTexType] = p.GlyphTextureType
	u[uniBlurSigma] = p.BlurSigma
	copy(u[uniBlurDir:], p.BlurDirection[:])
	copy(u[uniBlurCoeff:], p.BlurCoeff[:])
	return u
}

// AppendUniformBytes appends the little-endian packed uniforms of p to dst.
func (p Params) AppendUniformBytes(dst []byte) []byte {
	u := p.Uniforms()
	for _, f := range u {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}
