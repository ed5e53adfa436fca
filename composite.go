package canvas

import "strconv"

// CompositeOperation is a Porter-Duff compositing mode.
type CompositeOperation uint8

const (
	CompositeSourceOver CompositeOperation = iota
	CompositeSourceIn
	CompositeSourceOut
	CompositeAtop
	CompositeDestinationOver
	CompositeDestinationIn
	CompositeDestinationOut
	CompositeDestinationAtop
	CompositeLighter
	CompositeCopy
	CompositeXor
)

var compositeNames = [...]string{
	CompositeSourceOver:      "source-over",
	CompositeSourceIn:        "source-in",
	CompositeSourceOut:       "source-out",
	CompositeAtop:            "atop",
	CompositeDestinationOver: "destination-over",
	CompositeDestinationIn:   "destination-in",
	CompositeDestinationOut:  "destination-out",
	CompositeDestinationAtop: "destination-atop",
	CompositeLighter:         "lighter",
	CompositeCopy:            "copy",
	CompositeXor:             "xor",
}

func (op CompositeOperation) String() string {
	if int(op) < len(compositeNames) {
		return compositeNames[op]
	}
	return "CompositeOperation(" + strconv.Itoa(int(op)) + ")"
}

// BlendFactor is a blend equation factor. All blending is additive on
// premultiplied colors: result = src*srcFactor + dst*dstFactor.
type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendSrcAlphaSaturate
)

var blendFactorNames = [...]string{
	BlendZero:             "zero",
	BlendOne:              "one",
	BlendSrcColor:         "src-color",
	BlendOneMinusSrcColor: "one-minus-src-color",
	BlendDstColor:         "dst-color",
	BlendOneMinusDstColor: "one-minus-dst-color",
	BlendSrcAlpha:         "src-alpha",
	BlendOneMinusSrcAlpha: "one-minus-src-alpha",
	BlendDstAlpha:         "dst-alpha",
	BlendOneMinusDstAlpha: "one-minus-dst-alpha",
	BlendSrcAlphaSaturate: "src-alpha-saturate",
}

func (f BlendFactor) String() string {
	if int(f) < len(blendFactorNames) {
		return blendFactorNames[f]
	}
	return "BlendFactor(" + strconv.Itoa(int(f)) + ")"
}

// CompositeOperationState is the resolved blend function of a draw.
//
// The zero value has every factor set to BlendZero, which would erase the
// destination. Command consumers call Normalized, which maps it to
// source-over.
type CompositeOperationState struct {
	SrcRGB   BlendFactor
	DstRGB   BlendFactor
	SrcAlpha BlendFactor
	DstAlpha BlendFactor
}

// NewCompositeOperationState returns the blend function of op.
func NewCompositeOperationState(op CompositeOperation) CompositeOperationState {
	var sf, df BlendFactor
	switch op {
	case CompositeSourceIn:
		sf, df = BlendDstAlpha, BlendZero
	case CompositeSourceOut:
		sf, df = BlendOneMinusDstAlpha, BlendZero
	case CompositeAtop:
		sf, df = BlendDstAlpha, BlendOneMinusSrcAlpha
	case CompositeDestinationOver:
		sf, df = BlendOneMinusDstAlpha, BlendOne
	case CompositeDestinationIn:
		sf, df = BlendZero, BlendSrcAlpha
	case CompositeDestinationOut:
		sf, df = BlendZero, BlendOneMinusSrcAlpha
	case CompositeDestinationAtop:
		sf, df = BlendOneMinusDstAlpha, BlendSrcAlpha
	case CompositeLighter:
		sf, df = BlendOne, BlendOne
	case CompositeCopy:
		sf, df = BlendOne, BlendZero
	case CompositeXor:
		sf, df = BlendOneMinusDstAlpha, BlendOneMinusSrcAlpha
	default:
		sf, df = BlendOne, BlendOneMinusSrcAlpha
	}
	return CompositeOperationState{SrcRGB: sf, DstRGB: df, SrcAlpha: sf, DstAlpha: df}
}

// NewBlendFuncSeparate returns a blend function with separate color and
// alpha factors.
func NewBlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha BlendFactor) CompositeOperationState {
	return CompositeOperationState{SrcRGB: srcRGB, DstRGB: dstRGB, SrcAlpha: srcAlpha, DstAlpha: dstAlpha}
}

// IsZero reports whether s is the zero value.
func (s CompositeOperationState) IsZero() bool { return s == CompositeOperationState{} }

// Normalized returns s, or source-over if s is the zero value.
func (s CompositeOperationState) Normalized() CompositeOperationState {
	if s.IsZero() {
		return NewCompositeOperationState(CompositeSourceOver)
	}
	return s
}

func (s CompositeOperationState) String() string {
	return s.SrcRGB.String() + "," + s.DstRGB.String() + "," + s.SrcAlpha.String() + "," + s.DstAlpha.String()
}
