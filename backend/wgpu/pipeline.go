//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/canvas"
)

// vertexStride is the byte size of canvas.Vertex: position and texture
// coordinate, two float32 each.
const vertexStride = 16

// pipelineKey identifies one cached render pipeline.
type pipelineKey struct {
	stage     canvas.PassStage
	rule      canvas.FillRule
	composite canvas.CompositeOperationState
	format    gputypes.TextureFormat

	// stencil is false for filter passes, which render without a
	// depth-stencil attachment.
	stencil bool
}

// newPipelineKey builds the key of a draw. The fill rule only changes the
// stencil accumulation stage, so it is dropped elsewhere to share
// pipelines.
func newPipelineKey(stage canvas.PassStage, rule canvas.FillRule, comp canvas.CompositeOperationState, format gputypes.TextureFormat) pipelineKey {
	if stage != canvas.StageStencil {
		rule = canvas.FillRuleNonZero
	}
	return pipelineKey{stage: stage, rule: rule, composite: comp, format: format, stencil: true}
}

// copyComposite replaces the destination. Clears and filter passes use it.
var copyComposite = canvas.NewBlendFuncSeparate(canvas.BlendOne, canvas.BlendZero, canvas.BlendOne, canvas.BlendZero)

func stencilFace(compare gputypes.CompareFunction, pass hal.StencilOperation) hal.StencilFaceState {
	return hal.StencilFaceState{
		Compare:     compare,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      pass,
	}
}

// depthStencilState returns the stencil setup of a stage. Tests compare
// against the reference value, which is always zero.
func depthStencilState(stage canvas.PassStage, rule canvas.FillRule) *hal.DepthStencilState {
	front := stencilFace(gputypes.CompareFunctionAlways, hal.StencilOperationKeep)
	back := front

	switch stage {
	case canvas.StageStencil:
		if rule == canvas.FillRuleEvenOdd {
			front = stencilFace(gputypes.CompareFunctionAlways, hal.StencilOperationInvert)
			back = front
		} else {
			front = stencilFace(gputypes.CompareFunctionAlways, hal.StencilOperationIncrementWrap)
			back = stencilFace(gputypes.CompareFunctionAlways, hal.StencilOperationDecrementWrap)
		}
	case canvas.StageFringe, canvas.StageStencilStrokeAA:
		front = stencilFace(gputypes.CompareFunctionEqual, hal.StencilOperationKeep)
		back = front
	case canvas.StageFill:
		front = stencilFace(gputypes.CompareFunctionNotEqual, hal.StencilOperationZero)
		back = front
	case canvas.StageStencilStrokeBase:
		front = stencilFace(gputypes.CompareFunctionEqual, hal.StencilOperationIncrementClamp)
		back = front
	case canvas.StageStencilStrokeClear:
		front = stencilFace(gputypes.CompareFunctionAlways, hal.StencilOperationZero)
		back = front
	}

	return &hal.DepthStencilState{
		Format:            gputypes.TextureFormatDepth24PlusStencil8,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
		StencilFront:      front,
		StencilBack:       back,
		StencilReadMask:   0xFF,
		StencilWriteMask:  0xFF,
	}
}

var blendFactors = [...]gputypes.BlendFactor{
	canvas.BlendZero:             gputypes.BlendFactorZero,
	canvas.BlendOne:              gputypes.BlendFactorOne,
	canvas.BlendSrcColor:         gputypes.BlendFactorSrc,
	canvas.BlendOneMinusSrcColor: gputypes.BlendFactorOneMinusSrc,
	canvas.BlendDstColor:         gputypes.BlendFactorDst,
	canvas.BlendOneMinusDstColor: gputypes.BlendFactorOneMinusDst,
	canvas.BlendSrcAlpha:         gputypes.BlendFactorSrcAlpha,
	canvas.BlendOneMinusSrcAlpha: gputypes.BlendFactorOneMinusSrcAlpha,
	canvas.BlendDstAlpha:         gputypes.BlendFactorDstAlpha,
	canvas.BlendOneMinusDstAlpha: gputypes.BlendFactorOneMinusDstAlpha,
	canvas.BlendSrcAlphaSaturate: gputypes.BlendFactorSrcAlphaSaturated,
}

func blendFactor(f canvas.BlendFactor) gputypes.BlendFactor {
	if int(f) < len(blendFactors) {
		return blendFactors[f]
	}
	return gputypes.BlendFactorZero
}

// blendState converts a composite state to the additive GPU blend
// equation with separate color and alpha factors.
func blendState(s canvas.CompositeOperationState) *gputypes.BlendState {
	return &gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: blendFactor(s.SrcRGB),
			DstFactor: blendFactor(s.DstRGB),
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: blendFactor(s.SrcAlpha),
			DstFactor: blendFactor(s.DstAlpha),
			Operation: gputypes.BlendOperationAdd,
		},
	}
}

// pipelineDescriptor returns the full pipeline description for key.
func (r *Renderer) pipelineDescriptor(key pipelineKey) *hal.RenderPipelineDescriptor {
	writeMask := gputypes.ColorWriteMaskAll
	if !key.stage.WritesColor() {
		writeMask = gputypes.ColorWriteMaskNone
	}

	desc := &hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%s_%s", r.opts.label, key.stage),
		Layout: r.pipelineLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{{
				ArrayStride: vertexStride,
				StepMode:    gputypes.VertexStepModeVertex,
				Attributes: []gputypes.VertexAttribute{
					{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
				},
			}},
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{
				Format:    key.format,
				Blend:     blendState(key.composite),
				WriteMask: writeMask,
			}},
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
	}
	if key.stencil {
		desc.DepthStencil = depthStencilState(key.stage, key.rule)
	}
	return desc
}

// pipeline returns the cached pipeline for key, creating it on first use.
func (r *Renderer) pipeline(key pipelineKey) (hal.RenderPipeline, error) {
	if p, ok := r.pipelines[key]; ok {
		return p, nil
	}
	p, err := r.device.CreateRenderPipeline(r.pipelineDescriptor(key))
	if err != nil {
		return nil, canvas.ShaderLinkError(fmt.Sprintf("create %s pipeline: %v", key.stage, err))
	}
	r.pipelines[key] = p
	canvas.Logger().Debug("wgpu: pipeline created",
		"stage", key.stage, "rule", key.rule, "composite", key.composite, "format", key.format)
	return p, nil
}
