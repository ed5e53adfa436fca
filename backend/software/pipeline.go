package software

import "github.com/gogpu/canvas"

type stencilCompare uint8

const (
	compareAlways stencilCompare = iota
	compareEqualZero
	compareNotEqualZero
)

type stencilOp uint8

const (
	opKeep stencilOp = iota
	opZero
	opIncrClamp
	opWindingWrap // increment on front faces, decrement on back faces
	opInvert
)

// pipeline is the fixed-function state of one pass.
type pipeline struct {
	colorWrite bool
	compare    stencilCompare
	passOp     stencilOp
}

// pipelineFor derives the state of a stage, mirroring the stencil setup of
// the GPU backend.
func pipelineFor(stage canvas.PassStage, rule canvas.FillRule) pipeline {
	switch stage {
	case canvas.StageStencil:
		op := opWindingWrap
		if rule == canvas.FillRuleEvenOdd {
			op = opInvert
		}
		return pipeline{compare: compareAlways, passOp: op}
	case canvas.StageFringe:
		return pipeline{colorWrite: true, compare: compareEqualZero, passOp: opKeep}
	case canvas.StageFill:
		return pipeline{colorWrite: true, compare: compareNotEqualZero, passOp: opZero}
	case canvas.StageStencilStrokeBase:
		return pipeline{colorWrite: true, compare: compareEqualZero, passOp: opIncrClamp}
	case canvas.StageStencilStrokeAA:
		return pipeline{colorWrite: true, compare: compareEqualZero, passOp: opKeep}
	case canvas.StageStencilStrokeClear:
		return pipeline{compare: compareAlways, passOp: opZero}
	}
	return pipeline{colorWrite: true, compare: compareAlways, passOp: opKeep}
}

func (p pipeline) usesStencil() bool {
	return p.compare != compareAlways || p.passOp != opKeep
}

func (p pipeline) test(s uint8) bool {
	switch p.compare {
	case compareEqualZero:
		return s == 0
	case compareNotEqualZero:
		return s != 0
	}
	return true
}

func (p pipeline) apply(s *uint8, front bool) {
	switch p.passOp {
	case opZero:
		*s = 0
	case opIncrClamp:
		if *s < 0xff {
			*s++
		}
	case opWindingWrap:
		if front {
			*s++
		} else {
			*s--
		}
	case opInvert:
		*s = ^*s
	}
}
