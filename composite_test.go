package canvas

import "testing"

func TestNewCompositeOperationState(t *testing.T) {
	tests := []struct {
		op  CompositeOperation
		src BlendFactor
		dst BlendFactor
	}{
		{CompositeSourceOver, BlendOne, BlendOneMinusSrcAlpha},
		{CompositeSourceIn, BlendDstAlpha, BlendZero},
		{CompositeSourceOut, BlendOneMinusDstAlpha, BlendZero},
		{CompositeAtop, BlendDstAlpha, BlendOneMinusSrcAlpha},
		{CompositeDestinationOver, BlendOneMinusDstAlpha, BlendOne},
		{CompositeDestinationIn, BlendZero, BlendSrcAlpha},
		{CompositeDestinationOut, BlendZero, BlendOneMinusSrcAlpha},
		{CompositeDestinationAtop, BlendOneMinusDstAlpha, BlendSrcAlpha},
		{CompositeLighter, BlendOne, BlendOne},
		{CompositeCopy, BlendOne, BlendZero},
		{CompositeXor, BlendOneMinusDstAlpha, BlendOneMinusSrcAlpha},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			s := NewCompositeOperationState(tt.op)
			if s.SrcRGB != tt.src || s.DstRGB != tt.dst || s.SrcAlpha != tt.src || s.DstAlpha != tt.dst {
				t.Errorf("state = %v", s)
			}
		})
	}
}

func TestCompositeNormalized(t *testing.T) {
	var zero CompositeOperationState
	if zero.Normalized() != NewCompositeOperationState(CompositeSourceOver) {
		t.Error("zero state should normalize to source-over")
	}
	custom := NewBlendFuncSeparate(BlendSrcAlpha, BlendOneMinusSrcAlpha, BlendOne, BlendOne)
	if custom.Normalized() != custom {
		t.Error("non-zero state changed by Normalized")
	}
}
