package software

import "github.com/gogpu/canvas"

// blend combines a premultiplied source with the destination using the
// separate RGB and alpha factors of op. The equation is always addition.
func blend(op canvas.CompositeOperationState, src, dst [4]float32) [4]float32 {
	var out [4]float32
	for i := 0; i < 3; i++ {
		out[i] = src[i]*factor(op.SrcRGB, src, dst, i) + dst[i]*factor(op.DstRGB, src, dst, i)
	}
	out[3] = src[3]*factor(op.SrcAlpha, src, dst, 3) + dst[3]*factor(op.DstAlpha, src, dst, 3)
	for i := range out {
		out[i] = clamp01(out[i])
	}
	return out
}

func factor(f canvas.BlendFactor, src, dst [4]float32, ch int) float32 {
	switch f {
	case canvas.BlendZero:
		return 0
	case canvas.BlendOne:
		return 1
	case canvas.BlendSrcColor:
		return src[ch]
	case canvas.BlendOneMinusSrcColor:
		return 1 - src[ch]
	case canvas.BlendDstColor:
		return dst[ch]
	case canvas.BlendOneMinusDstColor:
		return 1 - dst[ch]
	case canvas.BlendSrcAlpha:
		return src[3]
	case canvas.BlendOneMinusSrcAlpha:
		return 1 - src[3]
	case canvas.BlendDstAlpha:
		return dst[3]
	case canvas.BlendOneMinusDstAlpha:
		return 1 - dst[3]
	case canvas.BlendSrcAlphaSaturate:
		if ch == 3 {
			return 1
		}
		return min(src[3], 1-dst[3])
	}
	return 0
}
