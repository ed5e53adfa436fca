package software

import (
	"math"

	"github.com/gogpu/canvas"
)

// textures are the images bound to a pass.
type textures struct {
	image *Image
	glyph *Image
}

// shade evaluates the fragment program for a pixel center at (x, y) with
// texture coordinates (u, v). It returns a premultiplied color, or false
// when the fragment is discarded by the stroke threshold.
func shade(p *canvas.Params, tex textures, x, y, u, v float32) ([4]float32, bool) {
	strokeAlpha := float32(1)
	if p.ShaderType != canvas.ShaderFilterImage && p.GlyphTextureType == 0 {
		strokeAlpha = strokeMask(p, u, v)
	}
	if strokeAlpha < p.StrokeThr {
		return [4]float32{}, false
	}
	scissor := scissorMask(p, x, y)

	var c [4]float32
	switch p.ShaderType {
	case canvas.ShaderFillGradient:
		d := gradientDistance(p, x, y)
		inner, outer := p.InnerCol.Array(), p.OuterCol.Array()
		for i := range c {
			c[i] = inner[i] + (outer[i]-inner[i])*d
		}
	case canvas.ShaderFillImage:
		px, py := applyMat(&p.PaintMat, x, y)
		t := texColor(tex.image.sample(px/p.Extent[0], py/p.Extent[1]), p.TexType)
		c = mul(t, p.InnerCol.Array())
	case canvas.ShaderStencil:
		c = [4]float32{1, 1, 1, 1}
	case canvas.ShaderFillImageGradient:
		d := gradientDistance(p, x, y)
		c = premultiply(tex.image.sample(d, 0.5))
	case canvas.ShaderFilterImage:
		c = blurSample(p, tex.image, u, v)
	}

	if p.GlyphTextureType > 0 && tex.glyph != nil {
		g := tex.glyph.sample(u, v)
		if p.GlyphTextureType < 1.5 {
			c = scale(c, g[0])
		} else {
			c = scale(g, c[3])
		}
	}
	return scale(c, strokeAlpha*scissor), true
}

func applyMat(m *[12]float32, x, y float32) (float32, float32) {
	return m[0]*x + m[4]*y + m[8], m[1]*x + m[5]*y + m[9]
}

func scissorMask(p *canvas.Params, x, y float32) float32 {
	sx, sy := applyMat(&p.ScissorMat, x, y)
	sx = abs32(sx) - p.ScissorExt[0]
	sy = abs32(sy) - p.ScissorExt[1]
	return clamp01(0.5-sx*p.ScissorScale[0]) * clamp01(0.5-sy*p.ScissorScale[1])
}

// strokeMask fades stroke geometry across its width (u) and along its end
// caps (v).
func strokeMask(p *canvas.Params, u, v float32) float32 {
	return min(1, (1-abs32(u*2-1))*p.StrokeMult) * min(1, v)
}

// gradientDistance maps a pixel to the [0, 1] position between the inner
// and outer color of a rounded-box gradient.
func gradientDistance(p *canvas.Params, x, y float32) float32 {
	px, py := applyMat(&p.PaintMat, x, y)
	feather := max(p.Feather, 1e-5)
	return clamp01((sdRoundRect(px, py, p.Extent[0], p.Extent[1], p.Radius) + feather*0.5) / feather)
}

func sdRoundRect(px, py, ex, ey, r float32) float32 {
	dx := abs32(px) - (ex - r)
	dy := abs32(py) - (ey - r)
	outside := float32(math.Hypot(float64(max(dx, 0)), float64(max(dy, 0))))
	return min(max(dx, dy), 0) + outside - r
}

// texColor converts a raw texel to premultiplied color according to the
// texture type uniform.
func texColor(t [4]float32, texType float32) [4]float32 {
	switch {
	case texType > 1.5:
		return [4]float32{t[0], t[0], t[0], t[0]}
	case texType > 0.5:
		return premultiply(t)
	}
	return t
}

// blurSample is one direction of a separable Gaussian, evaluated with the
// incremental coefficients carried in the uniforms.
func blurSample(p *canvas.Params, img *Image, u, v float32) [4]float32 {
	if img == nil {
		return [4]float32{}
	}
	center := texColor(img.sample(u, v), p.TexType)
	if p.BlurSigma <= 0 {
		return center
	}

	n := int(math.Ceil(float64(3 * p.BlurSigma)))
	du := p.BlurDirection[0] / float32(img.info.Width)
	dv := p.BlurDirection[1] / float32(img.info.Height)
	g0, g1, g2 := p.BlurCoeff[0], p.BlurCoeff[1], p.BlurCoeff[2]

	sum := g0
	acc := scale(center, g0)
	for i := 1; i <= n; i++ {
		g0 *= g1
		g1 *= g2
		fi := float32(i)
		a := texColor(img.sample(u-fi*du, v-fi*dv), p.TexType)
		b := texColor(img.sample(u+fi*du, v+fi*dv), p.TexType)
		for k := range acc {
			acc[k] += (a[k] + b[k]) * g0
		}
		sum += 2 * g0
	}
	return scale(acc, 1/sum)
}

func premultiply(c [4]float32) [4]float32 {
	return [4]float32{c[0] * c[3], c[1] * c[3], c[2] * c[3], c[3]}
}

func mul(a, b [4]float32) [4]float32 {
	return [4]float32{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

func scale(c [4]float32, s float32) [4]float32 {
	return [4]float32{c[0] * s, c[1] * s, c[2] * s, c[3] * s}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp01(x float32) float32 {
	return min(max(x, 0), 1)
}
