package canvas

import "math"

// FillRule specifies how to determine which areas are inside a path.
type FillRule uint8

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// String returns "nonzero" or "evenodd".
func (r FillRule) String() string {
	if r == FillRuleEvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// gradientLarge stretches linear gradients far beyond any drawable area.
const gradientLarge = 1e5

// Paint describes how a shape is colored. It is the value the canvas layer
// hands down to the renderer; NewParams turns it into a uniform block.
//
// Gradients are expressed as a rounded box in paint space: Extent is the
// half size, Radius the corner radius and Feather the width of the
// transition from InnerColor to OuterColor.
type Paint struct {
	// Transform maps paint space to canvas space.
	Transform Transform

	Extent  [2]float32
	Radius  float32
	Feather float32

	InnerColor Color
	OuterColor Color

	// Image is the pattern image; zero means no image.
	Image ImageID

	// Ramp is a 1D color ramp image sampled along the gradient instead of
	// interpolating InnerColor and OuterColor; zero means no ramp.
	Ramp ImageID

	// GlyphTexture selects a glyph atlas that masks or replaces the paint.
	GlyphTexture GlyphTexture
}

// SolidPaint returns a paint filling with a single color.
func SolidPaint(c Color) Paint {
	return Paint{
		Transform:  Identity(),
		Feather:    1,
		InnerColor: c,
		OuterColor: c,
	}
}

// LinearGradient returns a gradient from (sx, sy) to (ex, ey).
func LinearGradient(sx, sy, ex, ey float32, inner, outer Color) Paint {
	dx, dy := ex-sx, ey-sy
	d := float32(math.Hypot(float64(dx), float64(dy)))
	if d > 0.0001 {
		dx /= d
		dy /= d
	} else {
		dx, dy = 0, 1
	}
	return Paint{
		Transform:  Transform{dy, -dx, dx, dy, sx - dx*gradientLarge, sy - dy*gradientLarge},
		Extent:     [2]float32{gradientLarge, gradientLarge + d*0.5},
		Feather:    max(1, d),
		InnerColor: inner,
		OuterColor: outer,
	}
}

// RadialGradient returns a gradient centered at (cx, cy) that transitions
// between the inner and outer radius.
func RadialGradient(cx, cy, inr, outr float32, inner, outer Color) Paint {
	r := (inr + outr) * 0.5
	return Paint{
		Transform:  Translate(cx, cy),
		Extent:     [2]float32{r, r},
		Radius:     r,
		Feather:    max(1, outr-inr),
		InnerColor: inner,
		OuterColor: outer,
	}
}

// BoxGradient returns a feathered rounded rectangle gradient, useful for
// drop shadows.
func BoxGradient(x, y, w, h, r, f float32, inner, outer Color) Paint {
	return Paint{
		Transform:  Translate(x+w*0.5, y+h*0.5),
		Extent:     [2]float32{w * 0.5, h * 0.5},
		Radius:     r,
		Feather:    max(1, f),
		InnerColor: inner,
		OuterColor: outer,
	}
}

// ImagePattern returns a paint that repeats image with its top-left corner
// at (cx, cy), scaled to w×h and rotated by angle radians.
func ImagePattern(cx, cy, w, h, angle float32, image ImageID, alpha float32) Paint {
	tint := RGBA(1, 1, 1, alpha)
	return Paint{
		Transform:  Rotate(angle).Multiply(Translate(cx, cy)),
		Extent:     [2]float32{w, h},
		InnerColor: tint,
		OuterColor: tint,
		Image:      image,
	}
}

// ImageGradient returns base with its color interpolation replaced by the
// ramp image. The ramp is sampled horizontally by gradient position.
func ImageGradient(base Paint, ramp ImageID) Paint {
	base.Ramp = ramp
	base.Image = 0
	return base
}

// WithGlyphTexture returns p masked by the given glyph atlas.
func (p Paint) WithGlyphTexture(g GlyphTexture) Paint {
	p.GlyphTexture = g
	return p
}

// Scissor is a transformed clip rectangle. Extent holds half the width and
// height around the transform origin; a negative extent disables clipping.
type Scissor struct {
	Transform Transform
	Extent    [2]float32
}

// NoScissor returns a scissor that clips nothing.
func NoScissor() Scissor {
	return Scissor{Transform: Identity(), Extent: [2]float32{-1, -1}}
}

// ScissorRect returns a scissor for the axis-aligned rectangle x, y, w, h.
func ScissorRect(x, y, w, h float32) Scissor {
	return Scissor{
		Transform: Translate(x+w*0.5, y+h*0.5),
		Extent:    [2]float32{w * 0.5, h * 0.5},
	}
}

// Enabled reports whether the scissor clips anything.
func (s Scissor) Enabled() bool {
	return s.Extent[0] >= -0.5 && s.Extent[1] >= -0.5
}
