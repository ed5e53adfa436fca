package canvas

import (
	"errors"
	"math"
	"testing"
)

func TestValidateFrame(t *testing.T) {
	store := NewImageStore()
	live, _ := store.Alloc(&fakeAllocator{}, NewImageInfo(0, 2, 2, PixelFormatRGBA8))
	verts := make([]Vertex, 8)

	withDrawable := func(kind CommandKind, d Drawable) Command {
		c := NewCommand(kind)
		c.Drawables = []Drawable{d}
		return c
	}
	withImage := func(id ImageID) Command {
		c := NewCommand(Triangles{})
		c.TriangleVerts = Range(0, 3)
		c.Image = id
		return c
	}
	filter := func(src, dst ImageID) Command {
		c := NewCommand(RenderFilteredImage{TargetImage: dst, Filter: GaussianBlur(1)})
		c.Image = src
		return c
	}

	tests := []struct {
		name string
		cmd  Command
		want error
	}{
		{"in bounds", withDrawable(ConvexFill{}, Drawable{Fill: Range(0, 8)}), nil},
		{"fill past end", withDrawable(ConvexFill{}, Drawable{Fill: Range(5, 4)}), ErrVertexRangeOutOfBounds},
		{"stroke past end", withDrawable(Stroke{}, Drawable{Stroke: Range(8, 1)}), ErrVertexRangeOutOfBounds},
		{"fill end overflows", withDrawable(ConvexFill{}, Drawable{Fill: Range(2, math.MaxInt)}), ErrVertexRangeOutOfBounds},
		{"absent range far away", withDrawable(Stroke{}, Drawable{Stroke: Range(100, 0)}), nil},
		{"live image", withImage(live), nil},
		{"dead image", withImage(live + 1), ErrImageIDNotFound},
		{"glyph atlas missing", func() Command {
			c := withImage(0)
			c.GlyphTexture = GlyphTexture{Kind: GlyphAlphaMask, Image: 99}
			return c
		}(), ErrImageIDNotFound},
		{"missing target", NewCommand(SetRenderTarget{Target: ImageTarget(42)}), ErrImageIDNotFound},
		{"filter without source", filter(0, live), ErrImageIDNotFound},
		{"filter to dead target", filter(live, 77), ErrImageIDNotFound},
		{"nil kind", Command{}, ErrGeneral},
		{"concave fill without cover", withDrawable(ConcaveFill{}, Drawable{Fill: Range(0, 4)}), ErrVertexRangeOutOfBounds},
		{"concave fill without geometry", NewCommand(ConcaveFill{}), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFrame(store, verts, []Command{tt.cmd})
			if tt.want == nil {
				if err != nil {
					t.Errorf("ValidateFrame: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateFrame = %v, want %v", err, tt.want)
			}
		})
	}
}
