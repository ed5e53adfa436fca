package text

import (
	"math"

	"github.com/gogpu/canvas"
)

// Renderer turns strings into glyph quads and Triangles commands.
type Renderer struct {
	atlas  *Atlas
	shaper *Shaper
}

// NewRenderer returns a renderer caching glyphs in atlas.
func NewRenderer(atlas *Atlas) *Renderer {
	return &Renderer{atlas: atlas, shaper: NewShaper()}
}

// Atlas returns the glyph cache of r.
func (r *Renderer) Atlas() *Atlas { return r.atlas }

// Measure returns the advance of s at size.
func (r *Renderer) Measure(f *Font, size float32, s string) float32 {
	return r.shaper.Shape(f, size, s).Advance
}

// Render draws s in color c with its baseline origin at (x, y).
func (r *Renderer) Render(verts []canvas.Vertex, f *Font, size, x, y float32, s string, c canvas.Color) ([]canvas.Vertex, []canvas.Command, error) {
	return r.RenderPaint(verts, f, size, x, y, s, canvas.SolidPaint(c))
}

// RenderPaint draws s filled with paint. Glyph quads are appended to verts
// grouped by atlas page, and one Triangles command per page references
// them. Pens are snapped to whole pixels so glyph masks map 1:1.
func (r *Renderer) RenderPaint(verts []canvas.Vertex, f *Font, size, x, y float32, s string, paint canvas.Paint) ([]canvas.Vertex, []canvas.Command, error) {
	run := r.shaper.Shape(f, size, s)
	if len(run.Glyphs) == 0 {
		return verts, nil, nil
	}

	quads := make(map[canvas.ImageID][]canvas.Vertex)
	var order []canvas.ImageID
	scale := 1 / float32(r.atlas.size)
	for _, g := range run.Glyphs {
		ag, err := r.atlas.glyph(f, g.ID, size)
		if err != nil {
			return verts, nil, err
		}
		if ag.empty() {
			continue
		}
		px := float32(math.Round(float64(x+g.X))) + float32(ag.offset.X)
		py := float32(math.Round(float64(y+g.Y))) + float32(ag.offset.Y)
		x0, y0 := px, py
		x1, y1 := px+float32(ag.rect.Dx()), py+float32(ag.rect.Dy())
		u0, v0 := float32(ag.rect.Min.X)*scale, float32(ag.rect.Min.Y)*scale
		u1, v1 := float32(ag.rect.Max.X)*scale, float32(ag.rect.Max.Y)*scale

		if _, ok := quads[ag.page]; !ok {
			order = append(order, ag.page)
		}
		quads[ag.page] = append(quads[ag.page],
			canvas.NewVertex(x0, y0, u0, v0),
			canvas.NewVertex(x1, y0, u1, v0),
			canvas.NewVertex(x1, y1, u1, v1),
			canvas.NewVertex(x0, y0, u0, v0),
			canvas.NewVertex(x1, y1, u1, v1),
			canvas.NewVertex(x0, y1, u0, v1),
		)
	}

	cmds := make([]canvas.Command, 0, len(order))
	for _, page := range order {
		gt := canvas.GlyphTexture{Kind: canvas.GlyphAlphaMask, Image: page}
		params := canvas.NewParams(r.atlas.store, paint.WithGlyphTexture(gt), canvas.NoScissor(), 1, 1, -1)
		cmd := canvas.NewCommand(canvas.Triangles{Params: params})
		cmd.TriangleVerts = canvas.Range(len(verts), len(quads[page]))
		cmd.GlyphTexture = gt
		cmd.Image = paint.Image
		if cmd.Image == 0 {
			cmd.Image = paint.Ramp
		}
		verts = append(verts, quads[page]...)
		cmds = append(cmds, cmd)
	}
	return verts, cmds, nil
}
