package text

import (
	"testing"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend/software"
	"github.com/gogpu/canvas/recording"
)

func TestRenderCommands(t *testing.T) {
	f := loadRegular(t)
	store := canvas.NewImageStore()
	tr := NewRenderer(NewAtlas(store, software.New(), 256))

	prefix := []canvas.Vertex{canvas.NewVertex(0, 0, 0, 0)}
	verts, cmds, err := tr.Render(prefix, f, 16, 4, 20, "Hi there", canvas.Black)
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 1 {
		t.Fatalf("%d commands, want 1", len(cmds))
	}
	cmd := cmds[0]
	if cmd.Type() != canvas.CmdTriangles {
		t.Errorf("command type = %v, want Triangles", cmd.Type())
	}
	if cmd.GlyphTexture.Kind != canvas.GlyphAlphaMask || cmd.GlyphTexture.Image != tr.Atlas().Pages()[0] {
		t.Errorf("glyph texture = %+v", cmd.GlyphTexture)
	}
	// Seven visible glyphs, the space has no quad.
	if want := canvas.Range(1, 7*6); cmd.TriangleVerts != want {
		t.Errorf("TriangleVerts = %v, want %v", cmd.TriangleVerts, want)
	}
	if len(verts) != 1+7*6 {
		t.Errorf("%d vertices, want %d", len(verts), 1+7*6)
	}
	if p := cmd.Kind.(canvas.Triangles).Params; p.GlyphTextureType != canvas.GlyphAlphaMask.ShaderCode() {
		t.Errorf("params glyph type = %v", p.GlyphTextureType)
	}
	if err := canvas.ValidateFrame(store, verts, cmds); err != nil {
		t.Errorf("ValidateFrame: %v", err)
	}
}

func TestRenderSplitsPages(t *testing.T) {
	f := loadRegular(t)
	store := canvas.NewImageStore()
	tr := NewRenderer(NewAtlas(store, software.New(), 24))

	verts, cmds, err := tr.Render(nil, f, 16, 0, 16, "ABCDEFGH", canvas.Black)
	if err != nil {
		t.Fatal(err)
	}
	pages := tr.Atlas().Pages()
	if len(pages) < 2 || len(cmds) != len(pages) {
		t.Fatalf("%d commands over %d pages, want one per page and several pages", len(cmds), len(pages))
	}
	next := 0
	for i, cmd := range cmds {
		if cmd.TriangleVerts.Offset != next {
			t.Errorf("command %d starts at %d, want %d", i, cmd.TriangleVerts.Offset, next)
		}
		next += cmd.TriangleVerts.Count
	}
	if next != len(verts) {
		t.Errorf("commands cover %d of %d vertices", next, len(verts))
	}

	// Recording the frame shows one Triangles pass per page.
	rec := recording.New()
	if err := rec.Render(store, verts, cmds); err != nil {
		t.Fatal(err)
	}
	if got := len(rec.Passes()); got != len(pages) {
		t.Errorf("%d passes, want %d", got, len(pages))
	}
}

func TestRenderEmpty(t *testing.T) {
	f := loadRegular(t)
	tr := NewRenderer(NewAtlas(canvas.NewImageStore(), software.New(), 64))
	verts, cmds, err := tr.Render(nil, f, 16, 0, 0, "   ", canvas.Black)
	if err != nil || len(verts) != 0 || len(cmds) != 0 {
		t.Errorf("blank text = %d verts, %d cmds, %v", len(verts), len(cmds), err)
	}
}

func TestRenderPixels(t *testing.T) {
	f := loadRegular(t)
	r := software.New(software.WithSize(48, 48))
	store := canvas.NewImageStore()
	tr := NewRenderer(NewAtlas(store, r, 128))

	bg := canvas.NewCommand(canvas.ClearRect{Width: 48, Height: 48, Color: canvas.White})
	verts, cmds, err := tr.Render(nil, f, 40, 4, 40, "I", canvas.Black)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Render(store, verts, append([]canvas.Command{bg}, cmds...)); err != nil {
		t.Fatal(err)
	}
	img, err := r.Screenshot()
	if err != nil {
		t.Fatal(err)
	}

	// The stem of the capital I is dark; the far right margin stays white.
	darkest := uint8(255)
	for x := 4; x < 24; x++ {
		darkest = min(darkest, img.RGBAAt(x, 25).R)
	}
	if darkest > 64 {
		t.Errorf("no dark stem pixel on row 25, darkest = %d", darkest)
	}
	if got := img.RGBAAt(46, 25); got.R != 255 || got.A != 255 {
		t.Errorf("margin pixel = %v, want white", got)
	}
	if w := tr.Measure(f, 40, "I"); w <= 0 {
		t.Errorf("Measure = %v", w)
	}
}
