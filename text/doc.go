// Package text turns strings into glyph geometry for the canvas renderer.
//
// Fonts are parsed twice: golang.org/x/image/font/opentype provides
// outlines and metrics, github.com/go-text/typesetting provides HarfBuzz
// shaping. Paragraph direction comes from golang.org/x/text/unicode/bidi.
//
// Glyphs are rasterized with golang.org/x/image/vector into Gray8 atlas
// pages owned by a canvas.ImageStore. A Renderer emits one Triangles
// command per atlas page, masked with canvas.GlyphAlphaMask:
//
//	f, err := text.LoadFont(goregular.TTF)
//	if err != nil {
//		return err
//	}
//	tr := text.NewRenderer(text.NewAtlas(store, backend, text.DefaultAtlasSize))
//	verts, cmds, err := tr.Render(verts, f, 16, 10, 30, "Hello", canvas.Black)
//
// Fonts, atlases and renderers are not safe for concurrent use.
package text
