// Command vgdemo renders a demo frame with any registered backend and
// saves the screen as PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"log/slog"
	"math"
	"os"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend"
	"github.com/gogpu/canvas/backend/software"
	_ "github.com/gogpu/canvas/backend/void"
	_ "github.com/gogpu/canvas/backend/wgpu"
	"github.com/gogpu/canvas/text"
)

func main() {
	var (
		name    = flag.String("backend", "", "backend name (default: best available)")
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		dpi     = flag.Float64("dpi", 1, "device pixel ratio")
		output  = flag.String("output", "demo.png", "output file")
		font    = flag.String("font", "", "TrueType font file (default: Go Regular)")
		verbose = flag.Bool("v", false, "log renderer diagnostics")
		workers = flag.Int("workers", 1, "software backend raster goroutines (0: GOMAXPROCS)")
	)
	flag.Parse()

	if *verbose {
		canvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	r, used, err := open(*name, *workers)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}
	r.SetSize(uint32(*width), uint32(*height), float32(*dpi))

	f, err := loadFont(*font)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	d := newDemo(r, f)
	if err := d.build(float32(*width), float32(*height)); err != nil {
		log.Fatalf("Failed to build frame: %v", err)
	}
	if err := r.Render(d.store, d.verts, d.cmds); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	img, err := r.Screenshot()
	if err != nil {
		log.Fatalf("Failed to read back: %v", err)
	}
	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d, %s backend, %d commands)\n", *output, *width, *height, used, len(d.cmds))
}

func open(name string, workers int) (canvas.Renderer, string, error) {
	if name == backend.NameSoftware && workers != 1 {
		return software.New(software.WithWorkers(workers)), name, nil
	}
	if name == "" {
		return backend.Default()
	}
	r, err := backend.New(name)
	return r, name, err
}

func loadFont(path string) (*text.Font, error) {
	if path == "" {
		return text.LoadFont(goregular.TTF)
	}
	return text.LoadFontFile(path)
}

func savePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

// demo accumulates the vertices and commands of one frame.
type demo struct {
	r     canvas.Renderer
	font  *text.Font
	store *canvas.ImageStore
	text  *text.Renderer
	verts []canvas.Vertex
	cmds  []canvas.Command
}

func newDemo(r canvas.Renderer, f *text.Font) *demo {
	store := canvas.NewImageStore()
	return &demo{
		r:     r,
		font:  f,
		store: store,
		text:  text.NewRenderer(text.NewAtlas(store, r, text.DefaultAtlasSize)),
	}
}

func (d *demo) build(w, h float32) error {
	// Off-screen work first: a soft shadow blurred from a drawn disc.
	shadow, err := d.shadow(160, 9)
	if err != nil {
		return err
	}

	d.cmds = append(d.cmds, canvas.NewCommand(canvas.SetRenderTarget{Target: canvas.ScreenTarget()}))
	d.background(w, h)
	d.shapes()
	d.strokes()
	if err := d.pattern(); err != nil {
		return err
	}
	d.fillConvex(rectPoints(520, 330, 160, 160), canvas.ImagePattern(520, 330, 160, 160, 0, shadow, 1))
	d.fillConvex(circlePoints(596, 406, 50, 48), canvas.SolidPaint(canvas.RGB(1, 0.85, 0.2)))

	var cmds []canvas.Command
	d.verts, cmds, err = d.text.Render(d.verts, d.font, 28, 40, h-40, "canvas: one renderer contract, many backends", canvas.White)
	if err != nil {
		return err
	}
	d.cmds = append(d.cmds, cmds...)
	return nil
}

func (d *demo) background(w, h float32) {
	top, bottom := canvas.RGB(0.1, 0.2, 0.4), canvas.RGB(0.5, 0.5, 0.6)
	d.cmds = append(d.cmds, canvas.NewCommand(canvas.ClearRect{Width: uint32(w), Height: uint32(h), Color: top}))
	d.fillConvex(rectPoints(0, 0, w, h), canvas.LinearGradient(0, 0, 0, h, top, bottom))
}

func (d *demo) shapes() {
	d.fillConvex(circlePoints(150, 150, 60, 64), canvas.SolidPaint(canvas.RGBA(1, 0.3, 0.3, 0.8)))
	d.fillConvex(circlePoints(200, 150, 60, 64), canvas.SolidPaint(canvas.RGBA(0.3, 1, 0.3, 0.8)))
	d.fillConvex(circlePoints(175, 200, 60, 64), canvas.SolidPaint(canvas.RGBA(0.3, 0.3, 1, 0.8)))

	d.fillConvex(rectPoints(350, 100, 120, 80),
		canvas.BoxGradient(350, 100, 120, 80, 15, 20, canvas.RGB(1, 0.8, 0), canvas.RGB(0.8, 0.3, 0)))
	d.fillConvex(circlePoints(650, 150, 70, 64),
		canvas.RadialGradient(650, 150, 10, 70, canvas.White, canvas.RGB(0.2, 0.4, 1)))

	d.fillConcave(starPoints(150, 420, 70, 30, 5), canvas.SolidPaint(canvas.RGB(1, 1, 0)), canvas.FillRuleNonZero)
	d.fillConcave(starPoints(320, 420, 70, 70, 7), canvas.SolidPaint(canvas.RGB(0.6, 1, 0.8)), canvas.FillRuleEvenOdd)
}

func (d *demo) strokes() {
	var wave [][2]float32
	for i := 0; i <= 60; i++ {
		x := 40 + float32(i)*12
		wave = append(wave, [2]float32{x, 290 + 20*float32(math.Sin(float64(i)/4))})
	}
	d.stroke(wave, 6, canvas.SolidPaint(canvas.RGB(1, 0.5, 0)))
	d.stroke(rectPoints(350, 100, 120, 80), 4, canvas.SolidPaint(canvas.White))
}

// pattern fills a panel with a repeating checkerboard image.
func (d *demo) pattern() error {
	const n = 8
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for y := range n {
		for x := range n {
			v := uint8(60)
			if (x/4+y/4)%2 == 0 {
				v = 200
			}
			off := img.PixOffset(x, y)
			copy(img.Pix[off:], []uint8{v, v, v, 255})
		}
	}
	id, err := d.store.Add(d.r, canvas.NewImageSourceRGBA(img), canvas.ImageRepeatX|canvas.ImageRepeatY|canvas.ImageNearest)
	if err != nil {
		return err
	}
	d.fillConvex(rectPoints(420, 360, 80, 120), canvas.ImagePattern(420, 360, 16, 16, 0, id, 0.9))
	return nil
}

// shadow renders a disc into an image and blurs it into a second image,
// which is returned.
func (d *demo) shadow(size int, sigma float32) (canvas.ImageID, error) {
	info := canvas.NewImageInfo(canvas.ImagePremultiplied, size, size, canvas.PixelFormatRGBA8)
	src, err := d.store.Alloc(d.r, info)
	if err != nil {
		return 0, err
	}
	dst, err := d.store.Alloc(d.r, info)
	if err != nil {
		return 0, err
	}

	s := float32(size)
	d.cmds = append(d.cmds,
		canvas.NewCommand(canvas.SetRenderTarget{Target: canvas.ImageTarget(src)}),
		canvas.NewCommand(canvas.ClearRect{Width: uint32(size), Height: uint32(size), Color: canvas.Transparent}),
	)
	d.fillConvex(circlePoints(s/2, s/2, s/2-2*sigma, 64), canvas.SolidPaint(canvas.RGBA(0, 0, 0, 0.7)))

	quad := d.add(
		canvas.NewVertex(0, 0, 0, 0),
		canvas.NewVertex(s, 0, 1, 0),
		canvas.NewVertex(0, s, 0, 1),
		canvas.NewVertex(s, s, 1, 1),
	)
	blur := canvas.NewCommand(canvas.RenderFilteredImage{TargetImage: dst, Filter: canvas.GaussianBlur(sigma)})
	blur.Image = src
	blur.TriangleVerts = quad
	d.cmds = append(d.cmds, blur)
	return dst, nil
}

func (d *demo) add(vs ...canvas.Vertex) canvas.VertexRange {
	rg := canvas.Range(len(d.verts), len(vs))
	d.verts = append(d.verts, vs...)
	return rg
}

func (d *demo) fan(pts [][2]float32) canvas.VertexRange {
	vs := make([]canvas.Vertex, len(pts))
	for i, p := range pts {
		vs[i] = canvas.NewVertex(p[0], p[1], 0.5, 1)
	}
	return d.add(vs...)
}

func (d *demo) params(paint canvas.Paint) canvas.Params {
	return canvas.NewParams(d.store, paint, canvas.NoScissor(), 1, 1, -1)
}

func withImage(cmd canvas.Command, paint canvas.Paint) canvas.Command {
	cmd.Image = paint.Image
	if cmd.Image == 0 {
		cmd.Image = paint.Ramp
	}
	return cmd
}

func (d *demo) fillConvex(pts [][2]float32, paint canvas.Paint) {
	cmd := canvas.NewCommand(canvas.ConvexFill{Params: d.params(paint)})
	cmd.Drawables = []canvas.Drawable{{Fill: d.fan(pts)}}
	d.cmds = append(d.cmds, withImage(cmd, paint))
}

func (d *demo) fillConcave(pts [][2]float32, paint canvas.Paint, rule canvas.FillRule) {
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := -minX, -minY
	for _, p := range pts {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}

	cmd := canvas.NewCommand(canvas.ConcaveFill{StencilParams: canvas.StencilParams(), FillParams: d.params(paint)})
	cmd.Drawables = []canvas.Drawable{{Fill: d.fan(pts)}}
	cmd.TriangleVerts = d.add(
		canvas.NewVertex(minX, minY, 0.5, 1),
		canvas.NewVertex(maxX, minY, 0.5, 1),
		canvas.NewVertex(minX, maxY, 0.5, 1),
		canvas.NewVertex(maxX, maxY, 0.5, 1),
	)
	cmd.FillRule = rule
	d.cmds = append(d.cmds, withImage(cmd, paint))
}

// stroke draws an open polyline as a strip. The u coordinate runs across
// the stroke so the shader can fade its edges.
func (d *demo) stroke(pts [][2]float32, width float32, paint canvas.Paint) {
	if len(pts) < 2 {
		return
	}
	hw := width*0.5 + 0.5
	vs := make([]canvas.Vertex, 0, 2*len(pts))
	for i, p := range pts {
		a, b := pts[max(i-1, 0)], pts[min(i+1, len(pts)-1)]
		dx, dy := b[0]-a[0], b[1]-a[1]
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		vs = append(vs,
			canvas.NewVertex(p[0]+nx, p[1]+ny, 0, 1),
			canvas.NewVertex(p[0]-nx, p[1]-ny, 1, 1),
		)
	}
	params := canvas.NewParams(d.store, paint, canvas.NoScissor(), width, 1, -1)
	cmd := canvas.NewCommand(canvas.Stroke{Params: params})
	cmd.Drawables = []canvas.Drawable{{Stroke: d.add(vs...)}}
	d.cmds = append(d.cmds, withImage(cmd, paint))
}

func rectPoints(x, y, w, h float32) [][2]float32 {
	return [][2]float32{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

func circlePoints(cx, cy, r float32, n int) [][2]float32 {
	pts := make([][2]float32, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = [2]float32{cx + r*float32(math.Cos(a)), cy + r*float32(math.Sin(a))}
	}
	return pts
}

// starPoints returns a star polygon. With equal radii and an odd step it
// draws a self-intersecting pentagram-like figure that exercises fill rules.
func starPoints(cx, cy, outer, inner float32, points int) [][2]float32 {
	if outer == inner {
		pts := make([][2]float32, points)
		for i := range pts {
			a := float64(i*(points/2)) * 2 * math.Pi / float64(points)
			pts[i] = [2]float32{cx + outer*float32(math.Sin(a)), cy - outer*float32(math.Cos(a))}
		}
		return pts
	}
	pts := make([][2]float32, 2*points)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i) * math.Pi / float64(points)
		pts[i] = [2]float32{cx + r*float32(math.Sin(a)), cy - r*float32(math.Cos(a))}
	}
	return pts
}
