// Package software implements the canvas renderer on the CPU.
//
// It follows the GPU technique step by step: triangles are rasterized at
// pixel centers, an 8-bit stencil buffer per render target carries the
// winding counts of concave fills and the overlap guard of stencil strokes,
// and every covered pixel runs the same fragment program the GPU shader
// implements before being blended with the draw's composite state.
// Anti-aliasing comes from the fringe geometry, not from supersampling, so
// output matches the GPU backend closely.
//
// Import the package to register it as "software":
//
//	import _ "github.com/gogpu/canvas/backend/software"
//
// or create a renderer directly:
//
//	r := software.New(software.WithSize(800, 600))
//	if err := r.Render(images, verts, cmds); err != nil {
//		log.Fatal(err)
//	}
//	img, _ := r.Screenshot()
//
// WithWorkers splits every pass into horizontal row bands rasterized in
// parallel; the output is identical to the sequential renderer.
package software
