// Package canvas is the renderer core of a 2D vector canvas.
//
// # Overview
//
// A canvas layer above this package tessellates paths into one vertex buffer
// per frame and describes what to draw as a list of Commands. Each command
// references its geometry by range in that buffer and its images by ImageID.
// A Renderer consumes the whole frame in one Render call.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/canvas"
//	    "github.com/gogpu/canvas/backend"
//	    _ "github.com/gogpu/canvas/backend/software"
//	)
//
//	r, _ := backend.New("software")
//	r.SetSize(512, 512, 1)
//	images := canvas.NewImageStore()
//
//	verts := []canvas.Vertex{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
//	fill := canvas.NewCommand(canvas.ConvexFill{
//	    Params: canvas.NewParams(images, canvas.SolidPaint(canvas.Red), canvas.NoScissor(), 1, 1, -1),
//	})
//	fill.Drawables = []canvas.Drawable{{Fill: canvas.Range(0, 4)}}
//
//	err := r.Render(images, verts, []canvas.Command{fill})
//
// # Rendering Technique
//
// Convex fills are drawn directly. Concave fills use a two-pass stencil
// technique: a stencil-only pass accumulates winding numbers, then a cover
// pass colors the pixels whose stencil value is non-zero and resets it.
// Self-overlapping strokes use a three-pass stencil sequence so every pixel
// is blended once. Execute lowers commands to these passes for every
// backend, so the ordering guarantees hold regardless of the device.
//
// # Backends
//
// Backends live under backend/ and register themselves by name:
//   - software: CPU rasterizer, always available
//   - wgpu: GPU rendering via gogpu/wgpu HAL
//   - void: discards output, useful for tests
//
// The recording package provides a renderer that records the pass trace.
//
// # Images
//
// ImageStore is the single owner of image ids. Renderers create and release
// the resources behind them through the ImageAllocator methods but never
// invent ids.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package canvas

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
