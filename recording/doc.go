// Package recording provides a canvas renderer that records what a frame
// does instead of (or in addition to) drawing it.
//
// A Recorder runs the same dispatch as every other backend and appends one
// Event per encoder call, so the trace shows exactly which passes a frame
// lowers to and in what order:
//
//	rec := recording.New()
//	if err := rec.Render(images, verts, cmds); err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(rec)
//
//	target image#5
//	clear 0,0 64x64
//	convex-fill(FillGradient)
//
// # Tee Mode
//
// WithRenderer forwards every call to another renderer after recording it.
// Images are then allocated by the wrapped renderer and the trace sits in
// front of real output:
//
//	rec := recording.New(recording.WithRenderer(software.New()))
//
// The recorder is registered with the backend registry as "recording".
package recording
