package canvas

import "image"

// Image is a backend-owned image resource. Backends return their own
// concrete type from AllocImage and receive it back in UpdateImage and
// DeleteImage; the core never looks inside.
type Image interface {
	Info() ImageInfo
}

// ImageAllocator is the part of a Renderer used by ImageStore to manage
// image resources.
type ImageAllocator interface {
	// AllocImage creates a backend resource described by info.
	AllocImage(info ImageInfo) (Image, error)

	// UpdateImage uploads src into img with its top-left corner at (x, y).
	// Implementations report ErrImageUpdateOutOfBounds and
	// ErrImageUpdateWithDifferentFormat without uploading anything.
	UpdateImage(img Image, src ImageSource, x, y int) error

	// DeleteImage releases img. Release failures are logged, not returned.
	DeleteImage(img Image, id ImageID)
}

// Renderer is the backend contract. A renderer consumes one complete frame
// per Render call: the command list, the vertex buffer every command
// references by range, and the image store resolving ImageIDs.
//
// Renderers are single-threaded and synchronous. All calls must come from the
// goroutine that owns the renderer.
type Renderer interface {
	ImageAllocator

	// SetSize sets the drawable size in pixels and the device pixel ratio.
	// Calling it with unchanged values is a no-op.
	SetSize(width, height uint32, dpi float32)

	// Render executes cmds in order. The first failing command aborts the
	// frame and its error is returned.
	Render(images *ImageStore, verts []Vertex, cmds []Command) error

	// Screenshot reads back the screen target.
	Screenshot() (*image.RGBA, error)
}
