// Package backend is the registry of canvas renderers.
//
// Backends register a factory from init(), following the database/sql
// driver pattern, and are selected by name at runtime:
//
//	import (
//		"github.com/gogpu/canvas/backend"
//		_ "github.com/gogpu/canvas/backend/software"
//	)
//
//	r, err := backend.New("software")
//
// # Backend Selection
//
// Default tries the registered backends in priority order and returns the
// first one whose factory succeeds:
//
//	r, name, err := backend.Default()
//
// # Available Backends
//
//   - "wgpu": GPU renderer over gogpu/wgpu (package backend/wgpu)
//   - "software": CPU rasterizer (package backend/software)
//   - "recording": pass tracer (package recording)
//   - "void": discards all drawing (package backend/void)
package backend
