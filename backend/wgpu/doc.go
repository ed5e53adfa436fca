// Package wgpu renders canvas frames on the GPU through the gogpu/wgpu HAL.
//
// Every pass of a frame is drawn with a single WGSL program whose branch is
// selected by the shader type in the uniform block. Fill techniques map to
// pipeline state: stencil compare and operations, color write mask and the
// blend equation come from the pass stage, fill rule and composite
// operation. Pipelines are created on first use and cached for the life of
// the renderer.
//
// # Frame Execution
//
// Render lowers the command list with canvas.Execute and collects the
// passes on the CPU. Fans and strips are expanded into triangle lists, all
// vertices go into one vertex buffer and every pass gets its own 256-byte
// uniform slot. After the frame has been accepted the buffers are uploaded,
// one render pass is recorded per run of draws on the same target, and the
// command buffer is submitted. Render returns once the GPU is idle, so a
// rejected or failed frame never reaches the device.
//
// # Registration
//
// Importing the package registers the "wgpu" backend, which opens the first
// hardware adapter it finds:
//
//	import _ "github.com/gogpu/canvas/backend/wgpu"
//
//	r, name, err := backend.Default()
//
// Applications that already own a device use New or NewFromProvider.
//
// # Build Tags
//
// Building with the nogpu tag leaves the package empty.
package wgpu
