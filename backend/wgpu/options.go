//go:build !nogpu

package wgpu

import "github.com/gogpu/gputypes"

// Option configures a Renderer.
type Option func(*options)

type options struct {
	antialias      bool
	stencilStrokes bool
	label          string
	surfaceFormat  gputypes.TextureFormat
	width, height  uint32
}

func defaultOptions() options {
	return options{
		antialias:      true,
		stencilStrokes: true,
		label:          "canvas",
		surfaceFormat:  gputypes.TextureFormatRGBA8Unorm,
	}
}

// WithAntialias enables or disables fringe passes. The default is enabled.
func WithAntialias(enabled bool) Option {
	return func(o *options) { o.antialias = enabled }
}

// WithStencilStrokes sets whether callers should emit StencilStroke
// commands for strokes that may overlap themselves. The default is enabled.
func WithStencilStrokes(enabled bool) Option {
	return func(o *options) { o.stencilStrokes = enabled }
}

// WithLabel sets the prefix of every GPU object label.
func WithLabel(label string) Option {
	return func(o *options) { o.label = label }
}

// WithSurfaceFormat sets the screen texture format: RGBA8Unorm (default)
// or BGRA8Unorm.
func WithSurfaceFormat(format gputypes.TextureFormat) Option {
	return func(o *options) { o.surfaceFormat = format }
}

// WithSize sets the initial screen size.
func WithSize(width, height uint32) Option {
	return func(o *options) { o.width, o.height = width, height }
}
