package software

// Option configures a Renderer.
type Option func(*options)

type options struct {
	antialias      bool
	stencilStrokes bool
	width, height  uint32
	workers        int
}

func defaultOptions() options {
	return options{antialias: true, stencilStrokes: true, workers: 1}
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

// WithSize sets the initial screen size, equivalent to calling SetSize
// with a DPI of 1.
func WithSize(width, height uint32) Option {
	return func(o *options) { o.width, o.height = width, height }
}

// WithWorkers rasterizes each pass in horizontal bands on n goroutines.
// Zero means GOMAXPROCS. The default of one renders on the calling
// goroutine; Close releases the workers.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}
