package canvas

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// formatting attributes.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the logger shared by Execute, the backend registry, the
// software and wgpu backends and the text package.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the logger used by canvas and its backends. Logging is off
// until it is called; nil turns it off again. It is safe to call while
// frames render on other goroutines.
//
// Records by level:
//   - [slog.LevelDebug]: "frame dispatched" from Execute with command, pass
//     and vertex counts; wgpu pipeline and buffer growth; text atlas pages
//     and font loads
//   - [slog.LevelInfo]: the backend chosen by backend.Default and the wgpu
//     device opened
//   - [slog.LevelWarn]: a backend.Default fallback and foreign images passed
//     to DeleteImage
//   - [slog.LevelError]: a wgpu screen allocation failure in SetSize
//
// Example:
//
//	// Enable debug-level logging for full diagnostics:
//	canvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. It never returns nil.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
