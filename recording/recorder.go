package recording

import (
	"image"
	"strings"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend"
)

func init() {
	backend.Register(backend.NameRecording, func() (canvas.Renderer, error) {
		return New(), nil
	})
}

// Image is the resource handed out by a Recorder without a wrapped
// renderer.
type Image struct {
	info canvas.ImageInfo
}

// Info returns the image description.
func (i *Image) Info() canvas.ImageInfo { return i.info }

// Option configures a Recorder.
type Option func(*Recorder)

// WithRenderer forwards every call to r after recording it.
func WithRenderer(r canvas.Renderer) Option {
	return func(rec *Recorder) { rec.inner = r }
}

// WithAntialias enables or disables fringe passes in the recorded dispatch.
// The default is enabled.
func WithAntialias(enabled bool) Option {
	return func(rec *Recorder) { rec.antialias = enabled }
}

// WithTargetCoalescing drops redundant render target switches.
func WithTargetCoalescing() Option {
	return func(rec *Recorder) { rec.coalesce = true }
}

// Recorder is a canvas.Renderer that records an Event per call.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	inner     canvas.Renderer
	antialias bool
	coalesce  bool

	width, height uint32
	dpi           float32

	events []Event
	frame  int // index of the next Render call
	cur    int // frame of events being recorded, -1 outside Render
}

var _ canvas.Renderer = (*Recorder)(nil)

// New creates a Recorder.
func New(opts ...Option) *Recorder {
	r := &Recorder{antialias: true, dpi: 1, cur: -1}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Events returns the recorded events in call order.
func (r *Recorder) Events() []Event { return r.events }

// Passes returns the draw passes recorded so far.
func (r *Recorder) Passes() []canvas.Pass {
	var out []canvas.Pass
	for _, e := range r.events {
		if e.Type == EventPass {
			out = append(out, e.Pass)
		}
	}
	return out
}

// TargetSwitches returns the render targets switched to, in order.
func (r *Recorder) TargetSwitches() []canvas.RenderTarget {
	var out []canvas.RenderTarget
	for _, e := range r.events {
		if e.Type == EventTarget {
			out = append(out, e.Target)
		}
	}
	return out
}

// Lines returns the String form of every event.
func (r *Recorder) Lines() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.String()
	}
	return out
}

// Frames returns the number of Render calls that completed.
func (r *Recorder) Frames() int { return r.frame }

// Reset drops the recorded events. Frame numbering continues.
func (r *Recorder) Reset() { r.events = r.events[:0] }

// String returns the trace, one event per line.
func (r *Recorder) String() string {
	var sb strings.Builder
	for _, e := range r.events {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (r *Recorder) add(e Event) {
	e.Frame = r.cur
	r.events = append(r.events, e)
}

// SetSize records the size and forwards it.
func (r *Recorder) SetSize(width, height uint32, dpi float32) {
	r.width, r.height, r.dpi = width, height, dpi
	r.add(Event{Type: EventSetSize, Width: int(width), Height: int(height), DPI: dpi})
	if r.inner != nil {
		r.inner.SetSize(width, height, dpi)
	}
}

// Render records the passes of the frame and then forwards it. A frame that
// fails validation records nothing.
func (r *Recorder) Render(images *canvas.ImageStore, verts []canvas.Vertex, cmds []canvas.Command) error {
	opts := []canvas.DispatchOption{canvas.WithAntialias(r.antialias)}
	if r.coalesce {
		opts = append(opts, canvas.WithTargetCoalescing())
	}

	r.cur = r.frame
	err := canvas.Execute(encoder{r}, images, verts, cmds, opts...)
	r.cur = -1
	if err != nil {
		return err
	}
	r.frame++

	if r.inner != nil {
		return r.inner.Render(images, verts, cmds)
	}
	return nil
}

// AllocImage records the allocation.
func (r *Recorder) AllocImage(info canvas.ImageInfo) (canvas.Image, error) {
	if r.inner != nil {
		img, err := r.inner.AllocImage(info)
		if err != nil {
			return nil, err
		}
		r.add(Event{Type: EventAlloc, Info: info})
		return img, nil
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	r.add(Event{Type: EventAlloc, Info: info})
	return &Image{info: info}, nil
}

// UpdateImage records an upload that passed validation.
func (r *Recorder) UpdateImage(img canvas.Image, src canvas.ImageSource, x, y int) error {
	if r.inner != nil {
		if err := r.inner.UpdateImage(img, src, x, y); err != nil {
			return err
		}
	} else if err := canvas.ValidateUpdate(img.Info(), src, x, y); err != nil {
		return err
	}
	r.add(Event{Type: EventUpdate, Info: img.Info(), X: x, Y: y, Width: src.Width, Height: src.Height})
	return nil
}

// DeleteImage records the release.
func (r *Recorder) DeleteImage(img canvas.Image, id canvas.ImageID) {
	r.add(Event{Type: EventDelete, ID: id, Info: img.Info()})
	if r.inner != nil {
		r.inner.DeleteImage(img, id)
	}
}

// Screenshot reads back the wrapped renderer. Without one it returns a
// transparent image of the current size.
func (r *Recorder) Screenshot() (*image.RGBA, error) {
	if r.inner != nil {
		return r.inner.Screenshot()
	}
	return image.NewRGBA(image.Rect(0, 0, int(r.width), int(r.height))), nil
}

// encoder appends dispatch output to the recorder.
type encoder struct{ r *Recorder }

func (e encoder) SetRenderTarget(t canvas.RenderTarget) error {
	e.r.add(Event{Type: EventTarget, Target: t})
	return nil
}

func (e encoder) ClearRect(x, y, width, height uint32, c canvas.Color) error {
	e.r.add(Event{Type: EventClear, X: int(x), Y: int(y), Width: int(width), Height: int(height), Color: c})
	return nil
}

func (e encoder) Draw(p canvas.Pass) error {
	e.r.add(Event{Type: EventPass, Pass: p})
	return nil
}

func (e encoder) FilterImage(p canvas.FilterPass) error {
	e.r.add(Event{Type: EventFilter, Filter: p})
	return nil
}
