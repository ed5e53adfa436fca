package recording

import (
	"fmt"
	"strconv"

	"github.com/gogpu/canvas"
)

// EventType identifies what an Event records.
type EventType uint8

const (
	EventSetSize EventType = iota // SetSize call
	EventTarget                   // Render target switch
	EventClear                    // ClearRect
	EventPass                     // Draw pass
	EventFilter                   // Filter pass
	EventAlloc                    // AllocImage
	EventUpdate                   // UpdateImage
	EventDelete                   // DeleteImage
)

var eventTypeNames = [...]string{
	EventSetSize: "SetSize",
	EventTarget:  "Target",
	EventClear:   "Clear",
	EventPass:    "Pass",
	EventFilter:  "Filter",
	EventAlloc:   "Alloc",
	EventUpdate:  "Update",
	EventDelete:  "Delete",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "EventType(" + strconv.Itoa(int(t)) + ")"
}

// Event is one recorded call. Only the fields relevant to Type are set.
type Event struct {
	Type EventType

	// Frame is the zero-based Render call the event belongs to; -1 for
	// calls made outside Render.
	Frame int

	Target canvas.RenderTarget // EventTarget
	Pass   canvas.Pass         // EventPass
	Filter canvas.FilterPass   // EventFilter

	// X, Y, Width and Height are the clear rectangle, the update origin and
	// size, or the surface size.
	X, Y          int
	Width, Height int
	DPI           float32
	Color         canvas.Color

	Info canvas.ImageInfo // EventAlloc, EventUpdate
	ID   canvas.ImageID   // EventDelete
}

// String formats the event as one trace line.
func (e Event) String() string {
	switch e.Type {
	case EventSetSize:
		return fmt.Sprintf("size %dx%d@%v", e.Width, e.Height, e.DPI)
	case EventTarget:
		return "target " + e.Target.String()
	case EventClear:
		return fmt.Sprintf("clear %d,%d %dx%d", e.X, e.Y, e.Width, e.Height)
	case EventPass:
		return fmt.Sprintf("%v(%v)", e.Pass.Stage, e.Pass.Params.ShaderType)
	case EventFilter:
		return fmt.Sprintf("filter %v->%v sigma=%v", e.Filter.Source, e.Filter.Target, e.Filter.Filter.Sigma)
	case EventAlloc:
		return fmt.Sprintf("alloc %dx%d %v", e.Info.Width, e.Info.Height, e.Info.Format)
	case EventUpdate:
		return fmt.Sprintf("update %dx%d at %d,%d", e.Width, e.Height, e.X, e.Y)
	case EventDelete:
		return "delete " + e.ID.String()
	}
	return e.Type.String()
}
