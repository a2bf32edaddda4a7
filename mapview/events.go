package mapview

// UIEventType defines the kind of event emitted by a Control.
type UIEventType int

const (
	// EventLineAdded fires after a line is appended. Local is true when the
	// line came from the user's own drag gesture.
	EventLineAdded UIEventType = iota
	// EventLineEvicted fires for each line dropped to honor LineLimit.
	EventLineEvicted
	// EventLinesCleared fires when every line is removed at once.
	EventLinesCleared
	// EventTextureUpdated fires after the map texture is regenerated.
	EventTextureUpdated
)

func (t UIEventType) String() string {
	switch t {
	case EventLineAdded:
		return "line-added"
	case EventLineEvicted:
		return "line-evicted"
	case EventLinesCleared:
		return "lines-cleared"
	case EventTextureUpdated:
		return "texture-updated"
	}
	return "unknown"
}

// UIEvent describes a change to a Control's state.
type UIEvent struct {
	Type  UIEventType
	Line  Line
	Local bool
	// Count is the number of lines held after the change.
	Count int
}

// EventHandler provides both channel and callback based event delivery.
type EventHandler struct {
	Events chan UIEvent
	Handle func(UIEvent)
}

// Emit delivers the event through the channel and callback if present.
// A full channel drops the event rather than blocking the UI thread.
func (h *EventHandler) Emit(ev UIEvent) {
	if h == nil {
		return
	}
	if h.Events != nil {
		select {
		case h.Events <- ev:
		default:
		}
	}
	if h.Handle != nil {
		h.Handle(ev)
	}
}

// NewEventHandler returns a handler with a small buffered channel.
func NewEventHandler() *EventHandler {
	return &EventHandler{Events: make(chan UIEvent, 8)}
}
