// file: widget/toggle.go
package widget

import "mentora-hub/logger"

// Toggle is the open/close control of a mounted chat widget.
type Toggle interface {
	IsOpen() bool
	Open()
}

// Widget is a mounted chat widget. A widget whose UI has not finished
// rendering has no toggle control yet.
type Widget interface {
	ToggleControl() (Toggle, bool)
}

// Finder locates mounted widgets by agent id.
type Finder interface {
	FindWidget(agentID string) (Widget, bool)
}

// OpenResult is the outcome of Open.
type OpenResult int

const (
	Opened OpenResult = iota
	AlreadyOpen
	WidgetNotFound
	ControlNotFound
)

func (r OpenResult) String() string {
	switch r {
	case Opened:
		return "opened"
	case AlreadyOpen:
		return "already open"
	case WidgetNotFound:
		return "widget not found"
	case ControlNotFound:
		return "control not found"
	default:
		return "unknown"
	}
}

// Open expands the chat for agentID unless it is already open. Missing
// widgets or controls are logged and reported, never raised.
func Open(f Finder, agentID string) OpenResult {
	w, ok := f.FindWidget(agentID)
	if !ok {
		logger.Warn.Printf("[widget.Open] no widget mounted for agent %s", agentID)
		return WidgetNotFound
	}
	t, ok := w.ToggleControl()
	if !ok {
		logger.Warn.Printf("[widget.Open] widget for agent %s has no toggle control", agentID)
		return ControlNotFound
	}
	if t.IsOpen() {
		return AlreadyOpen
	}
	t.Open()
	return Opened
}
