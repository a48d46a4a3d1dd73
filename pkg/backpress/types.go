package backpress

import "fmt"

// Type identifies a handler slot. Declaration order is priority order: a
// lower value is checked first.
type Type int

const (
	// TypeTextBubble is an in-product help bubble.
	TypeTextBubble Type = iota
	// TypeSceneOverlay is a full-window scene drawn over the content.
	TypeSceneOverlay
	// TypeSelectionPopup is a text selection popup.
	TypeSelectionPopup
	// TypeManualFilling is the manual form filling sheet.
	TypeManualFilling
	// TypeFullscreen exits fullscreen mode.
	TypeFullscreen
	// TypeBottomSheet collapses or closes a bottom sheet.
	TypeBottomSheet
	// TypeTabModal dismisses a modal dialog attached to the current tab.
	TypeTabModal
	// TypeTabSwitcher leaves the tab switcher.
	TypeTabSwitcher
	// TypeCloseWatcher lets page content intercept back.
	TypeCloseWatcher
	// TypeFindToolbar closes find-in-page.
	TypeFindToolbar
	// TypeLocationBar unfocuses the location bar.
	TypeLocationBar
	// TypeTabHistory navigates back in the current tab.
	TypeTabHistory
	// TypeShowReadingList returns to the reading list.
	TypeShowReadingList
	// TypeMinimizeAppAndCloseTab is the last-resort handler.
	TypeMinimizeAppAndCloseTab

	typeCount
)

var typeNames = [typeCount]string{
	TypeTextBubble:             "text_bubble",
	TypeSceneOverlay:           "scene_overlay",
	TypeSelectionPopup:         "selection_popup",
	TypeManualFilling:          "manual_filling",
	TypeFullscreen:             "fullscreen",
	TypeBottomSheet:            "bottom_sheet",
	TypeTabModal:               "tab_modal",
	TypeTabSwitcher:            "tab_switcher",
	TypeCloseWatcher:           "close_watcher",
	TypeFindToolbar:            "find_toolbar",
	TypeLocationBar:            "location_bar",
	TypeTabHistory:             "tab_history",
	TypeShowReadingList:        "show_reading_list",
	TypeMinimizeAppAndCloseTab: "minimize_app_and_close_tab",
}

// Types returns every Type in priority order.
func Types() []Type {
	out := make([]Type, typeCount)
	for i := range out {
		out[i] = Type(i)
	}
	return out
}

// Valid reports whether t is a declared Type.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

// String returns the snake_case name used in logs, metrics and scripts.
func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType returns the Type with the given snake_case name.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidType, name)
}

// Result is the outcome of Handler.HandleBackPress.
type Result int

const (
	// ResultUnknown is the zero value. It is treated like ResultIgnored.
	ResultUnknown Result = iota
	// ResultSuccess means the event was consumed.
	ResultSuccess
	// ResultFailure means the handler was enabled but could not consume the
	// event. The failure is recorded and the next handler is tried.
	ResultFailure
	// ResultIgnored means the handler silently declined.
	ResultIgnored
)

// String returns a lowercase name for r.
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultFailure:
		return "failure"
	case ResultIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// ParseResult is the inverse of Result.String.
func ParseResult(s string) (Result, error) {
	switch s {
	case "success":
		return ResultSuccess, nil
	case "failure":
		return ResultFailure, nil
	case "ignored":
		return ResultIgnored, nil
	case "unknown", "":
		return ResultUnknown, nil
	}
	return ResultUnknown, fmt.Errorf("unknown back press result %q", s)
}

// Edge is the screen edge a predictive gesture started from.
type Edge int

const (
	// EdgeLeft is a swipe from the left edge.
	EdgeLeft Edge = iota
	// EdgeRight is a swipe from the right edge.
	EdgeRight
)

// String returns "left" or "right".
func (e Edge) String() string {
	if e == EdgeRight {
		return "right"
	}
	return "left"
}

// ParseEdge is the inverse of Edge.String. The empty string means left.
func ParseEdge(s string) (Edge, error) {
	switch s {
	case "left", "":
		return EdgeLeft, nil
	case "right":
		return EdgeRight, nil
	}
	return EdgeLeft, fmt.Errorf("unknown edge %q", s)
}

// GestureEvent carries the metadata of one predictive gesture phase. It is
// forwarded untouched and never influences arbitration.
type GestureEvent struct {
	Edge     Edge
	Progress float64 // 0..1
}

// GesturePhase is the state of the predictive gesture machine.
type GesturePhase int

const (
	// PhaseIdle means no gesture is in flight.
	PhaseIdle GesturePhase = iota
	// PhaseStarted means a handler is pinned and no progress has arrived yet.
	PhaseStarted
	// PhaseProgressing means at least one progress event has been forwarded.
	PhaseProgressing
)

// String returns the phase name.
func (p GesturePhase) String() string {
	switch p {
	case PhaseStarted:
		return "started"
	case PhaseProgressing:
		return "progressing"
	default:
		return "idle"
	}
}
