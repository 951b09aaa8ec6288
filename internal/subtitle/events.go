package subtitle

import "golang.org/x/text/language"

// EventKind identifies what changed on a track.
type EventKind int

const (
	EventStateChanged EventKind = iota
	EventIndexChanged
	EventCuesChanged
	EventLanguageChanged
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "StateChanged"
	case EventIndexChanged:
		return "IndexChanged"
	case EventCuesChanged:
		return "CuesChanged"
	case EventLanguageChanged:
		return "LanguageChanged"
	default:
		return "Unknown"
	}
}

// Event is delivered to listeners after a track commits a change.
//
// Raised by:
//   - SetCurrentTime: StateChanged and/or IndexChanged, at most one of each
//   - Load: CuesChanged, then StateChanged/IndexChanged if the reset moved them
//   - Add, DeleteAfter: CuesChanged (DeleteAfter may also move the position)
//   - SetLanguageSource: LanguageChanged when the source differs
type Event struct {
	Kind EventKind
	Slot int

	PreviousState PositionState
	State         PositionState

	// Current index as publicly reported: -1 unless State is StateShowing.
	PreviousIndex int
	Index         int

	Count    int          // cue count, set on CuesChanged
	Language language.Tag // resolved language, set on LanguageChanged
}

// Listener receives track events synchronously on the caller's goroutine.
type Listener func(Event)

type listenerEntry struct {
	id int
	fn Listener
}
