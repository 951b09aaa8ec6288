package subtitle

// PositionState classifies a playback position relative to the cue set.
type PositionState int

const (
	StateFirst   PositionState = iota // before every cue, or no cues at all
	StateShowing                      // inside the anchor cue's window
	StateAround                       // in the gap after the anchor cue
	StateLast                         // past the window of the final cue
)

// String returns the state name.
func (s PositionState) String() string {
	switch s {
	case StateFirst:
		return "First"
	case StateShowing:
		return "Showing"
	case StateAround:
		return "Around"
	case StateLast:
		return "Last"
	default:
		return "Unknown"
	}
}

// IsShowing returns true if a cue is currently visible.
func (s PositionState) IsShowing() bool {
	return s == StateShowing
}
