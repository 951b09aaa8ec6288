package subtitle

import "time"

// Locate returns the anchor index and position state of t within cues.
//
// The anchor is the greatest index whose cue starts at or before t, or -1
// if there is none. Cues are taken in slice order, not time order, so an
// unsorted slice can yield an anchor that a time-sorted view would not.
func Locate(cues []Cue, t time.Duration) (int, PositionState) {
	// Walking from the tail finds the same anchor as a full forward scan
	// and stops as soon as it is found.
	anchor := -1
	for i := len(cues) - 1; i >= 0; i-- {
		if cues[i].Start <= t {
			anchor = i
			break
		}
	}

	switch {
	case anchor < 0:
		return -1, StateFirst
	case t <= cues[anchor].End:
		return anchor, StateShowing
	case anchor == len(cues)-1:
		return anchor, StateLast
	default:
		return anchor, StateAround
	}
}
