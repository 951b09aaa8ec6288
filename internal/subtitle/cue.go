// Package subtitle provides the subtitle timeline of a track: an
// insertion-ordered cue store, the locator that classifies a playback time
// against it, and the manager that navigates between cues and notifies
// listeners when the visible cue changes.
package subtitle

import (
	"fmt"
	"time"
)

// Cue represents a single timed subtitle entry.
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
	Index int // Position in the owning store, assigned by the store
}

// Contains returns true if t falls within the cue's visible window.
// Both bounds are inclusive.
func (c Cue) Contains(t time.Duration) bool {
	return c.Start <= t && t <= c.End
}

// Duration returns how long the cue stays visible.
// Inverted cues yield a negative duration.
func (c Cue) Duration() time.Duration {
	return c.End - c.Start
}

// String returns a compact description like "#2 [10s-15s] Hello".
func (c Cue) String() string {
	return fmt.Sprintf("#%d [%s-%s] %s", c.Index, c.Start, c.End, c.Text)
}
