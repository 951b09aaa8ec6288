package subtitle

import "time"

// Store is an insertion-ordered sequence of cues.
// It never sorts: indices always mirror the order cues were supplied in.
type Store struct {
	cues []Cue
}

// Load replaces the whole sequence, keeping the caller's order verbatim.
func (s *Store) Load(cues []Cue) {
	s.cues = make([]Cue, len(cues))
	copy(s.cues, cues)
	s.reindex()
}

// Add appends a cue and returns the index it was assigned.
func (s *Store) Add(c Cue) int {
	c.Index = len(s.cues)
	s.cues = append(s.cues, c)
	return c.Index
}

// DeleteAfter removes every cue whose end is after t and returns how many
// were removed. Survivors keep their relative order and are reindexed.
func (s *Store) DeleteAfter(t time.Duration) int {
	kept := s.cues[:0]
	for _, c := range s.cues {
		if c.End <= t {
			kept = append(kept, c)
		}
	}
	removed := len(s.cues) - len(kept)
	clear(s.cues[len(kept):])
	s.cues = kept
	if removed > 0 {
		s.reindex()
	}
	return removed
}

// Len returns the number of cues.
func (s *Store) Len() int {
	return len(s.cues)
}

// At returns the cue at index i.
// Returns false if i is out of range.
func (s *Store) At(i int) (Cue, bool) {
	if i < 0 || i >= len(s.cues) {
		return Cue{}, false
	}
	return s.cues[i], true
}

// Cues returns a copy of all cues in store order.
func (s *Store) Cues() []Cue {
	result := make([]Cue, len(s.cues))
	copy(result, s.cues)
	return result
}

// Locate classifies t against the stored cues. See Locate.
func (s *Store) Locate(t time.Duration) (int, PositionState) {
	return Locate(s.cues, t)
}

func (s *Store) reindex() {
	for i := range s.cues {
		s.cues[i].Index = i
	}
}
