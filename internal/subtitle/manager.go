package subtitle

import (
	"time"

	"golang.org/x/text/language"

	"github.com/llehouerou/subtimeline/internal/config"
)

// Manager is the timeline of one subtitle track (primary, secondary, ...).
//
// A Manager owns its cue store and position snapshot and shares nothing
// with other managers. It performs no locking: all calls for a given
// manager must come from a single goroutine, typically the playback tick.
type Manager struct {
	slot     int
	fallback language.Tag

	store  Store
	anchor int
	state  PositionState
	now    time.Duration

	languageSource language.Tag

	listeners      []listenerEntry
	nextListenerID int
}

// NewManager creates the timeline for track slot.
//
// When applyConfigLanguage is true the track's language source is taken
// from the configured per-slot languages; otherwise it starts unknown.
// The enabled flag of cfg is not consulted: every operation behaves the
// same whether or not subtitles are displayed.
func NewManager(cfg config.SubtitlesConfig, slot int, applyConfigLanguage bool) *Manager {
	fallback := ParseLanguage(cfg.FallbackLanguage)
	if fallback == language.Und {
		fallback = DefaultLanguage
	}

	m := &Manager{
		slot:           slot,
		fallback:       fallback,
		anchor:         -1,
		state:          StateFirst,
		languageSource: language.Und,
	}
	if applyConfigLanguage {
		m.languageSource = ParseLanguage(cfg.LanguageFor(slot))
	}
	return m
}

// Slot returns the track slot this manager was created for.
func (m *Manager) Slot() int {
	return m.slot
}

// Cues returns a copy of the cues in store order.
func (m *Manager) Cues() []Cue {
	return m.store.Cues()
}

// Count returns the number of loaded cues.
func (m *Manager) Count() int {
	return m.store.Len()
}

// State returns the position state computed by the last update.
func (m *Manager) State() PositionState {
	return m.state
}

// Anchor returns the index of the last cue starting at or before the
// current time, or -1 if none.
func (m *Manager) Anchor() int {
	return m.anchor
}

// CurrentIndex returns the index of the visible cue, or -1 when no cue is
// showing.
func (m *Manager) CurrentIndex() int {
	return currentIndex(m.anchor, m.state)
}

// CurrentTime returns the last time passed to SetCurrentTime.
func (m *Manager) CurrentTime() time.Duration {
	return m.now
}

// Load replaces all cues, keeping their order, and resets the position to
// the start of the timeline.
func (m *Manager) Load(cues []Cue) {
	m.store.Load(cues)
	prev := m.swap(-1, StateFirst)
	m.notify(Event{Kind: EventCuesChanged, Slot: m.slot, Count: m.store.Len()})
	m.notifyPosition(prev)
}

// Add appends a cue. The current position is kept as is.
func (m *Manager) Add(c Cue) {
	m.store.Add(c)
	m.notify(Event{Kind: EventCuesChanged, Slot: m.slot, Count: m.store.Len()})
}

// DeleteAfter removes every cue ending after t. The position is
// recomputed against the last clock value since the anchor may no longer
// exist.
func (m *Manager) DeleteAfter(t time.Duration) {
	if m.store.DeleteAfter(t) == 0 {
		return
	}
	prev := m.swap(m.store.Locate(m.now))
	m.notify(Event{Kind: EventCuesChanged, Slot: m.slot, Count: m.store.Len()})
	m.notifyPosition(prev)
}

// SetCurrentTime locates t in the cue set and notifies listeners if the
// state or the current index changed.
func (m *Manager) SetCurrentTime(t time.Duration) {
	m.now = t
	m.notifyPosition(m.swap(m.store.Locate(t)))
}

// snapshot is the position reported to listeners.
type snapshot struct {
	state PositionState
	index int
}

// swap stores the new position and returns the previous one.
func (m *Manager) swap(anchor int, state PositionState) snapshot {
	prev := snapshot{state: m.state, index: m.CurrentIndex()}
	m.anchor = anchor
	m.state = state
	return prev
}

// notifyPosition raises at most one state event and one index event for
// the change from prev to the committed position.
func (m *Manager) notifyPosition(prev snapshot) {
	if len(m.listeners) == 0 {
		return
	}
	index := m.CurrentIndex()
	if m.state != prev.state {
		m.notify(Event{
			Kind:          EventStateChanged,
			Slot:          m.slot,
			PreviousState: prev.state,
			State:         m.state,
			PreviousIndex: prev.index,
			Index:         index,
		})
	}
	if index != prev.index {
		m.notify(Event{
			Kind:          EventIndexChanged,
			Slot:          m.slot,
			PreviousState: prev.state,
			State:         m.state,
			PreviousIndex: prev.index,
			Index:         index,
		})
	}
}

// GetCurrent returns the visible cue, or nil if none is showing.
func (m *Manager) GetCurrent() *Cue {
	if m.state != StateShowing {
		return nil
	}
	return m.cueAt(m.anchor)
}

// GetPrev returns the cue before the current position, or nil.
// In a gap the anchor cue itself has already ended and is returned.
func (m *Manager) GetPrev() *Cue {
	switch m.state {
	case StateShowing, StateLast:
		return m.cueAt(m.anchor - 1)
	case StateAround:
		return m.cueAt(m.anchor)
	default:
		return nil
	}
}

// GetNext returns the cue after the current position, or nil.
func (m *Manager) GetNext() *Cue {
	switch m.state {
	case StateFirst:
		return m.cueAt(0)
	case StateShowing, StateAround:
		return m.cueAt(m.anchor + 1)
	default:
		return nil
	}
}

func (m *Manager) cueAt(i int) *Cue {
	c, ok := m.store.At(i)
	if !ok {
		return nil
	}
	return &c
}

// LanguageSource returns the language tag the track was declared with.
// language.Und means unknown.
func (m *Manager) LanguageSource() language.Tag {
	return m.languageSource
}

// SetLanguageSource changes the declared language of the track.
func (m *Manager) SetLanguageSource(tag language.Tag) {
	if tag == m.languageSource {
		return
	}
	m.languageSource = tag
	m.notify(Event{Kind: EventLanguageChanged, Slot: m.slot, Language: m.Language()})
}

// Language returns the resolved language: the language source, or the
// fallback language when the source is unknown. Never language.Und.
func (m *Manager) Language() language.Tag {
	return resolveLanguage(m.languageSource, m.fallback)
}

// Listen registers fn for every event raised by this manager. Listeners
// run synchronously, in registration order, after the change is committed.
// The returned function unregisters fn.
func (m *Manager) Listen(fn Listener) (cancel func()) {
	id := m.nextListenerID
	m.nextListenerID++
	m.listeners = append(m.listeners, listenerEntry{id: id, fn: fn})
	return func() { m.removeListener(id) }
}

func (m *Manager) removeListener(id int) {
	// Build a new slice so a dispatch in progress keeps its own view.
	kept := make([]listenerEntry, 0, len(m.listeners))
	for _, l := range m.listeners {
		if l.id != id {
			kept = append(kept, l)
		}
	}
	m.listeners = kept
}

func (m *Manager) notify(e Event) {
	for _, l := range m.listeners {
		l.fn(e)
	}
}

func currentIndex(anchor int, state PositionState) int {
	if state != StateShowing {
		return -1
	}
	return anchor
}
