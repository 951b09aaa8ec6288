package subtitle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/llehouerou/subtimeline/internal/config"
)

func newTestManager(cues ...Cue) *Manager {
	m := NewManager(config.SubtitlesConfig{}, 0, false)
	m.Load(cues)
	return m
}

func abcCues() []Cue {
	return []Cue{cue(10, 15, "A"), cue(20, 25, "B"), cue(30, 35, "C")}
}

func text(c *Cue) string {
	if c == nil {
		return "<nil>"
	}
	return c.Text
}

func TestNewManager_InitialState(t *testing.T) {
	m := NewManager(config.SubtitlesConfig{}, 1, false)

	assert.Equal(t, 1, m.Slot())
	assert.Equal(t, 0, m.Count())
	assert.Equal(t, StateFirst, m.State())
	assert.Equal(t, -1, m.Anchor())
	assert.Equal(t, -1, m.CurrentIndex())
	assert.Nil(t, m.GetCurrent())
	assert.Nil(t, m.GetPrev())
	assert.Nil(t, m.GetNext())
}

func TestManager_StateTransitions(t *testing.T) {
	m := newTestManager(abcCues()...)

	m.SetCurrentTime(sec(5))
	assert.Equal(t, StateFirst, m.State())

	m.SetCurrentTime(sec(12))
	assert.Equal(t, StateShowing, m.State())
	assert.Equal(t, "A", text(m.GetCurrent()))

	m.SetCurrentTime(sec(18))
	assert.Equal(t, StateAround, m.State())

	m.SetCurrentTime(sec(40))
	assert.Equal(t, StateLast, m.State())
}

func TestManager_Navigation(t *testing.T) {
	cues := []Cue{cue(1, 5, "Sub1"), cue(10, 15, "Sub2"), cue(20, 25, "Sub3")}

	tests := []struct {
		name        string
		at          time.Duration
		wantCurrent string
		wantPrev    string
		wantNext    string
	}{
		{"before first", 0, "<nil>", "<nil>", "Sub1"},
		{"showing first", sec(3), "Sub1", "<nil>", "Sub2"},
		{"gap after first", sec(7), "<nil>", "Sub1", "Sub2"},
		{"showing middle", sec(12), "Sub2", "Sub1", "Sub3"},
		{"showing last", sec(22), "Sub3", "Sub2", "<nil>"},
		{"after last", sec(30), "<nil>", "Sub2", "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(cues...)
			m.SetCurrentTime(tt.at)

			assert.Equal(t, tt.wantCurrent, text(m.GetCurrent()), "GetCurrent")
			assert.Equal(t, tt.wantPrev, text(m.GetPrev()), "GetPrev")
			assert.Equal(t, tt.wantNext, text(m.GetNext()), "GetNext")
		})
	}
}

func TestManager_BeforeAllCues(t *testing.T) {
	m := newTestManager(cue(10, 15, "First"))

	m.SetCurrentTime(sec(5))

	assert.Nil(t, m.GetCurrent())
	assert.Nil(t, m.GetPrev())
	require.NotNil(t, m.GetNext())
	assert.Equal(t, "First", m.GetNext().Text)
	assert.Equal(t, -1, m.CurrentIndex())
}

func TestManager_EmptyLoad(t *testing.T) {
	m := newTestManager()

	m.SetCurrentTime(sec(5))

	assert.Equal(t, 0, m.Count())
	assert.Equal(t, StateFirst, m.State())
	assert.Nil(t, m.GetCurrent())
	assert.Nil(t, m.GetNext())
	assert.Nil(t, m.GetPrev())
}

func TestManager_InvertedCueIsKept(t *testing.T) {
	m := newTestManager(cue(5, 3, "Invalid"), cue(10, 15, "Valid"))

	cues := m.Cues()
	require.Len(t, cues, 2)
	assert.Equal(t, sec(5), cues[0].Start)
	assert.Equal(t, "Invalid", cues[0].Text)
	assert.Equal(t, "Valid", cues[1].Text)

	m.SetCurrentTime(sec(4))
	assert.Equal(t, StateFirst, m.State())
	m.SetCurrentTime(sec(7))
	assert.Equal(t, StateAround, m.State())
	assert.Equal(t, "Invalid", text(m.GetPrev()))
	assert.Equal(t, "Valid", text(m.GetNext()))
}

func TestManager_CurrentIndexMatchesShowing(t *testing.T) {
	m := newTestManager(abcCues()...)

	for at := time.Duration(0); at <= sec(45); at += 500 * time.Millisecond {
		m.SetCurrentTime(at)
		if m.State() == StateShowing {
			assert.GreaterOrEqual(t, m.CurrentIndex(), 0, "at %v", at)
			assert.Equal(t, m.Anchor(), m.CurrentIndex(), "at %v", at)
		} else {
			assert.Equal(t, -1, m.CurrentIndex(), "at %v", at)
		}
	}
}

func TestManager_RepeatedSetCurrentTimeIsStable(t *testing.T) {
	m := newTestManager(abcCues()...)

	for _, at := range []time.Duration{sec(5), sec(12), sec(18), sec(40)} {
		m.SetCurrentTime(at)
		state, anchor := m.State(), m.Anchor()
		current, prev, next := text(m.GetCurrent()), text(m.GetPrev()), text(m.GetNext())

		for range 5 {
			m.SetCurrentTime(at)
			assert.Equal(t, state, m.State())
			assert.Equal(t, anchor, m.Anchor())
			assert.Equal(t, current, text(m.GetCurrent()))
			assert.Equal(t, prev, text(m.GetPrev()))
			assert.Equal(t, next, text(m.GetNext()))
		}
	}
}

func TestManager_Load_ResetsPosition(t *testing.T) {
	m := newTestManager(abcCues()...)
	m.SetCurrentTime(sec(22))
	require.Equal(t, StateShowing, m.State())

	m.Load([]Cue{cue(100, 110, "X")})

	assert.Equal(t, StateFirst, m.State())
	assert.Equal(t, -1, m.Anchor())
	assert.Equal(t, 1, m.Count())
}

func TestManager_Add_KeepsPosition(t *testing.T) {
	m := newTestManager(cue(10, 15, "A"))
	m.SetCurrentTime(sec(20))
	require.Equal(t, StateLast, m.State())

	m.Add(cue(30, 35, "B"))

	assert.Equal(t, StateLast, m.State(), "Add does not recompute")
	assert.Equal(t, 0, m.Anchor())
	assert.Equal(t, 1, m.Cues()[1].Index)

	m.SetCurrentTime(sec(20))
	assert.Equal(t, StateAround, m.State())
	assert.Equal(t, "B", text(m.GetNext()))
}

func TestManager_Add_DoesNotSort(t *testing.T) {
	m := newTestManager(cue(10, 15, "A"))

	m.Add(cue(1, 2, "early"))

	assert.Equal(t, []string{"A", "early"}, texts(m.Cues()))
}

func TestManager_DeleteAfter(t *testing.T) {
	m := newTestManager(abcCues()...)

	m.DeleteAfter(sec(22))

	cues := m.Cues()
	require.Len(t, cues, 1)
	assert.Equal(t, Cue{Start: sec(10), End: sec(15), Text: "A", Index: 0}, cues[0])
}

func TestManager_DeleteAfter_RecomputesPosition(t *testing.T) {
	m := newTestManager(abcCues()...)
	m.SetCurrentTime(sec(32))
	require.Equal(t, "C", text(m.GetCurrent()))

	m.DeleteAfter(sec(22))

	assert.Equal(t, StateLast, m.State())
	assert.Equal(t, 0, m.Anchor())
	assert.Nil(t, m.GetCurrent())
	assert.Nil(t, m.GetNext())
}

func TestManager_DeleteAfter_Idempotent(t *testing.T) {
	m := newTestManager(abcCues()...)
	m.DeleteAfter(sec(22))

	var events []Event
	m.Listen(func(e Event) { events = append(events, e) })
	m.DeleteAfter(sec(22))

	assert.Equal(t, 1, m.Count())
	assert.Empty(t, events)
}

func TestManager_Listen_SetCurrentTimeEvents(t *testing.T) {
	m := newTestManager(abcCues()...)
	var events []Event
	m.Listen(func(e Event) { events = append(events, e) })

	m.SetCurrentTime(sec(5)) // First -> First, nothing
	require.Empty(t, events)

	m.SetCurrentTime(sec(12)) // First -> Showing A
	require.Len(t, events, 2)
	assert.Equal(t, EventStateChanged, events[0].Kind)
	assert.Equal(t, StateFirst, events[0].PreviousState)
	assert.Equal(t, StateShowing, events[0].State)
	assert.Equal(t, EventIndexChanged, events[1].Kind)
	assert.Equal(t, -1, events[1].PreviousIndex)
	assert.Equal(t, 0, events[1].Index)

	events = nil
	m.SetCurrentTime(sec(13)) // still A
	assert.Empty(t, events)

	m.SetCurrentTime(sec(22)) // Showing A -> Showing B: index only
	require.Len(t, events, 1)
	assert.Equal(t, EventIndexChanged, events[0].Kind)
	assert.Equal(t, 0, events[0].PreviousIndex)
	assert.Equal(t, 1, events[0].Index)

	events = nil
	m.SetCurrentTime(sec(28)) // Showing -> Around
	require.Len(t, events, 2)
	assert.Equal(t, StateAround, events[0].State)
	assert.Equal(t, -1, events[1].Index)

	events = nil
	m.SetCurrentTime(sec(18)) // Around (anchor 1) -> Around (anchor 0): nothing public changed
	assert.Empty(t, events)
	assert.Equal(t, 0, m.Anchor())
}

func TestManager_Listen_RegistrationOrder(t *testing.T) {
	m := newTestManager(abcCues()...)
	var order []string
	m.Listen(func(Event) { order = append(order, "first") })
	m.Listen(func(Event) { order = append(order, "second") })

	m.SetCurrentTime(sec(12)) // state and index events

	assert.Equal(t, []string{"first", "second", "first", "second"}, order)
}

func TestManager_Listen_SeesCommittedSnapshot(t *testing.T) {
	m := newTestManager(abcCues()...)
	var seen []string
	m.Listen(func(e Event) {
		if e.Kind == EventIndexChanged {
			seen = append(seen, text(m.GetCurrent()))
		}
	})

	m.SetCurrentTime(sec(12))
	m.SetCurrentTime(sec(22))

	assert.Equal(t, []string{"A", "B"}, seen)
}

func TestManager_Listen_Cancel(t *testing.T) {
	m := newTestManager(abcCues()...)
	count := 0
	cancel := m.Listen(func(Event) { count++ })

	m.SetCurrentTime(sec(12))
	cancel()
	m.SetCurrentTime(sec(40))

	assert.Equal(t, 2, count)
}

func TestManager_Listen_CancelDuringDispatch(t *testing.T) {
	m := newTestManager(abcCues()...)
	var calls []string
	var cancelFirst func()
	cancelFirst = m.Listen(func(Event) {
		calls = append(calls, "first")
		cancelFirst()
	})
	m.Listen(func(Event) { calls = append(calls, "second") })

	m.SetCurrentTime(sec(12)) // state and index events

	assert.Equal(t, []string{"first", "second", "second"}, calls)
}

func TestManager_Load_Events(t *testing.T) {
	m := newTestManager(abcCues()...)
	m.SetCurrentTime(sec(12))
	var events []Event
	m.Listen(func(e Event) { events = append(events, e) })

	m.Load([]Cue{cue(1, 2, "X"), cue(3, 4, "Y")})

	require.Len(t, events, 3)
	assert.Equal(t, EventCuesChanged, events[0].Kind)
	assert.Equal(t, 2, events[0].Count)
	assert.Equal(t, EventStateChanged, events[1].Kind)
	assert.Equal(t, StateFirst, events[1].State)
	assert.Equal(t, EventIndexChanged, events[2].Kind)
	assert.Equal(t, -1, events[2].Index)
}

func TestManager_CuesChanged_SeesCommittedPosition(t *testing.T) {
	tests := []struct {
		name   string
		at     time.Duration
		change func(m *Manager)
	}{
		{"delete after showing cue", sec(32), func(m *Manager) { m.DeleteAfter(sec(22)) }},
		{"delete everything", sec(12), func(m *Manager) { m.DeleteAfter(0) }},
		{"load later cues", sec(12), func(m *Manager) { m.Load([]Cue{cue(100, 200, "Z")}) }},
		{"load empty", sec(22), func(m *Manager) { m.Load(nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(abcCues()...)
			m.SetCurrentTime(tt.at)
			calls := 0
			m.Listen(func(e Event) {
				if e.Kind != EventCuesChanged {
					return
				}
				calls++
				assert.Less(t, m.Anchor(), m.Count())
				if c := m.GetCurrent(); c != nil {
					assert.True(t, c.Contains(m.CurrentTime()), "current %v does not contain %v", c, m.CurrentTime())
				}
				assert.Equal(t, m.State() == StateShowing, m.GetCurrent() != nil)
			})

			tt.change(m)

			assert.Equal(t, 1, calls)
		})
	}
}

func TestManager_DeleteAfter_EventOrder(t *testing.T) {
	m := newTestManager(abcCues()...)
	m.SetCurrentTime(sec(32))
	var events []Event
	m.Listen(func(e Event) { events = append(events, e) })

	m.DeleteAfter(sec(22))

	require.Len(t, events, 3)
	assert.Equal(t, EventCuesChanged, events[0].Kind)
	assert.Equal(t, 1, events[0].Count)
	assert.Equal(t, EventStateChanged, events[1].Kind)
	assert.Equal(t, StateShowing, events[1].PreviousState)
	assert.Equal(t, StateLast, events[1].State)
	assert.Equal(t, EventIndexChanged, events[2].Kind)
	assert.Equal(t, 2, events[2].PreviousIndex)
	assert.Equal(t, -1, events[2].Index)
}

func TestManager_Add_Event(t *testing.T) {
	m := newTestManager()
	var events []Event
	m.Listen(func(e Event) { events = append(events, e) })

	m.Add(cue(1, 2, "X"))

	require.Len(t, events, 1)
	assert.Equal(t, EventCuesChanged, events[0].Kind)
	assert.Equal(t, 1, events[0].Count)
}

func TestManager_EventsCarrySlot(t *testing.T) {
	m := NewManager(config.SubtitlesConfig{}, 1, false)
	m.Load(abcCues())
	var slots []int
	m.Listen(func(e Event) { slots = append(slots, e.Slot) })

	m.SetCurrentTime(sec(12))

	assert.Equal(t, []int{1, 1}, slots)
}

func TestManager_Independent(t *testing.T) {
	primary := NewManager(config.SubtitlesConfig{}, 0, false)
	secondary := NewManager(config.SubtitlesConfig{}, 1, false)
	primary.Load([]Cue{cue(10, 15, "Manager1")})
	secondary.Load([]Cue{cue(0, 50, "Manager2"), cue(60, 70, "Other")})

	var primaryEvents, secondaryEvents int
	primary.Listen(func(Event) { primaryEvents++ })
	secondary.Listen(func(Event) { secondaryEvents++ })

	for _, at := range []time.Duration{sec(5), sec(12), sec(55)} {
		primary.SetCurrentTime(at)
		secondary.SetCurrentTime(at)
	}

	assert.Equal(t, "Manager1", primary.Cues()[0].Text)
	assert.Equal(t, "Manager2", secondary.Cues()[0].Text)
	assert.Equal(t, StateLast, primary.State())
	assert.Equal(t, StateAround, secondary.State())
	assert.Equal(t, 4, primaryEvents)
	assert.Equal(t, 4, secondaryEvents)

	primary.DeleteAfter(0)
	assert.Equal(t, 0, primary.Count())
	assert.Equal(t, 2, secondary.Count())
}

func TestManager_CurrentTime(t *testing.T) {
	m := newTestManager(abcCues()...)

	m.SetCurrentTime(sec(17))

	assert.Equal(t, sec(17), m.CurrentTime())
}

func TestManager_GetCurrent_ReturnsCopy(t *testing.T) {
	m := newTestManager(abcCues()...)
	m.SetCurrentTime(sec(12))

	c := m.GetCurrent()
	c.Text = "changed"

	assert.Equal(t, "A", m.GetCurrent().Text)
}

func TestManager_Language(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.SubtitlesConfig
		slot       int
		apply      bool
		wantSource language.Tag
		want       language.Tag
	}{
		{
			name:       "unknown falls back to default",
			cfg:        config.SubtitlesConfig{},
			wantSource: language.Und,
			want:       language.English,
		},
		{
			name:       "unknown falls back to configured fallback",
			cfg:        config.SubtitlesConfig{FallbackLanguage: "fr"},
			wantSource: language.Und,
			want:       language.French,
		},
		{
			name:       "invalid fallback uses default",
			cfg:        config.SubtitlesConfig{FallbackLanguage: "??"},
			wantSource: language.Und,
			want:       language.English,
		},
		{
			name:       "slot language applied",
			cfg:        config.SubtitlesConfig{Languages: []string{"en", "ja"}},
			slot:       1,
			apply:      true,
			wantSource: language.Japanese,
			want:       language.Japanese,
		},
		{
			name:       "slot language ignored without flag",
			cfg:        config.SubtitlesConfig{Languages: []string{"en", "ja"}},
			slot:       1,
			wantSource: language.Und,
			want:       language.English,
		},
		{
			name:       "slot without configured language",
			cfg:        config.SubtitlesConfig{Languages: []string{"de"}},
			slot:       1,
			apply:      true,
			wantSource: language.Und,
			want:       language.English,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.cfg, tt.slot, tt.apply)
			assert.Equal(t, tt.wantSource, m.LanguageSource())
			assert.Equal(t, tt.want, m.Language())
		})
	}
}

func TestManager_SetLanguageSource(t *testing.T) {
	m := newTestManager()
	var events []Event
	m.Listen(func(e Event) { events = append(events, e) })

	m.SetLanguageSource(language.German)
	m.SetLanguageSource(language.German)

	require.Len(t, events, 1)
	assert.Equal(t, EventLanguageChanged, events[0].Kind)
	assert.Equal(t, language.German, events[0].Language)
	assert.Equal(t, language.German, m.Language())

	m.SetLanguageSource(language.Und)
	assert.Equal(t, language.English, m.Language())
	assert.Equal(t, language.English, events[1].Language)
}

func TestManager_EnabledFlagDoesNotGate(t *testing.T) {
	disabled := false
	m := NewManager(config.SubtitlesConfig{Enabled: &disabled}, 0, false)
	m.Load(abcCues())

	m.SetCurrentTime(sec(12))

	assert.Equal(t, "A", text(m.GetCurrent()))
}
