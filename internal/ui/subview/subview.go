// Package subview renders the subtitle tracks of a session and follows a
// simulated playback clock.
package subview

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/subtimeline/internal/keymap"
	"github.com/llehouerou/subtimeline/internal/subtitle"
	"github.com/llehouerou/subtimeline/internal/subtitle/session"
	"github.com/llehouerou/subtimeline/internal/ui/styles"
)

const (
	// FrameInterval is the clock tick, roughly one rendered frame.
	FrameInterval = time.Second / 30

	seekStep    = 5 * time.Second
	contextCues = 2 // cues shown on each side of the anchor
)

// TickMsg advances the clock by one frame.
type TickMsg time.Time

// Model is the bubbletea model driving a session.
type Model struct {
	session  *session.Session
	keys     *keymap.Resolver
	position time.Duration
	duration time.Duration
	paused   bool
	width    int
	height   int
}

// New creates a model for s. The clock starts at zero and stops at the
// end of the longest track.
func New(s *session.Session) *Model {
	m := &Model{session: s, keys: keymap.NewResolver(keymap.Default)}
	for _, track := range s.Tracks() {
		for _, c := range track.Cues() {
			m.duration = max(m.duration, c.End)
		}
	}
	s.SetCurrentTime(0)
	return m
}

// Position returns the current clock value.
func (m *Model) Position() time.Duration {
	return m.position
}

// Paused returns true if the clock is stopped.
func (m *Model) Paused() bool {
	return m.paused
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if !m.paused {
			m.seekTo(m.position + FrameInterval)
			if m.position >= m.duration {
				m.paused = true
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionPlayPause:
		m.paused = !m.paused
	case keymap.ActionSeekForward:
		m.seekTo(m.position + seekStep)
	case keymap.ActionSeekBack:
		m.seekTo(m.position - seekStep)
	case keymap.ActionPrevCue:
		if c := m.session.Primary().GetPrev(); c != nil {
			m.seekTo(c.Start)
		}
	case keymap.ActionNextCue:
		if c := m.session.Primary().GetNext(); c != nil {
			m.seekTo(c.Start)
		}
	case keymap.ActionRestart:
		m.seekTo(0)
	}
	return m, nil
}

// seekTo moves the clock and feeds the new time to every track.
func (m *Model) seekTo(t time.Duration) {
	m.position = max(0, min(t, m.duration))
	m.session.SetCurrentTime(m.position)
}

// View implements tea.Model.
func (m *Model) View() string {
	st := styles.T().S()
	var panels []string
	for _, track := range m.session.Tracks() {
		panels = append(panels, st.Panel.Render(m.renderTrack(track)))
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(panels, "\n"))
	sb.WriteString("\n")
	sb.WriteString(st.Muted.Render(m.buildFooter()))
	return sb.String()
}

func (m *Model) renderTrack(track *subtitle.Manager) string {
	st := styles.T().S()
	var sb strings.Builder
	sb.WriteString(st.Title.Render(trackTitle(track)))
	sb.WriteString("  ")
	sb.WriteString(st.State.Render(track.State().String()))
	sb.WriteString("\n")

	if !m.session.Enabled() {
		sb.WriteString(st.Subtle.Render("  (subtitles hidden)"))
		return sb.String()
	}

	cues := track.Cues()
	if len(cues) == 0 {
		sb.WriteString(st.Subtle.Render("  (no subtitles)"))
		return sb.String()
	}

	textWidth := m.textWidth()
	current := track.CurrentIndex()
	from, to := visibleRange(track.Anchor(), len(cues))
	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		text := cueLine(cues[i].Text, textWidth)
		if i == current {
			lines = append(lines, st.Showing.Render("▶ "+text))
		} else {
			lines = append(lines, st.Subtle.Render("  "+text))
		}
	}
	sb.WriteString(strings.Join(lines, "\n"))
	return sb.String()
}

func trackTitle(track *subtitle.Manager) string {
	var name string
	switch track.Slot() {
	case session.PrimarySlot:
		name = "Primary"
	case session.SecondarySlot:
		name = "Secondary"
	default:
		name = fmt.Sprintf("Track %d", track.Slot()+1)
	}
	return name + " · " + subtitle.LanguageName(track.Language())
}

// visibleRange returns the cue window around anchor. Before the first cue
// the window starts at the head of the list.
func visibleRange(anchor, count int) (int, int) {
	center := max(anchor, 0)
	from := max(center-contextCues, 0)
	to := min(center+contextCues+1, count)
	return from, to
}

func (m *Model) textWidth() int {
	if m.width <= 0 {
		return 0
	}
	// Border, padding and the "▶ " prefix
	return max(m.width-8, 10)
}

func (m *Model) buildFooter() string {
	status := "playing"
	if m.paused {
		status = "paused"
	}
	parts := []string{
		formatDuration(m.position) + " / " + formatDuration(m.duration),
		status,
	}
	parts = append(parts, m.keys.Help()...)
	return strings.Join(parts, " · ")
}
