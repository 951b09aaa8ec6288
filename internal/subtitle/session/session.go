// Package session groups the subtitle tracks of one playback session and
// drives them from a single clock.
package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/subtimeline/internal/config"
	"github.com/llehouerou/subtimeline/internal/subtitle"
)

const (
	PrimarySlot   = 0
	SecondarySlot = 1
)

// Session owns one independent subtitle.Manager per track slot.
type Session struct {
	cfg     config.SubtitlesConfig
	tracks  []*subtitle.Manager
	logger  *zap.Logger
	cancels []func()
}

// New creates a session with cfg.GetSubtitlesConfig().Max tracks.
// A nil logger disables logging.
func New(cfg *config.Config, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	subCfg := cfg.GetSubtitlesConfig()

	s := &Session{
		cfg:    subCfg,
		tracks: make([]*subtitle.Manager, subCfg.Max),
		logger: logger.Named("subtitles"),
	}
	for slot := range s.tracks {
		m := subtitle.NewManager(subCfg, slot, true)
		s.tracks[slot] = m
		s.cancels = append(s.cancels, m.Listen(s.logEvent))
	}

	s.logger.Debug("session created",
		zap.Int("tracks", len(s.tracks)),
		zap.Bool("enabled", subCfg.IsEnabled()))
	return s
}

// Enabled returns the configured display flag. Tracks keep working either way.
func (s *Session) Enabled() bool {
	return s.cfg.IsEnabled()
}

// Len returns the number of tracks.
func (s *Session) Len() int {
	return len(s.tracks)
}

// Track returns the manager for slot, or nil if slot is out of range.
func (s *Session) Track(slot int) *subtitle.Manager {
	if slot < 0 || slot >= len(s.tracks) {
		return nil
	}
	return s.tracks[slot]
}

// Primary returns the track in slot 0.
func (s *Session) Primary() *subtitle.Manager {
	return s.Track(PrimarySlot)
}

// Secondary returns the track in slot 1, or nil for a single-track session.
func (s *Session) Secondary() *subtitle.Manager {
	return s.Track(SecondarySlot)
}

// Tracks returns all tracks in slot order.
func (s *Session) Tracks() []*subtitle.Manager {
	result := make([]*subtitle.Manager, len(s.tracks))
	copy(result, s.tracks)
	return result
}

// SetCurrentTime feeds t to every track, in slot order, in one pass.
func (s *Session) SetCurrentTime(t time.Duration) {
	for _, m := range s.tracks {
		m.SetCurrentTime(t)
	}
}

// Close detaches the session's logging listeners.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}

func (s *Session) logEvent(e subtitle.Event) {
	switch e.Kind {
	case subtitle.EventStateChanged:
		s.logger.Debug("state changed",
			zap.Int("slot", e.Slot),
			zap.Stringer("from", e.PreviousState),
			zap.Stringer("to", e.State))
	case subtitle.EventIndexChanged:
		s.logger.Debug("current cue changed",
			zap.Int("slot", e.Slot),
			zap.Int("from", e.PreviousIndex),
			zap.Int("to", e.Index))
	case subtitle.EventCuesChanged:
		s.logger.Info("cues changed",
			zap.Int("slot", e.Slot),
			zap.Int("count", e.Count))
	case subtitle.EventLanguageChanged:
		s.logger.Info("language changed",
			zap.Int("slot", e.Slot),
			zap.Stringer("language", e.Language))
	}
}
