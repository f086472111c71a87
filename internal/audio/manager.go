package audio

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for audio diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithVolume sets the initial sound effect volume (0.0 to 1.0).
func WithVolume(volume float64) Option {
	return func(m *Manager) {
		m.volume = clampVolume(volume)
	}
}

// WithMuted starts the manager muted.
func WithMuted(muted bool) Option {
	return func(m *Manager) {
		m.muted = muted
	}
}

// Manager plays the feedback sound effects.
//
// Sounds that were never loaded are silently skipped by Play, so a missing
// sounds directory leaves the viewer fully usable.
type Manager struct {
	context *audio.Context
	players [SndSize]*audio.Player

	volume float64
	muted  bool

	logger *slog.Logger
}

func (m *Manager) log() *slog.Logger {
	if m.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return m.logger
}

// NewManager creates a new audio manager
func NewManager(opts ...Option) *Manager {
	m := &Manager{volume: 1.0}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init creates the audio context. It must be called at most once per process.
func (m *Manager) Init() {
	if m.context != nil {
		return
	}
	m.context = audio.NewContext(SampleRate)
	m.log().Debug("Audio manager initialized", "sample_rate", SampleRate)
}

// Cleanup closes all players.
func (m *Manager) Cleanup() {
	for i := range m.players {
		if m.players[i] != nil {
			m.players[i].Close()
			m.players[i] = nil
		}
	}
	m.log().Debug("Audio manager cleaned up")
}
