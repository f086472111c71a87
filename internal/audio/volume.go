package audio

func clampVolume(volume float64) float64 {
	return min(max(volume, 0.0), 1.0)
}

func (m *Manager) effectiveVolume() float64 {
	if m.muted {
		return 0.0
	}
	return m.volume
}

// SetVolume sets the sound effects volume (0.0 to 1.0)
func (m *Manager) SetVolume(volume float64) {
	m.volume = clampVolume(volume)
	m.applyVolume()
	m.log().Debug("Sound effect volume set", "volume", m.volume)
}

// Volume returns the configured volume, regardless of mute.
func (m *Manager) Volume() float64 {
	return m.volume
}

// SetMuted sets the mute state for all sounds
func (m *Manager) SetMuted(muted bool) {
	m.muted = muted
	m.applyVolume()
	m.log().Debug("Audio mute changed", "muted", muted)
}

// IsMuted returns the current mute state
func (m *Manager) IsMuted() bool {
	return m.muted
}

func (m *Manager) applyVolume() {
	v := m.effectiveVolume()
	for _, p := range m.players {
		if p != nil {
			p.SetVolume(v)
		}
	}
}
