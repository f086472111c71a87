package audio

// Play restarts the sound from the beginning. Unloaded sounds and muted
// managers play nothing.
func (m *Manager) Play(id Sound) {
	if m.muted || !m.loaded(id) {
		return
	}

	player := m.players[id]
	player.SetVolume(m.volume)
	if err := player.SetPosition(0); err != nil {
		m.log().Warn("Failed to rewind sound effect", "sound", id, "error", err)
		return
	}
	player.Play()
}

// loaded reports whether the sound has a player.
func (m *Manager) loaded(id Sound) bool {
	return id >= 0 && id < SndSize && m.players[id] != nil
}
