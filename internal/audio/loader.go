package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
)

// ErrNoContext is returned when sounds are loaded before Init.
var ErrNoContext = errors.New("audio: context not initialized")

// LoadSounds loads every known sound effect from dir and returns how many were
// loaded. Missing files are logged and skipped; an empty dir loads nothing.
func (m *Manager) LoadSounds(dir string) (int, error) {
	if dir == "" {
		return 0, nil
	}

	loaded := 0
	for id := range SndSize {
		path := filepath.Join(dir, soundFiles[id])
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			m.log().Info("Sound effect not found, skipping", "path", path)
			continue
		}
		if err != nil {
			return loaded, fmt.Errorf("failed to read sound effect %s: %w", path, err)
		}

		if err := m.loadSound(id, data); err != nil {
			return loaded, fmt.Errorf("failed to load sound effect %s: %w", path, err)
		}
		loaded++
		m.log().Debug("Loaded sound effect", "sound", id, "path", path)
	}
	return loaded, nil
}

func (m *Manager) loadSound(id Sound, data []byte) error {
	if m.context == nil {
		return ErrNoContext
	}

	player, err := m.createPlayerFromData(data)
	if err != nil {
		return err
	}

	if m.players[id] != nil {
		m.players[id].Close()
	}
	m.players[id] = player
	m.players[id].SetVolume(m.effectiveVolume())
	return nil
}

// createPlayerFromData creates an audio player from Ogg Vorbis data
func (m *Manager) createPlayerFromData(data []byte) (*audio.Player, error) {
	stream, err := vorbis.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode OGG file: %w", err)
	}

	player, err := m.context.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create OGG player: %w", err)
	}
	return player, nil
}
