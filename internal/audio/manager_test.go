package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSoundsSkipsMissingFiles(t *testing.T) {
	t.Parallel()

	m := NewManager()
	n, err := m.LoadSounds(t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = m.LoadSounds("")
	require.NoError(t, err)
	assert.Zero(t, n)

	for id := range SndSize {
		assert.False(t, m.loaded(id))
	}
}

func TestLoadSoundsRequiresContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.ogg"), []byte("OggS"), 0644))

	n, err := NewManager().LoadSounds(dir)
	assert.ErrorIs(t, err, ErrNoContext)
	assert.Zero(t, n)
}

func TestPlayWithoutSoundsIsNoop(t *testing.T) {
	t.Parallel()

	m := NewManager()
	assert.NotPanics(t, func() {
		m.Play(SndEdge)
		m.Play(Sound(-1))
		m.Play(SndSize)
	})
}

func TestVolumeAndMute(t *testing.T) {
	t.Parallel()

	m := NewManager(WithVolume(2.5), WithMuted(true))
	assert.Equal(t, 1.0, m.Volume())
	assert.True(t, m.IsMuted())
	assert.Equal(t, 0.0, m.effectiveVolume())

	m.SetMuted(false)
	m.SetVolume(-1)
	assert.Equal(t, 0.0, m.Volume())

	m.SetVolume(0.4)
	assert.Equal(t, 0.4, m.effectiveVolume())
}

func TestSoundString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "select.ogg", SndSelect.String())
	assert.Equal(t, "open.ogg", SndOpen.String())
	assert.Equal(t, "unknown", SndSize.String())
}
