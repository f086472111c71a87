package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsookram/gallery-desktop/internal/testutil"
)

func TestResolvePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lib := filepath.Join(dir, "library")
	require.NoError(t, os.Mkdir(lib, 0755))
	require.NoError(t, os.Mkdir(filepath.Join(lib, "nested.ofc"), 0755))

	c := testutil.WriteContainer(t, lib, "c.ofc")
	a := testutil.WriteContainer(t, lib, "a.OFC")
	testutil.WriteFile(t, lib, "notes.txt", []byte("skip me"))
	b := testutil.WriteContainer(t, lib, "b.ofc")
	single := testutil.WriteContainer(t, dir, "z.ofc")
	other := testutil.WriteFile(t, dir, "explicit.bin", []byte("kept"))

	got, err := NewManager().ResolvePaths([]string{single, lib, other})
	require.NoError(t, err)
	assert.Equal(t, []string{single, a, b, c, other}, got)
}

func TestResolvePathsErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := NewManager().ResolvePaths(nil)
	assert.ErrorIs(t, err, ErrNoContainers)

	_, err = NewManager().ResolvePaths([]string{dir})
	assert.ErrorIs(t, err, ErrNoContainers, "directory without containers")

	_, err = NewManager().ResolvePaths([]string{filepath.Join(dir, "missing.ofc")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestListDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	upper := testutil.WriteContainer(t, dir, "B.OFC")
	lower := testutil.WriteContainer(t, dir, "a.ofc")
	testutil.WriteContainer(t, dir, "c.ofc.bak")

	got, err := NewManager().ListDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{upper, lower}, got, "sorted by byte order")

	_, err = NewManager().ListDirectory(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
