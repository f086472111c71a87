package navigation

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsookram/gallery-desktop/internal/container"
	"github.com/rsookram/gallery-desktop/internal/testutil"
)

// twoContainers writes containers with 3 and 2 entries. Entry payloads are
// "<container><entry>", e.g. "a1".
func twoContainers(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	return []string{
		testutil.WriteContainer(t, dir, "a.ofc", []byte("a0"), []byte("a1"), []byte("a2")),
		testutil.WriteContainer(t, dir, "b.ofc", []byte("b0"), []byte("b1")),
	}
}

func openState(t *testing.T, paths []string, opts ...Option) *State {
	t.Helper()
	s, err := Open(paths, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNextImageCrossesContainers(t *testing.T) {
	t.Parallel()

	s := openState(t, twoContainers(t))
	assert.Equal(t, Position{0, 0}, s.Position())

	want := []Position{{0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 1}}
	for i, w := range want {
		require.NoError(t, s.NextImage())
		assert.Equal(t, w, s.Position(), "step %d", i+1)
	}
	assert.Equal(t, 2, s.EntryCount())
}

func TestPreviousImageCrossesContainers(t *testing.T) {
	t.Parallel()

	s := openState(t, twoContainers(t))
	for range 3 {
		require.NoError(t, s.NextImage())
	}
	require.NoError(t, s.NextImage())
	require.Equal(t, Position{1, 1}, s.Position())

	want := []Position{{1, 0}, {0, 2}, {0, 1}, {0, 0}, {0, 0}}
	for i, w := range want {
		require.NoError(t, s.PreviousImage())
		assert.Equal(t, w, s.Position(), "step %d", i+1)
	}
}

func TestCurrentEntryBytesFollowsPosition(t *testing.T) {
	t.Parallel()

	s := openState(t, twoContainers(t))
	var got []string
	for {
		data, err := s.CurrentEntryBytes()
		require.NoError(t, err)
		got = append(got, string(data))

		before := s.Position()
		require.NoError(t, s.NextImage())
		if s.Position() == before {
			break
		}
	}
	assert.Equal(t, []string{"a0", "a1", "a2", "b0", "b1"}, got)
}

func TestCurrentEntrySize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := []string{
		testutil.WriteContainer(t, dir, "a.ofc", []byte("x"), []byte("four")),
		testutil.WriteContainer(t, dir, "b.ofc", []byte{}),
	}
	s := openState(t, paths)

	var sizes []int64
	for range 3 {
		size, err := s.CurrentEntrySize()
		require.NoError(t, err)
		sizes = append(sizes, size)
		require.NoError(t, s.NextImage())
	}
	assert.Equal(t, []int64{1, 4, 0}, sizes)
}

func TestJumpToAdjacentContainer(t *testing.T) {
	t.Parallel()

	s := openState(t, twoContainers(t))
	require.NoError(t, s.NextImage())

	require.NoError(t, s.JumpToAdjacentContainer(Backward))
	assert.Equal(t, Position{0, 1}, s.Position(), "no neighbour behind the first container")

	require.NoError(t, s.NextContainer())
	assert.Equal(t, Position{1, 0}, s.Position())
	assert.Equal(t, s.Paths()[1], s.CurrentPath())

	require.NoError(t, s.NextImage())
	require.NoError(t, s.NextContainer())
	assert.Equal(t, Position{1, 1}, s.Position(), "no neighbour after the last container")

	// Jumping backward lands on the first entry, not the last.
	require.NoError(t, s.PreviousContainer())
	assert.Equal(t, Position{0, 0}, s.Position())
	assert.Equal(t, 3, s.EntryCount())
}

func TestOpenRequiresPaths(t *testing.T) {
	t.Parallel()

	s, err := Open(nil)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrNoPaths)
}

func TestOpenFailsOnBadFirstContainer(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := testutil.WriteFile(t, dir, "bad.ofc", []byte("nope nope"))
	_, err := Open([]string{bad})
	assert.ErrorIs(t, err, container.ErrFormat)

	empty := testutil.WriteContainer(t, dir, "empty.ofc")
	_, err = Open([]string{empty})
	assert.ErrorIs(t, err, container.ErrEmpty)
}

func TestFailedSwitchKeepsState(t *testing.T) {
	t.Parallel()

	paths := twoContainers(t)
	s := openState(t, paths)
	require.NoError(t, s.NextImage())
	require.NoError(t, s.NextImage())
	require.Equal(t, Position{0, 2}, s.Position())

	require.NoError(t, os.Remove(paths[1]))

	err := s.NextImage()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, Position{0, 2}, s.Position())
	assert.Equal(t, paths[0], s.CurrentPath())

	err = s.NextContainer()
	require.Error(t, err)
	assert.Equal(t, Position{0, 2}, s.Position())

	// The first container is still open and readable.
	data, err := s.CurrentEntryBytes()
	require.NoError(t, err)
	assert.Equal(t, "a2", string(data))
}

func TestFailedSwitchToEmptyContainer(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := []string{
		testutil.WriteContainer(t, dir, "empty.ofc"),
		testutil.WriteContainer(t, dir, "one.ofc", []byte("x")),
	}

	// Start on the second container, then widen the session to include the
	// empty one in front of it.
	s := openState(t, paths[1:])
	s.paths = paths
	s.containerIndex = 1

	err := s.PreviousImage()
	assert.ErrorIs(t, err, container.ErrEmpty)
	assert.Equal(t, Position{1, 0}, s.Position())

	err = s.PreviousContainer()
	assert.ErrorIs(t, err, container.ErrEmpty)
	assert.Equal(t, Position{1, 0}, s.Position())
}

type countingOpener struct {
	opened []string
	fail   map[string]error
}

func (o *countingOpener) open(path string) (*container.Container, error) {
	o.opened = append(o.opened, path)
	if err := o.fail[path]; err != nil {
		return nil, err
	}
	return container.Open(path)
}

func TestWithinContainerMovesDoNotReopen(t *testing.T) {
	t.Parallel()

	paths := twoContainers(t)
	opener := &countingOpener{}
	s := openState(t, paths, WithOpener(opener.open))

	require.NoError(t, s.NextImage())
	require.NoError(t, s.NextImage())
	require.NoError(t, s.PreviousImage())
	assert.Equal(t, []string{paths[0]}, opener.opened)

	require.NoError(t, s.NextImage())
	require.NoError(t, s.NextImage())
	assert.Equal(t, []string{paths[0], paths[1]}, opener.opened)
}

func TestOpenerErrorIsSurfaced(t *testing.T) {
	t.Parallel()

	paths := twoContainers(t)
	boom := errors.New("permission denied")
	opener := &countingOpener{fail: map[string]error{paths[0]: boom}}
	s := openState(t, paths[1:], WithOpener(opener.open))

	require.NoError(t, s.NextImage())
	assert.Equal(t, Position{0, 1}, s.Position())

	s.paths = paths
	s.containerIndex = 1
	err := s.PreviousContainer()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Position{1, 1}, s.Position())
}

func TestOpenCopiesPaths(t *testing.T) {
	t.Parallel()

	paths := twoContainers(t)
	s := openState(t, paths)
	paths[1] = "changed"
	assert.NotEqual(t, "changed", s.Paths()[1])
}

func TestDirectionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "forward", Forward.String())
	assert.Equal(t, "backward", Backward.String())
}
