// Package navigation tracks the current image across an ordered list of
// containers.
//
// A State always holds exactly one open container, the one at the current
// container index. Moving to another container opens the target first and
// only then swaps it in, so a failed open leaves the State untouched.
package navigation

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rsookram/gallery-desktop/internal/container"
)

// ErrNoPaths is returned by Open when no container paths are given.
var ErrNoPaths = errors.New("navigation: no container paths")

// Direction selects the neighbouring container for a jump.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// String returns "forward" or "backward".
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Position identifies an image by container index and entry index.
type Position struct {
	Container int
	Entry     int
}

// Opener opens the container at path.
type Opener func(path string) (*container.Container, error)

// Option configures a State.
type Option func(*State)

// WithOpener replaces the function used to open containers.
func WithOpener(open Opener) Option {
	return func(s *State) {
		s.open = open
	}
}

// WithContainerOptions passes options to container.Open for every container
// the State opens. It has no effect when WithOpener is also used.
func WithContainerOptions(opts ...container.Option) Option {
	return func(s *State) {
		s.containerOpts = opts
	}
}

// WithLogger sets the logger for navigation events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *State) {
		s.logger = logger
	}
}

// State is the two-level navigation state machine. It is not safe for
// concurrent use.
type State struct {
	paths          []string
	containerIndex int
	current        *container.Container
	entryIndex     int

	open          Opener
	containerOpts []container.Option
	logger        *slog.Logger
}

func (s *State) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

// Open starts a session over paths, positioned at the first entry of the
// first container. paths must not be empty.
func Open(paths []string, opts ...Option) (*State, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	s := &State{
		paths: append([]string(nil), paths...),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.open == nil {
		containerOpts := s.containerOpts
		s.open = func(path string) (*container.Container, error) {
			return container.Open(path, containerOpts...)
		}
	}

	c, err := s.openAt(0)
	if err != nil {
		return nil, err
	}
	s.current = c
	return s, nil
}

// openAt opens paths[index] and rejects containers without entries.
func (s *State) openAt(index int) (*container.Container, error) {
	path := s.paths[index]
	c, err := s.open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open container %d: %w", index, err)
	}
	if c.Len() == 0 {
		c.Close()
		return nil, fmt.Errorf("failed to open container %d (%s): %w", index, path, container.ErrEmpty)
	}
	return c, nil
}

// switchTo makes paths[index] the current container, with the entry index
// chosen by entry from the new container's length. On error nothing changes.
func (s *State) switchTo(index int, entry func(length int) int) error {
	c, err := s.openAt(index)
	if err != nil {
		return err
	}

	prev := s.current
	s.current = c
	s.containerIndex = index
	s.entryIndex = entry(c.Len())

	if err := prev.Close(); err != nil {
		s.log().Warn("Failed to close container", "path", prev.Path(), "error", err)
	}
	s.log().Debug("switched container", "index", index, "path", s.paths[index], "entries", c.Len())
	return nil
}

func first(int) int { return 0 }

func last(length int) int { return length - 1 }

// NextImage advances one entry, crossing into the next container at the end
// of the current one. At the last entry of the last container it does nothing.
func (s *State) NextImage() error {
	if s.entryIndex < s.current.Len()-1 {
		s.entryIndex++
		return nil
	}
	if s.containerIndex < len(s.paths)-1 {
		return s.switchTo(s.containerIndex+1, first)
	}
	return nil
}

// PreviousImage steps back one entry, crossing into the last entry of the
// previous container at the start of the current one. At the first entry of
// the first container it does nothing.
func (s *State) PreviousImage() error {
	if s.entryIndex > 0 {
		s.entryIndex--
		return nil
	}
	if s.containerIndex > 0 {
		return s.switchTo(s.containerIndex-1, last)
	}
	return nil
}

// JumpToAdjacentContainer opens the neighbouring container in dir and moves
// to its first entry, whichever direction was taken. It does nothing when
// there is no neighbour in that direction.
func (s *State) JumpToAdjacentContainer(dir Direction) error {
	target := s.containerIndex + int(dir)
	if target < 0 || target >= len(s.paths) {
		return nil
	}
	return s.switchTo(target, first)
}

// NextContainer jumps forward one container.
func (s *State) NextContainer() error {
	return s.JumpToAdjacentContainer(Forward)
}

// PreviousContainer jumps backward one container.
func (s *State) PreviousContainer() error {
	return s.JumpToAdjacentContainer(Backward)
}

// CurrentEntryBytes reads the payload of the current entry.
func (s *State) CurrentEntryBytes() ([]byte, error) {
	return s.current.ReadAt(s.entryIndex)
}

// CurrentEntrySize returns the encoded size of the current entry in bytes.
func (s *State) CurrentEntrySize() (int64, error) {
	return s.current.EntrySize(s.entryIndex)
}

// Position returns the current container and entry indices.
func (s *State) Position() Position {
	return Position{Container: s.containerIndex, Entry: s.entryIndex}
}

// EntryCount returns the number of entries in the current container.
func (s *State) EntryCount() int {
	return s.current.Len()
}

// CurrentPath returns the path of the current container.
func (s *State) CurrentPath() string {
	return s.paths[s.containerIndex]
}

// Paths returns a copy of the session's container paths.
func (s *State) Paths() []string {
	return append([]string(nil), s.paths...)
}

// Close releases the current container.
func (s *State) Close() error {
	return s.current.Close()
}
