package container

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Magic is the literal every container file starts with.
const Magic = "ofc\x00"

// Extension is the file extension used for container files.
const Extension = ".ofc"

const (
	prefixSize = 8
	offsetSize = 8
)

// Sentinel errors for container operations.
var (
	// ErrFormat is returned when the header is malformed or an offset is inconsistent.
	ErrFormat = errors.New("container: invalid format")

	// ErrEmpty is returned when a container holds no entries but one is required.
	ErrEmpty = errors.New("container: no entries")
)

// Option configures how a container is parsed.
type Option func(*Container)

// WithStrictValidation makes Open and Parse reject offset tables that are not
// non-decreasing or that point past the end of the source.
func WithStrictValidation() Option {
	return func(c *Container) {
		c.strict = true
	}
}

// WithLogger sets the logger used for container diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// Container provides random access to the entries of one archive file.
//
// Only the offsets table is held in memory. Entry payloads are read on demand.
// A Container is not safe for concurrent use; open one per goroutine.
type Container struct {
	path    string
	source  io.ReaderAt
	closer  io.Closer
	size    int64
	offsets []uint64
	strict  bool
	logger  *slog.Logger
}

func (c *Container) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// Open opens the container file at path and parses its header.
func Open(path string, opts ...Option) (*Container, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open container %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat container %s: %w", path, err)
	}

	c, err := Parse(file, info.Size(), opts...)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.path = path
	c.closer = file

	c.log().Debug("opened container", "path", path, "entries", c.Len())
	return c, nil
}

// Parse reads the header of a container from r, whose total length is size.
//
// The returned Container does not own r; Close is a no-op unless the container
// was created by Open.
func Parse(r io.ReaderAt, size int64, opts ...Option) (*Container, error) {
	c := &Container{
		source: r,
		size:   size,
	}
	for _, opt := range opts {
		opt(c)
	}

	var prefix [prefixSize]byte
	if err := readFull(r, 0, prefix[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: short header: %w", ErrFormat, err)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(prefix[:4]) != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, prefix[:4])
	}

	count := binary.LittleEndian.Uint32(prefix[4:])
	tableSize := int64(count) * offsetSize
	if prefixSize+tableSize > size {
		return nil, fmt.Errorf("%w: offsets table for %d entries exceeds file size %d", ErrFormat, count, size)
	}

	table := make([]byte, tableSize)
	if err := readFull(r, prefixSize, table); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: short offsets table: %w", ErrFormat, err)
		}
		return nil, fmt.Errorf("failed to read offsets table: %w", err)
	}

	c.offsets = make([]uint64, count)
	for i := range c.offsets {
		c.offsets[i] = binary.LittleEndian.Uint64(table[i*offsetSize:])
	}

	if c.strict {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Validate checks that the offsets table is non-decreasing and that the last
// entry ends within the source.
func (c *Container) Validate() error {
	var prev uint64
	for i, end := range c.offsets {
		if end < prev {
			return fmt.Errorf("%w: offset %d (%d) is before offset %d (%d)", ErrFormat, i, end, i-1, prev)
		}
		prev = end
	}

	if c.size < c.HeaderSize() {
		return fmt.Errorf("%w: header is larger than the file", ErrFormat)
	}
	payload := uint64(c.size - c.HeaderSize())
	if prev > payload {
		return fmt.Errorf("%w: payload ends at %d but only %d bytes follow the header", ErrFormat, prev, payload)
	}
	return nil
}

// Len returns the number of entries in the container.
func (c *Container) Len() int {
	return len(c.offsets)
}

// HeaderSize returns the size of the header in bytes, including the offsets table.
func (c *Container) HeaderSize() int64 {
	return prefixSize + int64(len(c.offsets))*offsetSize
}

// Path returns the file the container was opened from, or "" for Parse.
func (c *Container) Path() string {
	return c.path
}

// bounds returns the payload-relative range of entry i.
func (c *Container) bounds(i int) (start, end uint64) {
	if i < 0 || i >= len(c.offsets) {
		panic(fmt.Sprintf("container: entry index %d out of range [0,%d)", i, len(c.offsets)))
	}
	if i > 0 {
		start = c.offsets[i-1]
	}
	return start, c.offsets[i]
}

// EntrySize returns the length in bytes of entry i. It panics if i is out of range.
func (c *Container) EntrySize(i int) (int64, error) {
	start, end := c.bounds(i)
	if end < start {
		return 0, fmt.Errorf("%w: entry %d ends at %d before it starts at %d", ErrFormat, i, end, start)
	}
	if end-start > uint64(max(c.size, 0)) {
		return 0, fmt.Errorf("%w: entry %d is larger than the file", ErrFormat, i)
	}
	return int64(end - start), nil
}

// ReadAt reads the full payload of entry i.
//
// i must be in [0, Len()); violating that is a programming error and panics.
func (c *Container) ReadAt(i int) ([]byte, error) {
	start, end := c.bounds(i)
	if end < start {
		return nil, fmt.Errorf("%w: entry %d ends at %d before it starts at %d", ErrFormat, i, end, start)
	}

	// Compared against the room left in the file so the sums cannot overflow.
	length := end - start
	size := uint64(max(c.size, 0))
	header := uint64(c.HeaderSize())
	if header > size || start > size-header || length > size-header-start {
		return nil, fmt.Errorf("failed to read entry %d: %w", i, io.ErrUnexpectedEOF)
	}

	buf := make([]byte, length)
	if err := readFull(c.source, int64(header+start), buf); err != nil {
		return nil, fmt.Errorf("failed to read entry %d: %w", i, err)
	}
	return buf, nil
}

// readFull fills buf from r starting at off. Any short read is reported as
// io.ErrUnexpectedEOF.
func readFull(r io.ReaderAt, off int64, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	_, err := io.ReadFull(io.NewSectionReader(r, off, int64(len(buf))), buf)
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Close releases the underlying file, if the container owns one.
func (c *Container) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}

// ReadCover opens the container at path, reads its first entry and closes it.
func ReadCover(path string, opts ...Option) ([]byte, error) {
	c, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	if c.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	data, err := c.ReadAt(0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}
