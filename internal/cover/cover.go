// Package cover decodes the first entry of several containers in parallel, one
// goroutine per grid cell, and joins before returning.
package cover

import (
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/rsookram/gallery-desktop/internal/codec"
	"github.com/rsookram/gallery-desktop/internal/container"
)

// Cover is the result for one cell. Exactly one of Image and Err is set.
type Cover struct {
	Path  string
	Image *codec.Image
	Err   error
}

// ReadFunc returns the encoded cover bytes of the container at path.
type ReadFunc func(path string) ([]byte, error)

// Option configures a Decoder.
type Option func(*Decoder)

// WithLimit caps the number of covers decoded at once. Values < 1 mean one
// goroutine per requested cover.
func WithLimit(n int) Option {
	return func(d *Decoder) {
		d.limit = n
	}
}

// WithAbortOnError makes DecodePage fail as a whole on the first cell error
// instead of reporting failures per cell.
func WithAbortOnError() Option {
	return func(d *Decoder) {
		d.abortOnError = true
	}
}

// WithReader replaces how cover bytes are read.
func WithReader(read ReadFunc) Option {
	return func(d *Decoder) {
		d.read = read
	}
}

// WithContainerOptions passes options to container.ReadCover. It has no effect
// when WithReader is also used.
func WithContainerOptions(opts ...container.Option) Option {
	return func(d *Decoder) {
		d.containerOpts = opts
	}
}

// WithLogger sets the logger for decode failures.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// Decoder decodes page covers.
type Decoder struct {
	codec         codec.Decoder
	read          ReadFunc
	containerOpts []container.Option
	limit         int
	abortOnError  bool
	logger        *slog.Logger
}

func (d *Decoder) log() *slog.Logger {
	if d.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.logger
}

// NewDecoder creates a Decoder that decodes with c.
func NewDecoder(c codec.Decoder, opts ...Option) *Decoder {
	d := &Decoder{codec: c}
	for _, opt := range opts {
		opt(d)
	}
	if d.read == nil {
		containerOpts := d.containerOpts
		d.read = func(path string) ([]byte, error) {
			return container.ReadCover(path, containerOpts...)
		}
	}
	return d
}

// DecodePage decodes the cover of every path concurrently and blocks until all
// of them are done. The result is index-aligned with paths.
//
// By default a failing cell only sets that cell's Err and the error return is
// nil. With WithAbortOnError the first failure is returned and the covers must
// not be drawn. There is no cancellation: a started batch always runs to
// completion.
func (d *Decoder) DecodePage(paths []string) ([]Cover, error) {
	covers := make([]Cover, len(paths))
	if len(paths) == 0 {
		return covers, nil
	}

	var g errgroup.Group
	limit := d.limit
	if limit < 1 {
		limit = len(paths)
	}
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			covers[i] = d.decodeOne(path)
			if d.abortOnError && covers[i].Err != nil {
				return covers[i].Err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return covers, fmt.Errorf("failed to decode page covers: %w", err)
	}

	for _, c := range covers {
		if c.Err != nil {
			d.log().Warn("Failed to decode cover", "path", c.Path, "error", c.Err)
		}
	}
	return covers, nil
}

func (d *Decoder) decodeOne(path string) Cover {
	data, err := d.read(path)
	if err != nil {
		return Cover{Path: path, Err: err}
	}

	img, err := d.codec.Decode(data)
	if err != nil {
		return Cover{Path: path, Err: fmt.Errorf("%s: %w", path, err)}
	}
	return Cover{Path: path, Image: img}
}
