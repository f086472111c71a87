// Package testutil builds container files and encoded images for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// ContainerBytes encodes entries in the container layout: magic, entry count,
// cumulative end offsets, then the concatenated payloads.
func ContainerBytes(entries ...[]byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("ofc\x00")
	binary.Write(&buf, binary.LittleEndian, uint32(len(entries)))

	var end uint64
	for _, e := range entries {
		end += uint64(len(e))
		binary.Write(&buf, binary.LittleEndian, end)
	}
	for _, e := range entries {
		buf.Write(e)
	}
	return buf.Bytes()
}

// WriteContainer writes a container holding entries to dir/name and returns its path.
func WriteContainer(tb testing.TB, dir, name string, entries ...[]byte) string {
	tb.Helper()
	return WriteFile(tb, dir, name, ContainerBytes(entries...))
}

// WriteFile writes raw data to dir/name and returns its path.
func WriteFile(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Gradient returns a w x h test image.
func Gradient(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 255 / max(w, 1)), G: uint8(y * 255 / max(h, 1)), B: 128, A: 255})
		}
	}
	return img
}

// PNG returns a PNG-encoded w x h image.
func PNG(tb testing.TB, w, h int) []byte {
	tb.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, Gradient(w, h)); err != nil {
		tb.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// JPEG returns a JPEG-encoded w x h image.
func JPEG(tb testing.TB, w, h int) []byte {
	tb.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Gradient(w, h), nil); err != nil {
		tb.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}
