package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/webp"
)

// Kind identifies an encoded image format.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPEG
	KindPNG
	KindWebP
)

// String returns the conventional name of the format.
func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindPNG:
		return "png"
	case KindWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// Sentinel errors for decoding.
var (
	// ErrUnsupportedFormat is returned when the bytes match no known signature.
	ErrUnsupportedFormat = errors.New("codec: unsupported format")

	// ErrCorrupt is returned when the bytes carry a known signature but fail to decode.
	ErrCorrupt = errors.New("codec: corrupt image")
)

var (
	jpegSignature = []byte{0xFF, 0xD8, 0xFF}
	pngSignature  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	riffSignature = []byte("RIFF")
	webpSignature = []byte("WEBPVP")
)

// webpHeaderLen is the length of "RIFF" + 4 size bytes + "WEBPVP".
const webpHeaderLen = 14

// Sniff classifies data by its leading bytes. JPEG is checked first, then PNG,
// then WebP.
func Sniff(data []byte) (Kind, error) {
	switch {
	case bytes.HasPrefix(data, jpegSignature):
		return KindJPEG, nil
	case bytes.HasPrefix(data, pngSignature):
		return KindPNG, nil
	case len(data) > webpHeaderLen &&
		bytes.HasPrefix(data, riffSignature) &&
		bytes.Equal(data[8:webpHeaderLen], webpSignature):
		return KindWebP, nil
	}
	return KindUnknown, ErrUnsupportedFormat
}

// Image is a decoded picture together with its intrinsic size.
type Image struct {
	Pixels image.Image
	Width  int
	Height int
	Kind   Kind
}

// Decoder turns encoded bytes into an Image.
type Decoder interface {
	Decode(data []byte) (*Image, error)
}

// Standard decodes JPEG, PNG and WebP with the Go image codecs.
type Standard struct{}

// Decode sniffs data and decodes it with the matching codec.
func (Standard) Decode(data []byte) (*Image, error) {
	kind, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	var img image.Image
	r := bytes.NewReader(data)
	switch kind {
	case KindJPEG:
		img, err = jpeg.Decode(r)
	case KindPNG:
		img, err = png.Decode(r)
	case KindWebP:
		img, err = webp.Decode(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, kind, err)
	}

	b := img.Bounds()
	return &Image{
		Pixels: img,
		Width:  b.Dx(),
		Height: b.Dy(),
		Kind:   kind,
	}, nil
}
