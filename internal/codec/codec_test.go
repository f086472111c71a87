package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsookram/gallery-desktop/internal/testutil"
)

func TestSniff(t *testing.T) {
	t.Parallel()

	webp := append([]byte("RIFF\x10\x00\x00\x00WEBPVP8 "), make([]byte, 8)...)

	tests := []struct {
		name    string
		data    []byte
		want    Kind
		wantErr error
	}{
		{name: "jpeg", data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, want: KindJPEG},
		{name: "png", data: []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00}, want: KindPNG},
		{name: "webp", data: webp, want: KindWebP},
		{name: "webp header without payload", data: []byte("RIFF\x00\x00\x00\x00WEBPVP"), wantErr: ErrUnsupportedFormat},
		{name: "seven byte riff", data: []byte("RIFF\x00\x00\x00"), wantErr: ErrUnsupportedFormat},
		{name: "riff but not webp", data: []byte("RIFF\x00\x00\x00\x00WAVEfmt \x00"), wantErr: ErrUnsupportedFormat},
		{name: "truncated png signature", data: []byte{0x89, 'P', 'N', 'G'}, wantErr: ErrUnsupportedFormat},
		{name: "gif", data: []byte("GIF89a"), wantErr: ErrUnsupportedFormat},
		{name: "empty", data: nil, wantErr: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Sniff(tt.data)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, KindUnknown, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStandardDecode(t *testing.T) {
	t.Parallel()

	t.Run("png", func(t *testing.T) {
		t.Parallel()

		img, err := Standard{}.Decode(testutil.PNG(t, 30, 20))
		require.NoError(t, err)
		assert.Equal(t, KindPNG, img.Kind)
		assert.Equal(t, 30, img.Width)
		assert.Equal(t, 20, img.Height)
		assert.NotNil(t, img.Pixels)
	})

	t.Run("jpeg", func(t *testing.T) {
		t.Parallel()

		img, err := Standard{}.Decode(testutil.JPEG(t, 16, 40))
		require.NoError(t, err)
		assert.Equal(t, KindJPEG, img.Kind)
		assert.Equal(t, 16, img.Width)
		assert.Equal(t, 40, img.Height)
	})

	t.Run("corrupt png", func(t *testing.T) {
		t.Parallel()

		data := testutil.PNG(t, 8, 8)[:20]
		_, err := Standard{}.Decode(data)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("unsupported", func(t *testing.T) {
		t.Parallel()

		_, err := Standard{}.Decode([]byte("plain text"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "jpeg", KindJPEG.String())
	assert.Equal(t, "png", KindPNG.String())
	assert.Equal(t, "webp", KindWebP.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
