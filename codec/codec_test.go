package codec

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 0x80, A: 0xFF})
		}
	}
	return img
}

func TestLookup(t *testing.T) {
	for name, want := range map[string]string{
		"png": "png", "PNG": "png",
		"jpg": "jpeg", "JPEG": "jpeg",
		"gif": "gif",
		"bmp": "bmp",
		"tif": "tiff", "Tiff": "tiff",
	} {
		f, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, f.Name, name)
	}

	for _, name := range []string{"", "webp", "b.png", "final.png", "xyz"} {
		_, err := Lookup(name)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
	}
}

func TestLosslessRoundTrip(t *testing.T) {
	src := gradient(16, 9)
	for _, name := range []string{"png", "bmp", "tiff"} {
		t.Run(name, func(t *testing.T) {
			f, err := Lookup(name)
			require.NoError(t, err)
			require.True(t, f.Lossless)

			var buf bytes.Buffer
			require.NoError(t, f.Encode(&buf, src, nil))
			img, detected, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, f.Name, detected)
			require.Equal(t, src.Bounds(), img.Bounds())
			for x := 0; x < 16; x++ {
				for y := 0; y < 9; y++ {
					assert.Equal(t, src.NRGBAAt(x, y), color.NRGBAModel.Convert(img.At(x, y)), "pixel (%d,%d)", x, y)
				}
			}
		})
	}
}

func TestLossyFormats(t *testing.T) {
	src := gradient(16, 9)
	opts := &Options{JPEGQuality: 90, GIFColors: 64}
	for _, name := range []string{"jpg", "gif"} {
		t.Run(name, func(t *testing.T) {
			f, err := Lookup(name)
			require.NoError(t, err)
			assert.False(t, f.Lossless)

			var buf bytes.Buffer
			require.NoError(t, f.Encode(&buf, src, opts))
			img, detected, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, f.Name, detected)
			assert.Equal(t, src.Bounds(), img.Bounds())
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, gradient(2, 2), "webp")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Zero(t, buf.Len())
}

func TestDecodeGarbage(t *testing.T) {
	_, _, err := Decode(bytes.NewReader([]byte("definitely not an image")))
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestMimeTypes(t *testing.T) {
	f, err := Lookup("jpg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", f.MimeType)
	f, err = Lookup("png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.MimeType)
}
