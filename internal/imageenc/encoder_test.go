package imageenc

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 80, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeResult(t *testing.T, out Image) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(out.Data)
	require.NoError(t, err)
	img, err := imaging.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestEncodeDownscalesWideImages(t *testing.T) {
	enc := NewEncoder(100, 70)

	out, err := enc.Encode(bytes.NewReader(pngBytes(t, 400, 200)))
	require.NoError(t, err)

	assert.Equal(t, MIMETypeJPEG, out.MIMEType)
	img := decodeResult(t, out)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestEncodeKeepsNarrowImages(t *testing.T) {
	enc := NewEncoder(1080, 70)

	out, err := enc.Encode(bytes.NewReader(pngBytes(t, 64, 32)))
	require.NoError(t, err)

	img := decodeResult(t, out)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestEncodeRejectsNonImages(t *testing.T) {
	enc := NewEncoder(1080, 70)

	_, err := enc.Encode(strings.NewReader("definitely not a picture"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = enc.Encode(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUnreadableImage)
}

func TestFromBase64(t *testing.T) {
	enc := NewEncoder(1080, 70)
	payload := base64.StdEncoding.EncodeToString(pngBytes(t, 8, 8))

	t.Run("png without declared type is labelled png", func(t *testing.T) {
		out, err := enc.FromBase64(payload, "")
		require.NoError(t, err)
		assert.Equal(t, payload, out.Data)
		assert.Equal(t, "image/png", out.MIMEType)
	})

	t.Run("declared type contradicted by the bytes", func(t *testing.T) {
		for _, declared := range []string{"image/gif", "image/jpeg"} {
			out, err := enc.FromBase64(payload, declared)
			require.NoError(t, err)
			assert.Equal(t, "image/png", out.MIMEType, declared)
		}
	})

	t.Run("jpeg bytes are labelled jpeg", func(t *testing.T) {
		jpeg, err := enc.Encode(bytes.NewReader(pngBytes(t, 8, 8)))
		require.NoError(t, err)
		out, err := enc.FromBase64(jpeg.Data, "image/png")
		require.NoError(t, err)
		assert.Equal(t, MIMETypeJPEG, out.MIMEType)
	})

	t.Run("data url prefix is stripped", func(t *testing.T) {
		out, err := enc.FromBase64("data:image/jpeg;base64,"+payload, "")
		require.NoError(t, err)
		assert.Equal(t, payload, out.Data)
		assert.Equal(t, "image/png", out.MIMEType)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := enc.FromBase64("%%%not-base64%%%", "image/jpeg")
		assert.ErrorIs(t, err, ErrUnreadableImage)
	})

	t.Run("valid base64 of a non image", func(t *testing.T) {
		_, err := enc.FromBase64(base64.StdEncoding.EncodeToString([]byte("hello")), "image/jpeg")
		assert.ErrorIs(t, err, ErrUnsupportedImage)
	})
}
