package helper

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURL(t *testing.T, width, height int) (string, []byte) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), buf.Bytes()
}

func TestDecodeSignatureDataURL(t *testing.T) {
	dataURL, raw := pngDataURL(t, 4, 4)

	got, contentType, err := DecodeSignatureDataURL(dataURL)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
	assert.Equal(t, "image/png", contentType)
}

func TestDecodeSignatureBareBase64(t *testing.T) {
	got, contentType, err := DecodeSignatureDataURL(base64.StdEncoding.EncodeToString([]byte("blob")))
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), got)
	assert.Equal(t, "application/octet-stream", contentType)
}

func TestDecodeSignatureRejectsGarbage(t *testing.T) {
	_, _, err := DecodeSignatureDataURL("data:image/png;base64")
	require.Error(t, err) // no comma

	_, _, err = DecodeSignatureDataURL("data:image/png;base64,!!!")
	require.Error(t, err)

	_, _, err = DecodeSignatureDataURL("data:image/png;base64,")
	require.Error(t, err) // empty payload
}

func TestNormalizeSignatureImageReencodesAsWebp(t *testing.T) {
	dataURL, _ := pngDataURL(t, 4, 4)
	raw, contentType, err := DecodeSignatureDataURL(dataURL)
	require.NoError(t, err)

	out, outType, err := NormalizeSignatureImage(raw, contentType)
	require.NoError(t, err)
	assert.Equal(t, "image/webp", outType)
	assert.NotEmpty(t, out)
}

func TestNormalizeSignatureImageKeepsOpaqueBlobs(t *testing.T) {
	raw := []byte("not an image")
	out, outType, err := NormalizeSignatureImage(raw, "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, raw, out)
	assert.Equal(t, "application/octet-stream", outType)
}
