package helper

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Canvas widgets send signatures as data-URLs (data:image/png;base64,...).
// The blob is treated as opaque by the funnel itself; here we only try to
// normalize it for storage. When decoding fails we keep the raw bytes.

const signatureMaxWidth = 600

// DecodeSignatureDataURL splits a data-URL into raw bytes + declared content type.
// A bare base64 string (no data: prefix) is accepted as well.
func DecodeSignatureDataURL(dataURL string) ([]byte, string, error) {
	payload := dataURL
	contentType := "application/octet-stream"

	if strings.HasPrefix(dataURL, "data:") {
		idx := strings.Index(dataURL, ",")
		if idx < 0 {
			return nil, "", fmt.Errorf("malformed data url")
		}
		meta := dataURL[len("data:"):idx]
		payload = dataURL[idx+1:]
		if semi := strings.Index(meta, ";"); semi >= 0 {
			contentType = meta[:semi]
		} else if meta != "" {
			contentType = meta
		}
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// some clients URL-encode the payload
		raw, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("base64 decode: %w", err)
		}
	}
	if len(raw) == 0 {
		return nil, "", fmt.Errorf("empty signature payload")
	}
	return raw, contentType, nil
}

// NormalizeSignatureImage re-encodes a decoded signature blob as lossless
// webp, bounded to signatureMaxWidth. Non-image blobs are returned as-is
// with their original content type.
func NormalizeSignatureImage(raw []byte, contentType string) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		// opaque blob, store untouched
		return raw, contentType, nil
	}

	if img.Bounds().Dx() > signatureMaxWidth {
		img = imaging.Resize(img, signatureMaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: true}); err != nil {
		return raw, contentType, nil
	}
	return buf.Bytes(), "image/webp", nil
}
