// Package capture acquires still images for scanning, from either a local
// file or a live camera stream, and encodes them for embedding in records.
package capture

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Image is one captured still image.
type Image struct {
	// Data is the raw encoded image bytes (JPEG, PNG, ...).
	Data []byte
	// MIMEType is the sniffed content type (e.g. "image/jpeg").
	MIMEType string
}

// Format returns the image subtype without the "image/" prefix,
// as expected by the LLM inline-data API.
func (img Image) Format() string {
	return strings.TrimPrefix(img.MIMEType, "image/")
}

// DataURL encodes the image as a self-describing data URL suitable for
// embedding directly in a persisted record.
func (img Image) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data))
}

// ParseDataURL decodes a data URL back into an Image. It also accepts a bare
// base64 payload, which is treated as JPEG.
func ParseDataURL(s string) (Image, error) {
	s = strings.TrimSpace(s)

	mimeType := "image/jpeg"
	payload := s
	if strings.HasPrefix(s, "data:") {
		rest := strings.TrimPrefix(s, "data:")
		meta, b64, found := strings.Cut(rest, ",")
		if !found {
			return Image{}, fmt.Errorf("malformed data URL: missing comma separator")
		}
		if mt := strings.TrimSuffix(meta, ";base64"); mt != "" {
			mimeType = mt
		}
		payload = b64
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode image payload: %w", err)
	}

	img := Image{Data: data, MIMEType: mimeType}
	if !strings.HasPrefix(img.MIMEType, "image/") {
		return Image{}, &NotImageError{MIMEType: img.MIMEType}
	}
	return img, nil
}
