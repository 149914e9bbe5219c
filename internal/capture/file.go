package capture

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// FromFile reads an image file from disk and encodes it for scanning.
// Non-image content is rejected.
func FromFile(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return FromReader(f)
}

// FromReader reads a full image from r and encodes it for scanning.
// The MIME type is sniffed from the content; non-image content is rejected.
func FromReader(r io.Reader) (Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Image{}, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("image is empty")
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return Image{}, &NotImageError{MIMEType: mimeType}
	}
	return Image{Data: data, MIMEType: mimeType}, nil
}
