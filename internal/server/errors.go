package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/cardpulse/internal/capture"
	"github.com/jonathan/cardpulse/internal/extraction"
	"github.com/jonathan/cardpulse/internal/pipeline"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var cameraErr *capture.CameraAccessError
	var notImageErr *capture.NotImageError
	var notSignedIn *extraction.NotSignedInError

	switch {
	case errors.Is(err, pipeline.ErrScanInFlight):
		return http.StatusConflict
	case errors.As(err, &notImageErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &cameraErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &notSignedIn):
		return http.StatusUnauthorized
	default:
		// Extraction transport and parse failures both collapse to one
		// generic upstream failure for the client.
		return http.StatusBadGateway
	}
}
