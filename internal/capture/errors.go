package capture

import "fmt"

// CameraAccessError indicates the camera stream could not be opened or read.
// It is recoverable: the adapter is left in the idle state.
type CameraAccessError struct {
	URL     string
	Message string
	Cause   error
}

func (e *CameraAccessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("camera access failed for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("camera access failed for %s: %s", e.URL, e.Message)
}

func (e *CameraAccessError) Unwrap() error {
	return e.Cause
}

// NotImageError indicates the selected input is not an image.
type NotImageError struct {
	MIMEType string
}

func (e *NotImageError) Error() string {
	return fmt.Sprintf("input is not an image (detected %s)", e.MIMEType)
}
