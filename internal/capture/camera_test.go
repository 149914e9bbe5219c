package capture

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mjpegHandler serves an endless MJPEG stream of the given frames, cycling.
func mjpegHandler(frames [][]byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const boundary = "frameboundary"
		w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+boundary)
		w.WriteHeader(http.StatusOK)

		flusher := w.(http.Flusher)
		for i := 0; ; i++ {
			frame := frames[i%len(frames)]
			fmt.Fprintf(w, "--%s\r\n", boundary)
			fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
			fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(frame))
			if _, err := w.Write(frame); err != nil {
				return
			}
			fmt.Fprint(w, "\r\n")
			flusher.Flush()

			select {
			case <-r.Context().Done():
				return
			default:
			}
		}
	}
}

func TestCamera_SnapshotGrabsOneFrame(t *testing.T) {
	frame := []byte{0xFF, 0xD8, 0xFF, 0xAA, 0xBB}
	srv := httptest.NewServer(mjpegHandler([][]byte{frame}))
	defer srv.Close()

	cam := NewCamera(srv.URL)
	require.NoError(t, cam.Open(context.Background()))
	defer func() { _ = cam.Close() }()

	img, err := cam.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, frame, img.Data)
	assert.Equal(t, "image/jpeg", img.MIMEType)
}

func TestCamera_SecondOpenFailsWhileActive(t *testing.T) {
	srv := httptest.NewServer(mjpegHandler([][]byte{{0x01}}))
	defer srv.Close()

	cam := NewCamera(srv.URL)
	require.NoError(t, cam.Open(context.Background()))
	defer func() { _ = cam.Close() }()

	assert.ErrorIs(t, cam.Open(context.Background()), ErrCameraBusy)
}

func TestCamera_CloseReleasesStream(t *testing.T) {
	srv := httptest.NewServer(mjpegHandler([][]byte{{0x01}}))
	defer srv.Close()

	cam := NewCamera(srv.URL)
	require.NoError(t, cam.Open(context.Background()))
	require.NoError(t, cam.Close())

	// Snapshot after Close must not hang on a released stream
	_, err := cam.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrCameraClosed)

	// Close is idempotent and reopening works
	require.NoError(t, cam.Close())
	require.NoError(t, cam.Open(context.Background()))
	require.NoError(t, cam.Close())
}

func TestCamera_OpenConnectionRefused(t *testing.T) {
	// Port 1 is essentially always closed
	cam := NewCamera("http://127.0.0.1:1/stream")

	err := cam.Open(context.Background())
	require.Error(t, err)

	var accessErr *CameraAccessError
	assert.ErrorAs(t, err, &accessErr)

	// A failed open leaves the adapter idle, so a fresh Open is allowed
	assert.NotErrorIs(t, cam.Open(context.Background()), ErrCameraBusy)
}

func TestCamera_OpenRejectsNonMJPEG(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html>not a camera</html>")
	}))
	defer srv.Close()

	cam := NewCamera(srv.URL)
	err := cam.Open(context.Background())

	var accessErr *CameraAccessError
	require.ErrorAs(t, err, &accessErr)
	assert.Contains(t, accessErr.Message, "not an MJPEG stream")
}

func TestCamera_OpenRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cam := NewCamera(srv.URL)
	err := cam.Open(context.Background())

	var accessErr *CameraAccessError
	require.ErrorAs(t, err, &accessErr)
	assert.Contains(t, accessErr.Message, "403")
}
