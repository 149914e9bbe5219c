package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultSnapshotTimeout bounds how long Snapshot waits for a full frame.
const DefaultSnapshotTimeout = 10 * time.Second

// ErrCameraBusy is returned when Open is called while a stream is already active.
var ErrCameraBusy = errors.New("camera stream already open")

// ErrCameraClosed is returned when Snapshot is called without an open stream.
var ErrCameraClosed = errors.New("camera stream is not open")

// Camera grabs still frames from a live MJPEG camera stream
// (multipart/x-mixed-replace, the format served by common IP webcams).
// At most one stream is open at a time; Close releases the connection on
// every exit path from live mode.
type Camera struct {
	url    string
	client *http.Client

	mu     sync.Mutex
	body   io.ReadCloser
	frames *multipart.Reader
}

// NewCamera creates a camera for the given MJPEG stream URL.
func NewCamera(url string) *Camera {
	return &Camera{
		url:    url,
		client: &http.Client{},
	}
}

// Open acquires the camera stream. The stream stays open until Close is
// called, whether capture succeeded or the user cancelled.
func (c *Camera) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.body != nil {
		return ErrCameraBusy
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return &CameraAccessError{URL: c.url, Message: "invalid stream URL", Cause: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &CameraAccessError{URL: c.url, Message: "could not connect to camera", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return &CameraAccessError{
			URL:     c.url,
			Message: fmt.Sprintf("camera returned status %d", resp.StatusCode),
		}
	}

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/x-mixed-replace" || params["boundary"] == "" {
		_ = resp.Body.Close()
		return &CameraAccessError{
			URL:     c.url,
			Message: fmt.Sprintf("not an MJPEG stream (content type %q)", resp.Header.Get("Content-Type")),
			Cause:   err,
		}
	}

	c.body = resp.Body
	c.frames = multipart.NewReader(resp.Body, params["boundary"])
	return nil
}

// Snapshot captures one still frame from the open stream at its native
// resolution. The stream remains open; callers decide when to Close. Close
// may be called concurrently to cancel a pending capture.
func (c *Camera) Snapshot(ctx context.Context) (Image, error) {
	c.mu.Lock()
	frames := c.frames
	c.mu.Unlock()

	if frames == nil {
		return Image{}, ErrCameraClosed
	}

	type frameResult struct {
		img Image
		err error
	}
	done := make(chan frameResult, 1)
	go func() {
		part, err := frames.NextPart()
		if err != nil {
			done <- frameResult{err: &CameraAccessError{URL: c.url, Message: "stream ended", Cause: err}}
			return
		}
		data, err := io.ReadAll(part)
		if err != nil {
			done <- frameResult{err: &CameraAccessError{URL: c.url, Message: "failed to read frame", Cause: err}}
			return
		}
		mimeType := part.Header.Get("Content-Type")
		if mimeType == "" || !strings.HasPrefix(mimeType, "image/") {
			mimeType = "image/jpeg"
		}
		done <- frameResult{img: Image{Data: data, MIMEType: mimeType}}
	}()

	timeout := time.NewTimer(DefaultSnapshotTimeout)
	defer timeout.Stop()

	select {
	case res := <-done:
		return res.img, res.err
	case <-ctx.Done():
		// Closing the body unblocks the pending read
		_ = c.Close()
		return Image{}, &CameraAccessError{URL: c.url, Message: "capture cancelled", Cause: ctx.Err()}
	case <-timeout.C:
		_ = c.Close()
		return Image{}, &CameraAccessError{URL: c.url, Message: "timed out waiting for a frame"}
	}
}

// Close releases the camera stream. Safe to call multiple times.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
	return nil
}

func (c *Camera) closeLocked() {
	if c.body != nil {
		_ = c.body.Close()
		c.body = nil
		c.frames = nil
	}
}
