package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/cardpulse/internal/capture"
	"github.com/jonathan/cardpulse/internal/pipeline"
	"github.com/jonathan/cardpulse/internal/types"
	"github.com/jonathan/cardpulse/internal/vcard"
)

// maxUploadBytes caps scan request bodies; card photos are small.
const maxUploadBytes = 20 << 20

// ScanRequest represents the JSON request body for POST /cards
type ScanRequest struct {
	// Image is the captured card as a data URL (or bare base64, treated as JPEG).
	Image string `json:"image" validate:"required"`
}

// ScanResponse represents the response for a completed scan. The new card is
// returned so clients can open it immediately.
type ScanResponse struct {
	Card   types.BusinessCard `json:"card"`
	Status pipeline.Status    `json:"status"`
}

// ListResponse represents the response for GET /cards
type ListResponse struct {
	Cards []types.BusinessCard `json:"cards"`
	Count int                  `json:"count"`
}

// handleScanCard runs one capture cycle. The image arrives either as a JSON
// body with a data URL or as a multipart file upload.
func (s *Server) handleScanCard(w http.ResponseWriter, r *http.Request) {
	img, ok := s.readScanImage(w, r)
	if !ok {
		return
	}

	card, err := s.scanner.Scan(r.Context(), img)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), pipeline.UserErrorMessage)
		return
	}

	s.jsonResponse(w, http.StatusCreated, ScanResponse{
		Card:   card,
		Status: s.scanner.Status(),
	})
}

// handleScanCardStream is the SSE variant of the scan: the client watches
// scanning progress and receives the card as an event.
func (s *Server) handleScanCardStream(w http.ResponseWriter, r *http.Request) {
	img, ok := s.readScanImage(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	sse.WriteStatus(string(types.ScanScanning))

	card, err := s.scanner.Scan(r.Context(), img)
	if err != nil {
		sse.WriteError(pipeline.UserErrorMessage)
		return
	}

	sse.WriteCard(card)
	sse.WriteStatus(string(types.ScanSuccess))
}

// readScanImage decodes the request into a capture.Image, writing the error
// response itself when the request is unusable.
func (s *Server) readScanImage(w http.ResponseWriter, r *http.Request) (capture.Image, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, _, err := r.FormFile("image")
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "image file is required: "+err.Error())
			return capture.Image{}, false
		}
		defer func() { _ = file.Close() }()

		img, err := capture.FromReader(file)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return capture.Image{}, false
		}
		return img, true
	}

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return capture.Image{}, false
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "image is required")
		return capture.Image{}, false
	}

	img, err := capture.ParseDataURL(req.Image)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return capture.Image{}, false
	}
	return img, true
}

// handleListCards returns the whole collection, newest first.
func (s *Server) handleListCards(w http.ResponseWriter, _ *http.Request) {
	cards := s.store.List()
	s.jsonResponse(w, http.StatusOK, ListResponse{Cards: cards, Count: len(cards)})
}

// handleGetCard returns one card by ID.
func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	card, ok := s.store.Get(id)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("card not found: %s", id))
		return
	}
	s.jsonResponse(w, http.StatusOK, card)
}

// handleDeleteCard removes a card. Deletion is unconditional once confirmed;
// the confirm query parameter is the boundary confirmation step, so requests
// without it are rejected. Deleting an absent ID still succeeds.
func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		s.errorResponse(w, http.StatusBadRequest, "deletion requires confirm=true")
		return
	}

	if _, err := s.store.Remove(r.Context(), r.PathValue("id")); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete card: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportCard serves the card as a downloadable vCard document.
func (s *Server) handleExportCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	card, ok := s.store.Get(id)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("card not found: %s", id))
		return
	}

	w.Header().Set("Content-Type", vcard.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", vcard.Filename(card)))
	_, _ = w.Write([]byte(vcard.Marshal(card)))
}

// handleScanStatus reports the user-visible capture flow state.
func (s *Server) handleScanStatus(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.scanner.Status())
}

// handleHealth is a basic liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"cards":  s.store.Len(),
	})
}
