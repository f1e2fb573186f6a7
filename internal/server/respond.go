package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/lernapp-2025/studycards-v3/internal/card"
	"github.com/lernapp-2025/studycards-v3/internal/folder"
)

const maxBodyBytes = 1 << 20

func withUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

func userFrom(r *http.Request) string {
	userID, _ := r.Context().Value(userKey{}).(string)
	return userID
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
	// Applied is set for reorders that stopped part way.
	Applied *int `json:"applied,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}

// decode reads a JSON body into v, rejecting unknown fields.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("read request body: %v", err))
		return nil, false
	}
	return body, true
}

// statusOf maps domain errors to HTTP statuses.
func statusOf(err error) int {
	var validationErr *folder.ValidationError
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, card.ErrInvalidFace),
		errors.Is(err, card.ErrInvalidElement),
		errors.Is(err, card.ErrUnknownSide):
		return http.StatusBadRequest
	case errors.Is(err, folder.ErrNotFound), errors.Is(err, card.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, folder.ErrNotEmpty),
		errors.Is(err, folder.ErrCircularReference),
		errors.Is(err, card.ErrDuplicateElementID):
		return http.StatusConflict
	case errors.Is(err, folder.ErrDepthExceeded):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// fail writes err as an ErrorResponse. Server errors are logged and their
// details are not sent to the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondError(w, status, "internal error")
		return
	}

	resp := ErrorResponse{Error: err.Error()}
	var validationErr *folder.ValidationError
	if errors.As(err, &validationErr) {
		resp.Field = validationErr.Field
		resp.Reason = validationErr.Reason
	}
	var reorderErr *folder.ReorderError
	if errors.As(err, &reorderErr) {
		applied := reorderErr.Applied
		resp.Applied = &applied
	}
	respondJSON(w, status, resp)
}
