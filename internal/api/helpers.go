package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"dashboard/internal/anchor"
	"dashboard/internal/apiclient"
	"dashboard/internal/dashboard"
	"dashboard/internal/models"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodyBytes caps request bodies
const maxBodyBytes = 64 << 10

// StatusForError maps a lookup or anchor failure to an HTTP status
func StatusForError(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrEmptyQuery),
		errors.Is(err, dashboard.ErrInvalidFormat),
		errors.Is(err, anchor.ErrInvalidDraft):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrNotFound), errors.Is(err, apiclient.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, dashboard.ErrSimulationUnavailable), errors.Is(err, anchor.ErrOffline):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// decodeBody reads a JSON request body into out
func decodeBody(r *http.Request, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid request payload: %w", err)
	}
	return nil
}

// sendJSON sends a JSON response with the given status
func (s *Server) sendJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// sendError sends a JSON error response
func (s *Server) sendError(w http.ResponseWriter, message string, code int) {
	s.sendJSON(w, code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
}
