// Package handler provides HTTP request handlers.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/hyjain/hyjain-api/internal/handler/dto"
)

// Version is reported by the service banner.
const Version = "1.0.0"

var errInvalidBody = errors.New("invalid request body")

// Handler serves the service banner and router fallbacks.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Hello is the service banner.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Hello from Hyjain!",
		"version": Version,
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Resource not found.")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Default().Error("response_encode_failed", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message})
}

// decodeJSON decodes a single JSON value from the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errInvalidBody
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Join(errInvalidBody, err)
	}
	return nil
}

// isTooLarge reports whether err came from a body size limit.
func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
