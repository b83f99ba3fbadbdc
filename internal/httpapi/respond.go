package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/retailpos/terminal/internal/client"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// respondBackendError maps backend client errors onto panel responses:
// 401 stays 401 so the UI can redirect to sign-in, a rejection with a
// usable message passes through status and message verbatim, and anything
// else becomes a generic 502.
func respondBackendError(w http.ResponseWriter, err error) {
	if errors.Is(err, client.ErrUnauthenticated) {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "session expired, sign in again")
		return
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		respondError(w, apiErr.StatusCode, "backend_rejected", apiErr.Message)
		return
	}

	respondError(w, http.StatusBadGateway, "backend_unreachable", "backend request failed")
}
