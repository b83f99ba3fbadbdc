package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/retailpos/terminal/internal/client"
	"github.com/retailpos/terminal/internal/session"
)

type SessionHandler struct {
	api      *client.Client
	sessions *session.Store
	timeout  time.Duration
}

func NewSessionHandler(api *client.Client, sessions *session.Store, timeout time.Duration) *SessionHandler {
	return &SessionHandler{api: api, sessions: sessions, timeout: timeout}
}

type SignInRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges operator credentials for a bearer token and stores it.
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SignInRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_credentials", "email and password are required")
		return
	}

	resp, err := h.api.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, client.ErrUnauthenticated) {
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		respondBackendError(w, err)
		return
	}

	h.sessions.SignIn(resp.Token, resp.User)
	respondJSON(w, http.StatusOK, resp.User)
}

// SignOut drops the session credential.
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.sessions.SignOut()
	respondJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// Current returns the signed-in operator or 401.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessions.User()
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "sign in required")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
