package httpapi

import (
	"errors"
	"net/http"

	"github.com/retailpos/terminal/internal/session"
)

// RequireAuth gates the panel on an authenticated session. Role logic does
// not live here; see RequireRole.
func RequireAuth(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.Authenticated() {
				respondError(w, http.StatusUnauthorized, "unauthenticated", "sign in required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole is the boundary capability check for role-gated pages.
func RequireRole(sessions *session.Store, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sessions.RequireRole(role); err != nil {
				if errors.Is(err, session.ErrNotAuthenticated) {
					respondError(w, http.StatusUnauthorized, "unauthenticated", "sign in required")
					return
				}
				respondError(w, http.StatusForbidden, "forbidden", "this page requires the "+role+" role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
