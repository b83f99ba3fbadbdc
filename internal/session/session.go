package session

import (
	"errors"
	"sync"

	"github.com/retailpos/terminal/internal/domain"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("operator role not permitted")
)

// Store holds the bearer credential and operator identity issued by the
// identity provider. The engine only uses it as an "is authenticated" gate;
// role logic stays at the boundary via RequireRole.
type Store struct {
	mu    sync.RWMutex
	token string
	user  domain.User
}

func NewStore() *Store {
	return &Store{}
}

// SignIn records the credential and operator for the session.
func (s *Store) SignIn(token string, user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// SignOut drops the credential.
func (s *Store) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = domain.User{}
}

// Token implements the backend client's TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// User returns the signed-in operator, if any.
func (s *Store) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.token != ""
}

// RequireRole is the capability check used at page/handler boundaries.
func (s *Store) RequireRole(role string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return ErrNotAuthenticated
	}
	if s.user.Role != role {
		return ErrForbidden
	}
	return nil
}
