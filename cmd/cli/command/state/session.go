package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"unicode/utf8"

	"webtoonhub/cmd/cli/authentication"
	"webtoonhub/cmd/cli/dto"
)

var (
	// ErrSessionExpired means a stored token no longer works; it has been dropped
	ErrSessionExpired = errors.New("session expired, please log in again")
	ErrNotLoggedIn    = errors.New("not logged in, run 'webtoonhub auth login' first")
)

// ValidationError is a client-side form rule; no request was sent
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SessionAPI is the part of the HTTP client the session needs
type SessionAPI interface {
	SetToken(token string)
	ClearToken()
	Login(ctx context.Context, username, password string) (*dto.TokenResponse, error)
	Me(ctx context.Context) (*dto.User, error)
	Register(ctx context.Context, request *dto.RegisterRequest) (*dto.User, error)
}

// TokenStore persists the bearer token between runs
type TokenStore interface {
	Save(creds *authentication.StoredCredentials) error
	Load() (*authentication.StoredCredentials, error)
	Delete() error
}

// Session holds the current user for the whole process
type Session struct {
	api    SessionAPI
	store  TokenStore
	logger *slog.Logger

	mu   sync.RWMutex
	user *dto.User
}

func NewSession(api SessionAPI, store TokenStore, logger *slog.Logger) *Session {
	return &Session{api: api, store: store, logger: logger}
}

// Init probes a stored token once. A token the server rejects is deleted and
// the caller gets ErrSessionExpired; no stored token is not an error.
func (s *Session) Init(ctx context.Context) error {
	creds, err := s.store.Load()
	if err != nil {
		if !errors.Is(err, authentication.ErrNoCredentials) {
			s.logger.Debug("token store unreadable", "error", err)
		}
		return nil
	}

	s.api.SetToken(creds.AccessToken)
	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Debug("stored token rejected", "error", err)
		s.dropToken()
		return ErrSessionExpired
	}

	s.setUser(user)
	return nil
}

// Login exchanges credentials for a token, stores it and loads the profile
func (s *Session) Login(ctx context.Context, username, password string) (*dto.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &ValidationError{Field: "username", Message: "is required"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Message: "is required"}
	}

	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	s.api.SetToken(token.AccessToken)

	user, err := s.api.Me(ctx)
	if err != nil {
		s.api.ClearToken()
		return nil, err
	}

	if err := s.store.Save(&authentication.StoredCredentials{AccessToken: token.AccessToken, Username: user.Username}); err != nil {
		// still logged in for this run
		s.logger.Warn("could not persist token", "error", err)
	}
	s.setUser(user)
	return user, nil
}

// Register creates the account only; the user logs in afterwards
func (s *Session) Register(ctx context.Context, username, email, password string) (*dto.User, error) {
	req := &dto.RegisterRequest{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := ValidateRegistration(req); err != nil {
		return nil, err
	}
	return s.api.Register(ctx, req)
}

func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.api.ClearToken()
	return s.store.Delete()
}

func (s *Session) User() *dto.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) IsAuthenticated() bool {
	return s.User() != nil
}

// RequireUser returns the current user or ErrNotLoggedIn
func (s *Session) RequireUser() (*dto.User, error) {
	if user := s.User(); user != nil {
		return user, nil
	}
	return nil, ErrNotLoggedIn
}

// SetUser replaces the cached profile after an update
func (s *Session) SetUser(user *dto.User) {
	s.setUser(user)
}

func (s *Session) setUser(user *dto.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

func (s *Session) dropToken() {
	s.api.ClearToken()
	if err := s.store.Delete(); err != nil {
		s.logger.Debug("could not delete stored token", "error", err)
	}
	s.setUser(nil)
}

// ValidateRegistration applies the sign-up form rules
func ValidateRegistration(req *dto.RegisterRequest) error {
	if n := utf8.RuneCountInString(req.Username); n < 3 || n > 50 {
		return &ValidationError{Field: "username", Message: "must be 3 to 50 characters"}
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return &ValidationError{Field: "email", Message: "is not a valid address"}
	}
	if len(req.Password) < 8 {
		return &ValidationError{Field: "password", Message: "must be at least 8 characters"}
	}
	return nil
}
