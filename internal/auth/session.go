package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Tiliavir/work-hours-logger/internal/storage"
)

// SessionKey is the backend key holding the logged-in user.
const SessionKey = "session"

var (
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Session describes the logged-in user.
type Session struct {
	User     string    `json:"user"`
	LoggedIn time.Time `json:"loggedIn"`
}

// Sessions stores the current session on a storage backend.
type Sessions struct {
	backend storage.Backend
	now     func() time.Time
}

func NewSessions(backend storage.Backend) *Sessions {
	return &Sessions{backend: backend, now: time.Now}
}

// Login checks the credentials with a and, on success, makes username the
// current user. Rejected credentials return ErrInvalidCredentials and leave
// any existing session untouched.
func (s *Sessions) Login(ctx context.Context, a Authenticator, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Session{}, ErrInvalidCredentials
	}
	ok, err := a.Login(ctx, username, password)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrInvalidCredentials
	}
	sess := Session{User: username, LoggedIn: s.now()}
	data, err := json.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("marshalling session: %w", err)
	}
	if err := s.backend.Put(ctx, SessionKey, data); err != nil {
		return Session{}, fmt.Errorf("saving session: %w", err)
	}
	return sess, nil
}

// Logout ends the current session. Logging out twice is not an error.
func (s *Sessions) Logout(ctx context.Context) error {
	return s.backend.Delete(ctx, SessionKey)
}

// Current returns the logged-in session or ErrNotLoggedIn.
func (s *Sessions) Current(ctx context.Context) (Session, error) {
	data, ok, err := s.backend.Get(ctx, SessionKey)
	if err != nil {
		return Session{}, fmt.Errorf("reading session: %w", err)
	}
	if !ok {
		return Session{}, ErrNotLoggedIn
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || strings.TrimSpace(sess.User) == "" {
		return Session{}, ErrNotLoggedIn
	}
	return sess, nil
}
