// Package session is the single source of truth for who is logged in.
// The identity and its opaque token live in memory and are mirrored to a JSON
// file so a restart picks up where the last run left off.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
)

// AuthAPI is the slice of the remote client the session needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (models.AuthProfile, string, error)
	Logout(ctx context.Context) error
}

type Session struct {
	mu    sync.RWMutex
	path  string
	api   AuthAPI
	log   zerolog.Logger
	user  *models.AuthProfile
	token string
}

// payload is the exact shape persisted to disk (and historically to the
// browser's local storage, which is why the field names are what they are).
type payload struct {
	User  models.AuthProfile `json:"user"`
	Token string             `json:"token"`
}

func New(path string, api AuthAPI, log zerolog.Logger) *Session {
	return &Session{path: path, api: api, log: log}
}

// Restore loads a persisted session, discarding any payload that does not
// match the expected identity shape. Stale formats are deleted, not migrated.
func (s *Session) Restore() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn().Err(err).Msg("failed to read stored session")
		}
		return
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil || !p.User.Valid() || p.Token == "" {
		s.log.Info().Msg("discarding stored session with stale format")
		_ = os.Remove(s.path)
		return
	}

	s.mu.Lock()
	u := p.User
	s.user = &u
	s.token = p.Token
	s.mu.Unlock()
	s.log.Debug().Str("user", p.User.Email).Msg("session restored")
}

// Login authenticates against the remote side and persists the result.
func (s *Session) Login(ctx context.Context, email, password string) error {
	user, token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()

	s.persist(user, token)
	return nil
}

// Logout clears the session. The remote call is best effort: local state is
// wiped regardless of whether the server heard about it.
func (s *Session) Logout(ctx context.Context) {
	if s.Token() != "" {
		if err := s.api.Logout(ctx); err != nil {
			s.log.Warn().Err(err).Msg("remote logout failed")
		}
	}

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn().Err(err).Msg("failed to clear stored session")
	}
}

// CurrentUser returns a copy of the authenticated identity, or nil.
func (s *Session) CurrentUser() *models.AuthProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the session token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) persist(user models.AuthProfile, token string) {
	data, err := json.Marshal(payload{User: user, Token: token})
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to encode session")
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.log.Warn().Err(err).Msg("failed to create session dir")
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session")
	}
}
