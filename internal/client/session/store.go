// Package session owns the authenticated identity: login, signup, logout,
// and the startup rehydration of a persisted bearer credential.
//
// Contract:
//   - Login / Signup: authenticate against the backend; on success persist
//     the bearer token and install it on the API client.
//   - Logout: clear the identity and delete the persisted credential. Pure,
//     always succeeds, no network effect.
//   - Rehydrate: promote a persisted credential to a verified identity via
//     the /me probe; anything short of a valid id fails closed.
//
// A persisted credential is never trusted by itself: only a successful
// probe or login response makes the store authenticated.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vpetrenko/promptmart/internal/client/api"
	"github.com/vpetrenko/promptmart/internal/client/models"
	"github.com/vpetrenko/promptmart/internal/client/storage"
	"github.com/vpetrenko/promptmart/internal/common"
	"github.com/vpetrenko/promptmart/internal/logging"
)

// rejection is a server-refused credential. It reads as the server message
// and matches common.ErrInvalidCredentials under errors.Is.
type rejection struct {
	msg string
}

func (e *rejection) Error() string { return e.msg }
func (e *rejection) Unwrap() error { return common.ErrInvalidCredentials }

// ProfileUpdate carries optional local profile edits; nil fields are left
// untouched by UpdateProfile.
type ProfileUpdate struct {
	Username *string
	Email    *string
	Avatar   *string
}

// Store is the session state machine. Safe for concurrent use.
type Store struct {
	client api.Client
	state  storage.Repository
	log    logging.Logger

	mu            sync.RWMutex
	user          *models.User
	authenticated bool
}

func NewStore(client api.Client, state storage.Repository, log logging.Logger) *Store {
	return &Store{client: client, state: state, log: log}
}

// Login authenticates and, on success, persists the bearer token and sets
// the User from the response body. A server rejection returns the
// server-reported message (fallback "Login failed"); a transport failure
// returns an error matching common.ErrUnexpected. Neither mutates state.
func (s *Store) Login(ctx context.Context, username, password string) error {
	token, user, err := s.client.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrUnavailable) {
			return fmt.Errorf("%w: %v", common.ErrUnexpected, err)
		}
		msg := api.ServerMessage(err)
		if msg == "" {
			msg = "Login failed"
		}
		return &rejection{msg: msg}
	}

	if err := s.state.Set(ctx, common.TokenStorageKey, []byte(token)); err != nil {
		// The session still works for this process; it just won't survive
		// a restart.
		s.log.Warn(ctx, "failed to persist credential", "error", err)
	}

	s.client.SetToken(token)
	s.setUser(user)
	s.log.Info(ctx, "logged in", "user", user.Username, "plan", user.Plan)
	return nil
}

// Signup registers and then immediately logs in with the same credentials
// rather than trusting any token from the register response.
func (s *Store) Signup(ctx context.Context, username, email, password string) error {
	if err := s.client.Register(ctx, username, email, password); err != nil {
		if errors.Is(err, common.ErrUnavailable) {
			return fmt.Errorf("%w: %v", common.ErrUnexpected, err)
		}
		msg := api.ServerMessage(err)
		if msg == "" {
			msg = "Signup failed"
		}
		return &rejection{msg: msg}
	}
	return s.Login(ctx, username, password)
}

// Logout clears the identity and deletes the persisted credential. Always
// succeeds; a storage failure is logged and swallowed.
func (s *Store) Logout(ctx context.Context) {
	s.client.ClearToken()
	s.setUser(nil)
	if err := s.state.Delete(ctx, common.TokenStorageKey); err != nil {
		s.log.Warn(ctx, "failed to delete persisted credential", "error", err)
	}
	s.log.Info(ctx, "logged out")
}

// Rehydrate restores the session from a persisted credential, once per
// process. An expired token is discarded without a network call; otherwise
// the /me probe decides. Any outcome other than a user record with a valid
// id clears the credential — fail closed.
func (s *Store) Rehydrate(ctx context.Context) {
	raw, err := s.state.Get(ctx, common.TokenStorageKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read persisted credential", "error", err)
		return
	}
	if len(raw) == 0 {
		return
	}
	token := string(raw)

	if tokenExpired(token, time.Now()) {
		s.log.Info(ctx, "persisted credential expired, discarding")
		s.discardCredential(ctx)
		return
	}

	user, err := s.client.Me(ctx, token)
	if err != nil || user == nil || user.ID == 0 {
		s.log.Info(ctx, "identity probe rejected persisted credential", "error", err)
		s.discardCredential(ctx)
		return
	}

	s.client.SetToken(token)
	s.setUser(user)
	s.log.Info(ctx, "session restored", "user", user.Username)
}

// tokenExpired inspects the unverified exp claim. Verification belongs to
// the backend; this is only a local fast path to skip a probe that cannot
// succeed. Unparseable tokens are left to the probe.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

func (s *Store) discardCredential(ctx context.Context) {
	s.setUser(nil)
	if err := s.state.Delete(ctx, common.TokenStorageKey); err != nil {
		s.log.Warn(ctx, "failed to delete persisted credential", "error", err)
	}
}

// UpdateProfile merges updates into the current User locally. The backend
// offers no profile endpoint; edits live until logout or process exit.
func (s *Store) UpdateProfile(updates ProfileUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	if updates.Username != nil {
		s.user.Username = *updates.Username
	}
	if updates.Email != nil {
		s.user.Email = *updates.Email
	}
	if updates.Avatar != nil {
		s.user.Avatar = *updates.Avatar
	}
}

func (s *Store) setUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.authenticated = user != nil
}

// User returns a copy of the current identity, or nil when unauthenticated.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// HasCredential reports whether a token is persisted. Presence does not
// imply validity.
func (s *Store) HasCredential(ctx context.Context) bool {
	raw, err := s.state.Get(ctx, common.TokenStorageKey)
	return err == nil && len(raw) > 0
}
