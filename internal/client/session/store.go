// Package session holds the authenticated identity and bearer credential for
// the running client. The store owns the credential exclusively: other
// components read the current user to scope requests, but only the gateway
// reads the token, and only through Credential().
//
// Identity and credential are persisted under separate keys (the credential
// is a secret); restoring trusts them only together. Partial persisted state
// is never trusted: if one key survives without the other, both are cleared.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/saciinol/watchkeeper/internal/models"
)

// Repository is the persistence surface the store needs.
// *localdb.MetadataRepository satisfies it.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

const (
	keyIdentity   = "session.identity"
	keyCredential = "session.credential"
)

// persistedIdentity is the durable, non-secret part of the session.
type persistedIdentity struct {
	User          models.User `json:"user"`
	Authenticated bool        `json:"authenticated"`
}

// Store is the client's session state. Authenticated() is true iff both
// identity and credential are present and have not been cleared.
type Store struct {
	mu            sync.Mutex
	repo          Repository
	user          *models.User
	token         string
	authenticated bool
	lastErr       error
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// SetIdentity records the user identity and persists it.
func (s *Store) SetIdentity(ctx context.Context, user models.User) error {
	s.mu.Lock()
	u := user
	s.user = &u
	s.authenticated = s.user != nil && s.token != ""
	auth := s.authenticated
	s.mu.Unlock()

	return s.persistIdentity(ctx, user, auth)
}

// SetCredential records the bearer token and persists it. An empty token
// removes the persisted secret.
func (s *Store) SetCredential(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.authenticated = s.user != nil && s.token != ""
	s.mu.Unlock()

	if token == "" {
		return s.repo.Delete(ctx, keyCredential)
	}
	return s.repo.Set(ctx, keyCredential, []byte(token))
}

// Login installs identity and credential together and clears any recorded
// error. It is the only way a session becomes authenticated.
func (s *Store) Login(ctx context.Context, user models.User, token string) error {
	s.mu.Lock()
	u := user
	s.user = &u
	s.token = token
	s.authenticated = token != ""
	s.lastErr = nil
	s.mu.Unlock()

	if err := s.repo.Set(ctx, keyCredential, []byte(token)); err != nil {
		return err
	}
	return s.persistIdentity(ctx, user, token != "")
}

// Logout clears every session field, in memory and persisted. After Logout
// no component can obtain a readable credential from the store.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.authenticated = false
	s.lastErr = nil
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, keyCredential); err != nil {
		return err
	}
	return s.repo.Delete(ctx, keyIdentity)
}

// Restore loads the persisted session on startup. Identity and credential
// must both be present to validate; if only one survived (for example a
// crash between the two writes), the session is invalid and both are
// cleared. Restore returns an error only for storage failures; an invalid
// persisted session is a normal, unauthenticated start.
func (s *Store) Restore(ctx context.Context) error {
	rawIdentity, err := s.repo.Get(ctx, keyIdentity)
	if err != nil {
		return fmt.Errorf("restore identity: %w", err)
	}
	rawToken, err := s.repo.Get(ctx, keyCredential)
	if err != nil {
		return fmt.Errorf("restore credential: %w", err)
	}

	if len(rawIdentity) == 0 || len(rawToken) == 0 {
		return s.Logout(ctx)
	}

	var pid persistedIdentity
	if err := json.Unmarshal(rawIdentity, &pid); err != nil {
		// corrupt blob: treat like partial state
		return s.Logout(ctx)
	}

	s.mu.Lock()
	u := pid.User
	s.user = &u
	s.token = string(rawToken)
	s.authenticated = pid.Authenticated && s.token != ""
	s.mu.Unlock()
	return nil
}

// User returns a copy of the current identity, or nil when logged out.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// UserID returns the current user id and whether one is present.
func (s *Store) UserID() (models.UserID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return 0, false
	}
	return s.user.ID, true
}

// Credential returns the bearer token, or "" when logged out.
func (s *Store) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// RecordError stores a session-level error for passive UI display.
func (s *Store) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) persistIdentity(ctx context.Context, user models.User, authenticated bool) error {
	raw, err := json.Marshal(persistedIdentity{User: user, Authenticated: authenticated})
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	return s.repo.Set(ctx, keyIdentity, raw)
}
