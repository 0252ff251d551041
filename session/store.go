package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/servly/admin-console/internal/config"
)

// Store is the process-wide session state container. It is the only writer of
// the persisted session file; the file is read once at construction so a
// previously authenticated session survives restarts.
type Store struct {
	mu           sync.RWMutex
	snap         Snapshot
	state        State
	reason       string
	tokenExpiry  time.Time
	requiredRole string
	path         string
	log          zerolog.Logger
}

// StoreOption configures the Store.
type StoreOption func(*Store)

// WithLogger sets a structured logger for the store.
func WithLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

// NewStore creates the session store, restoring any persisted session found
// under the configured namespace. A persisted session whose role no longer
// matches the required role is discarded rather than trusted.
func NewStore(cfg config.Config, opts ...StoreOption) (*Store, error) {
	folder := cfg.GetDataFolder()
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, errors.Wrap(err, "[session.NewStore] creating data folder")
	}

	s := &Store{
		requiredRole: cfg.GetRequiredRole(),
		path:         filepath.Join(folder, cfg.GetSessionNamespace()+"-session.json"),
		log:          zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}

	if err := s.restore(); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// State returns the state machine position.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Reason returns the display reason retained from the last failed login.
func (s *Store) Reason() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reason
}

// AccessToken implements api.CredentialSource.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.AccessToken
}

// IsAuthenticated reports whether the session holds an access token for the
// required role.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.IsAuthenticated
}

// TokenExpiry returns the access token's expiry when it could be read from
// the token, else the zero time. Informational only; authorization never
// depends on it.
func (s *Store) TokenExpiry() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokenExpiry
}

// ExpiresWithin reports whether a known token expiry falls inside d.
func (s *Store) ExpiresWithin(d time.Duration) bool {
	exp := s.TokenExpiry()
	if exp.IsZero() {
		return false
	}
	return time.Until(exp) < d
}

// BeginLogin moves the store into Authenticating. Any previous failure reason
// is cleared.
func (s *Store) BeginLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Authenticating
	s.reason = ""
	s.snap.IsLoading = true
}

// CompleteLogin records a successful, role-checked login and persists it.
// The bundle's role must match the required role; callers verify this before
// calling, and the store enforces it again so the invariant cannot be
// bypassed.
func (s *Store) CompleteLogin(bundle Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bundle.AccessToken == "" || !strings.EqualFold(bundle.Role, s.requiredRole) {
		// a previously authenticated snapshot must not outlive the rejection
		s.snap = Snapshot{}
		s.tokenExpiry = time.Time{}
		s.state = AuthFailed
		s.reason = "unauthorized: only " + s.requiredRole + "s allowed"
		if err := s.persistLocked(); err != nil {
			s.log.Error().Err(err).Msg("persisting cleared session")
		}
		return errors.Errorf("[Store.CompleteLogin] bundle role %q does not satisfy %q", bundle.Role, s.requiredRole)
	}

	s.snap = Snapshot{
		AccessToken:     bundle.AccessToken,
		RefreshToken:    bundle.RefreshToken,
		Role:            bundle.Role,
		Email:           bundle.Email,
		IsAuthenticated: true,
	}
	s.state = Authenticated
	s.reason = ""
	s.tokenExpiry = tokenExpiry(bundle.AccessToken)
	return s.persistLocked()
}

// FailLogin records a failed login, retaining reason for display. The session
// fields stay empty and a retry is allowed.
func (s *Store) FailLogin(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = AuthFailed
	s.reason = reason
	s.snap.IsLoading = false
	s.snap.IsAuthenticated = false
}

// Logout clears the session and persists the cleared state.
func (s *Store) Logout() {
	s.clear("logout")
}

// Invalidate implements api.SessionInvalidator: the adapter saw a 401, so the
// server no longer honours this session.
func (s *Store) Invalidate() {
	s.clear("authorization failure")
}

func (s *Store) clear(cause string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Anonymous && s.snap == (Snapshot{}) {
		return
	}
	s.log.Info().Str("cause", cause).Msg("clearing session")
	s.snap = Snapshot{}
	s.state = Anonymous
	s.reason = ""
	s.tokenExpiry = time.Time{}
	if err := s.persistLocked(); err != nil {
		s.log.Error().Err(err).Msg("persisting cleared session")
	}
}

func (s *Store) restore() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "[Store.restore] reading session file")
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn().Err(err).Msg("discarding unreadable session file")
		return nil
	}
	if snap.AccessToken == "" || !strings.EqualFold(snap.Role, s.requiredRole) {
		return nil
	}

	snap.IsAuthenticated = true
	s.snap = snap
	s.state = Authenticated
	s.tokenExpiry = tokenExpiry(snap.AccessToken)
	s.log.Debug().Str("email", snap.Email).Msg("restored persisted session")
	return nil
}

func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.snap, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[Store.persistLocked] encoding session")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "[Store.persistLocked] writing session file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "[Store.persistLocked] replacing session file")
	}
	return nil
}
