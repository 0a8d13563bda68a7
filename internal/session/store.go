package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"shop_client/internal/domain"
)

// Persisted key names, shared by every backend.
const (
	TokenKey   = "admin_token"
	ProfileKey = "admin_user"
)

// ErrNotFound is returned by a Backend that holds no session.
var ErrNotFound = errors.New("session not found")

// Snapshot is an immutable view of the current credential and profile.
type Snapshot struct {
	Token   string
	Profile *domain.UserProfile
}

// Present reports whether both the credential and the profile are available.
func (s Snapshot) Present() bool {
	return s.Token != "" && s.Profile != nil
}

// Backend persists the raw credential and the serialized profile.
type Backend interface {
	Load(ctx context.Context) (token string, profile []byte, err error)
	Save(ctx context.Context, token string, profile []byte) error
	Delete(ctx context.Context) error
	Close() error
}

// Reader is the read-only view handed to request decorators.
type Reader interface {
	Get() Snapshot
}

// Store keeps the session in memory and writes it through to a Backend.
// Reads never touch the backend; writes persist first and then swap the
// in-memory snapshot, so readers see either the old pair or the new pair.
type Store struct {
	backend Backend
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex
	log     *logrus.Logger
}

// Open loads the persisted session from backend. A stored profile that
// cannot be decoded is dropped and reported as absent.
func Open(ctx context.Context, backend Backend, logger *logrus.Logger) (*Store, error) {
	s := &Store{backend: backend, log: logger}
	s.current.Store(&Snapshot{})

	token, raw, err := backend.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		logger.Debug("SessionStore: No persisted session")
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	snap := &Snapshot{Token: token}
	if len(raw) > 0 {
		var profile domain.UserProfile
		if err := json.Unmarshal(raw, &profile); err != nil {
			logger.Warnf("SessionStore: Stored profile is unreadable, ignoring it: %v", err)
		} else {
			snap.Profile = &profile
		}
	}
	s.current.Store(snap)
	logger.Infof("SessionStore: Restored session (credential: %t, profile: %t)", snap.Token != "", snap.Profile != nil)
	return s, nil
}

// Get returns a copy of the current session. The returned profile is owned
// by the caller.
func (s *Store) Get() Snapshot {
	snap := s.current.Load()
	out := Snapshot{Token: snap.Token}
	if snap.Profile != nil {
		p := *snap.Profile
		out.Profile = &p
	}
	return out
}

// Set persists the credential and profile together.
func (s *Store) Set(ctx context.Context, token string, profile domain.UserProfile) error {
	if token == "" {
		return errors.New("credential cannot be empty")
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Save(ctx, token, raw); err != nil {
		s.log.Errorf("SessionStore: Failed to persist session for user %s: %v", profile.ID, err)
		return fmt.Errorf("failed to persist session: %w", err)
	}
	s.current.Store(&Snapshot{Token: token, Profile: &profile})
	s.log.Debugf("SessionStore: Session stored for user %s", profile.ID)
	return nil
}

// Clear removes both halves of the session. The in-memory snapshot is
// emptied even when the backend fails, so no request keeps using a
// credential the caller asked to drop.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Store(&Snapshot{})
	if err := s.backend.Delete(ctx); err != nil {
		s.log.Errorf("SessionStore: Failed to delete persisted session: %v", err)
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.log.Debug("SessionStore: Session cleared")
	return nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}
