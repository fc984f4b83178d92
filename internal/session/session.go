// Package session persists client state between CLI invocations: the auth
// token, the cached user, per-event view modes and queued invite joins.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
)

// State is the on-disk shape of the session file.
type State struct {
	Token        string               `toml:"token,omitempty"`
	User         *model.User          `toml:"user,omitempty"`
	ViewModes    map[string]string    `toml:"view_modes,omitempty"`
	PendingJoins map[string]time.Time `toml:"pending_joins,omitempty"`
}

// PendingJoin is an invite code queued while the user was logged out.
type PendingJoin struct {
	Code     string
	QueuedAt time.Time
}

// Store is a file-backed session. Every mutation is written through.
type Store struct {
	path string

	mu    sync.RWMutex
	state State
}

// DefaultPath returns ~/.local/state/planora/session.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "planora", "session.toml"), nil
}

// Open loads the session at path. A missing file is an empty session.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := toml.DecodeFile(path, &s.state); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading session %s: %w", path, err)
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

// Token implements instaback.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// User returns the cached user, or nil when logged out.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// SetSession stores the token and user returned by a login.
func (s *Store) SetSession(token string, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	if user != nil {
		u := *user
		s.state.User = &u
	} else {
		s.state.User = nil
	}
	return s.save()
}

// Clear logs out. View modes and pending joins are kept.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = ""
	s.state.User = nil
	return s.save()
}

// ViewMode returns the persisted view mode for an event, or "".
func (s *Store) ViewMode(eventID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ViewModes[eventID]
}

// SetViewMode persists the view mode for an event. An empty mode removes it.
func (s *Store) SetViewMode(eventID, mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode == "" {
		delete(s.state.ViewModes, eventID)
	} else {
		if s.state.ViewModes == nil {
			s.state.ViewModes = map[string]string{}
		}
		s.state.ViewModes[eventID] = mode
	}
	return s.save()
}

// AddPendingJoin queues an invite code. Re-adding a code keeps its original
// queue time.
func (s *Store) AddPendingJoin(code string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.PendingJoins[code]; ok {
		return nil
	}
	if s.state.PendingJoins == nil {
		s.state.PendingJoins = map[string]time.Time{}
	}
	s.state.PendingJoins[code] = now.UTC()
	return s.save()
}

// PendingJoins returns queued invite codes, oldest first.
func (s *Store) PendingJoins() []PendingJoin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]PendingJoin, 0, len(s.state.PendingJoins))
	for code, at := range s.state.PendingJoins {
		out = append(out, PendingJoin{Code: code, QueuedAt: at})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].QueuedAt.Equal(out[j].QueuedAt) {
			return out[i].QueuedAt.Before(out[j].QueuedAt)
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// RemovePendingJoin drops a queued invite code.
func (s *Store) RemovePendingJoin(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.PendingJoins[code]; !ok {
		return nil
	}
	delete(s.state.PendingJoins, code)
	return s.save()
}

// save writes the state; callers hold mu.
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(s.state); err != nil {
		f.Close()
		return fmt.Errorf("writing session: %w", err)
	}
	return f.Close()
}
