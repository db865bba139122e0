package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
)

// tokenFileName is the fixed storage key for the session token. All sessions
// on a machine share the one slot, matching single-user device usage.
const tokenFileName = "nexis_token"

// TokenStore persists the bearer token across process restarts. It satisfies
// nexis.TokenSource. The zero value is not usable; construct with
// NewTokenStore.
type TokenStore struct {
	mu    sync.RWMutex
	path  string
	token string
}

// NewTokenStore opens the token store at path, or at the default location
// under the user config dir when path is empty. An existing token on disk is
// loaded eagerly so the session can resume.
func NewTokenStore(path string) (*TokenStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, eris.Wrap(err, "session: resolve config dir")
		}
		path = filepath.Join(dir, "nexis", tokenFileName)
	}

	s := &TokenStore{path: path}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		s.token = strings.TrimSpace(string(raw))
	case os.IsNotExist(err):
	default:
		return nil, eris.Wrap(err, "session: read token")
	}
	return s, nil
}

// Token returns the current token, or "" when the session is anonymous.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set stores token in memory and on disk.
func (s *TokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return eris.Wrap(err, "session: create token dir")
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return eris.Wrap(err, "session: write token")
	}
	s.token = token
	return nil
}

// Clear drops the token from memory and disk. Missing files are fine; clear
// runs on every logout and every auth failure.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return eris.Wrap(err, "session: remove token")
	}
	return nil
}
