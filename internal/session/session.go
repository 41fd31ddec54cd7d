// Package session stores the bearer credential for the DocuChat client.
//
// The credential is the sole authorization artifact: it is written by login
// and logout (or by a failed login validation) and read fresh by everything
// else. Stores are injected into the components that need them rather than
// read from ambient global state.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tokenFile is the single well-known key the credential persists under.
const tokenFile = "token"

// Store persists the bearer token as a file in the state directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at the given state directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load returns the stored bearer token, or "" when none is stored.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Token is Load with the error dropped, for use as a per-request token
// source. A read failure reads as "no credential".
func (s *Store) Token() string {
	t, _ := s.Load()
	return t
}

// Save stores the bearer token, replacing any previous one.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	path := filepath.Join(s.dir, tokenFile)
	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an absent token is not an error.
func (s *Store) Clear() error {
	err := os.Remove(filepath.Join(s.dir, tokenFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token: %w", err)
	}
	return nil
}

// Authenticated reports whether a non-empty credential is stored.
//
// This is the presence-only router guard: no format or expiry check is
// performed here. Validity is discovered lazily when a guarded view's first
// identity call fails.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}
