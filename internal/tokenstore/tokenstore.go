// ABOUTME: Durable storage for the access/refresh credential pair
// ABOUTME: Persists tokens as JSON in the XDG config directory

package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Kind identifies which credential to read or write.
type Kind string

const (
	Access  Kind = "access_token"
	Refresh Kind = "refresh_token"
)

// tokenData is the on-disk structure stored in tokens.json.
type tokenData struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Store reads and writes the credential pair on disk. A broken or missing
// file is treated as "no credentials" so callers fall back to anonymous
// instead of failing.
type Store struct {
	mu  sync.Mutex
	dir string
}

// New creates a Store rooted at the given config directory.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the default config directory following the XDG convention.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fitcoach")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "fitcoach")
}

func (s *Store) tokensFile() string {
	return filepath.Join(s.dir, "tokens.json")
}

// load reads the current pair from disk. Any read or parse failure yields
// an empty pair.
func (s *Store) load() tokenData {
	data, err := os.ReadFile(s.tokensFile())
	if err != nil {
		return tokenData{}
	}
	var tokens tokenData
	if err := json.Unmarshal(data, &tokens); err != nil {
		return tokenData{}
	}
	return tokens
}

// save writes the pair to disk, creating the config directory if needed.
func (s *Store) save(tokens tokenData) error {
	if s.dir == "" {
		return os.ErrNotExist
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.tokensFile(), data, 0600)
}

// Get returns the stored credential of the given kind, or "" if absent or
// unreadable. The file is re-read on every call so another process's
// logout/login is picked up.
func (s *Store) Get(kind Kind) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens := s.load()
	switch kind {
	case Access:
		return tokens.AccessToken
	case Refresh:
		return tokens.RefreshToken
	}
	return ""
}

// Set stores a single credential, overwriting the prior value and keeping
// the other credential intact.
func (s *Store) Set(kind Kind, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens := s.load()
	switch kind {
	case Access:
		tokens.AccessToken = value
	case Refresh:
		tokens.RefreshToken = value
	}
	return s.save(tokens)
}

// SetPair stores both credentials in one write.
func (s *Store) SetPair(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(tokenData{AccessToken: access, RefreshToken: refresh})
}

// Clear removes both credentials unconditionally. Clearing an absent pair
// is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.tokensFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// HasPair reports whether both credentials are present. A half-present
// pair counts as absent; the stray value is removed so the store never
// stays in a mixed state.
func (s *Store) HasPair() bool {
	s.mu.Lock()
	tokens := s.load()
	s.mu.Unlock()

	if tokens.AccessToken != "" && tokens.RefreshToken != "" {
		return true
	}
	if tokens.AccessToken != "" || tokens.RefreshToken != "" {
		s.Clear()
	}
	return false
}
