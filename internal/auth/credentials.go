// Package auth stores the planner session cookie between runs.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	credFileName = "credentials.json"
	envSession   = "STUDYPLAN_SESSION"
)

type Credentials struct {
	Session   string    `json:"session"`
	Source    string    `json:"source"` // "env" | "file"
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps credentials under dir with owner-only permissions.
type Store struct {
	dir string
}

func NewStore(dir string) *Store { return &Store{dir: dir} }

func (s *Store) path() string { return filepath.Join(s.dir, credFileName) }

// Get returns nil, nil when not signed in.
func (s *Store) Get() (*Credentials, error) {
	if env := strings.TrimSpace(os.Getenv(envSession)); env != "" {
		return &Credentials{Session: env, Source: "env"}, nil
	}
	b, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if strings.TrimSpace(c.Session) == "" {
		return nil, nil
	}
	return &c, nil
}

// Session returns the stored cookie value or "".
func (s *Store) Session() string {
	c, err := s.Get()
	if err != nil || c == nil {
		return ""
	}
	return c.Session
}

func (s *Store) Set(session, email string) error {
	session = strings.TrimSpace(session)
	if session == "" {
		return fmt.Errorf("empty session")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	c := Credentials{
		Session:   session,
		Source:    "file",
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(s.path(), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (s *Store) Delete() error {
	if err := os.Remove(s.path()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}
