// Package auth keeps the optional bearer token sent to protected todo endpoints.
// TODOVIEW_TOKEN wins over ~/.todoview/credentials.json.
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
	// EnvToken overrides the credentials file.
	EnvToken = "TODOVIEW_TOKEN"
)

// Token sources.
const (
	SourceEnv  = "env"
	SourceFile = "file"
)

// ErrEmptyToken is returned when login is given only whitespace or a bare "Bearer".
var ErrEmptyToken = errors.New("empty token")

// TokenInfo is the active token and where it came from. Env tokens carry no dates.
type TokenInfo struct {
	Token     string
	Source    string
	CreatedAt time.Time
	ExpiresAt *time.Time
}

// Expired reports whether the token carries an expiry that has passed.
func (ti *TokenInfo) Expired(now time.Time) bool {
	return ti.ExpiresAt != nil && !now.Before(*ti.ExpiresAt)
}

// credentials is the on-disk shape of credentials.json.
type credentials struct {
	Token     string     `json:"token"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Dir is the per-user state directory, also used for the default config file.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".todoview"), nil
}

// CredentialsPath is where login stores the token.
func CredentialsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credFileName), nil
}

// GetToken returns the active token, or nil when none is configured.
func GetToken() (*TokenInfo, error) {
	if tok := normalize(os.Getenv(EnvToken)); tok != "" {
		return &TokenInfo{Token: tok, Source: SourceEnv}, nil
	}

	path, err := CredentialsPath()
	if err != nil {
		return nil, err
	}
	creds, err := readCredentials(path)
	if err != nil || creds == nil {
		return nil, err
	}
	return &TokenInfo{
		Token:     normalize(creds.Token),
		Source:    SourceFile,
		CreatedAt: creds.CreatedAt,
		ExpiresAt: creds.ExpiresAt,
	}, nil
}

// SetToken stores token with owner-only permissions.
// A positive ttl records an expiry relative to now; zero means no expiry.
func SetToken(token string, ttl time.Duration) error {
	token = normalize(token)
	if token == "" {
		return ErrEmptyToken
	}
	path, err := CredentialsPath()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	creds := credentials{Token: token, CreatedAt: now}
	if ttl > 0 {
		exp := now.Add(ttl)
		creds.ExpiresAt = &exp
	}
	return writeCredentials(path, creds)
}

// DeleteToken removes the credentials file. A missing file is not an error.
func DeleteToken() error {
	path, err := CredentialsPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

func readCredentials(path string) (*credentials, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return &c, nil
}

func writeCredentials(path string, c credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// normalize trims whitespace and an optional "Bearer " prefix.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "bearer") {
		return ""
	}
	if len(s) >= 7 && strings.EqualFold(s[:7], "bearer ") {
		s = strings.TrimSpace(s[7:])
	}
	return s
}
