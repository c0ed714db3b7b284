package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNotSignedIn is returned when a token is requested before any credentials
// have been stored in the session.
var ErrNotSignedIn = errors.New("not signed in")

// Session is the client-side credential holder. It keeps the current ID and
// refresh tokens and exchanges the refresh token for a fresh ID token on
// demand. It never persists tokens.
type Session struct {
	client *Client

	mu           sync.Mutex
	idToken      string
	refreshToken string
	expiresAt    time.Time
}

func NewSession(client *Client) *Session {
	return &Session{client: client}
}

// Store replaces the session credentials after a sign-in or sign-up.
func (s *Session) Store(creds *Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idToken = creds.IDToken
	s.refreshToken = creds.RefreshToken
	s.expiresAt = time.Now().Add(creds.ExpiresIn)
}

// Clear drops the session credentials (sign-out).
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idToken = ""
	s.refreshToken = ""
	s.expiresAt = time.Time{}
}

// SignedIn reports whether credentials are currently held.
func (s *Session) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken != ""
}

// IDToken returns a bearer token for the current user. With forceRefresh the
// refresh token is always exchanged first, so mutations never ride on a stale
// credential; otherwise the cached token is reused until shortly before
// expiry.
func (s *Session) IDToken(ctx context.Context, forceRefresh bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshToken == "" {
		return "", ErrNotSignedIn
	}

	if !forceRefresh && s.idToken != "" && time.Until(s.expiresAt) > 30*time.Second {
		return s.idToken, nil
	}

	creds, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}

	s.idToken = creds.IDToken
	if creds.RefreshToken != "" {
		s.refreshToken = creds.RefreshToken
	}
	s.expiresAt = time.Now().Add(creds.ExpiresIn)
	return s.idToken, nil
}
