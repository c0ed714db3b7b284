package auth

import (
	"context"
	"errors"

	fbauth "firebase.google.com/go/v4/auth"
)

// DenyAll is a TokenVerifier that rejects every token. It keeps the gate
// failing closed when no identity provider credentials are configured.
type DenyAll struct{}

func (DenyAll) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	return nil, errors.New("identity provider is not configured")
}
