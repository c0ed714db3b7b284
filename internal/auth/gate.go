package auth

import (
	"context"
	"errors"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"
)

// ErrUnauthorized is returned when a mutation is attempted without a valid,
// non-expired identity credential.
var ErrUnauthorized = errors.New("unauthorized")

// Identity is the verified caller of a mutation.
type Identity struct {
	UID   string
	Email string
}

// TokenVerifier is the slice of the Firebase Admin SDK the gate needs.
// Tests substitute a fake.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// Policy decides whether a verified identity may mutate. The default accepts
// every authenticated identity; deployments that add a role or custom claim
// model plug their check in here.
type Policy func(identity *Identity) error

// Gate verifies a caller-supplied bearer token before permitting a mutation.
// Tokens are forwarded explicitly by the caller; the gate never reads ambient
// session state.
type Gate struct {
	verifier TokenVerifier
	policy   Policy
}

func NewGate(verifier TokenVerifier, policy Policy) *Gate {
	if policy == nil {
		policy = func(*Identity) error { return nil }
	}
	return &Gate{verifier: verifier, policy: policy}
}

// Authorize resolves a token to a verified identity or fails closed.
func (g *Gate) Authorize(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: authentication token is missing, please log in again", ErrUnauthorized)
	}

	decoded, err := g.verifier.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired authentication token", ErrUnauthorized)
	}

	identity := &Identity{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		identity.Email = email
	}

	if err := g.policy(identity); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return identity, nil
}
