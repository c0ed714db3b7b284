package auth

import (
	"context"
	"errors"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	uid   string
	email string
	err   error
}

func (f fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &fbauth.Token{
		UID:    f.uid,
		Claims: map[string]any{"email": f.email},
	}, nil
}

func TestGate_Authorize(t *testing.T) {
	ctx := context.Background()

	t.Run("missing token fails closed", func(t *testing.T) {
		gate := NewGate(fakeVerifier{uid: "u1"}, nil)
		identity, err := gate.Authorize(ctx, "")
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("verification failure fails closed", func(t *testing.T) {
		gate := NewGate(fakeVerifier{err: errors.New("expired")}, nil)
		identity, err := gate.Authorize(ctx, "stale-token")
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("valid token yields identity", func(t *testing.T) {
		gate := NewGate(fakeVerifier{uid: "u1", email: "admin@example.com"}, nil)
		identity, err := gate.Authorize(ctx, "good-token")
		require.NoError(t, err)
		assert.Equal(t, "u1", identity.UID)
		assert.Equal(t, "admin@example.com", identity.Email)
	})

	t.Run("policy can reject a verified identity", func(t *testing.T) {
		deny := func(id *Identity) error { return errors.New("admin claim required") }
		gate := NewGate(fakeVerifier{uid: "u1"}, deny)
		identity, err := gate.Authorize(ctx, "good-token")
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestDenyAll(t *testing.T) {
	gate := NewGate(DenyAll{}, nil)
	_, err := gate.Authorize(context.Background(), "any-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
