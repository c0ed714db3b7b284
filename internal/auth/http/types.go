package http

import (
	"context"

	"github.com/devfolio/portfolio-backend/internal/auth/identity"
)

// TokenRevoker is the slice of the Admin SDK used on sign-out.
type TokenRevoker interface {
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// Handler bundles the dependencies for the identity endpoints.
type Handler struct {
	identity *identity.Client
	revoker  TokenRevoker
}

func New(identityClient *identity.Client, revoker TokenRevoker) *Handler {
	return &Handler{identity: identityClient, revoker: revoker}
}
