package repository

import (
	"context"

	"github.com/devfolio/portfolio-backend/internal/projects/domain"
)

// Store is the persistence boundary for projects. Implementations are
// injected at process start (selected by STORE_DRIVER); there is no ambient
// global store.
type Store interface {
	// Insert persists a new record with store-assigned id and timestamps,
	// returning the new id.
	Insert(ctx context.Context, data domain.ProjectData) (string, error)
	// Update overwrites the mutable fields of the record identified by id and
	// refreshes updatedAt. Returns domain.ErrNotFound if id does not resolve.
	Update(ctx context.Context, id string, data domain.ProjectData) error
	// Delete removes the record by id. Returns domain.ErrNotFound if id does
	// not resolve.
	Delete(ctx context.Context, id string) error
	// ListAll returns every project ordered by createdAt descending.
	ListAll(ctx context.Context) ([]domain.Project, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
