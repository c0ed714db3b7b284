package service

import (
	"context"
	"errors"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/devfolio/portfolio-backend/internal/auth"
	"github.com/devfolio/portfolio-backend/internal/cache"
	"github.com/devfolio/portfolio-backend/internal/projects/domain"
	"github.com/devfolio/portfolio-backend/internal/projects/repository"
	"github.com/devfolio/portfolio-backend/internal/projects/validate"
)

// Logical view names invalidated after every successful mutation.
const (
	PublicView = "/"
	AdminView  = "/admin/dashboard"
)

// FailureKind classifies a structured operation failure.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureValidation
	FailureUnauthorized
	FailureNotFound
	FailureStore
)

// Result is the structured outcome of a project operation. Every internal
// fault is normalized into it at this boundary; nothing below HTTP ever sees
// a raw error from these operations.
type Result struct {
	Success   bool
	Message   string
	ProjectID string
	Error     string
	Issues    map[string][]string
	Kind      FailureKind
}

// ProjectService composes the authorization gate, the validation schemas and
// the injected store into the four repository operations.
type ProjectService struct {
	gate  *auth.Gate
	store repository.Store
	views cache.Views
}

func NewProjectService(gate *auth.Gate, store repository.Store, views cache.Views) *ProjectService {
	if views == nil {
		views = cache.NoopViews{}
	}
	return &ProjectService{gate: gate, store: store, views: views}
}

// Add authorizes, validates and persists a new project.
func (s *ProjectService) Add(ctx context.Context, token string, in validate.Input) Result {
	if _, err := s.gate.Authorize(ctx, token); err != nil {
		return unauthorized(err)
	}

	data, verr := validate.ParseInput(in)
	if verr != nil {
		return invalid(verr)
	}

	id, err := s.store.Insert(ctx, data)
	if err != nil {
		log.Printf("add project: %v", err)
		return storeFailure(err)
	}

	s.invalidateViews(ctx)
	return Result{Success: true, Message: "Project added successfully.", ProjectID: id}
}

// Update authorizes, validates and overwrites the project identified by id,
// leaving id and createdAt untouched.
func (s *ProjectService) Update(ctx context.Context, token, id string, in validate.Input) Result {
	if _, err := s.gate.Authorize(ctx, token); err != nil {
		return unauthorized(err)
	}

	data, verr := validate.ParseInput(in)
	if verr != nil {
		return invalid(verr)
	}

	if err := s.store.Update(ctx, id, data); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Result{Error: "Project not found.", Kind: FailureNotFound}
		}
		log.Printf("update project %s: %v", id, err)
		return storeFailure(err)
	}

	s.invalidateViews(ctx)
	return Result{Success: true, Message: "Project updated successfully."}
}

// Delete authorizes and removes the project identified by id. Irreversible.
func (s *ProjectService) Delete(ctx context.Context, token, id string) Result {
	if _, err := s.gate.Authorize(ctx, token); err != nil {
		return unauthorized(err)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Result{Error: "Project not found.", Kind: FailureNotFound}
		}
		log.Printf("delete project %s: %v", id, err)
		return storeFailure(err)
	}

	s.invalidateViews(ctx)
	return Result{Success: true, Message: "Project deleted successfully."}
}

// List returns all projects ordered by createdAt descending. Reads are open
// to any caller and never raise: on store failure the listing degrades to
// empty and the failure is logged for operators.
func (s *ProjectService) List(ctx context.Context) []domain.Project {
	items, err := s.store.ListAll(ctx)
	if err != nil {
		log.Printf("list projects: %v", err)
		return []domain.Project{}
	}
	if items == nil {
		items = []domain.Project{}
	}
	return items
}

func (s *ProjectService) invalidateViews(ctx context.Context) {
	if err := s.views.Invalidate(ctx, PublicView, AdminView); err != nil {
		// Stale cache is a TTL-bounded inconvenience, not a mutation failure.
		log.Printf("invalidate views: %v", err)
	}
}

func unauthorized(err error) Result {
	return Result{Error: err.Error(), Kind: FailureUnauthorized}
}

func invalid(verr *validate.Error) Result {
	return Result{Error: "Invalid data.", Issues: verr.Issues, Kind: FailureValidation}
}

// storeFailure passes the store's message through, annotating the
// permission-denied case with configuration guidance.
func storeFailure(err error) Result {
	if status.Code(err) == codes.PermissionDenied {
		return Result{
			Error: "Store permission denied: " + err.Error() +
				". Check that the service account has write access to the projects collection.",
			Kind: FailureStore,
		}
	}
	return Result{Error: err.Error(), Kind: FailureStore}
}
