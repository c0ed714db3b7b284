package http

import (
	"github.com/devfolio/portfolio-backend/internal/cache"
	"github.com/devfolio/portfolio-backend/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc   *service.ProjectService
	views cache.Views
}

func New(svc *service.ProjectService, views cache.Views) *Handler {
	if views == nil {
		views = cache.NoopViews{}
	}
	return &Handler{svc: svc, views: views}
}
