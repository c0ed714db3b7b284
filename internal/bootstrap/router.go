package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	httpapi "github.com/devfolio/portfolio-backend/internal/api/http"
	"github.com/devfolio/portfolio-backend/internal/api/middleware"
	"github.com/devfolio/portfolio-backend/internal/auth"
	authhttp "github.com/devfolio/portfolio-backend/internal/auth/http"
	"github.com/devfolio/portfolio-backend/internal/auth/identity"
	"github.com/devfolio/portfolio-backend/internal/cache"
	projectshttp "github.com/devfolio/portfolio-backend/internal/projects/http"
	"github.com/devfolio/portfolio-backend/internal/projects/repository"
	"github.com/devfolio/portfolio-backend/internal/projects/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Gate        *auth.Gate
	Store       repository.Store
	Views       cache.Views
	Identity    *identity.Client
	Revoker     authhttp.TokenRevoker
}

// BuildRouter assembles the API surface. The projects handler is returned so
// the caller can wire the view warmer to it.
func BuildRouter(dep RouterDeps) (*gin.Engine, *projectshttp.Handler) {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())

	svc := service.NewProjectService(dep.Gate, dep.Store, dep.Views)
	projectsHandler := projectshttp.New(svc, dep.Views)

	mutationLimit := middleware.RateLimitMiddleware(rate.Limit(5), 10)
	projectsGroup := api.Group("/projects")
	projectsHandler.Register(projectsGroup, mutationLimit)

	if dep.Identity != nil {
		authHandler := authhttp.New(dep.Identity, dep.Revoker)
		authHandler.Register(api.Group("/auth"), dep.Gate)
	}

	return r, projectsHandler
}
