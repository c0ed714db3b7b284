package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	authmw "github.com/devfolio/portfolio-backend/internal/auth/middleware"
	"github.com/devfolio/portfolio-backend/internal/projects/service"
	"github.com/devfolio/portfolio-backend/internal/projects/validate"
)

func (h *Handler) add(c *gin.Context) {
	var in validate.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	token := authmw.ExtractToken(c)
	res := h.svc.Add(c.Request.Context(), token, in)
	if !res.Success {
		writeFailure(c, res)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project_id": res.ProjectID, "message": res.Message})
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")

	var in validate.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	token := authmw.ExtractToken(c)
	res := h.svc.Update(c.Request.Context(), token, id, in)
	if !res.Success {
		writeFailure(c, res)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": res.Message})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")

	token := authmw.ExtractToken(c)
	res := h.svc.Delete(c.Request.Context(), token, id)
	if !res.Success {
		writeFailure(c, res)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": res.Message})
}

// list serves the public listing. The rendered payload is cached under the
// public view name and recomputed after invalidation.
func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()

	if payload, ok := h.views.Get(ctx, service.PublicView); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	items := h.svc.List(ctx)
	payload, err := json.Marshal(gin.H{"ok": true, "projects": items})
	if err != nil {
		log.Printf("render projects view: %v", err)
		c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
		return
	}

	h.views.Set(ctx, service.PublicView, payload)
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// WarmPublicView recomputes the public listing payload and stores it in the
// view cache. Used by the cron warmer.
func (h *Handler) WarmPublicView(ctx context.Context) error {
	items := h.svc.List(ctx)
	payload, err := json.Marshal(gin.H{"ok": true, "projects": items})
	if err != nil {
		return err
	}
	h.views.Set(ctx, service.PublicView, payload)
	return nil
}

func writeFailure(c *gin.Context, res service.Result) {
	body := gin.H{"ok": false, "error": res.Error}
	if len(res.Issues) > 0 {
		body["issues"] = res.Issues
	}

	switch res.Kind {
	case service.FailureValidation:
		c.JSON(http.StatusBadRequest, body)
	case service.FailureUnauthorized:
		c.JSON(http.StatusUnauthorized, body)
	case service.FailureNotFound:
		c.JSON(http.StatusNotFound, body)
	default:
		c.JSON(http.StatusInternalServerError, body)
	}
}
