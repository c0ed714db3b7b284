package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/portfolio-backend/internal/auth"
	authmw "github.com/devfolio/portfolio-backend/internal/auth/middleware"
	"github.com/devfolio/portfolio-backend/internal/projects/validate"
)

type credentialsResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	LocalID      string `json:"localId"`
	Email        string `json:"email,omitempty"`
}

// SignIn exchanges email/password for identity tokens.
func (h *Handler) SignIn(c *gin.Context) {
	var req validate.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if verr := validate.ValidateCredentials(req); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid data.", "issues": verr.Issues})
		return
	}

	creds, err := h.identity.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "credentials": credentialsResponse{
		IDToken:      creds.IDToken,
		RefreshToken: creds.RefreshToken,
		ExpiresIn:    int64(creds.ExpiresIn.Seconds()),
		LocalID:      creds.LocalID,
		Email:        creds.Email,
	}})
}

// SignUp creates a new email/password account.
func (h *Handler) SignUp(c *gin.Context) {
	var req validate.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	if verr := validate.ValidateSignup(req); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid data.", "issues": verr.Issues})
		return
	}

	creds, err := h.identity.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "credentials": credentialsResponse{
		IDToken:      creds.IDToken,
		RefreshToken: creds.RefreshToken,
		ExpiresIn:    int64(creds.ExpiresIn.Seconds()),
		LocalID:      creds.LocalID,
		Email:        creds.Email,
	}})
}

// Me returns the verified identity behind the forwarded token.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"uid":   c.GetString(authmw.CtxFirebaseUID),
		"email": c.GetString(authmw.CtxEmail),
	})
}

// SignOut revokes the caller's refresh tokens so stale sessions cannot mint
// new ID tokens.
func (h *Handler) SignOut(c *gin.Context) {
	uid := authmw.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	if h.revoker != nil {
		if err := h.revoker.RevokeRefreshTokens(c.Request.Context(), uid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Sign out failed."})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Register attaches the identity routes. Sign-in/sign-up are public; profile
// and sign-out require a verified token.
func (h *Handler) Register(rg *gin.RouterGroup, gate *auth.Gate) {
	rg.POST("/signin", h.SignIn)
	rg.POST("/signup", h.SignUp)

	authed := rg.Group("")
	authed.Use(authmw.RequireAuth(gate))
	authed.GET("/me", h.Me)
	authed.POST("/signout", h.SignOut)
}
