package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/portfolio-backend/internal/auth"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
)

// RequireAuth validates the forwarded bearer token through the gate and
// stores the verified identity in the request context.
func RequireAuth(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			c.Abort()
			return
		}

		identity, err := gate.Authorize(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxFirebaseUID, identity.UID)
		if identity.Email != "" {
			c.Set(CtxEmail, identity.Email)
		}

		c.Next()
	}
}

// ExtractToken extracts the Bearer token from the Authorization header.
func ExtractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}

// UserFirebaseUID extracts the verified Firebase UID from the Gin context.
// This is set by RequireAuth.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}
