package middleware

import (
	"net/http"

	"habitboard/internal/config"
	"habitboard/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextUserKey is where Session stores the caller's user id.
const ContextUserKey = "user_id"

// Session provisions an anonymous user identity on first visit: a
// httpOnly cookie holding an opaque uuid. Returning visitors are
// recognized by the same cookie. The resolved id is placed on the gin
// context for handlers; a request that somehow ends up without one is
// rejected rather than served cross-tenant data.
func Session(cfg config.SessionConfig) gin.HandlerFunc {
	maxAge := cfg.MaxAgeDays * 24 * 60 * 60
	return func(c *gin.Context) {
		userID, err := c.Cookie(cfg.CookieName)
		if err != nil || userID == "" {
			userID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, userID, maxAge, "/", "", cfg.Secure, true)
			logger.Info("session.provisioned", "user", userID)
		}
		c.Set(ContextUserKey, userID)
		c.Next()
	}
}

// UserID returns the session user id, failing the request if missing.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserKey)
	if id == "" {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "missing user session"})
		return "", false
	}
	return id, true
}
