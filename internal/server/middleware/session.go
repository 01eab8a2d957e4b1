package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie names the cookie carrying the opaque session key.
const SessionCookie = "scholar_session"

const sessionKeyCtx = "scholar.session_key"

// SessionConfig controls the session cookie.
type SessionConfig struct {
	// Secure marks the cookie HTTPS-only.
	Secure bool
	// MaxAge in seconds. Zero makes it a browser-session cookie.
	MaxAge int
}

// Session makes sure every request carries a session key. A missing or
// malformed cookie is replaced with a fresh random key.
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(key) != nil {
			key = uuid.NewString()
		}
		// Refresh on every response so MaxAge slides with activity.
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     SessionCookie,
			Value:    key,
			Path:     "/",
			MaxAge:   cfg.MaxAge,
			HttpOnly: true,
			Secure:   cfg.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		c.Set(sessionKeyCtx, key)
		c.Next()
	}
}

// SessionKey returns the key attached by Session, or "".
func SessionKey(c *gin.Context) string {
	return c.GetString(sessionKeyCtx)
}
