package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionHeader lets non-browser clients pin a view session explicitly
	SessionHeader = "X-Session-ID"
	// SessionCookie carries the view session for the browser shell
	SessionCookie = "sf_session"
	// SessionContextKey is the gin context key for the session ID
	SessionContextKey = "session_id"
)

// SessionMiddleware resolves the view session from the header or cookie and
// issues a fresh one when neither is present.
func SessionMiddleware(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				sessionID = cookie
			}
		}
		if sessionID == "" {
			sessionID = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sessionID, int(ttl.Seconds()), "/", "", false, true)
		}

		c.Set(SessionContextKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}

// GetSessionID retrieves the session ID from the Gin context
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionContextKey)
}
