package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader carries the visitor session between the site and the API
const SessionHeader = "X-Session-ID"

const sessionKey = "sessionId"

// SessionMiddleware keeps the session a browser tab sends back and issues a
// new one when the header is missing or not a UUID. Lead rows are keyed by it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(SessionHeader))
		if err != nil || id == uuid.Nil {
			id = uuid.New()
		}

		sessionID := id.String()
		c.Set(sessionKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}

// SessionID returns the id set by SessionMiddleware
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
