package middleware

import (
	"ngi/config"
	"ngi/response"
	"ngi/services"

	"github.com/gin-gonic/gin"
)

// Authenticator validates a bearer token
type Authenticator interface {
	Authenticate(token string) (*services.AdminInfo, error)
}

// AdminAuth lets through requests with a valid admin token. With devBypass
// set, requests addressed to localhost pass without one.
func AdminAuth(auth Authenticator, devBypass bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if devBypass && config.IsLocalHost(c.Request.Host) {
			c.Set("admin", "dev")
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		info, err := auth.Authenticate(authHeader)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("admin", info.Username)
		c.Next()
	}
}

// Actor names the admin behind a request for the audit log
func Actor(c *gin.Context) string {
	if v, ok := c.Get("admin"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anonymous"
}
