package ginserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the authenticated user id. The API gateway terminates
// authentication and forwards the identity; this service trusts the header.
const UserIDHeader = "X-User-ID"

const principalContextKey = "nomadstay.user"

// IdentityMiddleware stores the forwarded user id on the request context.
// Requests without the header stay anonymous; handlers that need a caller
// reject them with 401.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(UserIDHeader)); id != "" {
			c.Set(principalContextKey, id)
		}
		c.Next()
	}
}

func requireUser(c *gin.Context) (string, bool) {
	id := c.GetString(principalContextKey)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return "", false
	}
	return id, true
}
