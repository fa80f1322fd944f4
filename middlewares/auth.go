package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClerkIDKey is the gin context key the verified caller id is stored under.
const ClerkIDKey = "clerkId"

// TokenVerifier validates a session token and returns the caller's clerk
// id. The middleware treats that id as opaque and authoritative.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// Auth verifies the Bearer session token and sets the caller's clerk id in
// the request context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing Authorization token"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid Authorization token format"})
			c.Abort()
			return
		}

		clerkID, err := verifier.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ClerkIDKey, clerkID)
		c.Next()
	}
}
