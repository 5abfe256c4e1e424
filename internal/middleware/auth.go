package middleware

import (
	"net/http"
	"strings"

	"milk_delivery/internal/models"
	"milk_delivery/internal/services"

	"github.com/gin-gonic/gin"
)

const identityKey = "caller_identity"

// Authenticate verifies the bearer token and puts the caller identity into
// the request context.
func Authenticate(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		identity, err := authService.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(identityKey, *identity)
		c.Next()
	}
}

// Authorize allows only the given user types past this point. Authenticate
// must run first.
func Authorize(allowedTypes ...models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := Caller(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Caller identity not found in context"})
			return
		}

		for _, t := range allowedTypes {
			if identity.UserType == t {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	}
}

// Caller returns the authenticated identity stored by Authenticate.
func Caller(c *gin.Context) (services.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return services.Identity{}, false
	}
	identity, ok := value.(services.Identity)
	return identity, ok
}
