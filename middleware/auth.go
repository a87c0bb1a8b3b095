package middleware

import (
	"context"
	"net/http"
	"strings"

	"admin-console/logger"
	"admin-console/remote"

	"github.com/gin-gonic/gin"
)

const OperatorKey = "operator"

// SessionProvider is the view of the operator session the middleware needs.
type SessionProvider interface {
	Authenticate(token string) (*remote.User, bool)
}

// RequireSession admits requests whose bearer token is the token of the
// operator currently signed in to the console.
func RequireSession(sess SessionProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		user, ok := sess.Authenticate(parts[1])
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
			c.Abort()
			return
		}

		c.Set(OperatorKey, user)
		ctx := context.WithValue(c.Request.Context(), logger.OperatorIdKey, user.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AdminMiddleware requires the signed-in operator to hold an admin role.
// It must run after RequireSession.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := Operator(c)
		if !ok || !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Operator returns the user stored by RequireSession.
func Operator(c *gin.Context) (*remote.User, bool) {
	v, exists := c.Get(OperatorKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*remote.User)
	return user, ok && user != nil
}
