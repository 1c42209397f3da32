package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/eshop/internal/user/application"
	"github.com/wyfcoding/eshop/internal/user/domain"
	"github.com/wyfcoding/pkg/response"
)

const (
	userIDKey = "auth_user_id"
	roleKey   = "auth_role"
	emailKey  = "auth_email"
)

// AuthMiddleware resolves the bearer token into a user identity. Downstream
// handlers read the user id from the gin context and pass it to the services
// explicitly.
func AuthMiddleware(tokens *application.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.ErrorWithStatus(c, http.StatusUnauthorized, "missing bearer token", "")
			c.Abort()
			return
		}
		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.ErrorWithStatus(c, http.StatusUnauthorized, "invalid or expired token", "")
			c.Abort()
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.Role)
		c.Set(emailKey, claims.Email)
		c.Next()
	}
}

// RequireAdmin guards privileged routes; it must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if RoleFromContext(c) != string(domain.RoleAdmin) {
			response.ErrorWithStatus(c, http.StatusForbidden, "admin role required", "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user id, 0 when unauthenticated.
func UserIDFromContext(c *gin.Context) uint {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(uint)
	return userID
}

func RoleFromContext(c *gin.Context) string {
	role, _ := c.Get(roleKey)
	r, _ := role.(string)
	return r
}

func EmailFromContext(c *gin.Context) string {
	email, _ := c.Get(emailKey)
	e, _ := email.(string)
	return e
}
