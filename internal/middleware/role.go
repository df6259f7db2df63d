package middleware

import (
	"net/http"

	"itravelly/internal/domain"
	"itravelly/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

var roleRank = map[domain.UserRole]int{
	domain.RoleClient:     0,
	domain.RoleAdmin:      1,
	domain.RoleSuperadmin: 2,
}

// RequireRole admits callers whose role ranks at or above the required one,
// so a superadmin passes every admin gate.
func RequireRole(required domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		actor, ok := roleRank[domain.UserRole(role.(string))]
		if !ok || actor < roleRank[required] {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly requires at least the admin role.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

// SuperadminOnly requires the superadmin role.
func SuperadminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleSuperadmin)
}
