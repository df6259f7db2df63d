package middleware

import (
	"context"
	"net/http"

	"itravelly/internal/domain"
	"itravelly/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CorporateResolver looks up the corporate owned by a user.
type CorporateResolver interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Corporate, error)
}

// CorporateContext resolves the authenticated admin's corporate and stores
// its ID under "corporate_id". Must run after Auth.
func CorporateContext(corporates CorporateResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		corp, err := corporates.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, http.StatusForbidden, "NO_CORPORATE", "No corporate linked to this account")
			c.Abort()
			return
		}
		if !corp.IsActive {
			response.Error(c, http.StatusForbidden, "CORPORATE_INACTIVE", "Corporate account is inactive")
			c.Abort()
			return
		}

		c.Set("corporate_id", corp.ID)
		c.Next()
	}
}

// CorporateID returns the corporate resolved by CorporateContext, 0 outside
// corporate routes.
func CorporateID(c *gin.Context) int64 {
	return c.GetInt64("corporate_id")
}
