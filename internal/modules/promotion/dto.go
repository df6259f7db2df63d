package promotion

import (
	"time"

	"itravelly/internal/domain"
)

type CreatePromotionRequest struct {
	Name          string               `json:"name" binding:"required"`
	Code          string               `json:"code"`
	Type          domain.PromotionType `json:"type" binding:"required"`
	DiscountValue float64              `json:"discount_value" binding:"gte=0"`
	Description   string               `json:"description"`
	ValidFrom     *time.Time           `json:"valid_from"`
	ValidUntil    *time.Time           `json:"valid_until"`
	MaxUses       *int                 `json:"max_uses"`
	ActivityID    int64                `json:"activity_id" binding:"required"`
}

type UpdatePromotionRequest struct {
	Name          *string    `json:"name"`
	Type          *string    `json:"type"`
	DiscountValue *float64   `json:"discount_value"`
	Description   *string    `json:"description"`
	ValidFrom     *time.Time `json:"valid_from"`
	ValidUntil    *time.Time `json:"valid_until"`
	MaxUses       *int       `json:"max_uses"`
	IsActive      *bool      `json:"is_active"`
}

// ValidationResult is the structured answer for code validation; unlike
// FindByCode it never returns an error for a rejected code.
type ValidationResult struct {
	Valid     bool              `json:"valid"`
	Promotion *domain.Promotion `json:"promotion,omitempty"`
	Message   string            `json:"message,omitempty"`
}

type PromotionStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Expired   int `json:"expired"`
	TotalUses int `json:"total_uses"`
}
