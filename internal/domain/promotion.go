package domain

import "time"

type PromotionType string

const (
	PromotionPercentage  PromotionType = "percentage"
	PromotionFixedAmount PromotionType = "fixed_amount"
)

// UnlimitedUses marks a promotion without a usage cap.
const UnlimitedUses = -1

type Promotion struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name" validate:"required"`
	Code          string        `json:"code,omitempty"`
	Type          PromotionType `json:"type"`
	DiscountValue float64       `json:"discount_value" validate:"gte=0"`
	Description   string        `json:"description,omitempty"`
	ValidFrom     *time.Time    `json:"valid_from,omitempty"`
	ValidUntil    *time.Time    `json:"valid_until,omitempty"`
	MaxUses       int           `json:"max_uses"`
	CurrentUses   int           `json:"current_uses"`
	IsActive      bool          `json:"is_active"`
	ActivityID    int64         `json:"activity_id" validate:"required"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Discount returns the discount amount the promotion yields for the given
// original price. Percentage promotions apply proportionally, fixed ones
// return the configured value as-is.
func (p *Promotion) Discount(originalPrice float64) float64 {
	if p.Type == PromotionPercentage {
		return originalPrice * p.DiscountValue / 100
	}
	return p.DiscountValue
}

// Exhausted reports whether the usage cap has been reached.
func (p *Promotion) Exhausted() bool {
	return p.MaxUses != UnlimitedUses && p.CurrentUses >= p.MaxUses
}

// WithinValidity reports whether now falls inside the optional validity window.
func (p *Promotion) WithinValidity(now time.Time) bool {
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidUntil != nil && now.After(*p.ValidUntil) {
		return false
	}
	return true
}
