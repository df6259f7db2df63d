package activity

import "itravelly/internal/domain"

type CreateActivityRequest struct {
	Name                   string             `json:"name" binding:"required"`
	Description            string             `json:"description"`
	DepartureLocation      string             `json:"departure_location" binding:"required"`
	Country                string             `json:"country" binding:"required"`
	Province               string             `json:"province" binding:"required"`
	Department             string             `json:"department"`
	Address                string             `json:"address"`
	Images                 []string           `json:"images"`
	ActivityTypeID         int64              `json:"activity_type_id" binding:"required"`
	BranchID               int64              `json:"branch_id"`
	PreviousPrice          *float64           `json:"previous_price"`
	CurrentPrice           float64            `json:"current_price" binding:"gte=0"`
	PricingType            domain.PricingType `json:"pricing_type" binding:"required"`
	GroupSize              int                `json:"group_size"`
	AppliesPromo           bool               `json:"applies_promo"`
	PaymentMethods         []string           `json:"payment_methods"`
	MaxCapacityPerTimeSlot int                `json:"max_capacity_per_time_slot" binding:"required,gte=1"`
	DailyBookingLimit      int                `json:"daily_booking_limit"`
	Duration               string             `json:"duration"`
	Instructions           string             `json:"instructions"`
	Amenities              []string           `json:"amenities"`
	FAQs                   []domain.FAQ       `json:"faqs"`
	AvailabilityHours      domain.WeeklyHours `json:"availability_hours" binding:"required"`
}

type UpdateActivityRequest struct {
	Name                   *string             `json:"name"`
	Description            *string             `json:"description"`
	DepartureLocation      *string             `json:"departure_location"`
	Country                *string             `json:"country"`
	Province               *string             `json:"province"`
	Address                *string             `json:"address"`
	Images                 []string            `json:"images"`
	CurrentPrice           *float64            `json:"current_price"`
	PricingType            *domain.PricingType `json:"pricing_type"`
	MaxCapacityPerTimeSlot *int                `json:"max_capacity_per_time_slot"`
	DailyBookingLimit      *int                `json:"daily_booking_limit"`
	Duration               *string             `json:"duration"`
	Instructions           *string             `json:"instructions"`
	Amenities              []string            `json:"amenities"`
	AvailabilityHours      domain.WeeklyHours  `json:"availability_hours"`
	Status                 *string             `json:"status"`
}

// AvailabilityResult answers whether a slot can take N more people.
// RemainingCapacity reports the capacity left after admitting the request
// when Available, or the current remainder when not.
type AvailabilityResult struct {
	Available         bool   `json:"available"`
	RemainingCapacity int    `json:"remaining_capacity"`
	Message           string `json:"message,omitempty"`
}
