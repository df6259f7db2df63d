package domain

import "time"

type ActivityStatus string

const (
	ActivityActive   ActivityStatus = "active"
	ActivityInactive ActivityStatus = "inactive"
	ActivityHidden   ActivityStatus = "hidden"
)

type PricingType string

const (
	PricingPerPerson PricingType = "per_person"
	PricingPerGroup  PricingType = "per_group"
)

// TimeWindow is a daily availability window, both bounds in zero-padded "HH:MM".
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeeklyHours maps lowercase weekday names ("monday".."sunday") to the window
// the activity accepts bookings in. A missing day means closed.
type WeeklyHours map[string]TimeWindow

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Activity struct {
	ID                     int64          `json:"id"`
	Name                   string         `json:"name" validate:"required"`
	Description            string         `json:"description,omitempty"`
	DepartureLocation      string         `json:"departure_location"`
	Country                string         `json:"country"`
	Province               string         `json:"province"`
	Department             string         `json:"department,omitempty"`
	Address                string         `json:"address,omitempty"`
	Images                 []string       `json:"images,omitempty"`
	ActivityTypeID         int64          `json:"activity_type_id" validate:"required"`
	BranchID               int64          `json:"branch_id,omitempty"`
	CorporateID            int64          `json:"corporate_id"`
	PreviousPrice          *float64       `json:"previous_price,omitempty"`
	CurrentPrice           float64        `json:"current_price" validate:"gte=0"`
	PricingType            PricingType    `json:"pricing_type"`
	GroupSize              int            `json:"group_size,omitempty"`
	AppliesPromo           bool           `json:"applies_promo"`
	PaymentMethods         []string       `json:"payment_methods,omitempty"`
	MaxCapacityPerTimeSlot int            `json:"max_capacity_per_time_slot" validate:"required,gte=1"`
	DailyBookingLimit      int            `json:"daily_booking_limit"`
	Duration               string         `json:"duration,omitempty"`
	Instructions           string         `json:"instructions,omitempty"`
	Amenities              []string       `json:"amenities,omitempty"`
	FAQs                   []FAQ          `json:"faqs,omitempty"`
	AvailabilityHours      WeeklyHours    `json:"availability_hours"`
	Status                 ActivityStatus `json:"status"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

type ActivityType struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	IconURL     string    `json:"icon_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
