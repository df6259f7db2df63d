package domain

import "time"

type BookingStatus string

const (
	BookingPending     BookingStatus = "pending"
	BookingConfirmed   BookingStatus = "confirmed"
	BookingCancelled   BookingStatus = "cancelled"
	BookingCompleted   BookingStatus = "completed"
	BookingNoShow      BookingStatus = "no_show"
	BookingRescheduled BookingStatus = "rescheduled"
	BookingRefunded    BookingStatus = "refunded"
)

// Terminal reports whether the status admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "pending"
	PaymentPaid              PaymentStatus = "paid"
	PaymentFailed            PaymentStatus = "failed"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
	PaymentCancelled         PaymentStatus = "cancelled"
	PaymentExpired           PaymentStatus = "expired"
)

type CustomerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Booking struct {
	ID              int64         `json:"id"`
	BookingCode     string        `json:"booking_code"`
	UserID          int64         `json:"user_id"`
	ActivityID      int64         `json:"activity_id" validate:"required"`
	PromotionID     *int64        `json:"promotion_id,omitempty"`
	BookingDate     time.Time     `json:"booking_date"`
	BookingTime     string        `json:"booking_time" validate:"required"`
	NumberOfPeople  int           `json:"number_of_people" validate:"required,gte=1"`
	OriginalPrice   float64       `json:"original_price"`
	DiscountAmount  float64       `json:"discount_amount"`
	FinalPrice      float64       `json:"final_price"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	CustomerInfo    *CustomerInfo `json:"customer_info,omitempty"`
	Status          BookingStatus `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	User      *User      `json:"user,omitempty"`
	Activity  *Activity  `json:"activity,omitempty"`
	Promotion *Promotion `json:"promotion,omitempty"`
}

// BookingStats aggregates a corporate's bookings per status; revenue counts
// only paid bookings.
type BookingStats struct {
	Total     int     `json:"total"`
	Pending   int     `json:"pending"`
	Confirmed int     `json:"confirmed"`
	Cancelled int     `json:"cancelled"`
	Completed int     `json:"completed"`
	Revenue   float64 `json:"revenue"`
}
