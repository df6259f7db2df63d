package booking

import "itravelly/internal/domain"

type CreateBookingRequest struct {
	ActivityID      int64                `json:"activity_id" binding:"required"`
	BookingDate     string               `json:"booking_date" binding:"required"`
	BookingTime     string               `json:"booking_time" binding:"required"`
	NumberOfPeople  int                  `json:"number_of_people" binding:"required,gte=1"`
	PromotionCode   string               `json:"promotion_code"`
	SpecialRequests string               `json:"special_requests"`
	CustomerInfo    *domain.CustomerInfo `json:"customer_info"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}
