package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"itravelly/internal/domain"
	"itravelly/internal/pkg/bookingcode"
	"itravelly/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxCodeAttempts bounds the booking-code collision retry loop. With an
// 8-char [A-Z0-9] code the space is 36^8, so a second attempt is already rare.
const maxCodeAttempts = 5

const dateLayout = "2006-01-02"

type Service struct {
	bookings     BookingRepository
	users        UserRepository
	activities   ActivityRepository
	promotions   PromotionLookup
	availability AvailabilityChecker
	log          *logrus.Logger
}

func NewService(
	bookings BookingRepository,
	users UserRepository,
	activities ActivityRepository,
	promotions PromotionLookup,
	availability AvailabilityChecker,
	log *logrus.Logger,
) *Service {
	return &Service{
		bookings:     bookings,
		users:        users,
		activities:   activities,
		promotions:   promotions,
		availability: availability,
		log:          log,
	}
}

// Create books a slot for the user. Pricing is resolved from the activity at
// booking time, an invalid or exhausted promotion code is skipped silently,
// and the insert re-checks capacity under a row lock so concurrent requests
// cannot oversell the slot.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest, userID int64) (*domain.Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	a, err := s.activities.GetActiveByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	date, err := time.Parse(dateLayout, req.BookingDate)
	if err != nil {
		return nil, ErrValidation
	}
	if req.NumberOfPeople < 1 {
		return nil, ErrValidation
	}

	avail, err := s.availability.CheckAvailability(ctx, a.ID, date, req.BookingTime, req.NumberOfPeople)
	if err != nil {
		return nil, err
	}
	if !avail.Available {
		return nil, &NotAvailableError{Message: avail.Message}
	}

	originalPrice := a.CurrentPrice
	if a.PricingType == domain.PricingPerPerson {
		originalPrice = a.CurrentPrice * float64(req.NumberOfPeople)
	}

	var discount float64
	var promotionID *int64
	if req.PromotionCode != "" {
		if p := s.redeemPromotion(ctx, req.PromotionCode, a.ID); p != nil {
			discount = p.Discount(originalPrice)
			promotionID = &p.ID
		}
	}

	b := &domain.Booking{
		UserID:          userID,
		ActivityID:      a.ID,
		PromotionID:     promotionID,
		BookingDate:     date,
		BookingTime:     req.BookingTime,
		NumberOfPeople:  req.NumberOfPeople,
		OriginalPrice:   originalPrice,
		DiscountAmount:  discount,
		FinalPrice:      originalPrice - discount,
		SpecialRequests: req.SpecialRequests,
		CustomerInfo:    req.CustomerInfo,
		Status:          domain.BookingPending,
		PaymentStatus:   domain.PaymentPending,
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := bookingcode.Generate()
		if err != nil {
			return nil, err
		}
		b.BookingCode = code

		err = s.bookings.CreateWithCapacity(ctx, b, a.MaxCapacityPerTimeSlot)
		if err == nil {
			return b, nil
		}
		if errors.Is(err, repository.ErrCapacityExceeded) {
			return nil, &NotAvailableError{Message: "Not enough spots available"}
		}
		if isUniqueViolation(err) {
			s.log.WithField("booking_code", code).Warn("booking code collision, retrying")
			continue
		}
		return nil, err
	}

	return nil, ErrCodeExhausted
}

// redeemPromotion resolves the code for the activity and reserves one use.
// Any failure, from unknown code to an exhausted cap, returns nil: the
// booking proceeds at full price.
func (s *Service) redeemPromotion(ctx context.Context, code string, activityID int64) *domain.Promotion {
	p, err := s.promotions.GetActiveByCodeAndActivity(ctx, code, activityID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.WithError(err).WithField("code", code).Warn("promotion lookup failed")
		}
		return nil
	}
	if !p.WithinValidity(time.Now()) {
		return nil
	}

	ok, err := s.promotions.IncrementUses(ctx, p.ID)
	if err != nil {
		s.log.WithError(err).WithField("promotion_id", p.ID).Warn("promotion use increment failed")
		return nil
	}
	if !ok {
		return nil
	}
	return p
}

func (s *Service) FindAll(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, error) {
	return s.bookings.GetAll(ctx, f)
}

func (s *Service) FindForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.GetAll(ctx, repository.BookingFilters{UserID: userID})
}

func (s *Service) FindByCorporate(ctx context.Context, corporateID int64) ([]domain.Booking, error) {
	return s.bookings.GetByCorporate(ctx, corporateID)
}

func (s *Service) FindOne(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// FindOneForUser hides other users' bookings behind the same not-found error.
func (s *Service) FindOneForUser(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	b, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) FindByCode(ctx context.Context, code string) (*domain.Booking, error) {
	b, err := s.bookings.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// UpdateStatus transitions a booking on one of the corporate's activities.
func (s *Service) UpdateStatus(ctx context.Context, id, corporateID int64, status string) (*domain.Booking, error) {
	next := domain.BookingStatus(status)
	if !validBookingStatus(next) {
		return nil, ErrInvalidStatus
	}

	b, err := s.findOwned(ctx, id, corporateID)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	b.Status = next
	return b, nil
}

// UpdatePaymentStatus records a payment transition; a paid payment also
// confirms the booking in the same statement.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id, corporateID int64, status string) (*domain.Booking, error) {
	next := domain.PaymentStatus(status)
	if !validPaymentStatus(next) {
		return nil, ErrInvalidStatus
	}

	b, err := s.findOwned(ctx, id, corporateID)
	if err != nil {
		return nil, err
	}

	if next == domain.PaymentPaid {
		if err := s.bookings.UpdateStatuses(ctx, id, domain.BookingConfirmed, next); err != nil {
			return nil, err
		}
		b.Status = domain.BookingConfirmed
	} else {
		if err := s.bookings.UpdatePaymentStatus(ctx, id, next); err != nil {
			return nil, err
		}
	}
	b.PaymentStatus = next
	return b, nil
}

// Cancel lets the booking owner cancel while the booking is still open.
func (s *Service) Cancel(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	b, err := s.FindOneForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, ErrAlreadyFinal
	}

	if err := s.bookings.UpdateStatus(ctx, id, domain.BookingCancelled); err != nil {
		return nil, err
	}
	b.Status = domain.BookingCancelled
	return b, nil
}

// GetBookingStats aggregates the corporate's bookings; revenue counts only
// paid ones.
func (s *Service) GetBookingStats(ctx context.Context, corporateID int64) (*domain.BookingStats, error) {
	all, err := s.bookings.GetByCorporate(ctx, corporateID)
	if err != nil {
		return nil, err
	}

	stats := &domain.BookingStats{Total: len(all)}
	for _, b := range all {
		switch b.Status {
		case domain.BookingPending:
			stats.Pending++
		case domain.BookingConfirmed:
			stats.Confirmed++
		case domain.BookingCancelled:
			stats.Cancelled++
		case domain.BookingCompleted:
			stats.Completed++
		}
		if b.PaymentStatus == domain.PaymentPaid {
			stats.Revenue += b.FinalPrice
		}
	}
	return stats, nil
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}
	return s.bookings.Delete(ctx, id)
}

func (s *Service) findOwned(ctx context.Context, id, corporateID int64) (*domain.Booking, error) {
	b, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	a, err := s.activities.GetByID(ctx, b.ActivityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if a.CorporateID != corporateID {
		return nil, ErrNotFound
	}
	return b, nil
}

func validBookingStatus(s domain.BookingStatus) bool {
	switch s {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingCancelled,
		domain.BookingCompleted, domain.BookingNoShow, domain.BookingRescheduled,
		domain.BookingRefunded:
		return true
	}
	return false
}

func validPaymentStatus(s domain.PaymentStatus) bool {
	switch s {
	case domain.PaymentPending, domain.PaymentPaid, domain.PaymentFailed,
		domain.PaymentRefunded, domain.PaymentPartiallyRefunded,
		domain.PaymentCancelled, domain.PaymentExpired:
		return true
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite (tests) reports the constraint in the message text.
	return strings.Contains(err.Error(), "UNIQUE constraint")
}
