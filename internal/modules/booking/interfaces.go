package booking

import (
	"context"
	"time"

	"itravelly/internal/domain"
	"itravelly/internal/modules/activity"
	"itravelly/internal/repository"
)

type BookingRepository interface {
	CreateWithCapacity(ctx context.Context, b *domain.Booking, maxCapacity int) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCode(ctx context.Context, code string) (*domain.Booking, error)
	GetAll(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, error)
	GetByCorporate(ctx context.Context, corporateID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	UpdateStatuses(ctx context.Context, id int64, status domain.BookingStatus, payment domain.PaymentStatus) error
	Delete(ctx context.Context, id int64) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type ActivityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)
	GetActiveByID(ctx context.Context, id int64) (*domain.Activity, error)
}

// PromotionLookup is the narrow promotion surface booking creation needs:
// resolve a code scoped to the activity and reserve one use atomically.
type PromotionLookup interface {
	GetActiveByCodeAndActivity(ctx context.Context, code string, activityID int64) (*domain.Promotion, error)
	IncrementUses(ctx context.Context, id int64) (bool, error)
}

// AvailabilityChecker is implemented by the activity service.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, activityID int64, date time.Time, timeOfDay string, numberOfPeople int) (*activity.AvailabilityResult, error)
}
