package activity

import (
	"context"
	"time"

	"itravelly/internal/domain"
	"itravelly/internal/repository"
)

// ActivityRepository defines the persistence operations the service needs.
type ActivityRepository interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)
	GetActiveByID(ctx context.Context, id int64) (*domain.Activity, error)
	GetAll(ctx context.Context, f repository.ActivityFilters) ([]domain.Activity, int64, error)
	Search(ctx context.Context, query string) ([]domain.Activity, error)
	GetPopular(ctx context.Context, limit int) ([]domain.Activity, error)
	Save(ctx context.Context, a *domain.Activity) error
	UpdateStatus(ctx context.Context, id int64, status domain.ActivityStatus) error
}

// CorporateRepository resolves the owning corporate on create.
type CorporateRepository interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Corporate, error)
}

// BookingCounter totals confirmed attendance per activity and date.
type BookingCounter interface {
	SumConfirmedPeople(ctx context.Context, activityID int64, date time.Time) (int, error)
}
