package activitytype

import (
	"context"

	"itravelly/internal/domain"
)

type ActivityTypeRepository interface {
	Create(ctx context.Context, t *domain.ActivityType) error
	GetByID(ctx context.Context, id int64) (*domain.ActivityType, error)
	GetAll(ctx context.Context) ([]domain.ActivityType, error)
	Save(ctx context.Context, t *domain.ActivityType) error
	Deactivate(ctx context.Context, id int64) error
}
