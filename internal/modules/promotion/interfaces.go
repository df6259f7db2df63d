package promotion

import (
	"context"

	"itravelly/internal/domain"
)

type PromotionRepository interface {
	Create(ctx context.Context, p *domain.Promotion) error
	GetByID(ctx context.Context, id int64) (*domain.Promotion, error)
	GetActiveByCode(ctx context.Context, code string) (*domain.Promotion, error)
	GetAll(ctx context.Context, activityID, corporateID int64) ([]domain.Promotion, error)
	GetByCorporate(ctx context.Context, corporateID int64) ([]domain.Promotion, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, p *domain.Promotion) error
	Deactivate(ctx context.Context, id int64) error
}

type ActivityRepository interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Activity, error)
}
