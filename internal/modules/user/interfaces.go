package user

import (
	"context"

	"itravelly/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetAll(ctx context.Context, limit, offset int) ([]domain.User, int64, error)
	Save(ctx context.Context, u *domain.User) error
	UpdateRole(ctx context.Context, id int64, role domain.UserRole) error
	SetActive(ctx context.Context, id int64, active bool) error
}
