package auth

import (
	"context"
	"time"

	"itravelly/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error)
	MarkEmailVerified(ctx context.Context, email string) error
}

type VerificationCodeRepository interface {
	Create(ctx context.Context, vc *domain.VerificationCode) error
	FindUnused(ctx context.Context, email, code string) (*domain.VerificationCode, error)
	MarkUsed(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, email, role string) (string, error)
}

type Mailer interface {
	SendVerificationCode(to, code string) error
}
