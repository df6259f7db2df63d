package corporate

import (
	"context"

	"itravelly/internal/domain"
)

type CorporateRepository interface {
	CreateWithUser(ctx context.Context, u *domain.User, c *domain.Corporate) error
	GetByID(ctx context.Context, id int64) (*domain.Corporate, error)
	GetByEmail(ctx context.Context, email string) (*domain.Corporate, error)
	Save(ctx context.Context, c *domain.Corporate) error
	CreateBranch(ctx context.Context, b *domain.Branch) error
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// VerificationSender issues an email verification code for a freshly
// registered account.
type VerificationSender interface {
	IssueCode(ctx context.Context, user *domain.User) error
}
