package repository

import (
	"context"
	"time"

	"itravelly/internal/domain"

	"gorm.io/gorm"
)

type VerificationCodeRepository struct {
	db *gorm.DB
}

func NewVerificationCodeRepository(db *gorm.DB) *VerificationCodeRepository {
	return &VerificationCodeRepository{db: db}
}

type verificationCodeModel struct {
	ID        int64      `gorm:"column:id;primaryKey"`
	UserID    int64      `gorm:"column:user_id"`
	Email     string     `gorm:"column:email"`
	Code      string     `gorm:"column:code"`
	IsUsed    bool       `gorm:"column:is_used"`
	ExpiresAt time.Time  `gorm:"column:expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UsedAt    *time.Time `gorm:"column:used_at"`
}

func (verificationCodeModel) TableName() string { return "verification_codes" }

func toDomainVerificationCode(m verificationCodeModel) *domain.VerificationCode {
	return &domain.VerificationCode{
		ID:        m.ID,
		UserID:    m.UserID,
		Email:     m.Email,
		Code:      m.Code,
		IsUsed:    m.IsUsed,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
		UsedAt:    m.UsedAt,
	}
}

func (r *VerificationCodeRepository) Create(ctx context.Context, vc *domain.VerificationCode) error {
	m := verificationCodeModel{
		UserID:    vc.UserID,
		Email:     vc.Email,
		Code:      vc.Code,
		ExpiresAt: vc.ExpiresAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*vc = *toDomainVerificationCode(m)
	return nil
}

func (r *VerificationCodeRepository) FindUnused(ctx context.Context, email, code string) (*domain.VerificationCode, error) {
	var m verificationCodeModel
	tx := r.db.WithContext(ctx).
		Where("email = ? AND code = ? AND is_used = ?", email, code, false).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainVerificationCode(m), nil
}

func (r *VerificationCodeRepository) MarkUsed(ctx context.Context, id int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&verificationCodeModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_used": true, "used_at": &now}).Error
}

// DeleteExpired removes codes past their expiry; used by the cleanup job.
func (r *VerificationCodeRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&verificationCodeModel{})
	return tx.RowsAffected, tx.Error
}
