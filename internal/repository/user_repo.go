package repository

import (
	"context"
	"strings"
	"time"

	"itravelly/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) DB() *gorm.DB { return r.db }

type userModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	FirstName       string    `gorm:"column:first_name"`
	LastName        string    `gorm:"column:last_name"`
	Email           string    `gorm:"column:email;uniqueIndex"`
	PhoneNumber     string    `gorm:"column:phone_number"`
	Country         *string   `gorm:"column:country"`
	CountryCode     *string   `gorm:"column:country_code"`
	DialCode        *string   `gorm:"column:dial_code"`
	PasswordHash    string    `gorm:"column:password_hash"`
	Role            string    `gorm:"column:role"`
	IsEmailVerified bool      `gorm:"column:is_email_verified"`
	IsActive        bool      `gorm:"column:is_active"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var country, countryCode, dialCode string
	if m.Country != nil {
		country = *m.Country
	}
	if m.CountryCode != nil {
		countryCode = *m.CountryCode
	}
	if m.DialCode != nil {
		dialCode = *m.DialCode
	}

	return &domain.User{
		ID:              m.ID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           m.Email,
		PhoneNumber:     m.PhoneNumber,
		Country:         country,
		CountryCode:     countryCode,
		DialCode:        dialCode,
		PasswordHash:    m.PasswordHash,
		Role:            domain.UserRole(m.Role),
		IsEmailVerified: m.IsEmailVerified,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var country, countryCode, dialCode *string
	if u.Country != "" {
		v := u.Country
		country = &v
	}
	if u.CountryCode != "" {
		v := u.CountryCode
		countryCode = &v
	}
	if u.DialCode != "" {
		v := u.DialCode
		dialCode = &v
	}

	return userModel{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           email,
		PhoneNumber:     u.PhoneNumber,
		Country:         country,
		CountryCode:     countryCode,
		DialCode:        dialCode,
		PasswordHash:    u.PasswordHash,
		Role:            string(u.Role),
		IsEmailVerified: u.IsEmailVerified,
		IsActive:        u.IsActive,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("email = ?", strings.TrimSpace(strings.ToLower(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("email = ? OR phone_number = ?", strings.TrimSpace(strings.ToLower(email)), phone).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetAll(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	var models []userModel
	var total int64

	q := r.db.WithContext(ctx).Model(&userModel{})
	q.Count(&total)

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.User, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainUser(m))
	}
	return out, total, nil
}

func (r *UserRepository) Save(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role domain.UserRole) error {
	return r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", id).
		Update("role", string(role)).Error
}

func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("email = ?", strings.TrimSpace(strings.ToLower(email))).
		Update("is_email_verified", true).Error
}
