package repository

import (
	"context"
	"time"

	"itravelly/internal/domain"

	"gorm.io/gorm"
)

type ActivityTypeRepository struct {
	db *gorm.DB
}

func NewActivityTypeRepository(db *gorm.DB) *ActivityTypeRepository {
	return &ActivityTypeRepository{db: db}
}

type activityTypeModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Description *string   `gorm:"column:description"`
	IconURL     *string   `gorm:"column:icon_url"`
	IsActive    bool      `gorm:"column:is_active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (activityTypeModel) TableName() string { return "activity_types" }

func toDomainActivityType(m activityTypeModel) *domain.ActivityType {
	return &domain.ActivityType{
		ID:          m.ID,
		Name:        m.Name,
		Description: strOrEmpty(m.Description),
		IconURL:     strOrEmpty(m.IconURL),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *ActivityTypeRepository) Create(ctx context.Context, t *domain.ActivityType) error {
	m := activityTypeModel{
		Name:        t.Name,
		Description: strOrNil(t.Description),
		IconURL:     strOrNil(t.IconURL),
		IsActive:    true,
	}
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*t = *toDomainActivityType(m)
	return nil
}

func (r *ActivityTypeRepository) GetByID(ctx context.Context, id int64) (*domain.ActivityType, error) {
	var m activityTypeModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainActivityType(m), nil
}

func (r *ActivityTypeRepository) GetAll(ctx context.Context) ([]domain.ActivityType, error) {
	var models []activityTypeModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.ActivityType, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainActivityType(m))
	}
	return out, nil
}

func (r *ActivityTypeRepository) Save(ctx context.Context, t *domain.ActivityType) error {
	m := activityTypeModel{
		ID:          t.ID,
		Name:        t.Name,
		Description: strOrNil(t.Description),
		IconURL:     strOrNil(t.IconURL),
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
	}
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *ActivityTypeRepository) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&activityTypeModel{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
