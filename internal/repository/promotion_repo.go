package repository

import (
	"context"
	"time"

	"itravelly/internal/domain"

	"gorm.io/gorm"
)

type PromotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

type promotionModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	Name          string     `gorm:"column:name"`
	Code          *string    `gorm:"column:code;uniqueIndex"`
	Type          string     `gorm:"column:type"`
	DiscountValue float64    `gorm:"column:discount_value"`
	Description   *string    `gorm:"column:description"`
	ValidFrom     *time.Time `gorm:"column:valid_from"`
	ValidUntil    *time.Time `gorm:"column:valid_until"`
	MaxUses       int        `gorm:"column:max_uses"`
	CurrentUses   int        `gorm:"column:current_uses"`
	IsActive      bool       `gorm:"column:is_active"`
	ActivityID    int64      `gorm:"column:activity_id"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (promotionModel) TableName() string { return "promotions" }

func toDomainPromotion(m promotionModel) *domain.Promotion {
	return &domain.Promotion{
		ID:            m.ID,
		Name:          m.Name,
		Code:          strOrEmpty(m.Code),
		Type:          domain.PromotionType(m.Type),
		DiscountValue: m.DiscountValue,
		Description:   strOrEmpty(m.Description),
		ValidFrom:     m.ValidFrom,
		ValidUntil:    m.ValidUntil,
		MaxUses:       m.MaxUses,
		CurrentUses:   m.CurrentUses,
		IsActive:      m.IsActive,
		ActivityID:    m.ActivityID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toPromotionModel(p *domain.Promotion) promotionModel {
	return promotionModel{
		ID:            p.ID,
		Name:          p.Name,
		Code:          strOrNil(p.Code),
		Type:          string(p.Type),
		DiscountValue: p.DiscountValue,
		Description:   strOrNil(p.Description),
		ValidFrom:     p.ValidFrom,
		ValidUntil:    p.ValidUntil,
		MaxUses:       p.MaxUses,
		CurrentUses:   p.CurrentUses,
		IsActive:      p.IsActive,
		ActivityID:    p.ActivityID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (r *PromotionRepository) Create(ctx context.Context, p *domain.Promotion) error {
	m := toPromotionModel(p)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPromotion(m)
	return nil
}

func (r *PromotionRepository) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	var m promotionModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPromotion(m), nil
}

// GetActiveByCode looks up an active promotion by its code.
func (r *PromotionRepository) GetActiveByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	var m promotionModel
	tx := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPromotion(m), nil
}

// GetActiveByCodeAndActivity is the booking-create lookup: the code must be
// active and scoped to the given activity.
func (r *PromotionRepository) GetActiveByCodeAndActivity(ctx context.Context, code string, activityID int64) (*domain.Promotion, error) {
	var m promotionModel
	tx := r.db.WithContext(ctx).
		Where("code = ? AND activity_id = ? AND is_active = ?", code, activityID, true).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPromotion(m), nil
}

func (r *PromotionRepository) GetAll(ctx context.Context, activityID, corporateID int64) ([]domain.Promotion, error) {
	q := r.db.WithContext(ctx).
		Model(&promotionModel{}).
		Where("promotions.is_active = ?", true)

	if activityID > 0 {
		q = q.Where("promotions.activity_id = ?", activityID)
	}
	if corporateID > 0 {
		q = q.Joins("JOIN activities ON activities.id = promotions.activity_id").
			Where("activities.corporate_id = ?", corporateID)
	}

	var models []promotionModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Promotion, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainPromotion(m))
	}
	return out, nil
}

// GetByCorporate returns every promotion (active or not) attached to the
// corporate's activities; used for stats.
func (r *PromotionRepository) GetByCorporate(ctx context.Context, corporateID int64) ([]domain.Promotion, error) {
	var models []promotionModel
	err := r.db.WithContext(ctx).
		Model(&promotionModel{}).
		Joins("JOIN activities ON activities.id = promotions.activity_id").
		Where("activities.corporate_id = ?", corporateID).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Promotion, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainPromotion(m))
	}
	return out, nil
}

func (r *PromotionRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&promotionModel{}).
		Where("code = ?", code).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *PromotionRepository) Save(ctx context.Context, p *domain.Promotion) error {
	m := toPromotionModel(p)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *PromotionRepository) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&promotionModel{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// IncrementUses reserves one use atomically. The conditional update makes the
// usage cap race-free: two concurrent bookings cannot both take the last use.
// Returns false when the cap is already exhausted.
func (r *PromotionRepository) IncrementUses(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&promotionModel{}).
		Where("id = ? AND (max_uses = ? OR current_uses < max_uses)", id, domain.UnlimitedUses).
		UpdateColumn("current_uses", gorm.Expr("current_uses + 1"))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
