package promotion

import (
	"context"
	"errors"
	"strings"
	"time"

	"itravelly/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	promotions PromotionRepository
	activities ActivityRepository
}

func NewService(promotions PromotionRepository, activities ActivityRepository) *Service {
	return &Service{
		promotions: promotions,
		activities: activities,
	}
}

func (s *Service) Create(ctx context.Context, req CreatePromotionRequest, corporateID int64) (*domain.Promotion, error) {
	a, err := s.activities.GetActiveByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	if a.CorporateID != corporateID {
		return nil, ErrForbidden
	}

	switch req.Type {
	case domain.PromotionPercentage:
		if req.DiscountValue < 0 || req.DiscountValue > 100 {
			return nil, ErrValidation
		}
	case domain.PromotionFixedAmount:
		if req.DiscountValue < 0 {
			return nil, ErrValidation
		}
	default:
		return nil, ErrValidation
	}

	if req.Code != "" {
		exists, err := s.promotions.CodeExists(ctx, req.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateCode
		}
	}

	maxUses := domain.UnlimitedUses
	if req.MaxUses != nil {
		maxUses = *req.MaxUses
	}

	p := &domain.Promotion{
		Name:          req.Name,
		Code:          req.Code,
		Type:          req.Type,
		DiscountValue: req.DiscountValue,
		Description:   req.Description,
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
		MaxUses:       maxUses,
		IsActive:      true,
		ActivityID:    req.ActivityID,
	}

	if err := s.promotions.Create(ctx, p); err != nil {
		// A concurrent create can win the code between the pre-check and the
		// insert; the unique index reports it as a duplicate either way.
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	return p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite (tests) reports the constraint in the message text.
	return strings.Contains(err.Error(), "UNIQUE constraint")
}

func (s *Service) FindAll(ctx context.Context, activityID, corporateID int64) ([]domain.Promotion, error) {
	return s.promotions.GetAll(ctx, activityID, corporateID)
}

func (s *Service) FindOne(ctx context.Context, id int64) (*domain.Promotion, error) {
	p, err := s.promotions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// FindByCode resolves an active promotion and checks its validity window and
// usage cap. Missing or inactive codes are NotFound; a resolved but currently
// unusable promotion reports why.
func (s *Service) FindByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	p, err := s.promotions.GetActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	if p.ValidUntil != nil && now.After(*p.ValidUntil) {
		return nil, ErrExpired
	}
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return nil, ErrNotYetValid
	}
	if p.Exhausted() {
		return nil, ErrUsageLimitReached
	}

	return p, nil
}

// ValidatePromotion wraps FindByCode with an activity-scope check and reports
// the outcome as a value instead of an error.
func (s *Service) ValidatePromotion(ctx context.Context, code string, activityID int64) (*ValidationResult, error) {
	p, err := s.FindByCode(ctx, code)
	if err != nil {
		switch err {
		case ErrNotFound, ErrExpired, ErrNotYetValid, ErrUsageLimitReached:
			return &ValidationResult{Valid: false, Message: err.Error()}, nil
		}
		return nil, err
	}

	if p.ActivityID != activityID {
		return &ValidationResult{
			Valid:   false,
			Message: "Promotion is not valid for this activity",
		}, nil
	}

	return &ValidationResult{Valid: true, Promotion: p}, nil
}

func (s *Service) Update(ctx context.Context, id, corporateID int64, req UpdatePromotionRequest) (*domain.Promotion, error) {
	p, err := s.findOwned(ctx, id, corporateID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Type != nil {
		switch domain.PromotionType(*req.Type) {
		case domain.PromotionPercentage, domain.PromotionFixedAmount:
			p.Type = domain.PromotionType(*req.Type)
		default:
			return nil, ErrValidation
		}
	}
	if req.DiscountValue != nil {
		if *req.DiscountValue < 0 || (p.Type == domain.PromotionPercentage && *req.DiscountValue > 100) {
			return nil, ErrValidation
		}
		p.DiscountValue = *req.DiscountValue
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ValidFrom != nil {
		p.ValidFrom = req.ValidFrom
	}
	if req.ValidUntil != nil {
		p.ValidUntil = req.ValidUntil
	}
	if req.MaxUses != nil {
		p.MaxUses = *req.MaxUses
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.promotions.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Remove deactivates the promotion; bookings that already used it keep their
// reference.
func (s *Service) Remove(ctx context.Context, id, corporateID int64) error {
	if _, err := s.findOwned(ctx, id, corporateID); err != nil {
		return err
	}
	return s.promotions.Deactivate(ctx, id)
}

func (s *Service) GetPromotionStats(ctx context.Context, corporateID int64) (*PromotionStats, error) {
	promotions, err := s.promotions.GetByCorporate(ctx, corporateID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := &PromotionStats{Total: len(promotions)}
	for _, p := range promotions {
		if p.IsActive && (p.ValidUntil == nil || p.ValidUntil.After(now)) {
			stats.Active++
		}
		if p.ValidUntil != nil && !p.ValidUntil.After(now) {
			stats.Expired++
		}
		stats.TotalUses += p.CurrentUses
	}
	return stats, nil
}

func (s *Service) findOwned(ctx context.Context, id, corporateID int64) (*domain.Promotion, error) {
	p, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	a, err := s.activities.GetActiveByID(ctx, p.ActivityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	if a.CorporateID != corporateID {
		return nil, ErrForbidden
	}
	return p, nil
}
