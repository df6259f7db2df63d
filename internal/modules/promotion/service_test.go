package promotion

import (
	"context"
	"errors"
	"testing"
	"time"

	"itravelly/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) Create(ctx context.Context, p *domain.Promotion) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 5
	}
	return args.Error(0)
}

func (m *MockPromotionRepository) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) GetActiveByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) GetAll(ctx context.Context, activityID, corporateID int64) ([]domain.Promotion, error) {
	args := m.Called(ctx, activityID, corporateID)
	return args.Get(0).([]domain.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) GetByCorporate(ctx context.Context, corporateID int64) ([]domain.Promotion, error) {
	args := m.Called(ctx, corporateID)
	return args.Get(0).([]domain.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockPromotionRepository) Save(ctx context.Context, p *domain.Promotion) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPromotionRepository) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func ownedActivity() *domain.Activity {
	return &domain.Activity{ID: 7, CorporateID: 3, Status: domain.ActivityActive}
}

func TestService_Create_Success(t *testing.T) {
	promotions := new(MockPromotionRepository)
	activities := new(MockActivityRepository)

	activities.On("GetActiveByID", mock.Anything, int64(7)).Return(ownedActivity(), nil)
	promotions.On("CodeExists", mock.Anything, "SAVE10").Return(false, nil)
	promotions.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(promotions, activities)

	p, err := service.Create(context.Background(), CreatePromotionRequest{
		Name:          "Launch discount",
		Code:          "SAVE10",
		Type:          domain.PromotionPercentage,
		DiscountValue: 10,
		ActivityID:    7,
	}, 3)

	assert.NoError(t, err)
	assert.True(t, p.IsActive)
	assert.Equal(t, domain.UnlimitedUses, p.MaxUses)
}

func TestService_Create_RejectsBadPercentage(t *testing.T) {
	promotions := new(MockPromotionRepository)
	activities := new(MockActivityRepository)

	activities.On("GetActiveByID", mock.Anything, int64(7)).Return(ownedActivity(), nil)

	service := NewService(promotions, activities)

	_, err := service.Create(context.Background(), CreatePromotionRequest{
		Name:          "Too generous",
		Type:          domain.PromotionPercentage,
		DiscountValue: 120,
		ActivityID:    7,
	}, 3)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Create_DuplicateCode(t *testing.T) {
	promotions := new(MockPromotionRepository)
	activities := new(MockActivityRepository)

	activities.On("GetActiveByID", mock.Anything, int64(7)).Return(ownedActivity(), nil)
	promotions.On("CodeExists", mock.Anything, "SAVE10").Return(true, nil)

	service := NewService(promotions, activities)

	_, err := service.Create(context.Background(), CreatePromotionRequest{
		Name:          "Launch discount",
		Code:          "SAVE10",
		Type:          domain.PromotionPercentage,
		DiscountValue: 10,
		ActivityID:    7,
	}, 3)

	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestService_Create_DuplicateCodeRace(t *testing.T) {
	promotions := new(MockPromotionRepository)
	activities := new(MockActivityRepository)

	activities.On("GetActiveByID", mock.Anything, int64(7)).Return(ownedActivity(), nil)
	promotions.On("CodeExists", mock.Anything, "SAVE10").Return(false, nil)
	// A concurrent create takes the code after the pre-check.
	promotions.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("UNIQUE constraint failed: promotions.code"))

	service := NewService(promotions, activities)

	_, err := service.Create(context.Background(), CreatePromotionRequest{
		Name:          "Launch discount",
		Code:          "SAVE10",
		Type:          domain.PromotionPercentage,
		DiscountValue: 10,
		ActivityID:    7,
	}, 3)

	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestService_Create_OtherCorporatesActivity(t *testing.T) {
	promotions := new(MockPromotionRepository)
	activities := new(MockActivityRepository)

	activities.On("GetActiveByID", mock.Anything, int64(7)).Return(ownedActivity(), nil)

	service := NewService(promotions, activities)

	_, err := service.Create(context.Background(), CreatePromotionRequest{
		Name:          "Sneaky",
		Type:          domain.PromotionFixedAmount,
		DiscountValue: 5,
		ActivityID:    7,
	}, 99)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_FindByCode_Windows(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	cases := []struct {
		name  string
		promo *domain.Promotion
		want  error
	}{
		{
			name:  "expired",
			promo: &domain.Promotion{ID: 5, ValidUntil: &past},
			want:  ErrExpired,
		},
		{
			name:  "not yet valid",
			promo: &domain.Promotion{ID: 5, ValidFrom: &future},
			want:  ErrNotYetValid,
		},
		{
			name:  "exhausted",
			promo: &domain.Promotion{ID: 5, MaxUses: 3, CurrentUses: 3},
			want:  ErrUsageLimitReached,
		},
		{
			name:  "unlimited uses never exhaust",
			promo: &domain.Promotion{ID: 5, MaxUses: domain.UnlimitedUses, CurrentUses: 100000},
			want:  nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			promotions := new(MockPromotionRepository)
			promotions.On("GetActiveByCode", mock.Anything, "SAVE10").Return(tc.promo, nil)

			service := NewService(promotions, new(MockActivityRepository))

			_, err := service.FindByCode(context.Background(), "SAVE10")
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestService_FindByCode_Unknown(t *testing.T) {
	promotions := new(MockPromotionRepository)
	promotions.On("GetActiveByCode", mock.Anything, "NOPE").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(promotions, new(MockActivityRepository))

	_, err := service.FindByCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ValidatePromotion_WrongActivity(t *testing.T) {
	promotions := new(MockPromotionRepository)
	promotions.On("GetActiveByCode", mock.Anything, "SAVE10").
		Return(&domain.Promotion{ID: 5, ActivityID: 7, MaxUses: domain.UnlimitedUses}, nil)

	service := NewService(promotions, new(MockActivityRepository))

	res, err := service.ValidatePromotion(context.Background(), "SAVE10", 8)

	assert.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "Promotion is not valid for this activity", res.Message)
}

func TestService_ValidatePromotion_ReportsRejectionsAsValues(t *testing.T) {
	past := time.Now().Add(-time.Hour)

	promotions := new(MockPromotionRepository)
	promotions.On("GetActiveByCode", mock.Anything, "OLD").
		Return(&domain.Promotion{ID: 5, ActivityID: 7, ValidUntil: &past}, nil)

	service := NewService(promotions, new(MockActivityRepository))

	res, err := service.ValidatePromotion(context.Background(), "OLD", 7)

	assert.NoError(t, err)
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Message)
}

func TestService_ValidatePromotion_Valid(t *testing.T) {
	promotions := new(MockPromotionRepository)
	promotions.On("GetActiveByCode", mock.Anything, "SAVE10").
		Return(&domain.Promotion{ID: 5, ActivityID: 7, MaxUses: domain.UnlimitedUses, DiscountValue: 10, Type: domain.PromotionPercentage}, nil)

	service := NewService(promotions, new(MockActivityRepository))

	res, err := service.ValidatePromotion(context.Background(), "SAVE10", 7)

	assert.NoError(t, err)
	assert.True(t, res.Valid)
	if assert.NotNil(t, res.Promotion) {
		assert.Equal(t, 10.0, res.Promotion.Discount(100))
	}
}
