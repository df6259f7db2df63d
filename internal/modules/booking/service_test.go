package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"itravelly/internal/domain"
	"itravelly/internal/modules/activity"
	"itravelly/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateWithCapacity(ctx context.Context, b *domain.Booking, maxCapacity int) error {
	args := m.Called(ctx, b, maxCapacity)
	if args.Error(0) == nil && b != nil {
		b.ID = 999
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetAll(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByCorporate(ctx context.Context, corporateID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, corporateID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatuses(ctx context.Context, id int64, status domain.BookingStatus, payment domain.PaymentStatus) error {
	args := m.Called(ctx, id, status, payment)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

type MockPromotionLookup struct {
	mock.Mock
}

func (m *MockPromotionLookup) GetActiveByCodeAndActivity(ctx context.Context, code string, activityID int64) (*domain.Promotion, error) {
	args := m.Called(ctx, code, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promotion), args.Error(1)
}

func (m *MockPromotionLookup) IncrementUses(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockAvailabilityChecker struct {
	mock.Mock
}

func (m *MockAvailabilityChecker) CheckAvailability(ctx context.Context, activityID int64, date time.Time, timeOfDay string, numberOfPeople int) (*activity.AvailabilityResult, error) {
	args := m.Called(ctx, activityID, date, timeOfDay, numberOfPeople)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*activity.AvailabilityResult), args.Error(1)
}

type fixture struct {
	bookings     *MockBookingRepository
	users        *MockUserRepository
	activities   *MockActivityRepository
	promotions   *MockPromotionLookup
	availability *MockAvailabilityChecker
	service      *Service
}

func newFixture() *fixture {
	f := &fixture{
		bookings:     new(MockBookingRepository),
		users:        new(MockUserRepository),
		activities:   new(MockActivityRepository),
		promotions:   new(MockPromotionLookup),
		availability: new(MockAvailabilityChecker),
	}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	f.service = NewService(f.bookings, f.users, f.activities, f.promotions, f.availability, log)
	return f
}

func hikeActivity() *domain.Activity {
	return &domain.Activity{
		ID:                     7,
		Name:                   "Rainbow Mountain Day Hike",
		CorporateID:            3,
		CurrentPrice:           100,
		PricingType:            domain.PricingPerPerson,
		AppliesPromo:           true,
		MaxCapacityPerTimeSlot: 10,
		Status:                 domain.ActivityActive,
	}
}

func validCreateRequest() CreateBookingRequest {
	return CreateBookingRequest{
		ActivityID:     7,
		BookingDate:    "2026-08-31",
		BookingTime:    "10:00",
		NumberOfPeople: 1,
	}
}

func TestService_Create_PerPersonWithPercentagePromo(t *testing.T) {
	f := newFixture()

	f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	f.activities.On("GetActiveByID", mock.Anything, int64(7)).Return(hikeActivity(), nil)
	f.availability.On("CheckAvailability", mock.Anything, int64(7), mock.Anything, "10:00", 1).
		Return(&activity.AvailabilityResult{Available: true, RemainingCapacity: 9}, nil)
	f.promotions.On("GetActiveByCodeAndActivity", mock.Anything, "SAVE10", int64(7)).
		Return(&domain.Promotion{ID: 5, Code: "SAVE10", Type: domain.PromotionPercentage, DiscountValue: 10, ActivityID: 7}, nil)
	f.promotions.On("IncrementUses", mock.Anything, int64(5)).Return(true, nil)
	f.bookings.On("CreateWithCapacity", mock.Anything, mock.Anything, 10).Return(nil)

	req := validCreateRequest()
	req.PromotionCode = "SAVE10"

	b, err := f.service.Create(context.Background(), req, 1)

	assert.NoError(t, err)
	assert.Equal(t, 100.0, b.OriginalPrice)
	assert.Equal(t, 10.0, b.DiscountAmount)
	assert.Equal(t, 90.0, b.FinalPrice)
	if assert.NotNil(t, b.PromotionID) {
		assert.Equal(t, int64(5), *b.PromotionID)
	}
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.Len(t, b.BookingCode, 8)
}

func TestService_Create_PerGroupPricing(t *testing.T) {
	f := newFixture()

	a := hikeActivity()
	a.PricingType = domain.PricingPerGroup
	a.CurrentPrice = 180

	f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	f.activities.On("GetActiveByID", mock.Anything, int64(7)).Return(a, nil)
	f.availability.On("CheckAvailability", mock.Anything, int64(7), mock.Anything, "10:00", 4).
		Return(&activity.AvailabilityResult{Available: true, RemainingCapacity: 6}, nil)
	f.bookings.On("CreateWithCapacity", mock.Anything, mock.Anything, 10).Return(nil)

	req := validCreateRequest()
	req.NumberOfPeople = 4

	b, err := f.service.Create(context.Background(), req, 1)

	assert.NoError(t, err)
	assert.Equal(t, 180.0, b.OriginalPrice)
	assert.Equal(t, 180.0, b.FinalPrice)
}

func TestService_Create_PromoIgnoresActivityFlag(t *testing.T) {
	f := newFixture()

	a := hikeActivity()
	a.AppliesPromo = false

	f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	f.activities.On("GetActiveByID", mock.Anything, int64(7)).Return(a, nil)
	f.availability.On("CheckAvailability", mock.Anything, int64(7), mock.Anything, "10:00", 1).
		Return(&activity.AvailabilityResult{Available: true, RemainingCapacity: 9}, nil)
	f.promotions.On("GetActiveByCodeAndActivity", mock.Anything, "SAVE10", int64(7)).
		Return(&domain.Promotion{ID: 5, Code: "SAVE10", Type: domain.PromotionPercentage, DiscountValue: 10, ActivityID: 7}, nil)
	f.promotions.On("IncrementUses", mock.Anything, int64(5)).Return(true, nil)
	f.bookings.On("CreateWithCapacity", mock.Anything, mock.Anything, 10).Return(nil)

	req := validCreateRequest()
	req.PromotionCode = "SAVE10"

	// A code scoped to the activity discounts the booking no matter how the
	// activity is flagged.
	b, err := f.service.Create(context.Background(), req, 1)

	assert.NoError(t, err)
	assert.Equal(t, 10.0, b.DiscountAmount)
	assert.Equal(t, 90.0, b.FinalPrice)
}

func TestService_Create_ExhaustedPromoSkippedSilently(t *testing.T) {
	f := newFixture()

	f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	f.activities.On("GetActiveByID", mock.Anything, int64(7)).Return(hikeActivity(), nil)
	f.availability.On("CheckAvailability", mock.Anything, int64(7), mock.Anything, "10:00", 1).
		Return(&activity.AvailabilityResult{Available: true, RemainingCapacity: 9}, nil)
	f.promotions.On("GetActiveByCodeAndActivity", mock.Anything, "SAVE10", int64(7)).
		Return(&domain.Promotion{ID: 5, Code: "SAVE10", Type: domain.PromotionPercentage, DiscountValue: 10, ActivityID: 7}, nil)
	f.promotions.On("IncrementUses", mock.Anything, int64(5)).Return(false, nil)
	f.bookings.On("CreateWithCapacity", mock.Anything, mock.Anything, 10).Return(nil)

	req := validCreateRequest()
	req.PromotionCode = "SAVE10"

	b, err := f.service.Create(context.Background(), req, 1)

	assert.NoError(t, err)
	assert.Equal(t, 100.0, b.FinalPrice)
	assert.Zero(t, b.DiscountAmount)
	assert.Nil(t, b.PromotionID)
}

func TestService_Create_UnknownPromoSkippedSilently(t *testing.T) {
	f := newFixture()

	f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	f.activities.On("GetActiveByID", mock.Anything, int64(7)).Return(hikeActivity(), nil)
	f.availability.On("CheckAvailability", mock.Anything, int64(7), mock.Anything, "10:00", 1).
		Return(&activity.AvailabilityResult{Available: true, RemainingCapacity: 9}, nil)
	f.promotions.On("GetActiveByCodeAndActivity", mock.Anything, "NOPE", int64(7)).
		Return(nil, gorm.ErrRecordNotFound)
	f.bookings.On("CreateWithCapacity", mock.Anything, mock.Anything, 10).Return(nil)

	req := validCreateRequest()
	req.PromotionCode = "NOPE"

	b, err := f.service.Create(context.Background(), req, 1)

	assert.NoError(t, err)
	assert.Equal(t, 100.0, b.FinalPrice)
	assert.Nil(t, b.PromotionID)
}

func TestService_Create_FixedPromoCanExceedPrice(t *testing.T) {
	f := newFixture()

	f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	f.activities.On("GetActiveByID", mock.Anything, int64(7)).Return(hikeActivity(), nil)
	f.availability.On("CheckAvailability", mock.Anything, int64(7), mock.Anything, "10:00", 1).
		Return(&activity.AvailabilityResult{Available: true, RemainingCapacity: 9}, nil)
	f.promotions.On("GetActiveByCodeAndActivity", mock.Anything, "BIG150", int64(7)).
		Return(&domain.Promotion{ID: 6, Code: "BIG150", Type: domain.PromotionFixedAmount, DiscountValue: 150, ActivityID: 7}, nil)
	f.promotions.On("IncrementUses", mock.Anything, int64(6)).Return(true, nil)
	f.bookings.On("CreateWithCapacity", mock.Anything, mock.Anything, 10).Return(nil)

	req := validCreateRequest()
	req.PromotionCode = "BIG150"

	b, err := f.service.Create(context.Background(), req, 1)

	// The discount is applied as configured; the final price may go negative.
	assert.NoError(t, err)
	assert.Equal(t, 150.0, b.DiscountAmount)
	assert.Equal(t, -50.0, b.FinalPrice)
}

func TestService_Create_NotAvailable(t *testing.T) {
	f := newFixture()

	f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	f.activities.On("GetActiveByID", mock.Anything, int64(7)).Return(hikeActivity(), nil)
	f.availability.On("CheckAvailability", mock.Anything, int64(7), mock.Anything, "10:00", 1).
		Return(&activity.AvailabilityResult{Available: false, RemainingCapacity: 0, Message: "Only 0 spots available"}, nil)

	_, err := f.service.Create(context.Background(), validCreateRequest(), 1)

	var notAvail *NotAvailableError
	if assert.ErrorAs(t, err, &notAvail) {
		assert.Equal(t, "Only 0 spots available", notAvail.Message)
	}
	f.bookings.AssertNotCalled(t, "CreateWithCapacity", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create_CapacityRaceLost(t *testing.T) {
	f := newFixture()

	f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	f.activities.On("GetActiveByID", mock.Anything, int64(7)).Return(hikeActivity(), nil)
	f.availability.On("CheckAvailability", mock.Anything, int64(7), mock.Anything, "10:00", 1).
		Return(&activity.AvailabilityResult{Available: true, RemainingCapacity: 1}, nil)
	f.bookings.On("CreateWithCapacity", mock.Anything, mock.Anything, 10).Return(repository.ErrCapacityExceeded)

	_, err := f.service.Create(context.Background(), validCreateRequest(), 1)

	var notAvail *NotAvailableError
	assert.ErrorAs(t, err, &notAvail)
}

func TestService_Create_RetriesOnCodeCollision(t *testing.T) {
	f := newFixture()

	f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	f.activities.On("GetActiveByID", mock.Anything, int64(7)).Return(hikeActivity(), nil)
	f.availability.On("CheckAvailability", mock.Anything, int64(7), mock.Anything, "10:00", 1).
		Return(&activity.AvailabilityResult{Available: true, RemainingCapacity: 9}, nil)

	f.bookings.On("CreateWithCapacity", mock.Anything, mock.Anything, 10).
		Return(errors.New("UNIQUE constraint failed: bookings.booking_code")).Once()
	f.bookings.On("CreateWithCapacity", mock.Anything, mock.Anything, 10).
		Return(nil).Once()

	b, err := f.service.Create(context.Background(), validCreateRequest(), 1)

	assert.NoError(t, err)
	assert.NotEmpty(t, b.BookingCode)
	f.bookings.AssertNumberOfCalls(t, "CreateWithCapacity", 2)
}

func TestService_Create_UnknownUser(t *testing.T) {
	f := newFixture()

	f.users.On("GetByID", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.Create(context.Background(), validCreateRequest(), 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_Create_BadDate(t *testing.T) {
	f := newFixture()

	f.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	f.activities.On("GetActiveByID", mock.Anything, int64(7)).Return(hikeActivity(), nil)

	req := validCreateRequest()
	req.BookingDate = "31-08-2026"

	_, err := f.service.Create(context.Background(), req, 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_UpdatePaymentStatus_PaidConfirmsBooking(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(20)).
		Return(&domain.Booking{ID: 20, ActivityID: 7, Status: domain.BookingPending, PaymentStatus: domain.PaymentPending}, nil)
	f.activities.On("GetByID", mock.Anything, int64(7)).Return(hikeActivity(), nil)
	f.bookings.On("UpdateStatuses", mock.Anything, int64(20), domain.BookingConfirmed, domain.PaymentPaid).Return(nil)

	b, err := f.service.UpdatePaymentStatus(context.Background(), 20, 3, "paid")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, domain.PaymentPaid, b.PaymentStatus)
	f.bookings.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdatePaymentStatus_NonPaidLeavesStatus(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(20)).
		Return(&domain.Booking{ID: 20, ActivityID: 7, Status: domain.BookingPending, PaymentStatus: domain.PaymentPending}, nil)
	f.activities.On("GetByID", mock.Anything, int64(7)).Return(hikeActivity(), nil)
	f.bookings.On("UpdatePaymentStatus", mock.Anything, int64(20), domain.PaymentFailed).Return(nil)

	b, err := f.service.UpdatePaymentStatus(context.Background(), 20, 3, "failed")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentFailed, b.PaymentStatus)
}

func TestService_UpdateStatus_RejectsUnknownValue(t *testing.T) {
	f := newFixture()

	_, err := f.service.UpdateStatus(context.Background(), 20, 3, "shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_UpdateStatus_OtherCorporateGetsNotFound(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(20)).
		Return(&domain.Booking{ID: 20, ActivityID: 7, Status: domain.BookingPending}, nil)
	f.activities.On("GetByID", mock.Anything, int64(7)).Return(hikeActivity(), nil)

	_, err := f.service.UpdateStatus(context.Background(), 20, 99, "confirmed")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateStatus_OverwritesTerminalStatus(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(20)).
		Return(&domain.Booking{ID: 20, ActivityID: 7, Status: domain.BookingCancelled}, nil)
	f.activities.On("GetByID", mock.Anything, int64(7)).Return(hikeActivity(), nil)
	f.bookings.On("UpdateStatus", mock.Anything, int64(20), domain.BookingRefunded).Return(nil)

	// Only Cancel guards terminal states; a corporate can still move a
	// cancelled booking to refunded.
	b, err := f.service.UpdateStatus(context.Background(), 20, 3, "refunded")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingRefunded, b.Status)
}

func TestService_Cancel(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(20)).
		Return(&domain.Booking{ID: 20, UserID: 1, Status: domain.BookingPending}, nil)
	f.bookings.On("UpdateStatus", mock.Anything, int64(20), domain.BookingCancelled).Return(nil)

	b, err := f.service.Cancel(context.Background(), 20, 1)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestService_Cancel_TerminalBooking(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(20)).
		Return(&domain.Booking{ID: 20, UserID: 1, Status: domain.BookingCompleted}, nil)

	_, err := f.service.Cancel(context.Background(), 20, 1)
	assert.ErrorIs(t, err, ErrAlreadyFinal)
}

func TestService_Cancel_OtherUsersBooking(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByID", mock.Anything, int64(20)).
		Return(&domain.Booking{ID: 20, UserID: 2, Status: domain.BookingPending}, nil)

	_, err := f.service.Cancel(context.Background(), 20, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_GetBookingStats(t *testing.T) {
	f := newFixture()

	f.bookings.On("GetByCorporate", mock.Anything, int64(3)).Return([]domain.Booking{
		{Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentPaid, FinalPrice: 90},
		{Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentPaid, FinalPrice: 180},
		{Status: domain.BookingPending, PaymentStatus: domain.PaymentPending, FinalPrice: 100},
		{Status: domain.BookingCancelled, PaymentStatus: domain.PaymentRefunded, FinalPrice: 50},
		{Status: domain.BookingCompleted, PaymentStatus: domain.PaymentPaid, FinalPrice: 70},
	}, nil)

	stats, err := f.service.GetBookingStats(context.Background(), 3)

	assert.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 2, stats.Confirmed)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 340.0, stats.Revenue)
}
