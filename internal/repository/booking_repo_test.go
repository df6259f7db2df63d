package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"itravelly/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itravelly/internal/database"
)

func testDB(t *testing.T) *contextDB {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	db, err := database.Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), log)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	return &contextDB{
		bookings:   NewBookingRepository(db),
		activities: NewActivityRepository(db),
		promotions: NewPromotionRepository(db),
	}
}

type contextDB struct {
	bookings   *BookingRepository
	activities *ActivityRepository
	promotions *PromotionRepository
}

func seedActivity(t *testing.T, d *contextDB, capacity int) *domain.Activity {
	t.Helper()
	a := &domain.Activity{
		Name:                   "Day Hike",
		DepartureLocation:      "Main square",
		Country:                "Peru",
		Province:               "Cusco",
		ActivityTypeID:         1,
		CorporateID:            1,
		CurrentPrice:           100,
		PricingType:            domain.PricingPerPerson,
		MaxCapacityPerTimeSlot: capacity,
		AvailabilityHours:      domain.WeeklyHours{"monday": {Start: "09:00", End: "17:00"}},
		Status:                 domain.ActivityActive,
	}
	require.NoError(t, d.activities.Create(context.Background(), a))
	return a
}

func seedBooking(t *testing.T, d *contextDB, activityID int64, code string, people int, status domain.BookingStatus, date time.Time) {
	t.Helper()
	b := &domain.Booking{
		BookingCode:    code,
		UserID:         1,
		ActivityID:     activityID,
		BookingDate:    date,
		BookingTime:    "10:00",
		NumberOfPeople: people,
		OriginalPrice:  100,
		FinalPrice:     100,
		Status:         status,
		PaymentStatus:  domain.PaymentPending,
	}
	require.NoError(t, d.bookings.Create(context.Background(), b))
}

var bookingDate = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func TestBookingRepository_CreateWithCapacity(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()
	a := seedActivity(t, d, 10)

	seedBooking(t, d, a.ID, "AAAA1111", 4, domain.BookingConfirmed, bookingDate)

	// 4 confirmed + 7 requested exceeds 10.
	over := &domain.Booking{
		BookingCode:    "BBBB2222",
		UserID:         1,
		ActivityID:     a.ID,
		BookingDate:    bookingDate,
		BookingTime:    "10:00",
		NumberOfPeople: 7,
		Status:         domain.BookingConfirmed,
		PaymentStatus:  domain.PaymentPending,
	}
	err := d.bookings.CreateWithCapacity(ctx, over, a.MaxCapacityPerTimeSlot)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// 4 + 6 fits exactly.
	fits := &domain.Booking{
		BookingCode:    "CCCC3333",
		UserID:         1,
		ActivityID:     a.ID,
		BookingDate:    bookingDate,
		BookingTime:    "10:00",
		NumberOfPeople: 6,
		Status:         domain.BookingConfirmed,
		PaymentStatus:  domain.PaymentPending,
	}
	assert.NoError(t, d.bookings.CreateWithCapacity(ctx, fits, a.MaxCapacityPerTimeSlot))
	assert.NotZero(t, fits.ID)
}

func TestBookingRepository_CapacityIgnoresOtherDatesAndStatuses(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()
	a := seedActivity(t, d, 10)

	seedBooking(t, d, a.ID, "AAAA1111", 8, domain.BookingConfirmed, bookingDate.AddDate(0, 0, 7))
	seedBooking(t, d, a.ID, "BBBB2222", 8, domain.BookingCancelled, bookingDate)
	seedBooking(t, d, a.ID, "CCCC3333", 8, domain.BookingPending, bookingDate)

	// Neither other dates, cancelled nor still-pending bookings hold capacity.
	sum, err := d.bookings.SumConfirmedPeople(ctx, a.ID, bookingDate)
	assert.NoError(t, err)
	assert.Equal(t, 0, sum)

	b := &domain.Booking{
		BookingCode:    "DDDD4444",
		UserID:         1,
		ActivityID:     a.ID,
		BookingDate:    bookingDate,
		BookingTime:    "10:00",
		NumberOfPeople: 10,
		Status:         domain.BookingConfirmed,
		PaymentStatus:  domain.PaymentPending,
	}
	assert.NoError(t, d.bookings.CreateWithCapacity(ctx, b, a.MaxCapacityPerTimeSlot))
}

func TestBookingRepository_DuplicateCodeRejected(t *testing.T) {
	d := testDB(t)
	a := seedActivity(t, d, 10)

	seedBooking(t, d, a.ID, "AAAA1111", 1, domain.BookingPending, bookingDate)

	dup := &domain.Booking{
		BookingCode:    "AAAA1111",
		UserID:         1,
		ActivityID:     a.ID,
		BookingDate:    bookingDate,
		BookingTime:    "11:00",
		NumberOfPeople: 1,
		Status:         domain.BookingPending,
		PaymentStatus:  domain.PaymentPending,
	}
	err := d.bookings.CreateWithCapacity(context.Background(), dup, a.MaxCapacityPerTimeSlot)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint")
}

func TestBookingRepository_UpdateStatuses(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()
	a := seedActivity(t, d, 10)

	seedBooking(t, d, a.ID, "AAAA1111", 2, domain.BookingPending, bookingDate)
	b, err := d.bookings.GetByCode(ctx, "AAAA1111")
	require.NoError(t, err)

	require.NoError(t, d.bookings.UpdateStatuses(ctx, b.ID, domain.BookingConfirmed, domain.PaymentPaid))

	got, err := d.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	assert.True(t, got.BookingDate.Equal(bookingDate))
}

func TestPromotionRepository_IncrementUses(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	p := &domain.Promotion{
		Name:          "Launch discount",
		Code:          "SAVE10",
		Type:          domain.PromotionPercentage,
		DiscountValue: 10,
		MaxUses:       2,
		IsActive:      true,
		ActivityID:    1,
	}
	require.NoError(t, d.promotions.Create(ctx, p))

	for i := 0; i < 2; i++ {
		ok, err := d.promotions.IncrementUses(ctx, p.ID)
		assert.NoError(t, err)
		assert.True(t, ok, "use %d should succeed", i+1)
	}

	// The cap is enforced in the same UPDATE, so a third use cannot slip in.
	ok, err := d.promotions.IncrementUses(ctx, p.ID)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestPromotionRepository_IncrementUses_Unlimited(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	p := &domain.Promotion{
		Name:       "Evergreen",
		Code:       "ALWAYS",
		Type:       domain.PromotionFixedAmount,
		MaxUses:    domain.UnlimitedUses,
		IsActive:   true,
		ActivityID: 1,
	}
	require.NoError(t, d.promotions.Create(ctx, p))

	for i := 0; i < 5; i++ {
		ok, err := d.promotions.IncrementUses(ctx, p.ID)
		assert.NoError(t, err)
		assert.True(t, ok)
	}
}
