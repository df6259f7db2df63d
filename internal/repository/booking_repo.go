package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"itravelly/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCapacityExceeded is returned by CreateWithCapacity when the locked
// re-check finds the slot full.
var ErrCapacityExceeded = errors.New("slot capacity exceeded")

// dateLayout is how booking dates are stored; plain dates keep the capacity
// sum portable across postgres and sqlite.
const dateLayout = "2006-01-02"

type BookingFilters struct {
	UserID      int64
	CorporateID int64
	Limit       int
	Offset      int
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	BookingCode     string    `gorm:"column:booking_code;uniqueIndex"`
	UserID          int64     `gorm:"column:user_id"`
	ActivityID      int64     `gorm:"column:activity_id"`
	PromotionID     *int64    `gorm:"column:promotion_id"`
	BookingDate     string    `gorm:"column:booking_date"`
	BookingTime     string    `gorm:"column:booking_time"`
	NumberOfPeople  int       `gorm:"column:number_of_people"`
	OriginalPrice   float64   `gorm:"column:original_price"`
	DiscountAmount  float64   `gorm:"column:discount_amount"`
	FinalPrice      float64   `gorm:"column:final_price"`
	SpecialRequests *string   `gorm:"column:special_requests"`
	CustomerInfo    []byte    `gorm:"column:customer_info;type:json"`
	Status          string    `gorm:"column:status"`
	PaymentStatus   string    `gorm:"column:payment_status"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) (*domain.Booking, error) {
	date, err := time.Parse(dateLayout, m.BookingDate)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		ID:              m.ID,
		BookingCode:     m.BookingCode,
		UserID:          m.UserID,
		ActivityID:      m.ActivityID,
		PromotionID:     m.PromotionID,
		BookingDate:     date,
		BookingTime:     m.BookingTime,
		NumberOfPeople:  m.NumberOfPeople,
		OriginalPrice:   m.OriginalPrice,
		DiscountAmount:  m.DiscountAmount,
		FinalPrice:      m.FinalPrice,
		SpecialRequests: strOrEmpty(m.SpecialRequests),
		Status:          domain.BookingStatus(m.Status),
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}

	if len(m.CustomerInfo) > 0 {
		var ci domain.CustomerInfo
		if err := json.Unmarshal(m.CustomerInfo, &ci); err != nil {
			return nil, err
		}
		b.CustomerInfo = &ci
	}

	return b, nil
}

func toBookingModel(b *domain.Booking) (bookingModel, error) {
	m := bookingModel{
		ID:              b.ID,
		BookingCode:     b.BookingCode,
		UserID:          b.UserID,
		ActivityID:      b.ActivityID,
		PromotionID:     b.PromotionID,
		BookingDate:     b.BookingDate.Format(dateLayout),
		BookingTime:     b.BookingTime,
		NumberOfPeople:  b.NumberOfPeople,
		OriginalPrice:   b.OriginalPrice,
		DiscountAmount:  b.DiscountAmount,
		FinalPrice:      b.FinalPrice,
		SpecialRequests: strOrNil(b.SpecialRequests),
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.CustomerInfo != nil {
		raw, err := json.Marshal(b.CustomerInfo)
		if err != nil {
			return bookingModel{}, err
		}
		m.CustomerInfo = raw
	}

	return m, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m, err := toBookingModel(b)
	if err != nil {
		return err
	}
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	mapped, err := toDomainBooking(m)
	if err != nil {
		return err
	}
	*b = *mapped
	return nil
}

// CreateWithCapacity inserts the booking after re-checking the slot capacity
// under a row lock on the activity. Locking the activity row serialises
// concurrent creates for the same activity, so two requests racing for the
// last spots cannot both pass the check.
func (r *BookingRepository) CreateWithCapacity(ctx context.Context, b *domain.Booking, maxCapacity int) error {
	m, err := toBookingModel(b)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// sqlite has no SELECT ... FOR UPDATE; its single-writer transactions
		// already serialise the check below.
		q := tx.Select("id")
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var locked activityModel
		if err := q.First(&locked, b.ActivityID).Error; err != nil {
			return err
		}

		var booked int64
		err := tx.Model(&bookingModel{}).
			Select("COALESCE(SUM(number_of_people), 0)").
			Where("activity_id = ? AND booking_date = ? AND status = ?",
				b.ActivityID, m.BookingDate, string(domain.BookingConfirmed)).
			Scan(&booked).Error
		if err != nil {
			return err
		}

		if int(booked)+b.NumberOfPeople > maxCapacity {
			return ErrCapacityExceeded
		}

		return tx.Create(&m).Error
	})
	if err != nil {
		return err
	}

	mapped, err := toDomainBooking(m)
	if err != nil {
		return err
	}
	*b = *mapped
	return nil
}

// SumConfirmedPeople totals people across confirmed bookings for the activity
// on the given date. Time-of-day does not partition capacity.
func (r *BookingRepository) SumConfirmedPeople(ctx context.Context, activityID int64, date time.Time) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Select("COALESCE(SUM(number_of_people), 0)").
		Where("activity_id = ? AND booking_date = ? AND status = ?",
			activityID, date.Format(dateLayout), string(domain.BookingConfirmed)).
		Scan(&total).Error
	return int(total), err
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m)
}

func (r *BookingRepository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("booking_code = ?", code).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m)
}

func (r *BookingRepository) GetAll(ctx context.Context, f BookingFilters) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})

	if f.UserID > 0 {
		q = q.Where("bookings.user_id = ?", f.UserID)
	}
	if f.CorporateID > 0 {
		q = q.Joins("JOIN activities ON activities.id = bookings.activity_id").
			Where("activities.corporate_id = ?", f.CorporateID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var models []bookingModel
	if err := q.Order("bookings.created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainBookings(models)
}

// GetByCorporate returns every booking on the corporate's activities.
func (r *BookingRepository) GetByCorporate(ctx context.Context, corporateID int64) ([]domain.Booking, error) {
	return r.GetAll(ctx, BookingFilters{CorporateID: corporateID})
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Update("payment_status", string(status)).Error
}

// UpdateStatuses overwrites both statuses in one statement; used when a paid
// payment forces the booking to confirmed.
func (r *BookingRepository) UpdateStatuses(ctx context.Context, id int64, status domain.BookingStatus, payment domain.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         string(status),
			"payment_status": string(payment),
		}).Error
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&bookingModel{}, id).Error
}

func toDomainBookings(models []bookingModel) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		b, err := toDomainBooking(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}
