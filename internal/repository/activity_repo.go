package repository

import (
	"context"
	"encoding/json"
	"time"

	"itravelly/internal/domain"

	"gorm.io/gorm"
)

type ActivityFilters struct {
	ActivityTypeID int64
	Country        string
	Province       string
	CorporateID    int64
	Limit          int
	Offset         int
}

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

type activityModel struct {
	ID                     int64     `gorm:"column:id;primaryKey"`
	Name                   string    `gorm:"column:name"`
	Description            *string   `gorm:"column:description"`
	DepartureLocation      string    `gorm:"column:departure_location"`
	Country                string    `gorm:"column:country"`
	Province               string    `gorm:"column:province"`
	Department             *string   `gorm:"column:department"`
	Address                *string   `gorm:"column:address"`
	Images                 []byte    `gorm:"column:images;type:json"`
	ActivityTypeID         int64     `gorm:"column:activity_type_id"`
	BranchID               *int64    `gorm:"column:branch_id"`
	CorporateID            int64     `gorm:"column:corporate_id"`
	PreviousPrice          *float64  `gorm:"column:previous_price"`
	CurrentPrice           float64   `gorm:"column:current_price"`
	PricingType            string    `gorm:"column:pricing_type"`
	GroupSize              int       `gorm:"column:group_size"`
	AppliesPromo           bool      `gorm:"column:applies_promo"`
	PaymentMethods         []byte    `gorm:"column:payment_methods;type:json"`
	MaxCapacityPerTimeSlot int       `gorm:"column:max_capacity_per_time_slot"`
	DailyBookingLimit      int       `gorm:"column:daily_booking_limit"`
	Duration               *string   `gorm:"column:duration"`
	Instructions           *string   `gorm:"column:instructions"`
	Amenities              []byte    `gorm:"column:amenities;type:json"`
	FAQs                   []byte    `gorm:"column:faqs;type:json"`
	AvailabilityHours      []byte    `gorm:"column:availability_hours;type:json"`
	Status                 string    `gorm:"column:status"`
	CreatedAt              time.Time `gorm:"column:created_at"`
	UpdatedAt              time.Time `gorm:"column:updated_at"`
}

func (activityModel) TableName() string { return "activities" }

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func toDomainActivity(m activityModel) (*domain.Activity, error) {
	a := &domain.Activity{
		ID:                     m.ID,
		Name:                   m.Name,
		Description:            strOrEmpty(m.Description),
		DepartureLocation:      m.DepartureLocation,
		Country:                m.Country,
		Province:               m.Province,
		Department:             strOrEmpty(m.Department),
		Address:                strOrEmpty(m.Address),
		ActivityTypeID:         m.ActivityTypeID,
		CorporateID:            m.CorporateID,
		PreviousPrice:          m.PreviousPrice,
		CurrentPrice:           m.CurrentPrice,
		PricingType:            domain.PricingType(m.PricingType),
		GroupSize:              m.GroupSize,
		AppliesPromo:           m.AppliesPromo,
		MaxCapacityPerTimeSlot: m.MaxCapacityPerTimeSlot,
		DailyBookingLimit:      m.DailyBookingLimit,
		Duration:               strOrEmpty(m.Duration),
		Instructions:           strOrEmpty(m.Instructions),
		Status:                 domain.ActivityStatus(m.Status),
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
	if m.BranchID != nil {
		a.BranchID = *m.BranchID
	}

	for _, col := range []struct {
		raw []byte
		dst any
	}{
		{m.Images, &a.Images},
		{m.PaymentMethods, &a.PaymentMethods},
		{m.Amenities, &a.Amenities},
		{m.FAQs, &a.FAQs},
		{m.AvailabilityHours, &a.AvailabilityHours},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func toActivityModel(a *domain.Activity) (activityModel, error) {
	m := activityModel{
		ID:                     a.ID,
		Name:                   a.Name,
		Description:            strOrNil(a.Description),
		DepartureLocation:      a.DepartureLocation,
		Country:                a.Country,
		Province:               a.Province,
		Department:             strOrNil(a.Department),
		Address:                strOrNil(a.Address),
		ActivityTypeID:         a.ActivityTypeID,
		CorporateID:            a.CorporateID,
		PreviousPrice:          a.PreviousPrice,
		CurrentPrice:           a.CurrentPrice,
		PricingType:            string(a.PricingType),
		GroupSize:              a.GroupSize,
		AppliesPromo:           a.AppliesPromo,
		MaxCapacityPerTimeSlot: a.MaxCapacityPerTimeSlot,
		DailyBookingLimit:      a.DailyBookingLimit,
		Duration:               strOrNil(a.Duration),
		Instructions:           strOrNil(a.Instructions),
		Status:                 string(a.Status),
		CreatedAt:              a.CreatedAt,
		UpdatedAt:              a.UpdatedAt,
	}
	if a.BranchID != 0 {
		v := a.BranchID
		m.BranchID = &v
	}

	for _, col := range []struct {
		src any
		dst *[]byte
	}{
		{a.Images, &m.Images},
		{a.PaymentMethods, &m.PaymentMethods},
		{a.Amenities, &m.Amenities},
		{a.FAQs, &m.FAQs},
		{a.AvailabilityHours, &m.AvailabilityHours},
	} {
		raw, err := json.Marshal(col.src)
		if err != nil {
			return activityModel{}, err
		}
		*col.dst = raw
	}

	return m, nil
}

func (r *ActivityRepository) Create(ctx context.Context, a *domain.Activity) error {
	m, err := toActivityModel(a)
	if err != nil {
		return err
	}
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	mapped, err := toDomainActivity(m)
	if err != nil {
		return err
	}
	*a = *mapped
	return nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	var m activityModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainActivity(m)
}

// GetActiveByID fetches an activity only when its status is active.
func (r *ActivityRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Activity, error) {
	var m activityModel
	tx := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, string(domain.ActivityActive)).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainActivity(m)
}

func (r *ActivityRepository) GetAll(ctx context.Context, f ActivityFilters) ([]domain.Activity, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&activityModel{}).
		Where("status = ?", string(domain.ActivityActive))

	if f.ActivityTypeID > 0 {
		q = q.Where("activity_type_id = ?", f.ActivityTypeID)
	}
	if f.Country != "" {
		q = q.Where("country = ?", f.Country)
	}
	if f.Province != "" {
		q = q.Where("province = ?", f.Province)
	}
	if f.CorporateID > 0 {
		q = q.Where("corporate_id = ?", f.CorporateID)
	}

	var total int64
	q.Count(&total)

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var models []activityModel
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, 0, err
	}
	out, err := toDomainActivities(models)
	return out, total, err
}

func (r *ActivityRepository) Search(ctx context.Context, query string) ([]domain.Activity, error) {
	like := "%" + query + "%"
	var models []activityModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.ActivityActive)).
		Where("name LIKE ? OR description LIKE ? OR departure_location LIKE ?", like, like, like).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainActivities(models)
}

// GetPopular orders active activities by their confirmed booking count.
func (r *ActivityRepository) GetPopular(ctx context.Context, limit int) ([]domain.Activity, error) {
	var models []activityModel
	err := r.db.WithContext(ctx).
		Model(&activityModel{}).
		Select("activities.*").
		Joins("JOIN bookings ON bookings.activity_id = activities.id AND bookings.status = ?", string(domain.BookingConfirmed)).
		Where("activities.status = ?", string(domain.ActivityActive)).
		Group("activities.id").
		Order("COUNT(bookings.id) DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainActivities(models)
}

func (r *ActivityRepository) Save(ctx context.Context, a *domain.Activity) error {
	m, err := toActivityModel(a)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *ActivityRepository) UpdateStatus(ctx context.Context, id int64, status domain.ActivityStatus) error {
	return r.db.WithContext(ctx).
		Model(&activityModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func toDomainActivities(models []activityModel) ([]domain.Activity, error) {
	out := make([]domain.Activity, 0, len(models))
	for _, m := range models {
		a, err := toDomainActivity(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, nil
}
