package activity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"itravelly/internal/domain"
	"itravelly/internal/pkg/validator"
	"itravelly/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	activities ActivityRepository
	corporates CorporateRepository
	bookings   BookingCounter
}

func NewService(activities ActivityRepository, corporates CorporateRepository, bookings BookingCounter) *Service {
	return &Service{
		activities: activities,
		corporates: corporates,
		bookings:   bookings,
	}
}

func (s *Service) Create(ctx context.Context, req CreateActivityRequest, corporateID int64) (*domain.Activity, error) {
	if _, err := s.corporates.GetActiveByID(ctx, corporateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCorporateNotFound
		}
		return nil, err
	}

	if err := validateWeeklyHours(req.AvailabilityHours); err != nil {
		return nil, err
	}

	a := &domain.Activity{
		Name:                   req.Name,
		Description:            req.Description,
		DepartureLocation:      req.DepartureLocation,
		Country:                req.Country,
		Province:               req.Province,
		Department:             req.Department,
		Address:                req.Address,
		Images:                 req.Images,
		ActivityTypeID:         req.ActivityTypeID,
		BranchID:               req.BranchID,
		CorporateID:            corporateID,
		PreviousPrice:          req.PreviousPrice,
		CurrentPrice:           req.CurrentPrice,
		PricingType:            req.PricingType,
		GroupSize:              req.GroupSize,
		AppliesPromo:           req.AppliesPromo,
		PaymentMethods:         req.PaymentMethods,
		MaxCapacityPerTimeSlot: req.MaxCapacityPerTimeSlot,
		DailyBookingLimit:      req.DailyBookingLimit,
		Duration:               req.Duration,
		Instructions:           req.Instructions,
		Amenities:              req.Amenities,
		FAQs:                   req.FAQs,
		AvailabilityHours:      req.AvailabilityHours,
		Status:                 domain.ActivityActive,
	}
	if fields := validator.Validate(a); fields != nil {
		return nil, ErrValidation
	}

	if err := s.activities.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) FindAll(ctx context.Context, f repository.ActivityFilters) ([]domain.Activity, int64, error) {
	return s.activities.GetAll(ctx, f)
}

func (s *Service) FindOne(ctx context.Context, id int64) (*domain.Activity, error) {
	a, err := s.activities.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) FindByCorporate(ctx context.Context, corporateID int64) ([]domain.Activity, error) {
	out, _, err := s.activities.GetAll(ctx, repository.ActivityFilters{CorporateID: corporateID})
	return out, err
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.Activity, error) {
	return s.activities.Search(ctx, query)
}

func (s *Service) Popular(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.activities.GetPopular(ctx, limit)
}

func (s *Service) Update(ctx context.Context, id, corporateID int64, req UpdateActivityRequest) (*domain.Activity, error) {
	a, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.CorporateID != corporateID {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.DepartureLocation != nil {
		a.DepartureLocation = *req.DepartureLocation
	}
	if req.Country != nil {
		a.Country = *req.Country
	}
	if req.Province != nil {
		a.Province = *req.Province
	}
	if req.Address != nil {
		a.Address = *req.Address
	}
	if req.Images != nil {
		a.Images = req.Images
	}
	if req.CurrentPrice != nil {
		if *req.CurrentPrice < 0 {
			return nil, ErrValidation
		}
		prev := a.CurrentPrice
		a.PreviousPrice = &prev
		a.CurrentPrice = *req.CurrentPrice
	}
	if req.PricingType != nil {
		a.PricingType = *req.PricingType
	}
	if req.MaxCapacityPerTimeSlot != nil {
		if *req.MaxCapacityPerTimeSlot < 1 {
			return nil, ErrValidation
		}
		a.MaxCapacityPerTimeSlot = *req.MaxCapacityPerTimeSlot
	}
	if req.DailyBookingLimit != nil {
		a.DailyBookingLimit = *req.DailyBookingLimit
	}
	if req.Duration != nil {
		a.Duration = *req.Duration
	}
	if req.Instructions != nil {
		a.Instructions = *req.Instructions
	}
	if req.Amenities != nil {
		a.Amenities = req.Amenities
	}
	if req.AvailabilityHours != nil {
		if err := validateWeeklyHours(req.AvailabilityHours); err != nil {
			return nil, err
		}
		a.AvailabilityHours = req.AvailabilityHours
	}
	if req.Status != nil {
		switch domain.ActivityStatus(*req.Status) {
		case domain.ActivityActive, domain.ActivityInactive, domain.ActivityHidden:
			a.Status = domain.ActivityStatus(*req.Status)
		default:
			return nil, ErrValidation
		}
	}
	if fields := validator.Validate(a); fields != nil {
		return nil, ErrValidation
	}

	if err := s.activities.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Remove hides the activity rather than deleting it, so existing bookings
// keep their reference.
func (s *Service) Remove(ctx context.Context, id, corporateID int64) error {
	a, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if a.CorporateID != corporateID {
		return ErrForbidden
	}
	return s.activities.UpdateStatus(ctx, id, domain.ActivityHidden)
}

// CheckAvailability reports whether the activity can take numberOfPeople more
// on the given date and time. Capacity is tracked per date: every confirmed
// booking on the date counts against the one shared per-slot capacity.
func (s *Service) CheckAvailability(ctx context.Context, activityID int64, date time.Time, timeOfDay string, numberOfPeople int) (*AvailabilityResult, error) {
	a, err := s.FindOne(ctx, activityID)
	if err != nil {
		return nil, err
	}

	day := strings.ToLower(date.Weekday().String())
	window, ok := a.AvailabilityHours[day]
	if !ok {
		return &AvailabilityResult{
			Available:         false,
			RemainingCapacity: 0,
			Message:           "Activity not available on this day",
		}, nil
	}

	// Zero-padded HH:MM strings order lexicographically like clock times; the
	// window is half-open [start, end).
	if timeOfDay < window.Start || timeOfDay >= window.End {
		return &AvailabilityResult{
			Available:         false,
			RemainingCapacity: 0,
			Message:           "Time not within availability hours",
		}, nil
	}

	booked, err := s.bookings.SumConfirmedPeople(ctx, activityID, date)
	if err != nil {
		return nil, err
	}

	remaining := a.MaxCapacityPerTimeSlot - booked
	if remaining < numberOfPeople {
		return &AvailabilityResult{
			Available:         false,
			RemainingCapacity: remaining,
			Message:           fmt.Sprintf("Only %d spots available", remaining),
		}, nil
	}

	return &AvailabilityResult{
		Available:         true,
		RemainingCapacity: remaining - numberOfPeople,
	}, nil
}

func validateWeeklyHours(wh domain.WeeklyHours) error {
	for day, w := range wh {
		switch day {
		case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		default:
			return ErrValidation
		}
		if !validClock(w.Start) || !validClock(w.End) || w.Start >= w.End {
			return ErrValidation
		}
	}
	return nil
}

func validClock(v string) bool {
	_, err := time.Parse("15:04", v)
	return err == nil && len(v) == 5
}
