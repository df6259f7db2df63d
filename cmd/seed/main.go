package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"itravelly/internal/database"
	"itravelly/internal/domain"
	"itravelly/internal/repository"
)

func main() {
	log := logrus.New()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "itravelly.db"
	}

	db, err := database.Connect(dsn, log)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}

	log.Info("running migrations")
	if err := repository.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	// Clean in FK-safe order.
	log.Info("cleaning old data")
	for _, table := range []string{
		"bookings", "promotions", "activities", "branches",
		"corporates", "activity_types", "verification_codes", "users",
	} {
		db.Exec("DELETE FROM " + table)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	corporates := repository.NewCorporateRepository(db)
	activityTypes := repository.NewActivityTypeRepository(db)
	activities := repository.NewActivityRepository(db)
	promotions := repository.NewPromotionRepository(db)
	bookings := repository.NewBookingRepository(db)

	log.Info("creating users")
	superadmin := &domain.User{
		FirstName:       "Sofia",
		LastName:        "Ramos",
		Email:           "superadmin@itravelly.com",
		PhoneNumber:     "+5112000001",
		PasswordHash:    mustHash(log, "superadmin123"),
		Role:            domain.RoleSuperadmin,
		IsEmailVerified: true,
		IsActive:        true,
	}
	client := &domain.User{
		FirstName:       "Diego",
		LastName:        "Torres",
		Email:           "client@itravelly.com",
		PhoneNumber:     "+5112000002",
		Country:         "Peru",
		PasswordHash:    mustHash(log, "client123"),
		Role:            domain.RoleClient,
		IsEmailVerified: true,
		IsActive:        true,
	}
	for _, u := range []*domain.User{superadmin, client} {
		if err := users.Create(ctx, u); err != nil {
			log.WithError(err).Fatal("user seed failed")
		}
	}

	log.Info("creating activity types")
	trekking := &domain.ActivityType{Name: "Trekking", Description: "Guided hikes and mountain routes", IsActive: true}
	surfing := &domain.ActivityType{Name: "Surfing", Description: "Lessons and board rental", IsActive: true}
	for _, t := range []*domain.ActivityType{trekking, surfing} {
		if err := activityTypes.Create(ctx, t); err != nil {
			log.WithError(err).Fatal("activity type seed failed")
		}
	}

	log.Info("creating corporate")
	owner := &domain.User{
		FirstName:       "Camila",
		LastName:        "Vega",
		Email:           "andes@itravelly.com",
		PhoneNumber:     "+5112000003",
		Country:         "Peru",
		PasswordHash:    mustHash(log, "corporate123"),
		Role:            domain.RoleAdmin,
		IsEmailVerified: true,
		IsActive:        true,
	}
	corp := &domain.Corporate{
		BusinessName:   "Andes Adventures",
		Country:        "Peru",
		Province:       "Cusco",
		ActivityTypeID: trekking.ID,
		Email:          "andes@itravelly.com",
		PasswordHash:   owner.PasswordHash,
		OperationMode:  domain.OperationInPerson,
		IsActive:       true,
	}
	if err := corporates.CreateWithUser(ctx, owner, corp); err != nil {
		log.WithError(err).Fatal("corporate seed failed")
	}

	log.Info("creating activities")
	hike := &domain.Activity{
		Name:                   "Rainbow Mountain Day Hike",
		Description:            "Full-day guided hike with transport and lunch",
		DepartureLocation:      "Cusco main square",
		Country:                "Peru",
		Province:               "Cusco",
		ActivityTypeID:         trekking.ID,
		CorporateID:            corp.ID,
		CurrentPrice:           100,
		PricingType:            domain.PricingPerPerson,
		AppliesPromo:           true,
		MaxCapacityPerTimeSlot: 10,
		Duration:               "8h",
		AvailabilityHours: domain.WeeklyHours{
			"monday":    {Start: "09:00", End: "17:00"},
			"tuesday":   {Start: "09:00", End: "17:00"},
			"wednesday": {Start: "09:00", End: "17:00"},
			"thursday":  {Start: "09:00", End: "17:00"},
			"friday":    {Start: "09:00", End: "17:00"},
			"saturday":  {Start: "08:00", End: "14:00"},
		},
		Status: domain.ActivityActive,
	}
	surf := &domain.Activity{
		Name:                   "Private Surf Lesson",
		Description:            "Two-hour lesson for groups of up to four",
		DepartureLocation:      "Playa Makaha",
		Country:                "Peru",
		Province:               "Lima",
		ActivityTypeID:         surfing.ID,
		CorporateID:            corp.ID,
		CurrentPrice:           180,
		PricingType:            domain.PricingPerGroup,
		GroupSize:              4,
		MaxCapacityPerTimeSlot: 8,
		Duration:               "2h",
		AvailabilityHours: domain.WeeklyHours{
			"saturday": {Start: "07:00", End: "12:00"},
			"sunday":   {Start: "07:00", End: "12:00"},
		},
		Status: domain.ActivityActive,
	}
	for _, a := range []*domain.Activity{hike, surf} {
		if err := activities.Create(ctx, a); err != nil {
			log.WithError(err).Fatal("activity seed failed")
		}
	}

	log.Info("creating promotion")
	validUntil := time.Now().AddDate(0, 3, 0)
	promo := &domain.Promotion{
		Name:          "Launch discount",
		Code:          "SAVE10",
		Type:          domain.PromotionPercentage,
		DiscountValue: 10,
		ValidUntil:    &validUntil,
		MaxUses:       100,
		IsActive:      true,
		ActivityID:    hike.ID,
	}
	if err := promotions.Create(ctx, promo); err != nil {
		log.WithError(err).Fatal("promotion seed failed")
	}

	log.Info("creating booking")
	booking := &domain.Booking{
		BookingCode:    "SEED0001",
		UserID:         client.ID,
		ActivityID:     hike.ID,
		BookingDate:    nextWeekday(time.Monday),
		BookingTime:    "10:00",
		NumberOfPeople: 2,
		OriginalPrice:  200,
		FinalPrice:     200,
		Status:         domain.BookingConfirmed,
		PaymentStatus:  domain.PaymentPaid,
	}
	if err := bookings.Create(ctx, booking); err != nil {
		log.WithError(err).Fatal("booking seed failed")
	}

	log.Info("seed complete")
}

func mustHash(log *logrus.Logger, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("password hash failed")
	}
	return string(hash)
}

func nextWeekday(day time.Weekday) time.Time {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
