package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every table the repositories
// use. Called by cmd/seed and by sqlite-backed tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&verificationCodeModel{},
		&corporateModel{},
		&branchModel{},
		&activityTypeModel{},
		&activityModel{},
		&promotionModel{},
		&bookingModel{},
	)
}
