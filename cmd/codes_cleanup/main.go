package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"itravelly/internal/database"
	"itravelly/internal/repository"
)

// Removes expired email verification codes. Meant to run from cron.
func main() {
	log := logrus.New()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(dsn, log)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}

	codes := repository.NewVerificationCodeRepository(db)
	removed, err := codes.DeleteExpired(context.Background(), time.Now())
	if err != nil {
		log.WithError(err).Fatal("cleanup failed")
	}

	log.WithField("removed", removed).Info("verification code cleanup complete")
}
