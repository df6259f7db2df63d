package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"itravelly/internal/config"
	"itravelly/internal/database"
	"itravelly/internal/middleware"
	"itravelly/internal/modules/activity"
	"itravelly/internal/modules/activitytype"
	"itravelly/internal/modules/auth"
	"itravelly/internal/modules/booking"
	"itravelly/internal/modules/corporate"
	"itravelly/internal/modules/promotion"
	"itravelly/internal/modules/user"
	"itravelly/internal/pkg/jwt"
	"itravelly/internal/pkg/mailer"
	"itravelly/internal/repository"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load failed")
	}
	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}

	userRepo := repository.NewUserRepository(db)
	codeRepo := repository.NewVerificationCodeRepository(db)
	corporateRepo := repository.NewCorporateRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	activityTypeRepo := repository.NewActivityTypeRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	jwtSvc := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	var mail mailer.Mailer = mailer.NoopMailer{}
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, log)
	}

	authService := auth.NewService(userRepo, codeRepo, jwtSvc, mail, cfg.VerifyCodeTTL, log)
	authHandler := auth.NewHandler(authService)

	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	corporateService := corporate.NewService(corporateRepo, userRepo, authService, log)
	corporateHandler := corporate.NewHandler(corporateService)

	activityTypeService := activitytype.NewService(activityTypeRepo)
	activityTypeHandler := activitytype.NewHandler(activityTypeService)

	activityService := activity.NewService(activityRepo, corporateRepo, bookingRepo)
	activityHandler := activity.NewHandler(activityService)

	promotionService := promotion.NewService(promotionRepo, activityRepo)
	promotionHandler := promotion.NewHandler(promotionService)

	bookingService := booking.NewService(bookingRepo, userRepo, activityRepo, promotionRepo, activityService, log)
	bookingHandler := booking.NewHandler(bookingService)

	r := gin.New()
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.RequestLogger(log),
		middleware.Metrics(),
		middleware.CORS(),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		authed := v1.Group("/")
		authed.Use(middleware.Auth(jwtSvc))

		corporateGrp := v1.Group("/")
		corporateGrp.Use(
			middleware.Auth(jwtSvc),
			middleware.AdminOnly(),
			middleware.CorporateContext(corporateRepo),
		)

		admin := v1.Group("/")
		admin.Use(middleware.Auth(jwtSvc), middleware.AdminOnly())

		authHandler.RegisterRoutes(v1, authed)
		userHandler.RegisterRoutes(authed, admin)
		corporateHandler.RegisterRoutes(v1, corporateGrp)
		activityTypeHandler.RegisterRoutes(v1, admin)
		activityHandler.RegisterRoutes(v1, corporateGrp)
		promotionHandler.RegisterRoutes(v1, corporateGrp)
		bookingHandler.RegisterRoutes(authed, corporateGrp, admin)
	}

	log.WithField("addr", cfg.ListenAddr).Info("starting API server")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}
