package config

import (
	"Pantry-Ledger/internal/api/handlers"
	"Pantry-Ledger/internal/api/routes"
	"Pantry-Ledger/internal/middleware"
	"Pantry-Ledger/internal/utils"
	"Pantry-Ledger/internal/utils/calendar"
	"Pantry-Ledger/internal/utils/keylock"
	"Pantry-Ledger/internal/utils/storage"
	"Pantry-Ledger/pkg/analytics"
	"Pantry-Ledger/pkg/donation"
	"Pantry-Ledger/pkg/expiry"
	"Pantry-Ledger/pkg/food"
	"Pantry-Ledger/pkg/jwt"
	"Pantry-Ledger/pkg/mealplan"
	"Pantry-Ledger/pkg/reservation"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Singapore",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	locks := keylock.New()
	clock := calendar.SystemClock{}

	// Repository
	foodRepository := food.NewFoodRepository(db)
	reservationRepository := reservation.NewReservationRepository(db)
	mealPlanRepository := mealplan.NewMealPlanRepository(db)
	donationRepository := donation.NewDonationRepository(db)
	expiryRepository := expiry.NewExpiryRepository(db)
	analyticsRepository := analytics.NewAnalyticsRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	foodService := food.NewFoodService(foodRepository, s3, locks, clock)
	reservationService := reservation.NewReservationService(reservationRepository, foodRepository, locks)
	mealPlanService := mealplan.NewMealPlanService(mealPlanRepository, foodRepository, reservationRepository, locks, clock)
	donationService := donation.NewDonationService(donationRepository, foodRepository, locks)
	expiryService := expiry.NewExpiryService(expiryRepository, clock, utils.GetConfig("SMTP_AUTH_EMAIL"))
	analyticsService := analytics.NewAnalyticsService(analyticsRepository, expiryService, clock)

	// Handler
	foodHandler := handlers.NewFoodHandler(foodService, expiryService, validator)
	reservationHandler := handlers.NewReservationHandler(reservationService, validator)
	mealPlanHandler := handlers.NewMealPlanHandler(mealPlanService, validator)
	donationHandler := handlers.NewDonationHandler(donationService, validator)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	tokenHandler := handlers.NewTokenHandler(jwtService, validator)

	// routes
	routesConfig := routes.Config{
		App:                app,
		FoodHandler:        foodHandler,
		ReservationHandler: reservationHandler,
		MealPlanHandler:    mealPlanHandler,
		DonationHandler:    donationHandler,
		AnalyticsHandler:   analyticsHandler,
		TokenHandler:       tokenHandler,
		Middleware:         middlewares,
		JWTService:         jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
