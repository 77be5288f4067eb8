package routes

import (
	"Pantry-Ledger/internal/api/handlers"
	"Pantry-Ledger/internal/middleware"
	"Pantry-Ledger/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                *fiber.App
	FoodHandler        handlers.FoodHandler
	ReservationHandler handlers.ReservationHandler
	MealPlanHandler    handlers.MealPlanHandler
	DonationHandler    handlers.DonationHandler
	AnalyticsHandler   handlers.AnalyticsHandler
	TokenHandler       handlers.TokenHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.FoodItems()
	c.Reservations()
	c.MealPlans()
	c.Donations()
	c.Analytics()
	c.GuestRoute()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/api/v1/token", c.TokenHandler.IssueToken)
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items", c.Middleware.AuthMiddleware(c.JWTService))

	foodItems.Post("", c.FoodHandler.AddFoodItem)
	foodItems.Get("", c.FoodHandler.GetFoodItems)
	foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)
	foodItems.Put("/:id", c.FoodHandler.UpdateFoodItem)
	foodItems.Delete("/:id", c.FoodHandler.DeleteFoodItem)

	foodItems.Post("/:id/consume", c.FoodHandler.ConsumeFoodItem)
	foodItems.Post("/image", c.FoodHandler.UploadFoodImage)
}

func (c *Config) Reservations() {
	reservations := c.App.Group("/api/v1/reservations", c.Middleware.AuthMiddleware(c.JWTService))

	reservations.Post("", c.ReservationHandler.Reserve)
	reservations.Get("", c.ReservationHandler.GetReservations)
	reservations.Patch("/:id", c.ReservationHandler.Patch)
	reservations.Delete("/:id", c.ReservationHandler.Delete)
}

func (c *Config) MealPlans() {
	mealPlans := c.App.Group("/api/v1/meal-plans", c.Middleware.AuthMiddleware(c.JWTService))

	mealPlans.Post("", c.MealPlanHandler.CreateMealPlan)
	mealPlans.Get("", c.MealPlanHandler.GetMealPlans)
	mealPlans.Get("/:id", c.MealPlanHandler.GetMealPlanDetails)
	mealPlans.Put("/:id", c.MealPlanHandler.UpdateMealPlan)
	mealPlans.Delete("/:id", c.MealPlanHandler.DeleteMealPlan)

	mealPlans.Post("/:id/settle", c.MealPlanHandler.SettleMealPlan)
}

func (c *Config) Donations() {
	donations := c.App.Group("/api/v1/donations", c.Middleware.AuthMiddleware(c.JWTService))

	donations.Post("", c.DonationHandler.CreateDonation)
	donations.Get("", c.DonationHandler.GetUserDonations)
	donations.Get("/:id", c.DonationHandler.GetDonationDetails)
}

func (c *Config) Analytics() {
	analytics := c.App.Group("/api/v1/analytics", c.Middleware.AuthMiddleware(c.JWTService))

	analytics.Get("/summary", c.AnalyticsHandler.GetSummary)
}
