package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"wellsync/backend/config"
	"wellsync/backend/controllers"
	"wellsync/backend/middleware"
	"wellsync/backend/services"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	checkinSvc := services.NewCheckinService(db, services.NewRiskClient(cfg))

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Risk API proxy: unauthenticated like the rest of the landing flow, but
	// rate limited so it cannot be used as an open relay
	predictController := controllers.NewPredictController(cfg)
	app.Post("/api/predict-risk", middleware.RateLimitMiddleware(), predictController.Predict)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Check-in routes
	checkinController := controllers.NewCheckinController(db, cfg, checkinSvc)
	app.Post("/api/checkins", authMiddleware, checkinController.Submit)
	app.Get("/api/checkins/today", authMiddleware, checkinController.Today)

	// Dashboard routes
	dashboardController := controllers.NewDashboardController(db, cfg, checkinSvc)
	app.Get("/api/dashboard", authMiddleware, dashboardController.GetDashboard)

	// History routes
	historyController := controllers.NewHistoryController(db, cfg)
	app.Get("/api/history", authMiddleware, historyController.GetHistory)

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
