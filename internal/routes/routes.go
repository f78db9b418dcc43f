// Package routes wires repositories, services and handlers onto the fiber
// application.
package routes

import (
	"custodia/internal/config"
	"custodia/internal/handlers"
	"custodia/internal/middleware"
	"custodia/internal/repositories"
	"custodia/internal/services/auth"
	"custodia/internal/services/funds"
	"custodia/internal/services/gateway"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB, redisClient *redis.Client) {
	ledgerRepo := repositories.NewLedgerRepository(db)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	fundsService := funds.NewService(ledgerRepo, cacheRepo)

	jwtSecret := config.GetEnv("JWT_SECRET", "custodia")
	authService := auth.NewService(ledgerRepo, fundsService, jwtSecret)
	depositGateway := gateway.NewStripeGateway(config.GetEnv("STRIPE_SECRET_KEY", ""))

	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(fundsService, ledgerRepo, cacheRepo, depositGateway)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Get("/health", handlers.Health)

	// Protected endpoints
	protected := api.Use(middleware.Auth(jwtSecret))
	protected.Get("/user", walletHandler.GetUser)

	wallet := protected.Group("/wallet")
	wallet.Get("/", walletHandler.GetWallet)
	wallet.Post("/deposit", walletHandler.Deposit)
	wallet.Post("/deposit/verify", walletHandler.VerifyDeposit)
	wallet.Post("/transfer", walletHandler.Transfer)
	wallet.Get("/transactions/debits", walletHandler.ListDebits)
	wallet.Get("/transactions/credits", walletHandler.ListCredits)
}
