// Package routes defines the API routing configuration.
// It wires repositories, services and handlers together and applies
// authentication and authorization middleware per route group.
package routes

import (
	"fluidit/internal/config"
	"fluidit/internal/handlers"
	"fluidit/internal/middleware"
	"fluidit/internal/models"
	"fluidit/internal/repositories"
	"fluidit/internal/services/auth"
	"fluidit/internal/services/coach"
	"fluidit/internal/services/fee"
	"fluidit/internal/services/ledger"
	"fluidit/internal/services/limits"
	"fluidit/internal/services/notification"
	"fluidit/internal/services/payment"
	"fluidit/internal/services/receipt"
	"fluidit/internal/services/tracker"
	"fluidit/internal/services/transaction"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App) {
	// Repositories
	ledgerRepo := repositories.NewLedgerRepository(repositories.DB)
	userRepo := repositories.NewUserRepository(repositories.DB)
	coachRepo := repositories.NewCoachRepository(repositories.DB)
	trackerRepo := repositories.NewTrackerRepository(repositories.DB)

	// Notification channels
	var mailer notification.Mailer
	if host := config.GetEnv("SMTP_HOST", ""); host != "" {
		mailer = notification.NewSMTPMailer(notification.SMTPConfig{
			Host:     host,
			Port:     config.GetIntEnv("SMTP_PORT", 587),
			Username: config.GetEnv("SMTP_USERNAME", ""),
			Password: config.GetEnv("SMTP_PASSWORD", ""),
			From:     config.GetEnv("SMTP_FROM", "no-reply@fluidit.app"),
		})
	}
	notifier := notification.NewService(mailer, notification.NewLogPusher())

	// Card charging is optional; without a Stripe key top-ups are
	// bank-transfer only.
	var charger ledger.Charger
	if key := config.GetEnv("STRIPE_SECRET_KEY", ""); key != "" {
		charger = payment.NewStripeCharger(key)
	}

	// Core services
	ledgerService := ledger.NewService(
		ledgerRepo,
		userRepo,
		limits.NewGuard(ledgerRepo),
		fee.NewCalculator(nil),
		repositories.CacheService,
		notifier,
		charger,
		nil,
		ledger.Config{},
	)
	querySvc := transaction.NewService(ledgerRepo, userRepo)
	authService := auth.NewService(userRepo, ledgerService, notifier)
	coachService := coach.NewService(coachRepo, userRepo)
	trackerService := tracker.NewService(trackerRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(ledgerService)
	txHandler := handlers.NewTransactionHandler(ledgerService, querySvc, receipt.NewRenderer())
	coachHandler := handlers.NewCoachHandler(coachService)
	trackerHandler := handlers.NewTrackerHandler(trackerService)
	adminHandler := handlers.NewAdminHandler(ledgerService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", authHandler.Register)
	api.Post("/verify-otp", authHandler.VerifyOTP)
	api.Post("/resend-otp", authHandler.ResendOTP)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Get("/coaches", coachHandler.ListApproved)

	// Protected endpoints
	authMiddleware := middleware.NewAuthMiddleware(userRepo)
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.Logout)
	protected.Post("/change-password", authHandler.ChangePassword)
	protected.Post("/validate-wallet", walletHandler.ValidateWallet)

	wallet := protected.Group("/wallet")
	wallet.Get("/balance", middleware.HasPermission(models.PermissionWalletRead), walletHandler.GetBalance)

	tx := protected.Group("/transactions")
	tx.Post("/transfer", middleware.HasPermission(models.PermissionTransactionWrite), txHandler.Transfer)
	tx.Post("/topup", middleware.HasPermission(models.PermissionWalletWrite), txHandler.TopUp)
	tx.Post("/withdraw", middleware.HasPermission(models.PermissionWalletWrite), txHandler.Withdraw)
	tx.Get("/history", middleware.HasPermission(models.PermissionTransactionRead), txHandler.GetHistory)
	tx.Get("/stats/monthly", middleware.HasPermission(models.PermissionTransactionRead), txHandler.GetMonthlyStats)
	tx.Get("/export", middleware.HasPermission(models.PermissionTransactionRead), txHandler.Export)
	tx.Get("/receipt/:reference", middleware.HasPermission(models.PermissionTransactionRead), txHandler.GetReceipt)
	tx.Get("/:reference", middleware.HasPermission(models.PermissionTransactionRead), txHandler.GetDetails)
	tx.Patch("/:reference/cancel", middleware.HasPermission(models.PermissionTransactionWrite), txHandler.Cancel)

	coachGroup := protected.Group("/coach")
	coachGroup.Post("/apply", coachHandler.Apply)
	coachGroup.Get("/application", coachHandler.GetApplication)

	trackerGroup := protected.Group("/tracker", middleware.HasPermission(models.PermissionTrackerWrite))
	trackerGroup.Post("/entries", trackerHandler.AddEntry)
	trackerGroup.Get("/entries", trackerHandler.ListEntries)
	trackerGroup.Delete("/entries/:id", trackerHandler.DeleteEntry)
	trackerGroup.Get("/summary", trackerHandler.Summary)

	admin := protected.Group("/admin", middleware.AdminAuthMiddleware)
	admin.Patch("/wallets/:walletId/status", adminHandler.SetWalletStatus)
	admin.Post("/coach/:userId/review", coachHandler.Review)
}
