// Package routes wires repositories, services and handlers onto the
// fiber application.
package routes

import (
	"time"

	"paylink/internal/handlers"
	"paylink/internal/mailer"
	"paylink/internal/middleware"
	"paylink/internal/repositories"
	"paylink/internal/services/auth"
	"paylink/internal/services/card"
	"paylink/internal/services/notification"
	"paylink/internal/services/reporting"
	"paylink/internal/services/transfer"
	"paylink/internal/services/user"
	"paylink/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SetupRoutes builds the dependency graph and registers every route
// group. It returns the notification service so main can run the
// cross-replica push bridge.
func SetupRoutes(app *fiber.App) notification.Service {
	userRepo := repositories.NewUserRepository(repositories.DB)
	walletRepo := repositories.NewWalletRepository(repositories.DB)
	transactionRepo := repositories.NewTransactionRepository(repositories.DB)
	notificationRepo := repositories.NewNotificationRepository(repositories.DB)
	verificationRepo := repositories.NewVerificationRepository(repositories.DB)
	cardRepo := repositories.NewPaymentCardRepository(repositories.DB)
	rateLimitRepo := repositories.NewRateLimitRepository(repositories.DB)

	authService := auth.NewService(userRepo, verificationRepo, mailer.New())
	cardService := card.NewService(cardRepo)
	walletService := wallet.NewService(walletRepo, transactionRepo, repositories.CacheService, cardService)
	notificationService := notification.NewService(notificationRepo, notification.NewRegistry(), repositories.CacheService)
	transferService := transfer.NewService(walletRepo, userRepo, transfer.NewNotifier(notificationService))
	userService := user.NewService(userRepo, authService)
	reportingService := reporting.NewService(userRepo, transactionRepo, walletRepo)

	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(walletService, transferService)
	profileHandler := handlers.NewProfileHandler(userService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	cardHandler := handlers.NewPaymentCardHandler(cardService)
	adminHandler := handlers.NewAdminHandler(userRepo, walletRepo, transactionRepo, reportingService, userService)
	wsHandler := handlers.NewWebSocketHandler(notificationService.Registry())

	authMiddleware := middleware.NewAuthMiddleware(userRepo, repositories.CacheService)
	authLimiter := middleware.RateLimiter(5, time.Minute, rateLimitRepo)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api/v1", middleware.RequestContext)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authLimiter, authHandler.Register)
	authGroup.Post("/login", authLimiter, authHandler.Login)
	authGroup.Post("/forgot-password", authLimiter, authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authLimiter, authHandler.ResetPassword)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authMiddleware.Handler, authHandler.Logout)
	authGroup.Post("/verify/:type", authMiddleware.Handler, authHandler.Verify)
	authGroup.Post("/resend-verification/:type", authMiddleware.Handler, authHandler.ResendVerification)

	walletGroup := api.Group("/wallet", authMiddleware.Handler, middleware.VerifiedRequired)
	walletGroup.Get("/balance", walletHandler.GetWallet)
	walletGroup.Post("/deposit", walletHandler.Deposit)
	walletGroup.Post("/withdraw", walletHandler.Withdraw)
	walletGroup.Post("/transfer", walletHandler.Transfer)
	walletGroup.Get("/transactions", walletHandler.GetTransactions)

	profileGroup := api.Group("/profile", authMiddleware.Handler)
	profileGroup.Get("/", profileHandler.Get)
	profileGroup.Put("/phone", profileHandler.UpdatePhone)
	profileGroup.Put("/password", profileHandler.UpdatePassword)

	notificationGroup := api.Group("/notifications", authMiddleware.Handler)
	notificationGroup.Get("/", notificationHandler.List)
	notificationGroup.Post("/mark-all-read", notificationHandler.MarkAllRead)
	notificationGroup.Post("/:id/read", notificationHandler.MarkRead)
	notificationGroup.Delete("/:id", notificationHandler.Delete)

	cardGroup := api.Group("/payment-cards", authMiddleware.Handler)
	cardGroup.Get("/", cardHandler.List)
	cardGroup.Post("/", cardHandler.Add)
	cardGroup.Post("/:id/default", cardHandler.SetDefault)
	cardGroup.Delete("/:id", cardHandler.Delete)

	adminGroup := api.Group("/admin", authMiddleware.Handler, middleware.AdminRequired)
	adminGroup.Get("/users", adminHandler.ListUsers)
	adminGroup.Get("/users/:id", adminHandler.GetUser)
	adminGroup.Put("/users/:id/status", adminHandler.SetUserStatus)
	adminGroup.Get("/wallets", adminHandler.ListWallets)
	adminGroup.Get("/transactions", adminHandler.ListTransactions)
	adminGroup.Get("/stats", adminHandler.GetStats)
	adminGroup.Get("/summary/transactions", adminHandler.TransactionSummary)
	adminGroup.Get("/summary/wallets", adminHandler.WalletSummary)

	app.Get("/ws/:user_id", wsHandler.Upgrade, websocket.New(wsHandler.Serve))

	return notificationService
}
