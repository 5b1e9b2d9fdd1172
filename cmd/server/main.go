// Package main boots the API server: configuration, database, Redis,
// routing and the notification push bridge.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"paylink/internal/config"
	"paylink/internal/logger"
	"paylink/internal/repositories"
	"paylink/internal/routes"
	"paylink/internal/services/notification"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		logger.Errorf("database initialization failed: %v", err)
		os.Exit(1)
	}
	defer closeStores()

	app := fiber.New(fiber.Config{
		AppName:               "paylink",
		DisableStartupMessage: config.IsProduction(),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Accept-Language, X-Request-ID",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	notificationService := routes.SetupRoutes(app)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Pushes published by other replicas are delivered to websockets
	// held by this one.
	go notification.RunBridge(ctx, repositories.CacheService, notificationService.Registry())

	go func() {
		addr := ":" + config.GetEnv("PORT", "3000")
		if err := app.Listen(addr); err != nil {
			logger.Errorf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Errorf("shutdown failed: %v", err)
	}
}

func closeStores() {
	if repositories.DB != nil {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warnf("failed to close database connection: %v", err)
			}
		}
	}
	if repositories.CacheService != nil {
		if err := repositories.CacheService.Close(); err != nil {
			logger.Warnf("failed to close Redis connection: %v", err)
		}
	}
}
