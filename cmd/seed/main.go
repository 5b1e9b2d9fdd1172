// Package main seeds the first admin account. Safe to run repeatedly.
package main

import (
	"os"

	"paylink/internal/config"
	"paylink/internal/logger"
	"paylink/internal/models"
	"paylink/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		logger.Error("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	if err := repositories.InitDB(); err != nil {
		logger.Errorf("database initialization failed: %v", err)
		os.Exit(1)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	userRepo := repositories.NewUserRepository(repositories.DB)

	if _, err := userRepo.GetByEmail(adminEmail); err == nil {
		logger.Info("admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Errorf("failed to hash password: %v", err)
		os.Exit(1)
	}

	admin := &models.User{
		FullName:       "Administrator",
		Email:          &adminEmail,
		HashedPassword: string(hashed),
		IsActive:       true,
		IsAdmin:        true,
		IsVerified:     true,
	}
	if phone := os.Getenv("ADMIN_PHONE"); phone != "" {
		admin.Phone = &phone
	}

	if err := userRepo.CreateWithWallet(admin); err != nil {
		logger.Errorf("failed to create admin: %v", err)
		os.Exit(1)
	}
	logger.Infof("admin user created with id %d", admin.ID)
}
