// Package user covers profile self-service and the admin-side account
// management operations.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"paylink/internal/logger"
	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// Service errors
var (
	ErrPhoneRequired = errors.New("phone number is required")
	ErrPhoneInUse    = errors.New("this phone number is already in use")
	ErrInvalidPhone  = errors.New("invalid phone number format")
	ErrWrongPassword = errors.New("current password is incorrect")
	ErrWeakPassword  = errors.New("password must be at least 8 characters and contain a special character")
	ErrUserNotFound  = errors.New("user not found")
)

// CodeIssuer creates and dispatches a fresh verification code.
type CodeIssuer interface {
	ResendVerification(ctx context.Context, userID uint, codeType string) error
}

// PhoneUpdateResult reports the verification status after a phone change.
type PhoneUpdateResult struct {
	IsVerified bool
}

// Service manages user profiles.
type Service interface {
	GetProfile(userID uint) (*models.User, error)
	UpdatePhone(ctx context.Context, userID uint, phone string) (*PhoneUpdateResult, error)
	UpdatePassword(userID uint, currentPassword, newPassword string) error
	SetActive(userID uint, active bool) (*models.User, error)
}

type service struct {
	users repositories.UserRepository
	codes CodeIssuer
}

// NewService creates a user service. codes may be nil, in which case
// phone changes skip code dispatch.
func NewService(users repositories.UserRepository, codes CodeIssuer) Service {
	if users == nil {
		panic("user repo is required")
	}
	return &service{users: users, codes: codes}
}

func (s *service) GetProfile(userID uint) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdatePhone changes the phone number. A user whose verification came
// through their phone loses verified status and gets a fresh code; a
// user verified through email keeps it.
func (s *service) UpdatePhone(ctx context.Context, userID uint, phone string) (*PhoneUpdateResult, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}

	v := validation.New()
	v.Phone("phone", phone)
	if !v.Valid() {
		return nil, ErrInvalidPhone
	}

	if existing, err := s.users.GetByPhone(phone); err == nil && existing.ID != userID {
		return nil, ErrPhoneInUse
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	verifiedByPhone := user.IsVerified && user.Email == nil

	user.Phone = &phone
	if verifiedByPhone {
		user.IsVerified = false
	}
	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update phone: %w", err)
	}

	if s.codes != nil {
		if err := s.codes.ResendVerification(ctx, userID, models.VerificationTypePhone); err != nil {
			logger.Warnf("failed to issue phone code for user %d: %v", userID, err)
		}
	}

	return &PhoneUpdateResult{IsVerified: user.IsVerified}, nil
}

func (s *service) UpdatePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	if len(newPassword) < validation.MinPasswordLength || !validation.HasSpecialChar(newPassword) {
		return ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.HashedPassword = string(hashed)
	user.TokenVersion++
	user.UpdatedAt = time.Now()
	return s.users.Update(user)
}

// SetActive toggles the account. Tokens are invalidated on deactivation
// so in-flight sessions die with the account.
func (s *service) SetActive(userID uint, active bool) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.IsActive == active {
		return user, nil
	}

	user.IsActive = active
	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}
	if !active {
		if err := s.users.IncrementTokenVersion(userID); err != nil {
			// Roll the status change back rather than leave a
			// deactivated account with live tokens.
			user.IsActive = !active
			if rbErr := s.users.Update(user); rbErr != nil {
				logger.Errorf("status rollback failed for user %d: %v", userID, rbErr)
			}
			return nil, fmt.Errorf("failed to invalidate sessions: %w", err)
		}
		user.TokenVersion++
	}
	return user, nil
}
