// Package auth implements registration, credential checks, token
// issuance and the verification code lifecycle.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"paylink/internal/logger"
	"paylink/internal/mailer"
	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/utils"
	"paylink/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const verificationCodeTTL = time.Hour

type service struct {
	users  repositories.UserRepository
	codes  repositories.VerificationRepository
	mailer mailer.Mailer
}

// NewService creates an auth service. mailer may be nil, in which case
// verification codes are created but not dispatched.
func NewService(users repositories.UserRepository, codes repositories.VerificationRepository, m mailer.Mailer) Service {
	if users == nil {
		panic("user repo is required")
	}
	if codes == nil {
		panic("verification repo is required")
	}
	return &service{users: users, codes: codes, mailer: m}
}

func (s *service) Register(ctx context.Context, input *models.CreateUserInput) (*models.User, error) {
	v := validation.New()
	v.UserRegistration(input)
	if !v.Valid() {
		return nil, errors.New(v.First())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName:       strings.TrimSpace(input.FullName),
		HashedPassword: string(hashed),
		IsActive:       true,
	}
	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" {
		user.Email = &email
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		user.Phone = &phone
	}

	if err := s.users.CreateWithWallet(user); err != nil {
		return nil, err
	}

	codeType := models.VerificationTypeEmail
	if user.Email == nil {
		codeType = models.VerificationTypePhone
	}
	if err := s.issueCode(ctx, user, codeType); err != nil {
		// The account exists and works; the user can request a new code.
		logger.Warnf("failed to issue verification code for user %d: %v", user.ID, err)
	}

	return user, nil
}

func (s *service) Login(identifier, password string) (*models.User, *TokenPair, error) {
	user, err := s.getUserByIdentifier(identifier)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, ErrInactiveUser
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *service) RefreshTokens(refreshToken string) (*TokenPair, error) {
	claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if user.TokenVersion != claims.TokenVersion {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	return s.issueTokens(user)
}

func (s *service) Logout(userID uint) error {
	return s.users.IncrementTokenVersion(userID)
}

func (s *service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
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
	return s.users.Update(user)
}

// Verify redeems the newest unused unexpired code of the given type and
// marks the user verified. Password reset codes go through ResetPassword
// and never confer verified status.
func (s *service) Verify(userID uint, codeType, code string) error {
	if codeType != models.VerificationTypeEmail && codeType != models.VerificationTypePhone {
		return ErrInvalidCode
	}

	if err := s.redeemCode(userID, codeType, code); err != nil {
		return err
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if !user.IsVerified {
		user.IsVerified = true
		if err := s.users.Update(user); err != nil {
			return fmt.Errorf("failed to mark user verified: %w", err)
		}
	}
	return nil
}

// redeemCode consumes the newest unused unexpired code of the given type.
// Older codes are superseded the moment a newer one is issued.
func (s *service) redeemCode(userID uint, codeType, code string) error {
	stored, err := s.codes.LatestValid(userID, codeType, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrCodeNotFound) {
			return ErrNoValidCode
		}
		return err
	}

	if stored.Code != code {
		return ErrInvalidCode
	}

	if err := s.codes.MarkUsed(stored); err != nil {
		return fmt.Errorf("failed to mark code used: %w", err)
	}
	return nil
}

// ForgotPassword issues a reset code to the account behind the
// identifier. Callers should not disclose to clients whether the
// account exists.
func (s *service) ForgotPassword(ctx context.Context, identifier string) error {
	user, err := s.getUserByIdentifier(identifier)
	if err != nil {
		return err
	}
	return s.issueCode(ctx, user, models.VerificationTypePasswordReset)
}

// ResetPassword redeems a reset code and replaces the password. The
// token version bump revokes every outstanding session.
func (s *service) ResetPassword(identifier, code, newPassword string) error {
	if len(newPassword) < validation.MinPasswordLength || !validation.HasSpecialChar(newPassword) {
		return ErrWeakPassword
	}

	user, err := s.getUserByIdentifier(identifier)
	if err != nil {
		return err
	}

	if err := s.redeemCode(user.ID, models.VerificationTypePasswordReset, code); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.HashedPassword = string(hashed)
	user.TokenVersion++
	return s.users.Update(user)
}

func (s *service) ResendVerification(ctx context.Context, userID uint, codeType string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	return s.issueCode(ctx, user, codeType)
}

func (s *service) issueCode(ctx context.Context, user *models.User, codeType string) error {
	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	record := &models.VerificationCode{
		UserID:    user.ID,
		Code:      code,
		Type:      codeType,
		ExpiresAt: time.Now().Add(verificationCodeTTL),
	}
	if err := s.codes.Create(record); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}

	switch codeType {
	case models.VerificationTypeEmail, models.VerificationTypePasswordReset:
		if user.Email == nil {
			return ErrNoEmail
		}
		if s.mailer != nil {
			return s.mailer.SendVerificationCode(ctx, *user.Email, code)
		}
	case models.VerificationTypePhone:
		if user.Phone == nil {
			return ErrNoPhone
		}
		// No SMS provider is wired up yet; the code is persisted and
		// surfaced through logs for manual delivery.
		logger.Infof("phone verification code for %s: %s", *user.Phone, code)
	}
	return nil
}

func (s *service) issueTokens(user *models.User) (*TokenPair, error) {
	access, refresh, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.EmailOrEmpty(),
		Role:         models.RoleFor(user),
		IsVerified:   user.IsVerified,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// getUserByIdentifier treats identifiers containing "@" as emails and
// everything else as phone numbers.
func (s *service) getUserByIdentifier(identifier string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return s.users.GetByEmail(strings.ToLower(identifier))
	}
	return s.users.GetByPhone(identifier)
}
