package auth

import (
	"context"

	"paylink/internal/models"
)

// TokenPair bundles the two tokens issued on successful authentication.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Service implements registration, login and the verification code flows.
type Service interface {
	Register(ctx context.Context, input *models.CreateUserInput) (*models.User, error)
	Login(identifier, password string) (*models.User, *TokenPair, error)
	RefreshTokens(refreshToken string) (*TokenPair, error)
	Logout(userID uint) error
	ChangePassword(userID uint, oldPassword, newPassword string) error
	Verify(userID uint, codeType, code string) error
	ResendVerification(ctx context.Context, userID uint, codeType string) error
	ForgotPassword(ctx context.Context, identifier string) error
	ResetPassword(identifier, code, newPassword string) error
}
