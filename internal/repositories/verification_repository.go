package repositories

import (
	"errors"
	"time"

	"paylink/internal/models"
)

var ErrCodeNotFound = errors.New("no valid verification code found")

// VerificationRepository defines verification code persistence. Codes are
// superseded by newer ones, never deleted.
type VerificationRepository interface {
	Create(code *models.VerificationCode) error
	// LatestValid returns the newest unused, unexpired code of the given
	// type for the user, or ErrCodeNotFound.
	LatestValid(userID uint, codeType string, now time.Time) (*models.VerificationCode, error)
	MarkUsed(code *models.VerificationCode) error
}
