package card

import "errors"

// Service errors
var (
	ErrCardNotFound      = errors.New("card not found")
	ErrInvalidCardNumber = errors.New("invalid card number")
	ErrExpiredCard       = errors.New("card is expired or has an invalid expiry date")
	ErrInvalidInput      = errors.New("invalid card details")
)
