package wallet

import "errors"

// Service errors
var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrCardNotFound        = errors.New("card not found")
)
