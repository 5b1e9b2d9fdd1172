package transfer

import "errors"

// Service errors
var (
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrSelfTransfer            = errors.New("cannot transfer to self")
	ErrSenderWalletNotFound    = errors.New("sender wallet not found")
	ErrRecipientNotFound       = errors.New("recipient not found")
	ErrRecipientWalletNotFound = errors.New("recipient wallet not found")
	ErrInsufficientBalance     = errors.New("insufficient balance")
)
