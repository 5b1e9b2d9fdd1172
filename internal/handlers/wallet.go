package handlers

import (
	"context"
	"errors"

	"paylink/internal/logger"
	"paylink/internal/models"
	"paylink/internal/services/transfer"
	"paylink/internal/services/wallet"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService   wallet.Service
	transferService transfer.Service
}

func NewWalletHandler(walletService wallet.Service, transferService transfer.Service) *WalletHandler {
	return &WalletHandler{walletService: walletService, transferService: transferService}
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			return utils.NotFound(c, "Wallet not found")
		}
		logger.Errorf("failed to get wallet for user %d: %v", claims.UserID, err)
		return utils.InternalError(c)
	}
	return utils.Success(c, w)
}

type moveInput struct {
	Amount float64 `json:"amount"`
	CardID uint    `json:"card_id"`
}

func (h *WalletHandler) Deposit(c *fiber.Ctx) error {
	return h.move(c, h.walletService.Deposit)
}

func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	return h.move(c, h.walletService.Withdraw)
}

type moveFunc func(ctx context.Context, userID uint, amount float64, cardID uint) (*models.Wallet, error)

func (h *WalletHandler) move(c *fiber.Ctx, op moveFunc) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	var input moveInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	w, err := op(c.Context(), claims.UserID, input.Amount, input.CardID)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrInvalidAmount):
			return utils.BadRequest(c, "Amount must be positive")
		case errors.Is(err, wallet.ErrInsufficientBalance):
			return utils.BadRequest(c, "Insufficient balance")
		case errors.Is(err, wallet.ErrWalletNotFound):
			return utils.NotFound(c, "Wallet not found")
		case errors.Is(err, wallet.ErrCardNotFound):
			return utils.NotFound(c, "Card not found")
		default:
			logger.Errorf("balance operation failed for user %d: %v", claims.UserID, err)
			return utils.InternalError(c)
		}
	}
	return utils.Success(c, w)
}

type transferInput struct {
	Recipient   string  `json:"recipient_identifier"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

func (h *WalletHandler) Transfer(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	var input transferInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Recipient == "" {
		return utils.BadRequest(c, "Recipient is required")
	}

	tx, err := h.transferService.Transfer(c.Context(), claims.UserID, input.Recipient, input.Amount, input.Description)
	if err != nil {
		switch {
		case errors.Is(err, transfer.ErrInvalidAmount):
			return utils.BadRequest(c, "Amount must be positive")
		case errors.Is(err, transfer.ErrInsufficientBalance):
			return utils.BadRequest(c, "Insufficient balance")
		case errors.Is(err, transfer.ErrSelfTransfer):
			return utils.BadRequest(c, "Cannot transfer to yourself")
		case errors.Is(err, transfer.ErrRecipientNotFound):
			return utils.NotFound(c, "Recipient not found")
		case errors.Is(err, transfer.ErrRecipientWalletNotFound):
			return utils.NotFound(c, "Recipient wallet not found")
		case errors.Is(err, transfer.ErrSenderWalletNotFound):
			return utils.NotFound(c, "Sender wallet not found")
		default:
			logger.Errorf("transfer failed for user %d: %v", claims.UserID, err)
			return utils.InternalError(c)
		}
	}
	return utils.Success(c, tx)
}

func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	p := utils.GetPagination(c, 50, 100)
	txs, err := h.walletService.GetTransactions(c.Context(), claims.UserID, p.Limit, p.Offset)
	if err != nil {
		logger.Errorf("failed to list transactions for user %d: %v", claims.UserID, err)
		return utils.InternalError(c)
	}
	return utils.Success(c, txs)
}
