package handlers

import (
	"errors"
	"time"

	"paylink/internal/logger"
	"paylink/internal/repositories"
	"paylink/internal/services/reporting"
	"paylink/internal/services/user"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	userRepo         repositories.UserRepository
	walletRepo       repositories.WalletRepository
	transactionRepo  repositories.TransactionRepository
	reportingService reporting.Service
	userService      user.Service
}

func NewAdminHandler(
	userRepo repositories.UserRepository,
	walletRepo repositories.WalletRepository,
	transactionRepo repositories.TransactionRepository,
	reportingService reporting.Service,
	userService user.Service,
) *AdminHandler {
	return &AdminHandler{
		userRepo:         userRepo,
		walletRepo:       walletRepo,
		transactionRepo:  transactionRepo,
		reportingService: reportingService,
		userService:      userService,
	}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	p := utils.GetPagination(c, 50, 200)
	users, err := h.userRepo.List(p.Limit, p.Offset)
	if err != nil {
		logger.Errorf("failed to list users: %v", err)
		return utils.InternalError(c)
	}
	return utils.Success(c, users)
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid user id")
	}

	u, err := h.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		logger.Errorf("failed to get user %d: %v", id, err)
		return utils.InternalError(c)
	}
	return utils.Success(c, u)
}

// SetUserStatus toggles an account. The service rolls the status back
// if token invalidation fails, so a half-applied toggle never leaks.
func (h *AdminHandler) SetUserStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid user id")
	}

	var input struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil || input.IsActive == nil {
		return utils.BadRequest(c, "is_active is required")
	}

	u, err := h.userService.SetActive(id, *input.IsActive)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return utils.NotFound(c, "User not found")
		}
		logger.Errorf("failed to set status for user %d: %v", id, err)
		return utils.InternalError(c)
	}
	return utils.Success(c, u)
}

func (h *AdminHandler) ListWallets(c *fiber.Ctx) error {
	p := utils.GetPagination(c, 50, 200)
	wallets, err := h.walletRepo.ListWithUsers(p.Limit, p.Offset)
	if err != nil {
		logger.Errorf("failed to list wallets: %v", err)
		return utils.InternalError(c)
	}
	return utils.Success(c, wallets)
}

func (h *AdminHandler) ListTransactions(c *fiber.Ctx) error {
	p := utils.GetPagination(c, 50, 200)
	txs, err := h.transactionRepo.ListAll(p.Limit, p.Offset)
	if err != nil {
		logger.Errorf("failed to list transactions: %v", err)
		return utils.InternalError(c)
	}
	return utils.Success(c, txs)
}

func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.reportingService.Stats()
	if err != nil {
		logger.Errorf("failed to compute stats: %v", err)
		return utils.InternalError(c)
	}
	return utils.Success(c, stats)
}

func (h *AdminHandler) TransactionSummary(c *fiber.Ctx) error {
	summary, err := h.reportingService.TransactionSummary(time.Now())
	if err != nil {
		logger.Errorf("failed to build transaction summary: %v", err)
		return utils.InternalError(c)
	}
	return utils.Success(c, summary)
}

func (h *AdminHandler) WalletSummary(c *fiber.Ctx) error {
	summary, err := h.reportingService.WalletSummary(time.Now())
	if err != nil {
		logger.Errorf("failed to build wallet summary: %v", err)
		return utils.InternalError(c)
	}
	return utils.Success(c, summary)
}
