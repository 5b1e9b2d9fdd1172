package handlers

import (
	"errors"

	"paylink/internal/i18n"
	"paylink/internal/logger"
	"paylink/internal/middleware"
	"paylink/internal/models"
	"paylink/internal/services/card"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PaymentCardHandler struct {
	cardService card.Service
}

func NewPaymentCardHandler(cardService card.Service) *PaymentCardHandler {
	return &PaymentCardHandler{cardService: cardService}
}

func (h *PaymentCardHandler) List(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	cards, err := h.cardService.ListCards(claims.UserID)
	if err != nil {
		logger.Errorf("failed to list cards for user %d: %v", claims.UserID, err)
		return utils.InternalError(c)
	}
	return utils.Success(c, cards)
}

func (h *PaymentCardHandler) Add(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	var input models.CreateCardInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	created, err := h.cardService.AddCard(claims.UserID, &input)
	if err != nil {
		switch {
		case errors.Is(err, card.ErrInvalidCardNumber):
			return utils.BadRequest(c, "Invalid card number")
		case errors.Is(err, card.ErrExpiredCard):
			return utils.BadRequest(c, "Card is expired or has an invalid expiry date")
		case errors.Is(err, card.ErrInvalidInput):
			return utils.BadRequest(c, err.Error())
		default:
			logger.Errorf("failed to add card for user %d: %v", claims.UserID, err)
			return utils.InternalError(c)
		}
	}
	return utils.Created(c, created)
}

func (h *PaymentCardHandler) SetDefault(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid card id")
	}

	updated, err := h.cardService.SetDefault(claims.UserID, id)
	if err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			return utils.NotFound(c, "Card not found")
		}
		logger.Errorf("failed to set default card %d: %v", id, err)
		return utils.InternalError(c)
	}
	return utils.Success(c, updated)
}

func (h *PaymentCardHandler) Delete(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "Not authenticated")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid card id")
	}

	if err := h.cardService.DeleteCard(claims.UserID, id); err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			return utils.NotFound(c, "Card not found")
		}
		logger.Errorf("failed to delete card %d: %v", id, err)
		return utils.InternalError(c)
	}
	message := i18n.Translate("RecordDeleted", middleware.Lang(c), map[string]string{"record": "card"})
	return utils.Success(c, fiber.Map{"message": message})
}
