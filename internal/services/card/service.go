// Package card stores payment cards. Card numbers and CVCs are bcrypt
// hashed before they reach the database; only a masked display string
// and the provider token survive in plaintext.
package card

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"paylink/internal/config"
	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/utils"
	"paylink/internal/validation"

	"github.com/stripe/stripe-go/v72"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo repositories.PaymentCardRepository
}

// NewService creates a card service.
func NewService(repo repositories.PaymentCardRepository) Service {
	if repo == nil {
		panic("card repo is required")
	}
	return &service{repo: repo}
}

func (s *service) AddCard(userID uint, input *models.CreateCardInput) (*models.PaymentCard, error) {
	v := validation.New()
	v.CardInput(input)
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, v.First())
	}

	number := strings.ReplaceAll(input.CardNumber, " ", "")
	token, err := s.tokenize(number, input.ExpireDate)
	if err != nil {
		return nil, err
	}

	numberHash, err := bcrypt.GenerateFromPassword([]byte(number), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash card number: %w", err)
	}
	cvcHash, err := bcrypt.GenerateFromPassword([]byte(input.CVC), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash cvc: %w", err)
	}

	existing, err := s.repo.ListForUser(userID)
	if err != nil {
		return nil, err
	}

	// The first card on an account is always the default.
	isDefault := input.IsDefault || len(existing) == 0
	if isDefault && len(existing) > 0 {
		if err := s.repo.UnsetDefaults(userID); err != nil {
			return nil, err
		}
	}

	cardType := input.Type
	if cardType == "" {
		cardType = token.CardType
	}

	card := &models.PaymentCard{
		UserID:           userID,
		Name:             input.Name,
		CardNumberHash:   string(numberHash),
		MaskedCardNumber: utils.MaskCardNumber(number),
		ExpireDate:       input.ExpireDate,
		CVCHash:          string(cvcHash),
		StripeToken:      token.Token,
		CardType:         cardType,
		IsDefault:        isDefault,
	}
	if input.CardColor != "" {
		card.CardColor = input.CardColor
	}

	if err := s.repo.Create(card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) ListCards(userID uint) ([]models.PaymentCard, error) {
	return s.repo.ListForUser(userID)
}

func (s *service) GetCard(userID, cardID uint) (*models.PaymentCard, error) {
	card, err := s.repo.GetForUser(cardID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

func (s *service) SetDefault(userID, cardID uint) (*models.PaymentCard, error) {
	card, err := s.GetCard(userID, cardID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UnsetDefaults(userID); err != nil {
		return nil, err
	}
	card.IsDefault = true
	if err := s.repo.Update(card); err != nil {
		return nil, err
	}
	return card, nil
}

// DeleteCard soft-deletes the card. Deleting the default promotes the
// newest remaining card so the account never lacks a default while it
// still has cards.
func (s *service) DeleteCard(userID, cardID uint) error {
	card, err := s.GetCard(userID, cardID)
	if err != nil {
		return err
	}
	wasDefault := card.IsDefault

	if err := s.repo.SoftDelete(cardID, userID); err != nil {
		return err
	}

	if wasDefault {
		newest, err := s.repo.NewestForUser(userID)
		if err != nil {
			if errors.Is(err, repositories.ErrCardNotFound) {
				return nil
			}
			return err
		}
		newest.IsDefault = true
		return s.repo.Update(newest)
	}
	return nil
}

func (s *service) ValidateCard(_ context.Context, userID, cardID uint) error {
	_, err := s.GetCard(userID, cardID)
	return err
}

// stripeTestCards maps well-known test numbers to their tokens so local
// environments never hit the network.
var stripeTestCards = map[string]models.CardToken{
	"4242424242424242": {Token: "tok_visa", CardType: "Visa"},
	"4000056655665556": {Token: "tok_visa_debit", CardType: "Visa Debit"},
	"5555555555554444": {Token: "tok_mastercard", CardType: "Mastercard"},
	"5200828282828210": {Token: "tok_mastercard_debit", CardType: "Mastercard Debit"},
	"378282246310005":  {Token: "tok_amex", CardType: "American Express"},
	"6011111111111117": {Token: "tok_discover", CardType: "Discover"},
}

func (s *service) tokenize(number, expireDate string) (*models.CardToken, error) {
	stripe.Key = config.GetEnv("STRIPE_SECRET_KEY", "")

	if !luhnValid(number) {
		return nil, ErrInvalidCardNumber
	}
	if !expiryValid(expireDate) {
		return nil, ErrExpiredCard
	}

	lastFour := number[len(number)-4:]
	if tc, ok := stripeTestCards[number]; ok {
		return &models.CardToken{Token: tc.Token, CardType: tc.CardType, LastFour: lastFour}, nil
	}

	// Raw PANs are not sent to Stripe from the server side. Real cards
	// are expected to arrive pre-tokenized by Stripe Elements; until the
	// client does that we record the card without a provider token.
	return &models.CardToken{Token: "", CardType: detectCardType(number), LastFour: lastFour}, nil
}

func luhnValid(number string) bool {
	if len(number) < 12 || len(number) > 19 {
		return false
	}
	var sum int
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

// expiryValid parses MM/YY or MM/YYYY and checks the card is not expired.
func expiryValid(expireDate string) bool {
	parts := strings.Split(expireDate, "/")
	if len(parts) != 2 {
		return false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	if year < 100 {
		year += 2000
	}

	currentYear, currentMonth, _ := time.Now().Date()
	if year < currentYear || (year == currentYear && month < int(currentMonth)) {
		return false
	}
	return true
}

func detectCardType(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return "Visa"
	case strings.HasPrefix(number, "5"):
		return "Mastercard"
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return "American Express"
	case strings.HasPrefix(number, "6"):
		return "Discover"
	default:
		return "Unknown"
	}
}
