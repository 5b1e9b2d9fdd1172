package validation

import (
	"fmt"
	"strings"
	"unicode"

	"paylink/internal/models"
)

// Validator collects field validation errors.
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	v.Errors[field] = message
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// First returns one error message, for responses that surface a single detail.
func (v *Validator) First() string {
	for _, msg := range v.Errors {
		return msg
	}
	return ""
}

// Email validates email format
func (v *Validator) Email(field, email string) {
	v.Check(emailRegex.MatchString(email), field, "must be a valid email address")
}

// Phone validates phone number format
func (v *Validator) Phone(field, phone string) {
	v.Check(phoneRegex.MatchString(phone), field, "must be a valid phone number")
}

// Required checks if a string is not empty
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// MaxLength checks if a string has at most n characters
func (v *Validator) MaxLength(field string, value string, n int) {
	v.Check(len(value) <= n, field, fmt.Sprintf("must not be more than %d characters long", n))
}

// Range checks if a number is between min and max
func (v *Validator) Range(field string, value float64, min, max float64) {
	v.Check(value >= min && value <= max, field, fmt.Sprintf("must be between %v and %v", min, max))
}

// Password validates password strength
func (v *Validator) Password(field, password string) {
	v.Check(len(password) >= MinPasswordLength, field,
		fmt.Sprintf("must be at least %d characters long", MinPasswordLength))
	v.Check(len(password) <= MaxPasswordLength, field,
		fmt.Sprintf("must not be more than %d characters long", MaxPasswordLength))

	var hasLetter, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}
	v.Check(hasLetter, field, "must contain at least one letter")
	v.Check(hasNumber, field, "must contain at least one number")
}

// UserRegistration validates the registration payload. Either email or
// phone must be present, matching the identity model.
func (v *Validator) UserRegistration(input *models.CreateUserInput) {
	v.Required("fullname", input.FullName)
	v.MaxLength("fullname", input.FullName, MaxFullNameLength)

	if input.Email == "" && input.Phone == "" {
		v.AddError("identifier", "either email or phone is required")
	}
	if input.Email != "" {
		v.Email("email", input.Email)
	}
	if input.Phone != "" {
		v.Phone("phone", input.Phone)
	}

	v.Password("password", input.Password)
}

// CardInput validates the add-card payload.
func (v *Validator) CardInput(input *models.CreateCardInput) {
	v.Required("name", input.Name)
	v.Required("card_number", input.CardNumber)
	v.Required("expire_date", input.ExpireDate)
	v.Required("cvc", input.CVC)
}
