package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// MinQuoteQuantity é o pedido mínimo da fábrica. Orçamento abaixo disso é
// rejeitado antes de qualquer chamada remota.
const MinQuoteQuantity = 50

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateQuoteInput(input SubmitQuoteInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if strings.TrimSpace(input.ProductInterest) == "" {
		errors = append(errors, ValidationError{"product_interest", "is required"})
	}

	if input.Quantity < MinQuoteQuantity {
		errors = append(errors, ValidationError{
			"quantity",
			fmt.Sprintf("minimum order is %d pieces", MinQuoteQuantity),
		})
	}

	return errors
}

func ValidateMessageInput(input SubmitMessageInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Content) == "" {
		errors = append(errors, ValidationError{"content", "is required"})
	} else if len(input.Content) > 5000 {
		errors = append(errors, ValidationError{"content", "must not exceed 5000 characters"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")

	return len(cleaned) >= 10 && len(cleaned) <= 11
}

// joinValidationErrors no formato que o painel já espera.
func joinValidationErrors(errs []ValidationError) string {
	msg := "validation failed: "
	for _, e := range errs {
		msg += e.Field + " (" + e.Message + "), "
	}
	return msg
}
