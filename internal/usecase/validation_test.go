package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhoneNumber(t *testing.T) {
	assert.True(t, isValidPhoneNumber("(11) 98765-4321"))
	assert.True(t, isValidPhoneNumber("1133334444"))

	assert.False(t, isValidPhoneNumber("12345"))
	assert.False(t, isValidPhoneNumber("123456789012345"))
}

func TestValidateQuoteInput_AcumulaErros(t *testing.T) {
	errs := ValidateQuoteInput(SubmitQuoteInput{Quantity: 10})

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}

	assert.True(t, fields["name"])
	assert.True(t, fields["email"])
	assert.True(t, fields["product_interest"])
	assert.True(t, fields["quantity"])
}

func TestValidateQuoteInput_TelefoneOpcional(t *testing.T) {
	input := SubmitQuoteInput{
		Name:            "Maria",
		Email:           "maria@example.com",
		ProductInterest: "camisetas",
		Quantity:        MinQuoteQuantity,
	}

	assert.Empty(t, ValidateQuoteInput(input))

	input.Phone = "12345"
	errs := ValidateQuoteInput(input)
	assert.Len(t, errs, 1)
	assert.Equal(t, "phone", errs[0].Field)
}
