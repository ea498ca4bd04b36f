package domain_test

import (
	"testing"

	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestPartyPatch_Apply(t *testing.T) {
	original := domain.Party{
		Name:         "Acme",
		Email:        "old@acme.test",
		City:         "Lisbon",
		CustomInputs: []domain.CustomInput{{Key: "VAT", Value: "1"}},
	}

	patched := domain.PartyPatch{
		Email: strPtr("new@acme.test"),
		City:  strPtr(""),
	}.Apply(original)

	assert.Equal(t, "Acme", patched.Name)
	assert.Equal(t, "new@acme.test", patched.Email)
	assert.Empty(t, patched.City)
	assert.Equal(t, original.CustomInputs, patched.CustomInputs)
	assert.Equal(t, "old@acme.test", original.Email)
	assert.Equal(t, "Lisbon", original.City)
}

func TestPartyPatch_ReplacesCustomInputs(t *testing.T) {
	original := domain.Party{CustomInputs: []domain.CustomInput{{Key: "VAT", Value: "1"}}}
	inputs := []domain.CustomInput{{Key: "IBAN", Value: "PT50"}}

	patched := domain.PartyPatch{CustomInputs: &inputs}.Apply(original)
	inputs[0].Value = "mutated"

	require.Len(t, patched.CustomInputs, 1)
	assert.Equal(t, domain.CustomInput{Key: "IBAN", Value: "PT50"}, patched.CustomInputs[0])
	assert.Equal(t, "VAT", original.CustomInputs[0].Key)
}

func TestDetailsPatch_Apply(t *testing.T) {
	original := domain.InvoiceDetails{
		InvoiceNumber:   "7",
		Currency:        "USD",
		PaymentTerms:    "Net 30",
		DiscountDetails: &domain.Adjustment{Amount: 5, AmountType: domain.ChargeAmount},
		Signature:       &domain.Signature{Data: "Jane"},
	}

	patched := domain.DetailsPatch{
		Currency:        strPtr("EUR"),
		DiscountEnabled: boolPtr(true),
		DiscountDetails: &domain.Adjustment{Amount: 10, AmountType: domain.ChargePercentage},
	}.Apply(original)

	assert.Equal(t, "7", patched.InvoiceNumber)
	assert.Equal(t, "EUR", patched.Currency)
	assert.Equal(t, "Net 30", patched.PaymentTerms)
	assert.True(t, patched.DiscountEnabled)
	assert.Equal(t, domain.Adjustment{Amount: 10, AmountType: domain.ChargePercentage}, *patched.DiscountDetails)
	assert.Equal(t, "Jane", patched.Signature.Data)

	assert.Equal(t, "USD", original.Currency)
	assert.Equal(t, 5.0, original.DiscountDetails.Amount)
}

func TestDetailsPatch_Signature(t *testing.T) {
	original := domain.InvoiceDetails{Signature: &domain.Signature{Data: "Jane"}}

	replaced := domain.DetailsPatch{Signature: &domain.Signature{Data: "John", FontFamily: "Dancing Script"}}.Apply(original)
	assert.Equal(t, "John", replaced.Signature.Data)
	assert.Equal(t, "Dancing Script", replaced.Signature.FontFamily)

	cleared := domain.DetailsPatch{ClearSignature: true}.Apply(original)
	assert.Nil(t, cleared.Signature)
	assert.NotNil(t, original.Signature)
}
