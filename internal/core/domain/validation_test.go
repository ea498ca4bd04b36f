package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInvoice() domain.Invoice {
	inv := domain.DefaultInvoice(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	inv.Sender.Name = "Acme Ltd"
	inv.Sender.Email = "billing@acme.test"
	inv.Receiver.Name = "Globex"
	inv.Details.PaymentTerms = "Net 30"
	inv.Details.Items[0].Name = "Consulting"
	inv.Details.Items[0].Quantity = 1
	inv.Details.Items[0].UnitPrice = 100
	return inv
}

func errorFor(t *testing.T, res domain.ValidationResult, path string) domain.FieldError {
	t.Helper()
	for _, e := range res.Errors {
		if e.Path == path {
			return e
		}
	}
	t.Fatalf("no validation error for %q in %+v", path, res.Errors)
	return domain.FieldError{}
}

func TestValidate_Valid(t *testing.T) {
	res := domain.Validate(validInvoice())
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(inv *domain.Invoice)
		path    string
		message string
	}{
		{name: "sender name", mutate: func(inv *domain.Invoice) { inv.Sender.Name = "" }, path: "sender.name", message: domain.MsgRequired},
		{name: "receiver name", mutate: func(inv *domain.Invoice) { inv.Receiver.Name = "" }, path: "receiver.name", message: domain.MsgRequired},
		{name: "sender email syntax", mutate: func(inv *domain.Invoice) { inv.Sender.Email = "not-an-email" }, path: "sender.email", message: domain.MsgInvalidEmail},
		{name: "receiver email syntax", mutate: func(inv *domain.Invoice) { inv.Receiver.Email = "a@" }, path: "receiver.email", message: domain.MsgInvalidEmail},
		{name: "invoice number", mutate: func(inv *domain.Invoice) { inv.Details.InvoiceNumber = "" }, path: "details.invoiceNumber", message: domain.MsgRequired},
		{name: "issue date", mutate: func(inv *domain.Invoice) { inv.Details.InvoiceDate = "" }, path: "details.invoiceDate", message: domain.MsgIssueDateRequired},
		{name: "due date", mutate: func(inv *domain.Invoice) { inv.Details.DueDate = "" }, path: "details.dueDate", message: domain.MsgDueDateRequired},
		{name: "currency", mutate: func(inv *domain.Invoice) { inv.Details.Currency = "" }, path: "details.currency", message: domain.MsgRequired},
		{name: "payment terms", mutate: func(inv *domain.Invoice) { inv.Details.PaymentTerms = "" }, path: "details.paymentTerms", message: domain.MsgRequired},
		{name: "no items", mutate: func(inv *domain.Invoice) { inv.Details.Items = nil }, path: "details.items", message: domain.MsgAtLeastOneItem},
		{
			name: "all items have zero quantity",
			mutate: func(inv *domain.Invoice) {
				inv.Details.Items = []domain.LineItem{{ID: "a", UnitPrice: 10}, {ID: "b", UnitPrice: 20}}
			},
			path:    "details.items",
			message: domain.MsgAtLeastOneItemWithQuantity,
		},
		{
			name: "negative unit price",
			mutate: func(inv *domain.Invoice) {
				inv.Details.Items = append(inv.Details.Items, domain.LineItem{ID: "b", Quantity: 1, UnitPrice: -5})
			},
			path:    "details.items.1.unitPrice",
			message: domain.MsgNonNegative,
		},
		{name: "unsupported language", mutate: func(inv *domain.Invoice) { inv.Language = "fr" }, path: "language", message: domain.MsgInvalidLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := validInvoice()
			tt.mutate(&inv)

			res := domain.Validate(inv)

			assert.False(t, res.Valid)
			assert.Equal(t, tt.message, errorFor(t, res, tt.path).Message)
		})
	}
}

func TestValidate_OptionalFields(t *testing.T) {
	inv := validInvoice()
	inv.Sender.Email = ""
	inv.Receiver.Email = ""
	inv.Language = ""
	inv.Details.Items = append(inv.Details.Items, domain.LineItem{ID: "zero"})

	res := domain.Validate(inv)
	assert.True(t, res.Valid, "errors: %+v", res.Errors)
}

func TestValidate_DefaultInvoiceReportsEveryMissingField(t *testing.T) {
	res := domain.Validate(domain.DefaultInvoice(time.Now()))

	require.False(t, res.Valid)
	paths := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		paths = append(paths, e.Path)
	}
	assert.ElementsMatch(t, []string{"sender.name", "receiver.name", "details.items", "details.paymentTerms"}, paths)
}

func TestValidate_ItemRulesRunWithoutAnyQuantity(t *testing.T) {
	inv := validInvoice()
	inv.Details.Items = []domain.LineItem{{ID: "a", Quantity: 0, UnitPrice: -5}}

	res := domain.Validate(inv)

	require.False(t, res.Valid)
	require.Len(t, res.Errors, 2, "errors: %+v", res.Errors)
	assert.Equal(t, domain.MsgAtLeastOneItemWithQuantity, errorFor(t, res, "details.items").Message)
	assert.Equal(t, domain.MsgNonNegative, errorFor(t, res, "details.items.0.unitPrice").Message)
}

func TestValidate_EmptyItemsReportedOnce(t *testing.T) {
	inv := validInvoice()
	inv.Details.Items = []domain.LineItem{}

	res := domain.Validate(inv)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, domain.FieldError{Path: "details.items", Message: domain.MsgAtLeastOneItem}, res.Errors[0])
}

func TestJoinValidationErrors(t *testing.T) {
	errs := []domain.FieldError{
		{Path: "sender.name", Message: domain.MsgRequired},
		{Path: "", Message: "custom failure"},
	}

	assert.Equal(t, "sender.name: validation.required\nform: custom failure", domain.JoinValidationErrors(errs, nil))

	upper := func(key string) string { return strings.ToUpper(key) }
	assert.Equal(t, "sender.name: VALIDATION.REQUIRED\nform: custom failure", domain.JoinValidationErrors(errs, upper))

	assert.Empty(t, domain.JoinValidationErrors(nil, nil))
}
