package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	"github.com/SscSPs/invoice_drafter/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{export.SheetName}, f.GetSheetList())
	rows, err := f.GetRows(export.SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return rows
}

// valueNextTo returns the cell right of the first cell equal to label.
func valueNextTo(rows [][]string, label string) (string, bool) {
	for _, row := range rows {
		for i, v := range row {
			if v == label && i+1 < len(row) {
				return row[i+1], true
			}
		}
	}
	return "", false
}

func TestInvoiceXLSX(t *testing.T) {
	inv := domain.DefaultInvoice(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	inv.Details.InvoiceNumber = "INV-7"
	inv.Sender.Name = "Acme Ltd"
	inv.Sender.City = "Porto"
	inv.Sender.CustomInputs = []domain.CustomInput{{Key: "VAT", Value: "PT123"}, {Key: "Hidden"}}
	inv.Receiver.Name = "Globex"
	inv.Details.PaymentTerms = "Net 30"
	inv.Details.Items = []domain.LineItem{{ID: "a", Name: "Consulting", Quantity: 1, UnitPrice: 1000}}
	inv.Details.DiscountEnabled = true
	inv.Details.DiscountDetails = &domain.Adjustment{Amount: 10, AmountType: domain.ChargePercentage}
	inv.Details.TaxEnabled = true
	inv.Details.TaxDetails = &domain.Adjustment{Amount: 10, AmountType: domain.ChargePercentage}
	inv.Details.ShippingEnabled = true
	inv.Details.ShippingDetails = &domain.ShippingDetails{Cost: 10, CostType: domain.ChargePercentage}

	data, err := export.InvoiceXLSX(inv)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	rows := readRows(t, data)

	tests := []struct {
		label string
		want  string
	}{
		{label: "Invoice number", want: "INV-7"},
		{label: "Invoice date", want: "2026-03-01"},
		{label: "From", want: "Acme Ltd"},
		{label: "To", want: "Globex"},
		{label: "VAT", want: "PT123"},
		{label: "Consulting", want: ""},
		{label: "Subtotal", want: "1000"},
		{label: "Discount (10%)", want: "-100"},
		{label: "Tax (10%)", want: "90"},
		{label: "Shipping (10%)", want: "99"},
		{label: "Total", want: "1089"},
		{label: "In words", want: "One thousand, eighty-nine USD"},
		{label: "Payment terms", want: "Net 30"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := valueNextTo(rows, tt.label)
			require.True(t, ok, "label %q not found", tt.label)
			assert.Equal(t, tt.want, got)
		})
	}

	_, hidden := valueNextTo(rows, "Hidden")
	assert.False(t, hidden, "incomplete custom inputs are not exported")
}

func TestInvoiceXLSX_OmitsDisabledCharges(t *testing.T) {
	inv := domain.DefaultInvoice(time.Now())
	inv.Details.IncludeTotalInWords = false
	inv.Details.TaxDetails = &domain.Adjustment{Amount: 20, AmountType: domain.ChargePercentage}

	data, err := export.InvoiceXLSX(inv)
	require.NoError(t, err)

	rows := readRows(t, data)
	_, hasTax := valueNextTo(rows, "Tax (20%)")
	assert.False(t, hasTax)
	_, hasWords := valueNextTo(rows, "In words")
	assert.False(t, hasWords)
	got, ok := valueNextTo(rows, "Total")
	require.True(t, ok)
	assert.Equal(t, "0", got)
}
