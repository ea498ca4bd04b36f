package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceWithItems(items ...domain.LineItem) domain.Invoice {
	inv := domain.DefaultInvoice(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	inv.Details.Items = items
	return inv
}

func TestSubtotal(t *testing.T) {
	assert.Equal(t, 0.0, domain.Subtotal(nil))
	assert.Equal(t, 0.0, domain.Subtotal([]domain.LineItem{}))

	items := []domain.LineItem{
		{ID: "a", Quantity: 0.1, UnitPrice: 0.2},
		{ID: "b", Quantity: 3, UnitPrice: 19.99},
		{ID: "c", Quantity: 1, UnitPrice: 0.005},
	}
	// 0.02 + 59.97 + 0.01
	assert.Equal(t, 60.0, domain.Subtotal(items))
}

func TestTotalAmount(t *testing.T) {
	tests := []struct {
		name  string
		setup func(d *domain.InvoiceDetails)
		want  float64
	}{
		{
			name:  "no adjustments",
			setup: func(d *domain.InvoiceDetails) {},
			want:  1000,
		},
		{
			name: "percentages apply to the running total",
			setup: func(d *domain.InvoiceDetails) {
				d.DiscountEnabled, d.TaxEnabled, d.ShippingEnabled = true, true, true
				d.DiscountDetails = &domain.Adjustment{Amount: 10, AmountType: domain.ChargePercentage}
				d.TaxDetails = &domain.Adjustment{Amount: 10, AmountType: domain.ChargePercentage}
				d.ShippingDetails = &domain.ShippingDetails{Cost: 10, CostType: domain.ChargePercentage}
			},
			want: 1089,
		},
		{
			name: "disabled discount is ignored whatever its value",
			setup: func(d *domain.InvoiceDetails) {
				d.DiscountEnabled = false
				d.DiscountDetails = &domain.Adjustment{Amount: 9999, AmountType: domain.ChargePercentage}
			},
			want: 1000,
		},
		{
			name: "fixed amounts",
			setup: func(d *domain.InvoiceDetails) {
				d.DiscountEnabled, d.TaxEnabled, d.ShippingEnabled = true, true, true
				d.DiscountDetails = &domain.Adjustment{Amount: 100, AmountType: domain.ChargeAmount}
				d.TaxDetails = &domain.Adjustment{Amount: 10, AmountType: domain.ChargePercentage}
				d.ShippingDetails = &domain.ShippingDetails{Cost: 25.5, CostType: domain.ChargeAmount}
			},
			want: 1015.5,
		},
		{
			name: "enabled zero adjustments are no-ops",
			setup: func(d *domain.InvoiceDetails) {
				d.DiscountEnabled, d.TaxEnabled, d.ShippingEnabled = true, true, true
			},
			want: 1000,
		},
		{
			name: "enabled adjustment without details",
			setup: func(d *domain.InvoiceDetails) {
				d.TaxEnabled = true
				d.TaxDetails = nil
			},
			want: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := invoiceWithItems(domain.LineItem{ID: "a", Quantity: 1, UnitPrice: 1000})
			tt.setup(&inv.Details)
			assert.Equal(t, tt.want, domain.TotalAmount(inv))
		})
	}
}

func TestWithComputedTotals(t *testing.T) {
	inv := invoiceWithItems(
		domain.LineItem{ID: "a", Quantity: 2, UnitPrice: 250, Total: 1},
		domain.LineItem{ID: "b", Quantity: 1, UnitPrice: 0.5},
	)
	inv.Details.SubTotal = 42
	inv.Details.TotalAmount = 42

	out := domain.WithComputedTotals(inv)

	require.Len(t, out.Details.Items, 2)
	assert.Equal(t, 500.0, out.Details.Items[0].Total)
	assert.Equal(t, 0.5, out.Details.Items[1].Total)
	assert.Equal(t, 500.5, out.Details.SubTotal)
	assert.Equal(t, 500.5, out.Details.TotalAmount)
	assert.Equal(t, "Five hundred USD and fifty cents", out.Details.TotalAmountInWords)

	// input untouched
	assert.Equal(t, 1.0, inv.Details.Items[0].Total)
	assert.Equal(t, 42.0, inv.Details.SubTotal)
	assert.Empty(t, inv.Details.TotalAmountInWords)
}

func TestWithComputedTotals_WordsDisabled(t *testing.T) {
	inv := invoiceWithItems(domain.LineItem{ID: "a", Quantity: 1, UnitPrice: 10})
	inv.Details.IncludeTotalInWords = false
	inv.Details.TotalAmountInWords = "stale"

	out := domain.WithComputedTotals(inv)
	assert.Empty(t, out.Details.TotalAmountInWords)
}

func TestWithComputedTotals_Portuguese(t *testing.T) {
	inv := invoiceWithItems(domain.LineItem{ID: "a", Quantity: 1, UnitPrice: 1.5})
	inv.Language = domain.LanguagePortuguese
	inv.Details.Currency = "BRL"

	out := domain.WithComputedTotals(inv)
	assert.Equal(t, "Um BRL e cinquenta centavos", out.Details.TotalAmountInWords)
}

func TestInvoice_Clone(t *testing.T) {
	inv := invoiceWithItems(domain.LineItem{ID: "a", Name: "original"})
	inv.Sender.CustomInputs = []domain.CustomInput{{Key: "VAT", Value: "123"}}
	inv.Details.Signature = &domain.Signature{Data: "Jane"}

	clone := inv.Clone()
	clone.Details.Items[0].Name = "changed"
	clone.Sender.CustomInputs[0].Value = "changed"
	clone.Details.TaxDetails.Amount = 99
	clone.Details.Signature.Data = "changed"

	assert.Equal(t, "original", inv.Details.Items[0].Name)
	assert.Equal(t, "123", inv.Sender.CustomInputs[0].Value)
	assert.Equal(t, 0.0, inv.Details.TaxDetails.Amount)
	assert.Equal(t, "Jane", inv.Details.Signature.Data)
}

func TestParty_VisibleCustomInputs(t *testing.T) {
	p := domain.Party{CustomInputs: []domain.CustomInput{
		{Key: "VAT", Value: "123"},
		{Key: "", Value: "orphan"},
		{Key: "Empty", Value: "  "},
	}}

	assert.Equal(t, []domain.CustomInput{{Key: "VAT", Value: "123"}}, p.VisibleCustomInputs())
	assert.Len(t, p.CustomInputs, 3)
}

func TestSignature_IsImage(t *testing.T) {
	assert.True(t, domain.Signature{Data: "data:image/png;base64,AAAA"}.IsImage())
	assert.False(t, domain.Signature{Data: "Jane Doe", FontFamily: "Great Vibes"}.IsImage())
}

func TestDefaultInvoice(t *testing.T) {
	now := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	inv := domain.DefaultInvoice(now)

	assert.Equal(t, domain.LanguageEnglish, inv.Language)
	assert.Equal(t, "2026-03-01", inv.Details.InvoiceDate)
	assert.Equal(t, "2026-03-01", inv.Details.DueDate)
	assert.Equal(t, domain.DefaultCurrency, inv.Details.Currency)
	assert.True(t, inv.Details.IncludeTotalInWords)
	require.Len(t, inv.Details.Items, 1)
	assert.NotEmpty(t, inv.Details.Items[0].ID)
	assert.Equal(t, domain.ChargeAmount, inv.Details.DiscountDetails.AmountType)
	assert.Equal(t, domain.ChargeAmount, inv.Details.ShippingDetails.CostType)
}

func TestCharges(t *testing.T) {
	inv := domain.DefaultInvoice(time.Now())
	inv.Details.Items = []domain.LineItem{{ID: "a", Quantity: 1, UnitPrice: 1000}}
	inv.Details.DiscountEnabled = true
	inv.Details.DiscountDetails = &domain.Adjustment{Amount: 10, AmountType: domain.ChargePercentage}
	inv.Details.TaxEnabled = true
	inv.Details.TaxDetails = &domain.Adjustment{Amount: 10, AmountType: domain.ChargePercentage}
	inv.Details.ShippingEnabled = true
	inv.Details.ShippingDetails = &domain.ShippingDetails{Cost: 5.5, CostType: domain.ChargeAmount}

	charges := domain.Charges(inv)

	assert.Equal(t, []domain.Charge{
		{Kind: domain.ChargeDiscount, Value: 10, Type: domain.ChargePercentage, Amount: 100},
		{Kind: domain.ChargeTax, Value: 10, Type: domain.ChargePercentage, Amount: 90},
		{Kind: domain.ChargeShipping, Value: 5.5, Type: domain.ChargeAmount, Amount: 5.5},
	}, charges)
	assert.Equal(t, 995.5, domain.TotalAmount(inv))
}

func TestCharges_SkipsDisabledAndZero(t *testing.T) {
	inv := domain.DefaultInvoice(time.Now())
	inv.Details.Items = []domain.LineItem{{ID: "a", Quantity: 1, UnitPrice: 100}}
	inv.Details.DiscountDetails = &domain.Adjustment{Amount: 50, AmountType: domain.ChargePercentage}
	inv.Details.TaxEnabled = true
	inv.Details.TaxDetails = &domain.Adjustment{Amount: 0, AmountType: domain.ChargePercentage}

	assert.Empty(t, domain.Charges(inv))
}
