package domain

import "github.com/shopspring/decimal"

// Subtotal sums the rounded line totals of items. An empty list sums to 0.
func Subtotal(items []LineItem) float64 {
	return toFloat(subtotal(items))
}

func subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(lineItemTotal(item.Quantity, item.UnitPrice))
	}
	return sum
}

// ChargeKind names one of the three charges applied after the subtotal.
type ChargeKind string

const (
	ChargeDiscount ChargeKind = "discount"
	ChargeTax      ChargeKind = "tax"
	ChargeShipping ChargeKind = "shipping"
)

// Charge is an enabled charge resolved to money. Value and Type are as
// entered; Amount is always positive, a discount is subtracted.
type Charge struct {
	Kind   ChargeKind
	Value  float64
	Type   ChargeType
	Amount float64
}

// Charges resolves discount, tax and shipping, in that order, against the
// running total. A percentage tax is taken of the discounted amount and a
// percentage shipping cost of the discounted and taxed amount. Disabled or
// zero charges are skipped whatever value they hold.
func Charges(inv Invoice) []Charge {
	charges, _ := resolveCharges(inv.Details)
	return charges
}

// TotalAmount applies Charges to the subtotal.
func TotalAmount(inv Invoice) float64 {
	_, total := resolveCharges(inv.Details)
	return RoundMoney(toFloat(total))
}

func resolveCharges(d InvoiceDetails) ([]Charge, decimal.Decimal) {
	total := subtotal(d.Items)
	var charges []Charge
	apply := func(kind ChargeKind, value float64, typ ChargeType) decimal.Decimal {
		amount := applyAdjustment(toFloat(total), value, typ)
		charges = append(charges, Charge{Kind: kind, Value: value, Type: typ, Amount: toFloat(amount)})
		return amount
	}

	if d.DiscountEnabled && d.DiscountDetails != nil && d.DiscountDetails.Amount != 0 {
		total = total.Sub(apply(ChargeDiscount, d.DiscountDetails.Amount, d.DiscountDetails.AmountType))
	}
	if d.TaxEnabled && d.TaxDetails != nil && d.TaxDetails.Amount != 0 {
		total = total.Add(apply(ChargeTax, d.TaxDetails.Amount, d.TaxDetails.AmountType))
	}
	if d.ShippingEnabled && d.ShippingDetails != nil && d.ShippingDetails.Cost != 0 {
		total = total.Add(apply(ChargeShipping, d.ShippingDetails.Cost, d.ShippingDetails.CostType))
	}
	return charges, total
}

// WithComputedTotals returns a copy of inv with every derived field refreshed:
// per-line totals, subtotal, total and, when enabled, the total in words.
// inv itself is left untouched.
func WithComputedTotals(inv Invoice) Invoice {
	out := inv.Clone()
	for i := range out.Details.Items {
		out.Details.Items[i].Total = LineItemTotal(out.Details.Items[i].Quantity, out.Details.Items[i].UnitPrice)
	}
	out.Details.SubTotal = Subtotal(out.Details.Items)
	out.Details.TotalAmount = TotalAmount(out)
	out.Details.TotalAmountInWords = ""
	if out.Details.IncludeTotalInWords {
		out.Details.TotalAmountInWords = ToWords(out.Details.TotalAmount, out.Details.Currency, out.EffectiveLanguage())
	}
	return out
}
