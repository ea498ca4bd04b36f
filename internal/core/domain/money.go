package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fraction digits every monetary value is rounded to.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds x to two decimal places: x*100 as computed in float64 is
// rounded half away from zero, then scaled back. 0.1*0.2 yields exactly 0.02,
// and 1.005 yields 1 because 1.005*100 is 100.49999999999999.
func RoundMoney(x float64) float64 {
	return toFloat(roundMoney(x))
}

// LineItemTotal returns quantity × unitPrice rounded to cents.
// Negative inputs are not rejected here; validation enforces non-negativity.
func LineItemTotal(quantity, unitPrice float64) float64 {
	return toFloat(lineItemTotal(quantity, unitPrice))
}

// ApplyAdjustment resolves a charge value against base. Percentages are taken
// of base and rounded; fixed amounts are returned unchanged.
func ApplyAdjustment(base, value float64, kind ChargeType) float64 {
	return toFloat(applyAdjustment(base, value, kind))
}

func lineItemTotal(quantity, unitPrice float64) decimal.Decimal {
	return roundMoney(quantity * unitPrice)
}

func applyAdjustment(base, value float64, kind ChargeType) decimal.Decimal {
	if kind == ChargePercentage {
		return roundMoney(base * value / 100)
	}
	return fromFloat(value)
}

// roundMoney works on the binary value of x*100 so results match plain
// float arithmetic; the decimal only carries the rounded cents exactly.
func roundMoney(x float64) decimal.Decimal {
	cents := x * 100
	if math.IsNaN(cents) || math.IsInf(cents, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(cents).Round(0).Div(hundred)
}

// fromFloat converts x to a decimal; NaN and infinities become zero so the
// arithmetic stays total.
func fromFloat(x float64) decimal.Decimal {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(x)
}

func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
