package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the ISO calendar date format used for invoice and due dates.
const DateLayout = "2006-01-02"

// DefaultCurrency is the currency label of a fresh invoice.
const DefaultCurrency = "USD"

// NewLineItem returns a blank line item with a freshly generated ID.
func NewLineItem() LineItem {
	return LineItem{ID: uuid.NewString()}
}

// DefaultInvoice returns the document a new session starts with; both dates
// are set to the calendar day of now.
func DefaultInvoice(now time.Time) Invoice {
	today := now.Format(DateLayout)
	return Invoice{
		Language: LanguageEnglish,
		Sender:   Party{CustomInputs: []CustomInput{}},
		Receiver: Party{CustomInputs: []CustomInput{}},
		Details: InvoiceDetails{
			InvoiceNumber:       "1",
			InvoiceDate:         today,
			DueDate:             today,
			Currency:            DefaultCurrency,
			Items:               []LineItem{NewLineItem()},
			PaymentInformation:  &PaymentInformation{},
			DiscountDetails:     &Adjustment{AmountType: ChargeAmount},
			TaxDetails:          &Adjustment{AmountType: ChargeAmount},
			ShippingDetails:     &ShippingDetails{CostType: ChargeAmount},
			IncludeTotalInWords: true,
		},
	}
}
