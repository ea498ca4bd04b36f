package domain

import "strings"

// Language is one of the supported document locales.
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguagePortuguese Language = "pt-BR"
)

// ChargeType tells whether an Adjustment value is a fixed amount or a percentage.
type ChargeType string

const (
	ChargeAmount     ChargeType = "amount"
	ChargePercentage ChargeType = "percentage"
)

// Invoice is the root aggregate of a drafting session.
type Invoice struct {
	Language Language       `json:"language,omitempty" validate:"omitempty,oneof=en pt-BR"`
	Sender   Party          `json:"sender"`
	Receiver Party          `json:"receiver"`
	Details  InvoiceDetails `json:"details"`
}

// Party describes either the sender or the receiver of an invoice.
type Party struct {
	Name         string        `json:"name" validate:"required"`
	Address      string        `json:"address"`
	ZipCode      string        `json:"zipCode"`
	City         string        `json:"city"`
	Country      string        `json:"country"`
	Email        string        `json:"email" validate:"omitempty,email"`
	Phone        string        `json:"phone"`
	CustomInputs []CustomInput `json:"customInputs"`
}

// CustomInput is a free-form key/value line printed under a party.
type CustomInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// VisibleCustomInputs returns the custom inputs that have both a key and a value.
// Incomplete entries stay in the model until the user removes them.
func (p Party) VisibleCustomInputs() []CustomInput {
	visible := make([]CustomInput, 0, len(p.CustomInputs))
	for _, ci := range p.CustomInputs {
		if strings.TrimSpace(ci.Key) == "" || strings.TrimSpace(ci.Value) == "" {
			continue
		}
		visible = append(visible, ci)
	}
	return visible
}

// InvoiceDetails holds everything on the invoice except the two parties.
type InvoiceDetails struct {
	InvoiceLogo         string              `json:"invoiceLogo"`
	InvoiceNumber       string              `json:"invoiceNumber" validate:"required"`
	InvoiceDate         string              `json:"invoiceDate" validate:"required"`
	DueDate             string              `json:"dueDate" validate:"required"`
	Currency            string              `json:"currency" validate:"required"`
	Items               []LineItem          `json:"items" validate:"min=1,dive"`
	PaymentInformation  *PaymentInformation `json:"paymentInformation,omitempty"`
	DiscountDetails     *Adjustment         `json:"discountDetails,omitempty"`
	TaxDetails          *Adjustment         `json:"taxDetails,omitempty"`
	ShippingDetails     *ShippingDetails    `json:"shippingDetails,omitempty"`
	DiscountEnabled     bool                `json:"discountEnabled"`
	TaxEnabled          bool                `json:"taxEnabled"`
	ShippingEnabled     bool                `json:"shippingEnabled"`
	SubTotal            float64             `json:"subTotal"`
	TotalAmount         float64             `json:"totalAmount"`
	TotalAmountInWords  string              `json:"totalAmountInWords"`
	IncludeTotalInWords bool                `json:"includeTotalInWords"`
	AdditionalNotes     string              `json:"additionalNotes"`
	PaymentTerms        string              `json:"paymentTerms" validate:"required"`
	Signature           *Signature          `json:"signature,omitempty"`
}

// LineItem is one billable row. Total is derived from Quantity and UnitPrice.
type LineItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
	Total       float64 `json:"total"`
}

// PaymentInformation is the bank account the receiver should pay into.
type PaymentInformation struct {
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
}

// Adjustment is a discount or tax, either a fixed amount or a percentage.
type Adjustment struct {
	Amount     float64    `json:"amount"`
	AmountType ChargeType `json:"amountType"`
}

// ShippingDetails has the same shape as Adjustment with different field names.
type ShippingDetails struct {
	Cost     float64    `json:"cost"`
	CostType ChargeType `json:"costType"`
}

// Signature is either an image data URI or cursive text rendered with FontFamily.
type Signature struct {
	Data       string `json:"data"`
	FontFamily string `json:"fontFamily,omitempty"`
}

// IsImage reports whether the signature holds a drawn or uploaded image.
func (s Signature) IsImage() bool {
	return IsDataURL(s.Data)
}

// IsDataURL reports whether str is an embedded data URI.
func IsDataURL(str string) bool {
	return strings.HasPrefix(str, "data:")
}

// EffectiveLanguage returns the invoice language, falling back to English.
func (inv Invoice) EffectiveLanguage() Language {
	if inv.Language == LanguagePortuguese {
		return LanguagePortuguese
	}
	return LanguageEnglish
}

// Clone returns a deep copy so callers can mutate the result without
// touching the original's slices or pointers.
func (inv Invoice) Clone() Invoice {
	out := inv
	out.Sender = inv.Sender.clone()
	out.Receiver = inv.Receiver.clone()
	out.Details = inv.Details.clone()
	return out
}

func (p Party) clone() Party {
	out := p
	if p.CustomInputs != nil {
		out.CustomInputs = append([]CustomInput(nil), p.CustomInputs...)
	}
	return out
}

func (d InvoiceDetails) clone() InvoiceDetails {
	out := d
	if d.Items != nil {
		out.Items = append([]LineItem(nil), d.Items...)
	}
	if d.PaymentInformation != nil {
		pi := *d.PaymentInformation
		out.PaymentInformation = &pi
	}
	if d.DiscountDetails != nil {
		dd := *d.DiscountDetails
		out.DiscountDetails = &dd
	}
	if d.TaxDetails != nil {
		td := *d.TaxDetails
		out.TaxDetails = &td
	}
	if d.ShippingDetails != nil {
		sd := *d.ShippingDetails
		out.ShippingDetails = &sd
	}
	if d.Signature != nil {
		sig := *d.Signature
		out.Signature = &sig
	}
	return out
}
