package domain

// PartyPatch is a partial update of a Party. Nil fields are left unchanged.
type PartyPatch struct {
	Name         *string        `json:"name,omitempty"`
	Address      *string        `json:"address,omitempty"`
	ZipCode      *string        `json:"zipCode,omitempty"`
	City         *string        `json:"city,omitempty"`
	Country      *string        `json:"country,omitempty"`
	Email        *string        `json:"email,omitempty"`
	Phone        *string        `json:"phone,omitempty"`
	CustomInputs *[]CustomInput `json:"customInputs,omitempty"`
}

// Apply merges the patch into p and returns the result.
func (pp PartyPatch) Apply(p Party) Party {
	p = p.clone()
	setString(&p.Name, pp.Name)
	setString(&p.Address, pp.Address)
	setString(&p.ZipCode, pp.ZipCode)
	setString(&p.City, pp.City)
	setString(&p.Country, pp.Country)
	setString(&p.Email, pp.Email)
	setString(&p.Phone, pp.Phone)
	if pp.CustomInputs != nil {
		p.CustomInputs = append([]CustomInput{}, (*pp.CustomInputs)...)
	}
	return p
}

// DetailsPatch is a partial update of InvoiceDetails. Nil fields are left
// unchanged; nested records are replaced whole, like a shallow object spread.
type DetailsPatch struct {
	InvoiceLogo         *string             `json:"invoiceLogo,omitempty"`
	InvoiceNumber       *string             `json:"invoiceNumber,omitempty"`
	InvoiceDate         *string             `json:"invoiceDate,omitempty"`
	DueDate             *string             `json:"dueDate,omitempty"`
	Currency            *string             `json:"currency,omitempty"`
	Items               *[]LineItem         `json:"items,omitempty"`
	PaymentInformation  *PaymentInformation `json:"paymentInformation,omitempty"`
	DiscountDetails     *Adjustment         `json:"discountDetails,omitempty"`
	TaxDetails          *Adjustment         `json:"taxDetails,omitempty"`
	ShippingDetails     *ShippingDetails    `json:"shippingDetails,omitempty"`
	DiscountEnabled     *bool               `json:"discountEnabled,omitempty"`
	TaxEnabled          *bool               `json:"taxEnabled,omitempty"`
	ShippingEnabled     *bool               `json:"shippingEnabled,omitempty"`
	IncludeTotalInWords *bool               `json:"includeTotalInWords,omitempty"`
	AdditionalNotes     *string             `json:"additionalNotes,omitempty"`
	PaymentTerms        *string             `json:"paymentTerms,omitempty"`
	Signature           *Signature          `json:"signature,omitempty"`
	ClearSignature      bool                `json:"clearSignature,omitempty"`
}

// Apply merges the patch into d and returns the result. Derived fields are
// not patchable; they are recomputed on export.
func (dp DetailsPatch) Apply(d InvoiceDetails) InvoiceDetails {
	d = d.clone()
	setString(&d.InvoiceLogo, dp.InvoiceLogo)
	setString(&d.InvoiceNumber, dp.InvoiceNumber)
	setString(&d.InvoiceDate, dp.InvoiceDate)
	setString(&d.DueDate, dp.DueDate)
	setString(&d.Currency, dp.Currency)
	if dp.Items != nil {
		d.Items = append([]LineItem{}, (*dp.Items)...)
	}
	if dp.PaymentInformation != nil {
		pi := *dp.PaymentInformation
		d.PaymentInformation = &pi
	}
	if dp.DiscountDetails != nil {
		dd := *dp.DiscountDetails
		d.DiscountDetails = &dd
	}
	if dp.TaxDetails != nil {
		td := *dp.TaxDetails
		d.TaxDetails = &td
	}
	if dp.ShippingDetails != nil {
		sd := *dp.ShippingDetails
		d.ShippingDetails = &sd
	}
	setBool(&d.DiscountEnabled, dp.DiscountEnabled)
	setBool(&d.TaxEnabled, dp.TaxEnabled)
	setBool(&d.ShippingEnabled, dp.ShippingEnabled)
	setBool(&d.IncludeTotalInWords, dp.IncludeTotalInWords)
	setString(&d.AdditionalNotes, dp.AdditionalNotes)
	setString(&d.PaymentTerms, dp.PaymentTerms)
	switch {
	case dp.ClearSignature:
		d.Signature = nil
	case dp.Signature != nil:
		sig := *dp.Signature
		d.Signature = &sig
	}
	return d
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
