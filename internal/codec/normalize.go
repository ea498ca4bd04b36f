package codec

import (
	"fmt"
	"math"
	"strings"

	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	"github.com/spf13/cast"
)

func (c *Codec) normalizeInvoice(obj map[string]any) domain.Invoice {
	details := asObject(obj["details"])
	today := c.now().Format(domain.DateLayout)

	language := domain.LanguageEnglish
	if s, ok := obj["language"].(string); ok && s == string(domain.LanguagePortuguese) {
		language = domain.LanguagePortuguese
	}

	return domain.Invoice{
		Language: language,
		Sender:   normalizeParty(asObject(obj["sender"])),
		Receiver: normalizeParty(asObject(obj["receiver"])),
		Details: domain.InvoiceDetails{
			InvoiceLogo:         toString(details["invoiceLogo"], ""),
			InvoiceNumber:       toString(details["invoiceNumber"], ""),
			InvoiceDate:         toString(details["invoiceDate"], today),
			DueDate:             toString(details["dueDate"], today),
			Currency:            toString(details["currency"], domain.DefaultCurrency),
			Items:               c.normalizeItems(details["items"]),
			PaymentInformation:  normalizePayment(details["paymentInformation"]),
			DiscountDetails:     normalizeAdjustment(details["discountDetails"]),
			TaxDetails:          normalizeAdjustment(details["taxDetails"]),
			ShippingDetails:     normalizeShipping(details["shippingDetails"]),
			DiscountEnabled:     truthy(details["discountEnabled"]),
			TaxEnabled:          truthy(details["taxEnabled"]),
			ShippingEnabled:     truthy(details["shippingEnabled"]),
			SubTotal:            toNumber(details["subTotal"]),
			TotalAmount:         toNumber(details["totalAmount"]),
			TotalAmountInWords:  toString(details["totalAmountInWords"], ""),
			IncludeTotalInWords: details["includeTotalInWords"] != false,
			AdditionalNotes:     toString(details["additionalNotes"], ""),
			PaymentTerms:        toString(details["paymentTerms"], ""),
			Signature:           normalizeSignature(details["signature"]),
		},
	}
}

func normalizeParty(raw map[string]any) domain.Party {
	return domain.Party{
		Name:         toString(raw["name"], ""),
		Address:      toString(raw["address"], ""),
		ZipCode:      toString(raw["zipCode"], ""),
		City:         toString(raw["city"], ""),
		Country:      toString(raw["country"], ""),
		Email:        toString(raw["email"], ""),
		Phone:        toString(raw["phone"], ""),
		CustomInputs: normalizeCustomInputs(raw["customInputs"]),
	}
}

func normalizeCustomInputs(v any) []domain.CustomInput {
	list, ok := v.([]any)
	if !ok {
		return []domain.CustomInput{}
	}
	out := make([]domain.CustomInput, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, domain.CustomInput{
			Key:   toString(m["key"], ""),
			Value: toString(m["value"], ""),
		})
	}
	return out
}

// normalizeItems coerces each raw entry on its own. Entries without a usable
// ID, or repeating one seen earlier in the batch, get a placeholder ID.
// An empty result is replaced by a single blank item.
func (c *Codec) normalizeItems(v any) []domain.LineItem {
	list, _ := v.([]any)
	items := make([]domain.LineItem, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for i, entry := range list {
		item := normalizeItem(asObject(entry))
		if _, dup := seen[item.ID]; item.ID == "" || dup {
			item.ID = fmt.Sprintf("item-%d-%s", i, c.newID())
		}
		seen[item.ID] = struct{}{}
		items = append(items, item)
	}
	if len(items) == 0 {
		items = append(items, domain.NewLineItem())
	}
	return items
}

func normalizeItem(raw map[string]any) domain.LineItem {
	id, _ := raw["id"].(string)
	quantity := toNumber(raw["quantity"])
	unitPrice := toNumber(raw["unitPrice"])
	total, ok := asNumber(raw["total"])
	if !ok {
		total = domain.LineItemTotal(quantity, unitPrice)
	}
	return domain.LineItem{
		ID:          id,
		Name:        toString(raw["name"], ""),
		Description: toString(raw["description"], ""),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       total,
	}
}

func normalizePayment(v any) *domain.PaymentInformation {
	if !truthy(v) {
		return nil
	}
	raw := asObject(v)
	return &domain.PaymentInformation{
		BankName:      toString(raw["bankName"], ""),
		AccountName:   toString(raw["accountName"], ""),
		AccountNumber: toString(raw["accountNumber"], ""),
	}
}

func normalizeAdjustment(v any) *domain.Adjustment {
	if !truthy(v) {
		return &domain.Adjustment{AmountType: domain.ChargeAmount}
	}
	raw := asObject(v)
	return &domain.Adjustment{
		Amount:     toNumber(raw["amount"]),
		AmountType: chargeType(raw["amountType"]),
	}
}

func normalizeShipping(v any) *domain.ShippingDetails {
	if !truthy(v) {
		return &domain.ShippingDetails{CostType: domain.ChargeAmount}
	}
	raw := asObject(v)
	return &domain.ShippingDetails{
		Cost:     toNumber(raw["cost"]),
		CostType: chargeType(raw["costType"]),
	}
}

// chargeType accepts only the exact string "percentage"; anything else is a fixed amount.
func chargeType(v any) domain.ChargeType {
	if s, ok := v.(string); ok && s == string(domain.ChargePercentage) {
		return domain.ChargePercentage
	}
	return domain.ChargeAmount
}

func normalizeSignature(v any) *domain.Signature {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return &domain.Signature{
		Data:       toString(raw["data"], ""),
		FontFamily: toString(raw["fontFamily"], ""),
	}
}

// asObject returns v as a JSON object, or an empty one for any other value.
func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// truthy follows the loose truthiness the file format has always been read
// with: false, 0, "", null and absent are false; everything else is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}

// toString coerces scalars to their string form; null, absent, objects and
// arrays yield def.
func toString(v any, def string) string {
	switch v.(type) {
	case nil, map[string]any, []any:
		return def
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return def
	}
	return s
}

// toNumber coerces v to a finite number, falling back to 0.
func toNumber(v any) float64 {
	n, ok := asNumber(v)
	if !ok {
		return 0
	}
	return n
}

// asNumber reports whether v is a number or a numeric string and returns it.
// Booleans count as 1 and 0; blank strings count as 0.
func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case nil, map[string]any, []any:
		return 0, false
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return 0, true
		}
		v = t
	}
	n, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
