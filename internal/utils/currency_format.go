package utils

import (
	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// LocaleTag maps an invoice language to the tag used for number and date formatting.
func LocaleTag(lang domain.Language) language.Tag {
	if lang == domain.LanguagePortuguese {
		return language.BrazilianPortuguese
	}
	return language.AmericanEnglish
}

// FormatAmount formats a monetary amount with exactly two fraction digits and
// the grouping of the invoice language.
// Example: 1234.5 in en returns "1,234.50"; in pt-BR it returns "1.234,50".
func FormatAmount(amount float64, lang domain.Language) string {
	p := message.NewPrinter(LocaleTag(lang))
	return p.Sprint(number.Decimal(domain.RoundMoney(amount),
		number.MinFractionDigits(domain.MoneyPlaces),
		number.MaxFractionDigits(domain.MoneyPlaces)))
}

// FormatWithCurrency prefixes the formatted amount with the currency label.
func FormatWithCurrency(amount float64, currency string, lang domain.Language) string {
	if currency == "" {
		return FormatAmount(amount, lang)
	}
	return currency + " " + FormatAmount(amount, lang)
}
