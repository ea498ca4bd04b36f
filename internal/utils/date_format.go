package utils

import (
	"fmt"
	"time"

	"github.com/SscSPs/invoice_drafter/internal/core/domain"
)

var ptMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatDate renders an ISO date as a long date in the invoice language,
// e.g. "March 1, 2026" or "1 de março de 2026". Input that is not a date is
// returned unchanged.
func FormatDate(dateStr string, lang domain.Language) string {
	d, err := parseDate(dateStr)
	if err != nil {
		return dateStr
	}
	if lang == domain.LanguagePortuguese {
		return fmt.Sprintf("%d de %s de %d", d.Day(), ptMonths[d.Month()-1], d.Year())
	}
	return d.Format("January 2, 2006")
}

func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse(domain.DateLayout, s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}
