package dto

import (
	"time"

	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	"github.com/SscSPs/invoice_drafter/internal/utils"
)

// SessionResponse is returned when a drafting session is created.
type SessionResponse struct {
	SessionID string         `json:"sessionID"`
	Invoice   domain.Invoice `json:"invoice"`
}

// SetItemsRequest replaces the whole line item list.
type SetItemsRequest struct {
	Items []domain.LineItem `json:"items" binding:"required"`
}

// MoveItemRequest moves the item at index From to index To.
type MoveItemRequest struct {
	From *int `json:"from" binding:"required,gte=0"`
	To   *int `json:"to" binding:"required,gte=0"`
}

// SetLanguageRequest switches the invoice language.
type SetLanguageRequest struct {
	Language domain.Language `json:"language" binding:"required,oneof=en pt-BR"`
}

// SaveDraftRequest names a saved draft. An empty name uses the invoice number.
type SaveDraftRequest struct {
	Name string `json:"name" binding:"max=200"`
}

// ListDraftsParams are the query parameters of the draft listing.
type ListDraftsParams struct {
	Limit     int    `form:"limit" binding:"omitempty,gte=1,lte=200"`
	PageToken string `form:"pageToken"`
}

// LoadResponse mirrors the result of loading a document.
type LoadResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ValidationResponse reports whether the invoice is ready to export. Message
// joins the errors one per line for display in a single dialog.
type ValidationResponse struct {
	Success bool                `json:"success"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
	Message string              `json:"message,omitempty"`
}

// ToValidationResponse converts a domain.ValidationResult.
func ToValidationResponse(result domain.ValidationResult) ValidationResponse {
	if result.Valid {
		return ValidationResponse{Success: true}
	}
	return ValidationResponse{
		Success: false,
		Errors:  result.Errors,
		Message: domain.JoinValidationErrors(result.Errors, nil),
	}
}

// DraftResponse describes a saved draft without its payload.
type DraftResponse struct {
	DraftID       string    `json:"draftID"`
	Name          string    `json:"name"`
	InvoiceNumber string    `json:"invoiceNumber"`
	Currency      string    `json:"currency"`
	TotalAmount   float64   `json:"totalAmount"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToDraftResponse converts a domain.Draft to DraftResponse DTO
func ToDraftResponse(d *domain.Draft) DraftResponse {
	return DraftResponse{
		DraftID:       d.DraftID,
		Name:          d.Name,
		InvoiceNumber: d.InvoiceNumber,
		Currency:      d.Currency,
		TotalAmount:   d.TotalAmount,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ListDraftsResponse is one page of drafts.
type ListDraftsResponse struct {
	Drafts        []DraftResponse `json:"drafts"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
}

// ToListDraftsResponse converts a page of domain drafts.
func ToListDraftsResponse(drafts []domain.Draft, next string) ListDraftsResponse {
	out := ListDraftsResponse{Drafts: make([]DraftResponse, 0, len(drafts)), NextPageToken: next}
	for i := range drafts {
		out.Drafts = append(out.Drafts, ToDraftResponse(&drafts[i]))
	}
	return out
}

// SummaryLine is one labelled amount of the totals block, preformatted.
type SummaryLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Text   string  `json:"text"`
}

// InvoiceSummaryResponse carries the display strings of an invoice in its
// own language: localized dates, grouped amounts and the total in words.
type InvoiceSummaryResponse struct {
	Language      domain.Language `json:"language"`
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceDate   string          `json:"invoiceDate"`
	DueDate       string          `json:"dueDate"`
	Currency      string          `json:"currency"`
	Lines         []SummaryLine   `json:"lines"`
	Total         SummaryLine     `json:"total"`
	TotalInWords  string          `json:"totalInWords,omitempty"`
}

// ToInvoiceSummaryResponse formats a computed invoice for display.
func ToInvoiceSummaryResponse(inv domain.Invoice) InvoiceSummaryResponse {
	lang := inv.EffectiveLanguage()
	d := inv.Details
	line := func(label string, amount float64) SummaryLine {
		return SummaryLine{Label: label, Amount: amount, Text: utils.FormatWithCurrency(amount, d.Currency, lang)}
	}

	lines := []SummaryLine{line("subTotal", d.SubTotal)}
	for _, charge := range domain.Charges(inv) {
		lines = append(lines, line(string(charge.Kind), charge.Amount))
	}

	return InvoiceSummaryResponse{
		Language:      lang,
		InvoiceNumber: d.InvoiceNumber,
		InvoiceDate:   utils.FormatDate(d.InvoiceDate, lang),
		DueDate:       utils.FormatDate(d.DueDate, lang),
		Currency:      d.Currency,
		Lines:         lines,
		Total:         line("totalAmount", d.TotalAmount),
		TotalInWords:  d.TotalAmountInWords,
	}
}
