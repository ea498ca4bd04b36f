package services

import (
	"context"

	"github.com/SscSPs/invoice_drafter/internal/core/domain"
)

// LoadResult reports the outcome of loading a document from external text.
// Error carries the user-facing message identifier when Success is false.
type LoadResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// InvoiceSessionSvc manages the lifecycle of drafting sessions.
type InvoiceSessionSvc interface {
	// CreateSession starts a session holding a default invoice.
	CreateSession(ctx context.Context) (string, domain.Invoice, error)

	// GetInvoice returns the session's invoice with derived fields computed.
	GetInvoice(ctx context.Context, sessionID string) (domain.Invoice, error)

	// DeleteSession discards a session and its document.
	DeleteSession(ctx context.Context, sessionID string) error
}

// InvoiceEditorSvc defines the partial-update operations on a session's invoice.
// Every method returns the updated invoice with derived fields computed.
type InvoiceEditorSvc interface {
	UpdateSender(ctx context.Context, sessionID string, patch domain.PartyPatch) (domain.Invoice, error)
	UpdateReceiver(ctx context.Context, sessionID string, patch domain.PartyPatch) (domain.Invoice, error)
	UpdateDetails(ctx context.Context, sessionID string, patch domain.DetailsPatch) (domain.Invoice, error)
	SetLanguage(ctx context.Context, sessionID string, lang domain.Language) (domain.Invoice, error)

	// SetItems replaces the whole item list.
	SetItems(ctx context.Context, sessionID string, items []domain.LineItem) (domain.Invoice, error)
	AddItem(ctx context.Context, sessionID string) (domain.Invoice, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (domain.Invoice, error)
	MoveItem(ctx context.Context, sessionID string, from, to int) (domain.Invoice, error)

	IncrementInvoiceNumber(ctx context.Context, sessionID string) (domain.Invoice, error)
	DecrementInvoiceNumber(ctx context.Context, sessionID string) (domain.Invoice, error)

	// ResetInvoice replaces the session's invoice with a fresh default one.
	ResetInvoice(ctx context.Context, sessionID string) (domain.Invoice, error)
}

// InvoiceExchangeSvc moves documents across the system boundary.
type InvoiceExchangeSvc interface {
	// ExportJSON returns the invoice in the persisted file format.
	ExportJSON(ctx context.Context, sessionID string) ([]byte, error)

	// ExportXLSX returns the invoice as a spreadsheet workbook.
	ExportXLSX(ctx context.Context, sessionID string) ([]byte, error)

	// ImportJSON replaces the session's invoice with the decoded document.
	// Malformed input is reported in the LoadResult and leaves the session
	// untouched; the error return is reserved for a missing session.
	ImportJSON(ctx context.Context, sessionID string, data []byte) (LoadResult, error)

	// ValidateInvoice checks whether the invoice is ready to export or print.
	ValidateInvoice(ctx context.Context, sessionID string) (domain.ValidationResult, error)
}

// DraftSvc stores and restores saved copies of session invoices.
type DraftSvc interface {
	SaveDraft(ctx context.Context, sessionID, name string) (*domain.Draft, error)
	// ListDrafts returns a page of drafts and the token for the next page,
	// empty when there are no more.
	ListDrafts(ctx context.Context, limit int, pageToken string) ([]domain.Draft, string, error)
	LoadDraft(ctx context.Context, sessionID, draftID string) (LoadResult, error)
	DeleteDraft(ctx context.Context, draftID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceSessionSvc
	InvoiceEditorSvc
	InvoiceExchangeSvc
	DraftSvc
}
