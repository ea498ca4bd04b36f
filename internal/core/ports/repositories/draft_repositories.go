package repositories

import (
	"context"

	"github.com/SscSPs/invoice_drafter/internal/core/domain"
)

// DraftReader defines read operations for saved drafts
type DraftReader interface {
	// FindDraftByID retrieves a draft, payload included. Returns apperrors.ErrNotFound if absent.
	FindDraftByID(ctx context.Context, draftID string) (*domain.Draft, error)

	// ListDrafts retrieves up to limit draft summaries, most recently updated
	// first, starting after the given cursor when it is non-nil. Payloads are not loaded.
	ListDrafts(ctx context.Context, limit int, after *domain.DraftCursor) ([]domain.Draft, error)
}

// DraftWriter defines write operations for saved drafts
type DraftWriter interface {
	// SaveDraft inserts a draft or replaces the one with the same ID.
	SaveDraft(ctx context.Context, draft domain.Draft) error

	// DeleteDraft removes a draft. Returns apperrors.ErrNotFound if absent.
	DeleteDraft(ctx context.Context, draftID string) error
}

// DraftRepositoryFacade combines all draft-related repository interfaces
type DraftRepositoryFacade interface {
	DraftReader
	DraftWriter
}
