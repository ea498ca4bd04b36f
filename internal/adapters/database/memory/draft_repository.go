// Package memory provides process-local repositories used when no database
// is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SscSPs/invoice_drafter/internal/apperrors"
	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_drafter/internal/core/ports/repositories"
)

// DraftRepository keeps drafts in a map. Stored and returned drafts are
// copies, so callers cannot alias the payload.
type DraftRepository struct {
	mu     sync.RWMutex
	drafts map[string]domain.Draft
}

// NewDraftRepository creates an empty in-memory draft store.
func NewDraftRepository() *DraftRepository {
	return &DraftRepository{drafts: make(map[string]domain.Draft)}
}

// NewRepositoryProvider wires the in-memory repositories.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DraftRepo: NewDraftRepository(),
	}
}

var _ portsrepo.DraftRepositoryFacade = (*DraftRepository)(nil)

func (r *DraftRepository) SaveDraft(_ context.Context, draft domain.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.drafts[draft.DraftID]; ok {
		draft.CreatedAt = existing.CreatedAt
	}
	draft.Payload = append([]byte(nil), draft.Payload...)
	r.drafts[draft.DraftID] = draft
	return nil
}

func (r *DraftRepository) FindDraftByID(_ context.Context, draftID string) (*domain.Draft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	draft, ok := r.drafts[draftID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	draft.Payload = append([]byte(nil), draft.Payload...)
	return &draft, nil
}

func (r *DraftRepository) ListDrafts(_ context.Context, limit int, after *domain.DraftCursor) ([]domain.Draft, error) {
	r.mu.RLock()
	out := make([]domain.Draft, 0, len(r.drafts))
	for _, draft := range r.drafts {
		if after != nil && !listedAfter(draft, *after) {
			continue
		}
		draft.Payload = nil
		out = append(out, draft)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastUpdatedAt.Equal(out[j].LastUpdatedAt) {
			return out[i].LastUpdatedAt.After(out[j].LastUpdatedAt)
		}
		return out[i].DraftID < out[j].DraftID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *DraftRepository) DeleteDraft(_ context.Context, draftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drafts[draftID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.drafts, draftID)
	return nil
}

// listedAfter reports whether d sorts after the cursor position.
func listedAfter(d domain.Draft, after domain.DraftCursor) bool {
	if d.LastUpdatedAt.Equal(after.LastUpdatedAt) {
		return d.DraftID > after.DraftID
	}
	return d.LastUpdatedAt.Before(after.LastUpdatedAt)
}
