package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/invoice_drafter/internal/apperrors"
	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_drafter/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_drafter/internal/models"
	"github.com/SscSPs/invoice_drafter/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDraftRepository struct {
	BaseRepository
}

// newPgxDraftRepository creates a new repository for saved drafts.
func newPgxDraftRepository(pool *pgxpool.Pool) portsrepo.DraftRepositoryFacade {
	return &PgxDraftRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DraftRepositoryFacade = (*PgxDraftRepository)(nil)

// SaveDraft inserts a draft or replaces the stored copy with the same ID.
// The payload is the exported invoice JSON.
func (r *PgxDraftRepository) SaveDraft(ctx context.Context, draft domain.Draft) error {
	m := mapping.ToModelDraft(draft)
	query := `
		INSERT INTO invoice_drafts (draft_id, name, invoice_number, currency, total_amount, payload, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (draft_id) DO UPDATE SET
			name = EXCLUDED.name,
			invoice_number = EXCLUDED.invoice_number,
			currency = EXCLUDED.currency,
			total_amount = EXCLUDED.total_amount,
			payload = EXCLUDED.payload,
			last_updated_at = EXCLUDED.last_updated_at;
	`

	_, err := r.Pool.Exec(ctx, query,
		m.DraftID,
		m.Name,
		m.InvoiceNumber,
		m.Currency,
		m.TotalAmount,
		m.Payload,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft %s: %w", draft.DraftID, err)
	}
	return nil
}

// FindDraftByID retrieves a draft with its payload.
func (r *PgxDraftRepository) FindDraftByID(ctx context.Context, draftID string) (*domain.Draft, error) {
	query := `
		SELECT draft_id, name, invoice_number, currency, total_amount, payload::text, created_at, last_updated_at
		FROM invoice_drafts
		WHERE draft_id = $1;
	`
	var m models.Draft
	err := r.Pool.QueryRow(ctx, query, draftID).Scan(
		&m.DraftID,
		&m.Name,
		&m.InvoiceNumber,
		&m.Currency,
		&m.TotalAmount,
		&m.Payload,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find draft %s: %w", draftID, err)
	}
	draft := mapping.ToDomainDraft(m)
	return &draft, nil
}

// ListDrafts retrieves draft summaries, most recently updated first, resuming
// after the cursor when one is given.
func (r *PgxDraftRepository) ListDrafts(ctx context.Context, limit int, after *domain.DraftCursor) ([]domain.Draft, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if after == nil {
		query := `
			SELECT draft_id, name, invoice_number, currency, total_amount, created_at, last_updated_at
			FROM invoice_drafts
			ORDER BY last_updated_at DESC, draft_id
			LIMIT $1;
		`
		rows, err = r.Pool.Query(ctx, query, limit)
	} else {
		query := `
			SELECT draft_id, name, invoice_number, currency, total_amount, created_at, last_updated_at
			FROM invoice_drafts
			WHERE last_updated_at < $1 OR (last_updated_at = $1 AND draft_id > $2)
			ORDER BY last_updated_at DESC, draft_id
			LIMIT $3;
		`
		rows, err = r.Pool.Query(ctx, query, after.LastUpdatedAt, after.DraftID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query drafts: %w", err)
	}
	defer rows.Close()

	modelDrafts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Draft, error) {
		var m models.Draft
		err := row.Scan(
			&m.DraftID,
			&m.Name,
			&m.InvoiceNumber,
			&m.Currency,
			&m.TotalAmount,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan drafts: %w", err)
	}
	return mapping.ToDomainDraftSlice(modelDrafts), nil
}

// DeleteDraft removes a draft.
func (r *PgxDraftRepository) DeleteDraft(ctx context.Context, draftID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM invoice_drafts WHERE draft_id = $1;`, draftID)
	if err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", draftID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
