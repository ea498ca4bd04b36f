package pgsql

import (
	portsrepo "github.com/SscSPs/invoice_drafter/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the PostgreSQL-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DraftRepo: newPgxDraftRepository(dbPool),
	}
}
