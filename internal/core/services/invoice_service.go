package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/invoice_drafter/internal/apperrors"
	"github.com/SscSPs/invoice_drafter/internal/codec"
	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_drafter/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_drafter/internal/core/ports/services"
	"github.com/SscSPs/invoice_drafter/internal/export"
	"github.com/SscSPs/invoice_drafter/internal/observability"
	"github.com/SscSPs/invoice_drafter/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	// DefaultSessionTTL is how long an untouched session is kept.
	DefaultSessionTTL = 24 * time.Hour

	defaultDraftListLimit = 50
	maxDraftListLimit     = 200
)

// invoiceService keeps independent drafting sessions in memory and saves
// copies of their invoices through the draft repository.
type invoiceService struct {
	BaseService
	mu       sync.Mutex
	sessions map[string]*Session
	drafts   portsrepo.DraftRepositoryFacade
	metrics  *observability.Metrics
	ttl      time.Duration
	now      func() time.Time
	newID    func() string
}

// InvoiceServiceOption is a function that configures an invoiceService
type InvoiceServiceOption func(*invoiceService)

// WithDraftRepository sets the repository used for saved drafts
func WithDraftRepository(repo portsrepo.DraftRepositoryFacade) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.drafts = repo
	}
}

// WithMetrics sets the collectors updated by imports, exports and validation
func WithMetrics(m *observability.Metrics) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.metrics = m
	}
}

// WithSessionTTL sets the idle time after which a session is evicted.
// Non-positive values disable eviction.
func WithSessionTTL(ttl time.Duration) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.ttl = ttl
	}
}

// WithClock sets the clock used for sessions, draft timestamps and eviction
func WithClock(now func() time.Time) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.now = now
	}
}

// WithIDGenerator sets the generator for session and draft IDs
func WithIDGenerator(newID func() string) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.newID = newID
	}
}

// NewInvoiceService creates a new invoice service with the provided options
func NewInvoiceService(opts ...InvoiceServiceOption) portssvc.InvoiceSvcFacade {
	s := &invoiceService{
		sessions: make(map[string]*Session),
		ttl:      DefaultSessionTTL,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure implementation matches interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) CreateSession(ctx context.Context) (string, domain.Invoice, error) {
	session := NewSession(
		WithSessionClock(s.now),
		WithSessionCodec(codec.New(codec.WithClock(s.now))),
	)
	inv, err := session.Invoice()
	if err != nil {
		return "", domain.Invoice{}, err
	}

	id := s.newID()
	s.mu.Lock()
	s.evictIdleLocked(ctx)
	s.sessions[id] = session
	count := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetSessions(count)
	s.LogInfo(ctx, "Session created", slog.String("session_id", id))
	return id, inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, sessionID string) (domain.Invoice, error) {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return domain.Invoice{}, err
	}
	return session.Invoice()
}

func (s *invoiceService) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	count := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
	}
	s.metrics.SetSessions(count)
	s.LogInfo(ctx, "Session deleted", slog.String("session_id", sessionID))
	return nil
}

func (s *invoiceService) UpdateSender(ctx context.Context, sessionID string, patch domain.PartyPatch) (domain.Invoice, error) {
	return s.edit(ctx, sessionID, func(session *Session) (domain.Invoice, error) {
		return session.UpdateSender(patch)
	})
}

func (s *invoiceService) UpdateReceiver(ctx context.Context, sessionID string, patch domain.PartyPatch) (domain.Invoice, error) {
	return s.edit(ctx, sessionID, func(session *Session) (domain.Invoice, error) {
		return session.UpdateReceiver(patch)
	})
}

func (s *invoiceService) UpdateDetails(ctx context.Context, sessionID string, patch domain.DetailsPatch) (domain.Invoice, error) {
	return s.edit(ctx, sessionID, func(session *Session) (domain.Invoice, error) {
		return session.UpdateDetails(patch)
	})
}

func (s *invoiceService) SetLanguage(ctx context.Context, sessionID string, lang domain.Language) (domain.Invoice, error) {
	return s.edit(ctx, sessionID, func(session *Session) (domain.Invoice, error) {
		return session.SetLanguage(lang)
	})
}

func (s *invoiceService) SetItems(ctx context.Context, sessionID string, items []domain.LineItem) (domain.Invoice, error) {
	return s.edit(ctx, sessionID, func(session *Session) (domain.Invoice, error) {
		return session.SetItems(items)
	})
}

func (s *invoiceService) AddItem(ctx context.Context, sessionID string) (domain.Invoice, error) {
	return s.edit(ctx, sessionID, (*Session).AddItem)
}

func (s *invoiceService) RemoveItem(ctx context.Context, sessionID, itemID string) (domain.Invoice, error) {
	return s.edit(ctx, sessionID, func(session *Session) (domain.Invoice, error) {
		return session.RemoveItem(itemID)
	})
}

func (s *invoiceService) MoveItem(ctx context.Context, sessionID string, from, to int) (domain.Invoice, error) {
	return s.edit(ctx, sessionID, func(session *Session) (domain.Invoice, error) {
		return session.MoveItem(from, to)
	})
}

func (s *invoiceService) IncrementInvoiceNumber(ctx context.Context, sessionID string) (domain.Invoice, error) {
	return s.edit(ctx, sessionID, (*Session).IncrementInvoiceNumber)
}

func (s *invoiceService) DecrementInvoiceNumber(ctx context.Context, sessionID string) (domain.Invoice, error) {
	return s.edit(ctx, sessionID, (*Session).DecrementInvoiceNumber)
}

func (s *invoiceService) ResetInvoice(ctx context.Context, sessionID string) (domain.Invoice, error) {
	return s.edit(ctx, sessionID, (*Session).Reset)
}

func (s *invoiceService) ExportJSON(ctx context.Context, sessionID string) ([]byte, error) {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	data, err := session.InvoiceJSON()
	if err != nil {
		s.LogError(ctx, err, "Failed to export invoice JSON", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to export invoice: %w", err)
	}
	s.metrics.ObserveExport("json")
	return data, nil
}

func (s *invoiceService) ExportXLSX(ctx context.Context, sessionID string) ([]byte, error) {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	inv, err := session.Invoice()
	if err != nil {
		return nil, err
	}
	data, err := export.InvoiceXLSX(inv)
	if err != nil {
		s.LogError(ctx, err, "Failed to export invoice workbook", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to export workbook: %w", err)
	}
	s.metrics.ObserveExport("xlsx")
	return data, nil
}

func (s *invoiceService) ImportJSON(ctx context.Context, sessionID string, data []byte) (portssvc.LoadResult, error) {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return portssvc.LoadResult{}, err
	}
	result, err := session.LoadFromJSON(data)
	if err != nil {
		return portssvc.LoadResult{}, err
	}
	s.observeLoad(ctx, sessionID, result)
	return result, nil
}

func (s *invoiceService) ValidateInvoice(ctx context.Context, sessionID string) (domain.ValidationResult, error) {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	result, err := session.Validate()
	if err != nil {
		return domain.ValidationResult{}, err
	}
	s.metrics.ObserveValidation(result.Valid)
	if !result.Valid {
		s.LogDebug(ctx, "Invoice failed validation",
			slog.String("session_id", sessionID),
			slog.Int("error_count", len(result.Errors)))
	}
	return result, nil
}

// SaveDraft stores the session's current invoice. name defaults to the
// invoice number.
func (s *invoiceService) SaveDraft(ctx context.Context, sessionID, name string) (*domain.Draft, error) {
	if s.drafts == nil {
		return nil, errors.New("draft storage is not configured")
	}
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	inv, payload, err := session.Snapshot()
	if errors.Is(err, apperrors.ErrSessionNotInitialized) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = inv.Details.InvoiceNumber
	}
	now := s.now().UTC()
	draft := domain.Draft{
		DraftID:       s.newID(),
		Name:          name,
		InvoiceNumber: inv.Details.InvoiceNumber,
		Currency:      inv.Details.Currency,
		TotalAmount:   inv.Details.TotalAmount,
		Payload:       payload,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.drafts.SaveDraft(ctx, draft); err != nil {
		s.LogError(ctx, err, "Failed to save draft", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	s.LogInfo(ctx, "Draft saved", slog.String("draft_id", draft.DraftID), slog.String("session_id", sessionID))
	return &draft, nil
}

func (s *invoiceService) ListDrafts(ctx context.Context, limit int, pageToken string) ([]domain.Draft, string, error) {
	if s.drafts == nil {
		return []domain.Draft{}, "", nil
	}
	if limit <= 0 {
		limit = defaultDraftListLimit
	}
	if limit > maxDraftListLimit {
		limit = maxDraftListLimit
	}

	var after *domain.DraftCursor
	if pageToken != "" {
		cursor, err := pagination.DecodeDraftToken(pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		after = &cursor
	}

	// One extra row tells whether another page exists.
	drafts, err := s.drafts.ListDrafts(ctx, limit+1, after)
	if err != nil {
		s.LogError(ctx, err, "Failed to list drafts")
		return nil, "", fmt.Errorf("failed to list drafts: %w", err)
	}

	nextToken := ""
	if len(drafts) > limit {
		drafts = drafts[:limit]
		nextToken = pagination.EncodeDraftToken(drafts[limit-1].Cursor())
	}
	return drafts, nextToken, nil
}

// LoadDraft imports a saved draft into the session, with the same
// all-or-nothing behavior as ImportJSON.
func (s *invoiceService) LoadDraft(ctx context.Context, sessionID, draftID string) (portssvc.LoadResult, error) {
	if s.drafts == nil {
		return portssvc.LoadResult{}, fmt.Errorf("draft %s: %w", draftID, apperrors.ErrNotFound)
	}
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return portssvc.LoadResult{}, err
	}
	draft, err := s.drafts.FindDraftByID(ctx, draftID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return portssvc.LoadResult{}, fmt.Errorf("draft %s: %w", draftID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to find draft", slog.String("draft_id", draftID))
		return portssvc.LoadResult{}, fmt.Errorf("failed to load draft: %w", err)
	}

	result, err := session.LoadFromJSON(draft.Payload)
	if err != nil {
		return portssvc.LoadResult{}, err
	}
	s.observeLoad(ctx, sessionID, result)
	return result, nil
}

func (s *invoiceService) DeleteDraft(ctx context.Context, draftID string) error {
	if s.drafts == nil {
		return fmt.Errorf("draft %s: %w", draftID, apperrors.ErrNotFound)
	}
	if err := s.drafts.DeleteDraft(ctx, draftID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("draft %s: %w", draftID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to delete draft", slog.String("draft_id", draftID))
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	s.LogInfo(ctx, "Draft deleted", slog.String("draft_id", draftID))
	return nil
}

func (s *invoiceService) edit(ctx context.Context, sessionID string, fn func(*Session) (domain.Invoice, error)) (domain.Invoice, error) {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return domain.Invoice{}, err
	}
	inv, err := fn(session)
	if err != nil {
		s.LogDebug(ctx, "Invoice edit rejected", slog.String("session_id", sessionID), slog.String("error", err.Error()))
		return domain.Invoice{}, err
	}
	return inv, nil
}

func (s *invoiceService) observeLoad(ctx context.Context, sessionID string, result portssvc.LoadResult) {
	if result.Success {
		s.metrics.ObserveImport("success")
		s.LogInfo(ctx, "Invoice imported", slog.String("session_id", sessionID))
		return
	}
	s.metrics.ObserveImport(importResultLabel(result.Error))
	s.LogInfo(ctx, "Invoice import rejected",
		slog.String("session_id", sessionID),
		slog.String("reason", result.Error))
}

// importResultLabel keeps the metric label set bounded: generic failures carry
// a free-form message, so they all share the parse-failed label.
func importResultLabel(msg string) string {
	switch apperrors.ImportErrorKind(msg) {
	case apperrors.KindInvalidJSON, apperrors.KindMissingFields:
		return msg
	}
	return string(apperrors.KindParseFailed)
}

func (s *invoiceService) session(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictIdleLocked(ctx)
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
	}
	return session, nil
}

// evictIdleLocked drops sessions idle for longer than the TTL. s.mu must be held.
func (s *invoiceService) evictIdleLocked(ctx context.Context) {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	evicted := 0
	for id, session := range s.sessions {
		if session.LastAccess().Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.metrics.SetSessions(len(s.sessions))
		s.LogDebug(ctx, "Evicted idle sessions", slog.Int("count", evicted))
	}
}
