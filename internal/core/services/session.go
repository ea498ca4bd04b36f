package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/invoice_drafter/internal/apperrors"
	"github.com/SscSPs/invoice_drafter/internal/codec"
	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_drafter/internal/core/ports/services"
)

// Session owns one live invoice document. Every read returns a deep copy
// with derived fields computed; every write replaces or merges into the
// stored document under the session lock. A zero Session is unusable and
// reports apperrors.ErrSessionNotInitialized.
type Session struct {
	mu          sync.Mutex
	initialized bool
	invoice     domain.Invoice
	codec       *codec.Codec
	now         func() time.Time
	lastAccess  time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionClock sets the clock used for default dates and idle tracking.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// WithSessionCodec sets the codec used for JSON import and export.
func WithSessionCodec(c *codec.Codec) SessionOption {
	return func(s *Session) {
		s.codec = c
	}
}

// NewSession creates a session holding the default invoice.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.codec == nil {
		s.codec = codec.New(codec.WithClock(s.now))
	}
	s.invoice = domain.WithComputedTotals(domain.DefaultInvoice(s.now()))
	s.lastAccess = s.now()
	s.initialized = true
	return s
}

// Invoice returns a copy of the current document.
func (s *Session) Invoice() (domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return domain.Invoice{}, apperrors.ErrSessionNotInitialized
	}
	s.touch()
	return s.invoice.Clone(), nil
}

// LastAccess reports when the session was last read or written.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

func (s *Session) UpdateSender(patch domain.PartyPatch) (domain.Invoice, error) {
	return s.mutate(func(inv *domain.Invoice) error {
		inv.Sender = patch.Apply(inv.Sender)
		return nil
	})
}

func (s *Session) UpdateReceiver(patch domain.PartyPatch) (domain.Invoice, error) {
	return s.mutate(func(inv *domain.Invoice) error {
		inv.Receiver = patch.Apply(inv.Receiver)
		return nil
	})
}

// UpdateDetails merges patch into the details. A patched item list goes
// through the same checks as SetItems.
func (s *Session) UpdateDetails(patch domain.DetailsPatch) (domain.Invoice, error) {
	return s.mutate(func(inv *domain.Invoice) error {
		inv.Details = patch.Apply(inv.Details)
		inv.Details.Items = domain.EnsureItems(inv.Details.Items)
		return nil
	})
}

// SetLanguage switches the document language. Unsupported tags are rejected.
func (s *Session) SetLanguage(lang domain.Language) (domain.Invoice, error) {
	return s.mutate(func(inv *domain.Invoice) error {
		if lang != domain.LanguageEnglish && lang != domain.LanguagePortuguese {
			return fmt.Errorf("%w: unsupported language %q", apperrors.ErrValidation, lang)
		}
		inv.Language = lang
		return nil
	})
}

// SetItems replaces the item list wholesale.
func (s *Session) SetItems(items []domain.LineItem) (domain.Invoice, error) {
	return s.mutate(func(inv *domain.Invoice) error {
		inv.Details.Items = domain.EnsureItems(items)
		return nil
	})
}

func (s *Session) AddItem() (domain.Invoice, error) {
	return s.mutate(func(inv *domain.Invoice) error {
		inv.Details.Items = domain.AppendItem(inv.Details.Items)
		return nil
	})
}

// RemoveItem drops the item with the given id. Removing the last item leaves
// one fresh blank item.
func (s *Session) RemoveItem(id string) (domain.Invoice, error) {
	return s.mutate(func(inv *domain.Invoice) error {
		items, found := domain.RemoveItem(inv.Details.Items, id)
		if !found {
			return fmt.Errorf("item %s: %w", id, apperrors.ErrNotFound)
		}
		inv.Details.Items = items
		return nil
	})
}

func (s *Session) MoveItem(from, to int) (domain.Invoice, error) {
	return s.mutate(func(inv *domain.Invoice) error {
		items, err := domain.MoveItem(inv.Details.Items, from, to)
		if err != nil {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		inv.Details.Items = items
		return nil
	})
}

func (s *Session) IncrementInvoiceNumber() (domain.Invoice, error) {
	return s.mutate(func(inv *domain.Invoice) error {
		inv.Details.InvoiceNumber = domain.NextInvoiceNumber(inv.Details.InvoiceNumber)
		return nil
	})
}

func (s *Session) DecrementInvoiceNumber() (domain.Invoice, error) {
	return s.mutate(func(inv *domain.Invoice) error {
		inv.Details.InvoiceNumber = domain.PreviousInvoiceNumber(inv.Details.InvoiceNumber)
		return nil
	})
}

// Reset replaces the document with a fresh default invoice.
func (s *Session) Reset() (domain.Invoice, error) {
	return s.mutate(func(inv *domain.Invoice) error {
		*inv = domain.DefaultInvoice(s.now())
		return nil
	})
}

// InvoiceJSON exports the document in the persisted file format.
func (s *Session) InvoiceJSON() ([]byte, error) {
	_, data, err := s.Snapshot()
	return data, err
}

// Snapshot returns the document and its encoded form, both taken from one
// locked read so they always describe the same version.
func (s *Session) Snapshot() (domain.Invoice, []byte, error) {
	inv, err := s.Invoice()
	if err != nil {
		return domain.Invoice{}, nil, err
	}
	data, err := s.codec.Marshal(inv)
	if err != nil {
		return domain.Invoice{}, nil, err
	}
	return inv, data, nil
}

// LoadFromJSON replaces the document with the decoded text. Import failures
// are reported in the result and leave the document untouched; the error is
// reserved for an uninitialized session.
func (s *Session) LoadFromJSON(data []byte) (portssvc.LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return portssvc.LoadResult{Success: false}, apperrors.ErrSessionNotInitialized
	}

	inv, err := s.codec.Unmarshal(data)
	if err != nil {
		return portssvc.LoadResult{Success: false, Error: importMessage(err)}, nil
	}

	s.invoice = domain.WithComputedTotals(inv)
	s.touch()
	return portssvc.LoadResult{Success: true}, nil
}

// Validate checks the current document.
func (s *Session) Validate() (domain.ValidationResult, error) {
	inv, err := s.Invoice()
	if err != nil {
		return domain.ValidationResult{}, err
	}
	return domain.Validate(inv), nil
}

func (s *Session) mutate(fn func(inv *domain.Invoice) error) (domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return domain.Invoice{}, apperrors.ErrSessionNotInitialized
	}

	next := s.invoice.Clone()
	if err := fn(&next); err != nil {
		return domain.Invoice{}, err
	}
	s.invoice = domain.WithComputedTotals(next)
	s.touch()
	return s.invoice.Clone(), nil
}

func (s *Session) touch() {
	s.lastAccess = s.now()
}

// importMessage maps an import failure to the identifier shown to the user.
func importMessage(err error) string {
	var importErr *apperrors.ImportError
	if errors.As(err, &importErr) {
		return importErr.Message()
	}
	return err.Error()
}
