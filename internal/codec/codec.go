// Package codec converts invoices to and from the JSON file format users
// save and load. Export always writes freshly computed totals; import treats
// the input as untrusted and coerces every field to a safe value.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/invoice_drafter/internal/apperrors"
	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	"github.com/google/uuid"
)

const (
	// DefaultFilename is the suggested name for an exported invoice.
	DefaultFilename = "invoice.json"
	// ContentType is the MIME type of the exported file.
	ContentType = "application/json"
)

// Codec encodes and decodes invoices. The zero value is not usable; use New.
type Codec struct {
	now   func() time.Time
	newID func() string
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock sets the clock used to default missing invoice and due dates.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// WithIDGenerator sets the generator used for placeholder line item IDs.
func WithIDGenerator(newID func() string) Option {
	return func(c *Codec) {
		c.newID = newID
	}
}

// New creates a Codec with the system clock and random UUIDs.
func New(opts ...Option) *Codec {
	c := &Codec{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCodec = New()

// Marshal encodes inv with default options. See Codec.Marshal.
func Marshal(inv domain.Invoice) ([]byte, error) {
	return defaultCodec.Marshal(inv)
}

// Unmarshal decodes data with default options. See Codec.Unmarshal.
func Unmarshal(data []byte) (domain.Invoice, error) {
	return defaultCodec.Unmarshal(data)
}

// Marshal recomputes the derived fields of inv and encodes it as JSON
// indented with two spaces. inv is not modified.
func (c *Codec) Marshal(inv domain.Invoice) ([]byte, error) {
	computed := domain.WithComputedTotals(inv)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(computed); err != nil {
		return nil, fmt.Errorf("failed to encode invoice: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes untrusted JSON into an Invoice. Every field is coerced or
// defaulted; unknown fields are ignored. Failures are *apperrors.ImportError:
// KindInvalidJSON for text that is not JSON or whose top-level value is not an
// object, KindMissingFields when sender, receiver or details is absent, and
// KindParseFailed for anything else.
//
// Derived fields are carried over as coerced, not recomputed.
func (c *Codec) Unmarshal(data []byte) (inv domain.Invoice, err error) {
	defer func() {
		if r := recover(); r != nil {
			inv = domain.Invoice{}
			err = apperrors.NewImportError(apperrors.KindParseFailed, fmt.Errorf("%v", r))
		}
	}()

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return domain.Invoice{}, apperrors.NewImportError(apperrors.KindInvalidJSON,
			fmt.Errorf("%w: %s", apperrors.ErrInvalidFormat, err.Error()))
	}

	var obj map[string]any
	switch v := parsed.(type) {
	case map[string]any:
		obj = v
	case []any:
		// Arrays pass the object check and then lack every required key.
		obj = map[string]any{}
	default:
		return domain.Invoice{}, apperrors.NewImportError(apperrors.KindInvalidJSON, apperrors.ErrInvalidFormat)
	}

	if !truthy(obj["sender"]) || !truthy(obj["receiver"]) || !truthy(obj["details"]) {
		return domain.Invoice{}, apperrors.NewImportError(apperrors.KindMissingFields, apperrors.ErrMissingFields)
	}

	return c.normalizeInvoice(obj), nil
}
