package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/invoice_drafter/internal/apperrors"
	"github.com/SscSPs/invoice_drafter/internal/codec"
	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	"github.com/SscSPs/invoice_drafter/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSession() *services.Session {
	return services.NewSession(services.WithSessionClock(func() time.Time { return sessionNow }))
}

func strPtr(s string) *string { return &s }

func TestSession_ZeroValueIsUnusable(t *testing.T) {
	var s services.Session

	_, err := s.Invoice()
	assert.ErrorIs(t, err, apperrors.ErrSessionNotInitialized)

	_, err = s.AddItem()
	assert.ErrorIs(t, err, apperrors.ErrSessionNotInitialized)

	_, err = s.LoadFromJSON([]byte(`{}`))
	assert.ErrorIs(t, err, apperrors.ErrSessionNotInitialized)

	_, err = s.InvoiceJSON()
	assert.ErrorIs(t, err, apperrors.ErrSessionNotInitialized)

	_, _, err = s.Snapshot()
	assert.ErrorIs(t, err, apperrors.ErrSessionNotInitialized)

	_, err = s.Validate()
	assert.ErrorIs(t, err, apperrors.ErrSessionNotInitialized)
}

func TestSession_StartsWithDefaultInvoice(t *testing.T) {
	inv, err := newTestSession().Invoice()
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", inv.Details.InvoiceDate)
	assert.Equal(t, "1", inv.Details.InvoiceNumber)
	require.Len(t, inv.Details.Items, 1)
	assert.Equal(t, "Zero USD", inv.Details.TotalAmountInWords)
}

func TestSession_ReadsAreCopies(t *testing.T) {
	s := newTestSession()
	inv, err := s.Invoice()
	require.NoError(t, err)

	inv.Details.Items[0].Name = "mutated"
	inv.Sender.Name = "mutated"

	again, err := s.Invoice()
	require.NoError(t, err)
	assert.Empty(t, again.Details.Items[0].Name)
	assert.Empty(t, again.Sender.Name)
}

func TestSession_UpdatesMergeAndRecompute(t *testing.T) {
	s := newTestSession()

	_, err := s.UpdateSender(domain.PartyPatch{Name: strPtr("Acme")})
	require.NoError(t, err)
	_, err = s.UpdateReceiver(domain.PartyPatch{Name: strPtr("Globex")})
	require.NoError(t, err)

	items := []domain.LineItem{{ID: "a", Quantity: 2, UnitPrice: 50}, {Quantity: 1, UnitPrice: 0.5}}
	inv, err := s.SetItems(items)
	require.NoError(t, err)

	assert.Equal(t, "Acme", inv.Sender.Name)
	assert.Equal(t, "Globex", inv.Receiver.Name)
	require.Len(t, inv.Details.Items, 2)
	assert.NotEmpty(t, inv.Details.Items[1].ID, "missing ids are filled in")
	assert.Equal(t, 100.0, inv.Details.Items[0].Total)
	assert.Equal(t, 100.5, inv.Details.SubTotal)
	assert.Equal(t, 100.5, inv.Details.TotalAmount)

	inv, err = s.UpdateDetails(domain.DetailsPatch{
		DiscountEnabled: func() *bool { b := true; return &b }(),
		DiscountDetails: &domain.Adjustment{Amount: 0.5, AmountType: domain.ChargeAmount},
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, inv.Details.TotalAmount)
	assert.Equal(t, "One hundred USD", inv.Details.TotalAmountInWords)
}

func TestSession_UpdateDetailsKeepsItemsNonEmpty(t *testing.T) {
	s := newTestSession()
	empty := []domain.LineItem{}

	inv, err := s.UpdateDetails(domain.DetailsPatch{Items: &empty})

	require.NoError(t, err)
	assert.Len(t, inv.Details.Items, 1)
}

func TestSession_SetLanguage(t *testing.T) {
	s := newTestSession()

	inv, err := s.SetLanguage(domain.LanguagePortuguese)
	require.NoError(t, err)
	assert.Equal(t, domain.LanguagePortuguese, inv.Language)

	_, err = s.SetLanguage("fr")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	inv, err = s.Invoice()
	require.NoError(t, err)
	assert.Equal(t, domain.LanguagePortuguese, inv.Language, "rejected edit leaves the document unchanged")
}

func TestSession_ItemOperations(t *testing.T) {
	s := newTestSession()
	inv, err := s.AddItem()
	require.NoError(t, err)
	require.Len(t, inv.Details.Items, 2)
	first, second := inv.Details.Items[0].ID, inv.Details.Items[1].ID

	inv, err = s.MoveItem(1, 0)
	require.NoError(t, err)
	assert.Equal(t, second, inv.Details.Items[0].ID)
	assert.Equal(t, first, inv.Details.Items[1].ID)

	_, err = s.MoveItem(0, 5)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = s.RemoveItem("missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	inv, err = s.RemoveItem(first)
	require.NoError(t, err)
	require.Len(t, inv.Details.Items, 1)
	assert.Equal(t, second, inv.Details.Items[0].ID)
}

func TestSession_RemovingLastItemLeavesOneBlankItem(t *testing.T) {
	s := newTestSession()
	inv, err := s.SetItems([]domain.LineItem{{ID: "only", Name: "Consulting", Quantity: 3, UnitPrice: 10}})
	require.NoError(t, err)
	require.Equal(t, 30.0, inv.Details.TotalAmount)

	inv, err = s.RemoveItem("only")

	require.NoError(t, err)
	require.Len(t, inv.Details.Items, 1)
	assert.NotEqual(t, "only", inv.Details.Items[0].ID)
	assert.Empty(t, inv.Details.Items[0].Name)
	assert.Zero(t, inv.Details.TotalAmount)
}

func TestSession_InvoiceNumberStepping(t *testing.T) {
	s := newTestSession()

	inv, err := s.IncrementInvoiceNumber()
	require.NoError(t, err)
	assert.Equal(t, "2", inv.Details.InvoiceNumber)

	inv, err = s.DecrementInvoiceNumber()
	require.NoError(t, err)
	assert.Equal(t, "1", inv.Details.InvoiceNumber)

	inv, err = s.DecrementInvoiceNumber()
	require.NoError(t, err)
	assert.Equal(t, "1", inv.Details.InvoiceNumber)
}

func TestSession_Reset(t *testing.T) {
	s := newTestSession()
	_, err := s.UpdateSender(domain.PartyPatch{Name: strPtr("Acme")})
	require.NoError(t, err)

	inv, err := s.Reset()

	require.NoError(t, err)
	assert.Empty(t, inv.Sender.Name)
	assert.Equal(t, "2026-03-01", inv.Details.DueDate)
}

func TestSession_LoadFromJSON_FailureLeavesDocumentUntouched(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "not json", input: "not json", message: string(apperrors.KindInvalidJSON)},
		{name: "null", input: "null", message: string(apperrors.KindInvalidJSON)},
		{name: "empty object", input: "{}", message: string(apperrors.KindMissingFields)},
		{name: "array", input: "[]", message: string(apperrors.KindMissingFields)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			_, err := s.UpdateSender(domain.PartyPatch{Name: strPtr("Acme")})
			require.NoError(t, err)
			before, err := s.Invoice()
			require.NoError(t, err)

			result, err := s.LoadFromJSON([]byte(tt.input))

			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Equal(t, tt.message, result.Error)
			after, err := s.Invoice()
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestSession_LoadFromJSON_RecomputesDerivedFields(t *testing.T) {
	s := newTestSession()
	input := `{
		"sender": {"name": "Acme"},
		"receiver": {"name": "Globex"},
		"details": {
			"items": [{"id": "a", "quantity": 2, "unitPrice": 10, "total": 999}],
			"subTotal": 999,
			"totalAmount": 999,
			"totalAmountInWords": "stale"
		}
	}`

	result, err := s.LoadFromJSON([]byte(input))
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Empty(t, result.Error)

	inv, err := s.Invoice()
	require.NoError(t, err)
	assert.Equal(t, "Acme", inv.Sender.Name)
	assert.Equal(t, 20.0, inv.Details.Items[0].Total)
	assert.Equal(t, 20.0, inv.Details.SubTotal)
	assert.Equal(t, 20.0, inv.Details.TotalAmount)
	assert.Equal(t, "Twenty USD", inv.Details.TotalAmountInWords)
}

func TestSession_ExportThenImportRoundTrips(t *testing.T) {
	s := newTestSession()
	_, err := s.SetItems([]domain.LineItem{{ID: "a", Quantity: 0.1, UnitPrice: 0.2}})
	require.NoError(t, err)
	want, err := s.Invoice()
	require.NoError(t, err)

	data, err := s.InvoiceJSON()
	require.NoError(t, err)

	other := newTestSession()
	result, err := other.LoadFromJSON(data)
	require.NoError(t, err)
	require.True(t, result.Success)

	got, err := other.Invoice()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSession_SnapshotIsConsistentUnderConcurrentEdits(t *testing.T) {
	s := newTestSession()
	_, err := s.SetItems([]domain.LineItem{{ID: "a", Quantity: 1, UnitPrice: 10}})
	require.NoError(t, err)

	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= rounds; i++ {
			_, _ = s.IncrementInvoiceNumber()
			_, _ = s.SetItems([]domain.LineItem{{ID: "a", Quantity: float64(i), UnitPrice: 10}})
		}
	}()

	for i := 0; i < rounds; i++ {
		inv, data, err := s.Snapshot()
		require.NoError(t, err)

		decoded, err := codec.Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, inv.Details.InvoiceNumber, decoded.Details.InvoiceNumber)
		assert.Equal(t, inv.Details.TotalAmount, decoded.Details.TotalAmount)
	}
	wg.Wait()
}

func TestSession_Validate(t *testing.T) {
	s := newTestSession()

	res, err := s.Validate()
	require.NoError(t, err)
	assert.False(t, res.Valid)

	_, err = s.UpdateSender(domain.PartyPatch{Name: strPtr("Acme")})
	require.NoError(t, err)
	_, err = s.UpdateReceiver(domain.PartyPatch{Name: strPtr("Globex")})
	require.NoError(t, err)
	_, err = s.UpdateDetails(domain.DetailsPatch{PaymentTerms: strPtr("Net 30")})
	require.NoError(t, err)
	_, err = s.SetItems([]domain.LineItem{{ID: "a", Quantity: 1, UnitPrice: 5}})
	require.NoError(t, err)

	res, err = s.Validate()
	require.NoError(t, err)
	assert.True(t, res.Valid, "errors: %+v", res.Errors)
}

func TestSession_LastAccessFollowsClock(t *testing.T) {
	current := sessionNow
	s := services.NewSession(services.WithSessionClock(func() time.Time { return current }))
	assert.Equal(t, sessionNow, s.LastAccess())

	current = current.Add(time.Hour)
	_, err := s.Invoice()
	require.NoError(t, err)
	assert.Equal(t, current, s.LastAccess())
}
