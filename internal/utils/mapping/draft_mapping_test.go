package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	"github.com/SscSPs/invoice_drafter/internal/models"
	"github.com/SscSPs/invoice_drafter/internal/utils/mapping"
	"github.com/stretchr/testify/assert"
)

func TestDraftMapping_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d := domain.Draft{
		DraftID:       "d1",
		Name:          "March",
		InvoiceNumber: "7",
		Currency:      "BRL",
		TotalAmount:   22.55,
		Payload:       []byte(`{"language":"pt-BR"}`),
		AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now.Add(time.Hour)},
	}

	m := mapping.ToModelDraft(d)
	assert.Equal(t, `{"language":"pt-BR"}`, m.Payload)
	assert.Equal(t, now, m.CreatedAt)

	assert.Equal(t, d, mapping.ToDomainDraft(m))
}

func TestToDomainDraft_EmptyPayload(t *testing.T) {
	d := mapping.ToDomainDraft(models.Draft{DraftID: "d1"})

	assert.Nil(t, d.Payload)
}

func TestToDomainDraftSlice(t *testing.T) {
	ds := mapping.ToDomainDraftSlice([]models.Draft{{DraftID: "a"}, {DraftID: "b"}})

	assert.Len(t, ds, 2)
	assert.Equal(t, "b", ds[1].DraftID)
	assert.Empty(t, mapping.ToDomainDraftSlice(nil))
}
