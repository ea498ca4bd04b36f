package mapping

import (
	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	"github.com/SscSPs/invoice_drafter/internal/models"
)

// ToModelDraft converts a domain Draft to a model Draft
func ToModelDraft(d domain.Draft) models.Draft {
	return models.Draft{
		DraftID:       d.DraftID,
		Name:          d.Name,
		InvoiceNumber: d.InvoiceNumber,
		Currency:      d.Currency,
		TotalAmount:   d.TotalAmount,
		Payload:       string(d.Payload),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDraft converts a model Draft to a domain Draft. An empty payload
// maps to nil.
func ToDomainDraft(m models.Draft) domain.Draft {
	d := domain.Draft{
		DraftID:       m.DraftID,
		Name:          m.Name,
		InvoiceNumber: m.InvoiceNumber,
		Currency:      m.Currency,
		TotalAmount:   m.TotalAmount,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.Payload != "" {
		d.Payload = []byte(m.Payload)
	}
	return d
}

// ToDomainDraftSlice converts a slice of model Drafts to a slice of domain Drafts
func ToDomainDraftSlice(ms []models.Draft) []domain.Draft {
	ds := make([]domain.Draft, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDraft(m)
	}
	return ds
}
