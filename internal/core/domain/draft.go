package domain

import "time"

// Draft is a saved copy of a session's invoice, stored in the exported file
// format so it loads through the same import path as a user file.
type Draft struct {
	DraftID       string  `json:"draftID"`
	Name          string  `json:"name"`
	InvoiceNumber string  `json:"invoiceNumber"`
	Currency      string  `json:"currency"`
	TotalAmount   float64 `json:"totalAmount"`
	Payload       []byte  `json:"-"`
	AuditFields
}

// DraftCursor marks the last draft of a listed page. Listing is ordered by
// LastUpdatedAt descending, then DraftID ascending.
type DraftCursor struct {
	LastUpdatedAt time.Time
	DraftID       string
}

// Cursor returns the position right after d in a draft listing.
func (d Draft) Cursor() DraftCursor {
	return DraftCursor{LastUpdatedAt: d.LastUpdatedAt, DraftID: d.DraftID}
}
