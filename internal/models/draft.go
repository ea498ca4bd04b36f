package models

// Draft is a row of the invoice_drafts table. Payload holds the jsonb column
// as text and is empty for listing queries.
type Draft struct {
	DraftID       string  `db:"draft_id"`
	Name          string  `db:"name"`
	InvoiceNumber string  `db:"invoice_number"`
	Currency      string  `db:"currency"`
	TotalAmount   float64 `db:"total_amount"`
	Payload       string  `db:"payload"`
	AuditFields
}
