package export

import (
	"fmt"

	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single worksheet in an exported workbook.
const SheetName = "Invoice"

// XLSXContentType is the MIME type of an exported workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var moneyFormat = "#,##0.00"

// InvoiceXLSX renders the invoice, with freshly computed totals, as a
// one-sheet workbook: header fields, both parties, the line items and the
// totals block.
func InvoiceXLSX(inv domain.Invoice) ([]byte, error) {
	inv = domain.WithComputedTotals(inv)

	xlsx := excelize.NewFile()
	defer func() { _ = xlsx.Close() }()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "invoice_drafter",
		DocSecurity: 0,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	if err := xlsx.SetSheetName(sheet, SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	sheet = SheetName

	_ = xlsx.SetColWidth(sheet, "A", "A", 24)
	_ = xlsx.SetColWidth(sheet, "B", "B", 40)
	_ = xlsx.SetColWidth(sheet, "C", "E", 15)

	bold, _ := xlsx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	money, _ := xlsx.NewStyle(&excelize.Style{CustomNumFmt: &moneyFormat})
	boldMoney, _ := xlsx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &moneyFormat})

	w := &sheetWriter{f: xlsx, sheet: sheet, row: 1}
	d := inv.Details

	w.pair("Invoice number", d.InvoiceNumber)
	w.pair("Invoice date", d.InvoiceDate)
	w.pair("Due date", d.DueDate)
	w.pair("Currency", d.Currency)
	w.row++

	w.party("From", inv.Sender, bold)
	w.party("To", inv.Receiver, bold)

	w.set('A', "Item", bold)
	w.set('B', "Description", bold)
	w.set('C', "Quantity", bold)
	w.set('D', "Unit price", bold)
	w.set('E', "Total", bold)
	w.row++
	for _, item := range d.Items {
		w.set('A', item.Name, 0)
		w.set('B', item.Description, 0)
		w.set('C', item.Quantity, 0)
		w.set('D', item.UnitPrice, money)
		w.set('E', item.Total, money)
		w.row++
	}
	w.row++

	w.total("Subtotal", d.SubTotal, money)
	for _, charge := range domain.Charges(inv) {
		amount := charge.Amount
		if charge.Kind == domain.ChargeDiscount {
			amount = -amount
		}
		w.total(chargeLabel(chargeTitles[charge.Kind], charge.Value, charge.Type), amount, money)
	}
	w.total("Total", d.TotalAmount, boldMoney)
	if d.TotalAmountInWords != "" {
		w.set('D', "In words", bold)
		w.set('E', d.TotalAmountInWords, 0)
		w.row++
	}

	if d.PaymentInformation != nil {
		w.row++
		w.pair("Bank", d.PaymentInformation.BankName)
		w.pair("Account name", d.PaymentInformation.AccountName)
		w.pair("Account number", d.PaymentInformation.AccountNumber)
	}
	w.row++
	w.pair("Payment terms", d.PaymentTerms)
	w.pair("Notes", d.AdditionalNotes)

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

var chargeTitles = map[domain.ChargeKind]string{
	domain.ChargeDiscount: "Discount",
	domain.ChargeTax:      "Tax",
	domain.ChargeShipping: "Shipping",
}

func chargeLabel(name string, value float64, kind domain.ChargeType) string {
	if kind == domain.ChargePercentage {
		return fmt.Sprintf("%s (%g%%)", name, value)
	}
	return name
}

type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
}

func (w *sheetWriter) set(col rune, value any, style int) {
	axis := cell(col, w.row)
	_ = w.f.SetCellValue(w.sheet, axis, value)
	if style != 0 {
		_ = w.f.SetCellStyle(w.sheet, axis, axis, style)
	}
}

func (w *sheetWriter) pair(label, value string) {
	w.set('A', label, 0)
	w.set('B', value, 0)
	w.row++
}

func (w *sheetWriter) party(label string, p domain.Party, bold int) {
	w.set('A', label, bold)
	w.set('B', p.Name, bold)
	w.row++
	for _, line := range []string{p.Address, joinNonEmpty(p.ZipCode, p.City, p.Country), p.Email, p.Phone} {
		if line == "" {
			continue
		}
		w.set('B', line, 0)
		w.row++
	}
	for _, ci := range p.VisibleCustomInputs() {
		w.set('A', ci.Key, 0)
		w.set('B', ci.Value, 0)
		w.row++
	}
	w.row++
}

func (w *sheetWriter) total(label string, amount float64, style int) {
	w.set('D', label, 0)
	w.set('E', amount, style)
	w.row++
}

func cell(col rune, row int) string {
	return fmt.Sprintf("%c%d", col, row)
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
