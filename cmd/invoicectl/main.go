// Command invoicectl works on invoice files offline: it computes totals,
// validates, spells amounts, rewrites files canonically and exports
// spreadsheets.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/SscSPs/invoice_drafter/internal/apperrors"
	"github.com/SscSPs/invoice_drafter/internal/codec"
	"github.com/SscSPs/invoice_drafter/internal/core/domain"
	"github.com/SscSPs/invoice_drafter/internal/export"
	"github.com/SscSPs/invoice_drafter/internal/utils"
	"github.com/alecthomas/kingpin"
)

// errInvalid marks an invoice that failed validation; it maps to exit code 1
// without an extra log line.
var errInvalid = errors.New("invoice is not valid")

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, logger))
}

func run(args []string, stdin io.Reader, stdout io.Writer, logger *slog.Logger) int {
	app := kingpin.New("invoicectl", "Work with invoice JSON files.")
	app.Writer(stdout)
	app.Terminate(nil)

	infile := app.Flag("input", "Input file (default stdin)").Short('i').OpenFile(os.O_RDONLY, 0o666)

	cmdTotals := app.Command("totals", "Print the computed totals")
	cmdValidate := app.Command("validate", "Check that the invoice is ready to export")
	cmdNormalize := app.Command("normalize", "Rewrite the file in canonical form with fresh totals")
	cmdXLSX := app.Command("xlsx", "Export the invoice as a spreadsheet")
	xlsxOutput := cmdXLSX.Flag("output", "Output file").Short('o').Required().String()
	cmdWords := app.Command("words", "Spell out an amount")
	wordsAmount := cmdWords.Arg("amount", "Amount").Required().String()
	wordsCurrency := cmdWords.Arg("currency", "Currency label").Default(domain.DefaultCurrency).String()
	wordsLang := cmdWords.Flag("lang", "Language (en or pt-BR)").Default(string(domain.LanguageEnglish)).Enum(string(domain.LanguageEnglish), string(domain.LanguagePortuguese))

	cmd, err := app.Parse(args)
	if err != nil {
		logger.Error("Invalid arguments", slog.String("error", err.Error()))
		return 2
	}
	if cmd == "" {
		return 0
	}

	input := stdin
	if *infile != nil {
		defer (*infile).Close()
		input = *infile
	}

	switch cmd {
	case cmdTotals.FullCommand():
		err = withInvoice(input, func(inv domain.Invoice) error { return printTotals(stdout, inv) })
	case cmdValidate.FullCommand():
		err = withInvoice(input, func(inv domain.Invoice) error { return printValidation(stdout, inv) })
	case cmdNormalize.FullCommand():
		err = withInvoice(input, func(inv domain.Invoice) error { return printNormalized(stdout, inv) })
	case cmdXLSX.FullCommand():
		err = withInvoice(input, func(inv domain.Invoice) error { return writeXLSX(*xlsxOutput, inv) })
	case cmdWords.FullCommand():
		err = printWords(stdout, *wordsAmount, *wordsCurrency, domain.Language(*wordsLang))
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errInvalid):
		return 1
	default:
		logger.Error("Command failed", slog.String("command", cmd), slog.String("error", err.Error()))
		return 1
	}
}

// withInvoice decodes the input the same way the server imports a file.
func withInvoice(r io.Reader, fn func(domain.Invoice) error) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	inv, err := codec.Unmarshal(data)
	if err != nil {
		var importErr *apperrors.ImportError
		if errors.As(err, &importErr) {
			return fmt.Errorf("cannot load invoice: %s", importErr.Message())
		}
		return err
	}
	return fn(domain.WithComputedTotals(inv))
}

func printTotals(w io.Writer, inv domain.Invoice) error {
	lang := inv.EffectiveLanguage()
	d := inv.Details
	if _, err := fmt.Fprintf(w, "Subtotal: %s\nTotal: %s\n",
		utils.FormatWithCurrency(d.SubTotal, d.Currency, lang),
		utils.FormatWithCurrency(d.TotalAmount, d.Currency, lang)); err != nil {
		return err
	}
	if d.TotalAmountInWords != "" {
		if _, err := fmt.Fprintf(w, "In words: %s\n", d.TotalAmountInWords); err != nil {
			return err
		}
	}
	return nil
}

func printValidation(w io.Writer, inv domain.Invoice) error {
	result := domain.Validate(inv)
	if result.Valid {
		_, err := fmt.Fprintln(w, "OK")
		return err
	}
	if _, err := fmt.Fprintln(w, domain.JoinValidationErrors(result.Errors, nil)); err != nil {
		return err
	}
	return errInvalid
}

func printNormalized(w io.Writer, inv domain.Invoice) error {
	data, err := codec.Marshal(inv)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeXLSX(path string, inv domain.Invoice) error {
	data, err := export.InvoiceXLSX(inv)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func printWords(w io.Writer, rawAmount, currency string, lang domain.Language) error {
	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", rawAmount, err)
	}
	_, err = fmt.Fprintln(w, domain.ToWords(amount, currency, lang))
	return err
}
