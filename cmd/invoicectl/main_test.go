package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInvoice = `{
  "language": "en",
  "sender": {"name": "Acme"},
  "receiver": {"name": "Globex"},
  "details": {
    "invoiceNumber": "7",
    "invoiceDate": "2026-03-01",
    "dueDate": "2026-03-31",
    "currency": "USD",
    "items": [{"id": "a", "name": "Work", "quantity": 2, "unitPrice": 10.25}],
    "taxEnabled": true,
    "taxDetails": {"amount": 10, "amountType": "percentage"},
    "paymentTerms": "Net 30"
  }
}`

type runResult struct {
	code   int
	stdout string
	logs   string
}

func runCLI(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	var out, logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	code := run(args, strings.NewReader(stdin), &out, logger)
	return runResult{code: code, stdout: out.String(), logs: logs.String()}
}

func TestRun_Totals(t *testing.T) {
	res := runCLI(t, sampleInvoice, "totals")

	require.Equal(t, 0, res.code, res.logs)
	assert.Equal(t, "Subtotal: USD 20.50\nTotal: USD 22.55\nIn words: Twenty-two USD and fifty-five cents\n", res.stdout)
}

func TestRun_TotalsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleInvoice), 0o600))

	res := runCLI(t, "", "--input", path, "totals")

	require.Equal(t, 0, res.code, res.logs)
	assert.Contains(t, res.stdout, "Total: USD 22.55")
}

func TestRun_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		res := runCLI(t, sampleInvoice, "validate")

		assert.Equal(t, 0, res.code, res.logs)
		assert.Equal(t, "OK\n", res.stdout)
	})

	t.Run("invalid", func(t *testing.T) {
		input := strings.Replace(sampleInvoice, `"name": "Acme"`, `"name": ""`, 1)

		res := runCLI(t, input, "validate")

		assert.Equal(t, 1, res.code)
		assert.True(t, strings.HasPrefix(res.stdout, "sender.name: "), res.stdout)
		assert.Empty(t, res.logs, "an invalid invoice is a result, not a failure")
	})
}

func TestRun_LoadFailure(t *testing.T) {
	res := runCLI(t, "not json", "totals")

	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.logs, "cannot load invoice")
}

func TestRun_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no command", args: nil},
		{name: "unknown command", args: []string{"print"}},
		{name: "words without amount", args: []string{"words"}},
		{name: "unsupported language", args: []string{"words", "--lang", "fr", "12"}},
		{name: "xlsx without output", args: []string{"xlsx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, sampleInvoice, tt.args...)

			assert.Equal(t, 2, res.code)
			assert.Contains(t, res.logs, "Invalid arguments")
		})
	}
}

func TestRun_Words(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "default currency", args: []string{"words", "1089"}, want: "One thousand, eighty-nine USD\n"},
		{name: "explicit currency", args: []string{"words", "500.5", "EUR"}, want: "Five hundred EUR and fifty cents\n"},
		{name: "portuguese", args: []string{"words", "--lang", "pt-BR", "1.5", "BRL"}, want: "Um BRL e cinquenta centavos\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, "", tt.args...)

			require.Equal(t, 0, res.code, res.logs)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestRun_WordsInvalidAmount(t *testing.T) {
	res := runCLI(t, "", "words", "twelve")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.logs, "invalid amount")
}

func TestRun_Normalize(t *testing.T) {
	input := strings.Replace(sampleInvoice, `"quantity": 2`, `"quantity": "2"`, 1)

	res := runCLI(t, input, "normalize")

	require.Equal(t, 0, res.code, res.logs)
	assert.True(t, strings.HasPrefix(res.stdout, "{\n  \"language\": \"en\","), res.stdout)
	assert.Contains(t, res.stdout, `"quantity": 2,`)
	assert.Contains(t, res.stdout, `"subTotal": 20.5,`)
	assert.Contains(t, res.stdout, `"totalAmount": 22.55,`)

	again := runCLI(t, res.stdout, "normalize")
	require.Equal(t, 0, again.code, again.logs)
	assert.Equal(t, res.stdout, again.stdout, "normalizing twice is stable")
}

func TestRun_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.xlsx")

	res := runCLI(t, sampleInvoice, "xlsx", "--output", path)

	require.Equal(t, 0, res.code, res.logs)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "workbook is a zip archive")
}
