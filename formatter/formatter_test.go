package formatter

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/ledger-import/ast"
	"github.com/robinvdvleuten/ledger-import/parser"
	"github.com/robinvdvleuten/ledger-import/telemetry"
)

func TestNew(t *testing.T) {
	t.Run("DefaultOptions", func(t *testing.T) {
		f := New()
		assert.Equal(t, 0, f.AmountColumn)
		assert.Equal(t, DefaultIndentation, f.Indentation)
		assert.Equal(t, ast.CashUnit, f.CashUnit)
	})

	t.Run("WithOptions", func(t *testing.T) {
		f := New(WithAmountColumn(60), WithIndentation(2), WithCashUnit("€"))
		assert.Equal(t, 60, f.AmountColumn)
		assert.Equal(t, 2, f.Indentation)
		assert.Equal(t, "€", f.CashUnit)
	})

	t.Run("IgnoresEmptyValues", func(t *testing.T) {
		f := New(WithIndentation(0), WithCashUnit(""))
		assert.Equal(t, DefaultIndentation, f.Indentation)
		assert.Equal(t, ast.CashUnit, f.CashUnit)
	})
}

func TestFormatSample(t *testing.T) {
	data, err := os.ReadFile("../testdata/sample.ledger")
	assert.NoError(t, err)

	journal, err := parser.Parse(context.Background(), "sample.ledger", data)
	assert.NoError(t, err)

	var buf bytes.Buffer
	err = New().Format(context.Background(), journal, &buf)
	assert.NoError(t, err)
	assert.Equal(t, string(data), buf.String())
}

func TestFormatPostings(t *testing.T) {
	tests := []struct {
		name     string
		posting  *ast.Posting
		expected string
	}{
		{
			name:     "Cash",
			posting:  ast.NewPosting("Assets:NECU:Checking", ast.WithCash(decimal.RequireFromString("-68.47"))),
			expected: "  Assets:NECU:Checking  $-68.47",
		},
		{
			name:     "ExplicitZero",
			posting:  ast.NewPosting("Assets:Cash", ast.WithCash(decimal.RequireFromString("0"))),
			expected: "  Assets:Cash  $0",
		},
		{
			name: "Priced",
			posting: ast.NewPosting("Assets:Wells Fargo:401(k)",
				ast.WithCommodity(decimal.RequireFromString("-0.0210"), "VFIAX"),
				ast.WithUnitPrice(decimal.RequireFromString("188.9800"))),
			expected: "  Assets:Wells Fargo:401(k)  -0.0210 VFIAX @ $188.9800",
		},
		{
			name:     "Commodity",
			posting:  ast.NewPosting("Assets:Vanguard:IRA", ast.WithCommodity(decimal.RequireFromString("12.5"), "VTIVX")),
			expected: "  Assets:Vanguard:IRA  12.5 VTIVX",
		},
		{
			name:     "Bare",
			posting:  ast.NewPosting("Expenses:Utilities"),
			expected: "  Expenses:Utilities",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			New(WithIndentation(2)).formatPosting(tt.posting, 0, &buf)
			assert.Equal(t, tt.expected+"\n", buf.String())
		})
	}
}

func TestFormatAlignment(t *testing.T) {
	journal := ast.NewJournal()
	journal.AddTransaction(ast.NewTransaction(ast.MustDate("2016/03/20"), "Café",
		ast.WithPostings(
			ast.NewPosting("Expenses:Café", ast.WithCash(decimal.RequireFromString("4.50"))),
			ast.NewPosting("Assets:Cash", ast.WithCash(decimal.RequireFromString("-104.50"))),
		)))

	t.Run("Auto", func(t *testing.T) {
		var buf bytes.Buffer
		assert.NoError(t, New().Format(context.Background(), journal, &buf))
		assert.Equal(t, `account Assets:Cash
account Expenses:Café

2016/03/20 Café
    Expenses:Café   $4.50
    Assets:Cash  $-104.50

`, buf.String())
	})

	t.Run("FixedColumn", func(t *testing.T) {
		var buf bytes.Buffer
		assert.NoError(t, New(WithAmountColumn(30)).Format(context.Background(), journal, &buf))
		assert.Contains(t, buf.String(), "    Expenses:Café        $4.50\n")
		assert.Contains(t, buf.String(), "    Assets:Cash       $-104.50\n")
	})

	t.Run("ColumnTooNarrow", func(t *testing.T) {
		var buf bytes.Buffer
		assert.NoError(t, New(WithAmountColumn(5)).Format(context.Background(), journal, &buf))
		assert.Contains(t, buf.String(), "    Expenses:Café  $4.50\n")
	})
}

func TestFormatSortsTransactionsStably(t *testing.T) {
	journal := ast.NewJournal()
	for _, txn := range []struct{ date, description string }{
		{"2016/03/20", "second"},
		{"2016/03/01", "first"},
		{"2016/03/20", "third"},
	} {
		journal.AddTransaction(ast.NewTransaction(ast.MustDate(txn.date), txn.description,
			ast.WithPostings(ast.NewPosting("Assets:Cash"))))
	}

	var buf bytes.Buffer
	assert.NoError(t, New().Format(context.Background(), journal, &buf))
	assert.Equal(t, `account Assets:Cash

2016/03/01 first
    Assets:Cash

2016/03/20 second
    Assets:Cash

2016/03/20 third
    Assets:Cash

`, buf.String())

	// The journal itself keeps its order.
	assert.Equal(t, "second", journal.Transactions[0].Description)
}

func TestFormatEmptyJournal(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, New().Format(context.Background(), ast.NewJournal(), &buf))
	assert.Equal(t, "", buf.String())
}

func TestFormatCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := New().Format(ctx, ast.NewJournal(), &buf)
	assert.IsError(t, err, context.Canceled)
}

func TestFormatRecordsTelemetry(t *testing.T) {
	collector := telemetry.NewTimingCollector()
	ctx := telemetry.WithCollector(context.Background(), collector)

	var buf bytes.Buffer
	assert.NoError(t, New().Format(ctx, ast.NewJournal(), &buf))

	var report strings.Builder
	collector.Report(&report)
	assert.Contains(t, report.String(), "format journal")
}

func TestFormatRoundTrip(t *testing.T) {
	sources := map[string]string{
		"Sample": "",
		"SignBeforeUnit": `account Assets:Cash W/D
account Assets:Checking
; /^ATM/ Assets:Cash W/D

2016/03/20 ATM withdrawal
    Assets:Checking  -$68.47
    Assets:Cash W/D

`,
		"CustomCashUnit": `account Assets:Bank
commodity VTIVX
P 2016/04/14 VTIVX €28.5000
; /a/b/ Expenses:Slashes

2016/03/20 Bakkerij
    Assets:Bank  €-4.50
    Expenses:Food

2016/03/21 Fonds
    Assets:Vanguard:IRA  1.000 VTIVX @ €28.5000
    Assets:Bank  €-28.50
    Assets:Bank

`,
	}

	for name, source := range sources {
		t.Run(name, func(t *testing.T) {
			if source == "" {
				data, err := os.ReadFile("../testdata/sample.ledger")
				assert.NoError(t, err)
				source = string(data)
			}

			ctx := context.Background()
			original, err := parser.ParseString(ctx, source, parser.WithCashUnit(cashUnitOf(source)))
			assert.NoError(t, err)

			var buf bytes.Buffer
			f := New(WithCashUnit(cashUnitOf(source)))
			assert.NoError(t, f.Format(ctx, original, &buf))

			reparsed, err := parser.ParseString(ctx, buf.String(), parser.WithCashUnit(cashUnitOf(source)))
			assert.NoError(t, err, "formatted:\n%s", buf.String())
			assertJournalsEqual(t, original, reparsed)

			var again bytes.Buffer
			assert.NoError(t, f.Format(ctx, reparsed, &again))
			assert.Equal(t, buf.String(), again.String(), "formatting is idempotent")
		})
	}
}

func cashUnitOf(source string) string {
	if strings.Contains(source, "€") {
		return "€"
	}
	return ast.CashUnit
}

func assertJournalsEqual(t *testing.T, expected, actual *ast.Journal) {
	t.Helper()

	assert.Equal(t, expected.AccountNames(), actual.AccountNames())

	assert.Equal(t, len(expected.Commodities), len(actual.Commodities))
	for i := range expected.Commodities {
		assert.Equal(t, expected.Commodities[i].Name, actual.Commodities[i].Name)
	}

	assert.Equal(t, len(expected.Prices), len(actual.Prices))
	for i := range expected.Prices {
		assert.True(t, expected.Prices[i].Date.Equal(actual.Prices[i].Date))
		assert.Equal(t, expected.Prices[i].Commodity, actual.Prices[i].Commodity)
		assert.Equal(t, expected.Prices[i].Value.String(), actual.Prices[i].Value.String())
	}

	assert.Equal(t, len(expected.Regexes), len(actual.Regexes))
	for i := range expected.Regexes {
		assert.Equal(t, expected.Regexes[i].Account, actual.Regexes[i].Account)
		assert.Equal(t, expected.Regexes[i].Pattern.String(), actual.Regexes[i].Pattern.String())
	}

	assert.Equal(t, len(expected.Transactions), len(actual.Transactions))
	for i := range expected.Transactions {
		assert.True(t, expected.Transactions[i].Equal(actual.Transactions[i]),
			"transaction %d differs: %s", i, expected.Transactions[i].Description)
	}
}
