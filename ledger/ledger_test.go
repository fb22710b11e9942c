package ledger

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/charmbracelet/log"

	"github.com/robinvdvleuten/ledger-import/parser"
	"github.com/robinvdvleuten/ledger-import/telemetry"
)

func TestNewBuildsIndices(t *testing.T) {
	journal := journalOf(
		txn("2016/01/26", "FairPoint Communi Bill Pmt W/D", cash("Assets:NECU:Checking", "-68.47"), bare("Expenses:Utilities")),
		txn("2016/02/26", "FairPoint Communi Bill Pmt W/D", cash("Assets:NECU:Checking", "-70.12"), bare("Expenses:Phone")),
		txn("2016/02/27", "Shell Oil", cash("Liabilities:Credit Cards:U.S. Bank", "-68.47"), bare("Expenses:Auto:Gas")),
	)

	l := New(context.Background(), journal)

	assert.Equal(t,
		[]string{"Assets:NECU:Checking", "Expenses:Utilities", "Assets:NECU:Checking", "Expenses:Phone"},
		l.Descriptions("FairPoint Communi Bill Pmt W/D"))
	assert.Equal(t, 2, len(l.byQuantity["-68.47"]))
	assert.Equal(t, "Shell Oil", l.byQuantity["-68.47"][1].Description)
	assert.Equal(t, 3, len(l.identities))
	assert.Equal(t, 0, len(l.Warnings()))
}

func TestNewWarnsOnDuplicateIdentity(t *testing.T) {
	source := `2016/03/20 CAPITAL ONE ONLINE PMT
    Assets:NECU:Checking    $-123.45
    Liabilities:Capital One

2016/03/20 CAPITAL ONE MOBILE PYMT
    Liabilities:Capital One    $123.45
    Assets:NECU:Checking

`
	journal, err := parser.Parse(context.Background(), "main.ledger", []byte(source))
	assert.NoError(t, err)

	var logs bytes.Buffer
	l := New(context.Background(), journal, WithLogger(log.New(&logs)))

	warnings := l.Warnings()
	assert.Equal(t, 1, len(warnings))
	assert.Equal(t, 1, warnings[0].First.Pos.Line)
	assert.Equal(t, 5, warnings[0].Second.Pos.Line)
	assert.Equal(t, 2, len(l.Journal().Transactions), "both transactions are kept")
	assert.Contains(t, logs.String(), "possible duplicate transaction")
	assert.Contains(t, logs.String(), "main.ledger:5")
}

func TestNewWithoutLoggerIsSilent(t *testing.T) {
	journal := journalOf(
		txn("2016/03/20", "a", cash("A", "1")),
		txn("2016/03/20", "b", cash("B", "1")),
	)
	l := New(context.Background(), journal, WithLogger(nil))
	assert.Equal(t, 1, len(l.Warnings()))
}

func TestLoad(t *testing.T) {
	data, err := os.ReadFile("../testdata/sample.ledger")
	assert.NoError(t, err)

	collector := telemetry.NewTimingCollector()
	ctx := telemetry.WithCollector(context.Background(), collector)

	root := collector.Start("load")
	l, err := Load(ctx, "sample.ledger", data)
	root.End()
	assert.NoError(t, err)

	assert.Equal(t, 3, len(l.Journal().Transactions))
	account, ok := l.Suggest(txn("2016/03/26", "FairPoint Communi Bill Pmt W/D", cash("Assets:NECU:Checking", "-70.00")))
	assert.True(t, ok)
	assert.Equal(t, "Expenses:Utilities", account)

	var report strings.Builder
	collector.Report(&report)
	assert.Contains(t, report.String(), "parse sample.ledger")
	assert.Contains(t, report.String(), "index ledger (3 transactions)")
}

func TestLoadParseError(t *testing.T) {
	_, err := Load(context.Background(), "broken.ledger", []byte("2016/03/20 open\n  Assets:Cash  $1"))
	assert.True(t, errors.Is(err, parser.ErrUnterminatedTransaction))
}

func TestLoadWithCashUnit(t *testing.T) {
	source := "2016/03/20 Bakkerij\n  Assets:Bank  €-4.50\n  Expenses:Food\n\n"
	l, err := Load(context.Background(), "euro.ledger", []byte(source), WithCashUnit("€"))
	assert.NoError(t, err)

	balances := l.Balances(nil)
	assert.Equal(t, 2, len(balances))
	assert.Equal(t, "Expenses:Food", balances[1].Account)
	assert.Equal(t, "4.5 €", balances[1].Balance.String())
}
