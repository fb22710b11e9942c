// Package formatter renders a journal back to canonical ledger text.
//
// The output is the inverse of the parser: parsing a formatted journal yields
// a journal that is structurally equal to the one that was formatted.
// Declarations come first (sorted accounts, commodities, prices and regex
// rules) followed by every transaction sorted by date. Equal dates keep their
// original relative order.
//
// Amounts are right-aligned on a common column so the decimal points line
// up. The column is computed from the widest posting unless WithAmountColumn
// fixes it.
package formatter

import (
	"context"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/ledger-import/ast"
	"github.com/robinvdvleuten/ledger-import/telemetry"
)

const (
	// DefaultIndentation is the number of spaces in front of a posting.
	DefaultIndentation = 4

	// MinimumSpacing is the minimum number of spaces between an account and
	// its amount. The parser needs at least two to recognize a commodity
	// amount.
	MinimumSpacing = 2
)

// Formatter renders journals as ledger text.
type Formatter struct {
	// AmountColumn is the column the quantity of every posting ends at. If 0,
	// it is calculated from the journal's contents.
	AmountColumn int

	// Indentation is the number of spaces in front of each posting.
	Indentation int

	// CashUnit is the commodity written as "$QUANTITY".
	CashUnit string
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithAmountColumn sets a specific column for amount alignment.
func WithAmountColumn(col int) Option {
	return func(f *Formatter) {
		f.AmountColumn = col
	}
}

// WithIndentation sets the number of spaces in front of postings.
func WithIndentation(n int) Option {
	return func(f *Formatter) {
		if n > 0 {
			f.Indentation = n
		}
	}
}

// WithCashUnit sets the commodity rendered in front of cash quantities.
func WithCashUnit(unit string) Option {
	return func(f *Formatter) {
		if unit != "" {
			f.CashUnit = unit
		}
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		Indentation: DefaultIndentation,
		CashUnit:    ast.CashUnit,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// amount is a rendered posting amount split at the alignment point: lead
// ends at the amount column and suffix follows it.
type amount struct {
	lead   string
	suffix string
}

// Format writes journal to w.
func (f *Formatter) Format(ctx context.Context, journal *ast.Journal, w io.Writer) error {
	defer telemetry.Measure(ctx, "format journal")()

	if err := ctx.Err(); err != nil {
		return err
	}

	column := f.AmountColumn
	if column == 0 {
		column = f.calculateAmountColumn(journal)
	}

	var buf strings.Builder
	buf.Grow(len(journal.Transactions) * 120)

	declarations := f.formatDeclarations(journal, &buf)

	transactions := slices.Clone(journal.Transactions)
	slices.SortStableFunc(transactions, func(a, b *ast.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	if declarations > 0 && len(transactions) > 0 {
		buf.WriteByte('\n')
	}

	for _, txn := range transactions {
		if err := ctx.Err(); err != nil {
			return err
		}
		f.formatTransaction(txn, column, &buf)
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// FormatTransaction writes a single transaction block, aligned on its own
// postings unless AmountColumn is set.
func (f *Formatter) FormatTransaction(txn *ast.Transaction, w io.Writer) error {
	column := f.AmountColumn
	if column == 0 {
		column = f.calculateAmountColumn(&ast.Journal{Transactions: []*ast.Transaction{txn}})
	}

	var buf strings.Builder
	f.formatTransaction(txn, column, &buf)
	_, err := io.WriteString(w, buf.String())
	return err
}

// formatDeclarations writes everything that is not a transaction and returns
// the number of lines written.
func (f *Formatter) formatDeclarations(journal *ast.Journal, buf *strings.Builder) int {
	n := 0
	for _, account := range journal.AccountNames() {
		buf.WriteString("account ")
		buf.WriteString(account)
		buf.WriteByte('\n')
		n++
	}

	for _, c := range journal.Commodities {
		buf.WriteString("commodity ")
		buf.WriteString(c.Name)
		buf.WriteByte('\n')
		n++
	}

	for _, p := range journal.Prices {
		buf.WriteString("P ")
		buf.WriteString(p.Date.Format(ast.DateLayout))
		buf.WriteByte(' ')
		buf.WriteString(p.Commodity)
		buf.WriteByte(' ')
		buf.WriteString(f.CashUnit)
		buf.WriteString(ast.FormatDecimal(p.Value))
		buf.WriteByte('\n')
		n++
	}

	for _, r := range journal.Regexes {
		buf.WriteString("; /")
		buf.WriteString(r.Pattern.String())
		buf.WriteString("/ ")
		buf.WriteString(r.Account)
		buf.WriteByte('\n')
		n++
	}

	return n
}

// formatTransaction writes the header, the postings and the blank line that
// terminates the block.
func (f *Formatter) formatTransaction(t *ast.Transaction, column int, buf *strings.Builder) {
	buf.WriteString(t.Date.Format(ast.DateLayout))
	buf.WriteByte(' ')
	buf.WriteString(t.Description)
	buf.WriteByte('\n')

	for _, p := range t.Postings {
		f.formatPosting(p, column, buf)
	}

	buf.WriteByte('\n')
}

func (f *Formatter) formatPosting(p *ast.Posting, column int, buf *strings.Builder) {
	prefix := strings.Repeat(" ", f.Indentation) + p.Account
	buf.WriteString(prefix)

	if a, ok := f.formatAmount(p); ok {
		padding := column - runewidth.StringWidth(prefix) - runewidth.StringWidth(a.lead)
		if padding < MinimumSpacing {
			padding = MinimumSpacing
		}
		buf.WriteString(strings.Repeat(" ", padding))
		buf.WriteString(a.lead)
		buf.WriteString(a.suffix)
	}

	buf.WriteByte('\n')
}

// formatAmount renders the amount of a posting using the inverse of the
// posting syntax it will be parsed back with. A posting without a quantity
// has no amount.
func (f *Formatter) formatAmount(p *ast.Posting) (amount, bool) {
	if p.Quantity == nil {
		return amount{}, false
	}

	quantity := ast.FormatDecimal(*p.Quantity)
	if p.IsCash(f.CashUnit) {
		return amount{lead: f.CashUnit + quantity}, true
	}

	a := amount{lead: quantity, suffix: " " + p.Commodity}
	if p.UnitPrice != nil {
		a.suffix += " @ " + f.CashUnit + ast.FormatDecimal(*p.UnitPrice)
	}
	return a, true
}

// calculateAmountColumn returns the narrowest column at which every amount
// fits behind its account with MinimumSpacing to spare.
func (f *Formatter) calculateAmountColumn(journal *ast.Journal) int {
	column := 0
	for _, txn := range journal.Transactions {
		for _, p := range txn.Postings {
			a, ok := f.formatAmount(p)
			if !ok {
				continue
			}
			width := f.Indentation + runewidth.StringWidth(p.Account) + MinimumSpacing + runewidth.StringWidth(a.lead)
			column = max(column, width)
		}
	}
	return column
}
