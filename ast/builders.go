// Constructor functions for programmatically building journal entries, for
// example from CSV importers. The builders use functional options for postings
// and transactions.

package ast

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewDate parses a date string in YYYY/MM/DD format.
//
// Example:
//
//	date, err := ast.NewDate("2016/03/20")
func NewDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// MustDate is NewDate for literals known to be valid. It panics on error.
func MustDate(s string) time.Time {
	d, err := NewDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// TransactionOption is a functional option for configuring a Transaction.
type TransactionOption func(*Transaction)

// NewTransaction creates a new Transaction with the given date and description.
//
// Example:
//
//	txn := ast.NewTransaction(date, "FairPoint Communi Bill Pmt W/D",
//	    ast.WithPostings(
//	        ast.NewPosting("Assets:NECU:Checking", ast.WithCash(decimal.RequireFromString("-68.47"))),
//	    ),
//	)
func NewTransaction(date time.Time, description string, opts ...TransactionOption) *Transaction {
	txn := &Transaction{
		Date:        date,
		Description: description,
	}

	for _, opt := range opts {
		opt(txn)
	}

	return txn
}

// WithPostings sets the postings for the transaction.
func WithPostings(postings ...*Posting) TransactionOption {
	return func(t *Transaction) {
		t.Postings = postings
	}
}

// WithPosition records where the transaction was read from.
func WithPosition(pos Position) TransactionOption {
	return func(t *Transaction) {
		t.Pos = pos
	}
}

// PostingOption is a functional option for configuring a Posting.
type PostingOption func(*Posting)

// NewPosting creates a new Posting for the given account. Without options the
// posting carries no amount.
func NewPosting(account string, opts ...PostingOption) *Posting {
	posting := &Posting{
		Account:   account,
		Commodity: CashUnit,
	}

	for _, opt := range opts {
		opt(posting)
	}

	return posting
}

// WithCash sets a cash quantity.
func WithCash(quantity decimal.Decimal) PostingOption {
	return func(p *Posting) {
		p.Quantity = &quantity
		p.Commodity = CashUnit
	}
}

// WithCommodity sets a quantity of a non-cash commodity.
func WithCommodity(quantity decimal.Decimal, commodity string) PostingOption {
	return func(p *Posting) {
		p.Quantity = &quantity
		p.Commodity = commodity
	}
}

// WithUnitPrice sets the per-unit cash price of the posting's commodity.
func WithUnitPrice(price decimal.Decimal) PostingOption {
	return func(p *Posting) {
		p.UnitPrice = &price
	}
}
