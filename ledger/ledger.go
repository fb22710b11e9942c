// Package ledger indexes a parsed journal so that newly observed bank
// transactions can be merged into it.
//
// A Ledger wraps an *ast.Journal with three indices:
//
//   - a description map from transaction description to every account that
//     has been used with that description, in chronological order
//   - a quantity map from a transaction's net total to the transactions with
//     that total, in file order
//   - an identity map from identity digest to the first transaction with it
//
// The indices drive duplicate suppression (AlreadyImported, Seen), transfer
// mirror detection (IsMirror) and counter-account suggestions (Suggest).
// Record adds a transaction to the journal and keeps the indices in step.
//
// Example usage:
//
//	journal, err := parser.Parse(ctx, filename, src)
//	if err != nil {
//	    return err
//	}
//
//	l := ledger.New(ctx, journal, ledger.WithLogger(logger))
//	for _, txn := range observed {
//	    account, ok := l.Suggest(txn)
//	    if !ok {
//	        account = ask(txn)
//	    }
//	    outcome, err := l.Record(txn, account)
//	    ...
//	}
package ledger

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/robinvdvleuten/ledger-import/ast"
	"github.com/robinvdvleuten/ledger-import/parser"
	"github.com/robinvdvleuten/ledger-import/telemetry"
)

// DefaultMirrorWindow is how long after a transfer leg its mirror image may
// still show up on the counterparty statement.
const DefaultMirrorWindow = 7 * 24 * time.Hour

// DefaultIgnoredDescriptions are descriptions too generic to say anything
// about the counter-account. They never contribute to suggestions.
var DefaultIgnoredDescriptions = []string{
	"Check",
	"Deposit",
	"Withdrawal",
	"Transfer",
	"Opening balance",
}

// Ledger is a journal plus the indices used while importing into it. A Ledger
// is owned by a single import run and is not safe for concurrent use.
type Ledger struct {
	journal *ast.Journal
	logger  *log.Logger

	cashUnit     string
	ignored      map[string]struct{}
	mirrorWindow time.Duration

	parserOpts []parser.Option

	descriptionMap map[string][]string
	byQuantity     map[string][]*ast.Transaction
	identities     map[string]*ast.Transaction
	warnings       []*DuplicateWarning
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used for duplicate warnings and record outcomes.
// By default nothing is logged.
func WithLogger(logger *log.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithIgnoredDescriptions replaces the descriptions that never contribute to
// the description map.
func WithIgnoredDescriptions(descriptions ...string) Option {
	return func(l *Ledger) {
		l.ignored = make(map[string]struct{}, len(descriptions))
		for _, d := range descriptions {
			l.ignored[d] = struct{}{}
		}
	}
}

// WithMirrorWindow sets how far after the original leg a mirror may be dated.
func WithMirrorWindow(window time.Duration) Option {
	return func(l *Ledger) {
		if window >= 0 {
			l.mirrorWindow = window
		}
	}
}

// WithCashUnit sets the commodity of "$QUANTITY" postings, both for parsing
// in Load and for pricing commodity postings in Balances.
func WithCashUnit(unit string) Option {
	return func(l *Ledger) {
		if unit != "" {
			l.cashUnit = unit
			l.parserOpts = append(l.parserOpts, parser.WithCashUnit(unit))
		}
	}
}

// WithParserOptions sets the options Load passes to the parser.
func WithParserOptions(opts ...parser.Option) Option {
	return func(l *Ledger) {
		l.parserOpts = append(l.parserOpts, opts...)
	}
}

// New indexes journal. Transactions are visited in file order; repeated
// identity digests are reported as warnings and both transactions are kept.
// The journal is mutated in place by later calls to Record.
func New(ctx context.Context, journal *ast.Journal, opts ...Option) *Ledger {
	if journal == nil {
		journal = ast.NewJournal()
	}

	l := &Ledger{
		journal:        journal,
		logger:         log.New(io.Discard),
		cashUnit:       ast.CashUnit,
		mirrorWindow:   DefaultMirrorWindow,
		descriptionMap: make(map[string][]string),
		byQuantity:     make(map[string][]*ast.Transaction),
		identities:     make(map[string]*ast.Transaction),
	}
	WithIgnoredDescriptions(DefaultIgnoredDescriptions...)(l)
	for _, opt := range opts {
		opt(l)
	}

	defer telemetry.Measure(ctx, fmt.Sprintf("index ledger (%d transactions)", len(journal.Transactions)))()

	for _, txn := range journal.Transactions {
		l.indexQuantity(txn)
		l.indexIdentity(txn)
	}

	// The description map is built only once every transaction is known.
	for _, txn := range journal.Transactions {
		l.indexDescription(txn)
	}

	return l
}

// Load parses src and indexes the resulting journal.
func Load(ctx context.Context, filename string, src []byte, opts ...Option) (*Ledger, error) {
	var settings Ledger
	for _, opt := range opts {
		opt(&settings)
	}

	journal, err := parser.Parse(ctx, filename, src, settings.parserOpts...)
	if err != nil {
		return nil, err
	}
	return New(ctx, journal, opts...), nil
}

// Journal returns the underlying journal.
func (l *Ledger) Journal() *ast.Journal {
	return l.journal
}

// AccountNames returns all known accounts in sorted order, for completion.
func (l *Ledger) AccountNames() []string {
	return l.journal.AccountNames()
}

// Warnings returns the duplicate warnings found so far.
func (l *Ledger) Warnings() []*DuplicateWarning {
	return l.warnings
}

// Descriptions returns the accounts recorded for a description, oldest first.
func (l *Ledger) Descriptions(description string) []string {
	return l.descriptionMap[description]
}

func (l *Ledger) isIgnored(description string) bool {
	_, ok := l.ignored[description]
	return ok
}

func (l *Ledger) indexQuantity(txn *ast.Transaction) {
	key := quantityKey(txn.Total())
	l.byQuantity[key] = append(l.byQuantity[key], txn)
}

func (l *Ledger) indexIdentity(txn *ast.Transaction) {
	id := Identity(txn)
	if first, ok := l.identities[id]; ok {
		warning := &DuplicateWarning{Identity: id, First: first, Second: txn}
		l.warnings = append(l.warnings, warning)
		l.logger.Warn("possible duplicate transaction",
			"date", txn.Date.Format(ast.DateLayout),
			"description", txn.Description,
			"first", first.Pos,
			"second", txn.Pos,
		)
		return
	}
	l.identities[id] = txn
}

func (l *Ledger) indexDescription(txn *ast.Transaction) {
	if l.isIgnored(txn.Description) {
		return
	}
	l.descriptionMap[txn.Description] = append(l.descriptionMap[txn.Description], txn.Accounts()...)
}
