// Package importer reads bank CSV exports into single-posting transactions.
//
// Each bank is described by a Format: which columns hold the date, the
// description and the amount, which rows are headers, and whether the export
// lists newest rows first. Reading a file yields one *ast.Transaction per row
// with a single cash posting to the format's account; the counter-account is
// supplied later when the transaction is recorded in a ledger.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/ledger-import/ast"
	"github.com/robinvdvleuten/ledger-import/telemetry"
)

var (
	// ErrMalformedRow is returned for a data row whose date or amount cannot
	// be read.
	ErrMalformedRow = errors.New("malformed row")

	// ErrMissingAccount is returned when neither the format nor the caller
	// names the account the rows belong to.
	ErrMissingAccount = errors.New("missing account")
)

// RowError reports a CSV row that could not be imported.
type RowError struct {
	Pos ast.Position
	Row []string
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: %s: %q", e.Pos, e.Err, strings.Join(e.Row, ","))
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// GetPosition returns the file and line of the row.
func (e *RowError) GetPosition() ast.Position {
	return e.Pos
}

// GetLine returns the raw row.
func (e *RowError) GetLine() string {
	return strings.Join(e.Row, ",")
}

// Amount extracts the signed quantity of a row.
type Amount interface {
	Quantity(row []string) (decimal.Decimal, error)
}

// SignedAmount reads a signed quantity from a single column.
type SignedAmount struct {
	Column int

	// TrimZeros drops decimal places beyond the cents when they are all
	// zero, so "-31.2000" reads as "-31.20".
	TrimZeros bool
}

func (a SignedAmount) Quantity(row []string) (decimal.Decimal, error) {
	q, err := ast.ParseDecimal(column(row, a.Column))
	if err != nil {
		return decimal.Zero, err
	}
	if a.TrimZeros && q.Exponent() < -2 && q.Equal(q.Truncate(2)) {
		q = q.Truncate(2)
	}
	return q, nil
}

// DirectedAmount reads an unsigned quantity from Column and negates it when
// DirectionColumn holds Debit.
type DirectedAmount struct {
	Column          int
	DirectionColumn int
	Debit           string
}

func (a DirectedAmount) Quantity(row []string) (decimal.Decimal, error) {
	q, err := ast.ParseDecimal(column(row, a.Column))
	if err != nil {
		return decimal.Zero, err
	}
	if strings.EqualFold(column(row, a.DirectionColumn), a.Debit) {
		q = q.Neg()
	}
	return q, nil
}

// SplitAmount reads withdrawals from Debit and deposits from Credit. A
// non-empty debit wins and is negated.
type SplitAmount struct {
	Debit  int
	Credit int
}

func (a SplitAmount) Quantity(row []string) (decimal.Decimal, error) {
	if debit := column(row, a.Debit); debit != "" {
		q, err := ast.ParseDecimal(debit)
		if err != nil {
			return decimal.Zero, err
		}
		return q.Neg(), nil
	}
	return ast.ParseDecimal(column(row, a.Credit))
}

// Format maps the columns of a bank export.
type Format struct {
	Name string

	// Account is the default account every row is posted to.
	Account string

	Delimiter rune

	// HeaderFields are first-column values that mark a header row.
	HeaderFields []string

	// FieldCounts, when set, restricts data rows to these lengths.
	FieldCounts []int

	// Reverse lists rows oldest first for exports written newest first.
	Reverse bool

	DateColumn        int
	DateLayout        string
	DescriptionColumn int
	Amount            Amount
}

// Option configures a single Read.
type Option func(*reader)

type reader struct {
	account  string
	cashUnit string
}

// WithAccount overrides the format's default account.
func WithAccount(account string) Option {
	return func(r *reader) {
		if account != "" {
			r.account = account
		}
	}
}

// WithCashUnit sets the commodity of the imported postings.
func WithCashUnit(unit string) Option {
	return func(r *reader) {
		if unit != "" {
			r.cashUnit = unit
		}
	}
}

type record struct {
	line   int
	fields []string
}

// Read parses every data row of an export. Header rows, blank rows and rows
// of an unexpected length are skipped; any other row that cannot be read
// aborts the import with a *RowError.
func (f Format) Read(ctx context.Context, filename string, r io.Reader, opts ...Option) ([]*ast.Transaction, error) {
	defer telemetry.Measure(ctx, "import "+filepath.Base(filename))()

	settings := reader{account: f.Account, cashUnit: ast.CashUnit}
	for _, opt := range opts {
		opt(&settings)
	}
	if settings.account == "" {
		return nil, fmt.Errorf("%s: %w for format %q", filename, ErrMissingAccount, f.Name)
	}

	records, err := f.readRecords(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if f.Reverse {
		slices.Reverse(records)
	}

	transactions := make([]*ast.Transaction, 0, len(records))
	for _, rec := range records {
		if f.skip(rec.fields) {
			continue
		}

		pos := ast.Position{Filename: filename, Line: rec.line}
		txn, err := f.transaction(rec.fields, settings)
		if err != nil {
			return nil, &RowError{Pos: pos, Row: rec.fields, Err: fmt.Errorf("%w: %v", ErrMalformedRow, err)}
		}
		txn.Pos = pos
		transactions = append(transactions, txn)
	}

	return transactions, nil
}

func (f Format) readRecords(ctx context.Context, r io.Reader) ([]record, error) {
	cr := csv.NewReader(r)
	if f.Delimiter != 0 {
		cr.Comma = f.Delimiter
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var records []record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fields, err := cr.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}

		line, _ := cr.FieldPos(0)
		records = append(records, record{line: line, fields: fields})
	}
}

func (f Format) skip(fields []string) bool {
	if len(fields) == 0 || strings.TrimSpace(strings.Join(fields, "")) == "" {
		return true
	}
	if slices.Contains(f.HeaderFields, strings.TrimSpace(fields[0])) {
		return true
	}
	return len(f.FieldCounts) > 0 && !slices.Contains(f.FieldCounts, len(fields))
}

func (f Format) transaction(fields []string, settings reader) (*ast.Transaction, error) {
	date, err := time.Parse(f.DateLayout, column(fields, f.DateColumn))
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	quantity, err := f.Amount.Quantity(fields)
	if err != nil {
		return nil, err
	}

	posting := ast.NewPosting(settings.account, ast.WithCash(quantity))
	posting.Commodity = settings.cashUnit

	description := strings.Trim(column(fields, f.DescriptionColumn), "\" ")
	return ast.NewTransaction(date, description, ast.WithPostings(posting)), nil
}

// column returns the trimmed field at i, or "" when the row is too short.
func column(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}
