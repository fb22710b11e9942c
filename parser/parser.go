// Package parser reads plain-text ledger journals into an ast.Journal.
//
// A journal is read line by line in a single forward pass. Every line is first
// classified (see Classify), then handled according to its kind. At most one
// transaction is open at a time: a header line opens it, posting lines extend
// it and a blank line closes it.
//
//	account Assets:NECU:Checking
//	; /^FairPoint/ Expenses:Utilities
//
//	2016/02/26 FairPoint Communi Bill Pmt W/D
//	    Assets:NECU:Checking    $-68.47
//	    Expenses:Utilities
//
// Parsing stops at the first structural error; no partial journal is returned.
package parser

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/robinvdvleuten/ledger-import/ast"
	"github.com/robinvdvleuten/ledger-import/telemetry"
)

const maxLineLength = 1024 * 1024

// Parser holds the state of a single parse run. A Parser must not be reused
// for more than one input.
type Parser struct {
	filename string
	cashUnit string

	journal *ast.Journal
	open    *ast.Transaction
	line    int
}

// Option configures a Parser.
type Option func(*Parser)

// WithCashUnit sets the commodity assumed for "$QUANTITY" postings and
// stripped from unit prices. Defaults to ast.CashUnit.
func WithCashUnit(unit string) Option {
	return func(p *Parser) {
		if unit != "" {
			p.cashUnit = unit
		}
	}
}

// New creates a parser for input read from filename. The filename is only
// used for positions in errors.
func New(filename string, opts ...Option) *Parser {
	p := &Parser{
		filename: filename,
		cashUnit: ast.CashUnit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses a complete journal from src.
func Parse(ctx context.Context, filename string, src []byte, opts ...Option) (*ast.Journal, error) {
	return New(filename, opts...).Parse(ctx, bytes.NewReader(src))
}

// ParseString parses a journal held in a string.
func ParseString(ctx context.Context, src string, opts ...Option) (*ast.Journal, error) {
	return New("", opts...).Parse(ctx, strings.NewReader(src))
}

// ParseReader parses a journal read from r.
func ParseReader(ctx context.Context, filename string, r io.Reader, opts ...Option) (*ast.Journal, error) {
	return New(filename, opts...).Parse(ctx, r)
}

// Parse consumes r and returns the journal it describes.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*ast.Journal, error) {
	name := p.filename
	if name == "" {
		name = "<input>"
	}
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("parse %s", filepath.Base(name)))
	defer timer.End()

	p.journal = ast.NewJournal()
	p.journal.Filename = p.filename
	p.open = nil
	p.line = 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, withPosition(err, p.pos())
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if p.open != nil {
		return nil, &ParseError{
			Pos:  p.open.Pos,
			Line: p.header(p.open),
			Err:  fmt.Errorf("%w: missing blank line before end of input", ErrUnterminatedTransaction),
		}
	}

	return p.journal, nil
}

func (p *Parser) pos() ast.Position {
	return ast.Position{Filename: p.filename, Line: p.line}
}

func (p *Parser) parseLine(raw string) error {
	line, err := Classify(raw)
	if err != nil {
		return err
	}

	switch line.Kind {
	case AccountLine:
		return p.parseAccount(line.Text)
	case CommodityLine:
		return p.parseCommodity(line.Text)
	case PriceLine:
		return p.parsePrice(line.Text)
	case RegexRuleLine:
		return p.parseRegexRule(line.Text)
	case CommentLine:
		return nil
	case HeaderLine:
		return p.parseHeader(line.Text)
	case PostingLine:
		return p.parsePosting(line.Text)
	case BlankLine:
		p.closeTransaction()
		return nil
	}

	return newParseError(line.Text, ErrMalformedLine)
}

func (p *Parser) parseAccount(text string) error {
	name := strings.TrimSpace(strings.TrimPrefix(text, "account"))
	if name == "" {
		return newParseError(text, fmt.Errorf("%w: missing account name", ErrMalformedLine))
	}
	p.journal.AddAccount(name)
	return nil
}

func (p *Parser) parseCommodity(text string) error {
	name := strings.TrimSpace(strings.TrimPrefix(text, "commodity"))
	if name == "" || strings.ContainsAny(name, " \t") {
		return newParseError(text, fmt.Errorf("%w: expected \"commodity <name>\"", ErrUnknownCommodity))
	}
	p.journal.AddCommodity(&ast.Commodity{Pos: p.pos(), Name: name})
	return nil
}

// parsePrice reads "P <date> <commodity> $<value>".
func (p *Parser) parsePrice(text string) error {
	fields := strings.Fields(strings.TrimPrefix(text, "P "))
	if len(fields) < 3 {
		return newParseError(text, fmt.Errorf("%w: expected \"P <date> <commodity> %s<value>\"", ErrUnknownCommodity, p.cashUnit))
	}

	date, err := ast.NewDate(fields[0])
	if err != nil {
		return newParseError(text, fmt.Errorf("%w: invalid date %q", ErrUnknownCommodity, fields[0]))
	}

	value, err := parseAmount(strings.Join(fields[2:], ""), p.cashUnit)
	if err != nil {
		return newParseError(text, fmt.Errorf("%w: %v", ErrUnknownCommodity, err))
	}

	p.journal.AddPrice(&ast.Price{
		Pos:       p.pos(),
		Date:      date,
		Commodity: fields[1],
		Value:     value,
	})
	return nil
}

// parseRegexRule reads "; /<pattern>/ <account>". The pattern ends at the
// first unescaped slash followed by whitespace, so both the pattern and the
// account may contain slashes.
func (p *Parser) parseRegexRule(text string) error {
	start := strings.Index(text, "/")
	end := patternEnd(text, start)
	if start < 0 || end <= start+1 {
		return newParseError(text, fmt.Errorf("%w: missing pattern", ErrUnknownRegexSyntax))
	}

	account := strings.TrimSpace(text[end+1:])
	if account == "" {
		return newParseError(text, fmt.Errorf("%w: missing account", ErrUnknownRegexSyntax))
	}

	rule, err := ast.NewAccountRegEx(account, text[start+1:end])
	if err != nil {
		return newParseError(text, fmt.Errorf("%w: %v", ErrUnknownRegexSyntax, err))
	}
	rule.Pos = p.pos()

	p.journal.AddRegex(rule)
	return nil
}

// patternEnd returns the index of the slash closing a pattern opened at start,
// or -1.
func patternEnd(text string, start int) int {
	if start < 0 {
		return -1
	}
	for i := start + 1; i < len(text); i++ {
		if text[i] != '/' || text[i-1] == '\\' {
			continue
		}
		if i+1 == len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
			return i
		}
	}
	return -1
}

func (p *Parser) parseHeader(text string) error {
	if p.open != nil {
		return newParseError(text, fmt.Errorf("%w: header at %s is not followed by a blank line", ErrUnterminatedTransaction, p.open.Pos))
	}

	dateStr, description, _ := strings.Cut(text, " ")
	date, err := ast.NewDate(dateStr)
	if err != nil {
		return newParseError(text, fmt.Errorf("%w: invalid date %q", ErrMalformedLine, dateStr))
	}

	p.open = ast.NewTransaction(date, description, ast.WithPosition(p.pos()))
	return nil
}

func (p *Parser) parsePosting(text string) error {
	if p.open == nil {
		return newParseError(text, fmt.Errorf("%w: posting outside of a transaction", ErrMalformedLine))
	}

	posting, err := ParsePosting(text, p.cashUnit)
	if err != nil {
		return err
	}

	p.open.Postings = append(p.open.Postings, posting)
	return nil
}

func (p *Parser) closeTransaction() {
	if p.open == nil {
		return
	}
	p.journal.AddTransaction(p.open)
	p.open = nil
}

func (p *Parser) header(txn *ast.Transaction) string {
	return strings.TrimSpace(txn.Date.Format(ast.DateLayout) + " " + txn.Description)
}
