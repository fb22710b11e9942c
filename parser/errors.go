package parser

import (
	"errors"
	"fmt"

	"github.com/robinvdvleuten/ledger-import/ast"
)

var (
	// ErrMalformedLine is returned for a line that matches none of the
	// recognized shapes, or a posting whose amount cannot be read.
	ErrMalformedLine = errors.New("malformed line")

	// ErrUnterminatedTransaction is returned when a transaction is still open
	// at the end of input or when a new header arrives before a blank line.
	ErrUnterminatedTransaction = errors.New("unterminated transaction")

	// ErrUnknownCommodity is returned for a price record that does not have
	// the shape "P <date> <commodity> $<value>".
	ErrUnknownCommodity = errors.New("unknown commodity")

	// ErrUnknownRegexSyntax is returned for a rule comment that is missing its
	// "/"-delimited pattern or target account, or whose pattern does not compile.
	ErrUnknownRegexSyntax = errors.New("unknown regex syntax")
)

// ParseError is a fatal error encountered while reading a journal. It always
// carries the raw offending line.
type ParseError struct {
	Pos  ast.Position
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Pos.Line > 0 {
		msg = fmt.Sprintf("%s: %s", e.Pos, msg)
	}
	return fmt.Sprintf("%s: %q", msg, e.Line)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// GetPosition returns where the error occurred.
func (e *ParseError) GetPosition() ast.Position {
	return e.Pos
}

// GetLine returns the raw offending line.
func (e *ParseError) GetLine() string {
	return e.Line
}

func newParseError(line string, err error) *ParseError {
	return &ParseError{Line: line, Err: err}
}

// withPosition fills in the position of err when it is a ParseError that
// does not know where it happened yet.
func withPosition(err error, pos ast.Position) error {
	var perr *ParseError
	if errors.As(err, &perr) && perr.Pos.Line == 0 {
		perr.Pos = pos
	}
	return err
}
