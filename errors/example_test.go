package errors_test

import (
	"fmt"

	"github.com/robinvdvleuten/ledger-import/ast"
	"github.com/robinvdvleuten/ledger-import/errors"
	"github.com/robinvdvleuten/ledger-import/parser"
)

// Example showing how to use TextFormatter for CLI output
func ExampleTextFormatter() {
	err := &parser.ParseError{
		Pos:  ast.Position{Filename: "main.ledger", Line: 2},
		Line: "Expenses:Coffee",
		Err:  parser.ErrMalformedLine,
	}

	formatter := errors.NewTextFormatter(nil, errors.WithSource([]byte("2016/03/20 Coffee\nExpenses:Coffee\n")))
	fmt.Print(formatter.Format(err))
	// Output:
	// main.ledger:2: malformed line: "Expenses:Coffee"
	//
	//    2016/03/20 Coffee
	//  > Expenses:Coffee
	//
}

// Example showing how to use JSONFormatter for scripts
func ExampleJSONFormatter() {
	err := &parser.ParseError{
		Pos:  ast.Position{Filename: "main.ledger", Line: 2},
		Line: "Expenses:Coffee",
		Err:  parser.ErrMalformedLine,
	}

	fmt.Println(errors.NewJSONFormatter().Format(err))
	// Output: {"type":"*parser.ParseError","message":"main.ledger:2: malformed line: \"Expenses:Coffee\"","position":{"filename":"main.ledger","line":2},"details":{"line":"Expenses:Coffee"}}
}
