package ledger

import (
	"fmt"

	"github.com/robinvdvleuten/ledger-import/ast"
)

// DuplicateWarning reports two transactions with the same identity digest.
// It is not fatal: both transactions stay in the journal.
type DuplicateWarning struct {
	Identity string
	First    *ast.Transaction
	Second   *ast.Transaction
}

func (w *DuplicateWarning) Error() string {
	return fmt.Sprintf("%s: %s %q duplicates %q at %s",
		w.Second.Pos,
		w.Second.Date.Format(ast.DateLayout),
		w.Second.Description,
		w.First.Description,
		w.First.Pos,
	)
}

// GetPosition returns the position of the later transaction.
func (w *DuplicateWarning) GetPosition() ast.Position {
	return w.Second.Pos
}

// GetTransaction returns the later of the two transactions.
func (w *DuplicateWarning) GetTransaction() *ast.Transaction {
	return w.Second
}
