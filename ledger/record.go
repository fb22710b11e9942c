package ledger

import (
	"errors"

	"github.com/robinvdvleuten/ledger-import/ast"
)

// ErrEmptyAccount is returned by Record when no counter-account is given.
var ErrEmptyAccount = errors.New("empty account")

// Outcome describes what Record did with a transaction.
type Outcome int

const (
	// OutcomeRecorded means the transaction was added to the journal.
	OutcomeRecorded Outcome = iota
	// OutcomeDuplicate means the transaction was already imported and was dropped.
	OutcomeDuplicate
	// OutcomeMirror means the transaction is the second leg of a recorded
	// transfer and was dropped.
	OutcomeMirror
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRecorded:
		return "recorded"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeMirror:
		return "mirror"
	default:
		return "unknown"
	}
}

// Record attaches a bare posting to account, then adds txn to the journal
// unless it was already imported or mirrors a recorded transfer. The posting
// is attached in every case, so the dedup checks see the completed
// transaction. Recording updates every index, and the description map too
// unless the description is ignored. The outcome is meaningless when an
// error is returned.
func (l *Ledger) Record(txn *ast.Transaction, account string) (Outcome, error) {
	if account == "" {
		return OutcomeRecorded, ErrEmptyAccount
	}

	counter := ast.NewPosting(account)
	counter.Commodity = l.cashUnit
	txn.Postings = append(txn.Postings, counter)

	switch {
	case l.AlreadyImported(txn):
		l.logger.Debug("skipping already imported transaction",
			"date", txn.Date.Format(ast.DateLayout), "description", txn.Description)
		return OutcomeDuplicate, nil
	case l.IsMirror(txn):
		l.logger.Debug("skipping mirrored transfer",
			"date", txn.Date.Format(ast.DateLayout), "description", txn.Description)
		return OutcomeMirror, nil
	}

	l.journal.AddTransaction(txn)
	l.indexQuantity(txn)
	l.indexIdentity(txn)
	l.indexDescription(txn)

	l.logger.Debug("recorded transaction",
		"date", txn.Date.Format(ast.DateLayout), "description", txn.Description, "account", account)
	return OutcomeRecorded, nil
}
