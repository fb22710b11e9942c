package ledger

import (
	"github.com/robinvdvleuten/ledger-import/ast"
)

// AlreadyImported reports whether a transaction with the same net total, date
// and description is already in the ledger. This catches a statement being
// imported twice.
func (l *Ledger) AlreadyImported(txn *ast.Transaction) bool {
	for _, candidate := range l.byQuantity[quantityKey(txn.Total())] {
		if candidate.Date.Equal(txn.Date) && candidate.Description == txn.Description {
			return true
		}
	}
	return false
}

// IsMirror reports whether txn is the second leg of a transfer that is
// already recorded from the counterparty's statement. A recorded transaction
// m qualifies when all of these hold:
//
//   - m's net total is the negation of txn's
//   - m touches more than one distinct account
//   - txn is dated on m's date or later, but less than the mirror window after it
//   - m's posting accounts are txn's posting accounts in reverse order
//
// Single-account candidates never qualify, so a transaction cannot mirror
// itself before its counter posting is attached.
func (l *Ledger) IsMirror(txn *ast.Transaction) bool {
	accounts := txn.Accounts()

	for _, m := range l.byQuantity[quantityKey(txn.Total().Neg())] {
		if m.DistinctAccounts() < 2 {
			continue
		}
		if txn.Date.Before(m.Date) || !txn.Date.Before(m.Date.Add(l.mirrorWindow)) {
			continue
		}
		if reversed(m.Accounts(), accounts) {
			return true
		}
	}
	return false
}

// Seen reports whether a transaction with the same identity digest is
// already in the ledger.
func (l *Ledger) Seen(txn *ast.Transaction) bool {
	_, ok := l.identities[Identity(txn)]
	return ok
}

// reversed reports whether a is b in reverse order.
func reversed(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[len(b)-1-i] {
			return false
		}
	}
	return true
}
