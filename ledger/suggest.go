package ledger

import (
	"github.com/robinvdvleuten/ledger-import/ast"
)

// Suggest proposes a counter-account for txn.
//
// Candidates are the accounts previously used with the same description,
// oldest first, followed by the accounts of every matching regex rule in
// declaration order. The list is scanned from the end, so the last declared
// matching rule wins over earlier rules and over history, and recent history
// wins over older history. Accounts already used by txn are skipped, which
// lets a split transaction collect several counter-accounts in turn.
//
// The second result is false when there is nothing to suggest.
func (l *Ledger) Suggest(txn *ast.Transaction) (string, bool) {
	candidates := l.candidates(txn.Description)
	for i := len(candidates) - 1; i >= 0; i-- {
		if !txn.HasAccount(candidates[i]) {
			return candidates[i], true
		}
	}
	return "", false
}

func (l *Ledger) candidates(description string) []string {
	history := l.descriptionMap[description]
	candidates := make([]string, 0, len(history)+len(l.journal.Regexes))
	candidates = append(candidates, history...)
	for _, rule := range l.journal.Regexes {
		if rule.Matches(description) {
			candidates = append(candidates, rule.Account)
		}
	}
	return candidates
}
