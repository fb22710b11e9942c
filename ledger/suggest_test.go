package ledger

import (
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/ledger-import/ast"
)

func TestSuggestFromHistory(t *testing.T) {
	const desc = "Description!"

	tests := []struct {
		name     string
		history  map[string][]string
		expected string
		ok       bool
	}{
		{
			name:    "NoHistory",
			history: map[string][]string{},
		},
		{
			name:    "AllCandidatesUsed",
			history: map[string][]string{desc: {"Foo", "Bar"}},
		},
		{
			name:     "LastCandidateUnused",
			history:  map[string][]string{desc: {"Foo", "Quux"}},
			expected: "Quux",
			ok:       true,
		},
		{
			name:     "LastNotAlreadyUsedWins",
			history:  map[string][]string{desc: {"Quux", "Bork"}},
			expected: "Bork",
			ok:       true,
		},
		{
			name:     "SkipsUsedFromTheEnd",
			history:  map[string][]string{desc: {"Quux", "Foo"}},
			expected: "Quux",
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(context.Background(), nil)
			l.descriptionMap = tt.history

			account, ok := l.Suggest(txn("2016/03/20", desc, cash("Foo", "1.00"), bare("Bar")))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, account)
		})
	}
}

func TestSuggestRegexRules(t *testing.T) {
	journal := ast.NewJournal()
	for _, rule := range []struct{ account, pattern string }{
		{"Expenses:Utilities", "^FairPoint"},
		{"Expenses:Phone", "Communi"},
		{"Expenses:Auto:Gas", "^Shell"},
	} {
		r, err := ast.NewAccountRegEx(rule.account, rule.pattern)
		assert.NoError(t, err)
		journal.AddRegex(r)
	}
	journal.AddTransaction(txn("2016/01/26", "FairPoint Communi Bill Pmt W/D",
		cash("Assets:NECU:Checking", "-68.47"), bare("Expenses:Internet")))

	l := New(context.Background(), journal)

	t.Run("LatestMatchingRuleFirst", func(t *testing.T) {
		account, ok := l.Suggest(txn("2016/02/26", "FairPoint Communi Bill Pmt W/D",
			cash("Assets:NECU:Checking", "-68.47")))
		assert.True(t, ok)
		assert.Equal(t, "Expenses:Phone", account)
	})

	t.Run("EarlierRuleWhenLaterUsed", func(t *testing.T) {
		account, ok := l.Suggest(txn("2016/02/26", "FairPoint Communi Bill Pmt W/D",
			cash("Assets:NECU:Checking", "-68.47"), bare("Expenses:Phone")))
		assert.True(t, ok)
		assert.Equal(t, "Expenses:Utilities", account)
	})

	t.Run("HistoryAfterRules", func(t *testing.T) {
		account, ok := l.Suggest(txn("2016/02/26", "FairPoint Communi Bill Pmt W/D",
			cash("Assets:NECU:Checking", "-68.47"), bare("Expenses:Phone"), bare("Expenses:Utilities")))
		assert.True(t, ok)
		assert.Equal(t, "Expenses:Internet", account)
	})

	t.Run("RuleWithoutHistory", func(t *testing.T) {
		account, ok := l.Suggest(txn("2016/03/01", "Shell Oil 57442654107",
			cash("Liabilities:Credit Cards:U.S. Bank", "-31.20")))
		assert.True(t, ok)
		assert.Equal(t, "Expenses:Auto:Gas", account)
	})

	t.Run("NothingMatches", func(t *testing.T) {
		_, ok := l.Suggest(txn("2016/03/01", "Unknown merchant", cash("Assets:Cash", "-5")))
		assert.False(t, ok)
	})
}

func TestSuggestIgnoredDescriptions(t *testing.T) {
	journal := journalOf(
		txn("2016/03/01", "Deposit", cash("Assets:Checking", "500"), bare("Income:Salary")),
		txn("2016/03/02", "Coffee", cash("Assets:Checking", "-3"), bare("Expenses:Coffee")),
	)

	l := New(context.Background(), journal)
	_, ok := l.Suggest(txn("2016/04/01", "Deposit", cash("Assets:Checking", "500")))
	assert.False(t, ok)
	assert.Equal(t, 0, len(l.Descriptions("Deposit")))

	l = New(context.Background(), journal, WithIgnoredDescriptions("Coffee"))
	account, ok := l.Suggest(txn("2016/04/01", "Deposit", cash("Assets:Checking", "500")))
	assert.True(t, ok)
	assert.Equal(t, "Income:Salary", account)
	_, ok = l.Suggest(txn("2016/04/02", "Coffee", cash("Assets:Checking", "-3")))
	assert.False(t, ok)
}
