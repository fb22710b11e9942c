package ledger

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParseAccountType(t *testing.T) {
	tests := []struct {
		account  string
		expected AccountType
	}{
		{"Assets:NECU:Checking", AccountTypeAssets},
		{"Liabilities:Credit Cards:U.S. Bank", AccountTypeLiabilities},
		{"Equity:Opening Balances", AccountTypeEquity},
		{"Income:Dividends", AccountTypeIncome},
		{"Expenses:Utilities", AccountTypeExpenses},
		{"Expenses", AccountTypeExpenses},
		{"Reimbursements:Work", AccountTypeUnknown},
		{"", AccountTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.account, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseAccountType(tt.account))
		})
	}
}

func TestAccountTypeString(t *testing.T) {
	assert.Equal(t, "Liabilities", AccountTypeLiabilities.String())
	assert.Equal(t, "Unknown", AccountType(99).String())
}
