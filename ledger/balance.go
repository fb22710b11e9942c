package ledger

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/ledger-import/ast"
)

// Balance holds amounts in one or more commodities, sorted by commodity for
// deterministic display.
type Balance struct {
	entries []*CommodityAmount
}

// CommodityAmount is an amount of a single commodity.
type CommodityAmount struct {
	Commodity string
	Amount    decimal.Decimal
}

// NewBalance creates an empty balance.
func NewBalance() *Balance {
	return &Balance{}
}

// Get returns the amount held in commodity, or zero.
func (b *Balance) Get(commodity string) decimal.Decimal {
	for _, e := range b.entries {
		if e.Commodity == commodity {
			return e.Amount
		}
	}
	return decimal.Zero
}

// Add adds amount to the commodity's running total.
func (b *Balance) Add(commodity string, amount decimal.Decimal) {
	for _, e := range b.entries {
		if e.Commodity == commodity {
			e.Amount = e.Amount.Add(amount)
			return
		}
	}

	b.entries = append(b.entries, &CommodityAmount{Commodity: commodity, Amount: amount})
	sort.Slice(b.entries, func(i, j int) bool {
		return b.entries[i].Commodity < b.entries[j].Commodity
	})
}

// Merge adds every amount of other to b.
func (b *Balance) Merge(other *Balance) {
	if other == nil {
		return
	}
	for _, e := range other.entries {
		b.Add(e.Commodity, e.Amount)
	}
}

// IsZero reports whether every amount is zero.
func (b *Balance) IsZero() bool {
	for _, e := range b.entries {
		if !e.Amount.IsZero() {
			return false
		}
	}
	return true
}

// Commodities returns the commodities held, sorted.
func (b *Balance) Commodities() []string {
	commodities := make([]string, len(b.entries))
	for i, e := range b.entries {
		commodities[i] = e.Commodity
	}
	return commodities
}

// Entries returns the sorted commodity amounts.
func (b *Balance) Entries() []*CommodityAmount {
	return b.entries
}

// withoutZeros returns a copy of b without zero amounts.
func (b *Balance) withoutZeros() *Balance {
	out := NewBalance()
	for _, e := range b.entries {
		if !e.Amount.IsZero() {
			out.entries = append(out.entries, &CommodityAmount{Commodity: e.Commodity, Amount: e.Amount})
		}
	}
	return out
}

func (b *Balance) String() string {
	if len(b.entries) == 0 {
		return "(empty)"
	}

	parts := make([]string, 0, len(b.entries))
	for _, e := range b.entries {
		parts = append(parts, e.Amount.String()+" "+e.Commodity)
	}
	return strings.Join(parts, ", ")
}

// AccountBalance is the balance of a single account.
type AccountBalance struct {
	Account string
	Type    AccountType
	Balance *Balance
}

// Balances sums posting quantities per account and commodity. Each
// transaction's first posting without a quantity receives whatever balances
// the transaction, so "$-68.47 Checking / Utilities" credits Utilities with
// $68.47. Priced postings weigh their cost in the cash unit. Accounts whose
// balance is zero are left out; filter, when non-nil, keeps only matching
// account names. The result is sorted by account.
func (l *Ledger) Balances(filter *regexp.Regexp) []AccountBalance {
	totals := make(map[string]*Balance)
	add := func(account string, b *Balance) {
		if totals[account] == nil {
			totals[account] = NewBalance()
		}
		totals[account].Merge(b)
	}

	for _, txn := range l.journal.Transactions {
		var elided *ast.Posting
		for _, p := range txn.Postings {
			if p.Quantity == nil {
				if elided == nil {
					elided = p
				}
				continue
			}
			b := NewBalance()
			b.Add(l.commodityOf(p), *p.Quantity)
			add(p.Account, b)
		}
		if elided != nil {
			add(elided.Account, residual(txn, l.cashUnit))
		}
	}

	balances := make([]AccountBalance, 0, len(totals))
	for account, b := range totals {
		if filter != nil && !filter.MatchString(account) {
			continue
		}
		b = b.withoutZeros()
		if len(b.entries) == 0 {
			continue
		}
		balances = append(balances, AccountBalance{
			Account: account,
			Type:    ParseAccountType(account),
			Balance: b,
		})
	}

	sort.Slice(balances, func(i, j int) bool {
		return balances[i].Account < balances[j].Account
	})
	return balances
}

func (l *Ledger) commodityOf(p *ast.Posting) string {
	if p.IsCash(l.cashUnit) {
		return l.cashUnit
	}
	return p.Commodity
}
