package ast

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction records a dated, described group of postings. Posting order is
// preserved as written; mirror detection depends on it. Postings are not
// required to balance.
//
// Example:
//
//	2016/03/20 CAPITAL ONE ONLINE PMT
//	  Assets:NECU:Checking    $-123.45
//	  Liabilities:Capital One
type Transaction struct {
	Pos         Position
	Date        time.Time
	Description string
	Postings    []*Posting
}

// Total is the signed sum of all postings that carry a quantity.
func (t *Transaction) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range t.Postings {
		if p.Quantity != nil {
			total = total.Add(*p.Quantity)
		}
	}
	return total
}

// Accounts returns the posting accounts in posting order, duplicates included.
func (t *Transaction) Accounts() []string {
	accounts := make([]string, 0, len(t.Postings))
	for _, p := range t.Postings {
		accounts = append(accounts, p.Account)
	}
	return accounts
}

// HasAccount reports whether any posting uses the account.
func (t *Transaction) HasAccount(account string) bool {
	for _, p := range t.Postings {
		if p.Account == account {
			return true
		}
	}
	return false
}

// DistinctAccounts counts the different accounts referenced by the postings.
func (t *Transaction) DistinctAccounts() int {
	seen := make(map[string]struct{}, len(t.Postings))
	for _, p := range t.Postings {
		seen[p.Account] = struct{}{}
	}
	return len(seen)
}

// Equal compares content only; source positions are ignored.
func (t *Transaction) Equal(other *Transaction) bool {
	if t == nil || other == nil {
		return t == other
	}
	if !t.Date.Equal(other.Date) || t.Description != other.Description {
		return false
	}
	if len(t.Postings) != len(other.Postings) {
		return false
	}
	for i := range t.Postings {
		if !t.Postings[i].Equal(other.Postings[i]) {
			return false
		}
	}
	return true
}

// Posting is one account line of a transaction. A nil Quantity means the
// line carries no amount, which is distinct from an explicit zero. UnitPrice
// is only meaningful for commodities other than CashUnit.
//
// Example postings:
//
//	Assets:NECU:Checking    $-68.47
//	Assets:Wells Fargo:401(k)    -0.0210 VFIAX @ $188.9800
//	Assets:Vanguard:IRA    12.5 VTIVX
//	Expenses:Utilities
type Posting struct {
	Account   string
	Quantity  *decimal.Decimal
	Commodity string
	UnitPrice *decimal.Decimal
}

// IsCash reports whether the posting is denominated in cashUnit. A posting
// without a commodity is always cash.
func (p *Posting) IsCash(cashUnit string) bool {
	return p.Commodity == "" || p.Commodity == cashUnit
}

// Equal compares postings by value, so 1.50 equals 1.5.
func (p *Posting) Equal(other *Posting) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Account == other.Account &&
		p.Commodity == other.Commodity &&
		equalOptional(p.Quantity, other.Quantity) &&
		equalOptional(p.UnitPrice, other.UnitPrice)
}

func equalOptional(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
