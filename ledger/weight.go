package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/ledger-import/ast"
)

// weight is the contribution of a posting to its transaction's balance.
type weight struct {
	Amount    decimal.Decimal
	Commodity string
}

// postingWeight returns what a posting contributes to the balance. A priced
// posting weighs its cost in the cash unit; any other posting weighs its own
// quantity. A posting without a quantity weighs nothing.
func postingWeight(p *ast.Posting, cashUnit string) (weight, bool) {
	if p.Quantity == nil {
		return weight{}, false
	}
	if p.UnitPrice != nil {
		return weight{Amount: p.Quantity.Mul(*p.UnitPrice), Commodity: cashUnit}, true
	}
	commodity := p.Commodity
	if p.IsCash(cashUnit) {
		commodity = cashUnit
	}
	return weight{Amount: *p.Quantity, Commodity: commodity}, true
}

// residual sums the weights of every posting and negates the result: it is
// what an elided posting must hold for the transaction to balance.
func residual(txn *ast.Transaction, cashUnit string) *Balance {
	b := NewBalance()
	for _, p := range txn.Postings {
		if w, ok := postingWeight(p, cashUnit); ok {
			b.Add(w.Commodity, w.Amount.Neg())
		}
	}
	return b
}
