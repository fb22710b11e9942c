package ledger

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/ledger-import/ast"
)

const identityDateLayout = "2006-01-02"

// Identity digests a transaction's date and the amount of money it moves:
// the larger of the positive posting sum and the magnitude of the negative
// posting sum. The digest ignores posting order, accounts and description,
// and is the same for a transaction and its sign-flipped mirror image.
func Identity(txn *ast.Transaction) string {
	h := sha1.New()
	h.Write([]byte(txn.Date.Format(identityDateLayout)))
	h.Write([]byte(quantityKey(movedAmount(txn))))
	return hex.EncodeToString(h.Sum(nil))
}

// ExtendedIdentity is Identity with the sorted posting accounts folded in,
// so only transactions between the same accounts collide.
func ExtendedIdentity(txn *ast.Transaction) string {
	accounts := txn.Accounts()
	sort.Strings(accounts)

	h := sha1.New()
	h.Write([]byte(txn.Date.Format(identityDateLayout)))
	h.Write([]byte(quantityKey(movedAmount(txn))))
	for _, account := range accounts {
		h.Write([]byte{0})
		h.Write([]byte(account))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func movedAmount(txn *ast.Transaction) decimal.Decimal {
	positive, negative := decimal.Zero, decimal.Zero
	for _, p := range txn.Postings {
		if p.Quantity == nil {
			continue
		}
		if p.Quantity.IsPositive() {
			positive = positive.Add(*p.Quantity)
		} else {
			negative = negative.Add(*p.Quantity)
		}
	}
	return decimal.Max(positive, negative.Abs())
}

// quantityKey renders an amount so that equal values share a key: 23.45 and
// 23.450 both map to "23.45".
func quantityKey(d decimal.Decimal) string {
	return d.String()
}
