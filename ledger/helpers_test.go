package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/ledger-import/ast"
)

func txn(date, description string, postings ...*ast.Posting) *ast.Transaction {
	return ast.NewTransaction(ast.MustDate(date), description, ast.WithPostings(postings...))
}

func cash(account, quantity string) *ast.Posting {
	return ast.NewPosting(account, ast.WithCash(decimal.RequireFromString(quantity)))
}

func bare(account string) *ast.Posting {
	return ast.NewPosting(account)
}

func journalOf(transactions ...*ast.Transaction) *ast.Journal {
	j := ast.NewJournal()
	for _, t := range transactions {
		j.AddTransaction(t)
	}
	return j
}
