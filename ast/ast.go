// Package ast declares the types used to represent a plain-text ledger journal.
//
// A journal is a flat file made of account and commodity declarations, price
// records, regex rule comments and transaction blocks. The types in this
// package mirror those shapes one to one: they can be created by parsing a
// journal with the parser package, or constructed programmatically (for
// example by a CSV importer) and rendered with the formatter package.
package ast

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Journal is the in-memory representation of a ledger file.
//
// Account names form a set: insertion order is irrelevant and AccountNames
// always returns them sorted. Every account referenced by a posting is part
// of the set; AddTransaction inserts missing ones.
type Journal struct {
	Filename     string
	accounts     map[string]struct{}
	Transactions []*Transaction
	Regexes      []*AccountRegEx
	Commodities  []*Commodity
	Prices       []*Price
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{
		accounts: make(map[string]struct{}),
	}
}

// AddAccount declares an account. Declaring an account twice is a no-op.
func (j *Journal) AddAccount(name string) {
	if j.accounts == nil {
		j.accounts = make(map[string]struct{})
	}
	j.accounts[name] = struct{}{}
}

// HasAccount reports whether the account has been declared or referenced.
func (j *Journal) HasAccount(name string) bool {
	_, ok := j.accounts[name]
	return ok
}

// AccountNames returns all known account names in sorted order.
func (j *Journal) AccountNames() []string {
	names := maps.Keys(j.accounts)
	slices.Sort(names)
	return names
}

// AddTransaction appends a transaction and inserts every account it references.
func (j *Journal) AddTransaction(txn *Transaction) {
	for _, p := range txn.Postings {
		j.AddAccount(p.Account)
	}
	j.Transactions = append(j.Transactions, txn)
}

// AddCommodity declares a commodity.
func (j *Journal) AddCommodity(c *Commodity) {
	j.Commodities = append(j.Commodities, c)
}

// AddPrice records a price observation.
func (j *Journal) AddPrice(p *Price) {
	j.Prices = append(j.Prices, p)
}

// AddRegex appends a regex rule. Rule order is significant for suggestions.
func (j *Journal) AddRegex(r *AccountRegEx) {
	j.Regexes = append(j.Regexes, r)
}
