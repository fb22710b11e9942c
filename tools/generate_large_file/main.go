// Large Journal Generator
//
// This tool generates a large ledger journal for performance testing and profiling.
// It creates realistic bank transactions, commodity purchases and regex rules to
// stress-test the parser, the ledger indices and the formatter.
//
// Usage:
//
//	go run main.go > large.ledger
//	go run main.go 20000000 > large.ledger  # Specify target size in bytes
package main

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/ledger-import/ast"
	"github.com/robinvdvleuten/ledger-import/formatter"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB

	// Transactions are formatted in batches to track the output size.
	batchSize = 1000

	// A fixed column keeps batches aligned with each other.
	amountColumn = 60
)

var (
	banks = []string{
		"Assets:NECU:Checking",
		"Assets:Ally Bank:Online Savings",
		"Assets:Kennebunk:Checking",
		"Liabilities:Credit Cards:U.S. Bank",
	}

	payees = map[string]string{
		"Whole Foods":             "Expenses:Food:Groceries",
		"Trader Joe's":            "Expenses:Food:Groceries",
		"Shell Oil":               "Expenses:Auto:Gas",
		"FairPoint Communi":       "Expenses:Utilities",
		"Central Maine Power":     "Expenses:Utilities",
		"Landlord":                "Expenses:Housing:Rent",
		"Amazon":                  "Expenses:Shopping",
		"Netflix":                 "Expenses:Entertainment",
		"Payroll Deposit":         "Income:Salary",
		"Interest Paid":           "Income:Interest",
		"CAPITAL ONE ONLINE PMT":  "Liabilities:Capital One",
		"Dental Associates":       "Expenses:Healthcare:Dental",
		"Portland Public Library": "Expenses:Books",
	}

	funds = []string{"VFIAX", "VTSAX", "VBTLX"}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	ctx := context.Background()
	f := formatter.New(formatter.WithAmountColumn(amountColumn))

	header := declarations()
	if err := f.Format(ctx, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write journal: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()

	names := make([]string, 0, len(payees))
	for name := range payees {
		names = append(names, name)
	}

	date := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	bytesWritten := 0
	transactionCount := 0

	for bytesWritten < targetSize {
		var buf bytes.Buffer
		for i := 0; i < batchSize; i++ {
			var txn *ast.Transaction
			if rand.Intn(20) == 0 {
				txn = generatePurchase(date)
			} else {
				txn = generateBankTransaction(date, names[rand.Intn(len(names))])
			}
			if err := f.FormatTransaction(txn, &buf); err != nil {
				fmt.Fprintf(os.Stderr, "failed to format transaction: %v\n", err)
				os.Exit(1)
			}
			transactionCount++

			// Advance the date every few transactions.
			if rand.Intn(4) == 0 {
				date = date.AddDate(0, 0, 1)
			}
		}

		n, err := os.Stdout.Write(buf.Bytes())
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to write journal: %v\n", err)
			os.Exit(1)
		}
		bytesWritten += n
	}

	fmt.Fprintf(os.Stderr, "Generated %d transactions (%d bytes)\n", transactionCount, bytesWritten)
}

// declarations returns a journal holding only accounts, commodities, prices
// and regex rules.
func declarations() *ast.Journal {
	journal := ast.NewJournal()
	for _, bank := range banks {
		journal.AddAccount(bank)
	}
	for name, account := range payees {
		journal.AddAccount(account)

		rule, err := ast.NewAccountRegEx(account, "^"+name)
		if err == nil {
			journal.AddRegex(rule)
		}
	}
	journal.AddAccount("Assets:Wells Fargo:401(k)")

	for _, fund := range funds {
		journal.AddCommodity(&ast.Commodity{Name: fund})
		journal.AddPrice(&ast.Price{
			Date:      time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
			Commodity: fund,
			Value:     randomAmount(50, 250, 2),
		})
	}
	return journal
}

func generateBankTransaction(date time.Time, payee string) *ast.Transaction {
	bank := banks[rand.Intn(len(banks))]
	amount := randomAmount(1, 500, 2)
	if payees[payee] != "Income:Salary" && payees[payee] != "Income:Interest" {
		amount = amount.Neg()
	}

	return ast.NewTransaction(date, fmt.Sprintf("%s %d", payee, rand.Intn(100000)),
		ast.WithPostings(
			ast.NewPosting(bank, ast.WithCash(amount)),
			ast.NewPosting(payees[payee]),
		),
	)
}

func generatePurchase(date time.Time) *ast.Transaction {
	fund := funds[rand.Intn(len(funds))]
	return ast.NewTransaction(date, "Payroll contribution",
		ast.WithPostings(
			ast.NewPosting("Assets:Wells Fargo:401(k)",
				ast.WithCommodity(randomAmount(0, 2, 4), fund),
				ast.WithUnitPrice(randomAmount(50, 250, 4)),
			),
			ast.NewPosting("Assets:NECU:Checking"),
		),
	)
}

// randomAmount returns a decimal between lo and hi with the given number of
// decimal places.
func randomAmount(lo, hi int, places int32) decimal.Decimal {
	scale := decimal.New(1, places)
	span := decimal.NewFromInt(int64(hi - lo)).Mul(scale).IntPart()
	units := decimal.NewFromInt(int64(lo)).Mul(scale).IntPart() + rand.Int63n(span+1)
	return decimal.New(units, -places)
}
