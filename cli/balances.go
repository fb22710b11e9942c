package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/ledger-import/ast"
	"github.com/robinvdvleuten/ledger-import/ledger"
	"github.com/robinvdvleuten/ledger-import/output"
)

type BalancesCmd struct {
	Journal string `arg:"" optional:"" help:"Journal to read (defaults to the configured journal, '-' for stdin)."`
	Filter  string `help:"Only show accounts matching this regular expression." short:"f"`
}

func (cmd *BalancesCmd) Run(ctx *kong.Context, globals *Globals) error {
	filter, err := compileFilter(cmd.Filter)
	if err != nil {
		return err
	}

	s, err := globals.session(ctx, "balances")
	if err != nil {
		return err
	}
	defer s.Close()

	journalFile, err := s.journal(cmd.Journal)
	if err != nil {
		return err
	}

	file, err := s.load(s.loader(), journalFile)
	if err != nil {
		return err
	}

	writeBalances(s.stdout, file.Ledger.Balances(filter))
	return nil
}

// writeBalances prints one line per account and commodity. Amounts are
// right-aligned; further commodities of an account go on their own lines.
func writeBalances(w io.Writer, balances []ledger.AccountBalance) {
	styles := output.NewStyles(w)

	var accountWidth, amountWidth int
	for _, b := range balances {
		accountWidth = max(accountWidth, runewidth.StringWidth(b.Account))
		for _, e := range b.Balance.Entries() {
			amountWidth = max(amountWidth, runewidth.StringWidth(ast.FormatDecimal(e.Amount)))
		}
	}

	for _, b := range balances {
		for i, e := range b.Balance.Entries() {
			account := ""
			if i == 0 {
				account = b.Account
			}
			amount := ast.FormatDecimal(e.Amount)
			_, _ = fmt.Fprintf(w, "%s%s  %s%s %s\n",
				styles.Account(account),
				strings.Repeat(" ", accountWidth-runewidth.StringWidth(account)),
				strings.Repeat(" ", amountWidth-runewidth.StringWidth(amount)),
				styles.Amount(amount),
				e.Commodity,
			)
		}
	}
}
