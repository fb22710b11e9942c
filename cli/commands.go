package cli

import (
	"io"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/ledger-import/importer"
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	Config    string `help:"Configuration file (YAML)." short:"c" type:"path" env:"LEDGER_IMPORT_CONFIG"`
	Debug     bool   `help:"Log every recorded and skipped transaction."`

	// Prompter and Stdin replace the terminal in tests.
	Prompter Prompter  `kong:"-"`
	Stdin    io.Reader `kong:"-"`
}

type Commands struct {
	Globals

	Import   ImportCmd   `cmd:"" help:"Import a bank CSV export into a journal."`
	Check    CheckCmd    `cmd:"" help:"Parse a journal and report errors and duplicates."`
	Format   FormatCmd   `cmd:"" help:"Rewrite a journal in canonical form with aligned amounts."`
	Accounts AccountsCmd `cmd:"" help:"List the accounts of a journal."`
	Balances BalancesCmd `cmd:"" help:"Show per-account balances of a journal."`
	Serve    ServeCmd    `cmd:"" help:"Serve a read-only JSON API over a journal."`
	Doctor   DoctorCmd   `cmd:"" help:"Doctor utilities for debugging journal files."`
}

// Vars returns the interpolation variables used by the command tags.
func Vars() kong.Vars {
	return kong.Vars{
		"formats": strings.Join(importer.Names(), ","),
	}
}
