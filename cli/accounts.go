package cli

import (
	"fmt"
	"regexp"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/ledger-import/output"
)

type AccountsCmd struct {
	Journal string `arg:"" optional:"" help:"Journal to read (defaults to the configured journal, '-' for stdin)."`
	Filter  string `help:"Only list accounts matching this regular expression." short:"f"`
}

func (cmd *AccountsCmd) Run(ctx *kong.Context, globals *Globals) error {
	filter, err := compileFilter(cmd.Filter)
	if err != nil {
		return err
	}

	s, err := globals.session(ctx, "accounts")
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

	styles := output.NewStyles(s.stdout)
	for _, account := range file.Ledger.AccountNames() {
		if filter != nil && !filter.MatchString(account) {
			continue
		}
		_, _ = fmt.Fprintln(s.stdout, styles.Account(account))
	}
	return nil
}

func compileFilter(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return re, nil
}
