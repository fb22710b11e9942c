package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/ledger-import/loader"
)

type CheckCmd struct {
	Journal string `arg:"" optional:"" help:"Journal to check (defaults to the configured journal, '-' for stdin)."`
	Watch   bool   `help:"Check again whenever the journal changes." short:"w"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.session(ctx, fmt.Sprintf("check %s", filepath.Base(cmd.Journal)))
	if err != nil {
		return err
	}
	defer s.Close()

	journalFile, err := s.journal(cmd.Journal)
	if err != nil {
		return err
	}

	if !cmd.Watch {
		return cmd.check(s, journalFile)
	}
	if journalFile == loader.Stdio {
		return fmt.Errorf("cannot watch standard input")
	}

	runCtx, stop := signal.NotifyContext(s.ctx, os.Interrupt)
	defer stop()

	_ = cmd.check(s, journalFile)
	return loader.Watch(runCtx, journalFile, func() {
		_, _ = fmt.Fprintln(s.stdout)
		_ = cmd.check(s, journalFile)
	}, func(err error) {
		s.logger.Warn("file watcher error", "err", err)
	})
}

func (cmd *CheckCmd) check(s *session, journalFile string) error {
	file, err := s.load(s.loader(), journalFile)
	if err != nil {
		if _, ok := err.(*CommandError); !ok {
			printError(s.stderr, err.Error())
		}
		return err
	}

	warnings := file.Ledger.Warnings()
	if len(warnings) > 0 {
		errs := make([]error, len(warnings))
		for i, w := range warnings {
			errs[i] = w
		}
		renderer := NewErrorRenderer(s.stderr, file.Source, s.formatter(0))
		_, _ = fmt.Fprintln(s.stderr, renderer.RenderAll(errs))
		_, _ = fmt.Fprintln(s.stderr)
		printWarning(s.stderr, fmt.Sprintf("%d possible duplicate(s) found", len(warnings)))
	}

	journal := file.Ledger.Journal()
	printSuccess(s.stdout, fmt.Sprintf("Check passed: %d transactions, %d accounts",
		len(journal.Transactions), len(journal.AccountNames())))
	return nil
}
