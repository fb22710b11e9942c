package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/ledger-import/ast"
	"github.com/robinvdvleuten/ledger-import/importer"
	"github.com/robinvdvleuten/ledger-import/ledger"
	"github.com/robinvdvleuten/ledger-import/loader"
)

type ImportCmd struct {
	Format  string `arg:"" help:"CSV export format (${formats})." enum:"${formats}"`
	Input   string `arg:"" help:"CSV export to import." type:"existingfile"`
	Journal string `help:"Journal to import into (defaults to the configured journal)." short:"j"`
	Output  string `help:"Write the result here instead of back to the journal ('-' for stdout)." short:"o"`
	Account string `help:"Account the export belongs to (overrides the configured account)."`
	Create  bool   `help:"Create the journal if it does not exist (no confirmation prompt)."`
	Yes     bool   `help:"Accept every suggestion without prompting; transactions without one are skipped." short:"y"`
}

// importSummary counts what happened to each row of an export.
type importSummary struct {
	recorded, duplicates, mirrors, skipped int

	// lookalikes share date and amount with a journal entry but were not
	// caught as re-imports, typically because the bank changed the description.
	lookalikes []*ast.Transaction
}

func (s importSummary) String() string {
	msg := fmt.Sprintf("%d recorded, %d already imported, %d mirrored transfers, %d skipped",
		s.recorded, s.duplicates, s.mirrors, s.skipped)
	if len(s.lookalikes) > 0 {
		msg += fmt.Sprintf(", %d possible duplicates", len(s.lookalikes))
	}
	return msg
}

func (cmd *ImportCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.session(ctx, fmt.Sprintf("import %s", filepath.Base(cmd.Input)))
	if err != nil {
		return err
	}
	defer s.Close()

	journalFile, err := s.journal(cmd.Journal)
	if err != nil {
		return err
	}

	format, ok := importer.Lookup(cmd.Format)
	if !ok {
		return fmt.Errorf("unknown format %q", cmd.Format)
	}
	account := cmd.Account
	if account == "" {
		account = s.cfg.AccountFor(format.Name)
	}

	input, err := os.Open(cmd.Input)
	if err != nil {
		return err
	}
	defer input.Close()

	observed, err := format.Read(s.ctx, cmd.Input, input,
		importer.WithAccount(account),
		importer.WithCashUnit(s.cfg.CashUnit),
	)
	if err != nil {
		var rowErr *importer.RowError
		if errors.As(err, &rowErr) {
			_, _ = fmt.Fprintln(s.stderr, NewErrorRenderer(s.stderr, nil, nil).Render(rowErr))
			_, _ = fmt.Fprintln(s.stderr)
			printError(s.stderr, "import error")
			return NewCommandError(1)
		}
		return err
	}

	create, err := cmd.shouldCreate(journalFile)
	if err != nil {
		return err
	}

	var opts []loader.Option
	if create {
		opts = append(opts, loader.WithCreate())
	}
	ldr := s.loader(opts...)

	file, err := s.load(ldr, journalFile)
	if err != nil {
		return err
	}

	prompter := cmd.prompter(globals, s)
	messages := s.stdout
	if cmd.Output == loader.Stdio || journalFile == loader.Stdio {
		messages = s.stderr
	}

	summary, err := importTransactions(file.Ledger, observed, prompter, func(txn *ast.Transaction, outcome ledger.Outcome) {
		if outcome == ledger.OutcomeRecorded {
			printInfof(messages, "%s %s %s", txn.Date.Format(ast.DateLayout), txn.Description,
				txn.Postings[len(txn.Postings)-1].Account)
		}
	})
	if err != nil {
		return err
	}

	if cmd.Output != "" {
		file.Name = cmd.Output
	}
	if summary.recorded > 0 || cmd.Output != "" {
		if err := ldr.Save(s.ctx, file, s.formatter(0)); err != nil {
			return err
		}
	}

	for _, txn := range summary.lookalikes {
		printWarning(messages, fmt.Sprintf("%s %s matches the date and amount of an existing entry",
			txn.Date.Format(ast.DateLayout), txn.Description))
	}
	printSuccess(messages, summary.String())
	return nil
}

func (cmd *ImportCmd) shouldCreate(journalFile string) (bool, error) {
	if cmd.Create || journalFile == loader.Stdio {
		return cmd.Create, nil
	}
	if _, err := os.Stat(journalFile); !errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if cmd.Yes {
		return false, nil
	}

	confirmed, err := promptYesNo(fmt.Sprintf("Journal %q does not exist. Create it?", journalFile))
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return confirmed, nil
}

func (cmd *ImportCmd) prompter(globals *Globals, s *session) Prompter {
	switch {
	case globals.Prompter != nil:
		return globals.Prompter
	case cmd.Yes || !isTerminal():
		return SuggestionPrompter{}
	default:
		return FormPrompter{Formatter: s.formatter(0)}
	}
}

// importTransactions merges observed transactions into l in order. Exact
// re-imports are dropped before prompting; everything else gets a
// counter-account from the prompter, seeded with the ledger's suggestion.
// Transactions whose identity digest is already known are still prompted for
// and listed in the summary as possible duplicates.
func importTransactions(
	l *ledger.Ledger,
	observed []*ast.Transaction,
	prompter Prompter,
	report func(*ast.Transaction, ledger.Outcome),
) (importSummary, error) {
	var summary importSummary

	for _, txn := range observed {
		if l.AlreadyImported(txn) {
			summary.duplicates++
			continue
		}
		if l.Seen(txn) {
			summary.lookalikes = append(summary.lookalikes, txn)
		}

		suggestion, _ := l.Suggest(txn)
		account, err := prompter.Account(txn, suggestion, l.AccountNames())
		if err != nil {
			return summary, err
		}
		if account == "" {
			summary.skipped++
			continue
		}

		outcome, err := l.Record(txn, account)
		if err != nil {
			return summary, err
		}

		switch outcome {
		case ledger.OutcomeRecorded:
			summary.recorded++
		case ledger.OutcomeDuplicate:
			summary.duplicates++
		case ledger.OutcomeMirror:
			summary.mirrors++
		}
		report(txn, outcome)
	}

	return summary, nil
}
