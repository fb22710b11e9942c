package cli

import (
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"
)

type FormatCmd struct {
	Journal      string `arg:"" optional:"" help:"Journal to format (defaults to the configured journal, '-' for stdin)."`
	Write        bool   `help:"Write the result back to the journal instead of stdout." short:"w"`
	AmountColumn int    `help:"Column to align amounts to (auto-calculated from content if 0)." default:"0"`
}

func (cmd *FormatCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.session(ctx, fmt.Sprintf("format %s", filepath.Base(cmd.Journal)))
	if err != nil {
		return err
	}
	defer s.Close()

	journalFile, err := s.journal(cmd.Journal)
	if err != nil {
		return err
	}

	ldr := s.loader()
	file, err := s.load(ldr, journalFile)
	if err != nil {
		return err
	}

	f := s.formatter(cmd.AmountColumn)
	if cmd.Write {
		return ldr.Save(s.ctx, file, f)
	}
	return f.Format(s.ctx, file.Ledger.Journal(), s.stdout)
}
