package cli

import (
	"bufio"
	"bytes"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/ledger-import/parser"
)

// DoctorCmd provides doctor utilities for debugging journal files.
type DoctorCmd struct {
	Classify ClassifyCmd `cmd:"" help:"Show how each line of a journal is classified."`
	Dump     DumpCmd     `cmd:"" help:"Dump the parsed journal structure."`
}

// ClassifyCmd shows the kind of every line of a journal.
type ClassifyCmd struct {
	Journal string `arg:"" optional:"" help:"Journal to read (defaults to the configured journal, '-' for stdin)."`
}

// Run executes the classify command. Malformed lines are listed instead of
// stopping the run.
func (cmd *ClassifyCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.session(ctx, "classify")
	if err != nil {
		return err
	}
	defer s.Close()

	journalFile, err := s.journal(cmd.Journal)
	if err != nil {
		return err
	}

	content, err := readSource(s, journalFile)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for n := 1; scanner.Scan(); n++ {
		kind := "malformed"
		line, err := parser.Classify(scanner.Text())
		if err == nil {
			kind = line.Kind.String()
		} else {
			line.Text = scanner.Text()
		}

		// Format: KIND line "content"
		_, _ = fmt.Fprintf(s.stdout, "%-10s %4d    %q\n", kind, n, line.Text)
	}
	return scanner.Err()
}

// DumpCmd prints the parsed journal as a Go value.
type DumpCmd struct {
	Journal string `arg:"" optional:"" help:"Journal to read (defaults to the configured journal, '-' for stdin)."`
}

func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.session(ctx, "dump")
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

	repr.New(s.stdout, repr.Indent("  "), repr.OmitEmpty(true)).Println(file.Ledger.Journal())
	return nil
}
