// Package loader reads journal files into indexed ledgers and writes them
// back.
//
// A journal is always read in full and rewritten in full. Saving goes through
// a temporary file in the same directory followed by a rename, so a failed
// run never leaves a half-written journal behind.
//
// Example usage:
//
//	l := loader.New(loader.WithLedgerOptions(cfg.LedgerOptions()...))
//	file, err := l.Load(ctx, "main.ledger")
//	if err != nil {
//	    return err
//	}
//	// ... record transactions in file.Ledger ...
//	err = l.Save(ctx, file, formatter.New())
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/robinvdvleuten/ledger-import/ast"
	"github.com/robinvdvleuten/ledger-import/formatter"
	"github.com/robinvdvleuten/ledger-import/ledger"
)

// Stdio is the filename that stands for standard input or output.
const Stdio = "-"

// File is a journal loaded from disk.
type File struct {
	Name   string
	Source []byte
	Ledger *ledger.Ledger
}

// Loader handles loading and saving of journal files.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithCreate())
type Loader struct {
	// Create starts from an empty journal when the file does not exist yet.
	Create bool

	ledgerOpts []ledger.Option
	stdin      io.Reader
	stdout     io.Writer
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithCreate makes Load return an empty ledger for a missing file.
func WithCreate() Option {
	return func(l *Loader) {
		l.Create = true
	}
}

// WithLedgerOptions sets the options used to index loaded journals.
func WithLedgerOptions(opts ...ledger.Option) Option {
	return func(l *Loader) {
		l.ledgerOpts = append(l.ledgerOpts, opts...)
	}
}

// WithStdio replaces standard input and output for the "-" filename.
func WithStdio(in io.Reader, out io.Writer) Option {
	return func(l *Loader) {
		l.stdin = in
		l.stdout = out
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load reads and indexes a journal. The returned File keeps the raw source
// so parse errors can be shown in context, also when err is non-nil.
func (l *Loader) Load(ctx context.Context, filename string) (*File, error) {
	data, err := l.read(filename)
	if errors.Is(err, fs.ErrNotExist) && l.Create {
		journal := ast.NewJournal()
		journal.Filename = filename
		return &File{Name: filename, Ledger: ledger.New(ctx, journal, l.ledgerOpts...)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	file := &File{Name: filename, Source: data}
	file.Ledger, err = ledger.Load(ctx, filename, data, l.ledgerOpts...)
	if err != nil {
		return file, err
	}
	return file, nil
}

func (l *Loader) read(filename string) ([]byte, error) {
	if filename == Stdio {
		return io.ReadAll(l.stdin)
	}
	return os.ReadFile(filename)
}

// Save formats the file's journal and replaces the file on disk.
func (l *Loader) Save(ctx context.Context, file *File, f *formatter.Formatter) error {
	var buf bytes.Buffer
	if err := f.Format(ctx, file.Ledger.Journal(), &buf); err != nil {
		return err
	}

	if file.Name == Stdio {
		_, err := l.stdout.Write(buf.Bytes())
		return err
	}
	return writeFileAtomic(file.Name, buf.Bytes())
}

func writeFileAtomic(filename string, data []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(filename); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
