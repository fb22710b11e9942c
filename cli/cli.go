// Package cli implements the ledger-import command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/robinvdvleuten/ledger-import/config"
	"github.com/robinvdvleuten/ledger-import/formatter"
	"github.com/robinvdvleuten/ledger-import/ledger"
	"github.com/robinvdvleuten/ledger-import/loader"
	"github.com/robinvdvleuten/ledger-import/output"
	"github.com/robinvdvleuten/ledger-import/telemetry"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"
	warningSymbol = "!"
)

// ErrNoJournal is returned when neither the command line nor the
// configuration names a journal.
var ErrNoJournal = errors.New("no journal given: pass one or set journal in the configuration")

func printSuccess(w io.Writer, message string) {
	styles := output.NewStyles(w)
	_, _ = fmt.Fprintf(w, "%s %s\n", styles.Success(successSymbol), message)
}

func printError(w io.Writer, message string) {
	styles := output.NewStyles(w)
	_, _ = fmt.Fprintf(w, "%s %s\n", styles.Error(errorSymbol), styles.Error(message))
}

func printWarning(w io.Writer, message string) {
	styles := output.NewStyles(w)
	_, _ = fmt.Fprintf(w, "%s %s\n", styles.Warning(warningSymbol), message)
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	styles := output.NewStyles(w)
	_, _ = fmt.Fprintf(w, "%s %s\n", styles.Dim(infoSymbol), fmt.Sprintf(format, args...))
}

// promptYesNo prompts the user with a yes/no question.
// Returns false by default if stdin is not a terminal.
func promptYesNo(question string) (bool, error) {
	if !isTerminal() {
		return false, nil
	}

	var confirm bool

	form := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	return confirm, nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// session holds what every command needs once flags are parsed: the resolved
// configuration, a logger and the telemetry collector.
type session struct {
	cfg    *config.Config
	logger *log.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	ctx       context.Context
	collector telemetry.Collector
	root      telemetry.Timer
}

func (g *Globals) session(kctx *kong.Context, operation string) (*session, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Debug {
		cfg.Debug = true
	}

	logger := log.NewWithOptions(kctx.Stderr, log.Options{Prefix: "ledger-import"})
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	s := &session{
		cfg:    cfg,
		logger: logger,
		stdin:  g.Stdin,
		stdout: kctx.Stdout,
		stderr: kctx.Stderr,
		ctx:    context.Background(),
	}
	if s.stdin == nil {
		s.stdin = os.Stdin
	}

	if g.Telemetry {
		collector := telemetry.NewTimingCollector(telemetry.WithStyles(output.NewStyles(kctx.Stderr)))
		s.collector = collector
		s.ctx = telemetry.WithCollector(s.ctx, collector)
		s.root = collector.Start(operation)
	}

	return s, nil
}

// Close ends the root timer and prints the telemetry report.
func (s *session) Close() {
	if s.collector == nil {
		return
	}
	s.root.End()
	_, _ = fmt.Fprintln(s.stderr)
	s.collector.Report(s.stderr)
	s.collector = nil
}

// journal resolves the journal to work on.
func (s *session) journal(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if s.cfg.Journal != "" {
		return s.cfg.Journal, nil
	}
	return "", ErrNoJournal
}

func (s *session) loader(opts ...loader.Option) *loader.Loader {
	ledgerOpts := append(s.cfg.LedgerOptions(), ledger.WithLogger(s.logger))
	opts = append([]loader.Option{
		loader.WithLedgerOptions(ledgerOpts...),
		loader.WithStdio(s.stdin, s.stdout),
	}, opts...)
	return loader.New(opts...)
}

func (s *session) formatter(amountColumn int) *formatter.Formatter {
	opts := s.cfg.FormatterOptions()
	if amountColumn > 0 {
		opts = append(opts, formatter.WithAmountColumn(amountColumn))
	}
	return formatter.New(opts...)
}

// load reads a journal and renders any parse error to stderr. The returned
// error is a *CommandError once the failure has been reported.
func (s *session) load(ldr *loader.Loader, filename string) (*loader.File, error) {
	file, err := ldr.Load(s.ctx, filename)
	if err == nil {
		return file, nil
	}
	if file == nil || errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	renderer := NewErrorRenderer(s.stderr, file.Source, s.formatter(0))
	_, _ = fmt.Fprintln(s.stderr, renderer.Render(err))
	_, _ = fmt.Fprintln(s.stderr)
	printError(s.stderr, "parse error")
	return nil, NewCommandError(1)
}

func readSource(s *session, filename string) ([]byte, error) {
	if filename == loader.Stdio {
		return io.ReadAll(s.stdin)
	}
	return os.ReadFile(filename)
}
