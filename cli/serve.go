package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/ledger-import/loader"
	"github.com/robinvdvleuten/ledger-import/web"
)

type ServeCmd struct {
	Journal string `arg:"" optional:"" help:"Journal to serve (defaults to the configured journal)."`
	Port    int    `help:"Port to listen on." default:"8080" short:"p"`
	Watch   bool   `help:"Reload the journal and notify clients when it changes." short:"w"`
}

func (cmd *ServeCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.session(ctx, fmt.Sprintf("serve %s", filepath.Base(cmd.Journal)))
	if err != nil {
		return err
	}
	defer s.Close()

	journalFile, err := s.journal(cmd.Journal)
	if err != nil {
		return err
	}
	if journalFile == loader.Stdio {
		return fmt.Errorf("cannot serve standard input")
	}

	server := web.New(cmd.Port, journalFile, s.loader())
	server.Logger = s.logger
	server.WatchEnabled = cmd.Watch

	runCtx, stop := signal.NotifyContext(s.ctx, os.Interrupt)
	defer stop()

	printInfof(s.stderr, "Serving %s on http://%s:%d", journalFile, server.Host, server.Port)
	return server.Start(runCtx)
}
