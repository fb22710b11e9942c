// Package web provides a read-only HTTP API over a journal.
//
// The server exposes the journal source with its parse errors and duplicate
// warnings, the declared accounts, per-account balances and counter-account
// suggestions. Clients can subscribe to reload events, which are sent
// whenever the journal changes on disk.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/robinvdvleuten/ledger-import/ledger"
	"github.com/robinvdvleuten/ledger-import/loader"
	"github.com/robinvdvleuten/ledger-import/telemetry"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Port         int
	Host         string
	WatchEnabled bool
	Logger       *log.Logger

	loader      *loader.Loader
	journalFile string

	mu      sync.RWMutex
	file    *loader.File
	loadErr error // parse error of the last load, if any

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

func New(port int, journalFile string, ldr *loader.Loader) *Server {
	return &Server{
		Port:        port,
		Host:        "127.0.0.1",
		Logger:      log.Default(),
		loader:      ldr,
		journalFile: journalFile,
		sseClients:  make(map[chan string]struct{}),
	}
}

// Start loads the journal and serves the API until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("web.start %s:%d", s.Host, s.Port))
	defer timer.End()

	if s.journalFile == "" || s.journalFile == loader.Stdio {
		return fmt.Errorf("a journal file is required")
	}
	abs, err := filepath.Abs(s.journalFile)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	s.journalFile = abs

	loadTimer := timer.Child(fmt.Sprintf("web.load_journal %s", filepath.Base(abs)))
	err = s.reload(ctx)
	loadTimer.End()
	if err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}

	if s.WatchEnabled {
		go func() {
			err := loader.Watch(ctx, s.journalFile, func() { s.handleFileChange(ctx) }, func(err error) {
				s.Logger.Warn("file watcher error", "err", err)
			})
			if err != nil {
				s.Logger.Error("file watcher stopped", "err", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.Host, s.Port),
		Handler:           s.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) setupRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/source", s.handleGetSource)
	mux.HandleFunc("GET /api/accounts", s.requireLedger(s.handleGetAccounts))
	mux.HandleFunc("GET /api/balances", s.requireLedger(s.handleGetBalances))
	mux.HandleFunc("GET /api/suggest", s.requireLedger(s.handleGetSuggestion))
	mux.HandleFunc("GET /api/events", s.handleSSE)

	return mux
}

// ledgerHandler serves a request against the ledger loaded at that moment.
// A ledger is never modified once loaded, so it can be used without the lock.
type ledgerHandler func(w http.ResponseWriter, r *http.Request, l *ledger.Ledger)

// requireLedger rejects requests while the journal does not parse.
func (s *Server) requireLedger(next ledgerHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var l *ledger.Ledger
		s.mu.RLock()
		if s.file != nil {
			l = s.file.Ledger
		}
		s.mu.RUnlock()

		if l == nil {
			http.Error(w, "Journal has errors, see /api/source", http.StatusServiceUnavailable)
			return
		}
		next(w, r, l)
	}
}

// reload loads or reloads the journal from disk. A journal that fails to
// parse is kept together with its error; only read failures are returned.
// Caller must NOT hold the mutex.
func (s *Server) reload(ctx context.Context) error {
	file, err := s.loader.Load(ctx, s.journalFile)
	if file == nil {
		return err
	}

	s.mu.Lock()
	s.file = file
	s.loadErr = err
	s.mu.Unlock()

	if err != nil {
		s.Logger.Warn("journal has errors", "file", filepath.Base(s.journalFile), "err", err)
	}
	return nil
}

func (s *Server) handleFileChange(ctx context.Context) {
	if err := s.reload(ctx); err != nil {
		s.Logger.Error("failed to reload journal", "err", err)
		return
	}
	s.Logger.Debug("journal reloaded", "file", filepath.Base(s.journalFile))
	s.broadcast("reload")
}

// handleSSE handles Server-Sent Events connections for real-time updates.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
	}()

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}
