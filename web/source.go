package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	errfmt "github.com/robinvdvleuten/ledger-import/errors"
)

// writeJSONResponse writes a JSON response to the http.ResponseWriter.
// If encoding fails, it writes an error response.
func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type SourceResponse struct {
	Filepath string             `json:"filepath"`
	Source   string             `json:"source"`
	Errors   []errfmt.ErrorJSON `json:"errors"`
}

// validateFilepath checks that path names the served journal once symlinks
// are resolved.
func (s *Server) validateFilepath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid filepath: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return fmt.Errorf("access denied: invalid path")
	}
	journal, err := filepath.EvalSymlinks(s.journalFile)
	if err != nil {
		return fmt.Errorf("access denied: invalid path")
	}

	if resolved != journal {
		return fmt.Errorf("access denied: only %s is served", filepath.Base(s.journalFile))
	}
	return nil
}

// handleGetSource handles GET requests to /api/source.
// Returns the journal as last loaded together with its parse error and
// duplicate warnings.
func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	if path := r.URL.Query().Get("filepath"); path != "" {
		if err := s.validateFilepath(path); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.file == nil {
		http.Error(w, "Journal not loaded", http.StatusServiceUnavailable)
		return
	}

	var errs []error
	if s.loadErr != nil {
		errs = append(errs, s.loadErr)
	}
	if s.file.Ledger != nil {
		for _, warning := range s.file.Ledger.Warnings() {
			errs = append(errs, warning)
		}
	}

	writeJSONResponse(w, &SourceResponse{
		Filepath: s.journalFile,
		Source:   string(s.file.Source),
		Errors:   errfmt.NewJSONFormatter().FormatAllToSlice(errs),
	})
}
