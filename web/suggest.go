package web

import (
	"net/http"
	"time"

	"github.com/robinvdvleuten/ledger-import/ast"
	"github.com/robinvdvleuten/ledger-import/ledger"
)

// SuggestionResponse is the JSON response structure for the suggest endpoint.
type SuggestionResponse struct {
	Description string `json:"description"`
	Suggestion  string `json:"suggestion,omitempty"`
	Found       bool   `json:"found"`
}

// handleGetSuggestion handles GET requests to /api/suggest.
//
// Query parameters:
//   - description: Transaction description to find a counter-account for.
//   - account: Account the transaction is imported into. It is never
//     suggested.
func (s *Server) handleGetSuggestion(w http.ResponseWriter, r *http.Request, l *ledger.Ledger) {
	description := r.URL.Query().Get("description")
	if description == "" {
		http.Error(w, "description is required", http.StatusBadRequest)
		return
	}

	txn := ast.NewTransaction(time.Now(), description)
	if account := r.URL.Query().Get("account"); account != "" {
		txn.Postings = append(txn.Postings, ast.NewPosting(account))
	}

	suggestion, found := l.Suggest(txn)

	writeJSONResponse(w, &SuggestionResponse{
		Description: description,
		Suggestion:  suggestion,
		Found:       found,
	})
}
