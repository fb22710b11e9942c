package web

import (
	"net/http"

	"github.com/robinvdvleuten/ledger-import/ledger"
)

// AccountInfo represents basic information about a journal account.
type AccountInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// AccountsResponse is the JSON response structure for the accounts endpoint.
type AccountsResponse struct {
	Accounts []AccountInfo `json:"accounts"`
}

// handleGetAccounts handles GET requests to /api/accounts.
// Returns all accounts of the journal, sorted alphabetically by name.
func (s *Server) handleGetAccounts(w http.ResponseWriter, r *http.Request, l *ledger.Ledger) {
	names := l.AccountNames()
	accounts := make([]AccountInfo, 0, len(names))
	for _, name := range names {
		accounts = append(accounts, AccountInfo{
			Name: name,
			Type: ledger.ParseAccountType(name).String(),
		})
	}

	writeJSONResponse(w, &AccountsResponse{Accounts: accounts})
}
