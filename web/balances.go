package web

import (
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/robinvdvleuten/ledger-import/ast"
	"github.com/robinvdvleuten/ledger-import/ledger"
)

// BalancesResponse is the JSON response structure for the balances endpoint.
type BalancesResponse struct {
	Balances    []AccountBalanceResponse `json:"balances"`
	Commodities []string                 `json:"commodities"`
}

// AccountBalanceResponse is the balance of a single account.
type AccountBalanceResponse struct {
	Account string            `json:"account"`
	Type    string            `json:"type"`
	Amounts map[string]string `json:"amounts"`
}

var accountTypes = []ledger.AccountType{
	ledger.AccountTypeAssets,
	ledger.AccountTypeLiabilities,
	ledger.AccountTypeEquity,
	ledger.AccountTypeIncome,
	ledger.AccountTypeExpenses,
}

// handleGetBalances handles GET requests to /api/balances.
//
// Query parameters:
//   - types: Comma-separated account types (Assets,Liabilities,Equity,Income,Expenses).
//     If omitted, returns all types.
//   - filter: Regular expression the account name must match.
//
// Amounts are decimal strings so no precision is lost.
func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request, l *ledger.Ledger) {
	var wanted map[ledger.AccountType]bool
	if typesParam := r.URL.Query().Get("types"); typesParam != "" {
		wanted = make(map[ledger.AccountType]bool)
		for _, t := range strings.Split(typesParam, ",") {
			accountType, ok := parseAccountType(strings.TrimSpace(t))
			if !ok {
				http.Error(w, "invalid account type: "+t, http.StatusBadRequest)
				return
			}
			wanted[accountType] = true
		}
	}

	var filter *regexp.Regexp
	if pattern := r.URL.Query().Get("filter"); pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			http.Error(w, "invalid filter: "+err.Error(), http.StatusBadRequest)
			return
		}
		filter = re
	}

	balances := l.Balances(filter)

	response := &BalancesResponse{
		Balances:    make([]AccountBalanceResponse, 0, len(balances)),
		Commodities: []string{},
	}
	seen := make(map[string]bool)

	for _, b := range balances {
		if wanted != nil && !wanted[b.Type] {
			continue
		}
		amounts := make(map[string]string)
		for _, entry := range b.Balance.Entries() {
			amounts[entry.Commodity] = ast.FormatDecimal(entry.Amount)
			if !seen[entry.Commodity] {
				seen[entry.Commodity] = true
				response.Commodities = append(response.Commodities, entry.Commodity)
			}
		}
		response.Balances = append(response.Balances, AccountBalanceResponse{
			Account: b.Account,
			Type:    b.Type.String(),
			Amounts: amounts,
		})
	}
	sort.Strings(response.Commodities)

	writeJSONResponse(w, response)
}

func parseAccountType(name string) (ledger.AccountType, bool) {
	for _, t := range accountTypes {
		if strings.EqualFold(t.String(), name) {
			return t, true
		}
	}
	return ledger.AccountTypeUnknown, false
}
