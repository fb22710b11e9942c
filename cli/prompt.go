package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/robinvdvleuten/ledger-import/ast"
	"github.com/robinvdvleuten/ledger-import/formatter"
)

// ErrImportAborted is returned when the user aborts the account prompt.
var ErrImportAborted = errors.New("import aborted")

// Prompter asks for the counter-account of an imported transaction. An
// empty account skips the transaction.
type Prompter interface {
	Account(txn *ast.Transaction, suggestion string, accounts []string) (string, error)
}

// FormPrompter asks on the terminal, completing known account names. An
// empty answer takes the suggestion; "-" skips the transaction.
type FormPrompter struct {
	Formatter *formatter.Formatter
}

func (p FormPrompter) Account(txn *ast.Transaction, suggestion string, accounts []string) (string, error) {
	var preview strings.Builder
	if err := p.Formatter.FormatTransaction(txn, &preview); err != nil {
		return "", err
	}

	title := "Counter-account"
	if suggestion != "" {
		title = fmt.Sprintf("Counter-account [%s]", suggestion)
	}

	var account string
	input := huh.NewInput().
		Title(title).
		Description(strings.TrimRight(preview.String(), "\n")).
		Placeholder(suggestion).
		Suggestions(accounts).
		Value(&account)

	if err := input.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrImportAborted
		}
		return "", fmt.Errorf("failed to read account: %w", err)
	}

	return resolveAnswer(account, suggestion), nil
}

func resolveAnswer(answer, suggestion string) string {
	switch answer = strings.TrimSpace(answer); answer {
	case "":
		return suggestion
	case "-":
		return ""
	default:
		return answer
	}
}

// SuggestionPrompter accepts every suggestion without asking, so
// transactions without one are skipped.
type SuggestionPrompter struct{}

func (SuggestionPrompter) Account(_ *ast.Transaction, suggestion string, _ []string) (string, error) {
	return suggestion, nil
}
