package ast

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CashUnit is the commodity assumed for postings written as "$QUANTITY".
const CashUnit = "$"

// DateLayout is the layout of transaction and price dates in a journal.
const DateLayout = "2006/01/02"

// Commodity declares a named tradeable unit such as a fund symbol.
//
// Example:
//
//	commodity VFIAX
type Commodity struct {
	Pos  Position
	Name string
}

// Price is a single observed value of a commodity at a date. Prices are point
// observations only; nothing interpolates between them.
//
// Example:
//
//	P 2016/04/14 VFIAX $192.28
type Price struct {
	Pos       Position
	Date      time.Time
	Commodity string
	Value     decimal.Decimal
}

// AccountRegEx suggests Account for transactions whose description matches
// Pattern. Rules live in comments so other ledger tools ignore them.
//
// Example:
//
//	; /^FairPoint/ Expenses:Utilities
type AccountRegEx struct {
	Pos     Position
	Account string
	Pattern *regexp.Regexp
}

// NewAccountRegEx compiles pattern into a rule for account.
func NewAccountRegEx(account, pattern string) (*AccountRegEx, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return &AccountRegEx{Account: account, Pattern: re}, nil
}

// Matches reports whether the rule applies to a description.
func (r *AccountRegEx) Matches(description string) bool {
	return r.Pattern.MatchString(description)
}

// FormatDecimal renders d keeping its exponent, so "188.9800" is not
// shortened to "188.98". Trailing zeros matter to the people reading the file.
func FormatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// ParseDecimal parses an amount written in a journal or bank export. Dollar
// signs, thousands separators and surrounding whitespace are ignored.
func ParseDecimal(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(s)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount %q", s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}
