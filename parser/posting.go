package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/ledger-import/ast"
)

// postingSyntax is one of the ways a posting line may be written. The order of
// postingSyntaxes matters: "@" is checked before the cash unit, which is
// checked before a double-space separated amount.
type postingSyntax struct {
	name  string
	match func(text, cashUnit string) bool
	parse func(text, cashUnit string) (*ast.Posting, error)
}

var postingSyntaxes = []postingSyntax{
	{
		name:  "priced",
		match: func(text, _ string) bool { return strings.Contains(text, "@") },
		parse: parsePricedPosting,
	},
	{
		name:  "cash",
		match: func(text, cashUnit string) bool { return strings.Contains(text, cashUnit) },
		parse: parseCashPosting,
	},
	{
		name:  "commodity",
		match: func(text, _ string) bool { return amountSeparatorRe.MatchString(text) },
		parse: parseCommodityPosting,
	},
	{
		name:  "bare",
		match: func(string, string) bool { return true },
		parse: func(text, cashUnit string) (*ast.Posting, error) {
			p := ast.NewPosting(text)
			p.Commodity = cashUnit
			return p, nil
		},
	},
}

var amountSeparatorRe = regexp.MustCompile(`\S(?: {2,}|\t)\s*\S`)

// ParsePosting reads a single posting line. Leading and trailing whitespace is
// ignored. An empty cashUnit means ast.CashUnit.
//
// Recognized forms, in priority order:
//
//	Assets:Wells Fargo:401(k)  -0.0210 VFIAX @ $188.9800
//	Assets:NECU:Checking  $-68.47
//	Assets:NECU:Checking  -$68.47
//	Assets:Vanguard:IRA  12.5 VTIVX
//	Expenses:Utilities
func ParsePosting(line, cashUnit string) (*ast.Posting, error) {
	if cashUnit == "" {
		cashUnit = ast.CashUnit
	}
	text := strings.TrimSpace(line)
	if text == "" {
		return nil, newParseError(line, ErrMalformedLine)
	}
	for _, syntax := range postingSyntaxes {
		if !syntax.match(text, cashUnit) {
			continue
		}
		p, err := syntax.parse(text, cashUnit)
		if err != nil {
			return nil, newParseError(line, fmt.Errorf("%w: %s posting: %v", ErrMalformedLine, syntax.name, err))
		}
		return p, nil
	}
	return nil, newParseError(line, ErrMalformedLine)
}

func parsePricedPosting(text, cashUnit string) (*ast.Posting, error) {
	text = strings.ReplaceAll(text, cashUnit+" ", cashUnit)
	tokens := strings.Fields(text)
	n := len(tokens)
	if n < 5 || tokens[n-2] != "@" {
		return nil, fmt.Errorf("expected QUANTITY COMMODITY @ %sPRICE", cashUnit)
	}

	quantity, err := parseAmount(tokens[n-4], cashUnit)
	if err != nil {
		return nil, err
	}
	price, err := parseAmount(tokens[n-1], cashUnit)
	if err != nil {
		return nil, err
	}

	return ast.NewPosting(strings.Join(tokens[:n-4], " "),
		ast.WithCommodity(quantity, tokens[n-3]),
		ast.WithUnitPrice(price),
	), nil
}

func parseCashPosting(text, cashUnit string) (*ast.Posting, error) {
	account, amount, _ := strings.Cut(text, cashUnit)
	account = strings.TrimSpace(account)

	// A sign may stand in front of the unit, as in "-$68.47".
	var negate bool
	if fields := strings.Fields(account); len(fields) > 0 {
		if sign := fields[len(fields)-1]; sign == "-" || sign == "+" {
			negate = sign == "-"
			account = strings.TrimSpace(strings.TrimSuffix(account, sign))
		}
	}
	if account == "" {
		return nil, fmt.Errorf("missing account")
	}
	if amountSeparatorRe.MatchString(account) {
		fields := strings.Fields(account)
		return nil, fmt.Errorf("unexpected %q in front of %s", fields[len(fields)-1], cashUnit)
	}

	quantity, err := parseAmount(amount, cashUnit)
	if err != nil {
		return nil, err
	}
	if negate {
		if quantity.IsNegative() {
			return nil, fmt.Errorf("sign given twice")
		}
		quantity = quantity.Neg()
	}

	p := ast.NewPosting(account, ast.WithCash(quantity))
	p.Commodity = cashUnit
	return p, nil
}

func parseCommodityPosting(text, cashUnit string) (*ast.Posting, error) {
	tokens := strings.Fields(text)
	n := len(tokens)
	if n < 3 {
		return nil, fmt.Errorf("expected QUANTITY COMMODITY")
	}

	quantity, err := parseAmount(tokens[n-2], cashUnit)
	if err != nil {
		return nil, err
	}

	return ast.NewPosting(strings.Join(tokens[:n-2], " "),
		ast.WithCommodity(quantity, tokens[n-1]),
	), nil
}

func parseAmount(s, cashUnit string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, cashUnit, "")
	return ast.ParseDecimal(s)
}
