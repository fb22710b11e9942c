package parser

import (
	"regexp"
	"strings"
)

// LineKind identifies the shape of a single journal line.
type LineKind int

const (
	AccountLine LineKind = iota
	CommodityLine
	PriceLine
	RegexRuleLine
	CommentLine
	HeaderLine
	PostingLine
	BlankLine
)

var lineKindNames = [...]string{
	AccountLine:   "account",
	CommodityLine: "commodity",
	PriceLine:     "price",
	RegexRuleLine: "regex rule",
	CommentLine:   "comment",
	HeaderLine:    "header",
	PostingLine:   "posting",
	BlankLine:     "blank",
}

func (k LineKind) String() string {
	if k < 0 || int(k) >= len(lineKindNames) {
		return "unknown"
	}
	return lineKindNames[k]
}

// Line is a classified journal line. Text is the line with trailing
// whitespace removed.
type Line struct {
	Kind LineKind
	Text string
}

var (
	regexRuleRe = regexp.MustCompile(`^\s*;.*/.+/`)
	commentRe   = regexp.MustCompile(`^\s*;`)
	postingRe   = regexp.MustCompile(`^\s+\S`)
)

// classifiers are tried in order; the first match wins.
var classifiers = []struct {
	kind  LineKind
	match func(string) bool
}{
	{AccountLine, prefix("account")},
	{CommodityLine, prefix("commodity")},
	{PriceLine, prefix("P ")},
	{RegexRuleLine, regexRuleRe.MatchString},
	{CommentLine, commentRe.MatchString},
	{HeaderLine, func(s string) bool { return s != "" && s[0] >= '0' && s[0] <= '9' }},
	{PostingLine, postingRe.MatchString},
	{BlankLine, func(s string) bool { return strings.TrimSpace(s) == "" }},
}

func prefix(p string) func(string) bool {
	return func(s string) bool { return strings.HasPrefix(s, p) }
}

// Classify determines the kind of a single line. A line matching none of the
// known shapes yields a *ParseError wrapping ErrMalformedLine.
func Classify(line string) (Line, error) {
	text := strings.TrimRight(line, " \t\r\n")
	for _, c := range classifiers {
		if c.match(text) {
			return Line{Kind: c.kind, Text: text}, nil
		}
	}
	return Line{}, newParseError(text, ErrMalformedLine)
}
