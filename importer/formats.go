package importer

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// NECU checking exports list the newest row first and carry an unsigned
// amount with a DR/CR column.
var NECU = Format{
	Name:              "necu",
	Account:           "Assets:NECU:Checking",
	HeaderFields:      []string{"Account Designator"},
	Reverse:           true,
	DateColumn:        1,
	DateLayout:        "1/2/06",
	DescriptionColumn: 3,
	Amount:            DirectedAmount{Column: 4, DirectionColumn: 5, Debit: "DR"},
}

// USBank credit card exports carry signed amounts with up to four decimals.
var USBank = Format{
	Name:              "usbank",
	Account:           "Liabilities:Credit Cards:U.S. Bank",
	HeaderFields:      []string{"Date"},
	DateColumn:        0,
	DateLayout:        "1/2/2006",
	DescriptionColumn: 2,
	Amount:            SignedAmount{Column: 4, TrimZeros: true},
}

// Ally exports are shared by several accounts, so the account always comes
// from configuration.
var Ally = Format{
	Name:              "ally",
	HeaderFields:      []string{"Date"},
	Reverse:           true,
	DateColumn:        0,
	DateLayout:        "2006-01-02",
	DescriptionColumn: 4,
	Amount:            SignedAmount{Column: 2},
}

// Kennebunk exports split withdrawals and deposits over two columns.
var Kennebunk = Format{
	Name:              "kennebunk",
	Account:           "Assets:Kennebunk:Checking",
	HeaderFields:      []string{"Account"},
	Reverse:           true,
	DateColumn:        5,
	DateLayout:        "1/2/2006",
	DescriptionColumn: 6,
	Amount:            SplitAmount{Debit: 2, Credit: 3},
}

var formats = map[string]Format{
	NECU.Name:      NECU,
	USBank.Name:    USBank,
	Ally.Name:      Ally,
	Kennebunk.Name: Kennebunk,
}

// Lookup returns the format registered under name.
func Lookup(name string) (Format, bool) {
	f, ok := formats[name]
	return f, ok
}

// Names returns the registered format names, sorted.
func Names() []string {
	names := maps.Keys(formats)
	slices.Sort(names)
	return names
}
