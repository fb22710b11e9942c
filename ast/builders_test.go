package ast

import (
	"regexp"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestNewDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		month   time.Month
		day     int
		wantErr bool
	}{
		{"Valid", "2016/03/20", time.March, 20, false},
		{"LeapYear", "2016/02/29", time.February, 29, false},
		{"Invalid", "2016/13/01", 0, 0, true},
		{"ISOFormat", "2016-03-20", 0, 0, true},
		{"Empty", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := NewDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 2016, date.Year())
			assert.Equal(t, tt.month, date.Month())
			assert.Equal(t, tt.day, date.Day())
		})
	}
}

func TestNewPosting(t *testing.T) {
	t.Run("Bare", func(t *testing.T) {
		p := NewPosting("Expenses:Utilities")
		assert.Equal(t, "Expenses:Utilities", p.Account)
		assert.True(t, p.Quantity == nil)
		assert.True(t, p.IsCash(CashUnit))
		assert.True(t, p.IsCash("€"))
	})

	t.Run("Cash", func(t *testing.T) {
		p := NewPosting("Assets:NECU:Checking", WithCash(decimal.RequireFromString("-68.47")))
		assert.Equal(t, "-68.47", FormatDecimal(*p.Quantity))
		assert.Equal(t, CashUnit, p.Commodity)
		assert.True(t, p.IsCash(CashUnit))
		assert.False(t, p.IsCash("€"))
	})

	t.Run("CommodityWithUnitPrice", func(t *testing.T) {
		p := NewPosting("Assets:Wells Fargo:401(k)",
			WithCommodity(decimal.RequireFromString("-0.0210"), "VFIAX"),
			WithUnitPrice(decimal.RequireFromString("188.9800")),
		)
		assert.Equal(t, "VFIAX", p.Commodity)
		assert.False(t, p.IsCash(CashUnit))
		assert.Equal(t, "188.9800", FormatDecimal(*p.UnitPrice))
	})
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"188.9800", "188.9800"},
		{"-0.0210", "-0.0210"},
		{"0", "0"},
		{"0.00", "0.00"},
		{"100", "100"},
		{"-68.47", "-68.47"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDecimal(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal("$1,234.56")
	assert.NoError(t, err)
	assert.Equal(t, "1234.56", FormatDecimal(d))

	d, err = ParseDecimal(" -68.47 ")
	assert.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("-68.47")))

	_, err = ParseDecimal("$")
	assert.Error(t, err)

	_, err = ParseDecimal("12.x")
	assert.Error(t, err)
}

func TestAccountRegEx(t *testing.T) {
	r, err := NewAccountRegEx("Expenses:Utilities", "^FairPoint")
	assert.NoError(t, err)
	assert.True(t, r.Matches("FairPoint Communi Bill Pmt W/D"))
	assert.False(t, r.Matches("Shell Oil"))
	assert.Equal(t, regexp.MustCompile("^FairPoint").String(), r.Pattern.String())

	_, err = NewAccountRegEx("Expenses:Utilities", "(")
	assert.Error(t, err)
}
