package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSymbols(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		manual   string
		want     []string
	}{
		{name: "selected only", selected: []string{"IBM", "AAPL"}, want: []string{"IBM", "AAPL"}},
		{name: "manual appended", selected: []string{"IBM"}, manual: "amd, intc", want: []string{"IBM", "AMD", "INTC"}},
		{name: "duplicates and blanks dropped", selected: []string{"IBM", " "}, manual: "ibm,,AAPL ,", want: []string{"IBM", "AAPL"}},
		{name: "nothing", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSymbols(tt.selected, tt.manual))
		})
	}
}

func TestTickersKey(t *testing.T) {
	assert.Equal(t, "IBM", TickersKey("IBM"))
	assert.Equal(t, "IBM_AAPL", TickersKey("IBM, AAPL"))
}

func TestIsValidSymbol(t *testing.T) {
	for _, s := range []string{"IBM", "BRK.B", "CRYPTO:BTC", "IBM_AAPL", "RDS-A"} {
		assert.True(t, IsValidSymbol(s), s)
	}
	for _, s := range []string{"", "..", "../etc", "a/b", ".hidden", "IBM AAPL", "a..b"} {
		assert.False(t, IsValidSymbol(s), s)
	}
}
