package currency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/towfit/towbar-filter-service/config"
	"github.com/towfit/towbar-filter-service/internal/currency"
)

func baht() config.CurrencyConfig {
	return config.CurrencyConfig{
		Symbol:       "฿",
		Position:     "before",
		ThousandsSep: ",",
		DecimalSep:   ".",
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  string
	}{
		{"zero renders bare", 0, "0"},
		{"no grouping under a thousand", 950, "฿950"},
		{"single group", 6500, "฿6,500"},
		{"two groups", 1234567, "฿1,234,567"},
		{"boundary", 1000, "฿1,000"},
		{"decimals rounded off", 6500.75, "฿6,501"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, currency.Format(baht(), tt.price))
		})
	}
}

func TestFormat_SymbolAfter(t *testing.T) {
	cfg := baht()
	cfg.Position = "after"
	assert.Equal(t, "6,500฿", currency.Format(cfg, 6500))
}

func TestFormat_NoSeparator(t *testing.T) {
	cfg := baht()
	cfg.ThousandsSep = ""
	assert.Equal(t, "฿1234567", currency.Format(cfg, 1234567))
}
