package currency

import (
	"strconv"

	"github.com/towfit/towbar-filter-service/config"
)

// Format renders a price for display: whole units only, grouped thousands,
// symbol on the configured side. A zero or negative-zero price renders as
// plain "0" with no symbol.
func Format(cfg config.CurrencyConfig, price float64) string {
	if price == 0 {
		return "0"
	}

	formatted := group(strconv.FormatInt(int64(price+0.5), 10), cfg.ThousandsSep)

	if cfg.Position == "after" {
		return formatted + cfg.Symbol
	}
	return cfg.Symbol + formatted
}

func group(digits, sep string) string {
	neg := false
	if len(digits) > 0 && digits[0] == '-' {
		neg = true
		digits = digits[1:]
	}

	n := len(digits)
	if n <= 3 || sep == "" {
		if neg {
			return "-" + digits
		}
		return digits
	}

	var out []byte
	head := n % 3
	if head > 0 {
		out = append(out, digits[:head]...)
	}
	for i := head; i < n; i += 3 {
		if len(out) > 0 {
			out = append(out, sep...)
		}
		out = append(out, digits[i:i+3]...)
	}

	if neg {
		return "-" + string(out)
	}
	return string(out)
}
