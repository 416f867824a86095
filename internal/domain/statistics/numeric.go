// Package statistics turns a journal's entries and checklist answers into the
// aggregate performance report. Everything here is pure: callers load the data,
// the package never touches storage and never mutates its inputs.
package statistics

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/trading-journal-backend/internal/domain/entry"
)

var hundred = decimal.NewFromInt(100)

// maxExponent bounds the decimal exponent of a coerced value. Arithmetic on
// decimals rescales through powers of ten, so an unbounded exponent stalls every sum.
const maxExponent = 64

// Number is a coerced numeric field, either a decimal value or absent
type Number struct {
	value decimal.Decimal
	valid bool
}

// Coerce parses a stored numeric field. Anything that does not parse as a number,
// or whose exponent is out of range, is absent.
func Coerce(raw entry.Numeric) Number {
	text, ok := raw.Raw()
	if !ok {
		return Number{}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return Number{}
	}
	if exp := d.Exponent(); exp < -maxExponent || exp > maxExponent {
		return Number{}
	}
	return Number{value: d, valid: true}
}

// Get returns the value and whether it is present
func (n Number) Get() (decimal.Decimal, bool) {
	return n.value, n.valid
}

// IsAbsent reports whether the field was missing or unparseable
func (n Number) IsAbsent() bool {
	return !n.valid
}

// round rounds half away from zero and converts for reporting
func round(d decimal.Decimal, places int32) float64 {
	return d.Round(places).InexactFloat64()
}

func percentage(part, whole int) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(whole)))
}

func mean(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}
