// Package core provides money parsing and handling utilities.
//
// Amounts are stored as integer cents. Form input is parsed through
// shopspring/decimal so that "12.345" and "12,345" round the same way.
package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// maxAmountCents bounds parsed input so that percentage math on cents
// (part*100) cannot overflow int64.
const maxAmountCents = 1 << 50

// ParseAmount converts a decimal string to signed cents.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, an
// optional leading sign and an optional leading "$". The value is rounded
// half away from zero to two decimal places.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234, nil
//	ParseAmount("-12,34") -> -1234, nil
//	ParseAmount("1.005")  -> 101, nil
//	ParseAmount("abc")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	} else if strings.HasPrefix(s, "+") {
		s = strings.TrimSpace(s[1:])
	}
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.ContainsAny(s, "eE+-") {
		return Money{}, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Round(2).Shift(2)
	if cents.Abs().GreaterThan(decimal.NewFromInt(maxAmountCents)) {
		return Money{}, ErrInvalidAmount
	}
	c := cents.IntPart()
	if neg {
		c = -c
	}
	return Money{Cents: c}, nil
}

// Dollars builds a Money from a whole-dollar value. Used by fixtures.
func Dollars(v float64) Money {
	return Money{Cents: decimal.NewFromFloat(v).Round(2).Shift(2).IntPart()}
}

// Abs returns the magnitude of m.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

// Add returns m + o.
func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }

// Sub returns m - o.
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

// Float returns the dollar value for charts and display math.
// Use cents for calculations to avoid floating-point drift.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// String formats m as US dollars with thousands separators, e.g. "-$1,234.50".
func (m Money) String() string {
	return formatDollars(m.Cents, true)
}

// Whole formats m as whole US dollars, e.g. "$6,500". Cents are truncated.
func (m Money) Whole() string {
	return formatDollars(m.Cents, false)
}

func formatDollars(cents int64, withCents bool) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := groupThousands(strconv.FormatInt(cents/100, 10))
	s := "$" + whole
	if withCents {
		rem := cents % 100
		s += "." + strconv.FormatInt(rem/10, 10) + strconv.FormatInt(rem%10, 10)
	}
	if neg {
		return "-" + s
	}
	return s
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Percent returns part/whole*100. A zero whole yields 0 so templates never
// see NaN or Inf.
func Percent(part, whole Money) float64 {
	if whole.Cents == 0 {
		return 0
	}
	return float64(part.Cents) / float64(whole.Cents) * 100
}

// atLeastPercent reports part/whole*100 >= pct using integer math, so the
// threshold boundaries are exact. A non-positive whole counts as an
// unbounded ratio when part is positive and as zero otherwise.
func atLeastPercent(part, whole Money, pct int64) bool {
	if whole.Cents <= 0 {
		return part.Cents > 0
	}
	return part.Cents*100 >= whole.Cents*pct
}
