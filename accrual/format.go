/*
format.go - Number display and parsing

PURPOSE:
  Two deliberately different formatters:

    FormatMagnitude  compact axis labels, one decimal ("$2.5 MM")
    FormatCurrency   authoritative value, two decimals ("$1,126.83")

  The axis formatter is lossy and must never be used where the user reads
  an exact amount (headline balance, tooltips, tables).

ROUNDING:
  Values are rounded half away from zero through shopspring/decimal, so
  display never suffers from binary artifacts like 0.1+0.2. Grouping of the
  integer part uses go-humanize, which works on big.Int and stays correct
  above the int64 range.

LOCALES:
  A Locale only carries separators. Currency symbol and its position stay
  "$" prefix in every locale.
*/
package accrual

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Locale holds digit separators for display.
type Locale struct {
	Thousands string
	Decimal   string
}

var (
	LocaleEN = Locale{Thousands: ",", Decimal: "."}
	LocaleDE = Locale{Thousands: ".", Decimal: ","}
	LocaleFR = Locale{Thousands: " ", Decimal: ","}
	LocaleIT = Locale{Thousands: ".", Decimal: ","}
)

type magnitude struct {
	threshold float64
	suffix    string
}

var magnitudes = []magnitude{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "MM"},
	{1e3, "K"},
}

// FormatMagnitude renders an axis label. Values of at least one thousand
// are scaled and suffixed (T, B, MM, K) with one decimal; smaller values
// keep one decimal with thousands grouping.
func FormatMagnitude(v float64) string {
	for _, m := range magnitudes {
		if v >= m.threshold {
			return "$" + fixed(v/m.threshold, 1, LocaleEN) + " " + m.suffix
		}
	}
	return "$" + fixed(v, 1, LocaleEN)
}

// FormatCurrency renders v with exactly two decimals.
func FormatCurrency(v float64, loc Locale) string {
	return "$" + fixed(v, 2, loc)
}

// FormatWithCommas renders v for an input box: grouped, at most two
// decimals, no trailing zeros.
func FormatWithCommas(v float64, loc Locale) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	d := decimal.NewFromFloat(v).Round(2)
	neg := d.IsNegative()
	d = d.Abs()

	intPart := d.Truncate(0)
	out := group(intPart, loc)
	if frac := d.Sub(intPart); !frac.IsZero() {
		out += loc.Decimal + strings.TrimPrefix(frac.String(), "0.")
	}
	if neg {
		out = "-" + out
	}
	return out
}

// ParseAmount strips grouping separators, spaces and a leading "$" before
// parsing. An empty string is zero.
func ParseAmount(s string, loc Locale) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	if loc.Thousands != "" {
		s = strings.ReplaceAll(s, loc.Thousands, "")
	}
	if loc.Decimal != "" && loc.Decimal != "." {
		s = strings.ReplaceAll(s, loc.Decimal, ".")
	}
	if s == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	v := d.InexactFloat64()
	if math.IsInf(v, 0) {
		return 0, ErrNonFinite
	}
	return v, nil
}

// fixed formats v with exactly places decimals.
func fixed(v float64, places int32, loc Locale) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	d := decimal.NewFromFloat(v).Round(places)
	neg := d.IsNegative()
	d = d.Abs()

	intPart := d.Truncate(0)
	out := group(intPart, loc)
	if places > 0 {
		frac := d.Sub(intPart).StringFixed(places)
		out += loc.Decimal + strings.TrimPrefix(frac, "0.")
	}
	if neg {
		out = "-" + out
	}
	return out
}

func group(intPart decimal.Decimal, loc Locale) string {
	s := humanize.BigComma(intPart.BigInt())
	if loc.Thousands != "," {
		s = strings.ReplaceAll(s, ",", loc.Thousands)
	}
	return s
}

func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return "∞", true
	case math.IsInf(v, -1):
		return "-∞", true
	}
	return "", false
}

// Cents rounds v to two decimals for display and JSON. Non-finite values
// become zero.
func Cents(v float64) decimal.Decimal {
	if _, bad := nonFinite(v); bad {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(2)
}
