package accrual_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accruemind/accrual-engine/accrual"
)

func TestFormatMagnitude(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "$0.0"},
		{999, "$999.0"},
		{1000, "$1.0 K"},
		{11000, "$11.0 K"},
		{2500000, "$2.5 MM"},
		{7.25e9, "$7.3 B"},
		{3e12, "$3.0 T"},
		{1.5e15, "$1,500.0 T"},
		{12.345, "$12.3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, accrual.FormatMagnitude(tt.value), "value %v", tt.value)
	}
}

func TestFormatMagnitude_NegativeStaysPlain(t *testing.T) {
	assert.Equal(t, "$-1,500.0", accrual.FormatMagnitude(-1500))
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		value float64
		loc   accrual.Locale
		want  string
	}{
		{11000, accrual.LocaleEN, "$11,000.00"},
		{1126.825030131969, accrual.LocaleEN, "$1,126.83"},
		{0.005, accrual.LocaleEN, "$0.01"},
		{-250.5, accrual.LocaleEN, "$-250.50"},
		{1234567.891, accrual.LocaleDE, "$1.234.567,89"},
		{1234567.891, accrual.LocaleFR, "$1 234 567,89"},
		{2e20, accrual.LocaleEN, "$200,000,000,000,000,000,000.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, accrual.FormatCurrency(tt.value, tt.loc), "value %v", tt.value)
	}
}

func TestFormatCurrency_NonFinite(t *testing.T) {
	assert.Equal(t, "$NaN", accrual.FormatCurrency(math.NaN(), accrual.LocaleEN))
	assert.Equal(t, "$∞", accrual.FormatCurrency(math.Inf(1), accrual.LocaleEN))
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "5,000", accrual.FormatWithCommas(5000, accrual.LocaleEN))
	assert.Equal(t, "1,234.5", accrual.FormatWithCommas(1234.5, accrual.LocaleEN))
	assert.Equal(t, "0.12", accrual.FormatWithCommas(0.123, accrual.LocaleEN))
	assert.Equal(t, "1.234,5", accrual.FormatWithCommas(1234.5, accrual.LocaleDE))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		loc  accrual.Locale
		want float64
	}{
		{"5,000", accrual.LocaleEN, 5000},
		{"$1,234.56", accrual.LocaleEN, 1234.56},
		{"  42 ", accrual.LocaleEN, 42},
		{"", accrual.LocaleEN, 0},
		{"-3.5", accrual.LocaleEN, -3.5},
		{"1.234,5", accrual.LocaleDE, 1234.5},
	}

	for _, tt := range tests {
		got, err := accrual.ParseAmount(tt.in, tt.loc)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "12abc", "NaN", "1e400"} {
		got, err := accrual.ParseAmount(in, accrual.LocaleEN)
		assert.Error(t, err, "input %q", in)
		assert.Equal(t, 0.0, got)
	}
}

func TestParseAmount_RoundTripsFormatWithCommas(t *testing.T) {
	for _, v := range []float64{0, 1, 999.99, 5000, 1234567.5} {
		got, err := accrual.ParseAmount(accrual.FormatWithCommas(v, accrual.LocaleEN), accrual.LocaleEN)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestCents(t *testing.T) {
	assert.Equal(t, "1126.83", accrual.Cents(1126.825030131969).String())
	assert.Equal(t, "11000", accrual.Cents(11000).String())
	assert.True(t, accrual.Cents(math.NaN()).IsZero())
}
