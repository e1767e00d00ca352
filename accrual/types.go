/*
types.go - Core value types for the accrual engine

PURPOSE:
  Defines the six scalar inputs of a compound growth plan and the sampled
  chart points produced from them. Everything here is a plain value: no
  identity, no persistence, no hidden state.

FREQUENCIES:
  A Frequency is a count of events per year. The named values cover the
  options offered in the calculator UI, but the engine accepts any positive
  integer:

    Annually      1
    SemiAnnually  2
    Quarterly     4
    Monthly      12
    Daily       365

  JSON accepts either the number or a name ("monthly", "semi-annually").

SEE ALSO:
  - engine.go: Accrue and BuildSeries
  - errors.go: Validate / Warnings for boundary checks
*/
package accrual

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// FREQUENCY
// =============================================================================

// Frequency is a number of events per year.
type Frequency int

const (
	Annually     Frequency = 1
	SemiAnnually Frequency = 2
	Quarterly    Frequency = 4
	Monthly      Frequency = 12
	Daily        Frequency = 365
)

// Frequencies lists the named frequencies in the order the UI shows them.
var Frequencies = []Frequency{Annually, SemiAnnually, Quarterly, Monthly, Daily}

var frequencyNames = map[Frequency]string{
	Annually:     "annually",
	SemiAnnually: "semi-annually",
	Quarterly:    "quarterly",
	Monthly:      "monthly",
	Daily:        "daily",
}

var frequencyLabels = map[Frequency]string{
	Annually:     "Annually",
	SemiAnnually: "Semi-Annually",
	Quarterly:    "Quarterly",
	Monthly:      "Monthly",
	Daily:        "Daily",
}

// String returns the lowercase name, or "<n>/yr" for unnamed values.
func (f Frequency) String() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("%d/yr", int(f))
}

// Label is the human readable name used in select boxes.
func (f Frequency) Label() string {
	if label, ok := frequencyLabels[f]; ok {
		return label
	}
	return fmt.Sprintf("%d times a year", int(f))
}

// Divides reports whether f evenly divides c.
func (f Frequency) Divides(c Frequency) bool {
	return f > 0 && c > 0 && int(c)%int(f) == 0
}

// ParseFrequency accepts a name ("monthly", "Semi-Annually", "semiannually")
// or a decimal integer.
func ParseFrequency(s string) (Frequency, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidFrequency)
	}
	for f, name := range frequencyNames {
		if s == name || s == strings.ReplaceAll(name, "-", "") {
			return f, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}
	return Frequency(n), nil
}

// MarshalJSON always writes the number.
func (f Frequency) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(f))), nil
}

// UnmarshalJSON accepts a number, a numeric string or a frequency name.
func (f *Frequency) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = Frequency(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFrequency, string(data))
	}
	parsed, err := ParseFrequency(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// =============================================================================
// INPUTS
// =============================================================================

// Inputs is the complete, immutable parameter set of one calculation.
type Inputs struct {
	Principal            float64   `json:"principal"`
	AnnualRatePercent    float64   `json:"annual_rate_percent"`
	Years                float64   `json:"years"`
	CompoundsPerYear     Frequency `json:"compounds_per_year"`
	ContributionAmount   float64   `json:"contribution_amount"`
	ContributionsPerYear Frequency `json:"contributions_per_year"`
}

// DefaultInputs returns the values the calculator page starts with.
func DefaultInputs() Inputs {
	return Inputs{
		Principal:            5000,
		AnnualRatePercent:    0,
		Years:                5,
		CompoundsPerYear:     Monthly,
		ContributionAmount:   100,
		ContributionsPerYear: Monthly,
	}
}

// WithYears returns a copy of in with a different horizon.
func (in Inputs) WithYears(years float64) Inputs {
	in.Years = years
	return in
}

// Key identifies the full input tuple. Two Inputs with equal keys produce
// bit-identical results.
func (in Inputs) Key() string {
	parts := []string{
		strconv.FormatFloat(in.Principal, 'g', -1, 64),
		strconv.FormatFloat(in.AnnualRatePercent, 'g', -1, 64),
		strconv.FormatFloat(in.Years, 'g', -1, 64),
		strconv.Itoa(int(in.CompoundsPerYear)),
		strconv.FormatFloat(in.ContributionAmount, 'g', -1, 64),
		strconv.Itoa(int(in.ContributionsPerYear)),
	}
	return strings.Join(parts, "|")
}

// =============================================================================
// SERIES
// =============================================================================

// SamplePoint is one point on the growth chart.
type SamplePoint struct {
	YearOffset      int     `json:"year_offset"`
	TotalValue      float64 `json:"total_value"`
	PrincipalToDate float64 `json:"principal_to_date"`
}

// Series holds the start, midpoint and end of a horizon, in that order.
type Series [3]SamplePoint

// Offsets returns the year offsets of all points.
func (s Series) Offsets() []int {
	return []int{s[0].YearOffset, s[1].YearOffset, s[2].YearOffset}
}
