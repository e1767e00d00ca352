/*
errors.go - Input validation errors

PURPOSE:
  The engine itself never fails: it is total over finite input. These
  errors exist for the boundary (HTTP forms, JSON plans) which decides
  whether to reject bad input or coerce it to safe values.

ERROR CATEGORIES:
  1. Hard problems (Problems / Validate) - the input is outside the
     domain the engine is meant for: non-finite numbers, negative
     principal, negative horizon, non-positive frequency.
  2. Warnings - the input is valid but the result may surprise the user.
     A contribution frequency that does not divide the compounding
     frequency is the only one today.

USAGE:
  if err := in.Validate(); err != nil {
      var ie *accrual.InputError
      if errors.As(err, &ie) { ... ie.Field ... }
  }
*/
package accrual

import (
	"errors"
	"fmt"
	"math"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	ErrNonFinite            = errors.New("value must be a finite number")
	ErrNegativePrincipal    = errors.New("principal must not be negative")
	ErrNegativeYears        = errors.New("years must not be negative")
	ErrNegativeContribution = errors.New("contribution must not be negative")
	ErrInvalidFrequency     = errors.New("frequency must be a positive integer")
	ErrHorizonTooLong       = errors.New("horizon has too many compounding periods")
	ErrOverflow             = errors.New("balance grows beyond the representable range")

	// ErrDegenerateFrequency marks a contribution frequency that does not
	// divide the compounding frequency.
	ErrDegenerateFrequency = errors.New("contribution frequency does not divide compounding frequency")
)

// MaxPeriods bounds the loop length accepted by Validate: 200 years of
// daily compounding.
const MaxPeriods = 200 * int64(Daily)

// Field names used in InputError.Field. They match the form and JSON names.
const (
	FieldPrincipal            = "principal"
	FieldRate                 = "annual_rate_percent"
	FieldYears                = "years"
	FieldCompoundsPerYear     = "compounds_per_year"
	FieldContributionAmount   = "contribution_amount"
	FieldContributionsPerYear = "contributions_per_year"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// InputError reports one field that failed validation.
type InputError struct {
	Field string
	Value float64
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %v (got %v)", e.Field, e.Err, e.Value)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// DegenerateFrequencyError is a warning, not a failure: the engine still
// computes a result by spreading contributions evenly across the year.
type DegenerateFrequencyError struct {
	CompoundsPerYear     Frequency
	ContributionsPerYear Frequency
}

func (e *DegenerateFrequencyError) Error() string {
	return fmt.Sprintf("contributions %s do not line up with compounding %s; they are spread evenly over each year",
		e.ContributionsPerYear, e.CompoundsPerYear)
}

func (e *DegenerateFrequencyError) Unwrap() error {
	return ErrDegenerateFrequency
}

// =============================================================================
// VALIDATION
// =============================================================================

// Problems returns every hard violation in in, in field order.
func (in Inputs) Problems() []*InputError {
	var problems []*InputError
	add := func(field string, v float64, err error) {
		problems = append(problems, &InputError{Field: field, Value: v, Err: err})
	}

	finite := func(field string, v float64) bool {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			add(field, v, ErrNonFinite)
			return false
		}
		return true
	}

	if finite(FieldPrincipal, in.Principal) && in.Principal < 0 {
		add(FieldPrincipal, in.Principal, ErrNegativePrincipal)
	}
	finite(FieldRate, in.AnnualRatePercent)
	if finite(FieldYears, in.Years) && in.Years < 0 {
		add(FieldYears, in.Years, ErrNegativeYears)
	}
	if in.CompoundsPerYear <= 0 {
		add(FieldCompoundsPerYear, float64(in.CompoundsPerYear), ErrInvalidFrequency)
	}
	if finite(FieldContributionAmount, in.ContributionAmount) && in.ContributionAmount < 0 {
		add(FieldContributionAmount, in.ContributionAmount, ErrNegativeContribution)
	}
	if in.ContributionsPerYear <= 0 {
		add(FieldContributionsPerYear, float64(in.ContributionsPerYear), ErrInvalidFrequency)
	}

	if len(problems) == 0 && Periods(in) > MaxPeriods {
		add(FieldYears, in.Years, ErrHorizonTooLong)
	}
	return problems
}

// Validate joins Problems into a single error, or returns nil.
func (in Inputs) Validate() error {
	problems := in.Problems()
	if len(problems) == 0 {
		return nil
	}
	errs := make([]error, len(problems))
	for i, p := range problems {
		errs[i] = p
	}
	return errors.Join(errs...)
}

// Warnings returns non-fatal observations about in.
func (in Inputs) Warnings() []error {
	if in.CompoundsPerYear <= 0 || in.ContributionsPerYear <= 0 || in.ContributionAmount == 0 {
		return nil
	}
	if in.ContributionsPerYear.Divides(in.CompoundsPerYear) {
		return nil
	}
	return []error{&DegenerateFrequencyError{
		CompoundsPerYear:     in.CompoundsPerYear,
		ContributionsPerYear: in.ContributionsPerYear,
	}}
}

// MaxYears is the longest horizon Validate accepts for compounds per year c.
func MaxYears(c Frequency) float64 {
	if c <= 0 {
		return 0
	}
	return math.Floor(float64(MaxPeriods) / float64(c))
}
