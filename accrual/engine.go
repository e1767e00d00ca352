/*
engine.go - Discrete compound growth with periodic contributions

PURPOSE:
  Accrue computes the balance after a horizon of compounding periods.
  BuildSeries samples it at three points for the chart.

ALGORITHM:
  c = compounds per year, f = contributions per year
  n = round(years * c)             number of compounding periods
  r = rate / 100 / c               per-period rate

  total = principal
  for i in 1..n:
      total += amount * k(i)       contributions due at period i
      total *= (1 + r)

  Contributions land BEFORE the period's growth, so a contribution made in
  period i earns interest for period i too.

CONTRIBUTION PLACEMENT:
  k(i) = floor(i*f/c) - floor((i-1)*f/c)

  When f divides c this puts one contribution at every (c/f)-th period,
  exactly the "i mod (c/f) == 0" rule. When it does not (monthly
  compounding with daily contributions, or 12 and 5) the same formula
  spreads contributions so exactly f land in each full year, several per
  period when f > c. f <= 0 means no contributions.

DETERMINISM:
  Same Inputs, same float64 result, bit for bit. No state, no I/O.

EXAMPLE:
  final := accrual.Accrue(accrual.Inputs{
      Principal:            5000,
      Years:                5,
      CompoundsPerYear:     accrual.Monthly,
      ContributionAmount:   100,
      ContributionsPerYear: accrual.Monthly,
  })
  // final == 11000 with a 0% rate

SEE ALSO:
  - projection.go: Breakdown built from the same loop
  - format.go: Display of the results
*/
package accrual

import "math"

// Accrue returns the final balance for in. It is total for finite input:
// a non-positive horizon or compounding frequency yields the principal.
func Accrue(in Inputs) float64 {
	return simulate(in, nil)
}

// BuildSeries samples the growth curve at the start, the midpoint and the
// end of the horizon. The midpoint is labelled floor(years/2) but its value
// covers at least one year, so short horizons still show a year of growth.
// The last point always equals Accrue(in).
func BuildSeries(in Inputs) Series {
	end := math.Max(in.Years, 0)
	mid := math.Floor(end / 2)

	return Series{
		{YearOffset: 0, TotalValue: Accrue(in.WithYears(0)), PrincipalToDate: in.Principal},
		{YearOffset: int(mid), TotalValue: Accrue(in.WithYears(math.Max(mid, 1))), PrincipalToDate: in.Principal},
		{YearOffset: int(math.Round(end)), TotalValue: Accrue(in), PrincipalToDate: in.Principal},
	}
}

// Periods returns the number of compounding periods in the horizon.
func Periods(in Inputs) int64 {
	if in.Years <= 0 || in.CompoundsPerYear <= 0 {
		return 0
	}
	n := math.Round(in.Years * float64(in.CompoundsPerYear))
	if n >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}

// contributionsAt is the number of contributions due at period i (1-based).
func contributionsAt(i int64, compounds, contributions Frequency) int64 {
	if contributions <= 0 || compounds <= 0 {
		return 0
	}
	c, f := int64(compounds), int64(contributions)
	return i*f/c - (i-1)*f/c
}

// periodVisitor observes the balance after each period. contributed is the
// running sum of contributions, excluding the principal.
type periodVisitor func(period int64, total, contributed float64)

func simulate(in Inputs, visit periodVisitor) float64 {
	total := in.Principal
	n := Periods(in)
	if n == 0 {
		return total
	}

	r := in.AnnualRatePercent / 100 / float64(in.CompoundsPerYear)
	growth := 1 + r
	contributed := 0.0

	for i := int64(1); i <= n; i++ {
		if k := contributionsAt(i, in.CompoundsPerYear, in.ContributionsPerYear); k > 0 {
			deposit := in.ContributionAmount * float64(k)
			total += deposit
			contributed += deposit
		}
		total *= growth
		if visit != nil {
			visit(i, total, contributed)
		}
	}
	return total
}
