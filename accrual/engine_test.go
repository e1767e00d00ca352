package accrual_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accruemind/accrual-engine/accrual"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func plan(principal, rate, years float64, c accrual.Frequency, amount float64, f accrual.Frequency) accrual.Inputs {
	return accrual.Inputs{
		Principal:            principal,
		AnnualRatePercent:    rate,
		Years:                years,
		CompoundsPerYear:     c,
		ContributionAmount:   amount,
		ContributionsPerYear: f,
	}
}

// moduloAccrue is the "contribute when i mod (c/f) == 0" rule, valid only
// when f divides c.
func moduloAccrue(in accrual.Inputs) float64 {
	total := in.Principal
	c := int64(in.CompoundsPerYear)
	step := c / int64(in.ContributionsPerYear)
	n := int64(math.Round(in.Years * float64(c)))
	r := in.AnnualRatePercent / 100 / float64(c)
	for i := int64(1); i <= n; i++ {
		if i%step == 0 {
			total += in.ContributionAmount
		}
		total *= 1 + r
	}
	return total
}

// =============================================================================
// ACCRUE
// =============================================================================

func TestAccrue_ZeroYearsReturnsPrincipal(t *testing.T) {
	for _, p := range []float64{0, 1, 5000, 1234567.89} {
		in := plan(p, 7.5, 0, accrual.Monthly, 250, accrual.Monthly)
		assert.Equal(t, p, accrual.Accrue(in), "principal %v", p)
	}
}

func TestAccrue_NegativeYearsReturnsPrincipal(t *testing.T) {
	in := plan(5000, 5, -3, accrual.Monthly, 100, accrual.Monthly)
	assert.Equal(t, 5000.0, accrual.Accrue(in))
}

func TestAccrue_ZeroCompoundingReturnsPrincipal(t *testing.T) {
	in := plan(5000, 5, 10, 0, 100, accrual.Monthly)
	assert.Equal(t, 5000.0, accrual.Accrue(in))
}

func TestAccrue_ClosedFormWithoutContributions(t *testing.T) {
	cases := []accrual.Inputs{
		plan(1000, 12, 1, accrual.Monthly, 0, accrual.Monthly),
		plan(5000, 3.5, 10, accrual.Quarterly, 0, accrual.Annually),
		plan(250, 8, 30, accrual.Daily, 0, accrual.Monthly),
		plan(10000, -2, 5, accrual.Annually, 0, accrual.Annually),
	}

	for _, in := range cases {
		c := float64(in.CompoundsPerYear)
		want := in.Principal * math.Pow(1+in.AnnualRatePercent/100/c, math.Round(in.Years*c))
		assert.InEpsilon(t, want, accrual.Accrue(in), 1e-9, "inputs %+v", in)
	}
}

func TestAccrue_MonthlyExample(t *testing.T) {
	// GIVEN: $1000 at 12% compounded monthly for one year
	in := plan(1000, 12, 1, accrual.Monthly, 0, accrual.Monthly)

	// WHEN: accruing
	got := accrual.Accrue(in)

	// THEN: 1000 * 1.01^12
	assert.InEpsilon(t, 1126.825030131969, got, 1e-6)
	assert.Equal(t, "$1,126.83", accrual.FormatCurrency(got, accrual.LocaleEN))
}

func TestAccrue_DefaultPageScenario(t *testing.T) {
	// GIVEN: the calculator defaults, 0% rate
	in := accrual.DefaultInputs()

	// WHEN/THEN: 5000 + 60 * 100
	assert.Equal(t, 11000.0, accrual.Accrue(in))
}

func TestAccrue_MonotonicInRate(t *testing.T) {
	prev := math.Inf(-1)
	for rate := -5.0; rate <= 20; rate += 0.5 {
		got := accrual.Accrue(plan(5000, rate, 10, accrual.Monthly, 100, accrual.Monthly))
		assert.GreaterOrEqual(t, got, prev, "rate %v", rate)
		prev = got
	}
}

func TestAccrue_Idempotent(t *testing.T) {
	in := plan(5000, 6.25, 17, accrual.Daily, 42.5, accrual.Monthly)
	first := accrual.Accrue(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, math.Float64bits(first), math.Float64bits(accrual.Accrue(in)))
	}
}

func TestAccrue_MatchesModuloRuleWhenFrequencyDivides(t *testing.T) {
	pairs := [][2]accrual.Frequency{
		{accrual.Monthly, accrual.Monthly},
		{accrual.Monthly, accrual.Quarterly},
		{accrual.Monthly, accrual.Annually},
		{accrual.Quarterly, accrual.SemiAnnually},
		{accrual.Daily, accrual.Daily},
		{accrual.Daily, accrual.Annually},
	}

	for _, p := range pairs {
		in := plan(1500, 4.2, 7, p[0], 75, p[1])
		assert.Equal(t, moduloAccrue(in), accrual.Accrue(in), "c=%d f=%d", p[0], p[1])
	}
}

func TestAccrue_ContributionsFirstThenGrowth(t *testing.T) {
	// GIVEN: one annual period at 10% with a 100 contribution
	in := plan(0, 10, 1, accrual.Annually, 100, accrual.Annually)

	// THEN: the contribution earns the period's interest
	assert.InDelta(t, 110.0, accrual.Accrue(in), 1e-9)
}

func TestAccrue_NonDividingFrequencySpreadsContributions(t *testing.T) {
	// GIVEN: daily contributions into monthly compounding at 0%
	in := plan(0, 0, 3, accrual.Monthly, 1, accrual.Daily)

	// THEN: exactly 365 contributions land per year
	assert.Equal(t, 3*365.0, accrual.Accrue(in))

	// GIVEN: 5 contributions a year into monthly compounding
	in = plan(0, 0, 2, accrual.Monthly, 10, 5)
	assert.Equal(t, 100.0, accrual.Accrue(in))
}

func TestAccrue_NoContributionsWhenFrequencyNotPositive(t *testing.T) {
	in := plan(1000, 0, 4, accrual.Monthly, 100, 0)
	assert.Equal(t, 1000.0, accrual.Accrue(in))
}

func TestAccrue_FractionalYearsRoundPeriods(t *testing.T) {
	// 1.5 years monthly = 18 periods
	in := plan(0, 0, 1.5, accrual.Monthly, 10, accrual.Monthly)
	assert.Equal(t, 180.0, accrual.Accrue(in))
	assert.Equal(t, int64(18), accrual.Periods(in))
}

// =============================================================================
// BUILD SERIES
// =============================================================================

func TestBuildSeries_EndMatchesAccrue(t *testing.T) {
	cases := []accrual.Inputs{
		accrual.DefaultInputs(),
		plan(1000, 12, 1, accrual.Monthly, 0, accrual.Monthly),
		plan(7000, 5, 33, accrual.Daily, 10, accrual.Daily),
		plan(7000, 5, 2.5, accrual.Quarterly, 10, accrual.Monthly),
	}
	for _, in := range cases {
		s := accrual.BuildSeries(in)
		assert.Equal(t, accrual.Accrue(in), s[2].TotalValue, "inputs %+v", in)
	}
}

func TestBuildSeries_Offsets(t *testing.T) {
	tests := []struct {
		years float64
		want  []int
	}{
		{0, []int{0, 0, 0}},
		{0.5, []int{0, 0, 1}},
		{1, []int{0, 0, 1}},
		{2, []int{0, 1, 2}},
		{5, []int{0, 2, 5}},
		{10, []int{0, 5, 10}},
		{1.5, []int{0, 0, 2}},
	}

	for _, tt := range tests {
		s := accrual.BuildSeries(plan(100, 5, tt.years, accrual.Monthly, 0, accrual.Monthly))
		assert.Equal(t, tt.want, s.Offsets(), "years %v", tt.years)
	}
}

func TestBuildSeries_PrincipalConstant(t *testing.T) {
	in := plan(5000, 8, 20, accrual.Monthly, 500, accrual.Monthly)
	s := accrual.BuildSeries(in)
	for _, p := range s {
		assert.Equal(t, 5000.0, p.PrincipalToDate)
	}
	assert.Equal(t, 5000.0, s[0].TotalValue)
	assert.Equal(t, accrual.Accrue(in.WithYears(10)), s[1].TotalValue)
}

func TestBuildSeries_MidCoversAtLeastOneYear(t *testing.T) {
	// GIVEN: horizons shorter than two years
	for _, years := range []float64{0, 0.5, 1, 1.9} {
		in := plan(1000, 12, years, accrual.Monthly, 100, accrual.Monthly)

		// WHEN
		s := accrual.BuildSeries(in)

		// THEN: the midpoint is still labelled year 0 but shows a full year of growth
		assert.Equal(t, 0, s[1].YearOffset, "years %v", years)
		assert.Equal(t, accrual.Accrue(in.WithYears(1)), s[1].TotalValue, "years %v", years)
		assert.InDelta(t, 2407.7578344648637, s[1].TotalValue, 1e-6, "years %v", years)
		assert.Equal(t, accrual.Accrue(in), s[2].TotalValue, "years %v", years)
	}
}

func TestBuildSeries_Chronological(t *testing.T) {
	for years := 0.0; years <= 40; years += 0.25 {
		s := accrual.BuildSeries(plan(1, 1, years, accrual.Monthly, 0, accrual.Monthly))
		require.LessOrEqual(t, s[0].YearOffset, s[1].YearOffset, "years %v", years)
		require.LessOrEqual(t, s[1].YearOffset, s[2].YearOffset, "years %v", years)
	}
}
