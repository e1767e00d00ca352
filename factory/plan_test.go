package factory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accruemind/accrual-engine/accrual"
	"github.com/accruemind/accrual-engine/factory"
	"github.com/accruemind/accrual-engine/presets"
)

func TestParsePlan_Retirement(t *testing.T) {
	f := factory.NewPlanFactory()

	p, err := f.ParsePlan(presets.RetirementJSON("ret", "Retirement", 10000, 500, 30))
	require.NoError(t, err)

	assert.Equal(t, "ret", p.ID)
	assert.Equal(t, presets.CategoryRetirement, p.Category)
	assert.Equal(t, accrual.Inputs{
		Principal:            10000,
		AnnualRatePercent:    7,
		Years:                30,
		CompoundsPerYear:     accrual.Monthly,
		ContributionAmount:   500,
		ContributionsPerYear: accrual.Monthly,
	}, p.Inputs)
}

func TestParsePlan_Defaults(t *testing.T) {
	f := factory.NewPlanFactory()

	p, err := f.ParsePlan(`{"id":"x","name":"X","principal":100,"years":2}`)
	require.NoError(t, err)

	assert.Equal(t, accrual.Monthly, p.Inputs.CompoundsPerYear)
	assert.Equal(t, accrual.Monthly, p.Inputs.ContributionsPerYear)
	assert.Zero(t, p.Inputs.ContributionAmount)
	assert.Equal(t, presets.CategorySavings, p.Category)
}

func TestParsePlan_ContributionFrequencyDefaultsToCompounding(t *testing.T) {
	f := factory.NewPlanFactory()

	p, err := f.ParsePlan(`{"id":"x","name":"X","principal":100,"years":2,
		"compound_frequency":"quarterly","contribution":{"amount":50}}`)
	require.NoError(t, err)

	assert.Equal(t, accrual.Quarterly, p.Inputs.ContributionsPerYear)
	assert.Equal(t, 50.0, p.Inputs.ContributionAmount)
}

func TestParsePlan_Errors(t *testing.T) {
	f := factory.NewPlanFactory()

	tests := []struct {
		name string
		json string
		want error
	}{
		{"missing id", `{"name":"X"}`, factory.ErrMissingID},
		{"missing name", `{"id":"x"}`, factory.ErrMissingName},
		{"negative principal", `{"id":"x","name":"X","principal":-5,"years":1}`, accrual.ErrNegativePrincipal},
		{"bad frequency", `{"id":"x","name":"X","years":1,"compound_frequency":"fortnightly"}`, accrual.ErrInvalidFrequency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ParsePlan(tt.json)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := f.ParsePlan(`not json`)
	assert.Error(t, err)
}

func TestCatalog_AllParse(t *testing.T) {
	f := factory.NewPlanFactory()
	seen := map[string]bool{}

	for _, doc := range presets.Catalog() {
		p, err := f.ParsePlan(doc)
		require.NoError(t, err, doc)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestToRecord_RoundTrip(t *testing.T) {
	f := factory.NewPlanFactory()
	original, err := f.ParsePlan(presets.CollegeFundJSON("college", "College", 750))
	require.NoError(t, err)

	rec, err := f.ToRecord(original)
	require.NoError(t, err)
	assert.Equal(t, "college", rec.ID)

	parsed, err := f.ParsePlan(rec.ConfigJSON)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestParsePlan_RejectsOverflowingPlan(t *testing.T) {
	f := factory.NewPlanFactory()

	_, err := f.ParsePlan(presets.CertificateJSON("huge", "Huge", 1e300, 1e6, 50))

	require.Error(t, err)
	assert.True(t, errors.Is(err, accrual.ErrOverflow))
}
