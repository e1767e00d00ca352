package chart_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accruemind/accrual-engine/accrual"
	"github.com/accruemind/accrual-engine/chart"
)

func TestBuild_DefaultInputs(t *testing.T) {
	// GIVEN: calculator defaults starting in 2025
	in := accrual.DefaultInputs()
	series := accrual.BuildSeries(in)

	// WHEN
	cfg := chart.Build(series, in, 2025, accrual.LocaleEN)

	// THEN
	assert.Equal(t, chart.TypeLine, cfg.Type)
	assert.Equal(t, "Compound Interest Over 5 Years", cfg.Title)
	assert.Equal(t, []string{"2025", "2027", "2030"}, cfg.Labels)

	require.Len(t, cfg.Datasets, 2)
	assert.Equal(t, chart.LabelTotalValue, cfg.Datasets[0].Label)
	assert.Equal(t, []float64{5000, 7400, 11000}, cfg.Datasets[0].Data)
	assert.Equal(t, "$11,000.00", cfg.Datasets[0].Tooltips[2])

	assert.Equal(t, chart.LabelTotalPrincipal, cfg.Datasets[1].Label)
	assert.True(t, cfg.Datasets[1].Dashed)
	assert.Equal(t, []float64{5000, 5000, 5000}, cfg.Datasets[1].Data)
}

func TestBuild_AxisTicks(t *testing.T) {
	in := accrual.DefaultInputs()
	cfg := chart.Build(accrual.BuildSeries(in), in, 2025, accrual.LocaleEN)

	axis := cfg.YAxis
	assert.Equal(t, 1200.0, axis.StepSize)
	assert.Equal(t, chart.MaxTicks, axis.MaxTicks)
	assert.LessOrEqual(t, len(axis.Ticks), chart.MaxTicks)
	require.NotEmpty(t, axis.Ticks)

	assert.LessOrEqual(t, axis.Ticks[0].Value, 5000.0)
	assert.GreaterOrEqual(t, axis.Ticks[len(axis.Ticks)-1].Value, 11000.0)
	assert.Equal(t, "$4.8 K", axis.Ticks[0].Label)
}

func TestBuild_FlatSeries(t *testing.T) {
	// GIVEN: nothing grows
	in := accrual.Inputs{Principal: 999, Years: 3, CompoundsPerYear: accrual.Monthly, ContributionsPerYear: accrual.Monthly}

	cfg := chart.Build(accrual.BuildSeries(in), in, 2025, accrual.LocaleEN)

	assert.Equal(t, 0.0, cfg.YAxis.StepSize)
	require.Len(t, cfg.YAxis.Ticks, 1)
	assert.Equal(t, "$999.0", cfg.YAxis.Ticks[0].Label)
}

func TestStepSize(t *testing.T) {
	assert.Equal(t, 1200.0, chart.StepSize(5000, 11000))
	assert.Equal(t, 1.0, chart.StepSize(0, 0.5))
	assert.Equal(t, 0.0, chart.StepSize(10, 10))
}

func TestTitle_FractionalYears(t *testing.T) {
	assert.Equal(t, "Compound Interest Over 2.5 Years", chart.Title(2.5))
	assert.Equal(t, "Compound Interest Over 0 Years", chart.Title(0))
}

func TestConfig_JSONShape(t *testing.T) {
	in := accrual.DefaultInputs()
	cfg := chart.Build(accrual.BuildSeries(in), in, 2025, accrual.LocaleEN)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "datasets")
	assert.Contains(t, decoded, "y_axis")
	assert.Equal(t, "Year", decoded["x_axis_title"])
}
