/*
Package chart turns a growth Series into a line chart description.

PURPOSE:
  The server owns every number the chart shows. The browser script only
  feeds Config into the renderer; it never computes or formats values.

LAYOUT:
  x axis   "Year", category labels startYear + offset
  y axis   "Amount ($)", linear, at most 7 ticks
           step = ceil((max - min) / 5), labels from FormatMagnitude
  lines    "Total Value"      filled toward the principal line
           "Total Principal"  dashed, constant
  tooltip  FormatCurrency of the raw point value

SEE ALSO:
  - accrual/format.go: both formatters
  - web/static/app.js: renderer lifecycle
*/
package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/accruemind/accrual-engine/accrual"
)

const (
	TypeLine      = "line"
	MaxTicks      = 7
	TickDivisions = 5

	LabelTotalValue     = "Total Value"
	LabelTotalPrincipal = "Total Principal"
)

// Dataset is one line on the chart.
type Dataset struct {
	Label       string    `json:"label"`
	Data        []float64 `json:"data"`
	Tooltips    []string  `json:"tooltips"`
	BorderColor string    `json:"border_color"`
	FillColor   string    `json:"fill_color"`
	Dashed      bool      `json:"dashed,omitempty"`
	Filled      bool      `json:"filled,omitempty"`
}

// Tick is a precomputed y axis tick.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Axis describes the value axis.
type Axis struct {
	Title    string  `json:"title"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	StepSize float64 `json:"step_size"`
	MaxTicks int     `json:"max_ticks"`
	Ticks    []Tick  `json:"ticks"`
}

// Config is the full chart description sent to the browser.
type Config struct {
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	XAxisTitle string    `json:"x_axis_title"`
	Labels     []string  `json:"labels"`
	Datasets   []Dataset `json:"datasets"`
	YAxis      Axis      `json:"y_axis"`
}

// Build describes the chart for s. startYear is the calendar year of
// offset 0.
func Build(s accrual.Series, in accrual.Inputs, startYear int, loc accrual.Locale) Config {
	labels := make([]string, len(s))
	values := make([]float64, len(s))
	principal := make([]float64, len(s))
	for i, off := range s.Offsets() {
		labels[i] = strconv.Itoa(startYear + off)
	}
	for i, p := range s {
		values[i] = p.TotalValue
		principal[i] = p.PrincipalToDate
	}

	return Config{
		Type:       TypeLine,
		Title:      Title(in.Years),
		XAxisTitle: "Year",
		Labels:     labels,
		Datasets: []Dataset{
			{
				Label:       LabelTotalValue,
				Data:        values,
				Tooltips:    tooltips(values, loc),
				BorderColor: "rgba(75, 192, 192, 1)",
				FillColor:   "rgba(75, 192, 75, 0.2)",
				Filled:      true,
			},
			{
				Label:       LabelTotalPrincipal,
				Data:        principal,
				Tooltips:    tooltips(principal, loc),
				BorderColor: "rgba(54, 162, 235, 1)",
				FillColor:   "rgba(54, 162, 235, 0.2)",
				Dashed:      true,
			},
		},
		YAxis: valueAxis(values),
	}
}

// Title is the chart heading for a horizon.
func Title(years float64) string {
	return fmt.Sprintf("Compound Interest Over %s Years", strconv.FormatFloat(years, 'f', -1, 64))
}

// StepSize is the tick spacing for a value range.
func StepSize(min, max float64) float64 {
	return math.Ceil((max - min) / TickDivisions)
}

func tooltips(values []float64, loc accrual.Locale) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = accrual.FormatCurrency(v, loc)
	}
	return out
}

func valueAxis(values []float64) Axis {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	step := StepSize(lo, hi)
	axis := Axis{
		Title:    "Amount ($)",
		Min:      lo,
		Max:      hi,
		StepSize: step,
		MaxTicks: MaxTicks,
	}

	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		axis.Ticks = []Tick{{Value: lo, Label: accrual.FormatMagnitude(lo)}}
		return axis
	}

	// Widen the step until the range fits in MaxTicks ticks.
	start := math.Floor(lo/step) * step
	for math.Ceil((hi-start)/step)+1 > MaxTicks {
		step *= 2
		start = math.Floor(lo/step) * step
	}
	axis.StepSize = step

	for v := start; len(axis.Ticks) < MaxTicks; v += step {
		axis.Ticks = append(axis.Ticks, Tick{Value: v, Label: accrual.FormatMagnitude(v)})
		if v >= hi {
			break
		}
	}
	return axis
}
