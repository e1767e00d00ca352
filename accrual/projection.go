package accrual

import "math"

// YearRow is the state of the plan at the end of one year of the horizon.
// The last row may cover a partial year when Years is fractional.
type YearRow struct {
	Year        int     `json:"year"`
	Balance     float64 `json:"balance"`
	Contributed float64 `json:"contributed"`
	Interest    float64 `json:"interest"`
}

// Summary splits the final balance into what was paid in and what it earned.
type Summary struct {
	FinalValue         float64 `json:"final_value"`
	Principal          float64 `json:"principal"`
	TotalContributions float64 `json:"total_contributions"`
	TotalInterest      float64 `json:"total_interest"`
}

// Projection is everything the UI shows for one set of inputs.
type Projection struct {
	Inputs    Inputs    `json:"inputs"`
	Series    Series    `json:"series"`
	Breakdown []YearRow `json:"breakdown"`
	Summary   Summary   `json:"summary"`
}

// FinalValue is shorthand for p.Summary.FinalValue.
func (p Projection) FinalValue() float64 {
	return p.Summary.FinalValue
}

// Finite reports whether every value in p is a finite number. Finite
// inputs can still overflow when the rate or horizon is extreme.
func (p Projection) Finite() bool {
	for _, sp := range p.Series {
		if !isFinite(sp.TotalValue) {
			return false
		}
	}
	for _, row := range p.Breakdown {
		if !isFinite(row.Balance) || !isFinite(row.Contributed) || !isFinite(row.Interest) {
			return false
		}
	}
	return isFinite(p.Summary.FinalValue) && isFinite(p.Summary.TotalContributions) && isFinite(p.Summary.TotalInterest)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Project runs the engine once over the whole horizon and records a row at
// every year boundary. Summary.FinalValue is bit-identical to Accrue(in).
func Project(in Inputs) Projection {
	rows := []YearRow{{Year: 0, Balance: in.Principal}}
	perYear := int64(in.CompoundsPerYear)
	n := Periods(in)

	var contributedTotal float64
	final := simulate(in, func(period int64, total, contributed float64) {
		contributedTotal = contributed
		if period%perYear == 0 || period == n {
			rows = append(rows, YearRow{
				Year:        int(math.Ceil(float64(period) / float64(perYear))),
				Balance:     total,
				Contributed: contributed,
				Interest:    total - in.Principal - contributed,
			})
		}
	})

	return Projection{
		Inputs:    in,
		Series:    BuildSeries(in),
		Breakdown: rows,
		Summary: Summary{
			FinalValue:         final,
			Principal:          in.Principal,
			TotalContributions: contributedTotal,
			TotalInterest:      final - in.Principal - contributedTotal,
		},
	}
}
