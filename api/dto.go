/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's types from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Wrappers (errors)

MONEY:
  Raw engine values are float64. Display-oriented amounts (breakdown rows,
  summary) are decimal.Decimal rounded to cents and serialize as JSON
  strings ("1126.83") so clients never re-round binary floats.

SEE ALSO:
  - handlers.go: Uses these types
  - accrual/projection.go: Source values
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/accruemind/accrual-engine/accrual"
	"github.com/accruemind/accrual-engine/chart"
	"github.com/accruemind/accrual-engine/factory"
)

// =============================================================================
// PROJECTIONS
// =============================================================================

// ProjectionRequest is the JSON body of POST /api/projections.
// Frequencies accept a number or a name.
type ProjectionRequest struct {
	Principal            float64           `json:"principal"`
	AnnualRatePercent    float64           `json:"annual_rate_percent"`
	Years                float64           `json:"years"`
	CompoundsPerYear     accrual.Frequency `json:"compounds_per_year"`
	ContributionAmount   float64           `json:"contribution_amount"`
	ContributionsPerYear accrual.Frequency `json:"contributions_per_year"`
}

func (r ProjectionRequest) Inputs() accrual.Inputs {
	return accrual.Inputs{
		Principal:            r.Principal,
		AnnualRatePercent:    r.AnnualRatePercent,
		Years:                r.Years,
		CompoundsPerYear:     r.CompoundsPerYear,
		ContributionAmount:   r.ContributionAmount,
		ContributionsPerYear: r.ContributionsPerYear,
	}
}

// ProjectionDTO is the full result for one set of inputs.
type ProjectionDTO struct {
	Inputs       accrual.Inputs   `json:"inputs"`
	FinalValue   float64          `json:"final_value"`
	FinalDisplay string           `json:"final_display"`
	Positive     bool             `json:"positive"`
	Series       []SamplePointDTO `json:"series"`
	Summary      SummaryDTO       `json:"summary"`
	Breakdown    []YearRowDTO     `json:"breakdown"`
	Chart        chart.Config     `json:"chart"`
	Warnings     []string         `json:"warnings,omitempty"`
	Adjustments  []FieldErrorDTO  `json:"adjustments,omitempty"`
	Cached       bool             `json:"cached"`
}

// SamplePointDTO is one chart point with its calendar year.
type SamplePointDTO struct {
	Year            int     `json:"year"`
	YearOffset      int     `json:"year_offset"`
	TotalValue      float64 `json:"total_value"`
	PrincipalToDate float64 `json:"principal_to_date"`
}

// SummaryDTO splits the final balance.
type SummaryDTO struct {
	FinalValue         decimal.Decimal `json:"final_value"`
	Principal          decimal.Decimal `json:"principal"`
	TotalContributions decimal.Decimal `json:"total_contributions"`
	TotalInterest      decimal.Decimal `json:"total_interest"`
}

// YearRowDTO is one row of the yearly breakdown table.
type YearRowDTO struct {
	Year         int             `json:"year"`
	CalendarYear int             `json:"calendar_year"`
	Balance      decimal.Decimal `json:"balance"`
	Contributed  decimal.Decimal `json:"contributed"`
	Interest     decimal.Decimal `json:"interest"`
}

// FrequencyDTO is one option of the frequency select boxes.
type FrequencyDTO struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// =============================================================================
// PRESETS
// =============================================================================

// PresetDTO represents a preset plan in API responses.
type PresetDTO struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Version     int              `json:"version,omitempty"`
	Plan        factory.PlanJSON `json:"plan"`
	Inputs      accrual.Inputs   `json:"inputs"`
}

// ResetPresetsResponse reports the outcome of POST /api/presets/reset.
type ResetPresetsResponse struct {
	Loaded  int      `json:"loaded"`
	Skipped []string `json:"skipped,omitempty"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// FieldErrorDTO describes one rejected or adjusted input field.
type FieldErrorDTO struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// ValidationErrorResponse is returned with 422 under the reject policy.
type ValidationErrorResponse struct {
	Error  string          `json:"error"`
	Fields []FieldErrorDTO `json:"fields"`
}
