/*
Package factory converts plan JSON into presets.

PURPOSE:
  Preset plans are stored and shipped as JSON documents. The factory parses
  a document, fills in defaults, validates the resulting Inputs and
  returns a presets.Preset ready for the engine.

JSON SCHEMA:
  {
    "id": "retirement-30y",
    "name": "Retirement (30 years)",
    "description": "Long-term index investing",
    "category": "retirement",
    "principal": 10000,
    "annual_rate_percent": 7,
    "years": 30,
    "compound_frequency": "monthly",
    "contribution": {
      "amount": 500,
      "frequency": "monthly"
    }
  }

DEFAULTS:
  compound_frequency       monthly
  contribution.frequency   same as compound_frequency
  category                 savings

  Frequencies accept a name or a number (see accrual.ParseFrequency).

USAGE:
  f := factory.NewPlanFactory()
  preset, err := f.ParsePlan(presets.RetirementJSON("ret", "Retirement", 10000, 500, 30))

SEE ALSO:
  - presets/catalog.go: Built-in documents
  - accrual/errors.go: Validation rules applied here
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/accruemind/accrual-engine/accrual"
	"github.com/accruemind/accrual-engine/presets"
)

var (
	ErrMissingID   = errors.New("plan id is required")
	ErrMissingName = errors.New("plan name is required")
)

// PlanJSON is the JSON representation of a preset plan.
type PlanJSON struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description,omitempty"`
	Category          string            `json:"category,omitempty"`
	Principal         float64           `json:"principal"`
	AnnualRatePercent float64           `json:"annual_rate_percent"`
	Years             float64           `json:"years"`
	CompoundFrequency accrual.Frequency `json:"compound_frequency,omitempty"`
	Contribution      *ContributionJSON `json:"contribution,omitempty"`
}

// ContributionJSON describes the recurring deposit.
type ContributionJSON struct {
	Amount    float64           `json:"amount"`
	Frequency accrual.Frequency `json:"frequency,omitempty"`
}

// PlanFactory creates presets from JSON documents.
type PlanFactory struct{}

// NewPlanFactory creates a new plan factory.
func NewPlanFactory() *PlanFactory {
	return &PlanFactory{}
}

// ParsePlan parses a JSON document into a Preset.
func (f *PlanFactory) ParsePlan(jsonStr string) (*presets.Preset, error) {
	var pj PlanJSON
	if err := json.Unmarshal([]byte(jsonStr), &pj); err != nil {
		return nil, fmt.Errorf("failed to parse plan JSON: %w", err)
	}

	return f.FromJSON(pj)
}

// FromJSON converts PlanJSON into a validated Preset.
func (f *PlanFactory) FromJSON(pj PlanJSON) (*presets.Preset, error) {
	if pj.ID == "" {
		return nil, ErrMissingID
	}
	if pj.Name == "" {
		return nil, fmt.Errorf("plan %s: %w", pj.ID, ErrMissingName)
	}

	in := accrual.Inputs{
		Principal:         pj.Principal,
		AnnualRatePercent: pj.AnnualRatePercent,
		Years:             pj.Years,
		CompoundsPerYear:  pj.CompoundFrequency,
	}
	if in.CompoundsPerYear == 0 {
		in.CompoundsPerYear = accrual.Monthly
	}

	// No contribution block means no deposits; the frequency still has to
	// be valid so it follows compounding.
	in.ContributionsPerYear = in.CompoundsPerYear
	if pj.Contribution != nil {
		in.ContributionAmount = pj.Contribution.Amount
		if pj.Contribution.Frequency != 0 {
			in.ContributionsPerYear = pj.Contribution.Frequency
		}
	}

	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("plan %s: %w", pj.ID, err)
	}
	if !accrual.Project(in).Finite() {
		return nil, fmt.Errorf("plan %s: %w", pj.ID, accrual.ErrOverflow)
	}

	category := presets.Category(pj.Category)
	if category == "" {
		category = presets.CategorySavings
	}

	return &presets.Preset{
		ID:          pj.ID,
		Name:        pj.Name,
		Description: pj.Description,
		Category:    category,
		Inputs:      in,
	}, nil
}

// ToJSON converts a Preset back to PlanJSON.
func (f *PlanFactory) ToJSON(p *presets.Preset) PlanJSON {
	pj := PlanJSON{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Category:          string(p.Category),
		Principal:         p.Inputs.Principal,
		AnnualRatePercent: p.Inputs.AnnualRatePercent,
		Years:             p.Inputs.Years,
		CompoundFrequency: p.Inputs.CompoundsPerYear,
	}
	if p.Inputs.ContributionAmount != 0 {
		pj.Contribution = &ContributionJSON{
			Amount:    p.Inputs.ContributionAmount,
			Frequency: p.Inputs.ContributionsPerYear,
		}
	}
	return pj
}

// ToRecord builds the stored form of a preset.
func (f *PlanFactory) ToRecord(p *presets.Preset) (presets.Record, error) {
	data, err := json.Marshal(f.ToJSON(p))
	if err != nil {
		return presets.Record{}, fmt.Errorf("failed to encode plan %s: %w", p.ID, err)
	}
	return presets.Record{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.Category,
		ConfigJSON: string(data),
	}, nil
}
