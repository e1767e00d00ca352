/*
Package presets holds named example plans for the calculator.

PURPOSE:
  A preset is a labelled set of Inputs ("Retirement, 30 years at 7%") that
  the UI offers in a dropdown and the API serves read-only. Presets are
  application data seeded at startup. Nothing a visitor types is stored.

STORAGE MODEL:
  Presets are stored as JSON documents (Record.ConfigJSON) so new fields
  never need a schema change. factory.PlanFactory turns a document into a
  Preset.

  Record   persisted row: id, name, category, JSON, version, timestamps
  Preset   parsed form: id, name, description, category, Inputs

SEE ALSO:
  - catalog.go: built-in preset documents
  - factory/plan.go: JSON to Preset conversion
  - store/sqlite, store/memory: Store implementations
*/
package presets

import (
	"context"
	"errors"
	"time"

	"github.com/accruemind/accrual-engine/accrual"
)

// ErrPresetNotFound is returned by lookups that require a preset to exist.
var ErrPresetNotFound = errors.New("preset not found")

// Category groups presets in the UI.
type Category string

const (
	CategoryRetirement Category = "retirement"
	CategoryEducation  Category = "education"
	CategorySavings    Category = "savings"
	CategoryDebt       Category = "debt"
)

// Preset is a parsed, ready to use example plan.
type Preset struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Inputs      accrual.Inputs
}

// Record is the stored representation of a preset.
type Record struct {
	ID         string
	Name       string
	Category   Category
	ConfigJSON string
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store persists preset records. GetPreset returns (nil, nil) when the id
// is unknown.
type Store interface {
	SavePreset(ctx context.Context, rec Record) error
	GetPreset(ctx context.Context, id string) (*Record, error)
	ListPresets(ctx context.Context) ([]Record, error)
	DeletePreset(ctx context.Context, id string) error
}
