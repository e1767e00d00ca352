// Package memory provides an in-memory presets.Store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/accruemind/accrual-engine/presets"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	presets map[string]presets.Record
	now     func() time.Time
}

func New() *Memory {
	return &Memory{
		presets: make(map[string]presets.Record),
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

// SavePreset inserts or replaces a record. Replacing bumps Version and
// keeps CreatedAt.
func (m *Memory) SavePreset(_ context.Context, rec presets.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if existing, ok := m.presets[rec.ID]; ok {
		rec.Version = existing.Version + 1
		rec.CreatedAt = existing.CreatedAt
	} else {
		if rec.Version == 0 {
			rec.Version = 1
		}
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	m.presets[rec.ID] = rec
	return nil
}

func (m *Memory) GetPreset(_ context.Context, id string) (*presets.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.presets[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// ListPresets returns records ordered by name.
func (m *Memory) ListPresets(_ context.Context) ([]presets.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]presets.Record, 0, len(m.presets))
	for _, rec := range m.presets {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) DeletePreset(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.presets, id)
	return nil
}

var _ presets.Store = (*Memory)(nil)
