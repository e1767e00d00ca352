/*
presets.go - Preset catalog loading and endpoints

PURPOSE:
  Seeds the preset store with the built-in catalog plus any documents from
  PRESETS_FILE, keeps a parsed copy in memory, and serves presets to the
  API and the calculator page.

HOW SEEDING WORKS:
 1. Parse each document via the factory
 2. Save valid presets as records (an existing id gets version + 1);
    invalid documents are skipped and logged
 3. Delete stored presets that are not in the catalog
 4. Reload the in-memory cache from the store

  Seeding twice leaves the same set of presets, each one version higher.

USAGE VIA API:

	GET  /api/presets
	GET  /api/presets/{id}/projection
	POST /api/presets/reset

SEE ALSO:
  - presets/catalog.go: Built-in documents
  - factory/plan.go: Document parsing
*/
package api

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/accruemind/accrual-engine/logging"
	"github.com/accruemind/accrual-engine/presets"
)

// =============================================================================
// LOADING
// =============================================================================

// SeedPresets saves the built-in documents and Options.ExtraPresets, then
// removes stored presets that are no longer part of the catalog. Documents
// already stored get their version bumped. It returns the number saved and
// the positions of documents that failed to parse.
func (h *Handler) SeedPresets(ctx context.Context) (int, []string, error) {
	docs := append(presets.Catalog(), h.Options.ExtraPresets...)
	loaded := 0
	var skipped []string
	seeded := make(map[string]bool, len(docs))
	logger := logging.WithComponent(h.Logger, logging.ComponentPresets)

	for i, doc := range docs {
		p, err := h.Factory.ParsePlan(doc)
		if err != nil {
			logger.WarnContext(ctx, "skipping invalid preset", "index", i, logging.FieldError, err)
			skipped = append(skipped, fmt.Sprintf("#%d", i))
			continue
		}

		rec, err := h.Factory.ToRecord(p)
		if err != nil {
			return loaded, skipped, err
		}
		if err := h.Store.SavePreset(ctx, rec); err != nil {
			return loaded, skipped, fmt.Errorf("save preset %s: %w", p.ID, err)
		}
		seeded[p.ID] = true
		loaded++
	}

	if err := h.pruneStale(ctx, seeded); err != nil {
		return loaded, skipped, err
	}
	if err := h.LoadPresets(ctx); err != nil {
		return loaded, skipped, err
	}
	logger.InfoContext(ctx, "preset catalog seeded", "loaded", loaded, "skipped", len(skipped))
	return loaded, skipped, nil
}

// pruneStale deletes stored presets whose id is not in keep.
func (h *Handler) pruneStale(ctx context.Context, keep map[string]bool) error {
	records, err := h.Store.ListPresets(ctx)
	if err != nil {
		return fmt.Errorf("list presets: %w", err)
	}
	for _, r := range records {
		if keep[r.ID] {
			continue
		}
		if err := h.Store.DeletePreset(ctx, r.ID); err != nil {
			return fmt.Errorf("delete stale preset %s: %w", r.ID, err)
		}
	}
	return nil
}

// LoadPresets loads all presets from the store into the cache.
func (h *Handler) LoadPresets(ctx context.Context) error {
	records, err := h.Store.ListPresets(ctx)
	if err != nil {
		return err
	}

	parsed := make(map[string]*presets.Preset, len(records))
	for _, r := range records {
		p, err := h.Factory.ParsePlan(r.ConfigJSON)
		if err != nil {
			h.Logger.WarnContext(ctx, "stored preset does not parse", logging.FieldPresetID, r.ID, logging.FieldError, err)
			continue
		}
		parsed[p.ID] = p
	}

	h.mu.Lock()
	h.presets = parsed
	h.mu.Unlock()
	return nil
}

// preset returns a cached preset or nil.
func (h *Handler) preset(id string) *presets.Preset {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.presets[id]
}

// presetList returns cached presets sorted by category, then name.
func (h *Handler) presetList() []*presets.Preset {
	h.mu.RLock()
	out := make([]*presets.Preset, 0, len(h.presets))
	for _, p := range h.presets {
		out = append(out, p)
	}
	h.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (h *Handler) toPresetDTO(p *presets.Preset, version int) PresetDTO {
	return PresetDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    string(p.Category),
		Version:     version,
		Plan:        h.Factory.ToJSON(p),
		Inputs:      p.Inputs,
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

// ListPresets returns all presets.
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	list := h.presetList()
	dtos := make([]PresetDTO, len(list))
	for i, p := range list {
		dtos[i] = h.toPresetDTO(p, 0)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPreset returns one preset with its stored version.
func (h *Handler) GetPreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Store.GetPreset(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get preset", err)
		return
	}
	p := h.preset(id)
	if rec == nil || p == nil {
		writeError(w, http.StatusNotFound, "Preset not found", presets.ErrPresetNotFound)
		return
	}

	writeJSON(w, http.StatusOK, h.toPresetDTO(p, rec.Version))
}

// GetPresetProjection projects a preset's inputs.
func (h *Handler) GetPresetProjection(w http.ResponseWriter, r *http.Request) {
	p := h.preset(chi.URLParam(r, "id"))
	if p == nil {
		writeError(w, http.StatusNotFound, "Preset not found", presets.ErrPresetNotFound)
		return
	}

	writeJSON(w, http.StatusOK, h.buildProjectionDTO(p.Inputs, negotiateLocale(r, h.Options.DefaultLocale)))
}

// ResetPresets reseeds the catalog.
func (h *Handler) ResetPresets(w http.ResponseWriter, r *http.Request) {
	loaded, skipped, err := h.SeedPresets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to seed presets", err)
		return
	}
	writeJSON(w, http.StatusOK, ResetPresetsResponse{Loaded: loaded, Skipped: skipped})
}
