/*
handlers.go - HTTP API handlers for the accrual calculator

PURPOSE:
  Exposes the accrual engine via a JSON API. Handles HTTP request and
  response, JSON serialization, and delegates to the engine.

ENDPOINTS:
  Projections:
    GET    /api/projections             Project from query parameters
    POST   /api/projections             Project from a JSON body
    GET    /api/frequencies             Frequency options
    GET    /api/cache                   Projection cache statistics

  Presets:
    GET    /api/presets                 List preset plans
    GET    /api/presets/{id}            Get a preset
    GET    /api/presets/{id}/projection Project a preset
    POST   /api/presets/reset           Reseed the preset catalog

  Probes:
    GET    /healthz                     Process is up
    GET    /readyz                      Templates and store are usable

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: preset persistence
  - Factory: JSON to Preset conversion
  - memo: projection cache keyed on the full input tuple
  - Cached parsed presets for quick lookups

REQUEST FLOW:
  1. Parse HTTP request
  2. Apply the input policy (forms.go)
  3. Project (cached)
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body
  - 404: Preset not found
  - 422: Invalid inputs under the reject policy, including inputs whose
         balance overflows float64
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - ui.go: HTML page and HTMX partial
  - presets.go: Preset loading and seeding
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/accruemind/accrual-engine/accrual"
	"github.com/accruemind/accrual-engine/cache"
	"github.com/accruemind/accrual-engine/chart"
	"github.com/accruemind/accrual-engine/config"
	"github.com/accruemind/accrual-engine/factory"
	"github.com/accruemind/accrual-engine/logging"
	"github.com/accruemind/accrual-engine/presets"
	"github.com/accruemind/accrual-engine/web"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Options configures a Handler.
type Options struct {
	InputPolicy    string
	DefaultLocale  string
	AllowedOrigins []string
	CacheSize      int
	CacheTTL       time.Duration
	// ExtraPresets are preset documents seeded after the built-in catalog.
	ExtraPresets []string
}

// DefaultOptions mirrors config defaults.
func DefaultOptions() Options {
	return Options{
		InputPolicy:    config.InputPolicyCoerce,
		DefaultLocale:  "en",
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		CacheSize:      1024,
		CacheTTL:       10 * time.Minute,
	}
}

// OptionsFromConfig copies the relevant settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		InputPolicy:    cfg.InputPolicy,
		DefaultLocale:  cfg.DefaultLocale,
		AllowedOrigins: cfg.AllowedOrigins,
		CacheSize:      cfg.CacheSize,
		CacheTTL:       cfg.CacheTTL,
	}
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   presets.Store
	Factory *factory.PlanFactory
	Logger  *slog.Logger
	Options Options

	memo      *cache.Memo[accrual.Projection]
	templates *template.Template
	now       func() time.Time

	// Cached parsed presets
	mu      sync.RWMutex
	presets map[string]*presets.Preset
}

// NewHandler creates a handler and parses the embedded templates.
func NewHandler(store presets.Store, logger *slog.Logger, opts Options) (*Handler, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Handler{
		Store:     store,
		Factory:   factory.NewPlanFactory(),
		Logger:    logger,
		Options:   opts,
		memo:      cache.NewMemo(cache.NewLRU[accrual.Projection](opts.CacheSize, opts.CacheTTL)),
		templates: tmpl,
		now:       time.Now,
		presets:   make(map[string]*presets.Preset),
	}, nil
}

// Memo exposes the projection cache to the janitor.
func (h *Handler) Memo() *cache.Memo[accrual.Projection] {
	return h.memo
}

// =============================================================================
// PROJECTIONS
// =============================================================================

// project runs the engine through the cache.
func (h *Handler) project(in accrual.Inputs) (accrual.Projection, bool) {
	p, hit, _ := h.memo.Get(in.Key(), func() (accrual.Projection, error) {
		return accrual.Project(in), nil
	})
	h.Logger.Debug("projection computed", "key", in.Key(), logging.FieldCacheHit, hit)
	return p, hit
}

// buildProjectionDTO projects in and shapes the result for clients.
func (h *Handler) buildProjectionDTO(in accrual.Inputs, loc accrual.Locale) ProjectionDTO {
	p, hit := h.project(in)
	startYear := h.now().Year()

	series := make([]SamplePointDTO, len(p.Series))
	for i, sp := range p.Series {
		series[i] = SamplePointDTO{
			Year:            startYear + sp.YearOffset,
			YearOffset:      sp.YearOffset,
			TotalValue:      sp.TotalValue,
			PrincipalToDate: sp.PrincipalToDate,
		}
	}

	rows := make([]YearRowDTO, len(p.Breakdown))
	for i, row := range p.Breakdown {
		rows[i] = YearRowDTO{
			Year:         row.Year,
			CalendarYear: startYear + row.Year,
			Balance:      accrual.Cents(row.Balance),
			Contributed:  accrual.Cents(row.Contributed),
			Interest:     accrual.Cents(row.Interest),
		}
	}

	var warnings []string
	for _, w := range in.Warnings() {
		warnings = append(warnings, w.Error())
	}

	final := p.FinalValue()
	return ProjectionDTO{
		Inputs:       in,
		FinalValue:   final,
		FinalDisplay: accrual.FormatCurrency(final, loc),
		Positive:     final >= 0,
		Series:       series,
		Summary: SummaryDTO{
			FinalValue:         accrual.Cents(final),
			Principal:          accrual.Cents(p.Summary.Principal),
			TotalContributions: accrual.Cents(p.Summary.TotalContributions),
			TotalInterest:      accrual.Cents(p.Summary.TotalInterest),
		},
		Breakdown: rows,
		Chart:     chart.Build(p.Series, in, startYear, loc),
		Warnings:  warnings,
		Cached:    hit,
	}
}

// GetProjection projects from query parameters.
// Missing parameters take the calculator defaults.
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	loc := negotiateLocale(r, h.Options.DefaultLocale)
	defaults := formValuesFor(accrual.DefaultInputs(), loc)
	q := r.URL.Query()

	in, parseErrs := parseInputValues(func(field string) string {
		if q.Has(field) {
			return q.Get(field)
		}
		return defaults[field]
	}, loc)

	h.respondProjection(w, r, in, parseErrs, loc)
}

// CreateProjection projects from a JSON body.
func (h *Handler) CreateProjection(w http.ResponseWriter, r *http.Request) {
	var req ProjectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	h.respondProjection(w, r, req.Inputs(), nil, negotiateLocale(r, h.Options.DefaultLocale))
}

func (h *Handler) respondProjection(w http.ResponseWriter, r *http.Request, in accrual.Inputs, parseErrs []FieldErrorDTO, loc accrual.Locale) {
	in, fieldErrs, ok := applyInputPolicy(in, parseErrs, h.Options.InputPolicy)
	if ok {
		in, fieldErrs, ok = h.settleOverflow(in, fieldErrs)
	}
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
			Error:  "Invalid inputs",
			Fields: fieldErrs,
		})
		return
	}

	dto := h.buildProjectionDTO(in, loc)
	dto.Adjustments = fieldErrs
	writeJSON(w, http.StatusOK, dto)
}

// settleOverflow applies the input policy to inputs that are valid but whose
// projection leaves the float64 range. Under reject the rate is reported.
// Under coerce the rate falls back to 0 and, if contributions alone still
// overflow, so does the contribution. The principal on its own is finite.
func (h *Handler) settleOverflow(in accrual.Inputs, errs []FieldErrorDTO) (accrual.Inputs, []FieldErrorDTO, bool) {
	if p, _ := h.project(in); p.Finite() {
		return in, errs, true
	}

	overflow := func(field string, v float64) FieldErrorDTO {
		return FieldErrorDTO{Field: field, Value: fmt.Sprint(v), Message: overflowMessage}
	}

	errs = append(errs, overflow(formRate, in.AnnualRatePercent))
	if h.Options.InputPolicy == config.InputPolicyReject {
		return in, errs, false
	}

	in.AnnualRatePercent = 0
	if p, _ := h.project(in); !p.Finite() {
		errs = append(errs, overflow(formContribution, in.ContributionAmount))
		in.ContributionAmount = 0
	}
	return in, errs, true
}

// ListFrequencies returns the named frequency options.
func (h *Handler) ListFrequencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, frequencyOptions())
}

// CacheStats returns projection cache counters.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.memo.Stats())
}

func frequencyOptions() []FrequencyDTO {
	out := make([]FrequencyDTO, len(accrual.Frequencies))
	for i, f := range accrual.Frequencies {
		out[i] = FrequencyDTO{Value: int(f), Name: f.String(), Label: f.Label()}
	}
	return out
}

// =============================================================================
// PROBES
// =============================================================================

// Health reports that the process is serving.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Ready reports whether templates are loaded and the store answers.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.templates == nil {
		http.Error(w, "templates not loaded", http.StatusServiceUnavailable)
		return
	}
	if p, ok := h.Store.(pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			h.Logger.WarnContext(r.Context(), "readiness check failed", logging.FieldError, err)
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// =============================================================================
// HELPERS
// =============================================================================

// writeJSON encodes before writing the status so an encoding failure still
// reaches the client as a 500.
func writeJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(ErrorResponse{Error: "Failed to encode response", Details: err.Error()})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
