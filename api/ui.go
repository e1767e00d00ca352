/*
ui.go - Calculator page and HTMX fragment

PURPOSE:
  Server-rendered calculator. The page posts the whole form to
  /ui/projection on every input change; the response replaces the result
  panel (final balance, chart, yearly table). The chart config travels in a
  data attribute and web/static/app.js hands it to Chart.js.

FLOW:
  GET  /                    full page, defaults or ?preset=<id>
  POST /ui/projection       result fragment
                            coerce policy: always 200, adjustments listed
                            reject policy: 422 + field messages
*/
package api

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/accruemind/accrual-engine/accrual"
	"github.com/accruemind/accrual-engine/chart"
	"github.com/accruemind/accrual-engine/logging"
	"github.com/accruemind/accrual-engine/presets"
)

var fieldLabels = map[string]string{
	formPrincipal:             "Initial Deposit",
	formRate:                  "Rate of Return",
	formYears:                 "Years of Growth",
	formCompoundFrequency:     "Compound Frequency",
	formContribution:          "Contribution Amount",
	formContributionFrequency: "Contribution Frequency",
}

var templateFuncs = template.FuncMap{
	"fieldLabel": func(field string) string {
		if label, ok := fieldLabels[field]; ok {
			return label
		}
		return field
	},
}

// =============================================================================
// VIEW MODELS
// =============================================================================

type frequencyOption struct {
	Value    int
	Label    string
	Selected bool
}

type formView struct {
	Values              map[string]string
	CompoundOptions     []frequencyOption
	ContributionOptions []frequencyOption
}

type presetOption struct {
	ID       string
	Name     string
	Category string
	Selected bool
}

type rowView struct {
	Year         int
	CalendarYear int
	Balance      string
	Contributed  string
	Interest     string
}

type projectionView struct {
	FinalDisplay  string
	Positive      bool
	Title         string
	ChartJSON     string
	Principal     string
	Contributions string
	Interest      string
	Rows          []rowView
	Warnings      []string
	Adjustments   []FieldErrorDTO
	Errors        []FieldErrorDTO
}

type pageData struct {
	Title      string
	Form       formView
	Presets    []presetOption
	Preset     *presets.Preset
	Projection projectionView
}

func frequencySelect(selected accrual.Frequency) []frequencyOption {
	opts := make([]frequencyOption, 0, len(accrual.Frequencies)+1)
	found := false
	for _, f := range accrual.Frequencies {
		opts = append(opts, frequencyOption{Value: int(f), Label: f.Label(), Selected: f == selected})
		found = found || f == selected
	}
	if !found && selected > 0 {
		opts = append(opts, frequencyOption{Value: int(selected), Label: selected.Label(), Selected: true})
	}
	return opts
}

func newFormView(in accrual.Inputs, loc accrual.Locale) formView {
	return formView{
		Values:              formValuesFor(in, loc),
		CompoundOptions:     frequencySelect(in.CompoundsPerYear),
		ContributionOptions: frequencySelect(in.ContributionsPerYear),
	}
}

func (h *Handler) newProjectionView(in accrual.Inputs, loc accrual.Locale) (projectionView, error) {
	dto := h.buildProjectionDTO(in, loc)

	chartJSON, err := json.Marshal(dto.Chart)
	if err != nil {
		return projectionView{}, err
	}

	p, _ := h.project(in)
	rows := make([]rowView, len(p.Breakdown))
	for i, row := range p.Breakdown {
		rows[i] = rowView{
			Year:         row.Year,
			CalendarYear: dto.Breakdown[i].CalendarYear,
			Balance:      accrual.FormatCurrency(row.Balance, loc),
			Contributed:  accrual.FormatCurrency(row.Contributed, loc),
			Interest:     accrual.FormatCurrency(row.Interest, loc),
		}
	}

	return projectionView{
		FinalDisplay:  dto.FinalDisplay,
		Positive:      dto.Positive,
		Title:         chart.Title(in.Years),
		ChartJSON:     string(chartJSON),
		Principal:     accrual.FormatCurrency(p.Summary.Principal, loc),
		Contributions: accrual.FormatCurrency(p.Summary.TotalContributions, loc),
		Interest:      accrual.FormatCurrency(p.Summary.TotalInterest, loc),
		Rows:          rows,
		Warnings:      dto.Warnings,
	}, nil
}

// =============================================================================
// HANDLERS
// =============================================================================

// Index renders the calculator page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	loc := negotiateLocale(r, h.Options.DefaultLocale)
	in := accrual.DefaultInputs()

	selected := h.preset(r.URL.Query().Get("preset"))
	if selected != nil {
		in = selected.Inputs
	}

	view, err := h.newProjectionView(in, loc)
	if err != nil {
		h.renderFailure(w, r, err)
		return
	}

	var options []presetOption
	for _, p := range h.presetList() {
		options = append(options, presetOption{
			ID:       p.ID,
			Name:     p.Name,
			Category: string(p.Category),
			Selected: selected != nil && p.ID == selected.ID,
		})
	}

	data := pageData{
		Title:      "Compound Interest Calculator",
		Form:       newFormView(in, loc),
		Presets:    options,
		Preset:     selected,
		Projection: view,
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		h.renderFailure(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// ProjectionPartial recomputes the result panel from the posted form.
func (h *Handler) ProjectionPartial(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	loc := negotiateLocale(r, h.Options.DefaultLocale)
	in, parseErrs := parseInputValues(r.PostForm.Get, loc)
	in, fieldErrs, ok := applyInputPolicy(in, parseErrs, h.Options.InputPolicy)
	if ok {
		in, fieldErrs, ok = h.settleOverflow(in, fieldErrs)
	}

	builder := NewHTMXResponse()
	var view projectionView
	if !ok {
		view = projectionView{Errors: fieldErrs}
		builder.Status(http.StatusUnprocessableEntity).TriggerInputsRejected(fieldErrs)
	} else {
		var err error
		view, err = h.newProjectionView(in, loc)
		if err != nil {
			h.renderFailure(w, r, err)
			return
		}
		view.Adjustments = fieldErrs
		builder.TriggerProjectionUpdated(view.FinalDisplay, view.Positive)
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "projection.html", view); err != nil {
		h.renderFailure(w, r, err)
		return
	}
	if err := builder.HTML(buf.Bytes()).Write(w); err != nil {
		h.Logger.ErrorContext(r.Context(), "write projection fragment", logging.FieldError, err)
	}
}

func (h *Handler) renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	h.Logger.ErrorContext(r.Context(), "template rendering failed", logging.FieldError, err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
