/*
forms.go - Input boundary: parsing, policy and locale

PURPOSE:
  Every value that reaches the engine passes through here. Raw strings
  from forms or query strings are parsed with the request locale, then the
  configured input policy decides what to do with bad values:

    coerce  unparsable or out-of-range fields become safe values and the
            calculation still runs; the adjustments are reported
    reject  any bad field fails the request with 422 and per-field messages

  Safe values: amounts, rate and years fall back to 0, frequencies to 1,
  and a horizon longer than the engine limit is clamped to the limit.
  Non-finite numbers never reach the engine under either policy.

FIELDS (form and query names):
  principal, rate, years, compound_frequency, contribution,
  contribution_frequency

LOCALE:
  Negotiated from ?locale= or Accept-Language among en, de, fr, it.
*/
package api

import (
	"fmt"
	"math"
	"net/http"

	"golang.org/x/text/language"

	"github.com/accruemind/accrual-engine/accrual"
	"github.com/accruemind/accrual-engine/config"
)

// Form field names.
const (
	formPrincipal             = "principal"
	formRate                  = "rate"
	formYears                 = "years"
	formCompoundFrequency     = "compound_frequency"
	formContribution          = "contribution"
	formContributionFrequency = "contribution_frequency"
)

// overflowMessage follows the field label in notices and 422 responses.
const overflowMessage = "makes the balance too large to represent"

// formFields maps engine field names to form field names.
var formFields = map[string]string{
	accrual.FieldPrincipal:            formPrincipal,
	accrual.FieldRate:                 formRate,
	accrual.FieldYears:                formYears,
	accrual.FieldCompoundsPerYear:     formCompoundFrequency,
	accrual.FieldContributionAmount:   formContribution,
	accrual.FieldContributionsPerYear: formContributionFrequency,
}

// =============================================================================
// LOCALES
// =============================================================================

var (
	supportedTags = []language.Tag{language.English, language.German, language.French, language.Italian}
	localeByIndex = []accrual.Locale{accrual.LocaleEN, accrual.LocaleDE, accrual.LocaleFR, accrual.LocaleIT}
	localeMatcher = language.NewMatcher(supportedTags)
)

// negotiateLocale picks separators for r. An explicit ?locale= wins over
// Accept-Language; fallback is used when nothing matches.
func negotiateLocale(r *http.Request, fallback string) accrual.Locale {
	var tags []language.Tag
	if q := r.URL.Query().Get("locale"); q != "" {
		if tag, err := language.Parse(q); err == nil {
			tags = append(tags, tag)
		}
	}
	if accept, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language")); err == nil {
		tags = append(tags, accept...)
	}

	if len(tags) > 0 {
		if _, idx, conf := localeMatcher.Match(tags...); conf != language.No {
			return localeByIndex[idx]
		}
	}
	return lookupLocale(fallback)
}

func lookupLocale(name string) accrual.Locale {
	tag, err := language.Parse(name)
	if err != nil {
		return accrual.LocaleEN
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return accrual.LocaleEN
	}
	return localeByIndex[idx]
}

// =============================================================================
// PARSING
// =============================================================================

// parseInputValues reads the six calculator fields through get. Fields that
// fail to parse are left at zero and reported.
func parseInputValues(get func(string) string, loc accrual.Locale) (accrual.Inputs, []FieldErrorDTO) {
	var in accrual.Inputs
	var errs []FieldErrorDTO

	amount := func(field string, dst *float64) {
		raw := get(field)
		v, err := accrual.ParseAmount(raw, loc)
		if err != nil {
			errs = append(errs, FieldErrorDTO{Field: field, Value: raw, Message: "must be a number"})
			return
		}
		*dst = v
	}
	frequency := func(field string, dst *accrual.Frequency) {
		raw := get(field)
		if raw == "" {
			errs = append(errs, FieldErrorDTO{Field: field, Value: raw, Message: "is required"})
			return
		}
		f, err := accrual.ParseFrequency(raw)
		if err != nil {
			errs = append(errs, FieldErrorDTO{Field: field, Value: raw, Message: "must be a frequency name or a positive whole number"})
			return
		}
		*dst = f
	}

	amount(formPrincipal, &in.Principal)
	amount(formRate, &in.AnnualRatePercent)
	amount(formYears, &in.Years)
	frequency(formCompoundFrequency, &in.CompoundsPerYear)
	amount(formContribution, &in.ContributionAmount)
	frequency(formContributionFrequency, &in.ContributionsPerYear)

	return in, errs
}

// applyInputPolicy merges parse errors with domain problems and applies the
// policy. Under reject a non-empty error list means the request must fail.
// Under coerce the returned Inputs are always valid and the list describes
// what was adjusted.
func applyInputPolicy(in accrual.Inputs, parseErrs []FieldErrorDTO, policy string) (accrual.Inputs, []FieldErrorDTO, bool) {
	errs := append([]FieldErrorDTO(nil), parseErrs...)
	reported := make(map[string]bool, len(errs))
	for _, e := range errs {
		reported[e.Field] = true
	}

	for _, p := range in.Problems() {
		field := formFields[p.Field]
		if reported[field] {
			continue
		}
		reported[field] = true
		errs = append(errs, FieldErrorDTO{Field: field, Value: fmt.Sprint(p.Value), Message: p.Err.Error()})
	}

	if policy == config.InputPolicyReject {
		return in, errs, len(errs) == 0
	}

	return coerceInputs(in), errs, true
}

// coerceInputs replaces every out-of-domain field with its safe value.
func coerceInputs(in accrual.Inputs) accrual.Inputs {
	clean := func(v float64, allowNegative bool) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) || (!allowNegative && v < 0) {
			return 0
		}
		return v
	}

	in.Principal = clean(in.Principal, false)
	in.AnnualRatePercent = clean(in.AnnualRatePercent, true)
	in.Years = clean(in.Years, false)
	in.ContributionAmount = clean(in.ContributionAmount, false)
	if in.CompoundsPerYear <= 0 {
		in.CompoundsPerYear = accrual.Annually
	}
	if in.ContributionsPerYear <= 0 {
		in.ContributionsPerYear = accrual.Annually
	}
	if accrual.Periods(in) > accrual.MaxPeriods {
		in.Years = accrual.MaxYears(in.CompoundsPerYear)
	}
	return in
}

// formValuesFor renders in the way the form inputs display it.
func formValuesFor(in accrual.Inputs, loc accrual.Locale) map[string]string {
	return map[string]string{
		formPrincipal:             accrual.FormatWithCommas(in.Principal, loc),
		formRate:                  accrual.FormatWithCommas(in.AnnualRatePercent, loc),
		formYears:                 accrual.FormatWithCommas(in.Years, loc),
		formCompoundFrequency:     fmt.Sprint(int(in.CompoundsPerYear)),
		formContribution:          accrual.FormatWithCommas(in.ContributionAmount, loc),
		formContributionFrequency: fmt.Sprint(int(in.ContributionsPerYear)),
	}
}
