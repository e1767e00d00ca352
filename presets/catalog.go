package presets

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// PRESET DOCUMENTS
// =============================================================================
// These build JSON strings directly so the factory package can import
// presets without a cycle.

func planJSON(id, name, description string, category Category, principal, rate, years float64,
	compounding string, amount float64, contributionFrequency string) string {
	doc := map[string]interface{}{
		"id":                  id,
		"name":                name,
		"description":         description,
		"category":            string(category),
		"principal":           principal,
		"annual_rate_percent": rate,
		"years":               years,
		"compound_frequency":  compounding,
	}
	if amount > 0 {
		doc["contribution"] = map[string]interface{}{
			"amount":    amount,
			"frequency": contributionFrequency,
		}
	}
	b, _ := json.MarshalIndent(doc, "", "  ")
	return string(b)
}

// StarterJSON mirrors the calculator's opening values.
func StarterJSON(id, name string) string {
	return planJSON(id, name, "The calculator defaults: no growth, steady monthly saving.",
		CategorySavings, 5000, 0, 5, "monthly", 100, "monthly")
}

// RetirementJSON is a long horizon, market-like return, monthly saving.
func RetirementJSON(id, name string, principal, monthly, years float64) string {
	return planJSON(id, name, "Long-term index investing with a monthly contribution.",
		CategoryRetirement, principal, 7, years, "monthly", monthly, "monthly")
}

// CollegeFundJSON saves quarterly for a child's education.
func CollegeFundJSON(id, name string, quarterly float64) string {
	return planJSON(id, name, "Eighteen years of quarterly deposits for tuition.",
		CategoryEducation, 2000, 5, 18, "quarterly", quarterly, "quarterly")
}

// EmergencyFundJSON is a high-yield savings account with daily compounding.
func EmergencyFundJSON(id, name string, monthly float64) string {
	return planJSON(id, name, "High-yield savings account, daily interest, monthly top-ups.",
		CategorySavings, 1000, 4.5, 3, "daily", monthly, "monthly")
}

// CertificateJSON is a single deposit with no contributions.
func CertificateJSON(id, name string, principal, rate, years float64) string {
	return planJSON(id, name, "Single deposit left to compound, no further contributions.",
		CategorySavings, principal, rate, years, "semi-annually", 0, "")
}

// CreditCardJSON shows how an unpaid balance grows at a card APR.
func CreditCardJSON(id, name string, balance float64) string {
	return planJSON(id, name, "An unpaid balance compounding daily at a typical card APR.",
		CategoryDebt, balance, 22.9, 5, "daily", 0, "")
}

// Catalog returns the built-in preset documents.
func Catalog() []string {
	return []string{
		StarterJSON("starter", "Calculator Defaults"),
		RetirementJSON("retirement-30y", "Retirement (30 years)", 10000, 500, 30),
		CollegeFundJSON("college-fund", "College Fund", 750),
		EmergencyFundJSON("emergency-fund", "Emergency Fund", 200),
		CertificateJSON("cd-5y", "5-Year Certificate", 25000, 4.25, 5),
		CreditCardJSON("credit-card", "Credit Card Balance", 3000),
	}
}

// LoadFile reads extra preset documents from a JSON array file.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets file: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse presets file %s: %w", path, err)
	}

	docs := make([]string, len(raw))
	for i, r := range raw {
		docs[i] = string(r)
	}
	return docs, nil
}
