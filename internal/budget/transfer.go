package budget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/theirongolddev/planbook/internal/model"
	"github.com/theirongolddev/planbook/internal/notify"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ExportDocument is the on-disk backup format of the budget.
type ExportDocument struct {
	Expenses     []model.Expense     `json:"expenses"`
	SavingsGoals []model.SavingsGoal `json:"savingsGoals"`
	Balance      decimal.Decimal     `json:"balance"`
	Savings      decimal.Decimal     `json:"savings"`
	ExportedAt   time.Time           `json:"exportedAt"`
}

// Export snapshots the full budget state.
func (t *Tracker) Export() ExportDocument {
	doc := ExportDocument{
		Expenses:     slices.Clone(t.expenses),
		SavingsGoals: slices.Clone(t.goals),
		Balance:      t.balance,
		Savings:      t.savings,
		ExportedAt:   t.clock.Now(),
	}
	if doc.Expenses == nil {
		doc.Expenses = []model.Expense{}
	}
	if doc.SavingsGoals == nil {
		doc.SavingsGoals = []model.SavingsGoal{}
	}
	return doc
}

// ExportJSON renders Export as indented JSON.
func (t *Tracker) ExportJSON() ([]byte, error) {
	data, err := json.MarshalIndent(t.Export(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}

// ExportFilename names a backup taken at now.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("budget-data-%s.json", now.Format(model.DateLayout))
}

// ImportResult is a validated import document, ready to apply.
type ImportResult struct {
	Expenses     []model.Expense
	SavingsGoals []model.SavingsGoal
	Balance      decimal.Decimal
	Savings      decimal.Decimal
	ExportedAt   *time.Time
}

// ValidateImport checks data against the export shape. It returns either a
// usable result or the list of everything wrong with the document.
func ValidateImport(data []byte) (ImportResult, []Violation) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return ImportResult{}, []Violation{{Problem: "document is not a JSON object"}}
	}

	var (
		res        ImportResult
		violations []Violation
	)
	add := func(field, format string, args ...any) {
		violations = append(violations, Violation{Field: field, Problem: fmt.Sprintf(format, args...)})
	}

	if !decodeArray(raw, "expenses", &res.Expenses, add) {
		res.Expenses = nil
	}
	for i, e := range res.Expenses {
		field := fmt.Sprintf("expenses[%d]", i)
		if e.ID == "" {
			add(field+".id", "missing")
		}
		if !e.Amount.IsPositive() {
			add(field+".amount", "must be positive")
		}
		if !e.Category.Valid() {
			add(field+".category", "unknown category %q", e.Category)
		}
		if !e.Date.Valid() {
			add(field+".date", "invalid date %q", e.Date)
		}
	}

	if !decodeArray(raw, "savingsGoals", &res.SavingsGoals, add) {
		res.SavingsGoals = nil
	}
	for i := range res.SavingsGoals {
		g := &res.SavingsGoals[i]
		field := fmt.Sprintf("savingsGoals[%d]", i)
		if g.ID == "" {
			add(field+".id", "missing")
		}
		if g.Name == "" {
			add(field+".name", "missing")
		}
		if !g.Target.IsPositive() {
			add(field+".target", "must be positive")
		}
		if g.Current.IsNegative() {
			add(field+".current", "must not be negative")
		}
		if g.Deadline != nil && *g.Deadline == "" {
			g.Deadline = nil
		}
		if g.Deadline != nil && !g.Deadline.Valid() {
			add(field+".deadline", "invalid date %q", *g.Deadline)
		}
	}

	if msg, ok := raw["balance"]; !ok || isNull(msg) {
		add("balance", "missing")
	} else if err := json.Unmarshal(msg, &res.Balance); err != nil {
		add("balance", "must be a number")
	}

	res.Savings = decimal.Zero
	if msg, ok := raw["savings"]; ok && !isNull(msg) {
		if err := json.Unmarshal(msg, &res.Savings); err != nil {
			add("savings", "must be a number")
		}
	}

	if msg, ok := raw["exportedAt"]; ok && !isNull(msg) {
		var at time.Time
		if err := json.Unmarshal(msg, &at); err == nil {
			res.ExportedAt = &at
		}
	}

	if len(violations) > 0 {
		return ImportResult{}, violations
	}
	return res, nil
}

func decodeArray[T any](raw map[string]json.RawMessage, key string, dst *[]T, add func(string, string, ...any)) bool {
	msg, ok := raw[key]
	if !ok || isNull(msg) {
		add(key, "missing")
		return false
	}
	if err := json.Unmarshal(msg, dst); err != nil {
		add(key, "must be an array of records: %v", err)
		return false
	}
	if *dst == nil {
		*dst = []T{}
	}
	return true
}

func isNull(msg json.RawMessage) bool {
	return len(bytes.TrimSpace(msg)) == 0 || bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}

// Import validates data and, if it is well formed, replaces the whole
// budget with it. A rejected document leaves state untouched.
func (t *Tracker) Import(data []byte) error {
	res, violations := ValidateImport(data)
	if len(violations) > 0 {
		err := &ImportError{Violations: violations}
		log.WithField("problems", len(violations)).Debug(err.Error())
		t.notes.Notify(notify.Error, "Import failed: the file is not a budget backup")
		return err
	}
	t.Apply(res)
	return nil
}

// Apply replaces the budget state with a validated import.
func (t *Tracker) Apply(res ImportResult) {
	t.expenses = slices.Clone(res.Expenses)
	t.goals = slices.Clone(res.SavingsGoals)
	t.balance = res.Balance
	t.savings = res.Savings
	t.persistAll()
	t.notes.Notify(notify.Success, "Data imported")
}
