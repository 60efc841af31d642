// Package model defines the planbook domain types: expenses, savings
// goals, tasks, habits and the derived stats views.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Amounts are written as plain JSON numbers everywhere in the process:
// snapshots, exports and reports share one encoding. This is a global
// switch in the decimal package, set once for the planbook binary.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// SeedBalance is the balance of a fresh or cleared budget.
var SeedBalance = decimal.NewFromInt(25000)

// DefaultDescription replaces a blank expense description.
const DefaultDescription = "No description"

// DefaultGoalIcon is used when a savings goal is created without an icon.
const DefaultGoalIcon = "🎯"

// Category is a fixed expense category.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryOther         Category = "other"
)

// CategoryInfo is the display metadata of a Category.
type CategoryInfo struct {
	Name  string
	Icon  string
	Color string
}

var categoryOrder = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealth,
	CategoryEducation,
	CategoryOther,
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryFood:          {Name: "Food", Icon: "🍔", Color: "#4CAF50"},
	CategoryTransport:     {Name: "Transport", Icon: "🚗", Color: "#2196F3"},
	CategoryUtilities:     {Name: "Utilities", Icon: "🏠", Color: "#FF9800"},
	CategoryEntertainment: {Name: "Entertainment", Icon: "🎬", Color: "#9C27B0"},
	CategoryShopping:      {Name: "Shopping", Icon: "🛍️", Color: "#E91E63"},
	CategoryHealth:        {Name: "Health", Icon: "💊", Color: "#00BCD4"},
	CategoryEducation:     {Name: "Education", Icon: "📚", Color: "#8BC34A"},
	CategoryOther:         {Name: "Other", Icon: "🔶", Color: "#607D8B"},
}

// Categories returns every expense category in catalog order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// Info returns display metadata, falling back to "other" for unknown values.
func (c Category) Info() CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return categoryInfo[CategoryOther]
}

// ParseCategory accepts a category key case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown expense category %q", s)
	}
	return c, nil
}

// Expense is a single spend taken from the balance.
type Expense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// SavingsGoal accumulates money moved out of the balance.
// Current may exceed Target; reaching the target does not lock the goal.
type SavingsGoal struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Target    decimal.Decimal `json:"target"`
	Current   decimal.Decimal `json:"current"`
	Deadline  *Date           `json:"deadline,omitempty"`
	Icon      string          `json:"icon"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Percent returns progress toward the target, unrounded.
func (g SavingsGoal) Percent() float64 {
	if !g.Target.IsPositive() {
		return 0
	}
	return g.Current.Div(g.Target).Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// Reached reports whether the goal has met its target.
func (g SavingsGoal) Reached() bool {
	return g.Current.GreaterThanOrEqual(g.Target)
}

// Remaining is the amount still needed, never negative.
func (g SavingsGoal) Remaining() decimal.Decimal {
	rem := g.Target.Sub(g.Current)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}
