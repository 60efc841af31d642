package budget

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors. They are returned before any state changes.
var (
	ErrInvalidAmount     = errors.New("amount must be a positive number")
	ErrInsufficientFunds = errors.New("not enough money on the balance")
	ErrInvalidCategory   = errors.New("unknown expense category")
	ErrInvalidDate       = errors.New("date must be YYYY-MM-DD")
	ErrEmptyName         = errors.New("goal name is required")
	ErrGoalNotFound      = errors.New("savings goal not found")
)

// Violation is one structural problem found in an import document.
type Violation struct {
	Field   string
	Problem string
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Problem
	}
	return v.Field + ": " + v.Problem
}

// ImportError rejects an import document as a whole.
type ImportError struct {
	Violations []Violation
}

func (e *ImportError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("import rejected (%d problems): %s", len(e.Violations), strings.Join(parts, "; "))
}
