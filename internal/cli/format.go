// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/planbook/internal/model"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the symbol used when none is configured.
const DefaultCurrency = "₽"

// FormatMoney formats an amount with thousands separators. Whole amounts
// drop the fraction: 25000 -> "₽25,000", 12.5 -> "₽12.50".
func FormatMoney(d decimal.Decimal, symbol string) string {
	if d.IsNegative() {
		return "-" + FormatMoney(d.Neg(), symbol)
	}
	r := d.Round(2)
	whole := r.Truncate(0)
	s := symbol + humanize.Comma(whole.IntPart())
	if frac := r.Sub(whole); !frac.IsZero() {
		s += strings.TrimPrefix(frac.StringFixed(2), "0")
	}
	return s
}

// Money returns a formatter bound to symbol.
func Money(symbol string) func(decimal.Decimal) string {
	if symbol == "" {
		symbol = DefaultCurrency
	}
	return func(d decimal.Decimal) string { return FormatMoney(d, symbol) }
}

// FormatDelta formats a signed change in money.
func FormatDelta(current, previous decimal.Decimal, symbol string) string {
	delta := current.Sub(previous)
	if delta.IsNegative() {
		return FormatMoney(delta, symbol)
	}
	return "+" + FormatMoney(delta, symbol)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a whole-number percentage.
func FormatPercent(pct int) string {
	return fmt.Sprintf("%d%%", pct)
}

// FormatShare formats a 0-100 float with one decimal.
func FormatShare(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatAgo renders t relative to now, e.g. "3 hours ago".
func FormatAgo(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatDate renders a calendar date as "Wed, Mar 12".
func FormatDate(d model.Date) string {
	t := d.Time(time.UTC)
	if t.IsZero() {
		return string(d)
	}
	return t.Format("Mon, Jan 2")
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// MondayFirstDays are the column headers of calendar views.
var MondayFirstDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Truncate shortens s to n runes with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
