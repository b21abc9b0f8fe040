// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatCalories formats a calorie count, e.g. 1850 -> "1,850 kcal".
func FormatCalories(n int) string {
	return FormatNumber(int64(n)) + " kcal"
}

// FormatSigned formats an adjustment with an explicit sign.
// e.g., 50 -> "+50", -500 -> "-500"
func FormatSigned(n int) string {
	if n > 0 {
		return "+" + FormatNumber(int64(n))
	}
	return FormatNumber(int64(n))
}

// FormatLbs formats a weekly weight change in pounds.
func FormatLbs(lbs float64) string {
	return fmt.Sprintf("%.1f lbs/wk", lbs)
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.0f%%", pct)
}

// FormatBalance describes a day's calories against the goal from the
// goal's side, e.g. "350 deficit" or "200 surplus".
func FormatBalance(calories, goal int) string {
	diff := goal - calories
	if diff >= 0 {
		return FormatNumber(int64(diff)) + " deficit"
	}
	return FormatNumber(int64(-diff)) + " surplus"
}
