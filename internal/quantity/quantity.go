// Package quantity parses user-entered calorie amounts.
//
// Besides plain integers it accepts small arithmetic expressions such as
// "250+180" or "2*95", so a meal can be totalled at the prompt.
package quantity

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
)

// ErrNotNumeric is returned when the input does not evaluate to a number.
var ErrNotNumeric = errors.New("quantity: not a number")

// maxMagnitude bounds parsed values so a stray expression can't overflow day totals.
const maxMagnitude = 1_000_000

// Parse returns the integer value of s. Fractional results are rounded
// to the nearest whole calorie.
func Parse(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrNotNumeric
	}

	if n, err := strconv.Atoi(s); err == nil {
		return bounded(n)
	}

	program, err := expr.Compile(s, expr.Env(map[string]any{}))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	out, err := expr.Run(program, map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}

	var f float64
	switch v := out.(type) {
	case int:
		return bounded(v)
	case int64:
		f = float64(v)
	case float64:
		f = v
	default:
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	if math.Abs(f) > maxMagnitude {
		return 0, fmt.Errorf("quantity: %q out of range", s)
	}
	return int(math.Round(f)), nil
}

func bounded(n int) (int, error) {
	if n > maxMagnitude || n < -maxMagnitude {
		return 0, fmt.Errorf("quantity: %d out of range", n)
	}
	return n, nil
}
