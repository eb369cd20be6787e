package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// balanceTolerance absorbs the rounding noise 1C leaves in exported
// quantities. It is fixed; callers never override it per row.
var balanceTolerance = decimal.RequireFromString("0.001")

// Validate checks the accounting identity end = begin + in - out. It is
// pure and total: any combination of inputs yields a result, never an error.
func Validate(q Quantities) ValidationResult {
	expected := q.Begin.Add(q.In).Sub(q.Out)
	diff := q.End.Sub(expected).Abs()

	result := ValidationResult{
		Valid: diff.LessThanOrEqual(balanceTolerance),
		Diff:  diff,
	}
	if !result.Valid {
		result.Error = fmt.Sprintf(
			"balance mismatch: end %s != begin %s + in %s - out %s (diff %s)",
			q.End, q.Begin, q.In, q.Out, diff)
	}
	return result
}
