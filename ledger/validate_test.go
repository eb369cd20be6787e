package ledger

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func q(begin, in, out, end string) Quantities {
	return Quantities{
		Begin: decimal.RequireFromString(begin),
		In:    decimal.RequireFromString(in),
		Out:   decimal.RequireFromString(out),
		End:   decimal.RequireFromString(end),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		qty   Quantities
		valid bool
		diff  string
	}{
		{
			name:  "exact balance",
			qty:   q("10", "5", "3", "12"),
			valid: true,
			diff:  "0",
		},
		{
			name:  "all zero",
			qty:   q("0", "0", "0", "0"),
			valid: true,
			diff:  "0",
		},
		{
			name:  "within tolerance",
			qty:   q("10", "0", "0", "10.0009"),
			valid: true,
			diff:  "0.0009",
		},
		{
			name:  "at tolerance boundary",
			qty:   q("10", "0", "0", "10.001"),
			valid: true,
			diff:  "0.001",
		},
		{
			name:  "just beyond tolerance",
			qty:   q("10", "0", "0", "10.0011"),
			valid: false,
			diff:  "0.0011",
		},
		{
			name:  "gross mismatch",
			qty:   q("100", "50", "30", "90"),
			valid: false,
			diff:  "30",
		},
		{
			name:  "negative direction",
			qty:   q("10", "0", "0", "9.5"),
			valid: false,
			diff:  "0.5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.qty)
			assert.Equal(t, tt.valid, result.Valid)
			assert.True(t, decimal.RequireFromString(tt.diff).Equal(result.Diff),
				"diff = %s, want %s", result.Diff, tt.diff)
			if tt.valid {
				assert.Equal(t, "", result.Error)
			} else {
				assert.NotEqual(t, "", result.Error)
			}
		})
	}
}
