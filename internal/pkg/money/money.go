package money

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Normalize converts a loosely typed amount into a decimal.
// Missing, NaN, infinite or non-numeric input yields zero.
func Normalize(raw any) decimal.Decimal {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero
		}
		return *v
	case decimal.NullDecimal:
		if !v.Valid {
			return decimal.Zero
		}
		return v.Decimal
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(v)
	case float32:
		return Normalize(float64(v))
	case json.Number:
		return Normalize(string(v))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Format renders two decimal places, e.g. "1234.50".
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
