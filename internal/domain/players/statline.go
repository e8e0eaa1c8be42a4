package players

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// StatLine maps stat names to raw upstream values (numbers or numeric strings).
type StatLine map[string]any

// Has reports whether the stat is present at all, numeric or not.
func (s StatLine) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Float returns the normalized numeric value of a stat.
func (s StatLine) Float(name string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	raw, ok := s[name]
	if !ok {
		return 0, false
	}
	return Value(raw)
}

// Clone returns a shallow copy so callers cannot mutate cached lines.
func (s StatLine) Clone() StatLine {
	out := make(StatLine, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Value coerces an upstream stat value to float64.
// Non-numeric strings ("-.--", "", "NaN"), non-finite numbers and other types report false.
func Value(val any) (float64, bool) {
	f, ok := rawValue(val)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func rawValue(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
