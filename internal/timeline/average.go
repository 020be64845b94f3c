package timeline

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CalculateAverage returns the arithmetic mean of the numeric entries in
// values, or defaultValue when there are none. Nil pointers, nil interfaces
// and non-numeric values are skipped; numeric strings count.
func CalculateAverage[T any](values []T, defaultValue float64) float64 {
	var sum float64
	n := 0
	for _, v := range values {
		f, ok := toFloat(any(v))
		if !ok {
			continue
		}
		sum += f
		n++
	}
	if n == 0 {
		return defaultValue
	}
	return sum / float64(n)
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case *float64:
		if x == nil {
			return 0, false
		}
		f = *x
	case *int:
		if x == nil {
			return 0, false
		}
		f = float64(*x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// roundTo rounds half up to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Floor(v*scale+0.5) / scale
}
