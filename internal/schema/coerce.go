package schema

import (
	"math"
	"math/big"
	"strconv"

	"github.com/goccy/go-json"
)

// MaxSafeInteger is the largest integer a float64 represents exactly along
// with all of its neighbours (2^53 - 1).
const MaxSafeInteger = 1<<53 - 1

func coerce(p Primitive, v any) (any, *ValidationError) {
	switch p {
	case PrimitiveString:
		return coerceString(v)
	case PrimitiveNumber:
		return coerceNumber(v)
	case PrimitiveBoolean:
		return coerceBoolean(v)
	case PrimitiveBigInteger:
		return toBigInt(v)
	default:
		return nil, newError(ErrInvalidSchema, "unknown primitive %d", int(p))
	}
}

func coerceString(v any) (any, *ValidationError) {
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case *big.Int:
		if s == nil {
			return nil, mismatch(v, "string")
		}
		return s.String(), nil
	case float64:
		if !isFinite(s) {
			return nil, mismatch(v, "string")
		}
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case float32:
		if !isFinite(float64(s)) {
			return nil, mismatch(v, "string")
		}
		return strconv.FormatFloat(float64(s), 'f', -1, 32), nil
	}

	if i, ok := asInt64(v); ok {
		return strconv.FormatInt(i, 10), nil
	}
	if u, ok := asUint64(v); ok {
		return strconv.FormatUint(u, 10), nil
	}

	return nil, mismatch(v, "string")
}

func coerceNumber(v any) (any, *ValidationError) {
	switch n := v.(type) {
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || !isFinite(f) {
			return nil, newError(ErrTypeMismatch, "%q is not a number", n)
		}
		return f, nil
	case *big.Int:
		if n == nil {
			return nil, mismatch(v, "number")
		}
		f, accuracy := new(big.Float).SetInt(n).Float64()
		if accuracy != big.Exact {
			return nil, newError(ErrPrecisionLoss, "%s does not fit a float64", n.String())
		}
		return f, nil
	}

	if f, ok := asFloat64(v); ok {
		return f, nil
	}

	return nil, mismatch(v, "number")
}

func coerceBoolean(v any) (any, *ValidationError) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch b {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return nil, newError(ErrTypeMismatch, "%q is not a boolean", b)
	}

	if f, ok := asFloat64(v); ok {
		switch f {
		case 1:
			return true, nil
		case 0:
			return false, nil
		}
	}

	return nil, mismatch(v, "boolean")
}

// ToBigInt converts v into a new *big.Int.
//
// Accepted inputs are big integers (copied), every fixed-width Go integer,
// json.Number integer literals of any width, and floats that are integral
// and within ±MaxSafeInteger. Floats outside that range, or with a fractional
// part, fail with ErrPrecisionLoss; other types fail with ErrTypeMismatch.
func ToBigInt(v any) (*big.Int, error) {
	b, err := toBigInt(v)
	if err != nil {
		return nil, err
	}
	return b.(*big.Int), nil
}

func toBigInt(v any) (any, *ValidationError) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return nil, mismatch(v, "big integer")
		}
		return new(big.Int).Set(n), nil
	case big.Int:
		return new(big.Int).Set(&n), nil
	case json.Number:
		if b, ok := new(big.Int).SetString(n.String(), 10); ok {
			return b, nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, newError(ErrTypeMismatch, "%q is not a number", n.String())
		}
		return floatToBigInt(f)
	case float64:
		return floatToBigInt(n)
	case float32:
		return floatToBigInt(float64(n))
	}

	if i, ok := asInt64(v); ok {
		return big.NewInt(i), nil
	}
	if u, ok := asUint64(v); ok {
		return new(big.Int).SetUint64(u), nil
	}

	return nil, mismatch(v, "big integer")
}

func floatToBigInt(f float64) (any, *ValidationError) {
	if !isFinite(f) {
		return nil, newError(ErrTypeMismatch, "%v is not a finite number", f)
	}
	if math.Abs(f) > MaxSafeInteger {
		return nil, newError(ErrPrecisionLoss, "%v exceeds the safe integer range", f)
	}
	if f != math.Trunc(f) {
		return nil, newError(ErrPrecisionLoss, "%v is not an integer", f)
	}
	return big.NewInt(int64(f)), nil
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func asUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, isFinite(n)
	case float32:
		return float64(n), isFinite(float64(n))
	case json.Number:
		f, err := n.Float64()
		return f, err == nil && isFinite(f)
	}
	if i, ok := asInt64(v); ok {
		return float64(i), true
	}
	if u, ok := asUint64(v); ok {
		return float64(u), true
	}
	return 0, false
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
