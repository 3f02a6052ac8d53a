package dataset

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies the type held by a Value
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindDate
)

// DateLayout is the layout used when a date cell is rendered as text
const DateLayout = "2006-01-02"

// Value is a single table cell. The zero Value is null.
type Value struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
	Date  time.Time
}

// Null returns the missing value
func Null() Value {
	return Value{}
}

// StringValue wraps a string cell
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// IntValue wraps an integer cell
func IntValue(n int64) Value {
	return Value{Kind: KindInt, Int: n}
}

// FloatValue wraps a floating point cell
func FloatValue(f float64) Value {
	return Value{Kind: KindFloat, Float: f}
}

// DateValue wraps a calendar date. The time of day is dropped.
func DateValue(t time.Time) Value {
	y, m, d := t.Date()
	return Value{Kind: KindDate, Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// IsNull reports whether the cell is missing
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// String renders the cell as text. Null renders as the empty string.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case KindDate:
		return v.Date.Format(DateLayout)
	default:
		return ""
	}
}

// Number returns the numeric value of the cell. Strings are parsed; dates and
// nulls are not numbers.
func (v Value) Number() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Interface converts the cell to a JSON friendly Go value
func (v Value) Interface() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindDate:
		return v.Date.Format(DateLayout)
	default:
		return nil
	}
}

// toInt coerces a cell to an integer, returning null when it cannot
func toInt(v Value) Value {
	switch v.Kind {
	case KindInt, KindNull:
		return v
	case KindFloat:
		if v.Float != float64(int64(v.Float)) {
			return Null()
		}
		return IntValue(int64(v.Float))
	case KindString:
		s := strings.TrimSpace(v.Str)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntValue(n)
		}
		// "12.0" is how pandas writes an integer column that once held NaN
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
			return IntValue(int64(f))
		}
		return Null()
	default:
		return Null()
	}
}
