package cellsheet

import (
	"math"
	"strconv"
)

// ErrorKind enumerates the in-band formula evaluation error categories.
// These are legal values, not Go errors: they are cached and propagate
// through consuming formulas like any other result.
type ErrorKind uint8

const (
	// RefError marks a reference outside the position grid, or otherwise
	// invalid.
	RefError ErrorKind = iota
	// ValueError marks an operand that cannot be coerced to a number.
	ValueError
	// ArithmeticError marks a non-finite arithmetic result (e.g. division
	// by zero).
	ArithmeticError
)

func (k ErrorKind) String() string {
	switch k {
	case RefError:
		return "REF"
	case ValueError:
		return "VALUE"
	case ArithmeticError:
		return "ARITHMETIC"
	default:
		return "ERROR"
	}
}

// ValueKind tags which branch of Value is populated.
type ValueKind uint8

const (
	KindNumber ValueKind = iota
	KindText
	KindError
)

// Value is the tagged union FormulaValue: a Number, a Text, or an Error.
// It is the result type for both cell content evaluation and formula
// operand coercion.
type Value struct {
	Kind ValueKind
	Num  float64
	Text string
	Err  ErrorKind
}

// NumberValue builds a Number Value.
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// TextValue builds a Text Value.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// ErrorValue builds an Error Value of the given category.
func ErrorValue(k ErrorKind) Value { return Value{Kind: KindError, Err: k} }

// String renders the value the way a rendered cell would show it: the
// platform default double formatting for numbers, the raw text for Text,
// and "#<Category>!" for errors.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return formatNumber(v.Num)
	case KindText:
		return v.Text
	case KindError:
		return "#" + v.Err.String() + "!"
	default:
		return ""
	}
}

// formatNumber renders a float64 using the platform's default double
// formatting (shortest round-trippable decimal representation).
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func isNonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// coerceOperand applies the spec's §4.2 operand coercion rules for using
// v as a numeric operand in arithmetic. It returns the coerced number, or
// a non-nil error Value to propagate unchanged (aborting evaluation).
func coerceOperand(v Value) (float64, *Value) {
	switch v.Kind {
	case KindNumber:
		return v.Num, nil
	case KindText:
		if v.Text == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(v.Text, 64)
		if err != nil || isNonFinite(f) {
			ev := ErrorValue(ValueError)
			return 0, &ev
		}
		return f, nil
	case KindError:
		ev := v
		return 0, &ev
	default:
		return 0, nil
	}
}
