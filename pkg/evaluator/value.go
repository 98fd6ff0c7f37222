package evaluator

import (
	"strconv"

	"github.com/rverma/filmi/pkg/ast"
)

// Value is the interface for all Filmi runtime values. The sealed marker
// method restricts implementations to this package.
type Value interface {
	filmiValue() // sealed marker
}

// Unit is the language's single nullary value, produced by 'khaali' and by
// functions whose control flow falls off the end without returning.
type Unit struct{}

func (Unit) filmiValue() {}

// Bool wraps a boolean.
type Bool struct {
	Value bool
}

func (Bool) filmiValue() {}

// Number wraps a float64; the language has no separate integer type.
type Number struct {
	Value float64
}

func (Number) filmiValue() {}

// String wraps a string.
type String struct {
	Value string
}

func (String) filmiValue() {}

// Function is a user-defined function value capturing its defining
// environment, not the caller's — this is what gives closures their
// lexical-scoping behavior.
type Function struct {
	Decl    *ast.FuncDecl
	Closure *Env
}

func (Function) filmiValue() {}

func NewUnit() Value             { return Unit{} }
func NewBool(b bool) Value       { return Bool{Value: b} }
func NewNumber(n float64) Value  { return Number{Value: n} }
func NewString(s string) Value   { return String{Value: s} }

// Truthiness returns the boolean interpretation of a value. Only the unit
// value and the boolean false are falsy; every other value, including the
// number 0 and the empty string, is truthy.
func Truthiness(v Value) bool {
	switch val := v.(type) {
	case Unit:
		return false
	case Bool:
		return val.Value
	default:
		return true
	}
}

// Stringify renders a value the way 'ek baat bataun:' prints it.
func Stringify(v Value) string {
	switch val := v.(type) {
	case Unit:
		return "khaali"
	case Bool:
		if val.Value {
			return "sach"
		}
		return "galat"
	case Number:
		return formatNumber(val.Value)
	case String:
		return val.Value
	case Function:
		return "<function " + val.Decl.Name + ">"
	default:
		return ""
	}
}

// formatNumber renders integral values without a trailing decimal point and
// uses the shortest round-tripping representation otherwise.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
