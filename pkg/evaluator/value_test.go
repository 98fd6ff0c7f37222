package evaluator

import "testing"

func TestTruthiness(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"unit", NewUnit(), false},
		{"false", NewBool(false), false},
		{"true", NewBool(true), true},
		{"zero", NewNumber(0), true},
		{"empty string", NewString(""), true},
		{"nonzero number", NewNumber(42), true},
	}
	for _, tt := range tests {
		if got := Truthiness(tt.v); got != tt.want {
			t.Errorf("%s: Truthiness() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{NewUnit(), "khaali"},
		{NewBool(true), "sach"},
		{NewBool(false), "galat"},
		{NewNumber(10), "10"},
		{NewNumber(3.5), "3.5"},
		{NewString("hello"), "hello"},
	}
	for _, tt := range tests {
		if got := Stringify(tt.v); got != tt.want {
			t.Errorf("Stringify(%#v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestEnvParentChainLookup(t *testing.T) {
	parent := NewEnv(nil)
	parent.Declare("x", NewNumber(1))
	child := parent.Child()
	val, ok := child.Get("x")
	if !ok {
		t.Fatal("expected child env to see parent binding")
	}
	if n, ok := val.(Number); !ok || n.Value != 1 {
		t.Errorf("got %#v, want Number(1)", val)
	}
}

func TestEnvAssignUpdatesDeclaringScope(t *testing.T) {
	parent := NewEnv(nil)
	parent.Declare("x", NewNumber(1))
	child := parent.Child()
	if !child.Assign("x", NewNumber(99)) {
		t.Fatal("expected Assign to find binding in parent scope")
	}
	val, _ := parent.Get("x")
	if n, ok := val.(Number); !ok || n.Value != 99 {
		t.Errorf("parent binding not updated, got %#v", val)
	}
}

func TestEnvAssignToUndeclaredFails(t *testing.T) {
	e := NewEnv(nil)
	if e.Assign("missing", NewNumber(1)) {
		t.Fatal("expected Assign to fail for undeclared name")
	}
}
