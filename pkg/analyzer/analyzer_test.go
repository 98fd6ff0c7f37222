package analyzer_test

import (
	"testing"

	"github.com/rverma/filmi/pkg/analyzer"
	"github.com/rverma/filmi/pkg/diagnostics"
	"github.com/rverma/filmi/pkg/parser"
)

func mustParseAndAnalyze(t *testing.T, source string) *diagnostics.Diagnostic {
	t.Helper()
	prog, parseErr := parser.Parse(source)
	if parseErr != nil {
		t.Fatalf("unexpected parse error: %v", parseErr)
	}
	return analyzer.Analyze(prog)
}

func assertNoError(t *testing.T, source string) {
	t.Helper()
	if d := mustParseAndAnalyze(t, source); d != nil {
		t.Errorf("expected no semantic error, got: %v", d)
	}
}

func assertError(t *testing.T, source string) {
	t.Helper()
	if d := mustParseAndAnalyze(t, source); d == nil {
		t.Errorf("expected a semantic error for source: %s", source)
	}
}

func TestValidProgram(t *testing.T) {
	assertNoError(t, `action!
maan lo x = 10
ek baat bataun: x
paisa vasool`)
}

func TestUnboundVariable(t *testing.T) {
	assertError(t, `action!
ek baat bataun: y
paisa vasool`)
}

func TestDuplicateDeclarationInSameScope(t *testing.T) {
	assertError(t, `action!
maan lo x = 1
maan lo x = 2
paisa vasool`)
}

func TestShadowingInNestedScopeIsAllowed(t *testing.T) {
	assertNoError(t, `action!
maan lo x = 1
agar kismat rahi (sach) {
	maan lo x = 2
	ek baat bataun: x
}
paisa vasool`)
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	assertError(t, `action!
me bahar ja raha hu
paisa vasool`)
}

func TestBreakInsideWhileIsValid(t *testing.T) {
	assertNoError(t, `action!
jab tak hai jaan (sach) {
	me bahar ja raha hu
}
paisa vasool`)
}

func TestBreakInsideFunctionButOutsideLoopIsError(t *testing.T) {
	assertError(t, `action!
climax f() {
	me bahar ja raha hu
}
paisa vasool`)
}

func TestReturnOutsideFunctionIsError(t *testing.T) {
	assertError(t, `action!
dialogue wapas do 1
paisa vasool`)
}

func TestReturnInsideFunctionIsValid(t *testing.T) {
	assertNoError(t, `action!
climax f() {
	dialogue wapas do 1
}
paisa vasool`)
}

func TestForwardReferenceBetweenFunctionsIsValid(t *testing.T) {
	assertNoError(t, `action!
climax isEven(n) {
	agar kismat rahi (n == 0) {
		dialogue wapas do sach
	}
	dialogue wapas do isOdd(n - 1)
}
climax isOdd(n) {
	agar kismat rahi (n == 0) {
		dialogue wapas do galat
	}
	dialogue wapas do isEven(n - 1)
}
ek baat bataun: isEven(4)
paisa vasool`)
}

func TestCallToUndefinedFunctionIsError(t *testing.T) {
	assertError(t, `action!
ek baat bataun: missing(1)
paisa vasool`)
}

func TestArityMismatchIsError(t *testing.T) {
	assertError(t, `action!
climax add(a, b) {
	dialogue wapas do a + b
}
ek baat bataun: add(1)
paisa vasool`)
}

func TestDuplicateFunctionNameIsError(t *testing.T) {
	assertError(t, `action!
climax f() {
	dialogue wapas do 1
}
climax f() {
	dialogue wapas do 2
}
paisa vasool`)
}

func TestDuplicateParameterNameIsError(t *testing.T) {
	assertError(t, `action!
climax f(a, a) {
	dialogue wapas do a
}
paisa vasool`)
}

func TestFunctionDeclaredInsideAnotherFunctionIsValid(t *testing.T) {
	assertNoError(t, `action!
climax makeCounter(start) {
	climax increment() {
		start = start + 1
		dialogue wapas do start
	}
	dialogue wapas do increment
}
maan lo counter = makeCounter(10)
ek baat bataun: counter()
paisa vasool`)
}

func TestCallThroughFunctionValuedVariableSkipsStaticArityCheck(t *testing.T) {
	// 'counter' is a plain variable, not a known top-level function name, so
	// its arity isn't checked here even though it happens to hold a
	// zero-argument function value.
	assertNoError(t, `action!
climax makeCounter(start) {
	climax increment() {
		dialogue wapas do start
	}
	dialogue wapas do increment
}
maan lo counter = makeCounter(1)
ek baat bataun: counter()
paisa vasool`)
}

func TestLoopDepthResetsAcrossFunctionBoundary(t *testing.T) {
	// Even when a function is declared lexically inside a while body, a
	// break inside that function does not see the enclosing loop.
	assertError(t, `action!
jab tak hai jaan (sach) {
	climax f() {
		me bahar ja raha hu
	}
	me bahar ja raha hu
}
paisa vasool`)
}
