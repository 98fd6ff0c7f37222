// Package testutil provides shared conformance-test fixtures for the
// language's Go implementation.
package testutil

// Scenario is one end-to-end conformance case: a complete program plus its
// expected outcome, run through the full runtime.Run pipeline.
type Scenario struct {
	Name string
	Source string

	// ExpectStage is the diagnostic stage label ("Lexer Error", "Parser
	// Error", "Semantic Error", "Runtime Error") expected when the scenario
	// should fail. Empty means the scenario is expected to succeed.
	ExpectStage string
	// ExpectMessageContains is a substring the diagnostic message must
	// contain, checked only when ExpectStage is set.
	ExpectMessageContains string

	// ExpectOutput is the expected printed output lines, checked only when
	// ExpectStage is empty.
	ExpectOutput []string
}

// Scenarios is the Phase 1 conformance suite: the scenarios a conforming
// implementation must satisfy end to end.
var Scenarios = []Scenario{
	{
		Name: "hello",
		Source: `action!
ek baat bataun: "hello, world"
paisa vasool`,
		ExpectOutput: []string{"hello, world"},
	},
	{
		Name: "arithmetic",
		Source: `action!
ek baat bataun: 2 + 3 * 4
paisa vasool`,
		ExpectOutput: []string{"14"},
	},
	{
		Name: "string-plus-number-coercion",
		Source: `action!
ek baat bataun: "total: " + 7
paisa vasool`,
		ExpectOutput: []string{"total: 7"},
	},
	{
		Name: "if-else-if-else",
		Source: `action!
maan lo n = 2
agar kismat rahi (n == 1) {
	ek baat bataun: "one"
} nahi to (n == 2) {
	ek baat bataun: "two"
} warna {
	ek baat bataun: "other"
}
paisa vasool`,
		ExpectOutput: []string{"two"},
	},
	{
		Name: "while-with-break",
		Source: `action!
maan lo i = 0
jab tak hai jaan (sach) {
	agar kismat rahi (i == 3) {
		me bahar ja raha hu
	}
	ek baat bataun: i
	i = i + 1
}
paisa vasool`,
		ExpectOutput: []string{"0", "1", "2"},
	},
	{
		Name: "recursive-function",
		Source: `action!
climax fact(n) {
	agar kismat rahi (n < 2) {
		dialogue wapas do 1
	}
	dialogue wapas do n * fact(n - 1)
}
ek baat bataun: fact(5)
paisa vasool`,
		ExpectOutput: []string{"120"},
	},
	{
		Name: "truthiness-zero-and-empty-string-are-truthy",
		Source: `action!
agar kismat rahi (0) {
	ek baat bataun: "zero is truthy"
}
agar kismat rahi ("") {
	ek baat bataun: "empty string is truthy"
}
agar kismat rahi (khaali) {
	ek baat bataun: "unreachable"
} warna {
	ek baat bataun: "unit is falsy"
}
paisa vasool`,
		ExpectOutput: []string{"zero is truthy", "empty string is truthy", "unit is falsy"},
	},
	{
		Name:                  "lexer-error-unexpected-character",
		Source:                "action!\n@@@\npaisa vasool",
		ExpectStage:           "Lexer Error",
		ExpectMessageContains: "unexpected character",
	},
	{
		Name:                  "parser-error-missing-framing",
		Source:                `maan lo x = 1`,
		ExpectStage:           "Parser Error",
		ExpectMessageContains: "action!",
	},
	{
		Name:                  "semantic-error-unbound-variable",
		Source:                "action!\nek baat bataun: y\npaisa vasool",
		ExpectStage:           "Semantic Error",
		ExpectMessageContains: "y",
	},
	{
		Name:                  "semantic-error-break-outside-loop",
		Source:                "action!\nme bahar ja raha hu\npaisa vasool",
		ExpectStage:           "Semantic Error",
		ExpectMessageContains: "loop",
	},
	{
		Name:                  "runtime-error-division-by-zero",
		Source:                "action!\nek baat bataun: 1 / 0\npaisa vasool",
		ExpectStage:           "Runtime Error",
		ExpectMessageContains: "Division by zero",
	},
}
