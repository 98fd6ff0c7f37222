// Package runtime provides the top-level Filmi orchestrator: it wires the
// lexer, parser, analyzer, and evaluator into the single run(source) entry
// point described by the language's pipeline contract.
package runtime

import (
	"github.com/google/uuid"

	"github.com/rverma/filmi/pkg/analyzer"
	"github.com/rverma/filmi/pkg/diagnostics"
	"github.com/rverma/filmi/pkg/evaluator"
	"github.com/rverma/filmi/pkg/parser"
)

// Result holds the outcome of a successful run: the program's collected
// output lines, the value of its last-evaluated statement, and the run's
// identifier (useful for correlating a run's diagnostics across logs).
type Result struct {
	RunID  string
	Output []string
	Value  evaluator.Value
}

// Runtime wires together the Filmi pipeline stages for program execution.
type Runtime struct {
	maxIterations int64
	runID         string
}

// Option is a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithMaxIterations overrides the default while-loop iteration cap
// (evaluator.DefaultMaxIterations).
func WithMaxIterations(n int64) Option {
	return func(rt *Runtime) { rt.maxIterations = n }
}

// WithRunID sets a fixed run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(rt *Runtime) { rt.runID = id }
}

// New creates a Runtime with the given options, generating a fresh run ID
// when none is supplied.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		maxIterations: evaluator.DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.runID == "" {
		rt.runID = uuid.NewString()
	}
	return rt
}

// Run lexes, parses, validates, and evaluates source, halting at the first
// diagnostic raised by any stage.
func (rt *Runtime) Run(source string) (*Result, *diagnostics.Diagnostic) {
	program, parseErr := parser.Parse(source)
	if parseErr != nil {
		return nil, parseErr
	}

	if semErr := analyzer.Analyze(program); semErr != nil {
		return nil, semErr
	}

	execResult, runErr := evaluator.Execute(program, evaluator.WithMaxIterations(rt.maxIterations))
	if runErr != nil {
		return nil, runErr
	}

	return &Result{RunID: rt.runID, Output: execResult.Output, Value: execResult.Value}, nil
}

// Check lexes, parses, and validates source without evaluating it, useful
// for a "check only" CLI mode.
func (rt *Runtime) Check(source string) *diagnostics.Diagnostic {
	program, parseErr := parser.Parse(source)
	if parseErr != nil {
		return parseErr
	}
	return analyzer.Analyze(program)
}
