// Package diagnostics defines the Filmi pipeline's error type: one kind per
// stage (lexer, parser, analyzer, evaluator), each carrying an optional
// source location and a free-form message.
package diagnostics

import (
	"encoding/json"
	"fmt"

	"github.com/rverma/filmi/pkg/ast"
)

// Stage identifies which pipeline phase raised a Diagnostic.
type Stage int

const (
	StageLexer Stage = iota
	StageParser
	StageSemantic
	StageRuntime
)

// Label returns the user-visible class label for the stage, as required by
// the error rendering contract (e.g. "Lexer Error").
func (s Stage) Label() string {
	switch s {
	case StageLexer:
		return "Lexer Error"
	case StageParser:
		return "Parser Error"
	case StageSemantic:
		return "Semantic Error"
	case StageRuntime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// Diagnostic is the single error type returned by every pipeline stage. Only
// the first diagnostic a stage encounters is ever surfaced; the pipeline
// halts there.
type Diagnostic struct {
	Stage   Stage     `json:"stage"`
	Pos     *ast.Pos  `json:"pos,omitempty"`
	Message string    `json:"message"`
}

// Error renders the diagnostic as "<Stage Label> (Line L, Column C): <message>",
// omitting the location clause when Pos is nil.
func (d *Diagnostic) Error() string {
	if d.Pos != nil {
		return fmt.Sprintf("%s (Line %d, Column %d): %s", d.Stage.Label(), d.Pos.Line, d.Pos.Col, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Stage.Label(), d.Message)
}

// jsonDiagnostic mirrors Diagnostic with the stage rendered as its label
// rather than its numeric value.
type jsonDiagnostic struct {
	Stage   string   `json:"stage"`
	Pos     *ast.Pos `json:"pos,omitempty"`
	Message string   `json:"message"`
}

// JSON marshals the diagnostic for tooling that wants structured output
// rather than the human-readable rendering. The CLI itself prints only the
// Error() form.
func (d *Diagnostic) JSON() ([]byte, error) {
	return json.Marshal(jsonDiagnostic{Stage: d.Stage.Label(), Pos: d.Pos, Message: d.Message})
}

func newDiag(stage Stage, pos *ast.Pos, format string, args ...any) *Diagnostic {
	return &Diagnostic{Stage: stage, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// NewLexError builds a lexer-stage diagnostic.
func NewLexError(pos ast.Pos, format string, args ...any) *Diagnostic {
	return newDiag(StageLexer, &pos, format, args...)
}

// NewParseError builds a parser-stage diagnostic.
func NewParseError(pos ast.Pos, format string, args ...any) *Diagnostic {
	return newDiag(StageParser, &pos, format, args...)
}

// NewSemanticError builds an analyzer-stage diagnostic. Pos may be nil, in
// which case Error() omits the location clause.
func NewSemanticError(pos *ast.Pos, format string, args ...any) *Diagnostic {
	return newDiag(StageSemantic, pos, format, args...)
}

// NewRuntimeError builds an evaluator-stage diagnostic.
func NewRuntimeError(pos *ast.Pos, format string, args ...any) *Diagnostic {
	return newDiag(StageRuntime, pos, format, args...)
}
