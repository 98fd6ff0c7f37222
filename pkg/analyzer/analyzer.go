// Package analyzer performs semantic validation of a Filmi AST: scope
// resolution, function arity checks, and placement rules for return and
// break. It reports only the first semantic error it encounters.
package analyzer

import (
	"github.com/rverma/filmi/pkg/ast"
	"github.com/rverma/filmi/pkg/diagnostics"
)

type scope struct {
	bindings map[string]bool
	parent   *scope
}

func newScope(parent *scope) *scope {
	return &scope{bindings: make(map[string]bool), parent: parent}
}

func (s *scope) has(name string) bool {
	if s.bindings[name] {
		return true
	}
	if s.parent != nil {
		return s.parent.has(name)
	}
	return false
}

func (s *scope) add(name string) {
	s.bindings[name] = true
}

func (s *scope) hasLocal(name string) bool {
	return s.bindings[name]
}

type funcInfo struct {
	arity int
}

type analyzer struct {
	err       *diagnostics.Diagnostic
	funcs     map[string]funcInfo
	loopDepth int
	funcDepth int
}

// Analyze validates a Program and returns the first semantic error found, or
// nil if the program is well-formed.
func Analyze(program *ast.Program) *diagnostics.Diagnostic {
	a := &analyzer{funcs: make(map[string]funcInfo)}

	top := newScope(nil)
	a.hoistFunctions(program.Statements)
	a.validateStatements(program.Statements, top)

	return a.err
}

func (a *analyzer) failed() bool {
	return a.err != nil
}

func (a *analyzer) fail(pos ast.Pos, format string, args ...any) {
	if a.err == nil {
		p := pos
		a.err = diagnostics.NewSemanticError(&p, format, args...)
	}
}

func (a *analyzer) isKnownFunction(name string) bool {
	_, ok := a.funcs[name]
	return ok
}

// hoistFunctions runs a first pass over top-level statements so that
// functions may call each other regardless of declaration order.
func (a *analyzer) hoistFunctions(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		if fn, ok := stmt.(*ast.FuncDecl); ok {
			if _, dup := a.funcs[fn.Name]; dup {
				a.fail(fn.Pos, "duplicate function '%s'", fn.Name)
				return
			}
			a.funcs[fn.Name] = funcInfo{arity: len(fn.Params)}
		}
	}
}

func (a *analyzer) validateStatements(stmts []ast.Stmt, sc *scope) {
	for _, stmt := range stmts {
		if a.failed() {
			return
		}
		a.validateStmt(stmt, sc)
	}
}

func (a *analyzer) validateStmt(stmt ast.Stmt, sc *scope) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		a.validateExpr(s.Initializer, sc)
		if a.failed() {
			return
		}
		if sc.hasLocal(s.Name) || (sc.parent == nil && a.isKnownFunction(s.Name)) {
			a.fail(s.Pos, "variable '%s' is already declared in this scope", s.Name)
			return
		}
		sc.add(s.Name)

	case *ast.Print:
		for _, arg := range s.Args {
			a.validateExpr(arg, sc)
			if a.failed() {
				return
			}
		}

	case *ast.If:
		for i, cond := range s.Conditions {
			a.validateExpr(cond, sc)
			if a.failed() {
				return
			}
			a.validateStatements(s.Consequents[i].Statements, newScope(sc))
			if a.failed() {
				return
			}
		}
		if s.Alternate != nil {
			a.validateStatements(s.Alternate.Statements, newScope(sc))
		}

	case *ast.While:
		a.validateExpr(s.Condition, sc)
		if a.failed() {
			return
		}
		a.loopDepth++
		a.validateStatements(s.Body.Statements, newScope(sc))
		a.loopDepth--

	case *ast.Break:
		if a.loopDepth == 0 {
			a.fail(s.Pos, "'me bahar ja raha hu' used outside of a loop")
		}

	case *ast.FuncDecl:
		// A function declared at the top level is already visible by name
		// through the hoisted a.funcs table. One declared lexically inside
		// another function (or a loop/if arm) is a local binding instead,
		// visible from this point on like a variable — this is what lets it
		// be returned or stored and later called indirectly as a closure.
		if sc.parent != nil {
			if sc.hasLocal(s.Name) {
				a.fail(s.Pos, "variable '%s' is already declared in this scope", s.Name)
				return
			}
			sc.add(s.Name)
		}

		child := newScope(sc)
		for _, param := range s.Params {
			if child.hasLocal(param) {
				a.fail(s.Pos, "duplicate parameter name '%s' in function '%s'", param, s.Name)
				return
			}
			child.add(param)
		}
		a.funcDepth++
		savedLoopDepth := a.loopDepth
		a.loopDepth = 0
		a.validateStatements(s.Body.Statements, child)
		a.loopDepth = savedLoopDepth
		a.funcDepth--

	case *ast.Return:
		if a.funcDepth == 0 {
			a.fail(s.Pos, "'dialogue wapas do' used outside of a function")
			return
		}
		if s.Value != nil {
			a.validateExpr(s.Value, sc)
		}

	case *ast.ExprStmt:
		a.validateExpr(s.Expr, sc)

	case *ast.Block:
		a.validateStatements(s.Statements, newScope(sc))
	}
}

func (a *analyzer) validateExpr(expr ast.Expr, sc *scope) {
	if expr == nil || a.failed() {
		return
	}

	switch e := expr.(type) {
	case *ast.Literal:
		// always valid

	case *ast.Identifier:
		if !sc.has(e.Name) && !a.isKnownFunction(e.Name) {
			a.fail(e.Pos, "unbound variable '%s'", e.Name)
		}

	case *ast.Assign:
		if !sc.has(e.Name) {
			a.fail(e.Pos, "unbound variable '%s'", e.Name)
			return
		}
		a.validateExpr(e.Value, sc)

	case *ast.Binary:
		a.validateExpr(e.Left, sc)
		if a.failed() {
			return
		}
		a.validateExpr(e.Right, sc)

	case *ast.Unary:
		a.validateExpr(e.Operand, sc)

	case *ast.Grouping:
		a.validateExpr(e.Expr, sc)

	case *ast.Call:
		// A call to a known top-level function name has its arity checked
		// here, statically. A call whose name is merely a visible variable
		// (a function-valued parameter, a captured closure, or a plain
		// local) is not — it may hold any function value at runtime, so
		// arity is checked there instead.
		if info, known := a.funcs[e.Callee]; known {
			if len(e.Args) != info.arity {
				a.fail(e.Pos, "function '%s' expects %d argument(s), got %d", e.Callee, info.arity, len(e.Args))
				return
			}
		} else if !sc.has(e.Callee) {
			a.fail(e.Pos, "call to undefined function '%s'", e.Callee)
			return
		}
		for _, arg := range e.Args {
			a.validateExpr(arg, sc)
			if a.failed() {
				return
			}
		}
	}
}
