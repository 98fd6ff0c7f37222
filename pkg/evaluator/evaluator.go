// Package evaluator implements the Filmi tree-walking evaluator.
package evaluator

import (
	"math"
	"strings"

	"github.com/rverma/filmi/pkg/ast"
	"github.com/rverma/filmi/pkg/diagnostics"
)

// DefaultMaxIterations is the iteration cap applied to every 'jab tak hai
// jaan' loop unless overridden via an Option.
const DefaultMaxIterations = 100_000

// Option configures an evaluator run.
type Option func(*evaluator)

// WithMaxIterations overrides the default while-loop iteration cap.
func WithMaxIterations(n int64) Option {
	return func(ev *evaluator) { ev.maxIterations = n }
}

// ExecResult holds the outcome of running a program: its collected print
// output lines and the value of its final statement.
type ExecResult struct {
	Output []string
	Value  Value
}

// signalKind tags the non-local control flow produced by a statement.
type signalKind int

const (
	signalNone signalKind = iota
	signalReturn
	signalBreak
)

// completion threads return/break signals up through nested blocks without
// relying on Go panics: each block-executing function returns one alongside
// its normal value, and callers check it before continuing to the next
// statement.
type completion struct {
	kind  signalKind
	value Value
}

type runtimeError struct {
	diag *diagnostics.Diagnostic
}

func (e *runtimeError) Error() string { return e.diag.Error() }

func newRuntimeError(pos ast.Pos, format string, args ...any) *runtimeError {
	p := pos
	return &runtimeError{diag: diagnostics.NewRuntimeError(&p, format, args...)}
}

type evaluator struct {
	env           *Env
	output        []string
	maxIterations int64
}

// Execute runs a validated program and returns its collected output and
// final value, or the first runtime error encountered.
func Execute(program *ast.Program, opts ...Option) (*ExecResult, *diagnostics.Diagnostic) {
	ev := &evaluator{
		env:           NewEnv(nil),
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(ev)
	}

	// Top-level functions are pre-bound to the global environment so that
	// one may call another regardless of declaration order, mirroring the
	// analyzer's hoisting pass. Their closure is the global environment
	// itself, since that's the scope active at their declaration site.
	for _, stmt := range program.Statements {
		if fn, ok := stmt.(*ast.FuncDecl); ok {
			ev.env.Declare(fn.Name, Function{Decl: fn, Closure: ev.env})
		}
	}

	val, _, err := ev.execBlockStmts(program.Statements, ev.env)
	if err != nil {
		return nil, err.diag
	}
	return &ExecResult{Output: ev.output, Value: val}, nil
}

// execBlockStmts evaluates a statement sequence in env, returning the value
// produced by the last statement executed, whatever its kind (a print yields
// unit, a var-decl its initializer's value). An empty sequence yields unit.
func (ev *evaluator) execBlockStmts(stmts []ast.Stmt, env *Env) (Value, completion, *runtimeError) {
	var last Value = NewUnit()

	for _, stmt := range stmts {
		val, comp, err := ev.execStmt(stmt, env)
		if err != nil {
			return nil, completion{}, err
		}
		if comp.kind != signalNone {
			return val, comp, nil
		}
		last = val
	}
	return last, completion{}, nil
}

func (ev *evaluator) execStmt(stmt ast.Stmt, env *Env) (Value, completion, *runtimeError) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		val, err := ev.evalExpr(s.Initializer, env)
		if err != nil {
			return nil, completion{}, err
		}
		env.Declare(s.Name, val)
		return val, completion{}, nil

	case *ast.Print:
		parts := make([]string, len(s.Args))
		for i, arg := range s.Args {
			val, err := ev.evalExpr(arg, env)
			if err != nil {
				return nil, completion{}, err
			}
			parts[i] = Stringify(val)
		}
		line := strings.Join(parts, " ")
		ev.output = append(ev.output, line)
		return NewUnit(), completion{}, nil

	case *ast.If:
		for i, condExpr := range s.Conditions {
			cond, err := ev.evalExpr(condExpr, env)
			if err != nil {
				return nil, completion{}, err
			}
			if Truthiness(cond) {
				return ev.execBlockStmts(s.Consequents[i].Statements, env.Child())
			}
		}
		if s.Alternate != nil {
			return ev.execBlockStmts(s.Alternate.Statements, env.Child())
		}
		return NewUnit(), completion{}, nil

	case *ast.While:
		var iterations int64
		for {
			cond, err := ev.evalExpr(s.Condition, env)
			if err != nil {
				return nil, completion{}, err
			}
			if !Truthiness(cond) {
				break
			}
			iterations++
			if iterations > ev.maxIterations {
				return nil, completion{}, newRuntimeError(s.Pos, "loop limit exceeded (max %d iterations)", ev.maxIterations)
			}
			val, comp, err := ev.execBlockStmts(s.Body.Statements, env.Child())
			if err != nil {
				return nil, completion{}, err
			}
			switch comp.kind {
			case signalBreak:
				return NewUnit(), completion{}, nil
			case signalReturn:
				return val, comp, nil
			}
		}
		return NewUnit(), completion{}, nil

	case *ast.Break:
		return NewUnit(), completion{kind: signalBreak}, nil

	case *ast.FuncDecl:
		// The closure captured here is env itself: the environment active at
		// the declaration site, not the caller of whatever eventually calls
		// this function. For a top-level declaration that's the global
		// environment (already pre-bound in Execute); for one nested inside
		// a function body or loop, it's that call's live environment, so
		// the function observes the captor's locals as they stand when it
		// is finally invoked.
		fn := Function{Decl: s, Closure: env}
		env.Declare(s.Name, fn)
		return fn, completion{}, nil

	case *ast.Return:
		var val Value = NewUnit()
		if s.Value != nil {
			v, err := ev.evalExpr(s.Value, env)
			if err != nil {
				return nil, completion{}, err
			}
			val = v
		}
		return val, completion{kind: signalReturn, value: val}, nil

	case *ast.ExprStmt:
		val, err := ev.evalExpr(s.Expr, env)
		if err != nil {
			return nil, completion{}, err
		}
		return val, completion{}, nil

	case *ast.Block:
		return ev.execBlockStmts(s.Statements, env.Child())
	}

	return NewUnit(), completion{}, nil
}

func (ev *evaluator) evalExpr(expr ast.Expr, env *Env) (Value, *runtimeError) {
	switch e := expr.(type) {
	case *ast.Literal:
		return ev.evalLiteral(e), nil

	case *ast.Identifier:
		val, ok := env.Get(e.Name)
		if !ok {
			return nil, newRuntimeError(e.Pos, "unbound variable '%s'", e.Name)
		}
		return val, nil

	case *ast.Assign:
		val, err := ev.evalExpr(e.Value, env)
		if err != nil {
			return nil, err
		}
		if !env.Assign(e.Name, val) {
			return nil, newRuntimeError(e.Pos, "unbound variable '%s'", e.Name)
		}
		return val, nil

	case *ast.Grouping:
		return ev.evalExpr(e.Expr, env)

	case *ast.Unary:
		return ev.evalUnary(e, env)

	case *ast.Binary:
		return ev.evalBinary(e, env)

	case *ast.Call:
		return ev.evalCall(e, env)
	}

	return NewUnit(), nil
}

func (ev *evaluator) evalLiteral(lit *ast.Literal) Value {
	switch lit.Kind_ {
	case ast.LitNumber:
		return NewNumber(lit.Value.(float64))
	case ast.LitString:
		return NewString(lit.Value.(string))
	case ast.LitBool:
		return NewBool(lit.Value.(bool))
	default:
		return NewUnit()
	}
}

func (ev *evaluator) evalUnary(e *ast.Unary, env *Env) (Value, *runtimeError) {
	operand, err := ev.evalExpr(e.Operand, env)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "-":
		num, ok := operand.(Number)
		if !ok {
			return nil, newRuntimeError(e.Pos, "unary '-' requires a number, got %s", typeName(operand))
		}
		return NewNumber(-num.Value), nil
	case "!":
		return NewBool(!Truthiness(operand)), nil
	}
	return nil, newRuntimeError(e.Pos, "unknown unary operator '%s'", e.Operator)
}

func (ev *evaluator) evalBinary(e *ast.Binary, env *Env) (Value, *runtimeError) {
	// && and || short-circuit: the right operand is only evaluated when the
	// left doesn't already decide the result.
	if e.Operator == "&&" {
		left, err := ev.evalExpr(e.Left, env)
		if err != nil {
			return nil, err
		}
		if !Truthiness(left) {
			return NewBool(false), nil
		}
		right, err := ev.evalExpr(e.Right, env)
		if err != nil {
			return nil, err
		}
		return NewBool(Truthiness(right)), nil
	}
	if e.Operator == "||" {
		left, err := ev.evalExpr(e.Left, env)
		if err != nil {
			return nil, err
		}
		if Truthiness(left) {
			return NewBool(true), nil
		}
		right, err := ev.evalExpr(e.Right, env)
		if err != nil {
			return nil, err
		}
		return NewBool(Truthiness(right)), nil
	}

	left, err := ev.evalExpr(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := ev.evalExpr(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "+":
		if lNum, ok := left.(Number); ok {
			if rNum, ok := right.(Number); ok {
				return NewNumber(lNum.Value + rNum.Value), nil
			}
		}
		if _, ok := left.(String); ok {
			return NewString(Stringify(left) + Stringify(right)), nil
		}
		if _, ok := right.(String); ok {
			return NewString(Stringify(left) + Stringify(right)), nil
		}
		return nil, newRuntimeError(e.Pos, "operator '+' requires two numbers or a string operand, got %s and %s", typeName(left), typeName(right))

	case "-", "*", "/", "%":
		lNum, lOk := left.(Number)
		rNum, rOk := right.(Number)
		if !lOk || !rOk {
			return nil, newRuntimeError(e.Pos, "operator '%s' requires two numbers, got %s and %s", e.Operator, typeName(left), typeName(right))
		}
		switch e.Operator {
		case "-":
			return NewNumber(lNum.Value - rNum.Value), nil
		case "*":
			return NewNumber(lNum.Value * rNum.Value), nil
		case "/":
			if rNum.Value == 0 {
				return nil, newRuntimeError(e.Pos, "Division by zero")
			}
			return NewNumber(lNum.Value / rNum.Value), nil
		case "%":
			if rNum.Value == 0 {
				return nil, newRuntimeError(e.Pos, "Division by zero")
			}
			return NewNumber(math.Mod(lNum.Value, rNum.Value)), nil
		}

	case "==":
		return NewBool(deepEqual(left, right)), nil
	case "!=":
		return NewBool(!deepEqual(left, right)), nil

	case "<", ">", "<=", ">=":
		if lNum, ok := left.(Number); ok {
			if rNum, ok := right.(Number); ok {
				return NewBool(compareNumbers(lNum.Value, rNum.Value, e.Operator)), nil
			}
		}
		if lStr, ok := left.(String); ok {
			if rStr, ok := right.(String); ok {
				return NewBool(compareStrings(lStr.Value, rStr.Value, e.Operator)), nil
			}
		}
		return nil, newRuntimeError(e.Pos, "operator '%s' requires two numbers or two strings, got %s and %s", e.Operator, typeName(left), typeName(right))
	}

	return nil, newRuntimeError(e.Pos, "unknown binary operator '%s'", e.Operator)
}

func compareNumbers(l, r float64, op string) bool {
	switch op {
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	}
	return false
}

func compareStrings(l, r string, op string) bool {
	switch op {
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	}
	return false
}

func (ev *evaluator) evalCall(e *ast.Call, env *Env) (Value, *runtimeError) {
	callee, ok := env.Get(e.Callee)
	if !ok {
		return nil, newRuntimeError(e.Pos, "call to undefined function '%s'", e.Callee)
	}
	fn, ok := callee.(Function)
	if !ok {
		return nil, newRuntimeError(e.Pos, "'%s' is not a function", e.Callee)
	}

	args := make([]Value, len(e.Args))
	for i, argExpr := range e.Args {
		val, err := ev.evalExpr(argExpr, env)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}

	// A function's body runs in a child of its closure — the environment
	// active when it was declared — never a child of the caller's
	// environment. That's what makes closures capture their defining scope
	// rather than whatever scope happens to call them.
	//
	// Arity is enforced here only as a binding rule, not an error: a call
	// to a known top-level function name already had its arity checked
	// statically by the analyzer, so it can never mismatch by the time it
	// reaches here. A call through a function-valued variable was never
	// checked statically, so a short argument list simply leaves the
	// missing parameters bound to unit; extra arguments are still
	// evaluated (for any side effects) but left unbound.
	callEnv := fn.Closure.Child()
	for i, param := range fn.Decl.Params {
		if i < len(args) {
			callEnv.Declare(param, args[i])
		} else {
			callEnv.Declare(param, NewUnit())
		}
	}

	_, comp, err := ev.execBlockStmts(fn.Decl.Body.Statements, callEnv)
	if err != nil {
		return nil, err
	}
	if comp.kind == signalReturn {
		return comp.value, nil
	}
	return NewUnit(), nil
}

func typeName(v Value) string {
	switch v.(type) {
	case Unit:
		return "unit"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Function:
		return "function"
	default:
		return "unknown"
	}
}

func deepEqual(a, b Value) bool {
	switch av := a.(type) {
	case Unit:
		_, ok := b.(Unit)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Value == bv.Value
	case Number:
		bv, ok := b.(Number)
		return ok && av.Value == bv.Value
	case String:
		bv, ok := b.(String)
		return ok && av.Value == bv.Value
	case Function:
		bv, ok := b.(Function)
		return ok && av.Decl == bv.Decl
	}
	return false
}
