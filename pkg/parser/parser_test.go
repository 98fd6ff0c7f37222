package parser

import (
	"testing"

	"github.com/rverma/filmi/pkg/ast"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, diag := Parse(source)
	if diag != nil {
		t.Fatalf("unexpected parse error: %v", diag)
	}
	return prog
}

func mustFail(t *testing.T, source string) {
	t.Helper()
	_, diag := Parse(source)
	if diag == nil {
		t.Fatalf("expected parse error for source: %s", source)
	}
}

func TestMinimalProgram(t *testing.T) {
	prog := mustParse(t, "action!\npaisa vasool")
	if len(prog.Statements) != 0 {
		t.Errorf("expected 0 statements, got %d", len(prog.Statements))
	}
}

func TestMissingFramingIsError(t *testing.T) {
	mustFail(t, "maan lo x = 1")
	mustFail(t, "action!\nmaan lo x = 1")
}

func TestVarDeclAndPrint(t *testing.T) {
	prog := mustParse(t, `action!
maan lo x = 10
ek baat bataun: x
paisa vasool`)
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	vd, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok || vd.Name != "x" {
		t.Fatalf("expected VarDecl 'x', got %#v", prog.Statements[0])
	}
}

func TestIfElseIfElseChain(t *testing.T) {
	prog := mustParse(t, `action!
agar kismat rahi (sach) {
	ek baat bataun: 1
} nahi to (galat) {
	ek baat bataun: 2
} warna {
	ek baat bataun: 3
}
paisa vasool`)
	ifStmt, ok := prog.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected If statement, got %#v", prog.Statements[0])
	}
	if len(ifStmt.Conditions) != 2 {
		t.Errorf("expected 2 conditions (if + 1 elseif), got %d", len(ifStmt.Conditions))
	}
	if ifStmt.Alternate == nil {
		t.Error("expected else block")
	}
}

func TestWhileLoop(t *testing.T) {
	prog := mustParse(t, `action!
maan lo i = 0
jab tak hai jaan (i < 3) {
	i = i + 1
}
paisa vasool`)
	_, ok := prog.Statements[1].(*ast.While)
	if !ok {
		t.Fatalf("expected While statement, got %#v", prog.Statements[1])
	}
}

func TestFuncDeclAndReturn(t *testing.T) {
	prog := mustParse(t, `action!
climax add(a, b) {
	dialogue wapas do a + b
}
paisa vasool`)
	fn, ok := prog.Statements[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected FuncDecl, got %#v", prog.Statements[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Errorf("unexpected FuncDecl shape: %#v", fn)
	}
	ret, ok := fn.Body.Statements[0].(*ast.Return)
	if !ok || ret.Value == nil {
		t.Fatalf("expected Return with value, got %#v", fn.Body.Statements[0])
	}
}

func TestBreakInsideWhile(t *testing.T) {
	prog := mustParse(t, `action!
jab tak hai jaan (sach) {
	me bahar ja raha hu
}
paisa vasool`)
	while, ok := prog.Statements[0].(*ast.While)
	if !ok {
		t.Fatalf("expected While, got %#v", prog.Statements[0])
	}
	if _, ok := while.Body.Statements[0].(*ast.Break); !ok {
		t.Fatalf("expected Break, got %#v", while.Body.Statements[0])
	}
}

func TestAssignmentIsRightAssociativeExpression(t *testing.T) {
	prog := mustParse(t, `action!
maan lo x = 0
maan lo y = 0
x = y = 5
paisa vasool`)
	stmt, ok := prog.Statements[2].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %#v", prog.Statements[2])
	}
	assign, ok := stmt.Expr.(*ast.Assign)
	if !ok || assign.Name != "x" {
		t.Fatalf("expected Assign to 'x', got %#v", stmt.Expr)
	}
	inner, ok := assign.Value.(*ast.Assign)
	if !ok || inner.Name != "y" {
		t.Fatalf("expected nested Assign to 'y', got %#v", assign.Value)
	}
}

func TestAssignmentTargetMustBeIdentifier(t *testing.T) {
	mustFail(t, `action!
1 + 1 = 5
paisa vasool`)
}

func TestOperatorPrecedence(t *testing.T) {
	prog := mustParse(t, `action!
ek baat bataun: 1 + 2 * 3
paisa vasool`)
	print, ok := prog.Statements[0].(*ast.Print)
	if !ok {
		t.Fatalf("expected Print, got %#v", prog.Statements[0])
	}
	bin, ok := print.Args[0].(*ast.Binary)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected top-level '+' binary, got %#v", print.Args[0])
	}
	rhs, ok := bin.Right.(*ast.Binary)
	if !ok || rhs.Operator != "*" {
		t.Fatalf("expected '*' nested on the right of '+', got %#v", bin.Right)
	}
}

func TestLogicalOperatorsAndFunctionCall(t *testing.T) {
	prog := mustParse(t, `action!
climax f(a) {
	dialogue wapas do a
}
ek baat bataun: f(1) && sach || galat
paisa vasool`)
	print, ok := prog.Statements[1].(*ast.Print)
	if !ok {
		t.Fatalf("expected Print, got %#v", prog.Statements[1])
	}
	orExpr, ok := print.Args[0].(*ast.Binary)
	if !ok || orExpr.Operator != "||" {
		t.Fatalf("expected top-level '||', got %#v", print.Args[0])
	}
	andExpr, ok := orExpr.Left.(*ast.Binary)
	if !ok || andExpr.Operator != "&&" {
		t.Fatalf("expected '&&' nested inside '||', got %#v", orExpr.Left)
	}
	call, ok := andExpr.Left.(*ast.Call)
	if !ok || call.Callee != "f" {
		t.Fatalf("expected call to 'f', got %#v", andExpr.Left)
	}
}

func TestGroupingOverridesPrecedence(t *testing.T) {
	prog := mustParse(t, `action!
ek baat bataun: (1 + 2) * 3
paisa vasool`)
	print := prog.Statements[0].(*ast.Print)
	bin := print.Args[0].(*ast.Binary)
	if bin.Operator != "*" {
		t.Fatalf("expected top-level '*', got %s", bin.Operator)
	}
	if _, ok := bin.Left.(*ast.Grouping); !ok {
		t.Fatalf("expected grouped left operand, got %#v", bin.Left)
	}
}

func TestUnaryNotAndNegate(t *testing.T) {
	prog := mustParse(t, `action!
ek baat bataun: !sach
ek baat bataun: -5
paisa vasool`)
	u1 := prog.Statements[0].(*ast.Print).Args[0].(*ast.Unary)
	if u1.Operator != "!" {
		t.Errorf("expected '!' unary, got %s", u1.Operator)
	}
	u2 := prog.Statements[1].(*ast.Print).Args[0].(*ast.Unary)
	if u2.Operator != "-" {
		t.Errorf("expected '-' unary, got %s", u2.Operator)
	}
}

func TestUnexpectedTokenError(t *testing.T) {
	mustFail(t, `action!
ek baat bataun: +
paisa vasool`)
}

func TestFirstErrorOnlyIsReported(t *testing.T) {
	_, diag := Parse(`action!
maan lo x =
maan lo y =
paisa vasool`)
	if diag == nil {
		t.Fatal("expected a parse error")
	}
	// The first error is at line 3 ('maan lo' where an expression belongs);
	// the second would be at line 4.
	if diag.Pos == nil || diag.Pos.Line != 3 {
		t.Errorf("expected the first error (line 3) only, got %v", diag)
	}
}
