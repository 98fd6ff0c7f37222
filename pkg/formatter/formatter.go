// Package formatter pretty-prints a Filmi AST back to canonical source,
// used by the CLI's fmt subcommand.
package formatter

import (
	"strconv"
	"strings"

	"github.com/rverma/filmi/pkg/ast"
)

const indent = "\t"

// precedence mirrors the parser's binary-operator ladder (higher binds
// tighter) so the formatter only adds parentheses where the source actually
// needed them.
var precedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3,
	"!=": 3,
	">":  4,
	"<":  4,
	">=": 4,
	"<=": 4,
	"+":  5,
	"-":  5,
	"*":  6,
	"/":  6,
	"%":  6,
}

func needsParens(child ast.Expr, parentOp string, isRight bool) bool {
	bin, ok := child.(*ast.Binary)
	if !ok {
		return false
	}
	childPrec := precedence[bin.Operator]
	parentPrec := precedence[parentOp]
	if childPrec < parentPrec {
		return true
	}
	if childPrec == parentPrec && isRight {
		return true
	}
	return false
}

// Format pretty-prints a program back to source code.
func Format(program *ast.Program) string {
	var lines []string
	lines = append(lines, "action!")
	for _, s := range program.Statements {
		lines = append(lines, formatStmt(s, 1))
	}
	lines = append(lines, "paisa vasool")
	return strings.Join(lines, "\n") + "\n"
}

func formatStmt(s ast.Stmt, depth int) string {
	prefix := strings.Repeat(indent, depth)
	switch stmt := s.(type) {
	case *ast.VarDecl:
		return prefix + "maan lo " + stmt.Name + " = " + formatExpr(stmt.Initializer, depth)
	case *ast.Print:
		args := make([]string, len(stmt.Args))
		for i, a := range stmt.Args {
			args[i] = formatExpr(a, depth)
		}
		return prefix + "ek baat bataun: " + strings.Join(args, ", ")
	case *ast.If:
		return formatIf(stmt, depth)
	case *ast.While:
		bodyLines := formatBlockBody(stmt.Body, depth)
		return prefix + "jab tak hai jaan (" + formatExpr(stmt.Condition, depth) + ") {\n" + bodyLines + "\n" + prefix + "}"
	case *ast.Break:
		return prefix + "me bahar ja raha hu"
	case *ast.FuncDecl:
		params := strings.Join(stmt.Params, ", ")
		bodyLines := formatBlockBody(stmt.Body, depth)
		return prefix + "climax " + stmt.Name + "(" + params + ") {\n" + bodyLines + "\n" + prefix + "}"
	case *ast.Return:
		if stmt.Value == nil {
			return prefix + "dialogue wapas do"
		}
		return prefix + "dialogue wapas do " + formatExpr(stmt.Value, depth)
	case *ast.ExprStmt:
		return prefix + formatExpr(stmt.Expr, depth)
	case *ast.Block:
		inner := formatBlockBody(stmt, depth)
		return prefix + "{\n" + inner + "\n" + prefix + "}"
	}
	return ""
}

func formatIf(stmt *ast.If, depth int) string {
	prefix := strings.Repeat(indent, depth)
	var b strings.Builder
	for i, cond := range stmt.Conditions {
		keyword := "agar kismat rahi"
		if i > 0 {
			keyword = "nahi to"
			b.WriteString(" ")
		} else {
			b.WriteString(prefix)
		}
		b.WriteString(keyword + " (" + formatExpr(cond, depth) + ") {\n")
		b.WriteString(formatBlockBody(stmt.Consequents[i], depth))
		b.WriteString("\n" + prefix + "}")
	}
	if stmt.Alternate != nil {
		b.WriteString(" warna {\n")
		b.WriteString(formatBlockBody(stmt.Alternate, depth))
		b.WriteString("\n" + prefix + "}")
	}
	return b.String()
}

func formatBlockBody(block *ast.Block, depth int) string {
	lines := make([]string, len(block.Statements))
	for i, s := range block.Statements {
		lines[i] = formatStmt(s, depth+1)
	}
	return strings.Join(lines, "\n")
}

func formatExpr(e ast.Expr, depth int) string {
	switch expr := e.(type) {
	case *ast.Literal:
		return formatLiteral(expr)
	case *ast.Identifier:
		return expr.Name
	case *ast.Assign:
		return expr.Name + " = " + formatExpr(expr.Value, depth)
	case *ast.Call:
		args := make([]string, len(expr.Args))
		for i, a := range expr.Args {
			args[i] = formatExpr(a, depth)
		}
		return expr.Callee + "(" + strings.Join(args, ", ") + ")"
	case *ast.Binary:
		leftStr := formatExpr(expr.Left, depth)
		rightStr := formatExpr(expr.Right, depth)
		if needsParens(expr.Left, expr.Operator, false) {
			leftStr = "(" + leftStr + ")"
		}
		if needsParens(expr.Right, expr.Operator, true) {
			rightStr = "(" + rightStr + ")"
		}
		return leftStr + " " + expr.Operator + " " + rightStr
	case *ast.Unary:
		operand := formatExpr(expr.Operand, depth)
		if _, isBin := expr.Operand.(*ast.Binary); isBin {
			operand = "(" + operand + ")"
		}
		return expr.Operator + operand
	case *ast.Grouping:
		return "(" + formatExpr(expr.Expr, depth) + ")"
	}
	return ""
}

func formatLiteral(lit *ast.Literal) string {
	switch lit.Kind_ {
	case ast.LitNumber:
		n := lit.Value.(float64)
		return strconv.FormatFloat(n, 'f', -1, 64)
	case ast.LitString:
		return strconv.Quote(lit.Value.(string))
	case ast.LitBool:
		if lit.Value.(bool) {
			return "sach"
		}
		return "galat"
	case ast.LitUnit:
		return "khaali"
	}
	return ""
}
