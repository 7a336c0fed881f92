package internal

//go:generate sh -c "go run ../cmd/ast Expr > expr.go"
//go:generate sh -c "go run ../cmd/ast Stmt > stmt.go"

import (
	"fmt"
	"strings"
)

//R generic type
type R interface{}

// printTree renders the parsed statements, one per line
func (s *interpreterState) printTree() string {
	out := ""
	for _, stmt := range s.stmts {
		out += stmt.accept(stringVisitor{}).(string) + "\n"
	}
	return out
}

type stringVisitor struct{}

func (v stringVisitor) parenthesize(name string, parts ...interface{}) string {
	var b strings.Builder
	b.WriteString("(" + name)
	for _, part := range parts {
		b.WriteString(" ")
		switch p := part.(type) {
		case expr:
			b.WriteString(p.accept(v).(string))
		case stmt:
			b.WriteString(p.accept(v).(string))
		default:
			b.WriteString(fmt.Sprintf("%v", p))
		}
	}
	b.WriteString(")")
	return b.String()
}

func (v stringVisitor) visitExprStmt(stmt *exprStmt) R {
	return v.parenthesize(";", stmt.expression)
}

func (v stringVisitor) visitPrintStmt(stmt *printStmt) R {
	return v.parenthesize("print", stmt.expression)
}

func (v stringVisitor) visitVarStmt(stmt *varStmt) R {
	if stmt.initializer == nil {
		return v.parenthesize("var", stmt.name.lexeme)
	}
	return v.parenthesize("var", stmt.name.lexeme, stmt.initializer)
}

func (v stringVisitor) visitBlockStmt(stmt *blockStmt) R {
	parts := make([]interface{}, len(stmt.stmts))
	for i, s := range stmt.stmts {
		parts[i] = s
	}
	return v.parenthesize("block", parts...)
}

func (v stringVisitor) visitIfStmt(stmt *ifStmt) R {
	if stmt.elseBranch == nil {
		return v.parenthesize("if", stmt.condition, stmt.thenBranch)
	}
	return v.parenthesize("if-else", stmt.condition, stmt.thenBranch, stmt.elseBranch)
}

func (v stringVisitor) visitWhileStmt(stmt *whileStmt) R {
	return v.parenthesize("while", stmt.condition, stmt.body)
}

func (v stringVisitor) visitFnStmt(stmt *fnStmt) R {
	params := make([]string, len(stmt.params))
	for i, param := range stmt.params {
		params[i] = param.lexeme
	}
	parts := []interface{}{stmt.name.lexeme, "(" + strings.Join(params, " ") + ")"}
	for _, s := range stmt.body {
		parts = append(parts, s)
	}
	return v.parenthesize("fun", parts...)
}

func (v stringVisitor) visitReturnStmt(stmt *returnStmt) R {
	if stmt.value == nil {
		return "(return)"
	}
	return v.parenthesize("return", stmt.value)
}

func (v stringVisitor) visitClassStmt(stmt *classStmt) R {
	parts := []interface{}{stmt.name.lexeme}
	if stmt.superclass != nil {
		parts = append(parts, "<", stmt.superclass.name.lexeme)
	}
	for _, method := range stmt.methods {
		parts = append(parts, method)
	}
	return v.parenthesize("class", parts...)
}

func (v stringVisitor) visitAssignExpr(expr *assignExpr) R {
	return v.parenthesize("=", expr.name.lexeme, expr.value)
}

func (v stringVisitor) visitBinaryExpr(expr *binaryExpr) R {
	return v.parenthesize(expr.operator.lexeme, expr.left, expr.right)
}

func (v stringVisitor) visitCallExpr(expr *callExpr) R {
	parts := []interface{}{expr.callee}
	for _, argument := range expr.arguments {
		parts = append(parts, argument)
	}
	return v.parenthesize("call", parts...)
}

func (v stringVisitor) visitGetExpr(expr *getExpr) R {
	return v.parenthesize(".", expr.object, expr.name.lexeme)
}

func (v stringVisitor) visitSetExpr(expr *setExpr) R {
	return v.parenthesize("=", expr.object, expr.name.lexeme, expr.value)
}

func (v stringVisitor) visitSuperExpr(expr *superExpr) R {
	return v.parenthesize("super", expr.method.lexeme)
}

func (v stringVisitor) visitGroupingExpr(expr *groupingExpr) R {
	return v.parenthesize("group", expr.expression)
}

func (v stringVisitor) visitLiteralExpr(expr *literalExpr) R {
	stringLiteral, isString := expr.value.(string)
	if isString {
		return "\"" + stringLiteral + "\""
	}
	return stringify(expr.value)
}

func (v stringVisitor) visitLogicalExpr(expr *logicalExpr) R {
	return v.parenthesize(expr.operator.lexeme, expr.left, expr.right)
}

func (v stringVisitor) visitThisExpr(expr *thisExpr) R {
	return "this"
}

func (v stringVisitor) visitUnaryExpr(expr *unaryExpr) R {
	return v.parenthesize(expr.operator.lexeme, expr.right)
}

func (v stringVisitor) visitVariableExpr(expr *variableExpr) R {
	return expr.name.lexeme
}
