package main

import (
	"fmt"
	"go/format"
	"os"
	"strings"
)

var exprTypes = []string{
	"Assign: name *token, value expr",
	"Binary: left expr, operator *token, right expr",
	"Call: callee expr, paren *token, arguments []expr",
	"Get: object expr, name *token",
	"Grouping: expression expr",
	"Literal: value interface{}",
	"Logical: left expr, operator *token, right expr",
	"Set: object expr, name *token, value expr",
	"Super: keyword *token, method *token",
	"This: keyword *token",
	"Unary: operator *token, right expr",
	"Variable: name *token",
}

var stmtTypes = []string{
	"Expr: expression expr",
	"Print: keyword *token, expression expr",
	"Var: name *token, initializer expr",
	"Block: stmts []stmt",
	"If: keyword *token, condition expr, thenBranch stmt, elseBranch stmt",
	"While: keyword *token, condition expr, body stmt",
	"Fn: name *token, params []*token, body []stmt",
	"Return: keyword *token, value expr",
	"Class: name *token, superclass *variableExpr, methods []*fnStmt",
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: ast Expr|Stmt")
		os.Exit(64)
	}
	var out string
	switch os.Args[1] {
	case "Stmt":
		out = generateAst("Stmt", stmtTypes)
	case "Expr":
		out = generateAst("Expr", exprTypes)
	default:
		fmt.Fprintf(os.Stderr, "Unknown base type %s\n", os.Args[1])
		os.Exit(64)
	}
	src, err := format.Source([]byte(out))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Stdout.Write(src)
}

func generateAst(baseName string, types []string) string {
	out := "// Code generated by cmd/ast. DO NOT EDIT.\n\n"
	out += "package internal\n\n"

	// Start base interface
	out += "type " + strings.ToLower(baseName) + " interface {\n"
	out += "\taccept(" + strings.ToLower(baseName) + "Visitor) R\n"
	out += "}\n\n"
	// End base interface

	// Start Visitor interface
	out += fmt.Sprintf("type %sVisitor interface {\n", strings.ToLower(baseName))
	for _, t := range types {
		typeDef := strings.Split(t, ":")
		name := strings.TrimSpace(typeDef[0])
		structType := strings.ToLower(string(name[0])) + name[1:] + baseName
		out += "\tvisit" + name + baseName + "(" + strings.ToLower(baseName) + " *" + structType + ") R\n"
	}
	out += "}\n\n"
	// End Visitor interface

	// Start  structs
	for _, t := range types {
		typeDef := strings.Split(t, ":")
		structName := strings.TrimSpace(typeDef[0])
		structFields := strings.TrimSpace(typeDef[1])
		out += generateType(baseName, structName, structFields)
	}
	// End structs

	return out
}

func generateType(baseName, name, fields string) string {
	// Start Structure Definition
	structName := strings.ToLower(string(name[0])) + name[1:] + baseName
	out := "type " + structName + " struct {\n"
	fieldArray := strings.Split(fields, ",")
	for _, field := range fieldArray {
		out += "\t" + strings.TrimSpace(field) + "\n"
	}
	out += "}\n\n"
	// End Structure Definition

	// Start Method Definition
	out += "func (s *" + structName + ") accept(visitor " + strings.ToLower(baseName) + "Visitor) R {\n"
	out += "\treturn visitor.visit" + name + baseName + "(s)\n"
	out += "}\n\n"
	// End Method Definition

	return out
}
