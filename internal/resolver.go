package internal

import (
	"github.com/sirupsen/logrus"
)

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnInitializer
	fnMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// resolver walks the whole program once before it runs and records, for
// every local variable access, how many frames separate it from its
// declaration. Errors are collected in the state and never stop the walk.
type resolver struct {
	exec  *exec
	state *interpreterState

	// scopes[len-1] is the innermost scope, the value is true once the
	// variable initializer has been resolved
	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
}

func newResolver(exec *exec) *resolver {
	return &resolver{
		exec:            exec,
		state:           exec.state,
		scopes:          make([]map[string]bool, 0),
		currentFunction: fnNone,
		currentClass:    classNone,
	}
}

func (r *resolver) resolve(stmts []stmt) {
	for _, s := range stmts {
		s.accept(r)
	}
}

func (r *resolver) resolveExpr(ex expr) {
	ex.accept(r)
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) declare(name *token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.lexeme]; exists {
		r.state.tokenError(errAlreadyDeclared, name)
	}
	scope[name.lexeme] = false
}

func (r *resolver) define(name *token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.lexeme] = true
}

func (r *resolver) resolveLocal(ex expr, name *token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.lexeme]; ok {
			depth := len(r.scopes) - 1 - i
			r.exec.resolve(ex, depth)
			if r.state.log.IsLevelEnabled(logrus.TraceLevel) {
				r.state.log.WithFields(logrus.Fields{
					"name":  name.lexeme,
					"depth": depth,
					"line":  name.line,
				}).Trace("resolved local")
			}
			return
		}
	}
	// Not found, assumed to be global
}

func (r *resolver) resolveFunction(fn *fnStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	defer func() {
		r.currentFunction = enclosingFunction
	}()

	r.beginScope()
	for _, param := range fn.params {
		r.declare(param)
		r.define(param)
	}
	r.resolve(fn.body)
	r.endScope()
}

func (r *resolver) visitExprStmt(stmt *exprStmt) R {
	r.resolveExpr(stmt.expression)
	return nil
}

func (r *resolver) visitPrintStmt(stmt *printStmt) R {
	r.resolveExpr(stmt.expression)
	return nil
}

func (r *resolver) visitVarStmt(stmt *varStmt) R {
	r.declare(stmt.name)
	if stmt.initializer != nil {
		r.resolveExpr(stmt.initializer)
	}
	r.define(stmt.name)
	return nil
}

func (r *resolver) visitBlockStmt(stmt *blockStmt) R {
	r.beginScope()
	r.resolve(stmt.stmts)
	r.endScope()
	return nil
}

func (r *resolver) visitIfStmt(stmt *ifStmt) R {
	r.resolveExpr(stmt.condition)
	stmt.thenBranch.accept(r)
	if stmt.elseBranch != nil {
		stmt.elseBranch.accept(r)
	}
	return nil
}

func (r *resolver) visitWhileStmt(stmt *whileStmt) R {
	r.resolveExpr(stmt.condition)
	stmt.body.accept(r)
	return nil
}

func (r *resolver) visitFnStmt(stmt *fnStmt) R {
	r.declare(stmt.name)
	r.define(stmt.name)
	r.resolveFunction(stmt, fnFunction)
	return nil
}

func (r *resolver) visitReturnStmt(stmt *returnStmt) R {
	if r.currentFunction == fnNone {
		r.state.tokenError(errTopLevelReturn, stmt.keyword)
	}
	if stmt.value != nil {
		if r.currentFunction == fnInitializer {
			r.state.tokenError(errReturnFromInit, stmt.keyword)
		}
		r.resolveExpr(stmt.value)
	}
	return nil
}

func (r *resolver) visitClassStmt(stmt *classStmt) R {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() {
		r.currentClass = enclosingClass
	}()

	r.declare(stmt.name)
	r.define(stmt.name)

	if stmt.superclass != nil {
		if stmt.name.lexeme == stmt.superclass.name.lexeme {
			r.state.tokenError(errInheritFromSelf, stmt.superclass.name)
		}
		r.currentClass = classSubclass
		r.resolveExpr(stmt.superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range stmt.methods {
		declaration := fnMethod
		if method.name.lexeme == "init" {
			declaration = fnInitializer
		}
		r.resolveFunction(method, declaration)
	}

	r.endScope()

	if stmt.superclass != nil {
		r.endScope()
	}
	return nil
}

func (r *resolver) visitAssignExpr(expr *assignExpr) R {
	r.resolveExpr(expr.value)
	r.resolveLocal(expr, expr.name)
	return nil
}

func (r *resolver) visitBinaryExpr(expr *binaryExpr) R {
	r.resolveExpr(expr.left)
	r.resolveExpr(expr.right)
	return nil
}

func (r *resolver) visitCallExpr(expr *callExpr) R {
	r.resolveExpr(expr.callee)
	for _, argument := range expr.arguments {
		r.resolveExpr(argument)
	}
	return nil
}

func (r *resolver) visitGetExpr(expr *getExpr) R {
	r.resolveExpr(expr.object)
	return nil
}

func (r *resolver) visitSetExpr(expr *setExpr) R {
	r.resolveExpr(expr.value)
	r.resolveExpr(expr.object)
	return nil
}

func (r *resolver) visitSuperExpr(expr *superExpr) R {
	if r.currentClass == classNone {
		r.state.tokenError(errSuperOutsideClass, expr.keyword)
	} else if r.currentClass != classSubclass {
		r.state.tokenError(errSuperWithoutSuperclass, expr.keyword)
	}
	r.resolveLocal(expr, expr.keyword)
	return nil
}

func (r *resolver) visitGroupingExpr(expr *groupingExpr) R {
	r.resolveExpr(expr.expression)
	return nil
}

func (r *resolver) visitLiteralExpr(expr *literalExpr) R {
	return nil
}

func (r *resolver) visitLogicalExpr(expr *logicalExpr) R {
	r.resolveExpr(expr.left)
	r.resolveExpr(expr.right)
	return nil
}

func (r *resolver) visitThisExpr(expr *thisExpr) R {
	if r.currentClass == classNone {
		r.state.tokenError(errThisOutsideClass, expr.keyword)
		return nil
	}
	r.resolveLocal(expr, expr.keyword)
	return nil
}

func (r *resolver) visitUnaryExpr(expr *unaryExpr) R {
	r.resolveExpr(expr.right)
	return nil
}

func (r *resolver) visitVariableExpr(expr *variableExpr) R {
	if len(r.scopes) != 0 {
		if defined, ok := r.scopes[len(r.scopes)-1][expr.name.lexeme]; ok && !defined {
			r.state.tokenError(errReadInInitializer, expr.name)
		}
	}
	r.resolveLocal(expr, expr.name)
	return nil
}
