package internal

type exec struct {
	state *interpreterState

	globals *env
	env     *env

	// locals maps every resolved variable access to its scope distance,
	// an expression missing here lives in globals
	locals map[expr]int
}

func newExec(state *interpreterState) *exec {
	globals := newEnv(state, nil)
	defineGlobals(globals)
	return &exec{
		state:   state,
		globals: globals,
		env:     globals,
		locals:  make(map[expr]int),
	}
}

// interpret runs every statement in order and stops at the first runtime
// error, which is returned already formatted.
func (e *exec) interpret(stmts []stmt) (err error) {
	defer func() {
		if r := recover(); r != nil {
			runErr, isRunErr := r.(*RuntimeError)
			if !isRunErr {
				panic(r)
			}
			e.state.hadRuntimeError = true
			err = runErr
		}
	}()
	for _, s := range stmts {
		s.accept(e)
	}
	return nil
}

func (e *exec) resolve(ex expr, depth int) {
	e.locals[ex] = depth
}

func (e *exec) evaluate(ex expr) interface{} {
	return ex.accept(e)
}

func (e *exec) visitExprStmt(stmt *exprStmt) R {
	e.evaluate(stmt.expression)
	return nil
}

func (e *exec) visitPrintStmt(stmt *printStmt) R {
	value := e.evaluate(stmt.expression)
	e.state.printer.Println(stringify(value))
	return nil
}

func (e *exec) visitVarStmt(stmt *varStmt) R {
	var val interface{}
	if stmt.initializer != nil {
		val = e.evaluate(stmt.initializer)
	}
	e.env.define(stmt.name.lexeme, val)
	return nil
}

func (e *exec) visitBlockStmt(stmt *blockStmt) R {
	return e.executeBlock(stmt.stmts, newEnv(e.state, e.env))
}

// executeBlock returns a *returnValue when a return statement was executed
// inside the block, nil otherwise.
func (e *exec) executeBlock(stmts []stmt, env *env) R {
	previous := e.env
	defer func() {
		e.env = previous
	}()
	e.env = env
	for _, s := range stmts {
		if signal := s.accept(e); signal != nil {
			return signal
		}
	}
	return nil
}

func (e *exec) visitIfStmt(stmt *ifStmt) R {
	if truthy(e.evaluate(stmt.condition)) {
		return stmt.thenBranch.accept(e)
	}
	if stmt.elseBranch != nil {
		return stmt.elseBranch.accept(e)
	}
	return nil
}

func (e *exec) visitWhileStmt(stmt *whileStmt) R {
	for truthy(e.evaluate(stmt.condition)) {
		if signal := stmt.body.accept(e); signal != nil {
			return signal
		}
	}
	return nil
}

func (e *exec) visitFnStmt(stmt *fnStmt) R {
	e.env.define(stmt.name.lexeme, &function{
		declaration:   stmt,
		closure:       e.env,
		isInitializer: false,
	})
	return nil
}

func (e *exec) visitReturnStmt(stmt *returnStmt) R {
	var value interface{}
	if stmt.value != nil {
		value = e.evaluate(stmt.value)
	}
	return &returnValue{value: value}
}

func (e *exec) visitClassStmt(stmt *classStmt) R {
	e.env.define(stmt.name.lexeme, nil)

	var superclass *class
	if stmt.superclass != nil {
		sc, isClass := e.evaluate(stmt.superclass).(*class)
		if !isClass {
			e.state.runtimeErr(errSuperclassNotClass, stmt.superclass.name)
		}
		superclass = sc
	}

	classEnv := e.env
	if superclass != nil {
		classEnv = newEnv(e.state, e.env)
		classEnv.define("super", superclass)
	}

	methods := make(map[string]*function, len(stmt.methods))
	for _, method := range stmt.methods {
		methods[method.name.lexeme] = &function{
			declaration:   method,
			closure:       classEnv,
			isInitializer: method.name.lexeme == "init",
		}
	}

	e.env.assign(stmt.name, &class{
		name:       stmt.name.lexeme,
		superclass: superclass,
		methods:    methods,
	})
	return nil
}

func (e *exec) visitAssignExpr(expr *assignExpr) R {
	val := e.evaluate(expr.value)
	if distance, ok := e.locals[expr]; ok {
		e.env.assignAt(distance, expr.name, val)
	} else {
		e.globals.assign(expr.name, val)
	}
	return val
}

func (e *exec) visitBinaryExpr(expr *binaryExpr) R {
	left := e.evaluate(expr.left)
	right := e.evaluate(expr.right)

	switch expr.operator.token {
	case tkEqualEqual:
		return isEqual(left, right)
	case tkBangEqual:
		return !isEqual(left, right)
	case tkGreater:
		leftNum, rightNum := e.getNums(expr.operator, left, right)
		return leftNum > rightNum
	case tkGreaterEqual:
		leftNum, rightNum := e.getNums(expr.operator, left, right)
		return leftNum >= rightNum
	case tkLess:
		leftNum, rightNum := e.getNums(expr.operator, left, right)
		return leftNum < rightNum
	case tkLessEqual:
		leftNum, rightNum := e.getNums(expr.operator, left, right)
		return leftNum <= rightNum
	case tkPlus:
		leftNum, leftIsNum := left.(float64)
		rightNum, rightIsNum := right.(float64)
		if leftIsNum && rightIsNum {
			return leftNum + rightNum
		}
		_, leftIsStr := left.(string)
		_, rightIsStr := right.(string)
		if leftIsStr || rightIsStr {
			return stringify(left) + stringify(right)
		}
		e.state.runtimeErr(errOnlyNumbersOrStrings, expr.operator)
	case tkMinus:
		leftNum, rightNum := e.getNums(expr.operator, left, right)
		return leftNum - rightNum
	case tkSlash:
		leftNum, rightNum := e.getNums(expr.operator, left, right)
		return leftNum / rightNum
	case tkStar:
		leftNum, rightNum := e.getNums(expr.operator, left, right)
		return leftNum * rightNum
	default:
		e.state.runtimeErrf(errUndefinedOp, expr.operator, "%s '%s'.", errUndefinedOp, expr.operator.lexeme)
	}
	return nil
}

func (e *exec) getNums(operator *token, left, right interface{}) (float64, float64) {
	leftNum, ok := left.(float64)
	if !ok {
		e.state.runtimeErr(errOnlyNumbers, operator)
	}
	rightNum, ok := right.(float64)
	if !ok {
		e.state.runtimeErr(errOnlyNumbers, operator)
	}
	return leftNum, rightNum
}

func (e *exec) visitCallExpr(expr *callExpr) R {
	callee := e.evaluate(expr.callee)

	fn, isFn := callee.(callable)
	if !isFn {
		e.state.runtimeErr(errOnlyFunction, expr.paren)
	}

	arguments := make([]interface{}, len(expr.arguments))
	for i := range expr.arguments {
		arguments[i] = e.evaluate(expr.arguments[i])
	}

	if len(arguments) != fn.arity() {
		e.state.runtimeErrf(
			errInvalidNumberArguments,
			expr.paren,
			"Expected %d arguments but got %d.",
			fn.arity(),
			len(arguments),
		)
	}

	return fn.call(e, arguments)
}

func (e *exec) visitGetExpr(expr *getExpr) R {
	object := e.evaluate(expr.object)
	obj, isObj := object.(*instance)
	if !isObj {
		e.state.runtimeErr(errExpectedObject, expr.name)
	}
	return obj.get(e.state, expr.name)
}

func (e *exec) visitSetExpr(expr *setExpr) R {
	object := e.evaluate(expr.object)
	obj, isObj := object.(*instance)
	if !isObj {
		e.state.runtimeErr(errExpectedObjectFields, expr.name)
	}
	value := e.evaluate(expr.value)
	obj.set(expr.name, value)
	return value
}

// visitSuperExpr finds the method on the superclass of the class that
// declared the running method, "this" lives one frame below "super".
func (e *exec) visitSuperExpr(expr *superExpr) R {
	distance := e.locals[expr]
	superclass := e.env.getAt(distance, "super").(*class)
	object := e.env.getAt(distance-1, "this").(*instance)

	method := superclass.findMethod(expr.method.lexeme)
	if method == nil {
		e.state.runtimeErrf(errUndefinedProp, expr.method, "%s '%s'.", errUndefinedProp, expr.method.lexeme)
	}
	return method.bind(object)
}

func (e *exec) visitGroupingExpr(expr *groupingExpr) R {
	return e.evaluate(expr.expression)
}

func (e *exec) visitLiteralExpr(expr *literalExpr) R {
	return expr.value
}

func (e *exec) visitLogicalExpr(expr *logicalExpr) R {
	left := e.evaluate(expr.left)

	if expr.operator.token == tkOr {
		if truthy(left) {
			return left
		}
	} else {
		if !truthy(left) {
			return left
		}
	}

	return e.evaluate(expr.right)
}

func (e *exec) visitThisExpr(expr *thisExpr) R {
	return e.lookUpVariable(expr.keyword, expr)
}

func (e *exec) visitUnaryExpr(expr *unaryExpr) R {
	value := e.evaluate(expr.right)
	switch expr.operator.token {
	case tkBang:
		return !truthy(value)
	case tkMinus:
		valueNum, ok := value.(float64)
		if !ok {
			e.state.runtimeErr(errOnlyNumbers, expr.operator)
		}
		return -valueNum
	default:
		e.state.runtimeErrf(errUndefinedOp, expr.operator, "%s '%s'.", errUndefinedOp, expr.operator.lexeme)
	}
	return nil
}

func (e *exec) visitVariableExpr(expr *variableExpr) R {
	return e.lookUpVariable(expr.name, expr)
}

func (e *exec) lookUpVariable(name *token, ex expr) interface{} {
	if distance, ok := e.locals[ex]; ok {
		return e.env.getAt(distance, name.lexeme)
	}
	return e.globals.get(name)
}
