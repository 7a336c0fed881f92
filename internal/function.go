package internal

import "fmt"

type callable interface {
	arity() int
	call(exec *exec, arguments []interface{}) interface{}
}

type function struct {
	declaration   *fnStmt
	closure       *env
	isInitializer bool
}

func (f *function) arity() int {
	return len(f.declaration.params)
}

// call runs the body in a fresh frame whose parent is the closure, never the
// caller's frame.
func (f *function) call(exec *exec, arguments []interface{}) interface{} {
	env := newEnv(exec.state, f.closure)
	for i := range f.declaration.params {
		env.define(f.declaration.params[i].lexeme, arguments[i])
	}

	signal := exec.executeBlock(f.declaration.body, env)

	if f.isInitializer {
		return f.closure.getAt(0, "this")
	}
	if ret, isReturn := signal.(*returnValue); isReturn {
		return ret.value
	}
	return nil
}

// bind creates a copy of the method whose closure has "this" defined
func (f *function) bind(object *instance) *function {
	environment := newEnv(f.closure.state, f.closure)
	environment.define("this", object)
	return &function{
		declaration:   f.declaration,
		closure:       environment,
		isInitializer: f.isInitializer,
	}
}

func (f *function) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.name.lexeme)
}

// returnValue is the signal produced by a return statement. Statement
// visitors hand it back up until the enclosing call consumes it.
type returnValue struct {
	value interface{}
}
