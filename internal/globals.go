package internal

import (
	"time"
)

type nativeFn struct {
	arityValue int
	callFn     func(exec *exec, arguments []interface{}) interface{}
}

func (n *nativeFn) arity() int {
	return n.arityValue
}

func (n *nativeFn) call(exec *exec, arguments []interface{}) interface{} {
	return n.callFn(exec, arguments)
}

func (n *nativeFn) String() string {
	return "<native fn>"
}

func defineGlobals(e *env) {
	defineClock(e)
}

func defineClock(e *env) {
	e.define("clock", &nativeFn{
		arityValue: 0,
		callFn: func(exec *exec, arguments []interface{}) interface{} {
			return float64(time.Now().UnixNano()) / float64(time.Second)
		},
	})
}
