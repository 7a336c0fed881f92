package internal

import (
	"github.com/sirupsen/logrus"
)

// env is a scope frame. Frames are shared by pointer: every closure created
// while a frame was active keeps it alive and sees writes made through any
// other holder.
type env struct {
	state *interpreterState

	enclosing *env
	values    map[string]interface{}
}

func newEnv(state *interpreterState, enclosing *env) *env {
	return &env{
		state:     state,
		enclosing: enclosing,
		values:    make(map[string]interface{}),
	}
}

func (e *env) get(name *token) interface{} {
	if value, ok := e.values[name.lexeme]; ok {
		return value
	}
	if e.enclosing != nil {
		return e.enclosing.get(name)
	}
	e.state.runtimeErrf(errUndefinedVar, name, "%s '%s'.", errUndefinedVar, name.lexeme)
	return nil
}

func (e *env) define(name string, value interface{}) {
	if e.state.log.IsLevelEnabled(logrus.TraceLevel) {
		e.state.log.WithFields(logrus.Fields{
			"name":  name,
			"value": stringify(value),
		}).Trace("define")
	}
	e.values[name] = value
}

func (e *env) assign(name *token, value interface{}) {
	if _, ok := e.values[name.lexeme]; ok {
		e.values[name.lexeme] = value
		return
	}
	if e.enclosing != nil {
		e.enclosing.assign(name, value)
		return
	}
	e.state.runtimeErrf(errUndefinedVar, name, "%s '%s'.", errUndefinedVar, name.lexeme)
}

// ancestor hops exactly distance links outward. The resolver guarantees the
// chain is at least that long.
func (e *env) ancestor(distance int) *env {
	environment := e
	for i := 0; i < distance; i++ {
		environment = environment.enclosing
	}
	return environment
}

func (e *env) getAt(distance int, name string) interface{} {
	return e.ancestor(distance).values[name]
}

func (e *env) assignAt(distance int, name *token, value interface{}) {
	e.ancestor(distance).values[name.lexeme] = value
}
