package internal

type instance struct {
	class  *class
	fields map[string]interface{}
}

// get looks at the fields first, methods are bound on every access
func (o *instance) get(state *interpreterState, tk *token) interface{} {
	if val, ok := o.fields[tk.lexeme]; ok {
		return val
	}
	if method := o.class.findMethod(tk.lexeme); method != nil {
		return method.bind(o)
	}
	state.runtimeErrf(errUndefinedProp, tk, "%s '%s'.", errUndefinedProp, tk.lexeme)
	return nil
}

func (o *instance) set(name *token, value interface{}) {
	o.fields[name.lexeme] = value
}

func (o *instance) String() string {
	return o.class.name + " instance"
}
