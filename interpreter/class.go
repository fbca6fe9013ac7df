package interpreter

import "github.com/informatter/lox/token"

// Class is a class object: a name, an optional superclass, and a
// name-to-method table. Calling a Class constructs an Instance.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

func (c *Class) String() string { return c.Name }

// findMethod searches this class's own method table, then walks the
// superclass chain. It does not bind "this": callers that hand a method
// back to user code must bind it first.
func (c *Class) findMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.findMethod(name)
	}
	return nil
}

func (c *Class) Arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(interp *Interpreter, args []any) (any, error) {
	instance := NewInstance(c)
	if init := c.findMethod("init"); init != nil {
		if _, err := init.bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a live object: a reference to its class plus a mutable
// field map. Instances are always handled through a pointer so that
// every alias observes the same fields.
type Instance struct {
	class  *Class
	fields map[string]any
}

func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]any)}
}

func (i *Instance) String() string { return i.class.Name + " instance" }

// Get looks up a property: instance fields shadow methods, so a field
// assignment can locally override an inherited method name.
func (i *Instance) Get(name token.Token) (any, error) {
	if value, ok := i.fields[name.Lexeme]; ok {
		return value, nil
	}
	if method := i.class.findMethod(name.Lexeme); method != nil {
		return method.bind(i), nil
	}
	return nil, newRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
}

func (i *Instance) Set(name token.Token, value any) {
	i.fields[name.Lexeme] = value
}
