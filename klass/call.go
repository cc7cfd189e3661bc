package klass

// Call carries per-invocation context into a method body: the receiver, the
// member name the body was invoked under, and the class its super dispatch
// resolves against. Every invocation gets its own Call, so nested and
// re-entrant super chains share no state.
type Call struct {
	self   Value
	name   string
	super  *Class
	isInit bool
}

// Self returns the receiver the method was invoked on.
func (c *Call) Self() Value { return c.self }

// Name returns the member name the method was invoked under.
func (c *Call) Name() string { return c.name }

// Super invokes the overridden implementation of this method, bound to the
// current receiver. Inside an initializer it runs the base class's full
// constructor. The lookup happens at call time, so a method installed on
// the base after this class was compiled is still reachable.
func (c *Call) Super(args ...Value) (Value, error) {
	if c.super == nil {
		return NewNil(), &NoSuperclassMethodError{Method: c.name}
	}
	if c.isInit {
		return NewNil(), c.super.construct(c.self, args)
	}
	m, ok := c.super.member(c.name)
	if !ok || m.kind != memberMethod {
		return NewNil(), &NoSuperclassMethodError{Method: c.name}
	}
	return invokeMember(m, c.name, c.self, args)
}

func invokeMember(m member, name string, self Value, args []Value) (Value, error) {
	call := &Call{self: self, name: name, super: m.super}
	return m.fn(call, self, args)
}
