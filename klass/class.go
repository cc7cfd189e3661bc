package klass

import (
	"fmt"
	"sort"
)

// Class is the compiled output of Create: a constructible type bundling an
// initializer, a flattened member table, and a static namespace. The
// compiler never touches a class after returning it, but the member table
// and static namespace stay open to direct mutation through SetMember and
// SetStatic.
type Class struct {
	name    string
	base    *Class
	mixins  []*Class
	init    MethodFunc
	members map[string]member
	statics map[string]Value
}

// Base returns the class named by the definition's extend key, or nil for
// the implicit root.
func (c *Class) Base() *Class { return c.base }

// Mixins returns the included classes in declaration order.
func (c *Class) Mixins() []*Class {
	return append([]*Class(nil), c.mixins...)
}

func (c *Class) Name() string {
	if c.name == "" {
		return "(anonymous)"
	}
	return c.name
}

// SetName attaches a display name. Cosmetic only; dispatch never consults
// it.
func (c *Class) SetName(name string) { c.name = name }

// Alloc creates an instance without running any initializer, mixin setup
// included.
func (c *Class) Alloc() Value {
	return newInstance(&Instance{class: c, fields: make(map[string]Value)})
}

// New constructs an instance: each included mixin's constructor-time setup
// runs first, in include order, then the resolved initializer. A class
// without its own initialize constructs like its base.
func (c *Class) New(args ...Value) (Value, error) {
	inst := c.Alloc()
	if err := c.construct(inst, args); err != nil {
		return NewNil(), err
	}
	return inst, nil
}

func (c *Class) construct(self Value, args []Value) error {
	for _, mixin := range c.mixins {
		// Mixin initializers are side-effecting setup; constructor
		// arguments stay with the class being instantiated.
		if err := mixin.construct(self, nil); err != nil {
			return err
		}
	}
	if c.init != nil {
		call := &Call{self: self, name: KeyInitialize, super: c.base, isInit: true}
		_, err := c.init(call, self, args)
		return err
	}
	if c.base != nil {
		return c.base.construct(self, args)
	}
	return nil
}

// Member returns the named table entry as a plain value: methods and
// accessors unbound, data as stored.
func (c *Class) Member(name string) (Value, bool) {
	m, ok := c.members[name]
	if !ok {
		return NewNil(), false
	}
	return m.asValue(name), true
}

// MemberNames lists the member table, sorted.
func (c *Class) MemberNames() []string {
	names := make([]string, 0, len(c.members))
	for name := range c.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetMember installs or replaces a table entry after creation. A method
// installed this way becomes reachable through super dispatch in subclasses
// compiled before the call.
func (c *Class) SetMember(name string, v Value) error {
	switch name {
	case KeySuper:
		return &ReservedNameError{Name: KeySuper}
	case KeyInitialize, KeyExtend, KeyInclude, KeyStatic:
		return fmt.Errorf("cannot install reserved key %q as a member", name)
	}
	c.members[name] = newMember(v, c.base)
	return nil
}

func (c *Class) member(name string) (member, bool) {
	m, ok := c.members[name]
	return m, ok
}

// Static returns the named static member. Statics are exactly the class's
// own static block: nothing propagates from extend or include.
func (c *Class) Static(name string) (Value, bool) {
	v, ok := c.statics[name]
	if !ok {
		return NewNil(), false
	}
	return v, true
}

// StaticNames lists the static namespace, sorted.
func (c *Class) StaticNames() []string {
	names := make([]string, 0, len(c.statics))
	for name := range c.statics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetStatic installs a static member after creation. Already-compiled
// subclasses never observe it.
func (c *Class) SetStatic(name string, v Value) {
	c.statics[name] = v
}

// CallStatic invokes a static method with the class itself as receiver.
func (c *Class) CallStatic(name string, args ...Value) (Value, error) {
	v, ok := c.statics[name]
	if !ok {
		return NewNil(), fmt.Errorf("unknown static member %s.%s", c.Name(), name)
	}
	m := v.Method()
	if m == nil {
		return NewNil(), fmt.Errorf("static member %s.%s is not a method", c.Name(), name)
	}
	call := &Call{self: NewClass(c), name: name}
	return m.Fn(call, call.self, args)
}
