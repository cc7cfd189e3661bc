package klass

import (
	"fmt"
	"sort"
)

// Instance is one constructed object. Fields hold per-instance state set by
// initializers or Set; everything else resolves through the class's member
// table.
type Instance struct {
	class  *Class
	fields map[string]Value
}

// Class reports the class that constructed this instance.
func (in *Instance) Class() *Class { return in.class }

// Get resolves a member against the instance: own fields first, then the
// class table. Accessor members are read through their getter; method
// members come back bound to this instance.
func (in *Instance) Get(name string) (Value, error) {
	if v, ok := in.fields[name]; ok {
		return v, nil
	}
	m, ok := in.class.member(name)
	if !ok {
		return NewNil(), fmt.Errorf("unknown member %s", name)
	}
	self := newInstance(in)
	switch m.kind {
	case memberData:
		return m.value, nil
	case memberAccessor:
		if m.get == nil {
			return NewNil(), fmt.Errorf("member %s is write-only", name)
		}
		call := &Call{self: self, name: name, super: m.super}
		return m.get(call, self, nil)
	default:
		bound := m
		return NewMethod(name, func(_ *Call, _ Value, args []Value) (Value, error) {
			return invokeMember(bound, name, self, args)
		}), nil
	}
}

// Set writes a member. Accessor members route through their setter; any
// other name becomes an instance field, shadowing a same-named class-level
// data member for this instance only.
func (in *Instance) Set(name string, v Value) error {
	if name == KeySuper {
		return &ReservedNameError{Name: KeySuper}
	}
	if m, ok := in.class.member(name); ok && m.kind == memberAccessor {
		if m.set == nil {
			return fmt.Errorf("member %s is read-only", name)
		}
		self := newInstance(in)
		call := &Call{self: self, name: name, super: m.super}
		_, err := m.set(call, self, []Value{v})
		return err
	}
	in.fields[name] = v
	return nil
}

// CallMethod dispatches a method member on this instance.
func (in *Instance) CallMethod(name string, args ...Value) (Value, error) {
	m, ok := in.class.member(name)
	if !ok {
		return NewNil(), fmt.Errorf("unknown member %s", name)
	}
	if m.kind != memberMethod {
		return NewNil(), fmt.Errorf("member %s is not a method", name)
	}
	return invokeMember(m, name, newInstance(in), args)
}

// Field reads a per-instance field without consulting the class table.
func (in *Instance) Field(name string) (Value, bool) {
	v, ok := in.fields[name]
	if !ok {
		return NewNil(), false
	}
	return v, true
}

// FieldNames lists the per-instance fields currently set, sorted.
func (in *Instance) FieldNames() []string {
	names := make([]string, 0, len(in.fields))
	for name := range in.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
