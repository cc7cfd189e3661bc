package klass

import "fmt"

// Definition is the input record consumed by Create. The keys initialize,
// extend, include, and static are reserved and consumed by the compiler;
// every other key declares an instance member. Method values become
// superclass-aware instance methods, Accessor values install as property
// descriptors, and anything else becomes a shared class-level data member.
// Per-instance state belongs in the initializer: class-level data is shared
// by every instance until an instance field shadows it.
type Definition map[string]Value

const (
	KeyInitialize = "initialize"
	KeyExtend     = "extend"
	KeyInclude    = "include"
	KeyStatic     = "static"
	KeySuper      = "super"
)

// Create compiles a definition into a class. A nil or empty definition
// produces a class with no members and the implicit root as its base.
//
// Precedence on name collisions: base < earlier includes < later includes
// < own members.
func Create(def Definition) (*Class, error) {
	if _, ok := def[KeySuper]; ok {
		return nil, &ReservedNameError{Name: KeySuper}
	}

	cls := &Class{
		members: make(map[string]member),
		statics: make(map[string]Value),
	}

	if ext, ok := def[KeyExtend]; ok {
		base := ext.Class()
		if base == nil {
			return nil, fmt.Errorf("extend: expected a class, got %s", ext.Kind())
		}
		cls.base = base
		// Inherited members keep the dispatch target of the class that
		// declared them, so a base method calling Super still reaches the
		// base's own base.
		for name, m := range base.members {
			cls.members[name] = m
		}
	}

	if inc, ok := def[KeyInclude]; ok {
		if inc.Kind() != KindArray {
			return nil, fmt.Errorf("include: expected an array of classes, got %s", inc.Kind())
		}
		for i, mv := range inc.Array() {
			mixin := mv.Class()
			if mixin == nil {
				return nil, fmt.Errorf("include[%d]: expected a class, got %s", i, mv.Kind())
			}
			cls.mixins = append(cls.mixins, mixin)
			// Copy the mixin's whole flattened table, own and inherited
			// members alike. Super dispatch inside copied methods resolves
			// against this class's declared base, not the mixin's.
			for name, m := range mixin.members {
				cls.members[name] = m.retarget(cls.base)
			}
		}
	}

	for name, v := range def {
		switch name {
		case KeyExtend, KeyInclude:
			continue
		case KeyInitialize:
			m := v.Method()
			if m == nil {
				return nil, fmt.Errorf("initialize: expected a method, got %s", v.Kind())
			}
			cls.init = m.Fn
			continue
		case KeyStatic:
			if v.Kind() != KindHash {
				return nil, fmt.Errorf("static: expected a hash, got %s", v.Kind())
			}
			for sn, sv := range v.Hash() {
				cls.statics[sn] = sv
			}
			continue
		}
		cls.members[name] = newMember(v, cls.base)
	}

	return cls, nil
}

// MustCreate is Create for definitions known to be well formed.
func MustCreate(def Definition) *Class {
	cls, err := Create(def)
	if err != nil {
		panic(err)
	}
	return cls
}
