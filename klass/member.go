package klass

type memberKind int

const (
	memberData memberKind = iota
	memberMethod
	memberAccessor
)

// member is one entry in a class's flattened member table. Method and
// accessor members carry the class their super dispatch resolves against:
// the base of the class that declared them, or of the class that included
// them.
type member struct {
	kind  memberKind
	value Value
	fn    MethodFunc
	get   MethodFunc
	set   MethodFunc
	super *Class
}

func newMember(v Value, base *Class) member {
	switch v.Kind() {
	case KindMethod:
		return member{kind: memberMethod, fn: v.Method().Fn, super: base}
	case KindAccessor:
		a := v.Accessor()
		return member{kind: memberAccessor, get: a.Get, set: a.Set, super: base}
	default:
		return member{kind: memberData, value: v}
	}
}

// retarget repoints super dispatch at the including class's base. Data
// members have no dispatch target and pass through unchanged.
func (m member) retarget(base *Class) member {
	switch m.kind {
	case memberMethod, memberAccessor:
		m.super = base
	}
	return m
}

// asValue reconstructs the member as a plain value for enumeration. The
// descriptor itself is returned, never the result of invoking it.
func (m member) asValue(name string) Value {
	switch m.kind {
	case memberMethod:
		return NewMethod(name, m.fn)
	case memberAccessor:
		return NewAccessor(m.get, m.set)
	default:
		return m.value
	}
}
