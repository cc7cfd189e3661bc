package klass

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindHash
	KindMethod
	KindAccessor
	KindClass
	KindInstance
)

type Value struct {
	kind ValueKind
	data any
}

type Method struct {
	Name string
	Fn   MethodFunc
}

type MethodFunc func(call *Call, self Value, args []Value) (Value, error)

// Accessor is a property descriptor: a member read and written through
// callables instead of a stored value. Either side may be nil, making the
// member write-only or read-only.
type Accessor struct {
	Get MethodFunc
	Set MethodFunc
}
