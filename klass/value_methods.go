package klass

import (
	"fmt"
	"strings"
)

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindHash:
		return "hash"
	case KindMethod:
		return "method"
	case KindAccessor:
		return "accessor"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return "unknown"
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.data.(string)
	case KindNil:
		return ""
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.data.(int64))
	case KindFloat:
		return fmt.Sprintf("%g", v.data.(float64))
	case KindArray:
		elems := v.data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.String()
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case KindHash:
		entries := v.data.(map[string]Value)
		if len(entries) == 0 {
			return "{}"
		}
		parts := make([]string, 0, len(entries))
		for k, val := range entries {
			parts = append(parts, fmt.Sprintf("%s: %s", k, val.String()))
		}
		return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
	case KindMethod:
		return fmt.Sprintf("<method %s>", v.data.(*Method).Name)
	case KindAccessor:
		return "<accessor>"
	case KindClass:
		return fmt.Sprintf("<Class %s>", v.data.(*Class).Name())
	case KindInstance:
		return fmt.Sprintf("<%s instance>", v.data.(*Instance).class.Name())
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool()
	default:
		return true
	}
}

// Call invokes a method value with no receiver. Methods obtained from
// Instance.Get are already bound and ignore the missing receiver.
func (v Value) Call(args ...Value) (Value, error) {
	m := v.Method()
	if m == nil {
		return NewNil(), fmt.Errorf("value of kind %s is not callable", v.kind)
	}
	call := &Call{self: NewNil(), name: m.Name}
	return m.Fn(call, call.self, args)
}
