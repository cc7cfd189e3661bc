package main

import (
	"fmt"
	"strings"

	"goklass/klass"
	"goklass/schema"
)

// defaultRegistry exposes the host methods schema files may bind by name.
func defaultRegistry() schema.Registry {
	return schema.Registry{
		"fields":     builtinFields,
		"class_name": builtinClassName,
		"describe":   builtinDescribe,
	}
}

func receiverInstance(name string, self klass.Value) (*klass.Instance, error) {
	obj := self.Instance()
	if obj == nil {
		return nil, fmt.Errorf("%s: receiver is not an instance", name)
	}
	return obj, nil
}

func builtinFields(call *klass.Call, self klass.Value, args []klass.Value) (klass.Value, error) {
	obj, err := receiverInstance("fields", self)
	if err != nil {
		return klass.NewNil(), err
	}
	entries := make(map[string]klass.Value)
	for _, name := range obj.FieldNames() {
		v, _ := obj.Field(name)
		entries[name] = v
	}
	return klass.NewHash(entries), nil
}

func builtinClassName(call *klass.Call, self klass.Value, args []klass.Value) (klass.Value, error) {
	obj, err := receiverInstance("class_name", self)
	if err != nil {
		return klass.NewNil(), err
	}
	return klass.NewString(obj.Class().Name()), nil
}

func builtinDescribe(call *klass.Call, self klass.Value, args []klass.Value) (klass.Value, error) {
	obj, err := receiverInstance("describe", self)
	if err != nil {
		return klass.NewNil(), err
	}
	parts := make([]string, 0, len(obj.FieldNames()))
	for _, name := range obj.FieldNames() {
		v, _ := obj.Field(name)
		parts = append(parts, fmt.Sprintf("%s=%s", name, v.String()))
	}
	if len(parts) == 0 {
		return klass.NewString("<" + obj.Class().Name() + ">"), nil
	}
	return klass.NewString("<" + obj.Class().Name() + " " + strings.Join(parts, " ") + ">"), nil
}
