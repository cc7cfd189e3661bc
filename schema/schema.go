// Package schema loads declarative class-hierarchy documents from YAML and
// compiles them with klass.Create. Classes compile in declaration order;
// extend and include may only name classes declared earlier in the same
// document.
package schema

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"goklass/klass"
)

// Registry maps method names referenced by schema documents to host
// implementations.
type Registry map[string]klass.MethodFunc

// File is the root of a schema document.
type File struct {
	Classes []ClassSpec `yaml:"classes"`
}

// ClassSpec declares one class. Members hold shared class-level data;
// Methods and Static bind by reference: either a Registry name or the
// literal form "return <value>" for constant-returning methods.
type ClassSpec struct {
	Name       string            `yaml:"name"`
	Extend     string            `yaml:"extend,omitempty"`
	Include    []string          `yaml:"include,omitempty"`
	Initialize string            `yaml:"initialize,omitempty"`
	Members    map[string]any    `yaml:"members,omitempty"`
	Methods    map[string]string `yaml:"methods,omitempty"`
	Static     map[string]string `yaml:"static,omitempty"`
}

// Hierarchy is a compiled schema document: classes by name plus their
// declaration order.
type Hierarchy struct {
	Order   []string
	Classes map[string]*klass.Class
}

// Class returns a compiled class by name.
func (h *Hierarchy) Class(name string) (*klass.Class, bool) {
	cls, ok := h.Classes[name]
	return cls, ok
}

// Load reads and compiles a schema file.
func Load(path string, reg Registry) (*Hierarchy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return Parse(data, reg)
}

// Parse compiles a schema document.
func Parse(data []byte, reg Registry) (*Hierarchy, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	h := &Hierarchy{Classes: make(map[string]*klass.Class)}
	for i, spec := range file.Classes {
		if spec.Name == "" {
			return nil, fmt.Errorf("classes[%d]: missing name", i)
		}
		if _, dup := h.Classes[spec.Name]; dup {
			return nil, fmt.Errorf("classes[%d]: duplicate class %s", i, spec.Name)
		}
		cls, err := h.compile(spec, reg)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", spec.Name, err)
		}
		cls.SetName(spec.Name)
		h.Classes[spec.Name] = cls
		h.Order = append(h.Order, spec.Name)
	}
	return h, nil
}

func (h *Hierarchy) compile(spec ClassSpec, reg Registry) (*klass.Class, error) {
	def := klass.Definition{}

	if spec.Extend != "" {
		base, ok := h.Classes[spec.Extend]
		if !ok {
			return nil, fmt.Errorf("extend: unknown class %s", spec.Extend)
		}
		def[klass.KeyExtend] = klass.NewClass(base)
	}

	if len(spec.Include) > 0 {
		mixins := make([]klass.Value, len(spec.Include))
		for i, name := range spec.Include {
			mixin, ok := h.Classes[name]
			if !ok {
				return nil, fmt.Errorf("include: unknown class %s", name)
			}
			mixins[i] = klass.NewClass(mixin)
		}
		def[klass.KeyInclude] = klass.NewArray(mixins)
	}

	if spec.Initialize != "" {
		fn, err := resolveMethod(spec.Initialize, klass.KeyInitialize, reg)
		if err != nil {
			return nil, err
		}
		def[klass.KeyInitialize] = klass.NewMethod(klass.KeyInitialize, fn)
	}

	for name, raw := range spec.Members {
		if err := checkMemberName(name); err != nil {
			return nil, err
		}
		def[name] = fromYAML(raw)
	}

	for name, ref := range spec.Methods {
		if err := checkMemberName(name); err != nil {
			return nil, err
		}
		fn, err := resolveMethod(ref, name, reg)
		if err != nil {
			return nil, err
		}
		def[name] = klass.NewMethod(name, fn)
	}

	if len(spec.Static) > 0 {
		statics := make(map[string]klass.Value, len(spec.Static))
		for name, ref := range spec.Static {
			fn, err := resolveMethod(ref, name, reg)
			if err != nil {
				return nil, err
			}
			statics[name] = klass.NewMethod(name, fn)
		}
		def[klass.KeyStatic] = klass.NewHash(statics)
	}

	return klass.Create(def)
}

// checkMemberName rejects member names that would collide with definition
// keys. The name "super" passes through so klass.Create can raise its own
// ReservedNameError.
func checkMemberName(name string) error {
	switch name {
	case klass.KeyInitialize, klass.KeyExtend, klass.KeyInclude, klass.KeyStatic:
		return fmt.Errorf("member %s: conflicts with a definition key", name)
	}
	return nil
}

// resolveMethod binds a method reference: "return <value>" compiles to a
// constant-returning method, anything else looks up the registry.
func resolveMethod(ref, name string, reg Registry) (klass.MethodFunc, error) {
	if rest, ok := strings.CutPrefix(ref, "return "); ok {
		var raw any
		if err := yaml.Unmarshal([]byte(rest), &raw); err != nil {
			return nil, fmt.Errorf("method %s: parse return value: %w", name, err)
		}
		val := fromYAML(raw)
		return func(call *klass.Call, self klass.Value, args []klass.Value) (klass.Value, error) {
			return val, nil
		}, nil
	}
	if fn, ok := reg[ref]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("method %s: unknown registry method %q", name, ref)
}

func fromYAML(raw any) klass.Value {
	switch v := raw.(type) {
	case nil:
		return klass.NewNil()
	case bool:
		return klass.NewBool(v)
	case int:
		return klass.NewInt(int64(v))
	case int64:
		return klass.NewInt(v)
	case float64:
		return klass.NewFloat(v)
	case string:
		return klass.NewString(v)
	case []any:
		elems := make([]klass.Value, len(v))
		for i, e := range v {
			elems[i] = fromYAML(e)
		}
		return klass.NewArray(elems)
	case map[string]any:
		entries := make(map[string]klass.Value, len(v))
		for k, e := range v {
			entries[k] = fromYAML(e)
		}
		return klass.NewHash(entries)
	default:
		return klass.NewString(fmt.Sprintf("%v", v))
	}
}
