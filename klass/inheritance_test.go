package klass

import (
	"errors"
	"testing"
)

func TestExtendBarScenario(t *testing.T) {
	foo := newFoo(t)
	bar, err := Create(Definition{
		"extend": NewClass(foo),
		"initialize": NewMethod("initialize", func(call *Call, self Value, args []Value) (Value, error) {
			if _, err := call.Super(); err != nil {
				return NewNil(), err
			}
			return NewNil(), self.Instance().Set("corge", NewString("corge"))
		}),
		"baz": NewMethod("baz", func(call *Call, self Value, args []Value) (Value, error) {
			inner, err := call.Super(args...)
			if err != nil {
				return NewNil(), err
			}
			return NewString("super " + inner.String()), nil
		}),
	})
	if err != nil {
		t.Fatalf("create Bar: %v", err)
	}

	inst, err := bar.New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	obj := inst.Instance()

	if got, _ := obj.Get("corge"); got.String() != "corge" {
		t.Fatalf("expected corge, got %q", got.String())
	}
	// The super() call in initialize ran Foo's constructor on the same
	// receiver.
	if got, _ := obj.Get("foo"); got.String() != "foo" {
		t.Fatalf("expected foo via super initialize, got %q", got.String())
	}

	result, err := obj.CallMethod("baz", NewString("qux"))
	if err != nil {
		t.Fatalf("call baz: %v", err)
	}
	if result.String() != "super qux" {
		t.Fatalf("expected %q, got %q", "super qux", result.String())
	}

	if _, ok := bar.Static("qux"); ok {
		t.Fatalf("statics must not be inherited")
	}
	if _, err := bar.CallStatic("qux"); err == nil {
		t.Fatalf("expected unknown static error on subclass")
	}
}

func TestOmittedInitializeConstructsLikeBase(t *testing.T) {
	foo := newFoo(t)
	sub, err := Create(Definition{
		"extend": NewClass(foo),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inst, err := sub.New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if got, _ := inst.Instance().Get("foo"); got.String() != "foo" {
		t.Fatalf("expected base initializer to run, got %q", got.String())
	}
	if got, err := inst.Instance().CallMethod("bar"); err != nil || got.String() != "bar" {
		t.Fatalf("expected inherited bar(), got %q (%v)", got.String(), err)
	}
}

func TestSuperMatchesDirectBaseCall(t *testing.T) {
	foo := newFoo(t)
	sub := MustCreate(Definition{
		"extend": NewClass(foo),
		"baz": NewMethod("baz", func(call *Call, self Value, args []Value) (Value, error) {
			return call.Super(args...)
		}),
	})

	inst, err := sub.New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	viaSuper, err := inst.Instance().CallMethod("baz", NewString("echo"))
	if err != nil {
		t.Fatalf("call baz: %v", err)
	}

	base, err := foo.New()
	if err != nil {
		t.Fatalf("new base failed: %v", err)
	}
	direct, err := base.Instance().CallMethod("baz", NewString("echo"))
	if err != nil {
		t.Fatalf("direct baz: %v", err)
	}

	if viaSuper.String() != direct.String() {
		t.Fatalf("super result %q differs from direct base call %q", viaSuper.String(), direct.String())
	}
}

func TestSuperWithoutBaseMethodFails(t *testing.T) {
	cls := MustCreate(Definition{
		"lonely": NewMethod("lonely", func(call *Call, self Value, args []Value) (Value, error) {
			return call.Super()
		}),
	})

	inst, err := cls.New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	_, err = inst.Instance().CallMethod("lonely")
	var missing *NoSuperclassMethodError
	if !errors.As(err, &missing) {
		t.Fatalf("expected NoSuperclassMethodError, got %v", err)
	}
	if missing.Method != "lonely" {
		t.Fatalf("unexpected method name: %q", missing.Method)
	}
}

func TestSuperReachesMethodInjectedAfterCreate(t *testing.T) {
	base := MustCreate(nil)
	sub := MustCreate(Definition{
		"extend": NewClass(base),
		"greet": NewMethod("greet", func(call *Call, self Value, args []Value) (Value, error) {
			return call.Super()
		}),
	})

	inst, err := sub.New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if _, err := inst.Instance().CallMethod("greet"); err == nil {
		t.Fatalf("expected missing super method before injection")
	}

	// Inject into the base after the subclass was compiled; the dispatch
	// handle must pick it up.
	if err := base.SetMember("greet", constMethod("hello")); err != nil {
		t.Fatalf("set member failed: %v", err)
	}
	got, err := inst.Instance().CallMethod("greet")
	if err != nil {
		t.Fatalf("call after injection: %v", err)
	}
	if got.String() != "hello" {
		t.Fatalf("expected injected method result, got %q", got.String())
	}
}

func TestNestedSuperAcrossThreeLevels(t *testing.T) {
	chained := func(prefix string) Value {
		return NewMethod("describe", func(call *Call, self Value, args []Value) (Value, error) {
			inner, err := call.Super()
			if err != nil {
				return NewNil(), err
			}
			return NewString(prefix + "+" + inner.String()), nil
		})
	}

	a := MustCreate(Definition{"describe": constMethod("a")})
	b := MustCreate(Definition{"extend": NewClass(a), "describe": chained("b")})
	c := MustCreate(Definition{"extend": NewClass(b), "describe": chained("c")})

	inst, err := c.New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	got, err := inst.Instance().CallMethod("describe")
	if err != nil {
		t.Fatalf("call describe: %v", err)
	}
	if got.String() != "c+b+a" {
		t.Fatalf("expected c+b+a, got %q", got.String())
	}
}

func TestSuperNestingSurvivesSiblingCalls(t *testing.T) {
	base := MustCreate(Definition{
		"left":  constMethod("L"),
		"right": constMethod("R"),
	})
	sub := MustCreate(Definition{
		"extend": NewClass(base),
		"left": NewMethod("left", func(call *Call, self Value, args []Value) (Value, error) {
			// Call another wrapped method that supers before finishing our
			// own super call; per-call contexts must not interfere.
			sibling, err := self.Instance().CallMethod("right")
			if err != nil {
				return NewNil(), err
			}
			own, err := call.Super()
			if err != nil {
				return NewNil(), err
			}
			return NewString(own.String() + sibling.String()), nil
		}),
		"right": NewMethod("right", func(call *Call, self Value, args []Value) (Value, error) {
			inner, err := call.Super()
			if err != nil {
				return NewNil(), err
			}
			return NewString(inner.String() + "!"), nil
		}),
	})

	inst, err := sub.New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	got, err := inst.Instance().CallMethod("left")
	if err != nil {
		t.Fatalf("call left: %v", err)
	}
	if got.String() != "LR!" {
		t.Fatalf("expected LR!, got %q", got.String())
	}
}

func TestInheritedMethodKeepsItsOwnSuperTarget(t *testing.T) {
	root := MustCreate(Definition{"tag": constMethod("root")})
	mid := MustCreate(Definition{
		"extend": NewClass(root),
		"tag": NewMethod("tag", func(call *Call, self Value, args []Value) (Value, error) {
			inner, err := call.Super()
			if err != nil {
				return NewNil(), err
			}
			return NewString("mid>" + inner.String()), nil
		}),
	})
	// leaf inherits mid's tag without overriding it. Its super dispatch
	// must resolve against root, not recurse into mid.
	leaf := MustCreate(Definition{"extend": NewClass(mid)})

	inst, err := leaf.New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	got, err := inst.Instance().CallMethod("tag")
	if err != nil {
		t.Fatalf("call tag: %v", err)
	}
	if got.String() != "mid>root" {
		t.Fatalf("expected mid>root, got %q", got.String())
	}
}

func TestStaticMutationAfterCreateNotReflected(t *testing.T) {
	base := newFoo(t)
	sub := MustCreate(Definition{"extend": NewClass(base)})

	base.SetStatic("added", constMethod("later"))
	if _, ok := sub.Static("added"); ok {
		t.Fatalf("static namespace must not track the base")
	}
	if _, ok := base.Static("added"); !ok {
		t.Fatalf("static missing on the class it was set on")
	}
}
