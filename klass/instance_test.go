package klass

import (
	"strings"
	"testing"
)

func TestAllocSkipsInitializers(t *testing.T) {
	foo := newFoo(t)
	inst := foo.Alloc()
	if got := inst.Instance().FieldNames(); len(got) != 0 {
		t.Fatalf("alloc must not run initializers, got fields %v", got)
	}
	if inst.Instance().Class() != foo {
		t.Fatalf("alloc lost the class back-reference")
	}
}

func TestGetReturnsBoundMethod(t *testing.T) {
	foo := newFoo(t)
	inst, err := foo.New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	bound, err := inst.Instance().Get("bar")
	if err != nil {
		t.Fatalf("get bar: %v", err)
	}
	if bound.Kind() != KindMethod {
		t.Fatalf("expected method value, got %s", bound.Kind())
	}
	got, err := bound.Call()
	if err != nil {
		t.Fatalf("call bound method: %v", err)
	}
	if got.String() != "bar" {
		t.Fatalf("expected bar, got %q", got.String())
	}
}

func TestBoundMethodKeepsReceiver(t *testing.T) {
	cls := MustCreate(Definition{
		"initialize": NewMethod("initialize", func(call *Call, self Value, args []Value) (Value, error) {
			return NewNil(), self.Instance().Set("name", args[0])
		}),
		"name_of": NewMethod("name_of", func(call *Call, self Value, args []Value) (Value, error) {
			return self.Instance().Get("name")
		}),
	})

	alpha, err := cls.New(NewString("alpha"))
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	beta, err := cls.New(NewString("beta"))
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	method, err := alpha.Instance().Get("name_of")
	if err != nil {
		t.Fatalf("get method: %v", err)
	}
	got, err := method.Call()
	if err != nil {
		t.Fatalf("call method: %v", err)
	}
	if got.String() != "alpha" {
		t.Fatalf("bound method lost its receiver: %q", got.String())
	}
	if got, _ := beta.Instance().CallMethod("name_of"); got.String() != "beta" {
		t.Fatalf("sibling instance affected: %q", got.String())
	}
}

func TestUnknownMemberErrors(t *testing.T) {
	cls := MustCreate(nil)
	inst, err := cls.New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if _, err := inst.Instance().Get("missing"); err == nil || !strings.Contains(err.Error(), "unknown member") {
		t.Fatalf("expected unknown member error, got %v", err)
	}
	if _, err := inst.Instance().CallMethod("missing"); err == nil {
		t.Fatalf("expected unknown member error on call")
	}
}

func TestCallMethodRejectsDataMember(t *testing.T) {
	cls := MustCreate(Definition{"kind": NewString("widget")})
	inst, err := cls.New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if _, err := inst.Instance().CallMethod("kind"); err == nil || !strings.Contains(err.Error(), "not a method") {
		t.Fatalf("expected not-a-method error, got %v", err)
	}
}

func TestReadOnlyAccessor(t *testing.T) {
	cls := MustCreate(Definition{
		"frozen": NewAccessor(
			func(call *Call, self Value, args []Value) (Value, error) {
				return NewString("ice"), nil
			},
			nil,
		),
	})
	inst, err := cls.New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if got, err := inst.Instance().Get("frozen"); err != nil || got.String() != "ice" {
		t.Fatalf("expected ice, got %q (%v)", got.String(), err)
	}
	if err := inst.Instance().Set("frozen", NewString("melt")); err == nil || !strings.Contains(err.Error(), "read-only") {
		t.Fatalf("expected read-only error, got %v", err)
	}
}

func TestWriteOnlyAccessor(t *testing.T) {
	cls := MustCreate(Definition{
		"sink": NewAccessor(
			nil,
			func(call *Call, self Value, args []Value) (Value, error) {
				return NewNil(), self.Instance().Set("sunk", args[0])
			},
		),
	})
	inst, err := cls.New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if err := inst.Instance().Set("sink", NewInt(42)); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got, ok := inst.Instance().Field("sunk"); !ok || got.Int() != 42 {
		t.Fatalf("setter did not run: %v ok=%v", got, ok)
	}
	if _, err := inst.Instance().Get("sink"); err == nil || !strings.Contains(err.Error(), "write-only") {
		t.Fatalf("expected write-only error, got %v", err)
	}
}

func TestSetSuperFieldRejected(t *testing.T) {
	cls := MustCreate(nil)
	inst, err := cls.New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if err := inst.Instance().Set("super", NewInt(1)); err == nil {
		t.Fatalf("expected reserved name error")
	}
}

func TestValueFormatting(t *testing.T) {
	foo := newFoo(t)
	foo.SetName("Foo")
	if got := NewClass(foo).String(); got != "<Class Foo>" {
		t.Fatalf("unexpected class format: %q", got)
	}
	inst, err := foo.New()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if got := inst.String(); got != "<Foo instance>" {
		t.Fatalf("unexpected instance format: %q", got)
	}
	if got := NewArray([]Value{NewInt(1), NewString("x")}).String(); got != "[1, x]" {
		t.Fatalf("unexpected array format: %q", got)
	}
}
