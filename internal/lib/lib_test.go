package lib

import (
	"testing"

	"github.com/barescript-lang/barescript/internal/value"
)

func call(t *testing.T, name string, args ...value.Value) value.Value {
	t.Helper()
	fn, ok := registry[name]
	if !ok {
		t.Fatalf("no such registered function %q", name)
	}
	globals := value.NewEmptyObject()
	v, err := fn.Fn(args, &value.Options{Globals: globals})
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", name, err)
	}
	return v
}

func TestArrayRoundTrip(t *testing.T) {
	arr := call(t, "arrayNew", value.NewNumber(1), value.NewNumber(2), value.NewNumber(3))
	if call(t, "arrayLength", arr).Number() != 3 {
		t.Fatalf("expected length 3")
	}
	if call(t, "arrayGet", arr, value.NewNumber(1)).Number() != 2 {
		t.Fatalf("expected element 2")
	}
}

func TestObjectRoundTrip(t *testing.T) {
	obj := call(t, "objectNew", value.NewString("a"), value.NewNumber(1), value.NewString("b"), value.NewNumber(2))
	if call(t, "objectGet", obj, value.NewString("a")).Number() != 1 {
		t.Fatalf("expected a=1")
	}
	keys := call(t, "objectKeys", obj)
	if keys.Array().Len() != 2 {
		t.Fatalf("expected 2 keys")
	}
}

func TestMathFuncs(t *testing.T) {
	max := call(t, "mathMax", value.NewNumber(1), value.NewNumber(5), value.NewNumber(3))
	if max.Number() != 5 {
		t.Errorf("expected 5, got %v", max)
	}
	if call(t, "mathAbs", value.NewNumber(-4)).Number() != 4 {
		t.Errorf("expected 4")
	}
}

func TestAliasesResolveToRegisteredNames(t *testing.T) {
	for alias, canonical := range Aliases {
		if _, ok := registry[canonical]; !ok {
			t.Errorf("alias %q points to unregistered function %q", alias, canonical)
		}
	}
}

func TestSeedDoesNotOverwriteExisting(t *testing.T) {
	globals := value.NewEmptyObject()
	sentinel := value.NewNumber(42)
	globals.Set("arrayNew", sentinel)
	Seed(globals)
	v := globals.GetOrNull("arrayNew")
	if v.Number() != 42 {
		t.Fatalf("expected host-seeded arrayNew to survive Seed, got %v", v)
	}
}
