package lib

import "github.com/barescript-lang/barescript/internal/value"

// registerObjectFuncs installs the object-family functions the parser's
// object-literal desugaring (`{k:v}` -> `objectNew(k,v,...)`) relies on.
func registerObjectFuncs() {
	register("objectNew", false, objectNew)
	register("objectGet", false, objectGet)
	register("objectSet", false, objectSet)
	register("objectKeys", false, objectKeys)
	register("objectHas", false, objectHas)
	register("objectDelete", false, objectDelete)
}

func objectNew(args []value.Value, opts *value.Options) (value.Value, error) {
	obj := value.NewEmptyObject()
	for i := 0; i+1 < len(args); i += 2 {
		obj.Set(value.StringOf(args[i]), args[i+1])
	}
	return value.NewObject(obj), nil
}

func objectGet(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "object", Type: value.KindObject, Constrained: true},
		{Name: "key", Type: value.KindString, Constrained: true},
	}, args, value.Null)
	if err != nil {
		return value.Value{}, err
	}
	return bound[0].Object().GetOrNull(bound[1].Str()), nil
}

func objectSet(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "object", Type: value.KindObject, Constrained: true},
		{Name: "key", Type: value.KindString, Constrained: true},
		{Name: "value"},
	}, args, value.Null)
	if err != nil {
		return value.Value{}, err
	}
	bound[0].Object().Set(bound[1].Str(), bound[2])
	return bound[0], nil
}

func objectKeys(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "object", Type: value.KindObject, Constrained: true},
	}, args, value.NewArray(nil))
	if err != nil {
		return value.Value{}, err
	}
	keys := bound[0].Object().Keys()
	elems := make([]value.Value, len(keys))
	for i, k := range keys {
		elems[i] = value.NewString(k)
	}
	return value.NewArray(value.NewArrayOf(elems...)), nil
}

func objectHas(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "object", Type: value.KindObject, Constrained: true},
		{Name: "key", Type: value.KindString, Constrained: true},
	}, args, value.NewBool(false))
	if err != nil {
		return value.Value{}, err
	}
	return value.NewBool(bound[0].Object().Has(bound[1].Str())), nil
}

func objectDelete(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "object", Type: value.KindObject, Constrained: true},
		{Name: "key", Type: value.KindString, Constrained: true},
	}, args, value.NewBool(false))
	if err != nil {
		return value.Value{}, err
	}
	return value.NewBool(bound[0].Object().Delete(bound[1].Str())), nil
}
