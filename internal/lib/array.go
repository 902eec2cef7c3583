package lib

import "github.com/barescript-lang/barescript/internal/value"

// registerArrayFuncs installs the array-family functions the parser's
// array-literal desugaring (`[a,b]` -> `arrayNew(a,b)`) and the `for`-loop
// lowering (`arrayLength`/`arrayGet`) rely on existing as real callables.
func registerArrayFuncs() {
	register("arrayNew", false, arrayNew)
	register("arrayLength", false, arrayLength)
	register("arrayGet", false, arrayGet)
	register("arraySet", false, arraySet)
	register("arrayPush", false, arrayPush)
	register("arrayDelete", false, arrayDelete)
	register("arrayIndexOf", false, arrayIndexOf)
}

func arrayNew(args []value.Value, opts *value.Options) (value.Value, error) {
	return value.NewArray(value.NewArrayOf(args...)), nil
}

func arrayLength(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "array", Type: value.KindArray, Constrained: true},
	}, args, value.NewNumber(0))
	if err != nil {
		return value.Value{}, err
	}
	return value.NewNumber(float64(bound[0].Array().Len())), nil
}

func arrayGet(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "array", Type: value.KindArray, Constrained: true},
		{Name: "index", Type: value.KindNumber, Constrained: true, Integer: true},
	}, args, value.Null)
	if err != nil {
		return value.Value{}, err
	}
	return bound[0].Array().Get(int(bound[1].Number())), nil
}

func arraySet(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "array", Type: value.KindArray, Constrained: true},
		{Name: "index", Type: value.KindNumber, Constrained: true, Integer: true},
		{Name: "value"},
	}, args, value.NewBool(false))
	if err != nil {
		return value.Value{}, err
	}
	ok := bound[0].Array().Set(int(bound[1].Number()), bound[2])
	return value.NewBool(ok), nil
}

func arrayPush(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "array", Type: value.KindArray, Constrained: true},
		{Name: "value"},
	}, args, value.Null)
	if err != nil {
		return value.Value{}, err
	}
	bound[0].Array().Push(bound[1])
	return bound[0], nil
}

func arrayDelete(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "array", Type: value.KindArray, Constrained: true},
		{Name: "index", Type: value.KindNumber, Constrained: true, Integer: true},
	}, args, value.NewBool(false))
	if err != nil {
		return value.Value{}, err
	}
	ok := bound[0].Array().Delete(int(bound[1].Number()))
	return value.NewBool(ok), nil
}

func arrayIndexOf(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "array", Type: value.KindArray, Constrained: true},
		{Name: "value"},
	}, args, value.NewNumber(-1))
	if err != nil {
		return value.Value{}, err
	}
	arr := bound[0].Array()
	for i, elem := range arr.Slice() {
		if value.Equal(elem, bound[1]) {
			return value.NewNumber(float64(i)), nil
		}
	}
	return value.NewNumber(-1), nil
}
