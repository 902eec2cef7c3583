package lib

import "github.com/barescript-lang/barescript/internal/value"

// registerSystemFuncs installs the reserved `system*` functions (§6
// "Reserved global names", §4.6 host interface) plus the couple of
// value-introspection helpers (`typeOf`, `stringOf`) every script expects
// to find in globals regardless of which host embeds the interpreter.
func registerSystemFuncs() {
	register("systemFetch", true, systemFetch)
	register("systemGlobalGet", false, systemGlobalGet)
	register("systemGlobalSet", false, systemGlobalSet)
	register("systemLog", false, systemLog)
	register("typeOf", false, typeOfFn)
	register("stringOf", false, stringOfFn)
}

// systemFetch is the scripting surface over Options.FetchFn. It suspends
// under the async interpreter (§4.5.1 "await of a host async function's
// result"); calling it from the sync interpreter is rejected upstream in
// internal/interp before Fn is ever invoked.
func systemFetch(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "url", Type: value.KindString, Constrained: true},
		{Name: "options", Nullable: true},
	}, args, value.Null)
	if err != nil {
		return value.Value{}, err
	}
	if opts == nil || opts.FetchFn == nil {
		return value.Null, nil
	}
	resp, err := opts.FetchFn(bound[0].Str(), bound[1])
	if err != nil || resp == nil {
		return value.Null, nil
	}
	body, berr := resp.Text()
	if berr != nil {
		body = ""
	}
	out := value.NewEmptyObject()
	out.Set("ok", value.NewBool(resp.OK))
	out.Set("status", value.NewNumber(float64(resp.Status)))
	out.Set("text", value.NewString(body))
	return value.NewObject(out), nil
}

func systemGlobalGet(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "name", Type: value.KindString, Constrained: true},
	}, args, value.Null)
	if err != nil {
		return value.Value{}, err
	}
	if opts == nil || opts.Globals == nil {
		return value.Null, nil
	}
	return opts.Globals.GetOrNull(bound[0].Str()), nil
}

func systemGlobalSet(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "name", Type: value.KindString, Constrained: true},
		{Name: "value"},
	}, args, value.Null)
	if err != nil {
		return value.Value{}, err
	}
	if opts == nil || opts.Globals == nil {
		return value.Null, nil
	}
	opts.Globals.Set(bound[0].Str(), bound[1])
	return bound[1], nil
}

func systemLog(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "message"},
	}, args, value.Null)
	if err != nil {
		return value.Value{}, err
	}
	if opts != nil && opts.LogFn != nil {
		opts.LogFn(value.StringOf(bound[0]))
	}
	return value.Null, nil
}

func typeOfFn(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{{Name: "v", Nullable: true}}, args, value.Null)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewString(value.TypeOf(bound[0])), nil
}

func stringOfFn(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{{Name: "v", Nullable: true}}, args, value.NewString(""))
	if err != nil {
		return value.Value{}, err
	}
	return value.NewString(value.StringOf(bound[0])), nil
}
