package value

import "fmt"

// ArgSpec describes one positional parameter of a host function, driving
// the argument-validation DSL of §4.1.1.
type ArgSpec struct {
	Name string

	// Type constrains the argument's Kind only when Constrained is true;
	// with Constrained false any Kind is accepted and Type is ignored.
	Type        Kind
	Constrained bool
	Nullable    bool
	Default     Value
	HasDefault  bool

	// LastArgArray collects this and all remaining positional arguments
	// into a single array-typed parameter.
	LastArgArray bool

	// Numeric constraints, checked only when Type is KindNumber.
	Integer  bool
	HasLT    bool
	LT       float64
	HasLTE   bool
	LTE      float64
	HasGT    bool
	GT       float64
	HasGTE   bool
	GTE      float64
}

// ArgsError is raised by ValidateArgs when an argument fails validation. It
// is never surfaced past the function-call boundary: the caller substitutes
// ReturnValue instead (§4.1.1, §7 propagation policy).
type ArgsError struct {
	Message     string
	ReturnValue Value
}

func (e *ArgsError) Error() string { return e.Message }

// NewArgsError constructs an ArgsError with the given host-chosen fallback
// return value.
func NewArgsError(returnValue Value, format string, a ...interface{}) *ArgsError {
	return &ArgsError{Message: fmt.Sprintf(format, a...), ReturnValue: returnValue}
}

// ValidateArgs runs the §4.1.1 validation algorithm over args against specs,
// returning the bound positional values (same length as specs, with a
// trailing LastArgArray spec's Value being a KindArray). On failure it
// returns an *ArgsError.
func ValidateArgs(specs []ArgSpec, args []Value, returnValue Value) ([]Value, error) {
	out := make([]Value, len(specs))
	pos := 0

	for i, spec := range specs {
		if spec.LastArgArray {
			rest := args[pos:]
			elems := make([]Value, len(rest))
			copy(elems, rest)
			out[i] = NewArray(NewArrayOf(elems...))
			pos = len(args)
			continue
		}

		var arg Value
		supplied := pos < len(args)
		if supplied {
			arg = args[pos]
			pos++
		} else {
			switch {
			case spec.HasDefault:
				arg = spec.Default
			case spec.Constrained && spec.Type == KindBoolean:
				arg = NewBool(false)
			case !spec.Constrained || spec.Nullable:
				arg = Null
			default:
				return nil, NewArgsError(returnValue, "missing required argument %q", spec.Name)
			}
		}

		validated, err := validateOne(spec, arg, returnValue)
		if err != nil {
			return nil, err
		}
		out[i] = validated
	}

	if pos < len(args) {
		return nil, NewArgsError(returnValue, "too many arguments")
	}

	return out, nil
}

func validateOne(spec ArgSpec, arg Value, returnValue Value) (Value, error) {
	if arg.Kind() == KindNull && (spec.Nullable || !spec.Constrained) {
		return arg, nil
	}

	if spec.Constrained {
		if spec.Type == KindBoolean {
			return NewBool(Truthy(arg)), nil
		}
		if arg.Kind() != spec.Type {
			return nil, NewArgsError(returnValue, "argument %q must be %s, got %s", spec.Name, spec.Type, arg.Kind())
		}
	}

	if spec.Type == KindNumber && spec.Constrained {
		n := arg.Number()
		if spec.Integer && n != float64(int64(n)) {
			return nil, NewArgsError(returnValue, "argument %q must be an integer", spec.Name)
		}
		if spec.HasLT && !(n < spec.LT) {
			return nil, NewArgsError(returnValue, "argument %q must be < %v", spec.Name, spec.LT)
		}
		if spec.HasLTE && !(n <= spec.LTE) {
			return nil, NewArgsError(returnValue, "argument %q must be <= %v", spec.Name, spec.LTE)
		}
		if spec.HasGT && !(n > spec.GT) {
			return nil, NewArgsError(returnValue, "argument %q must be > %v", spec.Name, spec.GT)
		}
		if spec.HasGTE && !(n >= spec.GTE) {
			return nil, NewArgsError(returnValue, "argument %q must be >= %v", spec.Name, spec.GTE)
		}
	}

	return arg, nil
}
