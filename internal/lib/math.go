package lib

import (
	"math"

	"github.com/barescript-lang/barescript/internal/value"
)

// registerMathFuncs installs the handful of math functions reachable
// through the expression-function alias table (§4.4.5) as well as by
// their canonical names.
func registerMathFuncs() {
	register("mathMax", false, mathMax)
	register("mathMin", false, mathMin)
	register("mathAbs", false, mathAbs)
	register("mathFloor", false, mathFloor)
	register("mathCeil", false, mathCeil)
	register("mathRound", false, mathRound)
}

func mathMax(args []value.Value, opts *value.Options) (value.Value, error) {
	spec := []value.ArgSpec{{Name: "values", Type: value.KindNumber, Constrained: true, LastArgArray: true}}
	bound, err := value.ValidateArgs(spec, args, value.NewNumber(math.Inf(-1)))
	if err != nil {
		return value.Value{}, err
	}
	elems := bound[0].Array().Slice()
	if len(elems) == 0 {
		return value.NewNumber(math.Inf(-1)), nil
	}
	best := elems[0].Number()
	for _, v := range elems[1:] {
		if v.Number() > best {
			best = v.Number()
		}
	}
	return value.NewNumber(best), nil
}

func mathMin(args []value.Value, opts *value.Options) (value.Value, error) {
	spec := []value.ArgSpec{{Name: "values", Type: value.KindNumber, Constrained: true, LastArgArray: true}}
	bound, err := value.ValidateArgs(spec, args, value.NewNumber(math.Inf(1)))
	if err != nil {
		return value.Value{}, err
	}
	elems := bound[0].Array().Slice()
	if len(elems) == 0 {
		return value.NewNumber(math.Inf(1)), nil
	}
	best := elems[0].Number()
	for _, v := range elems[1:] {
		if v.Number() < best {
			best = v.Number()
		}
	}
	return value.NewNumber(best), nil
}

func mathAbs(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "n", Type: value.KindNumber, Constrained: true},
	}, args, value.NewNumber(0))
	if err != nil {
		return value.Value{}, err
	}
	return value.NewNumber(math.Abs(bound[0].Number())), nil
}

func mathFloor(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "n", Type: value.KindNumber, Constrained: true},
	}, args, value.NewNumber(0))
	if err != nil {
		return value.Value{}, err
	}
	return value.NewNumber(math.Floor(bound[0].Number())), nil
}

func mathCeil(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "n", Type: value.KindNumber, Constrained: true},
	}, args, value.NewNumber(0))
	if err != nil {
		return value.Value{}, err
	}
	return value.NewNumber(math.Ceil(bound[0].Number())), nil
}

func mathRound(args []value.Value, opts *value.Options) (value.Value, error) {
	bound, err := value.ValidateArgs([]value.ArgSpec{
		{Name: "n", Type: value.KindNumber, Constrained: true},
	}, args, value.NewNumber(0))
	if err != nil {
		return value.Value{}, err
	}
	return value.NewNumber(math.Round(bound[0].Number())), nil
}
