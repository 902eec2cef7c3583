package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/barescript-lang/barescript/internal/value"
)

// loadConfigGlobals reads path as a YAML mapping of global-variable name to
// value and sets each one in globals, the batch extension of the -v flag's
// single-variable seeding (§6 -v NAME EXPR).
func loadConfigGlobals(path string, globals *value.Object) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	for name, v := range raw {
		globals.Set(name, fromYAML(v))
	}
	return nil
}

// fromYAML converts a decoded YAML scalar/sequence/mapping into a Value,
// the same coercions the interpreter's own literal evaluation would apply.
func fromYAML(v any) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Null
	case bool:
		return value.NewBool(t)
	case string:
		return value.NewString(t)
	case int:
		return value.NewNumber(float64(t))
	case int64:
		return value.NewNumber(float64(t))
	case float64:
		return value.NewNumber(t)
	case []any:
		arr := value.NewArrayOf()
		for _, e := range t {
			arr.Push(fromYAML(e))
		}
		return value.NewArray(arr)
	case map[string]any:
		obj := value.NewEmptyObject()
		for k, e := range t {
			obj.Set(k, fromYAML(e))
		}
		return value.NewObject(obj)
	default:
		return value.NewString(fmt.Sprint(t))
	}
}
