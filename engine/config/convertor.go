package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// EvalContext builds the evaluation context exposing vars as var.<name>.
// Supported value types are string, bool, int, float64 and []string.
//
// Parameters:
//   - vars: the variables, or nil for an empty var object
//
// Returns:
//   - *hcl.EvalContext: the context
//   - error: error if a value has an unsupported type
func EvalContext(vars map[string]any) (*hcl.EvalContext, error) {
	values := make(map[string]cty.Value, len(vars))
	for name, raw := range vars {
		v, err := toCty(raw)
		if err != nil {
			return nil, fmt.Errorf("var.%s: %w", name, err)
		}
		values[name] = v
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(values),
		},
	}, nil
}

// toCty converts a native Go value into its cty equivalent.
func toCty(v any) (cty.Value, error) {
	switch v.(type) {
	case string, bool, int, float64, []string:
	default:
		return cty.NilVal, fmt.Errorf("unsupported variable type %T", v)
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, err
	}
	return gocty.ToCtyValue(v, ty)
}
