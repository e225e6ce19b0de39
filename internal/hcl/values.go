package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The decoder populates omitted optional attributes with zero-width
// placeholder expressions, so a nil check is not enough.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

// evalExpr evaluates a literal expression. Variables and functions are not
// available in these files.
func evalExpr(expr hcl.Expression) (cty.Value, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return val, nil
}

// decodeVector decodes a list of exactly n numbers.
func decodeVector(ctx context.Context, expr hcl.Expression, n int) ([]float64, error) {
	val, err := evalExpr(expr)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Decoding numeric vector.", "cty_type", val.Type().FriendlyName(), "want_len", n)

	converted, err := convert.Convert(val, cty.List(cty.Number))
	if err != nil {
		return nil, fmt.Errorf("%s: expected a list of %d numbers: %w", expr.Range(), n, err)
	}
	var out []float64
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", expr.Range(), err)
	}
	if len(out) != n {
		return nil, fmt.Errorf("%s: expected %d numbers, got %d", expr.Range(), n, len(out))
	}
	return out, nil
}

// decodeStringMap decodes an object or map of strings.
func decodeStringMap(expr hcl.Expression) (map[string]string, error) {
	val, err := evalExpr(expr)
	if err != nil {
		return nil, err
	}
	if val.IsNull() {
		return nil, nil
	}
	converted, err := convert.Convert(val, cty.Map(cty.String))
	if err != nil {
		return nil, fmt.Errorf("%s: expected a map of frame names: %w", expr.Range(), err)
	}
	out := make(map[string]string)
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", expr.Range(), err)
	}
	return out, nil
}
