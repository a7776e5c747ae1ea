// This file implements config.Converter: turning raw parameter values, as
// decoded from TOML, YAML or JSON, into typed cty values.

package hcl

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/qsirecon/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// literalContext resolves the Python spellings of constants that commonly
// appear inside list and dict literals written for the external tools.
var literalContext = &hcl.EvalContext{
	Variables: map[string]cty.Value{
		"True":  cty.True,
		"False": cty.False,
		"None":  cty.NullVal(cty.DynamicPseudoType),
	},
}

// Converter is the HCL implementation of config.Converter.
type Converter struct{}

var _ config.Converter = (*Converter)(nil)

// NewConverter creates a new converter.
func NewConverter() *Converter {
	return &Converter{}
}

// ConvertValue implements config.Converter.
func (c *Converter) ConvertValue(raw any) (cty.Value, error) {
	return ConvertValue(raw)
}

// ConvertValue maps a raw parameter value to its intended type:
//   - nil, "" and "None" become null;
//   - "true" and "false" (in any case) become booleans;
//   - strings starting with '[' or '{' are evaluated as literal expressions,
//     accepting single-quoted strings inside them;
//   - slices become tuples and string-keyed maps become objects, with every
//     element converted recursively;
//   - numbers and booleans keep their value, except that NaN and the
//     infinities are rejected;
//   - any other string is returned unchanged.
func ConvertValue(raw any) (cty.Value, error) {
	switch v := raw.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return v, nil
	case string:
		return convertString(v)
	case bool:
		return cty.BoolVal(v), nil
	case int:
		return cty.NumberIntVal(int64(v)), nil
	case int64:
		return cty.NumberIntVal(v), nil
	case int32:
		return cty.NumberIntVal(int64(v)), nil
	case uint64:
		return cty.NumberUIntVal(v), nil
	case float64:
		return floatValue(v)
	case float32:
		return floatValue(float64(v))
	case fmt.Stringer:
		// Dates and times from TOML/YAML are passed on in their text form.
		return cty.StringVal(v.String()), nil
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return floatValue(rv.Float())
	case reflect.Slice, reflect.Array:
		return convertSequence(rv)
	case reflect.Map:
		return convertMapping(rv)
	case reflect.Pointer:
		if rv.IsNil() {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
		return ConvertValue(rv.Elem().Interface())
	}

	ty, err := gocty.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unsupported parameter value of type %T: %w", raw, err)
	}
	return gocty.ToCtyValue(raw, ty)
}

// floatValue rejects values that have no HCL number literal.
func floatValue(f float64) (cty.Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return cty.NilVal, fmt.Errorf("parameter value %v is not a finite number", f)
	}
	return cty.NumberFloatVal(f), nil
}

func convertString(s string) (cty.Value, error) {
	switch {
	case s == "", s == "None":
		return cty.NullVal(cty.DynamicPseudoType), nil
	case strings.EqualFold(s, "true"):
		return cty.True, nil
	case strings.EqualFold(s, "false"):
		return cty.False, nil
	case s[0] == '[' || s[0] == '{':
		return evalLiteral(s)
	}
	return cty.StringVal(s), nil
}

// evalLiteral evaluates a list or mapping literal written as a string.
func evalLiteral(src string) (cty.Value, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(doubleQuoted(src)), "<parameter>", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("invalid literal %q: %w", src, diags)
	}
	val, diags := expr.Value(literalContext)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("cannot evaluate literal %q: %w", src, diags)
	}
	return val, nil
}

// doubleQuoted rewrites single-quoted string literals, as found in
// Python-style dict literals, into double-quoted ones.
func doubleQuoted(src string) string {
	if !strings.ContainsRune(src, '\'') {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	var quote rune
	escaped := false
	for _, r := range src {
		switch {
		case escaped:
			escaped = false
			if quote == '\'' && r == '\'' {
				b.WriteRune(r)
				continue
			}
			b.WriteRune('\\')
			b.WriteRune(r)
		case r == '\\' && quote != 0:
			escaped = true
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
			b.WriteRune('"')
		case quote != 0 && r == quote:
			quote = 0
			b.WriteRune('"')
		case quote == '\'' && r == '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func convertSequence(rv reflect.Value) (cty.Value, error) {
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	if rv.Len() == 0 {
		return cty.EmptyTupleVal, nil
	}
	elems := make([]cty.Value, rv.Len())
	for i := range rv.Len() {
		v, err := ConvertValue(rv.Index(i).Interface())
		if err != nil {
			return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
		}
		elems[i] = v
	}
	return cty.TupleVal(elems), nil
}

func convertMapping(rv reflect.Value) (cty.Value, error) {
	if rv.IsNil() {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	if rv.Type().Key().Kind() != reflect.String {
		return cty.NilVal, fmt.Errorf("unsupported mapping key type %s", rv.Type().Key())
	}
	if rv.Len() == 0 {
		return cty.EmptyObjectVal, nil
	}

	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	attrs := make(map[string]cty.Value, len(keys))
	for _, k := range keys {
		v, err := ConvertValue(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
		if err != nil {
			return cty.NilVal, fmt.Errorf("key %q: %w", k, err)
		}
		attrs[k] = v
	}
	return cty.ObjectVal(attrs), nil
}

// Truthy reports whether v would count as set when used as a flag: true
// booleans, non-zero numbers, non-empty strings and non-empty collections.
func Truthy(v cty.Value) bool {
	if !v.IsKnown() || v.IsNull() {
		return false
	}
	ty := v.Type()
	switch {
	case ty == cty.Bool:
		return v.True()
	case ty == cty.Number:
		return v.AsBigFloat().Sign() != 0
	case ty == cty.String:
		return v.AsString() != ""
	case ty.IsObjectType():
		return len(ty.AttributeTypes()) > 0
	case ty.IsTupleType():
		return len(ty.TupleElementTypes()) > 0
	case ty.IsCollectionType():
		return v.LengthInt() > 0
	}
	return false
}
