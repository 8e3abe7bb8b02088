package derivater

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"

	"gopkg.in/yaml.v3"
)

// ============================================================
// JSON Serialization
// ============================================================

// Encode converts e into the generic object form read by FromJSON.
func Encode(e Expr) (map[string]interface{}, error) {
	switch v := e.(type) {
	case *Integer:
		return map[string]interface{}{"type": "integer", "value": v.val.String()}, nil
	case *Symbol:
		return map[string]interface{}{"type": "symbol", "name": v.name}, nil
	case *NamedConstant:
		return map[string]interface{}{"type": "constant", "name": v.name}, nil
	case *SymbolFunction:
		arg, err := Encode(v.arg)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"type": "function", "name": v.name, "arg": arg, "order": v.order}, nil
	case *Sum:
		terms, err := encodeList(v.terms)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"type": "sum", "terms": terms}, nil
	case *Product:
		factors, err := encodeList(v.factors)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"type": "product", "factors": factors}, nil
	case *Power:
		base, err := Encode(v.base)
		if err != nil {
			return nil, err
		}
		exp, err := Encode(v.exp)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"type": "power", "base": base, "exp": exp}, nil
	case *Func:
		arg, err := Encode(v.arg)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"type": v.op.String(), "arg": arg}, nil
	}
	return nil, &UnsupportedValueError{Value: e}
}

func encodeList(es []Expr) ([]interface{}, error) {
	out := make([]interface{}, len(es))
	for i, e := range es {
		m, err := Encode(e)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = m
	}
	return out, nil
}

func ToJSON(e Expr) (string, error) {
	m, err := Encode(e)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(m)
	return string(b), err
}

// ParseJSON decodes a single expression object from data.
func ParseJSON(data []byte) (Expr, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return FromJSON(m)
}

// FromYAML decodes the same object shape as FromJSON from YAML.
func FromYAML(data []byte) (Expr, error) {
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return FromJSON(m)
}

// FromJSON builds an expression from its generic object form. Every node is
// rebuilt through the canonicalizing constructors.
func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subExpr := func(field string) (Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return e, nil
	}

	subExprList := func(field string) ([]Expr, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			e, err := FromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = e
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "integer":
		v, ok := data["value"]
		if !ok {
			return nil, fmt.Errorf("integer: missing 'value'")
		}
		n, err := parseInteger(v)
		if err != nil {
			return nil, fmt.Errorf("integer: %w", err)
		}
		return &Integer{val: n}, nil

	case "symbol":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return S(name), nil

	case "constant":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		c, ok := lookupConstant(name)
		if !ok {
			return nil, fmt.Errorf("constant: unknown constant %q", name)
		}
		return c, nil

	case "function":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		arg, err := subExpr("arg")
		if err != nil {
			return nil, err
		}
		order := 0
		if v, ok := data["order"]; ok {
			n, err := parseInteger(v)
			if err != nil || !n.IsInt64() || n.Int64() > math.MaxInt32 {
				return nil, fmt.Errorf("function: 'order' must be a small integer")
			}
			order = int(n.Int64())
		}
		f, err := NewSymbolFunction(name, arg, order)
		if err != nil {
			return nil, err
		}
		return f, nil

	case "sum":
		terms, err := subExprList("terms")
		if err != nil {
			return nil, err
		}
		return AddOf(terms...), nil

	case "product":
		factors, err := subExprList("factors")
		if err != nil {
			return nil, err
		}
		return MulOf(factors...), nil

	case "power":
		base, err := subExpr("base")
		if err != nil {
			return nil, err
		}
		exp, err := subExpr("exp")
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil
	}

	if op, ok := funcOpByName(typ); ok {
		arg, err := subExpr("arg")
		if err != nil {
			return nil, err
		}
		return Apply(op, arg), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

// maxExactFloat is the largest magnitude below which every integer is an
// exact float64.
const maxExactFloat = 1 << 53

// parseInteger accepts the shapes an integer takes after JSON or YAML
// decoding: a decimal string, a json.Number, a Go int or an integral float.
// Floats beyond 2**53 may already have lost digits and are rejected; send
// big values as strings or decode with json.Decoder.UseNumber.
func parseInteger(v interface{}) (*big.Int, error) {
	switch n := v.(type) {
	case string:
		if r, ok := new(big.Int).SetString(n, 10); ok {
			return r, nil
		}
	case json.Number:
		if r, ok := new(big.Int).SetString(n.String(), 10); ok {
			return r, nil
		}
	case int:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case float64:
		if math.Abs(n) > maxExactFloat {
			return nil, fmt.Errorf("integer value %v exceeds float64 precision; send it as a string", v)
		}
		if n == math.Trunc(n) {
			r, _ := big.NewFloat(n).Int(nil)
			return r, nil
		}
	}
	return nil, fmt.Errorf("invalid integer value: %v", v)
}
