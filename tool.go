package derivater

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ============================================================
// Tool Interface
// ============================================================

// ToolRequest names a tool and carries its parameters. Expressions inside
// Params use the FromJSON object form.
type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// ToolParam describes one parameter of a Tool.
type ToolParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Tool describes one operation served by HandleToolCall.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      []ToolParam `json:"params"`
}

type exprParams struct {
	Expr map[string]interface{} `mapstructure:"expr"`
}

type derivativeParams struct {
	Expr map[string]interface{} `mapstructure:"expr"`
	Var  string                 `mapstructure:"var"`
	N    *int                   `mapstructure:"n"`
}

type replaceParams struct {
	Expr map[string]interface{} `mapstructure:"expr"`
	Old  map[string]interface{} `mapstructure:"old"`
	New  map[string]interface{} `mapstructure:"new"`
}

type dependsOnParams struct {
	Expr map[string]interface{} `mapstructure:"expr"`
	Var  string                 `mapstructure:"var"`
}

var (
	exprParam = ToolParam{Name: "expr", Type: "object", Description: "expression object", Required: true}
	varParam  = ToolParam{Name: "var", Type: "string", Description: "symbol name", Required: true}
)

// Tools lists every tool HandleToolCall understands.
func Tools() []Tool {
	return []Tool{
		{Name: "simplify", Description: "Simplify an expression to its canonical form", Params: []ToolParam{exprParam}},
		{Name: "expand", Description: "Distribute products over sums and expand integer powers of sums", Params: []ToolParam{exprParam}},
		{Name: "derivative", Description: "Differentiate with respect to a symbol, n times (default 1)", Params: []ToolParam{
			exprParam, varParam,
			{Name: "n", Type: "integer", Description: "number of derivatives"},
		}},
		{Name: "replace", Description: "Substitute every occurrence of old with new", Params: []ToolParam{
			exprParam,
			{Name: "old", Type: "object", Description: "pattern expression", Required: true},
			{Name: "new", Type: "object", Description: "replacement expression", Required: true},
		}},
		{Name: "depends_on", Description: "Report whether an expression depends on a symbol", Params: []ToolParam{exprParam, varParam}},
		{Name: "free_symbols", Description: "Return the names of the symbols in an expression", Params: []ToolParam{exprParam}},
		{Name: "to_number", Description: "Evaluate a purely numeric expression exactly", Params: []ToolParam{exprParam}},
		{Name: "approximate", Description: "Evaluate a closed expression in floating point", Params: []ToolParam{exprParam}},
	}
}

// ToolSpec returns the tool list as a JSON schema document.
func ToolSpec() string {
	tools := Tools()
	out := make([]map[string]interface{}, len(tools))
	for i, t := range tools {
		properties := map[string]interface{}{}
		required := []string{}
		for _, p := range t.Params {
			properties[p.Name] = map[string]interface{}{"type": p.Type, "description": p.Description}
			if p.Required {
				required = append(required, p.Name)
			}
		}
		out[i] = map[string]interface{}{
			"name":        t.Name,
			"description": t.Description,
			"inputSchema": map[string]interface{}{
				"type":       "object",
				"properties": properties,
				"required":   required,
			},
		}
	}
	b, _ := json.MarshalIndent(map[string]interface{}{"tools": out}, "", "  ")
	return string(b)
}

func decodeParams(params map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
		DecodeHook:  rejectFractionalInt,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	return nil
}

// rejectFractionalInt stops mapstructure from truncating 1.5 into an int
// field. MCP clients send every number as a float64.
func rejectFractionalInt(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}
	if f, ok := data.(float64); ok && (f != math.Trunc(f) || math.IsInf(f, 0)) {
		return nil, fmt.Errorf("expected an integer, got %v", f)
	}
	return data, nil
}

func requireExpr(name string, m map[string]interface{}) (Expr, error) {
	if m == nil {
		return nil, fmt.Errorf("missing param: %s", name)
	}
	e, err := FromJSON(m)
	if err != nil {
		return nil, fmt.Errorf("param %s: %w", name, err)
	}
	return e, nil
}

// HandleToolCall runs one tool. Failures are reported in ToolResponse.Error.
func HandleToolCall(req ToolRequest) ToolResponse {
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }
	respond := func(e Expr) ToolResponse {
		m, err := Encode(e)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: m, String: e.String()}
	}
	single := func() (Expr, error) {
		var p exprParams
		if err := decodeParams(req.Params, &p); err != nil {
			return nil, err
		}
		return requireExpr("expr", p.Expr)
	}

	switch req.Tool {
	case "simplify":
		e, err := single()
		if err != nil {
			return fail(err)
		}
		return respond(Simplify(e))

	case "expand":
		e, err := single()
		if err != nil {
			return fail(err)
		}
		return respond(Expand(e))

	case "derivative":
		var p derivativeParams
		if err := decodeParams(req.Params, &p); err != nil {
			return fail(err)
		}
		e, err := requireExpr("expr", p.Expr)
		if err != nil {
			return fail(err)
		}
		if p.Var == "" {
			return fail(fmt.Errorf("missing param: var"))
		}
		n := 1
		if p.N != nil {
			n = *p.N
		}
		if n < 0 {
			return fail(fmt.Errorf("param n must be >= 0"))
		}
		d, err := DerivativeN(e, S(p.Var), n)
		if err != nil {
			return fail(err)
		}
		return respond(d)

	case "replace":
		var p replaceParams
		if err := decodeParams(req.Params, &p); err != nil {
			return fail(err)
		}
		e, err := requireExpr("expr", p.Expr)
		if err != nil {
			return fail(err)
		}
		old, err := requireExpr("old", p.Old)
		if err != nil {
			return fail(err)
		}
		repl, err := requireExpr("new", p.New)
		if err != nil {
			return fail(err)
		}
		out, err := Replace(e, old, repl)
		if err != nil {
			return fail(err)
		}
		return respond(out)

	case "depends_on":
		var p dependsOnParams
		if err := decodeParams(req.Params, &p); err != nil {
			return fail(err)
		}
		e, err := requireExpr("expr", p.Expr)
		if err != nil {
			return fail(err)
		}
		if p.Var == "" {
			return fail(fmt.Errorf("missing param: var"))
		}
		ok := e.DependsOn(S(p.Var))
		return ToolResponse{Result: ok, String: fmt.Sprint(ok)}

	case "free_symbols":
		e, err := single()
		if err != nil {
			return fail(err)
		}
		syms := FreeSymbols(e)
		names := make([]string, len(syms))
		for i, s := range syms {
			names[i] = s.name
		}
		return ToolResponse{Result: names, String: "[" + strings.Join(names, ", ") + "]"}

	case "to_number":
		e, err := single()
		if err != nil {
			return fail(err)
		}
		r, err := ToExactNumber(e)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: r.RatString(), String: r.RatString()}

	case "approximate":
		e, err := single()
		if err != nil {
			return fail(err)
		}
		f, err := Approximate(e)
		if err != nil {
			return fail(err)
		}
		// encoding/json rejects NaN and infinities
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ToolResponse{String: fmt.Sprint(f)}
		}
		return ToolResponse{Result: f, String: fmt.Sprintf("%.10g", f)}
	}
	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}
