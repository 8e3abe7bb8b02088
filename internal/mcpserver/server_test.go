package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/njchilds90/derivater"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.mcpServer.GetTool(name)
	require.NotNil(t, tool, "tool %s not registered", name)

	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

const symbolX = `{"type":"symbol","name":"x"}`

func TestNew_RegistersEveryTool(t *testing.T) {
	s := New("test", zap.NewNop())
	tools := s.mcpServer.ListTools()
	require.Len(t, tools, len(derivater.Tools()))

	d := s.mcpServer.GetTool("derivative")
	require.NotNil(t, d)
	assert.ElementsMatch(t, []string{"expr", "var"}, d.Tool.InputSchema.Required)
	assert.Contains(t, d.Tool.InputSchema.Properties, "n")
}

func TestHandler_Derivative(t *testing.T) {
	s := New("test", zap.NewNop())
	cube := `{"type":"power","base":` + symbolX + `,"exp":{"type":"integer","value":"3"}}`

	res := callTool(t, s, "derivative", map[string]any{"expr": cube, "var": "x", "n": float64(2)})
	require.False(t, res.IsError, text(t, res))

	var resp derivater.ToolResponse
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &resp))
	assert.Equal(t, "6*x", resp.String)
}

func TestHandler_FractionalN(t *testing.T) {
	s := New("test", zap.NewNop())
	res := callTool(t, s, "derivative", map[string]any{"expr": symbolX, "var": "x", "n": 1.5})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "expected an integer, got 1.5")
}

func TestHandler_BigIntegerArgument(t *testing.T) {
	s := New("test", zap.NewNop())
	res := callTool(t, s, "to_number", map[string]any{"expr": `{"type":"integer","value":12345678901234567890123}`})
	require.False(t, res.IsError, text(t, res))

	var resp derivater.ToolResponse
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &resp))
	assert.Equal(t, "12345678901234567890123", resp.String)
}

func TestHandler_AcceptsObjects(t *testing.T) {
	s := New("test", zap.NewNop())
	args := map[string]any{"expr": map[string]any{"type": "symbol", "name": "y"}}

	res := callTool(t, s, "simplify", args)
	require.False(t, res.IsError, text(t, res))
	assert.Contains(t, text(t, res), `"string":"y"`)
}

func TestHandler_ToolError(t *testing.T) {
	s := New("test", zap.NewNop())
	res := callTool(t, s, "to_number", map[string]any{"expr": symbolX})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "not purely numeric")
}

func TestHandler_InvalidJSONArgument(t *testing.T) {
	s := New("test", zap.NewNop())
	res := callTool(t, s, "simplify", map[string]any{"expr": "{not json"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "param expr: invalid JSON")

	res = callTool(t, s, "simplify", map[string]any{"expr": symbolX + symbolX})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "trailing data")
}

func TestDecodeArguments(t *testing.T) {
	var replace derivater.Tool
	for _, tool := range derivater.Tools() {
		if tool.Name == "replace" {
			replace = tool
		}
	}
	require.Equal(t, "replace", replace.Name)

	args := map[string]any{"expr": symbolX, "old": symbolX, "new": `{"type":"integer","value":"2"}`, "extra": "kept"}
	params, err := decodeArguments(replace, args)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"type": "symbol", "name": "x"}, params["expr"])
	assert.Equal(t, "kept", params["extra"])

	// the caller's map is left alone
	assert.Equal(t, symbolX, args["expr"])
}
