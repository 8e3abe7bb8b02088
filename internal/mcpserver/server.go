// Package mcpserver exposes the derivater tools as a Model Context Protocol
// server. Expression parameters travel as JSON-encoded strings.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/njchilds90/derivater"
	"go.uber.org/zap"
)

// Server wraps an MCP server with one tool per derivater tool.
type Server struct {
	logger    *zap.Logger
	mcpServer *server.MCPServer
}

// New creates a Server and registers every tool.
func New(version string, logger *zap.Logger) *Server {
	s := &Server{
		logger:    logger,
		mcpServer: server.NewMCPServer("derivater", version),
	}
	s.registerTools()
	return s
}

// ServeStdio serves on stdin/stdout until stdin closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	for _, t := range derivater.Tools() {
		opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}
		for _, p := range t.Params {
			opts = append(opts, paramOption(p))
		}
		s.mcpServer.AddTool(mcp.NewTool(t.Name, opts...), s.handler(t))
	}
}

func paramOption(p derivater.ToolParam) mcp.ToolOption {
	var propOpts []mcp.PropertyOption
	if p.Required {
		propOpts = append(propOpts, mcp.Required())
	}
	switch p.Type {
	case "integer":
		return mcp.WithNumber(p.Name, append(propOpts, mcp.Description(p.Description))...)
	case "object":
		return mcp.WithString(p.Name, append(propOpts, mcp.Description(p.Description+" (JSON)"))...)
	default:
		return mcp.WithString(p.Name, append(propOpts, mcp.Description(p.Description))...)
	}
}

func (s *Server) handler(t derivater.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params, err := decodeArguments(t, request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		resp := derivater.HandleToolCall(derivater.ToolRequest{Tool: t.Name, Params: params})
		if resp.Error != "" {
			s.logger.Debug("tool call failed", zap.String("tool", t.Name), zap.String("error", resp.Error))
			return mcp.NewToolResultError(resp.Error), nil
		}

		out, err := json.Marshal(resp)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// decodeArguments turns JSON-string expression arguments back into objects.
func decodeArguments(t derivater.Tool, args map[string]any) (map[string]interface{}, error) {
	params := make(map[string]interface{}, len(args))
	for k, v := range args {
		params[k] = v
	}
	for _, p := range t.Params {
		if p.Type != "object" {
			continue
		}
		raw, ok := params[p.Name].(string)
		if !ok {
			continue
		}
		var obj map[string]interface{}
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&obj); err != nil {
			return nil, fmt.Errorf("param %s: invalid JSON: %w", p.Name, err)
		}
		if dec.More() {
			return nil, fmt.Errorf("param %s: invalid JSON: trailing data", p.Name)
		}
		params[p.Name] = obj
	}
	return params, nil
}
