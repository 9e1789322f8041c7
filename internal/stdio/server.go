// Package stdio serves the tool registry over line-delimited JSON-RPC 2.0 on
// a reader/writer pair, which is how agent runtimes spawn the gateway as a
// subprocess.
package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"compliance-mcp/internal/api"
	"compliance-mcp/internal/tools"
)

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

const protocolVersion = "2024-11-05"

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Server reads JSON-RPC requests line by line and dispatches tool calls.
type Server struct {
	registry *tools.Registry
	logger   *slog.Logger
	in       io.Reader
	out      io.Writer
	mu       sync.Mutex // serializes writes to out
}

// NewServer creates a stdio server over the given streams.
func NewServer(registry *tools.Registry, in io.Reader, out io.Writer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{registry: registry, logger: logger, in: in, out: out}
}

// Run processes requests until the input stream closes or the context is
// cancelled. Malformed lines are answered with JSON-RPC error objects;
// notifications (no id) never get a response.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.reply(response{JSONRPC: "2.0", Error: &rpcError{Code: codeParseError, Message: "parse error"}})
			continue
		}
		s.handle(ctx, req)
	}
	return scanner.Err()
}

func (s *Server) handle(ctx context.Context, req request) {
	if req.JSONRPC != "2.0" {
		s.replyError(req.ID, codeInvalidRequest, "expected jsonrpc 2.0")
		return
	}

	switch req.Method {
	case "initialize":
		s.replyResult(req.ID, map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities":    map[string]any{"tools": map[string]any{}},
			"serverInfo": map[string]any{
				"name":    "compliance-mcp",
				"version": api.Version,
			},
		})

	case "notifications/initialized":
		// Notification; nothing to answer.

	case "ping":
		s.replyResult(req.ID, map[string]any{})

	case "tools/list":
		s.replyResult(req.ID, map[string]any{"tools": s.registry.List()})

	case "tools/call":
		var params callParams
		if err := json.Unmarshal(req.Params, &params); err != nil || params.Name == "" {
			s.replyError(req.ID, codeInvalidParams, "tools/call requires a name")
			return
		}
		s.logger.Info("tool call", "tool", params.Name)
		result := s.registry.Invoke(ctx, params.Name, params.Arguments)

		// MCP-style text content: the tool payload serialized as JSON.
		text, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			s.replyError(req.ID, codeInvalidParams, fmt.Sprintf("encode result: %v", err))
			return
		}
		s.replyResult(req.ID, map[string]any{
			"content": []map[string]any{{"type": "text", "text": string(text)}},
		})

	default:
		if req.ID == nil {
			return // unknown notification, ignore
		}
		s.replyError(req.ID, codeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func (s *Server) replyResult(id json.RawMessage, result any) {
	if id == nil {
		return
	}
	s.reply(response{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) replyError(id json.RawMessage, code int, message string) {
	if id == nil {
		return
	}
	s.reply(response{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: message}})
}

func (s *Server) reply(resp response) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("encode response", "error", err)
		return
	}
	data = append(data, '\n')
	if _, err := s.out.Write(data); err != nil {
		s.logger.Error("write response", "error", err)
	}
}
