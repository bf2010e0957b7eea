package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/ganttmcp/ganttmcp/internal/log"
)

// JSON-RPC 2.0 wire types of the MCP protocol.

type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
	Capabilities    ServerCapabilities `json:"capabilities"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ServerCapabilities struct {
	Tools *ToolsCapability `json:"tools,omitempty"`
}

type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema interface{} `json:"inputSchema"`
}

type CallToolParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

type CallToolResult struct {
	Content []ToolContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

type ToolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

const protocolVersion = "2024-11-05"

// ServerConfig is the configuration of Server.
type ServerConfig struct {
	Handler *ToolHandler
	// In and Out default to stdin/stdout, tests inject pipes.
	In  io.Reader
	Out io.Writer
	// SessionID identifies this server run in logs. Generated when empty.
	SessionID string
	Name      string
	Version   string
	Logger    log.Logger
}

func (c *ServerConfig) defaults() error {
	if c.Handler == nil {
		return fmt.Errorf("tool handler is required")
	}

	if c.In == nil {
		c.In = os.Stdin
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.SessionID == "" {
		c.SessionID = uuid.New().String()
	}
	if c.Name == "" {
		c.Name = "ganttmcp"
	}
	if c.Version == "" {
		c.Version = "1.0.0"
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "mcp.Server", "session": c.SessionID})

	return nil
}

// Server speaks the MCP protocol (JSON-RPC 2.0, one message per line)
// over a reader/writer pair and dispatches tool calls to the handler.
type Server struct {
	handler *ToolHandler
	in      io.Reader
	out     io.Writer
	name    string
	version string
	logger  log.Logger
}

// NewServer creates a new MCP server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Server{
		handler: cfg.Handler,
		in:      cfg.In,
		out:     cfg.Out,
		name:    cfg.Name,
		version: cfg.Version,
		logger:  cfg.Logger,
	}, nil
}

// Run serves requests until the input closes or the context ends.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Infof("MCP server listening on stdio")

	reader := bufio.NewReader(s.in)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := reader.ReadBytes('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Infof("MCP input closed, shutting down")
				return nil
			}
			return fmt.Errorf("could not read request: %w", err)
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warningf("could not parse request: %s", err)
			if err := s.sendError(nil, -32700, "Parse error"); err != nil {
				return err
			}
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if resp == nil {
			continue
		}
		if err := s.sendResponse(resp); err != nil {
			return fmt.Errorf("could not write response: %w", err)
		}
	}
}

func (s *Server) handleRequest(ctx context.Context, req *Request) *Response {
	s.logger.Debugf("handling %q request", req.Method)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleListTools(req)
	case "tools/call":
		return s.handleCallTool(ctx, req)
	case "notifications/initialized":
		// Notification, no response.
		return nil
	default:
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &Error{Code: -32601, Message: "Method not found"},
		}
	}
}

func (s *Server) handleInitialize(req *Request) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: InitializeResult{
			ProtocolVersion: protocolVersion,
			ServerInfo: ServerInfo{
				Name:    s.name,
				Version: s.version,
			},
			Capabilities: ServerCapabilities{
				Tools: &ToolsCapability{},
			},
		},
	}
}

func (s *Server) handleListTools(req *Request) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  ListToolsResult{Tools: toolDefinitions()},
	}
}

func (s *Server) handleCallTool(ctx context.Context, req *Request) *Response {
	var params CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &Error{Code: -32602, Message: "Invalid params"},
		}
	}

	result, err := s.handler.Handle(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warningf("tool %q failed: %s", params.Name, err)
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: CallToolResult{
				Content: []ToolContent{{Type: "text", Text: fmt.Sprintf("Error: %v", err)}},
				IsError: true,
			},
		}
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: CallToolResult{
				Content: []ToolContent{{Type: "text", Text: fmt.Sprintf("Error: %v", err)}},
				IsError: true,
			},
		}
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: CallToolResult{
			Content: []ToolContent{{Type: "text", Text: string(resultJSON)}},
		},
	}
}

func (s *Server) sendResponse(resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.out, "%s\n", data)
	return err
}

func (s *Server) sendError(id interface{}, code int, message string) error {
	return s.sendResponse(&Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &Error{Code: code, Message: message},
	})
}
