// Package client calls the solix MCP tools and decodes their JSON envelopes.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpclient "github.com/mark3labs/mcp-go/client"
	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/solix"
)

// ErrToolFailed indicates that a tool call returned an error result.
var ErrToolFailed = errors.New("mcp tool call failed")

// ToolError carries the message of a failed tool call.
type ToolError struct {
	Tool    string
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Tool, e.Message)
}

func (e *ToolError) Is(target error) bool {
	return target == ErrToolFailed
}

// Client is an initialized MCP session with a solix server.
type Client struct {
	mcp *mcpclient.Client
}

// Dial connects to the streamable HTTP endpoint at serverURL (e.g.,
// "http://localhost:8080/mcp") and initializes the session.
func Dial(ctx context.Context, serverURL string) (*Client, error) {
	c, err := mcpclient.NewStreamableHttpClient(serverURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}
	return New(ctx, c)
}

// New starts and initializes an existing MCP client, such as an in-process one.
func New(ctx context.Context, c *mcpclient.Client) (*Client, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start client: %w", err)
	}

	req := mcpproto.InitializeRequest{}
	req.Params.ProtocolVersion = mcpproto.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcpproto.Implementation{Name: "solix-client", Version: "1.0.0"}
	if _, err := c.Initialize(ctx, req); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	return &Client{mcp: c}, nil
}

// Close ends the session.
func (c *Client) Close() error {
	return c.mcp.Close()
}

// Tools returns the names of the tools the server offers.
func (c *Client) Tools(ctx context.Context) ([]string, error) {
	resp, err := c.mcp.ListTools(ctx, mcpproto.ListToolsRequest{})
	if err != nil {
		return nil, err
	}
	names := make([]string, len(resp.Tools))
	for i, tool := range resp.Tools {
		names[i] = tool.Name
	}
	return names, nil
}

// Call invokes tool with args and returns the envelope's data.
func (c *Client) Call(ctx context.Context, tool string, args any) (json.RawMessage, error) {
	req := mcpproto.CallToolRequest{}
	req.Params.Name = tool
	req.Params.Arguments = args

	result, err := c.mcp.CallTool(ctx, req)
	if err != nil {
		return nil, err
	}

	text := ""
	for _, content := range result.Content {
		if tc, ok := mcpproto.AsTextContent(content); ok {
			text = tc.Text
			break
		}
	}
	if result.IsError {
		return nil, &ToolError{Tool: tool, Message: text}
	}

	var env solix.Envelope[json.RawMessage]
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", tool, err)
	}
	if !env.Success {
		return nil, &ToolError{Tool: tool, Message: env.Error}
	}
	return env.Data, nil
}

// Invoke calls tool and decodes its data into Resp.
func Invoke[Resp any](ctx context.Context, c *Client, tool string, args any) (Resp, error) {
	var resp Resp
	data, err := c.Call(ctx, tool, args)
	if err != nil {
		return resp, err
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return resp, fmt.Errorf("failed to decode %s data: %w", tool, err)
	}
	return resp, nil
}
