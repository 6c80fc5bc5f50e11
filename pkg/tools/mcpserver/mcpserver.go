// Package mcpserver exposes a dispatch.Dispatcher's tool catalog over the
// MCP protocol using the official MCP Go SDK. Listing is answered from the
// catalog; every call is routed through the dispatcher so the envelope
// contract (one terminal success-or-error result per call) holds on the
// wire regardless of how a tool fails.
package mcpserver

import (
	"context"
	"io"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atomcliadepter/slack-sub004/pkg/tools/dispatch"
	"github.com/atomcliadepter/slack-sub004/pkg/tools/toolbox"
)

// MCPServer serves a dispatcher's tools over the MCP protocol.
type MCPServer struct {
	server     *mcp.Server
	dispatcher *dispatch.Dispatcher
}

// New creates an MCPServer with the given name and version, announcing
// every tool in the dispatcher's catalog.
func New(name, version string, d *dispatch.Dispatcher) *MCPServer {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)

	s := &MCPServer{server: server, dispatcher: d}
	for _, t := range d.List() {
		server.AddTool(toSDKTool(t), s.handlerFor(t.Name))
	}

	return s
}

// Serve starts serving MCP requests. It reads requests from in and writes
// responses to out. It blocks until ctx is cancelled or the transport
// closes.
func (s *MCPServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	transport := &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: nopWriteCloser{out},
	}

	return s.run(ctx, transport)
}

// run starts the server with the given transport. Exported via Serve and
// ServeWebSocket for production use; called directly by tests with
// InMemoryTransport.
func (s *MCPServer) run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// handlerFor adapts the dispatcher to an SDK ToolHandler for the named
// tool. The dispatcher never fails, so the SDK-level error is always nil
// and failures travel as IsError results.
func (s *MCPServer) handlerFor(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := s.dispatcher.Dispatch(ctx, dispatch.Request{
			Name:      name,
			Arguments: req.Params.Arguments,
		})

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: res.Content}},
			IsError: res.IsError,
		}, nil
	}
}

// toSDKTool converts a toolbox.Tool to an SDK *mcp.Tool.
func toSDKTool(t toolbox.Tool) *mcp.Tool {
	return &mcp.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.InputSchema,
	}
}

// nopWriteCloser wraps an io.Writer as an io.WriteCloser with a no-op Close.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
