package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// wsShutdownTimeout bounds the drain of open sessions on shutdown.
const wsShutdownTimeout = 5 * time.Second

// ServeWebSocket serves MCP sessions over WebSocket at addr (path /mcp).
// Each accepted connection carries one MCP session with the same
// newline-delimited JSON framing as the stdio transport, so any MCP client
// that can speak over a byte stream can connect through a WebSocket. It
// blocks until ctx is cancelled or the listener fails.
func (s *MCPServer) ServeWebSocket(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", s.handleWS)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), wsShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)

		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("mcpserver: serve websocket on %s: %w", addr, err)
	}
}

// handleWS upgrades the connection and runs one MCP session over it.
func (s *MCPServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusInternalError, "session ended") //nolint:errcheck // best-effort close

	nc := websocket.NetConn(r.Context(), conn, websocket.MessageText)

	_ = s.run(r.Context(), &mcp.IOTransport{Reader: nc, Writer: nc})

	conn.Close(websocket.StatusNormalClosure, "") //nolint:errcheck // best-effort close
}
