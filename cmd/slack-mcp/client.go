package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/atomcliadepter/slack-sub004/pkg/slack"
	"github.com/atomcliadepter/slack-sub004/pkg/slacktoolbox"
	"github.com/atomcliadepter/slack-sub004/pkg/tools/mcpclient"
)

// runClient connects to an MCP server and lists or calls tools. Exactly one
// of -cmd, -ws or -sse selects the transport.
func runClient(args []string) error {
	clientCmd := flag.NewFlagSet("client", flag.ExitOnError)
	clientCmd.Usage = func() {
		fmt.Fprintf(clientCmd.Output(), "Usage: slack-mcp client [flags] list\n       slack-mcp client [flags] call <tool> [json-arguments]\n\nFlags:\n")
		clientCmd.PrintDefaults()
	}
	command := clientCmd.String("cmd", "", "spawn an MCP server process (space-separated command line)")
	wsURL := clientCmd.String("ws", "", "connect to a websocket MCP endpoint (e.g. ws://localhost:8765/mcp)")
	sseURL := clientCmd.String("sse", "", "connect to an SSE MCP endpoint")
	_ = clientCmd.Parse(args)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := dialClient(ctx, *command, *wsURL, *sseURL)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	rest := clientCmd.Args()
	action := "list"
	if len(rest) > 0 {
		action = rest[0]
	}

	switch action {
	case "list":
		tools, err := client.ListTools(ctx)
		if err != nil {
			return err
		}
		for _, tool := range tools {
			fmt.Printf("%s\t%s\n", tool.Name, tool.Description)
		}

		return nil
	case "call":
		if len(rest) < 2 {
			return fmt.Errorf("call requires a tool name")
		}

		arguments := json.RawMessage("{}")
		if len(rest) > 2 {
			arguments = json.RawMessage(rest[2])
		}

		out, err := client.CallTool(ctx, rest[1], arguments)
		if err != nil {
			return err
		}
		fmt.Println(out)

		return nil
	default:
		return fmt.Errorf("unknown client action %q (want list or call)", action)
	}
}

func dialClient(ctx context.Context, command, wsURL, sseURL string) (*mcpclient.MCPClient, error) {
	switch {
	case command != "":
		parts := strings.Fields(command)

		return mcpclient.New(ctx, parts[0], parts[1:]...)
	case wsURL != "":
		return mcpclient.NewWebSocket(ctx, wsURL)
	case sseURL != "":
		return mcpclient.NewSSE(ctx, sseURL)
	default:
		return nil, fmt.Errorf("one of -cmd, -ws or -sse is required")
	}
}

// runTools prints the tool catalog without connecting to Slack or starting
// a server.
func runTools() error {
	tb, err := slacktoolbox.New(slack.New("")).Tools()
	if err != nil {
		return err
	}

	for _, tool := range tb.Tools() {
		fmt.Printf("%s\t%s\n", tool.Name, tool.Description)
	}

	return nil
}
