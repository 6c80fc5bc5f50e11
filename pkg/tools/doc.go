// Package tools provides the tool catalog, dispatch engine, and MCP
// (Model Context Protocol) serving layer.
//
// It is organized into sub-packages:
//   - [github.com/atomcliadepter/slack-sub004/pkg/tools/toolbox] — Tool type and ToolBox catalog for registering, resolving, and listing tools
//   - [github.com/atomcliadepter/slack-sub004/pkg/tools/dispatch] — Dispatcher that resolves tool calls, executes them, and normalizes every failure into a response envelope
//   - [github.com/atomcliadepter/slack-sub004/pkg/tools/schemaval] — JSON Schema argument validator plugged into the dispatcher
//   - [github.com/atomcliadepter/slack-sub004/pkg/tools/mcpserver] — MCP server using the official MCP Go SDK for exposing the dispatcher over stdio or WebSocket
//   - [github.com/atomcliadepter/slack-sub004/pkg/tools/mcpclient] — MCP client using the official MCP Go SDK, used by the debug CLI to talk to a running server
//
// The toolbox sub-package is the foundation layer. dispatch depends on
// toolbox; mcpserver and mcpclient are thin wrappers around the official
// MCP Go SDK (github.com/modelcontextprotocol/go-sdk) and depend on
// dispatch and toolbox but not on each other.
package tools
