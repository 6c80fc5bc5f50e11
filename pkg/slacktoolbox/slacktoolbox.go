// Package slacktoolbox exposes Slack Web API operations as tools. Each tool
// declares a JSON Schema for its arguments and delegates to the slack
// package's client; the dispatch layer owns validation and error shaping.
package slacktoolbox

import (
	"encoding/json"
	"fmt"

	"github.com/atomcliadepter/slack-sub004/pkg/slack"
	"github.com/atomcliadepter/slack-sub004/pkg/tools/toolbox"
)

// Slack provides the Slack tool set backed by a Web API client.
type Slack struct {
	client *slack.Client
}

// New creates a Slack toolbox backed by the given client.
func New(client *slack.Client) *Slack {
	return &Slack{client: client}
}

// Tools returns a ToolBox containing every Slack tool, in a stable
// registration order.
func (s *Slack) Tools() (*toolbox.ToolBox, error) {
	tb := toolbox.New()
	if err := tb.Register(
		s.postMessageTool(),
		s.listChannelsTool(),
		s.channelHistoryTool(),
		s.searchMessagesTool(),
		s.getUserTool(),
		s.listUsersTool(),
		s.addReactionTool(),
	); err != nil {
		return nil, fmt.Errorf("slacktoolbox: %w", err)
	}

	return tb, nil
}

// marshalResult serializes a tool's output payload.
func marshalResult(name string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%s: marshal result: %w", name, err)
	}

	return string(data), nil
}
