package slacktoolbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atomcliadepter/slack-sub004/pkg/slack"
	"github.com/atomcliadepter/slack-sub004/pkg/tools/toolbox"
)

// defaultPageLimit is used when a listing tool is called without a limit.
const defaultPageLimit = 100

type listChannelsInput struct {
	Types  []string `json:"types"`
	Limit  int      `json:"limit"`
	Cursor string   `json:"cursor"`
}

type listChannelsOutput struct {
	Channels   []slack.Channel `json:"channels"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

func (s *Slack) listChannelsTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "slack_list_channels",
		Description: "List channels in the workspace. Returns a page of channels and a next_cursor for pagination when more exist.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"types":{"type":"array","items":{"type":"string"},"description":"Conversation types to include, e.g. public_channel, private_channel"},"limit":{"type":"integer","minimum":1,"maximum":1000,"description":"Page size (default 100)"},"cursor":{"type":"string","description":"Pagination cursor from a previous call"}}}`),
		Handler:     s.handleListChannels,
	}
}

func (s *Slack) handleListChannels(ctx context.Context, input json.RawMessage) (string, error) {
	var in listChannelsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("slack_list_channels: invalid input: %w", err)
	}

	limit := in.Limit
	if limit == 0 {
		limit = defaultPageLimit
	}

	channels, cursor, err := s.client.ListConversations(ctx, in.Types, limit, in.Cursor)
	if err != nil {
		return "", fmt.Errorf("slack_list_channels: %w", err)
	}

	return marshalResult("slack_list_channels", listChannelsOutput{
		Channels:   channels,
		NextCursor: cursor,
	})
}

type channelHistoryInput struct {
	Channel string `json:"channel"`
	Limit   int    `json:"limit"`
	Oldest  string `json:"oldest"`
	Latest  string `json:"latest"`
}

type channelHistoryOutput struct {
	Messages []slack.Message `json:"messages"`
	HasMore  bool            `json:"has_more"`
}

func (s *Slack) channelHistoryTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "slack_channel_history",
		Description: "Fetch recent messages from a channel, newest first. Bound the window with oldest/latest message timestamps.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"channel":{"type":"string","description":"Channel ID"},"limit":{"type":"integer","minimum":1,"maximum":1000,"description":"Maximum messages to return (default 100)"},"oldest":{"type":"string","description":"Only messages after this timestamp"},"latest":{"type":"string","description":"Only messages before this timestamp"}},"required":["channel"]}`),
		Handler:     s.handleChannelHistory,
	}
}

func (s *Slack) handleChannelHistory(ctx context.Context, input json.RawMessage) (string, error) {
	var in channelHistoryInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("slack_channel_history: invalid input: %w", err)
	}

	if in.Channel == "" {
		return "", fmt.Errorf("slack_channel_history: channel is required")
	}

	limit := in.Limit
	if limit == 0 {
		limit = defaultPageLimit
	}

	messages, hasMore, err := s.client.ConversationHistory(ctx, in.Channel, limit, in.Oldest, in.Latest)
	if err != nil {
		return "", fmt.Errorf("slack_channel_history: %w", err)
	}

	return marshalResult("slack_channel_history", channelHistoryOutput{
		Messages: messages,
		HasMore:  hasMore,
	})
}
