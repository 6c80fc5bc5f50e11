package slacktoolbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atomcliadepter/slack-sub004/pkg/tools/toolbox"
)

type postMessageInput struct {
	Channel  string `json:"channel"`
	Text     string `json:"text"`
	ThreadTS string `json:"thread_ts"`
}

func (s *Slack) postMessageTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "slack_post_message",
		Description: "Post a message to a Slack channel. Set thread_ts to reply in a thread. Returns the channel and timestamp of the posted message.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"channel":{"type":"string","description":"Channel ID or name to post to"},"text":{"type":"string","description":"Message text"},"thread_ts":{"type":"string","description":"Timestamp of a parent message to reply to"}},"required":["channel","text"]}`),
		Handler:     s.handlePostMessage,
	}
}

func (s *Slack) handlePostMessage(ctx context.Context, input json.RawMessage) (string, error) {
	var in postMessageInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("slack_post_message: invalid input: %w", err)
	}

	if in.Channel == "" {
		return "", fmt.Errorf("slack_post_message: channel is required")
	}
	if in.Text == "" {
		return "", fmt.Errorf("slack_post_message: text is required")
	}

	stamp, err := s.client.PostMessage(ctx, in.Channel, in.Text, in.ThreadTS)
	if err != nil {
		return "", fmt.Errorf("slack_post_message: %w", err)
	}

	return marshalResult("slack_post_message", stamp)
}
