package slacktoolbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atomcliadepter/slack-sub004/pkg/tools/toolbox"
)

type addReactionInput struct {
	Channel   string `json:"channel"`
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
}

type addReactionOutput struct {
	Added bool `json:"added"`
}

func (s *Slack) addReactionTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "slack_add_reaction",
		Description: "Add an emoji reaction to a message, identified by channel and message timestamp. The emoji name is given without colons.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"channel":{"type":"string","description":"Channel ID containing the message"},"timestamp":{"type":"string","description":"Timestamp of the message to react to"},"name":{"type":"string","description":"Emoji name without colons, e.g. thumbsup"}},"required":["channel","timestamp","name"]}`),
		Handler:     s.handleAddReaction,
	}
}

func (s *Slack) handleAddReaction(ctx context.Context, input json.RawMessage) (string, error) {
	var in addReactionInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("slack_add_reaction: invalid input: %w", err)
	}

	if in.Channel == "" {
		return "", fmt.Errorf("slack_add_reaction: channel is required")
	}
	if in.Timestamp == "" {
		return "", fmt.Errorf("slack_add_reaction: timestamp is required")
	}
	if in.Name == "" {
		return "", fmt.Errorf("slack_add_reaction: name is required")
	}

	if err := s.client.AddReaction(ctx, in.Channel, in.Timestamp, in.Name); err != nil {
		return "", fmt.Errorf("slack_add_reaction: %w", err)
	}

	return marshalResult("slack_add_reaction", addReactionOutput{Added: true})
}
