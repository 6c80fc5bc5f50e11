package slacktoolbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atomcliadepter/slack-sub004/pkg/tools/toolbox"
)

type searchMessagesInput struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

func (s *Slack) searchMessagesTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "slack_search_messages",
		Description: "Search workspace messages with Slack's query syntax (e.g. \"deploy in:#ops from:@alice\"). Returns matches with permalinks.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"query":{"type":"string","description":"Search query"},"count":{"type":"integer","minimum":1,"maximum":100,"description":"Maximum matches to return (default 20)"}},"required":["query"]}`),
		Handler:     s.handleSearchMessages,
	}
}

func (s *Slack) handleSearchMessages(ctx context.Context, input json.RawMessage) (string, error) {
	var in searchMessagesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("slack_search_messages: invalid input: %w", err)
	}

	if in.Query == "" {
		return "", fmt.Errorf("slack_search_messages: query is required")
	}

	count := in.Count
	if count == 0 {
		count = 20
	}

	results, err := s.client.SearchMessages(ctx, in.Query, count)
	if err != nil {
		return "", fmt.Errorf("slack_search_messages: %w", err)
	}

	return marshalResult("slack_search_messages", results)
}
