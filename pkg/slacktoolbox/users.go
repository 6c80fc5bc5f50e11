package slacktoolbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atomcliadepter/slack-sub004/pkg/slack"
	"github.com/atomcliadepter/slack-sub004/pkg/tools/toolbox"
)

type getUserInput struct {
	User string `json:"user"`
}

func (s *Slack) getUserTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "slack_get_user",
		Description: "Look up a workspace member by user ID. Returns name, real name, and role flags.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"user":{"type":"string","description":"User ID, e.g. U0123456"}},"required":["user"]}`),
		Handler:     s.handleGetUser,
	}
}

func (s *Slack) handleGetUser(ctx context.Context, input json.RawMessage) (string, error) {
	var in getUserInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("slack_get_user: invalid input: %w", err)
	}

	if in.User == "" {
		return "", fmt.Errorf("slack_get_user: user is required")
	}

	user, err := s.client.GetUserInfo(ctx, in.User)
	if err != nil {
		return "", fmt.Errorf("slack_get_user: %w", err)
	}

	return marshalResult("slack_get_user", user)
}

type listUsersInput struct {
	Limit  int    `json:"limit"`
	Cursor string `json:"cursor"`
}

type listUsersOutput struct {
	Members    []slack.User `json:"members"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

func (s *Slack) listUsersTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "slack_list_users",
		Description: "List workspace members. Returns a page of users and a next_cursor for pagination when more exist.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"limit":{"type":"integer","minimum":1,"maximum":1000,"description":"Page size (default 100)"},"cursor":{"type":"string","description":"Pagination cursor from a previous call"}}}`),
		Handler:     s.handleListUsers,
	}
}

func (s *Slack) handleListUsers(ctx context.Context, input json.RawMessage) (string, error) {
	var in listUsersInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("slack_list_users: invalid input: %w", err)
	}

	limit := in.Limit
	if limit == 0 {
		limit = defaultPageLimit
	}

	members, cursor, err := s.client.ListUsers(ctx, limit, in.Cursor)
	if err != nil {
		return "", fmt.Errorf("slack_list_users: %w", err)
	}

	return marshalResult("slack_list_users", listUsersOutput{
		Members:    members,
		NextCursor: cursor,
	})
}
