package slack

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// Identity describes the authenticated bot, from auth.test.
type Identity struct {
	URL    string `json:"url"`
	Team   string `json:"team"`
	User   string `json:"user"`
	TeamID string `json:"team_id"`
	UserID string `json:"user_id"`
}

// Message is a single channel message.
type Message struct {
	Type     string `json:"type"`
	User     string `json:"user"`
	Text     string `json:"text"`
	TS       string `json:"ts"`
	ThreadTS string `json:"thread_ts,omitempty"`
}

// MessageStamp identifies a posted message.
type MessageStamp struct {
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}

// Channel is a conversation (public or private channel).
type Channel struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsPrivate  bool   `json:"is_private"`
	IsArchived bool   `json:"is_archived"`
	NumMembers int    `json:"num_members"`
}

// User is a workspace member.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RealName string `json:"real_name"`
	IsBot    bool   `json:"is_bot"`
	IsAdmin  bool   `json:"is_admin"`
	TimeZone string `json:"tz,omitempty"`
}

// SearchMatch is a single search.messages hit.
type SearchMatch struct {
	Channel   Channel `json:"channel"`
	User      string  `json:"user"`
	Username  string  `json:"username"`
	Text      string  `json:"text"`
	TS        string  `json:"ts"`
	Permalink string  `json:"permalink"`
}

// SearchResults is the result of a message search.
type SearchResults struct {
	Total   int           `json:"total"`
	Matches []SearchMatch `json:"matches"`
}

// AuthTest verifies the token and returns the bot's identity.
func (c *Client) AuthTest(ctx context.Context) (*Identity, error) {
	var resp struct {
		apiResponse
		Identity
	}
	if err := c.call(ctx, "auth.test", nil, &resp); err != nil {
		return nil, err
	}

	return &resp.Identity, nil
}

// PostMessage posts text to a channel, optionally as a thread reply.
func (c *Client) PostMessage(ctx context.Context, channel, text, threadTS string) (*MessageStamp, error) {
	params := url.Values{
		"channel": {channel},
		"text":    {text},
	}
	if threadTS != "" {
		params.Set("thread_ts", threadTS)
	}

	var resp struct {
		apiResponse
		Channel string `json:"channel"`
		TS      string `json:"ts"`
	}
	if err := c.call(ctx, "chat.postMessage", params, &resp); err != nil {
		return nil, err
	}

	return &MessageStamp{Channel: resp.Channel, TS: resp.TS}, nil
}

// ListConversations returns a page of channels. types filters by
// conversation kind (e.g. "public_channel", "private_channel"); empty means
// Slack's default. A non-empty returned cursor means more pages exist.
func (c *Client) ListConversations(ctx context.Context, types []string, limit int, cursor string) ([]Channel, string, error) {
	params := url.Values{}
	if len(types) > 0 {
		params.Set("types", strings.Join(types, ","))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	var resp struct {
		apiResponse
		Channels         []Channel        `json:"channels"`
		ResponseMetadata responseMetadata `json:"response_metadata"`
	}
	if err := c.call(ctx, "conversations.list", params, &resp); err != nil {
		return nil, "", err
	}

	return resp.Channels, resp.ResponseMetadata.NextCursor, nil
}

// ConversationHistory returns up to limit recent messages from a channel,
// newest first. oldest and latest bound the window by message timestamp and
// may be empty.
func (c *Client) ConversationHistory(ctx context.Context, channel string, limit int, oldest, latest string) ([]Message, bool, error) {
	params := url.Values{"channel": {channel}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if oldest != "" {
		params.Set("oldest", oldest)
	}
	if latest != "" {
		params.Set("latest", latest)
	}

	var resp struct {
		apiResponse
		Messages []Message `json:"messages"`
		HasMore  bool      `json:"has_more"`
	}
	if err := c.call(ctx, "conversations.history", params, &resp); err != nil {
		return nil, false, err
	}

	return resp.Messages, resp.HasMore, nil
}

// SearchMessages searches workspace messages. Requires a user token with
// the search scope on most workspaces.
func (c *Client) SearchMessages(ctx context.Context, query string, count int) (*SearchResults, error) {
	params := url.Values{"query": {query}}
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}

	var resp struct {
		apiResponse
		Messages struct {
			Total   int           `json:"total"`
			Matches []SearchMatch `json:"matches"`
		} `json:"messages"`
	}
	if err := c.call(ctx, "search.messages", params, &resp); err != nil {
		return nil, err
	}

	return &SearchResults{Total: resp.Messages.Total, Matches: resp.Messages.Matches}, nil
}

// GetUserInfo returns profile details for a user ID.
func (c *Client) GetUserInfo(ctx context.Context, user string) (*User, error) {
	params := url.Values{"user": {user}}

	var resp struct {
		apiResponse
		User User `json:"user"`
	}
	if err := c.call(ctx, "users.info", params, &resp); err != nil {
		return nil, err
	}

	return &resp.User, nil
}

// ListUsers returns a page of workspace members. A non-empty returned
// cursor means more pages exist.
func (c *Client) ListUsers(ctx context.Context, limit int, cursor string) ([]User, string, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	var resp struct {
		apiResponse
		Members          []User           `json:"members"`
		ResponseMetadata responseMetadata `json:"response_metadata"`
	}
	if err := c.call(ctx, "users.list", params, &resp); err != nil {
		return nil, "", err
	}

	return resp.Members, resp.ResponseMetadata.NextCursor, nil
}

// AddReaction adds an emoji reaction (by name, without colons) to the
// message identified by channel and timestamp.
func (c *Client) AddReaction(ctx context.Context, channel, timestamp, name string) error {
	params := url.Values{
		"channel":   {channel},
		"timestamp": {timestamp},
		"name":      {name},
	}

	var resp struct {
		apiResponse
	}

	return c.call(ctx, "reactions.add", params, &resp)
}
