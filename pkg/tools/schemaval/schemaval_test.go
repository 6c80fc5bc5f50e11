package schemaval

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomcliadepter/slack-sub004/pkg/tools/dispatch"
	"github.com/atomcliadepter/slack-sub004/pkg/tools/toolbox"
)

func nopHandler(_ context.Context, _ json.RawMessage) (string, error) {
	return "", nil
}

func messageTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "slack_post_message",
		Description: "Posts a message to a channel",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"channel": {"type": "string"},
				"text": {"type": "string"},
				"thread_ts": {"type": "string"}
			},
			"required": ["channel", "text"]
		}`),
		Handler: nopHandler,
	}
}

func TestValidateConforming(t *testing.T) {
	v := New()

	err := v.Validate(messageTool(), json.RawMessage(`{"channel":"C123","text":"hi"}`))
	assert.NoError(t, err)
}

func TestValidateMissingRequired(t *testing.T) {
	v := New()

	err := v.Validate(messageTool(), json.RawMessage(`{"channel":"C123"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestValidateWrongType(t *testing.T) {
	v := New()

	err := v.Validate(messageTool(), json.RawMessage(`{"channel":"C123","text":42}`))
	assert.Error(t, err)
}

func TestValidateInvalidJSONArguments(t *testing.T) {
	v := New()

	err := v.Validate(messageTool(), json.RawMessage(`{"channel":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestValidateNoSchemaAcceptsAnything(t *testing.T) {
	v := New()
	tool := toolbox.Tool{Name: "free-form", Handler: nopHandler}

	assert.NoError(t, v.Validate(tool, json.RawMessage(`{"whatever":true}`)))
	assert.NoError(t, v.Validate(tool, json.RawMessage(`"just a string"`)))
}

func TestValidateBrokenSchema(t *testing.T) {
	v := New()
	tool := toolbox.Tool{
		Name:        "broken",
		InputSchema: json.RawMessage(`{"type":`),
		Handler:     nopHandler,
	}

	err := v.Validate(tool, json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input schema")
}

func TestValidateCachesCompiledSchema(t *testing.T) {
	v := New()
	tool := messageTool()

	require.NoError(t, v.Validate(tool, json.RawMessage(`{"channel":"C1","text":"a"}`)))
	require.NoError(t, v.Validate(tool, json.RawMessage(`{"channel":"C2","text":"b"}`)))

	v.mu.Lock()
	defer v.mu.Unlock()
	assert.Len(t, v.cache, 1)
}

// End-to-end through the dispatcher: a schema rejection becomes a malformed-
// request error envelope and the handler never runs.
func TestValidatorWiredIntoDispatcher(t *testing.T) {
	invoked := false
	tb := toolbox.New()
	tool := messageTool()
	tool.Handler = func(_ context.Context, _ json.RawMessage) (string, error) {
		invoked = true
		return "sent", nil
	}
	require.NoError(t, tb.Register(tool))

	d := dispatch.New(tb, dispatch.WithValidator(New()))

	res := d.Dispatch(context.Background(), dispatch.Request{
		Name:      "slack_post_message",
		Arguments: json.RawMessage(`{"text":"no channel"}`),
	})

	assert.True(t, res.IsError)
	assert.Contains(t, res.Content, "Invalid arguments for tool 'slack_post_message'")
	assert.False(t, invoked)

	res = d.Dispatch(context.Background(), dispatch.Request{
		Name:      "slack_post_message",
		Arguments: json.RawMessage(`{"channel":"C123","text":"hi"}`),
	})

	assert.False(t, res.IsError)
	assert.Equal(t, "sent", res.Content)
}
