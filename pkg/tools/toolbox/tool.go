package toolbox

import (
	"context"
	"encoding/json"
)

// Handler executes a tool with the given JSON arguments and returns a
// serialized text result. The handler may perform I/O and honors ctx for
// cancellation; the dispatch layer imposes no timeout of its own.
type Handler func(ctx context.Context, input json.RawMessage) (string, error)

// Tool represents an executable tool with a name, description, JSON Schema,
// and handler. Tools are immutable once registered in a ToolBox.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}
