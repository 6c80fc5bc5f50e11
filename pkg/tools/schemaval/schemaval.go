// Package schemaval validates tool-call arguments against each tool's
// declared JSON Schema. It plugs into the dispatcher as the step between
// resolving a tool and invoking its handler, so malformed requests are
// rejected before any tool code runs.
package schemaval

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/atomcliadepter/slack-sub004/pkg/tools/dispatch"
	"github.com/atomcliadepter/slack-sub004/pkg/tools/toolbox"
)

var _ dispatch.Validator = (*Validator)(nil)

// Validator compiles each tool's input schema on first use and caches the
// compiled form by tool name. Tools are immutable after registration, so a
// cached schema never goes stale. Safe for concurrent use.
type Validator struct {
	mu    sync.Mutex
	cache map[string]*jsonschema.Schema
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{cache: make(map[string]*jsonschema.Schema)}
}

// Validate checks args against the tool's input schema. A tool without a
// schema accepts anything. Arguments that are not valid JSON, or that do
// not conform to the schema, are an error.
func (v *Validator) Validate(tool toolbox.Tool, args json.RawMessage) error {
	if len(tool.InputSchema) == 0 {
		return nil
	}

	sch, err := v.compiled(tool)
	if err != nil {
		return err
	}

	var decoded any
	if err := json.Unmarshal(args, &decoded); err != nil {
		return fmt.Errorf("arguments are not valid JSON: %w", err)
	}

	if err := sch.Validate(decoded); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// compiled returns the cached compiled schema for the tool, compiling it on
// first use.
func (v *Validator) compiled(tool toolbox.Tool) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if sch, ok := v.cache[tool.Name]; ok {
		return sch, nil
	}

	var doc any
	if err := json.Unmarshal(tool.InputSchema, &doc); err != nil {
		return nil, fmt.Errorf("schemaval: tool %q: invalid input schema: %w", tool.Name, err)
	}

	resource := tool.Name + ".schema.json"

	c := jsonschema.NewCompiler()
	if err := c.AddResource(resource, doc); err != nil {
		return nil, fmt.Errorf("schemaval: tool %q: add schema resource: %w", tool.Name, err)
	}

	sch, err := c.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("schemaval: tool %q: compile schema: %w", tool.Name, err)
	}

	v.cache[tool.Name] = sch

	return sch, nil
}
