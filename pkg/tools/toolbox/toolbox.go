package toolbox

import (
	"fmt"
	"slices"
)

// ToolBox is an in-memory catalog of tools. It is populated once at startup
// and read-only afterwards, so concurrent lookups and listings need no
// synchronization. Enumeration order is registration order.
type ToolBox struct {
	tools map[string]Tool
	order []string
}

// New creates a new ToolBox ready for use.
func New() *ToolBox {
	return &ToolBox{
		tools: make(map[string]Tool),
	}
}

// Register adds one or more tools to the ToolBox. A tool with an empty name,
// a nil handler, or a name that is already registered is a configuration
// error: nothing after the offending tool is registered and an error is
// returned. Name collisions are resolved at build time, never at call time.
func (tb *ToolBox) Register(tools ...Tool) error {
	for _, t := range tools {
		if t.Name == "" {
			return fmt.Errorf("toolbox: register: tool name is required")
		}
		if t.Handler == nil {
			return fmt.Errorf("toolbox: register %q: handler is required", t.Name)
		}
		if _, dup := tb.tools[t.Name]; dup {
			return fmt.Errorf("toolbox: register %q: duplicate tool name", t.Name)
		}

		tb.tools[t.Name] = t
		tb.order = append(tb.order, t.Name)
	}

	return nil
}

// Get returns a tool by name and a boolean indicating whether it was found.
func (tb *ToolBox) Get(name string) (Tool, bool) {
	t, ok := tb.tools[name]
	return t, ok
}

// Merge registers all tools from another ToolBox into this one, preserving
// the other's registration order. A name collision is an error, as with
// Register.
func (tb *ToolBox) Merge(other *ToolBox) error {
	for _, name := range other.order {
		if err := tb.Register(other.tools[name]); err != nil {
			return err
		}
	}

	return nil
}

// Len returns the number of registered tools.
func (tb *ToolBox) Len() int {
	return len(tb.tools)
}

// Tools returns all registered tools in registration order. An empty catalog
// yields an empty slice, not nil.
func (tb *ToolBox) Tools() []Tool {
	result := make([]Tool, 0, len(tb.order))
	for _, name := range tb.order {
		result = append(result, tb.tools[name])
	}

	return result
}

// Filter returns a new ToolBox containing only the named tools, preserving
// this ToolBox's registration order. Names not present are skipped. An empty
// or nil names slice means no filtering and returns the receiver unchanged.
func (tb *ToolBox) Filter(names []string) *ToolBox {
	if len(names) == 0 {
		return tb
	}

	filtered := New()
	for _, name := range tb.order {
		if !slices.Contains(names, name) {
			continue
		}
		// Registration order in tb guarantees no duplicates.
		_ = filtered.Register(tb.tools[name])
	}

	return filtered
}
