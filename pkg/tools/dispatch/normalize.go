package dispatch

import "fmt"

// unknownError is the fallback message for failures that carry no usable
// description of their own.
const unknownError = "unknown error"

// NotFoundError reports a call to a tool name with no registration.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Tool '%s' not found", e.Name)
}

// MalformedRequestError reports a request that was rejected before the tool
// handler ran: a missing tool name, or arguments that failed validation
// against the tool's input schema.
type MalformedRequestError struct {
	Tool string
	Err  error
}

func (e *MalformedRequestError) Error() string {
	if e.Tool == "" {
		return fmt.Sprintf("Invalid request: %v", e.Err)
	}

	return fmt.Sprintf("Invalid arguments for tool '%s': %v", e.Tool, e.Err)
}

func (e *MalformedRequestError) Unwrap() error { return e.Err }

// Normalize converts any failure value into a non-empty, human-readable
// message suitable for a client-visible envelope. It is total: it never
// panics and never returns an empty string, whatever the input — an error,
// a plain string, nil, or an arbitrary value recovered from a panic. It
// never emits stack traces or other internal diagnostics.
func Normalize(v any) (msg string) {
	defer func() {
		if recover() != nil || msg == "" {
			msg = unknownError
		}
	}()

	switch f := v.(type) {
	case nil:
		return ""
	case error:
		return f.Error()
	case string:
		return f
	case fmt.Stringer:
		return f.String()
	default:
		return fmt.Sprintf("%v", f)
	}
}
