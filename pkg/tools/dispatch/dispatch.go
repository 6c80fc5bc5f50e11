// Package dispatch resolves tool calls against a toolbox catalog, executes
// them, and shapes every outcome into a single response envelope. Dispatch
// is total: unknown names, rejected arguments, handler errors, and handler
// panics all become error envelopes — nothing originating from a single
// call propagates past the dispatcher.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atomcliadepter/slack-sub004/pkg/tools/toolbox"
)

// emptyArguments substitutes for an absent arguments mapping.
var emptyArguments = json.RawMessage("{}")

// Validator checks a tool call's arguments against the tool's input schema
// before the handler runs. A non-nil error marks the request malformed and
// the handler is never invoked.
type Validator interface {
	Validate(tool toolbox.Tool, args json.RawMessage) error
}

// Request is a single tool invocation: a tool name plus a JSON arguments
// object. Nil or empty Arguments is treated as the empty object.
type Request struct {
	Name      string
	Arguments json.RawMessage
}

// Result is the terminal envelope for a Request. Content holds the
// serialized payload: the handler's output on success, or a JSON error
// description when IsError is set.
type Result struct {
	Content string
	IsError bool
}

// errorPayload is the client-visible error description serialized into an
// error Result's Content.
type errorPayload struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Tool      string `json:"tool"`
	Timestamp string `json:"timestamp"`
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithValidator sets the argument validator applied between resolution and
// execution. Without one, argument validation is left to each tool.
func WithValidator(v Validator) Option {
	return func(d *Dispatcher) { d.validator = v }
}

// WithLogger sets the logger for per-call diagnostics. Defaults to a nop
// logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// Dispatcher answers call requests against a ToolBox. The ToolBox must be
// fully populated before the first Dispatch and never mutated afterwards;
// the Dispatcher itself is stateless per request and safe for concurrent
// use.
type Dispatcher struct {
	box       *toolbox.ToolBox
	validator Validator
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a Dispatcher backed by the given ToolBox.
func New(box *toolbox.ToolBox, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		box:    box,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// List returns every registered tool in catalog order. An empty catalog is
// a valid empty listing, not an error.
func (d *Dispatcher) List() []toolbox.Tool {
	return d.box.Tools()
}

// Dispatch resolves and executes a single tool call, returning exactly one
// Result. Every failure mode is normalized into an error envelope tagged
// with the requested tool name.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Result {
	callID := uuid.NewString()

	args := req.Arguments
	if len(args) == 0 {
		args = emptyArguments
	}

	if req.Name == "" {
		d.logger.Warn("request missing tool name", zap.String("call_id", callID))

		return d.errorResult(req.Name, &MalformedRequestError{Err: errors.New("tool name is required")})
	}

	t, ok := d.box.Get(req.Name)
	if !ok {
		d.logger.Warn("tool not found",
			zap.String("call_id", callID),
			zap.String("tool", req.Name),
		)

		return d.errorResult(req.Name, &NotFoundError{Name: req.Name})
	}

	if d.validator != nil {
		if err := d.validator.Validate(t, args); err != nil {
			d.logger.Warn("arguments rejected",
				zap.String("call_id", callID),
				zap.String("tool", req.Name),
				zap.Error(err),
			)

			return d.errorResult(req.Name, &MalformedRequestError{Tool: req.Name, Err: err})
		}
	}

	start := d.now()

	content, err := d.invoke(ctx, t, args)
	if err != nil {
		d.logger.Warn("tool call failed",
			zap.String("call_id", callID),
			zap.String("tool", req.Name),
			zap.Duration("elapsed", d.now().Sub(start)),
			zap.Error(err),
		)

		return d.errorResult(req.Name, err)
	}

	d.logger.Debug("tool call succeeded",
		zap.String("call_id", callID),
		zap.String("tool", req.Name),
		zap.Duration("elapsed", d.now().Sub(start)),
	)

	return Result{Content: content}
}

// invoke runs the handler with a recovery barrier so a panicking tool
// surfaces as an ordinary failure instead of taking down the process.
func (d *Dispatcher) invoke(ctx context.Context, t toolbox.Tool, args json.RawMessage) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("tool handler panicked",
				zap.String("tool", t.Name),
				zap.Any("panic", r),
			)
			err = errors.New(Normalize(r))
		}
	}()

	return t.Handler(ctx, args)
}

// errorResult builds an error envelope from any failure value.
func (d *Dispatcher) errorResult(tool string, failure any) Result {
	payload := errorPayload{
		Success:   false,
		Error:     Normalize(failure),
		Tool:      tool,
		Timestamp: d.now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		// Unreachable: errorPayload holds only strings and a bool.
		data = []byte(`{"success":false,"error":"` + unknownError + `"}`)
	}

	return Result{Content: string(data), IsError: true}
}
