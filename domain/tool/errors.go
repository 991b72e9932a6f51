package tool

import "errors"

// Domain errors for the tool system.
var (
	// ErrEmptyName indicates a tool was created with an empty name.
	ErrEmptyName = errors.New("tool name cannot be empty")

	// ErrNoHandler indicates a tool was created without a handler.
	ErrNoHandler = errors.New("tool has no handler")

	// ErrToolNotFound indicates the requested tool was not found.
	ErrToolNotFound = errors.New("tool not found")

	// ErrToolExists indicates a tool with the same name already exists.
	ErrToolExists = errors.New("tool already exists")

	// ErrDuplicateParam indicates two parameters share a name.
	ErrDuplicateParam = errors.New("duplicate tool parameter")

	// ErrInvalidInput indicates the input could not be decoded or failed
	// schema validation.
	ErrInvalidInput = errors.New("invalid tool input")

	// ErrInvalidOutput indicates the output failed output schema validation.
	ErrInvalidOutput = errors.New("invalid tool output")

	// ErrExecutionTimeout indicates the tool execution timed out.
	ErrExecutionTimeout = errors.New("tool execution timed out")

	// ErrExecutionRejected indicates the executor refused to start the call,
	// for example because the concurrency limit was reached.
	ErrExecutionRejected = errors.New("tool execution rejected")

	// ErrRateLimited indicates the call rate limit was exceeded.
	ErrRateLimited = errors.New("tool rate limit exceeded")
)
