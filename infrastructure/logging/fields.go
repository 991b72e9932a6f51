package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// ToolName adds a tool name field.
func ToolName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("tool", name)
	}
}

// CallID adds a call ID field.
func CallID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("call_id", id)
	}
}

// Source adds the calling surface, such as mcp or cli.
func Source(s string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("source", s)
	}
}

// Path adds a filesystem path field.
func Path(p string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("path", p)
	}
}

// Operation adds an operation field.
func Operation(op string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("operation", op)
	}
}

// Offset adds a character offset field.
func Offset(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("offset", n)
	}
}

// Size adds a size field in bytes or characters.
func Size(n int64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("size", n)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// Attempt adds a retry attempt field.
func Attempt(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("attempt", n)
	}
}

// Count adds a count field.
func Count(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("count", n)
	}
}

// ErrorField adds an error field. A nil error adds nothing.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}

// Bool adds a boolean field with custom key.
func Bool(key string, value bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool(key, value)
	}
}
