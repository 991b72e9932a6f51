package text

import (
	"errors"
	"fmt"
)

// ErrInvalidEncoding indicates content is not valid UTF-8.
var ErrInvalidEncoding = errors.New("content is not valid UTF-8")

// DecodeError reports where decoding failed.
type DecodeError struct {
	// Offset is the byte offset of the first invalid sequence.
	Offset int

	// Charset is a best-effort guess at the actual encoding, if known.
	Charset string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Charset != "" {
		return fmt.Sprintf("%s: invalid byte sequence at offset %d (looks like %s)", ErrInvalidEncoding, e.Offset, e.Charset)
	}
	return fmt.Sprintf("%s: invalid byte sequence at offset %d", ErrInvalidEncoding, e.Offset)
}

// Unwrap lets errors.Is match ErrInvalidEncoding.
func (e *DecodeError) Unwrap() error {
	return ErrInvalidEncoding
}
