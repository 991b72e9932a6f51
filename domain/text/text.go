// Package text provides character-addressed views over UTF-8 file content.
//
// Offsets and lengths are counted in characters (Unicode code points), never
// bytes, so slicing a Document cannot split a multi-byte sequence.
package text

import (
	"strings"
	"unicode/utf8"
)

// PadRune is the character used to extend a document to a larger length.
const PadRune = ' '

// Document is decoded UTF-8 text.
type Document struct {
	runes []rune
}

// Decode validates data as UTF-8 and returns its document.
func Decode(data []byte) (Document, error) {
	if !utf8.Valid(data) {
		return Document{}, &DecodeError{Offset: invalidOffset(data)}
	}
	return Document{runes: []rune(string(data))}, nil
}

// FromString builds a document from an already valid string.
func FromString(s string) Document {
	return Document{runes: []rune(s)}
}

// invalidOffset returns the byte offset of the first invalid sequence.
func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}

// Len returns the length in characters.
func (d Document) Len() int {
	return len(d.runes)
}

// String returns the full content.
func (d Document) String() string {
	return string(d.runes)
}

// Chunk returns up to size characters starting at offset.
// An offset at or past the end yields an empty string.
func (d Document) Chunk(offset, size int) string {
	if offset < 0 || size <= 0 || offset >= len(d.runes) {
		return ""
	}
	end := offset + size
	if end > len(d.runes) || end < offset {
		end = len(d.runes)
	}
	return string(d.runes[offset:end])
}

// Prefix returns the first n characters, or the whole document if shorter.
func (d Document) Prefix(n int) string {
	if n <= 0 {
		return ""
	}
	if n >= len(d.runes) {
		return string(d.runes)
	}
	return string(d.runes[:n])
}

// Splice keeps the first offset characters and appends data after them.
// Content at or beyond offset is discarded.
func (d Document) Splice(offset int, data string) string {
	return d.Prefix(offset) + data
}

// Resize truncates the document to length characters, or pads it with
// PadRune up to length.
func (d Document) Resize(length int) string {
	if length <= len(d.runes) {
		return d.Prefix(length)
	}
	var b strings.Builder
	b.Grow(len(d.runes) + length)
	b.WriteString(string(d.runes))
	b.WriteString(strings.Repeat(string(PadRune), length-len(d.runes)))
	return b.String()
}
