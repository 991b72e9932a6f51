package fsys

import "fmt"

// ReadTextFileChunk returns up to chunkSize characters of path starting at
// character offset. An offset past the end yields "".
func (f *FS) ReadTextFileChunk(path string, offset, chunkSize int) (string, error) {
	if offset < 0 {
		return "", fmt.Errorf("%w: offset %d", ErrInvalidArgument, offset)
	}
	if chunkSize < 0 {
		return "", fmt.Errorf("%w: chunk size %d", ErrInvalidArgument, chunkSize)
	}

	doc, err := f.readDocument(f.resolve(path))
	if err != nil {
		return "", err
	}
	return doc.Chunk(offset, chunkSize), nil
}

// WriteTextFileChunk keeps the first charOffset characters of path, appends
// data, and rewrites the file. Everything at or after charOffset is
// discarded: "abcdef" with ("XY", 3) becomes "abcXY". The file must exist.
func (f *FS) WriteTextFileChunk(path, data string, charOffset int) error {
	if charOffset < 0 {
		return fmt.Errorf("%w: offset %d", ErrInvalidArgument, charOffset)
	}

	p := f.resolve(path)
	doc, err := f.readDocument(p)
	if err != nil {
		return err
	}
	return f.rewrite(p, doc.Splice(charOffset, data))
}

// SetFileLength pads path with spaces or truncates it so that it holds
// exactly length characters. A file already of that length is not touched.
func (f *FS) SetFileLength(path string, length int) error {
	if length < 0 {
		return fmt.Errorf("%w: length %d", ErrInvalidArgument, length)
	}

	p := f.resolve(path)
	doc, err := f.readDocument(p)
	if err != nil {
		return err
	}
	if doc.Len() == length {
		return nil
	}
	return f.rewrite(p, doc.Resize(length))
}
