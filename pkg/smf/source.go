package smf

import (
	"fmt"
	"io"
	"os"
)

// Source is the read-only byte buffer of a Standard MIDI File. It is never
// mutated after creation, so any number of scanners and track readers may
// hold their own cursors over the same Source.
type Source struct {
	data []byte
}

// NewSource wraps data. The caller must not modify data afterwards.
func NewSource(data []byte) *Source {
	return &Source{data: data}
}

// Open reads the file at path into a new Source
func Open(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read MIDI file: %w", err)
	}
	return NewSource(data), nil
}

// Len returns the size of the source in bytes
func (s *Source) Len() int64 {
	return int64(len(s.data))
}

// cursor is a bounded read position over a Source. Reads never cross end.
type cursor struct {
	data []byte
	pos  int64
	end  int64
}

func newCursor(src *Source, start, end int64) cursor {
	if end > src.Len() {
		end = src.Len()
	}
	if start > end {
		start = end
	}
	return cursor{data: src.data, pos: start, end: end}
}

func (c *cursor) remaining() int64 {
	return c.end - c.pos
}

// ReadByte implements io.ByteReader so that ReadQuantity can consume from a
// cursor directly.
func (c *cursor) ReadByte() (byte, error) {
	if c.pos >= c.end {
		return 0, io.EOF
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) peekByte() (byte, error) {
	if c.pos >= c.end {
		return 0, io.EOF
	}
	return c.data[c.pos], nil
}

// next returns the following n bytes as a view into the source.
func (c *cursor) next(n uint64) ([]byte, error) {
	if n > uint64(c.remaining()) {
		return nil, io.ErrUnexpectedEOF
	}
	b := c.data[c.pos : c.pos+int64(n)]
	c.pos += int64(n)
	return b, nil
}
