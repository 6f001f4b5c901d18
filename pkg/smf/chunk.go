// Package smf decodes Standard MIDI Files lazily: a ChunkScanner walks the
// top-level chunks, DecodeHeader reads an MThd body and a TrackReader yields
// the events of one MTrk chunk on demand.
package smf

import (
	"encoding/binary"
)

// Chunk type tags
const (
	TagHeader = "MThd"
	TagTrack  = "MTrk"
)

// tag + length
const chunkPrologue = 8

// ChunkKind classifies a chunk by its type tag
type ChunkKind int

const (
	KindUnknown ChunkKind = iota
	KindHeader
	KindTrack
)

// Chunk describes one top-level chunk without holding its body
type Chunk struct {
	Type   string // four-character type tag
	Offset int64  // offset of the type tag
	Length uint32 // declared body length
}

// Kind returns KindHeader for MThd, KindTrack for MTrk and KindUnknown otherwise
func (c Chunk) Kind() ChunkKind {
	switch c.Type {
	case TagHeader:
		return KindHeader
	case TagTrack:
		return KindTrack
	default:
		return KindUnknown
	}
}

// DataOffset returns the offset of the first body byte
func (c Chunk) DataOffset() int64 {
	return c.Offset + chunkPrologue
}

// End returns the offset just past the declared body
func (c Chunk) End() int64 {
	return c.DataOffset() + int64(c.Length)
}

func (c Chunk) String() string {
	return c.Type
}

// ChunkScanner iterates over the chunks of a Source in stream order.
//
//	s := smf.NewChunkScanner(src)
//	for s.Next() {
//		c := s.Chunk()
//		...
//	}
//	if err := s.Err(); err != nil {
//		...
//	}
type ChunkScanner struct {
	src   *Source
	opts  options
	pos   int64
	chunk Chunk
	err   error
	done  bool
}

// NewChunkScanner returns a scanner positioned at the start of src
func NewChunkScanner(src *Source, opts ...Option) *ChunkScanner {
	return &ChunkScanner{src: src, opts: buildOptions(opts)}
}

// Next advances to the following chunk. It returns false at the end of the
// stream or on error; Err tells the two apart.
func (s *ChunkScanner) Next() bool {
	if s.done {
		return false
	}
	n := s.src.Len()
	if s.pos >= n {
		s.done = true
		return false
	}
	if n-s.pos < chunkPrologue {
		return s.fail(ErrTruncatedChunkHeader)
	}

	prologue := s.src.data[s.pos : s.pos+chunkPrologue]
	c := Chunk{
		Type:   string(prologue[:4]),
		Offset: s.pos,
		Length: binary.BigEndian.Uint32(prologue[4:]),
	}

	// Bodies are opaque here; an overlong length just lands on end of stream.
	if c.End() > n {
		if s.opts.strict {
			return s.fail(ErrChunkLengthExceedsStream)
		}
		s.pos = n
	} else {
		s.pos = c.End()
	}
	s.chunk = c
	return true
}

func (s *ChunkScanner) fail(err error) bool {
	s.err = &DecodeError{Op: "chunk", Offset: s.pos, Err: err}
	s.done = true
	return false
}

// Chunk returns the chunk found by the last successful call to Next
func (s *ChunkScanner) Chunk() Chunk {
	return s.chunk
}

// Err returns the error that stopped the scan, or nil at a clean end of stream
func (s *ChunkScanner) Err() error {
	return s.err
}

// Offset returns the number of bytes consumed so far
func (s *ChunkScanner) Offset() int64 {
	return s.pos
}

// Reset rewinds the scanner to the start of the source
func (s *ChunkScanner) Reset() {
	s.pos = 0
	s.chunk = Chunk{}
	s.err = nil
	s.done = false
}

// ReadChunks scans src to the end. On error it returns the chunks found
// before the failure together with the error.
func ReadChunks(src *Source, opts ...Option) ([]Chunk, error) {
	var chunks []Chunk
	s := NewChunkScanner(src, opts...)
	for s.Next() {
		chunks = append(chunks, s.Chunk())
	}
	return chunks, s.Err()
}
