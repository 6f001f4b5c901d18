package browser

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/james-see/midibrowser/pkg/export"
	"github.com/james-see/midibrowser/pkg/smf"
)

// DefaultExportPath is used when Options.ExportPath is empty
const DefaultExportPath = export.DefaultFilename

// File is the root node: a MIDI file whose children are its chunks
type File struct {
	Path string
	src  *smf.Source
	opts Options
}

// Open reads the file at path
func Open(path string, opts Options) (*File, error) {
	src, err := smf.Open(path)
	if err != nil {
		return nil, err
	}
	return &File{Path: path, src: src, opts: opts}, nil
}

// NewFile wraps data already in memory. name is only used for display.
func NewFile(name string, data []byte, opts Options) *File {
	return &File{Path: name, src: smf.NewSource(data), opts: opts}
}

func (f *File) Describe() string {
	return filepath.Base(f.Path)
}

func (f *File) Properties() []Property {
	return []Property{
		{Key: "Path", Value: f.Path},
		{Key: "Size", Value: f.src.Len()},
	}
}

// Items scans the chunks. Every call starts a fresh scan.
func (f *File) Items() []Node {
	var items []Node
	track := 0
	s := smf.NewChunkScanner(f.src, f.opts.decodeOptions()...)
	for s.Next() {
		c := s.Chunk()
		switch c.Kind() {
		case smf.KindHeader:
			items = append(items, &HeaderChunk{file: f, chunk: c})
		case smf.KindTrack:
			items = append(items, &TrackChunk{file: f, chunk: c, index: track})
			track++
		default:
			items = append(items, &UnknownChunk{chunk: c})
		}
	}
	if err := s.Err(); err != nil {
		items = append(items, &ErrorNode{Err: err})
	}
	return items
}

// Tracks returns the MTrk chunks in file order, stopping at the first scan error
func (f *File) Tracks() ([]*TrackChunk, error) {
	var tracks []*TrackChunk
	s := smf.NewChunkScanner(f.src, f.opts.decodeOptions()...)
	for s.Next() {
		if c := s.Chunk(); c.Kind() == smf.KindTrack {
			tracks = append(tracks, &TrackChunk{file: f, chunk: c, index: len(tracks)})
		}
	}
	return tracks, s.Err()
}

// Track returns the track with the given zero-based index
func (f *File) Track(index int) (*TrackChunk, error) {
	tracks, err := f.Tracks()
	if index >= 0 && index < len(tracks) {
		return tracks[index], nil
	}
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("track %d not found (file has %d tracks)", index, len(tracks))
}

// HeaderChunk is an MThd chunk
type HeaderChunk struct {
	file  *File
	chunk smf.Chunk
}

// Header decodes the chunk body
func (h *HeaderChunk) Header() (smf.Header, error) {
	return smf.DecodeHeader(h.file.src, h.chunk)
}

func (h *HeaderChunk) Describe() string {
	if _, err := h.Header(); err != nil {
		return fmt.Sprintf("%s (%v)", smf.TagHeader, err)
	}
	return smf.TagHeader
}

func (h *HeaderChunk) Properties() []Property {
	hdr, err := h.Header()
	if err != nil {
		return []Property{{Key: "Error", Value: err.Error()}}
	}
	return []Property{
		{Key: "Format", Value: hdr.Format},
		{Key: "Tracks", Value: hdr.Tracks},
		{Key: "Division", Value: uint16(hdr.Division)},
		{Key: "Timing", Value: hdr.Division.String()},
	}
}

// TrackChunk is an MTrk chunk; its children are its events
type TrackChunk struct {
	file  *File
	chunk smf.Chunk
	index int
}

// Index returns the position of the track among the file's tracks
func (t *TrackChunk) Index() int {
	return t.index
}

// Events returns a fresh reader over the track
func (t *TrackChunk) Events() *smf.TrackReader {
	return smf.NewTrackReader(t.file.src, t.chunk, t.file.opts.decodeOptions()...)
}

func (t *TrackChunk) Describe() string {
	return smf.TagTrack
}

func (t *TrackChunk) Properties() []Property {
	return []Property{
		{Key: "Index", Value: t.index},
		{Key: "Offset", Value: t.chunk.Offset},
		{Key: "Length", Value: t.chunk.Length},
	}
}

func (t *TrackChunk) Items() []Node {
	var items []Node
	r := t.Events()
	for r.Next() {
		items = append(items, &EventNode{Event: r.Event(), Time: r.Time()})
	}
	if err := r.Err(); err != nil {
		items = append(items, &ErrorNode{Err: err})
	}
	return items
}

func (t *TrackChunk) Actions() []string {
	return []string{ActionExport}
}

// Execute runs a named action. Export writes to Options.ExportPath.
func (t *TrackChunk) Execute(action string) error {
	switch action {
	case ActionExport:
		return export.WriteFile(t.file.opts.exportPath(), t.Events())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// ExportTo writes the track's export records to w
func (t *TrackChunk) ExportTo(w io.Writer) error {
	return export.Write(w, t.Events())
}

// UnknownChunk is any chunk other than MThd and MTrk. Only its tag is shown.
type UnknownChunk struct {
	chunk smf.Chunk
}

func (u *UnknownChunk) Describe() string {
	return u.chunk.Type
}
