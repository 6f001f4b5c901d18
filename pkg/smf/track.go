package smf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Status bytes with a dispatch of their own
const (
	statusMeta = 0xFF
	sysExStart = 0xF0
	sysExEnd   = 0xF7
)

// TrackReader yields the events of one MTrk chunk on demand. It never reads
// past the declared end of the chunk. Running status is tracked per reader,
// so a fresh reader (or Reset) always starts without a previous status.
//
//	r := smf.NewTrackReader(src, chunk)
//	for r.Next() {
//		ev := r.Event()
//		...
//	}
//	if err := r.Err(); err != nil {
//		...
//	}
type TrackReader struct {
	src   *Source
	chunk Chunk
	opts  options

	cur        cursor
	lastStatus byte
	hasStatus  bool
	time       uint64
	ev         Event
	err        error
	done       bool
}

// NewTrackReader returns a reader positioned at the first event of chunk c
func NewTrackReader(src *Source, c Chunk, opts ...Option) *TrackReader {
	r := &TrackReader{src: src, chunk: c, opts: buildOptions(opts)}
	r.Reset()
	return r
}

// Reset rewinds the reader to the first event of the chunk
func (r *TrackReader) Reset() {
	r.cur = newCursor(r.src, r.chunk.DataOffset(), r.chunk.End())
	r.lastStatus = 0
	r.hasStatus = false
	r.time = 0
	r.ev = nil
	r.err = nil
	r.done = false
}

// Next decodes the following event. It returns false once the chunk is
// exhausted, after an End of Track event, or on error.
func (r *TrackReader) Next() bool {
	if r.done {
		return false
	}
	if r.cur.remaining() <= 0 {
		r.done = true
		r.ev = nil
		return false
	}

	ev, err := r.readEvent()
	if err != nil {
		r.err = err
		r.done = true
		r.ev = nil
		return false
	}

	r.ev = ev
	r.time += ev.DeltaTime()
	if _, ok := ev.(EndOfTrack); ok {
		r.done = true
	}
	return true
}

// Event returns the event decoded by the last successful call to Next
func (r *TrackReader) Event() Event {
	return r.ev
}

// Time returns the absolute tick of the current event
func (r *TrackReader) Time() uint64 {
	return r.time
}

// Err returns the error that stopped decoding, if any
func (r *TrackReader) Err() error {
	return r.err
}

// Offset returns the absolute offset of the next unread byte
func (r *TrackReader) Offset() int64 {
	return r.cur.pos
}

// Chunk returns the chunk being decoded
func (r *TrackReader) Chunk() Chunk {
	return r.chunk
}

func (r *TrackReader) readEvent() (Event, error) {
	start := r.cur.pos

	delta, err := ReadQuantity(&r.cur)
	if err != nil {
		return nil, r.fail(start, err)
	}

	status, err := r.cur.peekByte()
	if err != nil {
		return nil, r.fail(start, err)
	}
	if status&0x80 == 0 {
		// running status: the byte is data and stays unread
		if !r.hasStatus {
			return nil, r.fail(start, ErrRunningStatusWithNoPriorEvent)
		}
		status = r.lastStatus
	} else {
		r.cur.pos++
	}

	var ev Event
	switch status {
	case statusMeta:
		ev, err = r.readMeta(delta)
	case sysExStart:
		ev, err = r.readSysEx(delta)
	default:
		ev, err = r.readChannel(delta, status)
	}
	if err != nil {
		return nil, r.fail(start, err)
	}

	r.lastStatus = status
	r.hasStatus = true
	return ev, nil
}

func (r *TrackReader) fail(offset int64, err error) error {
	switch {
	case errors.Is(err, ErrTruncatedStream):
		err = fmt.Errorf("%w: %w", ErrTruncatedEvent, err)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		err = ErrTruncatedEvent
	}
	return &DecodeError{Op: "event", Offset: offset, Err: err}
}

// payload reads a variable-length size followed by that many bytes. The
// result is a copy, so events never alias the source.
func (r *TrackReader) payload() ([]byte, error) {
	n, err := ReadQuantity(&r.cur)
	if err != nil {
		return nil, err
	}
	b, err := r.cur.next(n)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b), nil
}

func (r *TrackReader) readMeta(delta uint64) (Event, error) {
	t, err := r.cur.ReadByte()
	if err != nil {
		return nil, err
	}
	data, err := r.payload()
	if err != nil {
		return nil, err
	}
	return decodeMeta(delta, MetaType(t), data), nil
}

func (r *TrackReader) readSysEx(delta uint64) (Event, error) {
	data, err := r.payload()
	if err != nil {
		return nil, err
	}
	return SystemExclusive{Delta: delta, Data: data}, nil
}

func (r *TrackReader) readChannel(delta uint64, status byte) (Event, error) {
	kind, channel := status>>4, status&0x0F

	switch kind {
	case 0xC, 0xD:
		b, err := r.cur.next(1)
		if err != nil {
			return nil, err
		}
		if kind == 0xC {
			return ProgramChange{Delta: delta, Channel: channel, Patch: b[0]}, nil
		}
		return ChannelPressure{Delta: delta, Channel: channel, Velocity: b[0]}, nil
	case 0x8, 0x9, 0xA, 0xB, 0xE:
	default:
		if r.opts.strict {
			return nil, fmt.Errorf("%w 0x%02X", ErrUnsupportedStatus, status)
		}
	}

	b, err := r.cur.next(2)
	if err != nil {
		return nil, err
	}
	v1, v2 := b[0], b[1]

	switch kind {
	case 0x8:
		return NoteOff{Delta: delta, Channel: channel, Key: v1, Velocity: v2}, nil
	case 0x9:
		return NoteOn{Delta: delta, Channel: channel, Key: v1, Velocity: v2}, nil
	case 0xA:
		return PolyphonicKeyPressure{Delta: delta, Channel: channel, Key: v1, Velocity: v2}, nil
	case 0xB:
		if isModeController(v1) {
			return ChannelMode{Delta: delta, Channel: channel, Mode: Mode(v1), Value: v2}, nil
		}
		return ControlChange{Delta: delta, Channel: channel, Controller: v1, Value: v2}, nil
	case 0xE:
		return PitchBendChange{Delta: delta, Channel: channel, Value: uint16(v2&0x7F)<<7 | uint16(v1&0x7F)}, nil
	default:
		return UnknownChannelEvent{Delta: delta, Status: status, Data: [2]byte{v1, v2}}, nil
	}
}

// ReadTrack decodes every event of chunk c. On error it returns the events
// decoded before the failure together with the error.
func ReadTrack(src *Source, c Chunk, opts ...Option) ([]Event, error) {
	var events []Event
	r := NewTrackReader(src, c, opts...)
	for r.Next() {
		events = append(events, r.Event())
	}
	return events, r.Err()
}
