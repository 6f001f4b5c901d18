package smf

import (
	"errors"
	"fmt"
)

// Decoding errors. All of them are terminal for the decode pass that
// returned them; other chunks and tracks of the same Source are unaffected.
var (
	ErrTruncatedStream               = errors.New("smf: truncated stream")
	ErrTruncatedChunkHeader          = errors.New("smf: truncated chunk header")
	ErrTruncatedHeader               = errors.New("smf: truncated header")
	ErrTruncatedEvent                = errors.New("smf: truncated event")
	ErrQuantityOverflow              = errors.New("smf: variable-length quantity exceeds 63 bits")
	ErrRunningStatusWithNoPriorEvent = errors.New("smf: running status with no prior event")
	ErrChunkLengthExceedsStream      = errors.New("smf: chunk length exceeds stream")
	ErrUnsupportedStatus             = errors.New("smf: unsupported status byte")
)

// DecodeError records where in the byte stream a decode pass failed.
type DecodeError struct {
	Op     string // "chunk", "header" or "event"
	Offset int64  // absolute offset of the chunk or event being decoded
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
