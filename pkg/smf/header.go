package smf

import (
	"encoding/binary"
	"fmt"
)

const headerSize = 6

// Header is the body of an MThd chunk
type Header struct {
	Format   uint16
	Tracks   uint16
	Division Division
}

func (h Header) String() string {
	return fmt.Sprintf("Format %d, %d track(s), %s", h.Format, h.Tracks, h.Division)
}

// Division is the timing field of the header. With the top bit clear it
// counts ticks per quarter note, otherwise it holds an SMPTE frame rate and
// ticks per frame.
type Division uint16

// TicksPerQuarterNote returns the metrical resolution, or 0 for SMPTE timing
func (d Division) TicksPerQuarterNote() uint16 {
	if d&0x8000 != 0 {
		return 0
	}
	return uint16(d)
}

// SMPTE returns frames per second and ticks per frame, or 0, 0 for metrical timing
func (d Division) SMPTE() (fps uint8, ticksPerFrame uint8) {
	if d&0x8000 == 0 {
		return 0, 0
	}
	// frames per second is stored as a negative two's complement byte
	return uint8(-int8(d >> 8)), uint8(d & 0xFF)
}

func (d Division) String() string {
	if d&0x8000 == 0 {
		return fmt.Sprintf("%d ticks per quarter note", uint16(d))
	}
	fps, tpf := d.SMPTE()
	return fmt.Sprintf("%d frames per second, %d ticks per frame", fps, tpf)
}

// DecodeHeader reads the three big-endian fields following the prologue of
// chunk c. Only the six bytes themselves must be present; the declared chunk
// length is not checked.
func DecodeHeader(src *Source, c Chunk) (Header, error) {
	off := c.DataOffset()
	if src.Len()-off < headerSize {
		return Header{}, &DecodeError{Op: "header", Offset: c.Offset, Err: ErrTruncatedHeader}
	}
	b := src.data[off : off+headerSize]
	return Header{
		Format:   binary.BigEndian.Uint16(b[0:2]),
		Tracks:   binary.BigEndian.Uint16(b[2:4]),
		Division: Division(binary.BigEndian.Uint16(b[4:6])),
	}, nil
}
