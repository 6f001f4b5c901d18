package smf

import (
	"errors"
	"io"
)

// MaxQuantity is the largest value a variable-length quantity may carry.
const MaxQuantity = 1<<63 - 1

// nine bytes of seven bits each
const maxQuantityBytes = 9

// ReadQuantity decodes a variable-length quantity: big-endian groups of 7
// bits, every byte but the last with its top bit set.
//
// It returns ErrTruncatedStream if r runs out before the terminating byte and
// ErrQuantityOverflow if the quantity does not fit in 63 bits.
func ReadQuantity(r io.ByteReader) (uint64, error) {
	var q uint64
	for i := 0; i < maxQuantityBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return q, ErrTruncatedStream
			}
			return q, err
		}
		q = q<<7 | uint64(b&0x7F)
		if b&0x80 == 0 {
			return q, nil
		}
	}
	return q, ErrQuantityOverflow
}

// AppendQuantity appends the variable-length encoding of v to dst.
func AppendQuantity(dst []byte, v uint64) ([]byte, error) {
	if v > MaxQuantity {
		return dst, ErrQuantityOverflow
	}
	var buf [maxQuantityBytes]byte
	i := len(buf) - 1
	buf[i] = byte(v & 0x7F)
	for v >>= 7; v > 0; v >>= 7 {
		i--
		buf[i] = byte(v&0x7F) | 0x80
	}
	return append(dst, buf[i:]...), nil
}
