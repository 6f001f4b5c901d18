package smf

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadQuantity(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint64
	}{
		{"zero", []byte{0x00}, 0},
		{"single byte max", []byte{0x7F}, 127},
		{"two bytes min", []byte{0x81, 0x00}, 128},
		{"two bytes max", []byte{0xFF, 0x7F}, 0x3FFF},
		{"three bytes", []byte{0x81, 0x80, 0x00}, 0x4000},
		{"four bytes", []byte{0x81, 0x80, 0x80, 0x00}, 0x200000},
		{"four bytes max", []byte{0xFF, 0xFF, 0xFF, 0x7F}, 0x0FFFFFFF},
		{"nine bytes max", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F}, MaxQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.data)
			result, err := ReadQuantity(r)
			if err != nil {
				t.Fatalf("ReadQuantity() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("ReadQuantity() = %d, want %d", result, tt.expected)
			}
			if r.Len() != 0 {
				t.Errorf("ReadQuantity() left %d unread bytes", r.Len())
			}
		})
	}
}

func TestReadQuantityStopsAtTerminator(t *testing.T) {
	r := bytes.NewReader([]byte{0x83, 0x00, 0xFF, 0x2F})
	q, err := ReadQuantity(r)
	if err != nil {
		t.Fatalf("ReadQuantity() error = %v", err)
	}
	if q != 384 {
		t.Errorf("ReadQuantity() = %d, want 384", q)
	}
	if r.Len() != 2 {
		t.Errorf("ReadQuantity() consumed %d bytes, want 2", 4-r.Len())
	}
}

func TestReadQuantityErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected error
	}{
		{"empty", []byte{}, ErrTruncatedStream},
		{"missing terminator", []byte{0x81}, ErrTruncatedStream},
		{"long chain cut short", []byte{0x80, 0x80, 0x80, 0x80, 0x80}, ErrTruncatedStream},
		{"ten bytes", []byte{0x81, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00}, ErrQuantityOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadQuantity(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.expected) {
				t.Errorf("ReadQuantity() error = %v, want %v", err, tt.expected)
			}
		})
	}
}

func TestAppendQuantity(t *testing.T) {
	tests := []struct {
		value    uint64
		expected []byte
	}{
		{0, []byte{0x00}},
		{0x40, []byte{0x40}},
		{0x7F, []byte{0x7F}},
		{0x80, []byte{0x81, 0x00}},
		{0x2000, []byte{0xC0, 0x00}},
		{0x3FFF, []byte{0xFF, 0x7F}},
		{0x100000, []byte{0xC0, 0x80, 0x00}},
		{0x0FFFFFFF, []byte{0xFF, 0xFF, 0xFF, 0x7F}},
	}

	for _, tt := range tests {
		result, err := AppendQuantity(nil, tt.value)
		if err != nil {
			t.Fatalf("AppendQuantity(%d) error = %v", tt.value, err)
		}
		if !bytes.Equal(result, tt.expected) {
			t.Errorf("AppendQuantity(%d) = % X, want % X", tt.value, result, tt.expected)
		}
	}
}

func TestAppendQuantityOverflow(t *testing.T) {
	dst := []byte{0x01}
	result, err := AppendQuantity(dst, MaxQuantity+1)
	if !errors.Is(err, ErrQuantityOverflow) {
		t.Errorf("AppendQuantity() error = %v, want %v", err, ErrQuantityOverflow)
	}
	if !bytes.Equal(result, dst) {
		t.Errorf("AppendQuantity() modified dst on error: % X", result)
	}
}

func TestQuantityRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 255, 0x3FFF, 0x4000, 1 << 21, 1<<28 - 1, 1 << 28, 1 << 32, 1<<56 + 12345, MaxQuantity - 1, MaxQuantity}

	for _, v := range values {
		encoded, err := AppendQuantity(nil, v)
		if err != nil {
			t.Fatalf("AppendQuantity(%d) error = %v", v, err)
		}
		decoded, err := ReadQuantity(bytes.NewReader(encoded))
		if err != nil {
			t.Fatalf("ReadQuantity(% X) error = %v", encoded, err)
		}
		if decoded != v {
			t.Errorf("round trip of %d = %d", v, decoded)
		}
	}
}
