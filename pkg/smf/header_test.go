package smf

import (
	"errors"
	"testing"
)

func TestDecodeHeader(t *testing.T) {
	data := concat(chunk("MThd", 0, 1, 0, 4, 0, 0x60), chunk("MTrk"))
	src := NewSource(data)

	chunks, err := ReadChunks(src)
	if err != nil {
		t.Fatalf("ReadChunks() error = %v", err)
	}

	h, err := DecodeHeader(src, chunks[0])
	if err != nil {
		t.Fatalf("DecodeHeader() error = %v", err)
	}
	if h.Format != 1 {
		t.Errorf("Format = %d, want 1", h.Format)
	}
	if h.Tracks != 4 {
		t.Errorf("Tracks = %d, want 4", h.Tracks)
	}
	if h.Division != 96 {
		t.Errorf("Division = %d, want 96", h.Division)
	}
	if h.String() != "Format 1, 4 track(s), 96 ticks per quarter note" {
		t.Errorf("String() = %q", h.String())
	}
}

func TestDecodeHeaderIgnoresDeclaredLength(t *testing.T) {
	// declared length 2, but six bytes follow the prologue
	data := []byte{'M', 'T', 'h', 'd', 0, 0, 0, 2, 0, 0, 0, 1, 0x01, 0xE0}
	src := NewSource(data)

	h, err := DecodeHeader(src, Chunk{Type: "MThd", Offset: 0, Length: 2})
	if err != nil {
		t.Fatalf("DecodeHeader() error = %v", err)
	}
	if h.Division.TicksPerQuarterNote() != 480 {
		t.Errorf("TicksPerQuarterNote() = %d, want 480", h.Division.TicksPerQuarterNote())
	}
}

func TestDecodeHeaderTruncated(t *testing.T) {
	data := []byte{'M', 'T', 'h', 'd', 0, 0, 0, 6, 0, 1, 0, 2}
	_, err := DecodeHeader(NewSource(data), Chunk{Type: "MThd", Offset: 0, Length: 6})
	if !errors.Is(err, ErrTruncatedHeader) {
		t.Errorf("DecodeHeader() error = %v, want %v", err, ErrTruncatedHeader)
	}
}

func TestDivision(t *testing.T) {
	tests := []struct {
		name     string
		division Division
		ticks    uint16
		fps      uint8
		perFrame uint8
		label    string
	}{
		{"metrical", 0x01E0, 480, 0, 0, "480 ticks per quarter note"},
		{"smpte 25", 0xE728, 0, 25, 40, "25 frames per second, 40 ticks per frame"},
		{"smpte 30", 0xE250, 0, 30, 80, "30 frames per second, 80 ticks per frame"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.division.TicksPerQuarterNote(); got != tt.ticks {
				t.Errorf("TicksPerQuarterNote() = %d, want %d", got, tt.ticks)
			}
			fps, perFrame := tt.division.SMPTE()
			if fps != tt.fps || perFrame != tt.perFrame {
				t.Errorf("SMPTE() = %d, %d, want %d, %d", fps, perFrame, tt.fps, tt.perFrame)
			}
			if got := tt.division.String(); got != tt.label {
				t.Errorf("String() = %q, want %q", got, tt.label)
			}
		})
	}
}
