package smf

import (
	"bytes"
	"reflect"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	gsmf "gitlab.com/gomidi/midi/v2/smf"
)

// The example file from the SMF section of the MIDI specification
var specExample = []byte{
	'M', 'T', 'h', 'd', 0, 0, 0, 6,
	0, 1, // format 1
	0, 4, // four tracks
	0, 0x60, // 96 ticks per quarter note

	'M', 'T', 'r', 'k', 0, 0, 0, 0x14,
	0, 0xFF, 0x58, 4, 4, 2, 0x18, 8,
	0, 0xFF, 0x51, 3, 7, 0xA1, 0x20,
	0x83, 0, 0xFF, 0x2F, 0,

	'M', 'T', 'r', 'k', 0, 0, 0, 0x10,
	0, 0xC0, 5,
	0x81, 0x40, 0x90, 0x4C, 0x20,
	0x81, 0x40, 0x4C, 0,
	0, 0xFF, 0x2F, 0,

	'M', 'T', 'r', 'k', 0, 0, 0, 0x0F,
	0, 0xC1, 0x2E,
	0x60, 0x91, 0x43, 0x40,
	0x82, 0x20, 0x43, 0,
	0, 0xFF, 0x2F, 0,

	'M', 'T', 'r', 'k', 0, 0, 0, 0x15,
	0, 0xC2, 0x46,
	0, 0x92, 0x30, 0x60,
	0, 0x3C, 0x60,
	0x83, 0, 0x30, 0,
	0, 0x3C, 0,
	0, 0xFF, 0x2F, 0,
}

func TestSpecExampleFile(t *testing.T) {
	src := NewSource(specExample)
	chunks, err := ReadChunks(src)
	if err != nil {
		t.Fatalf("ReadChunks() error = %v", err)
	}
	if len(chunks) != 5 {
		t.Fatalf("ReadChunks() = %d chunks, want 5", len(chunks))
	}

	h, err := DecodeHeader(src, chunks[0])
	if err != nil {
		t.Fatalf("DecodeHeader() error = %v", err)
	}
	if h.Format != 1 || h.Tracks != 4 || h.Division.TicksPerQuarterNote() != 96 {
		t.Errorf("DecodeHeader() = %+v", h)
	}

	eot := EndOfTrack{Data: []byte{}}
	expected := [][]Event{
		{
			TimeSignature{Numerator: 4, Denominator: 2, ClocksPerTick: 0x18, ThirtySecondNotesPerQuarter: 8},
			SetTempo{MicrosecondsPerQuarter: 500000},
			EndOfTrack{Delta: 384, Data: []byte{}},
		},
		{
			ProgramChange{Channel: 0, Patch: 5},
			NoteOn{Delta: 192, Channel: 0, Key: 0x4C, Velocity: 0x20},
			NoteOn{Delta: 192, Channel: 0, Key: 0x4C, Velocity: 0},
			eot,
		},
		{
			ProgramChange{Channel: 1, Patch: 0x2E},
			NoteOn{Delta: 96, Channel: 1, Key: 0x43, Velocity: 0x40},
			NoteOn{Delta: 288, Channel: 1, Key: 0x43, Velocity: 0},
			eot,
		},
		{
			ProgramChange{Channel: 2, Patch: 0x46},
			NoteOn{Channel: 2, Key: 0x30, Velocity: 0x60},
			NoteOn{Channel: 2, Key: 0x3C, Velocity: 0x60},
			NoteOn{Delta: 384, Channel: 2, Key: 0x30, Velocity: 0},
			NoteOn{Channel: 2, Key: 0x3C, Velocity: 0},
			eot,
		},
	}

	for i, c := range chunks[1:] {
		events, err := ReadTrack(src, c)
		if err != nil {
			t.Fatalf("track %d: ReadTrack() error = %v", i, err)
		}
		if !reflect.DeepEqual(events, expected[i]) {
			t.Errorf("track %d = %v, want %v", i, events, expected[i])
		}
	}
}

func TestGomidiWrittenFile(t *testing.T) {
	s := gsmf.New()
	s.TimeFormat = gsmf.MetricTicks(480)

	var tr gsmf.Track
	tr.Add(0, gsmf.Message([]byte{0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20}))
	tr.Add(0, midi.NoteOn(1, 60, 100))
	tr.Add(240, midi.NoteOn(1, 62, 90))
	tr.Add(10, midi.ControlChange(1, 7, 90))
	tr.Add(0, midi.ControlChange(1, 123, 0))
	tr.Close(0)
	if err := s.Add(tr); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}

	src := NewSource(buf.Bytes())
	chunks, err := ReadChunks(src)
	if err != nil {
		t.Fatalf("ReadChunks() error = %v", err)
	}
	if len(chunks) != 2 || chunks[0].Kind() != KindHeader || chunks[1].Kind() != KindTrack {
		t.Fatalf("ReadChunks() = %v", chunks)
	}

	h, err := DecodeHeader(src, chunks[0])
	if err != nil {
		t.Fatalf("DecodeHeader() error = %v", err)
	}
	if h.Tracks != 1 || h.Division.TicksPerQuarterNote() != 480 {
		t.Errorf("DecodeHeader() = %+v", h)
	}

	events, err := ReadTrack(src, chunks[1])
	if err != nil {
		t.Fatalf("ReadTrack() error = %v", err)
	}
	expected := []Event{
		SetTempo{MicrosecondsPerQuarter: 500000},
		NoteOn{Channel: 1, Key: 60, Velocity: 100},
		NoteOn{Delta: 240, Channel: 1, Key: 62, Velocity: 90},
		ControlChange{Delta: 10, Channel: 1, Controller: 7, Value: 90},
		ChannelMode{Channel: 1, Mode: AllNotesOff, Value: 0},
		EndOfTrack{Data: []byte{}},
	}
	if !reflect.DeepEqual(events, expected) {
		t.Errorf("ReadTrack() = %v, want %v", events, expected)
	}
}
