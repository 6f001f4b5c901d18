package smf

import (
	"fmt"
)

// Event is one decoded track event. The set of implementations is closed:
// NoteOff, NoteOn, PolyphonicKeyPressure, ControlChange, ChannelMode,
// ProgramChange, ChannelPressure, PitchBendChange, SystemExclusive,
// UnknownChannelEvent and the meta events (Text, SetTempo, TimeSignature,
// PortPrefix, EndOfTrack, MetaEvent, UnknownMeta). Consumers switch on the
// concrete type.
type Event interface {
	// DeltaTime returns the ticks elapsed since the previous event of the track
	DeltaTime() uint64
	String() string
	isEvent()
}

// NoteOff releases a key
type NoteOff struct {
	Delta    uint64
	Channel  uint8
	Key      uint8
	Velocity uint8
}

// NoteOn strikes a key
type NoteOn struct {
	Delta    uint64
	Channel  uint8
	Key      uint8
	Velocity uint8
}

// PolyphonicKeyPressure is aftertouch on a single key
type PolyphonicKeyPressure struct {
	Delta    uint64
	Channel  uint8
	Key      uint8
	Velocity uint8
}

// ControlChange sets a controller below 0x78
type ControlChange struct {
	Delta      uint64
	Channel    uint8
	Controller uint8
	Value      uint8
}

// ChannelMode is a control change on controllers 0x78-0x7F. Value is the
// second data byte as found in the stream.
type ChannelMode struct {
	Delta   uint64
	Channel uint8
	Mode    Mode
	Value   uint8
}

// ProgramChange selects a patch
type ProgramChange struct {
	Delta   uint64
	Channel uint8
	Patch   uint8
}

// ChannelPressure is aftertouch for the whole channel
type ChannelPressure struct {
	Delta    uint64
	Channel  uint8
	Velocity uint8
}

// PitchBendChange carries a 14-bit bend value, 0x2000 being centered
type PitchBendChange struct {
	Delta   uint64
	Channel uint8
	Value   uint16
}

// SystemExclusive is an F0 event. Data is the payload as stored in the file,
// usually ending with F7.
type SystemExclusive struct {
	Delta uint64
	Data  []byte
}

// UnknownChannelEvent is a status byte this decoder has no layout for. Two
// data bytes are assumed.
type UnknownChannelEvent struct {
	Delta  uint64
	Status uint8
	Data   [2]byte
}

func (e NoteOff) DeltaTime() uint64               { return e.Delta }
func (e NoteOn) DeltaTime() uint64                { return e.Delta }
func (e PolyphonicKeyPressure) DeltaTime() uint64 { return e.Delta }
func (e ControlChange) DeltaTime() uint64         { return e.Delta }
func (e ChannelMode) DeltaTime() uint64           { return e.Delta }
func (e ProgramChange) DeltaTime() uint64         { return e.Delta }
func (e ChannelPressure) DeltaTime() uint64       { return e.Delta }
func (e PitchBendChange) DeltaTime() uint64       { return e.Delta }
func (e SystemExclusive) DeltaTime() uint64       { return e.Delta }
func (e UnknownChannelEvent) DeltaTime() uint64   { return e.Delta }

func (NoteOff) isEvent()               {}
func (NoteOn) isEvent()                {}
func (PolyphonicKeyPressure) isEvent() {}
func (ControlChange) isEvent()         {}
func (ChannelMode) isEvent()           {}
func (ProgramChange) isEvent()         {}
func (ChannelPressure) isEvent()       {}
func (PitchBendChange) isEvent()       {}
func (SystemExclusive) isEvent()       {}
func (UnknownChannelEvent) isEvent()   {}

func (e NoteOff) String() string {
	return fmt.Sprintf("Note Off: Delay %d Channel %d Key %d Velocity %d", e.Delta, e.Channel, e.Key, e.Velocity)
}

func (e NoteOn) String() string {
	return fmt.Sprintf("Note On: Delay %d Channel %d Key %d Velocity %d", e.Delta, e.Channel, e.Key, e.Velocity)
}

func (e PolyphonicKeyPressure) String() string {
	return fmt.Sprintf("Polyphonic Key Pressure: Delay %d Channel %d Key %d Velocity %d", e.Delta, e.Channel, e.Key, e.Velocity)
}

func (e ControlChange) String() string {
	return fmt.Sprintf("Control Change: Delay %d Channel %d Controller %d Value %d", e.Delta, e.Channel, e.Controller, e.Value)
}

func (e ChannelMode) String() string {
	return fmt.Sprintf("%s: Delay %d Channel %d", e.Mode, e.Delta, e.Channel)
}

func (e ProgramChange) String() string {
	return fmt.Sprintf("Program Change: Delay %d Channel %d Patch %d", e.Delta, e.Channel, e.Patch)
}

func (e ChannelPressure) String() string {
	return fmt.Sprintf("Channel Pressure: Delay %d Channel %d Velocity %d", e.Delta, e.Channel, e.Velocity)
}

func (e PitchBendChange) String() string {
	return fmt.Sprintf("Pitch Bend Change: Delay %d Channel %d Value %d", e.Delta, e.Channel, e.Value)
}

func (e SystemExclusive) String() string {
	return fmt.Sprintf("System Exclusive: Delay %d (%d bytes)", e.Delta, len(e.Data))
}

func (e UnknownChannelEvent) String() string {
	return fmt.Sprintf("Unknown: Delay %d Status 0x%02X", e.Delta, e.Status)
}

// Manufacturer returns the one byte manufacturer ID at the start of the
// payload, or the three byte extended ID when the first byte is zero.
func (e SystemExclusive) Manufacturer() ([]byte, bool) {
	if len(e.Data) == 0 {
		return nil, false
	}
	if e.Data[0] == 0x00 {
		if len(e.Data) < 3 {
			return nil, false
		}
		return e.Data[:3], true
	}
	return e.Data[:1], true
}

// Complete reports whether the payload ends with the F7 end-of-exclusive byte
func (e SystemExclusive) Complete() bool {
	return len(e.Data) > 0 && e.Data[len(e.Data)-1] == sysExEnd
}

// Mode is the controller number of a channel mode message
type Mode uint8

const (
	AllSoundOff Mode = 0x78 + iota
	ResetAllControllers
	LocalControl
	AllNotesOff
	OmniModeOff
	OmniModeOn
	MonoModeOn
	PolyModeOn
)

var modeNames = map[Mode]string{
	AllSoundOff:         "All Sound Off",
	ResetAllControllers: "Reset All Controllers",
	LocalControl:        "Local Control",
	AllNotesOff:         "All Notes Off",
	OmniModeOff:         "Omni Mode Off",
	OmniModeOn:          "Omni Mode On",
	MonoModeOn:          "Mono Mode On",
	PolyModeOn:          "Poly Mode On",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode 0x%02X", uint8(m))
}

func isModeController(controller uint8) bool {
	return controller >= uint8(AllSoundOff) && controller <= uint8(PolyModeOn)
}
