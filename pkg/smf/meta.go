package smf

import (
	"fmt"
	"sort"

	"golang.org/x/text/encoding/charmap"
)

// MetaType is the type byte following the FF status of a meta event
type MetaType uint8

const (
	MetaSequenceNumber    MetaType = 0x00
	MetaText              MetaType = 0x01
	MetaCopyright         MetaType = 0x02
	MetaTrackName         MetaType = 0x03
	MetaInstrumentName    MetaType = 0x04
	MetaLyric             MetaType = 0x05
	MetaMarker            MetaType = 0x06
	MetaCuePoint          MetaType = 0x07
	MetaChannelPrefix     MetaType = 0x20
	MetaPortPrefix        MetaType = 0x21
	MetaEndOfTrack        MetaType = 0x2F
	MetaSetTempo          MetaType = 0x51
	MetaSMPTEOffset       MetaType = 0x54
	MetaTimeSignature     MetaType = 0x58
	MetaKeySignature      MetaType = 0x59
	MetaSequencerSpecific MetaType = 0x7F
)

var metaNames = map[MetaType]string{
	MetaSequenceNumber:    "Sequence Number",
	MetaText:              "Text Event",
	MetaCopyright:         "Copyright Notice",
	MetaTrackName:         "Sequence/Track Name",
	MetaInstrumentName:    "Instrument Name",
	MetaLyric:             "Lyric",
	MetaMarker:            "Marker",
	MetaCuePoint:          "Cue Point",
	MetaChannelPrefix:     "MIDI Channel Prefix",
	MetaPortPrefix:        "MIDI Port Prefix",
	MetaEndOfTrack:        "End of Track",
	MetaSetTempo:          "Set Tempo",
	MetaSMPTEOffset:       "SMPTE Offset",
	MetaTimeSignature:     "Time Signature",
	MetaKeySignature:      "Key Signature",
	MetaSequencerSpecific: "Sequencer Specific",
}

// Known reports whether t is part of the meta event catalog
func (t MetaType) Known() bool {
	_, ok := metaNames[t]
	return ok
}

func (t MetaType) String() string {
	if name, ok := metaNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Meta-Event 0x%02X", uint8(t))
}

// MetaTypes returns the catalog in type byte order
func MetaTypes() []MetaType {
	types := make([]MetaType, 0, len(metaNames))
	for t := range metaNames {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Text is a text-bearing meta event (types 0x01-0x05)
type Text struct {
	Delta uint64
	Type  MetaType
	Text  string
}

// SetTempo gives the tempo in microseconds per quarter note
type SetTempo struct {
	Delta                  uint64
	MicrosecondsPerQuarter uint32
}

// BPM converts the tempo to quarter notes per minute
func (e SetTempo) BPM() float64 {
	if e.MicrosecondsPerQuarter == 0 {
		return 0
	}
	return 60000000.0 / float64(e.MicrosecondsPerQuarter)
}

// TimeSignature holds the four bytes of an FF 58 event. Denominator is the
// power of two exponent as stored.
type TimeSignature struct {
	Delta                       uint64
	Numerator                   uint8
	Denominator                 uint8
	ClocksPerTick               uint8
	ThirtySecondNotesPerQuarter uint8
}

// PortPrefix selects the MIDI port for the following events
type PortPrefix struct {
	Delta uint64
	Port  uint8
}

// EndOfTrack terminates a track. Data is normally empty.
type EndOfTrack struct {
	Delta uint64
	Data  []byte
}

// Malformed reports an End of Track with a non-empty payload
func (e EndOfTrack) Malformed() bool {
	return len(e.Data) != 0
}

// MetaEvent is a catalogued meta event kept as raw payload, either because
// the catalog has no richer form for it or because the payload was too short
// for that form.
type MetaEvent struct {
	Delta uint64
	Type  MetaType
	Data  []byte
}

// UnknownMeta is a meta event whose type is outside the catalog
type UnknownMeta struct {
	Delta uint64
	Type  MetaType
	Data  []byte
}

func (e Text) DeltaTime() uint64          { return e.Delta }
func (e SetTempo) DeltaTime() uint64      { return e.Delta }
func (e TimeSignature) DeltaTime() uint64 { return e.Delta }
func (e PortPrefix) DeltaTime() uint64    { return e.Delta }
func (e EndOfTrack) DeltaTime() uint64    { return e.Delta }
func (e MetaEvent) DeltaTime() uint64     { return e.Delta }
func (e UnknownMeta) DeltaTime() uint64   { return e.Delta }

func (Text) isEvent()          {}
func (SetTempo) isEvent()      {}
func (TimeSignature) isEvent() {}
func (PortPrefix) isEvent()    {}
func (EndOfTrack) isEvent()    {}
func (MetaEvent) isEvent()     {}
func (UnknownMeta) isEvent()   {}

func (e Text) String() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Text)
}

func (e SetTempo) String() string {
	return fmt.Sprintf("Set Tempo: %d", e.MicrosecondsPerQuarter)
}

func (e TimeSignature) String() string {
	return fmt.Sprintf("Time Signature: %d/%d (%d) [%d]", e.Numerator, e.Denominator, e.ClocksPerTick, e.ThirtySecondNotesPerQuarter)
}

func (e PortPrefix) String() string {
	return fmt.Sprintf("MIDI Port Prefix: %d", e.Port)
}

func (e EndOfTrack) String() string {
	return MetaEndOfTrack.String()
}

func (e MetaEvent) String() string {
	return e.Type.String()
}

func (e UnknownMeta) String() string {
	return e.Type.String()
}

// latin1 maps each byte to the code point of the same value
var latin1 = charmap.ISO8859_1.NewDecoder()

func decodeText(b []byte) string {
	s, err := latin1.Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

func decodeMeta(delta uint64, t MetaType, data []byte) Event {
	switch t {
	case MetaText, MetaCopyright, MetaTrackName, MetaInstrumentName, MetaLyric:
		return Text{Delta: delta, Type: t, Text: decodeText(data)}
	case MetaEndOfTrack:
		return EndOfTrack{Delta: delta, Data: data}
	case MetaPortPrefix:
		if len(data) >= 1 {
			return PortPrefix{Delta: delta, Port: data[0]}
		}
	case MetaSetTempo:
		if len(data) >= 3 {
			return SetTempo{Delta: delta, MicrosecondsPerQuarter: uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])}
		}
	case MetaTimeSignature:
		if len(data) >= 4 {
			return TimeSignature{
				Delta:                       delta,
				Numerator:                   data[0],
				Denominator:                 data[1],
				ClocksPerTick:               data[2],
				ThirtySecondNotesPerQuarter: data[3],
			}
		}
	}
	if !t.Known() {
		return UnknownMeta{Delta: delta, Type: t, Data: data}
	}
	return MetaEvent{Delta: delta, Type: t, Data: data}
}
