package browser

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"

	"github.com/james-see/midibrowser/pkg/smf"
)

// EventNode is one decoded track event
type EventNode struct {
	Event smf.Event
	Time  uint64 // absolute tick
}

func (n *EventNode) Describe() string {
	return n.Event.String()
}

func (n *EventNode) Properties() []Property {
	props := []Property{
		{Key: "Delay", Value: n.Event.DeltaTime()},
		{Key: "Time", Value: n.Time},
	}

	switch e := n.Event.(type) {
	case smf.NoteOff:
		props = append(props, noteProperties(e.Channel, e.Key, e.Velocity)...)
	case smf.NoteOn:
		props = append(props, noteProperties(e.Channel, e.Key, e.Velocity)...)
	case smf.PolyphonicKeyPressure:
		props = append(props, noteProperties(e.Channel, e.Key, e.Velocity)...)
	case smf.ControlChange:
		props = append(props,
			Property{Key: "Channel", Value: e.Channel},
			Property{Key: "Controller", Value: e.Controller},
			Property{Key: "Value", Value: e.Value})
	case smf.ChannelMode:
		props = append(props,
			Property{Key: "Channel", Value: e.Channel},
			Property{Key: "Mode", Value: e.Mode.String()},
			Property{Key: "Value", Value: e.Value})
	case smf.ProgramChange:
		props = append(props,
			Property{Key: "Channel", Value: e.Channel},
			Property{Key: "Patch", Value: e.Patch})
	case smf.ChannelPressure:
		props = append(props,
			Property{Key: "Channel", Value: e.Channel},
			Property{Key: "Velocity", Value: e.Velocity})
	case smf.PitchBendChange:
		props = append(props,
			Property{Key: "Channel", Value: e.Channel},
			Property{Key: "Value", Value: e.Value})
	case smf.SystemExclusive:
		props = append(props, Property{Key: "Length", Value: len(e.Data)})
		if id, ok := e.Manufacturer(); ok {
			props = append(props, Property{Key: "Manufacturer", Value: fmt.Sprintf("% X", id)})
		}
		props = append(props,
			Property{Key: "Complete", Value: e.Complete()},
			Property{Key: "Data", Value: fmt.Sprintf("% X", e.Data)})
	case smf.UnknownChannelEvent:
		props = append(props,
			Property{Key: "Status", Value: fmt.Sprintf("0x%02X", e.Status)},
			Property{Key: "Data", Value: fmt.Sprintf("% X", e.Data[:])})
	case smf.Text:
		props = append(props,
			Property{Key: "Type", Value: e.Type.String()},
			Property{Key: "Text", Value: e.Text})
	case smf.SetTempo:
		props = append(props,
			Property{Key: "MicrosecondsPerQuarter", Value: e.MicrosecondsPerQuarter},
			Property{Key: "BPM", Value: e.BPM()})
	case smf.TimeSignature:
		props = append(props,
			Property{Key: "Numerator", Value: e.Numerator},
			Property{Key: "Denominator", Value: e.Denominator},
			Property{Key: "ClocksPerTick", Value: e.ClocksPerTick},
			Property{Key: "ThirtySecondNotesPerQuarter", Value: e.ThirtySecondNotesPerQuarter})
	case smf.PortPrefix:
		props = append(props, Property{Key: "Port", Value: e.Port})
	case smf.EndOfTrack:
		if e.Malformed() {
			props = append(props, Property{Key: "Warning", Value: fmt.Sprintf("End of Track carries %d payload bytes", len(e.Data))})
		}
	case smf.MetaEvent:
		props = append(props, metaProperties(e.Type, e.Data)...)
	case smf.UnknownMeta:
		props = append(props, metaProperties(e.Type, e.Data)...)
	}
	return props
}

func noteProperties(channel, key, velocity uint8) []Property {
	return []Property{
		{Key: "Channel", Value: channel},
		{Key: "Key", Value: key},
		{Key: "Note", Value: midi.Note(key).String()},
		{Key: "Velocity", Value: velocity},
	}
}

func metaProperties(t smf.MetaType, data []byte) []Property {
	return []Property{
		{Key: "Type", Value: fmt.Sprintf("0x%02X", uint8(t))},
		{Key: "Length", Value: len(data)},
		{Key: "Data", Value: fmt.Sprintf("% X", data)},
	}
}
