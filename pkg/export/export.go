// Package export projects a track onto its note-on events and writes them in
// the hex record format used by the browser's Export action.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/james-see/midibrowser/pkg/smf"
)

// DefaultFilename is where the Export action writes when no path is configured
const DefaultFilename = "export.xml"

// endOfTrackMarker is the sentinel written for End of Track
const endOfTrackMarker = 0xF2

// Record is one exported event: a note-on with the ticks accumulated since
// the previous record, or the End of Track terminator.
type Record struct {
	Delay    uint64
	Channel  uint8
	Key      uint8
	Velocity uint8
	End      bool
}

// EventSource is the iterator shape of smf.TrackReader
type EventSource interface {
	Next() bool
	Event() smf.Event
	Err() error
}

// Fold walks src and returns the note-on records. Delta-times of every other
// event are added to the delay of the next note-on. On a decode error it
// returns the records built so far together with the error.
func Fold(src EventSource) ([]Record, error) {
	var records []Record
	var delay uint64

	for src.Next() {
		ev := src.Event()
		delay += ev.DeltaTime()

		switch e := ev.(type) {
		case smf.NoteOn:
			records = append(records, Record{
				Delay:    delay,
				Channel:  e.Channel,
				Key:      e.Key,
				Velocity: e.Velocity,
			})
			delay = 0
		case smf.EndOfTrack:
			records = append(records, Record{End: true})
		}
	}

	if err := src.Err(); err != nil {
		return records, fmt.Errorf("failed to read track: %w", err)
	}
	return records, nil
}

// WriteRecords encodes records to w, one hex field per line. A note record
// is followed by a blank line; the terminator is a single f2 field.
func WriteRecords(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if r.End {
			fmt.Fprintf(bw, "<hex>%02x</hex>\n", endOfTrackMarker)
			continue
		}
		fmt.Fprintf(bw, "<hex>%04x</hex>\n", r.Delay)
		fmt.Fprintf(bw, "<hex>%02x</hex>\n", r.Channel)
		fmt.Fprintf(bw, "<hex>%02x</hex>\n", r.Key)
		fmt.Fprintf(bw, "<hex>%02x</hex>\n", r.Velocity)
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// Write folds src and encodes the records to w. Nothing is written if the
// track fails to decode.
func Write(w io.Writer, src EventSource) error {
	records, err := Fold(src)
	if err != nil {
		return err
	}
	return WriteRecords(w, records)
}

// WriteFile folds src and writes the records to the file at path
func WriteFile(path string, src EventSource) error {
	records, err := Fold(src)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := WriteRecords(f, records); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return f.Close()
}
