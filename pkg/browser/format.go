package browser

import (
	"path/filepath"
	"strings"

	"github.com/james-see/midibrowser/pkg/smf"
)

// Format represents a file format
type Format string

const (
	FormatMIDI    Format = "midi"
	FormatUnknown Format = "unknown"
)

// Extensions lists the file extensions offered by file pickers
var Extensions = []string{".mid", ".midi", ".smf", ".kar"}

// DetectFormat detects the format of a file based on extension
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range Extensions {
		if ext == e {
			return FormatMIDI
		}
	}
	return FormatUnknown
}

// IsSMF reports whether data starts with an MThd chunk tag
func IsSMF(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == smf.TagHeader
}
