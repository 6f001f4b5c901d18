// Package browser exposes a decoded MIDI file as a tree of nodes for display.
// Every node has a label; nodes may additionally offer properties, children
// and named actions through the capability interfaces below.
package browser

import (
	"errors"

	"github.com/james-see/midibrowser/pkg/smf"
)

// ActionExport writes a track's note-on records to the export file
const ActionExport = "Export"

// ErrUnknownAction is returned by Execute for an action the node does not offer
var ErrUnknownAction = errors.New("unknown action")

// Node is anything shown in the tree
type Node interface {
	Describe() string
}

// PropertySource is a node with a key/value property set
type PropertySource interface {
	Node
	Properties() []Property
}

// Container is a node whose children are produced on demand. Decode errors
// never abort expansion; they appear as an *ErrorNode after the children
// decoded so far.
type Container interface {
	Node
	Items() []Node
}

// Actor is a node with named actions
type Actor interface {
	Node
	Actions() []string
	Execute(action string) error
}

// Property is one row of a property set
type Property struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Options configures how a file is decoded and where actions write
type Options struct {
	Strict     bool
	ExportPath string
}

func (o Options) decodeOptions() []smf.Option {
	if o.Strict {
		return []smf.Option{smf.Strict()}
	}
	return nil
}

func (o Options) exportPath() string {
	if o.ExportPath == "" {
		return DefaultExportPath
	}
	return o.ExportPath
}

// ErrorNode stands in for the part of a file that failed to decode
type ErrorNode struct {
	Err error
}

func (n *ErrorNode) Describe() string {
	return "Error: " + n.Err.Error()
}

func (n *ErrorNode) Properties() []Property {
	props := []Property{{Key: "Error", Value: n.Err.Error()}}
	var de *smf.DecodeError
	if errors.As(n.Err, &de) {
		props = append(props, Property{Key: "Offset", Value: de.Offset})
	}
	return props
}
