package browser

import (
	"errors"
)

// SkipChildren may be returned by a WalkFunc to leave a container unexpanded
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node visited by Walk
type WalkFunc func(n Node, depth int) error

// Walk visits n and, depth first, every descendant, expanding containers as
// it goes. It stops at the first error returned by fn other than SkipChildren.
func Walk(n Node, fn WalkFunc) error {
	return walk(n, 0, fn)
}

func walk(n Node, depth int, fn WalkFunc) error {
	if err := fn(n, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	c, ok := n.(Container)
	if !ok {
		return nil
	}
	for _, child := range c.Items() {
		if err := walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Tree is a fully expanded snapshot of a node, suitable for JSON
type Tree struct {
	Label      string     `json:"label"`
	Properties []Property `json:"properties,omitempty"`
	Actions    []string   `json:"actions,omitempty"`
	Children   []Tree     `json:"children,omitempty"`
}

// Snapshot expands n completely
func Snapshot(n Node) Tree {
	t := Tree{Label: n.Describe()}
	if p, ok := n.(PropertySource); ok {
		t.Properties = p.Properties()
	}
	if a, ok := n.(Actor); ok {
		t.Actions = a.Actions()
	}
	if c, ok := n.(Container); ok {
		for _, child := range c.Items() {
			t.Children = append(t.Children, Snapshot(child))
		}
	}
	return t
}
