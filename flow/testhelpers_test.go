// SPDX-License-Identifier: Unlicense OR MIT

package flow

import (
	"github.com/vog/stll/dom"
)

// fakeNode is a minimal in-memory dom.Node used across this package's tests
// to exercise box/table/phrasing logic without a real XML parser.
type fakeNode struct {
	typ      dom.NodeType
	name     string
	value    string
	attrs    []dom.Attribute
	parent   *fakeNode
	children []*fakeNode
}

func elem(name string, attrs ...dom.Attribute) *fakeNode {
	return &fakeNode{typ: dom.Element, name: name, attrs: attrs}
}

func text(value string) *fakeNode {
	return &fakeNode{typ: dom.Text, value: value}
}

func (n *fakeNode) child(c *fakeNode) *fakeNode {
	c.parent = n
	n.children = append(n.children, c)
	return n
}

func (n *fakeNode) Type() dom.NodeType { return n.typ }
func (n *fakeNode) Name() string       { return n.name }
func (n *fakeNode) Value() string      { return n.value }
func (n *fakeNode) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
func (n *fakeNode) Attrs() []dom.Attribute { return n.attrs }
func (n *fakeNode) Children() []dom.Node {
	out := make([]dom.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}
func (n *fakeNode) Parent() dom.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}
