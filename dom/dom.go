// SPDX-License-Identifier: Unlicense OR MIT

// Package dom declares the minimal DOM contract the layout engine consumes.
// XML parsing itself is an external collaborator (spec.md §1): this package
// only fixes the shape a caller's parser must produce. The xhtml package
// supplies one concrete implementation over github.com/beevik/etree.
package dom

// NodeType distinguishes elements from text content.
type NodeType int

const (
	// Element is a tagged node with attributes and children.
	Element NodeType = iota
	// Text is a pcdata text node.
	Text
)

// Node is a single DOM node: an XHTML element or a run of character data.
type Node interface {
	Type() NodeType
	// Name is the tag name for an Element; meaningless for Text.
	Name() string
	// Value is the character content of a Text node; meaningless for Element.
	Value() string
	// Attr returns the named attribute's value and whether it was present.
	Attr(name string) (string, bool)
	// Attrs returns every attribute on the node, in document order.
	Attrs() []Attribute
	// Children returns the node's child nodes, in document order.
	Children() []Node
	// Parent returns the node's parent, or nil for the document root.
	Parent() Node
}

// Attribute is a single name/value attribute pair.
type Attribute struct {
	Name  string
	Value string
}

// Path renders the slash-separated ancestry of n, e.g. "/html/body/table",
// for use in stllerr diagnostics.
func Path(n Node) string {
	var names []string
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Type() != Element {
			continue
		}
		names = append([]string{cur.Name()}, names...)
	}
	path := ""
	for _, n := range names {
		path += "/" + n
	}
	return path
}
