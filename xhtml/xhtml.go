// SPDX-License-Identifier: Unlicense OR MIT

// Package xhtml implements dom.Node over github.com/beevik/etree, the
// concrete parser spec.md §1 leaves as an external collaborator ("XML
// parsing is consumed as a black box"). It also validates the minimal
// document shape original_source/layouterXHTML.cpp's layoutXML_HTML
// requires: a root <html> containing an optional <head> and exactly one
// <body>.
package xhtml

import (
	"github.com/beevik/etree"

	"github.com/vog/stll/dom"
	"github.com/vog/stll/stllerr"
)

// Node adapts a single etree element or character-data token to dom.Node.
// Exactly one of elem/cdata is set, mirroring dom.NodeType's Element/Text
// split.
type Node struct {
	elem  *etree.Element
	cdata *etree.CharData
}

func (n *Node) Type() dom.NodeType {
	if n.cdata != nil {
		return dom.Text
	}
	return dom.Element
}

func (n *Node) Name() string {
	if n.elem == nil {
		return ""
	}
	return n.elem.Tag
}

func (n *Node) Value() string {
	if n.cdata == nil {
		return ""
	}
	return n.cdata.Data
}

func (n *Node) Attr(name string) (string, bool) {
	if n.elem == nil {
		return "", false
	}
	a := n.elem.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

func (n *Node) Attrs() []dom.Attribute {
	if n.elem == nil {
		return nil
	}
	out := make([]dom.Attribute, len(n.elem.Attr))
	for i, a := range n.elem.Attr {
		out[i] = dom.Attribute{Name: a.Key, Value: a.Value}
	}
	return out
}

// Children walks elem's child tokens in document order, wrapping each
// *etree.Element and *etree.CharData as a Node; comments and processing
// instructions have no dom.Node analog and are dropped.
func (n *Node) Children() []dom.Node {
	if n.elem == nil {
		return nil
	}
	var out []dom.Node
	for _, tok := range n.elem.Child {
		switch t := tok.(type) {
		case *etree.Element:
			out = append(out, &Node{elem: t})
		case *etree.CharData:
			out = append(out, &Node{cdata: t})
		}
	}
	return out
}

func (n *Node) Parent() dom.Node {
	var p *etree.Element
	switch {
	case n.elem != nil:
		p = n.elem.Parent()
	case n.cdata != nil:
		p = n.cdata.Parent()
	}
	// etree's document node (empty tag) sits above <html>; it is not a DOM
	// element, so <html> reports no parent.
	if p == nil || p.Tag == "" {
		return nil
	}
	return &Node{elem: p}
}

// Parse parses src as XHTML and returns the <body> element as a dom.Node,
// ported from layoutXML_HTML/layoutXML/layoutXHTML's document-shape check:
// the root must be <html>, containing an optional <head> (ignored) and
// exactly one <body>; any other top-level child is UnexpectedTag.
func Parse(src []byte) (dom.Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(src); err != nil {
		return nil, stllerr.NewParse(0, string(src), err.Error())
	}
	root := doc.Root()
	if root == nil || root.Tag != "html" {
		return nil, stllerr.New(stllerr.ParseError, "", "document root must be <html>")
	}
	var body *etree.Element
	for _, c := range root.ChildElements() {
		switch c.Tag {
		case "head":
		case "body":
			if body != nil {
				return nil, stllerr.Newf(stllerr.UnexpectedTag, "/html", "more than one <body>")
			}
			body = c
		default:
			return nil, stllerr.Newf(stllerr.UnexpectedTag, "/html", "unexpected top-level tag %q", c.Tag)
		}
	}
	if body == nil {
		return nil, stllerr.New(stllerr.ParseError, "/html", "missing <body>")
	}
	return &Node{elem: body}, nil
}
